package astro

import (
	"math"
	"testing"
	"time"
)

// raDiff returns the smallest difference between two right ascensions.
func raDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return math.Min(d, 360-d)
}

func TestSunPosition_Cardinal(t *testing.T) {
	tests := []struct {
		name    string
		at      time.Time
		ra, dec float64
	}{
		{"march equinox", time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC), 0, 0},
		{"june solstice", time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC), 90, 23.44},
		{"september equinox", time.Date(2024, 9, 22, 12, 44, 0, 0, time.UTC), 180, 0},
		{"december solstice", time.Date(2024, 12, 21, 9, 20, 0, 0, time.UTC), 270, -23.44},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra, dec := SunPosition(tt.at)
			if d := raDiff(ra, tt.ra); d > 0.1 {
				t.Errorf("RA = %.3f°, want %.1f° (off by %.3f°)", ra, tt.ra, d)
			}
			if math.Abs(dec-tt.dec) > 0.05 {
				t.Errorf("Dec = %.3f°, want %.2f°", dec, tt.dec)
			}
		})
	}
}

func TestSunPosition_RangeOverYear(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for day := range 365 {
		ra, dec := SunPosition(start.AddDate(0, 0, day))
		if ra < 0 || ra >= 360 {
			t.Fatalf("day %d: RA %.3f outside [0,360)", day, ra)
		}
		if math.Abs(dec) > 23.45 {
			t.Fatalf("day %d: Dec %.3f beyond the obliquity", day, dec)
		}
	}
}

func TestAngularSeparation(t *testing.T) {
	tests := []struct {
		name                 string
		ra1, dec1, ra2, dec2 float64
		want, tol            float64
	}{
		{"identical", 10.6847, 41.269, 10.6847, 41.269, 0, 1e-9},
		{"M31 to M33", 10.6847, 41.269, 23.4621, 30.6599, 14.78, 0.01},
		{"M81 to M82", 148.888, 69.065, 148.970, 69.680, 0.616, 0.001},
		{"quarter of the equator", 0, 0, 90, 0, 90, 1e-9},
		{"Polaris to the pole", 37.95, 89.264, 0, 90, 0.736, 0.001},
		{"antipodes", 83.822, -5.391, 263.822, 5.391, 180, 1e-3},
		{"across RA zero", 359.5, 0, 0.5, 0, 1, 1e-9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularSeparation(tt.ra1, tt.dec1, tt.ra2, tt.dec2)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("AngularSeparation = %.4f°, want %.4f° ±%g", got, tt.want, tt.tol)
			}
			if back := AngularSeparation(tt.ra2, tt.dec2, tt.ra1, tt.dec1); math.Abs(back-got) > 1e-9 {
				t.Errorf("not symmetric: %.6f vs %.6f", got, back)
			}
		})
	}
}

func TestSunSeparation_OrionNebula(t *testing.T) {
	const m42RA, m42Dec = 83.822, -5.391
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"behind the Sun in June", time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), 29.5},
		{"opposite the Sun in December", time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC), 150.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunSeparation(m42RA, m42Dec, tt.at)
			if math.Abs(got-tt.want) > 2 {
				t.Errorf("SunSeparation = %.2f°, want about %.1f°", got, tt.want)
			}
		})
	}
}

func TestSunAltitude_SouthernSummer(t *testing.T) {
	paranal := Observer{LatDeg: -24.627, LonDeg: -70.404}

	// Local mean noon and midnight at 70.4°W fall near 16:42 and 04:42 UTC.
	noon := SunAltitude(paranal, time.Date(2024, 12, 21, 16, 42, 0, 0, time.UTC))
	midnight := SunAltitude(paranal, time.Date(2024, 12, 21, 4, 42, 0, 0, time.UTC))

	if noon < 85 {
		t.Errorf("noon altitude = %.2f°, want near the zenith", noon)
	}
	if midnight > -38 || midnight < -46 {
		t.Errorf("midnight altitude = %.2f°, want about -42°", midnight)
	}
}
