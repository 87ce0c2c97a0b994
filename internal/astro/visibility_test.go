package astro

import (
	"errors"
	"math"
	"testing"
	"time"
)

// testObservers for visibility testing
var testObservers = map[string]Observer{
	"goldstone":  {LatDeg: 35.4267, LonDeg: -116.8900, Name: "Goldstone"},
	"canberra":   {LatDeg: -35.4014, LonDeg: 148.9817, Name: "Canberra"},
	"new_york":   {LatDeg: 40.7, LonDeg: -74.0, Name: "New York"},
	"north_pole": {LatDeg: 89.0, LonDeg: 0.0, Name: "North Pole"},
}

// Well-known positions (J2000)
var testTargets = map[string]Target{
	"vega":    {RAdeg: 279.2347, DecDeg: 38.7837},
	"polaris": {RAdeg: 37.9542, DecDeg: 89.2641},
	"canopus": {RAdeg: 95.9879, DecDeg: -52.6957},
	"m31":     {RAdeg: 10.6847, DecDeg: 41.2690},
	"m42":     {RAdeg: 83.8221, DecDeg: -5.3911},
}

// flatHorizon is an obstruction profile of constant altitude.
type flatHorizon float64

func (h flatHorizon) Altitude(float64) float64 { return float64(h) }

func octoberNight(lon float64) time.Time {
	return time.Date(2024, 10, 1, 21, 0, 0, 0, MeanSolarZone(lon))
}

func TestCalculateAltitudeCurve_Transit(t *testing.T) {
	obs := testObservers["new_york"]
	target := testTargets["m31"]

	curve := CalculateAltitudeCurve(target, obs, octoberNight(obs.LonDeg), CurveOptions{})

	if len(curve.Samples) != CurveSamples {
		t.Fatalf("len(Samples) = %d, want %d", len(curve.Samples), CurveSamples)
	}

	wantTransit := 90 - math.Abs(obs.LatDeg-target.DecDeg)
	if math.Abs(curve.TransitAltitude-wantTransit) > 1e-9 {
		t.Errorf("TransitAltitude = %v, want %v", curve.TransitAltitude, wantTransit)
	}
	if math.Abs(curve.MaxAltitude-wantTransit) > 0.5 {
		t.Errorf("MaxAltitude = %v, want ~%v", curve.MaxAltitude, wantTransit)
	}

	if curve.IsCircumpolar || curve.NeverRises {
		t.Errorf("M31 from 40.7°N: circumpolar=%v neverRises=%v, want both false",
			curve.IsCircumpolar, curve.NeverRises)
	}
	if curve.Rise.IsZero() || curve.Set.IsZero() {
		t.Fatalf("expected rise and set, got rise=%v set=%v", curve.Rise, curve.Set)
	}
	if !curve.Rise.Before(curve.MaxAltitudeTime) || !curve.MaxAltitudeTime.Before(curve.Set) {
		t.Errorf("expected rise < max < set, got %v %v %v", curve.Rise, curve.MaxAltitudeTime, curve.Set)
	}
}

func TestCalculateAltitudeCurve_Circumpolar(t *testing.T) {
	obs := testObservers["goldstone"]
	curve := CalculateAltitudeCurve(testTargets["polaris"], obs, octoberNight(obs.LonDeg), CurveOptions{})

	if !curve.IsCircumpolar {
		t.Error("Polaris should be circumpolar from Goldstone")
	}
	if !curve.Rise.IsZero() || !curve.Set.IsZero() {
		t.Errorf("circumpolar target should have no rise/set, got %v / %v", curve.Rise, curve.Set)
	}
	for _, s := range curve.Samples {
		if s.Altitude <= 0 {
			t.Fatalf("Polaris below horizon at %v: %v°", s.Time, s.Altitude)
		}
	}
}

func TestCalculateAltitudeCurve_NeverRises(t *testing.T) {
	obs := testObservers["goldstone"]
	curve := CalculateAltitudeCurve(testTargets["canopus"], obs, octoberNight(obs.LonDeg), CurveOptions{})

	// Canopus culminates at 90 - |35.43 + 52.70| < 2°, which is still above 0.
	if curve.NeverRises {
		t.Error("Canopus grazes the southern horizon from Goldstone and should rise")
	}

	deep := Target{RAdeg: 0, DecDeg: -70}
	curve = CalculateAltitudeCurve(deep, obs, octoberNight(obs.LonDeg), CurveOptions{})
	if !curve.NeverRises {
		t.Error("Dec -70° should never rise from 35°N")
	}
	if h := curve.HoursAbove(0, false); h != 0 {
		t.Errorf("HoursAbove for a never-rising target = %v, want 0", h)
	}
	if !curve.Rise.IsZero() || !curve.Set.IsZero() {
		t.Error("never-rising target should have no rise/set")
	}
}

func TestCalculateAltitudeCurve_SouthernHemisphere(t *testing.T) {
	obs := testObservers["canberra"]
	curve := CalculateAltitudeCurve(testTargets["canopus"], obs, octoberNight(obs.LonDeg), CurveOptions{})

	// Lower culmination |−35.4 − 52.7| − 90 = −1.9, so it just sets.
	if curve.IsCircumpolar {
		t.Error("Canopus dips below the horizon from Canberra")
	}
	if curve.MaxAltitude < 70 {
		t.Errorf("Canopus max altitude from Canberra = %v, want > 70", curve.MaxAltitude)
	}
}

func TestAltitudeCurve_DarkHours(t *testing.T) {
	obs := testObservers["new_york"]
	curve := CalculateAltitudeCurve(testTargets["m31"], obs, octoberNight(obs.LonDeg), CurveOptions{MinAltitude: 30})

	dark := curve.HoursAbove(30, true)
	all := curve.HoursAbove(30, false)
	if dark < 6 {
		t.Errorf("M31 dark hours above 30° in October = %v, want > 6", dark)
	}
	if dark > all {
		t.Errorf("dark hours %v exceed total hours %v", dark, all)
	}

	if !curve.IsVisibleFor(30, 2) {
		t.Error("M31 should be visible for 2 dark hours")
	}
	if curve.IsVisibleFor(30, 20) {
		t.Error("no target can be dark-visible for 20 hours in October at 40°N")
	}

	start, end, ok := curve.DarkWindow(30)
	if !ok {
		t.Fatal("DarkWindow() found nothing")
	}
	if got := end.Sub(start).Hours(); got > dark+1e-9 {
		t.Errorf("DarkWindow length %v exceeds dark hours %v", got, dark)
	}
}

func TestAltitudeCurve_CustomHorizon(t *testing.T) {
	obs := testObservers["new_york"]
	target := testTargets["m31"]
	night := octoberNight(obs.LonDeg)

	flat := CalculateAltitudeCurve(target, obs, night, CurveOptions{})
	walled := CalculateAltitudeCurve(target, obs, night, CurveOptions{Horizon: flatHorizon(60)})
	blocked := CalculateAltitudeCurve(target, obs, night, CurveOptions{Horizon: flatHorizon(89.5)})

	if walled.HoursAbove(0, false) >= flat.HoursAbove(0, false) {
		t.Errorf("a 60° wall should cut visible hours: %v vs %v",
			walled.HoursAbove(0, false), flat.HoursAbove(0, false))
	}
	if h := blocked.HoursAbove(0, false); h != 0 {
		t.Errorf("an 89.5° wall should block M31 entirely, got %v hours", h)
	}
	for _, s := range walled.Samples {
		if s.HorizonAltitude != 60 {
			t.Fatalf("HorizonAltitude = %v, want 60", s.HorizonAltitude)
		}
	}
}

func TestAltitudeSample_Above(t *testing.T) {
	tests := []struct {
		name   string
		sample AltitudeSample
		minAlt float64
		want   bool
	}{
		{"clear", AltitudeSample{Altitude: 45}, 30, true},
		{"exactly at minimum", AltitudeSample{Altitude: 30}, 30, false},
		{"exactly on obstruction", AltitudeSample{Altitude: 40, HorizonAltitude: 40}, 30, false},
		{"behind obstruction", AltitudeSample{Altitude: 40, HorizonAltitude: 50}, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sample.Above(tt.minAlt); got != tt.want {
				t.Errorf("Above(%v) = %v, want %v", tt.minAlt, got, tt.want)
			}
		})
	}
}

func TestAltitudeCurve_LongestWindow(t *testing.T) {
	ref := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	alts := []float64{10, 40, 40, 10, 40, 40, 40, 10}
	curve := AltitudeCurve{Reference: ref}
	for i, a := range alts {
		curve.Samples = append(curve.Samples, AltitudeSample{Time: ref.Add(time.Duration(i) * CurveStep), Altitude: a})
	}

	start, end, ok := curve.LongestWindow(func(s AltitudeSample) bool { return s.Above(30) })
	if !ok {
		t.Fatal("LongestWindow() found nothing")
	}
	if !start.Equal(curve.Samples[4].Time) {
		t.Errorf("start = %v, want sample 4", start)
	}
	if !end.Equal(curve.Samples[7].Time) {
		t.Errorf("end = %v, want one step past sample 6", end)
	}

	if _, _, ok := curve.LongestWindow(func(AltitudeSample) bool { return false }); ok {
		t.Error("LongestWindow() with nothing kept should report !ok")
	}
}

func TestAltitudeCurve_AltitudeAt(t *testing.T) {
	obs := testObservers["new_york"]
	curve := CalculateAltitudeCurve(testTargets["m42"], obs, octoberNight(obs.LonDeg), CurveOptions{})

	s := curve.Samples[100]
	if got := curve.AltitudeAt(s.Time); math.Abs(got-s.Altitude) > 1e-9 {
		t.Errorf("AltitudeAt(sample time) = %v, want %v", got, s.Altitude)
	}

	mid := s.Time.Add(CurveStep / 2)
	want := (s.Altitude + curve.Samples[101].Altitude) / 2
	if got := curve.AltitudeAt(mid); math.Abs(got-want) > 1e-9 {
		t.Errorf("AltitudeAt(midpoint) = %v, want %v", got, want)
	}

	if !math.IsNaN(curve.AltitudeAt(curve.Reference.Add(-time.Hour))) {
		t.Error("AltitudeAt before the window should be NaN")
	}
}

func TestCalculateVisibility(t *testing.T) {
	obs := testObservers["new_york"]
	night := octoberNight(obs.LonDeg)

	vis, err := CalculateVisibility(testTargets["m31"], obs, night, CurveOptions{MinAltitude: 30})
	if err != nil {
		t.Fatalf("CalculateVisibility() error: %v", err)
	}
	if vis.TransitTime.Before(night) || vis.TransitTime.Sub(night) >= 24*time.Hour {
		t.Errorf("TransitTime = %v, want within 24h of %v", vis.TransitTime, night)
	}
	if vis.DarkImagingHours <= 0 {
		t.Errorf("DarkImagingHours = %v, want > 0", vis.DarkImagingHours)
	}
	if vis.Azimuth < 0 || vis.Azimuth >= 360 {
		t.Errorf("Azimuth = %v, want [0,360)", vis.Azimuth)
	}

	_, err = CalculateVisibility(Target{RAdeg: math.NaN()}, obs, night, CurveOptions{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NaN RA error = %v, want ErrInvalidInput", err)
	}
	_, err = CalculateVisibility(testTargets["m31"], Observer{LatDeg: math.Inf(1)}, night, CurveOptions{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("infinite latitude error = %v, want ErrInvalidInput", err)
	}
}

func TestCalculateVisibility_PolarObserver(t *testing.T) {
	obs := testObservers["north_pole"]
	vis, err := CalculateVisibility(testTargets["polaris"], obs, octoberNight(obs.LonDeg), CurveOptions{})
	if err != nil {
		t.Fatalf("CalculateVisibility() error: %v", err)
	}
	if !vis.IsCircumpolar {
		t.Error("Polaris is circumpolar from 89°N")
	}
	if vis.Altitude < 85 {
		t.Errorf("Polaris altitude from 89°N = %v, want > 85", vis.Altitude)
	}
}

func TestCulminationAltitudes(t *testing.T) {
	tests := []struct {
		lat, dec     float64
		upper, lower float64
	}{
		{40, 41, 89, -9},
		{40, 60, 70, 10},
		{-35, -70, 55, 15},
		{35, -70, -15, -55},
	}

	for _, tt := range tests {
		upper, lower := CulminationAltitudes(tt.lat, tt.dec)
		if math.Abs(upper-tt.upper) > 1e-9 || math.Abs(lower-tt.lower) > 1e-9 {
			t.Errorf("CulminationAltitudes(%v, %v) = %v, %v, want %v, %v",
				tt.lat, tt.dec, upper, lower, tt.upper, tt.lower)
		}
	}
}

func TestGetElevationTier(t *testing.T) {
	tests := []struct {
		elDeg float64
		want  ElevationTier
	}{
		{-10, ElevationNone},
		{0, ElevationNone},
		{5, ElevationLow},
		{29.9, ElevationLow},
		{30, ElevationMedium},
		{59.9, ElevationMedium},
		{60, ElevationHigh},
		{90, ElevationHigh},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got := GetElevationTier(tt.elDeg)
			if got != tt.want {
				t.Errorf("GetElevationTier(%.1f) = %v, want %v", tt.elDeg, got, tt.want)
			}
		})
	}
}

func TestInterpolateCrossing(t *testing.T) {
	tests := []struct {
		name      string
		t1, t2    time.Time
		el1, el2  float64
		threshold float64
		wantFrac  float64 // expected fraction between t1 and t2
	}{
		{
			name:      "midpoint crossing",
			t1:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			t2:        time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
			el1:       -10,
			el2:       10,
			threshold: 0,
			wantFrac:  0.5,
		},
		{
			name:      "quarter crossing",
			t1:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			t2:        time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
			el1:       25,
			el2:       45,
			threshold: 30,
			wantFrac:  0.25,
		},
		{
			name:      "setting crossing",
			t1:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			t2:        time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
			el1:       5,
			el2:       -15,
			threshold: 0,
			wantFrac:  0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := interpolateCrossing(tt.t1, tt.t2, tt.el1, tt.el2, tt.threshold)
			actualFrac := float64(result.Sub(tt.t1)) / float64(tt.t2.Sub(tt.t1))

			if math.Abs(actualFrac-tt.wantFrac) > 0.01 {
				t.Errorf("interpolateCrossing() fraction = %.3f, want %.3f", actualFrac, tt.wantFrac)
			}
		})
	}
}
