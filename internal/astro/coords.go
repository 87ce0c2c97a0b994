// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// SkyCoord represents celestial coordinates with both equatorial (RA/Dec)
// and horizontal (Az/El) components.
type SkyCoord struct {
	// Equatorial coordinates (J2000)
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)

	// Horizontal coordinates (observer-relative)
	AzDeg float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	ElDeg float64 // Elevation/Altitude in degrees (0=horizon, 90=zenith)
}

// Target is a fixed point on the celestial sphere (J2000 degrees).
type Target struct {
	RAdeg  float64 `json:"ra"`
	DecDeg float64 `json:"dec"`
}

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// ErrInvalidInput marks non-finite geometry handed to a public entry point.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the offending field. It unwraps to ErrInvalidInput.
type InputError struct {
	Field string
	Value float64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s = %v", e.Field, e.Value)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// CheckFinite returns an *InputError for the first non-finite value.
// Pairs are field name followed by value.
func CheckFinite(fields ...any) error {
	for i := 0; i+1 < len(fields); i += 2 {
		name, _ := fields[i].(string)
		v, ok := fields[i+1].(float64)
		if !ok {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InputError{Field: name, Value: v}
		}
	}
	return nil
}

// Validate checks the observer coordinates.
func (o Observer) Validate() error {
	if err := CheckFinite("latitude", o.LatDeg, "longitude", o.LonDeg); err != nil {
		return err
	}
	if o.LatDeg < -90 || o.LatDeg > 90 {
		return &InputError{Field: "latitude", Value: o.LatDeg}
	}
	return nil
}

// Validate checks the target coordinates.
func (t Target) Validate() error {
	if err := CheckFinite("ra", t.RAdeg, "dec", t.DecDeg); err != nil {
		return err
	}
	if t.DecDeg < -90 || t.DecDeg > 90 {
		return &InputError{Field: "dec", Value: t.DecDeg}
	}
	return nil
}

// EquatorialToHorizontal converts equatorial coordinates (RA/Dec) to horizontal
// coordinates (Az/El) for a given observer and time.
//
// The function preserves the input RA/Dec values and populates Az/El.
// Uses standard astronomical conventions:
//   - Azimuth: 0° = North, 90° = East, 180° = South, 270° = West
//   - Elevation: 0° = horizon, 90° = zenith
func EquatorialToHorizontal(eq SkyCoord, obs Observer, t time.Time) SkyCoord {
	lst := LocalSiderealTime(obs.LonDeg, t)
	ha := HourAngle(lst, eq.RAdeg)

	alt := CalculateAltitude(ha, obs.LatDeg, eq.DecDeg)
	az := CalculateAzimuth(ha, alt, obs.LatDeg, eq.DecDeg)

	return SkyCoord{
		RAdeg:  eq.RAdeg,
		DecDeg: eq.DecDeg,
		AzDeg:  az,
		ElDeg:  alt,
	}
}

// Horizontal returns altitude and azimuth of a target for an observer at t.
func Horizontal(target Target, obs Observer, t time.Time) (altDeg, azDeg float64) {
	c := EquatorialToHorizontal(SkyCoord{RAdeg: target.RAdeg, DecDeg: target.DecDeg}, obs, t)
	return c.ElDeg, c.AzDeg
}

// CalculateAltitude returns the altitude in degrees of an object at the given
// hour angle, observer latitude and declination (all degrees).
//
//	sin(alt) = sin(lat)sin(dec) + cos(lat)cos(dec)cos(HA)
func CalculateAltitude(haDeg, latDeg, decDeg float64) float64 {
	lat := DegToRad(latDeg)
	dec := DegToRad(decDeg)
	ha := DegToRad(haDeg)

	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(ha)
	if sinAlt > 1 {
		sinAlt = 1
	} else if sinAlt < -1 {
		sinAlt = -1
	}
	return RadToDeg(math.Asin(sinAlt))
}

// CalculateAzimuth returns the azimuth in degrees [0,360) for an object at the
// given hour angle and altitude. Rising objects (sin HA < 0) land in the east
// half, setting objects in the west half.
func CalculateAzimuth(haDeg, altDeg, latDeg, decDeg float64) float64 {
	lat := DegToRad(latDeg)
	dec := DegToRad(decDeg)
	alt := DegToRad(altDeg)
	ha := DegToRad(haDeg)

	denom := math.Cos(alt) * math.Cos(lat)
	if math.Abs(denom) < 1e-12 {
		// Zenith or geographic pole: fall back to the atan2 form, which stays
		// defined at the pole and returns north at the zenith.
		y := -math.Sin(ha) * math.Cos(dec)
		x := math.Cos(lat)*math.Sin(dec) - math.Sin(lat)*math.Cos(dec)*math.Cos(ha)
		if math.Abs(x) < 1e-12 && math.Abs(y) < 1e-12 {
			return 0
		}
		return NormalizeDegrees(RadToDeg(math.Atan2(y, x)))
	}

	cosAz := (math.Sin(dec) - math.Sin(alt)*math.Sin(lat)) / denom
	// Clamp cosAz to [-1, 1] to handle floating point errors
	if cosAz > 1 {
		cosAz = 1
	} else if cosAz < -1 {
		cosAz = -1
	}

	az := math.Acos(cosAz)

	// Adjust azimuth quadrant: if hour angle is positive, azimuth is west of south
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	return NormalizeDegrees(RadToDeg(az))
}

// EclipticToEquatorial converts ecliptic longitude/latitude to RA/Dec
// (all degrees) for the given obliquity.
func EclipticToEquatorial(lonDeg, latDeg, oblDeg float64) (raDeg, decDeg float64) {
	lon := DegToRad(lonDeg)
	lat := DegToRad(latDeg)
	eps := DegToRad(oblDeg)

	ra := math.Atan2(math.Sin(lon)*math.Cos(eps)-math.Tan(lat)*math.Sin(eps), math.Cos(lon))
	dec := math.Asin(math.Sin(lat)*math.Cos(eps) + math.Cos(lat)*math.Sin(eps)*math.Sin(lon))

	return NormalizeDegrees(RadToDeg(ra)), RadToDeg(dec)
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(jd float64) float64 {
	T := (jd - J2000) / 36525.0
	return 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// HoursToDeg converts hours of right ascension to degrees.
func HoursToDeg(h float64) float64 { return h * 15 }

// DegToHours converts degrees to hours of right ascension.
func DegToHours(deg float64) float64 { return deg / 15 }

// HMSToDeg converts sexagesimal hours to degrees.
func HMSToDeg(h, m int, s float64) float64 {
	return unit.NewRA(h, m, s).Deg()
}

// DMSToDeg converts a sexagesimal angle to degrees. neg marks southern
// declinations, which matters for "-0° 30'".
func DMSToDeg(neg bool, d, m int, s float64) float64 {
	var sign byte
	if neg {
		sign = '-'
	}
	return unit.NewAngle(sign, d, m, s).Deg()
}

// DegToHMS splits an RA in degrees into hours, minutes and seconds.
func DegToHMS(deg float64) (h, m int, s float64) {
	hours := DegToHours(NormalizeDegrees(deg))
	h = int(hours)
	rem := (hours - float64(h)) * 60
	m = int(rem)
	s = (rem - float64(m)) * 60
	return h, m, s
}

// DegToDMS splits an angle in degrees into sign, degrees, minutes and seconds.
func DegToDMS(deg float64) (neg bool, d, m int, s float64) {
	neg = deg < 0
	a := math.Abs(deg)
	d = int(a)
	rem := (a - float64(d)) * 60
	m = int(rem)
	s = (rem - float64(m)) * 60
	return neg, d, m, s
}

// FormatRA renders an RA in degrees as sexagesimal hours.
func FormatRA(deg float64) string {
	return fmt.Sprintf("%.1d", sexa.FmtRA(unit.RAFromDeg(deg)))
}

// FormatDec renders a declination in degrees as sexagesimal degrees.
func FormatDec(deg float64) string {
	return fmt.Sprintf("%.0d", sexa.FmtAngle(unit.AngleFromDeg(deg)))
}

// NormalizeDegrees normalizes an angle to [0, 360). Non-finite input yields NaN.
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}
