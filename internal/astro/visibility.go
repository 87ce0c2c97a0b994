package astro

import (
	"math"
	"time"
)

// HorizonProfile reports the altitude of the local obstruction profile at an
// azimuth. A nil profile is the flat 0° horizon.
type HorizonProfile interface {
	Altitude(azDeg float64) float64
}

const (
	// CurveSamples is the number of altitude samples across one night.
	CurveSamples = 240

	// CurveSpan is the noon-to-noon window covered by an AltitudeCurve.
	CurveSpan = 24 * time.Hour

	// CurveStep is the time between curve samples.
	CurveStep = CurveSpan / CurveSamples

	// MinElevation is the geometric horizon used for circumpolarity.
	MinElevation = 0.0

	// AstronomicalDarkAltitude is the Sun altitude below which the sky is fully dark.
	AstronomicalDarkAltitude = -18.0
)

// CurveOptions tunes CalculateAltitudeCurve.
type CurveOptions struct {
	// MinAltitude is the rise/set threshold in degrees.
	MinAltitude float64

	// Horizon, when set, adds a per-sample obstruction altitude.
	Horizon HorizonProfile

	// DarkSunAltitude is the Sun altitude that counts as dark.
	// Zero selects AstronomicalDarkAltitude.
	DarkSunAltitude float64
}

func (o CurveOptions) darkLimit() float64 {
	if o.DarkSunAltitude == 0 {
		return AstronomicalDarkAltitude
	}
	return o.DarkSunAltitude
}

// AltitudeSample is one point of a night's altitude sweep.
type AltitudeSample struct {
	Time            time.Time `json:"time"`
	Altitude        float64   `json:"altitude"`
	Azimuth         float64   `json:"azimuth"`
	HorizonAltitude float64   `json:"horizon_altitude"`
	SunAltitude     float64   `json:"sun_altitude"`
}

// AltitudeCurve is the full-night altitude sweep of a target.
type AltitudeCurve struct {
	Reference       time.Time        `json:"reference"`
	Samples         []AltitudeSample `json:"samples"`
	MaxAltitude     float64          `json:"max_altitude"`
	MaxAltitudeTime time.Time        `json:"max_altitude_time"`
	TransitAltitude float64          `json:"transit_altitude"`
	IsCircumpolar   bool             `json:"is_circumpolar"`
	NeverRises      bool             `json:"never_rises"`
	Rise            time.Time        `json:"rise,omitzero"`
	Set             time.Time        `json:"set,omitzero"`

	MoonSeparation   float64 `json:"moon_separation"`
	MoonIllumination float64 `json:"moon_illumination"`

	darkLimit float64
}

// TargetVisibility summarizes where and when a target is observable.
type TargetVisibility struct {
	Altitude         float64   `json:"altitude"`
	Azimuth          float64   `json:"azimuth"`
	RiseTime         time.Time `json:"rise_time,omitzero"`
	TransitTime      time.Time `json:"transit_time,omitzero"`
	SetTime          time.Time `json:"set_time,omitzero"`
	TransitAltitude  float64   `json:"transit_altitude"`
	IsCircumpolar    bool      `json:"is_circumpolar"`
	NeverRises       bool      `json:"never_rises"`
	DarkImagingHours float64   `json:"dark_imaging_hours"`
}

// CulminationAltitudes returns the upper and lower culmination altitudes of
// a declination seen from a latitude.
func CulminationAltitudes(latDeg, decDeg float64) (upper, lower float64) {
	upper = 90 - math.Abs(latDeg-decDeg)
	lower = math.Abs(latDeg+decDeg) - 90
	return upper, lower
}

// CalculateAltitudeCurve samples a target's altitude across the night that
// contains t. The window starts at NoonReference(t) and spans 24 hours.
// Non-finite inputs propagate as NaN altitudes.
func CalculateAltitudeCurve(target Target, obs Observer, t time.Time, opts CurveOptions) AltitudeCurve {
	ref := NoonReference(t)

	curve := AltitudeCurve{
		Reference:   ref,
		Samples:     make([]AltitudeSample, CurveSamples),
		MaxAltitude: math.Inf(-1),
		darkLimit:   opts.darkLimit(),
	}

	maxIdx := 0
	for i := range curve.Samples {
		st := ref.Add(time.Duration(i) * CurveStep)
		lst := LocalSiderealTime(obs.LonDeg, st)
		ha := HourAngle(lst, target.RAdeg)
		alt := CalculateAltitude(ha, obs.LatDeg, target.DecDeg)
		az := CalculateAzimuth(ha, alt, obs.LatDeg, target.DecDeg)

		s := AltitudeSample{
			Time:        st,
			Altitude:    alt,
			Azimuth:     az,
			SunAltitude: SunAltitude(obs, st),
		}
		if opts.Horizon != nil {
			s.HorizonAltitude = opts.Horizon.Altitude(az)
		}
		curve.Samples[i] = s

		if alt > curve.MaxAltitude {
			curve.MaxAltitude = alt
			maxIdx = i
		}
	}

	curve.MaxAltitudeTime, curve.MaxAltitude = refineMaxAltitude(curve.Samples, maxIdx)
	upper, lower := CulminationAltitudes(obs.LatDeg, target.DecDeg)
	curve.TransitAltitude = upper
	curve.IsCircumpolar = lower > MinElevation
	curve.NeverRises = upper <= MinElevation

	if !curve.NeverRises && curve.Samples[maxIdx].Altitude > opts.MinAltitude {
		curve.Rise, curve.Set = findCrossings(curve.Samples, maxIdx, opts.MinAltitude)
	}

	curve.MoonSeparation = MoonSeparation(target.RAdeg, target.DecDeg, t)
	curve.MoonIllumination = MoonIllumination(MoonPhase(t))

	return curve
}

// CalculateVisibility computes the visibility summary of a target for the
// night containing t.
func CalculateVisibility(target Target, obs Observer, t time.Time, opts CurveOptions) (TargetVisibility, error) {
	if err := target.Validate(); err != nil {
		return TargetVisibility{}, err
	}
	if err := obs.Validate(); err != nil {
		return TargetVisibility{}, err
	}
	if err := CheckFinite("min_altitude", opts.MinAltitude); err != nil {
		return TargetVisibility{}, err
	}

	curve := CalculateAltitudeCurve(target, obs, t, opts)
	return curve.Summary(target, obs, t, opts.MinAltitude), nil
}

// Summary condenses a curve computed for target into its visibility at t.
func (c *AltitudeCurve) Summary(target Target, obs Observer, t time.Time, minAlt float64) TargetVisibility {
	alt, az := Horizontal(target, obs, t)
	vis := TargetVisibility{
		Altitude:         alt,
		Azimuth:          az,
		RiseTime:         c.Rise,
		SetTime:          c.Set,
		TransitAltitude:  c.TransitAltitude,
		IsCircumpolar:    c.IsCircumpolar,
		NeverRises:       c.NeverRises,
		DarkImagingHours: c.HoursAbove(minAlt, true),
	}
	if !c.NeverRises {
		vis.TransitTime = TransitTime(target.RAdeg, obs.LonDeg, t)
	}
	return vis
}

// Above reports whether a sample clears both minAlt and the obstruction
// profile. Exactly on the horizon is not visible.
func (s AltitudeSample) Above(minAlt float64) bool {
	return s.Altitude > minAlt && s.Altitude > s.HorizonAltitude
}

// IsDark reports whether the sample falls in darkness for the curve's limit.
func (c *AltitudeCurve) IsDark(s AltitudeSample) bool {
	return s.SunAltitude <= c.darkLimit
}

// HoursAbove returns the total hours the target spends above minAlt and the
// custom horizon, optionally counting only dark samples.
func (c *AltitudeCurve) HoursAbove(minAlt float64, darkOnly bool) float64 {
	n := 0
	for _, s := range c.Samples {
		if !s.Above(minAlt) {
			continue
		}
		if darkOnly && !c.IsDark(s) {
			continue
		}
		n++
	}
	return float64(n) * CurveStep.Hours()
}

// LongestWindow returns the longest contiguous run of samples satisfying
// keep. End is one step past the last kept sample.
func (c *AltitudeCurve) LongestWindow(keep func(AltitudeSample) bool) (start, end time.Time, ok bool) {
	bestStart, bestLen := -1, 0
	runStart := -1
	for i, s := range c.Samples {
		if keep(s) {
			if runStart < 0 {
				runStart = i
			}
			if n := i - runStart + 1; n > bestLen {
				bestStart, bestLen = runStart, n
			}
			continue
		}
		runStart = -1
	}
	if bestLen == 0 {
		return time.Time{}, time.Time{}, false
	}
	start = c.Samples[bestStart].Time
	end = c.Samples[bestStart+bestLen-1].Time.Add(CurveStep)
	return start, end, true
}

// DarkWindow returns the longest dark stretch with the target above minAlt.
func (c *AltitudeCurve) DarkWindow(minAlt float64) (start, end time.Time, ok bool) {
	return c.LongestWindow(func(s AltitudeSample) bool {
		return s.Above(minAlt) && c.IsDark(s)
	})
}

// IsVisibleFor reports whether the target stays above minAlt in darkness
// for at least minHours without interruption.
func (c *AltitudeCurve) IsVisibleFor(minAlt, minHours float64) bool {
	start, end, ok := c.DarkWindow(minAlt)
	return ok && end.Sub(start).Hours() >= minHours
}

// AltitudeAt interpolates the curve at t. Returns NaN outside the window.
func (c *AltitudeCurve) AltitudeAt(t time.Time) float64 {
	if len(c.Samples) == 0 || t.Before(c.Samples[0].Time) {
		return math.NaN()
	}
	i := int(t.Sub(c.Samples[0].Time) / CurveStep)
	if i >= len(c.Samples)-1 {
		if i == len(c.Samples)-1 {
			return c.Samples[i].Altitude
		}
		return math.NaN()
	}
	a, b := c.Samples[i], c.Samples[i+1]
	frac := float64(t.Sub(a.Time)) / float64(CurveStep)
	return a.Altitude + (b.Altitude-a.Altitude)*frac
}

// findCrossings walks outward from the maximum to the first samples at or
// below threshold on each side. A side that never crosses stays zero.
func findCrossings(samples []AltitudeSample, maxIdx int, threshold float64) (rise, set time.Time) {
	for i := maxIdx; i > 0; i-- {
		prev, curr := samples[i-1], samples[i]
		if prev.Altitude <= threshold && curr.Altitude > threshold {
			rise = interpolateCrossing(prev.Time, curr.Time, prev.Altitude, curr.Altitude, threshold)
			break
		}
	}
	for i := maxIdx; i < len(samples)-1; i++ {
		curr, next := samples[i], samples[i+1]
		if curr.Altitude > threshold && next.Altitude <= threshold {
			set = interpolateCrossing(curr.Time, next.Time, curr.Altitude, next.Altitude, threshold)
			break
		}
	}
	return rise, set
}

// refineMaxAltitude uses quadratic interpolation around the discrete maximum.
func refineMaxAltitude(samples []AltitudeSample, maxIdx int) (time.Time, float64) {
	maxSample := samples[maxIdx]
	if maxIdx == 0 || maxIdx == len(samples)-1 {
		return maxSample.Time, maxSample.Altitude
	}

	// Parabola through t = -1, 0, +1
	y0 := samples[maxIdx-1].Altitude
	y1 := maxSample.Altitude
	y2 := samples[maxIdx+1].Altitude

	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2

	// Maximum at t = -b/(2a), but only if parabola opens downward (a < 0)
	if a >= 0 {
		return maxSample.Time, maxSample.Altitude
	}

	tMax := -b / (2 * a)
	if tMax < -1 {
		tMax = -1
	} else if tMax > 1 {
		tMax = 1
	}

	refined := maxSample.Time.Add(time.Duration(float64(CurveStep) * tMax))
	return refined, a*tMax*tMax + b*tMax + c
}

// interpolateCrossing finds the time when elevation crosses a threshold.
func interpolateCrossing(t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	if math.Abs(el2-el1) < 0.0001 {
		return t1
	}

	// Linear interpolation: find t where el = threshold
	fraction := (threshold - el1) / (el2 - el1)

	// Clamp to valid range
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}

// ElevationTier categorizes elevation for UI display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // Below horizon
	ElevationLow                         // 0-30 degrees
	ElevationMedium                      // 30-60 degrees
	ElevationHigh                        // 60+ degrees
)

// GetElevationTier returns the tier for a given elevation.
func GetElevationTier(elDeg float64) ElevationTier {
	switch {
	case elDeg <= 0:
		return ElevationNone
	case elDeg < 30:
		return ElevationLow
	case elDeg < 60:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
