package astro

import (
	"fmt"
	"math"
	"time"
)

// Sun altitudes that bound each twilight stage (degrees).
const (
	SunsetAltitude       = -0.8333 // refraction plus solar semi-diameter
	CivilAltitude        = -6.0
	NauticalAltitude     = -12.0
	AstronomicalAltitude = -18.0
)

const (
	twilightStep       = 10 * time.Minute
	twilightBisections = 20
)

// Twilight holds the dusk/dawn instants of one night. A zero time means the
// Sun never crosses that altitude in the 24 hours after Reference.
type Twilight struct {
	Reference        time.Time `json:"reference"`
	Sunset           time.Time `json:"sunset,omitzero"`
	Sunrise          time.Time `json:"sunrise,omitzero"`
	CivilDusk        time.Time `json:"civil_dusk,omitzero"`
	CivilDawn        time.Time `json:"civil_dawn,omitzero"`
	NauticalDusk     time.Time `json:"nautical_dusk,omitzero"`
	NauticalDawn     time.Time `json:"nautical_dawn,omitzero"`
	AstronomicalDusk time.Time `json:"astronomical_dusk,omitzero"`
	AstronomicalDawn time.Time `json:"astronomical_dawn,omitzero"`
	IsPolarDay       bool      `json:"is_polar_day"`
	IsPolarNight     bool      `json:"is_polar_night"`
}

// MeanSolarZone returns a fixed zone at the observer's mean solar time, so
// local noon falls near solar noon regardless of civil time zones.
func MeanSolarZone(lonDeg float64) *time.Location {
	offset := int(math.Round(lonDeg / 15 * 3600))
	return time.FixedZone(fmt.Sprintf("LMT%+.1f", lonDeg), offset)
}

// CalculateTwilight finds sunset, sunrise and the three twilight boundaries
// for the night starting at NoonReference(t).
func CalculateTwilight(obs Observer, t time.Time) Twilight {
	ref := NoonReference(t)
	tw := Twilight{Reference: ref}

	n := int(24*time.Hour/twilightStep) + 1
	times := make([]time.Time, n)
	alts := make([]float64, n)
	minAlt, maxAlt := math.Inf(1), math.Inf(-1)
	for i := range times {
		times[i] = ref.Add(time.Duration(i) * twilightStep)
		alts[i] = SunAltitude(obs, times[i])
		minAlt = math.Min(minAlt, alts[i])
		maxAlt = math.Max(maxAlt, alts[i])
	}

	tw.IsPolarDay = minAlt > SunsetAltitude
	tw.IsPolarNight = maxAlt < SunsetAltitude

	find := func(threshold float64) (dusk, dawn time.Time) {
		duskIdx := -1
		for i := 1; i < n; i++ {
			if alts[i-1] > threshold && alts[i] <= threshold {
				dusk = bisectSunCrossing(obs, times[i-1], times[i], threshold)
				duskIdx = i
				break
			}
		}
		from := 1
		if duskIdx > 0 {
			from = duskIdx
		}
		for i := from; i < n; i++ {
			if alts[i-1] <= threshold && alts[i] > threshold {
				dawn = bisectSunCrossing(obs, times[i-1], times[i], threshold)
				break
			}
		}
		return dusk, dawn
	}

	tw.Sunset, tw.Sunrise = find(SunsetAltitude)
	tw.CivilDusk, tw.CivilDawn = find(CivilAltitude)
	tw.NauticalDusk, tw.NauticalDawn = find(NauticalAltitude)
	tw.AstronomicalDusk, tw.AstronomicalDawn = find(AstronomicalAltitude)

	return tw
}

// DarkWindow returns the astronomical night, falling back to nautical
// twilight at latitudes where the Sun never reaches -18°.
func (tw Twilight) DarkWindow() (start, end time.Time, ok bool) {
	if !tw.AstronomicalDusk.IsZero() && !tw.AstronomicalDawn.IsZero() {
		return tw.AstronomicalDusk, tw.AstronomicalDawn, true
	}
	if !tw.NauticalDusk.IsZero() && !tw.NauticalDawn.IsZero() {
		return tw.NauticalDusk, tw.NauticalDawn, true
	}
	if tw.IsPolarNight {
		return tw.Reference, tw.Reference.Add(24 * time.Hour), true
	}
	return time.Time{}, time.Time{}, false
}

// DarkHours returns the length of DarkWindow in hours.
func (tw Twilight) DarkHours() float64 {
	start, end, ok := tw.DarkWindow()
	if !ok {
		return 0
	}
	return end.Sub(start).Hours()
}

// bisectSunCrossing narrows a bracketed crossing of the Sun altitude.
func bisectSunCrossing(obs Observer, lo, hi time.Time, threshold float64) time.Time {
	loAbove := SunAltitude(obs, lo) > threshold
	for range twilightBisections {
		mid := lo.Add(hi.Sub(lo) / 2)
		if (SunAltitude(obs, mid) > threshold) == loAbove {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo.Add(hi.Sub(lo) / 2)
}
