// Package imaging scores how well a deep-sky object can be photographed:
// atmosphere, sky glow, moonlight, season and optics.
package imaging

import (
	"math"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// Quality is a coarse rating shared by the airmass and feasibility bands.
type Quality string

const (
	Excellent Quality = "excellent"
	Good      Quality = "good"
	Fair      Quality = "fair"
	Poor      Quality = "poor"
	Bad       Quality = "bad"
)

// DefaultExtinction is a typical V-band extinction coefficient (mag/airmass)
// for a clear suburban site.
const DefaultExtinction = 0.2

// Airmass returns the relative atmospheric path length at the given
// altitude (Pickering 2002). It is +Inf at or below the horizon and exactly
// 1 at the zenith.
func Airmass(altDeg float64) float64 {
	switch {
	case math.IsNaN(altDeg):
		return math.NaN()
	case altDeg <= 0:
		return math.Inf(1)
	case altDeg >= 90:
		return 1
	}
	x := 1 / math.Sin(astro.DegToRad(altDeg+244/(165+47*math.Pow(altDeg, 1.1))))
	return math.Max(1, x)
}

// AirmassQuality buckets an airmass value.
func AirmassQuality(x float64) Quality {
	switch {
	case x <= 1.2:
		return Excellent
	case x <= 1.5:
		return Good
	case x <= 2.0:
		return Fair
	case x <= 3.0:
		return Poor
	default:
		return Bad
	}
}

// Extinction returns the magnitudes lost relative to the zenith for
// coefficient k (mag/airmass).
func Extinction(airmass, k float64) float64 {
	if airmass < 1 {
		airmass = 1
	}
	return k * (airmass - 1)
}
