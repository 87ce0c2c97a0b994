package astro

import (
	"math"
	"time"
)

const (
	// SynodicMonth is the mean length of a lunation in days.
	SynodicMonth = 29.530588853

	// knownNewMoonJD is the new moon of 2000-01-06 14:24 TT.
	knownNewMoonJD = 2451550.1
)

// moonTerm is one periodic term of the lunar series: coefficient and the
// multiples of D, M, M' and F in its argument.
type moonTerm struct {
	coef        float64
	d, m, mp, f float64
}

// Leading terms of Meeus, Astronomical Algorithms ch. 47.
var moonLonTerms = []moonTerm{
	{6288774, 0, 0, 1, 0},
	{1274027, 2, 0, -1, 0},
	{658314, 2, 0, 0, 0},
	{213618, 0, 0, 2, 0},
	{-185116, 0, 1, 0, 0},
	{-114332, 0, 0, 0, 2},
	{58793, 2, 0, -2, 0},
	{57066, 2, -1, -1, 0},
	{53322, 2, 0, 1, 0},
	{45758, 2, -1, 0, 0},
	{-40923, 0, 1, -1, 0},
	{-34720, 1, 0, 0, 0},
	{-30383, 0, 1, 1, 0},
	{15327, 2, 0, 0, -2},
}

var moonLatTerms = []moonTerm{
	{5128122, 0, 0, 0, 1},
	{280602, 0, 0, 1, 1},
	{277693, 0, 0, 1, -1},
	{173237, 2, 0, 0, -1},
	{55413, 2, 0, -1, 1},
	{46271, 2, 0, -1, -1},
	{32573, 2, 0, 0, 1},
	{17198, 0, 0, 2, 1},
}

var moonDistTerms = []moonTerm{
	{-20905355, 0, 0, 1, 0},
	{-3699111, 2, 0, -1, 0},
	{-2955968, 2, 0, 0, 0},
	{-569925, 0, 0, 2, 0},
	{48888, 0, 1, 0, 0},
	{-3149, 0, 0, 0, 2},
	{246158, 2, 0, -2, 0},
	{-152138, 2, -1, -1, 0},
}

// MoonPosition returns the geocentric RA/Dec of the Moon in degrees and its
// distance in km. Arc-minute accuracy, enough for separation scoring.
func MoonPosition(t time.Time) (raDeg, decDeg, distKm float64) {
	jd := JulianDate(t)
	T := (jd - J2000) / 36525.0
	T2 := T * T
	T3 := T2 * T

	lp := NormalizeDegrees(218.3164477 + 481267.88123421*T - 0.0015786*T2 + T3/538841.0)
	mp := DegToRad(NormalizeDegrees(134.9633964 + 477198.8675055*T + 0.0087414*T2 + T3/69699.0))
	m := DegToRad(NormalizeDegrees(357.5291092 + 35999.0502909*T - 0.0001536*T2))
	d := DegToRad(NormalizeDegrees(297.8501921 + 445267.1114034*T - 0.0018819*T2 + T3/545868.0))
	f := DegToRad(NormalizeDegrees(93.2720950 + 483202.0175233*T - 0.0036539*T2))

	arg := func(k moonTerm) float64 {
		return k.d*d + k.m*m + k.mp*mp + k.f*f
	}

	var sumL, sumB, sumR float64
	for _, k := range moonLonTerms {
		sumL += k.coef * math.Sin(arg(k))
	}
	for _, k := range moonLatTerms {
		sumB += k.coef * math.Sin(arg(k))
	}
	for _, k := range moonDistTerms {
		sumR += k.coef * math.Cos(arg(k))
	}

	lon := lp + sumL/1e6
	lat := sumB / 1e6
	distKm = 385000.56 + sumR/1000

	raDeg, decDeg = EclipticToEquatorial(lon, lat, MeanObliquity(jd))
	return raDeg, decDeg, distKm
}

// MoonPhase returns the lunation fraction in [0,1): 0 new, 0.5 full.
func MoonPhase(t time.Time) float64 {
	lunations := (JulianDate(t) - knownNewMoonJD) / SynodicMonth
	phase := lunations - math.Floor(lunations)
	if phase >= 1 {
		phase = 0
	}
	return phase
}

// MoonIllumination converts a phase fraction to illuminated percent [0,100].
func MoonIllumination(phase float64) float64 {
	return (1 - math.Cos(2*math.Pi*phase)) / 2 * 100
}

// MoonAge returns days since new moon for a phase fraction.
func MoonAge(phase float64) float64 {
	return phase * SynodicMonth
}

// MoonPhaseName names the phase in eight buckets.
func MoonPhaseName(phase float64) string {
	switch {
	case phase < 0.0625:
		return "New Moon"
	case phase < 0.1875:
		return "Waxing Crescent"
	case phase < 0.3125:
		return "First Quarter"
	case phase < 0.4375:
		return "Waxing Gibbous"
	case phase < 0.5625:
		return "Full Moon"
	case phase < 0.6875:
		return "Waning Gibbous"
	case phase < 0.8125:
		return "Last Quarter"
	case phase < 0.9375:
		return "Waning Crescent"
	default:
		return "New Moon"
	}
}

// MoonSeparation returns the angular distance in degrees between a target
// and the Moon at t.
func MoonSeparation(targetRA, targetDec float64, t time.Time) float64 {
	ra, dec, _ := MoonPosition(t)
	return AngularSeparation(ra, dec, targetRA, targetDec)
}

// MoonAltitude returns the Moon's altitude in degrees for an observer at t.
func MoonAltitude(obs Observer, t time.Time) float64 {
	ra, dec, _ := MoonPosition(t)
	ha := HourAngle(LocalSiderealTime(obs.LonDeg, t), ra)
	return CalculateAltitude(ha, obs.LatDeg, dec)
}
