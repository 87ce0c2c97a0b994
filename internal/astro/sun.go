package astro

import (
	"math"
	"time"
)

// SunPosition returns the Sun's apparent right ascension and declination
// from the low-precision Almanac series, good to about 0.01°.
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	jd := JulianDate(t)
	c := (jd - J2000) / 36525

	meanLon := NormalizeDegrees(280.46646 + c*(36000.76983+c*0.0003032))
	anomaly := DegToRad(NormalizeDegrees(357.52911 + c*(35999.05029-c*0.0001537)))
	center := (1.914602-c*(0.004817+c*0.000014))*math.Sin(anomaly) +
		(0.019993-c*0.000101)*math.Sin(2*anomaly) +
		0.000289*math.Sin(3*anomaly)

	// Aberration and nutation in longitude and obliquity.
	node := DegToRad(125.04 - 1934.136*c)
	lambda := DegToRad(meanLon + center - 0.00569 - 0.00478*math.Sin(node))
	eps := DegToRad(MeanObliquity(jd) + 0.00256*math.Cos(node))

	raDeg = NormalizeDegrees(RadToDeg(math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda))))
	decDeg = RadToDeg(math.Asin(math.Sin(eps) * math.Sin(lambda)))
	return raDeg, decDeg
}

// SunAltitude returns the Sun's altitude in degrees for an observer at t.
func SunAltitude(obs Observer, t time.Time) float64 {
	ra, dec := SunPosition(t)
	ha := HourAngle(LocalSiderealTime(obs.LonDeg, t), ra)
	return CalculateAltitude(ha, obs.LatDeg, dec)
}

// SunSeparation returns the angle in degrees between the Sun and a target.
func SunSeparation(targetRA, targetDec float64, t time.Time) float64 {
	sunRA, sunDec := SunPosition(t)
	return AngularSeparation(sunRA, sunDec, targetRA, targetDec)
}

// AngularSeparation returns the great-circle distance in degrees between
// two equatorial positions, using the haversine form that stays accurate
// for close pairs such as M81 and M82.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	d1, d2 := DegToRad(dec1), DegToRad(dec2)
	sinDDec := math.Sin((d2 - d1) / 2)
	sinDRA := math.Sin(DegToRad(ra2-ra1) / 2)

	h := sinDDec*sinDDec + math.Cos(d1)*math.Cos(d2)*sinDRA*sinDRA
	return RadToDeg(2 * math.Asin(math.Sqrt(math.Min(h, 1))))
}
