package astro

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian Date of the J2000.0 epoch.
	J2000 = 2451545.0

	// unixEpochJD is the Julian Date of 1970-01-01T00:00:00Z.
	unixEpochJD = 2440587.5

	// siderealToSolar converts a sidereal interval to mean solar time.
	siderealToSolar = 0.9972695663
)

// JulianDate calculates the Julian Date for a given time.
func JulianDate(t time.Time) float64 {
	// Convert to UTC
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	// Time of day as fraction
	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// Adjust for January/February (treat as months 13/14 of previous year)
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// GreenwichSiderealTime calculates GMST in degrees for a given UTC time.
// Uses the IAU 1982 formula based on Julian Date.
func GreenwichSiderealTime(t time.Time) float64 {
	jd := JulianDate(t)

	// Julian centuries since J2000.0
	T := (jd - J2000) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return NormalizeDegrees(gmst)
}

// LocalSiderealTime returns the Local Sidereal Time in degrees [0,360)
// for an observer longitude (east positive). Non-finite longitude yields NaN.
func LocalSiderealTime(lonDeg float64, t time.Time) float64 {
	return NormalizeDegrees(GreenwichSiderealTime(t) + lonDeg)
}

// HourAngle returns LST - RA normalized to [0,360).
func HourAngle(lstDeg, raDeg float64) float64 {
	return NormalizeDegrees(lstDeg - raDeg)
}

// NormalizeHourAngle maps an hour angle in degrees into (-180, 180].
// Negative values are east of the meridian (rising).
func NormalizeHourAngle(haDeg float64) float64 {
	ha := NormalizeDegrees(haDeg)
	if ha > 180 {
		ha -= 360
	}
	return ha
}

// DateToDouble maps a time onto a continuous day number (the Julian Date),
// so arithmetic across month and year boundaries stays exact.
func DateToDouble(t time.Time) float64 {
	// Unix seconds keep sub-microsecond precision that the calendar formula
	// in JulianDate loses to float rounding of the day fraction.
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return unixEpochJD + secs/86400
}

// DoubleToDate is the inverse of DateToDouble. The result is in UTC.
func DoubleToDate(d float64) time.Time {
	secs := (d - unixEpochJD) * 86400
	whole := math.Floor(secs)
	ns := math.Round((secs - whole) * 1e9)
	return time.Unix(int64(whole), int64(ns)).UTC()
}

// NoonReference picks the local noon that starts the night containing t:
// the previous day's noon before 12:00, otherwise the same day's noon.
func NoonReference(t time.Time) time.Time {
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
	if t.Hour() < 12 {
		noon = noon.AddDate(0, 0, -1)
	}
	return noon
}

// TransitTime returns the next meridian transit of an object with the given
// RA at or after t. The result is always within 24 hours of t.
func TransitTime(raDeg, lonDeg float64, t time.Time) time.Time {
	lstHours := DegToHours(LocalSiderealTime(lonDeg, t))
	hours := DegToHours(NormalizeDegrees(raDeg)) - lstHours
	if hours < 0 {
		hours += 24
	}
	return t.Add(time.Duration(hours * siderealToSolar * float64(time.Hour)))
}
