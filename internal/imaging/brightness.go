package imaging

import "math"

// skyBrightness is the zenith sky surface brightness (mag/arcsec²) for
// Bortle classes 1 through 9.
var skyBrightness = [...]float64{21.99, 21.89, 21.69, 20.99, 20.29, 19.5, 18.95, 18.38, 17.8}

// SurfaceBrightness returns the mean surface brightness (mag/arcsec²) of an
// elliptical object of total magnitude mag with semi-axes a and b in
// arcseconds. Point sources (a or b <= 0) keep the point magnitude.
func SurfaceBrightness(mag, aArcsec, bArcsec float64) float64 {
	if aArcsec <= 0 || bArcsec <= 0 {
		return mag
	}
	return mag + 2.5*math.Log10(math.Pi*aArcsec*bArcsec)
}

// SurfaceBrightnessFromSize takes full axis lengths in arcminutes, as
// catalogs list them.
func SurfaceBrightnessFromSize(mag, majorArcmin, minorArcmin float64) float64 {
	return SurfaceBrightness(mag, majorArcmin*30, minorArcmin*30)
}

// SkyBrightness returns the sky surface brightness for a Bortle class.
// Classes outside 1..9 are clamped.
func SkyBrightness(bortle int) float64 {
	return skyBrightness[clampBortle(bortle)-1]
}

func clampBortle(bortle int) int {
	return min(max(bortle, 1), 9)
}

// ContrastRatio is the object-to-sky flux ratio for two surface
// brightnesses. Values above 1 mean the object outshines the sky.
func ContrastRatio(objectSB, skySB float64) float64 {
	return math.Pow(10, (skySB-objectSB)/2.5)
}

// ContrastThreshold is the contrast an object of the given size needs to be
// picked out of the background. Larger objects need less.
func ContrastThreshold(sizeArcmin float64) float64 {
	if sizeArcmin <= 0 {
		return 1
	}
	return 0.1 / math.Sqrt(sizeArcmin)
}

// IsDetectable reports whether an object clears the contrast threshold
// against the sky of the given Bortle class.
func IsDetectable(objectSB float64, bortle int, sizeArcmin float64) bool {
	return ContrastRatio(objectSB, SkyBrightness(bortle)) >= ContrastThreshold(sizeArcmin)
}
