package imaging

import (
	"math"
	"time"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// arcminPerRadian is the small-angle conversion used for FOV estimates.
const arcminPerRadian = 3438

// FieldOfView returns the small-angle field of view in arcminutes for a
// sensor dimension and focal length, both in millimetres.
func FieldOfView(sensorMM, focalMM float64) float64 {
	if focalMM <= 0 {
		return 0
	}
	return sensorMM / focalMM * arcminPerRadian
}

// FieldOfViewExact is the 2·atan form, accurate for wide lenses.
func FieldOfViewExact(sensorMM, focalMM float64) float64 {
	if focalMM <= 0 {
		return 0
	}
	return astro.RadToDeg(2*math.Atan(sensorMM/(2*focalMM))) * 60
}

// ImageScale returns arcseconds per pixel for a pixel size in microns.
func ImageScale(pixelUM, focalMM float64) float64 {
	if focalMM <= 0 {
		return 0
	}
	return 206.265 * pixelUM / focalMM
}

// FRatio returns focal length over aperture, 0 without an aperture.
func FRatio(focalMM, apertureMM float64) float64 {
	if apertureMM <= 0 {
		return 0
	}
	return focalMM / apertureMM
}

// FOV summarizes an imaging train.
type FOV struct {
	WidthArcmin  float64 `json:"width_arcmin"`
	HeightArcmin float64 `json:"height_arcmin"`
	ImageScale   float64 `json:"image_scale"`
	FRatio       float64 `json:"f_ratio"`
}

// CalculateFOV uses the small-angle field of view for each sensor side.
func CalculateFOV(sensorWidthMM, sensorHeightMM, focalMM, pixelUM, apertureMM float64) FOV {
	return FOV{
		WidthArcmin:  FieldOfView(sensorWidthMM, focalMM),
		HeightArcmin: FieldOfView(sensorHeightMM, focalMM),
		ImageScale:   ImageScale(pixelUM, focalMM),
		FRatio:       FRatio(focalMM, apertureMM),
	}
}

// Shorter returns the smaller frame side in arcminutes.
func (f FOV) Shorter() float64 { return math.Min(f.WidthArcmin, f.HeightArcmin) }

// Mosaic is the sky area covered by a grid of overlapping panels.
type Mosaic struct {
	Panels       int     `json:"panels"`
	PanelWidth   float64 `json:"panel_width_deg"`
	PanelHeight  float64 `json:"panel_height_deg"`
	TotalWidth   float64 `json:"total_width_deg"`
	TotalHeight  float64 `json:"total_height_deg"`
	OverlapRatio float64 `json:"overlap_ratio"`
}

// MosaicCoverage returns the coverage of a rows×cols mosaic with the given
// overlap percentage between neighbouring panels.
func MosaicCoverage(sensorWidthMM, sensorHeightMM, focalMM float64, rows, cols int, overlapPct float64) Mosaic {
	rows, cols = max(rows, 0), max(cols, 0)
	o := math.Min(1, math.Max(0, overlapPct/100))
	w := FieldOfViewExact(sensorWidthMM, focalMM) / 60
	h := FieldOfViewExact(sensorHeightMM, focalMM) / 60

	m := Mosaic{
		Panels:       rows * cols,
		PanelWidth:   w,
		PanelHeight:  h,
		OverlapRatio: o,
	}
	if m.Panels == 0 {
		return m
	}
	m.TotalWidth = w*float64(cols)*(1-o) + w*o
	m.TotalHeight = h*float64(rows)*(1-o) + h*o
	return m
}

// FOVFit classifies how an object fills the frame.
type FOVFit string

const (
	TooSmall   FOVFit = "too_small"
	GoodFit    FOVFit = "good"
	PerfectFit FOVFit = "perfect"
	TightFit   FOVFit = "tight"
	TooLarge   FOVFit = "too_large"
	FitUnknown FOVFit = "unknown"
)

// ClassifyFOVFit buckets object size over field of view: under 15% is too
// small, under 30% good, under 60% perfect, up to 100% tight.
func ClassifyFOVFit(objectArcmin, fovArcmin float64) FOVFit {
	if fovArcmin <= 0 || objectArcmin <= 0 {
		return FitUnknown
	}
	r := objectArcmin / fovArcmin
	switch {
	case r < 0.15:
		return TooSmall
	case r < 0.30:
		return GoodFit
	case r < 0.60:
		return PerfectFit
	case r <= 1:
		return TightFit
	default:
		return TooLarge
	}
}

// Weight rates a fit from 0 to 1; a perfect fit is 1.
func (f FOVFit) Weight() float64 {
	switch f {
	case PerfectFit:
		return 1
	case GoodFit:
		return 0.8
	case TightFit:
		return 0.7
	case TooSmall:
		return 0.4
	case TooLarge:
		return 0.3
	default:
		return 0.5
	}
}

// Resolution classifies sampling against the seeing disc.
type Resolution string

const (
	Undersampled Resolution = "undersampled"
	WellSampled  Resolution = "well_sampled"
	Oversampled  Resolution = "oversampled"
)

// ClassifyResolution compares image scale with seeing (both arcseconds).
// Between 1.5 and 3.5 pixels across the seeing FWHM is well sampled.
func ClassifyResolution(imageScale, seeingArcsec float64) Resolution {
	if imageScale <= 0 {
		return Oversampled
	}
	px := seeingArcsec / imageScale
	switch {
	case px < 1.5:
		return Undersampled
	case px > 3.5:
		return Oversampled
	default:
		return WellSampled
	}
}

// UnguidedSubLimit caps sub-exposures without autoguiding.
const UnguidedSubLimit = 120 * time.Second

// ExposureInput describes a target and the imaging setup.
type ExposureInput struct {
	Magnitude         *float64
	SurfaceBrightness *float64
	Bortle            int
	FRatio            float64
	Guided            bool
}

// Exposure is a suggested acquisition plan.
type Exposure struct {
	Sub         time.Duration `json:"sub"`
	Subs        int           `json:"subs"`
	Integration time.Duration `json:"integration"`
}

// EstimateExposure suggests a sub length and total integration. Subs scale
// with the square of the f-ratio and shorten under brighter skies; total
// integration grows with target faintness and light pollution.
func EstimateExposure(in ExposureInput) Exposure {
	bortle := clampBortle(in.Bortle)

	fr := in.FRatio
	if fr <= 0 {
		fr = 5
	}
	sub := 120 * (fr / 5) * (fr / 5) * math.Pow(2, float64(5-bortle)/2)
	sub = math.Min(600, math.Max(10, sub))
	if !in.Guided {
		sub = math.Min(sub, UnguidedSubLimit.Seconds())
	}

	hours := 2.0
	switch {
	case in.SurfaceBrightness != nil:
		hours = 1 + math.Max(0, *in.SurfaceBrightness-18)
	case in.Magnitude != nil:
		hours = 1 + math.Max(0, *in.Magnitude-4)*0.5
	}
	hours *= 1 + float64(bortle-1)*0.25
	hours = math.Min(40, math.Max(1, hours))

	subs := int(math.Ceil(hours * 3600 / sub))
	subDur := time.Duration(sub * float64(time.Second))
	return Exposure{
		Sub:         subDur,
		Subs:        subs,
		Integration: time.Duration(subs) * subDur,
	}
}

// MeridianCrossing returns the first instant in [start, end] at which the
// hour angle of an object at raDeg crosses zero for an observer at lonDeg.
func MeridianCrossing(raDeg, lonDeg float64, start, end time.Time) (time.Time, bool) {
	if end.Before(start) {
		return time.Time{}, false
	}
	t := astro.TransitTime(raDeg, lonDeg, start)
	if t.After(end) {
		return time.Time{}, false
	}
	return t, true
}
