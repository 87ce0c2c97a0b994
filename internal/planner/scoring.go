package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/catalog"
	"github.com/litescript/ls-skyplan/internal/imaging"
)

const (
	// Altitude at which the altitude sub-score saturates.
	fullAltitude = 70.0
	// Dark window length at which the duration sub-score saturates.
	fullWindow = 6 * time.Hour
	// Moon altitude samples across the imaging window.
	moonStep = 30 * time.Minute
	// Panel overlap used to size mosaics.
	mosaicOverlapPct = 20.0
	maxMosaicSide    = 6
)

// typeEase rates how forgiving each object type is to image.
var typeEase = map[catalog.ObjectType]float64{
	catalog.OpenCluster:      0.95,
	catalog.GlobularCluster:  0.9,
	catalog.StarCloud:        0.9,
	catalog.Asterism:         0.9,
	catalog.DoubleStar:       0.9,
	catalog.PlanetaryNebula:  0.75,
	catalog.EmissionNebula:   0.7,
	catalog.Galaxy:           0.6,
	catalog.ReflectionNebula: 0.55,
	catalog.SupernovaRemnant: 0.5,
	catalog.GalaxyCluster:    0.4,
	catalog.DarkNebula:       0.3,
}

// scoring computes one recommendation.
type scoring struct {
	engine *Engine
	obj    catalog.DeepSkyObject
	curve  *astro.AltitudeCurve
	window TimeWindow
	months []time.Month
	month  time.Month

	best        astro.AltitudeSample
	breakdown   ScoreBreakdown
	feasibility Feasibility
	reasons     []string
	warnings    []string
	tips        []string
}

func (s *scoring) run() {
	e := s.engine
	s.best = s.peak()
	s.reasons, s.warnings, s.tips = []string{}, []string{}, []string{}

	sb, hasSB := surfaceBrightness(s.obj)
	major, minor, hasSize := s.obj.Size()
	windowHours := s.window.Duration().Hours()

	s.feasibility = Feasibility{
		FOVFit:            imaging.FitUnknown,
		ImageScale:        e.fov.ImageScale,
		ResolutionMatch:   imaging.ClassifyResolution(e.fov.ImageScale, e.cfg.Seeing),
		Airmass:           imaging.Airmass(s.best.Altitude),
		Detectable:        true,
		DarkHoursAboveMin: s.curve.HoursAbove(e.cfg.MinAltitude, true),
	}
	s.feasibility.AirmassQuality = imaging.AirmassQuality(s.feasibility.Airmass)
	if math.IsInf(s.feasibility.Airmass, 0) {
		s.feasibility.Airmass = 0 // below the horizon; JSON has no Inf
	}
	if crossing, ok := imaging.MeridianCrossing(s.obj.RA, e.site.Longitude, s.window.Start, s.window.End); ok && crossing.Before(s.window.End) {
		s.feasibility.MeridianCrossing = crossing
	}
	exp := imaging.ExposureInput{
		Magnitude: s.obj.Magnitude,
		Bortle:    e.site.Bortle,
		FRatio:    e.fov.FRatio,
		Guided:    e.equipment.Guided,
	}
	if hasSB {
		exp.SurfaceBrightness = &sb
	}
	s.feasibility.Exposure = imaging.EstimateExposure(exp)
	s.feasibility.CompositeScore = s.composite(sb, hasSB, major, hasSize)

	b := &s.breakdown
	b.Altitude = MaxAltitudePoints * clamp01(s.best.Altitude/fullAltitude)
	b.Moon = MaxMoonPoints * s.moonFactor()
	b.Seasonal = MaxSeasonalPoints * imaging.SeasonalScore(s.months, s.month)
	b.Size = MaxSizePoints * s.framing(major, minor, hasSize)
	b.Brightness = MaxBrightnessPoints * brightnessFraction(s.obj.Magnitude, sb, hasSB)
	b.Duration = MaxDurationPoints * clamp01(windowHours/fullWindow.Hours())
	b.Equipment = MaxEquipmentPoints * s.equipmentFactor()
	b.LightPollution = MaxLightPollutionPoints * s.skyFactor(sb, hasSB, major, hasSize)
	b.Difficulty = MaxDifficultyPoints * s.ease()
	b.Transit = MaxTransitPoints * clamp01(1-math.Abs(s.hoursFromTransit())/6)

	s.explain(windowHours)
}

// composite rates the window's peak with the comprehensive imaging score.
// Inputs the scorer rejects leave it at 0.
func (s *scoring) composite(sb float64, hasSB bool, major float64, hasSize bool) float64 {
	c := imaging.ComprehensiveConditions{
		Conditions: imaging.Conditions{
			Altitude:         s.best.Altitude,
			MoonIllumination: s.curve.MoonIllumination,
			MoonSeparation:   s.curve.MoonSeparation,
			Magnitude:        s.obj.Magnitude,
			BestMonths:       s.months,
			Month:            s.month,
			HoursFromTransit: s.hoursFromTransit(),
		},
		Bortle:    s.engine.site.Bortle,
		FOVArcmin: s.engine.fov.Shorter(),
	}
	if hasSB {
		c.SurfaceBrightness = &sb
	}
	if hasSize {
		c.SizeArcmin = major
	}
	score, err := imaging.CalculateComprehensiveScore(c)
	if err != nil {
		return 0
	}
	return score.Total
}

// peak returns the highest sample inside the imaging window.
func (s *scoring) peak() astro.AltitudeSample {
	best := astro.AltitudeSample{Altitude: math.Inf(-1)}
	for _, smp := range s.curve.Samples {
		if s.window.Contains(smp.Time) && smp.Altitude > best.Altitude {
			best = smp
		}
	}
	return best
}

func (s *scoring) hoursFromTransit() float64 {
	lst := astro.LocalSiderealTime(s.engine.site.Longitude, s.best.Time)
	return astro.DegToHours(astro.NormalizeHourAngle(astro.HourAngle(lst, s.obj.RA)))
}

// moonFactor is the moon impact weighted by how much of the window the
// Moon spends above the horizon.
func (s *scoring) moonFactor() float64 {
	impact := imaging.MoonImpact(s.curve.MoonIllumination, s.curve.MoonSeparation)
	if math.IsNaN(impact) {
		return 0.5
	}
	obs := s.engine.site.Observer()
	up, n := 0, 0
	for t := s.window.Start; t.Before(s.window.End); t = t.Add(moonStep) {
		if astro.MoonAltitude(obs, t) > 0 {
			up++
		}
		n++
	}
	if n == 0 {
		return impact
	}
	return 1 - (1-impact)*float64(up)/float64(n)
}

func (s *scoring) framing(major, minor float64, ok bool) float64 {
	fov := s.engine.fov
	if !ok || fov.Shorter() <= 0 {
		return imaging.FitUnknown.Weight()
	}
	fit := imaging.ClassifyFOVFit(major, fov.Shorter())
	s.feasibility.FillRatio = major / fov.Shorter()
	if fit == imaging.TooLarge {
		// An object longer than the short side may still fit along the
		// long side of the sensor.
		if panels := s.mosaicPanels(major, minor); panels > 1 {
			s.feasibility.MosaicPanels = panels
		} else {
			fit = imaging.TightFit
		}
	}
	s.feasibility.FOVFit = fit
	return fit.Weight()
}

// mosaicPanels counts the panels needed to cover a major x minor object,
// laying the long axis along the sensor width.
func (s *scoring) mosaicPanels(major, minor float64) int {
	eq := s.engine.equipment
	cover := func(rows, cols int) imaging.Mosaic {
		return imaging.MosaicCoverage(eq.SensorWidth, eq.SensorHeight, eq.FocalLength, rows, cols, mosaicOverlapPct)
	}
	cols := 1
	for cols < maxMosaicSide && cover(1, cols).TotalWidth*60 < major {
		cols++
	}
	rows := 1
	for rows < maxMosaicSide && cover(rows, 1).TotalHeight*60 < minor {
		rows++
	}
	return cover(rows, cols).Panels
}

func (s *scoring) equipmentFactor() float64 {
	var res float64
	switch s.feasibility.ResolutionMatch {
	case imaging.WellSampled:
		res = 1
	case imaging.Undersampled:
		res = 0.7
	default:
		res = 0.6
	}
	speed := 0.5
	if fr := s.engine.fov.FRatio; fr > 0 {
		speed = clamp01((10 - fr) / 6)
	}
	return 0.6*res + 0.4*speed
}

func (s *scoring) skyFactor(sb float64, hasSB bool, major float64, hasSize bool) float64 {
	bortle := s.engine.site.Bortle
	if hasSB && hasSize && !imaging.IsDetectable(sb, bortle, major) {
		s.feasibility.Detectable = false
		return 0
	}
	return float64(9-bortle) / 8
}

func (s *scoring) ease() float64 {
	ease, ok := typeEase[s.obj.Type]
	if !ok {
		ease = 0.6
	}
	if !s.engine.equipment.Guided {
		ease *= 0.8
	}
	return ease
}

func (s *scoring) explain(windowHours float64) {
	e := s.engine
	b := s.breakdown
	f := s.feasibility
	at := func(t time.Time) string { return t.Format("15:04") }

	if s.best.Altitude >= 60 {
		s.reason("Climbs to %.0f° in darkness", s.best.Altitude)
	}
	if b.Moon >= 0.9*MaxMoonPoints {
		s.reason("Moonlight will not interfere")
	}
	if b.Seasonal >= 0.9*MaxSeasonalPoints && len(s.months) > 0 {
		s.reason("In season")
	}
	if f.FOVFit == imaging.PerfectFit || f.FOVFit == imaging.GoodFit {
		s.reason("Frames well at %.0f mm", e.equipment.FocalLength)
	}
	if windowHours >= 4 {
		s.reason("%.1f h dark imaging window", windowHours)
	}
	if !f.MeridianCrossing.IsZero() {
		s.reason("Transits at %s, inside the dark window", at(f.MeridianCrossing))
	}

	if s.best.Altitude < e.cfg.MinAltitude+10 {
		s.warn("Stays low; peaks at %.0f°", s.best.Altitude)
	}
	if f.AirmassQuality == imaging.Poor || f.AirmassQuality == imaging.Bad {
		s.warn("Airmass %.1f at best", f.Airmass)
	}
	if b.Moon < 0.5*MaxMoonPoints {
		s.warn("Moon is %.0f%% lit and %.0f° away", s.curve.MoonIllumination, s.curve.MoonSeparation)
	}
	if !f.Detectable {
		s.warn("Likely lost in Bortle %d skyglow", e.site.Bortle)
	}
	switch f.FOVFit {
	case imaging.TooLarge:
		s.warn("Larger than the field; needs a %d-panel mosaic", f.MosaicPanels)
	case imaging.TooSmall:
		s.warn("Small in the frame (%.0f%% of the field)", f.FillRatio*100)
	}
	switch f.ResolutionMatch {
	case imaging.Undersampled:
		s.warn("%.2f\"/px undersamples %.1f\" seeing", f.ImageScale, e.cfg.Seeing)
	case imaging.Oversampled:
		s.warn("%.2f\"/px oversamples %.1f\" seeing; consider binning", f.ImageScale, e.cfg.Seeing)
	}

	exp := f.Exposure
	s.tip("Shoot %.0f s subs, about %d of them (%.1f h total)", exp.Sub.Seconds(), exp.Subs, exp.Integration.Hours())
	if s.obj.Type == catalog.EmissionNebula || s.obj.Type == catalog.SupernovaRemnant || s.obj.Type == catalog.PlanetaryNebula {
		if e.site.Bortle >= 6 || s.curve.MoonIllumination > 50 {
			s.tip("Narrowband filters will cut through skyglow and moonlight")
		}
	}
	if !f.MeridianCrossing.IsZero() {
		s.tip("Plan a meridian flip around %s", at(f.MeridianCrossing))
	}
	if !e.equipment.Guided && exp.Sub >= imaging.UnguidedSubLimit {
		s.tip("Autoguiding would allow subs longer than %.0f s", imaging.UnguidedSubLimit.Seconds())
	}
}

func (s *scoring) reason(format string, args ...any) {
	s.reasons = append(s.reasons, fmt.Sprintf(format, args...))
}

func (s *scoring) warn(format string, args ...any) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

func (s *scoring) tip(format string, args ...any) {
	s.tips = append(s.tips, fmt.Sprintf(format, args...))
}

// surfaceBrightness returns the catalog value or derives one from
// magnitude and size.
func surfaceBrightness(o catalog.DeepSkyObject) (float64, bool) {
	if o.SurfaceBrightness != nil {
		return *o.SurfaceBrightness, true
	}
	major, minor, ok := o.Size()
	if o.Magnitude == nil || !ok {
		return 0, false
	}
	return imaging.SurfaceBrightnessFromSize(*o.Magnitude, major, minor), true
}

// brightnessFraction averages what is known: magnitude maps 4..14 and
// surface brightness 18..24 onto 1..0. Nothing known is neutral.
func brightnessFraction(mag *float64, sb float64, hasSB bool) float64 {
	sum, n := 0.0, 0
	if mag != nil {
		sum += clamp01((14 - *mag) / 10)
		n++
	}
	if hasSB {
		sum += clamp01((24 - sb) / 6)
		n++
	}
	if n == 0 {
		return 0.5
	}
	return sum / float64(n)
}
