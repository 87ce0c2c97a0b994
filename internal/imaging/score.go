package imaging

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// Sub-score ceilings of the imaging score. They sum to 100.
const (
	MaxAltitudeScore   = 25.0
	MaxAirmassScore    = 20.0
	MaxMoonScore       = 20.0
	MaxBrightnessScore = 15.0
	MaxSeasonScore     = 10.0
	MaxTransitScore    = 10.0
)

// Conditions describes one object at one instant.
type Conditions struct {
	Altitude          float64 // degrees
	MoonIllumination  float64 // percent
	MoonSeparation    float64 // degrees
	Magnitude         *float64
	SurfaceBrightness *float64 // mag/arcsec²
	BestMonths        []time.Month
	Month             time.Month
	HoursFromTransit  float64
}

// Breakdown holds the clamped sub-scores.
type Breakdown struct {
	Altitude   float64 `json:"altitude"`
	Airmass    float64 `json:"airmass"`
	Moon       float64 `json:"moon"`
	Brightness float64 `json:"brightness"`
	Season     float64 `json:"season"`
	Transit    float64 `json:"transit"`
}

// Sum adds the sub-scores.
func (b Breakdown) Sum() float64 {
	return b.Altitude + b.Airmass + b.Moon + b.Brightness + b.Season + b.Transit
}

// Score is the 0-100 imaging score with its parts and advice.
type Score struct {
	Total           float64   `json:"total"`
	Breakdown       Breakdown `json:"breakdown"`
	Airmass         float64   `json:"-"` // +Inf below the horizon
	AirmassQuality  Quality   `json:"airmass_quality"`
	Recommendations []string  `json:"recommendations,omitempty"`
}

func (c Conditions) validate() error {
	return astro.CheckFinite(
		"altitude", c.Altitude,
		"moon illumination", c.MoonIllumination,
		"moon separation", c.MoonSeparation,
		"hours from transit", c.HoursFromTransit,
	)
}

// CalculateImagingScore rates conditions from 0 to 100. An object at or below
// the horizon scores 0. Weak sub-scores add a recommendation; they never
// cause an error. Non-finite inputs return an *astro.InputError.
func CalculateImagingScore(c Conditions) (Score, error) {
	if err := c.validate(); err != nil {
		return Score{}, err
	}

	s := Score{
		Airmass: Airmass(c.Altitude),
	}
	s.AirmassQuality = AirmassQuality(s.Airmass)
	if c.Altitude <= 0 {
		s.Recommendations = []string{"Target is below the horizon"}
		return s, nil
	}

	impact := MoonImpact(c.MoonIllumination, c.MoonSeparation)
	season := SeasonalScore(c.BestMonths, c.Month)

	b := Breakdown{
		Altitude:   MaxAltitudeScore * clamp01(c.Altitude/60),
		Airmass:    MaxAirmassScore * clamp01(1-(s.Airmass-1)/2),
		Moon:       MaxMoonScore * clamp01(impact),
		Brightness: MaxBrightnessScore * brightnessFraction(c.Magnitude, c.SurfaceBrightness),
		Season:     MaxSeasonScore * clamp01(season),
		Transit:    MaxTransitScore * clamp01(1-math.Abs(c.HoursFromTransit)/6),
	}
	s.Breakdown = b
	s.Total = clampScore(b.Sum())

	if c.Altitude < 30 {
		s.advise("Target is low (%.0f°); image once it climbs above 30°", c.Altitude)
	}
	if s.Airmass > 2 {
		s.advise("Airmass %.1f costs about %.2f mag; expect softer stars", s.Airmass, Extinction(s.Airmass, DefaultExtinction))
	}
	if impact < 0.5 {
		s.advise("Moon is %.0f%% lit and %.0f° away; use narrowband filters or wait for moonset", c.MoonIllumination, c.MoonSeparation)
	}
	if b.Brightness < MaxBrightnessScore/3 {
		s.advise("Faint target; plan several hours of total integration")
	}
	if season < 0.5 {
		s.advise("Out of season; best months are %s", monthList(c.BestMonths))
	}
	if math.Abs(c.HoursFromTransit) > 3 {
		s.advise("%.1f h from transit; image closer to the meridian", math.Abs(c.HoursFromTransit))
	}
	return s, nil
}

func (s *Score) advise(format string, args ...any) {
	s.Recommendations = append(s.Recommendations, fmt.Sprintf(format, args...))
}

// brightnessFraction prefers surface brightness (18 to 24 mag/arcsec²) and
// falls back to integrated magnitude (4 to 14). Unknown photometry is
// neutral.
func brightnessFraction(mag, sb *float64) float64 {
	switch {
	case sb != nil:
		return clamp01((24 - *sb) / 6)
	case mag != nil:
		return clamp01((14 - *mag) / 10)
	default:
		return 0.5
	}
}

// ComprehensiveConditions adds the site's sky and the framing.
type ComprehensiveConditions struct {
	Conditions
	Bortle     int
	SizeArcmin float64 // major axis
	FOVArcmin  float64 // shorter side of the frame, 0 when unknown
}

// ComprehensiveScore extends Score with light pollution and framing.
type ComprehensiveScore struct {
	Score
	LightPollution float64 `json:"light_pollution"`
	Framing        float64 `json:"framing"`
	FOVFit         FOVFit  `json:"fov_fit"`
	Detectable     bool    `json:"detectable"`
}

// CalculateComprehensiveScore scales the imaging score to 80 points and
// adds up to 10 for sky darkness and 10 for framing. The result stays in
// [0, 100].
func CalculateComprehensiveScore(c ComprehensiveConditions) (ComprehensiveScore, error) {
	base, err := CalculateImagingScore(c.Conditions)
	if err != nil {
		return ComprehensiveScore{}, err
	}
	out := ComprehensiveScore{Score: base, FOVFit: FitUnknown, Detectable: true}
	if c.Altitude <= 0 {
		return out, nil
	}

	bortle := clampBortle(c.Bortle)
	out.LightPollution = 10 * float64(9-bortle) / 8

	if sb, ok := c.surfaceBrightness(); ok && c.SizeArcmin > 0 {
		if !IsDetectable(sb, bortle, c.SizeArcmin) {
			out.Detectable = false
			out.LightPollution = 0
			out.advise("Surface brightness %.1f may be lost in Bortle %d skyglow", sb, bortle)
		}
	}

	out.Framing = 5
	if c.SizeArcmin > 0 && c.FOVArcmin > 0 {
		out.FOVFit = ClassifyFOVFit(c.SizeArcmin, c.FOVArcmin)
		out.Framing = 10 * out.FOVFit.Weight()
		switch out.FOVFit {
		case TooSmall:
			out.advise("Target fills little of the frame; a longer focal length would help")
		case TooLarge:
			out.advise("Target overflows the frame; consider a mosaic")
		}
	}

	out.Total = clampScore(base.Total*0.8 + out.LightPollution + out.Framing)
	return out, nil
}

func (c ComprehensiveConditions) surfaceBrightness() (float64, bool) {
	if c.SurfaceBrightness != nil {
		return *c.SurfaceBrightness, true
	}
	if c.Magnitude != nil && c.SizeArcmin > 0 {
		return SurfaceBrightnessFromSize(*c.Magnitude, c.SizeArcmin, c.SizeArcmin), true
	}
	return 0, false
}

func monthList(months []time.Month) string {
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = m.String()[:3]
	}
	return strings.Join(names, ", ")
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}

func clampScore(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
