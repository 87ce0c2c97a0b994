// Package planner ranks catalog objects for a night at a site and assembles
// conflict-free imaging sessions from the ranking.
package planner

import (
	"fmt"
	"time"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/catalog"
	"github.com/litescript/ls-skyplan/internal/horizon"
	"github.com/litescript/ls-skyplan/internal/imaging"
)

// ObservingSite is where the imaging happens.
type ObservingSite struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation_m"`
	Bortle    int     `json:"bortle"`

	// Horizon is the local obstruction profile; nil is a flat horizon.
	Horizon *horizon.CustomHorizon `json:"-"`
}

// DefaultSite returns a Bortle 5 suburban site at Greenwich.
func DefaultSite() ObservingSite {
	return ObservingSite{
		Name:      "Greenwich",
		Latitude:  51.4779,
		Longitude: -0.0015,
		Elevation: 46,
		Bortle:    5,
	}
}

// String is "Name (lat, lon)".
func (s ObservingSite) String() string {
	return fmt.Sprintf("%s (%.4f°, %.4f°)", s.Name, s.Latitude, s.Longitude)
}

// Observer returns the site as an astro observer.
func (s ObservingSite) Observer() astro.Observer {
	return astro.Observer{LatDeg: s.Latitude, LonDeg: s.Longitude, Name: s.Name}
}

// Validate checks coordinates and the Bortle class.
func (s ObservingSite) Validate() error {
	if err := s.Observer().Validate(); err != nil {
		return fmt.Errorf("site %q: %w", s.Name, err)
	}
	if s.Bortle < 1 || s.Bortle > 9 {
		return fmt.Errorf("site %q: %w", s.Name, &astro.InputError{Field: "bortle", Value: float64(s.Bortle)})
	}
	return nil
}

// EquipmentProfile is a telescope and camera combination. Lengths are
// millimetres, pixel size micrometres.
type EquipmentProfile struct {
	Name         string  `json:"name"`
	FocalLength  float64 `json:"focal_length_mm"`
	Aperture     float64 `json:"aperture_mm"`
	SensorWidth  float64 `json:"sensor_width_mm"`
	SensorHeight float64 `json:"sensor_height_mm"`
	PixelSize    float64 `json:"pixel_size_um"`
	Guided       bool    `json:"guided"`
}

// DefaultEquipment returns an 80 mm f/5 refractor with an APS-C camera.
func DefaultEquipment() EquipmentProfile {
	return EquipmentProfile{
		Name:         "80mm f/5 + APS-C",
		FocalLength:  400,
		Aperture:     80,
		SensorWidth:  23.5,
		SensorHeight: 15.6,
		PixelSize:    3.76,
		Guided:       true,
	}
}

// FOV returns the framing of the profile.
func (e EquipmentProfile) FOV() imaging.FOV {
	return imaging.CalculateFOV(e.SensorWidth, e.SensorHeight, e.FocalLength, e.PixelSize, e.Aperture)
}

// Validate checks that the optics are physical.
func (e EquipmentProfile) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"focal_length", e.FocalLength},
		{"sensor_width", e.SensorWidth},
		{"sensor_height", e.SensorHeight},
		{"pixel_size", e.PixelSize},
	}
	for _, f := range fields {
		if err := astro.CheckFinite(f.name, f.value); err != nil {
			return fmt.Errorf("equipment %q: %w", e.Name, err)
		}
		if f.value <= 0 {
			return fmt.Errorf("equipment %q: %w", e.Name, &astro.InputError{Field: f.name, Value: f.value})
		}
	}
	if e.Aperture < 0 {
		return fmt.Errorf("equipment %q: %w", e.Name, &astro.InputError{Field: "aperture", Value: e.Aperture})
	}
	return nil
}

// RecommendationConfig tunes ranking and session planning.
type RecommendationConfig struct {
	// MinAltitude is the lowest useful altitude in degrees.
	MinAltitude float64 `json:"min_altitude"`
	// MinImagingHours is the shortest acceptable dark window.
	MinImagingHours float64 `json:"min_imaging_hours"`
	// MaxTargets bounds a planned session.
	MaxTargets int `json:"max_targets"`
	// Seeing is the typical FWHM in arcseconds.
	Seeing float64 `json:"seeing"`
	// PreferredTypes are moved to the front of recommendations.
	PreferredTypes []catalog.ObjectType `json:"preferred_types,omitempty"`
}

// DefaultRecommendationConfig returns the defaults.
func DefaultRecommendationConfig() RecommendationConfig {
	return RecommendationConfig{
		MinAltitude:     30,
		MinImagingHours: 2,
		MaxTargets:      10,
		Seeing:          2.5,
	}
}

// Validate checks ranges.
func (c RecommendationConfig) Validate() error {
	if err := astro.CheckFinite("min_altitude", c.MinAltitude, "min_imaging_hours", c.MinImagingHours, "seeing", c.Seeing); err != nil {
		return err
	}
	if c.MinAltitude < -90 || c.MinAltitude >= 90 {
		return &astro.InputError{Field: "min_altitude", Value: c.MinAltitude}
	}
	if c.MinImagingHours < 0 || c.MinImagingHours > 24 {
		return &astro.InputError{Field: "min_imaging_hours", Value: c.MinImagingHours}
	}
	if c.MaxTargets < 0 {
		return &astro.InputError{Field: "max_targets", Value: float64(c.MaxTargets)}
	}
	if c.Seeing <= 0 {
		return &astro.InputError{Field: "seeing", Value: c.Seeing}
	}
	return nil
}

func (c RecommendationConfig) prefers(t catalog.ObjectType) bool {
	for _, p := range c.PreferredTypes {
		if p == t {
			return true
		}
	}
	return false
}

// Maximum points per breakdown field.
const (
	MaxAltitudePoints       = 20
	MaxMoonPoints           = 15
	MaxSeasonalPoints       = 10
	MaxSizePoints           = 10
	MaxBrightnessPoints     = 10
	MaxDurationPoints       = 10
	MaxEquipmentPoints      = 10
	MaxLightPollutionPoints = 5
	MaxDifficultyPoints     = 5
	MaxTransitPoints        = 5
)

// ScoreBreakdown holds the clamped sub-scores; they sum to at most 100.
type ScoreBreakdown struct {
	Altitude       float64 `json:"altitude"`
	Moon           float64 `json:"moon"`
	Seasonal       float64 `json:"seasonal"`
	Size           float64 `json:"size"`
	Brightness     float64 `json:"brightness"`
	Duration       float64 `json:"duration"`
	Equipment      float64 `json:"equipment"`
	LightPollution float64 `json:"light_pollution"`
	Difficulty     float64 `json:"difficulty"`
	Transit        float64 `json:"transit"`
}

// Total returns the sum of all fields.
func (b ScoreBreakdown) Total() float64 {
	return b.Altitude + b.Moon + b.Seasonal + b.Size + b.Brightness +
		b.Duration + b.Equipment + b.LightPollution + b.Difficulty + b.Transit
}

// TimeWindow is the half-open interval [Start, End).
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start.
func (w TimeWindow) Duration() time.Duration { return w.End.Sub(w.Start) }

// IsZero reports whether the window is unset or empty.
func (w TimeWindow) IsZero() bool { return !w.End.After(w.Start) }

// Overlaps reports whether the windows share any instant. Windows that
// only touch do not overlap.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Contains reports whether t falls in the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Feasibility summarizes how the equipment copes with an object.
type Feasibility struct {
	FOVFit            imaging.FOVFit     `json:"fov_fit"`
	FillRatio         float64            `json:"fill_ratio"`
	ResolutionMatch   imaging.Resolution `json:"resolution_match"`
	ImageScale        float64            `json:"image_scale"`
	Exposure          imaging.Exposure   `json:"exposure_estimate"`
	Airmass           float64            `json:"airmass"`
	AirmassQuality    imaging.Quality    `json:"airmass_quality"`
	Detectable        bool               `json:"detectable"`
	MeridianCrossing  time.Time          `json:"meridian_crossing,omitzero"`
	MosaicPanels      int                `json:"mosaic_panels,omitempty"`
	DarkHoursAboveMin float64            `json:"dark_hours_above_min"`
	// CompositeScore is the 0-100 comprehensive imaging score at the
	// window's peak altitude.
	CompositeScore float64 `json:"composite_score"`
}

// ScoredRecommendation is one ranked object for one night.
type ScoredRecommendation struct {
	Object        catalog.Enriched       `json:"object"`
	TotalScore    float64                `json:"total_score"`
	Breakdown     ScoreBreakdown         `json:"score_breakdown"`
	ImagingWindow TimeWindow             `json:"imaging_window"`
	Feasibility   Feasibility            `json:"feasibility"`
	Visibility    astro.TargetVisibility `json:"visibility"`
	Reasons       []string               `json:"reasons"`
	Warnings      []string               `json:"warnings"`
	Tips          []string               `json:"tips"`
}
