// Package catalog holds deep-sky object records and the built-in catalog.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// ObjectType classifies a deep-sky object.
type ObjectType string

const (
	Galaxy           ObjectType = "galaxy"
	EmissionNebula   ObjectType = "emission_nebula"
	ReflectionNebula ObjectType = "reflection_nebula"
	DarkNebula       ObjectType = "dark_nebula"
	PlanetaryNebula  ObjectType = "planetary_nebula"
	SupernovaRemnant ObjectType = "supernova_remnant"
	OpenCluster      ObjectType = "open_cluster"
	GlobularCluster  ObjectType = "globular_cluster"
	StarCloud        ObjectType = "star_cloud"
	DoubleStar       ObjectType = "double_star"
	Asterism         ObjectType = "asterism"
	GalaxyCluster    ObjectType = "galaxy_cluster"
	Other            ObjectType = "other"
)

// Label returns a human-readable type name.
func (t ObjectType) Label() string {
	if t == "" {
		return "Unknown"
	}
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// IsNebula reports whether the type is any kind of nebula or remnant.
func (t ObjectType) IsNebula() bool {
	switch t {
	case EmissionNebula, ReflectionNebula, DarkNebula, PlanetaryNebula, SupernovaRemnant:
		return true
	}
	return false
}

// IsCluster reports whether the type is a star cluster or cloud.
func (t ObjectType) IsCluster() bool {
	switch t {
	case OpenCluster, GlobularCluster, StarCloud, Asterism:
		return true
	}
	return false
}

// DeepSkyObject is a catalog master record. Coordinates are J2000 degrees,
// sizes are arcminutes. Optional photometry is nil when unknown.
type DeepSkyObject struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	AlternateNames    []string   `json:"alternate_names,omitempty"`
	Type              ObjectType `json:"type"`
	Constellation     string     `json:"constellation"`
	RA                float64    `json:"ra"`
	Dec               float64    `json:"dec"`
	Magnitude         *float64   `json:"magnitude,omitempty"`
	SurfaceBrightness *float64   `json:"surface_brightness,omitempty"`
	SizeMax           *float64   `json:"size_max,omitempty"`
	SizeMin           *float64   `json:"size_min,omitempty"`
}

// Target returns the object's sky position.
func (o DeepSkyObject) Target() astro.Target {
	return astro.Target{RAdeg: o.RA, DecDeg: o.Dec}
}

// Validate checks identity and coordinates.
func (o DeepSkyObject) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("object %q: missing id", o.Name)
	}
	if err := o.Target().Validate(); err != nil {
		return fmt.Errorf("object %s: %w", o.ID, err)
	}
	return nil
}

// DisplayName is "ID Name", or just the ID when the name repeats it.
func (o DeepSkyObject) DisplayName() string {
	if o.Name == "" || o.Name == o.ID {
		return o.ID
	}
	return o.ID + " " + o.Name
}

// MagnitudeOr returns the magnitude or def when unknown.
func (o DeepSkyObject) MagnitudeOr(def float64) float64 {
	if o.Magnitude == nil {
		return def
	}
	return *o.Magnitude
}

// Size returns the major and minor axes in arcminutes. A missing minor axis
// repeats the major axis; ok is false without a major axis.
func (o DeepSkyObject) Size() (major, minor float64, ok bool) {
	if o.SizeMax == nil || *o.SizeMax <= 0 {
		return 0, 0, false
	}
	major = *o.SizeMax
	minor = major
	if o.SizeMin != nil && *o.SizeMin > 0 {
		minor = *o.SizeMin
	}
	return major, minor, true
}

// Clone returns a deep copy that shares no memory with o.
func (o DeepSkyObject) Clone() DeepSkyObject {
	c := o
	if o.AlternateNames != nil {
		c.AlternateNames = append([]string(nil), o.AlternateNames...)
	}
	c.Magnitude = clonePtr(o.Magnitude)
	c.SurfaceBrightness = clonePtr(o.SurfaceBrightness)
	c.SizeMax = clonePtr(o.SizeMax)
	c.SizeMin = clonePtr(o.SizeMin)
	return c
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Float returns a pointer to v, for building optional fields.
func Float(v float64) *float64 { return &v }

// Enriched is a catalog object with values computed for one night attached.
// It carries its own copy of the master record.
type Enriched struct {
	DeepSkyObject
	Altitude     float64   `json:"altitude"`
	Azimuth      float64   `json:"azimuth"`
	TransitTime  time.Time `json:"transit_time,omitzero"`
	MoonDistance float64   `json:"moon_distance"`
	ImagingScore float64   `json:"imaging_score"`
}

// Enrich attaches computed values to a copy of o.
func (o DeepSkyObject) Enrich(alt, az float64, transit time.Time, moonDist, score float64) Enriched {
	return Enriched{
		DeepSkyObject: o.Clone(),
		Altitude:      alt,
		Azimuth:       az,
		TransitTime:   transit,
		MoonDistance:  moonDist,
		ImagingScore:  score,
	}
}
