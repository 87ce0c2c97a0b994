package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// fileCatalog is the on-disk YAML layout:
//
//	objects:
//	  - id: Sh2-129
//	    name: Flying Bat Nebula
//	    type: emission_nebula
//	    constellation: Cep
//	    ra: "21h11m48s"      # or decimal degrees
//	    dec: "+60:00:00"
//	    magnitude: 8.0
//	    size_max: 145
//	    size_min: 80
//	    best_months: [8, 9, 10]
type fileCatalog struct {
	Objects []fileObject `yaml:"objects"`
}

type fileObject struct {
	ID                string     `yaml:"id"`
	Name              string     `yaml:"name"`
	AlternateNames    []string   `yaml:"alternate_names"`
	Type              string     `yaml:"type"`
	Constellation     string     `yaml:"constellation"`
	RA                coordValue `yaml:"ra"`
	Dec               coordValue `yaml:"dec"`
	Magnitude         *float64   `yaml:"magnitude"`
	SurfaceBrightness *float64   `yaml:"surface_brightness"`
	SizeMax           *float64   `yaml:"size_max"`
	SizeMin           *float64   `yaml:"size_min"`
	BestMonths        []int      `yaml:"best_months"`
}

// coordValue keeps the raw scalar so both numbers and sexagesimal strings
// decode.
type coordValue struct {
	raw  string
	line int
}

func (c *coordValue) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: coordinate must be a scalar", n.Line)
	}
	c.raw = n.Value
	c.line = n.Line
	return nil
}

var knownTypes = map[ObjectType]bool{
	Galaxy: true, EmissionNebula: true, ReflectionNebula: true, DarkNebula: true,
	PlanetaryNebula: true, SupernovaRemnant: true, OpenCluster: true,
	GlobularCluster: true, StarCloud: true, DoubleStar: true, Asterism: true,
	GalaxyCluster: true, Other: true,
}

// ParseType maps a free-form type name ("Open Cluster", "open-cluster") to
// an ObjectType. Unknown names become Other.
func ParseType(s string) ObjectType {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	t := ObjectType(norm)
	if knownTypes[t] {
		return t
	}
	return Other
}

// Load reads a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fc fileCatalog
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	objects := make([]DeepSkyObject, 0, len(fc.Objects))
	months := make(map[string][]time.Month)
	for i, fo := range fc.Objects {
		o, err := fo.toObject()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i+1, err)
		}
		objects = append(objects, o)

		for _, m := range fo.BestMonths {
			if m < 1 || m > 12 {
				return nil, fmt.Errorf("object %s: invalid month %d", o.ID, m)
			}
			months[o.ID] = append(months[o.ID], time.Month(m))
		}
	}

	c, err := New(objects)
	if err != nil {
		return nil, err
	}
	for id, m := range months {
		c.setBestMonths(id, m)
	}
	return c, nil
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (fo fileObject) toObject() (DeepSkyObject, error) {
	raDeg, err := ParseRA(fo.RA.raw)
	if err != nil {
		return DeepSkyObject{}, fmt.Errorf("%s: line %d: ra: %w", fo.ID, fo.RA.line, err)
	}
	decDeg, err := ParseDec(fo.Dec.raw)
	if err != nil {
		return DeepSkyObject{}, fmt.Errorf("%s: line %d: dec: %w", fo.ID, fo.Dec.line, err)
	}
	name := fo.Name
	if name == "" {
		name = fo.ID
	}
	return DeepSkyObject{
		ID:                strings.TrimSpace(fo.ID),
		Name:              name,
		AlternateNames:    fo.AlternateNames,
		Type:              ParseType(fo.Type),
		Constellation:     fo.Constellation,
		RA:                raDeg,
		Dec:               decDeg,
		Magnitude:         fo.Magnitude,
		SurfaceBrightness: fo.SurfaceBrightness,
		SizeMax:           fo.SizeMax,
		SizeMin:           fo.SizeMin,
	}, nil
}

var sexagesimalMarks = strings.NewReplacer(
	"h", " ", "H", " ", "m", " ", "M", " ", "s", " ", "S", " ",
	"d", " ", "D", " ", "°", " ", ":", " ", "'", " ", "′", " ", "\"", " ", "″", " ",
)

// ParseRA accepts decimal degrees ("10.68") or sexagesimal hours
// ("00h42m44s", "00:42:44.3", "0 42.7").
func ParseRA(s string) (float64, error) {
	neg, parts, plain, err := splitSexagesimal(s)
	if err != nil {
		return 0, err
	}
	if plain {
		return signed(neg, parts[0]), nil
	}
	if neg {
		return 0, fmt.Errorf("negative right ascension %q", s)
	}
	return astro.HoursToDeg(sexagesimalValue(parts)), nil
}

// ParseDec accepts decimal degrees or sexagesimal degrees ("+41°16'09\"",
// "-05:23:28", "-0 30").
func ParseDec(s string) (float64, error) {
	neg, parts, plain, err := splitSexagesimal(s)
	if err != nil {
		return 0, err
	}
	if plain {
		return signed(neg, parts[0]), nil
	}
	return signed(neg, sexagesimalValue(parts)), nil
}

func splitSexagesimal(s string) (neg bool, parts []float64, plain bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil, false, errors.New("empty coordinate")
	}
	switch {
	case strings.HasPrefix(s, "-"):
		neg, s = true, s[1:]
	case strings.HasPrefix(s, "−"):
		neg, s = true, strings.TrimPrefix(s, "−")
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	if v, perr := strconv.ParseFloat(strings.TrimSpace(s), 64); perr == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false, nil, false, fmt.Errorf("non-finite coordinate %q", s)
		}
		return neg, []float64{v}, true, nil
	}

	fields := strings.Fields(sexagesimalMarks.Replace(s))
	if len(fields) == 0 || len(fields) > 3 {
		return false, nil, false, fmt.Errorf("malformed coordinate %q", s)
	}
	for _, f := range fields {
		v, perr := strconv.ParseFloat(f, 64)
		if perr != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return false, nil, false, fmt.Errorf("malformed coordinate %q", s)
		}
		parts = append(parts, v)
	}
	return neg, parts, false, nil
}

func sexagesimalValue(parts []float64) float64 {
	v := 0.0
	scale := 1.0
	for _, p := range parts {
		v += p / scale
		scale *= 60
	}
	return v
}

func signed(neg bool, v float64) float64 {
	if neg {
		return -v
	}
	return v
}
