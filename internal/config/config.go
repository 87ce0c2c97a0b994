// Package config loads the site, equipment and planning settings from a
// YAML or TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-skyplan/internal/catalog"
	"github.com/litescript/ls-skyplan/internal/horizon"
	"github.com/litescript/ls-skyplan/internal/logging"
	"github.com/litescript/ls-skyplan/internal/planner"
)

// Config holds the planner configuration.
type Config struct {
	Site           SiteConfig           `yaml:"site" toml:"site"`
	Equipment      EquipmentConfig      `yaml:"equipment" toml:"equipment"`
	Recommendation RecommendationConfig `yaml:"recommendation" toml:"recommendation"`
	Catalog        CatalogConfig        `yaml:"catalog" toml:"catalog"`
	Logging        LoggingConfig        `yaml:"logging" toml:"logging"`

	dir string // directory of the loaded file, for relative paths
}

// SiteConfig describes the observing site.
type SiteConfig struct {
	Name      string  `yaml:"name" toml:"name"`
	Latitude  float64 `yaml:"latitude" toml:"latitude"`
	Longitude float64 `yaml:"longitude" toml:"longitude"`
	Elevation float64 `yaml:"elevation" toml:"elevation"` // metres
	Bortle    int     `yaml:"bortle" toml:"bortle"`
	Horizon   string  `yaml:"horizon" toml:"horizon"` // path to a horizon file
}

// EquipmentConfig describes the imaging train.
type EquipmentConfig struct {
	Name         string  `yaml:"name" toml:"name"`
	FocalLength  float64 `yaml:"focal_length" toml:"focal_length"`   // mm
	Aperture     float64 `yaml:"aperture" toml:"aperture"`           // mm
	SensorWidth  float64 `yaml:"sensor_width" toml:"sensor_width"`   // mm
	SensorHeight float64 `yaml:"sensor_height" toml:"sensor_height"` // mm
	PixelSize    float64 `yaml:"pixel_size" toml:"pixel_size"`       // µm
	Guided       *bool   `yaml:"guided" toml:"guided"`
}

// RecommendationConfig tunes ranking and sessions.
type RecommendationConfig struct {
	MinAltitude     float64  `yaml:"min_altitude" toml:"min_altitude"`
	MinImagingHours float64  `yaml:"min_imaging_hours" toml:"min_imaging_hours"`
	MaxTargets      int      `yaml:"max_targets" toml:"max_targets"`
	Seeing          float64  `yaml:"seeing" toml:"seeing"`
	PreferredTypes  []string `yaml:"preferred_types" toml:"preferred_types"`
}

// CatalogConfig lists extra catalog files merged over the built-in one.
type CatalogConfig struct {
	Files []string `yaml:"files" toml:"files"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // console, json
}

// Default returns a configuration with every default applied.
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// Load reads a configuration file. The format follows the extension:
// .yaml/.yml or .toml. ${VAR} and ${VAR:-default} are expanded first.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	data = expandEnvVars(data)

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyDefaults fills empty fields with default values. A site with no
// name and zero coordinates is replaced by the default site.
func (c *Config) ApplyDefaults() {
	site := planner.DefaultSite()
	if c.Site.Name == "" && c.Site.Latitude == 0 && c.Site.Longitude == 0 {
		c.Site.Name = site.Name
		c.Site.Latitude = site.Latitude
		c.Site.Longitude = site.Longitude
		c.Site.Elevation = site.Elevation
	}
	if c.Site.Bortle == 0 {
		c.Site.Bortle = site.Bortle
	}

	eq := planner.DefaultEquipment()
	if c.Equipment.FocalLength <= 0 {
		c.Equipment.FocalLength = eq.FocalLength
		if c.Equipment.Aperture <= 0 {
			c.Equipment.Aperture = eq.Aperture
		}
		if c.Equipment.Name == "" {
			c.Equipment.Name = eq.Name
		}
	}
	if c.Equipment.SensorWidth <= 0 {
		c.Equipment.SensorWidth = eq.SensorWidth
	}
	if c.Equipment.SensorHeight <= 0 {
		c.Equipment.SensorHeight = eq.SensorHeight
	}
	if c.Equipment.PixelSize <= 0 {
		c.Equipment.PixelSize = eq.PixelSize
	}
	if c.Equipment.Guided == nil {
		guided := eq.Guided
		c.Equipment.Guided = &guided
	}

	rc := planner.DefaultRecommendationConfig()
	if c.Recommendation.MinAltitude == 0 {
		c.Recommendation.MinAltitude = rc.MinAltitude
	}
	if c.Recommendation.MinImagingHours <= 0 {
		c.Recommendation.MinImagingHours = rc.MinImagingHours
	}
	if c.Recommendation.MaxTargets <= 0 {
		c.Recommendation.MaxTargets = rc.MaxTargets
	}
	if c.Recommendation.Seeing <= 0 {
		c.Recommendation.Seeing = rc.Seeing
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = string(logging.FormatConsole)
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if err := c.ObservingSite().Validate(); err != nil {
		return err
	}
	if err := c.EquipmentProfile().Validate(); err != nil {
		return err
	}
	rc, err := c.RecommendationConfig()
	if err != nil {
		return err
	}
	if err := rc.Validate(); err != nil {
		return fmt.Errorf("recommendation: %w", err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch logging.Format(c.Logging.Format) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q",
			logging.FormatConsole, logging.FormatJSON, c.Logging.Format)
	}
	return nil
}

// ObservingSite returns the site without its horizon profile.
func (c *Config) ObservingSite() planner.ObservingSite {
	return planner.ObservingSite{
		Name:      c.Site.Name,
		Latitude:  c.Site.Latitude,
		Longitude: c.Site.Longitude,
		Elevation: c.Site.Elevation,
		Bortle:    c.Site.Bortle,
	}
}

// LoadSite returns the site with its horizon file, if any, loaded.
func (c *Config) LoadSite() (planner.ObservingSite, error) {
	site := c.ObservingSite()
	if c.Site.Horizon == "" {
		return site, nil
	}
	h, err := LoadHorizon(c.resolve(c.Site.Horizon))
	if err != nil {
		return planner.ObservingSite{}, err
	}
	site.Horizon = h
	return site, nil
}

// LoadHorizon reads a horizon file, naming the profile after the file.
func LoadHorizon(path string) (*horizon.CustomHorizon, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open horizon: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	h, err := horizon.Parse(name, f)
	if err != nil {
		return nil, fmt.Errorf("horizon %s: %w", path, err)
	}
	return h, nil
}

// EquipmentProfile returns the equipment section as a planner profile.
func (c *Config) EquipmentProfile() planner.EquipmentProfile {
	guided := true
	if c.Equipment.Guided != nil {
		guided = *c.Equipment.Guided
	}
	return planner.EquipmentProfile{
		Name:         c.Equipment.Name,
		FocalLength:  c.Equipment.FocalLength,
		Aperture:     c.Equipment.Aperture,
		SensorWidth:  c.Equipment.SensorWidth,
		SensorHeight: c.Equipment.SensorHeight,
		PixelSize:    c.Equipment.PixelSize,
		Guided:       guided,
	}
}

// RecommendationConfig returns the recommendation section for the planner.
// Unknown preferred types are an error.
func (c *Config) RecommendationConfig() (planner.RecommendationConfig, error) {
	rc := planner.RecommendationConfig{
		MinAltitude:     c.Recommendation.MinAltitude,
		MinImagingHours: c.Recommendation.MinImagingHours,
		MaxTargets:      c.Recommendation.MaxTargets,
		Seeing:          c.Recommendation.Seeing,
	}
	for _, name := range c.Recommendation.PreferredTypes {
		t := catalog.ParseType(name)
		if t == catalog.Other && !strings.EqualFold(strings.TrimSpace(name), string(catalog.Other)) {
			return planner.RecommendationConfig{}, fmt.Errorf("recommendation.preferred_types: unknown type %q", name)
		}
		rc.PreferredTypes = append(rc.PreferredTypes, t)
	}
	return rc, nil
}

// CatalogFiles returns the extra catalog paths, resolved against the
// directory of the config file.
func (c *Config) CatalogFiles() []string {
	out := make([]string, len(c.Catalog.Files))
	for i, f := range c.Catalog.Files {
		out[i] = c.resolve(f)
	}
	return out
}

// LoadCatalog merges the configured catalog files over the built-in one.
func (c *Config) LoadCatalog() (*catalog.Catalog, error) {
	cat := catalog.Builtin()
	for _, path := range c.CatalogFiles() {
		extra, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cat = cat.Merge(extra)
	}
	return cat, nil
}

// Logger builds the configured logger.
func (c *Config) Logger(w io.Writer) *logging.Logger {
	return logging.New(logging.ParseLevel(c.Logging.Level),
		logging.WithOutput(w),
		logging.WithFormat(logging.Format(c.Logging.Format)))
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
