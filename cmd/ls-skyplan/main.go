// Command ls-skyplan recommends deep-sky imaging targets for a site, a night
// and an imaging train.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/catalog"
	"github.com/litescript/ls-skyplan/internal/config"
	"github.com/litescript/ls-skyplan/internal/logging"
	"github.com/litescript/ls-skyplan/internal/metrics"
	"github.com/litescript/ls-skyplan/internal/planner"
	"github.com/litescript/ls-skyplan/internal/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the global flags.
type options struct {
	configPath  string
	lat, lon    float64
	bortle      int
	date        string
	logLevel    string
	jsonOut     bool
	horizonPath string
	catalogs    []string
	metrics     bool
}

// app is everything a subcommand needs, built once per run.
type app struct {
	cfg      config.Config
	logger   *logging.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	engine   *planner.Engine
	catalog  *catalog.Catalog
	date     time.Time
	json     bool
	out      io.Writer
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	a := &app{}

	root := &cobra.Command{
		Use:   "ls-skyplan",
		Short: "Plan deep-sky astrophotography sessions",
		Long: `ls-skyplan ranks deep-sky objects for one night at one site with one
imaging train. It scores altitude, moonlight, season, framing, brightness,
dark-window length, equipment match, sky brightness, difficulty and transit
timing, and builds a non-overlapping session from the best targets.

Settings come from a YAML or TOML config file (--config, or
$XDG_CONFIG_HOME/ls-skyplan/config.yaml when present); flags override it.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return opts.setup(cmd, a)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.finish(cmd.ErrOrStderr(), opts.metrics)
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml, .yml or .toml)")
	f.Float64Var(&opts.lat, "lat", 0, "Site latitude in degrees, north positive")
	f.Float64Var(&opts.lon, "lon", 0, "Site longitude in degrees, east positive")
	f.IntVar(&opts.bortle, "bortle", 0, "Bortle sky class 1-9")
	f.StringVarP(&opts.date, "date", "d", "", "Night to plan: YYYY-MM-DD or RFC 3339 (default tonight)")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.BoolVar(&opts.jsonOut, "json", false, "Write JSON instead of text")
	f.StringVar(&opts.horizonPath, "horizon", "", "Horizon file (azimuth altitude per line)")
	f.StringSliceVar(&opts.catalogs, "catalog", nil, "Extra YAML catalog files merged over the built-in one")
	f.BoolVar(&opts.metrics, "metrics", false, "Print Prometheus metrics to stderr on exit")

	root.AddCommand(
		newRecommendCmd(a),
		newPlanCmd(a),
		newSearchCmd(a),
		newVisibilityCmd(a),
		newNightsCmd(a),
		newTwilightCmd(a),
		newHorizonCmd(a),
		newBrowseCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the config, applies flag overrides and builds the engine.
func (o *options) setup(cmd *cobra.Command, a *app) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("lat") || flags.Changed("lon") {
		if flags.Changed("lat") {
			cfg.Site.Latitude = o.lat
		}
		if flags.Changed("lon") {
			cfg.Site.Longitude = o.lon
		}
		cfg.Site.Name = fmt.Sprintf("%.3f, %.3f", cfg.Site.Latitude, cfg.Site.Longitude)
		cfg.Site.Horizon = ""
	}
	if flags.Changed("bortle") {
		cfg.Site.Bortle = o.bortle
	}
	if o.horizonPath != "" {
		cfg.Site.Horizon = o.horizonPath
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	cfg.Catalog.Files = append(cfg.Catalog.Files, o.catalogs...)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	a.cfg = cfg
	a.out = cmd.OutOrStdout()
	a.json = o.jsonOut
	a.logger = cfg.Logger(cmd.ErrOrStderr())
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)

	site, err := cfg.LoadSite()
	if err != nil {
		return err
	}
	rc, err := cfg.RecommendationConfig()
	if err != nil {
		return err
	}
	a.engine, err = planner.New(site, cfg.EquipmentProfile(), rc,
		planner.WithLogger(a.logger),
		planner.WithMetrics(a.metrics))
	if err != nil {
		return err
	}

	a.catalog, err = cfg.LoadCatalog()
	if err != nil {
		return err
	}

	a.date, err = parseDate(o.date, site.Longitude, time.Now())
	if err != nil {
		return err
	}
	a.logger.Debug("site %s, %s, night of %s, %d catalog objects",
		site, a.engine.Equipment().Name, a.date.Format("2006-01-02"), a.catalog.Len())
	return nil
}

func (o *options) loadConfig() (config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	if path := defaultConfigPath(); path != "" {
		return config.Load(path)
	}
	return config.Default(), nil
}

// defaultConfigPath returns the user config file if one exists.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		path := filepath.Join(dir, "ls-skyplan", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// finish prints metrics when asked and flushes the logger.
func (a *app) finish(w io.Writer, printMetrics bool) error {
	if a.logger == nil {
		return nil
	}
	if printMetrics {
		if err := metrics.WriteText(w, a.registry); err != nil {
			return err
		}
	}
	// Syncing a terminal or pipe fails with EINVAL on some systems.
	if err := a.logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		return err
	}
	return nil
}

// parseDate reads YYYY-MM-DD as 22:00 local mean time at lon, or an RFC
// 3339 instant. An empty string means now.
func parseDate(s string, lon float64, now time.Time) (time.Time, error) {
	zone := astro.MeanSolarZone(lon)
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return now.In(zone), nil
	case strings.EqualFold(s, "tonight"):
		d := now.In(zone)
		return time.Date(d.Year(), d.Month(), d.Day(), 22, 0, 0, 0, zone), nil
	}
	if d, err := time.ParseInLocation("2006-01-02", s, zone); err == nil {
		return d.Add(22 * time.Hour), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t.In(zone), nil
}
