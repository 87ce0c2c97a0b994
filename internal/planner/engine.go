package planner

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/catalog"
	"github.com/litescript/ls-skyplan/internal/imaging"
	"github.com/litescript/ls-skyplan/internal/logging"
	"github.com/litescript/ls-skyplan/internal/metrics"
)

// Engine scores catalog objects for one site and equipment profile. It is
// safe for concurrent use.
type Engine struct {
	site      ObservingSite
	equipment EquipmentProfile
	cfg       RecommendationConfig
	fov       imaging.FOV

	logger  *logging.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	curves  *curveCache
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics records scoring outcomes and session sizes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock overrides the clock used to classify session slots.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New validates the inputs and returns an engine.
func New(site ObservingSite, equipment EquipmentProfile, cfg RecommendationConfig, opts ...Option) (*Engine, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	if err := equipment.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommendation config: %w", err)
	}

	e := &Engine{
		site:      site,
		equipment: equipment,
		cfg:       cfg,
		fov:       equipment.FOV(),
		logger:    logging.Discard(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.curves = newCurveCache(e.metrics)
	return e, nil
}

// Site returns the engine's site.
func (e *Engine) Site() ObservingSite { return e.site }

// Equipment returns the engine's equipment profile.
func (e *Engine) Equipment() EquipmentProfile { return e.equipment }

// Config returns the engine's recommendation config.
func (e *Engine) Config() RecommendationConfig { return e.cfg }

// FOV returns the framing of the equipment profile.
func (e *Engine) FOV() imaging.FOV { return e.fov }

// ClearCache drops cached curves and twilight.
func (e *Engine) ClearCache() { e.curves.clear() }

// Twilight returns the twilight of the night containing t at the site.
func (e *Engine) Twilight(t time.Time) astro.Twilight {
	obs := e.site.Observer()
	return e.curves.night(t, func() astro.Twilight { return astro.CalculateTwilight(obs, t) })
}

// Curve returns the altitude curve of a target for the night containing t,
// with darkness judged as in scoring. The result is shared and must not be
// modified.
func (e *Engine) Curve(target astro.Target, t time.Time) *astro.AltitudeCurve {
	limit, _ := darkLimit(e.Twilight(t))
	return e.curve(target, t, limit)
}

func (e *Engine) curve(target astro.Target, t time.Time, limit float64) *astro.AltitudeCurve {
	key := curveKey{ra: target.RAdeg, dec: target.DecDeg, at: t.UnixNano(), darkLimit: limit}
	return e.curves.curve(key, func() astro.AltitudeCurve {
		opts := astro.CurveOptions{MinAltitude: e.cfg.MinAltitude, DarkSunAltitude: limit}
		if e.site.Horizon != nil {
			opts.Horizon = e.site.Horizon
		}
		return astro.CalculateAltitudeCurve(target, e.site.Observer(), t, opts)
	})
}

// darkLimit picks the Sun altitude that counts as dark: astronomical night
// when it happens, else nautical, else the whole of a polar night. ok is
// false when the night never gets dark enough to image.
func darkLimit(tw astro.Twilight) (limit float64, ok bool) {
	switch {
	case !tw.AstronomicalDusk.IsZero() && !tw.AstronomicalDawn.IsZero():
		return astro.AstronomicalAltitude, true
	case !tw.NauticalDusk.IsZero() && !tw.NauticalDawn.IsZero():
		return astro.NauticalAltitude, true
	case tw.IsPolarNight:
		return astro.SunsetAltitude, true
	default:
		return astro.AstronomicalAltitude, false
	}
}

// ScoreObject scores obj for the night containing date. It returns nil
// without error when the object does not stay above the minimum altitude
// in darkness for the configured number of hours.
func (e *Engine) ScoreObject(obj catalog.DeepSkyObject, date time.Time) (*ScoredRecommendation, error) {
	return e.score(obj, date, nil)
}

func (e *Engine) score(obj catalog.DeepSkyObject, date time.Time, months []time.Month) (*ScoredRecommendation, error) {
	start := time.Now()
	if err := obj.Validate(); err != nil {
		e.metrics.ObserveScore(metrics.ResultInvalid, time.Since(start))
		e.logger.Warn("skipping object: %v", err)
		return nil, fmt.Errorf("score object: %w", err)
	}
	if months == nil {
		months = imaging.BestMonths(obj.ID)
	}

	rec := e.evaluate(obj, date, months)
	if rec == nil {
		e.metrics.ObserveScore(metrics.ResultNotObservable, time.Since(start))
		e.logger.Debug("%s not observable on the night of %s", obj.ID, date.Format("2006-01-02"))
		return nil, nil
	}
	e.metrics.ObserveScore(metrics.ResultScored, time.Since(start))
	return rec, nil
}

func (e *Engine) evaluate(obj catalog.DeepSkyObject, date time.Time, months []time.Month) *ScoredRecommendation {
	limit, dark := darkLimit(e.Twilight(date))
	if !dark {
		return nil
	}
	target := obj.Target()
	curve := e.curve(target, date, limit)
	minAlt := e.cfg.MinAltitude
	if curve.NeverRises || !curve.IsVisibleFor(minAlt, e.cfg.MinImagingHours) {
		return nil
	}
	start, end, _ := curve.DarkWindow(minAlt)

	s := scoring{
		engine: e,
		obj:    obj,
		curve:  curve,
		window: TimeWindow{Start: start, End: end},
		months: months,
		month:  date.Month(),
	}
	s.run()

	vis := curve.Summary(target, e.site.Observer(), date, minAlt)
	transit := vis.TransitTime
	if !s.feasibility.MeridianCrossing.IsZero() {
		transit = s.feasibility.MeridianCrossing
	}
	total := clamp(s.breakdown.Total(), 0, 100)
	return &ScoredRecommendation{
		Object:        obj.Enrich(s.best.Altitude, s.best.Azimuth, transit, curve.MoonSeparation, total),
		TotalScore:    total,
		Breakdown:     s.breakdown,
		ImagingWindow: s.window,
		Feasibility:   s.feasibility,
		Visibility:    vis,
		Reasons:       s.reasons,
		Warnings:      s.warnings,
		Tips:          s.tips,
	}
}

// Recommend scores every object of cat for the night containing date,
// drops those not observable and sorts the rest by score. Preferred types
// are then moved to the front, keeping score order within each group. A
// positive limit truncates the list.
func (e *Engine) Recommend(ctx context.Context, cat *catalog.Catalog, date time.Time, limit int) ([]ScoredRecommendation, error) {
	objects := cat.Objects()
	scored := make([]*ScoredRecommendation, len(objects))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, obj := range objects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			months := cat.BestMonths(obj.ID)
			if len(months) == 0 {
				months = imaging.BestMonths(obj.ID)
			}
			rec, err := e.score(obj, date, months)
			if err != nil {
				return nil
			}
			scored[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	recs := make([]ScoredRecommendation, 0, len(scored))
	for _, r := range scored {
		if r != nil {
			recs = append(recs, *r)
		}
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].TotalScore > recs[j].TotalScore })
	if len(e.cfg.PreferredTypes) > 0 {
		recs = e.preferTypes(recs)
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	e.logger.Info("recommended %d of %d objects for %s", len(recs), len(objects), date.Format("2006-01-02"))
	return recs, nil
}

// preferTypes is a stable partition: preferred types first.
func (e *Engine) preferTypes(recs []ScoredRecommendation) []ScoredRecommendation {
	out := make([]ScoredRecommendation, 0, len(recs))
	var rest []ScoredRecommendation
	for _, r := range recs {
		if e.cfg.prefers(r.Object.Type) {
			out = append(out, r)
		} else {
			rest = append(rest, r)
		}
	}
	return append(out, rest...)
}

// NightScore is an object's recommendation for one night.
type NightScore struct {
	Date           time.Time            `json:"date"`
	Recommendation ScoredRecommendation `json:"recommendation"`
}

// BestNights scores obj on each of nights consecutive nights from start and
// returns the observable ones, best first. Ties keep date order.
func (e *Engine) BestNights(ctx context.Context, obj catalog.DeepSkyObject, start time.Time, nights int) ([]NightScore, error) {
	if err := obj.Validate(); err != nil {
		return nil, fmt.Errorf("best nights: %w", err)
	}
	if nights <= 0 {
		return []NightScore{}, nil
	}

	results := make([]*ScoredRecommendation, nights)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range nights {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := e.ScoreObject(obj, start.AddDate(0, 0, i))
			if err != nil {
				return err
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("best nights: %w", err)
	}

	out := make([]NightScore, 0, nights)
	for i, r := range results {
		if r != nil {
			out = append(out, NightScore{Date: start.AddDate(0, 0, i), Recommendation: *r})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Recommendation.TotalScore > out[j].Recommendation.TotalScore
	})
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
