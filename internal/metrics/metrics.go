// Package metrics exposes Prometheus instrumentation for scoring, search and
// planning. A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "skyplan"

// Score outcomes.
const (
	ResultScored        = "scored"
	ResultNotObservable = "not_observable"
	ResultInvalid       = "invalid"
)

// Metrics holds the collectors.
type Metrics struct {
	ObjectsTotal   *prometheus.CounterVec
	ScoreDuration  prometheus.Histogram
	IndexBuilds    prometheus.Counter
	IndexCache     *prometheus.CounterVec
	CurveCache     *prometheus.CounterVec
	SearchQueries  *prometheus.CounterVec
	SessionTargets prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ObjectsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "objects_scored_total",
				Help:      "Catalog objects scored, by outcome",
			},
			[]string{"result"}, // "scored" / "not_observable" / "invalid"
		),
		ScoreDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "score_duration_seconds",
				Help:      "Time to score one object for one night",
				Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
			},
		),
		IndexBuilds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_index_builds_total",
				Help:      "Search index rebuilds",
			},
		),
		IndexCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_index_cache_total",
				Help:      "Search index cache hits and misses",
			},
			[]string{"result"}, // "hit" / "miss"
		),
		CurveCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "curve_cache_total",
				Help:      "Altitude curve cache hits and misses",
			},
			[]string{"result"},
		),
		SearchQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_queries_total",
				Help:      "Catalog searches, by mode",
			},
			[]string{"mode"},
		),
		SessionTargets: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "session_targets",
				Help:      "Targets accepted into a session plan",
				Buckets:   prometheus.LinearBuckets(0, 2, 10),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.ObjectsTotal,
			m.ScoreDuration,
			m.IndexBuilds,
			m.IndexCache,
			m.CurveCache,
			m.SearchQueries,
			m.SessionTargets,
		)
	}
	return m
}

// ObserveScore records one scoring call.
func (m *Metrics) ObserveScore(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.ObjectsTotal.WithLabelValues(result).Inc()
	m.ScoreDuration.Observe(d.Seconds())
}

// CacheLookup records a search index cache lookup.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	m.IndexCache.WithLabelValues(hitLabel(hit)).Inc()
}

// CurveLookup records an altitude curve cache lookup.
func (m *Metrics) CurveLookup(hit bool) {
	if m == nil {
		return
	}
	m.CurveCache.WithLabelValues(hitLabel(hit)).Inc()
}

func hitLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// IndexBuilt records a search index build.
func (m *Metrics) IndexBuilt() {
	if m == nil {
		return
	}
	m.IndexBuilds.Inc()
}

// SearchQuery records a catalog search.
func (m *Metrics) SearchQuery(mode string) {
	if m == nil {
		return
	}
	m.SearchQueries.WithLabelValues(mode).Inc()
}

// SessionPlanned records the size of a session plan.
func (m *Metrics) SessionPlanned(targets int) {
	if m == nil {
		return
	}
	m.SessionTargets.Observe(float64(targets))
}

// WriteText dumps everything g gathers in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
