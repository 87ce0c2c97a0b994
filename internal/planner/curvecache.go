package planner

import (
	"sync"
	"time"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/metrics"
)

// curveCacheSize bounds the number of cached curves. A full cache is
// dropped wholesale.
const curveCacheSize = 4096

type curveKey struct {
	ra, dec   float64
	at        int64 // UnixNano of the query instant
	darkLimit float64
}

// curveCache memoizes altitude curves and twilight for one engine. Curves
// depend on the exact query instant through the Moon terms, so keys carry
// it in full.
type curveCache struct {
	mu       sync.RWMutex
	curves   map[curveKey]*astro.AltitudeCurve
	twilight map[int64]astro.Twilight // keyed by noon reference
	metrics  *metrics.Metrics
}

func newCurveCache(m *metrics.Metrics) *curveCache {
	return &curveCache{
		curves:   make(map[curveKey]*astro.AltitudeCurve),
		twilight: make(map[int64]astro.Twilight),
		metrics:  m,
	}
}

// curve returns the cached curve for key or stores what compute returns.
// Callers must treat the result as read-only.
func (c *curveCache) curve(key curveKey, compute func() astro.AltitudeCurve) *astro.AltitudeCurve {
	c.mu.RLock()
	cv, ok := c.curves[key]
	c.mu.RUnlock()
	c.metrics.CurveLookup(ok)
	if ok {
		return cv
	}

	computed := compute()
	c.mu.Lock()
	defer c.mu.Unlock()
	if cv, ok := c.curves[key]; ok {
		return cv
	}
	if len(c.curves) >= curveCacheSize {
		c.curves = make(map[curveKey]*astro.AltitudeCurve)
	}
	c.curves[key] = &computed
	return &computed
}

// night returns the twilight of the night containing t.
func (c *curveCache) night(t time.Time, compute func() astro.Twilight) astro.Twilight {
	key := astro.NoonReference(t).UnixNano()
	c.mu.RLock()
	tw, ok := c.twilight[key]
	c.mu.RUnlock()
	if ok {
		return tw
	}

	tw = compute()
	c.mu.Lock()
	if len(c.twilight) >= curveCacheSize {
		c.twilight = make(map[int64]astro.Twilight)
	}
	c.twilight[key] = tw
	c.mu.Unlock()
	return tw
}

func (c *curveCache) clear() {
	c.mu.Lock()
	c.curves = make(map[curveKey]*astro.AltitudeCurve)
	c.twilight = make(map[int64]astro.Twilight)
	c.mu.Unlock()
}

func (c *curveCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.curves)
}
