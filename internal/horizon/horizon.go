// Package horizon models a site's local obstruction profile: trees, houses
// and hills described as altitude-by-azimuth points.
package horizon

import (
	"errors"
	"math"
	"sort"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// ErrNilHorizon is returned when adding points to a nil profile.
var ErrNilHorizon = errors.New("horizon: nil profile")

// Point is one azimuth/altitude pair of a horizon profile (degrees).
type Point struct {
	Azimuth  float64 `json:"azimuth"`
	Altitude float64 `json:"altitude"`
}

// CustomHorizon is a named obstruction profile. Points are kept sorted by
// azimuth with at most one point per normalized azimuth.
//
// A nil *CustomHorizon is the flat 0° horizon. CustomHorizon is not safe for
// concurrent mutation; share it read-only once built.
type CustomHorizon struct {
	Name string

	points []Point
	lookup map[float64]float64
}

var _ astro.HorizonProfile = (*CustomHorizon)(nil)

// New creates a horizon from points. Non-finite points are dropped.
func New(name string, points ...Point) *CustomHorizon {
	h := &CustomHorizon{Name: name}
	h.SetPoints(points...)
	return h
}

// AddPoint inserts or replaces the point at the normalized azimuth. A nil
// profile cannot grow and returns ErrNilHorizon.
func (h *CustomHorizon) AddPoint(azDeg, altDeg float64) error {
	if h == nil {
		return ErrNilHorizon
	}
	if err := astro.CheckFinite("azimuth", azDeg, "altitude", altDeg); err != nil {
		return err
	}
	az := astro.NormalizeDegrees(azDeg)
	replaced := false
	for i := range h.points {
		if h.points[i].Azimuth == az {
			h.points[i].Altitude = altDeg
			replaced = true
			break
		}
	}
	if !replaced {
		h.points = append(h.points, Point{Azimuth: az, Altitude: altDeg})
	}
	h.rebuild()
	return nil
}

// SetPoints replaces the whole profile. Later points win over earlier ones
// at the same normalized azimuth; non-finite points are dropped. It does
// nothing on a nil profile.
func (h *CustomHorizon) SetPoints(points ...Point) {
	if h == nil {
		return
	}
	byAz := make(map[float64]float64, len(points))
	for _, p := range points {
		if astro.CheckFinite("azimuth", p.Azimuth, "altitude", p.Altitude) != nil {
			continue
		}
		byAz[astro.NormalizeDegrees(p.Azimuth)] = p.Altitude
	}
	h.points = h.points[:0]
	for az, alt := range byAz {
		h.points = append(h.points, Point{Azimuth: az, Altitude: alt})
	}
	h.rebuild()
}

// RemovePoint deletes the point at the normalized azimuth and reports
// whether one existed. A nil profile has no points to remove.
func (h *CustomHorizon) RemovePoint(azDeg float64) bool {
	if h == nil {
		return false
	}
	az := astro.NormalizeDegrees(azDeg)
	for i := range h.points {
		if h.points[i].Azimuth == az {
			h.points = append(h.points[:i], h.points[i+1:]...)
			h.rebuild()
			return true
		}
	}
	return false
}

// Points returns a copy of the sorted profile.
func (h *CustomHorizon) Points() []Point {
	if h == nil {
		return nil
	}
	out := make([]Point, len(h.points))
	copy(out, h.points)
	return out
}

// Len returns the number of points.
func (h *CustomHorizon) Len() int {
	if h == nil {
		return 0
	}
	return len(h.points)
}

// Altitude returns the obstruction altitude at an azimuth. An empty profile
// is flat at 0°, a single point is constant, otherwise the two bracketing
// points are interpolated linearly, wrapping across north.
func (h *CustomHorizon) Altitude(azDeg float64) float64 {
	if h == nil || len(h.points) == 0 {
		return 0
	}
	if len(h.points) == 1 {
		return h.points[0].Altitude
	}

	az := astro.NormalizeDegrees(azDeg)
	if alt, ok := h.lookup[az]; ok {
		return alt
	}
	if math.IsNaN(az) {
		return math.NaN()
	}

	n := len(h.points)
	i := sort.Search(n, func(i int) bool { return h.points[i].Azimuth > az })
	lo := h.points[(i-1+n)%n]
	hi := h.points[i%n]

	span := astro.NormalizeDegrees(hi.Azimuth - lo.Azimuth)
	if span == 0 {
		return lo.Altitude
	}
	frac := astro.NormalizeDegrees(az-lo.Azimuth) / span
	return lo.Altitude + (hi.Altitude-lo.Altitude)*frac
}

// IsAboveHorizon reports whether altDeg clears the profile at azDeg.
// Sitting exactly on the profile is not visible.
func (h *CustomHorizon) IsAboveHorizon(altDeg, azDeg float64) bool {
	return altDeg > h.Altitude(azDeg)
}

// MaxAltitude returns the highest point of the profile, 0 when empty.
func (h *CustomHorizon) MaxAltitude() float64 {
	if h == nil || len(h.points) == 0 {
		return 0
	}
	maxAlt := h.points[0].Altitude
	for _, p := range h.points[1:] {
		maxAlt = math.Max(maxAlt, p.Altitude)
	}
	return maxAlt
}

func (h *CustomHorizon) rebuild() {
	sort.Slice(h.points, func(i, j int) bool {
		return h.points[i].Azimuth < h.points[j].Azimuth
	})
	h.lookup = make(map[float64]float64, len(h.points))
	for _, p := range h.points {
		h.lookup[p.Azimuth] = p.Altitude
	}
}
