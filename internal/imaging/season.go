package imaging

import (
	"math"
	"time"

	"github.com/litescript/ls-skyplan/internal/catalog"
)

// MoonImpact rates how much moonlight hurts an exposure, from 0 (severe) to
// 1 (none). illumination is in percent, separation in degrees. Below 5%
// illumination the Moon is ignored; otherwise the required separation grows
// to 90° at full moon and the penalty falls off quadratically inside it.
func MoonImpact(illuminationPct, separationDeg float64) float64 {
	if math.IsNaN(illuminationPct) || math.IsNaN(separationDeg) {
		return math.NaN()
	}
	if illuminationPct < 5 {
		return 1
	}
	required := illuminationPct / 100 * 90
	if separationDeg >= required {
		return 1
	}
	if separationDeg <= 0 {
		return 0
	}
	r := separationDeg / required
	return r * r
}

// SeasonalScore rates month against an object's best months: 1 in season,
// falling linearly to 0 six months away. Objects without seasonal data are
// neutral (0.5).
func SeasonalScore(best []time.Month, month time.Month) float64 {
	if len(best) == 0 {
		return 0.5
	}
	nearest := 12
	for _, m := range best {
		d := int(month) - int(m)
		if d < 0 {
			d = -d
		}
		if d > 6 {
			d = 12 - d
		}
		nearest = min(nearest, d)
	}
	return math.Max(0, 1-float64(nearest)/6)
}

// BestMonths looks up the best imaging months of a built-in catalog object.
func BestMonths(id string) []time.Month {
	return catalog.Builtin().BestMonths(id)
}
