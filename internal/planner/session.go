package planner

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SlotStatus classifies a session slot relative to the current time.
type SlotStatus int

const (
	SlotPast   SlotStatus = iota // Window has ended
	SlotNow                      // Currently imaging
	SlotNext                     // Next upcoming slot
	SlotFuture                   // Later slot
)

// String returns the status name.
func (s SlotStatus) String() string {
	switch s {
	case SlotPast:
		return "PAST"
	case SlotNow:
		return "NOW"
	case SlotNext:
		return "NEXT"
	case SlotFuture:
		return "FUTURE"
	default:
		return "?"
	}
}

// MarshalText encodes the status name.
func (s SlotStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Slot is one accepted target in a session.
type Slot struct {
	ScoredRecommendation
	Status SlotStatus `json:"status"`
}

// SessionPlan is a set of targets with non-overlapping imaging windows,
// ordered by window start.
type SessionPlan struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Site        string    `json:"site"`
	Slots       []Slot    `json:"slots"`
	// Skipped lists candidates whose windows clashed with a better target.
	Skipped []string `json:"skipped,omitempty"`
}

// Window returns the span from the first slot start to the last slot end.
func (p *SessionPlan) Window() TimeWindow {
	var w TimeWindow
	for i, s := range p.Slots {
		if i == 0 || s.ImagingWindow.Start.Before(w.Start) {
			w.Start = s.ImagingWindow.Start
		}
		if s.ImagingWindow.End.After(w.End) {
			w.End = s.ImagingWindow.End
		}
	}
	return w
}

// ImagingTime returns the summed slot durations.
func (p *SessionPlan) ImagingTime() time.Duration {
	var d time.Duration
	for _, s := range p.Slots {
		d += s.ImagingWindow.Duration()
	}
	return d
}

// Classify sets each slot's status for now. Slots must be sorted by start.
func (p *SessionPlan) Classify(now time.Time) {
	foundNext := false
	for i := range p.Slots {
		w := p.Slots[i].ImagingWindow
		switch {
		case !now.Before(w.End):
			p.Slots[i].Status = SlotPast
		case w.Contains(now):
			p.Slots[i].Status = SlotNow
		case !foundNext:
			p.Slots[i].Status = SlotNext
			foundNext = true
		default:
			p.Slots[i].Status = SlotFuture
		}
	}
}

// Current returns the slot being imaged, or nil.
func (p *SessionPlan) Current() *Slot {
	for i := range p.Slots {
		if p.Slots[i].Status == SlotNow {
			return &p.Slots[i]
		}
	}
	return nil
}

// Next returns the next upcoming slot, or nil.
func (p *SessionPlan) Next() *Slot {
	for i := range p.Slots {
		if p.Slots[i].Status == SlotNext {
			return &p.Slots[i]
		}
	}
	return nil
}

// Recommendations returns the scheduled recommendations in slot order.
func (p *SessionPlan) Recommendations() []ScoredRecommendation {
	out := make([]ScoredRecommendation, len(p.Slots))
	for i, s := range p.Slots {
		out[i] = s.ScoredRecommendation
	}
	return out
}

// PlanSession picks targets greedily in score order, accepting each one
// whose imaging window does not overlap an accepted window. At most
// min(cfg.MaxTargets, maxTargets) targets are kept; a non-positive value on
// either side leaves that bound off. The result is sorted by window start.
func (e *Engine) PlanSession(recs []ScoredRecommendation, maxTargets int) *SessionPlan {
	limit := e.cfg.MaxTargets
	if maxTargets > 0 && (limit <= 0 || maxTargets < limit) {
		limit = maxTargets
	}

	candidates := make([]ScoredRecommendation, len(recs))
	copy(candidates, recs)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalScore > candidates[j].TotalScore
	})

	plan := &SessionPlan{
		ID:          uuid.New(),
		GeneratedAt: e.now(),
		Site:        e.site.Name,
		Slots:       []Slot{},
	}
	for _, c := range candidates {
		if limit > 0 && len(plan.Slots) >= limit {
			break
		}
		if c.ImagingWindow.IsZero() {
			continue
		}
		if clash(plan.Slots, c.ImagingWindow) {
			plan.Skipped = append(plan.Skipped, c.Object.ID)
			continue
		}
		plan.Slots = append(plan.Slots, Slot{ScoredRecommendation: c})
	}

	sort.SliceStable(plan.Slots, func(i, j int) bool {
		return plan.Slots[i].ImagingWindow.Start.Before(plan.Slots[j].ImagingWindow.Start)
	})
	plan.Classify(plan.GeneratedAt)

	e.metrics.SessionPlanned(len(plan.Slots))
	e.logger.Debug("planned session %s: %d targets, %d skipped", plan.ID, len(plan.Slots), len(plan.Skipped))
	return plan
}

func clash(slots []Slot, w TimeWindow) bool {
	for _, s := range slots {
		if s.ImagingWindow.Overlaps(w) {
			return true
		}
	}
	return false
}
