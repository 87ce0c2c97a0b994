package planner

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// Report is the JSON-serializable result of one planning run.
type Report struct {
	GeneratedAt     time.Time              `json:"generated_at"`
	Date            time.Time              `json:"date"`
	Site            ObservingSite          `json:"site"`
	Equipment       EquipmentProfile       `json:"equipment"`
	Twilight        astro.Twilight         `json:"twilight"`
	Recommendations []ScoredRecommendation `json:"recommendations"`
	Session         *SessionPlan           `json:"session,omitempty"`
}

// NewReport bundles recommendations and an optional session for export.
func (e *Engine) NewReport(date time.Time, recs []ScoredRecommendation, plan *SessionPlan) *Report {
	if recs == nil {
		recs = []ScoredRecommendation{}
	}
	return &Report{
		GeneratedAt:     e.now(),
		Date:            date,
		Site:            e.site,
		Equipment:       e.equipment,
		Twilight:        e.Twilight(date),
		Recommendations: recs,
		Session:         plan,
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	return ExportJSON(w, r)
}

// ExportJSON writes v as indented JSON.
func ExportJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

const ruleWidth = 86

// WriteRecommendations writes a ranked text table.
func WriteRecommendations(w io.Writer, recs []ScoredRecommendation, date time.Time) {
	fmt.Fprintf(w, "Recommendations for the night of %s\n", date.Format("2006-01-02"))
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	if len(recs) == 0 {
		fmt.Fprintln(w, "No observable targets")
		return
	}

	fmt.Fprintf(w, "%-3s %-28s %-18s %5s %-11s %5s %-9s\n",
		"#", "Object", "Type", "Score", "Window", "Alt", "Fit")
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	for i, r := range recs {
		fmt.Fprintf(w, "%-3d %-28s %-18s %5.1f %-11s %4.0f° %-9s\n",
			i+1,
			truncateStr(r.Object.DisplayName(), 28),
			truncateStr(r.Object.Type.Label(), 18),
			r.TotalScore,
			formatWindow(r.ImagingWindow),
			r.Object.Altitude,
			r.Feasibility.FOVFit,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d targets\n", len(recs))
}

// WriteSession writes a session plan in window order.
func WriteSession(w io.Writer, plan *SessionPlan) {
	fmt.Fprintf(w, "Session %s @ %s\n", plan.ID, plan.Site)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	if len(plan.Slots) == 0 {
		fmt.Fprintln(w, "No targets scheduled")
		return
	}

	fmt.Fprintf(w, "%-6s %-11s %-28s %5s %-8s %s\n",
		"Status", "Window", "Object", "Score", "Subs", "Notes")
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	for _, s := range plan.Slots {
		exp := s.Feasibility.Exposure
		note := ""
		if len(s.Warnings) > 0 {
			note = s.Warnings[0]
		}
		fmt.Fprintf(w, "%-6s %-11s %-28s %5.1f %-8s %s\n",
			s.Status,
			formatWindow(s.ImagingWindow),
			truncateStr(s.Object.DisplayName(), 28),
			s.TotalScore,
			fmt.Sprintf("%dx%.0fs", exp.Subs, exp.Sub.Seconds()),
			note,
		)
	}

	win := plan.Window()
	fmt.Fprintf(w, "\nTotal: %d targets, %.1f h imaging over %s\n",
		len(plan.Slots), plan.ImagingTime().Hours(), formatWindow(win))
	if len(plan.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped (window clash): %s\n", strings.Join(plan.Skipped, ", "))
	}
}

// WriteVisibility writes a visibility summary for one target.
func WriteVisibility(w io.Writer, name string, vis astro.TargetVisibility) {
	fmt.Fprintf(w, "Visibility of %s\n", name)
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-18s %6.1f°\n", "Altitude", vis.Altitude)
	fmt.Fprintf(w, "%-18s %6.1f°\n", "Azimuth", vis.Azimuth)
	fmt.Fprintf(w, "%-18s %s\n", "Rise", formatClock(vis.RiseTime))
	fmt.Fprintf(w, "%-18s %s\n", "Transit", formatClock(vis.TransitTime))
	fmt.Fprintf(w, "%-18s %s\n", "Set", formatClock(vis.SetTime))
	fmt.Fprintf(w, "%-18s %6.1f°\n", "Transit altitude", vis.TransitAltitude)
	fmt.Fprintf(w, "%-18s %6.1f h\n", "Dark imaging", vis.DarkImagingHours)
	switch {
	case vis.IsCircumpolar:
		fmt.Fprintln(w, "Circumpolar: never sets")
	case vis.NeverRises:
		fmt.Fprintln(w, "Never rises at this latitude")
	}
}

// WriteTwilight writes the dusk and dawn times of one night.
func WriteTwilight(w io.Writer, tw astro.Twilight) {
	fmt.Fprintf(w, "Twilight for the night of %s\n", tw.Reference.Format("2006-01-02"))
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-14s %-7s %-7s\n", "", "Dusk", "Dawn")
	rows := []struct {
		label      string
		dusk, dawn time.Time
	}{
		{"Sun", tw.Sunset, tw.Sunrise},
		{"Civil", tw.CivilDusk, tw.CivilDawn},
		{"Nautical", tw.NauticalDusk, tw.NauticalDawn},
		{"Astronomical", tw.AstronomicalDusk, tw.AstronomicalDawn},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-14s %-7s %-7s\n", r.label, formatClock(r.dusk), formatClock(r.dawn))
	}
	switch {
	case tw.IsPolarDay:
		fmt.Fprintln(w, "Polar day: the Sun does not set")
	case tw.IsPolarNight:
		fmt.Fprintln(w, "Polar night: the Sun does not rise")
	}
	fmt.Fprintf(w, "Dark hours: %.1f\n", tw.DarkHours())
}

func formatClock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}

func formatWindow(win TimeWindow) string {
	if win.IsZero() {
		return "--:--"
	}
	return formatClock(win.Start) + "-" + formatClock(win.End)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
