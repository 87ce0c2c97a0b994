package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/planner"
)

var slotStyles = map[planner.SlotStatus]lipgloss.Style{
	planner.SlotPast:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	planner.SlotNow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FF")).Bold(true),
	planner.SlotNext:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")),
	planner.SlotFuture: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
}

// SessionModel shows the night's imaging schedule.
type SessionModel struct {
	width    int
	height   int
	plan     *planner.SessionPlan
	twilight astro.Twilight
}

// NewSessionModel creates an empty session view.
func NewSessionModel() SessionModel {
	return SessionModel{}
}

// SetSize updates the viewport size.
func (m SessionModel) SetSize(width, height int) SessionModel {
	m.width = width
	m.height = height
	return m
}

// SetPlan replaces the plan and the night's twilight.
func (m SessionModel) SetPlan(plan *planner.SessionPlan, tw astro.Twilight) SessionModel {
	m.plan = plan
	m.twilight = tw
	return m
}

// Reclassify updates slot statuses for now.
func (m SessionModel) Reclassify(now time.Time) SessionModel {
	if m.plan != nil {
		m.plan.Classify(now)
	}
	return m
}

// Update handles messages.
func (m SessionModel) Update(tea.Msg) (SessionModel, tea.Cmd) {
	return m, nil
}

// View renders the schedule.
func (m SessionModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Imaging Session"))
	b.WriteString("\n")
	b.WriteString(m.renderTwilight())
	b.WriteString("\n")

	if m.plan == nil || len(m.plan.Slots) == 0 {
		b.WriteString(dimStyle.Render("  No targets scheduled"))
		b.WriteString("\n")
		return b.String()
	}

	header := fmt.Sprintf("%-7s %-11s %-26s %5s %-9s", "Status", "Window", "Object", "Score", "Subs")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	for _, s := range m.plan.Slots {
		exp := s.Feasibility.Exposure
		line := fmt.Sprintf("%-7s %-11s %-26s %5.1f %-9s",
			s.Status,
			windowLabel(s.ImagingWindow),
			truncate(s.Object.DisplayName(), 26),
			s.TotalScore,
			fmt.Sprintf("%dx%.0fs", exp.Subs, exp.Sub.Seconds()),
		)
		style, ok := slotStyles[s.Status]
		if !ok {
			style = rowStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d targets, %.1f h imaging",
		len(m.plan.Slots), m.plan.ImagingTime().Hours())))
	b.WriteString("\n")
	if len(m.plan.Skipped) > 0 {
		b.WriteString(dimStyle.Render("  Skipped: " + strings.Join(m.plan.Skipped, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m SessionModel) renderTwilight() string {
	tw := m.twilight
	switch {
	case tw.IsPolarDay:
		return dimStyle.Render("  Polar day: the Sun does not set") + "\n"
	case tw.IsPolarNight:
		return dimStyle.Render("  Polar night: the Sun does not rise") + "\n"
	}
	clock := func(t time.Time) string {
		if t.IsZero() {
			return "--:--"
		}
		return t.Format("15:04")
	}
	return dimStyle.Render(fmt.Sprintf("  Sunset %s · Dark %s-%s · Sunrise %s · %.1f h dark",
		clock(tw.Sunset), clock(tw.AstronomicalDusk), clock(tw.AstronomicalDawn),
		clock(tw.Sunrise), tw.DarkHours())) + "\n"
}
