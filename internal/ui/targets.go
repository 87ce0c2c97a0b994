package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyplan/internal/planner"
)

// Styles for the target list
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	scoreBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD"))
)

// TargetsModel is the ranked target list.
type TargetsModel struct {
	width  int
	height int
	cursor int
	offset int
	recs   []planner.ScoredRecommendation
	err    error
}

// NewTargetsModel creates an empty target list.
func NewTargetsModel() TargetsModel {
	return TargetsModel{}
}

// SetSize updates the viewport size.
func (m TargetsModel) SetSize(width, height int) TargetsModel {
	m.width = width
	m.height = height
	return m
}

// SetRecommendations replaces the list and resets the cursor.
func (m TargetsModel) SetRecommendations(recs []planner.ScoredRecommendation) TargetsModel {
	m.recs = recs
	m.cursor = 0
	m.offset = 0
	m.err = nil
	return m
}

// SetError sets the last error for display.
func (m TargetsModel) SetError(err error) TargetsModel {
	m.err = err
	return m
}

// Selected returns the recommendation under the cursor.
func (m TargetsModel) Selected() (planner.ScoredRecommendation, bool) {
	if m.cursor < 0 || m.cursor >= len(m.recs) {
		return planner.ScoredRecommendation{}, false
	}
	return m.recs[m.cursor], true
}

// Move shifts the cursor by delta, clamped to the list.
func (m TargetsModel) Move(delta int) TargetsModel {
	if len(m.recs) == 0 {
		return m
	}
	m.cursor = max(0, min(m.cursor+delta, len(m.recs)-1))
	m.offset = scrollOffset(m.cursor, m.offset, m.visibleRows())
	return m
}

// Update handles messages.
func (m TargetsModel) Update(msg tea.Msg) (TargetsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.recs)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if len(m.recs) > 0 {
			m.cursor = len(m.recs) - 1
		}
	case "enter":
		if rec, ok := m.Selected(); ok {
			return m, func() tea.Msg { return OpenTargetMsg{ID: rec.Object.ID} }
		}
	}
	m.offset = scrollOffset(m.cursor, m.offset, m.visibleRows())
	return m, nil
}

func (m TargetsModel) visibleRows() int {
	rows := m.height - 4
	if rows < 1 {
		return len(m.recs)
	}
	return rows
}

// scrollOffset keeps cursor inside a window of rows lines.
func scrollOffset(cursor, offset, rows int) int {
	if rows <= 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+rows {
		return cursor - rows + 1
	}
	return offset
}

// View renders the list.
func (m TargetsModel) View() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(titleStyle.Render("Recommended Targets"))
	b.WriteString("\n")

	if len(m.recs) == 0 {
		b.WriteString(dimStyle.Render("  No observable targets for this night"))
		b.WriteString("\n")
		return b.String()
	}

	header := fmt.Sprintf("%-3s %-26s %-16s %-12s %-11s %5s",
		"#", "Object", "Type", "Score", "Window", "Alt")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	end := min(len(m.recs), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		r := m.recs[i]
		line := fmt.Sprintf("%-3d %-26s %-16s %s %4.0f %-11s %4.0f°",
			i+1,
			truncate(r.Object.DisplayName(), 26),
			truncate(r.Object.Type.Label(), 16),
			renderScoreBar(r.TotalScore, 6),
			r.TotalScore,
			windowLabel(r.ImagingWindow),
			r.Object.Altitude,
		)
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if end < len(m.recs) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(m.recs)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderScoreBar draws a 0-100 score as a bar of width cells.
func renderScoreBar(score float64, width int) string {
	filled := int(score / 100 * float64(width))
	filled = max(0, min(filled, width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return "[" + scoreBarStyle.Render(bar) + "]"
}

func windowLabel(w planner.TimeWindow) string {
	if w.IsZero() {
		return "--:--"
	}
	return w.Start.Format("15:04") + "-" + w.End.Format("15:04")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
