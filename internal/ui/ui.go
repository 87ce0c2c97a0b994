// Package ui provides the terminal target browser using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/catalog"
	"github.com/litescript/ls-skyplan/internal/planner"
	"github.com/litescript/ls-skyplan/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewTargets ViewMode = iota
	ViewDetail
	ViewSession
)

const viewCount = 3

// Msg types for Bubble Tea
type (
	// TickMsg drives the clock and spinner.
	TickMsg time.Time

	// OpenTargetMsg requests the detail view for an object.
	OpenTargetMsg struct {
		ID string
	}

	// NightLoadedMsg carries the results for one night.
	NightLoadedMsg struct {
		Date     time.Time
		Recs     []planner.ScoredRecommendation
		Plan     *planner.SessionPlan
		Twilight astro.Twilight
		Err      error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	engine *planner.Engine
	cat    *catalog.Catalog
	limit  int
	now    func() time.Time

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	loading  bool
	animTick int
	date     time.Time
	recs     []planner.ScoredRecommendation

	targets TargetsModel
	detail  DetailModel
	session SessionModel
}

// New creates the root model. Results for date are computed on Init.
func New(engine *planner.Engine, cat *catalog.Catalog, date time.Time, limit int) Model {
	return Model{
		engine:   engine,
		cat:      cat,
		limit:    limit,
		now:      time.Now,
		date:     date,
		viewMode: ViewTargets,
		loading:  true,
		targets:  NewTargetsModel(),
		detail:   NewDetailModel(),
		session:  NewSessionModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), loadNight(m.engine, m.cat, m.date, m.limit))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "t":
			m.viewMode = ViewTargets
		case "2", "d":
			m.openSelected()
		case "3", "s":
			m.viewMode = ViewSession
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
			if m.viewMode == ViewDetail {
				m.openSelected()
			}
		case "esc":
			m.viewMode = ViewTargets

		case "[", "]":
			if !m.loading {
				days := 1
				if msg.String() == "[" {
					days = -1
				}
				m.date = m.date.AddDate(0, 0, days)
				m.loading = true
				cmds = append(cmds, loadNight(m.engine, m.cat, m.date, m.limit))
			}

		case "n", "p":
			if m.viewMode == ViewDetail {
				delta := 1
				if msg.String() == "p" {
					delta = -1
				}
				m.targets = m.targets.Move(delta)
				m.openSelected()
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo and status take ~11 lines, footer ~2 lines
		contentHeight := msg.Height - 13
		m.targets = m.targets.SetSize(msg.Width, contentHeight)
		m.detail = m.detail.SetSize(msg.Width, contentHeight)
		m.session = m.session.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.animTick++
		now := m.now()
		m.detail = m.detail.SetNow(now)
		m.session = m.session.Reclassify(now)

	case NightLoadedMsg:
		if !msg.Date.Equal(m.date) {
			break // superseded by a later request
		}
		m.loading = false
		if msg.Err != nil {
			m.targets = m.targets.SetError(msg.Err)
			break
		}
		m.recs = msg.Recs
		m.targets = m.targets.SetRecommendations(msg.Recs)
		m.session = m.session.SetPlan(msg.Plan, msg.Twilight).Reclassify(m.now())
		if m.viewMode == ViewDetail {
			m.openSelected()
		}

	case OpenTargetMsg:
		m.openTarget(msg.ID)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// openSelected shows the target under the list cursor.
func (m *Model) openSelected() {
	rec, ok := m.targets.Selected()
	if !ok {
		m.viewMode = ViewDetail
		m.detail = NewDetailModel().SetSize(m.width, m.height-13)
		return
	}
	m.openTarget(rec.Object.ID)
}

func (m *Model) openTarget(id string) {
	for _, rec := range m.recs {
		if rec.Object.ID != id {
			continue
		}
		curve := m.engine.Curve(rec.Object.Target(), m.date)
		m.detail = m.detail.SetTarget(rec, curve, m.engine.Config().MinAltitude).SetNow(m.now())
		m.viewMode = ViewDetail
		return
	}
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewTargets:
		m.targets, cmd = m.targets.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewSession:
		m.session, cmd = m.session.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewTargets:
		content = m.targets.View()
	case ViewDetail:
		content = m.detail.View()
	case ViewSession:
		content = m.session.View()
	}

	return m.renderLogo() + m.renderTabs() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗      ███████╗██╗  ██╗██╗   ██╗██████╗ ██╗      █████╗ ███╗   ██╗`,
		`  ██║     ██╔════╝      ██╔════╝██║ ██╔╝╚██╗ ██╔╝██╔══██╗██║     ██╔══██╗████╗  ██║`,
		`  ██║     ███████╗█████╗███████╗█████╔╝  ╚████╔╝ ██████╔╝██║     ███████║██╔██╗ ██║`,
		`  ██║     ╚════██║╚════╝╚════██║██╔═██╗   ╚██╔╝  ██╔═══╝ ██║     ██╔══██║██║╚██╗██║`,
		`  ███████╗███████║      ███████║██║  ██╗   ██║   ██║     ███████╗██║  ██║██║ ╚████║`,
		`  ╚══════╝╚══════╝      ╚══════╝╚═╝  ╚═╝   ╚═╝   ╚═╝     ╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝`,
	}

	var b strings.Builder
	b.WriteString("\n")
	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	site := m.engine.Site()
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Astrophotography planner · %s · night of %s",
		site.Name, m.date.Format("Mon 2006-01-02"))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  v%s | %s", version.Version, m.engine.Equipment().Name)))
	b.WriteString("\n\n")
	return b.String()
}

// gradientColor maps a logo cell to a blue-violet-pink gradient that
// darkens toward the bottom rows.
func gradientColor(col, row, width, height int) string {
	x := float64(col) / float64(width)
	y := float64(row) / float64(height)

	stops := [][3]float64{{59, 130, 246}, {139, 92, 246}, {217, 70, 239}, {236, 72, 153}}
	seg := min(int(x*3), 2)
	t := x*3 - float64(seg)
	fade := 1 - y*0.5

	var rgb [3]int
	for i := range rgb {
		v := (stops[seg][i] + t*(stops[seg+1][i]-stops[seg][i])) * fade
		rgb[i] = max(0, min(int(v), 255))
	}
	return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Targets", "[2] Detail", "[3] Session"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ") + "\n"
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m Model) renderFooter() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	var status string
	if m.loading {
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)]) + dimStyle.Render(" scoring targets...")
	} else {
		status = dimStyle.Render(fmt.Sprintf("%d targets", len(m.recs)))
	}

	var help string
	switch m.viewMode {
	case ViewDetail:
		help = "n/p: next/prev target | esc: back"
	case ViewSession:
		help = "[/]: prev/next night"
	default:
		help = "↑↓: navigate | enter: detail | [/]: prev/next night"
	}
	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help+" | q: quit")
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// loadNight scores the catalog for date and plans a session from the result.
func loadNight(engine *planner.Engine, cat *catalog.Catalog, date time.Time, limit int) tea.Cmd {
	return func() tea.Msg {
		recs, err := engine.Recommend(context.Background(), cat, date, limit)
		if err != nil {
			return NightLoadedMsg{Date: date, Err: err}
		}
		return NightLoadedMsg{
			Date:     date,
			Recs:     recs,
			Plan:     engine.PlanSession(recs, 0),
			Twilight: engine.Twilight(date),
		}
	}
}
