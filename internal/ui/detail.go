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

// DetailModel shows one recommendation in full.
type DetailModel struct {
	width  int
	height int
	rec    *planner.ScoredRecommendation
	curve  *astro.AltitudeCurve
	minAlt float64
	now    time.Time
}

// NewDetailModel creates an empty detail view.
func NewDetailModel() DetailModel {
	return DetailModel{}
}

// SetSize updates the viewport size.
func (m DetailModel) SetSize(width, height int) DetailModel {
	m.width = width
	m.height = height
	return m
}

// SetTarget shows rec with its altitude curve. minAlt marks the sparkline
// cells below the imaging limit.
func (m DetailModel) SetTarget(rec planner.ScoredRecommendation, curve *astro.AltitudeCurve, minAlt float64) DetailModel {
	m.rec = &rec
	m.curve = curve
	m.minAlt = minAlt
	return m
}

// SetNow moves the "now" marker.
func (m DetailModel) SetNow(t time.Time) DetailModel {
	m.now = t
	return m
}

// SelectedID returns the object shown, or "".
func (m DetailModel) SelectedID() string {
	if m.rec == nil {
		return ""
	}
	return m.rec.Object.ID
}

// Update handles messages.
func (m DetailModel) Update(tea.Msg) (DetailModel, tea.Cmd) {
	return m, nil
}

// View renders the detail view.
func (m DetailModel) View() string {
	if m.rec == nil {
		return dimStyle.Render("  Select a target with enter")
	}
	r := m.rec
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	field := func(label, value string) string {
		return "  " + labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Object.DisplayName()))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s in %s", r.Object.Type.Label(), r.Object.Constellation)))
	b.WriteString("\n\n")

	b.WriteString(field("Score", fmt.Sprintf("%.1f / 100", r.TotalScore)))
	b.WriteString(field("Window", windowLabel(r.ImagingWindow)))
	b.WriteString(field("Best altitude", fmt.Sprintf("%.0f° at az %.0f°", r.Object.Altitude, r.Object.Azimuth)))
	if !r.Object.TransitTime.IsZero() {
		b.WriteString(field("Transit", r.Object.TransitTime.Format("15:04")))
	}
	b.WriteString(field("Moon", fmt.Sprintf("%.0f° away", r.Object.MoonDistance)))
	f := r.Feasibility
	b.WriteString(field("Framing", fmt.Sprintf("%s (%.0f%% of field)", f.FOVFit, f.FillRatio*100)))
	b.WriteString(field("Exposure", fmt.Sprintf("%d x %.0f s", f.Exposure.Subs, f.Exposure.Sub.Seconds())))
	b.WriteString("\n")

	b.WriteString("  " + m.renderAltitudeSparkline())
	b.WriteString("\n\n")

	b.WriteString(m.renderBreakdown())

	notes := []struct {
		title string
		items []string
		style lipgloss.Style
	}{
		{"Why", r.Reasons, lipgloss.NewStyle().Foreground(lipgloss.Color("#3478C0"))},
		{"Watch out", r.Warnings, lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))},
		{"Tips", r.Tips, lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))},
	}
	for _, n := range notes {
		if len(n.items) == 0 {
			continue
		}
		b.WriteString("\n  " + n.style.Render(n.title) + "\n")
		for _, item := range n.items {
			b.WriteString("    · " + item + "\n")
		}
	}
	return b.String()
}

type breakdownRow struct {
	label string
	value float64
	max   float64
}

func breakdownRows(s planner.ScoreBreakdown) []breakdownRow {
	return []breakdownRow{
		{"Altitude", s.Altitude, planner.MaxAltitudePoints},
		{"Moon", s.Moon, planner.MaxMoonPoints},
		{"Season", s.Seasonal, planner.MaxSeasonalPoints},
		{"Size", s.Size, planner.MaxSizePoints},
		{"Brightness", s.Brightness, planner.MaxBrightnessPoints},
		{"Duration", s.Duration, planner.MaxDurationPoints},
		{"Equipment", s.Equipment, planner.MaxEquipmentPoints},
		{"Sky", s.LightPollution, planner.MaxLightPollutionPoints},
		{"Difficulty", s.Difficulty, planner.MaxDifficultyPoints},
		{"Transit", s.Transit, planner.MaxTransitPoints},
	}
}

func (m DetailModel) renderBreakdown() string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render("Score breakdown") + "\n")
	for _, row := range breakdownRows(m.rec.Breakdown) {
		b.WriteString(fmt.Sprintf("  %-11s %s %4.1f/%-2.0f\n",
			row.label, renderScoreBar(row.value/row.max*100, 10), row.value, row.max))
	}
	return b.String()
}

// SparklineWidth is the fixed width of the altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	altColorLow  = [3]uint8{0x1b, 0x2b, 0x4b}
	altColorMid  = [3]uint8{0x34, 0x78, 0xc0}
	altColorHigh = [3]uint8{0x8b, 0xe9, 0xff}
)

// renderAltitudeSparkline draws the target's altitude while the Sun is down.
// Cells below the imaging limit are grey.
func (m DetailModel) renderAltitudeSparkline() string {
	if m.curve == nil {
		return dimStyle.Render("No altitude curve")
	}
	night := nightSamples(m.curve.Samples)
	alts := resampleAltitude(night, SparklineWidth)
	if len(alts) == 0 {
		return dimStyle.Render("The Sun does not set")
	}

	var sb strings.Builder
	sb.WriteString(dimStyle.Render(night[0].Time.Format("15:04")) + " ")
	below := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	for _, alt := range alts {
		alt = max(0, min(alt, 90))
		t := alt / 90
		block := string(sparklineBlocks[min(int(t*7), 7)])
		if alt < m.minAlt {
			sb.WriteString(below.Render(block))
			continue
		}
		r, g, b := interpolateAltColor(t)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))).Render(block))
	}
	sb.WriteString(" " + dimStyle.Render(night[len(night)-1].Time.Format("15:04")))

	if !m.now.IsZero() && !m.now.Before(night[0].Time) && !m.now.After(night[len(night)-1].Time) {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  now: %.0f°", m.curve.AltitudeAt(m.now))))
	}
	return sb.String()
}

func nightSamples(samples []astro.AltitudeSample) []astro.AltitudeSample {
	first, last := -1, -1
	for i, s := range samples {
		if s.SunAltitude < astro.SunsetAltitude {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil
	}
	return samples[first : last+1]
}

// interpolateAltColor returns RGB color for altitude fraction t in [0, 1].
func interpolateAltColor(t float64) (uint8, uint8, uint8) {
	t = max(0, min(t, 1))
	lerp := func(a, b [3]uint8, s float64) (uint8, uint8, uint8) {
		return uint8(float64(a[0])*(1-s) + float64(b[0])*s),
			uint8(float64(a[1])*(1-s) + float64(b[1])*s),
			uint8(float64(a[2])*(1-s) + float64(b[2])*s)
	}
	if t < 0.5 {
		return lerp(altColorLow, altColorMid, t*2)
	}
	return lerp(altColorMid, altColorHigh, (t-0.5)*2)
}

// resampleAltitude averages samples into width buckets.
func resampleAltitude(samples []astro.AltitudeSample, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(samples)) / float64(width)
	for i := range width {
		startIdx := int(float64(i) * perBucket)
		endIdx := min(int(float64(i+1)*perBucket), len(samples))
		if startIdx >= endIdx {
			startIdx = min(startIdx, len(samples)-1)
			endIdx = startIdx + 1
		}

		sum := 0.0
		for j := startIdx; j < endIdx; j++ {
			sum += samples[j].Altitude
		}
		if n := endIdx - startIdx; n > 0 {
			result[i] = sum / float64(n)
		}
	}
	return result
}
