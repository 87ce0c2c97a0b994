package planner

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skyplan/internal/astro"
)

func TestReport_WriteJSON(t *testing.T) {
	generated := time.Date(2024, 10, 2, 17, 0, 0, 0, time.UTC)
	e := newEngine(t, WithClock(func() time.Time { return generated }))

	rec, err := e.ScoreObject(m31(t), testNight())
	require.NoError(t, err)
	require.NotNil(t, rec)
	plan := e.PlanSession([]ScoredRecommendation{*rec}, 0)

	var buf bytes.Buffer
	require.NoError(t, e.NewReport(testNight(), []ScoredRecommendation{*rec}, plan).WriteJSON(&buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "2024-10-02T17:00:00Z", got["generated_at"])
	assert.Contains(t, got, "twilight")

	site := got["site"].(map[string]any)
	assert.Equal(t, "Test", site["name"])

	recs := got["recommendations"].([]any)
	require.Len(t, recs, 1)
	first := recs[0].(map[string]any)
	assert.Equal(t, "M31", first["object"].(map[string]any)["id"])
	assert.Contains(t, first, "score_breakdown")

	session := got["session"].(map[string]any)
	slots := session["slots"].([]any)
	require.Len(t, slots, 1)
	assert.Contains(t, []any{"PAST", "NOW", "NEXT", "FUTURE"}, slots[0].(map[string]any)["status"])
}

func TestReport_EmptyRecommendations(t *testing.T) {
	e := newEngine(t)
	var buf bytes.Buffer
	require.NoError(t, e.NewReport(testNight(), nil, nil).WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"recommendations": []`)
	assert.NotContains(t, buf.String(), `"session"`)
}

func TestExportJSON_Error(t *testing.T) {
	err := ExportJSON(&bytes.Buffer{}, map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode json")
}

func TestWriteRecommendations(t *testing.T) {
	var buf bytes.Buffer
	WriteRecommendations(&buf, nil, testNight())
	assert.Contains(t, buf.String(), "No observable targets")

	buf.Reset()
	recs := []ScoredRecommendation{rec("A", 90, 2, 5), rec("B", 80, 4, 6)}
	WriteRecommendations(&buf, recs, testNight())
	out := buf.String()
	assert.Contains(t, out, "Recommendations for the night of 2024-10-02")
	assert.Contains(t, out, "20:00-23:00")
	assert.Contains(t, out, "Total: 2 targets")
	assert.Less(t, strings.Index(out, " A "), strings.Index(out, " B "))
}

func TestWriteSession(t *testing.T) {
	now := sessionBase.Add(3 * time.Hour)
	e := newEngine(t, WithClock(func() time.Time { return now }))
	plan := e.PlanSession(candidates(), 0)

	var buf bytes.Buffer
	WriteSession(&buf, plan)
	out := buf.String()
	assert.Contains(t, out, "NOW")
	assert.Contains(t, out, "Total: 3 targets, 7.0 h imaging over 18:00-01:00")
	assert.Contains(t, out, "Skipped (window clash): B")

	buf.Reset()
	WriteSession(&buf, e.PlanSession(nil, 0))
	assert.Contains(t, buf.String(), "No targets scheduled")
}

func TestWriteVisibility(t *testing.T) {
	transit := time.Date(2024, 10, 2, 23, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	WriteVisibility(&buf, "M31 Andromeda Galaxy", astro.TargetVisibility{
		Altitude:         45,
		TransitTime:      transit,
		TransitAltitude:  89,
		IsCircumpolar:    true,
		DarkImagingHours: 8.5,
	})
	out := buf.String()
	assert.Contains(t, out, "Visibility of M31 Andromeda Galaxy")
	assert.Contains(t, out, "23:30")
	assert.Contains(t, out, "--:--")
	assert.Contains(t, out, "8.5 h")
	assert.Contains(t, out, "Circumpolar")
}

func TestWriteTwilight(t *testing.T) {
	e := newEngine(t)
	var buf bytes.Buffer
	WriteTwilight(&buf, e.Twilight(testNight()))
	out := buf.String()
	assert.Contains(t, out, "Twilight for the night of 2024-10-02")
	assert.Contains(t, out, "Astronomical")
	assert.Contains(t, out, "Dark hours:")
	assert.NotContains(t, out, "Polar")

	buf.Reset()
	WriteTwilight(&buf, astro.Twilight{IsPolarDay: true})
	assert.Contains(t, buf.String(), "Polar day")
}

func TestTruncateStr(t *testing.T) {
	assert.Equal(t, "M31", truncateStr("M31", 10))
	assert.Equal(t, "Androme..", truncateStr("Andromeda Galaxy", 9))
	assert.Equal(t, "An", truncateStr("Andromeda", 2))
	assert.Equal(t, "Ωmeg..", truncateStr("Ωmega Nebula", 6))
}
