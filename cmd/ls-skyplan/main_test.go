package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// run executes the CLI with an isolated user config directory.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

var site = []string{"--lat", "40", "--lon", "-75", "--bortle", "4", "--date", "2024-10-02"}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 10, 2, 15, 4, 0, 0, time.UTC)
	zone := astro.MeanSolarZone(-75)

	got, err := parseDate("2024-10-02", -75, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 10, 2, 22, 0, 0, 0, zone), got)

	got, err = parseDate("", -75, now)
	require.NoError(t, err)
	assert.True(t, got.Equal(now))
	assert.Equal(t, zone.String(), got.Location().String())

	got, err = parseDate("tonight", -75, now)
	require.NoError(t, err)
	assert.Equal(t, 22, got.Hour())
	assert.Equal(t, 2, got.Day())

	got, err = parseDate("2024-10-03T04:00:00Z", -75, now)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 10, 3, 4, 0, 0, 0, time.UTC)))

	_, err = parseDate("next tuesday", -75, now)
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ls-skyplan 0.3.0")
}

func TestRecommendCmd(t *testing.T) {
	out, _, err := run(t, append([]string{"recommend", "-n", "5"}, site...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Recommendations for the night of 2024-10-02")
	assert.Contains(t, out, "Total: 5 targets")
}

func TestRecommendCmd_JSONAndTypes(t *testing.T) {
	out, _, err := run(t, append([]string{"recommend", "--json", "--type", "globular_cluster"}, site...)...)
	require.NoError(t, err)

	var report struct {
		Site struct {
			Name string `json:"name"`
		} `json:"site"`
		Recommendations []struct {
			Object struct {
				ID   string `json:"id"`
				Type string `json:"type"`
			} `json:"object"`
		} `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "40.000, -75.000", report.Site.Name)
	require.NotEmpty(t, report.Recommendations)
	for _, r := range report.Recommendations {
		assert.Equal(t, "globular_cluster", r.Object.Type, r.Object.ID)
	}

	_, _, err = run(t, append([]string{"recommend", "--type", "quasar"}, site...)...)
	assert.ErrorContains(t, err, "unknown object type")
}

func TestPlanCmd(t *testing.T) {
	out, _, err := run(t, append([]string{"plan", "--max", "3"}, site...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Twilight for the night of 2024-10-02")
	assert.Contains(t, out, "Session ")
}

func TestSearchCmd(t *testing.T) {
	out, _, err := run(t, "search", "andromeda")
	require.NoError(t, err)
	assert.Contains(t, out, "M31")

	out, _, err = run(t, "search", "--json", "m 42")
	require.NoError(t, err)
	var matches []struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.NotEmpty(t, matches)
	assert.Equal(t, "M42", matches[0].Object.ID)
}

func TestVisibilityCmd(t *testing.T) {
	out, _, err := run(t, append([]string{"visibility", "M31"}, site...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Visibility of M31")
	assert.Contains(t, out, "Score")
	assert.Contains(t, out, "Composite score")

	_, _, err = run(t, append([]string{"visibility", " "}, site...)...)
	assert.ErrorContains(t, err, "no object matches")
}

func TestNightsCmd(t *testing.T) {
	out, _, err := run(t, append([]string{"nights", "M31", "-n", "3"}, site...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Best nights for M31")
}

func TestTwilightCmd_JSON(t *testing.T) {
	out, _, err := run(t, append([]string{"twilight", "--json"}, site...)...)
	require.NoError(t, err)
	var tw astro.Twilight
	require.NoError(t, json.Unmarshal([]byte(out), &tw))
	assert.False(t, tw.IsPolarDay)
	assert.False(t, tw.AstronomicalDusk.IsZero())
}

func TestHorizonCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trees.txt")
	require.NoError(t, os.WriteFile(path, []byte("# trees\n0 10\n180 25\n"), 0o644))

	out, _, err := run(t, "horizon", path)
	require.NoError(t, err)
	assert.Contains(t, out, "trees: 2 points, highest 25.0°")

	out, _, err = run(t, "horizon")
	require.NoError(t, err)
	assert.Contains(t, out, "flat: 0 points")
}

func TestConfigFlagAndMetrics(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "skyplan.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[site]
name = "Farm"
latitude = 40.0
longitude = -75.0
bortle = 3
`), 0o644))

	out, errOut, err := run(t, "--config", cfgPath, "--metrics", "--date", "2024-10-02", "recommend", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 2 targets")
	assert.Contains(t, errOut, "skyplan_objects_scored_total")

	_, _, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "twilight")
	assert.Error(t, err)

	_, _, err = run(t, "--lat", "95", "twilight")
	assert.ErrorContains(t, err, "invalid settings")
}

func TestBrowseCmd_NeedsTerminal(t *testing.T) {
	_, _, err := run(t, append([]string{"browse"}, site...)...)
	assert.ErrorContains(t, err, "interactive terminal")
}
