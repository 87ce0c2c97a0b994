package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skyplan/internal/astro"
)

func TestBuiltin_Messier(t *testing.T) {
	c := Builtin()

	messier := c.Filter(func(o DeepSkyObject) bool {
		return strings.HasPrefix(o.ID, "M") && !strings.HasPrefix(o.ID, "Mel")
	})
	assert.Len(t, messier, 110)
	assert.Greater(t, c.Len(), 110)

	for _, o := range c.Objects() {
		require.NoError(t, o.Validate(), o.ID)
		major, minor, ok := o.Size()
		assert.True(t, ok, o.ID)
		assert.LessOrEqual(t, minor, major, o.ID)
		assert.NotEmpty(t, o.Constellation, o.ID)
	}
}

func TestBuiltin_Coordinates(t *testing.T) {
	m31, ok := Builtin().Get("M31")
	require.True(t, ok)
	assert.Equal(t, "Andromeda Galaxy", m31.Name)
	assert.Equal(t, Galaxy, m31.Type)
	assert.InDelta(t, 10.675, m31.RA, 1e-6)
	assert.InDelta(t, 41.2667, m31.Dec, 1e-3)

	m42, ok := Builtin().Get("M42")
	require.True(t, ok)
	assert.Less(t, m42.Dec, 0.0)
}

func TestBuiltin_SharedInstance(t *testing.T) {
	assert.Same(t, Builtin(), Builtin())
}

func TestGet_NormalizesID(t *testing.T) {
	c := Builtin()
	for _, id := range []string{"m31", "M 31", " m31 ", "ngc7000", "NGC 7000", "sh2-155"} {
		_, ok := c.Get(id)
		assert.True(t, ok, id)
	}
	_, ok := c.Get("M111")
	assert.False(t, ok)
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := Builtin()
	o, ok := c.Get("M31")
	require.True(t, ok)

	*o.Magnitude = 99
	o.AlternateNames[0] = "mutated"
	o.Name = "mutated"

	again, _ := c.Get("M31")
	assert.Equal(t, 3.4, *again.Magnitude)
	assert.Equal(t, "NGC 224", again.AlternateNames[0])
	assert.Equal(t, "Andromeda Galaxy", again.Name)
}

func TestNew_RejectsBadInput(t *testing.T) {
	good := DeepSkyObject{ID: "X1", RA: 10, Dec: 10}

	_, err := New([]DeepSkyObject{good, {ID: "x 1", RA: 20, Dec: 20}})
	assert.ErrorContains(t, err, "duplicate object id")

	_, err = New([]DeepSkyObject{{ID: "X2", RA: 10, Dec: 95}})
	assert.True(t, errors.Is(err, astro.ErrInvalidInput))

	_, err = New([]DeepSkyObject{{Name: "anonymous", RA: 10, Dec: 10}})
	assert.ErrorContains(t, err, "missing id")
}

func TestMerge_OverridesByID(t *testing.T) {
	base, err := New([]DeepSkyObject{
		{ID: "A", Name: "first", RA: 1, Dec: 1},
		{ID: "B", Name: "second", RA: 2, Dec: 2},
	})
	require.NoError(t, err)
	extra, err := New([]DeepSkyObject{
		{ID: "b", Name: "replaced", RA: 3, Dec: 3},
		{ID: "C", Name: "third", RA: 4, Dec: 4},
	})
	require.NoError(t, err)

	merged := base.Merge(extra)
	require.Equal(t, 3, merged.Len())

	names := make([]string, 0, 3)
	for _, o := range merged.Objects() {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"first", "replaced", "third"}, names)
	assert.Equal(t, 2, base.Len())
}

func TestByTypeAndTypes(t *testing.T) {
	c := Builtin()
	globs := c.ByType(GlobularCluster)
	assert.NotEmpty(t, globs)
	for _, o := range globs {
		assert.Equal(t, GlobularCluster, o.Type)
	}

	types := c.Types()
	assert.Contains(t, types, Galaxy)
	assert.Contains(t, types, PlanetaryNebula)
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1], types[i])
	}
}

func TestBestMonths(t *testing.T) {
	c := Builtin()
	m := c.BestMonths("m 31")
	assert.Contains(t, m, time.October)

	m[0] = time.March
	assert.NotEqual(t, time.March, c.BestMonths("M31")[0])

	assert.Nil(t, c.BestMonths("nope"))
}

func TestObjectType_Helpers(t *testing.T) {
	assert.Equal(t, "Emission Nebula", EmissionNebula.Label())
	assert.Equal(t, "Galaxy", Galaxy.Label())
	assert.Equal(t, "Unknown", ObjectType("").Label())
	assert.Equal(t, "A", ObjectType("_a_").Label()[1:2])

	assert.True(t, SupernovaRemnant.IsNebula())
	assert.False(t, Galaxy.IsNebula())
	assert.True(t, Asterism.IsCluster())
	assert.False(t, DarkNebula.IsCluster())
}

func TestDeepSkyObject_Accessors(t *testing.T) {
	o := DeepSkyObject{ID: "NGC 1", RA: 1, Dec: 2}
	assert.Equal(t, "NGC 1", o.DisplayName())
	assert.Equal(t, 12.0, o.MagnitudeOr(12))
	_, _, ok := o.Size()
	assert.False(t, ok)

	o.Name = "Tiny"
	o.Magnitude = Float(13.2)
	o.SizeMax = Float(2.5)
	assert.Equal(t, "NGC 1 Tiny", o.DisplayName())
	assert.Equal(t, 13.2, o.MagnitudeOr(12))
	major, minor, ok := o.Size()
	assert.True(t, ok)
	assert.Equal(t, 2.5, major)
	assert.Equal(t, 2.5, minor)
	assert.Equal(t, astro.Target{RAdeg: 1, DecDeg: 2}, o.Target())
}

func TestEnrich_CopiesRecord(t *testing.T) {
	o, _ := Builtin().Get("M42")
	transit := time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)

	e := o.Enrich(45, 180, transit, 60, 88)
	*e.Magnitude = 0
	assert.Equal(t, 45.0, e.Altitude)
	assert.Equal(t, 88.0, e.ImagingScore)
	assert.NotEqual(t, 0.0, *o.Magnitude)

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"M42"`)
	assert.Contains(t, string(data), `"transit_time":"2024-01-15T22:00:00Z"`)

	none, err := json.Marshal(o.Enrich(1, 2, time.Time{}, 3, 4))
	require.NoError(t, err)
	assert.NotContains(t, string(none), "transit_time")
}

func TestParseRA(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10.68", 10.68},
		{"00h42m44s", (42.0/60 + 44.0/3600) * 15},
		{"00:42:44", (42.0/60 + 44.0/3600) * 15},
		{"0 42.7", 42.7 / 60 * 15},
		{"5h", 75},
		{"+21 11 48", (21 + 11.0/60 + 48.0/3600) * 15},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRA(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	for _, bad := range []string{"", "abc", "-1h", "1:2:3:4", "NaN"} {
		_, err := ParseRA(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDec(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"41.27", 41.27},
		{"-5.5", -5.5},
		{`+41°16'09"`, 41 + 16.0/60 + 9.0/3600},
		{"-05:23:28", -(5 + 23.0/60 + 28.0/3600)},
		{"−0 30", -0.5},
		{"-0d30m", -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDec(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := ParseDec("north")
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	assert.Equal(t, OpenCluster, ParseType("Open Cluster"))
	assert.Equal(t, PlanetaryNebula, ParseType("planetary-nebula"))
	assert.Equal(t, Galaxy, ParseType(" GALAXY "))
	assert.Equal(t, Other, ParseType("quasar"))
}

const sampleCatalog = `
objects:
  - id: Sh2-129
    name: Flying Bat Nebula
    type: emission nebula
    constellation: Cep
    ra: "21h11m48s"
    dec: "+60:00:00"
    size_max: 145
    size_min: 80
    best_months: [8, 9, 10]
  - id: OU4
    type: planetary_nebula
    constellation: Cep
    ra: 318.0
    dec: 59.6
    magnitude: 15.5
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	bat, ok := c.Get("sh2-129")
	require.True(t, ok)
	assert.Equal(t, EmissionNebula, bat.Type)
	assert.InDelta(t, (21+11.0/60+48.0/3600)*15, bat.RA, 1e-9)
	assert.InDelta(t, 60.0, bat.Dec, 1e-9)
	assert.Nil(t, bat.Magnitude)
	assert.Equal(t, []time.Month{time.August, time.September, time.October}, c.BestMonths("Sh2-129"))

	ou4, ok := c.Get("OU4")
	require.True(t, ok)
	assert.Equal(t, "OU4", ou4.Name)
	assert.Equal(t, 15.5, ou4.MagnitudeOr(0))
	assert.Nil(t, c.BestMonths("OU4"))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad dec", "objects:\n  - id: X\n    ra: 10\n    dec: 95\n", "invalid input"},
		{"malformed ra", "objects:\n  - id: X\n    ra: soon\n    dec: 10\n", "ra"},
		{"list coordinate", "objects:\n  - id: X\n    ra: [1, 2]\n    dec: 10\n", "scalar"},
		{"unknown field", "objects:\n  - id: X\n    ra: 1\n    dec: 1\n    colour: red\n", "colour"},
		{"bad month", "objects:\n  - id: X\n    ra: 1\n    dec: 1\n    best_months: [13]\n", "invalid month"},
		{"duplicate", "objects:\n  - id: X\n    ra: 1\n    dec: 1\n  - id: x\n    ra: 2\n    dec: 2\n", "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	merged := Builtin().Merge(c)
	assert.Equal(t, Builtin().Len()+1, merged.Len(), "Sh2-129 replaces the built-in record")
	assert.NotNil(t, merged.BestMonths("Sh2-129"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read catalog")
}
