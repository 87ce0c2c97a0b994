package horizon

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skyplan/internal/astro"
)

func backyard() *CustomHorizon {
	return New("backyard",
		Point{Azimuth: 0, Altitude: 10},
		Point{Azimuth: 90, Altitude: 30},
		Point{Azimuth: 180, Altitude: 5},
		Point{Azimuth: 270, Altitude: 20},
	)
}

func TestAltitude_Interpolation(t *testing.T) {
	h := backyard()

	tests := []struct {
		name string
		az   float64
		want float64
	}{
		{"exact point", 90, 30},
		{"midway rising", 45, 20},
		{"midway falling", 135, 17.5},
		{"wrap across north", 315, 15},
		{"negative azimuth", -45, 15},
		{"beyond 360", 405, 20},
		{"exactly 360", 360, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, h.Altitude(tt.az), 1e-9)
		})
	}
}

func TestAltitude_WrapBeforeFirstPoint(t *testing.T) {
	h := New("wrap", Point{Azimuth: 350, Altitude: 40}, Point{Azimuth: 10, Altitude: 20})

	assert.InDelta(t, 30, h.Altitude(0), 1e-9)
	assert.InDelta(t, 35, h.Altitude(355), 1e-9)
	assert.InDelta(t, 25, h.Altitude(5), 1e-9)
	// The long way round, from 10° to 350°.
	assert.InDelta(t, 30, h.Altitude(180), 1e-9)
}

func TestAltitude_Periodicity(t *testing.T) {
	h := backyard()
	for az := 0.0; az < 360; az += 7.5 {
		base := h.Altitude(az)
		for _, k := range []float64{-3, -1, 1, 2, 10} {
			assert.InDelta(t, base, h.Altitude(az+360*k), 1e-9, "az=%v k=%v", az, k)
		}
	}
}

func TestAltitude_DegenerateProfiles(t *testing.T) {
	var nilHorizon *CustomHorizon
	assert.Equal(t, 0.0, nilHorizon.Altitude(123))
	assert.Equal(t, 0, nilHorizon.Len())
	assert.True(t, nilHorizon.IsAboveHorizon(0.1, 0))

	empty := New("empty")
	assert.Equal(t, 0.0, empty.Altitude(42))
	assert.Equal(t, 0.0, empty.MaxAltitude())

	single := New("single", Point{Azimuth: 200, Altitude: 12})
	for az := 0.0; az < 360; az += 45 {
		assert.Equal(t, 12.0, single.Altitude(az))
	}

	assert.True(t, math.IsNaN(backyard().Altitude(math.NaN())))
}

func TestIsAboveHorizon_Strict(t *testing.T) {
	h := backyard()
	assert.False(t, h.IsAboveHorizon(30, 90), "exactly on the profile is not visible")
	assert.True(t, h.IsAboveHorizon(30.001, 90))
	assert.False(t, h.IsAboveHorizon(10, 45))
}

func TestAddPoint_ReplacesSameAzimuth(t *testing.T) {
	h := backyard()
	require.NoError(t, h.AddPoint(450, 50))

	assert.Equal(t, 4, h.Len())
	assert.Equal(t, 50.0, h.Altitude(90))
	assert.Equal(t, 50.0, h.MaxAltitude())

	require.NoError(t, h.AddPoint(-45, 0))
	pts := h.Points()
	require.Len(t, pts, 5)
	assert.Equal(t, 315.0, pts[4].Azimuth)
	for i := 1; i < len(pts); i++ {
		assert.Less(t, pts[i-1].Azimuth, pts[i].Azimuth)
	}

	err := h.AddPoint(math.NaN(), 10)
	assert.True(t, errors.Is(err, astro.ErrInvalidInput))
	assert.Equal(t, 5, h.Len())
}

func TestSetPoints_Deduplicates(t *testing.T) {
	h := New("dup")
	h.SetPoints(
		Point{Azimuth: 10, Altitude: 1},
		Point{Azimuth: 370, Altitude: 2},
		Point{Azimuth: math.Inf(1), Altitude: 3},
		Point{Azimuth: 20, Altitude: math.NaN()},
	)

	require.Equal(t, 1, h.Len())
	assert.Equal(t, Point{Azimuth: 10, Altitude: 2}, h.Points()[0])
}

func TestRemovePoint(t *testing.T) {
	h := backyard()
	assert.True(t, h.RemovePoint(-90))
	assert.False(t, h.RemovePoint(45))
	assert.Equal(t, 3, h.Len())
	// 180 -> 0 now spans the west side.
	assert.InDelta(t, 7.5, h.Altitude(270), 1e-9)
}

func TestNilHorizon_Mutators(t *testing.T) {
	var h *CustomHorizon

	assert.ErrorIs(t, h.AddPoint(90, 15), ErrNilHorizon)
	assert.NotPanics(t, func() { h.SetPoints(Point{Azimuth: 90, Altitude: 15}) })
	assert.False(t, h.RemovePoint(90))

	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 0.0, h.Altitude(90))
	assert.True(t, h.IsAboveHorizon(0.1, 90))
}

func TestPoints_ReturnsCopy(t *testing.T) {
	h := backyard()
	pts := h.Points()
	pts[0].Altitude = 99
	assert.Equal(t, 10.0, h.Altitude(0))
}

func TestParse_Lenient(t *testing.T) {
	doc := strings.Join([]string{
		"# exported from the backyard",
		"// another comment",
		"",
		"0,10",
		"90\t30",
		"  180   5  ",
		"270, 20",
		"not a number,5",
		"45",
		"400,15",
		"NaN,3",
	}, "\n")

	h, err := Parse("backyard", strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "backyard", h.Name)
	assert.Equal(t, []Point{
		{Azimuth: 0, Altitude: 10},
		{Azimuth: 40, Altitude: 15},
		{Azimuth: 90, Altitude: 30},
		{Azimuth: 180, Altitude: 5},
		{Azimuth: 270, Altitude: 20},
	}, h.Points())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParse_ReaderError(t *testing.T) {
	_, err := Parse("broken", failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestExport_RoundTrip(t *testing.T) {
	h := New("ridge",
		Point{Azimuth: 0, Altitude: 12.3},
		Point{Azimuth: 33.3, Altitude: -1.5},
		Point{Azimuth: 181.7, Altitude: 25},
		Point{Azimuth: 359.9, Altitude: 8.8},
	)

	out := h.ExportString()
	assert.True(t, strings.HasPrefix(out, "# Custom horizon: ridge\n"))
	assert.Contains(t, out, "33.3,-1.5\n")
	assert.Contains(t, out, "181.7,25.0\n")

	back := ParseString("ridge", out)
	orig := h.Points()
	got := back.Points()
	require.Len(t, got, len(orig))
	for i := range orig {
		assert.InDelta(t, orig[i].Azimuth, got[i].Azimuth, 0.1)
		assert.InDelta(t, orig[i].Altitude, got[i].Altitude, 0.1)
	}
}

func TestExport_WrapsRoundedNorth(t *testing.T) {
	h := New("edge", Point{Azimuth: 359.97, Altitude: 4})
	out := h.ExportString()
	assert.Contains(t, out, "\n0.0,4.0\n")
	assert.NotContains(t, out, "360.0")
}

func TestJSON_RoundTrip(t *testing.T) {
	h := backyard()

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"backyard","points":[
		{"azimuth":0,"altitude":10},{"azimuth":90,"altitude":30},
		{"azimuth":180,"altitude":5},{"azimuth":270,"altitude":20}]}`, string(data))

	var back CustomHorizon
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, h.Name, back.Name)
	assert.Equal(t, h.Points(), back.Points())
	assert.InDelta(t, 15.0, back.Altitude(315), 1e-9)

	empty, err := json.Marshal(New("none"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"none","points":[]}`, string(empty))

	assert.Error(t, json.Unmarshal([]byte(`{"points":"nope"}`), &back))
}

func TestCustomHorizon_AsProfile(t *testing.T) {
	var profile astro.HorizonProfile = backyard()
	assert.Equal(t, 30.0, profile.Altitude(90))
}
