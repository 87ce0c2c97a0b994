package imaging

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skyplan/internal/astro"
)

func ptr(v float64) *float64 { return &v }

func TestAirmass(t *testing.T) {
	tests := []struct {
		name string
		alt  float64
		want float64
		tol  float64
	}{
		{"zenith", 90, 1, 0},
		{"above zenith", 95, 1, 0},
		{"thirty degrees", 30, 2.0, 0.01},
		{"sixty degrees", 60, 1.154, 0.001},
		{"twenty degrees", 20, 2.900, 0.001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Airmass(tt.alt), tt.tol)
		})
	}

	assert.True(t, math.IsInf(Airmass(0), 1))
	assert.True(t, math.IsInf(Airmass(-10), 1))
	assert.True(t, math.IsNaN(Airmass(math.NaN())))

	prev := Airmass(1)
	for alt := 2.0; alt <= 85; alt++ {
		x := Airmass(alt)
		assert.Less(t, x, prev, "alt=%v", alt)
		assert.GreaterOrEqual(t, x, 1.0)
		prev = x
	}
}

func TestAirmassQuality(t *testing.T) {
	assert.Equal(t, Excellent, AirmassQuality(1.0))
	assert.Equal(t, Excellent, AirmassQuality(1.2))
	assert.Equal(t, Good, AirmassQuality(1.5))
	assert.Equal(t, Fair, AirmassQuality(2.0))
	assert.Equal(t, Poor, AirmassQuality(3.0))
	assert.Equal(t, Bad, AirmassQuality(3.1))
	assert.Equal(t, Bad, AirmassQuality(math.Inf(1)))
}

func TestExtinction(t *testing.T) {
	assert.InDelta(t, 0.2, Extinction(2, 0.2), 1e-12)
	assert.Equal(t, 0.0, Extinction(1, 0.2))
	assert.Equal(t, 0.0, Extinction(0.5, 0.2))
}

func TestSurfaceBrightness(t *testing.T) {
	assert.Equal(t, 10.0, SurfaceBrightness(10, 0, 5))
	assert.Equal(t, 10.0, SurfaceBrightness(10, 5, -1))
	assert.InDelta(t, 10+2.5*math.Log10(math.Pi), SurfaceBrightness(10, 1, 1), 1e-12)

	// M31: 3.4 mag spread over 178'×63'.
	assert.InDelta(t, 22.15, SurfaceBrightnessFromSize(3.4, 178, 63), 0.01)
}

func TestSkyBrightness(t *testing.T) {
	assert.Equal(t, 21.99, SkyBrightness(1))
	assert.Equal(t, 20.29, SkyBrightness(5))
	assert.Equal(t, 17.8, SkyBrightness(9))
	assert.Equal(t, 21.99, SkyBrightness(0))
	assert.Equal(t, 17.8, SkyBrightness(12))

	for b := 2; b <= 9; b++ {
		assert.Less(t, SkyBrightness(b), SkyBrightness(b-1))
	}
}

func TestContrast(t *testing.T) {
	assert.InDelta(t, 1, ContrastRatio(20, 20), 1e-12)
	assert.InDelta(t, 10, ContrastRatio(17.5, 20), 1e-9)

	assert.InDelta(t, 0.01, ContrastThreshold(100), 1e-12)
	assert.Less(t, ContrastThreshold(100), ContrastThreshold(4))
	assert.Equal(t, 1.0, ContrastThreshold(0))

	assert.True(t, IsDetectable(22.15, 9, 178))
	assert.False(t, IsDetectable(25, 9, 5))
	assert.True(t, IsDetectable(25, 1, 60))
}

func TestMoonImpact(t *testing.T) {
	tests := []struct {
		name  string
		illum float64
		sep   float64
		want  float64
	}{
		{"new moon", 4.9, 0, 1},
		{"full moon far", 100, 90, 1},
		{"full moon half way", 100, 45, 0.25},
		{"half moon half way", 50, 22.5, 0.25},
		{"on top of the moon", 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MoonImpact(tt.illum, tt.sep), 1e-12)
		})
	}

	for illum := 5.0; illum <= 100; illum += 5 {
		for sep := 0.0; sep < 180; sep += 10 {
			assert.LessOrEqual(t, MoonImpact(illum+5, sep), MoonImpact(illum, sep)+1e-12)
			assert.LessOrEqual(t, MoonImpact(illum, sep), MoonImpact(illum, sep+10)+1e-12)
		}
	}
}

func TestSeasonalScore(t *testing.T) {
	autumn := []time.Month{time.October}
	assert.Equal(t, 1.0, SeasonalScore(autumn, time.October))
	assert.InDelta(t, 0.5, SeasonalScore(autumn, time.January), 1e-12)
	assert.Equal(t, 0.0, SeasonalScore(autumn, time.April))

	winter := []time.Month{time.December}
	assert.InDelta(t, 5.0/6, SeasonalScore(winter, time.January), 1e-12)
	assert.Equal(t, 0.5, SeasonalScore(nil, time.May))

	assert.NotEmpty(t, BestMonths("M31"))
	assert.Nil(t, BestMonths("not-an-object"))
}

func idealConditions() Conditions {
	return Conditions{
		Altitude:         75,
		MoonIllumination: 0,
		MoonSeparation:   120,
		Magnitude:        ptr(3.4),
		BestMonths:       []time.Month{time.October},
		Month:            time.October,
		HoursFromTransit: 0,
	}
}

func TestCalculateImagingScore_Ideal(t *testing.T) {
	s, err := CalculateImagingScore(idealConditions())
	require.NoError(t, err)

	assert.Greater(t, s.Total, 95.0)
	assert.LessOrEqual(t, s.Total, 100.0)
	assert.Equal(t, MaxAltitudeScore, s.Breakdown.Altitude)
	assert.Equal(t, MaxMoonScore, s.Breakdown.Moon)
	assert.Equal(t, MaxBrightnessScore, s.Breakdown.Brightness)
	assert.Equal(t, MaxSeasonScore, s.Breakdown.Season)
	assert.Equal(t, MaxTransitScore, s.Breakdown.Transit)
	assert.InDelta(t, s.Breakdown.Sum(), s.Total, 1e-9)
	assert.Equal(t, Excellent, s.AirmassQuality)
	assert.Empty(t, s.Recommendations)
}

func TestCalculateImagingScore_BelowHorizon(t *testing.T) {
	for _, alt := range []float64{0, -0.1, -45} {
		c := idealConditions()
		c.Altitude = alt
		s, err := CalculateImagingScore(c)
		require.NoError(t, err)
		assert.Equal(t, 0.0, s.Total)
		assert.Equal(t, Bad, s.AirmassQuality)
		assert.Contains(t, s.Recommendations, "Target is below the horizon")
	}
}

func TestCalculateImagingScore_InvalidInput(t *testing.T) {
	c := idealConditions()
	c.Altitude = math.NaN()
	_, err := CalculateImagingScore(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, astro.ErrInvalidInput))

	var ie *astro.InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "altitude", ie.Field)

	c = idealConditions()
	c.MoonSeparation = math.Inf(1)
	_, err = CalculateImagingScore(c)
	assert.True(t, errors.Is(err, astro.ErrInvalidInput))
}

func TestCalculateImagingScore_Recommendations(t *testing.T) {
	c := Conditions{
		Altitude:         20,
		MoonIllumination: 95,
		MoonSeparation:   10,
		Magnitude:        ptr(13.5),
		BestMonths:       []time.Month{time.April},
		Month:            time.October,
		HoursFromTransit: -5,
	}
	s, err := CalculateImagingScore(c)
	require.NoError(t, err)

	joined := strings.Join(s.Recommendations, "\n")
	for _, want := range []string{"low", "Airmass", "Moon", "Faint", "Out of season", "Apr", "from transit"} {
		assert.Contains(t, joined, want)
	}
	assert.Less(t, s.Total, 30.0)
}

func TestCalculateImagingScore_Bounds(t *testing.T) {
	for alt := -10.0; alt <= 90; alt += 10 {
		for illum := 0.0; illum <= 100; illum += 25 {
			for sep := 0.0; sep <= 180; sep += 30 {
				for _, mag := range []float64{-1, 6, 16} {
					c := Conditions{
						Altitude:         alt,
						MoonIllumination: illum,
						MoonSeparation:   sep,
						Magnitude:        ptr(mag),
						Month:            time.June,
						HoursFromTransit: alt / 10,
					}
					s, err := CalculateImagingScore(c)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, s.Total, 0.0)
					assert.LessOrEqual(t, s.Total, 100.0)
				}
			}
		}
	}
}

func TestCalculateImagingScore_MoonNeverHelps(t *testing.T) {
	score := func(illum, sep float64) float64 {
		c := idealConditions()
		c.MoonIllumination = illum
		c.MoonSeparation = sep
		s, err := CalculateImagingScore(c)
		require.NoError(t, err)
		return s.Total
	}

	assert.LessOrEqual(t, score(90, 20), score(30, 20))
	assert.LessOrEqual(t, score(90, 10), score(90, 60))
	assert.Less(t, score(100, 5), score(0, 5))
}

func TestCalculateComprehensiveScore(t *testing.T) {
	base, err := CalculateImagingScore(idealConditions())
	require.NoError(t, err)

	c := ComprehensiveConditions{
		Conditions: idealConditions(),
		Bortle:     1,
		SizeArcmin: 40,
		FOVArcmin:  100,
	}
	s, err := CalculateComprehensiveScore(c)
	require.NoError(t, err)
	assert.Equal(t, PerfectFit, s.FOVFit)
	assert.Equal(t, 10.0, s.LightPollution)
	assert.Equal(t, 10.0, s.Framing)
	assert.True(t, s.Detectable)
	assert.InDelta(t, base.Total*0.8+20, s.Total, 1e-9)
	assert.LessOrEqual(t, s.Total, 100.0)

	c.FOVArcmin = 0
	s, err = CalculateComprehensiveScore(c)
	require.NoError(t, err)
	assert.Equal(t, FitUnknown, s.FOVFit)
	assert.Equal(t, 5.0, s.Framing)

	c.Altitude = -1
	s, err = CalculateComprehensiveScore(c)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Total)
}

func TestCalculateComprehensiveScore_LostInSkyglow(t *testing.T) {
	c := ComprehensiveConditions{
		Conditions: idealConditions(),
		Bortle:     9,
		SizeArcmin: 5,
		FOVArcmin:  200,
	}
	c.SurfaceBrightness = ptr(25)

	s, err := CalculateComprehensiveScore(c)
	require.NoError(t, err)
	assert.False(t, s.Detectable)
	assert.Equal(t, 0.0, s.LightPollution)
	assert.Equal(t, TooSmall, s.FOVFit)

	joined := strings.Join(s.Recommendations, "\n")
	assert.Contains(t, joined, "skyglow")
	assert.Contains(t, joined, "longer focal length")
}

func TestFieldOfView(t *testing.T) {
	assert.InDelta(t, 2475.36, FieldOfView(36, 50), 1e-9)
	assert.InDelta(t, 2375.87, FieldOfViewExact(36, 50), 0.01)
	assert.Less(t, FieldOfViewExact(36, 50), FieldOfView(36, 50))
	assert.InDelta(t, FieldOfView(23.5, 2000), FieldOfViewExact(23.5, 2000), 0.01)
	assert.Equal(t, 0.0, FieldOfView(36, 0))

	assert.InDelta(t, 1.031325, ImageScale(5, 1000), 1e-9)
	assert.Equal(t, 5.0, FRatio(500, 100))
	assert.Equal(t, 0.0, FRatio(500, 0))

	fov := CalculateFOV(36, 24, 50, 5, 50)
	assert.Equal(t, 1.0, fov.FRatio)
	assert.InDelta(t, fov.HeightArcmin, fov.Shorter(), 0)
	assert.Greater(t, fov.WidthArcmin, fov.HeightArcmin)
	assert.InDelta(t, FieldOfView(36, 50), fov.WidthArcmin, 1e-12)
	assert.InDelta(t, FieldOfView(24, 50), fov.HeightArcmin, 1e-12)
}

func TestMosaicCoverage(t *testing.T) {
	single := MosaicCoverage(36, 24, 50, 1, 1, 20)
	assert.Equal(t, 1, single.Panels)
	assert.InDelta(t, single.PanelWidth, single.TotalWidth, 1e-12)
	assert.InDelta(t, single.PanelHeight, single.TotalHeight, 1e-12)

	grid := MosaicCoverage(36, 24, 100, 2, 3, 20)
	assert.Equal(t, 6, grid.Panels)
	assert.InDelta(t, 2.6*grid.PanelWidth, grid.TotalWidth, 1e-9)
	assert.InDelta(t, 1.8*grid.PanelHeight, grid.TotalHeight, 1e-9)

	empty := MosaicCoverage(36, 24, 100, 0, 3, 20)
	assert.Equal(t, 0, empty.Panels)
	assert.Equal(t, 0.0, empty.TotalWidth)
}

func TestClassifyFOVFit(t *testing.T) {
	tests := []struct {
		size, fov float64
		want      FOVFit
	}{
		{10, 100, TooSmall},
		{15, 100, GoodFit},
		{29, 100, GoodFit},
		{45, 100, PerfectFit},
		{60, 100, TightFit},
		{100, 100, TightFit},
		{120, 100, TooLarge},
		{10, 0, FitUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyFOVFit(tt.size, tt.fov), "%v/%v", tt.size, tt.fov)
	}
}

func TestClassifyResolution(t *testing.T) {
	assert.Equal(t, WellSampled, ClassifyResolution(1, 2.5))
	assert.Equal(t, Undersampled, ClassifyResolution(2, 2.5))
	assert.Equal(t, Oversampled, ClassifyResolution(0.5, 2.5))
}

func TestEstimateExposure(t *testing.T) {
	unguided := EstimateExposure(ExposureInput{Bortle: 1, FRatio: 5})
	assert.Equal(t, UnguidedSubLimit, unguided.Sub)

	guided := EstimateExposure(ExposureInput{Bortle: 1, FRatio: 5, Guided: true})
	assert.Equal(t, 480*time.Second, guided.Sub)
	assert.Equal(t, 15, guided.Subs)
	assert.Equal(t, 2*time.Hour, guided.Integration)

	city := EstimateExposure(ExposureInput{Bortle: 9, FRatio: 5, Guided: true})
	assert.Equal(t, 30*time.Second, city.Sub)

	slow := EstimateExposure(ExposureInput{Bortle: 5, FRatio: 10, Guided: true})
	assert.Equal(t, 480*time.Second, slow.Sub)

	bright := EstimateExposure(ExposureInput{Bortle: 4, Magnitude: ptr(4), Guided: true})
	faint := EstimateExposure(ExposureInput{Bortle: 4, SurfaceBrightness: ptr(23), Guided: true})
	assert.Greater(t, faint.Integration, bright.Integration)

	for b := 1; b <= 9; b++ {
		e := EstimateExposure(ExposureInput{Bortle: b, FRatio: 2})
		assert.LessOrEqual(t, e.Sub, UnguidedSubLimit)
		assert.GreaterOrEqual(t, e.Integration, time.Hour)
	}
}

func TestMeridianCrossing(t *testing.T) {
	const ra, lon = 10.68, -75.0
	start := time.Date(2024, 10, 1, 18, 0, 0, 0, time.UTC)

	at, ok := MeridianCrossing(ra, lon, start, start.Add(24*time.Hour))
	require.True(t, ok)
	assert.False(t, at.Before(start))

	ha := astro.NormalizeHourAngle(astro.LocalSiderealTime(lon, at) - ra)
	assert.InDelta(t, 0, ha, 0.05)

	_, ok = MeridianCrossing(ra, lon, start, at.Add(-time.Minute))
	assert.False(t, ok)

	_, ok = MeridianCrossing(ra, lon, start, start.Add(-time.Hour))
	assert.False(t, ok)
}
