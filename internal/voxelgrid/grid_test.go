package voxelgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		W:                     20,
		H:                     10,
		CellSizeMM:            50,
		LocalisationRadiusMM:  150,
		MaxMappingRangeMM:     2000,
		OriginX:               500, // grid centre at (20*50)/2 = 500mm
		OriginY:               500,
		OriginZ:               0,
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero cell size", Config{W: 1, H: 1, CellSizeMM: 0}},
		{"negative cell size", Config{W: 1, H: 1, CellSizeMM: -5}},
		{"zero width", Config{W: 0, H: 1, CellSizeMM: 1}},
		{"zero height", Config{W: 1, H: 0, CellSizeMM: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tc.cfg)
			require.Error(t, err)
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestNew_DerivesCellSpaceLimits(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig())
	require.NoError(t, err)
	assert.InDelta(t, 3.0, g.localisationSearchCells, 1e-9)
	assert.InDelta(t, 40.0, g.maxMappingRangeCells, 1e-9)
	assert.Len(t, g.gaussian, DefaultGaussianSamples)
}

func TestGrid_CellAtLazyCreation(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig())
	require.NoError(t, err)

	assert.Nil(t, g.cellAt(1, 1, false))
	c := g.cellAt(1, 1, true)
	require.NotNil(t, c)
	assert.Same(t, c, g.cellAt(1, 1, true))
}

func TestGrid_CellAtOutOfBounds(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig())
	require.NoError(t, err)
	assert.Nil(t, g.cellAt(-1, 0, true))
	assert.Nil(t, g.cellAt(g.cfg.W, 0, true))
}

func TestGrid_ProbabilityNoEvidenceOutsideAnyCell(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig())
	require.NoError(t, err)
	_, ok := g.Probability(&fakePose{timeStep: 1}, 2, 2, 2, false)
	assert.False(t, ok)
}

func TestGrid_ColumnProbabilityBaselineWithNoCell(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, g.ColumnProbability(&fakePose{timeStep: 1}, 3, 3), 1e-9)
}

func TestGrid_StatsReflectsWrites(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig())
	require.NoError(t, err)

	h := g.arena.add(Hypothesis{X: 1, Y: 1, Z: 1, LogOdds: 1})
	c := g.cellAt(1, 1, true)
	c.add(1, h)
	g.totalValidHypotheses++

	stats := g.Stats()
	assert.Equal(t, 1, stats.TotalValidHypotheses)
	assert.Equal(t, 1, stats.NonEmptyCells)
	assert.Equal(t, 0, stats.WorklistLength)
}

func TestGrid_DebugCellSummaryMissingCell(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig())
	require.NoError(t, err)
	assert.Equal(t, CellSummary{}, g.DebugCellSummary(0, 0))
}

func TestGrid_HypothesisCoordsMatchesWrite(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig())
	require.NoError(t, err)

	h := g.arena.add(Hypothesis{X: 5, Y: 6, Z: 7})
	x, y, z := g.HypothesisCoords(h)
	assert.Equal(t, 5, x)
	assert.Equal(t, 6, y)
	assert.Equal(t, 7, z)
}
