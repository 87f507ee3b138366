package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyGridTuning_GettersReturnDefaults(t *testing.T) {
	t.Parallel()

	tuning := EmptyGridTuning()
	assert.Equal(t, 50.0, tuning.GetCellSizeMM())
	assert.Equal(t, 300.0, tuning.GetLocalisationRadiusMM())
	assert.Equal(t, 8000.0, tuning.GetMaxMappingRangeMM())
	assert.Equal(t, 200, tuning.GetWidthCells())
	assert.Equal(t, 64, tuning.GetHeightCells())
	assert.Equal(t, 25.0, tuning.GetGCBudgetPercent())
	assert.Equal(t, 0.0, tuning.GetOriginXMM())
	assert.Equal(t, 0.0, tuning.GetOriginYMM())
	assert.Equal(t, 0.0, tuning.GetOriginZMM())
}

func TestLoadGridTuning_RejectsNonJSONExtension(t *testing.T) {
	t.Parallel()

	_, err := LoadGridTuning("tuning.yaml")
	assert.Error(t, err)
}

func TestLoadGridTuning_RejectsMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadGridTuning(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadGridTuning_RejectsOversizedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "big.json")
	big := make([]byte, 2*1024*1024)
	for i := range big {
		big[i] = ' '
	}
	require.NoError(t, os.WriteFile(path, big, 0o644))

	_, err := LoadGridTuning(path)
	assert.Error(t, err)
}

func TestLoadGridTuning_PartialFileKeepsRemainingDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tuning.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cell_size_mm": 25, "width_cells": 400}`), 0o644))

	tuning, err := LoadGridTuning(path)
	require.NoError(t, err)
	assert.Equal(t, 25.0, tuning.GetCellSizeMM())
	assert.Equal(t, 400, tuning.GetWidthCells())
	assert.Equal(t, 300.0, tuning.GetLocalisationRadiusMM(), "untouched field keeps its default")
}

func TestLoadGridTuning_RejectsInvalidValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tuning.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cell_size_mm": -5}`), 0o644))

	_, err := LoadGridTuning(path)
	assert.Error(t, err)
}

func TestGridTuning_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*GridTuning)
		wantErr bool
	}{
		{"zero value is valid", func(*GridTuning) {}, false},
		{"negative cell size", func(t *GridTuning) { v := -1.0; t.CellSizeMM = &v }, true},
		{"zero width", func(t *GridTuning) { v := 0; t.WidthCells = &v }, true},
		{"zero height", func(t *GridTuning) { v := 0; t.HeightCells = &v }, true},
		{"gc budget above 100", func(t *GridTuning) { v := 101.0; t.GCBudgetPercent = &v }, true},
		{"gc budget negative", func(t *GridTuning) { v := -1.0; t.GCBudgetPercent = &v }, true},
		{"gc budget at boundary", func(t *GridTuning) { v := 100.0; t.GCBudgetPercent = &v }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tuning := EmptyGridTuning()
			tc.mutate(tuning)
			err := tuning.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGridTuningConfig_BuildAppliesOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := NewGridTuningConfig(nil).
		WithCellSizeMM(25).
		WithWidthCells(100).
		WithHeightCells(50).
		WithLocalisationRadiusMM(75).
		WithMaxMappingRangeMM(4000).
		WithGaussianSamples(20).
		WithOrigin(10, 20, 30).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.W)
	assert.Equal(t, 50, cfg.H)
	assert.Equal(t, 25.0, cfg.CellSizeMM)
	assert.Equal(t, 75.0, cfg.LocalisationRadiusMM)
	assert.Equal(t, 4000.0, cfg.MaxMappingRangeMM)
	assert.Equal(t, 20, cfg.GaussianSamples)
	assert.Equal(t, 10.0, cfg.OriginX)
	assert.Equal(t, 20.0, cfg.OriginY)
	assert.Equal(t, 30.0, cfg.OriginZ)
}

func TestGridTuningConfig_BuildRejectsInvalidOverride(t *testing.T) {
	t.Parallel()

	_, err := NewGridTuningConfig(nil).WithCellSizeMM(-1).Build()
	assert.Error(t, err)
}

func TestDefaultGridTuning_LoadsCanonicalFile(t *testing.T) {
	t.Parallel()

	tuning := DefaultGridTuning()
	assert.NotNil(t, tuning)
}
