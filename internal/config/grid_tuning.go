package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fieldkit-robotics/voxelmap/internal/voxelgrid"
)

// DefaultGridTuningPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default grid tuning values.
const DefaultGridTuningPath = "internal/config/voxelgrid.defaults.json"

// GridTuning is the JSON-backed tuning schema for a voxelgrid.Grid. Fields
// omitted from a loaded file retain their defaults, reported through the
// Get* methods below, so partial configs are safe.
type GridTuning struct {
	CellSizeMM           *float64 `json:"cell_size_mm,omitempty"`
	LocalisationRadiusMM *float64 `json:"localisation_radius_mm,omitempty"`
	MaxMappingRangeMM    *float64 `json:"max_mapping_range_mm,omitempty"`
	WidthCells           *int     `json:"width_cells,omitempty"`
	HeightCells          *int     `json:"height_cells,omitempty"`
	GaussianSamples      *int     `json:"gaussian_samples,omitempty"`
	GCBudgetPercent      *float64 `json:"gc_budget_percent,omitempty"`
	OriginXMM            *float64 `json:"origin_x_mm,omitempty"`
	OriginYMM            *float64 `json:"origin_y_mm,omitempty"`
	OriginZMM            *float64 `json:"origin_z_mm,omitempty"`
}

// EmptyGridTuning returns a GridTuning with every field nil. Use
// LoadGridTuning or DefaultGridTuning to load real values.
func EmptyGridTuning() *GridTuning {
	return &GridTuning{}
}

// LoadGridTuning loads a GridTuning from a JSON file. The file is
// validated to have a .json extension and sit under a 1MB size cap before
// it is read.
func LoadGridTuning(path string) (*GridTuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	t := EmptyGridTuning()
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return t, nil
}

// DefaultGridTuning loads the canonical tuning defaults from
// DefaultGridTuningPath, searching from the current directory up through
// common parent directories. Panics if the file cannot be found — intended
// for test setup and binaries that have already validated availability.
func DefaultGridTuning() *GridTuning {
	candidates := []string{
		DefaultGridTuningPath,
		"../../" + DefaultGridTuningPath,
		"../../../" + DefaultGridTuningPath,
		"../../../../" + DefaultGridTuningPath,
	}
	for _, path := range candidates {
		if t, err := LoadGridTuning(path); err == nil {
			return t
		}
	}
	panic("cannot find " + DefaultGridTuningPath + " - run tests from repository root")
}

// Validate checks that any set fields carry sane values. Fields left nil
// are untouched — their Get* defaults are always valid.
func (t *GridTuning) Validate() error {
	if t.CellSizeMM != nil && *t.CellSizeMM <= 0 {
		return fmt.Errorf("cell_size_mm must be positive, got %f", *t.CellSizeMM)
	}
	if t.WidthCells != nil && *t.WidthCells <= 0 {
		return fmt.Errorf("width_cells must be positive, got %d", *t.WidthCells)
	}
	if t.HeightCells != nil && *t.HeightCells <= 0 {
		return fmt.Errorf("height_cells must be positive, got %d", *t.HeightCells)
	}
	if t.GCBudgetPercent != nil && (*t.GCBudgetPercent < 0 || *t.GCBudgetPercent > 100) {
		return fmt.Errorf("gc_budget_percent must be in [0, 100], got %f", *t.GCBudgetPercent)
	}
	return nil
}

// GetCellSizeMM returns the cell_size_mm value or its default.
func (t *GridTuning) GetCellSizeMM() float64 {
	if t.CellSizeMM == nil {
		return 50.0
	}
	return *t.CellSizeMM
}

// GetLocalisationRadiusMM returns the localisation_radius_mm value or its
// default.
func (t *GridTuning) GetLocalisationRadiusMM() float64 {
	if t.LocalisationRadiusMM == nil {
		return 300.0
	}
	return *t.LocalisationRadiusMM
}

// GetMaxMappingRangeMM returns the max_mapping_range_mm value or its
// default.
func (t *GridTuning) GetMaxMappingRangeMM() float64 {
	if t.MaxMappingRangeMM == nil {
		return 8000.0
	}
	return *t.MaxMappingRangeMM
}

// GetWidthCells returns the width_cells value or its default.
func (t *GridTuning) GetWidthCells() int {
	if t.WidthCells == nil {
		return 200
	}
	return *t.WidthCells
}

// GetHeightCells returns the height_cells value or its default.
func (t *GridTuning) GetHeightCells() int {
	if t.HeightCells == nil {
		return 64
	}
	return *t.HeightCells
}

// GetGaussianSamples returns the gaussian_samples value or its default,
// matching voxelgrid.DefaultGaussianSamples.
func (t *GridTuning) GetGaussianSamples() int {
	if t.GaussianSamples == nil {
		return voxelgrid.DefaultGaussianSamples
	}
	return *t.GaussianSamples
}

// GetGCBudgetPercent returns the gc_budget_percent value or its default.
func (t *GridTuning) GetGCBudgetPercent() float64 {
	if t.GCBudgetPercent == nil {
		return 25.0
	}
	return *t.GCBudgetPercent
}

// GetOriginXMM returns the origin_x_mm value or its default.
func (t *GridTuning) GetOriginXMM() float64 {
	if t.OriginXMM == nil {
		return 0
	}
	return *t.OriginXMM
}

// GetOriginYMM returns the origin_y_mm value or its default.
func (t *GridTuning) GetOriginYMM() float64 {
	if t.OriginYMM == nil {
		return 0
	}
	return *t.OriginYMM
}

// GetOriginZMM returns the origin_z_mm value or its default.
func (t *GridTuning) GetOriginZMM() float64 {
	if t.OriginZMM == nil {
		return 0
	}
	return *t.OriginZMM
}

// GridTuningConfig is a fluent builder over a GridTuning, converting to the
// voxelgrid.Config the constructor actually consumes. It exists so
// voxelgrid.New keeps a narrow, non-config-aware constructor while callers
// who want JSON-driven tuning have one.
type GridTuningConfig struct {
	tuning *GridTuning
}

// NewGridTuningConfig wraps t (or a fresh EmptyGridTuning if t is nil) in a
// fluent builder.
func NewGridTuningConfig(t *GridTuning) *GridTuningConfig {
	if t == nil {
		t = EmptyGridTuning()
	}
	return &GridTuningConfig{tuning: t}
}

// WithCellSizeMM overrides cell_size_mm.
func (b *GridTuningConfig) WithCellSizeMM(v float64) *GridTuningConfig {
	b.tuning.CellSizeMM = &v
	return b
}

// WithLocalisationRadiusMM overrides localisation_radius_mm.
func (b *GridTuningConfig) WithLocalisationRadiusMM(v float64) *GridTuningConfig {
	b.tuning.LocalisationRadiusMM = &v
	return b
}

// WithMaxMappingRangeMM overrides max_mapping_range_mm.
func (b *GridTuningConfig) WithMaxMappingRangeMM(v float64) *GridTuningConfig {
	b.tuning.MaxMappingRangeMM = &v
	return b
}

// WithWidthCells overrides width_cells.
func (b *GridTuningConfig) WithWidthCells(v int) *GridTuningConfig {
	b.tuning.WidthCells = &v
	return b
}

// WithHeightCells overrides height_cells.
func (b *GridTuningConfig) WithHeightCells(v int) *GridTuningConfig {
	b.tuning.HeightCells = &v
	return b
}

// WithGaussianSamples overrides gaussian_samples.
func (b *GridTuningConfig) WithGaussianSamples(v int) *GridTuningConfig {
	b.tuning.GaussianSamples = &v
	return b
}

// WithGCBudgetPercent overrides gc_budget_percent.
func (b *GridTuningConfig) WithGCBudgetPercent(v float64) *GridTuningConfig {
	b.tuning.GCBudgetPercent = &v
	return b
}

// WithOrigin overrides the grid centre's world-millimetre coordinates.
func (b *GridTuningConfig) WithOrigin(x, y, z float64) *GridTuningConfig {
	b.tuning.OriginXMM = &x
	b.tuning.OriginYMM = &y
	b.tuning.OriginZMM = &z
	return b
}

// Validate reports whether the wrapped tuning is internally consistent.
func (b *GridTuningConfig) Validate() error {
	return b.tuning.Validate()
}

// Build validates the wrapped tuning and converts it to a voxelgrid.Config.
func (b *GridTuningConfig) Build() (voxelgrid.Config, error) {
	if err := b.Validate(); err != nil {
		return voxelgrid.Config{}, err
	}
	t := b.tuning
	return voxelgrid.Config{
		W:                     t.GetWidthCells(),
		H:                     t.GetHeightCells(),
		CellSizeMM:            t.GetCellSizeMM(),
		LocalisationRadiusMM:  t.GetLocalisationRadiusMM(),
		MaxMappingRangeMM:     t.GetMaxMappingRangeMM(),
		GaussianSamples:       t.GetGaussianSamples(),
		OriginX:               t.GetOriginXMM(),
		OriginY:               t.GetOriginYMM(),
		OriginZ:               t.GetOriginZMM(),
	}, nil
}
