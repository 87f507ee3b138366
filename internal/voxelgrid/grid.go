package voxelgrid

// Config carries the fixed-at-construction parameters for a Grid
// (spec.md §3, §4.2).
type Config struct {
	// W is the horizontal extent in cells; 0 <= x,y < W.
	W int
	// H is the vertical extent in cells; 0 <= z < H.
	H int
	// CellSizeMM is the edge length of one cell, in millimetres.
	CellSizeMM float64
	// LocalisationRadiusMM is the localisation search radius, in
	// millimetres, converted to cells at construction.
	LocalisationRadiusMM float64
	// MaxMappingRangeMM is the maximum mapping range, in millimetres,
	// converted to cells at construction.
	MaxMappingRangeMM float64
	// GaussianSamples overrides DefaultGaussianSamples when positive.
	GaussianSamples int
	// OriginX, OriginY, OriginZ are the grid centre's world-millimetre
	// coordinates, used to convert ray step positions into cell indices
	// (spec.md §4.4 step 2).
	OriginX, OriginY, OriginZ float64
}

// Grid is the fixed-size 2D array of optional Cells, plus the global
// hypothesis counters, garbage worklist, and precomputed Gaussian lookup
// (spec.md §3).
type Grid struct {
	cfg Config

	cells []*Cell // len == W*W, indexed by idx(x, y); nil until first write

	arena *hypothesisArena

	totalValidHypotheses   int
	totalGarbageHypotheses int

	worklist []*Cell

	gaussian []float64

	localisationSearchCells float64
	maxMappingRangeCells    float64
}

// New allocates a Grid, derives the cell-space search/range limits, and
// builds the Gaussian lookup table (spec.md §4.2).
func New(cfg Config) (*Grid, error) {
	if cfg.CellSizeMM <= 0 {
		return nil, &ConfigError{Field: "CellSizeMM", Value: cfg.CellSizeMM}
	}
	if cfg.W <= 0 {
		return nil, &ConfigError{Field: "W", Value: float64(cfg.W)}
	}
	if cfg.H <= 0 {
		return nil, &ConfigError{Field: "H", Value: float64(cfg.H)}
	}

	samples := cfg.GaussianSamples
	if samples <= 0 {
		samples = DefaultGaussianSamples
	}

	return &Grid{
		cfg:                     cfg,
		cells:                   make([]*Cell, cfg.W*cfg.W),
		arena:                   newHypothesisArena(),
		gaussian:                GaussianHalfLookup(samples),
		localisationSearchCells: cfg.LocalisationRadiusMM / cfg.CellSizeMM,
		maxMappingRangeCells:    cfg.MaxMappingRangeMM / cfg.CellSizeMM,
	}, nil
}

// idx maps an (x, y) coordinate to its position in cells.
func (g *Grid) idx(x, y int) int {
	return y*g.cfg.W + x
}

// inBounds reports whether (x, y) lies within the grid's (x,y) band.
func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.cfg.W && y >= 0 && y < g.cfg.W
}

// cellAt returns the Cell at (x, y), creating it lazily if create is true
// and it does not exist yet. Returns nil if out of bounds or absent and
// create is false.
func (g *Grid) cellAt(x, y int, create bool) *Cell {
	if !g.inBounds(x, y) {
		return nil
	}
	i := g.idx(x, y)
	if g.cells[i] == nil {
		if !create {
			return nil
		}
		g.cells[i] = newCell(g.cfg.H)
	}
	return g.cells[i]
}

// HypothesisCoords returns the voxel a hypothesis handle was written at.
// Pose implementations use this to index their own write set when
// AddHypothesis hands them a bare handle (spec.md §3 "add_hypothesis(h, W,
// H)" — a Pose is not otherwise told the coordinates it just wrote).
func (g *Grid) HypothesisCoords(h HypothesisHandle) (x, y, z int) {
	entry := g.arena.get(h)
	return entry.X, entry.Y, entry.Z
}

// Probability returns the pose-conditioned occupancy at a single voxel
// (spec.md §4.3). ok is false for NO_EVIDENCE.
func (g *Grid) Probability(pose Pose, x, y, z int, returnLogOdds bool) (float64, bool) {
	c := g.cellAt(x, y, false)
	if c == nil {
		return 0, false
	}
	return c.probability(g.arena, pose, x, y, z, returnLogOdds)
}

// ColumnProbability returns the vertically-summed occupancy probability at
// (x, y) (spec.md §4.1). A cell with no history at all, or no evidence
// visible from pose, returns the baseline 0.5.
func (g *Grid) ColumnProbability(pose Pose, x, y int) float64 {
	c := g.cellAt(x, y, false)
	if c == nil {
		return LogOddsToProbability(0)
	}
	v, _ := c.probabilityXY(g.arena, pose, x, y)
	return v
}

// GridStats is a read-only snapshot of grid-wide bookkeeping, grounded on
// BackgroundManager.GridStatus in the teacher repo but typed instead of a
// map[string]interface{}.
type GridStats struct {
	TotalValidHypotheses   int
	TotalGarbageHypotheses int
	WorklistLength         int
	NonEmptyCells          int
}

// Stats returns a snapshot of the grid's global counters.
func (g *Grid) Stats() GridStats {
	nonEmpty := 0
	for _, c := range g.cells {
		if c != nil {
			nonEmpty++
		}
	}
	return GridStats{
		TotalValidHypotheses:   g.totalValidHypotheses,
		TotalGarbageHypotheses: g.totalGarbageHypotheses,
		WorklistLength:         len(g.worklist),
		NonEmptyCells:          nonEmpty,
	}
}

// CellSummary is a read-only debug accessor for a single cell, grounded on
// BackgroundManager.GetGridCells but narrowed to one cell to avoid an
// O(W*W) allocation on every debug call.
type CellSummary struct {
	Exists         bool
	GarbageEntries int
	SlotsWithData  int
}

// DebugCellSummary reports bookkeeping for the cell at (x, y), without
// touching pose ancestry.
func (g *Grid) DebugCellSummary(x, y int) CellSummary {
	c := g.cellAt(x, y, false)
	if c == nil {
		return CellSummary{}
	}
	slots := 0
	for _, s := range c.slots {
		if s != nil {
			slots++
		}
	}
	return CellSummary{
		Exists:         true,
		GarbageEntries: c.garbageEntries,
		SlotsWithData:  slots,
	}
}
