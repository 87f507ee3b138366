package voxelgrid

// fakePath is a minimal Path test double backed by a plain map, used by
// unit tests that exercise Cell/Grid/query logic directly without pulling
// in a real pose-tree implementation.
type fakePath struct {
	writes map[[3]int][]HypothesisHandle
}

func newFakePath() *fakePath {
	return &fakePath{writes: make(map[[3]int][]HypothesisHandle)}
}

func (p *fakePath) HypothesesAt(x, y, z int) []HypothesisHandle {
	return p.writes[[3]int{x, y, z}]
}

func (p *fakePath) record(x, y, z int, h HypothesisHandle) {
	key := [3]int{x, y, z}
	p.writes[key] = append(p.writes[key], h)
}

// fakePose is a minimal Pose test double: a time step, an explicit list of
// ancestor paths, and a reference to the Grid it will write through (an
// internal test is allowed to reach into Grid.arena directly).
type fakePose struct {
	timeStep int64
	ancestry []Path
	own      *fakePath
	grid     *Grid
}

func newFakePose(grid *Grid, timeStep int64, ancestry ...Path) *fakePose {
	return &fakePose{grid: grid, timeStep: timeStep, ancestry: ancestry, own: newFakePath()}
}

func (p *fakePose) TimeStep() int64 { return p.timeStep }

func (p *fakePose) PreviousPaths() []Path { return p.ancestry }

func (p *fakePose) AddHypothesis(h HypothesisHandle, w, hxy int) {
	entry := p.grid.arena.get(h)
	p.own.record(entry.X, entry.Y, entry.Z, h)
}
