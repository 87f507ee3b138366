package voxelgrid

// HypothesisHandle identifies a Hypothesis inside a Grid's arena. Handles
// are stable for the lifetime of the Grid; a retracted hypothesis keeps its
// handle until GarbageCollect physically removes it.
type HypothesisHandle int

// Hypothesis is a single probabilistic observation of a voxel, tagged by
// the pose that produced it. It is immutable except for Enabled, which is
// flipped false on retraction (spec.md §3).
type Hypothesis struct {
	X, Y, Z int
	LogOdds float64
	Pose    Pose
	Enabled bool
}

// hypothesisArena owns every Hypothesis ever created by a Grid. Cells store
// handles into the arena (never Hypothesis values directly) and Poses store
// the same handles for retraction — this is the cycle-avoidance scheme
// named in spec.md §9: the arena is the only thing that holds the actual
// struct, so neither a Cell nor a Pose needs a reference back to the other.
type hypothesisArena struct {
	entries []Hypothesis
}

func newHypothesisArena() *hypothesisArena {
	return &hypothesisArena{}
}

// add appends a new enabled hypothesis and returns its handle.
func (a *hypothesisArena) add(h Hypothesis) HypothesisHandle {
	h.Enabled = true
	a.entries = append(a.entries, h)
	return HypothesisHandle(len(a.entries) - 1)
}

// get returns the hypothesis for a handle.
func (a *hypothesisArena) get(h HypothesisHandle) *Hypothesis {
	return &a.entries[h]
}
