package particle

import (
	"fmt"

	"github.com/fieldkit-robotics/voxelmap/internal/voxelgrid"
	"github.com/google/uuid"
)

// GridAccess is the subset of *voxelgrid.Grid a Pose depends on: resolving
// the coordinates behind a bare handle, and retracting the handles a
// dropped pose owned.
type GridAccess interface {
	HypothesisCoords(h voxelgrid.HypothesisHandle) (x, y, z int)
	Remove(h voxelgrid.HypothesisHandle)
}

// Pose is a node in a particle's pose tree: a time step, a chain of
// ancestor write sets, and its own write set, satisfying voxelgrid.Pose.
// Pose IDs are globally unique UUIDs so the same grid can be shared safely
// across particle trees from independent filter resets.
type Pose struct {
	id       string
	timeStep int64
	grid     GridAccess
	ancestry []voxelgrid.Path
	own      *Path
}

// NewRoot creates a pose with no ancestors — the seed of a particle's pose
// tree.
func NewRoot(grid GridAccess, timeStep int64) *Pose {
	return &Pose{
		id:       fmt.Sprintf("pose_%s", uuid.NewString()),
		timeStep: timeStep,
		grid:     grid,
		own:      newPath(),
	}
}

// NewChild creates a pose descended from parent at timeStep, inheriting
// parent's full ancestry plus parent's own write set.
func NewChild(parent *Pose, timeStep int64) *Pose {
	ancestry := make([]voxelgrid.Path, 0, len(parent.ancestry)+1)
	ancestry = append(ancestry, parent.ancestry...)
	ancestry = append(ancestry, parent.own)

	return &Pose{
		id:       fmt.Sprintf("pose_%s", uuid.NewString()),
		timeStep: timeStep,
		grid:     parent.grid,
		ancestry: ancestry,
		own:      newPath(),
	}
}

// ID returns this pose's identity, for logging and test assertions.
func (p *Pose) ID() string { return p.id }

// TimeStep satisfies voxelgrid.Pose.
func (p *Pose) TimeStep() int64 { return p.timeStep }

// PreviousPaths satisfies voxelgrid.Pose: every ancestor's write set, not
// including this pose's own.
func (p *Pose) PreviousPaths() []voxelgrid.Path { return p.ancestry }

// AddHypothesis satisfies voxelgrid.Pose. w and hxy are accepted to match
// the external contract but unused here — this reference implementation
// indexes its write set by the hypothesis's own coordinates rather than by
// a preallocated W*W*H array.
func (p *Pose) AddHypothesis(h voxelgrid.HypothesisHandle, w, hxy int) {
	x, y, z := p.grid.HypothesisCoords(h)
	p.own.record(x, y, z, h)
}

// Path returns this pose's own write set, for composing a descendant's
// ancestry or for direct inspection in tests.
func (p *Pose) Path() *Path { return p.own }

// Drop retracts every hypothesis this pose wrote, for use when the
// external resampling step discards it (spec.md §3 data-flow note).
func (p *Pose) Drop() {
	for _, h := range p.own.handles() {
		p.grid.Remove(h)
	}
}
