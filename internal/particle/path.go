package particle

import "github.com/fieldkit-robotics/voxelmap/internal/voxelgrid"

// Path is a pose's write set: every hypothesis handle it has deposited,
// indexed by the voxel it landed on, satisfying voxelgrid.Path.
type Path struct {
	writes map[[3]int][]voxelgrid.HypothesisHandle
}

func newPath() *Path {
	return &Path{writes: make(map[[3]int][]voxelgrid.HypothesisHandle)}
}

// HypothesesAt returns the handles this path wrote at (x, y, z).
func (p *Path) HypothesesAt(x, y, z int) []voxelgrid.HypothesisHandle {
	return p.writes[[3]int{x, y, z}]
}

func (p *Path) record(x, y, z int, h voxelgrid.HypothesisHandle) {
	key := [3]int{x, y, z}
	p.writes[key] = append(p.writes[key], h)
}

// handles returns every handle this path owns, grouped by nothing in
// particular — used by Pose.Drop to retract them all.
func (p *Path) handles() []voxelgrid.HypothesisHandle {
	var all []voxelgrid.HypothesisHandle
	for _, hs := range p.writes {
		all = append(all, hs...)
	}
	return all
}
