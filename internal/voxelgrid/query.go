package voxelgrid

// accumulateAncestry implements the ancestry walk from spec.md §4.3 step 2:
// for each of pose's ancestor paths, replay only that path's own
// contributions at (x, y, z), gated by the temporal rule that a pose never
// reinforces itself with hypotheses it (or a sibling sharing its time step)
// just deposited.
func accumulateAncestry(arena *hypothesisArena, pose Pose, x, y, z int) (sum float64, hits int) {
	for _, path := range pose.PreviousPaths() {
		for _, handle := range path.HypothesesAt(x, y, z) {
			h := arena.get(handle)
			if !h.Enabled {
				continue
			}
			if pose.TimeStep() <= h.Pose.TimeStep() {
				continue
			}
			sum += h.LogOdds
			hits++
		}
	}
	return sum, hits
}
