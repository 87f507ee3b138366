// Package particle provides a minimal reference implementation of
// voxelgrid.Pose and voxelgrid.Path: enough pose-tree bookkeeping to drive
// the voxel grid from tests and small integration callers.
//
// It is not a particle filter. There is no resampling, no weighting, no
// motion model, and no propagation of pose estimates — those belong to the
// filter that owns the real deployment, which this package only stands in
// for.
package particle
