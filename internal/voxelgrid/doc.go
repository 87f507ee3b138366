// Package voxelgrid implements the multi-hypothesis voxel occupancy map
// used by the particle-filter SLAM stack: per-cell hypothesis storage keyed
// by the writing particle pose, pose-ancestry-conditioned probability
// queries, and combined map-update/localisation-score ray casting.
//
// The particle filter itself — pose propagation, resampling, weighting — is
// out of scope. This package consumes the Pose and Path contracts and
// nothing else about the filter's internals.
package voxelgrid
