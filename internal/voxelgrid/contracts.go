package voxelgrid

// Vec3 is a 3D position in millimetres, in the grid's world frame.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v-other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Add returns v+other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Pose is the external contract for a particle-filter robot hypothesis.
// The filter/pose-tree implementation lives outside this package; voxelgrid
// only ever calls these three methods.
type Pose interface {
	// TimeStep identifies when this pose was created, used as the
	// temporal gate in pose-conditioned probability queries.
	TimeStep() int64

	// PreviousPaths returns the ancestor Path handles this pose can see.
	// Order is irrelevant — contributions are summed.
	PreviousPaths() []Path

	// AddHypothesis records ownership of a newly written hypothesis so
	// the pose can retract it if it is later dropped (by the external
	// resampling step).
	AddHypothesis(h HypothesisHandle, w, hxy int)
}

// Path is the external contract for one ancestor's write set in the
// particle tree. A Path replays only its own contributions at a voxel.
type Path interface {
	// HypothesesAt returns the hypotheses this path wrote at (x, y, z).
	HypothesesAt(x, y, z int) []HypothesisHandle
}

// EvidenceRay is the external contract for one stereo range measurement:
// a diamond-profile occupied segment flanked by two vacancy segments back
// to the two stereo cameras.
type EvidenceRay struct {
	// Vertices holds the near (index 0) and far (index 1) edges of the
	// occupied region, in world millimetres.
	Vertices [2]Vec3

	// ObservedFrom is the position the ray was cast from.
	ObservedFrom Vec3

	// FattestPoint is the fractional position along the occupied region
	// where the diamond cross-section peaks, in [0, 1].
	FattestPoint float64

	// Width is the cross-section width in millimetres.
	Width float64

	// Length is the length used to normalise the width taper, in the
	// same units as Width.
	Length float64

	// Disparity is the stereo pixel disparity, a proxy for inverse depth.
	Disparity float64
}

// SensorModelLookup is the external, pre-tabulated sensor model:
// Probability(dispIdx, stepIdx) returns a value in [-1, 1].
type SensorModelLookup interface {
	// Rows returns the number of disparity-index rows in the table.
	Rows() int

	// Probability returns the tabulated value for the given disparity
	// index and step index. The caller passes the step index along the
	// occupied component unclamped, so implementations should treat
	// out-of-range columns as the nearest in-range value.
	Probability(dispIdx, stepIdx int) float64
}
