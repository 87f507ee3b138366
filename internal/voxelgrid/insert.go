package voxelgrid

import (
	"math"

	"github.com/fieldkit-robotics/voxelmap/internal/monitoring"
)

// axis names the horizontal traversal direction a ray component is
// dominated by (spec.md §4.4 "longest_axis").
type axis int

const (
	axisX axis = iota
	axisY
)

// componentKind names the three parts of a ray traversal (spec.md §4.4).
type componentKind int

const (
	componentOccupied componentKind = iota
	componentVacantLeft
	componentVacantRight
)

// sensorModelIndex derives the sensor-model row from a disparity value
// (spec.md §4.4). Values whose raw index would be below 2 are promoted to
// row 2 and flagged small-disparity, selecting the infinite-tail width
// profile later on.
func sensorModelIndex(disparity float64, rows int) (idx int, smallDisparity bool) {
	if rows <= 0 {
		monitoring.Logf("voxelgrid: sensor model has no rows, disparity %v unmapped", disparity)
	}
	idx = int(math.Round(disparity * 2))
	if idx < 2 {
		idx = 2
		smallDisparity = true
	}
	if rows > 0 && idx > rows-1 {
		idx = rows - 1
	}
	return idx, smallDisparity
}

// computeIntersect derives the point where the occupied region's diamond
// peaks, used as the far endpoint of both vacancy components.
//
// The Y component is deliberately computed from the X delta, not the Y
// delta. This is a known quirk of the source this module descends from
// (spec.md §9 Open Question); DESIGN.md records the decision to preserve
// it for behavioural parity rather than silently fix it.
func computeIntersect(v0, v1 Vec3, fattestPoint float64) Vec3 {
	dx := v1.X - v0.X
	dz := v1.Z - v0.Z
	return Vec3{
		X: v0.X + fattestPoint*dx,
		Y: v0.Y + fattestPoint*dx, // preserved quirk: dx, not dy
		Z: v0.Z + fattestPoint*dz,
	}
}

// dominantAxis returns whichever of X or Y has the greater magnitude in v,
// along with that magnitude (spec.md §4.4 "longest_axis").
func dominantAxis(v Vec3) (axis, float64) {
	ax, ay := math.Abs(v.X), math.Abs(v.Y)
	if ay > ax {
		return axisY, ay
	}
	return axisX, ax
}

// vacancyProbability is the front-loaded vacancy curve from spec.md §4.4
// step 5: centre = 0.5 - (v/steps), v = 0.1 + 0.9*exp(-(s/steps)^2).
func vacancyProbability(s, steps int) float64 {
	ratio := float64(s) / float64(steps)
	v := 0.1 + 0.9*math.Exp(-(ratio * ratio))
	return 0.5 - (v / float64(steps))
}

// occupiedProbability is the sensor-model-driven centre probability from
// spec.md §4.4 step 5: centre = 0.5 + lookup[idx, s]/2.
func occupiedProbability(model SensorModelLookup, dispIdx, s int) float64 {
	return 0.5 + model.Probability(dispIdx, s)/2
}

// diamondWidth is the per-step cross-section half-width in cells
// (spec.md §4.4 "Ray width profile (diamond)").
func diamondWidth(s, steps int, widestPoint, rayWidthCells float64, smallDisparity bool) float64 {
	sf := float64(s)
	switch {
	case sf < widestPoint:
		if widestPoint == 0 {
			return 0
		}
		return sf * rayWidthCells / widestPoint
	case smallDisparity:
		return rayWidthCells
	default:
		denom := float64(steps) - widestPoint
		if denom <= 0 {
			return rayWidthCells
		}
		return (float64(steps) - sf + widestPoint) * rayWidthCells / denom
	}
}

// matching implements spec.md §4.4's matching function: grade how well a
// ray-predicted probability agrees with the existing pose-conditioned map
// probability at a single voxel.
func (g *Grid) matching(pose Pose, x, y, z int, pRay float64) float64 {
	pMap, ok := g.Probability(pose, x, y, z, false)
	if !ok {
		return 0
	}
	return LogOdds(pRay*pMap + (1-pRay)*(1-pMap))
}

// Insert walks the three sensor-model components of ray (OCCUPIED,
// VACANT_LEFT, VACANT_RIGHT), updating the map and accumulating a
// localisation match score in a single traversal (spec.md §4.4). It
// attributes every written hypothesis to pose, which also records them in
// its own write set via AddHypothesis.
func (g *Grid) Insert(ray EvidenceRay, pose Pose, model SensorModelLookup, leftCam, rightCam Vec3) float64 {
	dispIdx, smallDisparity := sensorModelIndex(ray.Disparity, model.Rows())
	intersect := computeIntersect(ray.Vertices[0], ray.Vertices[1], ray.FattestPoint)

	occupiedAxis, _ := dominantAxis(ray.Vertices[1].Sub(ray.Vertices[0]))
	startingRangeCells := math.Abs(axisComponent(ray.Vertices[0], occupiedAxis)-axisComponent(ray.ObservedFrom, occupiedAxis)) / g.cfg.CellSizeMM

	matchScore := 0.0

	ms, aborted := g.insertComponent(componentOccupied, ray.Vertices[0], ray.Vertices[1], ray, pose, model, dispIdx, smallDisparity, 0, startingRangeCells)
	matchScore += ms
	if aborted {
		return matchScore
	}

	ms, aborted = g.insertComponent(componentVacantLeft, leftCam, intersect, ray, pose, model, dispIdx, smallDisparity, ray.Width, startingRangeCells)
	matchScore += ms
	if aborted {
		return matchScore
	}

	ms, _ = g.insertComponent(componentVacantRight, rightCam, intersect, ray, pose, model, dispIdx, smallDisparity, ray.Width, startingRangeCells)
	matchScore += ms

	return matchScore
}

// axisComponent extracts the named axis component of v.
func axisComponent(v Vec3, a axis) float64 {
	if a == axisX {
		return v.X
	}
	return v.Y
}

// insertComponent traverses one of the three ray components described in
// spec.md §4.4, writing new hypotheses and accumulating a match score.
// aborted reports whether a step fell outside the mappable band and the
// remaining ray (this component and any later ones) must stop.
func (g *Grid) insertComponent(
	kind componentKind,
	start, end Vec3,
	ray EvidenceRay,
	pose Pose,
	model SensorModelLookup,
	dispIdx int,
	smallDisparity bool,
	shortenMM float64,
	startingRangeCells float64,
) (matchScore float64, aborted bool) {
	cellMM := g.cfg.CellSizeMM

	vec := end.Sub(start)
	longestAxis, longestMM := dominantAxis(vec)

	// Vacancy components stop short of the occupied region by ray.Width so
	// the two regions don't overlap (spec.md §4.4).
	if shortenMM > 0 && longestMM > 0 {
		scale := (longestMM - shortenMM) / longestMM
		if scale < 0 {
			scale = 0
		}
		vec = vec.Scale(scale)
		longestAxis, longestMM = dominantAxis(vec)
	}

	stepsF := longestMM / cellMM
	if stepsF < 1 {
		stepsF = 1
	}
	steps := int(stepsF)

	dxStep := vec.X / float64(steps)
	dyStep := vec.Y / float64(steps)
	dzStep := vec.Z / float64(steps)

	rayWidthCells := math.Round(ray.Width / (2 * cellMM))

	var widestPoint float64
	if kind == componentOccupied {
		if ray.Length != 0 {
			widestPoint = ray.FattestPoint * float64(steps) / ray.Length
		}
	} else {
		widestPoint = float64(steps) // vacancy is front-loaded
	}

	originX := g.cfg.OriginX - float64(g.cfg.W)*cellMM/2
	originY := g.cfg.OriginY - float64(g.cfg.W)*cellMM/2
	originZ := g.cfg.OriginZ

	pos := start
	for s := 0; s < steps; s++ {
		pos = pos.Add(Vec3{X: dxStep, Y: dyStep, Z: dzStep})

		cx := int(math.Round((pos.X - originX) / cellMM))
		cy := int(math.Round((pos.Y - originY) / cellMM))
		cz := int(math.Round((pos.Z - originZ) / cellMM))

		mappingWidth := diamondWidth(s, steps, widestPoint, rayWidthCells, smallDisparity)
		locWidth := mappingWidth + g.localisationSearchCells
		locWidthInt := int(math.Round(locWidth))

		if cx < locWidthInt || cx >= g.cfg.W-locWidthInt || cy < locWidthInt || cy >= g.cfg.W-locWidthInt {
			return matchScore, true
		}
		if cz < 0 || cz >= g.cfg.H {
			return matchScore, true
		}

		withinMappingRange := float64(s)+startingRangeCells <= g.maxMappingRangeCells

		var centre float64
		if kind == componentOccupied {
			centre = occupiedProbability(model, dispIdx, s)
		} else {
			centre = vacancyProbability(s, steps)
		}

		for w := -locWidthInt; w <= locWidthInt; w++ {
			x2, y2 := cx, cy
			if longestAxis == axisX {
				y2 = cy + w
			} else {
				x2 = cx + w
			}

			absW := w
			if absW < 0 {
				absW = -absW
			}
			insideMapping := float64(absW) <= mappingWidth

			prob := centre
			if w != 0 && insideMapping {
				prob = centre * sampleGaussian(g.gaussian, int(float64(absW)*9/mappingWidth))
			}

			probLoc := centre
			if w != 0 {
				probLoc = centre * sampleGaussian(g.gaussian, int(float64(absW)*9/locWidth))
			}

			if kind == componentOccupied {
				if existing := g.cellAt(x2, y2, false); existing != nil {
					matchScore += g.matching(pose, x2, y2, cz, probLoc)
				}
			}

			if insideMapping && withinMappingRange {
				c := g.cellAt(x2, y2, true)
				handle := g.arena.add(Hypothesis{X: x2, Y: y2, Z: cz, LogOdds: LogOdds(prob), Pose: pose})
				c.add(cz, handle)
				pose.AddHypothesis(handle, g.cfg.W, g.cfg.H)
				g.totalValidHypotheses++
			}
		}
	}

	return matchScore, false
}
