package voxelgrid

import "gonum.org/v1/gonum/floats"

// Cell is one voxel column at a fixed (x, y): an ordered list of hypothesis
// handles per vertical slot, plus the per-slot dirty bit and the
// column-wide garbage counter named in spec.md §3.
type Cell struct {
	slots          [][]HypothesisHandle // len == height; nil entry means empty slot
	dirty          []bool               // len == height
	garbageEntries int
	pushed         bool // true while this cell sits on the grid's worklist
}

func newCell(height int) *Cell {
	return &Cell{
		slots: make([][]HypothesisHandle, height),
		dirty: make([]bool, height),
	}
}

// add appends h to the slot at z, creating the list if absent. No
// deduplication; O(1) amortised (spec.md §4.1).
func (c *Cell) add(z int, h HypothesisHandle) {
	c.slots[z] = append(c.slots[z], h)
}

// probability implements the pose-conditioned query at a single (x, y, z)
// voxel (spec.md §4.3). ok is false when the slot has no evidence at all,
// i.e. the NO_EVIDENCE sentinel.
func (c *Cell) probability(arena *hypothesisArena, pose Pose, x, y, z int, returnLogOdds bool) (value float64, ok bool) {
	if z < 0 || z >= len(c.slots) || c.slots[z] == nil {
		return 0, false
	}
	sum, hits := accumulateAncestry(arena, pose, x, y, z)
	if hits == 0 {
		return 0, false
	}
	if returnLogOdds {
		return sum, true
	}
	return LogOddsToProbability(sum), true
}

// probabilityXY sums per-slot log-odds across every z that has evidence and
// converts once at the end (spec.md §4.1, §9 acknowledged approximation).
// Slots without evidence contribute zero. ok is false when pose finds no
// evidence anywhere in the column, in which case value is the baseline 0.5.
func (c *Cell) probabilityXY(arena *hypothesisArena, pose Pose, x, y int) (value float64, ok bool) {
	contributions := make([]float64, 0, len(c.slots))
	for z := range c.slots {
		if v, ok := c.probability(arena, pose, x, y, z, true); ok {
			contributions = append(contributions, v)
		}
	}
	if len(contributions) == 0 {
		return LogOddsToProbability(0), false
	}
	return LogOddsToProbability(floats.Sum(contributions)), true
}

// collect scans the slot at z from tail to head, removing disabled
// hypotheses and decrementing garbageEntries, stopping early once
// garbageEntries reaches zero. The slot is released back to nil if it
// becomes empty. Returns the number of entries removed (spec.md §4.1).
func (c *Cell) collect(arena *hypothesisArena, z int) int {
	removed := 0
	list := c.slots[z]
	for i := len(list) - 1; i >= 0; i-- {
		if c.garbageEntries == 0 {
			break
		}
		if !arena.get(list[i]).Enabled {
			list = append(list[:i], list[i+1:]...)
			c.garbageEntries--
			removed++
		}
	}
	c.dirty[z] = false
	if len(list) == 0 {
		c.slots[z] = nil
	} else {
		c.slots[z] = list
	}
	return removed
}

// collectAll invokes collect for every dirty slot, short-circuiting once
// garbageEntries reaches zero (spec.md §4.1).
func (c *Cell) collectAll(arena *hypothesisArena) int {
	removed := 0
	for z, isDirty := range c.dirty {
		if c.garbageEntries == 0 {
			break
		}
		if !isDirty {
			continue
		}
		removed += c.collect(arena, z)
	}
	return removed
}
