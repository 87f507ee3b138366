package voxelgrid

// Remove tombstones a hypothesis: flips it disabled, marks its cell's slot
// dirty, pushes the cell onto the worklist the first time it goes dirty,
// and updates the global counters (spec.md §4.2). h must currently be
// enabled.
func (g *Grid) Remove(handle HypothesisHandle) {
	h := g.arena.get(handle)
	if !h.Enabled {
		return
	}
	h.Enabled = false

	c := g.cellAt(h.X, h.Y, false)
	if c == nil {
		return
	}
	c.dirty[h.Z] = true
	if c.garbageEntries == 0 && !c.pushed {
		c.pushed = true
		g.worklist = append(g.worklist, c)
	}
	c.garbageEntries++

	g.totalGarbageHypotheses++
	g.totalValidHypotheses--
}

// GarbageCollect walks the worklist tail-to-head, compacting each cell's
// dirty slots, and drops cells with no remaining garbage. budgetPercent is
// honoured as a cap on the fraction of the worklist processed per call
// (spec.md §4.2, §9 — Open Question decision 4 in DESIGN.md); a
// non-positive or >=100 value processes the whole worklist. The sweep is
// idempotent: calling it again with an empty worklist is a no-op.
func (g *Grid) GarbageCollect(budgetPercent float64) {
	if len(g.worklist) == 0 {
		return
	}

	limit := len(g.worklist)
	if budgetPercent > 0 && budgetPercent < 100 {
		limit = int(float64(len(g.worklist)) * budgetPercent / 100)
		if limit <= 0 {
			limit = 1
		}
	}

	processed := 0
	for i := len(g.worklist) - 1; i >= 0 && processed < limit; i-- {
		c := g.worklist[i]
		removed := c.collectAll(g.arena)
		g.totalGarbageHypotheses -= removed
		processed++

		if c.garbageEntries == 0 {
			c.pushed = false
			g.worklist = append(g.worklist[:i], g.worklist[i+1:]...)
		}
	}
}
