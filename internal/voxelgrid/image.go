package voxelgrid

// ProbabilityImage samples the grid by nearest-neighbour into an
// caller-owned 8-bit RGB buffer of size wPx*hPx*3, one pixel per grid
// column under pose's view (spec.md §4.2). It is a display helper: it
// never touches grid state.
//
// Unknown columns (NO_EVIDENCE everywhere) paint white. Known columns
// shade by occupancy probability: darker means more likely occupied.
func (g *Grid) ProbabilityImage(buf []byte, wPx, hPx int, pose Pose) {
	for py := 0; py < hPx; py++ {
		y := py * g.cfg.W / hPx
		for px := 0; px < wPx; px++ {
			x := px * g.cfg.W / wPx

			shade := byte(255)
			if c := g.cellAt(x, y, false); c != nil {
				if p, ok := c.probabilityXY(g.arena, pose, x, y); ok {
					shade = probabilityShade(p)
				}
			}

			o := (py*wPx + px) * 3
			buf[o] = shade
			buf[o+1] = shade
			buf[o+2] = shade
		}
	}
}

// probabilityShade buckets an occupancy probability into the 8-bit grey
// values from spec.md §4.2.
func probabilityShade(p float64) byte {
	switch {
	case p > 0.7:
		return 0
	case p > 0.5:
		return 100
	case p >= 0.3:
		return 200
	default:
		return 230
	}
}
