package lbm

import "github.com/san-kum/fluidsim/internal/lattice"

// stream propagates populations into the spare buffer and swaps buffers.
// Interface cells rebuild a population instead of streaming it when the
// source is Empty or lies on the gas side of the surface normal.
func (s *Sim) stream() {
	g := s.grid
	last, next := g.f[g.cur], g.f[1-g.cur]
	var eq [q]float64
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := g.index(x, y)
			t := g.cell[i]
			if t == Empty {
				continue
			}
			if t == NewInterface {
				t = Interface
				g.cell[i] = t
			}
			b := i * q
			next[b] = last[b]
			surface := t == Interface
			if surface {
				s.equilibrium(&eq, 1, g.vel[i])
			}
			n := g.normal[i]
			for d := 1; d < q; d++ {
				o := lattice.Opposite(d)
				sx, sy := x-lattice.Offsets[d][0], y-lattice.Offsets[d][1]
				if !g.inBounds(sx, sy) {
					next[b+d] = last[b+o]
					continue
				}
				src := g.index(sx, sy)
				if surface && (g.cell[src] == Empty || n.Dot(lattice.Direction(o)) > 0) {
					next[b+d] = eq[d] + eq[o] - last[b+o]
					continue
				}
				next[b+d] = last[src*q+d]
			}
		}
	}
	g.cur = 1 - g.cur
}
