package lbm

import "github.com/san-kum/fluidsim/internal/lattice"

// bounce reflects whatever streamed into an obstacle back to the neighbour
// it came from, then clears the obstacle so it holds no mass.
func (s *Sim) bounce() {
	g := s.grid
	f := g.f[g.cur]
	for i, t := range g.cell {
		if t != Obstacle {
			continue
		}
		x, y := i%g.w, i/g.w
		b := i * q
		for d := 1; d < q; d++ {
			nx, ny := x+lattice.Offsets[d][0], y+lattice.Offsets[d][1]
			if !g.inBounds(nx, ny) {
				continue
			}
			j := g.index(nx, ny)
			if g.cell[j] <= Empty {
				continue
			}
			f[j*q+d] = f[b+lattice.Opposite(d)]
		}
	}
	for i, t := range g.cell {
		if t == Obstacle {
			clear(f[i*q : i*q+q])
		}
	}
}
