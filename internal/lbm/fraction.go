package lbm

import "github.com/san-kum/fluidsim/internal/lattice"

// estimate refreshes the half fluid fraction of every cell and the interface
// normals. Fluid mass is pinned to the density here.
func (s *Sim) estimate() {
	g := s.grid
	for i, t := range g.cell {
		switch {
		case t == Fluid:
			g.eps[i] = 0.5
			g.mass[i] = g.rho[i]
		case t.carriesMass():
			if r := g.rho[i]; r > 0 {
				g.eps[i] = g.mass[i] / (2 * r)
			} else {
				g.eps[i] = 0
			}
		default:
			g.eps[i] = 0
			g.mass[i] = 0
		}
	}
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			i := g.index(x, y)
			if !g.cell[i].carriesMass() {
				g.normal[i] = lattice.Vec2{}
				continue
			}
			g.normal[i] = lattice.Vec2{
				X: g.eps[i-1] - g.eps[i+1],
				Y: g.eps[i-g.w] - g.eps[i+g.w],
			}
		}
	}
}
