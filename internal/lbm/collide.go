package lbm

import "github.com/san-kum/fluidsim/internal/lattice"

// equilibrium evaluates f_eq with the body force folded into the velocity.
func (s *Sim) equilibrium(eq *[q]float64, rho float64, u lattice.Vec2) {
	lattice.Equilibrium(eq, rho, u.Add(s.gravity))
}

// collide relaxes every fluid-bearing cell toward equilibrium with BGK rate
// omega and caches rho and u (without gravity) for later stages.
func (s *Sim) collide() {
	g := s.grid
	var eq [q]float64
	for i, t := range g.cell {
		if t <= Empty {
			continue
		}
		p := g.pops(i)
		rho, j := lattice.Moments(p)
		var u lattice.Vec2
		if rho > 0 {
			u = j.Scale(1 / rho)
		}
		if s.maxVelocity > 0 {
			u = u.Clamp(s.maxVelocity)
		}
		g.rho[i] = rho
		g.vel[i] = u
		s.equilibrium(&eq, rho, u)
		for d := range p {
			p[d] += s.omega * (eq[d] - p[d])
		}
	}
}
