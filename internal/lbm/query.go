package lbm

import "github.com/san-kum/fluidsim/internal/lattice"

// Queries never fail: coordinates outside the grid yield a neutral value.

func (s *Sim) Size() (width, height int) { return s.grid.w, s.grid.h }

func (s *Sim) Variant() Variant { return s.variant }

func (s *Sim) Viscosity() float64 { return s.viscosity }

func (s *Sim) Gravity() lattice.Vec2 { return s.gravity }

func (s *Sim) Density(x, y int) float64 {
	if !s.grid.inBounds(x, y) {
		return 0
	}
	return s.grid.rho[s.grid.index(x, y)]
}

func (s *Sim) Velocity(x, y int) lattice.Vec2 {
	if !s.grid.inBounds(x, y) {
		return lattice.Vec2{}
	}
	return s.grid.vel[s.grid.index(x, y)]
}

// Curl is the discrete vorticity at an interior cell.
func (s *Sim) Curl(x, y int) float64 {
	g := s.grid
	if !g.interior(x, y) {
		return 0
	}
	i := g.index(x, y)
	return g.vel[i+1].Y - g.vel[i-1].Y - g.vel[i+g.w].X + g.vel[i-g.w].X
}

// IsObstacle is true outside the grid.
func (s *Sim) IsObstacle(x, y int) bool {
	if !s.grid.inBounds(x, y) {
		return true
	}
	return s.grid.cell[s.grid.index(x, y)] == Obstacle
}

// IsFluid reports whether the cell holds any liquid. It is true outside the
// grid so callers scanning a border treat it as closed.
func (s *Sim) IsFluid(x, y int) bool {
	if !s.grid.inBounds(x, y) {
		return true
	}
	return s.grid.cell[s.grid.index(x, y)] > Empty
}

func (s *Sim) CellType(x, y int) CellType {
	if !s.grid.inBounds(x, y) {
		return Empty
	}
	return s.grid.cell[s.grid.index(x, y)]
}

func (s *Sim) InterfaceClass(x, y int) InterfaceClass {
	if !s.grid.inBounds(x, y) {
		return Standard
	}
	return s.grid.class[s.grid.index(x, y)]
}

func (s *Sim) Mass(x, y int) float64 {
	if s.variant != FreeSurface || !s.grid.inBounds(x, y) {
		return 0
	}
	return s.grid.mass[s.grid.index(x, y)]
}

// FluidFraction is m/rho for interface cells, 1 for fluid and 0 otherwise.
func (s *Sim) FluidFraction(x, y int) float64 {
	if s.variant != FreeSurface || !s.grid.inBounds(x, y) {
		return 0
	}
	return 2 * s.grid.eps[s.grid.index(x, y)]
}

func (s *Sim) InterfaceNormal(x, y int) lattice.Vec2 {
	if s.variant != FreeSurface || !s.grid.inBounds(x, y) {
		return lattice.Vec2{}
	}
	return s.grid.normal[s.grid.index(x, y)]
}
