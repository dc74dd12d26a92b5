package lbm

import (
	"log/slog"

	"github.com/san-kum/fluidsim/internal/lattice"
)

// dragSpreadThreshold is the squared drag magnitude below which the push is
// spread evenly instead of along the drag direction.
const dragSpreadThreshold = 0.0005

// Fill turns an interior Empty cell into fluid at rest. Free surface only.
func (s *Sim) Fill(x, y int) {
	s.FillBatch([]Coord{{X: x, Y: y}})
}

// FillBatch fills several cells and rebuilds the interface once.
func (s *Sim) FillBatch(cells []Coord) {
	if s.variant != FreeSurface {
		return
	}
	g := s.grid
	s.filled = s.filled[:0]
	s.emptied = s.emptied[:0]
	var eq [q]float64
	s.equilibrium(&eq, s.density, lattice.Vec2{})
	for _, c := range cells {
		if !g.interior(c.X, c.Y) {
			continue
		}
		i := g.index(c.X, c.Y)
		if g.cell[i] != Empty {
			continue
		}
		g.setPops(i, &eq)
		g.rho[i] = s.density
		g.vel[i] = lattice.Vec2{}
		g.mass[i] = s.density
		g.cell[i] = Fluid
		s.filled = append(s.filled, i)
	}
	if len(s.filled) == 0 {
		return
	}
	s.reinit()
	s.estimate()
	s.log.Debug("lbm_fill", slog.Int("cells", len(s.filled)))
	s.filled = s.filled[:0]
}

// Empty removes the liquid of an interior Fluid or Interface cell. Free
// surface only.
func (s *Sim) Empty(x, y int) {
	g := s.grid
	if s.variant != FreeSurface || !g.interior(x, y) {
		return
	}
	i := g.index(x, y)
	if g.cell[i] <= Empty {
		return
	}
	g.cell[i] = Empty
	g.clearCell(i)
	g.demoteFluidNeighbors(i)
	s.estimate()
}

// SetObstacle adds or removes a solid interior cell. A removed obstacle
// becomes Empty in the free-surface variant and fluid at the neighbouring
// density in the single-phase variant.
func (s *Sim) SetObstacle(x, y int, solid bool) {
	g := s.grid
	if !g.interior(x, y) {
		return
	}
	i := g.index(x, y)
	isSolid := g.cell[i] == Obstacle
	switch {
	case solid && !isSolid:
		g.cell[i] = Obstacle
		g.clearCell(i)
	case !solid && isSolid:
		if s.variant == SinglePhase {
			s.reopen(i)
			return
		}
		g.cell[i] = Empty
		g.clearCell(i)
		g.demoteFluidNeighbors(i)
		s.estimate()
	}
}

func (s *Sim) reopen(i int) {
	g := s.grid
	rho, u, ok := g.neighborAverage(i)
	if !ok {
		rho, u = s.density, lattice.Vec2{}
	}
	var eq [q]float64
	s.equilibrium(&eq, rho, u)
	g.cell[i] = Fluid
	g.setPops(i, &eq)
	g.rho[i] = rho
	g.vel[i] = u
}

// ApplyDrag pushes momentum v into an interior liquid cell without changing
// its density: each moving population gains its share and the rest
// population pays for it.
func (s *Sim) ApplyDrag(x, y int, v lattice.Vec2) {
	g := s.grid
	if !g.interior(x, y) || !v.IsValid() {
		return
	}
	i := g.index(x, y)
	if g.cell[i] <= Empty {
		return
	}
	p := g.pops(i)
	directed := v.Dot(v) > dragSpreadThreshold
	even := v.Len() / (q - 1)
	var total float64
	for d := 1; d < q; d++ {
		val := even
		if directed {
			e := lattice.Direction(d)
			val = max(v.Dot(e)/e.Dot(e), 0)
		}
		p[d] += val
		total += val
	}
	p[0] -= total
}

// SetViscosity changes the viscosity and the relaxation rate. Invalid
// values are ignored.
func (s *Sim) SetViscosity(v float64) {
	if !validViscosity(v) {
		s.log.Warn("lbm_invalid_viscosity", slog.Float64("viscosity", v))
		return
	}
	s.viscosity = v
	s.omega = relaxation(v)
}
