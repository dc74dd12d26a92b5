package lbm

import (
	"log/slog"
	"math"
	"slices"

	"github.com/san-kum/fluidsim/internal/lattice"
)

const (
	// emptyFraction and fullFraction bound a NoFluidNeighbor cell.
	emptyFraction = 0.1
	fullFraction  = 0.9
	// fillTolerance bounds every other interface cell.
	fillTolerance = 1e-4
)

// transfer runs the mass pass that follows bounce-back.
func (s *Sim) transfer() {
	s.filled = s.filled[:0]
	s.emptied = s.emptied[:0]
	s.classify()
	s.exchange()
	s.reinit()
	s.redistribute()
	s.last.Filled = len(s.filled)
	s.last.Emptied = len(s.emptied)
}

// classify tags each interior Interface cell. An obstacle neighbour counts
// as non-fluid, so a cell touching a wall is never NoEmptyNeighbor.
func (s *Sim) classify() {
	g := s.grid
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			i := g.index(x, y)
			if g.cell[i] != Interface {
				g.class[i] = Standard
				continue
			}
			g.class[i] = g.classOf(i)
		}
	}
}

func (g *grid) classOf(i int) InterfaceClass {
	fluid, surface, full := false, false, true
	for d := 1; d < q; d++ {
		switch t := g.cell[i+g.nb[d]]; {
		case t == Fluid:
			fluid = true
		case t == Interface:
			surface = true
		case t <= Empty:
			full = false
		}
	}
	switch {
	case !fluid && !surface:
		return NoInterfaceNeighbor
	case !fluid:
		return NoFluidNeighbor
	case full:
		return NoEmptyNeighbor
	}
	return Standard
}

// exchange moves mass between each Interface cell and its Fluid and
// Interface neighbours, then queues the cells that crossed a threshold.
func (s *Sim) exchange() {
	g := s.grid
	f := g.f[g.cur]
	rate := s.massFlowRate
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			i := g.index(x, y)
			if g.cell[i] != Interface {
				continue
			}
			self := g.class[i]
			var dm float64
			for d := 1; d < q; d++ {
				j := i + g.nb[d]
				in := f[j*q+lattice.Opposite(d)]
				out := f[i*q+d]
				switch g.cell[j] {
				case Fluid:
					dm += (in - out) * rate
				case Interface:
					dm += interfaceFlow(self, g.class[j], in, out, g.eps[i]+g.eps[j], rate)
				}
			}
			g.mass[i] += dm
			s.queue(i)
		}
	}
}

// interfaceFlow is the mass an interface cell of class self gains from an
// interface neighbour of class other. Flows between unlike classes are one
// way so drained cells empty and full cells fill.
func interfaceFlow(self, other InterfaceClass, in, out, weight, rate float64) float64 {
	full := (in - out) * weight * rate
	switch {
	case self.drains():
		if other.drains() {
			return full
		}
		return -out * weight
	case self == NoEmptyNeighbor:
		if other == NoEmptyNeighbor {
			return full
		}
		return in * weight
	case other == NoEmptyNeighbor:
		return -out * weight
	case other.drains():
		return in * weight
	}
	return full
}

func (s *Sim) queue(i int) {
	g := s.grid
	m, rho := g.mass[i], g.rho[i]
	switch g.class[i] {
	case NoInterfaceNeighbor:
		s.filled = append(s.filled, i)
	case NoFluidNeighbor:
		if m < emptyFraction*rho {
			s.emptied = append(s.emptied, i)
		} else if m > fullFraction*rho {
			s.filled = append(s.filled, i)
		}
	default:
		if m < -fillTolerance*rho {
			s.emptied = append(s.emptied, i)
		} else if m > (1+fillTolerance)*rho {
			s.filled = append(s.filled, i)
		}
	}
}

// reinit converts queued cells. Filled cells go first: they rescue
// neighbouring interface cells from the emptied list and grow a new
// interface layer into the empty phase. Emptied cells then demote their
// Fluid neighbours so no fluid touches gas.
func (s *Sim) reinit() {
	g := s.grid
	for _, i := range s.filled {
		g.cell[i] = Fluid
		for d := 1; d < q; d++ {
			j := i + g.nb[d]
			switch g.cell[j] {
			case Interface:
				if k := slices.Index(s.emptied, j); k >= 0 {
					s.emptied = slices.Delete(s.emptied, k, k+1)
				}
			case Empty:
				s.seed(j)
			}
		}
	}
	for _, i := range s.emptied {
		g.cell[i] = Empty
		g.demoteFluidNeighbors(i)
	}
}

// seed turns an Empty cell into NewInterface with equilibrium populations
// taken from its fluid neighbourhood.
func (s *Sim) seed(i int) {
	g := s.grid
	g.cell[i] = NewInterface
	rho, u, ok := g.neighborAverage(i)
	if !ok {
		rho, u = 1, lattice.Vec2{}
		s.last.Orphans++
		s.log.Warn("lbm_orphan_interface",
			slog.Int("x", i%g.w),
			slog.Int("y", i/g.w),
			slog.Int("tick", s.ticks),
		)
	}
	var eq [q]float64
	s.equilibrium(&eq, rho, u)
	g.setPops(i, &eq)
	g.rho[i] = rho
	g.vel[i] = u
	g.mass[i] = 0
	g.eps[i] = 0
}

// redistribute pushes the excess mass of converted cells to their
// neighbours along the surface normal.
func (s *Sim) redistribute() {
	g := s.grid
	for _, i := range s.filled {
		excess := g.mass[i] - g.rho[i]
		if excess <= 0 {
			continue
		}
		g.mass[i] = g.rho[i]
		s.spread(i, excess, g.normal[i])
	}
	for _, i := range s.emptied {
		if excess := g.mass[i]; excess < 0 {
			s.spread(i, excess, g.normal[i].Scale(-1))
		}
		g.clearCell(i)
	}
}

// spread shares excess among the neighbours of i in proportion to the
// positive projection of n onto each direction. Shares that land on a cell
// which does not carry mass, and the whole amount when no direction
// projects positively, are recorded as dropped.
func (s *Sim) spread(i int, excess float64, n lattice.Vec2) {
	g := s.grid
	var eta [q]float64
	var total float64
	for d := 1; d < q; d++ {
		eta[d] = max(n.Dot(lattice.Direction(d)), 0)
		total += eta[d]
	}
	if total <= 0 {
		s.drop(excess)
		return
	}
	for d := 1; d < q; d++ {
		if eta[d] == 0 {
			continue
		}
		share := excess * eta[d] / total
		j := i + g.nb[d]
		if g.cell[j].carriesMass() {
			g.mass[j] += share
		} else {
			s.drop(share)
		}
	}
}

func (s *Sim) drop(m float64) {
	a := math.Abs(m)
	s.last.DroppedMass += a
	s.dropped += a
}
