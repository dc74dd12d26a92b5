package lbm

import (
	"io"
	"log/slog"

	"github.com/san-kum/fluidsim/internal/lattice"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// fataler is satisfied by *testing.T and GinkgoT().
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func newFreeSurface(t fataler, w, h int, opts ...Option) *Sim {
	t.Helper()
	base := []Option{WithLogger(quiet), WithGravity(lattice.Vec2{})}
	s, err := New(w, h, 0.1, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// setInterface plants an interface cell at rest holding mass m.
func setInterface(s *Sim, x, y int, m float64) {
	g := s.grid
	i := g.index(x, y)
	var eq [q]float64
	lattice.Equilibrium(&eq, 1, lattice.Vec2{})
	g.setPops(i, &eq)
	g.cell[i] = Interface
	g.rho[i] = 1
	g.mass[i] = m
}

func totalDensity(s *Sim) float64 {
	var sum float64
	g := s.grid
	for i := range g.cell {
		for _, v := range g.pops(i) {
			sum += v
		}
	}
	return sum
}

// totalMass is the liquid inventory of a free-surface grid.
func totalMass(s *Sim) float64 {
	var sum float64
	g := s.grid
	for i, t := range g.cell {
		switch {
		case t == Fluid:
			sum += g.rho[i]
		case t.carriesMass():
			sum += g.mass[i]
		}
	}
	return sum
}

// adjacencyViolations counts Fluid cells touching an Empty cell.
func adjacencyViolations(s *Sim) int {
	g := s.grid
	n := 0
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			i := g.index(x, y)
			if g.cell[i] != Fluid {
				continue
			}
			for d := 1; d < q; d++ {
				if g.cell[i+g.nb[d]] == Empty {
					n++
					break
				}
			}
		}
	}
	return n
}

func block(x0, y0, x1, y1 int) []Coord {
	var cs []Coord
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cs = append(cs, Coord{X: x, Y: y})
		}
	}
	return cs
}
