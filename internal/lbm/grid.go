package lbm

import "github.com/san-kum/fluidsim/internal/lattice"

const q = lattice.Q

// grid holds the per-cell state. Populations live in two flat buffers of
// W*H*Q values; cur selects the one the current tick reads from.
type grid struct {
	w, h int

	f   [2][]float64
	cur int

	cell   []CellType
	class  []InterfaceClass
	mass   []float64
	eps    []float64 // half fluid fraction
	rho    []float64
	vel    []lattice.Vec2
	normal []lattice.Vec2

	// nb[d] is the flat index offset of the neighbour along e_d.
	nb [q]int
}

func newGrid(w, h int) *grid {
	n := w * h
	g := &grid{
		w:      w,
		h:      h,
		cell:   make([]CellType, n),
		class:  make([]InterfaceClass, n),
		mass:   make([]float64, n),
		eps:    make([]float64, n),
		rho:    make([]float64, n),
		vel:    make([]lattice.Vec2, n),
		normal: make([]lattice.Vec2, n),
	}
	g.f[0] = make([]float64, n*q)
	g.f[1] = make([]float64, n*q)
	for d := 0; d < q; d++ {
		g.nb[d] = lattice.Offsets[d][0] + lattice.Offsets[d][1]*w
	}
	for x := 0; x < w; x++ {
		g.cell[g.index(x, 0)] = Obstacle
		g.cell[g.index(x, h-1)] = Obstacle
	}
	for y := 0; y < h; y++ {
		g.cell[g.index(0, y)] = Obstacle
		g.cell[g.index(w-1, y)] = Obstacle
	}
	return g
}

func (g *grid) index(x, y int) int { return x + y*g.w }

func (g *grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *grid) interior(x, y int) bool {
	return x > 0 && x < g.w-1 && y > 0 && y < g.h-1
}

// pops returns the current populations of cell i.
func (g *grid) pops(i int) []float64 {
	b := i * q
	return g.f[g.cur][b : b+q : b+q]
}

// setPops overwrites the current populations of cell i.
func (g *grid) setPops(i int, eq *[q]float64) {
	copy(g.pops(i), eq[:])
}

// clearCell drops every quantity a cell carries, leaving its type alone.
func (g *grid) clearCell(i int) {
	clear(g.pops(i))
	g.mass[i] = 0
	g.eps[i] = 0
	g.rho[i] = 0
	g.vel[i] = lattice.Vec2{}
	g.normal[i] = lattice.Vec2{}
	g.class[i] = Standard
}

// neighborAverage averages the cached density and velocity of the Fluid and
// Interface cells in the 3x3 block around i. ok is false when there are none.
func (g *grid) neighborAverage(i int) (rho float64, u lattice.Vec2, ok bool) {
	n := 0
	for d := 0; d < q; d++ {
		j := i + g.nb[d]
		if t := g.cell[j]; t == Fluid || t == Interface {
			rho += g.rho[j]
			u = u.Add(g.vel[j])
			n++
		}
	}
	if n == 0 {
		return 0, lattice.Vec2{}, false
	}
	inv := 1 / float64(n)
	return rho * inv, u.Scale(inv), true
}

// demoteFluidNeighbors turns every Fluid neighbour of i into Interface.
func (g *grid) demoteFluidNeighbors(i int) {
	for d := 1; d < q; d++ {
		if j := i + g.nb[d]; g.cell[j] == Fluid {
			g.cell[j] = Interface
		}
	}
}
