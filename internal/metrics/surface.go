package metrics

import "github.com/san-kum/fluidsim/internal/lbm"

type InterfaceCells struct {
	name  string
	value float64
}

func NewInterfaceCells() *InterfaceCells { return &InterfaceCells{name: "interface_cells"} }

func (m *InterfaceCells) Name() string { return m.name }

func (m *InterfaceCells) Observe(f Field, step int) {
	n := 0
	interior(f, func(x, y int) {
		if f.CellType(x, y) >= lbm.Interface {
			n++
		}
	})
	m.value = float64(n)
}

func (m *InterfaceCells) Value() float64 { return m.value }
func (m *InterfaceCells) Reset()         { m.value = 0 }

// AdjacencyViolations counts Fluid cells with an Empty cell among their 8
// neighbours. It keeps the maximum seen so a single bad sample is not lost.
type AdjacencyViolations struct {
	name  string
	value float64
}

func NewAdjacencyViolations() *AdjacencyViolations {
	return &AdjacencyViolations{name: "adjacency_violations"}
}

func (m *AdjacencyViolations) Name() string { return m.name }

func (m *AdjacencyViolations) Observe(f Field, step int) {
	n := 0
	interior(f, func(x, y int) {
		if f.CellType(x, y) != lbm.Fluid {
			return
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if (dx != 0 || dy != 0) && f.CellType(x+dx, y+dy) == lbm.Empty {
					n++
					return
				}
			}
		}
	})
	m.value = max(m.value, float64(n))
}

func (m *AdjacencyViolations) Value() float64 { return m.value }
func (m *AdjacencyViolations) Reset()         { m.value = 0 }
