package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/fluidsim/internal/lbm"
)

type MaxSpeed struct {
	name  string
	value float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{name: "max_speed"} }

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(f Field, step int) {
	var speeds []float64
	interior(f, func(x, y int) {
		if f.CellType(x, y) > lbm.Empty {
			speeds = append(speeds, f.Velocity(x, y).Len())
		}
	})
	if len(speeds) == 0 {
		m.value = 0
		return
	}
	m.value = floats.Max(speeds)
}

func (m *MaxSpeed) Value() float64 { return m.value }
func (m *MaxSpeed) Reset()         { m.value = 0 }

// DensityStdDev is the spread of density over liquid cells.
type DensityStdDev struct {
	name  string
	value float64
}

func NewDensityStdDev() *DensityStdDev { return &DensityStdDev{name: "density_stddev"} }

func (m *DensityStdDev) Name() string { return m.name }

func (m *DensityStdDev) Observe(f Field, step int) {
	var rho []float64
	interior(f, func(x, y int) {
		if f.CellType(x, y) > lbm.Empty {
			rho = append(rho, f.Density(x, y))
		}
	})
	if len(rho) < 2 {
		m.value = 0
		return
	}
	m.value = stat.StdDev(rho, nil)
}

func (m *DensityStdDev) Value() float64 { return m.value }
func (m *DensityStdDev) Reset()         { m.value = 0 }
