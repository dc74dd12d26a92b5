// Package metrics reduces a lattice snapshot to scalar run statistics.
package metrics

import (
	"github.com/san-kum/fluidsim/internal/lattice"
	"github.com/san-kum/fluidsim/internal/lbm"
)

// Field is the read-only view of a simulation a metric samples.
type Field interface {
	Size() (width, height int)
	Density(x, y int) float64
	Velocity(x, y int) lattice.Vec2
	CellType(x, y int) lbm.CellType
	Mass(x, y int) float64
	DroppedMass() float64
}

type Metric interface {
	Name() string
	Observe(f Field, step int)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every run.
func Defaults() []Metric {
	return []Metric{
		NewTotalMass(),
		NewTotalDensity(),
		NewMassDrift(),
		NewMaxSpeed(),
		NewDensityStdDev(),
		NewInterfaceCells(),
		NewAdjacencyViolations(),
		NewDroppedMass(),
	}
}

// ByName looks a default metric up by name.
func ByName(name string) (Metric, bool) {
	for _, m := range Defaults() {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

func Names() []string {
	ms := Defaults()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name()
	}
	return names
}

// interior calls fn for every non-border cell.
func interior(f Field, fn func(x, y int)) {
	w, h := f.Size()
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			fn(x, y)
		}
	}
}
