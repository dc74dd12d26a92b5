package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fluidsim/internal/lbm"
)

// liquidMass is the free-surface liquid inventory: density for Fluid cells,
// tracked mass for interface cells.
func liquidMass(f Field) float64 {
	var vals []float64
	interior(f, func(x, y int) {
		switch t := f.CellType(x, y); {
		case t == lbm.Fluid:
			vals = append(vals, f.Density(x, y))
		case t >= lbm.Interface:
			vals = append(vals, f.Mass(x, y))
		}
	})
	return floats.Sum(vals)
}

type TotalMass struct {
	name  string
	value float64
}

func NewTotalMass() *TotalMass { return &TotalMass{name: "total_mass"} }

func (m *TotalMass) Name() string              { return m.name }
func (m *TotalMass) Observe(f Field, step int) { m.value = liquidMass(f) }
func (m *TotalMass) Value() float64            { return m.value }
func (m *TotalMass) Reset()                    { m.value = 0 }

// TotalDensity sums the cached density over every interior cell. It is the
// conserved quantity of a closed single-phase box.
type TotalDensity struct {
	name  string
	value float64
}

func NewTotalDensity() *TotalDensity { return &TotalDensity{name: "total_density"} }

func (m *TotalDensity) Name() string { return m.name }

func (m *TotalDensity) Observe(f Field, step int) { m.value = densitySum(f) }

func densitySum(f Field) float64 {
	var sum float64
	interior(f, func(x, y int) { sum += f.Density(x, y) })
	return sum
}

func (m *TotalDensity) Value() float64 { return m.value }
func (m *TotalDensity) Reset()         { m.value = 0 }

// MassDrift is the largest relative change of the liquid inventory seen
// since the first sample. Grids without free-surface mass fall back to the
// density sum.
type MassDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewMassDrift() *MassDrift { return &MassDrift{name: "mass_drift"} }

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(f Field, step int) {
	total := liquidMass(f)
	if total == 0 {
		total = densitySum(f)
	}
	if m.samples == 0 {
		m.initial = total
	}
	m.samples++
	if m.initial != 0 {
		m.maxDrift = math.Max(m.maxDrift, math.Abs(total-m.initial)/math.Abs(m.initial))
	}
}

func (m *MassDrift) Value() float64 { return m.maxDrift }

func (m *MassDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// DroppedMass mirrors the engine's cumulative redistribution loss.
type DroppedMass struct {
	name  string
	value float64
}

func NewDroppedMass() *DroppedMass { return &DroppedMass{name: "dropped_mass"} }

func (m *DroppedMass) Name() string              { return m.name }
func (m *DroppedMass) Observe(f Field, step int) { m.value = f.DroppedMass() }
func (m *DroppedMass) Value() float64            { return m.value }
func (m *DroppedMass) Reset()                    { m.value = 0 }
