package metrics

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/san-kum/fluidsim/internal/lattice"
	"github.com/san-kum/fluidsim/internal/lbm"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func box(t *testing.T, rho float64) *lbm.Sim {
	t.Helper()
	s, err := lbm.New(10, 8, 0.1, lbm.WithLogger(quiet), lbm.WithVariant(lbm.SinglePhase), lbm.WithDensity(rho))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTotalDensity(t *testing.T) {
	s := box(t, 1.5)
	m := NewTotalDensity()
	m.Observe(s, 0)
	if want := 1.5 * 8 * 6; math.Abs(m.Value()-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, m.Value())
	}
}

func TestMassDrift_StableBox(t *testing.T) {
	s := box(t, 1)
	m := NewMassDrift()
	for i := 0; i < 5; i++ {
		s.Simulate(20)
		m.Observe(s, i)
	}
	if m.Value() > 1e-12 {
		t.Errorf("expected no drift, got %v", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should clear drift")
	}
}

func TestSurfaceMetrics(t *testing.T) {
	s, err := lbm.New(10, 10, 0.1, lbm.WithLogger(quiet), lbm.WithGravity(lattice.Vec2{}))
	if err != nil {
		t.Fatal(err)
	}
	s.Fill(4, 4)

	cells := NewInterfaceCells()
	cells.Observe(s, 0)
	if cells.Value() != 8 {
		t.Errorf("expected 8 interface cells, got %v", cells.Value())
	}

	adj := NewAdjacencyViolations()
	adj.Observe(s, 0)
	if adj.Value() != 0 {
		t.Errorf("expected no violations, got %v", adj.Value())
	}

	mass := NewTotalMass()
	mass.Observe(s, 0)
	if mass.Value() != 1 {
		t.Errorf("expected mass 1, got %v", mass.Value())
	}
}

func TestMaxSpeedAndSpread(t *testing.T) {
	s := box(t, 1)
	speed := NewMaxSpeed()
	spread := NewDensityStdDev()
	speed.Observe(s, 0)
	spread.Observe(s, 0)
	if speed.Value() != 0 || spread.Value() > 1e-15 {
		t.Errorf("rest box: speed %v spread %v", speed.Value(), spread.Value())
	}

	s.ApplyDrag(4, 4, lattice.Vec2{X: 0.05})
	s.Simulate(1)
	speed.Observe(s, 1)
	if speed.Value() <= 0 {
		t.Error("expected motion after drag")
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		m, ok := ByName(name)
		if !ok || m.Name() != name {
			t.Errorf("lookup of %s failed", name)
		}
	}
	if _, ok := ByName("energy"); ok {
		t.Error("unexpected metric")
	}
}
