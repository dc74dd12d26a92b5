package lbm

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fluidsim/internal/lattice"
)

func TestNew_InvalidArguments(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		viscosity float64
		want      error
	}{
		{"narrow", 2, 10, 0.1, ErrInvalidSize},
		{"short", 10, 2, 0.1, ErrInvalidSize},
		{"zero viscosity", 10, 10, 0, ErrInvalidViscosity},
		{"negative viscosity", 10, 10, -1, ErrInvalidViscosity},
		{"nan viscosity", 10, 10, math.NaN(), ErrInvalidViscosity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.h, tt.viscosity, WithLogger(quiet))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNew_Border(t *testing.T) {
	s := newFreeSurface(t, 6, 5)
	w, h := s.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			border := x == 0 || y == 0 || x == w-1 || y == h-1
			if s.IsObstacle(x, y) != border {
				t.Errorf("(%d,%d): obstacle=%v, want %v", x, y, s.IsObstacle(x, y), border)
			}
			if !border && s.CellType(x, y) != Empty {
				t.Errorf("(%d,%d): expected empty interior, got %v", x, y, s.CellType(x, y))
			}
		}
	}
}

func TestSinglePhase_RestIsFixedPoint(t *testing.T) {
	s, err := New(8, 8, 0.2, WithLogger(quiet), WithVariant(SinglePhase), WithDensity(1.2))
	if err != nil {
		t.Fatal(err)
	}
	before := make([]float64, len(s.grid.f[0]))
	copy(before, s.grid.f[s.grid.cur])

	s.Simulate(5)

	after := s.grid.f[s.grid.cur]
	for k := range before {
		if math.Abs(after[k]-before[k]) > 1e-14 {
			t.Fatalf("population %d drifted from %v to %v", k, before[k], after[k])
		}
	}
}

func TestSinglePhase_ConservesDensity(t *testing.T) {
	s, err := New(12, 10, 0.05, WithLogger(quiet), WithVariant(SinglePhase))
	if err != nil {
		t.Fatal(err)
	}
	s.ApplyDrag(4, 4, lattice.Vec2{X: 0.05, Y: 0.02})
	s.ApplyDrag(7, 6, lattice.Vec2{X: -0.03, Y: 0.04})
	want := totalDensity(s)

	s.Simulate(200)

	if got := totalDensity(s); math.Abs(got-want) > 1e-9 {
		t.Errorf("total density %v, want %v", got, want)
	}
}

func TestSinglePhase_IgnoresFreeSurfaceMutations(t *testing.T) {
	s, _ := New(6, 6, 0.1, WithLogger(quiet), WithVariant(SinglePhase))
	s.Empty(2, 2)
	s.Fill(3, 3)
	if s.CellType(2, 2) != Fluid {
		t.Errorf("expected fluid, got %v", s.CellType(2, 2))
	}
	if s.Mass(2, 2) != 0 || s.FluidFraction(2, 2) != 0 {
		t.Error("mass queries should be neutral in single phase")
	}
}

func TestSetViscosity(t *testing.T) {
	s := newFreeSurface(t, 5, 5)
	s.SetViscosity(0.5)
	if s.Viscosity() != 0.5 {
		t.Errorf("expected 0.5, got %v", s.Viscosity())
	}
	if want := 1 / (3*0.5 + 0.5); s.omega != want {
		t.Errorf("omega %v, want %v", s.omega, want)
	}
	s.SetViscosity(-1)
	if s.Viscosity() != 0.5 {
		t.Error("invalid viscosity should be ignored")
	}
}

func TestCollide_RelaxesTowardEquilibrium(t *testing.T) {
	s, _ := New(5, 5, 1.0/6, WithLogger(quiet), WithVariant(SinglePhase))
	i := s.grid.index(2, 2)
	p := s.grid.pops(i)
	p[1] += 0.01
	p[5] -= 0.01
	// omega is 1 at viscosity 1/6, so one collision lands on equilibrium.
	s.collide()

	var eq [q]float64
	rho, j := lattice.Moments(p)
	lattice.Equilibrium(&eq, rho, j.Scale(1/rho))
	for d := range eq {
		if math.Abs(p[d]-eq[d]) > 1e-12 {
			t.Errorf("d=%d: %v, want %v", d, p[d], eq[d])
		}
	}
	if got := s.Velocity(2, 2).X; math.Abs(got-0.02) > 1e-12 {
		t.Errorf("cached ux %v, want 0.02", got)
	}
}

func TestCollide_ClampsVelocity(t *testing.T) {
	s := newFreeSurface(t, 5, 5)
	setInterface(s, 2, 2, 1)
	s.grid.pops(s.grid.index(2, 2))[1] += 0.1
	s.collide()
	if got := s.Velocity(2, 2).X; got != DefaultMaxVelocity {
		t.Errorf("expected ux clamped to %v, got %v", DefaultMaxVelocity, got)
	}
}

func TestQueries_OutOfRange(t *testing.T) {
	s := newFreeSurface(t, 5, 5)
	for _, c := range []Coord{{-1, 2}, {2, -1}, {5, 2}, {2, 5}} {
		if s.Density(c.X, c.Y) != 0 {
			t.Errorf("%v: density should be 0", c)
		}
		if !s.Velocity(c.X, c.Y).IsZero() {
			t.Errorf("%v: velocity should be zero", c)
		}
		if !s.IsObstacle(c.X, c.Y) {
			t.Errorf("%v: should be obstacle", c)
		}
		if s.CellType(c.X, c.Y) != Empty {
			t.Errorf("%v: type should be empty", c)
		}
		if s.Curl(c.X, c.Y) != 0 {
			t.Errorf("%v: curl should be 0", c)
		}
	}
	if s.Curl(0, 2) != 0 || s.Curl(4, 2) != 0 {
		t.Error("curl on the border should be 0")
	}
}

func TestCurl(t *testing.T) {
	s := newFreeSurface(t, 5, 5)
	g := s.grid
	g.vel[g.index(3, 2)] = lattice.Vec2{Y: 0.2}
	g.vel[g.index(1, 2)] = lattice.Vec2{Y: -0.1}
	g.vel[g.index(2, 3)] = lattice.Vec2{X: 0.05}
	if got, want := s.Curl(2, 2), 0.3-0.05; math.Abs(got-want) > 1e-15 {
		t.Errorf("curl %v, want %v", got, want)
	}
}

func TestParseVariant(t *testing.T) {
	if v, err := ParseVariant("single_phase"); err != nil || v != SinglePhase {
		t.Errorf("got %v, %v", v, err)
	}
	if _, err := ParseVariant("plasma"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}
