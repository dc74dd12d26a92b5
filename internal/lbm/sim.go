package lbm

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/fluidsim/internal/lattice"
)

const (
	DefaultMaxVelocity  = 0.001
	DefaultMassFlowRate = 500
	DefaultDensity      = 1.0
)

// DefaultGravity is the body force of the free-surface variant.
var DefaultGravity = lattice.Vec2{X: 0, Y: -1e-6}

// Sim is a lattice-Boltzmann simulation on a fixed grid.
type Sim struct {
	grid *grid

	variant      Variant
	viscosity    float64
	omega        float64
	gravity      lattice.Vec2
	maxVelocity  float64
	massFlowRate float64
	density      float64

	log *slog.Logger

	filled  []int
	emptied []int

	ticks   int
	last    TickStats
	dropped float64
}

// Option configures a Sim at construction.
type Option func(*Sim)

func WithLogger(l *slog.Logger) Option {
	return func(s *Sim) {
		if l != nil {
			s.log = l
		}
	}
}

// WithVariant selects the pipeline. SinglePhase also zeroes gravity and the
// velocity clamp unless they are set by a later option.
func WithVariant(v Variant) Option {
	return func(s *Sim) {
		s.variant = v
		if v == SinglePhase {
			s.gravity = lattice.Vec2{}
			s.maxVelocity = 0
		}
	}
}

func WithGravity(g lattice.Vec2) Option { return func(s *Sim) { s.gravity = g } }

// WithMaxVelocity sets the per-component velocity clamp. Zero disables it.
func WithMaxVelocity(v float64) Option { return func(s *Sim) { s.maxVelocity = v } }

func WithMassFlowRate(r float64) Option { return func(s *Sim) { s.massFlowRate = r } }

// WithDensity sets the density of initial single-phase fluid and of cells
// created by Fill.
func WithDensity(rho float64) Option { return func(s *Sim) { s.density = rho } }

// New builds a width×height grid with an obstacle border. The free-surface
// variant starts with an empty interior; the single-phase variant starts
// with fluid at rest.
func New(width, height int, viscosity float64, opts ...Option) (*Sim, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if !validViscosity(viscosity) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidViscosity, viscosity)
	}
	s := &Sim{
		grid:         newGrid(width, height),
		variant:      FreeSurface,
		viscosity:    viscosity,
		omega:        relaxation(viscosity),
		gravity:      DefaultGravity,
		maxVelocity:  DefaultMaxVelocity,
		massFlowRate: DefaultMassFlowRate,
		density:      DefaultDensity,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.variant == SinglePhase {
		s.fillInterior()
	}
	s.log.Debug("lbm_new",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.String("variant", s.variant.String()),
		slog.Float64("omega", s.omega),
	)
	return s, nil
}

func validViscosity(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// relaxation maps kinematic viscosity to the BGK rate.
func relaxation(viscosity float64) float64 {
	return 1 / (3*viscosity + 0.5)
}

func (s *Sim) fillInterior() {
	g := s.grid
	var eq [q]float64
	lattice.Equilibrium(&eq, s.density, lattice.Vec2{})
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			i := g.index(x, y)
			g.cell[i] = Fluid
			g.setPops(i, &eq)
			g.rho[i] = s.density
		}
	}
}

// Simulate advances the simulation by steps ticks.
func (s *Sim) Simulate(steps int) {
	for n := 0; n < steps; n++ {
		s.step()
	}
}

func (s *Sim) step() {
	s.last = TickStats{Tick: s.ticks}
	s.collide()
	if s.variant == FreeSurface {
		s.estimate()
	}
	s.stream()
	s.bounce()
	if s.variant == FreeSurface {
		s.transfer()
	}
	s.ticks++
}
