package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/fluidsim/internal/config"
	"github.com/san-kum/fluidsim/internal/lbm"
	"github.com/san-kum/fluidsim/internal/metrics"
)

var (
	ErrNotSetup = errors.New("experiment: not set up")
	// ErrUnstable reports a non-finite or negative density found by state
	// validation.
	ErrUnstable = errors.New("experiment: simulation became unstable")
)

// Sample is one row of a run's metric series.
type Sample struct {
	Step                int     `csv:"step" json:"step"`
	TotalMass           float64 `csv:"total_mass" json:"total_mass"`
	TotalDensity        float64 `csv:"total_density" json:"total_density"`
	MassDrift           float64 `csv:"mass_drift" json:"mass_drift"`
	MaxSpeed            float64 `csv:"max_speed" json:"max_speed"`
	DensityStdDev       float64 `csv:"density_stddev" json:"density_stddev"`
	InterfaceCells      float64 `csv:"interface_cells" json:"interface_cells"`
	AdjacencyViolations float64 `csv:"adjacency_violations" json:"adjacency_violations"`
	DroppedMass         float64 `csv:"dropped_mass" json:"dropped_mass"`
	Filled              int     `csv:"filled" json:"filled"`
	Emptied             int     `csv:"emptied" json:"emptied"`
	Orphans             int     `csv:"orphans" json:"orphans"`
}

// Value returns the named metric column of a sample.
func (s Sample) Value(name string) (float64, bool) {
	switch name {
	case "total_mass":
		return s.TotalMass, true
	case "total_density":
		return s.TotalDensity, true
	case "mass_drift":
		return s.MassDrift, true
	case "max_speed":
		return s.MaxSpeed, true
	case "density_stddev":
		return s.DensityStdDev, true
	case "interface_cells":
		return s.InterfaceCells, true
	case "adjacency_violations":
		return s.AdjacencyViolations, true
	case "dropped_mass":
		return s.DroppedMass, true
	}
	return 0, false
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
	Elapsed    time.Duration
	Errors     []error
}

// Observer is notified after every batch.
type Observer interface {
	OnBatch(s *lbm.Sim, sample Sample)
}

type Experiment struct {
	cfg       *config.Config
	sim       *lbm.Sim
	metrics   []metrics.Metric
	observers []Observer
	log       *slog.Logger
}

func New(cfg *config.Config, log *slog.Logger) *Experiment {
	if log == nil {
		log = slog.Default()
	}
	return &Experiment{cfg: cfg, log: log}
}

// Setup builds the Sim and applies the configured scene.
func (e *Experiment) Setup(reg *Registry, ms []metrics.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	scene, err := reg.Get(e.cfg.Scene)
	if err != nil {
		return err
	}
	opts, err := e.cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, lbm.WithLogger(e.log))
	s, err := lbm.New(e.cfg.Width, e.cfg.Height, e.cfg.Viscosity, opts...)
	if err != nil {
		return fmt.Errorf("setup %s: %w", e.cfg.Scene, err)
	}
	scene(s)
	e.sim = s
	e.metrics = ms
	return nil
}

func (e *Experiment) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Sim returns the underlying simulation for rendering and mutation.
func (e *Experiment) Sim() *lbm.Sim { return e.sim }

// Run advances the configured number of ticks in batches. Cancellation is
// honoured between batches only.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.sim == nil {
		return nil, ErrNotSetup
	}
	start := time.Now()
	res := &Result{
		Samples: make([]Sample, 0, e.cfg.Steps/e.cfg.Batch+2),
		Metrics: make(map[string]float64),
	}
	for _, m := range e.metrics {
		m.Reset()
	}
	res.Samples = append(res.Samples, e.sample(0))

	for res.StepsTaken < e.cfg.Steps {
		select {
		case <-ctx.Done():
			e.finish(res, start)
			return res, ctx.Err()
		default:
		}

		n := min(e.cfg.Batch, e.cfg.Steps-res.StepsTaken)
		e.sim.Simulate(n)
		res.StepsTaken += n

		sample := e.sample(res.StepsTaken)
		res.Samples = append(res.Samples, sample)
		for _, o := range e.observers {
			o.OnBatch(e.sim, sample)
		}

		if e.cfg.ValidateState {
			if err := validate(e.sim, res.StepsTaken); err != nil {
				res.Errors = append(res.Errors, err)
				e.log.Error("run_unstable", slog.Int("step", res.StepsTaken), slog.Any("err", err))
				break
			}
		}
	}

	e.finish(res, start)
	e.log.Info("run_complete",
		slog.String("scene", e.cfg.Scene),
		slog.Int("steps", res.StepsTaken),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (e *Experiment) finish(res *Result, start time.Time) {
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	res.Elapsed = time.Since(start)
}

func (e *Experiment) sample(step int) Sample {
	vals := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		m.Observe(e.sim, step)
		vals[m.Name()] = m.Value()
	}
	st := e.sim.LastTick()
	return Sample{
		Step:                step,
		TotalMass:           vals["total_mass"],
		TotalDensity:        vals["total_density"],
		MassDrift:           vals["mass_drift"],
		MaxSpeed:            vals["max_speed"],
		DensityStdDev:       vals["density_stddev"],
		InterfaceCells:      vals["interface_cells"],
		AdjacencyViolations: vals["adjacency_violations"],
		DroppedMass:         vals["dropped_mass"],
		Filled:              st.Filled,
		Emptied:             st.Emptied,
		Orphans:             st.Orphans,
	}
}

func validate(s *lbm.Sim, step int) error {
	w, h := s.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rho := s.Density(x, y)
			if math.IsNaN(rho) || math.IsInf(rho, 0) || rho < 0 || !s.Velocity(x, y).IsValid() {
				return fmt.Errorf("%w: cell (%d,%d) at step %d", ErrUnstable, x, y, step)
			}
		}
	}
	return nil
}
