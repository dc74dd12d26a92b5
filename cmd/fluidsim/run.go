package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/fluidsim/internal/config"
	"github.com/san-kum/fluidsim/internal/experiment"
	"github.com/san-kum/fluidsim/internal/export"
	"github.com/san-kum/fluidsim/internal/lbm"
	"github.com/san-kum/fluidsim/internal/metrics"
	"github.com/san-kum/fluidsim/internal/optim"
	"github.com/san-kum/fluidsim/internal/storage"
	"github.com/san-kum/fluidsim/internal/viz"
)

// progress prints a bar as batches complete.
type progress struct {
	total int
	last  int
}

func (p *progress) OnBatch(_ *lbm.Sim, s experiment.Sample) {
	pct := int(100 * s.Step / p.total)
	if pct == p.last {
		return
	}
	p.last = pct
	fmt.Fprintf(os.Stderr, "\r%s %3d%%", viz.ProgressBar(float64(s.Step)/float64(p.total), 30), pct)
	if s.Step >= p.total {
		fmt.Fprintln(os.Stderr)
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}
	exp.AddObserver(&progress{total: cfg.Steps, last: -1})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%dx%d, %s)...\n", cfg.Scene, cfg.Width, cfg.Height, cfg.Variant)
	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "\ninterrupted after %d steps\n", result.StepsTaken)
	}

	runID, saveErr := st.Save(cfg, result)
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Printf("  %-22s %.6g\n", name, result.Metrics[name])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	build := func() (*lbm.Sim, error) {
		exp, err := newExperiment(cfg)
		if err != nil {
			return nil, err
		}
		return exp.Sim(), nil
	}
	m, err := viz.NewModel(build, cfg.Scene, frameSteps)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func benchScene(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sizes := [][2]int{{32, 32}, {64, 64}, {128, 96}}
	const benchSteps = 200

	fmt.Printf("benchmarking %s (%s)\n\n", base.Scene, base.Variant)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tCELLS\tTICKS\tTIME\tTICKS/SEC\tMCELLS/SEC")

	for _, sz := range sizes {
		cfg := *base
		cfg.Width, cfg.Height = sz[0], sz[1]
		exp, err := newExperiment(&cfg)
		if err != nil {
			return err
		}
		s := exp.Sim()
		start := time.Now()
		s.Simulate(benchSteps)
		elapsed := time.Since(start)

		cells := sz[0] * sz[1]
		tps := float64(benchSteps) / elapsed.Seconds()
		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\t%.2f\n",
			sz[0], sz[1], cells, benchSteps, elapsed.Round(time.Microsecond), tps, tps*float64(cells)/1e6)
	}
	return w.Flush()
}

func sweepScene(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	values, err := parseValues(sweepVals)
	if err != nil {
		return err
	}
	if _, ok := metrics.ByName(sweepMet); !ok {
		return fmt.Errorf("unknown metric %q (available: %v)", sweepMet, metrics.Names())
	}

	gs, err := optim.NewGridSearch([]string{sweepParam}, [][]float64{values})
	if err != nil {
		return err
	}
	gs.SetWorkers(workers)

	objective := func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := *base
		for k, v := range params {
			if err := cfg.SetParam(k, v); err != nil {
				return 0, err
			}
		}
		exp, err := newExperiment(&cfg)
		if err != nil {
			return 0, err
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return 0, err
		}
		return res.Metrics[sweepMet], nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, val, trials, err := gs.Search(ctx, objective)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(sweepMet))
	for _, tr := range trials {
		if tr.Err != nil {
			fmt.Fprintf(w, "%g\terror: %v\n", tr.Params[sweepParam], tr.Err)
			continue
		}
		fmt.Fprintf(w, "%g\t%.6g\n", tr.Params[sweepParam], tr.Value)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}
	fmt.Printf("\nbest %s=%g (%s %.6g)\n", sweepParam, best[sweepParam], sweepMet, val)
	return nil
}

func snapshotScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err := exp.Run(ctx); err != nil {
		return err
	}

	svg := export.LatticeSVG(exp.Sim(), cellScale, export.DefaultPalette)
	if outPath == "" {
		_, err = fmt.Fprintln(os.Stdout, svg)
		return err
	}
	return os.WriteFile(outPath, []byte(svg), 0o644)
}

func parseValues(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", part, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no values given")
	}
	return out, nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("scenes:")
		for _, name := range experiment.NewRegistry().List() {
			fmt.Printf("  %-10s %v\n", name, config.ListPresets(name))
		}
		return nil
	}
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Printf("no presets for scene: %s\n", args[0])
		return nil
	}
	fmt.Printf("presets for %s:\n", args[0])
	for _, p := range presets {
		fmt.Printf("  %s\n", p)
	}
	return nil
}
