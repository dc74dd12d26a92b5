package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/fluidsim/internal/config"
	"github.com/san-kum/fluidsim/internal/experiment"
	"github.com/san-kum/fluidsim/internal/metrics"
)

var (
	dataDir   string
	logLevel  string
	logFormat string

	configFile string
	preset     string
	width      int
	height     int
	viscosity  float64
	variant    string
	gravityY   float64
	steps      int
	batch      int
	validate   bool

	frameSteps int
	sweepParam string
	sweepVals  string
	sweepMet   string
	workers    int
	outPath    string
	svgPath    string
	cellScale  float64
	anaMetric  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "fluidsim",
		Short:         "lattice-Boltzmann free-surface fluid lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel, logFormat)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fluidsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene and store its metric series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameSteps, "steps-per-frame", 20, "ticks simulated per frame")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "measure ticks per second across grid sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	addSimFlags(benchCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "grid search one parameter against a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepScene,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "viscosity", "parameter to vary")
	sweepCmd.Flags().StringVar(&sweepVals, "values", "0.01,0.05,0.1", "comma separated values")
	sweepCmd.Flags().StringVar(&sweepMet, "metric", "mass_drift", "metric to minimise")
	sweepCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "trials run in parallel")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [scene]",
		Short: "simulate a scene and write the final lattice as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotScene,
	}
	addSimFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().Float64Var(&cellScale, "scale", 8, "pixels per cell")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metric series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write each series to <path>_<metric>.svg")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "find the dominant oscillation period of a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&anaMetric, "metric", "max_speed", "metric to analyze")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the metric series of a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list scenes or the presets of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, sweepCmd, snapshotCmd,
		listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&width, "width", d.Width, "grid width")
	cmd.Flags().IntVar(&height, "height", d.Height, "grid height")
	cmd.Flags().Float64Var(&viscosity, "viscosity", d.Viscosity, "kinematic viscosity")
	cmd.Flags().StringVar(&variant, "variant", d.Variant, "free_surface or single_phase")
	cmd.Flags().Float64Var(&gravityY, "gravity", d.Gravity.Y, "vertical body force")
	cmd.Flags().IntVar(&steps, "steps", d.Steps, "ticks to simulate")
	cmd.Flags().IntVar(&batch, "batch", d.Batch, "ticks between samples")
	cmd.Flags().BoolVar(&validate, "validate", false, "stop on non-finite density")
}

func setupLogging(level, format string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	switch strings.ToLower(format) {
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		h = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

// resolveConfig layers defaults, preset, config file and changed flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	scene := config.DefaultScene
	if len(args) > 0 {
		scene = args[0]
	}

	cfg := config.DefaultConfig()
	cfg.Scene = scene
	if singlePhaseScene(scene) {
		cfg.Variant = "single_phase"
		cfg.Gravity = config.GravityConfig{}
	}

	if preset != "" {
		p := config.GetPreset(scene, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scene))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Scene = scene
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("viscosity") {
		cfg.Viscosity = viscosity
	}
	if flags.Changed("variant") {
		cfg.Variant = variant
	}
	if flags.Changed("gravity") {
		cfg.Gravity.Y = gravityY
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("batch") {
		cfg.Batch = batch
	}
	if flags.Changed("validate") {
		cfg.ValidateState = validate
	}
	return cfg, cfg.Validate()
}

func singlePhaseScene(scene string) bool {
	return scene == "box" || scene == "stirred"
}

func newExperiment(cfg *config.Config) (*experiment.Experiment, error) {
	exp := experiment.New(cfg, slog.Default())
	if err := exp.Setup(experiment.NewRegistry(), metrics.Defaults()); err != nil {
		return nil, err
	}
	return exp, nil
}
