package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fluidsim/internal/analysis"
	"github.com/san-kum/fluidsim/internal/export"
	"github.com/san-kum/fluidsim/internal/storage"
)

var plotMetrics = []string{"total_mass", "max_speed", "interface_cells", "density_stddev"}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tGRID\tVARIANT\tSTEPS\tMASS DRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%d\t%.2e\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Width, run.Config.Height,
			run.Config.Variant,
			run.StepsTaken,
			run.Metrics["mass_drift"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(samples))

	for _, name := range plotMetrics {
		data, err := storage.Column(samples, name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()

		if svgPath != "" {
			path := fmt.Sprintf("%s_%s.svg", strings.TrimSuffix(svgPath, ".svg"), name)
			if err := os.WriteFile(path, []byte(export.SeriesSVG(data, 800, 200, "#00a8cc")), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	data, err := storage.Column(samples, anaMetric)
	if err != nil {
		return err
	}

	spacing := float64(meta.Config.Batch)
	if spacing <= 0 {
		spacing = 1
	}
	period, ok := analysis.DominantPeriod(data, spacing)
	if !ok {
		fmt.Printf("%s: no oscillation in %d samples\n", anaMetric, len(data))
		return nil
	}
	fmt.Printf("%s: dominant period %.1f ticks (%d samples)\n", anaMetric, period, len(data))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(args[0], outPath)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(args[0], outPath)
}
