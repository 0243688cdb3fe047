package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/report"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
)

func (o *options) listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(o.dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tINTEG\tSTEPS\tSTATUS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4f\t%s\t%d\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Steps,
			run.Status,
		)
	}

	return w.Flush()
}

// loadRun reads a stored run back as metadata plus a sim.Result.
func (o *options) loadRun(runID string) (*storage.RunMetadata, *storage.Dataset, *sim.Result, error) {
	st := storage.New(o.dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	ds, err := st.LoadDataset(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	data := report.NewExportData(meta, ds)
	result := &sim.Result{
		Params:      meta.Params,
		Initial:     meta.Initial,
		Times:       data.Times,
		States:      data.States,
		Metrics:     meta.Metrics,
		EnergyDrift: meta.EnergyDrift,
		StepsTaken:  len(data.States),
	}
	return meta, ds, result, nil
}

func (o *options) plotRun(cmd *cobra.Command, args []string) error {
	meta, ds, _, err := o.loadRun(args[0])
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "name: %s\n", meta.Name)
	fmt.Fprintf(out, "samples: %d\n\n", ds.Len())

	for _, name := range o.plotColumns {
		data, ok := ds.Column(name)
		if !ok {
			return fmt.Errorf("unknown column %q (available: %v)", name, ds.Names())
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	return nil
}

func (o *options) exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(o.dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// output opens the --out target; "-" is the command's stdout.
func (o *options) output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if o.out == "" || o.out == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(o.out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func (o *options) exportJSON(cmd *cobra.Command, args []string) error {
	meta, ds, _, err := o.loadRun(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := o.output(cmd)
	if err != nil {
		return err
	}
	if err := report.ExportJSON(w, meta, ds); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func (o *options) exportCSV(cmd *cobra.Command, args []string) error {
	_, ds, _, err := o.loadRun(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := o.output(cmd)
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(csv.NewWriter(w), ds); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func (o *options) exportSVG(cmd *cobra.Command, args []string) error {
	_, _, result, err := o.loadRun(args[0])
	if err != nil {
		return err
	}

	var svg string
	if o.vector {
		svg = export.TrajectoryToSVG(export.BodyPaths(result), 800, 800)
	} else {
		svg = export.OrbitSVG(result, 100, 50, 4)
	}
	if svg == "" {
		return fmt.Errorf("run %s has nothing to draw", args[0])
	}
	return export.WriteFile(o.out, cmd.OutOrStdout(), svg)
}

func (o *options) analyzeRun(cmd *cobra.Command, args []string) error {
	meta, ds, result, err := o.loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "name: %s  integrator: %s  status: %s\n\n", meta.Name, meta.Integrator, meta.Status)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tINITIAL\tFINAL")
	el0, err0 := analysis.OrbitalElements(meta.Params, result.Initial)
	el1, err1 := analysis.OrbitalElements(meta.Params, result.Final())
	if err0 != nil || err1 != nil {
		fmt.Fprintln(w, "elements\tunavailable\tunavailable")
	} else {
		fmt.Fprintf(w, "semi-major axis\t%.8g\t%.8g\n", el0.SemiMajorAxis, el1.SemiMajorAxis)
		fmt.Fprintf(w, "eccentricity\t%.8g\t%.8g\n", el0.Eccentricity, el1.Eccentricity)
		fmt.Fprintf(w, "period\t%.8g\t%.8g\n", el0.Period, el1.Period)
		fmt.Fprintf(w, "energy\t%.8g\t%.8g\n", el0.Energy, el1.Energy)
		fmt.Fprintf(w, "angular momentum\t%.8g\t%.8g\n", el0.AngularMomentum, el1.AngularMomentum)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	peri := analysis.Periapses(analysis.FindApsides(result))
	fmt.Fprintf(out, "\nperiapsis passages: %d\n", len(peri))
	if interval := analysis.MeanInterval(peri); interval > 0 {
		fmt.Fprintf(out, "mean interval: %.6f\n", interval)
	}

	if x2, ok := ds.Column("x2"); ok {
		if period, err := analysis.DominantPeriod(x2, meta.Dt); err == nil {
			fmt.Fprintf(out, "dominant period (x2 spectrum): %.6f\n", period)
		}
	}

	fmt.Fprintf(out, "energy drift: %.3e\n", meta.EnergyDrift)
	return nil
}
