package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/report"
	"github.com/san-kum/orbitsim/internal/viz"
)

// options holds every flag value. Scenario flags are shared by the commands
// that run a trajectory.
type options struct {
	dataDir string
	log     *logging.Logger

	preset     string
	configFile string
	name       string
	integrator string
	g, m1, m2  float64
	dt         float64
	duration   float64
	x1, y1     float64
	vx1, vy1   float64
	x2, y2     float64
	vx2, vy2   float64

	every       int
	quiet       bool
	noSave      bool
	runColumns  []string
	plotColumns []string

	out     string
	vector  bool
	workers int
	levels  int
	save    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "orbitsim",
		Short:         "two-body gravitational simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.log = logging.New(cmd.ErrOrStderr(), logging.LevelFromEnv())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunPicker(viz.NewPicker(presetChoices()))
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data", ".orbitsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation, print the trajectory and store it",
		Args:  cobra.NoArgs,
		RunE:  opts.runSimulation,
	}
	opts.addScenarioFlags(runCmd)
	runCmd.Flags().IntVar(&opts.every, "every", 1, "print one line every n steps")
	runCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the trajectory")
	runCmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringSliceVar(&opts.runColumns, "columns", report.DefaultColumns, "printed columns")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  opts.listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.plotRun,
	}
	plotCmd.Flags().StringSliceVar(&opts.plotColumns, "columns", []string{"x1", "y1", "x2", "y2"}, "columns to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&opts.out, "out", "o", "-", "output file (- for stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&opts.out, "out", "o", "-", "output file (- for stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw both trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&opts.out, "out", "o", "-", "output file (- for stdout)")
	exportSVGCmd.Flags().BoolVar(&opts.vector, "vector", false, "draw polylines instead of braille dots")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbital elements, apsides and period of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  opts.listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [plan.yaml]",
		Short: "run a plan of independent simulations concurrently",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.runSweep,
	}
	sweepCmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "concurrent runs (default from plan, else 4)")
	sweepCmd.Flags().BoolVar(&opts.save, "save", false, "store every run")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the same scenario",
		RunE:  opts.compareIntegrators,
	}
	opts.addScenarioFlags(compareCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "measure the global error at dt, dt/2, dt/4",
		Args:  cobra.NoArgs,
		RunE:  opts.convergence,
	}
	opts.addScenarioFlags(convergeCmd)
	convergeCmd.Flags().IntVar(&opts.levels, "levels", 3, "number of step sizes")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark integrators",
		Args:  cobra.NoArgs,
		RunE:  opts.bench,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  opts.runLive,
	}
	opts.addScenarioFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		analyzeCmd, presetsCmd, sweepCmd, compareCmd, convergeCmd, benchCmd, liveCmd)
	return rootCmd
}

func (o *options) addScenarioFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&o.preset, "preset", "", fmt.Sprintf("start from a preset %v", config.ListPresets()))
	f.StringVar(&o.configFile, "config", "", "config file path (yaml)")
	f.StringVar(&o.name, "name", d.Name, "run name")
	f.StringVar(&o.integrator, "integrator", d.Integrator, fmt.Sprintf("integrator %v", integrators.Names()))
	f.Float64Var(&o.g, "g", d.G, "gravitational constant")
	f.Float64Var(&o.m1, "m1", d.M1, "mass of body 1")
	f.Float64Var(&o.m2, "m2", d.M2, "mass of body 2")
	f.Float64Var(&o.dt, "dt", d.Dt, "timestep")
	f.Float64Var(&o.duration, "time", d.Duration, "duration")
	f.Float64Var(&o.x1, "x1", d.InitState.X1, "initial x of body 1")
	f.Float64Var(&o.y1, "y1", d.InitState.Y1, "initial y of body 1")
	f.Float64Var(&o.vx1, "vx1", d.InitState.VX1, "initial vx of body 1")
	f.Float64Var(&o.vy1, "vy1", d.InitState.VY1, "initial vy of body 1")
	f.Float64Var(&o.x2, "x2", d.InitState.X2, "initial x of body 2")
	f.Float64Var(&o.y2, "y2", d.InitState.Y2, "initial y of body 2")
	f.Float64Var(&o.vx2, "vx2", d.InitState.VX2, "initial vx of body 2")
	f.Float64Var(&o.vy2, "vy2", d.InitState.VY2, "initial vy of body 2")
}

// resolveConfig layers preset, then config file, then explicitly set flags
// over the defaults.
func (o *options) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if o.preset != "" {
		cfg = config.GetPreset(o.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", o.preset, config.ListPresets())
		}
	}

	if o.configFile != "" {
		data, err := os.ReadFile(o.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if cfg, err = config.Overlay(cfg, data); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", o.configFile, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = o.name
	}
	if flags.Changed("integrator") {
		cfg.Integrator = o.integrator
	}
	for _, key := range []string{"g", "m1", "m2", "dt", "duration", "x1", "y1", "vx1", "vy1", "x2", "y2", "vx2", "vy2"} {
		flag := key
		if key == "duration" {
			flag = "time"
		}
		if !flags.Changed(flag) {
			continue
		}
		v, err := flags.GetFloat64(flag)
		if err != nil {
			return nil, err
		}
		if err := cfg.Set(key, v); err != nil {
			return nil, err
		}
	}

	if flags.Lookup("every") != nil && flags.Changed("every") {
		cfg.Output.Every = o.every
	}
	if o.quiet {
		cfg.Output.Print = false
	}
	if o.noSave {
		cfg.Output.Save = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := integrators.ByName(cfg.Integrator); err != nil {
		return nil, err
	}
	return cfg, nil
}
