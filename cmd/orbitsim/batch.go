package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/twobody"
	"github.com/san-kum/orbitsim/internal/viz"
)

const defaultWorkers = 4

var presetInfo = map[string]string{
	"symmetric": "equal masses, eccentric bound orbit (e = 0.5)",
	"circular":  "equal masses on a circular orbit",
	"unequal":   "light companion (q = 0.1) on a circular orbit",
	"eccentric": "equal masses, slow start, deep periapsis",
	"cgs-drift": "cgs G with a light companion drifting past",
}

func (o *options) listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 1 {
		cfg := config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tG\tM1\tM2\tDT\tDURATION\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%s\n", name, cfg.G, cfg.M1, cfg.M2, cfg.Dt, cfg.Duration, presetInfo[name])
	}
	return w.Flush()
}

func presetChoices() []viz.Choice {
	names := config.ListPresets()
	choices := make([]viz.Choice, 0, len(names))
	for _, name := range names {
		cfg := config.GetPreset(name)
		choices = append(choices, viz.Choice{
			Name:        name,
			Description: presetInfo[name],
			Model:       viz.NewModel(name, cfg.Params(), nil, cfg.Initial(), cfg.Dt),
		})
	}
	return choices
}

func (o *options) runSweep(cmd *cobra.Command, args []string) error {
	plan, err := config.LoadPlan(args[0])
	if err != nil {
		return err
	}
	jobs := plan.Jobs()
	for i, run := range plan.Runs {
		if o.save {
			if err := storage.CheckName(run.Name); err != nil {
				return err
			}
		}
		if jobs[i].Integrator, err = integrators.ByName(run.Integrator); err != nil {
			return fmt.Errorf("run %q: %w", run.Name, err)
		}
	}

	workers := defaultWorkers
	if plan.Workers > 0 {
		workers = plan.Workers
	}
	if o.workers > 0 {
		workers = o.workers
	}

	ctx := cmd.Context()
	o.log.Info(ctx, "sweep started", "plan", args[0], "runs", len(plan.Runs), "workers", workers)
	start := time.Now()

	ens := sim.NewEnsemble(nil, workers).WithMetrics(metrics.Default)
	outcomes, runErr := ens.Run(ctx, jobs)

	var st *storage.Store
	if o.save {
		st = storage.New(o.dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	rows := make([]viz.Row, len(plan.Runs))
	for i, run := range plan.Runs {
		out := outcomes[i]
		rows[i] = viz.Row{Name: run.Name, OK: out.Err == nil}
		switch {
		case out.Result == nil:
			rows[i].Detail = "not run"
			continue
		case errors.Is(out.Err, context.Canceled):
			rows[i].Detail = "cancelled"
		case out.Err != nil:
			rows[i].Detail = out.Err.Error()
			o.log.Warn(ctx, "job failed", "name", run.Name, "error", out.Err)
		}

		res := out.Result
		rows[i].Metrics = map[string]float64{"steps": float64(res.StepsTaken)}
		for k, v := range res.Metrics {
			rows[i].Metrics[k] = v
		}

		if st != nil {
			runID, err := st.Save(run.Name, run.Integrator, run.SimConfig(), res, out.Err)
			if err != nil {
				return fmt.Errorf("failed to store run %s: %w", run.Name, err)
			}
			o.log.Debug(logging.WithRun(ctx, runID), "stored", "name", run.Name)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), viz.SummaryTable(fmt.Sprintf("sweep %s", args[0]), rows))

	if runErr != nil {
		o.log.Error(ctx, "sweep failed", runErr)
		return runErr
	}
	o.log.Info(ctx, "sweep completed", "elapsed", time.Since(start))
	return nil
}

func (o *options) compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing on %s (dt=%g, T=%g)\n\n", cfg.Name, cfg.Dt, cfg.Duration)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tTIME\tENERGY DRIFT\tMOMENTUM DRIFT\tFINAL ERROR")

	for _, name := range names {
		run := cfg.Clone()
		run.Integrator = name
		s, err := buildSimulator(run)
		if err != nil {
			return err
		}

		start := time.Now()
		res, err := s.Run(ctx, run.Initial(), run.SimConfig())
		elapsed := time.Since(start)
		if err != nil && res == nil {
			return err
		}

		finalErr := "-"
		switch {
		case err != nil:
			finalErr = "failed: " + err.Error()
		case res.StepsTaken > 0:
			// unbound or radial orbits have no closed-form reference
			if ref, kerr := analysis.Kepler(run.Params(), run.Initial(), res.Times[len(res.Times)-1]); kerr == nil {
				finalErr = fmt.Sprintf("%.3e", res.Final().Sub(ref).Norm())
			}
		}

		fmt.Fprintf(w, "%s\t%d\t%v\t%.3e\t%.3e\t%s\n",
			name, res.StepsTaken, elapsed.Round(time.Microsecond),
			res.EnergyDrift, res.Metrics["momentum_drift"], finalErr)
	}
	return w.Flush()
}

func (o *options) convergence(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return err
	}

	c, err := analysis.Study(cmd.Context(), integ, cfg.Params(), cfg.Initial(), cfg.Dt, cfg.Duration, o.levels)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ref := "fine-step RK4"
	if c.Exact {
		ref = "Kepler solution"
	}
	fmt.Fprintf(out, "%s on %s, horizon %g, reference: %s\n\n", cfg.Integrator, cfg.Name, c.Horizon, ref)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tERROR\tRATIO\tORDER")
	ratios := c.Ratios()
	for i, dt := range c.Dts {
		ratio, order := "-", "-"
		if i > 0 {
			ratio = fmt.Sprintf("%.2f", ratios[i-1])
			order = fmt.Sprintf("%.2f", c.Orders[i-1])
		}
		fmt.Fprintf(w, "%g\t%.3e\t%s\t%s\n", dt, c.Errors[i], ratio, order)
	}
	return w.Flush()
}

func (o *options) bench(cmd *cobra.Command, args []string) error {
	p := twobody.DefaultParams()
	x0 := config.DefaultConfig().Initial()

	durations := []float64{1.0, 10.0}
	dts := []float64{0.001, 0.01}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tDURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, name := range integrators.Names() {
		integ, _ := integrators.ByName(name)
		for _, dur := range durations {
			for _, dt := range dts {
				start := time.Now()
				result, err := sim.New(p, integ).Run(context.Background(), x0, sim.Config{Dt: dt, Duration: dur})
				if err != nil && !errors.Is(err, sim.ErrNonFiniteState) {
					return err
				}
				elapsed := time.Since(start)

				stepsPerSec := float64(result.StepsTaken) / math.Max(elapsed.Seconds(), 1e-9)
				fmt.Fprintf(w, "%s\t%.1f\t%.4f\t%d\t%v\t%.0f\n",
					name, dur, dt, result.StepsTaken, elapsed.Round(time.Microsecond), stepsPerSec)
			}
		}
	}

	return w.Flush()
}

func (o *options) runLive(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(cfg.Name, cfg.Params(), integ, cfg.Initial(), cfg.Dt))
}
