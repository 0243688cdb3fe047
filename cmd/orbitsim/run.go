package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/report"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
)

func (o *options) runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Output.Save {
		if err := storage.CheckName(cfg.Name); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	var sink *report.LineSink
	if cfg.Output.Print {
		sink, err = report.NewLineSink(cmd.OutOrStdout(), cfg.Output.Every, o.runColumns...)
		if err != nil {
			return err
		}
		s.AddObserver(sink)
	}

	o.log.Info(ctx, "run started",
		"name", cfg.Name, "integrator", cfg.Integrator,
		"g", cfg.G, "m1", cfg.M1, "m2", cfg.M2,
		"dt", cfg.Dt, "duration", cfg.Duration)
	start := time.Now()

	result, runErr := s.Run(ctx, cfg.Initial(), cfg.SimConfig())
	if sink != nil {
		if err := sink.Flush(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if result == nil {
		o.log.Error(ctx, "run rejected", runErr)
		return runErr
	}

	if cfg.Output.Save {
		st := storage.New(o.dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Name, cfg.Integrator, cfg.SimConfig(), result, runErr)
		if err != nil {
			return fmt.Errorf("failed to store run: %w", err)
		}
		ctx = logging.WithRun(ctx, runID)
	}

	if runErr != nil {
		o.log.Error(ctx, "run failed", runErr, "steps", result.StepsTaken)
		return runErr
	}

	o.log.Info(ctx, "run completed",
		"steps", result.StepsTaken,
		"elapsed", time.Since(start),
		"energy_drift", result.EnergyDrift)
	for _, name := range sortedKeys(result.Metrics) {
		o.log.Debug(ctx, "metric", "name", name, "value", result.Metrics[name])
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildSimulator wires the integrator and default metrics named by cfg.
func buildSimulator(cfg *config.Config) (*sim.Simulator, error) {
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	s := sim.New(cfg.Params(), integ)
	for _, m := range metrics.Default(cfg.Params()) {
		s.AddMetric(m)
	}
	return s, nil
}
