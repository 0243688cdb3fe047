package sim

import (
	"context"
	"math"

	"github.com/san-kum/orbitsim/internal/twobody"
)

type Simulator struct {
	params     twobody.Params
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

// New returns a Simulator for the given constants. A nil integrator selects the
// RK4 kernel.
func New(p twobody.Params, integrator Integrator) *Simulator {
	if integrator == nil {
		integrator = StepFunc(twobody.Step)
	}
	return &Simulator{
		params:     p,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0, adding dt to the elapsed time after every step until
// it reaches cfg.Duration. On failure the partial result is returned together
// with a *SimulationError.
func (s *Simulator) Run(ctx context.Context, x0 twobody.State, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.params.Validate(); err != nil {
		return nil, err
	}

	steps := int(math.Ceil(cfg.Duration / cfg.Dt))
	result := &Result{
		Params:  s.params,
		Initial: x0,
		Times:   make([]float64, 0, steps),
		States:  make([]twobody.State, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(0, x0)
	}

	x := x0
	t := 0.0
	dt := cfg.Dt

	for i := 0; t < cfg.Duration; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, &SimulationError{Step: i, Time: t, State: x, Wrapped: ctx.Err()}
		default:
		}

		next, err := s.integrator.Step(s.params, x, dt)
		if err != nil {
			s.finish(result)
			return result, &SimulationError{Step: i, Time: t, State: x, Wrapped: err}
		}
		if !next.IsValid() {
			s.finish(result)
			return result, &SimulationError{Step: i, Time: t, State: x, Wrapped: ErrNonFiniteState}
		}

		x = next
		t += dt
		result.StepsTaken++
		result.Times = append(result.Times, t)
		result.States = append(result.States, x)

		for _, m := range s.metrics {
			m.Observe(t, x)
		}
		for _, obs := range s.observers {
			if err := obs.OnStep(t, x); err != nil {
				s.finish(result)
				return result, &SimulationError{Step: i, Time: t, State: x, Wrapped: err}
			}
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	e0 := twobody.Energy(s.params, result.Initial)
	e1 := twobody.Energy(s.params, result.Final())
	if e0 != 0 && !math.IsInf(e0, 0) {
		result.EnergyDrift = math.Abs(e1-e0) / math.Abs(e0)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
