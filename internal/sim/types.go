package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/twobody"
)

// Integrator advances a state by one fixed step. Implementations must be pure
// so a single value can serve concurrent runs.
type Integrator interface {
	Step(p twobody.Params, s twobody.State, dt float64) (twobody.State, error)
}

// StepFunc adapts a plain function to Integrator.
type StepFunc func(p twobody.Params, s twobody.State, dt float64) (twobody.State, error)

func (f StepFunc) Step(p twobody.Params, s twobody.State, dt float64) (twobody.State, error) {
	return f(p, s, dt)
}

type Metric interface {
	Name() string
	Observe(t float64, s twobody.State)
	Value() float64
	Reset()
}

// Observer receives every produced state in order. An error aborts the run.
type Observer interface {
	OnStep(t float64, s twobody.State) error
}

type Config struct {
	Dt       float64 `json:"dt"`
	Duration float64 `json:"duration"`
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.01,
		Duration: 20.0,
	}
}

func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w, got %g", ErrInvalidStepSize, c.Dt)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w, got %g", ErrInvalidDuration, c.Duration)
	}
	return nil
}

// Result holds the produced trajectory. Times and States have one entry per
// completed step; the initial condition is kept apart.
type Result struct {
	Params      twobody.Params
	Initial     twobody.State
	Times       []float64
	States      []twobody.State
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Final returns the last produced state, or the initial one if no step
// completed.
func (r *Result) Final() twobody.State {
	if len(r.States) == 0 {
		return r.Initial
	}
	return r.States[len(r.States)-1]
}
