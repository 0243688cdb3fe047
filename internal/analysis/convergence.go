package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/twobody"
)

// Convergence is the outcome of Study: one global error per step size and
// the observed order between consecutive step sizes.
type Convergence struct {
	Horizon   float64
	Dts       []float64
	Errors    []float64
	Orders    []float64
	Reference twobody.State
	// Exact is true when the reference came from Kepler rather than a
	// fine-step integration.
	Exact bool
}

// Integrate applies n fixed steps of size dt. Unlike sim.Simulator it does
// not accumulate time, so the end point is exactly n·dt.
func Integrate(ctx context.Context, integ sim.Integrator, p twobody.Params, x0 twobody.State, dt float64, n int) (twobody.State, error) {
	x := x0
	for i := 0; i < n; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return x, err
			}
		}
		next, err := integ.Step(p, x, dt)
		if err != nil {
			return x, &sim.SimulationError{Step: i, Time: float64(i) * dt, State: x, Wrapped: err}
		}
		x = next
	}
	return x, nil
}

// GlobalError is the distance, over all 8 components, between the state
// reached with step dt at the horizon and ref.
func GlobalError(ctx context.Context, integ sim.Integrator, p twobody.Params, x0 twobody.State, dt, horizon float64, ref twobody.State) (float64, error) {
	n, err := stepCount(dt, horizon)
	if err != nil {
		return 0, err
	}
	x, err := Integrate(ctx, integ, p, x0, dt, n)
	if err != nil {
		return 0, err
	}
	return x.Sub(ref).Norm(), nil
}

// Reference returns the state at the horizon: the Kepler solution for bound
// pairs, otherwise an RK4 integration with step fineDt.
func Reference(ctx context.Context, p twobody.Params, x0 twobody.State, horizon, fineDt float64) (twobody.State, bool, error) {
	ref, err := Kepler(p, x0, horizon)
	if err == nil {
		return ref, true, nil
	}

	n, err := stepCount(fineDt, horizon)
	if err != nil {
		return twobody.State{}, false, err
	}
	ref, err = Integrate(ctx, sim.StepFunc(twobody.Step), p, x0, fineDt, n)
	return ref, false, err
}

// Study measures the global error at dt, dt/2, ... (levels step sizes) over
// horizon, which must be a whole multiple of dt.
func Study(ctx context.Context, integ sim.Integrator, p twobody.Params, x0 twobody.State, dt, horizon float64, levels int) (*Convergence, error) {
	if levels < 2 {
		return nil, fmt.Errorf("analysis: need at least 2 levels, got %d", levels)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	finest := dt / math.Exp2(float64(levels-1))
	ref, exact, err := Reference(ctx, p, x0, horizon, finest/64)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	c := &Convergence{
		Horizon:   horizon,
		Dts:       make([]float64, levels),
		Errors:    make([]float64, levels),
		Orders:    make([]float64, levels-1),
		Reference: ref,
		Exact:     exact,
	}

	h := dt
	for i := 0; i < levels; i++ {
		e, err := GlobalError(ctx, integ, p, x0, h, horizon, ref)
		if err != nil {
			return nil, fmt.Errorf("dt=%g: %w", h, err)
		}
		c.Dts[i] = h
		c.Errors[i] = e
		h /= 2
	}

	for i := range c.Orders {
		c.Orders[i] = math.Log2(c.Errors[i] / c.Errors[i+1])
	}
	return c, nil
}

// Ratios returns error(dt)/error(dt/2) for consecutive levels.
func (c *Convergence) Ratios() []float64 {
	out := make([]float64, len(c.Orders))
	for i := range out {
		out[i] = c.Errors[i] / c.Errors[i+1]
	}
	return out
}

func stepCount(dt, horizon float64) (int, error) {
	if err := (sim.Config{Dt: dt, Duration: horizon}).Validate(); err != nil {
		return 0, err
	}
	n := math.Round(horizon / dt)
	if math.Abs(n*dt-horizon) > 1e-9*horizon {
		return 0, fmt.Errorf("analysis: horizon %g is not a multiple of dt %g", horizon, dt)
	}
	return int(n), nil
}
