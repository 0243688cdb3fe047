package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/orbitsim/internal/twobody"
)

var (
	// ErrNonFiniteState indicates a step produced a NaN or infinite component.
	ErrNonFiniteState = errors.New("sim: non-finite state (integration diverged)")

	// ErrInvalidStepSize indicates dt <= 0.
	ErrInvalidStepSize = errors.New("sim: step size must be positive")

	// ErrInvalidDuration indicates a non-positive horizon.
	ErrInvalidDuration = errors.New("sim: duration must be positive")
)

// SimulationError wraps a failure raised inside the integration loop with the
// step it happened at and the last good state.
type SimulationError struct {
	Step    int
	Time    float64
	State   twobody.State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
