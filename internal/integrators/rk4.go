package integrators

import "github.com/san-kum/orbitsim/internal/twobody"

// RK4 is the classical Runge-Kutta kernel. It holds no scratch state, so one
// value may be shared by concurrent runs.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(p twobody.Params, s twobody.State, dt float64) (twobody.State, error) {
	return twobody.Step(p, s, dt)
}
