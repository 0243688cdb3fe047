package integrators

import "github.com/san-kum/orbitsim/internal/twobody"

// Euler is the explicit first-order method, kept for comparison runs.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(p twobody.Params, s twobody.State, dt float64) (twobody.State, error) {
	dx, err := twobody.Derive(p, s)
	if err != nil {
		return twobody.State{}, err
	}
	return s.Add(dx.Scale(dt).Delta()), nil
}
