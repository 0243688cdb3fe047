package integrators

import "github.com/san-kum/orbitsim/internal/twobody"

// Verlet is velocity Verlet: second order and symplectic, so energy errors
// oscillate instead of accumulating.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(p twobody.Params, s twobody.State, dt float64) (twobody.State, error) {
	a, err := twobody.Derive(p, s)
	if err != nil {
		return twobody.State{}, err
	}

	halfDt2 := 0.5 * dt * dt
	drift := s
	drift.X1 = s.X1 + s.VX1*dt + a.VX1*halfDt2
	drift.Y1 = s.Y1 + s.VY1*dt + a.VY1*halfDt2
	drift.X2 = s.X2 + s.VX2*dt + a.VX2*halfDt2
	drift.Y2 = s.Y2 + s.VY2*dt + a.VY2*halfDt2

	aNew, err := twobody.Derive(p, drift)
	if err != nil {
		return twobody.State{}, err
	}

	halfDt := 0.5 * dt
	result := drift
	result.VX1 = s.VX1 + (a.VX1+aNew.VX1)*halfDt
	result.VY1 = s.VY1 + (a.VY1+aNew.VY1)*halfDt
	result.VX2 = s.VX2 + (a.VX2+aNew.VX2)*halfDt
	result.VY2 = s.VY2 + (a.VY2+aNew.VY2)*halfDt

	return result, nil
}
