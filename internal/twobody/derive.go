package twobody

import (
	"fmt"
	"math"
)

// Derive evaluates the equations of motion at s.
//
// With Δ = r1 - r2 and r = |Δ| the accelerations are
//
//	a1 = -G·m2/r³ · Δ
//	a2 = +G·m1/r³ · Δ
//
// so that m1·a1 = -m2·a2. It returns ErrSingularSeparation when 1/r³ or
// either force coefficient is not finite.
func Derive(p Params, s State) (Rate, error) {
	dx := s.X1 - s.X2
	dy := s.Y1 - s.Y2
	r := math.Sqrt(dx*dx + dy*dy)

	inv := 1 / (r * r * r)
	if !isFinite(inv) {
		return Rate{}, fmt.Errorf("%w: r=%g", ErrSingularSeparation, r)
	}

	f1 := -p.G * p.M2 * inv
	f2 := p.G * p.M1 * inv
	if !isFinite(f1) || !isFinite(f2) {
		return Rate{}, fmt.Errorf("%w: r=%g f1=%g f2=%g", ErrSingularSeparation, r, f1, f2)
	}

	return Rate{
		X1: s.VX1, Y1: s.VY1, VX1: f1 * dx, VY1: f1 * dy,
		X2: s.VX2, Y2: s.VY2, VX2: f2 * dx, VY2: f2 * dy,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
