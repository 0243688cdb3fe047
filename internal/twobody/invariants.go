package twobody

import "math"

// Momentum returns the total linear momentum m1·v1 + m2·v2.
func Momentum(p Params, s State) (px, py float64) {
	px = p.M1*s.VX1 + p.M2*s.VX2
	py = p.M1*s.VY1 + p.M2*s.VY2
	return
}

// Energy returns kinetic plus gravitational potential energy. It is -Inf for
// coincident bodies.
func Energy(p Params, s State) float64 {
	ke := 0.5*p.M1*(s.VX1*s.VX1+s.VY1*s.VY1) + 0.5*p.M2*(s.VX2*s.VX2+s.VY2*s.VY2)
	r := s.Separation()
	if r == 0 {
		return math.Inf(-1)
	}
	return ke - p.G*p.M1*p.M2/r
}

// AngularMomentum returns the z component of the total angular momentum about
// the origin.
func AngularMomentum(p Params, s State) float64 {
	return p.M1*(s.X1*s.VY1-s.Y1*s.VX1) + p.M2*(s.X2*s.VY2-s.Y2*s.VX2)
}

func CenterOfMass(p Params, s State) (x, y float64) {
	m := p.TotalMass()
	x = (p.M1*s.X1 + p.M2*s.X2) / m
	y = (p.M1*s.Y1 + p.M2*s.Y2) / m
	return
}

// CircularPair places the bodies a distance d apart on the x axis with the
// centre of mass at rest at the origin and velocities for a circular mutual
// orbit, body 1 moving in -y.
func CircularPair(p Params, d float64) State {
	m := p.TotalMass()
	v := math.Sqrt(p.G * m / d)
	return State{
		X1: -d * p.M2 / m, VY1: -v * p.M2 / m,
		X2: d * p.M1 / m, VY2: v * p.M1 / m,
	}
}
