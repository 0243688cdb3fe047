package analysis

import (
	"errors"
	"math"

	"github.com/san-kum/orbitsim/internal/twobody"
)

const twoPi = 2 * math.Pi

var (
	ErrUnbound     = errors.New("analysis: orbit is not bound")
	ErrRadialOrbit = errors.New("analysis: radial orbit has no closed-form solution")
)

// Elements describes the relative orbit of body 2 around body 1.
type Elements struct {
	SemiMajorAxis float64
	Eccentricity  float64
	// ArgumentOfPeriapsis is the direction of periapsis, measured from +x.
	ArgumentOfPeriapsis float64
	// TrueAnomaly is the angle travelled since periapsis in the direction of
	// motion, in [0, 2π).
	TrueAnomaly float64
	// Period is +Inf for unbound orbits.
	Period float64
	// Energy and AngularMomentum are per unit reduced mass. AngularMomentum
	// is positive for counter-clockwise motion.
	Energy          float64
	AngularMomentum float64
	Mu              float64
}

func (e Elements) Bound() bool { return e.Energy < 0 }

func (e Elements) Periapsis() float64 { return e.SemiMajorAxis * (1 - e.Eccentricity) }

func (e Elements) Apoapsis() float64 { return e.SemiMajorAxis * (1 + e.Eccentricity) }

// MeanMotion is 2π/Period, zero for unbound orbits.
func (e Elements) MeanMotion() float64 {
	if !e.Bound() {
		return 0
	}
	return math.Sqrt(e.Mu / math.Pow(e.SemiMajorAxis, 3))
}

func relative(s twobody.State) (rx, ry, vx, vy float64) {
	return s.X2 - s.X1, s.Y2 - s.Y1, s.VX2 - s.VX1, s.VY2 - s.VY1
}

// OrbitalElements computes the elements of the relative orbit of s.
func OrbitalElements(p twobody.Params, s twobody.State) (Elements, error) {
	rx, ry, vx, vy := relative(s)
	r := math.Hypot(rx, ry)
	if r == 0 {
		return Elements{}, twobody.ErrSingularSeparation
	}

	mu := p.Mu()
	v2 := vx*vx + vy*vy
	rv := rx*vx + ry*vy

	el := Elements{
		Energy:          v2/2 - mu/r,
		AngularMomentum: rx*vy - ry*vx,
		Mu:              mu,
	}

	ex := ((v2-mu/r)*rx - rv*vx) / mu
	ey := ((v2-mu/r)*ry - rv*vy) / mu
	el.Eccentricity = math.Hypot(ex, ey)
	el.ArgumentOfPeriapsis = normalizeAngle(math.Atan2(ey, ex))

	nu := math.Atan2(ry, rx) - el.ArgumentOfPeriapsis
	if el.AngularMomentum < 0 {
		nu = -nu
	}
	el.TrueAnomaly = normalizeAngle(nu)

	if el.Energy == 0 {
		el.SemiMajorAxis = math.Inf(1)
	} else {
		el.SemiMajorAxis = -mu / (2 * el.Energy)
	}

	el.Period = math.Inf(1)
	if el.Bound() {
		el.Period = twoPi * math.Sqrt(math.Pow(el.SemiMajorAxis, 3)/mu)
	}
	return el, nil
}

// Kepler returns the exact state reached from s after time t for a bound,
// non-radial pair. The centre of mass drifts at its initial velocity.
func Kepler(p twobody.Params, s twobody.State, t float64) (twobody.State, error) {
	el, err := OrbitalElements(p, s)
	if err != nil {
		return twobody.State{}, err
	}
	if !el.Bound() {
		return twobody.State{}, ErrUnbound
	}
	if el.AngularMomentum == 0 {
		return twobody.State{}, ErrRadialOrbit
	}

	e := el.Eccentricity
	a := el.SemiMajorAxis

	e0 := eccentricFromTrue(el.TrueAnomaly, e)
	m := e0 - e*math.Sin(e0) + el.MeanMotion()*t
	ea := eccentricFromMean(m, e)
	nu := trueFromEccentric(ea, e)

	r := a * (1 - e*math.Cos(ea))
	vk := math.Sqrt(el.Mu / (a * (1 - e*e)))

	// perifocal frame, y flipped for clockwise motion
	dir := 1.0
	if el.AngularMomentum < 0 {
		dir = -1
	}
	px, py := r*math.Cos(nu), dir*r*math.Sin(nu)
	qx, qy := -vk*math.Sin(nu), dir*vk*(e+math.Cos(nu))

	cw, sw := math.Cos(el.ArgumentOfPeriapsis), math.Sin(el.ArgumentOfPeriapsis)
	rx, ry := cw*px-sw*py, sw*px+cw*py
	vx, vy := cw*qx-sw*qy, sw*qx+cw*qy

	m1, m2, total := p.M1, p.M2, p.TotalMass()
	cx, cy := twobody.CenterOfMass(p, s)
	cvx := (m1*s.VX1 + m2*s.VX2) / total
	cvy := (m1*s.VY1 + m2*s.VY2) / total
	cx += cvx * t
	cy += cvy * t

	f1, f2 := m2/total, m1/total
	return twobody.State{
		X1: cx - f1*rx, Y1: cy - f1*ry, VX1: cvx - f1*vx, VY1: cvy - f1*vy,
		X2: cx + f2*rx, Y2: cy + f2*ry, VX2: cvx + f2*vx, VY2: cvy + f2*vy,
	}, nil
}

func eccentricFromTrue(nu, e float64) float64 {
	return math.Atan2(math.Sqrt(1-e*e)*math.Sin(nu), e+math.Cos(nu))
}

func trueFromEccentric(ea, e float64) float64 {
	return math.Atan2(math.Sqrt(1-e*e)*math.Sin(ea), math.Cos(ea)-e)
}

// eccentricFromMean solves Kepler's equation by Newton-Raphson.
func eccentricFromMean(m, e float64) float64 {
	m = normalizeAngle(m)
	ea := m
	if e >= 0.8 {
		if m < math.Pi {
			ea = m + e/2
		} else {
			ea = m - e/2
		}
	}
	for i := 0; i < 50; i++ {
		delta := (ea - e*math.Sin(ea) - m) / (1 - e*math.Cos(ea))
		ea -= delta
		if math.Abs(delta) < 1e-14 {
			break
		}
	}
	return ea
}

func normalizeAngle(angle float64) float64 {
	wrapped := math.Mod(angle, twoPi)
	if wrapped < 0 {
		wrapped += twoPi
	}
	return wrapped
}
