package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/twobody"
)

var symmetric = twobody.State{X1: -0.5, VY1: -0.5, X2: 0.5, VY2: 0.5}

func TestOrbitalElementsSymmetric(t *testing.T) {
	g := NewWithT(t)

	el, err := OrbitalElements(twobody.DefaultParams(), symmetric)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(el.Bound()).To(BeTrue())
	g.Expect(el.Energy).To(BeNumerically("~", -1.5, 1e-15))
	g.Expect(el.AngularMomentum).To(BeNumerically("~", 1, 1e-15))
	g.Expect(el.SemiMajorAxis).To(BeNumerically("~", 2.0/3.0, 1e-15))
	g.Expect(el.Eccentricity).To(BeNumerically("~", 0.5, 1e-15))
	g.Expect(el.Periapsis()).To(BeNumerically("~", 1.0/3.0, 1e-15))
	g.Expect(el.Apoapsis()).To(BeNumerically("~", 1, 1e-15))
	g.Expect(el.ArgumentOfPeriapsis).To(BeNumerically("~", math.Pi, 1e-12))
	g.Expect(el.TrueAnomaly).To(BeNumerically("~", math.Pi, 1e-12))
	g.Expect(el.Period).To(BeNumerically("~", 2*math.Pi*math.Sqrt(8.0/27.0/2.0), 1e-12))
}

func TestOrbitalElementsCircular(t *testing.T) {
	p := twobody.Params{G: 1, M1: 1, M2: 0.1}
	el, err := OrbitalElements(p, twobody.CircularPair(p, 1))
	if err != nil {
		t.Fatal(err)
	}
	if el.Eccentricity > 1e-12 {
		t.Errorf("eccentricity %g, want 0", el.Eccentricity)
	}
	if math.Abs(el.SemiMajorAxis-1) > 1e-12 {
		t.Errorf("semi-major axis %g, want 1", el.SemiMajorAxis)
	}
	want := 2 * math.Pi / math.Sqrt(1.1)
	if math.Abs(el.Period-want) > 1e-12 {
		t.Errorf("period %g, want %g", el.Period, want)
	}
}

func TestOrbitalElementsUnbound(t *testing.T) {
	s := twobody.State{X1: 0, X2: 1, VY2: 3}
	el, err := OrbitalElements(twobody.DefaultParams(), s)
	if err != nil {
		t.Fatal(err)
	}
	if el.Bound() || !math.IsInf(el.Period, 1) || el.Eccentricity <= 1 {
		t.Errorf("expected hyperbolic orbit, got %+v", el)
	}
	if el.MeanMotion() != 0 {
		t.Error("unbound orbit has no mean motion")
	}

	if _, err := Kepler(twobody.DefaultParams(), s, 1); !errors.Is(err, ErrUnbound) {
		t.Errorf("expected ErrUnbound, got %v", err)
	}
}

func TestOrbitalElementsErrors(t *testing.T) {
	if _, err := OrbitalElements(twobody.DefaultParams(), twobody.State{X1: 1, X2: 1}); !errors.Is(err, twobody.ErrSingularSeparation) {
		t.Errorf("expected ErrSingularSeparation, got %v", err)
	}

	radial := twobody.State{X1: 0, X2: 1, VX2: 0.1}
	if _, err := Kepler(twobody.DefaultParams(), radial, 1); !errors.Is(err, ErrRadialOrbit) {
		t.Errorf("expected ErrRadialOrbit, got %v", err)
	}
}

func TestKeplerIdentityAndPeriod(t *testing.T) {
	g := NewWithT(t)
	p := twobody.DefaultParams()

	at0, err := Kepler(p, symmetric, 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(at0.Sub(symmetric).Norm()).To(BeNumerically("<", 1e-12))

	el, _ := OrbitalElements(p, symmetric)
	full, err := Kepler(p, symmetric, el.Period)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(full.Sub(symmetric).Norm()).To(BeNumerically("<", 1e-10))

	half, _ := Kepler(p, symmetric, el.Period/2)
	g.Expect(half.Separation()).To(BeNumerically("~", 1.0/3.0, 1e-10))
}

func TestKeplerMatchesRK4(t *testing.T) {
	g := NewWithT(t)

	cases := []struct {
		name string
		p    twobody.Params
		s    twobody.State
	}{
		{"symmetric", twobody.DefaultParams(), symmetric},
		{"clockwise", twobody.DefaultParams(), twobody.State{X1: -0.5, VY1: 0.5, X2: 0.5, VY2: -0.5}},
		{"unequal drifting", twobody.Params{G: 1, M1: 1, M2: 0.3},
			twobody.State{X1: 0.1, Y1: 0.2, VX1: 0.05, VY1: -0.1, X2: 1.1, Y2: 0.2, VX2: 0.1, VY2: 0.9}},
	}

	for _, tc := range cases {
		const dt, n = 0.001, 3000
		x, err := Integrate(context.Background(), integrators.NewRK4(), tc.p, tc.s, dt, n)
		g.Expect(err).NotTo(HaveOccurred(), tc.name)

		exact, err := Kepler(tc.p, tc.s, dt*n)
		g.Expect(err).NotTo(HaveOccurred(), tc.name)
		g.Expect(x.Sub(exact).Norm()).To(BeNumerically("<", 1e-8), tc.name)
	}
}
