package twobody_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/twobody"
)

// run integrates from s until t >= horizon, calling fn after each step.
func run(p twobody.Params, s twobody.State, dt, horizon float64, fn func(t float64, s twobody.State)) twobody.State {
	t := 0.0
	for t < horizon {
		next, err := twobody.Step(p, s, dt)
		Expect(err).NotTo(HaveOccurred())
		s = next
		t += dt
		fn(t, s)
	}
	return s
}

var _ = Describe("two-body trajectories", func() {
	var (
		p  twobody.Params
		s0 twobody.State
	)

	BeforeEach(func() {
		p = twobody.DefaultParams()
		s0 = twobody.State{X1: -0.5, Y1: 0, VX1: 0, VY1: -0.5, X2: 0.5, Y2: 0, VX2: 0, VY2: 0.5}
	})

	Describe("the symmetric bound orbit", func() {
		It("stays bounded without blowing up", func() {
			steps := 0
			maxR, minSep, maxSep := 0.0, math.Inf(1), 0.0
			run(p, s0, 0.01, 20.0, func(_ float64, s twobody.State) {
				steps++
				Expect(s.IsValid()).To(BeTrue())
				maxR = math.Max(maxR, s.MaxRadius())
				minSep = math.Min(minSep, s.Separation())
				maxSep = math.Max(maxSep, s.Separation())
			})

			Expect(steps).To(BeNumerically(">=", 2000))
			Expect(maxR).To(BeNumerically("<=", 1.5))
			Expect(maxR).To(BeNumerically(">", 0.4))
			// apocentre 1, pericentre 1/3 for this energy and angular momentum
			Expect(maxSep).To(BeNumerically("~", 1.0, 1e-3))
			Expect(minSep).To(BeNumerically("~", 1.0/3.0, 2e-2))
		})

		It("conserves momentum and nearly conserves energy", func() {
			px0, py0 := twobody.Momentum(p, s0)
			e0 := twobody.Energy(p, s0)
			scale := p.M1*math.Hypot(s0.VX1, s0.VY1) + p.M2*math.Hypot(s0.VX2, s0.VY2)

			run(p, s0, 0.01, 20.0, func(_ float64, s twobody.State) {
				px, py := twobody.Momentum(p, s)
				Expect(math.Abs(px - px0)).To(BeNumerically("<", 1e-6*scale))
				Expect(math.Abs(py - py0)).To(BeNumerically("<", 1e-6*scale))
			})

			end := run(p, s0, 0.01, 20.0, func(float64, twobody.State) {})
			drift := math.Abs(twobody.Energy(p, end)-e0) / math.Abs(e0)
			Expect(drift).To(BeNumerically("<", 1e-3))
		})

		It("conserves angular momentum", func() {
			l0 := twobody.AngularMomentum(p, s0)
			end := run(p, s0, 0.01, 20.0, func(float64, twobody.State) {})
			Expect(twobody.AngularMomentum(p, end)).To(BeNumerically("~", l0, 1e-4))
		})

		It("preserves mirror symmetry at every step", func() {
			run(p, s0, 0.01, 20.0, func(t float64, s twobody.State) {
				Expect(s.X1).To(BeNumerically("~", -s.X2, 1e-12), "x at t=%.2f", t)
				Expect(s.Y1).To(BeNumerically("~", -s.Y2, 1e-12), "y at t=%.2f", t)
				Expect(s.VX1).To(BeNumerically("~", -s.VX2, 1e-12), "vx at t=%.2f", t)
				Expect(s.VY1).To(BeNumerically("~", -s.VY2, 1e-12), "vy at t=%.2f", t)
			})
		})
	})

	Describe("unequal masses", func() {
		It("keeps the centre of mass at rest", func() {
			p = twobody.Params{G: 1, M1: 1, M2: 0.1}
			s0 = twobody.CircularPair(p, 1.0)

			run(p, s0, 0.005, 10.0, func(_ float64, s twobody.State) {
				cx, cy := twobody.CenterOfMass(p, s)
				Expect(cx).To(BeNumerically("~", 0, 1e-9))
				Expect(cy).To(BeNumerically("~", 0, 1e-9))
			})
		})

		It("keeps the separation of a circular pair constant", func() {
			p = twobody.Params{G: 1, M1: 1, M2: 0.1}
			s0 = twobody.CircularPair(p, 1.0)

			run(p, s0, 0.005, 10.0, func(_ float64, s twobody.State) {
				Expect(s.Separation()).To(BeNumerically("~", 1.0, 1e-7))
			})
		})
	})

	Describe("a collision course", func() {
		It("reports the singularity instead of producing NaN", func() {
			_, err := twobody.Derive(p, twobody.State{X1: 0.25, Y1: 0.25, X2: 0.25, Y2: 0.25})
			Expect(err).To(MatchError(twobody.ErrSingularSeparation))
		})
	})
})
