package metrics

import (
	"github.com/san-kum/orbitsim/internal/twobody"
)

// Stability is the fraction of observed states whose separation stays within
// factor times the first observed separation. An escaping pair drives it
// towards zero.
type Stability struct {
	factor  float64
	ref     float64
	samples int
	escaped int
}

func NewStability(factor float64) *Stability {
	return &Stability{factor: factor}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(t float64, x twobody.State) {
	d := x.Separation()
	if s.samples == 0 {
		s.ref = d
	}
	s.samples++
	if d > s.factor*s.ref {
		s.escaped++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1
	}
	return 1 - float64(s.escaped)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.ref = 0
	s.samples = 0
	s.escaped = 0
}

// MaxRadius records the largest distance of either body from the origin.
type MaxRadius struct {
	max float64
}

func NewMaxRadius() *MaxRadius { return &MaxRadius{} }

func (m *MaxRadius) Name() string { return "max_radius" }

func (m *MaxRadius) Observe(t float64, x twobody.State) {
	if r := x.MaxRadius(); r > m.max {
		m.max = r
	}
}

func (m *MaxRadius) Value() float64 { return m.max }
func (m *MaxRadius) Reset()         { m.max = 0 }
