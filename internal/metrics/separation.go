package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/twobody"
)

// MinSeparation records the closest approach of the two bodies.
type MinSeparation struct {
	name    string
	min     float64
	samples int
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{
		name: "min_separation",
		min:  math.Inf(1),
	}
}

func (m *MinSeparation) Name() string {
	return m.name
}

func (m *MinSeparation) Observe(t float64, x twobody.State) {
	m.min = math.Min(m.min, x.Separation())
	m.samples++
}

func (m *MinSeparation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.min
}

func (m *MinSeparation) Reset() {
	m.min = math.Inf(1)
	m.samples = 0
}
