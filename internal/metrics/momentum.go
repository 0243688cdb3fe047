package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/twobody"
)

// MomentumDrift tracks the largest change of total linear momentum, relative to
// the summed momentum magnitudes of the first observed state. Relative to the
// total itself would be meaningless for systems at rest.
type MomentumDrift struct {
	name     string
	params   twobody.Params
	px0, py0 float64
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift(p twobody.Params) *MomentumDrift {
	return &MomentumDrift{
		name:   "momentum_drift",
		params: p,
	}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(t float64, s twobody.State) {
	px, py := twobody.Momentum(m.params, s)

	if m.samples == 0 {
		m.px0, m.py0 = px, py
		m.scale = m.params.M1*math.Hypot(s.VX1, s.VY1) + m.params.M2*math.Hypot(s.VX2, s.VY2)
	}
	m.samples++

	if m.scale > 0 {
		drift := math.Hypot(px-m.px0, py-m.py0) / m.scale
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MomentumDrift) Value() float64 {
	return m.maxDrift
}

func (m *MomentumDrift) Reset() {
	m.px0, m.py0 = 0, 0
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}
