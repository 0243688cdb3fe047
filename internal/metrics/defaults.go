package metrics

import (
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/twobody"
)

// StabilityFactor is how far the separation may grow, relative to its initial
// value, before Default's stability metric counts the pair as escaping.
const StabilityFactor = 10.0

// Default returns a fresh set of the metrics every run reports.
func Default(p twobody.Params) []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(p),
		NewMomentumDrift(p),
		NewMaxRadius(),
		NewMinSeparation(),
		NewStability(StabilityFactor),
	}
}
