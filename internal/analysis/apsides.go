package analysis

import (
	"github.com/san-kum/orbitsim/internal/sim"
)

// Apsis is a closest or farthest approach between the bodies.
type Apsis struct {
	Time       float64
	Separation float64
	Periapsis  bool
}

// FindApsides locates local extrema of the separation along a run, the
// initial state included. Each extremum is refined by fitting a parabola
// through the three samples around it, which assumes uniform spacing.
func FindApsides(r *sim.Result) []Apsis {
	n := len(r.States) + 1
	times := make([]float64, n)
	seps := make([]float64, n)
	seps[0] = r.Initial.Separation()
	for i, s := range r.States {
		times[i+1] = r.Times[i]
		seps[i+1] = s.Separation()
	}

	out := make([]Apsis, 0)
	for i := 1; i < n-1; i++ {
		a, b, c := seps[i-1], seps[i], seps[i+1]
		isMin := b < a && b <= c
		isMax := b > a && b >= c
		if !isMin && !isMax {
			continue
		}

		t, sep := times[i], b
		if d := a - 2*b + c; d != 0 {
			h := (times[i+1] - times[i-1]) / 2
			off := 0.5 * (a - c) / d
			t += off * h
			sep = b - 0.25*(a-c)*off
		}
		out = append(out, Apsis{Time: t, Separation: sep, Periapsis: isMin})
	}
	return out
}

// Periapses keeps only the closest approaches.
func Periapses(apsides []Apsis) []Apsis {
	out := make([]Apsis, 0, len(apsides)/2+1)
	for _, a := range apsides {
		if a.Periapsis {
			out = append(out, a)
		}
	}
	return out
}

// MeanInterval is the average time between consecutive apsides of the same
// kind, which for a Keplerian orbit is the period. It is zero with fewer than
// two.
func MeanInterval(apsides []Apsis) float64 {
	if len(apsides) < 2 {
		return 0
	}
	return (apsides[len(apsides)-1].Time - apsides[0].Time) / float64(len(apsides)-1)
}
