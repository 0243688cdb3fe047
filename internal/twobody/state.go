package twobody

import "math"

// State is the instantaneous configuration of the system: position and velocity
// of body 1 followed by those of body 2.
type State struct {
	X1  float64 `json:"x1"`
	Y1  float64 `json:"y1"`
	VX1 float64 `json:"vx1"`
	VY1 float64 `json:"vy1"`
	X2  float64 `json:"x2"`
	Y2  float64 `json:"y2"`
	VX2 float64 `json:"vx2"`
	VY2 float64 `json:"vy2"`
}

// Rate is the time derivative of a State. Its position slots hold velocities and
// its velocity slots hold accelerations. A Rate only becomes something that can
// be added to a State through Delta.
type Rate struct {
	X1, Y1, VX1, VY1 float64
	X2, Y2, VX2, VY2 float64
}

// StateFromVector unpacks x1, y1, vx1, vy1, x2, y2, vx2, vy2.
func StateFromVector(v [8]float64) State {
	return State{
		X1: v[0], Y1: v[1], VX1: v[2], VY1: v[3],
		X2: v[4], Y2: v[5], VX2: v[6], VY2: v[7],
	}
}

func (s State) Vector() [8]float64 {
	return [8]float64{s.X1, s.Y1, s.VX1, s.VY1, s.X2, s.Y2, s.VX2, s.VY2}
}

func (s State) Add(other State) State {
	return State{
		X1: s.X1 + other.X1, Y1: s.Y1 + other.Y1, VX1: s.VX1 + other.VX1, VY1: s.VY1 + other.VY1,
		X2: s.X2 + other.X2, Y2: s.Y2 + other.Y2, VX2: s.VX2 + other.VX2, VY2: s.VY2 + other.VY2,
	}
}

func (s State) Sub(other State) State {
	return State{
		X1: s.X1 - other.X1, Y1: s.Y1 - other.Y1, VX1: s.VX1 - other.VX1, VY1: s.VY1 - other.VY1,
		X2: s.X2 - other.X2, Y2: s.Y2 - other.Y2, VX2: s.VX2 - other.VX2, VY2: s.VY2 - other.VY2,
	}
}

func (s State) Scale(k float64) State {
	return State{
		X1: s.X1 * k, Y1: s.Y1 * k, VX1: s.VX1 * k, VY1: s.VY1 * k,
		X2: s.X2 * k, Y2: s.Y2 * k, VX2: s.VX2 * k, VY2: s.VY2 * k,
	}
}

// Norm is the Euclidean norm over all 8 components.
func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s.Vector() {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s.Vector() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Separation is the distance between the two bodies.
func (s State) Separation() float64 {
	dx := s.X1 - s.X2
	dy := s.Y1 - s.Y2
	return math.Sqrt(dx*dx + dy*dy)
}

// MaxRadius is the largest distance of either body from the origin.
func (s State) MaxRadius() float64 {
	return math.Max(math.Hypot(s.X1, s.Y1), math.Hypot(s.X2, s.Y2))
}

func (r Rate) Add(other Rate) Rate {
	return Rate{
		X1: r.X1 + other.X1, Y1: r.Y1 + other.Y1, VX1: r.VX1 + other.VX1, VY1: r.VY1 + other.VY1,
		X2: r.X2 + other.X2, Y2: r.Y2 + other.Y2, VX2: r.VX2 + other.VX2, VY2: r.VY2 + other.VY2,
	}
}

func (r Rate) Scale(k float64) Rate {
	return Rate{
		X1: r.X1 * k, Y1: r.Y1 * k, VX1: r.VX1 * k, VY1: r.VY1 * k,
		X2: r.X2 * k, Y2: r.Y2 * k, VX2: r.VX2 * k, VY2: r.VY2 * k,
	}
}

// Delta reinterprets a Rate that has already been multiplied by a time
// increment as a change of State.
func (r Rate) Delta() State {
	return State(r)
}
