package twobody

import (
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"zero", State{}, true},
		{"normal", State{X1: 1, Y1: 2, VX2: -3}, true},
		{"NaN position", State{X2: math.NaN()}, false},
		{"+Inf velocity", State{VY1: math.Inf(1)}, false},
		{"-Inf velocity", State{VX2: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{X1: 3, Y1: 4}, 5.0},
		{State{VY2: 1}, 1.0},
		{State{}, 0.0},
		{State{X1: 1, Y1: 1, VX1: 1, VY1: 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := StateFromVector([8]float64{1, 2, 3, 4, 5, 6, 7, 8})
	b := StateFromVector([8]float64{8, 7, 6, 5, 4, 3, 2, 1})

	if got := a.Add(b).Vector(); got != [8]float64{9, 9, 9, 9, 9, 9, 9, 9} {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a).Vector(); got != [8]float64{7, 5, 3, 1, -1, -3, -5, -7} {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2).Vector(); got != [8]float64{2, 4, 6, 8, 10, 12, 14, 16} {
		t.Errorf("Scale failed: got %v", got)
	}

	// operands are values; nothing above may have changed them
	if a.X1 != 1 || b.X1 != 8 {
		t.Errorf("operands mutated: a=%v b=%v", a, b)
	}
}

func TestRate_Delta(t *testing.T) {
	r := Rate{X1: 1, Y1: 2, VX1: 3, VY1: 4, X2: 5, Y2: 6, VX2: 7, VY2: 8}
	d := r.Scale(0.5).Add(r.Scale(0.5)).Delta()

	if d.Vector() != [8]float64{1, 2, 3, 4, 5, 6, 7, 8} {
		t.Errorf("Delta did not preserve layout: got %v", d.Vector())
	}

	s := State{X1: 10}
	if got := s.Add(r.Delta()); got.X1 != 11 || got.VY2 != 8 {
		t.Errorf("state plus delta = %v", got)
	}
}

func TestState_Separation(t *testing.T) {
	s := State{X1: -1, Y1: 0, X2: 2, Y2: 4}
	if got := s.Separation(); got != 5 {
		t.Errorf("Separation() = %v, want 5", got)
	}
	if got := s.MaxRadius(); math.Abs(got-math.Hypot(2, 4)) > 1e-12 {
		t.Errorf("MaxRadius() = %v", got)
	}
}
