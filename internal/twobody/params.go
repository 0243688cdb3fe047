package twobody

import (
	"fmt"
	"math"
)

// Params holds the physical constants of a run. It is passed by value and never
// mutated, so different runs can use different constants side by side.
type Params struct {
	G  float64 `json:"g" yaml:"g"`
	M1 float64 `json:"m1" yaml:"m1"`
	M2 float64 `json:"m2" yaml:"m2"`
}

// DefaultParams returns G = 1 with two unit masses.
func DefaultParams() Params {
	return Params{G: 1, M1: 1, M2: 1}
}

// NewParams builds a validated Params.
func NewParams(g, m1, m2 float64) (Params, error) {
	p := Params{G: g, M1: m1, M2: m2}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// FromMassRatio builds Params for a primary of unit mass and a secondary of
// mass q.
func FromMassRatio(g, q float64) (Params, error) {
	return NewParams(g, 1, q)
}

func (p Params) Validate() error {
	check := func(name string, v float64) error {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidParams, name, v)
		}
		return nil
	}
	if err := check("g", p.G); err != nil {
		return err
	}
	if err := check("m1", p.M1); err != nil {
		return err
	}
	return check("m2", p.M2)
}

func (p Params) TotalMass() float64 { return p.M1 + p.M2 }

// Mu is the gravitational parameter G·(m1+m2) of the relative orbit.
func (p Params) Mu() float64 { return p.G * p.TotalMass() }
