package twobody

// Step advances s by dt with the classical fourth-order Runge-Kutta scheme.
//
// The stage states and the final weighted sum are formed in a fixed order so
// trajectories are reproducible to the last bit. Errors from Derive are
// returned as is.
func Step(p Params, s State, dt float64) (State, error) {
	d1, err := Derive(p, s)
	if err != nil {
		return State{}, err
	}
	k1 := d1.Scale(dt)

	d2, err := Derive(p, s.Add(k1.Scale(0.5).Delta()))
	if err != nil {
		return State{}, err
	}
	k2 := d2.Scale(dt)

	d3, err := Derive(p, s.Add(k2.Scale(0.5).Delta()))
	if err != nil {
		return State{}, err
	}
	k3 := d3.Scale(dt)

	d4, err := Derive(p, s.Add(k3.Delta()))
	if err != nil {
		return State{}, err
	}
	k4 := d4.Scale(dt)

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return s.Add(sum.Scale(1.0 / 6.0).Delta()), nil
}
