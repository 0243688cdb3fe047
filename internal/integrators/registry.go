package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbitsim/internal/sim"
)

// Default is the integrator used when none is named.
const Default = "rk4"

var registry = map[string]func() sim.Integrator{
	"rk4":    func() sim.Integrator { return NewRK4() },
	"euler":  func() sim.Integrator { return NewEuler() },
	"verlet": func() sim.Integrator { return NewVerlet() },
}

func ByName(name string) (sim.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
