package config

import (
	"sort"

	"github.com/san-kum/orbitsim/internal/twobody"
)

var Presets = map[string]*Config{
	"symmetric": DefaultConfig(),
	"circular":  circular("circular", 1, 1, 1),
	"unequal":   circular("unequal", 1, 1, 0.1),
	"eccentric": {
		Name: "eccentric", Integrator: DefaultIntegrator,
		G: 1, M1: 1, M2: 1, Dt: 0.005, Duration: 20.0,
		InitState: InitStateConfig{X1: -0.5, VY1: -0.3, X2: 0.5, VY2: 0.3},
		Output:    OutputConfig{Print: true, Every: 1, Save: true},
	},
	// Physical G with a light companion: over the short horizon the bodies
	// barely interact and body 2 drifts almost in a straight line.
	"cgs-drift": {
		Name: "cgs-drift", Integrator: DefaultIntegrator,
		G: 6.67e-8, M1: 1, M2: 0.01, Dt: 0.01, Duration: 2.0,
		InitState: InitStateConfig{X2: 1, VX2: 0.5, VY2: 0.1},
		Output:    OutputConfig{Print: true, Every: 1, Save: true},
	},
}

func circular(name string, g, m1, m2 float64) *Config {
	p := twobody.Params{G: g, M1: m1, M2: m2}
	cfg := &Config{
		Name: name, Integrator: DefaultIntegrator,
		G: g, M1: m1, M2: m2, Dt: DefaultDt, Duration: DefaultDuration,
		Output: OutputConfig{Print: true, Every: 1, Save: true},
	}
	cfg.SetInitial(twobody.CircularPair(p, 1))
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
