package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/twobody"
)

const (
	DefaultName       = "symmetric"
	DefaultIntegrator = "rk4"
	DefaultDt         = 0.01
	DefaultDuration   = 20.0
)

// ErrInvalidInitialState is returned by Validate for a non-finite initial
// state or one with coincident bodies.
var ErrInvalidInitialState = errors.New("config: invalid initial state")

type Config struct {
	Name       string          `yaml:"name"`
	Integrator string          `yaml:"integrator"`
	G          float64         `yaml:"g"`
	M1         float64         `yaml:"m1"`
	M2         float64         `yaml:"m2"`
	Dt         float64         `yaml:"dt"`
	Duration   float64         `yaml:"duration"`
	InitState  InitStateConfig `yaml:"init_state"`
	Output     OutputConfig    `yaml:"output"`
}

type InitStateConfig struct {
	X1  float64 `yaml:"x1"`
	Y1  float64 `yaml:"y1"`
	VX1 float64 `yaml:"vx1"`
	VY1 float64 `yaml:"vy1"`
	X2  float64 `yaml:"x2"`
	Y2  float64 `yaml:"y2"`
	VX2 float64 `yaml:"vx2"`
	VY2 float64 `yaml:"vy2"`
}

type OutputConfig struct {
	// Print writes one line per kept step to stdout.
	Print bool `yaml:"print"`
	// Every keeps one printed line out of Every steps.
	Every int  `yaml:"every"`
	Save  bool `yaml:"save"`
}

// DefaultConfig is the symmetric equal-mass scenario: G = 1, unit masses,
// bodies at (∓0.5, 0) moving at ∓0.5 along y, dt = 0.01 up to t = 20.
func DefaultConfig() *Config {
	return &Config{
		Name:       DefaultName,
		Integrator: DefaultIntegrator,
		G:          1,
		M1:         1,
		M2:         1,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		InitState: InitStateConfig{
			X1: -0.5, VY1: -0.5,
			X2: 0.5, VY2: 0.5,
		},
		Output: OutputConfig{Print: true, Every: 1, Save: true},
	}
}

// Load overlays the YAML file at path on DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Overlay(DefaultConfig(), data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Overlay returns a copy of base with the fields set in the YAML document
// data applied on top.
func Overlay(base *Config, data []byte) (*Config, error) {
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Set assigns one numeric field by its file key.
func (c *Config) Set(key string, v float64) error {
	fields := map[string]*float64{
		"g": &c.G, "m1": &c.M1, "m2": &c.M2, "dt": &c.Dt, "duration": &c.Duration,
		"x1": &c.InitState.X1, "y1": &c.InitState.Y1, "vx1": &c.InitState.VX1, "vy1": &c.InitState.VY1,
		"x2": &c.InitState.X2, "y2": &c.InitState.Y2, "vx2": &c.InitState.VX2, "vy2": &c.InitState.VY2,
	}
	dst, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown field %q", key)
	}
	*dst = v
	return nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

func (c *Config) Validate() error {
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	x0 := c.Initial()
	if !x0.IsValid() {
		return fmt.Errorf("%w: non-finite component", ErrInvalidInitialState)
	}
	if x0.Separation() == 0 {
		return fmt.Errorf("%w: bodies coincide", ErrInvalidInitialState)
	}
	if c.Output.Every < 0 {
		return fmt.Errorf("config: output.every must not be negative, got %d", c.Output.Every)
	}
	return nil
}

func (c *Config) Params() twobody.Params {
	return twobody.Params{G: c.G, M1: c.M1, M2: c.M2}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.Dt, Duration: c.Duration}
}

// Initial converts the configured initial condition to a kernel state.
func (c *Config) Initial() twobody.State {
	s := c.InitState
	return twobody.State{
		X1: s.X1, Y1: s.Y1, VX1: s.VX1, VY1: s.VY1,
		X2: s.X2, Y2: s.Y2, VX2: s.VX2, VY2: s.VY2,
	}
}

// SetInitial stores a kernel state as the initial condition.
func (c *Config) SetInitial(s twobody.State) {
	c.InitState = InitStateConfig{
		X1: s.X1, Y1: s.Y1, VX1: s.VX1, VY1: s.VY1,
		X2: s.X2, Y2: s.Y2, VX2: s.VX2, VY2: s.VY2,
	}
}

// Job turns the config into one trajectory of a sweep.
func (c *Config) Job() sim.Job {
	return sim.Job{
		Name:    c.Name,
		Params:  c.Params(),
		Initial: c.Initial(),
		Config:  c.SimConfig(),
	}
}
