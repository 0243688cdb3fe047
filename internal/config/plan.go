package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/sim"
)

// Plan is a batch of independent runs. Every run starts from the base config
// and overrides only the fields it names:
//
//	preset: unequal
//	workers: 4
//	base: {duration: 5}
//	runs:
//	  - {name: q0.1, m2: 0.1}
//	  - {name: q0.5, m2: 0.5}
//
// A grid adds one run per combination of the listed values, after the
// explicit runs:
//
//	grid: {m2: [0.1, 0.5, 1], dt: [0.01, 0.005]}
type Plan struct {
	Workers int
	Base    *Config
	Runs    []*Config
}

type planFile struct {
	Preset  string               `yaml:"preset"`
	Workers int                  `yaml:"workers"`
	Base    yaml.Node            `yaml:"base"`
	Runs    []yaml.Node          `yaml:"runs"`
	Grid    map[string][]float64 `yaml:"grid"`
}

func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return plan, nil
}

func ParsePlan(data []byte) (*Plan, error) {
	var raw planFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	base := DefaultConfig()
	if raw.Preset != "" {
		if base = GetPreset(raw.Preset); base == nil {
			return nil, fmt.Errorf("unknown preset %q", raw.Preset)
		}
	}
	if !raw.Base.IsZero() {
		if err := raw.Base.Decode(base); err != nil {
			return nil, fmt.Errorf("base: %w", err)
		}
	}
	if len(raw.Runs) == 0 && len(raw.Grid) == 0 {
		return nil, fmt.Errorf("no runs")
	}

	plan := &Plan{Workers: raw.Workers, Base: base, Runs: make([]*Config, 0, len(raw.Runs))}
	seen := make(map[string]bool, len(raw.Runs))
	add := func(run *Config) error {
		if err := run.Validate(); err != nil {
			return fmt.Errorf("run %q: %w", run.Name, err)
		}
		if seen[run.Name] {
			return fmt.Errorf("duplicate run name %q", run.Name)
		}
		seen[run.Name] = true
		plan.Runs = append(plan.Runs, run)
		return nil
	}

	for i, node := range raw.Runs {
		run := base.Clone()
		run.Name = fmt.Sprintf("%s-%d", base.Name, i)
		if err := node.Decode(run); err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		if err := add(run); err != nil {
			return nil, err
		}
	}

	grid, err := expandGrid(base, raw.Grid)
	if err != nil {
		return nil, err
	}
	for _, run := range grid {
		if err := add(run); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// expandGrid returns one config per combination of grid values, keys in
// sorted order with the last key varying fastest.
func expandGrid(base *Config, grid map[string][]float64) ([]*Config, error) {
	if len(grid) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(grid))
	for k, values := range grid {
		if len(values) == 0 {
			return nil, fmt.Errorf("grid %s: no values", k)
		}
		if err := base.Clone().Set(k, 0); err != nil {
			return nil, fmt.Errorf("grid: %w", err)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []*Config
	var walk func(depth int, cfg *Config, label []string)
	walk = func(depth int, cfg *Config, label []string) {
		if depth == len(keys) {
			cfg.Name = base.Name + "-" + strings.Join(label, "-")
			out = append(out, cfg)
			return
		}
		key := keys[depth]
		for _, v := range grid[key] {
			next := cfg.Clone()
			next.Set(key, v)
			walk(depth+1, next, append(label[:depth:depth], fmt.Sprintf("%s%g", key, v)))
		}
	}
	walk(0, base.Clone(), nil)
	return out, nil
}

func (p *Plan) Jobs() []sim.Job {
	jobs := make([]sim.Job, len(p.Runs))
	for i, run := range p.Runs {
		jobs[i] = run.Job()
	}
	return jobs
}
