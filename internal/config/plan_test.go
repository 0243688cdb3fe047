package config

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestParsePlan(t *testing.T) {
	g := NewWithT(t)

	plan, err := ParsePlan([]byte(`
preset: unequal
workers: 3
base: {duration: 5}
runs:
  - {name: q0.1}
  - {name: q0.5, m2: 0.5}
  - {m2: 0.9, dt: 0.02}
`))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(plan.Workers).To(Equal(3))
	g.Expect(plan.Runs).To(HaveLen(3))

	g.Expect(plan.Runs[0].Name).To(Equal("q0.1"))
	g.Expect(plan.Runs[0].M2).To(Equal(0.1))
	g.Expect(plan.Runs[0].Duration).To(Equal(5.0))

	g.Expect(plan.Runs[1].M2).To(Equal(0.5))
	g.Expect(plan.Runs[1].InitState).To(Equal(plan.Base.InitState))

	g.Expect(plan.Runs[2].Name).To(Equal("unequal-2"))
	g.Expect(plan.Runs[2].Dt).To(Equal(0.02))
	g.Expect(plan.Base.M2).To(Equal(0.1), "runs must not alias the base")

	jobs := plan.Jobs()
	g.Expect(jobs).To(HaveLen(3))
	g.Expect(jobs[1].Name).To(Equal("q0.5"))
	g.Expect(jobs[1].Params.M2).To(Equal(0.5))
	g.Expect(jobs[2].Config.Dt).To(Equal(0.02))
}

func TestParsePlanErrors(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"no runs", "workers: 2\n"},
		{"unknown preset", "preset: nope\nruns: [{name: a}]\n"},
		{"invalid run", "runs: [{name: a, dt: 0}]\n"},
		{"duplicate names", "runs: [{name: a}, {name: a}]\n"},
		{"malformed", "runs: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePlan([]byte(tt.yml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParsePlanGrid(t *testing.T) {
	g := NewWithT(t)

	plan, err := ParsePlan([]byte(`
base: {name: base, duration: 2}
runs:
  - {name: first}
grid:
  m2: [0.5, 1]
  dt: [0.01, 0.005]
`))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(plan.Runs).To(HaveLen(5))
	g.Expect(plan.Runs[0].Name).To(Equal("first"))

	names := make([]string, 0, 4)
	for _, run := range plan.Runs[1:] {
		names = append(names, run.Name)
		g.Expect(run.Duration).To(Equal(2.0))
	}
	g.Expect(names).To(Equal([]string{
		"base-dt0.01-m20.5", "base-dt0.01-m21",
		"base-dt0.005-m20.5", "base-dt0.005-m21",
	}))
	g.Expect(plan.Runs[4].Dt).To(Equal(0.005))
	g.Expect(plan.Runs[4].M2).To(Equal(1.0))
	g.Expect(plan.Base.M2).To(Equal(1.0))

	_, err = ParsePlan([]byte("grid: {mass: [1]}\n"))
	g.Expect(err).To(HaveOccurred())

	_, err = ParsePlan([]byte("grid: {m2: []}\n"))
	g.Expect(err).To(HaveOccurred())

	_, err = ParsePlan([]byte("grid: {dt: [0.01, -1]}\n"))
	g.Expect(err).To(HaveOccurred())
}
