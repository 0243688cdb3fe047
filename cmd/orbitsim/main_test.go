package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/report"
	"github.com/san-kum/orbitsim/internal/storage"
)

// execute runs the command tree against a temporary data directory and
// returns stdout.
func execute(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--data", dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRunPrintsTrajectory(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	out, err := execute(t, dir, "run", "--no-save", "--dt", "0.25", "--time", "1")
	g.Expect(err).NotTo(HaveOccurred())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	g.Expect(lines).To(HaveLen(4))
	for _, line := range lines {
		g.Expect(strings.Fields(line)).To(HaveLen(len(report.DefaultColumns)))
	}
	// the first column is the elapsed time
	g.Expect(lines[0]).To(HavePrefix("+0.25000000 "))
	g.Expect(lines[3]).To(HavePrefix("+1.00000000 "))

	runs, err := storage.New(dir).List()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(runs).To(BeEmpty())
}

func TestRunEveryAndColumns(t *testing.T) {
	g := NewWithT(t)

	out, err := execute(t, t.TempDir(), "run", "--no-save", "--dt", "0.25", "--time", "2",
		"--every", "2", "--columns", "t,vx2")
	g.Expect(err).NotTo(HaveOccurred())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	g.Expect(lines).To(HaveLen(4))
	g.Expect(strings.Fields(lines[0])).To(HaveLen(2))

	_, err = execute(t, t.TempDir(), "run", "--no-save", "--columns", "bogus")
	g.Expect(err).To(HaveOccurred())
}

func TestRunStoresAndLists(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	out, err := execute(t, dir, "run", "-q", "--name", "stored", "--dt", "0.05", "--time", "1")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(BeEmpty())

	runs, err := storage.New(dir).List()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(runs).To(HaveLen(1))
	g.Expect(runs[0].Name).To(Equal("stored"))
	g.Expect(runs[0].Status).To(Equal(storage.StatusComplete))

	out, err = execute(t, dir, "list")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring(runs[0].ID))
	g.Expect(out).To(ContainSubstring("completed"))

	out, err = execute(t, dir, "export-json", runs[0].ID)
	g.Expect(err).NotTo(HaveOccurred())
	var data report.ExportData
	g.Expect(json.Unmarshal([]byte(out), &data)).To(Succeed())
	g.Expect(data.Name).To(Equal("stored"))
	g.Expect(data.States).To(HaveLen(runs[0].Steps))

	out, err = execute(t, dir, "plot", runs[0].ID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring("x1 vs time"))
	g.Expect(out).To(ContainSubstring("y2 vs time"))
	g.Expect(out).NotTo(ContainSubstring("t vs time"))

	out, err = execute(t, dir, "run", "--no-save", "--dt", "0.5", "--time", "1", "--columns", "t,x1")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(strings.Fields(strings.Split(out, "\n")[0])).To(HaveLen(2))

	out, err = execute(t, dir, "analyze", runs[0].ID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring("eccentricity"))

	svgPath := filepath.Join(t.TempDir(), "orbit.svg")
	_, err = execute(t, dir, "export-svg", runs[0].ID, "--vector", "--out", svgPath)
	g.Expect(err).NotTo(HaveOccurred())
	svg, err := os.ReadFile(svgPath)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(svg)).To(ContainSubstring("<svg"))
}

func TestListEmpty(t *testing.T) {
	g := NewWithT(t)
	out, err := execute(t, t.TempDir(), "list")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring("no runs found"))
}

func TestRunRejectsBadInput(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	_, err := execute(t, dir, "run", "--dt", "0")
	g.Expect(err).To(HaveOccurred())

	_, err = execute(t, dir, "run", "--x1", "0.5")
	g.Expect(err).To(HaveOccurred())

	_, err = execute(t, dir, "run", "--integrator", "leapfrog")
	g.Expect(err).To(HaveOccurred())

	_, err = execute(t, dir, "run", "--preset", "missing")
	g.Expect(err).To(HaveOccurred())

	runs, err := storage.New(dir).List()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(runs).To(BeEmpty())
}

func TestPresetsCommand(t *testing.T) {
	g := NewWithT(t)

	out, err := execute(t, t.TempDir(), "presets")
	g.Expect(err).NotTo(HaveOccurred())
	for _, name := range []string{"symmetric", "circular", "unequal", "eccentric", "cgs-drift"} {
		g.Expect(out).To(ContainSubstring(name))
	}

	out, err = execute(t, t.TempDir(), "presets", "cgs-drift")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring("g: 6.67e-08"))

	_, err = execute(t, t.TempDir(), "presets", "missing")
	g.Expect(err).To(HaveOccurred())
}

func TestResolveConfigPrecedence(t *testing.T) {
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	g.Expect(os.WriteFile(path, []byte("m2: 0.5\ndt: 0.002\n"), 0644)).To(Succeed())

	opts := &options{}
	runCmd := &cobra.Command{Use: "run"}
	opts.addScenarioFlags(runCmd)
	g.Expect(runCmd.ParseFlags([]string{"--preset", "eccentric", "--config", path, "--dt", "0.001"})).To(Succeed())

	cfg, err := opts.resolveConfig(runCmd)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Name).To(Equal("eccentric"))
	g.Expect(cfg.InitState.VY1).To(Equal(-0.3))
	g.Expect(cfg.M2).To(Equal(0.5))
	g.Expect(cfg.Dt).To(Equal(0.001))
	g.Expect(cfg.Duration).To(Equal(20.0))

	// flags left at their defaults do not override the file
	g.Expect(cfg.M1).To(Equal(1.0))
}

func TestSweepCommand(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	plan := filepath.Join(t.TempDir(), "plan.yaml")
	g.Expect(os.WriteFile(plan, []byte(`
workers: 2
base:
  dt: 0.05
  duration: 1
runs:
  - name: light
    m2: 0.5
  - name: heavy
    m2: 2
    integrator: verlet
`), 0644)).To(Succeed())

	out, err := execute(t, dir, "sweep", plan, "--save")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring("light"))
	g.Expect(out).To(ContainSubstring("heavy"))

	runs, err := storage.New(dir).List()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(runs).To(HaveLen(2))
	integs := []string{runs[0].Integrator, runs[1].Integrator}
	g.Expect(integs).To(ConsistOf("rk4", "verlet"))
}

func TestConvergeCommand(t *testing.T) {
	g := NewWithT(t)

	out, err := execute(t, t.TempDir(), "converge", "--preset", "circular", "--dt", "0.05", "--time", "1")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring("Kepler solution"))
	g.Expect(out).To(ContainSubstring("0.0125"))
}
