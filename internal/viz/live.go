package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/twobody"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailCapacity   = 400
	maxSpeed        = 64
)

type TickMsg time.Time

// Model is the live orbit view. Every tick it advances the pair by speed
// steps; a failed step stops the stepping and the error is shown.
type Model struct {
	name          string
	params        twobody.Params
	integrator    sim.Integrator
	initial       twobody.State
	state         twobody.State
	t, dt         float64
	steps         int
	speed         int
	width, height int
	canvas        *Canvas
	frame         Frame
	trail1        []Point
	trail2        []Point
	e0            float64
	energyHistory []float64
	running       bool
	err           error
	theme         Theme
	showHelp      bool
}

// NewModel prepares a view of the pair starting at x0. A nil integrator
// selects the RK4 kernel.
func NewModel(name string, p twobody.Params, integ sim.Integrator, x0 twobody.State, dt float64) Model {
	if integ == nil {
		integ = sim.StepFunc(twobody.Step)
	}
	m := Model{
		name:       name,
		params:     p,
		integrator: integ,
		initial:    x0,
		dt:         dt,
		speed:      1,
		width:      width,
		height:     height,
		canvas:     NewCanvas(width, height),
		running:    true,
		theme:      Themes[0],
	}
	m.reset()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance takes up to speed steps and stops at the first failure.
func (m *Model) advance() {
	for i := 0; i < m.speed; i++ {
		next, err := m.integrator.Step(m.params, m.state, m.dt)
		if err == nil && !next.IsValid() {
			err = sim.ErrNonFiniteState
		}
		if err != nil {
			m.err = &sim.SimulationError{Step: m.steps, Time: m.t, State: m.state, Wrapped: err}
			m.running = false
			if i > 0 {
				m.record()
			}
			return
		}
		m.state = next
		m.t += m.dt
		m.steps++
	}

	m.record()
}

func (m *Model) record() {
	s := m.state
	m.trail1 = appendCapped(m.trail1, Point{s.X1, s.Y1}, trailCapacity)
	m.trail2 = appendCapped(m.trail2, Point{s.X2, s.Y2}, trailCapacity)

	if !m.frame.Contains(Point{s.X1, s.Y1}) || !m.frame.Contains(Point{s.X2, s.Y2}) {
		m.frame = FitFrame(0.5, m.trail1, m.trail2)
	}

	drift := 0.0
	if m.e0 != 0 {
		drift = (twobody.Energy(m.params, s) - m.e0) / math.Abs(m.e0)
	}
	m.energyHistory = append(m.energyHistory, drift)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// driftChart plots the drift history divided by a power of ten so the axis
// labels stay narrow enough for the stats panel.
func driftChart(history []float64) string {
	peak := 0.0
	for _, v := range history {
		peak = math.Max(peak, math.Abs(v))
	}
	exp := 0
	if peak > 0 {
		exp = int(math.Floor(math.Log10(peak)))
	}
	scale := math.Pow(10, float64(exp))

	scaled := make([]float64, len(history))
	for i, v := range history {
		scaled[i] = v / scale
	}
	chart := asciigraph.Plot(scaled, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Precision(2))
	return fmt.Sprintf("Energy drift (x1e%d)\n%s", exp, chart)
}

func appendCapped(pts []Point, p Point, capacity int) []Point {
	pts = append(pts, p)
	if len(pts) > capacity {
		pts = pts[1:]
	}
	return pts
}

// reset restores the initial state and clears any error.
func (m *Model) reset() {
	m.state = m.initial
	m.t = 0
	m.steps = 0
	m.err = nil
	m.running = true
	m.trail1 = m.trail1[:0]
	m.trail2 = m.trail2[:0]
	m.energyHistory = m.energyHistory[:0]
	m.e0 = twobody.Energy(m.params, m.initial)

	view := []Point{{m.initial.X1, m.initial.Y1}, {m.initial.X2, m.initial.Y2}}
	if el, err := analysis.OrbitalElements(m.params, m.initial); err == nil && el.Bound() {
		// leave room for the far end of the orbit around the centre of mass
		cx, cy := twobody.CenterOfMass(m.params, m.initial)
		reach := el.Apoapsis()
		view = append(view, Point{cx - reach, cy - reach}, Point{cx + reach, cy + reach})
	}
	m.frame = FitFrame(0.2, view)
}

func (m Model) Time() float64        { return m.t }
func (m Model) Steps() int           { return m.steps }
func (m Model) State() twobody.State { return m.state }
func (m Model) Running() bool        { return m.running }
func (m Model) Speed() int           { return m.speed }
func (m Model) Err() error           { return m.err }

// draw renders trails and both bodies onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	m.frame.DrawPath(m.canvas, m.trail1)
	m.frame.DrawPath(m.canvas, m.trail2)

	x1, y1 := m.frame.Project(m.canvas, Point{m.state.X1, m.state.Y1})
	x2, y2 := m.frame.Project(m.canvas, Point{m.state.X2, m.state.Y2})
	m.canvas.DrawDisc(x1, y1, bodyRadius(m.params.M1, m.params))
	m.canvas.DrawDisc(x2, y2, bodyRadius(m.params.M2, m.params))
}

func bodyRadius(mass float64, p twobody.Params) int {
	heavier := math.Max(p.M1, p.M2)
	return 1 + int(math.Round(2*mass/heavier))
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	var s strings.Builder
	s.WriteString(title.Render(strings.ToUpper(m.name)) + "\n")

	status := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Success).Render("RUNNING")
	switch {
	case m.err != nil:
		status = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Error).Render("STOPPED")
	case !m.running:
		status = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Warning).Render("PAUSED")
	}
	s.WriteString(fmt.Sprintf("%s  x%d\n\n", status, m.speed))

	if len(m.energyHistory) > 1 {
		s.WriteString(graphStyle.Foreground(m.theme.Primary).Render(driftChart(m.energyHistory)) + "\n\n")
	}

	line := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	line("Time", fmt.Sprintf("%.3f", m.t))
	line("Steps", fmt.Sprintf("%d", m.steps))
	line("Separation", fmt.Sprintf("%.5f", m.state.Separation()))
	line("Energy", fmt.Sprintf("%+.8f", twobody.Energy(m.params, m.state)))
	if el, err := analysis.OrbitalElements(m.params, m.state); err == nil {
		line("a", fmt.Sprintf("%.5f", el.SemiMajorAxis))
		line("e", fmt.Sprintf("%.5f", el.Eccentricity))
		if el.Bound() {
			line("Orbit", ProgressBar(math.Mod(m.t, el.Period)/el.Period, 16))
		}
	}

	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Body1).Render("●") + fmt.Sprintf(" body 1  m=%g\n", m.params.M1))
	s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Body2).Render("●") + fmt.Sprintf(" body 2  m=%g\n", m.params.M2))

	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Error).Width(38).Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Foreground(m.theme.Muted).Render("SP:Pause R:Reset Q:Quit\n+/-:Speed T:Theme ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════╗
║        KEYBOARD SHORTCUTS        ║
╠══════════════════════════════════╣
║  Space  - Pause/Resume           ║
║  R      - Reset to initial state ║
║  + / -  - Double/halve speed     ║
║  T      - Cycle themes           ║
║  Q      - Quit                   ║
║  ?      - Toggle this help       ║
╚══════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live view in the terminal.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
