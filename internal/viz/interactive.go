package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Choice is one entry of the picker menu.
type Choice struct {
	Name        string
	Description string
	Model       Model
}

// Picker lists scenarios and opens the live view of the selected one. Esc
// in the live view returns to the list.
type Picker struct {
	choices []Choice
	cursor  int
	live    *Model
}

func NewPicker(choices []Choice) Picker {
	return Picker{choices: choices}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			p.live = nil
			return p, nil
		}
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.choices)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.choices) == 0 {
			return p, nil
		}
		live := p.choices[p.cursor].Model
		p.live = &live
		return p, live.Init()
	}
	return p, nil
}

// Selected is the name under the cursor, or "" when the menu is empty.
func (p Picker) Selected() string {
	if len(p.choices) == 0 {
		return ""
	}
	return p.choices[p.cursor].Name
}

// Live is the open live view, if any.
func (p Picker) Live() (Model, bool) {
	if p.live == nil {
		return Model{}, false
	}
	return *p.live, true
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View() + "\n" + dim.Render("esc: back to scenarios")
	}

	var b strings.Builder
	b.WriteString(cyan.Bold(true).Render("ORBITSIM") + "  " + dim.Render("two-body scenarios") + "\n\n")
	for i, c := range p.choices {
		cursor, name := "  ", dim.Render(fmt.Sprintf("%-12s", c.Name))
		if i == p.cursor {
			cursor, name = cyan.Render("> "), white.Bold(true).Render(fmt.Sprintf("%-12s", c.Name))
		}
		b.WriteString(cursor + name + " " + dim.Render(c.Description) + "\n")
	}
	b.WriteString("\n" + dim.Render("↑/↓ select  enter open  q quit"))
	return b.String()
}

// RunPicker starts the scenario picker in the terminal.
func RunPicker(p Picker) error {
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
