package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	// Subtle muted text
	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	// Header with decorative line
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	StatusOK = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))
)

// ProgressBar renders a bar filled to percent (0..1).
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Row is one line of a summary table.
type Row struct {
	Name    string
	OK      bool
	Detail  string
	Metrics map[string]float64
}

// SummaryTable lays rows out with one column per metric name, sorted.
func SummaryTable(title string, rows []Row) string {
	keys := make([]string, 0)
	seen := make(map[string]bool)
	for _, r := range rows {
		for k := range r.Metrics {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	nameWidth := len("run")
	for _, r := range rows {
		nameWidth = max(nameWidth, len(r.Name))
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title) + "\n")

	header := fmt.Sprintf("%-*s  %-6s", nameWidth, "run", "status")
	for _, k := range keys {
		header += fmt.Sprintf("  %14s", k)
	}
	b.WriteString(MetricLabel.Render(header) + "\n")

	for _, r := range rows {
		status := StatusOK.Render(fmt.Sprintf("%-6s", "ok"))
		if !r.OK {
			status = StatusFailed.Render(fmt.Sprintf("%-6s", "failed"))
		}
		line := fmt.Sprintf("%-*s  ", nameWidth, r.Name) + status
		for _, k := range keys {
			v, ok := r.Metrics[k]
			if !ok {
				line += fmt.Sprintf("  %14s", "-")
				continue
			}
			line += MetricValue.Render(fmt.Sprintf("  %14.6g", v))
		}
		if r.Detail != "" {
			line += "  " + Subtle.Render(r.Detail)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
