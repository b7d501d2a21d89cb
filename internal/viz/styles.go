package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	summaryTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	metricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14)

	metricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	graphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("49"))
)

// SummaryRow is one label/value line of the run summary.
type SummaryRow struct {
	Label string
	Value string
}

// Summary renders a titled block of label/value rows.
func Summary(title string, rows []SummaryRow) string {
	var b strings.Builder
	b.WriteString(summaryTitle.Render(title))
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(metricLabel.Render(r.Label))
		b.WriteString(metricValue.Render(r.Value))
		b.WriteByte('\n')
	}
	return b.String()
}

// EnergyPlot draws the E(t)/E(0) history. It returns "" when there are
// fewer than two samples.
func EnergyPlot(history []float64, width int) string {
	if len(history) < 2 {
		return ""
	}
	if width > 80 || width < 1 {
		width = 80
	}
	graph := asciigraph.Plot(history,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Precision(6),
		asciigraph.Caption("field energy E(t)/E(0)"),
	)
	return graphStyle.Render(graph) + "\n"
}

// EnergySummary combines the drift figures and the plot.
func EnergySummary(history []float64, maxDrift float64, width int) string {
	rows := []SummaryRow{
		{"samples", fmt.Sprintf("%d", len(history))},
		{"max drift", fmt.Sprintf("%.3e", maxDrift)},
	}
	if n := len(history); n > 0 {
		rows = append(rows, SummaryRow{"final ratio", fmt.Sprintf("%.6f", history[n-1])})
	}
	return Summary("energy", rows) + EnergyPlot(history, width)
}
