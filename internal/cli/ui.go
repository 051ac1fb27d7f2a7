package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	styleTotal  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleError  = lipgloss.NewStyle().Foreground(colorRed)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
)

var resultHeaders = []string{"Tree", "Nodes", "Passes", "Measures", "Arranges", "Yields", "Faults", "Errors", "Elapsed"}

// renderResults formats per-tree statistics and a totals row.
func renderResults(results []treeResult) string {
	rows := make([][]string, 0, len(results)+1)
	var total treeResult
	for _, r := range results {
		rows = append(rows, resultRow(strconv.Itoa(r.Index), r))
		total.Nodes += r.Nodes
		total.Errors += r.Errors
		total.Elapsed = max(total.Elapsed, r.Elapsed)
		total.Stats.Passes += r.Stats.Passes
		total.Stats.Measures += r.Stats.Measures
		total.Stats.Arranges += r.Stats.Arranges
		total.Stats.Yields += r.Stats.Yields
		total.Stats.Faults += r.Stats.Faults
	}
	rows = append(rows, resultRow("total", total))
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers(resultHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row == last:
				return styleTotal
			case col == 7 && rows[row][col] != "0":
				return styleError
			case col > 0:
				return styleNumber
			}
			return lipgloss.NewStyle()
		})

	title := styleTitle.Render(fmt.Sprintf("%s: %d trees", appName, len(results)))
	return title + "\n" + t.Render()
}

func resultRow(label string, r treeResult) []string {
	return []string{
		label,
		strconv.Itoa(r.Nodes),
		strconv.Itoa(r.Stats.Passes),
		strconv.Itoa(r.Stats.Measures),
		strconv.Itoa(r.Stats.Arranges),
		strconv.Itoa(r.Stats.Yields),
		strconv.Itoa(r.Stats.Faults),
		strconv.Itoa(r.Errors),
		r.Elapsed.Round(time.Microsecond).String(),
	}
}
