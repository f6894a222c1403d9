package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/beetlebugorg/geoingest/pkg/geoingest"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	dimFg     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	borderCol = lipgloss.Color("#243141")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(dimFg).Width(14)
	valueStyle = lipgloss.NewStyle().Align(lipgloss.Right).Width(10)
)

func statRow(label string, value any) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(label),
		valueStyle.Render(fmt.Sprint(value)))
}

// printStats writes a boxed summary of a dataset.
func printStats(w io.Writer, dir string, s geoingest.Stats) error {
	rows := []string{titleStyle.Render("Dataset " + dir), ""}

	totalWays := 0
	for _, class := range geoingest.Classes {
		n := s.Ways[class]
		totalWays += n
		if n > 0 {
			rows = append(rows, statRow(class.String(), n))
		}
	}
	rows = append(rows,
		statRow("Ways", totalWays),
		statRow("Way points", s.WayPoints),
		"",
		statRow("Regions", s.Regions),
		statRow("Polygons", s.Polygons),
		statRow("Boundaries", s.Boundaries),
		statRow("Settlements", s.Settlements),
	)
	if !s.Empty() {
		rows = append(rows, "",
			statRow("Min", fmt.Sprintf("%.1f, %.1f", s.Bound.Min[0], s.Bound.Min[1])),
			statRow("Max", fmt.Sprintf("%.1f, %.1f", s.Bound.Max[0], s.Bound.Max[1])),
		)
	}

	_, err := fmt.Fprintln(w, boxStyle.Render(strings.Join(rows, "\n")))
	return err
}
