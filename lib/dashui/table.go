// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// column describes one table column: a header and a fixed width.
type column struct {
	header string
	width  int
}

// renderTable renders a header row plus data rows, truncating each
// cell to its column width. selected marks the highlighted row (-1 for
// none); the window of rows is chosen so the selected row stays
// visible within maxRows.
func renderTable(theme Theme, columns []column, rows [][]string, selected, maxRows int) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	normalStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var builder strings.Builder
	headerCells := make([]string, len(columns))
	for i, col := range columns {
		headerCells[i] = pad(col.header, col.width)
	}
	builder.WriteString(headerStyle.Render(strings.Join(headerCells, "  ")))
	builder.WriteByte('\n')

	start := 0
	if maxRows > 0 && len(rows) > maxRows {
		if selected >= maxRows {
			start = selected - maxRows + 1
		}
		if start > len(rows)-maxRows {
			start = len(rows) - maxRows
		}
	}
	end := len(rows)
	if maxRows > 0 && end > start+maxRows {
		end = start + maxRows
	}

	for rowIndex := start; rowIndex < end; rowIndex++ {
		cells := make([]string, len(columns))
		for i, col := range columns {
			value := ""
			if i < len(rows[rowIndex]) {
				value = rows[rowIndex][i]
			}
			cells[i] = pad(value, col.width)
		}
		line := strings.Join(cells, "  ")
		if rowIndex == selected {
			builder.WriteString(selectedStyle.Render(line))
		} else {
			builder.WriteString(normalStyle.Render(line))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// pad truncates or right-pads a cell to the given display width,
// ANSI- and wide-rune-aware.
func pad(value string, width int) string {
	truncated := ansi.Truncate(value, width, "…")
	gap := width - ansi.StringWidth(truncated)
	if gap <= 0 {
		return truncated
	}
	return truncated + strings.Repeat(" ", gap)
}
