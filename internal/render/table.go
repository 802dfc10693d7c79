// Package render formats analytical result sets as fixed-width text
// tables for the console.
package render

import "strings"

// FormatResults renders headers and rows as an aligned table with a
// +---+ border. Every column is padded to its widest value. An empty
// result set renders a fixed message instead of an empty table.
func FormatResults(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return "No data found for this query."
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	separator := "+-" + strings.Join(dashes, "-+-") + "-+"

	var b strings.Builder
	b.WriteString(separator)
	b.WriteByte('\n')
	b.WriteString(formatRow(headers, widths))
	b.WriteByte('\n')
	b.WriteString(separator)
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(formatRow(row, widths))
		b.WriteByte('\n')
	}
	b.WriteString(separator)
	return b.String()
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = cell + strings.Repeat(" ", w-len(cell))
	}
	return "| " + strings.Join(padded, " | ") + " |"
}
