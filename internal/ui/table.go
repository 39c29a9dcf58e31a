// Package ui holds the small formatting helpers shared by the CLI's
// human-readable output: aligned tables and compact durations.
package ui

import (
	"strings"
	"unicode/utf8"
)

// FormatTable renders headers and rows as a left-aligned table with a
// two-space gutter. Cells keep any ANSI styling without it counting
// toward column width, and embedded line breaks and tabs collapse to
// spaces so a cell cannot break the row grid. The last column is never
// padded.
func FormatTable(headers []string, rows [][]string) string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, normalizeRow(headers))
	for _, row := range rows {
		table = append(table, normalizeRow(row))
	}

	widths := make([]int, len(table[0]))
	for _, row := range table {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var builder strings.Builder
	for _, row := range table {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			builder.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)+2))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

func normalizeRow(row []string) []string {
	normalized := make([]string, len(row))
	for i, cell := range row {
		normalized[i] = normalizeTableCell(cell)
	}
	return normalized
}

func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

func displayWidth(value string) int {
	return utf8.RuneCountInString(stripANSICodes(value))
}

func stripANSICodes(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
