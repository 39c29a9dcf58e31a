package task

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var progressLineRe = regexp.MustCompile(`(?i)^(\s*\*{0,2}progress\*{0,2}:\s*)(\d+)\s*/\s*(\d+)(.*)$`)

// refreshProgress recomputes any denormalized progress summary the
// document carries: an inline "**Progress**: N/M" line, or a markdown
// table whose header names status counts (Total, Complete, Remaining,
// In Progress, Incomplete, Blocked). The summary is a derived view; the
// tasks themselves stay authoritative, and documents without a summary are
// left alone.
func (d *Document) refreshProgress() {
	counts := d.statusCounts()

	for i := range d.lines {
		content := d.lineContent(i)
		if m := progressLineRe.FindStringSubmatch(content); m != nil {
			updated := fmt.Sprintf("%s%d/%d%s", m[1], counts["complete"], counts["total"], m[4])
			d.lines[i] = updated + d.lineTerminator(i)
			continue
		}
		d.refreshProgressTable(i, counts)
	}
}

func (d *Document) statusCounts() map[string]int {
	counts := map[string]int{
		"total":       len(d.tasks),
		"complete":    0,
		"incomplete":  0,
		"in progress": 0,
		"in_progress": 0,
		"blocked":     0,
	}
	for i := range d.tasks {
		switch d.tasks[i].Status {
		case StatusComplete:
			counts["complete"]++
		case StatusInProgress:
			counts["in progress"]++
			counts["in_progress"]++
		case StatusBlocked:
			counts["blocked"]++
		default:
			counts["incomplete"]++
		}
	}
	counts["remaining"] = counts["total"] - counts["complete"]
	return counts
}

// refreshProgressTable rewrites the data row of a progress table whose
// header row sits at line i. A progress table is a header, a separator,
// and one data row, where the header includes both Total and Complete.
// Only cells under a recognized header are rewritten; each keeps its
// original width so the table stays aligned.
func (d *Document) refreshProgressTable(i int, counts map[string]int) {
	if i+2 >= len(d.lines) {
		return
	}

	header := tableCells(d.lineContent(i))
	if header == nil || !cellsContainFold(header, "total") || !cellsContainFold(header, "complete") {
		return
	}
	if !isTableSeparator(d.lineContent(i + 1)) {
		return
	}
	if tableCells(d.lineContent(i+2)) == nil {
		return
	}

	updates := make(map[int]string)
	for col, name := range header {
		count, ok := counts[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		updates[col] = strconv.Itoa(count)
	}
	if len(updates) == 0 {
		return
	}

	d.lines[i+2] = renderDataRow(d.lineContent(i+2), updates) + d.lineTerminator(i+2)
}

// tableCells splits a markdown table row into trimmed cell values, or nil
// when the line isn't a table row.
func tableCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return nil
	}
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")

	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

func cellsContainFold(cells []string, want string) bool {
	for _, cell := range cells {
		if strings.EqualFold(cell, want) {
			return true
		}
	}
	return false
}

func isTableSeparator(line string) bool {
	cells := tableCells(line)
	if cells == nil {
		return false
	}
	for _, cell := range cells {
		if !strings.Contains(cell, "-") || strings.Trim(cell, ":-") != "" {
			return false
		}
	}
	return true
}

// renderDataRow rewrites the chosen cells of a raw table row, padding each
// rewritten cell to its previous width. A cell whose new value no longer
// fits grows by the minimum amount.
func renderDataRow(content string, updates map[int]string) string {
	pipe := strings.Index(content, "|")
	leading := content[:pipe]

	body := strings.TrimSpace(content)
	body = strings.TrimPrefix(body, "|")
	hadTrailingPipe := strings.HasSuffix(body, "|")
	body = strings.TrimSuffix(body, "|")

	parts := strings.Split(body, "|")
	for col, value := range updates {
		if col >= len(parts) {
			continue
		}
		parts[col] = padCell(value, len(parts[col]))
	}

	row := leading + "|" + strings.Join(parts, "|")
	if hadTrailingPipe {
		row += "|"
	}
	return row
}

func padCell(value string, width int) string {
	cell := " " + value + " "
	for len(cell) < width {
		cell += " "
	}
	return cell
}
