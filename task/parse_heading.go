package task

import (
	"regexp"
	"strings"
)

var (
	// headingTaskRe matches "#### Task 1.2: Title" at any heading level.
	headingTaskRe = regexp.MustCompile(`^#{1,6}\s+Task\s+(\d+\.\d+):\s*(.*)$`)

	// headingFieldRe matches a field line like "**Status**: in_progress".
	// The bold around the label is optional.
	headingFieldRe = regexp.MustCompile(`(?i)^\s*\*{0,2}(status|description|files|criteria|dependencies)\*{0,2}:\s*(.*)$`)
)

// parseHeadingTask parses a heading-style task starting at lines[i]:
//
//	#### Task 1.2: Implement the parser
//	**Status**: in_progress
//	**Description**: One internal representation, two front-ends.
//	**Dependencies**: 1.1
//
// It returns the parsed task, the index of the first unconsumed line, and
// whether lines[i] started a heading task at all. Field lines are consumed
// until the next task or heading. A task with no status line is incomplete;
// the updater inserts one directly after the heading when it first writes a
// status.
func parseHeadingTask(lines []string, i int) (Task, int, bool) {
	m := headingTaskRe.FindStringSubmatch(lineBody(lines, i))
	if m == nil {
		return Task{}, i, false
	}

	task := Task{
		ID:         ID(m[1]),
		Title:      strings.TrimSpace(m[2]),
		Status:     StatusIncomplete,
		format:     formatHeading,
		line:       i,
		statusLine: -1,
	}

	j := i + 1
	for j < len(lines) {
		body := lineBody(lines, j)
		if startsTask(body) || isHeading(body) {
			break
		}
		if fm := headingFieldRe.FindStringSubmatch(body); fm != nil {
			applyField(&task, strings.ToLower(fm[1]), fm[2], j)
		}
		j++
	}

	return task, j, true
}
