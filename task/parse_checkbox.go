package task

import (
	"regexp"
	"strings"
)

var (
	// checkboxTaskRe matches "- [x] **Task 1.2**: Title". The bullet may be
	// "-" or "*" and the bold around the task label is optional.
	checkboxTaskRe = regexp.MustCompile(`^\s*[-*]\s+\[(.)\]\s+\*{0,2}Task\s+(\d+\.\d+)\*{0,2}:\s*(.*)$`)

	// checkboxFieldRe matches a labeled sub-bullet like "- Files: a.go".
	// Status has no field line in this convention; it lives in the marker.
	checkboxFieldRe = regexp.MustCompile(`(?i)^\s*[-*]\s+\*{0,2}(description|files|criteria|dependencies)\*{0,2}:\s*(.*)$`)
)

// parseCheckboxTask parses a checkbox-style task starting at lines[i]:
//
//	- [ ] **Task 1.2**: Implement the parser
//	  - Description: One internal representation, two front-ends.
//	  - Files: task/parse_checkbox.go, task/parse_heading.go
//	  - Criteria: both conventions parse; malformed lines pass through
//	  - Dependencies: 1.1
//
// It returns the parsed task, the index of the first unconsumed line, and
// whether lines[i] started a checkbox task at all. Field lines are consumed
// until the next task or heading; unrecognized lines in between are left
// alone. An unknown status marker degrades to incomplete.
func parseCheckboxTask(lines []string, i int) (Task, int, bool) {
	m := checkboxTaskRe.FindStringSubmatch(lineBody(lines, i))
	if m == nil {
		return Task{}, i, false
	}

	status, ok := statusForMarker(m[1][0])
	if !ok {
		status = StatusIncomplete
	}

	task := Task{
		ID:         ID(m[2]),
		Title:      strings.TrimSpace(m[3]),
		Status:     status,
		format:     formatCheckbox,
		line:       i,
		statusLine: -1,
	}

	j := i + 1
	for j < len(lines) {
		body := lineBody(lines, j)
		if startsTask(body) || isHeading(body) {
			break
		}
		if fm := checkboxFieldRe.FindStringSubmatch(body); fm != nil {
			applyField(&task, strings.ToLower(fm[1]), fm[2], j)
		}
		j++
	}

	return task, j, true
}
