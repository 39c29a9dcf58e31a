package task

import (
	"strings"

	internalstrings "github.com/andrueandersoncs/opencode-engineering-process/internal/strings"
)

// Document is a parsed task-list document. It keeps every raw line of the
// file, so rendering an unmodified document reproduces the input bytes
// exactly, whatever its newline convention.
type Document struct {
	lines []string // raw lines, each keeping its original terminator
	tasks []Task
}

// Parse parses a task document. Parsing is best-effort and line-oriented:
// lines that match neither convention pass through untouched, and a document
// with no recognizable tasks parses to an empty task list rather than an
// error.
func Parse(data []byte) *Document {
	doc := &Document{lines: splitLines(data)}
	doc.scan()
	return doc
}

// Bytes renders the document back to its file representation.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	for _, line := range d.lines {
		b.WriteString(line)
	}
	return []byte(b.String())
}

// Tasks returns all tasks in document order.
func (d *Document) Tasks() []Task {
	tasks := make([]Task, len(d.tasks))
	copy(tasks, d.tasks)
	return tasks
}

// Find returns the task with the given id.
func (d *Document) Find(id ID) (*Task, bool) {
	for i := range d.tasks {
		if d.tasks[i].ID == id {
			return &d.tasks[i], true
		}
	}
	return nil, false
}

// scan rebuilds the task list from the raw lines. Each line may start a
// task in either convention; the two front-ends consume their own field
// lines and report where the next scan should resume. The first occurrence
// of an id wins; later duplicates are ignored.
func (d *Document) scan() {
	d.tasks = nil
	seen := make(map[ID]bool)

	for i := 0; i < len(d.lines); {
		task, next, ok := parseCheckboxTask(d.lines, i)
		if !ok {
			task, next, ok = parseHeadingTask(d.lines, i)
		}
		if !ok {
			i++
			continue
		}

		if !seen[task.ID] {
			seen[task.ID] = true
			d.tasks = append(d.tasks, task)
		}
		i = next
	}
}

// lineContent returns the line at index i without its terminator.
func (d *Document) lineContent(i int) string {
	return internalstrings.TrimTrailingNewlines(d.lines[i])
}

// lineTerminator returns the terminator of the line at index i, which is
// empty for an unterminated final line.
func (d *Document) lineTerminator(i int) string {
	content := internalstrings.TrimTrailingNewlines(d.lines[i])
	return d.lines[i][len(content):]
}

// splitLines splits data into lines, each retaining its original
// terminator. Joining the result reproduces data exactly.
func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			lines = append(lines, string(data[start:i+1]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}

// lineBody returns the line at index i in lines without its terminator.
func lineBody(lines []string, i int) string {
	return internalstrings.TrimTrailingNewlines(lines[i])
}

// startsTask reports whether the line opens a task in either convention.
// Both front-ends stop consuming field lines here.
func startsTask(line string) bool {
	return checkboxTaskRe.MatchString(line) || headingTaskRe.MatchString(line)
}

// isHeading reports whether the line is any markdown heading. Headings end
// a task's field block even when they don't start a task, so a section
// header like "## Phase 2" never gets absorbed into the preceding task.
func isHeading(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}
