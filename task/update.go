package task

import "fmt"

// SetStatus rewrites the status of the task with the given id, leaving
// every other byte of the document unchanged. Checkbox tasks have their
// marker character replaced in place; heading tasks have their status
// field line rewritten, or inserted directly after the heading when the
// task has none yet. Re-applying the current status is a no-op that still
// succeeds.
func (d *Document) SetStatus(id ID, status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	t, ok := d.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if t.Status == status {
		return nil
	}

	switch t.format {
	case formatCheckbox:
		d.setCheckboxStatus(t, status)
	case formatHeading:
		d.setHeadingStatus(t, status)
	}

	// Line indexes may have shifted; re-derive the task list from the
	// mutated lines instead of patching offsets by hand.
	d.scan()
	d.refreshProgress()
	return nil
}

func (d *Document) setCheckboxStatus(t *Task, status Status) {
	content := d.lineContent(t.line)
	loc := checkboxTaskRe.FindStringSubmatchIndex(content)
	if loc == nil {
		return
	}
	updated := content[:loc[2]] + string(status.Marker()) + content[loc[3]:]
	d.lines[t.line] = updated + d.lineTerminator(t.line)
}

func (d *Document) setHeadingStatus(t *Task, status Status) {
	if t.statusLine >= 0 {
		d.lines[t.statusLine] = statusFieldLine(status) + d.lineTerminator(t.statusLine)
		return
	}

	eol := d.lineTerminator(t.line)
	newLine := statusFieldLine(status)
	if eol == "" {
		// The heading is an unterminated final line; terminate it so the
		// status line can follow. The file keeps its missing trailing
		// newline, now on the status line.
		d.lines[t.line] += "\n"
	} else {
		newLine += eol
	}

	insertAt := t.line + 1
	d.lines = append(d.lines, "")
	copy(d.lines[insertAt+1:], d.lines[insertAt:])
	d.lines[insertAt] = newLine
}

func statusFieldLine(status Status) string {
	return "**Status**: " + string(status)
}
