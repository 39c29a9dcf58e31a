// Package task reads and mutates markdown task-list documents.
//
// A task document is a human-editable markdown file in one of two
// conventions: checkbox-style ("- [ ] **Task 1.2**: Title" with labeled
// sub-bullets) or heading-style ("#### Task 1.2: Title" with "**Status**:"
// and other field lines). Both conventions parse into the same Task
// representation, so the picker and updater never branch on format.
//
// Documents are mutated by whole-file rewrite: load, edit the one status
// marker, atomic rename. Every byte outside the edited marker survives the
// round trip.
//
// The public API mirrors the CLI commands:
//   - Load, Parse, Update for document access
//   - Next, Remaining, Tasks for picking work
//   - SetStatus for status transitions
package task

// Status represents the state of a task.
type Status string

const (
	// StatusIncomplete indicates the task has not been started.
	StatusIncomplete Status = "incomplete"

	// StatusInProgress indicates the task is currently being worked on.
	// At most one task should be in progress at a time; the picker returns
	// it before considering any incomplete task.
	StatusInProgress Status = "in_progress"

	// StatusComplete indicates the task is finished.
	StatusComplete Status = "complete"

	// StatusBlocked indicates the task cannot proceed and needs attention.
	StatusBlocked Status = "blocked"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusIncomplete, StatusInProgress, StatusComplete, StatusBlocked}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Marker returns the checkbox character that encodes the status.
func (s Status) Marker() byte {
	switch s {
	case StatusInProgress:
		return '~'
	case StatusComplete:
		return 'x'
	case StatusBlocked:
		return '!'
	default:
		return ' '
	}
}

// statusForMarker maps a checkbox character to its status. Uppercase 'X' is
// accepted on parse; 'x' is always written.
func statusForMarker(c byte) (Status, bool) {
	switch c {
	case ' ':
		return StatusIncomplete, true
	case '~':
		return StatusInProgress, true
	case 'x', 'X':
		return StatusComplete, true
	case '!':
		return StatusBlocked, true
	default:
		return "", false
	}
}

// taskFormat identifies which markup convention a task was parsed from.
type taskFormat int

const (
	formatCheckbox taskFormat = iota
	formatHeading
)

// Task represents a single unit of work tracked in a task document.
type Task struct {
	// ID is the dotted-pair identifier, unique within the document.
	ID ID `json:"id"`

	// Title is the short summary of the task.
	Title string `json:"title"`

	// Status is the current state of the task.
	Status Status `json:"status"`

	// Description provides additional context about the task.
	Description string `json:"description,omitempty"`

	// Files lists the files the task is expected to touch.
	Files []string `json:"files,omitempty"`

	// Criteria lists the completion criteria for the task.
	Criteria []string `json:"criteria,omitempty"`

	// Dependencies lists the ids of tasks that must be complete before
	// this task is eligible.
	Dependencies []ID `json:"dependencies,omitempty"`

	format     taskFormat
	line       int // index of the task's title line in the document
	statusLine int // heading format: index of the Status line, -1 when absent
}

// DependenciesMet reports whether every dependency id is in the completed
// set. A task with no dependencies is always eligible. Completion is
// permissive: an id counts as satisfied whenever its task is marked
// complete, however that happened.
func (t *Task) DependenciesMet(completed map[ID]bool) bool {
	for _, dep := range t.Dependencies {
		if !completed[dep] {
			return false
		}
	}
	return true
}
