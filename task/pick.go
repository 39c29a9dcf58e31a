package task

// Next returns the task to work on: the in-progress task when one exists
// (resuming interrupted work takes priority over starting new work),
// otherwise the first incomplete task in document order whose dependencies
// are all complete. The second return is false when no task is actionable.
//
// When a document holds more than one in-progress task, the first in
// document order wins; the document is human-edited, so the picker stays
// deterministic rather than rejecting the state.
func (d *Document) Next() (*Task, bool) {
	for i := range d.tasks {
		if d.tasks[i].Status == StatusInProgress {
			return &d.tasks[i], true
		}
	}

	completed := d.completedIDs()
	for i := range d.tasks {
		t := &d.tasks[i]
		if t.Status != StatusIncomplete {
			continue
		}
		if t.DependenciesMet(completed) {
			return t, true
		}
	}

	return nil, false
}

// Remaining counts the tasks not yet complete, whatever their status.
func (d *Document) Remaining() int {
	count := 0
	for i := range d.tasks {
		if d.tasks[i].Status != StatusComplete {
			count++
		}
	}
	return count
}

// completedIDs returns the set of complete task ids. A dependency on an id
// absent from the document is never satisfied.
func (d *Document) completedIDs() map[ID]bool {
	completed := make(map[ID]bool)
	for i := range d.tasks {
		if d.tasks[i].Status == StatusComplete {
			completed[d.tasks[i].ID] = true
		}
	}
	return completed
}
