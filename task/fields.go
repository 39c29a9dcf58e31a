package task

import (
	"strings"

	internalstrings "github.com/andrueandersoncs/opencode-engineering-process/internal/strings"
)

// applyField records a labeled field value on the task. The first
// occurrence of each label wins, matching the first-id-wins rule for
// duplicate tasks.
func applyField(task *Task, label, value string, line int) {
	switch label {
	case "status":
		if task.statusLine < 0 {
			task.statusLine = line
			task.Status = parseStatusValue(value)
		}
	case "description":
		if task.Description == "" {
			task.Description = strings.TrimSpace(value)
		}
	case "files":
		if task.Files == nil {
			task.Files = splitField(value, ",")
		}
	case "criteria":
		if task.Criteria == nil {
			task.Criteria = splitField(value, ";")
		}
	case "dependencies":
		if task.Dependencies == nil {
			task.Dependencies = ExtractIDs(value)
		}
	}
}

// splitField splits a field value on sep, trimming whitespace and backticks
// from each element. The literal value "none" means the field is empty.
func splitField(value, sep string) []string {
	if internalstrings.NormalizeLowerTrimSpace(value) == "none" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, sep) {
		cleaned := strings.Trim(strings.TrimSpace(part), "`")
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

// parseStatusValue reads a heading-style status field value. Both the bare
// word ("in_progress") and a checkbox-marker prefix ("[~] in progress") are
// accepted. Unrecognized values degrade to incomplete rather than failing
// the parse.
func parseStatusValue(value string) Status {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) >= 3 && trimmed[0] == '[' && trimmed[2] == ']' {
		if status, ok := statusForMarker(trimmed[1]); ok {
			return status
		}
		trimmed = strings.TrimSpace(trimmed[3:])
	}
	if status, err := ParseStatus(trimmed); err == nil {
		return status
	}
	return StatusIncomplete
}
