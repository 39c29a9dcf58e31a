package task

import (
	"fmt"
	"regexp"
	"strings"
)

// ID is a dotted-pair task identifier like "1.2". Ids are assigned by the
// document author and are immutable; document order, not id order, decides
// which task comes first.
type ID string

var (
	idRe     = regexp.MustCompile(`^\d+\.\d+$`)
	idScanRe = regexp.MustCompile(`\d+\.\d+`)
)

// ParseID validates a dotted-pair task id.
func ParseID(value string) (ID, error) {
	trimmed := strings.TrimSpace(value)
	if !idRe.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, value)
	}
	return ID(trimmed), nil
}

// ExtractIDs returns every dotted-pair id found in value, in order of
// appearance, deduplicated. Free text around the ids is ignored, so
// "1.1, 1.2" and "depends on task 1.1 and 1.2" both yield the same ids.
func ExtractIDs(value string) []ID {
	matches := idScanRe.FindAllString(value, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[ID]bool, len(matches))
	ids := make([]ID, 0, len(matches))
	for _, match := range matches {
		id := ID(match)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
