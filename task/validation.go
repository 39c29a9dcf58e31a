package task

import (
	"errors"
	"strings"

	internalstrings "github.com/andrueandersoncs/opencode-engineering-process/internal/strings"
	"github.com/andrueandersoncs/opencode-engineering-process/internal/validation"
)

var (
	// ErrDocumentNotFound is returned when the task document doesn't exist.
	ErrDocumentNotFound = errors.New("task document not found")

	// ErrTaskNotFound is returned when no task with the given id exists.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidID is returned when a task id is not a dotted pair.
	ErrInvalidID = errors.New("invalid task id")
)

// ParseStatus normalizes user input into a Status. Case, surrounding
// whitespace, and hyphen/space spellings of in_progress are tolerated.
func ParseStatus(value string) (Status, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	status := Status(normalized)
	if !status.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidStatus, Status(value), ValidStatuses())
	}
	return status, nil
}
