package gate

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrFileNotFound is returned when a criteria file does not exist.
var ErrFileNotFound = errors.New("file not found")

// criteriaItemRe matches a markdown checkbox list item and captures the
// checkbox marker and the item text.
var criteriaItemRe = regexp.MustCompile(`^\s*[-*]\s+\[(.)\]\s+(.*)$`)

// CriteriaReport summarizes checkbox completion in a markdown file.
type CriteriaReport struct {
	Path           string   `json:"path"`
	Checked        int      `json:"checked"`
	Unchecked      int      `json:"unchecked"`
	UncheckedItems []string `json:"unchecked_items,omitempty"`
}

// Passed reports whether no checkbox remains unchecked. A file with no
// checkboxes passes vacuously.
func (r *CriteriaReport) Passed() bool {
	return r.Unchecked == 0
}

// Total returns the number of checkboxes found.
func (r *CriteriaReport) Total() int {
	return r.Checked + r.Unchecked
}

// CheckCriteria scans a markdown file for checkbox list items and
// reports which remain unchecked. Any marker other than x counts as
// unchecked, so partially-done markers fail the check too.
func CheckCriteria(path string) (*CriteriaReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read criteria file: %w", err)
	}

	report := &CriteriaReport{Path: path}
	for _, line := range strings.Split(string(data), "\n") {
		match := criteriaItemRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if strings.EqualFold(match[1], "x") {
			report.Checked++
			continue
		}
		report.Unchecked++
		report.UncheckedItems = append(report.UncheckedItems, strings.TrimSpace(match[2]))
	}
	return report, nil
}
