package validation

import (
	"os"
	"path/filepath"
	"strings"
)

// makeDetector is the fallback for projects that expose their checks as make
// targets. It scans the Makefile for top-level rules named typecheck, lint,
// and test.
type makeDetector struct{}

func (makeDetector) Name() string { return "make" }

func (makeDetector) Detect(dir string) (Commands, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "Makefile"))
	if err != nil {
		return Commands{}, false
	}

	targets := makeTargets(string(data))
	var cmds Commands
	if targets["typecheck"] {
		cmds.Typecheck = "make typecheck"
	}
	if targets["lint"] {
		cmds.Lint = "make lint"
	}
	if targets["test"] {
		cmds.Test = "make test"
	}
	return cmds, true
}

// makeTargets returns the names of top-level rule targets. Recipe lines are
// indented with a tab, so any line starting with whitespace is skipped, as
// are comments and variable assignments.
func makeTargets(content string) map[string]bool {
	targets := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
			continue
		}
		name, rest, ok := strings.Cut(line, ":")
		if !ok || strings.HasPrefix(rest, "=") {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, " \t$%") {
			continue
		}
		targets[name] = true
	}
	return targets
}
