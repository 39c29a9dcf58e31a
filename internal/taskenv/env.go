// Package taskenv resolves the environment overrides shared by every
// ep command. Flags beat environment variables, which beat config.
package taskenv

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment variables recognized by ep commands.
const (
	TasksEnvVar          = "EP_TASKS"
	TypecheckEnvVar      = "EP_TYPECHECK_CMD"
	LintEnvVar           = "EP_LINT_CMD"
	TestEnvVar           = "EP_TEST_CMD"
	SkipTypecheckEnvVar  = "EP_SKIP_TYPECHECK"
	SkipLintEnvVar       = "EP_SKIP_LINT"
	SkipTestsEnvVar      = "EP_SKIP_TESTS"
	MaxIterationsEnvVar  = "EP_MAX_ITERATIONS"
	DryRunEnvVar         = "EP_DRY_RUN"
	SkipValidationEnvVar = "EP_SKIP_VALIDATION"
	ContextFilesEnvVar   = "EP_CONTEXT_FILES"
	AgentEnvVar          = "EP_AGENT"
)

// String returns the trimmed value of an override variable. A set but
// blank variable counts as absent.
func String(name string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return "", false
	}
	return value, true
}

// Bool reports whether an override variable holds a truthy value.
// Accepted spellings are true, 1, and yes, case-insensitively.
func Bool(name string) bool {
	value, ok := String(name)
	if !ok {
		return false
	}
	return strings.EqualFold(value, "true") || value == "1" || strings.EqualFold(value, "yes")
}

// Int parses an integer override. Unset or malformed values count as
// absent so a typo falls back to config rather than failing the command.
func Int(name string) (int, bool) {
	value, ok := String(name)
	if !ok {
		return 0, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// List splits an override on the OS path-list separator. Glob brace
// alternates keep their commas that way.
func List(name string) ([]string, bool) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return nil, false
	}

	var items []string
	for _, item := range filepath.SplitList(value) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}
