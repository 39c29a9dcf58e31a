// Package validation detects and runs a host project's typecheck, lint,
// and test commands as a pass/fail gate.
//
// Detection is convention-based: each ecosystem (node, go, rust, python,
// make) has a Detector that inspects marker files and proposes commands.
// A manifest-declared script beats a language-convention default; a check
// with neither is skipped with a reason. Every applicable check runs to
// completion, so a single report shows every failure rather than the
// first.
package validation

// Check identifies one of the three project checks.
type Check string

const (
	// CheckTypecheck is the static type check.
	CheckTypecheck Check = "typecheck"

	// CheckLint is the style/lint check.
	CheckLint Check = "lint"

	// CheckTest is the test suite. Quick mode skips it.
	CheckTest Check = "test"
)

// Checks returns all checks in execution order.
func Checks() []Check {
	return []Check{CheckTypecheck, CheckLint, CheckTest}
}

// CheckStatus is the outcome of a single check.
type CheckStatus string

const (
	// StatusPass indicates the check ran and exited zero.
	StatusPass CheckStatus = "pass"

	// StatusFail indicates the check ran and exited non-zero.
	StatusFail CheckStatus = "fail"

	// StatusSkipped indicates the check never ran; Reason says why.
	// A check disabled by configuration and a check that was never
	// detected are both skipped, with different reasons.
	StatusSkipped CheckStatus = "skipped"
)

// Commands holds the detected command for each check. An empty string
// means the ecosystem has no convention for that check.
type Commands struct {
	Typecheck string
	Lint      string
	Test      string
}

// For returns the command for a check.
func (c Commands) For(check Check) string {
	switch check {
	case CheckTypecheck:
		return c.Typecheck
	case CheckLint:
		return c.Lint
	case CheckTest:
		return c.Test
	default:
		return ""
	}
}

// CheckResult reports the outcome of one check.
type CheckResult struct {
	Check    Check       `json:"check"`
	Status   CheckStatus `json:"status"`
	Command  string      `json:"command,omitempty"`
	Reason   string      `json:"reason,omitempty"`
	ExitCode int         `json:"exit_code"`
}

// Report aggregates the outcomes of a validation run.
type Report struct {
	Ecosystem string        `json:"ecosystem,omitempty"`
	Checks    []CheckResult `json:"checks"`
}

// Passed reports whether no check failed. Skipped checks never fail the
// run.
func (r *Report) Passed() bool {
	for _, check := range r.Checks {
		if check.Status == StatusFail {
			return false
		}
	}
	return true
}

// Failed returns the checks that failed.
func (r *Report) Failed() []CheckResult {
	var failed []CheckResult
	for _, check := range r.Checks {
		if check.Status == StatusFail {
			failed = append(failed, check)
		}
	}
	return failed
}
