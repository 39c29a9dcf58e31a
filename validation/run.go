package validation

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Options configures a validation run. The zero value runs every check in
// the current directory with the default detectors.
type Options struct {
	// Dir is the project directory to validate. Defaults to ".".
	Dir string

	// Quick skips the test check.
	Quick bool

	// Skip disables individual checks. A disabled check is reported as
	// skipped, distinct from one that was never detected.
	Skip map[Check]bool

	// Overrides supplies an explicit command per check, bypassing
	// detection for that check.
	Overrides map[Check]string

	Stdout io.Writer
	Stderr io.Writer

	// Detectors defaults to DefaultDetectors.
	Detectors []Detector

	// RunCommand executes a shell command and returns its exit code.
	// Defaults to running through /bin/bash.
	RunCommand func(dir, command string, stdout, stderr io.Writer) (int, error)
}

func (opts Options) normalized() Options {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Detectors == nil {
		opts.Detectors = DefaultDetectors()
	}
	if opts.RunCommand == nil {
		opts.RunCommand = runShellCommand
	}
	return opts
}

// Run executes every check and reports each one's outcome. A failing check
// never prevents the remaining checks from running; the caller inspects
// Report.Passed for the aggregate verdict.
func Run(opts Options) (*Report, error) {
	opts = opts.normalized()

	ecosystem, detected, found := Detect(opts.Dir, opts.Detectors)

	report := &Report{Ecosystem: ecosystem}
	for _, check := range Checks() {
		result, err := runCheck(opts, check, ecosystem, detected, found)
		if err != nil {
			return nil, err
		}
		report.Checks = append(report.Checks, result)
	}
	return report, nil
}

func runCheck(opts Options, check Check, ecosystem string, detected Commands, found bool) (CheckResult, error) {
	result := CheckResult{Check: check}

	if opts.Skip[check] {
		result.Status = StatusSkipped
		result.Reason = "disabled by configuration"
		return result, nil
	}
	if opts.Quick && check == CheckTest {
		result.Status = StatusSkipped
		result.Reason = "quick mode"
		return result, nil
	}

	command := opts.Overrides[check]
	if command == "" {
		command = detected.For(check)
	}
	if command == "" {
		result.Status = StatusSkipped
		if !found {
			result.Reason = "no ecosystem detected"
		} else {
			result.Reason = fmt.Sprintf("no %s command for %s", check, ecosystem)
		}
		return result, nil
	}

	result.Command = command
	code, err := opts.RunCommand(opts.Dir, command, opts.Stdout, opts.Stderr)
	if err != nil {
		return CheckResult{}, fmt.Errorf("running %s: %w", check, err)
	}
	result.ExitCode = code
	if code == 0 {
		result.Status = StatusPass
	} else {
		result.Status = StatusFail
	}
	return result, nil
}

// runShellCommand runs command through bash in dir and returns the exit
// code. Failure to start the shell at all is an error; a nonzero exit is
// not.
func runShellCommand(dir, command string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.Command("/bin/bash", "-lc", command)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, err
	}
	return 0, nil
}
