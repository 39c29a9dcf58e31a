// Package opencode invokes the opencode agent as a subprocess.
//
// The loop hands it a rendered prompt; the agent's output streams to the
// caller's writers. A nonzero agent exit surfaces as *InvocationError so
// callers can tell "the agent ran and failed" from "the agent could not
// be started".
package opencode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultCommand is the agent binary invoked when RunOptions.Command is
// empty.
const DefaultCommand = "opencode"

// RunOptions configures one agent invocation.
type RunOptions struct {
	// Command is the agent binary. Defaults to DefaultCommand.
	Command string

	// Dir is the working directory for the agent.
	Dir string

	// Prompt is passed as the argument to `<command> run`.
	Prompt string

	// Interactive attaches the agent to a pseudo-terminal so it renders
	// as if invoked directly.
	Interactive bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env defaults to the current environment. PWD is rewritten to Dir
	// either way.
	Env []string
}

// InvocationError reports an agent run that completed with a nonzero
// exit.
type InvocationError struct {
	Command  string
	ExitCode int
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s failed with exit code %d", e.Command, e.ExitCode)
}

// Run executes the agent with the prompt and waits for it to finish.
func Run(opts RunOptions) error {
	command := opts.Command
	if command == "" {
		command = DefaultCommand
	}

	cmd := exec.Command(command, "run", opts.Prompt)
	cmd.Dir = opts.Dir

	cmd.Env = opts.Env
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	if cmd.Dir != "" {
		cmd.Env = replaceEnvVar(cmd.Env, "PWD", cmd.Dir)
	}

	if opts.Interactive {
		return runInteractive(cmd)
	}

	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Stdin = opts.Stdin

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", command, err)
	}
	return waitExit(cmd)
}

// waitExit waits for the agent and converts a nonzero exit into an
// *InvocationError. Any other wait failure is returned as-is.
func waitExit(cmd *exec.Cmd) error {
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &InvocationError{Command: cmd.Path, ExitCode: exitErr.ExitCode()}
		}
		return err
	}
	return nil
}

func replaceEnvVar(env []string, key, value string) []string {
	prefix := key + "="
	updated := make([]string, 0, len(env)+1)
	for _, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			continue
		}
		updated = append(updated, entry)
	}
	updated = append(updated, prefix+value)
	return updated
}
