package loop

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/andrueandersoncs/opencode-engineering-process/internal/ui"
	"github.com/andrueandersoncs/opencode-engineering-process/task"
	"github.com/andrueandersoncs/opencode-engineering-process/validation"
	"github.com/charmbracelet/lipgloss"
)

// Logger captures structured loop log entries.
type Logger interface {
	Iteration(IterationLog)
	Prompt(PromptLog)
	Validation(ValidationLog)
	Outcome(OutcomeLog)
	Summary(SummaryLog)
}

// IterationLog marks the start of an iteration.
type IterationLog struct {
	Number int
	Max    int
	Task   task.Task
}

// PromptLog captures the rendered agent prompt.
type PromptLog struct {
	Prompt string
	DryRun bool
}

// ValidationLog captures a validation report.
type ValidationLog struct {
	Report *validation.Report
}

// OutcomeLog captures how an iteration ended.
type OutcomeLog struct {
	Task      task.Task
	Completed bool
	Reason    string
}

// SummaryLog captures the final result of a run.
type SummaryLog struct {
	State      State
	Iterations int
	Completed  int
	Failed     int
	Remaining  int
	Elapsed    time.Duration
}

type noopLogger struct{}

func (noopLogger) Iteration(IterationLog)   {}
func (noopLogger) Prompt(PromptLog)         {}
func (noopLogger) Validation(ValidationLog) {}
func (noopLogger) Outcome(OutcomeLog)       {}
func (noopLogger) Summary(SummaryLog)       {}

// ConsoleLogger writes formatted log output.
type ConsoleLogger struct {
	writer      io.Writer
	headerStyle lipgloss.Style
	started     bool
}

// NewConsoleLogger builds a styled logger for interactive output.
func NewConsoleLogger(writer io.Writer) *ConsoleLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &ConsoleLogger{
		writer:      writer,
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
	}
}

// Iteration logs an iteration header.
func (logger *ConsoleLogger) Iteration(entry IterationLog) {
	if logger == nil {
		return
	}
	label := fmt.Sprintf("Iteration %d of %d: Task %s: %s", entry.Number, entry.Max, entry.Task.ID, entry.Task.Title)
	logger.writeBlock(logger.headerStyle.Render(label))
}

// Prompt logs the rendered agent prompt.
func (logger *ConsoleLogger) Prompt(entry PromptLog) {
	if logger == nil {
		return
	}
	label := "Prompt:"
	if entry.DryRun {
		label = "Dry run; would send prompt:"
	}
	logger.writeBlock(
		formatLogLabel(logger.headerStyle.Render(label), documentIndent),
		formatLogBody(entry.Prompt, subdocumentIndent, true),
	)
}

// Validation logs per-check validation results.
func (logger *ConsoleLogger) Validation(entry ValidationLog) {
	if logger == nil || entry.Report == nil {
		return
	}
	rows := make([][]string, 0, len(entry.Report.Checks))
	for _, check := range entry.Report.Checks {
		detail := check.Command
		if check.Reason != "" {
			detail = check.Reason
		}
		rows = append(rows, []string{string(check.Check), string(check.Status), detail})
	}
	logger.writeBlock(
		formatLogLabel(logger.headerStyle.Render("Validation:"), documentIndent),
		formatLogBody(ui.FormatTable([]string{"Check", "Status", "Detail"}, rows), subdocumentIndent, false),
	)
}

// Outcome logs how an iteration ended.
func (logger *ConsoleLogger) Outcome(entry OutcomeLog) {
	if logger == nil {
		return
	}
	if entry.Completed {
		logger.writeBlock(formatLogLabel(logger.headerStyle.Render(fmt.Sprintf("Task %s complete.", entry.Task.ID)), documentIndent))
		return
	}
	logger.writeBlock(
		formatLogLabel(logger.headerStyle.Render(fmt.Sprintf("Task %s still in progress:", entry.Task.ID)), documentIndent),
		formatLogBody(entry.Reason, subdocumentIndent, true),
	)
}

// Summary logs the final result of a run.
func (logger *ConsoleLogger) Summary(entry SummaryLog) {
	if logger == nil {
		return
	}
	lines := []string{
		fmt.Sprintf("State: %s", entry.State),
		fmt.Sprintf("Iterations: %d", entry.Iterations),
		fmt.Sprintf("Completed: %d", entry.Completed),
		fmt.Sprintf("Failed: %d", entry.Failed),
		fmt.Sprintf("Remaining: %d", entry.Remaining),
		fmt.Sprintf("Elapsed: %s", ui.FormatDurationShort(entry.Elapsed)),
	}
	logger.writeBlock(
		formatLogLabel(logger.headerStyle.Render("Loop finished."), 0),
		formatLogBody(strings.Join(lines, "\n"), documentIndent, false),
	)
}

func (logger *ConsoleLogger) writeBlock(lines ...string) {
	if len(lines) == 0 {
		return
	}
	if logger.started {
		fmt.Fprintln(logger.writer)
	}
	logger.started = true
	for _, line := range lines {
		fmt.Fprintln(logger.writer, line)
	}
}
