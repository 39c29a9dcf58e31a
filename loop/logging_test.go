package loop

import (
	"strings"
	"testing"

	"github.com/andrueandersoncs/opencode-engineering-process/task"
)

func TestConsoleLoggerSeparatesBlocks(t *testing.T) {
	var out strings.Builder
	logger := NewConsoleLogger(&out)

	logger.Iteration(IterationLog{Number: 1, Max: 10, Task: task.Task{ID: "1.1", Title: "Add parser"}})
	logger.Outcome(OutcomeLog{Task: task.Task{ID: "1.1"}, Completed: true})

	got := out.String()
	if !strings.Contains(got, "Iteration 1 of 10: Task 1.1: Add parser") {
		t.Errorf("missing iteration header:\n%s", got)
	}
	if !strings.Contains(got, "Task 1.1 complete.") {
		t.Errorf("missing outcome:\n%s", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Errorf("blocks not separated by a blank line:\n%s", got)
	}
}

func TestConsoleLoggerFailureOutcomeIncludesReason(t *testing.T) {
	var out strings.Builder
	logger := NewConsoleLogger(&out)

	logger.Outcome(OutcomeLog{Task: task.Task{ID: "2.1"}, Reason: "validation failed (test)"})

	got := out.String()
	if !strings.Contains(got, "Task 2.1 still in progress:") {
		t.Errorf("missing failure header:\n%s", got)
	}
	if !strings.Contains(got, "validation failed (test)") {
		t.Errorf("missing reason:\n%s", got)
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	logger := NewConsoleLogger(nil)
	logger.Prompt(PromptLog{Prompt: "hello"})
	logger.Summary(SummaryLog{State: StateDone})
}
