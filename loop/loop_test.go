package loop

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrueandersoncs/opencode-engineering-process/task"
	"github.com/andrueandersoncs/opencode-engineering-process/validation"
)

const twoTaskDoc = `# Story

- [ ] **Task 1.1**: Add the parser
  - **Description**: Parse the task document.
  - **Criteria**: parses both conventions; round-trips bytes
- [ ] **Task 1.2**: Add the picker
  - **Dependencies**: 1.1
`

func writeTasksFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readTasksFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func passingReport() *validation.Report {
	return &validation.Report{Ecosystem: "go", Checks: []validation.CheckResult{
		{Check: validation.CheckTypecheck, Status: validation.StatusPass},
		{Check: validation.CheckLint, Status: validation.StatusSkipped, Reason: "no lint command for go"},
		{Check: validation.CheckTest, Status: validation.StatusPass},
	}}
}

func failingReport() *validation.Report {
	return &validation.Report{Ecosystem: "go", Checks: []validation.CheckResult{
		{Check: validation.CheckTypecheck, Status: validation.StatusPass},
		{Check: validation.CheckTest, Status: validation.StatusFail, ExitCode: 1},
	}}
}

// recordingLogger captures log entries for assertions.
type recordingLogger struct {
	iterations  []IterationLog
	prompts     []PromptLog
	validations []ValidationLog
	outcomes    []OutcomeLog
	summaries   []SummaryLog
}

func (l *recordingLogger) Iteration(entry IterationLog) { l.iterations = append(l.iterations, entry) }
func (l *recordingLogger) Prompt(entry PromptLog)       { l.prompts = append(l.prompts, entry) }
func (l *recordingLogger) Validation(entry ValidationLog) {
	l.validations = append(l.validations, entry)
}
func (l *recordingLogger) Outcome(entry OutcomeLog) { l.outcomes = append(l.outcomes, entry) }
func (l *recordingLogger) Summary(entry SummaryLog) { l.summaries = append(l.summaries, entry) }

func TestRunDrainsDocument(t *testing.T) {
	path := writeTasksFile(t, twoTaskDoc)
	var prompts []string

	result, err := Run(context.Background(), Options{
		TasksPath: path,
		RunAgent: func(prompt string) error {
			prompts = append(prompts, prompt)
			return nil
		},
		RunValidation: func(dir string) (*validation.Report, error) {
			return passingReport(), nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.State != StateDone {
		t.Errorf("state = %s, want %s", result.State, StateDone)
	}
	if result.Iterations != 2 {
		t.Errorf("iterations = %d, want 2", result.Iterations)
	}
	if len(result.Completed) != 2 || result.Completed[0] != "1.1" || result.Completed[1] != "1.2" {
		t.Errorf("completed = %v, want [1.1 1.2]", result.Completed)
	}
	if result.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", result.Remaining)
	}
	if len(prompts) != 2 || !strings.Contains(prompts[0], "ID: 1.1") || !strings.Contains(prompts[1], "ID: 1.2") {
		t.Errorf("prompts targeted the wrong tasks")
	}

	content := readTasksFile(t, path)
	if !strings.Contains(content, "- [x] **Task 1.1**") || !strings.Contains(content, "- [x] **Task 1.2**") {
		t.Errorf("document not fully marked complete:\n%s", content)
	}
}

func TestRunValidationFailureExhaustsAtCap(t *testing.T) {
	path := writeTasksFile(t, twoTaskDoc)
	logger := &recordingLogger{}

	result, err := Run(context.Background(), Options{
		TasksPath:     path,
		MaxIterations: 2,
		Logger:        logger,
		RunAgent:      func(string) error { return nil },
		RunValidation: func(string) (*validation.Report, error) {
			return failingReport(), nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.State != StateExhausted {
		t.Errorf("state = %s, want %s", result.State, StateExhausted)
	}
	if result.Iterations != 2 || result.Failed != 2 {
		t.Errorf("iterations = %d failed = %d, want 2 and 2", result.Iterations, result.Failed)
	}
	if len(result.Completed) != 0 {
		t.Errorf("completed = %v, want none", result.Completed)
	}
	if result.Remaining != 2 {
		t.Errorf("remaining = %d, want 2", result.Remaining)
	}

	// Both iterations resume the same in-progress task.
	if len(logger.iterations) != 2 || logger.iterations[0].Task.ID != "1.1" || logger.iterations[1].Task.ID != "1.1" {
		t.Errorf("iterations did not resume task 1.1: %+v", logger.iterations)
	}
	if !strings.Contains(readTasksFile(t, path), "- [~] **Task 1.1**") {
		t.Error("failed task not left in progress")
	}
}

func TestRunStopsAtCapWithTasksRemaining(t *testing.T) {
	path := writeTasksFile(t, "- [ ] **Task 1.1**: A\n"+
		"- [ ] **Task 1.2**: B\n"+
		"- [ ] **Task 1.3**: C\n")

	result, err := Run(context.Background(), Options{
		TasksPath:     path,
		MaxIterations: 2,
		RunAgent:      func(string) error { return nil },
		RunValidation: func(string) (*validation.Report, error) {
			return passingReport(), nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.State != StateExhausted {
		t.Errorf("state = %s, want %s", result.State, StateExhausted)
	}
	if len(result.Completed) != 2 || result.Completed[0] != "1.1" || result.Completed[1] != "1.2" {
		t.Errorf("completed = %v, want [1.1 1.2]", result.Completed)
	}
	if result.Remaining != 1 {
		t.Errorf("remaining = %d, want 1", result.Remaining)
	}

	content := readTasksFile(t, path)
	if !strings.Contains(content, "- [ ] **Task 1.3**") {
		t.Errorf("third task should be untouched:\n%s", content)
	}
}

func TestRunAgentErrorBoundToIteration(t *testing.T) {
	path := writeTasksFile(t, twoTaskDoc)
	logger := &recordingLogger{}
	calls := 0

	result, err := Run(context.Background(), Options{
		TasksPath: path,
		Logger:    logger,
		RunAgent: func(string) error {
			calls++
			if calls == 1 {
				return errors.New("agent crashed")
			}
			return nil
		},
		RunValidation: func(string) (*validation.Report, error) {
			return passingReport(), nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.State != StateDone {
		t.Errorf("state = %s, want %s", result.State, StateDone)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if len(result.Completed) != 2 {
		t.Errorf("completed = %v, want both tasks", result.Completed)
	}
	if result.Iterations != 3 {
		t.Errorf("iterations = %d, want 3", result.Iterations)
	}
	if len(logger.outcomes) == 0 || !strings.Contains(logger.outcomes[0].Reason, "agent crashed") {
		t.Errorf("outcomes = %+v, want agent failure reason first", logger.outcomes)
	}
}

func TestRunSkipValidation(t *testing.T) {
	path := writeTasksFile(t, twoTaskDoc)
	validationRan := false

	result, err := Run(context.Background(), Options{
		TasksPath:      path,
		SkipValidation: true,
		RunAgent:       func(string) error { return nil },
		RunValidation: func(string) (*validation.Report, error) {
			validationRan = true
			return failingReport(), nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if validationRan {
		t.Error("validation ran despite SkipValidation")
	}
	if result.State != StateDone || len(result.Completed) != 2 {
		t.Errorf("result = %+v, want both tasks complete", result)
	}
}

func TestRunDryRunMutatesNothing(t *testing.T) {
	path := writeTasksFile(t, twoTaskDoc)
	before := readTasksFile(t, path)
	logger := &recordingLogger{}
	agentRuns := 0
	marks := 0

	result, err := Run(context.Background(), Options{
		TasksPath: path,
		DryRun:    true,
		Logger:    logger,
		MarkStatus: func(string, task.ID, task.Status) error {
			marks++
			return nil
		},
		RunAgent: func(string) error {
			agentRuns++
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.State != StateIdle || result.Iterations != 0 {
		t.Errorf("result = %+v, want idle with zero iterations", result)
	}
	if marks != 0 || agentRuns != 0 {
		t.Errorf("dry run mutated state: marks=%d agentRuns=%d", marks, agentRuns)
	}
	if len(logger.prompts) != 1 || !logger.prompts[0].DryRun || !strings.Contains(logger.prompts[0].Prompt, "ID: 1.1") {
		t.Errorf("prompts = %+v, want one dry-run prompt for task 1.1", logger.prompts)
	}
	if readTasksFile(t, path) != before {
		t.Error("dry run changed the document")
	}
}

func TestRunMissingDocument(t *testing.T) {
	result, err := Run(context.Background(), Options{
		TasksPath:     filepath.Join(t.TempDir(), "missing.md"),
		RunAgent:      func(string) error { return nil },
		RunValidation: func(string) (*validation.Report, error) { return passingReport(), nil },
	})
	if !errors.Is(err, task.ErrDocumentNotFound) {
		t.Fatalf("err = %v, want ErrDocumentNotFound", err)
	}
	if result.State != StateFailed {
		t.Errorf("state = %s, want %s", result.State, StateFailed)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeTasksFile(t, twoTaskDoc)
	result, err := Run(ctx, Options{
		TasksPath:     path,
		RunAgent:      func(string) error { return nil },
		RunValidation: func(string) (*validation.Report, error) { return passingReport(), nil },
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if result.Iterations != 0 {
		t.Errorf("iterations = %d, want 0", result.Iterations)
	}
}

func TestRunMarkFailureAborts(t *testing.T) {
	path := writeTasksFile(t, twoTaskDoc)

	result, err := Run(context.Background(), Options{
		TasksPath: path,
		MarkStatus: func(string, task.ID, task.Status) error {
			return errors.New("disk full")
		},
		RunAgent:      func(string) error { return nil },
		RunValidation: func(string) (*validation.Report, error) { return passingReport(), nil },
	})
	if err == nil || !strings.Contains(err.Error(), "in progress") {
		t.Fatalf("err = %v, want mark-in-progress failure", err)
	}
	if result.State != StateFailed {
		t.Errorf("state = %s, want %s", result.State, StateFailed)
	}
}

func TestRunIncludesContextFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "docs", "notes.md"), []byte("Remember the tests.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeTasksFile(t, twoTaskDoc)
	logger := &recordingLogger{}

	_, err := Run(context.Background(), Options{
		TasksPath:    path,
		Dir:          dir,
		ContextFiles: []string{"docs/**/*.md"},
		DryRun:       true,
		Logger:       logger,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(logger.prompts) != 1 {
		t.Fatalf("prompts = %+v, want one", logger.prompts)
	}
	prompt := logger.prompts[0].Prompt
	if !strings.Contains(prompt, "--- docs/notes.md ---") || !strings.Contains(prompt, "Remember the tests.") {
		t.Errorf("prompt missing context document:\n%s", prompt)
	}
}

func TestStoryTasksPath(t *testing.T) {
	want := filepath.Join("docs", "stories", "auth", "tasks.md")
	if got := StoryTasksPath("auth"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
