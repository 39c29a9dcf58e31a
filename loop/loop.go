// Package loop drives the task cycle: pick the next task, mark it in
// progress, run the agent against a rendered prompt, validate the result,
// and mark the task complete, repeating until the document drains or the
// iteration cap is reached.
//
// Agent and validation failures are bound to their iteration: the task
// stays in progress and the next iteration resumes it. Only a failed
// document write aborts the run.
package loop

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/andrueandersoncs/opencode-engineering-process/opencode"
	"github.com/andrueandersoncs/opencode-engineering-process/task"
	"github.com/andrueandersoncs/opencode-engineering-process/validation"
)

// State identifies a position in the loop's cycle.
type State string

const (
	// StateIdle is the state before any iteration has run.
	StateIdle State = "idle"

	// StateFetching covers picking the next task from the document.
	StateFetching State = "fetching"

	// StateExecuting covers the agent invocation.
	StateExecuting State = "executing"

	// StateValidating covers the post-agent validation run.
	StateValidating State = "validating"

	// StateDone is terminal: every task is complete.
	StateDone State = "done"

	// StateExhausted is terminal: the iteration cap was reached with
	// tasks remaining.
	StateExhausted State = "exhausted"

	// StateFailed marks a failed iteration, or a run aborted by an
	// unrecoverable error.
	StateFailed State = "failed"
)

// DefaultMaxIterations caps a run when Options.MaxIterations is unset.
const DefaultMaxIterations = 10

// DefaultTasksPath is the task document used when none is configured.
const DefaultTasksPath = "tasks.md"

// Options configures a loop run. The function fields default to the real
// implementations and are the injection points for tests.
type Options struct {
	// TasksPath is the task document driving the loop. Defaults to the
	// story convention when Story is set, DefaultTasksPath otherwise.
	TasksPath string

	// Story selects the document docs/stories/<story>/tasks.md when
	// TasksPath is empty.
	Story string

	// Dir is the project directory validated and handed to the agent.
	// Defaults to ".".
	Dir string

	// MaxIterations caps the run before it gives up with
	// StateExhausted. Defaults to DefaultMaxIterations.
	MaxIterations int

	// DryRun renders and logs the next prompt without mutating the
	// document or invoking the agent.
	DryRun bool

	// SkipValidation marks a task complete as soon as the agent exits
	// cleanly.
	SkipValidation bool

	// ContextFiles are glob patterns, relative to Dir, whose contents
	// are appended to every prompt.
	ContextFiles []string

	// Agent is the agent binary. Defaults to opencode.DefaultCommand.
	Agent string

	// Interactive attaches the agent to the terminal through a pty.
	Interactive bool

	Logger Logger
	Now    func() time.Time

	PickNext       func(path string) (*task.Task, bool, error)
	MarkStatus     func(path string, id task.ID, status task.Status) error
	RunAgent       func(prompt string) error
	RunValidation  func(dir string) (*validation.Report, error)
	CountRemaining func(path string) (int, error)
}

// Result summarizes a loop run.
type Result struct {
	State      State
	Iterations int
	Completed  []task.ID
	Failed     int
	Remaining  int
}

// StoryTasksPath returns the conventional task document for a story.
func StoryTasksPath(story string) string {
	return filepath.Join("docs", "stories", story, "tasks.md")
}

func (opts Options) normalized() Options {
	if opts.TasksPath == "" {
		if opts.Story != "" {
			opts.TasksPath = StoryTasksPath(opts.Story)
		} else {
			opts.TasksPath = DefaultTasksPath
		}
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PickNext == nil {
		opts.PickNext = pickNextTask
	}
	if opts.MarkStatus == nil {
		opts.MarkStatus = task.SetStatus
	}
	if opts.RunAgent == nil {
		opts.RunAgent = func(prompt string) error {
			return opencode.Run(opencode.RunOptions{
				Command:     opts.Agent,
				Dir:         opts.Dir,
				Prompt:      prompt,
				Interactive: opts.Interactive,
			})
		}
	}
	if opts.RunValidation == nil {
		opts.RunValidation = func(dir string) (*validation.Report, error) {
			return validation.Run(validation.Options{Dir: dir})
		}
	}
	if opts.CountRemaining == nil {
		opts.CountRemaining = countRemainingTasks
	}
	return opts
}

// Run executes the loop until the document drains, the iteration cap is
// reached, or an unrecoverable error occurs.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.normalized()
	startedAt := opts.Now()
	result := &Result{State: StateIdle}

	contexts, err := GatherContextFiles(opts.Dir, opts.ContextFiles)
	if err != nil {
		result.State = StateFailed
		return result, err
	}

	for iteration := 1; iteration <= opts.MaxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return opts.finish(result, startedAt), err
		}

		result.State = StateFetching
		next, ok, err := opts.PickNext(opts.TasksPath)
		if err != nil {
			result.State = StateFailed
			return opts.finish(result, startedAt), fmt.Errorf("pick next task: %w", err)
		}
		if !ok {
			result.State = StateDone
			return opts.finish(result, startedAt), nil
		}

		prompt, err := BuildPrompt(opts.Dir, newPromptData(*next, opts.TasksPath, contexts))
		if err != nil {
			result.State = StateFailed
			return opts.finish(result, startedAt), fmt.Errorf("build prompt: %w", err)
		}

		if opts.DryRun {
			opts.Logger.Iteration(IterationLog{Number: iteration, Max: opts.MaxIterations, Task: *next})
			opts.Logger.Prompt(PromptLog{Prompt: prompt, DryRun: true})
			result.State = StateIdle
			return opts.finish(result, startedAt), nil
		}

		result.Iterations = iteration
		opts.Logger.Iteration(IterationLog{Number: iteration, Max: opts.MaxIterations, Task: *next})

		if err := opts.MarkStatus(opts.TasksPath, next.ID, task.StatusInProgress); err != nil {
			result.State = StateFailed
			return opts.finish(result, startedAt), fmt.Errorf("mark %s in progress: %w", next.ID, err)
		}

		opts.Logger.Prompt(PromptLog{Prompt: prompt})

		result.State = StateExecuting
		if err := opts.RunAgent(prompt); err != nil {
			result.State = StateFailed
			result.Failed++
			opts.Logger.Outcome(OutcomeLog{Task: *next, Reason: fmt.Sprintf("agent: %v", err)})
			continue
		}

		if !opts.SkipValidation {
			result.State = StateValidating
			report, err := opts.RunValidation(opts.Dir)
			if err != nil {
				result.State = StateFailed
				result.Failed++
				opts.Logger.Outcome(OutcomeLog{Task: *next, Reason: fmt.Sprintf("validation: %v", err)})
				continue
			}
			opts.Logger.Validation(ValidationLog{Report: report})
			if !report.Passed() {
				result.State = StateFailed
				result.Failed++
				opts.Logger.Outcome(OutcomeLog{Task: *next, Reason: failedChecksReason(report)})
				continue
			}
		}

		if err := opts.MarkStatus(opts.TasksPath, next.ID, task.StatusComplete); err != nil {
			result.State = StateFailed
			return opts.finish(result, startedAt), fmt.Errorf("mark %s complete: %w", next.ID, err)
		}
		result.Completed = append(result.Completed, next.ID)
		opts.Logger.Outcome(OutcomeLog{Task: *next, Completed: true})
	}

	// The cap may land on the iteration that drained the document;
	// exhausted means the picker still has work.
	result.State = StateExhausted
	if _, ok, err := opts.PickNext(opts.TasksPath); err == nil && !ok {
		result.State = StateDone
	}
	return opts.finish(result, startedAt), nil
}

func (opts Options) finish(result *Result, startedAt time.Time) *Result {
	if remaining, err := opts.CountRemaining(opts.TasksPath); err == nil {
		result.Remaining = remaining
	}
	opts.Logger.Summary(SummaryLog{
		State:      result.State,
		Iterations: result.Iterations,
		Completed:  len(result.Completed),
		Failed:     result.Failed,
		Remaining:  result.Remaining,
		Elapsed:    opts.Now().Sub(startedAt),
	})
	return result
}

func failedChecksReason(report *validation.Report) string {
	failed := report.Failed()
	names := make([]string, 0, len(failed))
	for _, check := range failed {
		names = append(names, string(check.Check))
	}
	return fmt.Sprintf("validation failed (%s)", strings.Join(names, ", "))
}

func pickNextTask(path string) (*task.Task, bool, error) {
	doc, err := task.Load(path)
	if err != nil {
		return nil, false, err
	}
	next, ok := doc.Next()
	return next, ok, nil
}

func countRemainingTasks(path string) (int, error) {
	doc, err := task.Load(path)
	if err != nil {
		return 0, err
	}
	return doc.Remaining(), nil
}
