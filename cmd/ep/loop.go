package main

import (
	"fmt"
	"os"

	"github.com/andrueandersoncs/opencode-engineering-process/internal/taskenv"
	"github.com/andrueandersoncs/opencode-engineering-process/loop"
	"github.com/andrueandersoncs/opencode-engineering-process/validation"
	"github.com/spf13/cobra"
)

var loopCmd = &cobra.Command{
	Use:   "loop [story]",
	Short: "Run the agent over tasks until the document drains",
	Long: `Run the agent over tasks until the document drains.

Each iteration picks the next workable task, marks it in progress, sends
the agent a prompt built from the task, validates the project, and marks
the task complete. A failed agent run or failed validation leaves the task
in progress for the next iteration to resume. With a story argument the
loop works docs/stories/<story>/tasks.md.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoop,
}

var (
	loopMaxIterations  int
	loopDryRun         bool
	loopSkipValidation bool
	loopInteractive    bool
	loopContext        []string
)

func init() {
	rootCmd.AddCommand(loopCmd)
	addIterationFlagAliases(loopCmd)
	loopCmd.Flags().IntVar(&loopMaxIterations, "max-iterations", 0, "Maximum tasks to attempt (default 10)")
	loopCmd.Flags().BoolVar(&loopDryRun, "dry-run", false, "Render the next prompt without running the agent")
	loopCmd.Flags().BoolVar(&loopSkipValidation, "skip-validation", false, "Mark tasks complete without validating")
	loopCmd.Flags().BoolVar(&loopInteractive, "interactive", false, "Attach the agent to the terminal through a pty")
	loopCmd.Flags().StringArrayVar(&loopContext, "context", nil, "Glob of documents included in every prompt (repeatable)")
}

func runLoop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}

	opts := loop.Options{
		MaxIterations:  resolveMaxIterations(cfg, loopMaxIterations),
		DryRun:         loopDryRun || taskenv.Bool(taskenv.DryRunEnvVar),
		SkipValidation: loopSkipValidation || taskenv.Bool(taskenv.SkipValidationEnvVar),
		Interactive:    loopInteractive,
		ContextFiles:   resolveContextFiles(cfg, loopContext),
		Agent:          resolveAgent(cfg),
		Logger:         loop.NewConsoleLogger(os.Stdout),
		RunValidation: func(dir string) (*validation.Report, error) {
			return validation.Run(validationOptions(cfg, dir))
		},
	}

	if len(args) > 0 {
		opts.Story = args[0]
	} else {
		opts.TasksPath = resolveTasksPath(cfg, nil)
	}

	result, err := loop.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if result.State == loop.StateExhausted {
		return exitError{code: 1, err: fmt.Errorf("%d tasks remaining after %d iterations", result.Remaining, result.Iterations)}
	}
	return nil
}
