package main

import (
	"github.com/andrueandersoncs/opencode-engineering-process/task"
	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next [path]",
	Short: "Pick the next workable task from the document",
	Long: `Pick the next workable task from the document.

A task already in progress is resumed before anything else is considered;
otherwise the first incomplete task whose dependencies are all complete is
chosen, in document order. The result is printed as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNext,
}

var (
	nextCount bool
	nextAll   bool
)

func init() {
	rootCmd.AddCommand(nextCmd)
	nextCmd.Flags().BoolVar(&nextCount, "count", false, "Print task counts instead of a task")
	nextCmd.Flags().BoolVar(&nextAll, "all", false, "Print every task instead of one")
}

type nextOutput struct {
	Found bool       `json:"found"`
	Task  *task.Task `json:"task,omitempty"`
}

func runNext(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	path := resolveTasksPath(cfg, args)

	switch {
	case nextCount:
		return printTaskCounts(path)
	case nextAll:
		return printTaskList(path)
	}

	doc, err := task.Load(path)
	if err != nil {
		return err
	}

	next, ok := doc.Next()
	if !ok {
		return encodeJSONToStdout(nextOutput{Found: false})
	}
	return encodeJSONToStdout(nextOutput{Found: true, Task: next})
}
