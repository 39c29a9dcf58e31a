package main

import (
	"fmt"

	"github.com/andrueandersoncs/opencode-engineering-process/task"
	"github.com/spf13/cobra"
)

var markCmd = &cobra.Command{
	Use:   "mark <task-id> <status> [path]",
	Short: "Set a task's status in the document",
	Long: `Set a task's status in the document.

Only the task's own status markup changes; every other byte of the document
is preserved. Valid statuses: incomplete, in_progress, complete, blocked.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runMark,
}

func init() {
	rootCmd.AddCommand(markCmd)
}

func runMark(cmd *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}

	status, err := task.ParseStatus(args[1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	path := resolveTasksPath(cfg, args[2:])

	if err := task.SetStatus(path, id, status); err != nil {
		return err
	}

	fmt.Printf("Marked task %s %s.\n", id, status)
	return nil
}
