package main

import (
	"fmt"
	"strings"

	"github.com/andrueandersoncs/opencode-engineering-process/task"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <task-id> [path]",
	Short: "Print one task's full detail",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

const taskDetailLineWidth = 80

func runShow(cmd *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	path := resolveTasksPath(cfg, args[1:])

	doc, err := task.Load(path)
	if err != nil {
		return err
	}

	t, ok := doc.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}

	printTaskDetail(t)
	return nil
}

// printTaskDetail prints detailed information about a task.
func printTaskDetail(t *task.Task) {
	fmt.Printf("ID:      %s\n", t.ID)
	fmt.Printf("Title:   %s\n", t.Title)
	fmt.Printf("Status:  %s\n", t.Status)

	if len(t.Dependencies) > 0 {
		fmt.Printf("Depends: %s\n", joinIDList(t.Dependencies))
	}

	if len(t.Files) > 0 {
		fmt.Printf("\nFiles:\n")
		for _, file := range t.Files {
			fmt.Printf("  %s\n", file)
		}
	}

	if len(t.Criteria) > 0 {
		fmt.Printf("\nCriteria:\n")
		for _, criterion := range t.Criteria {
			fmt.Printf("  - %s\n", criterion)
		}
	}

	if t.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", renderMarkdownOrDash(t.Description, taskDetailLineWidth))
	}
}

func joinIDList(ids []task.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
