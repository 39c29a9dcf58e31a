package main

import (
	"github.com/andrueandersoncs/opencode-engineering-process/task"
	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count [path]",
	Short: "Print task counts by status as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

type taskCounts struct {
	Total      int `json:"total"`
	Complete   int `json:"complete"`
	InProgress int `json:"in_progress"`
	Incomplete int `json:"incomplete"`
	Blocked    int `json:"blocked"`
	Remaining  int `json:"remaining"`
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	return printTaskCounts(resolveTasksPath(cfg, args))
}

func printTaskCounts(path string) error {
	doc, err := task.Load(path)
	if err != nil {
		return err
	}

	counts := taskCounts{Remaining: doc.Remaining()}
	for _, t := range doc.Tasks() {
		counts.Total++
		switch t.Status {
		case task.StatusComplete:
			counts.Complete++
		case task.StatusInProgress:
			counts.InProgress++
		case task.StatusBlocked:
			counts.Blocked++
		default:
			counts.Incomplete++
		}
	}
	return encodeJSONToStdout(counts)
}
