package main

import (
	"github.com/andrueandersoncs/opencode-engineering-process/task"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "Print every task in the document as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	return printTaskList(resolveTasksPath(cfg, args))
}

func printTaskList(path string) error {
	doc, err := task.Load(path)
	if err != nil {
		return err
	}
	return encodeJSONToStdout(doc.Tasks())
}
