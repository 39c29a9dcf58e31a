package main

import (
	"fmt"

	"github.com/andrueandersoncs/opencode-engineering-process/gate"
	"github.com/spf13/cobra"
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria <file>",
	Short: "Check that a document's checkboxes are all ticked",
	Long: `Check that a document's checkboxes are all ticked.

Scans any markdown file for checkbox list items and fails while any remain
unchecked. A file without checkboxes passes.`,
	Args: cobra.ExactArgs(1),
	RunE: runCriteria,
}

var criteriaJSON bool

func init() {
	rootCmd.AddCommand(criteriaCmd)
	criteriaCmd.Flags().BoolVar(&criteriaJSON, "json", false, "Output the report as JSON")
}

func runCriteria(cmd *cobra.Command, args []string) error {
	report, err := gate.CheckCriteria(args[0])
	if err != nil {
		return err
	}

	if criteriaJSON {
		if err := encodeJSONToStdout(report); err != nil {
			return err
		}
	} else {
		fmt.Print(formatCriteriaReport(report))
	}

	if !report.Passed() {
		return exitError{code: 1, err: fmt.Errorf("%d of %d criteria unchecked", report.Unchecked, report.Total())}
	}
	return nil
}
