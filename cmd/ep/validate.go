package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/andrueandersoncs/opencode-engineering-process/validation"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Detect the project's ecosystem and run its checks",
	Long: `Detect the project's ecosystem and run its checks.

Typecheck, lint, and test commands are detected from the project's build
files, overridden per check by EP_TYPECHECK_CMD, EP_LINT_CMD, and
EP_TEST_CMD or the [validation] config section. Every check runs even when
an earlier one fails; the exit status reflects the aggregate verdict.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var (
	validateQuick         bool
	validateSkipTypecheck bool
	validateSkipLint      bool
	validateSkipTests     bool
	validateJSON          bool
)

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateQuick, "quick", false, "Skip the test suite")
	validateCmd.Flags().BoolVar(&validateSkipTypecheck, "skip-typecheck", false, "Skip the typecheck")
	validateCmd.Flags().BoolVar(&validateSkipLint, "skip-lint", false, "Skip the lint check")
	validateCmd.Flags().BoolVar(&validateSkipTests, "skip-tests", false, "Skip the test suite")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output the report as JSON")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir, err := resolveDir(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	opts := validationOptions(cfg, dir)
	opts.Quick = validateQuick
	if validateSkipTypecheck {
		opts.Skip[validation.CheckTypecheck] = true
	}
	if validateSkipLint {
		opts.Skip[validation.CheckLint] = true
	}
	if validateSkipTests {
		opts.Skip[validation.CheckTest] = true
	}

	// JSON mode keeps stdout clean for the report; the checks' own
	// output moves to stderr.
	if validateJSON {
		opts.Stdout = os.Stderr
	}

	report, err := validation.Run(opts)
	if err != nil {
		return err
	}

	if validateJSON {
		if err := encodeJSONToStdout(report); err != nil {
			return err
		}
	} else {
		fmt.Print(formatValidationReport(report))
	}

	if !report.Passed() {
		return exitError{code: 1, err: errors.New("validation failed")}
	}
	return nil
}
