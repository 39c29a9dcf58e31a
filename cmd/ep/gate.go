package main

import (
	"fmt"

	"github.com/andrueandersoncs/opencode-engineering-process/gate"
	"github.com/spf13/cobra"
)

var gateCmd = &cobra.Command{
	Use:   "gate <phase> [dir]",
	Short: "Check that a phase's required artifacts exist",
	Long: `Check that a phase's required artifacts exist.

Phases in process order: understand, research, scope, design, decompose,
implement, validate, deploy. Each requires its output documents to exist
under the project directory; the [gate.phases] config section overrides
the patterns per phase.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGate,
}

var gateJSON bool

func init() {
	rootCmd.AddCommand(gateCmd)
	gateCmd.Flags().BoolVar(&gateJSON, "json", false, "Output the report as JSON")
}

func runGate(cmd *cobra.Command, args []string) error {
	phase, err := gate.ParsePhase(args[0])
	if err != nil {
		return err
	}

	dir, err := resolveDir(args[1:])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	report, err := gate.CheckPhase(dir, phase, cfg.Gate.Phases[string(phase)])
	if err != nil {
		return err
	}

	if gateJSON {
		if err := encodeJSONToStdout(report); err != nil {
			return err
		}
	} else {
		fmt.Print(formatPhaseReport(report))
	}

	if !report.Passed() {
		return exitError{code: 1, err: fmt.Errorf("phase %s is missing artifacts", phase)}
	}
	return nil
}
