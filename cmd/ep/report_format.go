package main

import (
	"fmt"
	"strings"

	"github.com/andrueandersoncs/opencode-engineering-process/gate"
	"github.com/andrueandersoncs/opencode-engineering-process/internal/ui"
	"github.com/andrueandersoncs/opencode-engineering-process/validation"
	"github.com/charmbracelet/lipgloss"
)

var (
	statusPassStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statusFailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusSkippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func styleCheckStatus(status validation.CheckStatus) string {
	switch status {
	case validation.StatusPass:
		return statusPassStyle.Render(string(status))
	case validation.StatusFail:
		return statusFailStyle.Render(string(status))
	default:
		return statusSkippedStyle.Render(string(status))
	}
}

// formatValidationReport renders one row per check plus a verdict line.
func formatValidationReport(report *validation.Report) string {
	rows := make([][]string, 0, len(report.Checks))
	for _, check := range report.Checks {
		detail := check.Command
		switch check.Status {
		case validation.StatusSkipped:
			detail = check.Reason
		case validation.StatusFail:
			detail = fmt.Sprintf("%s (exit %d)", check.Command, check.ExitCode)
		}
		rows = append(rows, []string{string(check.Check), styleCheckStatus(check.Status), detail})
	}

	var b strings.Builder
	if report.Ecosystem != "" {
		fmt.Fprintf(&b, "Ecosystem: %s\n\n", report.Ecosystem)
	}
	b.WriteString(ui.FormatTable([]string{"CHECK", "STATUS", "DETAIL"}, rows))
	b.WriteString("\n")
	if report.Passed() {
		b.WriteString("Validation passed.\n")
	} else {
		fmt.Fprintf(&b, "Validation failed (%s).\n", joinFailedChecks(report.Failed()))
	}
	return b.String()
}

func joinFailedChecks(failed []validation.CheckResult) string {
	names := make([]string, len(failed))
	for i, check := range failed {
		names[i] = string(check.Check)
	}
	return strings.Join(names, ", ")
}

// formatPhaseReport renders one row per required artifact plus a verdict line.
func formatPhaseReport(report *gate.PhaseReport) string {
	rows := make([][]string, 0, len(report.Artifacts))
	for _, artifact := range report.Artifacts {
		status := statusPassStyle.Render("found")
		detail := strings.Join(artifact.Matches, ", ")
		if len(artifact.Matches) == 0 {
			status = statusFailStyle.Render("missing")
			detail = "-"
		}
		rows = append(rows, []string{artifact.Pattern, status, detail})
	}

	var b strings.Builder
	b.WriteString(ui.FormatTable([]string{"ARTIFACT", "STATUS", "MATCHES"}, rows))
	b.WriteString("\n")
	if report.Passed() {
		fmt.Fprintf(&b, "Phase %s gate passed.\n", report.Phase)
	} else {
		fmt.Fprintf(&b, "Phase %s gate failed: missing %s.\n", report.Phase, strings.Join(report.Missing(), ", "))
	}
	return b.String()
}

// formatCriteriaReport renders the checkbox tally plus any unchecked items.
func formatCriteriaReport(report *gate.CriteriaReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d criteria met in %s.\n", report.Checked, report.Total(), report.Path)
	if len(report.UncheckedItems) > 0 {
		b.WriteString("\nUnchecked:\n")
		for _, item := range report.UncheckedItems {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	return b.String()
}
