// Package gate checks that a phase of the engineering process has its
// expected artifacts on disk and that criteria checklists are complete.
package gate

import (
	"errors"
	"fmt"
	"os"
	"sort"

	internalstrings "github.com/andrueandersoncs/opencode-engineering-process/internal/strings"
	"github.com/andrueandersoncs/opencode-engineering-process/internal/validation"
	"github.com/bmatcuk/doublestar/v4"
)

// Phase names one step of the engineering process.
type Phase string

const (
	PhaseUnderstand Phase = "understand"
	PhaseResearch   Phase = "research"
	PhaseScope      Phase = "scope"
	PhaseDesign     Phase = "design"
	PhaseDecompose  Phase = "decompose"
	PhaseImplement  Phase = "implement"
	PhaseValidate   Phase = "validate"
	PhaseDeploy     Phase = "deploy"
)

// Phases returns every phase in process order.
func Phases() []Phase {
	return []Phase{
		PhaseUnderstand,
		PhaseResearch,
		PhaseScope,
		PhaseDesign,
		PhaseDecompose,
		PhaseImplement,
		PhaseValidate,
		PhaseDeploy,
	}
}

// ErrUnknownPhase is returned when a phase name does not parse.
var ErrUnknownPhase = errors.New("unknown phase")

// ParsePhase normalizes and validates a phase name.
func ParsePhase(value string) (Phase, error) {
	normalized := Phase(internalstrings.NormalizeLowerTrimSpace(value))
	for _, phase := range Phases() {
		if phase == normalized {
			return phase, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrUnknownPhase, Phase(value), Phases())
}

// The task document may live at the repo root or under a story
// directory; either satisfies the decompose and implement gates.
var defaultArtifacts = map[Phase][]string{
	PhaseUnderstand: {"docs/understanding.md"},
	PhaseResearch:   {"docs/research.md"},
	PhaseScope:      {"docs/scope.md"},
	PhaseDesign:     {"docs/design.md"},
	PhaseDecompose:  {"{tasks.md,docs/stories/**/tasks.md}"},
	PhaseImplement:  {"{tasks.md,docs/stories/**/tasks.md}"},
	PhaseValidate:   {"docs/validation.md"},
	PhaseDeploy:     {"docs/deployment.md"},
}

// DefaultArtifacts returns the artifact patterns a phase requires.
func DefaultArtifacts(phase Phase) []string {
	patterns := defaultArtifacts[phase]
	out := make([]string, len(patterns))
	copy(out, patterns)
	return out
}

// ArtifactResult records the files matching one required pattern.
type ArtifactResult struct {
	Pattern string   `json:"pattern"`
	Matches []string `json:"matches,omitempty"`
}

// PhaseReport captures the artifact checks for one phase.
type PhaseReport struct {
	Phase     Phase            `json:"phase"`
	Artifacts []ArtifactResult `json:"artifacts"`
}

// Passed reports whether every required artifact matched a file.
func (r *PhaseReport) Passed() bool {
	for _, artifact := range r.Artifacts {
		if len(artifact.Matches) == 0 {
			return false
		}
	}
	return true
}

// Missing returns the patterns with no matching artifact.
func (r *PhaseReport) Missing() []string {
	var missing []string
	for _, artifact := range r.Artifacts {
		if len(artifact.Matches) == 0 {
			missing = append(missing, artifact.Pattern)
		}
	}
	return missing
}

// CheckPhase reports whether each artifact the phase requires exists
// under dir. A nil patterns slice checks the phase's defaults.
func CheckPhase(dir string, phase Phase, patterns []string) (*PhaseReport, error) {
	if patterns == nil {
		patterns = DefaultArtifacts(phase)
	}

	fsys := os.DirFS(dir)
	report := &PhaseReport{Phase: phase}
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("artifact pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		report.Artifacts = append(report.Artifacts, ArtifactResult{Pattern: pattern, Matches: matches})
	}
	return report, nil
}
