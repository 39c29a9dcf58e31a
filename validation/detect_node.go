package validation

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// nodeDetector detects javascript/typescript projects by their
// package.json. Manifest-declared scripts win; a tsconfig.json implies
// the tsc convention default for typechecking.
type nodeDetector struct{}

func (nodeDetector) Name() string { return "node" }

func (nodeDetector) Detect(dir string) (Commands, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return Commands{}, false
	}

	var manifest struct {
		Scripts map[string]string `json:"scripts"`
	}
	// A malformed manifest still marks a node project; it just declares
	// no scripts.
	_ = json.Unmarshal(data, &manifest)

	runner := nodeRunner(dir)

	var cmds Commands
	if _, ok := manifest.Scripts["typecheck"]; ok {
		cmds.Typecheck = runner + " run typecheck"
	} else if fileExists(filepath.Join(dir, "tsconfig.json")) {
		cmds.Typecheck = "npx tsc --noEmit"
	}
	if _, ok := manifest.Scripts["lint"]; ok {
		cmds.Lint = runner + " run lint"
	}
	if _, ok := manifest.Scripts["test"]; ok {
		cmds.Test = runner + " test"
	}
	return cmds, true
}

// nodeRunner picks the package runner from the lockfile present.
func nodeRunner(dir string) string {
	switch {
	case fileExists(filepath.Join(dir, "pnpm-lock.yaml")):
		return "pnpm"
	case fileExists(filepath.Join(dir, "yarn.lock")):
		return "yarn"
	case fileExists(filepath.Join(dir, "bun.lockb")):
		return "bun"
	default:
		return "npm"
	}
}
