package validation

import "path/filepath"

// goDetector detects Go modules by go.mod. Vet serves as the typecheck;
// lint is only proposed when a golangci-lint config is present.
type goDetector struct{}

func (goDetector) Name() string { return "go" }

func (goDetector) Detect(dir string) (Commands, bool) {
	if !fileExists(filepath.Join(dir, "go.mod")) {
		return Commands{}, false
	}

	cmds := Commands{
		Typecheck: "go vet ./...",
		Test:      "go test ./...",
	}
	for _, name := range []string{".golangci.yml", ".golangci.yaml", ".golangci.toml", ".golangci.json"} {
		if fileExists(filepath.Join(dir, name)) {
			cmds.Lint = "golangci-lint run"
			break
		}
	}
	return cmds, true
}
