package validation

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// pythonDetector detects Python projects by pyproject.toml. Typecheck and
// lint commands are proposed only when the corresponding tool is configured;
// pytest is the conventional test command either way.
type pythonDetector struct{}

func (pythonDetector) Name() string { return "python" }

func (pythonDetector) Detect(dir string) (Commands, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
	if err != nil {
		return Commands{}, false
	}

	cmds := Commands{Test: "pytest"}
	meta, err := toml.Decode(string(data), &struct{}{})
	if err != nil {
		return cmds, true
	}
	if meta.IsDefined("tool", "mypy") {
		cmds.Typecheck = "mypy ."
	}
	if meta.IsDefined("tool", "ruff") {
		cmds.Lint = "ruff check ."
	}
	return cmds, true
}
