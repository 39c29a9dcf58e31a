package validation

import "path/filepath"

type rustDetector struct{}

func (rustDetector) Name() string { return "rust" }

func (rustDetector) Detect(dir string) (Commands, bool) {
	if !fileExists(filepath.Join(dir, "Cargo.toml")) {
		return Commands{}, false
	}
	return Commands{
		Typecheck: "cargo check",
		Lint:      "cargo clippy",
		Test:      "cargo test",
	}, true
}
