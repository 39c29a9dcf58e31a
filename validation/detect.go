package validation

import "os"

// Detector guesses the check commands for one ecosystem convention.
type Detector interface {
	// Name identifies the ecosystem in reports.
	Name() string

	// Detect reports the commands for dir. The second return is false
	// when the ecosystem's marker files are absent; new ecosystems plug
	// in here without touching the runner.
	Detect(dir string) (Commands, bool)
}

// DefaultDetectors returns the built-in detectors in probe order. The
// first detector whose marker files exist wins.
func DefaultDetectors() []Detector {
	return []Detector{
		nodeDetector{},
		goDetector{},
		rustDetector{},
		pythonDetector{},
		makeDetector{},
	}
}

// Detect probes dir with each detector in order and returns the first
// matching ecosystem.
func Detect(dir string, detectors []Detector) (string, Commands, bool) {
	for _, detector := range detectors {
		if cmds, ok := detector.Detect(dir); ok {
			return detector.Name(), cmds, true
		}
	}
	return "", Commands{}, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
