// Package config handles loading ep configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the merged ep configuration. Values come from the
// global config file overlaid by the project's .ep.toml; environment
// variables and flags are layered on top by the commands themselves.
type Config struct {
	// Tasks is the path of the task document, relative to the repo.
	Tasks string `toml:"tasks"`

	Validation Validation `toml:"validation"`
	Loop       Loop       `toml:"loop"`
	Gate       Gate       `toml:"gate"`
}

// Validation contains validation-command configuration.
type Validation struct {
	// Typecheck, Lint, and Test override the detected commands.
	Typecheck string `toml:"typecheck"`
	Lint      string `toml:"lint"`
	Test      string `toml:"test"`

	SkipTypecheck bool `toml:"skip-typecheck"`
	SkipLint      bool `toml:"skip-lint"`
	SkipTests     bool `toml:"skip-tests"`
}

// Loop contains loop-related configuration.
type Loop struct {
	// MaxIterations caps how many tasks one loop invocation attempts.
	MaxIterations int `toml:"max-iterations"`

	// Context lists glob patterns for documents included in every prompt.
	Context []string `toml:"context"`

	// Agent selects the agent binary for loop runs.
	Agent string `toml:"agent"`
}

// Gate contains phase-gate configuration.
type Gate struct {
	// Phases overrides the artifact patterns a phase requires.
	Phases map[string][]string `toml:"phases"`
}

// Load loads configuration from the repo root and the global config file.
// Returns an empty config if no config files exist.
func Load(repoPath string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(repoPath, ".ep.toml"))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta), nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "ep", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Tasks = mergeString(projectMeta.IsDefined("tasks"), projectCfg.Tasks, globalCfg.Tasks)

	merged.Validation.Typecheck = mergeString(projectMeta.IsDefined("validation", "typecheck"), projectCfg.Validation.Typecheck, globalCfg.Validation.Typecheck)
	merged.Validation.Lint = mergeString(projectMeta.IsDefined("validation", "lint"), projectCfg.Validation.Lint, globalCfg.Validation.Lint)
	merged.Validation.Test = mergeString(projectMeta.IsDefined("validation", "test"), projectCfg.Validation.Test, globalCfg.Validation.Test)
	merged.Validation.SkipTypecheck = mergeBool(projectMeta.IsDefined("validation", "skip-typecheck"), projectCfg.Validation.SkipTypecheck, globalCfg.Validation.SkipTypecheck)
	merged.Validation.SkipLint = mergeBool(projectMeta.IsDefined("validation", "skip-lint"), projectCfg.Validation.SkipLint, globalCfg.Validation.SkipLint)
	merged.Validation.SkipTests = mergeBool(projectMeta.IsDefined("validation", "skip-tests"), projectCfg.Validation.SkipTests, globalCfg.Validation.SkipTests)

	merged.Loop.MaxIterations = mergeInt(projectMeta.IsDefined("loop", "max-iterations"), projectCfg.Loop.MaxIterations, globalCfg.Loop.MaxIterations)
	merged.Loop.Agent = mergeString(projectMeta.IsDefined("loop", "agent"), projectCfg.Loop.Agent, globalCfg.Loop.Agent)
	if projectMeta.IsDefined("loop", "context") {
		merged.Loop.Context = append([]string(nil), projectCfg.Loop.Context...)
	} else if globalMeta.IsDefined("loop", "context") {
		merged.Loop.Context = append([]string(nil), globalCfg.Loop.Context...)
	}

	merged.Gate.Phases = mergePhases(globalCfg.Gate.Phases, projectCfg.Gate.Phases)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func mergeBool(projectDefined bool, projectValue, globalValue bool) bool {
	if projectDefined {
		return projectValue
	}
	return globalValue
}

func mergeInt(projectDefined bool, projectValue, globalValue int) int {
	if projectDefined {
		return projectValue
	}
	return globalValue
}

// mergePhases overlays project phase patterns onto global ones. A phase
// defined in both keeps only the project's patterns.
func mergePhases(global, project map[string][]string) map[string][]string {
	if len(global) == 0 && len(project) == 0 {
		return nil
	}

	merged := make(map[string][]string, len(global)+len(project))
	for phase, patterns := range global {
		merged[phase] = append([]string(nil), patterns...)
	}
	for phase, patterns := range project {
		merged[phase] = append([]string(nil), patterns...)
	}
	return merged
}
