package main

import (
	"os"

	"github.com/andrueandersoncs/opencode-engineering-process/internal/config"
	"github.com/andrueandersoncs/opencode-engineering-process/internal/taskenv"
	"github.com/andrueandersoncs/opencode-engineering-process/loop"
	"github.com/andrueandersoncs/opencode-engineering-process/validation"
)

// loadConfig loads the merged configuration for a project directory.
func loadConfig(dir string) (*config.Config, error) {
	if dir == "" || dir == "." {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	}
	return config.Load(dir)
}

// resolveTasksPath returns the task document path. Precedence: positional
// argument, then EP_TASKS, then config, then the default document.
func resolveTasksPath(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if path, ok := taskenv.String(taskenv.TasksEnvVar); ok {
		return path
	}
	if cfg.Tasks != "" {
		return cfg.Tasks
	}
	return loop.DefaultTasksPath
}

// validationOptions merges environment and config into validation options.
// Environment wins per key; command flags are ORed in by the caller.
func validationOptions(cfg *config.Config, dir string) validation.Options {
	opts := validation.Options{
		Dir: dir,
		Skip: map[validation.Check]bool{
			validation.CheckTypecheck: taskenv.Bool(taskenv.SkipTypecheckEnvVar) || cfg.Validation.SkipTypecheck,
			validation.CheckLint:      taskenv.Bool(taskenv.SkipLintEnvVar) || cfg.Validation.SkipLint,
			validation.CheckTest:      taskenv.Bool(taskenv.SkipTestsEnvVar) || cfg.Validation.SkipTests,
		},
		Overrides: map[validation.Check]string{},
	}

	commands := []struct {
		check  validation.Check
		envVar string
		value  string
	}{
		{validation.CheckTypecheck, taskenv.TypecheckEnvVar, cfg.Validation.Typecheck},
		{validation.CheckLint, taskenv.LintEnvVar, cfg.Validation.Lint},
		{validation.CheckTest, taskenv.TestEnvVar, cfg.Validation.Test},
	}
	for _, command := range commands {
		if value, ok := taskenv.String(command.envVar); ok {
			opts.Overrides[command.check] = value
			continue
		}
		if command.value != "" {
			opts.Overrides[command.check] = command.value
		}
	}

	return opts
}

// resolveMaxIterations returns the iteration cap. Precedence: flag, then
// EP_MAX_ITERATIONS, then config; zero lets the loop apply its default.
func resolveMaxIterations(cfg *config.Config, flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if value, ok := taskenv.Int(taskenv.MaxIterationsEnvVar); ok {
		return value
	}
	return cfg.Loop.MaxIterations
}

// resolveContextFiles returns the prompt context globs. Precedence: flags,
// then EP_CONTEXT_FILES, then config.
func resolveContextFiles(cfg *config.Config, flagValues []string) []string {
	if len(flagValues) > 0 {
		return flagValues
	}
	if patterns, ok := taskenv.List(taskenv.ContextFilesEnvVar); ok {
		return patterns
	}
	return cfg.Loop.Context
}

// resolveAgent returns the agent binary. Precedence: EP_AGENT, then
// config; empty lets the loop apply its default.
func resolveAgent(cfg *config.Config) string {
	if agent, ok := taskenv.String(taskenv.AgentEnvVar); ok {
		return agent
	}
	return cfg.Loop.Agent
}
