package loop

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	internalstrings "github.com/andrueandersoncs/opencode-engineering-process/internal/strings"
	"github.com/andrueandersoncs/opencode-engineering-process/task"
	"github.com/bmatcuk/doublestar/v4"
)

const (
	promptOverrideDir = ".ep/templates"
	taskTemplateName  = "task.tmpl"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// ContextFile is a document included in every prompt.
type ContextFile struct {
	Path     string
	Contents string
}

// PromptData supplies values for the task prompt template.
type PromptData struct {
	Task         task.Task
	TasksPath    string
	TaskBlock    string
	ContextBlock string
}

func newPromptData(item task.Task, tasksPath string, contexts []ContextFile) PromptData {
	return PromptData{
		Task:         item,
		TasksPath:    tasksPath,
		TaskBlock:    formatTaskBlock(item),
		ContextBlock: formatContextBlock(contexts),
	}
}

// BuildPrompt loads the task template for the repo and renders it.
func BuildPrompt(repoPath string, data PromptData) (string, error) {
	contents, err := LoadPrompt(repoPath, taskTemplateName)
	if err != nil {
		return "", err
	}
	return RenderPrompt(contents, data)
}

// LoadPrompt loads a prompt template, preferring a repo override under
// .ep/templates.
func LoadPrompt(repoPath, name string) (string, error) {
	if internalstrings.IsBlank(name) {
		return "", fmt.Errorf("prompt name is required")
	}

	if repoPath != "" {
		overridePath := filepath.Join(repoPath, promptOverrideDir, name)
		if data, err := os.ReadFile(overridePath); err == nil {
			return string(data), nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("read prompt override: %w", err)
		}
	}

	data, err := defaultTemplates.ReadFile(filepath.Join("templates", name))
	if err != nil {
		return "", fmt.Errorf("read default prompt: %w", err)
	}
	return string(data), nil
}

// RenderPrompt renders the template contents with the provided data.
func RenderPrompt(contents string, data PromptData) (string, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(contents)
	if err != nil {
		return "", fmt.Errorf("parse prompt: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return out.String(), nil
}

// GatherContextFiles expands the patterns against dir and reads every
// match. Matches are deduplicated and sorted so prompts are stable
// across runs.
func GatherContextFiles(dir string, patterns []string) ([]ContextFile, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	fsys := os.DirFS(dir)
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("context pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)

	files := make([]ContextFile, 0, len(paths))
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read context file %s: %w", path, err)
		}
		files = append(files, ContextFile{Path: path, Contents: string(data)})
	}
	return files, nil
}

func formatTaskBlock(item task.Task) string {
	fields := []string{
		formatTaskField("ID", string(item.ID)),
		formatTaskField("Title", item.Title),
		formatTaskField("Files", strings.Join(item.Files, ", ")),
		formatTaskField("Dependencies", joinIDs(item.Dependencies)),
		"Criteria:",
	}
	fieldBlock := indentLines(strings.Join(fields, "\n"), documentIndent)
	criteria := formatCriteriaBlock(item.Criteria)

	description := internalstrings.TrimTrailingNewlines(item.Description)
	if internalstrings.IsBlank(description) {
		description = "-"
	}
	description = reflowIndentedText(description, lineWidth, subdocumentIndent)
	descriptionLabel := indentLines("Description:", documentIndent)

	return fmt.Sprintf("Task\n\n%s\n%s\n%s\n%s", fieldBlock, criteria, descriptionLabel, description)
}

func formatCriteriaBlock(criteria []string) string {
	if len(criteria) == 0 {
		return indentLines("-", subdocumentIndent)
	}
	lines := make([]string, 0, len(criteria))
	for _, criterion := range criteria {
		lines = append(lines, "- "+internalstrings.NormalizeWhitespace(criterion))
	}
	return indentLines(strings.Join(lines, "\n"), subdocumentIndent)
}

func formatContextBlock(files []ContextFile) string {
	if len(files) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(files))
	for _, file := range files {
		contents := internalstrings.NormalizeNewlines(file.Contents)
		contents = internalstrings.TrimLeadingNewlines(contents)
		contents = internalstrings.TrimTrailingNewlines(contents)
		blocks = append(blocks, fmt.Sprintf("--- %s ---\n%s", file.Path, contents))
	}
	return fmt.Sprintf("Context documents\n\n%s", strings.Join(blocks, "\n\n"))
}

func formatTaskField(label, value string) string {
	value = internalstrings.NormalizeWhitespace(value)
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s: %s", label, value)
}

func joinIDs(ids []task.ID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, ", ")
}
