package main

import (
	"strings"

	"github.com/andrueandersoncs/opencode-engineering-process/internal/markdown"
)

func renderMarkdownOrDash(value string, width int) string {
	if width < 1 {
		width = 1
	}
	formatted := string(markdown.SafeRender(width, 0, []byte(value)))
	if strings.TrimSpace(formatted) == "" {
		return "-"
	}
	return formatted
}
