package loop

import (
	"strings"

	internalstrings "github.com/andrueandersoncs/opencode-engineering-process/internal/strings"
	"github.com/muesli/reflow/wordwrap"
)

const (
	lineWidth         = 80
	documentIndent    = 4
	subdocumentIndent = 8
)

func normalizeLogBody(value string) string {
	value = strings.TrimRight(value, "\r\n")
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatLogLabel(label string, indent int) string {
	if strings.TrimSpace(label) == "" {
		return ""
	}
	return indentLines(label, indent)
}

func formatLogBody(body string, indent int, wrap bool) string {
	body = normalizeLogBody(body)
	if wrap {
		return reflowIndentedText(body, lineWidth, indent)
	}
	return indentLines(body, indent)
}

func indentLines(value string, spaces int) string {
	value = internalstrings.TrimTrailingNewlines(value)
	return internalstrings.IndentBlock(value, spaces)
}

// reflowIndentedText wraps text to width while preserving relative
// indentation levels. Lines sharing an indent level are joined into one
// paragraph before wrapping.
func reflowIndentedText(value string, width int, baseIndent int) string {
	value = internalstrings.NormalizeNewlines(value)
	value = strings.TrimRight(value, "\n")
	if strings.TrimSpace(value) == "" {
		return indentLines("-", baseIndent)
	}

	lines := strings.Split(value, "\n")
	var out []string
	for i := 0; i < len(lines); {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			out = append(out, strings.Repeat(" ", baseIndent))
			i++
			continue
		}
		indent := internalstrings.LeadingSpaces(line)
		var parts []string
		for i < len(lines) {
			line = lines[i]
			if strings.TrimSpace(line) == "" {
				break
			}
			if internalstrings.LeadingSpaces(line) != indent {
				break
			}
			parts = append(parts, strings.TrimSpace(line[indent:]))
			i++
		}
		normalized := internalstrings.NormalizeWhitespace(strings.Join(parts, " "))
		if normalized == "" {
			out = append(out, strings.Repeat(" ", baseIndent+indent)+"-")
			continue
		}
		wrapWidth := width - baseIndent - indent
		if wrapWidth < 1 {
			wrapWidth = 1
		}
		wrapped := wordwrap.String(normalized, wrapWidth)
		wrapped = indentLines(wrapped, baseIndent+indent)
		out = append(out, strings.Split(wrapped, "\n")...)
	}
	return strings.Join(out, "\n")
}
