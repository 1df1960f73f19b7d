package errors

import (
	"fmt"
	"os"
	"strings"

	"turtlescript/console/pkg/script/ast"
)

// ExtractContext formats the lines surrounding location in source, marking
// the error line and column.
func ExtractContext(source string, location ast.Location, contextLines int) string {
	if location.Line <= 0 || source == "" {
		return ""
	}

	lines := strings.Split(strings.TrimRight(source, "\n"), "\n")

	errorLine := location.Line - 1
	if errorLine >= len(lines) {
		return ""
	}
	startLine := errorLine - contextLines
	endLine := errorLine + contextLines

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		lineNumStr := fmt.Sprintf("%*d", maxLineNumWidth, i+1)
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}

		sb.WriteString(fmt.Sprintf("%s %s | %s\n", prefix, lineNumStr, lines[i]))

		if i == errorLine && location.Column > 0 {
			padding := strings.Repeat(" ", location.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}

// ExtractFileContext reads the file named by location and extracts its context.
func ExtractFileContext(location ast.Location, contextLines int) string {
	if !location.IsValid() {
		return ""
	}
	data, err := os.ReadFile(location.File)
	if err != nil {
		return ""
	}
	return ExtractContext(string(data), location, contextLines)
}

// WithContext fills in the context of every error in the list from source.
func (el *ErrorList) WithContext(source string, contextLines int) *ErrorList {
	for _, err := range el.Errors {
		if err.Context == "" {
			err.Context = ExtractContext(source, err.Location, contextLines)
		}
	}
	return el
}
