package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/lucasmrdt/epitech-styling-code/internal/types"
)

// Helper functions for rule creation

// expandTabs replaces every tab with TabSize spaces. Tabs are not aligned to
// tab stops.
func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", TabSize))
}

// columns returns the number of characters in line
func columns(line string) int {
	return utf8.RuneCountInString(line)
}

// hasComment checks if a line contains a comment opener
func hasComment(line string) bool {
	return strings.Contains(line, "//") || strings.Contains(line, "/*")
}

// lineViolation is a helper to create a Violation covering a whole line
func lineViolation(i int, line, message string) types.Violation {
	return types.Violation{
		Message: message,
		Span:    types.LineSpan(i, columns(line)),
	}
}
