package types

import "math"

// UnboundedCol is the end column used for spans that run to the end of a line
// whatever its length.
const UnboundedCol = math.MaxInt32

// Span is a zero-based region of source text. Columns count runes.
type Span struct {
	StartLine int `json:"startLine"`
	StartCol  int `json:"startCol"`
	EndLine   int `json:"endLine"`
	EndCol    int `json:"endCol"`
}

// LineSpan returns a span covering columns [0, length) of a single line.
func LineSpan(line, length int) Span {
	return Span{StartLine: line, StartCol: 0, EndLine: line, EndCol: length}
}

// Violation represents a single style violation
type Violation struct {
	RuleID   string `json:"rule"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "major", "minor", "info"
	Span     Span   `json:"span"`
}

// ViolationSet is the ordered result of one scan.
type ViolationSet []Violation

// FileReport holds the violations found in one file, or the error that
// prevented it from being scanned.
type FileReport struct {
	Path       string       `json:"path"`
	Violations ViolationSet `json:"violations"`
	Source     string       `json:"-"`
	Err        error        `json:"-"`
}
