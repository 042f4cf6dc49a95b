package patterns

import (
	"fmt"
	"regexp"

	"github.com/lucasmrdt/epitech-styling-code/internal/config"
	"github.com/lucasmrdt/epitech-styling-code/internal/source"
	"github.com/lucasmrdt/epitech-styling-code/internal/types"
)

// Marker replaces consumed text in the working copy. No built-in pattern can
// match it except COMMENT_AFTER_BRACE, which reads it as "a brace was seen".
const Marker = '\x01'

// Pattern defines one pattern-based style rule
type Pattern struct {
	ID       string
	Message  string
	Severity string
	Disabled bool
	Regexp   *regexp.Regexp
	// Group is the capture group reported as the violation; 0 is the whole
	// match. Text after the group is left unmasked.
	Group int
}

// Scanner finds every non-overlapping occurrence of each pattern in a text
type Scanner struct {
	patterns []Pattern
}

// NewScanner creates a scanner loaded with the built-in patterns
func NewScanner() *Scanner {
	scanner := &Scanner{
		patterns: []Pattern{},
	}

	scanner.registerPatterns()

	return scanner
}

// Patterns returns a copy of the scanner's patterns in scan order.
func (s *Scanner) Patterns() []Pattern {
	return append([]Pattern(nil), s.patterns...)
}

// Scan runs every enabled pattern over text. Results are grouped by pattern,
// in declaration order, and by position within a pattern.
func (s *Scanner) Scan(text string, index *source.Index) []types.Violation {
	var results []types.Violation

	if text == "" {
		return results
	}
	if index == nil {
		index = source.NewIndex(text)
	}

	for _, pattern := range s.patterns {
		if pattern.Disabled {
			continue
		}
		results = append(results, pattern.scan(text, index)...)
	}

	return results
}

// scan repeatedly takes the leftmost match in a working copy of text and masks
// everything up to the end of the reported region, so the next search can
// only report text past it.
func (p Pattern) scan(text string, index *source.Index) []types.Violation {
	var results []types.Violation
	work := []byte(text)
	masked := 0

	for {
		loc := p.Regexp.FindSubmatchIndex(work)
		if loc == nil {
			break
		}
		start, end := loc[2*p.Group], loc[2*p.Group+1]
		if start < 0 {
			start, end = loc[0], loc[1]
		}
		// no progress past the masked prefix: the pattern can only keep
		// matching consumed text
		if end <= masked {
			break
		}

		span, err := index.Span(start, end)
		if err != nil {
			break
		}
		results = append(results, types.Violation{
			RuleID:   p.ID,
			Message:  p.Message,
			Severity: p.Severity,
			Span:     span,
		})

		mask(work, masked, end)
		masked = end
	}

	return results
}

// mask overwrites every byte of work[from:to] except newlines with Marker.
func mask(work []byte, from, to int) {
	for i := from; i < to; i++ {
		if work[i] != '\n' {
			work[i] = Marker
		}
	}
}

// registerPatterns registers the built-in Epitech patterns
func (s *Scanner) registerPatterns() {
	s.patterns = append(s.patterns, builtinPatterns...)
}

// AddPattern compiles and appends a pattern after the existing ones.
func (s *Scanner) AddPattern(id, expr, message, severity string, group int) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("failed to compile pattern %s: %w", id, err)
	}
	if group < 0 || group > re.NumSubexp() {
		return fmt.Errorf("pattern %s has no capture group %d", id, group)
	}
	if severity == "" {
		severity = "minor"
	}
	s.patterns = append(s.patterns, Pattern{
		ID:       id,
		Message:  message,
		Severity: severity,
		Regexp:   re,
		Group:    group,
	})
	return nil
}

// ApplyConfig appends configured patterns, then applies rule overrides to
// every pattern, built-in or not.
func (s *Scanner) ApplyConfig(cfg *config.Config) error {
	for _, p := range cfg.Patterns {
		if err := s.AddPattern(p.ID, p.Pattern, p.Message, p.Severity, p.Group); err != nil {
			return err
		}
	}
	for i := range s.patterns {
		pattern := &s.patterns[i]
		if ruleConfig, ok := cfg.Rules[pattern.ID]; ok {
			if ruleConfig.Disabled {
				pattern.Disabled = true
			}
			if ruleConfig.Severity != "" {
				pattern.Severity = ruleConfig.Severity
			}
		}
	}
	return nil
}
