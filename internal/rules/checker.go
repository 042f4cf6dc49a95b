package rules

import (
	"regexp"
	"strings"

	"github.com/lucasmrdt/epitech-styling-code/internal/config"
	"github.com/lucasmrdt/epitech-styling-code/internal/source"
	"github.com/lucasmrdt/epitech-styling-code/internal/types"
)

const (
	// TabSize is the number of spaces a tab counts for in line length.
	TabSize = 8
	// MaxLineLength is the longest line allowed, tabs expanded.
	MaxLineLength = 80
)

var headerPattern = regexp.MustCompile(`\A/\*\n\*\* EPITECH PROJECT, [0-9]{4}\n\*\* .*\n\*\* File description:\n(?:\*\* .*\n)+\*/\n.*`)

// RuleChecker manages and executes the structural style rules
type RuleChecker struct {
	rules []Rule
}

// Rule defines a structural check
type Rule struct {
	ID          string
	Description string
	Severity    string
	Disabled    bool
	Check       func(*source.File) []types.Violation
}

// NewRuleChecker creates a new rule checker with default rules
func NewRuleChecker() *RuleChecker {
	checker := &RuleChecker{
		rules: []Rule{},
	}

	// Register default rules
	checker.registerDefaultRules()

	return checker
}

// Rules returns a copy of the registered rules in check order.
func (e *RuleChecker) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Check runs all rules against the file, in registration order
func (e *RuleChecker) Check(file *source.File) []types.Violation {
	var results []types.Violation

	for _, rule := range e.rules {
		if rule.Disabled {
			continue
		}
		ruleResults := rule.Check(file)
		for i := range ruleResults {
			ruleResults[i].RuleID = rule.ID
			ruleResults[i].Severity = rule.Severity
		}
		results = append(results, ruleResults...)
	}

	return results
}

// registerDefaultRules registers built-in structural rules
func (e *RuleChecker) registerDefaultRules() {
	// Rule HEADER: Epitech header comment at the top of the file
	e.registerRule("HEADER", "File must start with the Epitech header.", "major", checkFileHeader)

	// Rule LINE_LENGTH: 80 columns, tabs counting for 8
	e.registerRule("LINE_LENGTH", "Line can't exceed 80 columns.", "major", checkLineLength)

	// Rule COMMENT_IN_FUNCTION: no comment between column-0 braces
	e.registerRule("COMMENT_IN_FUNCTION", "Can't have comment inside function.", "minor", checkCommentInsideFunction)
}

// registerRule is a helper to register rules
func (e *RuleChecker) registerRule(id, description, severity string, checkFunc func(*source.File) []types.Violation) {
	e.rules = append(e.rules, Rule{
		ID:          id,
		Description: description,
		Severity:    severity,
		Check:       checkFunc,
	})
}

func checkFileHeader(file *source.File) []types.Violation {
	if headerPattern.MatchString(file.Text) {
		return nil
	}
	return []types.Violation{{
		Message: "Missing or malformed Epitech header.",
		Span: types.Span{
			StartLine: 0,
			StartCol:  0,
			EndLine:   5,
			EndCol:    types.UnboundedCol,
		},
	}}
}

func checkLineLength(file *source.File) []types.Violation {
	var results []types.Violation

	for i, line := range file.Lines {
		expanded := expandTabs(line)
		if length := columns(expanded); length > MaxLineLength {
			results = append(results, lineViolation(i, expanded, "Line exceeds 80 columns."))
		}
	}

	return results
}

// The state flips only on braces at column 0; nested or indented braces are
// ignored.
func checkCommentInsideFunction(file *source.File) []types.Violation {
	var results []types.Violation
	inFunction := false

	for i, line := range file.Lines {
		if strings.HasPrefix(line, "{") {
			inFunction = true
		} else if strings.HasPrefix(line, "}") {
			inFunction = false
		}
		if inFunction && hasComment(line) {
			results = append(results, lineViolation(i, line, "Can't have comment inside function."))
		}
	}

	return results
}

// applies configuration to the rules
func (e *RuleChecker) ApplyConfig(cfg *config.Config) {
	for i := range e.rules {
		rule := &e.rules[i]
		if ruleConfig, ok := cfg.Rules[rule.ID]; ok {
			if ruleConfig.Disabled {
				rule.Disabled = true
			}
			if ruleConfig.Severity != "" {
				rule.Severity = ruleConfig.Severity
			}
		}
	}
}
