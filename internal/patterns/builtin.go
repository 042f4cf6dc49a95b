package patterns

import "regexp"

// RE2 has no lookahead. Rules that need one match the lookahead text too and
// report only capture group 1.
var builtinPatterns = []Pattern{
	{
		ID:       "TRAILING_WHITESPACE",
		Message:  "Line can't end with tabs or spaces.",
		Severity: "minor",
		Regexp:   regexp.MustCompile(`(?m)([\t ]+)\r?$`),
		Group:    1,
	},
	{
		ID:       "SPACE_BEFORE_TAB",
		Message:  "Can't have multiple tabs or spaces.",
		Severity: "minor",
		Regexp:   regexp.MustCompile(` +\t+`),
	},
	{
		// A comment with an opening brace, or an already consumed region,
		// anywhere before it.
		ID:       "COMMENT_AFTER_BRACE",
		Message:  "Can't have comment inside function.",
		Severity: "minor",
		Regexp:   regexp.MustCompile(`(?s)[{\x01].*?((?://|/\*)[^\n]*)`),
		Group:    1,
	},
	{
		ID:       "TAB_BEFORE_SPACE",
		Message:  "Can't have multiple tabs or spaces.",
		Severity: "minor",
		Regexp:   regexp.MustCompile(`\t+ +`),
	},
	{
		// From a brace to the first closing brace at column 0, with more
		// than 20 lines in between. Nesting is not tracked.
		ID:       "FUNCTION_TOO_LONG",
		Message:  "Function can't exceed 20 lines.",
		Severity: "major",
		Regexp:   regexp.MustCompile(`\{.*\n(?:(?:[^}\n].*)?\n){21,}\}`),
	},
	{
		ID:       "KEYWORD_SPACING",
		Message:  "Must have space after keyword.",
		Severity: "minor",
		Regexp:   regexp.MustCompile(`(return|if|else if|else|while|for)(?:\(|  |\t)`),
		Group:    1,
	},
	{
		ID:       "TOO_MANY_PARAMETERS",
		Message:  "Can't have more than 4 parameters to function.",
		Severity: "major",
		Regexp:   regexp.MustCompile(`(\(([^(),]*,){4,}[^()]*\)[ \t\n]+)\{`),
		Group:    1,
	},
}
