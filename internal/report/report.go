package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/lucasmrdt/epitech-styling-code/internal/source"
	"github.com/lucasmrdt/epitech-styling-code/internal/types"
)

// Supported output formats
const (
	FormatText = "text"
	FormatGCC  = "gcc"
	FormatJSON = "json"
)

// tabWidth matches the tab expansion used by the line length rule.
const tabWidth = 8

// Options control rendering
type Options struct {
	Verbose bool
	NoColor bool
}

// Render writes reports to w in the given format.
func Render(w io.Writer, format string, reports []types.FileReport, opts Options) error {
	switch format {
	case FormatText, "":
		return renderText(w, reports, opts)
	case FormatGCC:
		return renderGCC(w, reports)
	case FormatJSON:
		return renderJSON(w, reports)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Count returns the number of violations across reports.
func Count(reports []types.FileReport) int {
	n := 0
	for _, r := range reports {
		n += len(r.Violations)
	}
	return n
}

type palette struct {
	path, major, minor, info, rule, muted, caret *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		path:  color.New(color.Bold),
		major: color.New(color.FgRed, color.Bold),
		minor: color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgBlue),
		rule:  color.New(color.FgCyan),
		muted: color.New(color.FgHiBlack),
		caret: color.New(color.FgRed),
	}
	if noColor {
		for _, c := range []*color.Color{p.path, p.major, p.minor, p.info, p.rule, p.muted, p.caret} {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s string) *color.Color {
	switch s {
	case "major":
		return p.major
	case "info":
		return p.info
	default:
		return p.minor
	}
}

func renderText(w io.Writer, reports []types.FileReport, opts Options) error {
	p := newPalette(opts.NoColor)
	total, files := 0, 0

	for _, r := range reports {
		if r.Err != nil {
			fmt.Fprintf(w, "%s: %s\n", p.path.Sprint(r.Path), p.major.Sprintf("error: %v", r.Err))
			continue
		}

		var lines []string
		if opts.Verbose {
			lines = source.Lines(r.Source)
		}

		shown := 0
		for _, v := range r.Violations {
			// Skip info severity if not verbose
			if !opts.Verbose && v.Severity == "info" {
				continue
			}
			shown++
			fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
				p.path.Sprint(r.Path),
				v.Span.StartLine+1, v.Span.StartCol+1,
				p.severity(v.Severity).Sprintf("[%s]", v.Severity),
				p.rule.Sprint(v.RuleID),
				v.Message,
			)
			if opts.Verbose && v.Span.StartLine < len(lines) {
				writeContext(w, p, lines[v.Span.StartLine], v.Span)
			}
		}
		if shown > 0 {
			files++
			total += shown
		}
	}

	if total == 0 {
		fmt.Fprintln(w, p.muted.Sprint("No style issues found."))
		return nil
	}
	fmt.Fprintln(w, p.muted.Sprintf("%d violation(s) in %d file(s)", total, files))
	return nil
}

// writeContext prints the first line of span with a caret underline. Only the
// part of the span on that line is underlined.
func writeContext(w io.Writer, p palette, line string, span types.Span) {
	line = strings.TrimRight(line, "\r")
	runes := []rune(line)

	start := min(span.StartCol, len(runes))
	end := len(runes)
	if span.EndLine == span.StartLine {
		end = min(span.EndCol, len(runes))
	}

	prefix := displayWidth(string(runes[:start]))
	width := max(displayWidth(string(runes[start:end])), 1)

	fmt.Fprintf(w, "    %s\n", expand(line))
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", prefix), p.caret.Sprint(strings.Repeat("^", width)))
}

func expand(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expand(s))
}

func renderGCC(w io.Writer, reports []types.FileReport) error {
	for _, r := range reports {
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: error: %v\n", r.Path, r.Err); err != nil {
				return err
			}
			continue
		}
		for _, v := range r.Violations {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
				r.Path, v.Span.StartLine+1, v.Span.StartCol+1, v.Severity, v.Message, v.RuleID); err != nil {
				return err
			}
		}
	}
	return nil
}

type jsonReport struct {
	Path       string             `json:"path"`
	Error      string             `json:"error,omitempty"`
	Violations types.ViolationSet `json:"violations"`
}

func renderJSON(w io.Writer, reports []types.FileReport) error {
	out := make([]jsonReport, 0, len(reports))
	for _, r := range reports {
		jr := jsonReport{Path: r.Path, Violations: r.Violations}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		if jr.Violations == nil {
			jr.Violations = types.ViolationSet{}
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
