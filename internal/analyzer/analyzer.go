package analyzer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lucasmrdt/epitech-styling-code/internal/config"
	"github.com/lucasmrdt/epitech-styling-code/internal/fetch"
	"github.com/lucasmrdt/epitech-styling-code/internal/patterns"
	"github.com/lucasmrdt/epitech-styling-code/internal/rules"
	"github.com/lucasmrdt/epitech-styling-code/internal/source"
	"github.com/lucasmrdt/epitech-styling-code/internal/types"
)

// Analyzer performs static style analysis on C/C++ sources. It keeps no state
// between scans and is safe for concurrent use once built.
type Analyzer struct {
	logger      *slog.Logger
	ruleChecker *rules.RuleChecker
	scanner     *patterns.Scanner
	fetcher     *fetch.Client
	extensions  []string
}

// NewAnalyzer creates a new analyzer instance from a loaded configuration
func NewAnalyzer(cfg *config.Config, logger *slog.Logger) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	checker := rules.NewRuleChecker()
	checker.ApplyConfig(cfg)

	scanner := patterns.NewScanner()
	if err := scanner.ApplyConfig(cfg); err != nil {
		return nil, err
	}

	return &Analyzer{
		logger:      logger,
		ruleChecker: checker,
		scanner:     scanner,
		fetcher:     fetch.NewClient(),
		extensions:  cfg.Extensions,
	}, nil
}

// Rules returns the structural rules followed by the pattern rules.
func (a *Analyzer) Rules() ([]rules.Rule, []patterns.Pattern) {
	return a.ruleChecker.Rules(), a.scanner.Patterns()
}

// Extensions returns the file extensions eligible for scanning.
func (a *Analyzer) Extensions() []string {
	return a.extensions
}

// Scan checks a whole source text. Structural violations come first, then
// pattern violations; nothing is sorted or merged.
func (a *Analyzer) Scan(text string) types.ViolationSet {
	results := types.ViolationSet{}
	if text == "" {
		return results
	}

	file := source.NewFile("", text)
	index := source.NewIndex(text)

	// Run structural checks
	results = append(results, a.ruleChecker.Check(file)...)

	// Run pattern rules
	results = append(results, a.scanner.Scan(text, index)...)

	return results
}

// AnalyzeFile reads a local file or an http(s) URL and scans its content
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) types.FileReport {
	report := types.FileReport{Path: path}

	var (
		data []byte
		err  error
	)
	if fetch.IsURL(path) {
		data, err = a.fetcher.Get(ctx, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		report.Err = fmt.Errorf("failed to read source: %w", err)
		return report
	}

	report.Source = string(data)
	report.Violations = a.Scan(report.Source)
	return report
}

// AnalyzeAll scans every eligible file named by paths, walking directories.
// Files are scanned concurrently; reports keep the order of expansion.
func (a *Analyzer) AnalyzeAll(ctx context.Context, paths []string) ([]types.FileReport, error) {
	files, err := a.Expand(paths)
	if err != nil {
		return nil, err
	}

	reports := make([]types.FileReport, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report := a.AnalyzeFile(ctx, path)
			if report.Err != nil {
				a.logger.Warn("could not analyze file", "path", path, "error", report.Err)
			} else {
				a.logger.Debug("analyzed file", "path", path, "violations", len(report.Violations))
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Expand turns arguments into the list of files to scan. URLs and regular
// are kept as is; files and walked directory entries are kept only when
// their extension is eligible.
func (a *Analyzer) Expand(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		if fetch.IsURL(path) {
			files = append(files, path)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			if !source.Eligible(path, a.extensions) {
				a.logger.Info("skipping file with unsupported extension", "path", path)
				continue
			}
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if !source.Eligible(p, a.extensions) {
				a.logger.Debug("skipping file", "path", p)
				return nil
			}
			files = append(files, p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	return files, nil
}
