package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lucasmrdt/epitech-styling-code/internal/analyzer"
	"github.com/lucasmrdt/epitech-styling-code/internal/config"
	"github.com/lucasmrdt/epitech-styling-code/internal/report"

	"github.com/spf13/cobra"
)

// ErrViolations is returned when a check reports at least one violation.
var ErrViolations = errors.New("style violations found")

// NewRootCommand creates and returns the root cobra command
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "epistyle [flags] <file|dir|url>...",
		Short: "Epitech coding-style checker for C/C++ sources",
		Long: `epistyle checks C/C++ sources against the Epitech coding style.
It reports missing headers, long lines, comments inside functions, mixed
indentation, long functions, missing spaces after keywords and functions
with too many parameters.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}

	cmd.PersistentFlags().StringP("config", "c", os.Getenv("EPISTYLE_CONFIG"), "Path to configuration file (optional)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().StringP("format", "o", report.FormatText, "Output format: text, gcc or json")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.AddCommand(newWatchCommand())
	cmd.AddCommand(newRulesCommand())

	return cmd
}

// options holds the flags shared by every command
type options struct {
	configPath string
	verbose    bool
	format     string
	noColor    bool
}

func readOptions(cmd *cobra.Command) options {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	format, _ := cmd.Flags().GetString("format")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return options{configPath: configPath, verbose: verbose, format: format, noColor: noColor}
}

func (o options) renderOptions() report.Options {
	return report.Options{Verbose: o.verbose, NoColor: o.noColor}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newAnalyzer(opts options, logger *slog.Logger) (*analyzer.Analyzer, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.configPath != "" {
		logger.Debug("loaded config", "path", opts.configPath, "extensions", cfg.Extensions)
	}
	return analyzer.NewAnalyzer(cfg, logger)
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts := readOptions(cmd)
	logger := newLogger(opts.verbose)

	a, err := newAnalyzer(opts, logger)
	if err != nil {
		return err
	}

	reports, err := a.AnalyzeAll(cmd.Context(), args)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return fmt.Errorf("no source file with extension %v found", a.Extensions())
	}

	if err := report.Render(cmd.OutOrStdout(), opts.format, reports, opts.renderOptions()); err != nil {
		return err
	}

	for _, r := range reports {
		if r.Err != nil {
			return fmt.Errorf("could not analyze %s: %w", r.Path, r.Err)
		}
	}
	if report.Count(reports) > 0 {
		return ErrViolations
	}
	return nil
}
