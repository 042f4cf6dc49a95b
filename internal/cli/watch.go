package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/lucasmrdt/epitech-styling-code/internal/report"
	"github.com/lucasmrdt/epitech-styling-code/internal/source"
	"github.com/lucasmrdt/epitech-styling-code/internal/types"
	"github.com/lucasmrdt/epitech-styling-code/internal/watch"

	"github.com/spf13/cobra"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file|dir>...",
		Short: "Check sources, then check them again each time they are saved",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runWatch,
	}

	cmd.Flags().Duration("debounce", 0, "Delay to wait for more changes before checking (default 100ms)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := readOptions(cmd)
	debounce, _ := cmd.Flags().GetDuration("debounce")
	logger := newLogger(opts.verbose)

	a, err := newAnalyzer(opts, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	render := func(reports []types.FileReport) {
		if err := report.Render(out, opts.format, reports, opts.renderOptions()); err != nil {
			logger.Error("could not render report", "error", err)
		}
	}

	// first check before any change
	reports, err := a.AnalyzeAll(ctx, args)
	if err != nil {
		return err
	}
	render(reports)

	w, err := watch.New(args, func(paths []string) {
		reports := make([]types.FileReport, 0, len(paths))
		for _, path := range paths {
			reports = append(reports, a.AnalyzeFile(ctx, path))
		}
		render(reports)
	}, watch.Options{
		Debounce: debounce,
		Filter: func(path string) bool {
			return source.Eligible(path, a.Extensions())
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	logger.Info("watching for changes", "paths", args)
	return w.Run(ctx)
}
