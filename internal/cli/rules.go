package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules in the order they run",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}
}

func runRules(cmd *cobra.Command, args []string) error {
	opts := readOptions(cmd)
	a, err := newAnalyzer(opts, newLogger(opts.verbose))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tSEVERITY\tSTATUS\tDESCRIPTION")

	structural, patterns := a.Rules()
	for _, r := range structural {
		fmt.Fprintf(tw, "%s\tstructural\t%s\t%s\t%s\n", r.ID, r.Severity, status(r.Disabled), r.Description)
	}
	for _, p := range patterns {
		fmt.Fprintf(tw, "%s\tpattern\t%s\t%s\t%s\n", p.ID, p.Severity, status(p.Disabled), p.Message)
	}

	return tw.Flush()
}

func status(disabled bool) string {
	if disabled {
		return "disabled"
	}
	return "enabled"
}
