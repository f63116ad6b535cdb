package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/abdul-hamid-achik/tco/packages/core/suite"
	"github.com/spf13/cobra"
)

func newSuitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suites",
		Short: "List the suite aliases accepted by --suite",
		Long: `List the suite aliases accepted by --suite and the framework suites
they run.

Examples:
  tco suites`,
		Args: cobra.NoArgs,
		RunE: suitesCommand,
	}
}

func suitesCommand(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ALIAS\tSUITE")
	for _, alias := range suite.Aliases() {
		name, _ := suite.Lookup(alias)
		fmt.Fprintf(w, "%s\t%s\n", alias, name)
	}
	return w.Flush()
}
