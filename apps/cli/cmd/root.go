package cmd

import (
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/tco/packages/output"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tco",
		Short: "Run Couchbase Operator E2E tests the easy way",
		Long: `tco runs the Couchbase Operator end-to-end tests from a local checkout.

Options are taken from the command line and from ~/.tco/config. Values in
the config file take precedence over command line flags, so keep static
settings such as repo there.

Examples:
  tco --suite sanity
  tco -t TestCreateCluster -t TestScaleUp
  tco -s p0 --repo ~/src/couchbase-operator --context kind-a --context kind-b
  tco -s sanity --dry-run
  tco -s p0 -o json`,
		Args:          cobra.NoArgs,
		RunE:          runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	addRunFlags(root)

	root.AddCommand(newSuitesCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the CLI and exits with the resulting status.
func Execute(v, bt string) {
	version = v
	buildTime = bt
	os.Exit(execute(newRootCmd(), os.Args[1:]))
}

func execute(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.Execute()
	if err != nil && !isReported(err) {
		f := output.NewConsoleFormatter(output.WithWriter(root.ErrOrStderr()))
		f.FormatError(err)
		if code := exitCodeFor(err); code == ExitUsageError {
			fmt.Fprintf(root.ErrOrStderr(), "Run '%s --help' for usage.\n", root.CommandPath())
		}
	}
	return exitCodeFor(err)
}
