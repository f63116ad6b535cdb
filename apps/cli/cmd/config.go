package cmd

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/tco/packages/core/config"
	"github.com/abdul-hamid-achik/tco/packages/output"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and where each value comes from",
		Long: `Resolve the configuration exactly as a test run would and print it.

Examples:
  tco config show
  tco config show --suite sanity --repo ~/src/couchbase-operator
  tco config show -s p0 -o json`,
		Args: cobra.NoArgs,
		RunE: configShowCommand,
	}
	addOptionFlags(showCmd)
	showCmd.Flags().StringP(outputFlag, "o", getEnvString("TCO_OUTPUT", "console"), "Output format: console, json (env: TCO_OUTPUT)")
	showCmd.Flags().Bool(noColorFlag, getEnvBool("TCO_NO_COLOR", false), "Disable colored output (env: TCO_NO_COLOR)")

	getCmd := &cobra.Command{
		Use:   "get <option>",
		Short: "Print a single resolved option",
		Long: `Resolve the configuration and print one option.

Dotted paths are looked up in the JSON form shown by 'config show -o json'.

Examples:
  tco config get repo
  tco config get context.0
  tco config get sources.repo`,
		Args: cobra.ExactArgs(1),
		RunE: configGetCommand,
	}
	addOptionFlags(getCmd)

	configCmd.AddCommand(showCmd, getCmd)
	return configCmd
}

func configShowCommand(cmd *cobra.Command, args []string) error {
	done := setupLogging(cmd)
	defer done()

	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool(noColorFlag)
	format, _ := cmd.Flags().GetString(outputFlag)

	formatter, err := newFormatter(format, cmd.OutOrStdout(), false, noColor)
	if err != nil {
		return err
	}

	formatter.FormatConfig(cfg)
	return nil
}

func configGetCommand(cmd *cobra.Command, args []string) error {
	done := setupLogging(cmd)
	defer done()

	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}

	data, err := output.MarshalConfig(cfg)
	if err != nil {
		return err
	}

	path := args[0]
	if name, _, _ := strings.Cut(path, "."); config.IsKnown(name) {
		path = "options." + path
	}

	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return fmt.Errorf("option %q is not set", args[0])
	}

	if result.IsArray() {
		for _, item := range result.Array() {
			fmt.Fprintln(cmd.OutOrStdout(), item.String())
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.String())
	return nil
}
