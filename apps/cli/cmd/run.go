package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/abdul-hamid-achik/tco/packages/core/config"
	"github.com/abdul-hamid-achik/tco/packages/core/runner"
	"github.com/abdul-hamid-achik/tco/packages/core/suite"
	"github.com/abdul-hamid-achik/tco/packages/logging"
	"github.com/abdul-hamid-achik/tco/packages/output"
	"github.com/spf13/cobra"
)

// Formatter interface for all output formatters
type Formatter interface {
	FormatConfig(cfg *config.EffectiveConfig)
	FormatCommand(command []string)
	FormatResult(result *runner.RunResult)
	FormatError(err error)
	FormatHeader(version string)
}

func addRunFlags(cmd *cobra.Command) {
	addOptionFlags(cmd)
	cmd.Flags().Bool(dryRunFlag, false, "Print the go test command without running it")
	cmd.Flags().StringP(outputFlag, "o", getEnvString("TCO_OUTPUT", "console"), "Output format: console, json (env: TCO_OUTPUT)")
	cmd.Flags().Bool(noColorFlag, getEnvBool("TCO_NO_COLOR", false), "Disable colored output (env: TCO_NO_COLOR)")
	cmd.Flags().String(goFlag, getEnvString("TCO_GO", "go"), "Go binary used to run the framework (env: TCO_GO)")
}

// newFormatter returns the formatter for the named output format.
func newFormatter(format string, w io.Writer, verbose, noColor bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(w)), nil
	case "console":
		return output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithVerbose(verbose),
			output.WithNoColor(noColor),
		), nil
	default:
		return nil, &usageError{err: fmt.Errorf("unknown output format %q", format)}
	}
}

// setupLogging configures logging from the verbose flag before resolution.
func setupLogging(cmd *cobra.Command) func() {
	verbose, _ := cmd.Flags().GetBool(config.OptVerbose)
	done, err := logging.Setup(verbose)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
	}
	return done
}

func runCommand(cmd *cobra.Command, args []string) error {
	done := setupLogging(cmd)
	defer func() { done() }()

	noColor, _ := cmd.Flags().GetBool(noColorFlag)
	verboseFlag, _ := cmd.Flags().GetBool(config.OptVerbose)
	format, _ := cmd.Flags().GetString(outputFlag)

	errFormatter, err := newFormatter(format, cmd.ErrOrStderr(), false, noColor)
	if err != nil {
		return err
	}

	cfg, err := resolve(cmd)
	if err != nil {
		errFormatter.FormatError(err)
		return &exitError{code: exitCodeFor(err), err: err, reported: true}
	}

	// verbose may also come from the config file
	if cfg.Verbose && !verboseFlag {
		done()
		if d, err := logging.Setup(true); err == nil {
			done = d
		} else {
			done = func() {}
		}
	}

	formatter, err := newFormatter(format, cmd.OutOrStdout(), cfg.Verbose, noColor)
	if err != nil {
		return err
	}

	// stdout carries only the JSON documents in json mode
	frameworkOut := cmd.OutOrStdout()
	if strings.EqualFold(format, "json") {
		frameworkOut = cmd.ErrOrStderr()
	}

	goBinary, _ := cmd.Flags().GetString(goFlag)
	r := runner.NewRunner(cfg,
		runner.WithGoBinary(goBinary),
		runner.WithOutput(frameworkOut, cmd.ErrOrStderr()),
	)

	if cfg.Verbose {
		formatter.FormatHeader(version)
		formatter.FormatConfig(cfg)
	}

	if dryRun, _ := cmd.Flags().GetBool(dryRunFlag); dryRun {
		formatter.FormatCommand(append([]string{goBinary}, r.Args(dryRunSuiteName(cfg))...))
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := r.Run(ctx)
	if err != nil {
		errFormatter.FormatError(err)
		return &exitError{code: ExitFailure, err: err, reported: true}
	}

	formatter.FormatResult(result)
	if !result.Passed() {
		return &exitError{
			code:     result.ExitCode,
			err:      fmt.Errorf("%s failed with exit code %d", result.Suite, result.ExitCode),
			reported: true,
		}
	}
	return nil
}

// dryRunSuiteName names the suite a dry run would use without generating
// a suite file.
func dryRunSuiteName(cfg *config.EffectiveConfig) string {
	if s, ok := cfg.Selector.(config.Suite); ok {
		if name, ok := suite.Lookup(s.Name); ok {
			return name
		}
	}
	return "<generated>"
}
