package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/tco/packages/core/config"
	"github.com/abdul-hamid-achik/tco/packages/core/runner"
	"github.com/fatih/color"
)

// formatValue formats an option value for display
func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ", ")
	case string:
		if val == "" {
			return "-"
		}
		return val
	}
	return fmt.Sprintf("%v", v)
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatConfig prints every resolved option and the layer it came from.
func (f *ConsoleFormatter) FormatConfig(cfg *config.EffectiveConfig) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	values := MaskValues(cfg)

	width := 0
	for _, name := range config.KnownOptions {
		if len(name) > width {
			width = len(name)
		}
	}

	fmt.Fprintf(f.writer, "%s\n", bold("Effective configuration"))
	for _, name := range config.KnownOptions {
		value, ok := values[name]
		if !ok {
			continue
		}
		source := cfg.Sources[name]
		if source == "" {
			source = "-"
		}
		fmt.Fprintf(f.writer, "  %-*s  %s %s\n", width, name, cyan(formatValue(value)), faint("("+string(source)+")"))
	}
}

// FormatCommand prints the command that runs, or would run, the framework.
func (f *ConsoleFormatter) FormatCommand(command []string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("Command:"), strings.Join(MaskArgs(command), " "))
}

func (f *ConsoleFormatter) FormatResult(result *runner.RunResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(f.writer, "\n")
	if result.Passed() {
		fmt.Fprintf(f.writer, "%s %s\n", green("✓"), result.Suite)
	} else {
		fmt.Fprintf(f.writer, "%s %s %s\n", red("✗"), result.Suite, red(fmt.Sprintf("(exit code %d)", result.ExitCode)))
	}
	fmt.Fprintf(f.writer, "Time:  %s\n", result.Duration.Round(time.Millisecond))
	if f.verbose {
		fmt.Fprintf(f.writer, "Command: %s\n", strings.Join(MaskArgs(result.Command), " "))
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("tco"), version)
}
