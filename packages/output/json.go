package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/tco/packages/core/config"
	"github.com/abdul-hamid-achik/tco/packages/core/runner"
)

// JSONConfig is the JSON form of an effective configuration
type JSONConfig struct {
	Options  config.Values            `json:"options"`
	Selector string                   `json:"selector"`
	Sources  map[string]config.Source `json:"sources"`
}

// JSONResult is the JSON form of a run result
type JSONResult struct {
	Suite    string   `json:"suite"`
	Command  []string `json:"command"`
	ExitCode int      `json:"exitCode"`
	Passed   bool     `json:"passed"`
	Duration float64  `json:"duration"`
}

// JSONError carries a single error message
type JSONError struct {
	Error string `json:"error"`
}

// JSONCommand carries a command line
type JSONCommand struct {
	Command []string `json:"command"`
}

// MarshalConfig encodes cfg as indented JSON with secrets masked.
func MarshalConfig(cfg *config.EffectiveConfig) ([]byte, error) {
	return json.MarshalIndent(JSONConfig{
		Options:  MaskValues(cfg),
		Selector: cfg.Selector.String(),
		Sources:  cfg.Sources,
	}, "", "  ")
}

type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) encode(v any) {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (f *JSONFormatter) FormatConfig(cfg *config.EffectiveConfig) {
	f.encode(JSONConfig{
		Options:  MaskValues(cfg),
		Selector: cfg.Selector.String(),
		Sources:  cfg.Sources,
	})
}

func (f *JSONFormatter) FormatCommand(command []string) {
	f.encode(JSONCommand{Command: MaskArgs(command)})
}

func (f *JSONFormatter) FormatResult(result *runner.RunResult) {
	f.encode(JSONResult{
		Suite:    result.Suite,
		Command:  MaskArgs(result.Command),
		ExitCode: result.ExitCode,
		Passed:   result.Passed(),
		Duration: result.Duration.Seconds(),
	})
}

func (f *JSONFormatter) FormatError(err error) {
	f.encode(JSONError{Error: err.Error()})
}

func (f *JSONFormatter) FormatHeader(version string) {}
