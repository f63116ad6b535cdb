package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/tco/packages/core/config"
	"github.com/abdul-hamid-achik/tco/packages/core/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *config.EffectiveConfig {
	return &config.EffectiveConfig{
		Repo:          "/src/operator",
		Selector:      config.Suite{Name: "sanity"},
		Namespace:     "default",
		Kubeconfig:    "/home/dev/.kube/config",
		OperatorImage: "couchbase/couchbase-operator:v1",
		StorageClass:  "standard",
		Docker:        &config.DockerRegistry{Server: "reg", Username: "dev", Password: "hunter2"},
		Sources: map[string]config.Source{
			config.OptRepo:  config.SourceFile,
			config.OptSuite: config.SourceCLI,
		},
	}
}

func TestMaskArgs(t *testing.T) {
	args := []string{"test", "-docker-username", "dev", "-docker-password", "hunter2", "-suite", "TestP0"}

	got := MaskArgs(args)
	assert.Equal(t, []string{"test", "-docker-username", "dev", "-docker-password", "********", "-suite", "TestP0"}, got)
	// input untouched
	assert.Equal(t, "hunter2", args[4])

	// trailing secret flag without value
	assert.Equal(t, []string{"-docker-password"}, MaskArgs([]string{"-docker-password"}))
}

func TestMaskValues(t *testing.T) {
	values := MaskValues(sampleConfig())
	assert.Equal(t, "********", values[config.OptDockerPassword])
	assert.Equal(t, "dev", values[config.OptDockerUsername])
}

func TestConsoleFormatter_FormatConfig(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatConfig(sampleConfig())
	out := buf.String()

	assert.Contains(t, out, "Effective configuration")
	assert.Regexp(t, `repo\s+/src/operator \(file\)`, out)
	assert.Regexp(t, `suite\s+sanity \(cli\)`, out)
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "test ")
}

func TestConsoleFormatter_FormatResult(t *testing.T) {
	tests := []struct {
		name     string
		result   *runner.RunResult
		contains []string
	}{
		{
			name:     "passed",
			result:   &runner.RunResult{Suite: "TestSanity", Duration: 1500 * time.Millisecond},
			contains: []string{"✓ TestSanity", "Time:  1.5s"},
		},
		{
			name:     "failed",
			result:   &runner.RunResult{Suite: "TestP0", ExitCode: 2},
			contains: []string{"✗ TestP0", "(exit code 2)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewConsoleFormatter(WithWriter(&buf), WithNoColor(true)).FormatResult(tt.result)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestConsoleFormatter_FormatCommandAndError(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatCommand([]string{"go", "test", "-docker-password", "hunter2"})
	f.FormatError(errors.New("boom"))

	assert.Equal(t, "Command: go test -docker-password ********\nError: boom\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatResult(&runner.RunResult{
		Suite:    "TestSanity",
		Command:  []string{"go", "test"},
		ExitCode: 1,
		Duration: 2 * time.Second,
	})

	var got JSONResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, JSONResult{
		Suite:    "TestSanity",
		Command:  []string{"go", "test"},
		ExitCode: 1,
		Passed:   false,
		Duration: 2,
	}, got)
}

func TestMarshalConfig(t *testing.T) {
	data, err := MarshalConfig(sampleConfig())
	require.NoError(t, err)

	var got struct {
		Options  map[string]any    `json:"options"`
		Selector string            `json:"selector"`
		Sources  map[string]string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "/src/operator", got.Options["repo"])
	assert.Equal(t, "********", got.Options["docker-password"])
	assert.Equal(t, "suite sanity", got.Selector)
	assert.Equal(t, "file", got.Sources["repo"])
}
