package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/tco/packages/core/config"
	"github.com/abdul-hamid-achik/tco/packages/core/suite"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig(repo string, sel config.Selector) *config.EffectiveConfig {
	return &config.EffectiveConfig{
		Repo:               repo,
		Selector:           sel,
		Namespace:          "default",
		Kubeconfig:         "/home/dev/.kube/config",
		OperatorImage:      "couchbase/couchbase-operator:v1",
		AdmissionImage:     "couchbase/couchbase-operator-admission:v1",
		ServerImage:        "couchbase/server:6.5.0",
		ServerUpgradeImage: "couchbase/server:6.5.1",
		SyncGatewayImage:   "couchbase/sync-gateway:2.7.0-enterprise",
		StorageClass:       "standard",
	}
}

func TestNewRunner(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := NewRunner(baseConfig("/src", config.Suite{Name: "sanity"}))
		assert.Equal(t, "go", r.goBinary)
		assert.Equal(t, os.Stdout, r.stdout)
		assert.NotNil(t, r.baseEnv)
	})

	t.Run("with options", func(t *testing.T) {
		var out, errOut bytes.Buffer
		r := NewRunner(baseConfig("/src", config.Suite{Name: "sanity"}),
			WithGoBinary("/usr/local/go/bin/go"),
			WithOutput(&out, &errOut),
			WithBaseEnv([]string{"A=1"}),
		)
		assert.Equal(t, "/usr/local/go/bin/go", r.goBinary)
		assert.Equal(t, &out, r.stdout)
		assert.Equal(t, []string{"A=1"}, r.baseEnv)
	})
}

func TestRunner_Args(t *testing.T) {
	r := NewRunner(baseConfig("/src", config.Suite{Name: "sanity"}))

	want := []string{
		"test", "github.com/couchbase/couchbase-operator/test/e2e",
		"-run", "TestOperator",
		"-v",
		"-race",
		"-timeout", "16h",
		"-operator-image", "couchbase/couchbase-operator:v1",
		"-admission-image", "couchbase/couchbase-operator-admission:v1",
		"-server-image", "couchbase/server:6.5.0",
		"-server-image-upgrade", "couchbase/server:6.5.1",
		"-mobile-image", "couchbase/sync-gateway:2.7.0-enterprise",
		"-storage-class", "standard",
		"-suite", "TestSanity",
		"-kubeconfig1", "/home/dev/.kube/config",
		"-namespace1", "default",
		"-kubeconfig2", "/home/dev/.kube/config",
		"-namespace2", "remote",
	}

	if diff := cmp.Diff(want, r.Args("TestSanity")); diff != "" {
		t.Errorf("Args() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_ArgsOptional(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(cfg *config.EffectiveConfig)
		contains []string
		excludes []string
	}{
		{
			name:     "single context shared by both clusters",
			modify:   func(cfg *config.EffectiveConfig) { cfg.Contexts = []string{"kind-a"} },
			contains: []string{"-context1 kind-a -context2 kind-a"},
		},
		{
			name:     "two contexts",
			modify:   func(cfg *config.EffectiveConfig) { cfg.Contexts = []string{"kind-a", "kind-b"} },
			contains: []string{"-context1 kind-a -context2 kind-b"},
		},
		{
			name:     "collect logs",
			modify:   func(cfg *config.EffectiveConfig) { cfg.CollectLogs = true },
			contains: []string{"-collect-logs"},
		},
		{
			name: "docker registry",
			modify: func(cfg *config.EffectiveConfig) {
				cfg.Docker = &config.DockerRegistry{Server: "reg.example.com", Username: "dev", Password: "pw"}
			},
			contains: []string{"-docker-server reg.example.com -docker-username dev -docker-password pw"},
		},
		{
			name:     "nothing optional",
			modify:   func(cfg *config.EffectiveConfig) {},
			excludes: []string{"-context1", "-collect-logs", "-docker-server"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig("/src", config.Suite{Name: "sanity"})
			tt.modify(cfg)

			joined := strings.Join(NewRunner(cfg).Args("TestSanity"), " ")
			for _, s := range tt.contains {
				assert.Contains(t, joined, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, joined, s)
			}
		})
	}
}

func TestRunner_Environ(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("KUBECONFIG=/etc/kube\nTESTDIR=/ignored\n"), 0644))

	cfg := baseConfig("/src/operator", config.Suite{Name: "sanity"})
	cfg.EnvFile = envFile

	r := NewRunner(cfg, WithBaseEnv([]string{"HOME=/home/dev"}))
	environ, err := r.Environ()
	require.NoError(t, err)

	assert.Equal(t, []string{"HOME=/home/dev", "KUBECONFIG=/etc/kube", "TESTDIR=/src/operator"}, environ)
}

func TestRunner_EnvironMissingFile(t *testing.T) {
	cfg := baseConfig("/src/operator", config.Suite{Name: "sanity"})
	cfg.EnvFile = filepath.Join(t.TempDir(), "missing")

	_, err := NewRunner(cfg).Environ()
	assert.Error(t, err)
}

// fakeGo writes a script standing in for the go binary. It records its
// arguments, TESTDIR, working directory and the suites present while it
// ran, then sleeps for $FAKE_GO_SLEEP if set or exits with $FAKE_GO_EXIT.
func fakeGo(t *testing.T) (bin string, record string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake go binary needs a POSIX shell")
	}

	dir := t.TempDir()
	record = filepath.Join(dir, "record")
	bin = filepath.Join(dir, "go")
	script := `#!/bin/sh
{
  echo "args: $*"
  echo "testdir: $TESTDIR"
  echo "pwd: $(pwd)"
  echo "suites: $(ls "$TESTDIR/test/e2e/resources/suites" 2>/dev/null | tr '\n' ' ')"
} > "` + record + `"
echo "framework output"
if [ -n "$FAKE_GO_SLEEP" ]; then
  exec sleep "$FAKE_GO_SLEEP"
fi
exit ${FAKE_GO_EXIT:-0}
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))
	return bin, record
}

func newRepo(t *testing.T) string {
	t.Helper()
	repo, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(repo, suite.SuitesDir), 0755))
	return repo
}

func TestRunner_RunSuite(t *testing.T) {
	bin, record := fakeGo(t)
	repo := newRepo(t)

	var out bytes.Buffer
	r := NewRunner(baseConfig(repo, config.Suite{Name: "p0"}),
		WithGoBinary(bin),
		WithOutput(&out, &out),
		WithBaseEnv([]string{"PATH=" + os.Getenv("PATH")}),
	)

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Passed())
	assert.Equal(t, "TestP0", result.Suite)
	assert.Equal(t, bin, result.Command[0])
	assert.Equal(t, "framework output\n", out.String())

	data, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-suite TestP0")
	assert.Contains(t, string(data), "testdir: "+repo)
	assert.Contains(t, string(data), "pwd: "+repo)
}

func TestRunner_RunTests(t *testing.T) {
	bin, record := fakeGo(t)
	repo := newRepo(t)

	r := NewRunner(baseConfig(repo, config.Tests{Names: []string{"TestFoo"}}),
		WithGoBinary(bin),
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{}),
		WithBaseEnv([]string{"PATH=" + os.Getenv("PATH")}),
	)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Suite, "tco-"))

	data, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-suite "+result.Suite)
	// the generated suite existed while the framework ran
	assert.Contains(t, string(data), result.Suite+".yaml")

	// and is gone afterwards
	entries, err := os.ReadDir(filepath.Join(repo, suite.SuitesDir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunner_RunPropagatesExitCode(t *testing.T) {
	bin, _ := fakeGo(t)
	repo := newRepo(t)

	r := NewRunner(baseConfig(repo, config.Suite{Name: "sanity"}),
		WithGoBinary(bin),
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{}),
		WithBaseEnv([]string{"PATH=" + os.Getenv("PATH"), "FAKE_GO_EXIT=3"}),
	)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Passed())
	assert.Equal(t, 3, result.ExitCode)
}

func TestRunner_RunInterrupted(t *testing.T) {
	bin, record := fakeGo(t)
	repo := newRepo(t)

	r := NewRunner(baseConfig(repo, config.Tests{Names: []string{"TestFoo"}}),
		WithGoBinary(bin),
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{}),
		WithBaseEnv([]string{"PATH=" + os.Getenv("PATH"), "FAKE_GO_SLEEP=30"}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		// wait for the framework to start before interrupting it
		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			if _, err := os.Stat(record); err == nil {
				break
			}
			time.Sleep(20 * time.Millisecond)
		}
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	result, err := r.Run(ctx)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "interrupted")
	assert.Less(t, time.Since(start), 20*time.Second)

	entries, err := os.ReadDir(filepath.Join(repo, suite.SuitesDir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunner_RunMissingBinary(t *testing.T) {
	repo := newRepo(t)

	r := NewRunner(baseConfig(repo, config.Suite{Name: "sanity"}),
		WithGoBinary(filepath.Join(t.TempDir(), "no-such-go")),
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{}),
	)

	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running")
}

func TestRunner_RunTestsWithoutSuitesDir(t *testing.T) {
	r := NewRunner(baseConfig(t.TempDir(), config.Tests{Names: []string{"TestFoo"}}),
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{}),
	)

	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suites directory")
}
