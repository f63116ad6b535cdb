package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/tco/packages/core/config"
	"github.com/abdul-hamid-achik/tco/packages/core/env"
	"github.com/abdul-hamid-achik/tco/packages/core/suite"
	"go.uber.org/zap"
)

const (
	// E2EPackage is the Go package holding the operator E2E framework
	E2EPackage = "github.com/couchbase/couchbase-operator/test/e2e"
	// E2ETestFunc is the top-level test the framework dispatches suites from
	E2ETestFunc = "TestOperator"
	// DefaultTimeout is passed to go test -timeout
	DefaultTimeout = "16h"

	remoteNamespace = "remote"
)

type Runner struct {
	config   *config.EffectiveConfig
	goBinary string
	stdout   io.Writer
	stderr   io.Writer
	baseEnv  []string
}

type Option func(*Runner)

// WithGoBinary overrides the go executable used to run the framework.
func WithGoBinary(path string) Option {
	return func(r *Runner) {
		r.goBinary = path
	}
}

// WithOutput sets where the framework's stdout and stderr are streamed.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithBaseEnv replaces the parent environment the child inherits.
func WithBaseEnv(environ []string) Option {
	return func(r *Runner) {
		r.baseEnv = environ
	}
}

func NewRunner(cfg *config.EffectiveConfig, opts ...Option) *Runner {
	r := &Runner{
		config:   cfg,
		goBinary: "go",
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.baseEnv == nil {
		r.baseEnv = os.Environ()
	}
	return r
}

type RunResult struct {
	Suite    string
	Command  []string
	ExitCode int
	Duration time.Duration
}

// Passed reports whether the framework exited successfully.
func (r *RunResult) Passed() bool {
	return r.ExitCode == 0
}

// Args returns the go test arguments that run the named suite.
func (r *Runner) Args(suiteName string) []string {
	cfg := r.config
	args := []string{
		"test", E2EPackage,
		"-run", E2ETestFunc,
		"-v",
		"-race",
		"-timeout", DefaultTimeout,
		"-operator-image", cfg.OperatorImage,
		"-admission-image", cfg.AdmissionImage,
		"-server-image", cfg.ServerImage,
		"-server-image-upgrade", cfg.ServerUpgradeImage,
		"-mobile-image", cfg.SyncGatewayImage,
		"-storage-class", cfg.StorageClass,
		"-suite", suiteName,
	}

	args = append(args, r.clusterArgs()...)

	if cfg.CollectLogs {
		args = append(args, "-collect-logs")
	}

	if cfg.Docker != nil {
		args = append(args,
			"-docker-server", cfg.Docker.Server,
			"-docker-username", cfg.Docker.Username,
			"-docker-password", cfg.Docker.Password,
		)
	}

	return args
}

// clusterArgs describes the two clusters the framework drives. Both use the
// same kube config; with a single context it is shared by both clusters.
func (r *Runner) clusterArgs() []string {
	cfg := r.config
	args := []string{
		"-kubeconfig1", cfg.Kubeconfig,
		"-namespace1", cfg.Namespace,
		"-kubeconfig2", cfg.Kubeconfig,
		"-namespace2", remoteNamespace,
	}

	switch len(cfg.Contexts) {
	case 0:
	case 1:
		args = append(args, "-context1", cfg.Contexts[0], "-context2", cfg.Contexts[0])
	default:
		args = append(args, "-context1", cfg.Contexts[0], "-context2", cfg.Contexts[1])
	}
	return args
}

// Environ returns the environment the framework runs with.
func (r *Runner) Environ() ([]string, error) {
	var fromFile map[string]string
	if r.config.EnvFile != "" {
		vars, err := env.LoadDotEnv(r.config.EnvFile)
		if err != nil {
			return nil, err
		}
		fromFile = vars
	}

	return env.Environ(r.baseEnv, fromFile, map[string]string{env.TestDirVar: r.config.Repo}), nil
}

// prepareSuite returns the suite name to run and a cleanup function for
// any generated suite file.
func (r *Runner) prepareSuite() (string, func(), error) {
	switch sel := r.config.Selector.(type) {
	case config.Suite:
		name, ok := suite.Lookup(sel.Name)
		if !ok {
			return "", nil, fmt.Errorf("unknown suite %q", sel.Name)
		}
		return name, func() {}, nil
	case config.Tests:
		gen, err := suite.Write(r.config.Repo, suite.NewSingle(sel.Names))
		if err != nil {
			return "", nil, err
		}
		cleanup := func() {
			if err := gen.Remove(); err != nil {
				zap.S().Named("runner").Warnw("could not remove generated suite", "path", gen.Path, "error", err)
			}
		}
		return gen.Name, cleanup, nil
	default:
		return "", nil, fmt.Errorf("no suite or test selected")
	}
}

// Run executes the framework and waits for it to finish. A non-zero exit
// from the framework is reported through RunResult.ExitCode, not as an
// error.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	log := zap.S().Named("runner")

	environ, err := r.Environ()
	if err != nil {
		return nil, err
	}

	suiteName, cleanup, err := r.prepareSuite()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := r.Args(suiteName)
	result := &RunResult{
		Suite:   suiteName,
		Command: append([]string{r.goBinary}, args...),
	}

	log.Infow("running e2e tests", "suite", suiteName, "selector", r.config.Selector.String(), "repo", r.config.Repo)

	start := time.Now()
	exitCode, err := r.execute(ctx, args, environ)
	result.Duration = time.Since(start)
	if err != nil {
		return nil, err
	}
	result.ExitCode = exitCode

	log.Debugw("e2e tests finished", "exitCode", exitCode, "duration", result.Duration)
	return result, nil
}
