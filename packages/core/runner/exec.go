package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// interruptGrace is how long the framework gets to clean up after an
// interrupt before it is killed.
const interruptGrace = 30 * time.Second

// execute runs the go binary in the repository and returns its exit code.
// Failing to start the process or cancelling ctx is an error, a non-zero
// exit is not.
func (r *Runner) execute(ctx context.Context, args []string, environ []string) (int, error) {
	cmd := exec.CommandContext(ctx, r.goBinary, args...)
	cmd.Dir = r.config.Repo
	cmd.Env = environ
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = interruptGrace

	err := cmd.Run()
	if ctx.Err() != nil {
		return 0, fmt.Errorf("%s interrupted: %w", r.goBinary, ctx.Err())
	}
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		// killed by a signal
		return 1, nil
	}

	return 0, fmt.Errorf("running %s: %w", r.goBinary, err)
}
