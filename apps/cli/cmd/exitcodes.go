package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/tco/packages/core/config"
)

// Exit codes for tco CLI. When the E2E framework itself fails, its exit
// code is passed through unchanged.
const (
	// ExitSuccess indicates the tests passed
	ExitSuccess = 0

	// ExitFailure indicates tco could not run the tests
	ExitFailure = 1

	// ExitConfigError indicates the configuration could not be resolved
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries a specific exit code. When reported is set the error
// has already been shown to the user.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

// exitCodeFor maps an error returned by a command to a process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	if config.IsResolutionError(err) {
		return ExitConfigError
	}

	return ExitFailure
}

// isReported reports whether err has already been printed.
func isReported(err error) bool {
	var exitErr *exitError
	return errors.As(err, &exitErr) && exitErr.reported
}
