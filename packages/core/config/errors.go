package config

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError reports a user config file that exists but cannot be used.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid config file %s", e.Path)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingOptionError reports a required option that is unset after merging.
// When more than one option is listed, exactly one of them is required.
type MissingOptionError struct {
	Options []string
}

func (e *MissingOptionError) Error() string {
	if len(e.Options) == 1 {
		return fmt.Sprintf("required option --%s unset", e.Options[0])
	}
	return fmt.Sprintf("one of %s is required", flagList(e.Options))
}

// ConflictingOptionsError reports mutually exclusive options that are both set.
type ConflictingOptionsError struct {
	Options []string
}

func (e *ConflictingOptionsError) Error() string {
	return fmt.Sprintf("options %s are mutually exclusive", flagList(e.Options))
}

// InvalidValueError reports an option whose value is outside its allowed set.
type InvalidValueError struct {
	Option string
	Value  any
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %v for --%s: %s", e.Value, e.Option, e.Reason)
}

// IsResolutionError reports whether err came from configuration resolution.
func IsResolutionError(err error) bool {
	var (
		parseErr    *ParseError
		missingErr  *MissingOptionError
		conflictErr *ConflictingOptionsError
		invalidErr  *InvalidValueError
	)
	return errors.As(err, &parseErr) ||
		errors.As(err, &missingErr) ||
		errors.As(err, &conflictErr) ||
		errors.As(err, &invalidErr)
}

func flagList(options []string) string {
	flags := make([]string, len(options))
	for i, o := range options {
		flags[i] = "--" + o
	}
	return strings.Join(flags, ", ")
}
