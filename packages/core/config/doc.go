// Package config resolves the effective tco configuration for one run.
//
// Three layers are merged, highest precedence first:
//   - the user config file (~/.tco/config)
//   - options given on the command line
//   - built-in defaults
//
// The user config file intentionally outranks the command line. It holds
// static per-developer values such as the repository path.
//
// Resolution fails with a *ParseError, *MissingOptionError,
// *ConflictingOptionsError or *InvalidValueError before any test is run.
package config
