// Package runner launches the Couchbase Operator E2E framework for a
// resolved configuration.
//
// It provides functionality for:
//   - Translating an EffectiveConfig into the framework's go test flags
//   - Generating a temporary suite when individual tests are requested
//   - Running go test inside the operator checkout with TESTDIR set
//   - Streaming output and reporting the child's exit status
package runner
