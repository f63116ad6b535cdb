// Package suite knows the operator E2E suites that tco can select by alias
// and builds the throwaway suite definitions used to run individual tests.
//
// It provides functionality for:
//   - Mapping short suite aliases (sanity, p0, ...) to framework suite names
//   - Generating a single-group suite definition for a list of test cases
//   - Writing that definition into the repository's suites directory
package suite
