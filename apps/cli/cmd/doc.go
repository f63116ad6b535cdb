// Package cmd implements the tco CLI commands using Cobra.
//
// Running tco without a subcommand resolves the configuration and runs the
// Couchbase Operator E2E tests. Available subcommands:
//   - suites: List the suite aliases accepted by --suite
//   - config: Show the effective configuration or a single option
//   - init: Create a starter ~/.tco/config
//   - version: Show tco version information
//   - completion: Generate shell completion scripts
package cmd
