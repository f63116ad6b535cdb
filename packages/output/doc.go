// Package output renders tco's configuration, command lines and run
// results.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output
//
// Registry passwords are masked in every format.
package output
