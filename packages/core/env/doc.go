// Package env builds the process environment handed to the E2E framework.
//
// It provides functionality for:
//   - Loading KEY=value pairs from a dotenv file
//   - Layering those pairs and fixed variables (TESTDIR) over the parent environment
package env
