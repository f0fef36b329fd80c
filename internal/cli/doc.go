// Package cli defines the railforge command surface. Each command is thin
// glue: it builds the execution context from the persistent flags and
// hands a target path, a payload, and placement intent to one of the
// mutation packages. Mutations already applied when a later step fails
// are not rolled back; re-running the command converges.
package cli
