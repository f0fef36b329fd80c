// Package scaffold generates new project files from embedded templates.
// It powers the "railforge resource" command, producing the controller,
// policy, and view stubs for a resource. Existing destination files are
// skipped unless the caller forces an overwrite.
package scaffold
