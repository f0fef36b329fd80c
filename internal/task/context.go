// Package task carries the execution context threaded through every
// mutation: the project root, the dry-run flag, and verbosity. It replaces
// ambient global state so that callers and tests control behavior
// explicitly.
package task

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrMissingTarget reports a required target file that does not exist.
// Mutators without a self-initialization policy surface it to the caller.
var ErrMissingTarget = errors.New("target file does not exist")

// Context is the execution context for one scaffold invocation. Mutations
// are applied sequentially against Root; there is no locking and no
// rollback across mutations.
type Context struct {
	Root    string
	DryRun  bool
	Verbose bool
	Out     io.Writer
}

// New returns a Context rooted at the given project directory.
func New(root string) *Context {
	return &Context{Root: root, Out: os.Stderr}
}

// Path resolves a project-relative path against the root.
func (c *Context) Path(rel string) string {
	return filepath.Join(c.Root, rel)
}

// Logf prints a progress line when verbose mode is on.
func (c *Context) Logf(format string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	out := c.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, format+"\n", args...)
}

// ReadFile reads a required target file. A missing file is a precondition
// fault wrapping ErrMissingTarget.
func (c *Context) ReadFile(rel string) ([]byte, error) {
	data, err := os.ReadFile(c.Path(rel))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", rel, ErrMissingTarget)
		}
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	return data, nil
}

// ReadFileIfExists reads a self-initializing target file, returning empty
// contents when the file is absent.
func (c *Context) ReadFileIfExists(rel string) ([]byte, error) {
	data, err := os.ReadFile(c.Path(rel))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	return data, nil
}

// WriteFile writes the full contents of a target file, creating parent
// directories as needed. In dry-run mode it only logs the intended write.
func (c *Context) WriteFile(rel string, data []byte) error {
	if c.DryRun {
		c.Logf("dry-run: would write %d bytes to %s", len(data), rel)
		return nil
	}
	path := c.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	c.Logf("wrote %s", rel)
	return nil
}

// FileExists reports whether the target file exists.
func (c *Context) FileExists(rel string) bool {
	_, err := os.Stat(c.Path(rel))
	return err == nil
}
