// Package installer shells out to external tools such as bundler. A
// failed invocation is reported through the Result — captured combined
// output plus a success flag — rather than an error, so callers decide
// whether to continue.
package installer

import (
	"os/exec"

	"github.com/railforge-dev/railforge/internal/task"
)

// Result captures one tool invocation.
type Result struct {
	OK     bool
	Output string // combined stdout and stderr
}

// Run executes a tool in the project root and captures its combined
// output. A tool missing from PATH is reported as a failed Result, not an
// error. Run always executes; mutation-causing commands must honor
// dry-run themselves (see Bundle).
func Run(ctx *task.Context, name string, args ...string) *Result {
	path, err := exec.LookPath(name)
	if err != nil {
		return &Result{OK: false, Output: name + " not found in PATH"}
	}

	cmd := exec.Command(path, args...)
	cmd.Dir = ctx.Root
	out, err := cmd.CombinedOutput()
	return &Result{OK: err == nil, Output: string(out)}
}

// Bundle runs `bundle install` in the project root. In dry-run mode the
// install is skipped and reported as successful.
func Bundle(ctx *task.Context) *Result {
	if ctx.DryRun {
		ctx.Logf("dry-run: would run bundle install")
		return &Result{OK: true}
	}
	ctx.Logf("running bundle install")
	return Run(ctx, "bundle", "install")
}
