// Package linelist mutates flat, newline-delimited list files such as
// .gitignore. The file is created on first use, so first-run and
// repeat-run code paths are identical.
package linelist

import (
	"strings"

	"github.com/railforge-dev/railforge/internal/task"
	"github.com/railforge-dev/railforge/internal/textedit"
)

// AppendUnique appends line to the list file at rel, creating the file if
// absent. If an identical line already exists the file is left untouched.
func AppendUnique(ctx *task.Context, rel, line string) error {
	content, err := ctx.ReadFileIfExists(rel)
	if err != nil {
		return err
	}

	if textedit.ContainsLine(content, line) {
		ctx.Logf("%s already lists %q", rel, line)
		return nil
	}

	content = textedit.EnsureTrailingNewline(content)
	content = append(content, line+"\n"...)
	return ctx.WriteFile(rel, content)
}

// Remove deletes the line equal to line from the list file. A missing
// file or missing line is a no-op.
func Remove(ctx *task.Context, rel, line string) error {
	content, err := ctx.ReadFileIfExists(rel)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	found := false
	for _, l := range lines {
		if strings.TrimSpace(l) == strings.TrimSpace(line) {
			found = true
			continue
		}
		result = append(result, l)
	}
	if !found {
		return nil
	}

	return ctx.WriteFile(rel, []byte(strings.Join(result, "\n")))
}
