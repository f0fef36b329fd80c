// Package procfile manages single-line "name: command" directives in
// process manifests (Procfile, Procfile.<env>). At most one live directive
// per name exists after any mutation. The manifest is created on first use.
package procfile

import (
	"regexp"

	"github.com/railforge-dev/railforge/internal/task"
	"github.com/railforge-dev/railforge/internal/textedit"
)

// FileForEnv derives the manifest name for a named environment, e.g.
// FileForEnv("Procfile", "dev") → "Procfile.dev". An empty environment
// selects the base manifest.
func FileForEnv(base, env string) string {
	if env == "" {
		return base
	}
	return base + "." + env
}

// keyPattern matches the whole directive line for a process name.
func keyPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(key) + `:[^\n]*$`)
}

// removePattern matches the directive line together with the contiguous
// run of comment lines immediately above it. Only directly adjacent
// comments match, so annotations belonging to another directive are
// never swallowed.
func removePattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^(?:#[^\n]*\n)*` + regexp.QuoteMeta(key) + `:[^\n]*\n?`)
}

// Upsert writes the directive "key: command" into the manifest at rel.
// An existing directive for key is replaced in place; otherwise the line
// is appended at the end of the file.
func Upsert(ctx *task.Context, rel, key, command string) error {
	content, err := ctx.ReadFileIfExists(rel)
	if err != nil {
		return err
	}

	line := key + ": " + command
	if span, ok := textedit.Locate(content, keyPattern(key)); ok {
		if string(content[span.Start:span.End]) == line {
			ctx.Logf("%s already declares %q", rel, key)
			return nil
		}
		content = textedit.ReplaceSpan(content, span, line)
	} else {
		content = textedit.EnsureTrailingNewline(content)
		content = append(content, line+"\n"...)
	}

	return ctx.WriteFile(rel, content)
}

// Remove deletes the directive for key along with its immediately
// preceding comment lines. A missing file or directive is a no-op.
func Remove(ctx *task.Context, rel, key string) error {
	content, err := ctx.ReadFileIfExists(rel)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return nil
	}

	span, ok := textedit.Locate(content, removePattern(key))
	if !ok {
		return nil
	}

	return ctx.WriteFile(rel, textedit.ReplaceSpan(content, span, ""))
}
