// Package inject places directives relative to sentinel anchors inside
// block-structured settings files. Anchors are created idempotently: a
// second mutation that needs the same anchor finds the existing one.
//
// Settings files are required to exist — they are owned by the target
// project — so a missing file surfaces as a precondition fault.
package inject

import (
	"fmt"
	"regexp"

	"github.com/railforge-dev/railforge/internal/branding"
	"github.com/railforge-dev/railforge/internal/task"
	"github.com/railforge-dev/railforge/internal/textedit"
)

// Scope selects the settings files a directive applies to and the
// indentation of the insertion depth. A logical directive is applied once
// per file in the scope: exactly once for the global scope, once per
// environment for the environment scope.
type Scope struct {
	Files  []string
	Indent string
	End    *regexp.Regexp
}

// GlobalScope targets the application-wide settings file. Directives nest
// inside the application class, two levels deep.
func GlobalScope() Scope {
	return Scope{
		Files:  []string{"config/application.rb"},
		Indent: "    ",
		End:    regexp.MustCompile(`(?m)^  end[ \t]*$`),
	}
}

// EnvScope targets one settings file per named environment. Directives
// nest inside the configure block, one level deep.
func EnvScope(envs []string) Scope {
	s := Scope{
		Indent: "  ",
		End:    regexp.MustCompile(`(?m)^end[ \t]*$`),
	}
	for _, env := range envs {
		s.Files = append(s.Files, "config/environments/"+env+".rb")
	}
	return s
}

// Anchor returns the sentinel comment line written into settings files.
func Anchor() string {
	return "# " + branding.SentinelTag() + " settings"
}

// EnsureAnchor inserts the anchor line (and closing text, when the anchor
// opens a block) immediately before the file's structural end marker.
// A file that already contains the anchor is left untouched.
func EnsureAnchor(ctx *task.Context, rel, anchor, closing, indent string, end *regexp.Regexp) error {
	content, err := ctx.ReadFile(rel)
	if err != nil {
		return err
	}

	if _, ok := textedit.Locate(content, textedit.LinePattern(anchor)); ok {
		return nil
	}

	span, ok := textedit.Locate(content, end)
	if !ok {
		return fmt.Errorf("%s: no structural end marker matching %q", rel, end.String())
	}

	block := indent + anchor + "\n"
	if closing != "" {
		block += indent + closing + "\n"
	}
	return ctx.WriteFile(rel, textedit.InsertBefore(content, span, block))
}

// InsertAfterAnchor places body on its own line immediately after the
// anchor line. A file already containing the body line is left untouched.
func InsertAfterAnchor(ctx *task.Context, rel, anchor, body string) error {
	content, err := ctx.ReadFile(rel)
	if err != nil {
		return err
	}

	if textedit.ContainsLine(content, body) {
		ctx.Logf("%s already contains %q", rel, body)
		return nil
	}

	span, ok := textedit.Locate(content, textedit.LinePattern(anchor))
	if !ok {
		// In dry-run mode EnsureAnchor never wrote the anchor to disk.
		if ctx.DryRun {
			ctx.Logf("dry-run: would insert %q after anchor in %s", body, rel)
			return nil
		}
		return fmt.Errorf("%s: anchor %q not found", rel, anchor)
	}

	at := textedit.AfterLine(content, span)
	return ctx.WriteFile(rel, textedit.InsertBefore(content, textedit.Span{Start: at, End: at}, body+"\n"))
}

// InsertBeforePattern places body on its own line immediately before the
// first match of end. A file already containing the body line is left
// untouched.
func InsertBeforePattern(ctx *task.Context, rel string, end *regexp.Regexp, body string) error {
	content, err := ctx.ReadFile(rel)
	if err != nil {
		return err
	}

	if textedit.ContainsLine(content, body) {
		ctx.Logf("%s already contains %q", rel, body)
		return nil
	}

	span, ok := textedit.Locate(content, end)
	if !ok {
		return fmt.Errorf("%s: no insertion point matching %q", rel, end.String())
	}

	return ctx.WriteFile(rel, textedit.InsertBefore(content, span, body+"\n"))
}

// Apply writes a settings directive into every file of the scope, creating
// the anchor on demand. The directive is indented to the scope's nesting
// depth.
func Apply(ctx *task.Context, s Scope, directive string) error {
	for _, rel := range s.Files {
		if err := EnsureAnchor(ctx, rel, Anchor(), "", s.Indent, s.End); err != nil {
			return err
		}
		if err := InsertAfterAnchor(ctx, rel, Anchor(), s.Indent+directive); err != nil {
			return err
		}
	}
	return nil
}
