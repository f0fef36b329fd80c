// Package gemfile manages dependency directives in a Gemfile-style
// manifest: single-line gem declarations, optionally grouped under a
// group header, with commented-out placeholder lines that generators may
// uncomment in place.
//
// After any mutation at most one live directive per gem name exists in
// the manifest. The manifest itself is owned by the target project and
// must already exist; only the sentinel comment and group blocks are
// created on demand.
package gemfile

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/railforge-dev/railforge/internal/branding"
	"github.com/railforge-dev/railforge/internal/task"
	"github.com/railforge-dev/railforge/internal/textedit"
)

// Gem is a single dependency directive.
type Gem struct {
	Name    string
	Version string   // optional requirement, e.g. "~> 7.1"
	Groups  []string // group symbols, e.g. "development", "test"
}

// Line renders the directive without indentation.
func (g Gem) Line() string {
	line := fmt.Sprintf("gem %q", g.Name)
	if g.Version != "" {
		line += fmt.Sprintf(", %q", g.Version)
	}
	return line
}

// Sentinel returns the global sentinel comment new gems are placed at.
func Sentinel() string {
	return "# " + branding.SentinelTag() + " gems"
}

// Manager mutates one dependency manifest across a scaffold invocation.
// It accumulates the group symbols requested so far: the managed group
// block's header always reflects the sorted, deduplicated union of every
// group requested through this Manager, regardless of insertion order.
type Manager struct {
	ctx    *task.Context
	rel    string
	groups []string
}

// NewManager returns a Manager for the manifest at rel.
func NewManager(ctx *task.Context, rel string) *Manager {
	return &Manager{ctx: ctx, rel: rel}
}

// placeholderPattern matches a commented-out directive for name, capturing
// the leading indentation.
func placeholderPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^([ \t]*)#[ \t]*gem ["']` + regexp.QuoteMeta(name) + `["'][^\n]*$`)
}

// activePattern matches a live directive for name, capturing the leading
// indentation.
func activePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^([ \t]*)gem ["']` + regexp.QuoteMeta(name) + `["'][^\n]*$`)
}

// Add upserts the directive into the manifest. A commented placeholder for
// the same gem is rewritten in place; an existing live directive is
// replaced in place; otherwise the line is inserted at the global sentinel
// or inside the managed group block. Stale live copies are removed so the
// single-definition invariant holds.
func (m *Manager) Add(g Gem) error {
	if g.Version != "" {
		if err := validateRequirement(g.Version); err != nil {
			return err
		}
	}

	content, err := m.ctx.ReadFile(m.rel)
	if err != nil {
		return err
	}

	line := g.Line()

	// A commented placeholder is uncommented in place rather than leaving
	// it behind and inserting a second copy elsewhere.
	replaced, keepAt := false, 0
	if loc := placeholderPattern(g.Name).FindSubmatchIndex(content); loc != nil {
		repl := string(content[loc[2]:loc[3]]) + line
		content = textedit.ReplaceSpan(content, textedit.Span{Start: loc[0], End: loc[1]}, repl)
		replaced, keepAt = true, loc[0]
	} else if loc := activePattern(g.Name).FindSubmatchIndex(content); loc != nil {
		repl := string(content[loc[2]:loc[3]]) + line
		content = textedit.ReplaceSpan(content, textedit.Span{Start: loc[0], End: loc[1]}, repl)
		replaced, keepAt = true, loc[0]
	}

	if replaced {
		content = removeActiveExcept(content, g.Name, keepAt)
		return m.ctx.WriteFile(m.rel, content)
	}

	if len(g.Groups) == 0 {
		var sentinel textedit.Span
		content, sentinel = ensureSentinel(content)
		at := textedit.AfterLine(content, sentinel)
		content = textedit.InsertBefore(content, textedit.Span{Start: at, End: at}, line+"\n")
	} else {
		content = m.insertGrouped(content, line, g.Groups)
	}

	return m.ctx.WriteFile(m.rel, content)
}

// Remove deletes the directive for name along with its immediately
// preceding comment lines. A missing directive is a no-op.
func (m *Manager) Remove(name string) error {
	content, err := m.ctx.ReadFile(m.rel)
	if err != nil {
		return err
	}

	pat := regexp.MustCompile(`(?m)^(?:[ \t]*#[^\n]*\n)*[ \t]*gem ["']` + regexp.QuoteMeta(name) + `["'][^\n]*\n?`)
	span, ok := textedit.Locate(content, pat)
	if !ok {
		return nil
	}

	return m.ctx.WriteFile(m.rel, textedit.ReplaceSpan(content, span, ""))
}

// insertGrouped places the directive as the first line inside the managed
// group block, retitling or creating the block as the accumulated group
// set requires.
func (m *Manager) insertGrouped(content []byte, line string, groups []string) []byte {
	prev := m.groups
	m.groups = union(prev, groups)
	newHeader := groupHeader(m.groups)

	// The accumulated set grew: retitle the existing managed block.
	if len(prev) > 0 {
		if old := groupHeader(prev); old != newHeader {
			if span, ok := textedit.Locate(content, textedit.LinePattern(old)); ok {
				content = textedit.ReplaceSpan(content, span, newHeader)
			}
		}
	}

	span, ok := textedit.Locate(content, textedit.LinePattern(newHeader))
	if !ok {
		var sentinel textedit.Span
		content, sentinel = ensureSentinel(content)
		content = textedit.InsertBefore(content, sentinel, newHeader+"\nend\n\n")
		span, _ = textedit.Locate(content, textedit.LinePattern(newHeader))
	}

	at := textedit.AfterLine(content, span)
	return textedit.InsertBefore(content, textedit.Span{Start: at, End: at}, "  "+line+"\n")
}

// ensureSentinel returns content guaranteed to contain the global sentinel
// comment, together with the sentinel line's span. A missing sentinel is
// appended at the end of the manifest.
func ensureSentinel(content []byte) ([]byte, textedit.Span) {
	pat := textedit.LinePattern(Sentinel())
	if span, ok := textedit.Locate(content, pat); ok {
		return content, span
	}
	content = textedit.EnsureTrailingNewline(content)
	content = append(content, "\n"+Sentinel()+"\n"...)
	span, _ := textedit.Locate(content, pat)
	return content, span
}

// removeActiveExcept deletes every live directive for name except the one
// starting at keepAt.
func removeActiveExcept(content []byte, name string, keepAt int) []byte {
	pat := regexp.MustCompile(`(?m)^[ \t]*gem ["']` + regexp.QuoteMeta(name) + `["'][^\n]*\n?`)
	matches := pat.FindAllIndex(content, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i][0] == keepAt {
			continue
		}
		content = textedit.ReplaceSpan(content, textedit.Span{Start: matches[i][0], End: matches[i][1]}, "")
	}
	return content
}

// groupHeader renders the block header for a set of group symbols,
// e.g. ["development", "test"] → `group :development, :test do`.
func groupHeader(groups []string) string {
	syms := make([]string, len(groups))
	for i, g := range groups {
		syms[i] = ":" + g
	}
	return "group " + strings.Join(syms, ", ") + " do"
}

// union merges two group lists into a sorted, deduplicated set.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, g := range append(append([]string{}, a...), b...) {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}

// validateRequirement checks a version requirement string. Pessimistic
// ("~>") requirements are normalized to the tilde range semver
// constraints use.
func validateRequirement(req string) error {
	normalized := strings.ReplaceAll(req, "~>", "~")
	if _, err := semver.NewConstraint(normalized); err != nil {
		return fmt.Errorf("invalid version requirement %q: %w", req, err)
	}
	return nil
}
