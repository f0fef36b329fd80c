// Package routes upserts named concern blocks into the route-declaration
// file. Each resource owns exactly one block; a re-scaffold replaces the
// whole prior block rather than appending, which is what keeps repeated
// invocations from accumulating duplicates. Blocks are never deleted.
package routes

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/railforge-dev/railforge/internal/branding"
	"github.com/railforge-dev/railforge/internal/inject"
	"github.com/railforge-dev/railforge/internal/task"
	"github.com/railforge-dev/railforge/internal/textedit"
)

// File is the project-relative route-declaration file.
const File = "config/routes.rb"

// Listings every concern registers into. Admin registration is
// unconditional; public registration is omitted for restricted resources.
// Because the admin line is always present, a prior block always ends in
// a registration line the re-scaffold span search can anchor on.
const (
	adminListing  = "ADMIN_ROUTES"
	publicListing = "PUBLIC_ROUTES"
)

// Concern describes one resource's routing block.
type Concern struct {
	Name        string   // resource key, e.g. "widget"
	Resource    string   // plural collection name, e.g. "widgets" (caller-supplied)
	SubConcerns []string // route lines nested inside the concern block
	Restricted  bool     // omit the public-listing registration
}

// Marker returns the fixed structural marker new blocks are inserted
// above.
func Marker() string {
	return "# add new routes above (" + branding.SentinelTag() + ")"
}

func (c Concern) concernName() string {
	return ":" + c.Name + "_routes"
}

// compose renders the full block text at the draw-block nesting depth.
func (c Concern) compose() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  concern %s do\n", c.concernName())
	for _, sub := range c.SubConcerns {
		fmt.Fprintf(&b, "    %s\n", sub)
	}
	b.WriteString("  end\n")
	fmt.Fprintf(&b, "  resources :%s, concerns: %s\n", c.Resource, c.concernName())
	fmt.Fprintf(&b, "  %s << %s\n", adminListing, c.concernName())
	if !c.Restricted {
		fmt.Fprintf(&b, "  %s << %s\n", publicListing, c.concernName())
	}
	return b.String()
}

// Upsert writes the concern block for c into the route file. A prior
// block for the same resource is located from its opening line through
// its last registration line and replaced in full; otherwise the block is
// inserted above the structural marker, creating the marker before the
// file's closing end when absent.
func Upsert(ctx *task.Context, c Concern) error {
	content, err := ctx.ReadFile(File)
	if err != nil {
		return err
	}

	block := c.compose()

	open := regexp.MustCompile(`(?m)^[ \t]*concern ` + regexp.QuoteMeta(c.concernName()) + ` do[ \t]*$`)
	if start, ok := textedit.Locate(content, open); ok {
		end, err := blockEnd(content, c, start)
		if err != nil {
			return fmt.Errorf("%s: %w", File, err)
		}
		span := textedit.Span{Start: start.Start, End: end}
		content = textedit.ReplaceSpan(content, span, block)
		return ctx.WriteFile(File, content)
	}

	drawEnd := regexp.MustCompile(`(?m)^end[ \t]*$`)
	if err := inject.EnsureAnchor(ctx, File, Marker(), "", "  ", drawEnd); err != nil {
		return err
	}
	// Re-read: EnsureAnchor may have rewritten the file.
	content, err = ctx.ReadFile(File)
	if err != nil {
		return err
	}

	marker, ok := textedit.Locate(content, textedit.LinePattern(Marker()))
	if !ok {
		// Dry-run never wrote the marker; report the insertion as-is.
		ctx.Logf("dry-run: would insert concern block for %q above the marker", c.Name)
		return nil
	}
	return ctx.WriteFile(File, textedit.InsertBefore(content, marker, block))
}

// blockEnd returns the offset just past the prior block's last line: the
// last registration line for this concern, searched strictly after the
// block's opening line so a neighboring resource's block is never
// swallowed.
func blockEnd(content []byte, c Concern, start textedit.Span) (int, error) {
	reg := regexp.MustCompile(`(?m)^[ \t]*[A-Z_]+ <<[ \t]+` + regexp.QuoteMeta(c.concernName()) + `[ \t]*$`)

	end := -1
	pos := start.End
	for {
		span, ok := textedit.LocateFrom(content, reg, pos)
		if !ok {
			break
		}
		end = textedit.AfterLine(content, span)
		pos = end
	}
	if end >= 0 {
		return end, nil
	}

	// No registration lines survive (hand-edited file): fall back to the
	// resource-collection declaration.
	res := regexp.MustCompile(`(?m)^[ \t]*resources :` + regexp.QuoteMeta(c.Resource) + `\b[^\n]*$`)
	if span, ok := textedit.LocateFrom(content, res, start.End); ok {
		return textedit.AfterLine(content, span), nil
	}

	return 0, fmt.Errorf("concern block for %q has no recognizable end", c.Name)
}
