// Package textedit locates and edits spans inside opaque text files.
//
// Target files are treated as line sequences with insertion points, never
// as a parsed grammar. All patterns are line-anchored (?m) regular
// expressions, and first-match semantics are authoritative: when a file
// contains more than one candidate span, the earliest one wins and later
// candidates are never considered.
package textedit

import (
	"bytes"
	"regexp"
	"strings"
)

// Span marks a half-open byte range [Start, End) within file contents.
type Span struct {
	Start int
	End   int
}

// Locate returns the first span of content matched by pattern.
// A missing match is a normal outcome, reported via the bool, not an error.
func Locate(content []byte, pattern *regexp.Regexp) (Span, bool) {
	loc := pattern.FindIndex(content)
	if loc == nil {
		return Span{}, false
	}
	return Span{Start: loc[0], End: loc[1]}, true
}

// LocateFrom behaves like Locate but begins the search at byte offset from.
// Used to find a block's end marker without over-matching into an earlier
// block's territory.
func LocateFrom(content []byte, pattern *regexp.Regexp, from int) (Span, bool) {
	if from < 0 || from > len(content) {
		return Span{}, false
	}
	loc := pattern.FindIndex(content[from:])
	if loc == nil {
		return Span{}, false
	}
	return Span{Start: from + loc[0], End: from + loc[1]}, true
}

// LinePattern compiles a pattern matching a whole line equal to literal,
// tolerating surrounding whitespace.
func LinePattern(literal string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(literal) + `[ \t]*$`)
}

// ReplaceSpan returns content with the span replaced by repl.
func ReplaceSpan(content []byte, s Span, repl string) []byte {
	out := make([]byte, 0, len(content)-(s.End-s.Start)+len(repl))
	out = append(out, content[:s.Start]...)
	out = append(out, repl...)
	out = append(out, content[s.End:]...)
	return out
}

// InsertBefore returns content with text inserted at the span's start.
func InsertBefore(content []byte, s Span, text string) []byte {
	return ReplaceSpan(content, Span{Start: s.Start, End: s.Start}, text)
}

// InsertAfter returns content with text inserted at the span's end.
func InsertAfter(content []byte, s Span, text string) []byte {
	return ReplaceSpan(content, Span{Start: s.End, End: s.End}, text)
}

// AfterLine returns the offset just past the line containing the span's
// end, skipping the trailing newline when present. Inserting there places
// text on the following line.
func AfterLine(content []byte, s Span) int {
	i := s.End
	if i < len(content) && content[i] == '\n' {
		i++
	}
	return i
}

// ContainsLine reports whether content has a line whose trimmed text
// equals line.
func ContainsLine(content []byte, line string) bool {
	for _, l := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(l) == strings.TrimSpace(line) {
			return true
		}
	}
	return false
}

// EnsureTrailingNewline returns content terminated by a newline.
func EnsureTrailingNewline(content []byte) []byte {
	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		return append(content, '\n')
	}
	return content
}
