package testutil

import (
	"regexp"
	"strings"
)

var (
	blankLine    = regexp.MustCompile("(?m)^[ \t]+$")
	lineIndent   = regexp.MustCompile("(?m)^[ \t]*(?:[^ \t\n])")
	indentPrefix = regexp.MustCompile("^[ \t]*")
)

// Dedent removes the longest whitespace prefix common to all non-blank lines
// of text. An initial newline is removed, so that raw strings can start on
// the line after the opening backquote and still be indented with the
// surrounding code. Whitespace-only lines become empty.
func Dedent(text string) string {
	text = blankLine.ReplaceAllString(strings.TrimPrefix(text, "\n"), "")

	margin, first := "", true
	for _, m := range lineIndent.FindAllString(text, -1) {
		indent := indentPrefix.FindString(m)
		switch {
		case first:
			margin, first = indent, false
		case strings.HasPrefix(indent, margin):
		case strings.HasPrefix(margin, indent):
			margin = indent
		default:
			margin = ""
		}
		if margin == "" && !first {
			break
		}
	}

	if margin == "" {
		return text
	}
	return regexp.MustCompile("(?m)^"+regexp.QuoteMeta(margin)).ReplaceAllString(text, "")
}
