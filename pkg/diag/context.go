package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Context is a range of text in a source. It is typically used for errors
// that can be associated with a part of the source, like parse errors.
type Context struct {
	Name   string
	Source string
	Ranging

	savedShowInfo *rangeShowInfo
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range(), nil}
}

// Information about the source range that are needed for showing.
type rangeShowInfo struct {
	// Head is the piece of text immediately before Culprit, extending to, but
	// not including the closest line boundary. If Culprit already starts after
	// a line boundary, Head is an empty string.
	Head string
	// Culprit is Source[Begin:End], with any trailing newlines stripped.
	Culprit string
	// Tail is the piece of text immediately after Culprit, extending to, but
	// not including the closet line boundary. If Culprit already ends before a
	// line boundary, Tail is an empty string.
	Tail string
	// BeginLine is the (1-based) line number that the first character of
	// Culprit is on.
	BeginLine int
	// BeginCol is the (1-based) column of the first character of Culprit,
	// counted in code points.
	BeginCol int
	// EndLine is the (1-based) line number that the last character of Culprit
	// is on.
	EndLine int
}

// Variables controlling the style of the culprit.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
	// When set, a line with a caret under the culprit is appended to the
	// relevant source. Used when the culprit markers are not visible.
	culpritCaret = false
)

// UseColor sets whether Show methods use ANSI escape sequences to highlight
// the culprit and the message. Without colors, the culprit is pointed at with
// a caret on the following line instead.
func UseColor(color bool) {
	if color {
		culpritStart, culpritEnd = "\033[1;4m", "\033[m"
		messageStart, messageEnd = "\033[31;1m", "\033[m"
	} else {
		culpritStart, culpritEnd = "", ""
		messageStart, messageEnd = "", ""
	}
	culpritCaret = !color
}

func (c *Context) showInfo() *rangeShowInfo {
	if c.savedShowInfo != nil {
		return c.savedShowInfo
	}

	before := c.Source[:c.From]
	culprit := c.Source[c.From:c.To]
	after := c.Source[c.To:]

	head := lastLine(before)
	beginLine := countLineBreaks(before) + 1
	beginCol := utf8.RuneCountInString(head) + 1

	// If the culprit ends with a line break, strip it. Otherwise, tail is
	// nonempty.
	var tail string
	if trimmed := trimLineBreak(culprit); trimmed != culprit {
		culprit = trimmed
	} else {
		tail = firstLine(after)
	}

	endLine := beginLine + countLineBreaks(culprit)

	c.savedShowInfo = &rangeShowInfo{head, culprit, tail, beginLine, beginCol, endLine}
	return c.savedShowInfo
}

// Position returns the 1-based line and column of the start of the range.
// Columns are counted in code points.
func (c *Context) Position() (line, col int) {
	if c.checkPosition() != nil {
		return 0, 0
	}
	info := c.showInfo()
	return info.BeginLine, info.BeginCol
}

// Show shows a SourceContext.
func (c *Context) Show(sourceIndent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return (c.describeStart() + ":\n" +
		sourceIndent + c.relevantSource(sourceIndent, sourceIndent))
}

// ShowCompact shows a SourceContext, with no line break between the source
// position range description and relevant source excerpt.
func (c *Context) ShowCompact(sourceIndent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	desc := c.describeStart() + ": "
	// Extra indent so that following lines line up with the first line.
	descIndent := strings.Repeat(" ", runewidth.StringWidth(desc))
	return desc + c.relevantSource(sourceIndent+descIndent, sourceIndent+descIndent)
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s: unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s: invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) describeStart() string {
	info := c.showInfo()
	return fmt.Sprintf("%s:%d:%d", c.Name, info.BeginLine, info.BeginCol)
}

func (c *Context) relevantSource(sourceIndent, caretIndent string) string {
	info := c.showInfo()

	var sb strings.Builder
	sb.WriteString(info.Head)

	culprit := info.Culprit
	if culprit == "" {
		culprit = culpritPlaceHolder
	}

	for i, line := range splitLines(culprit) {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(sourceIndent)
		}
		sb.WriteString(culpritStart)
		sb.WriteString(line)
		sb.WriteString(culpritEnd)
	}

	sb.WriteString(info.Tail)

	if culpritCaret && info.Culprit != "" {
		sb.WriteByte('\n')
		sb.WriteString(caretIndent)
		sb.WriteString(strings.Repeat(" ", runewidth.StringWidth(info.Head)))
		sb.WriteByte('^')
	}
	return sb.String()
}

// Line breaks are "\r\n", "\n" and a lone "\r", the same set the Markdown
// parser accepts.

func countLineBreaks(s string) int {
	return strings.Count(s, "\n") + strings.Count(s, "\r") - strings.Count(s, "\r\n")
}

func trimLineBreak(s string) string {
	for _, br := range []string{"\r\n", "\n", "\r"} {
		if strings.HasSuffix(s, br) {
			return s[:len(s)-len(br)]
		}
	}
	return s
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n"), "\n")
}

func firstLine(s string) string {
	i := strings.IndexAny(s, "\r\n")
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s has no line break, LastIndexAny returns -1, which happens to be
	// what we want.
	return s[strings.LastIndexAny(s, "\r\n")+1:]
}
