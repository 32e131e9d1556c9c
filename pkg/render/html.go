// Package render renders parse trees to HTML.
//
// Text is written verbatim; characters like "<" and "&" are not escaped.
package render

import (
	"fmt"
	"strings"

	"src.mdhtml.dev/pkg/parse"
)

// HTML renders the tree rooted at root to HTML. It returns a *StructureError
// if the tree does not have the shape produced by the parser.
func HTML(root *parse.Node) (string, error) {
	var r renderer
	if err := r.render(root); err != nil {
		return "", err
	}
	return r.String(), nil
}

type renderer struct {
	strings.Builder
}

var inlineTags = [parse.NumRules][2]string{
	parse.BoldItalic: {"<strong><em>", "</em></strong>"},
	parse.Bold:       {"<strong>", "</strong>"},
	parse.Italic:     {"<em>", "</em>"},
}

var listTags = [parse.NumRules]struct {
	start, end string
	point      parse.Rule
}{
	parse.UnorderedList: {"<ul>\n", "</ul>\n", parse.UnorderedListPoint},
	parse.OrderedList:   {"<ol>\n", "</ol>\n", parse.OrderedListPoint},
}

func (r *renderer) render(n *parse.Node) error {
	if len(n.Children) == 0 && isText(n.Rule) {
		r.WriteString(n.SourceText())
		return nil
	}
	switch n.Rule {
	case parse.Header:
		if err := expectChildren(n, parse.HeaderStart, parse.LineContent); err != nil {
			return err
		}
		level, err := headerLevel(n.Children[0])
		if err != nil {
			return err
		}
		content, err := renderTrimmed(n.Children[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(r, "<h%d>%s</h%d>\n", level, content, level)
	case parse.UnorderedList, parse.OrderedList:
		tags := listTags[n.Rule]
		if len(n.Children) == 0 {
			return &StructureError{n, n.Range(), "one or more " + tags.point.String(), "none"}
		}
		var items renderer
		for _, point := range n.Children {
			if point.Rule != tags.point {
				return &StructureError{point, point.Range(),
					tags.point.String(), point.Rule.String()}
			}
			if err := items.render(point); err != nil {
				return err
			}
		}
		r.WriteString(tags.start)
		r.WriteString(strings.TrimSpace(items.String()))
		r.WriteString("\n")
		r.WriteString(tags.end)
	case parse.UnorderedListPoint, parse.OrderedListPoint:
		if err := expectChildren(n, parse.ListStart, parse.LineContent); err != nil {
			return err
		}
		content, err := renderTrimmed(n.Children[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(r, "<li>%s</li>\n", content)
	case parse.Paragraph:
		content, err := renderTrimmed(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(r, "<p>%s</p>\n", content)
	case parse.BoldItalic, parse.Bold, parse.Italic:
		tags := inlineTags[n.Rule]
		r.WriteString(tags[0])
		if err := r.renderChildren(n); err != nil {
			return err
		}
		r.WriteString(tags[1])
	default:
		// Document, block, paragraph_line, line_content and any rule
		// without special treatment.
		return r.renderChildren(n)
	}
	return nil
}

// isText reports whether a leaf of the rule is rendered as its source text.
// Leaves of other rules render like any node with no children.
func isText(r parse.Rule) bool {
	return r == parse.Char || r == parse.Digit || int(r) >= parse.NumRules
}

func (r *renderer) renderChildren(n *parse.Node) error {
	for _, ch := range n.Children {
		if err := r.render(ch); err != nil {
			return err
		}
	}
	return nil
}

// renderTrimmed renders the children of n with surrounding whitespace
// removed.
func renderTrimmed(n *parse.Node) (string, error) {
	var r renderer
	if err := r.renderChildren(n); err != nil {
		return "", err
	}
	return strings.TrimSpace(r.String()), nil
}

const maxHeaderLevel = 6

func headerLevel(start *parse.Node) (int, error) {
	marker := strings.TrimRight(start.SourceText(), " \t")
	level := len(marker)
	if level < 1 || level > maxHeaderLevel || strings.Trim(marker, "#") != "" {
		return 0, &StructureError{start, start.Range(),
			fmt.Sprintf("1 to %d #", maxHeaderLevel), fmt.Sprintf("%q", marker)}
	}
	return level, nil
}

func expectChildren(n *parse.Node, rules ...parse.Rule) error {
	ok := len(n.Children) == len(rules)
	for i := 0; ok && i < len(rules); i++ {
		ok = n.Children[i].Rule == rules[i]
	}
	if ok {
		return nil
	}
	actual := make([]parse.Rule, len(n.Children))
	for i, ch := range n.Children {
		actual[i] = ch.Rule
	}
	return &StructureError{n, n.Range(), fmt.Sprint(rules), fmt.Sprint(actual)}
}
