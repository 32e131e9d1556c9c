// Package parse implements the parser for the supported Markdown subset.
//
// The grammar is a parsing expression grammar: alternatives are ordered,
// failed alternatives backtrack without side effects, and every match
// produces a Node tagged with the Rule that matched. The result is a concrete
// syntax tree; the source text of every node can be recovered from its range.
package parse

//go:generate stringer -type=Rule -linecomment

import (
	"src.mdhtml.dev/pkg/diag"
)

// Rule identifies a grammar rule. Every Node is tagged with one.
type Rule uint8

// The grammar rules. The string form of a Rule is its name in the grammar.
const (
	Document           Rule = iota // document
	Block                          // block
	Header                         // header
	HeaderStart                    // header_start
	UnorderedList                  // unordered_list
	OrderedList                    // ordered_list
	UnorderedListPoint             // unordered_list_point
	OrderedListPoint               // ordered_list_point
	ListStart                      // list_start
	Paragraph                      // paragraph
	ParagraphLine                  // paragraph_line
	LineContent                    // line_content
	BoldItalic                     // bold_italic
	Bold                           // bold
	Italic                         // italic
	Char                           // char
	Digit                          // digit
)

// NumRules is the number of grammar rules.
const NumRules = int(Digit) + 1

// Source describes a piece of source code.
type Source struct {
	// Name of the source, used in error messages. Typically a file name.
	Name string
	// Markdown text.
	Code string
}

// Tree represents a parsed tree.
type Tree struct {
	Root   *Node
	Source Source
}

// Node is a node in the parse tree. Nodes are created by the parser and
// should not be modified afterwards.
type Node struct {
	Rule Rule
	diag.Ranging
	Children []*Node

	sourceText string
}

// SourceText returns the part of the source text that the node matched.
func (n *Node) SourceText() string { return n.sourceText }

// Path returns the chain of nodes from n down to the innermost descendant
// whose range contains the byte offset pos. It returns nil if n itself does
// not contain pos.
func (n *Node) Path(pos int) []*Node {
	if !n.Contains(pos) {
		return nil
	}
	path := []*Node{n}
	for {
		var next *Node
		for _, ch := range path[len(path)-1].Children {
			if ch.Contains(pos) {
				next = ch
				break
			}
		}
		if next == nil {
			return path
		}
		path = append(path, next)
	}
}

func (n *Node) add(ch *Node) { n.Children = append(n.Children, ch) }

// Parse parses the given source as a document. The returned error always has
// type *Error if it is not nil; no partial tree is returned in that case.
func Parse(src Source) (Tree, error) {
	root, err := ParseAs(src, Document)
	if err != nil {
		return Tree{Source: src}, err
	}
	return Tree{root, src}, nil
}

// ParseAs matches a single grammar rule against a prefix of the source,
// starting at offset 0. Only the document rule requires the entire source to
// be matched. If the error is not nil, it always has type *Error.
func ParseAs(src Source, rule Rule) (*Node, error) {
	ps := newParser(src)
	n, ok := ps.parseRule(rule)
	if !ok {
		return nil, ps.assembleError(rule)
	}
	return n, nil
}
