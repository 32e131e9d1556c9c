package parse

import (
	"strings"
	"unicode/utf8"

	"src.mdhtml.dev/pkg/diag"
)

// The grammar, as implemented by the methods below:
//
//	document             = block* blank_line* EOI
//	block                = blank_line* (header | unordered_list | ordered_list | paragraph) blank_line*
//	header               = header_start line_content line_end
//	header_start         = "#"{1,6} separator
//	unordered_list       = unordered_list_point+
//	ordered_list         = ordered_list_point+
//	unordered_list_point = list_start<"-" | "*"> line_content line_end
//	ordered_list_point   = list_start<digit+ "."> line_content line_end
//	list_start           = ("-" | "*" | digit+ ".") separator
//	paragraph            = paragraph_line+
//	paragraph_line       = !(blank_line | header | list_point) line_content (newline | EOI)
//	line_content         = (bold_italic | bold | italic | char)+
//	bold_italic          = "***" (!"***" char)+ "***"
//	bold                 = "**" (italic | !"**" char)+ "**"
//	italic               = "*" (bold | !"*" char)+ !unclosed_double "*"
//	char                 = !newline ANY
//	digit                = "0".."9"
//
// The newline ending a paragraph line is kept as a char child of the
// paragraph_line, so that lines of a paragraph stay separated.
//
// An unclosed_double is a run of exactly two asterisks with no "**" after it
// on the same line. In line_content, an unclosed_double that cannot be
// matched as bold is an error. Italic never closes on the first asterisk of
// one, so a lone "*" inside bold stays a char and the "**" closes the bold.
// Unmatched single and triple markers are just chars.

const maxHeaderLevel = 6

func (ps *parser) parseRule(r Rule) (*Node, bool) {
	switch r {
	case Document:
		return ps.document()
	case Block:
		return ps.block()
	case Header:
		return ps.header()
	case HeaderStart:
		return ps.headerStart()
	case UnorderedList:
		return ps.unorderedList()
	case OrderedList:
		return ps.orderedList()
	case UnorderedListPoint:
		return ps.unorderedListPoint()
	case OrderedListPoint:
		return ps.orderedListPoint()
	case ListStart:
		return ps.listStart(bulletMarker | ordinalMarker)
	case Paragraph:
		return ps.paragraph()
	case ParagraphLine:
		return ps.paragraphLine()
	case LineContent:
		return ps.lineContent()
	case BoldItalic:
		return ps.boldItalic()
	case Bold:
		return ps.bold()
	case Italic:
		return ps.italic()
	case Char:
		return ps.char()
	case Digit:
		return ps.digit()
	}
	return nil, false
}

func (ps *parser) document() (*Node, bool) {
	return ps.rule(Document, func(n *Node) bool {
		ps.many(n, ps.block)
		for ps.blankLine() {
		}
		return ps.eof()
	})
}

func (ps *parser) block() (*Node, bool) {
	return ps.rule(Block, func(n *Node) bool {
		for ps.blankLine() {
		}
		if !ps.seq(n, func() (*Node, bool) {
			return ps.choice(ps.header, ps.unorderedList, ps.orderedList, ps.paragraph)
		}) {
			return false
		}
		for ps.blankLine() {
		}
		return true
	})
}

func (ps *parser) header() (*Node, bool) {
	return ps.rule(Header, func(n *Node) bool {
		return ps.seq(n, ps.headerStart, ps.lineContent) && ps.lineEnd()
	})
}

func (ps *parser) headerStart() (*Node, bool) {
	return ps.rule(HeaderStart, func(*Node) bool {
		level := 0
		for level < maxHeaderLevel && ps.consume("#") {
			level++
		}
		// A seventh "#" fails the separator.
		return level > 0 && ps.separator()
	})
}

func (ps *parser) unorderedList() (*Node, bool) {
	return ps.rule(UnorderedList, func(n *Node) bool {
		return ps.many(n, ps.unorderedListPoint)
	})
}

func (ps *parser) orderedList() (*Node, bool) {
	return ps.rule(OrderedList, func(n *Node) bool {
		return ps.many(n, ps.orderedListPoint)
	})
}

func (ps *parser) unorderedListPoint() (*Node, bool) {
	return ps.rule(UnorderedListPoint, func(n *Node) bool {
		return ps.seq(n, ps.bulletStart, ps.lineContent) && ps.lineEnd()
	})
}

func (ps *parser) orderedListPoint() (*Node, bool) {
	return ps.rule(OrderedListPoint, func(n *Node) bool {
		return ps.seq(n, ps.ordinalStart, ps.lineContent) && ps.lineEnd()
	})
}

type markerFamily uint8

const (
	bulletMarker markerFamily = 1 << iota
	ordinalMarker
)

func (ps *parser) bulletStart() (*Node, bool)  { return ps.listStart(bulletMarker) }
func (ps *parser) ordinalStart() (*Node, bool) { return ps.listStart(ordinalMarker) }

func (ps *parser) listStart(families markerFamily) (*Node, bool) {
	return ps.rule(ListStart, func(n *Node) bool {
		switch {
		case families&bulletMarker != 0 && (ps.consume("-") || ps.consume("*")):
		case families&ordinalMarker != 0 && ps.many(n, ps.digit) && ps.consume("."):
		default:
			return false
		}
		return ps.separator()
	})
}

func (ps *parser) paragraph() (*Node, bool) {
	return ps.rule(Paragraph, func(n *Node) bool {
		return ps.many(n, ps.paragraphLine)
	})
}

func (ps *parser) paragraphLine() (*Node, bool) {
	return ps.rule(ParagraphLine, func(n *Node) bool {
		if ps.lookahead(ps.startsOtherBlock) {
			return false
		}
		if !ps.seq(n, ps.lineContent) {
			return false
		}
		begin := ps.pos
		if ps.newline() {
			n.add(ps.leaf(Char, begin))
			return true
		}
		return ps.eof()
	})
}

// startsOtherBlock reports whether a line that would end a paragraph starts
// at the current position.
func (ps *parser) startsOtherBlock() bool {
	if ps.blankLine() {
		return true
	}
	_, ok := ps.choice(ps.header, ps.unorderedListPoint, ps.orderedListPoint)
	return ok
}

func (ps *parser) lineContent() (*Node, bool) {
	return ps.rule(LineContent, func(n *Node) bool {
		for !ps.atLineEnd() {
			ch, ok := ps.inline()
			if !ok {
				break
			}
			n.add(ch)
		}
		return len(n.Children) > 0
	})
}

// inline matches one element of line_content. Longer markers are tried
// first.
func (ps *parser) inline() (*Node, bool) {
	begin := ps.pos
	if n, ok := ps.choice(ps.boldItalic, ps.bold); ok {
		return n, true
	}
	if ps.unclosedBoldAt(begin) {
		ps.fatalf(diag.Ranging{From: begin, To: begin + 2},
			[]Rule{BoldItalic, Bold}, `unclosed "**"`)
		return nil, false
	}
	return ps.choice(ps.italic, ps.char)
}

// unclosedBoldAt reports whether pos starts a run of exactly two asterisks
// with no "**" following it on the same line.
func (ps *parser) unclosedBoldAt(pos int) bool {
	if !strings.HasPrefix(ps.src[pos:], "**") || strings.HasPrefix(ps.src[pos:], "***") {
		return false
	}
	if pos > 0 && ps.src[pos-1] == '*' {
		return false
	}
	return !strings.Contains(ps.restOfLine(pos+2), "**")
}

func (ps *parser) boldItalic() (*Node, bool) {
	return ps.memoized(BoldItalic, func(n *Node) bool {
		return ps.consume("***") &&
			ps.many(n, ps.charUnless("***")) &&
			ps.consume("***")
	})
}

func (ps *parser) bold() (*Node, bool) {
	return ps.memoized(Bold, func(n *Node) bool {
		return ps.consume("**") &&
			ps.many(n, func() (*Node, bool) {
				return ps.choice(ps.italic, ps.charUnless("**"))
			}) &&
			ps.consume("**")
	})
}

func (ps *parser) italic() (*Node, bool) {
	return ps.memoized(Italic, func(n *Node) bool {
		return ps.consume("*") &&
			ps.many(n, func() (*Node, bool) {
				return ps.choice(ps.bold, ps.charUnless("*"))
			}) &&
			!ps.unclosedBoldAt(ps.pos) &&
			ps.consume("*")
	})
}

// charUnless returns a subparser matching a char that does not start the
// given closing marker.
func (ps *parser) charUnless(closer string) subparser {
	return func() (*Node, bool) {
		if ps.hasPrefix(closer) {
			return nil, false
		}
		return ps.char()
	}
}

func (ps *parser) char() (*Node, bool) {
	return ps.rule(Char, func(*Node) bool {
		if ps.atLineEnd() {
			return false
		}
		_, size := utf8.DecodeRuneInString(ps.src[ps.pos:])
		ps.pos += size
		return true
	})
}

func (ps *parser) digit() (*Node, bool) {
	return ps.rule(Digit, func(*Node) bool {
		if !ps.eof() && '0' <= ps.src[ps.pos] && ps.src[ps.pos] <= '9' {
			ps.pos++
			return true
		}
		return false
	})
}
