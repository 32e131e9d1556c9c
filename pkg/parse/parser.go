package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"src.mdhtml.dev/pkg/diag"
)

// parser maintains the mutable state of one parse call.
type parser struct {
	srcName string
	src     string
	pos     int

	// Furthest position at which a rule failed to match, and the rules that
	// were attempted there.
	failPos   int
	failRules ruleSet
	// Nesting depth of lookaheads. Failures inside a lookahead are not
	// recorded.
	lookaheads int
	// Set when the parser has hit an error that no alternative can recover
	// from. All rules fail once this is set.
	fatal *Error

	memo map[memoKey]memoEntry
}

type memoKey struct {
	rule Rule
	pos  int
}

type memoEntry struct {
	n   *Node
	end int
	ok  bool
}

func newParser(src Source) *parser {
	return &parser{srcName: src.Name, src: src.Code, failPos: -1,
		memo: make(map[memoKey]memoEntry)}
}

// rule runs body as the given rule. On success, the node gets the range
// matched by body; on failure, the position is restored and the failure is
// recorded.
func (ps *parser) rule(r Rule, body func(n *Node) bool) (*Node, bool) {
	begin := ps.pos
	if ps.fatal == nil {
		n := &Node{Rule: r}
		if body(n) && ps.fatal == nil {
			n.Ranging = diag.Ranging{From: begin, To: ps.pos}
			n.sourceText = ps.src[begin:ps.pos]
			return n, true
		}
	}
	ps.pos = begin
	ps.recordFailure(r, begin)
	return nil, false
}

// memoized is like rule, but caches the result for each position. It is only
// valid for rules whose result depends on nothing but the position.
func (ps *parser) memoized(r Rule, body func(n *Node) bool) (*Node, bool) {
	key := memoKey{r, ps.pos}
	if e, ok := ps.memo[key]; ok {
		if e.ok {
			ps.pos = e.end
			return e.n, true
		}
		ps.recordFailure(r, ps.pos)
		return nil, false
	}
	n, ok := ps.rule(r, body)
	if ps.fatal == nil {
		ps.memo[key] = memoEntry{n, ps.pos, ok}
	}
	return n, ok
}

// leaf builds a node for source text that was consumed without going through
// a rule.
func (ps *parser) leaf(r Rule, begin int) *Node {
	return &Node{Rule: r, Ranging: diag.Ranging{From: begin, To: ps.pos},
		sourceText: ps.src[begin:ps.pos]}
}

func (ps *parser) recordFailure(r Rule, pos int) {
	if ps.lookaheads > 0 || ps.fatal != nil {
		return
	}
	switch {
	case pos > ps.failPos:
		ps.failPos, ps.failRules = pos, ruleSet(0).add(r)
	case pos == ps.failPos:
		ps.failRules = ps.failRules.add(r)
	}
}

// Combinators.

type subparser func() (*Node, bool)

// choice tries the alternatives in order and returns the first match.
func (ps *parser) choice(alts ...subparser) (*Node, bool) {
	for _, alt := range alts {
		if n, ok := alt(); ok {
			return n, true
		}
	}
	return nil, false
}

// seq matches all parts in order, adding them as children of n. A failed seq
// may leave partial results in n; it is up to the enclosing rule to discard
// n.
func (ps *parser) seq(n *Node, parts ...subparser) bool {
	for _, part := range parts {
		ch, ok := part()
		if !ok {
			return false
		}
		n.add(ch)
	}
	return true
}

// many matches p as many times as possible, adding the matches as children of
// n. It reports whether there was at least one match.
func (ps *parser) many(n *Node, p subparser) bool {
	matched := false
	for {
		begin := ps.pos
		ch, ok := p()
		if !ok || ps.pos == begin {
			return matched
		}
		n.add(ch)
		matched = true
	}
}

// lookahead reports whether f succeeds, without consuming any input.
func (ps *parser) lookahead(f func() bool) bool {
	begin := ps.pos
	ps.lookaheads++
	ok := f()
	ps.lookaheads--
	ps.pos = begin
	return ok
}

// Primitives. These consume input without creating nodes.

func (ps *parser) eof() bool { return ps.pos == len(ps.src) }

func (ps *parser) hasPrefix(prefix string) bool {
	return strings.HasPrefix(ps.src[ps.pos:], prefix)
}

func (ps *parser) consume(s string) bool {
	if ps.hasPrefix(s) {
		ps.pos += len(s)
		return true
	}
	return false
}

// atLineEnd reports whether the parser is at a newline or the end of input.
func (ps *parser) atLineEnd() bool {
	return ps.eof() || ps.src[ps.pos] == '\n' || ps.src[ps.pos] == '\r'
}

// newline consumes one of "\r\n", "\n" and "\r".
func (ps *parser) newline() bool {
	return ps.consume("\r\n") || ps.consume("\n") || ps.consume("\r")
}

// lineEnd consumes a newline, or matches the end of input.
func (ps *parser) lineEnd() bool {
	return ps.newline() || ps.eof()
}

func isInlineSpace(b byte) bool { return b == ' ' || b == '\t' }

// separator consumes one or more spaces and tabs.
func (ps *parser) separator() bool {
	begin := ps.pos
	for !ps.eof() && isInlineSpace(ps.src[ps.pos]) {
		ps.pos++
	}
	return ps.pos > begin
}

// blankLine consumes a line that contains nothing but spaces and tabs. A
// line without a trailing newline must not be empty.
func (ps *parser) blankLine() bool {
	begin := ps.pos
	spaces := ps.separator()
	if ps.newline() || (spaces && ps.eof()) {
		return true
	}
	ps.pos = begin
	return false
}

// restOfLine returns the text from pos up to, but not including the next
// newline.
func (ps *parser) restOfLine(pos int) string {
	rest := ps.src[pos:]
	if i := strings.IndexAny(rest, "\r\n"); i != -1 {
		return rest[:i]
	}
	return rest
}

// Errors.

func (ps *parser) fatalf(r diag.Ranging, attempted []Rule, format string, args ...any) {
	if ps.fatal != nil {
		return
	}
	ps.fatal = &Error{
		Message:   fmt.Sprintf(format, args...),
		Attempted: attempted,
		Context:   *diag.NewContext(ps.srcName, ps.src, r),
	}
}

// assembleError builds the error for a failed parse of the given rule.
func (ps *parser) assembleError(rule Rule) *Error {
	if ps.fatal != nil {
		return ps.fatal
	}
	pos := ps.failPos
	if pos < 0 {
		pos = ps.pos
	}
	end := pos
	if end < len(ps.src) {
		_, size := utf8.DecodeRuneInString(ps.src[end:])
		end += size
	}
	return &Error{
		Message:   fmt.Sprintf("%s not matched", rule),
		Attempted: ps.failRules.rules(),
		Context:   *diag.NewContext(ps.srcName, ps.src, diag.Ranging{From: pos, To: end}),
	}
}

// ruleSet is a set of rules, in the order of their declaration.
type ruleSet uint32

func (s ruleSet) add(r Rule) ruleSet { return s | 1<<r }

func (s ruleSet) rules() []Rule {
	var rules []Rule
	for r := Rule(0); int(r) < NumRules; r++ {
		if s&(1<<r) != 0 {
			rules = append(rules, r)
		}
	}
	return rules
}
