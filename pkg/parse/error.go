package parse

import (
	"fmt"
	"strings"

	"src.mdhtml.dev/pkg/diag"
)

// Error is a parse error.
type Error struct {
	Message string
	// Rules that were attempted at the error position, in declaration order.
	Attempted []Rule
	Context   diag.Context
}

// Error returns a plain text representation of the parse error.
func (e *Error) Error() string {
	line, col := e.Context.Position()
	return fmt.Sprintf("parse error: %s:%d:%d: %s", e.Context.Name, line, col, e.Description())
}

// Range returns the range of the parse error.
func (e *Error) Range() diag.Ranging { return e.Context.Range() }

// Line returns the 1-based line of the error position.
func (e *Error) Line() int {
	line, _ := e.Context.Position()
	return line
}

// Column returns the 1-based column of the error position, counted in code
// points.
func (e *Error) Column() int {
	_, col := e.Context.Position()
	return col
}

// Show shows the parse error, with the relevant part of the source.
func (e *Error) Show(indent string) string {
	indent += "  "
	return "Parse error: " + diag.Messagef("%s", e.Description()) +
		"\n" + indent + e.Context.ShowCompact(indent)
}

// Description returns the message, followed by the attempted rules if there
// are any.
func (e *Error) Description() string {
	if len(e.Attempted) == 0 {
		return e.Message
	}
	names := make([]string, len(e.Attempted))
	for i, r := range e.Attempted {
		names[i] = r.String()
	}
	return fmt.Sprintf("%s (attempted %s)", e.Message, strings.Join(names, ", "))
}
