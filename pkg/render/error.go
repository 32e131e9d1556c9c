package render

import (
	"fmt"

	"src.mdhtml.dev/pkg/diag"
	"src.mdhtml.dev/pkg/parse"
)

// StructureError is returned when a node does not have the children the
// renderer requires. It never happens with trees built by the parser.
type StructureError struct {
	Node *parse.Node
	diag.Ranging
	Expected string
	Actual   string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("invalid structure: %v at %d-%d: expected %s, found %s",
		e.Node.Rule, e.From, e.To, e.Expected, e.Actual)
}
