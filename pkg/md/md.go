// Package md converts Markdown text to HTML.
//
// Only a subset of Markdown is supported: ATX headers of level 1 to 6,
// single-level unordered and ordered lists, paragraphs, and the *italic*,
// **bold** and ***bold italic*** inline forms.
package md

import (
	"errors"

	"src.mdhtml.dev/pkg/parse"
	"src.mdhtml.dev/pkg/render"
)

// Convert converts Markdown text to HTML. Errors are of type *parse.Error or
// *render.StructureError.
func Convert(text string) (string, error) {
	return ConvertSource(parse.Source{Name: "[text]", Code: text})
}

// ConvertSource is like Convert, but takes a named source. The name is used
// in error messages.
func ConvertSource(src parse.Source) (string, error) {
	tree, err := parse.Parse(src)
	if err != nil {
		return "", err
	}
	return render.HTML(tree.Root)
}

// IsParseError reports whether err is or wraps a *parse.Error.
func IsParseError(err error) bool {
	var parseErr *parse.Error
	return errors.As(err, &parseErr)
}

// IsStructureError reports whether err is or wraps a *render.StructureError.
func IsStructureError(err error) bool {
	var structErr *render.StructureError
	return errors.As(err, &structErr)
}
