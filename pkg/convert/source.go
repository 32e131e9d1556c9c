package convert

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"src.mdhtml.dev/pkg/parse"
)

var errNotUTF8 = errors.New("not valid UTF-8")

// readSource reads a Markdown file. A byte order mark selects between UTF-8,
// UTF-16LE and UTF-16BE and is removed; without one, the file must be valid
// UTF-8.
func readSource(name string) (parse.Source, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return parse.Source{}, fmt.Errorf("read markdown: %w", err)
	}
	code, err := decode(data)
	if err != nil {
		return parse.Source{}, fmt.Errorf("read markdown: %s: %w", name, err)
	}
	return parse.Source{Name: name, Code: code}, nil
}

func decode(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	// The UTF-8 decoder replaces invalid bytes instead of failing, so the
	// input has to be checked separately when it is used.
	if !hasUTF16BOM(data) && !utf8.Valid(data) {
		return "", errNotUTF8
	}
	return string(decoded), nil
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 &&
		(data[0] == 0xFF && data[1] == 0xFE || data[0] == 0xFE && data[1] == 0xFF)
}
