package convert

const helpText = `
mdhtml - Markdown to HTML converter
-----------------------------------

COMMANDS:
    parse <file> [--output <html_file>]
        Convert a Markdown file to HTML. Without --output, the HTML is
        printed.

    tree <file>
        Print the parse tree of a Markdown file as YAML.

    help
        Show this help message.

    credits
        Show information about the project.

SUPPORTED MARKDOWN:
    Headers:         # H1, ## H2, ... ###### H6
    Bold text:       **text**
    Italic text:     *text*
    Bold & italic:   ***text***
    Unordered lists: - Point or * Point
    Ordered lists:   1. Point, 2. Point, ...
    Paragraphs:      Text separated by blank lines

EXAMPLES:
    mdhtml parse document.md
    mdhtml parse document.md --output result.html
    mdhtml tree document.md
`

const creditsText = `
mdhtml
------
Converts a small subset of Markdown to HTML.

Parsing is done with a hand-written parsing expression grammar, and the
HTML is produced by walking the parse tree.

Libraries:
  - github.com/sourcegraph/jsonrpc2 and go-lsp: language server
  - github.com/mattn/go-runewidth and go-isatty: error display
  - gopkg.in/yaml.v3: parse tree dumps
  - golang.org/x/text: input decoding
  - github.com/dustin/go-humanize: file sizes
`
