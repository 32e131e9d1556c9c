// Mdhtml converts a subset of Markdown to HTML. It can also run as a language
// server that reports Markdown syntax errors.
package main

import (
	"os"

	"src.mdhtml.dev/pkg/buildinfo"
	"src.mdhtml.dev/pkg/convert"
	"src.mdhtml.dev/pkg/lsp"
	"src.mdhtml.dev/pkg/pprof"
	"src.mdhtml.dev/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&pprof.Program{}, &buildinfo.Program{}, &lsp.Program{}, &convert.Program{})))
}
