// Package convert implements the mdhtml commands that work on Markdown files.
package convert

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"src.mdhtml.dev/pkg/diag"
	"src.mdhtml.dev/pkg/getopt"
	"src.mdhtml.dev/pkg/logutil"
	"src.mdhtml.dev/pkg/md"
	"src.mdhtml.dev/pkg/parse"
	"src.mdhtml.dev/pkg/prog"
	"src.mdhtml.dev/pkg/sys"
)

var logger = logutil.GetLogger("[convert] ")

// Program is the subprogram that runs the mdhtml commands. It should be the
// last program in a composite, since it handles all arguments.
type Program struct{}

func (*Program) RegisterFlags(*prog.FlagSet) {}

func (*Program) Run(fds [3]*os.File, args []string) error {
	diag.UseColor(sys.IsTerminal(fds[2]))
	if len(args) == 0 {
		writeShortUsage(fds[2])
		return nil
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "parse":
		return parseCommand(fds, args)
	case "tree":
		return treeCommand(fds, args)
	case "help":
		fmt.Fprint(fds[1], helpText)
	case "credits":
		fmt.Fprint(fds[1], creditsText)
	default:
		return prog.BadUsage(fmt.Sprintf("unknown command %q", cmd))
	}
	return nil
}

func writeShortUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdhtml <command>")
	fmt.Fprintln(w, "Use 'mdhtml help' for available commands")
}

var outputOption = &getopt.OptionSpec{Short: 'o', Long: "output", Arity: getopt.RequiredArgument}

func parseCommand(fds [3]*os.File, args []string) error {
	opts, files, err := getopt.Parse(args, []*getopt.OptionSpec{outputOption})
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	if len(files) != 1 {
		return prog.BadUsage("parse requires exactly one file argument")
	}
	var output string
	for _, opt := range opts {
		if opt.Spec == outputOption {
			output = opt.Argument
		}
	}
	name := files[0]

	fmt.Fprintln(fds[1], "Parsing markdown file:", name)
	src, err := readSource(name)
	if err != nil {
		return err
	}
	fmt.Fprintln(fds[1], "Parsing markdown...")
	start := time.Now()
	html, err := md.ConvertSource(src)
	if err != nil {
		logger.Printf("converting %s failed: %v", name, err)
		diag.ShowError(fds[2], err)
		return prog.Exit(1)
	}
	logger.Printf("converted %s (%d bytes) to %d bytes of HTML in %v",
		name, len(src.Code), len(html), time.Since(start))
	fmt.Fprintln(fds[1], "Parse successful!")

	if output == "" {
		fmt.Fprintln(fds[1], "\n--- Generated HTML ---")
		fmt.Fprintln(fds[1], html)
		fmt.Fprintln(fds[1], "--- End of HTML ---")
		return nil
	}
	if err := os.WriteFile(output, []byte(html), 0644); err != nil {
		return fmt.Errorf("write HTML: %w", err)
	}
	fmt.Fprintf(fds[1], "HTML saved to: %s (%s)\n", output, humanize.Bytes(uint64(len(html))))
	return nil
}

func treeCommand(fds [3]*os.File, args []string) error {
	_, files, err := getopt.Parse(args, nil)
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	if len(files) != 1 {
		return prog.BadUsage("tree requires exactly one file argument")
	}
	src, err := readSource(files[0])
	if err != nil {
		return err
	}
	tree, err := parse.Parse(src)
	if err != nil {
		diag.ShowError(fds[2], err)
		return prog.Exit(1)
	}
	return parse.DumpYAML(fds[1], tree.Root)
}
