// Package prog supports building testable, composable programs.
//
// The main abstraction of this package is the [Program] interface, which can
// be combined using [Composite]. The mdhtml binary is composed of the
// subprograms in pkg/buildinfo, pkg/lsp and pkg/convert.
package prog

import (
	"flag"
	"fmt"
	"io"
	"os"

	"src.mdhtml.dev/pkg/logutil"
)

// Program represents a subprogram.
type Program interface {
	// RegisterFlags is called before Run to register flags specific to the
	// subprogram.
	RegisterFlags(fs *FlagSet)
	// Run runs the subprogram. It may return ErrNextProgram to let the next
	// program in a Composite run instead.
	Run(fds [3]*os.File, args []string) error
}

// FlagSet wraps a [flag.FlagSet]. It also provides flags shared by more than
// one subprogram.
type FlagSet struct {
	*flag.FlagSet
	json *bool
}

// JSON returns a pointer to the value of the -json flag, registering it if
// needed.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"Show the output from -buildinfo or -version in JSON")
		fs.json = &json
	}
	return fs.json
}

// Flags common to all subprograms.
type commonFlags struct {
	Log  string
	Help bool
}

func newFlagSet(f *commonFlags) *FlagSet {
	fs := flag.NewFlagSet("mdhtml", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "A file to write debug log to")
	fs.BoolVar(&f.Help, "help", false, "Show usage help and quit")

	return &FlagSet{FlagSet: fs}
}

const usageHead = `Usage:
  mdhtml [flags] parse <file> [--output <html_file>]
  mdhtml [flags] tree <file>
  mdhtml help | credits
  mdhtml -lsp
`

func usage(out io.Writer, fs *FlagSet) {
	fmt.Fprint(out, usageHead)
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}

// Run parses command-line flags and runs the [Program], returning the exit
// status. It also handles the flags common to all programs.
func Run(fds [3]*os.File, args []string, p Program) int {
	var f commonFlags
	fs := newFlagSet(&f)
	p.RegisterFlags(fs)

	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. -help is defined but -h is not,
			// so this means that -h has been requested. Treat it like any
			// other undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Composite returns a Program made up from other programs. It runs the
// programs in turn, terminating at the first one that doesn't return
// [ErrNextProgram].
func Composite(programs ...Program) Program {
	return composite(programs)
}

type composite []Program

func (cp composite) RegisterFlags(f *FlagSet) {
	for _, p := range cp {
		p.RegisterFlags(f)
	}
}

func (cp composite) Run(fds [3]*os.File, args []string) error {
	var cleanups []func([3]*os.File)
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i](fds)
		}
	}()
	for _, p := range cp {
		err := p.Run(fds, args)
		np, ok := err.(*nextProgramError)
		if !ok {
			return err
		}
		cleanups = append(cleanups, np.cleanups...)
	}
	// If we have reached here, all subprograms have returned ErrNextProgram
	return ErrNextProgram
}

// ErrNextProgram is a special error that may be returned by [Program.Run] that
// is part of a [Composite] program, indicating that the next program should be
// tried.
var ErrNextProgram error = &nextProgramError{}

// NextProgram returns an error that is like [ErrNextProgram], and also asks
// the [Composite] program to run the cleanup functions after a later program
// has finished.
func NextProgram(cleanups ...func([3]*os.File)) error {
	if len(cleanups) == 0 {
		return ErrNextProgram
	}
	return &nextProgramError{cleanups}
}

type nextProgramError struct{ cleanups []func([3]*os.File) }

func (e *nextProgramError) Error() string { return "internal error: no suitable subprogram" }

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
