// Package pprof adds profiling flags to mdhtml.
package pprof

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"src.mdhtml.dev/pkg/logutil"
	"src.mdhtml.dev/pkg/prog"
)

var logger = logutil.GetLogger("[pprof] ")

// Program adds support for the -cpuprofile and -allocsprofile flags. It
// always lets the next program run, and writes the profiles after it has
// finished.
type Program struct {
	cpuProfile    string
	allocsProfile string
}

func (p *Program) RegisterFlags(f *prog.FlagSet) {
	f.StringVar(&p.cpuProfile, "cpuprofile", "", "Write a CPU profile to file")
	f.StringVar(&p.allocsProfile, "allocsprofile", "", "Write a memory allocation profile to file")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	var cleanups []func([3]*os.File)
	if f := createProfile(fds[2], p.cpuProfile, "CPU"); f != nil {
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot start CPU profile:", err)
			f.Close()
		} else {
			cleanups = append(cleanups, func([3]*os.File) {
				pprof.StopCPUProfile()
				f.Close()
			})
		}
	}
	if f := createProfile(fds[2], p.allocsProfile, "memory allocation"); f != nil {
		cleanups = append(cleanups, func(fds [3]*os.File) {
			if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
				fmt.Fprintln(fds[2], "Warning: cannot write memory allocation profile:", err)
			}
			f.Close()
		})
	}
	return prog.NextProgram(cleanups...)
}

// createProfile creates the named profile file. It returns nil if name is
// empty or the file cannot be created.
func createProfile(w io.Writer, name, kind string) *os.File {
	if name == "" {
		return nil
	}
	f, err := os.Create(name)
	if err != nil {
		fmt.Fprintf(w, "Warning: cannot create %s profile: %v\n", kind, err)
		fmt.Fprintf(w, "Continuing without %s profiling.\n", kind)
		return nil
	}
	logger.Printf("writing %s profile to %s", kind, name)
	return f
}
