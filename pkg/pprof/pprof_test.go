package pprof_test

import (
	"os"
	"testing"

	"src.mdhtml.dev/pkg/pprof"
	"src.mdhtml.dev/pkg/prog"
	"src.mdhtml.dev/pkg/prog/progtest"
	"src.mdhtml.dev/pkg/testutil"
)

var (
	Test       = progtest.Test
	ThatMdhtml = progtest.ThatMdhtml
)

func TestProgram(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, prog.Composite(&pprof.Program{}, noopProgram{}),
		ThatMdhtml("-cpuprofile", "cpuprof").DoesNothing(),
		ThatMdhtml("-allocsprofile", "allocsprof").DoesNothing(),
		ThatMdhtml("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
		ThatMdhtml("-allocsprofile", "/a/bad/path").
			WritesStderrContaining("Continuing without memory allocation profiling."),
	)

	// There isn't much to test beyond a sanity check that the profile files
	// now exist.
	for _, name := range []string{"cpuprof", "allocsprof"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("profile file %s does not exist: %v", name, err)
		}
	}
}

type noopProgram struct{}

func (noopProgram) RegisterFlags(*prog.FlagSet)     {}
func (noopProgram) Run([3]*os.File, []string) error { return nil }
