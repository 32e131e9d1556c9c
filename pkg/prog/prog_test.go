package prog_test

import (
	"os"
	"testing"

	"src.mdhtml.dev/pkg/logutil"
	. "src.mdhtml.dev/pkg/prog"
	"src.mdhtml.dev/pkg/prog/progtest"
	"src.mdhtml.dev/pkg/testutil"
)

var (
	Test       = progtest.Test
	ThatMdhtml = progtest.ThatMdhtml
)

func TestCommonFlagHandling(t *testing.T) {
	testutil.InTempDir(t)
	t.Cleanup(func() { logutil.SetOutputFile("") })

	Test(t, testProgram{},
		ThatMdhtml("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatMdhtml("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatMdhtml("-help").
			WritesStdoutContaining("mdhtml [flags] parse <file>"),

		ThatMdhtml("-log", "log").DoesNothing(),
		ThatMdhtml("-log", "/a/bad/path/log").
			WritesStderrContaining("/a/bad/path/log"),
	)

	if _, err := os.Stat("log"); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestSharedJSONFlag(t *testing.T) {
	var json1, json2 *bool
	Test(t,
		Composite(
			testProgram{nextProgram: true, jsonPtr: &json1},
			testProgram{jsonPtr: &json2}),
		ThatMdhtml("-json").DoesNothing(),
	)
	if json1 != json2 || json1 == nil || !*json1 {
		t.Errorf("-json flag is not shared or not set")
	}
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{nextProgram: true}, testProgram{writeOut: "program 2"}),
		ThatMdhtml().WritesStdout("program 2"),
	)
}

func TestComposite_RunsCleanups(t *testing.T) {
	Test(t,
		Composite(
			testProgram{nextProgram: true, cleanupOut: "cleanup 1\n"},
			testProgram{nextProgram: true, cleanupOut: "cleanup 2\n"},
			testProgram{writeOut: "program 3\n"}),
		ThatMdhtml().WritesStdout("program 3\ncleanup 2\ncleanup 1\n"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{nextProgram: true}, testProgram{nextProgram: true}),
		ThatMdhtml().
			ExitsWith(2).
			WritesStderr(ErrNextProgram.Error()+"\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatMdhtml().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatMdhtml().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatMdhtml().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatMdhtml().ExitsWith(0),
	)
}

type testProgram struct {
	nextProgram bool
	cleanupOut  string
	writeOut    string
	returnErr   error
	jsonPtr     **bool
}

func (p testProgram) RegisterFlags(f *FlagSet) {
	if p.jsonPtr != nil {
		*p.jsonPtr = f.JSON()
	}
}

func (p testProgram) Run(fds [3]*os.File, args []string) error {
	if p.nextProgram {
		if p.cleanupOut != "" {
			return NextProgram(func(fds [3]*os.File) { fds[1].WriteString(p.cleanupOut) })
		}
		return ErrNextProgram
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}
