package testutil

import (
	"os"
	"path/filepath"

	"src.mdhtml.dev/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It is different from testing.TB.TempDir in that it
// resolves symlinks in the path of the directory.
//
// It panics if the test directory cannot be created or symlinks cannot be
// resolved.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "mdhtmltest")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// InTempDir is like TempDir, but also changes into the directory, and changes
// back to the original directory when the test finishes. It returns the path
// of the temporary directory.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	Chdir(c, dir)
	return dir
}

// Chdir changes into a directory, and restores the original working directory
// when a test finishes.
func Chdir(c Cleanuper, dir string) {
	oldWd := must.OK1(os.Getwd())
	must.OK(os.Chdir(dir))
	c.Cleanup(func() { must.OK(os.Chdir(oldWd)) })
}

// Dir describes the layout of a directory. The keys of the map represent
// filenames. Each value is either a string (for the content of a regular
// file) or a Dir (for the content of a subdirectory).
type Dir map[string]any

// ApplyDir creates the given filesystem layout in the current directory.
func ApplyDir(dir Dir) {
	applyDir(dir, "")
}

func applyDir(dir Dir, prefix string) {
	for name, file := range dir {
		path := filepath.Join(prefix, name)
		switch file := file.(type) {
		case string:
			must.OK(os.WriteFile(path, []byte(file), 0644))
		case Dir:
			must.OK(os.MkdirAll(path, 0755))
			applyDir(file, path)
		default:
			panic(file)
		}
	}
}
