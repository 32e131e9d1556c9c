package must

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOK(t *testing.T) {
	OK(nil)
	if got := OK1(42, nil); got != 42 {
		t.Errorf("OK1 -> %v, want 42", got)
	}
	if a, b := OK2("a", 2, nil); a != "a" || b != 2 {
		t.Errorf("OK2 -> (%v, %v), want (a, 2)", a, b)
	}
}

func TestOK_PanicsOnError(t *testing.T) {
	err := errors.New("bad")
	defer func() {
		if r := recover(); r != err {
			t.Errorf("recovered %v, want %v", r, err)
		}
	}()
	OK(err)
}

func TestWriteFileAndReadFileString(t *testing.T) {
	name := filepath.Join(t.TempDir(), "d", "f")
	WriteFile(name, "content")
	if got := ReadFileString(name); got != "content" {
		t.Errorf("ReadFileString -> %q, want %q", got, "content")
	}
}
