package logutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	logger := GetLogger("foo ")

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	SetOutput(w)
	logger.Printf("out 1")
	w.Close()
	wantOut1 := "foo out 1\n"
	if out := string(readAll(t, r)); !strings.HasSuffix(out, wantOut1) {
		t.Errorf("got output %q, want suffix %q", out, wantOut1)
	}

	logPath := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(logPath); err != nil {
		t.Fatal(err)
	}
	logger.Printf("out 2")
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}
	logger.Printf("out 3")
	wantOut2 := "foo out 2\n"
	if out := readFile(t, logPath); !strings.HasSuffix(out, wantOut2) {
		t.Errorf("got output %q, want suffix %q", out, wantOut2)
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir"))
	if err == nil {
		t.Errorf("SetOutputFile to a non-existent directory succeeded")
	}
}

func readAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
