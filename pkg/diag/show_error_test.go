package diag

import (
	"errors"
	"strings"
	"testing"
)

type showerError struct{}

func (showerError) Error() string { return "error" }

func (showerError) Show(_ string) string { return "show" }

var showErrorTests = []struct {
	name    string
	err     error
	wantBuf string
}{
	{"A Shower error", showerError{}, "show\n"},
	{"A errors.New error", errors.New("ERROR"), "{ERROR}\n"},
}

func TestShowError(t *testing.T) {
	setMessageMarkers(t, "{", "}")
	for _, test := range showErrorTests {
		t.Run(test.name, func(t *testing.T) {
			sb := &strings.Builder{}
			ShowError(sb, test.err)
			if sb.String() != test.wantBuf {
				t.Errorf("Wrote %q, want %q", sb.String(), test.wantBuf)
			}
		})
	}
}

func TestComplainf(t *testing.T) {
	setMessageMarkers(t, "{", "}")
	sb := &strings.Builder{}
	Complainf(sb, "bad %s", "thing")
	if got, want := sb.String(), "{bad thing}\n"; got != want {
		t.Errorf("Wrote %q, want %q", got, want)
	}
}

func TestMessagef(t *testing.T) {
	setMessageMarkers(t, "{", "}")
	if got, want := Messagef("x=%d", 1), "{x=1}"; got != want {
		t.Errorf("Messagef -> %q, want %q", got, want)
	}
}
