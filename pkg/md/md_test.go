package md_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "src.mdhtml.dev/pkg/md"
	"src.mdhtml.dev/pkg/parse"
	"src.mdhtml.dev/pkg/render"
	"src.mdhtml.dev/pkg/testutil"
)

func TestConvert(t *testing.T) {
	markdown := testutil.Dedent(`
		# Shopping

		Things to buy **today**:

		- eggs
		- *fresh* milk

		1. go to the shop
		2. pay
		`)
	want := testutil.Dedent(`
		<h1>Shopping</h1>
		<p>Things to buy <strong>today</strong>:</p>
		<ul>
		<li>eggs</li>
		<li><em>fresh</em> milk</li>
		</ul>
		<ol>
		<li>go to the shop</li>
		<li>pay</li>
		</ol>
		`)
	got, err := Convert(markdown)
	if err != nil {
		t.Fatalf("Convert returns error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestConvert_HeaderLevels(t *testing.T) {
	for level := 1; level <= 6; level++ {
		markdown := strings.Repeat("#", level) + " Title  \n"
		want := fmt.Sprintf("<h%d>Title</h%d>\n", level, level)
		got, err := Convert(markdown)
		if err != nil || got != want {
			t.Errorf("Convert(%q) = (%q, %v), want (%q, nil)", markdown, got, err, want)
		}
	}
	got, err := Convert("####### Title\n")
	if err != nil || strings.Contains(got, "<h") {
		t.Errorf("Convert with 7 # = (%q, %v), want a paragraph", got, err)
	}
}

func TestConvert_ListOrder(t *testing.T) {
	got, err := Convert("- Point 1\n- Point 2\n")
	if err != nil {
		t.Fatal(err)
	}
	rest := got
	for _, part := range []string{"<ul>\n", "<li>Point 1</li>\n", "<li>Point 2</li>\n", "</ul>\n"} {
		i := strings.Index(rest, part)
		if i == -1 {
			t.Fatalf("output %q lacks %q in order", got, part)
		}
		rest = rest[i+len(part):]
	}
}

func TestConvert_WrappersHaveNoSurroundingWhitespace(t *testing.T) {
	got, err := Convert("  padded   \n\n-   item   \n")
	if err != nil {
		t.Fatal(err)
	}
	want := "<p>padded</p>\n<ul>\n<li>item</li>\n</ul>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvert_UnclosedBoldIsParseError(t *testing.T) {
	_, err := Convert("**no close")
	if !IsParseError(err) {
		t.Fatalf("got error %v, want a parse error", err)
	}
	if IsStructureError(err) {
		t.Errorf("IsStructureError(%v) = true", err)
	}
	var parseErr *parse.Error
	errors.As(err, &parseErr)
	if parseErr.Line() != 1 || parseErr.Column() != 1 {
		t.Errorf("error at %d:%d, want 1:1", parseErr.Line(), parseErr.Column())
	}
	want := []parse.Rule{parse.BoldItalic, parse.Bold}
	if diff := cmp.Diff(want, parseErr.Attempted); diff != "" {
		t.Errorf("attempted rules (-want +got):\n%s", diff)
	}
}

func TestConvertSource_UsesName(t *testing.T) {
	_, err := ConvertSource(parse.Source{Name: "notes.md", Code: "ok\n**x\n"})
	want := `parse error: notes.md:2:1: unclosed "**" (attempted bold_italic, bold)`
	if err == nil || err.Error() != want {
		t.Errorf("got error %v, want %q", err, want)
	}
}

func TestIsStructureError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &render.StructureError{Node: &parse.Node{Rule: parse.Header}})
	if !IsStructureError(err) {
		t.Errorf("IsStructureError returns false for a wrapped StructureError")
	}
	if IsParseError(err) {
		t.Errorf("IsParseError returns true for a StructureError")
	}
}
