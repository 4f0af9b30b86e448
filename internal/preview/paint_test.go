package preview

import (
	"strings"
	"testing"

	"github.com/atomicstack/mdpreview/internal/dom"
	"golang.org/x/net/html"
)

func paintMarkup(t *testing.T, markup, css string, width int) string {
	t.Helper()
	s := NewSurface()
	s.ApplyStylesheet(css)
	if err := dom.NewPatcher().Patch(s.Root(), markup); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	return s.Paint(width)
}

func TestPaintBlocks(t *testing.T) {
	out := paintMarkup(t, "<h2>Title</h2><p>Hello <strong>world</strong></p><ul><li>one</li><li>two</li></ul><ol><li>first</li></ol>", "", 0)
	lines := strings.Split(out, "\n")
	want := []string{"## Title", "", "Hello world", "", "• one", "• two", "", "1. first"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), out)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestPaintWrapsParagraphs(t *testing.T) {
	out := paintMarkup(t, "<p>aaa bbb ccc ddd</p>", "", 8)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 8 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
	if !strings.Contains(out, "\n") {
		t.Fatalf("expected wrapped output, got %q", out)
	}
}

func TestPaintPreservesPreformattedLines(t *testing.T) {
	out := paintMarkup(t, "<pre><code>a  b\n  c\n</code></pre><p>after</p>", "", 0)
	if !strings.Contains(out, "a  b\n  c") {
		t.Fatalf("expected preformatted text kept, got %q", out)
	}
	if !strings.HasSuffix(out, "after") {
		t.Fatalf("expected trailing paragraph, got %q", out)
	}
}

func TestPaintBlockquoteAndCheckbox(t *testing.T) {
	out := paintMarkup(t, `<blockquote><p>quoted</p></blockquote><ul><li><input type="checkbox" checked disabled> done</li></ul>`, "", 0)
	if !strings.Contains(out, quotePrefix+"quoted") {
		t.Fatalf("expected quote prefix, got %q", out)
	}
	if !strings.Contains(out, "[x] done") {
		t.Fatalf("expected checked task marker, got %q", out)
	}
}

func TestComputeStyleAppliesRulesInOrder(t *testing.T) {
	sheet, err := ParseStylesheet(`h1 { color: #f00; font-weight: bold; }
.note { font-style: italic; text-decoration: underline; }
h1 { color: blue; }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sheet.Len() != 3 {
		t.Fatalf("expected 3 rules, got %d", sheet.Len())
	}
	nodes, err := html.ParseFragment(strings.NewReader(`<h1 class="note">x</h1>`), dom.NewContainer())
	if err != nil || len(nodes) != 1 {
		t.Fatalf("fragment parse failed: %v", err)
	}
	st := sheet.computeStyle(nodes[0], textStyle{})
	if st.fg != "#0000ff" {
		t.Fatalf("expected later rule to win, got %q", st.fg)
	}
	if !st.bold || !st.italic || !st.underline {
		t.Fatalf("expected bold italic underline, got %+v", st)
	}
}

func TestComputeStyleInherits(t *testing.T) {
	sheet, _ := ParseStylesheet(`blockquote { color: #123456; }`)
	nodes, _ := html.ParseFragment(strings.NewReader(`<blockquote><p>x</p></blockquote>`), dom.NewContainer())
	quote := nodes[0]
	st := sheet.computeStyle(quote, textStyle{})
	child := sheet.computeStyle(quote.FirstChild, st)
	if child.fg != "#123456" {
		t.Fatalf("expected inherited colour, got %q", child.fg)
	}
}

func TestParseStylesheetSkipsUnsupportedSelectors(t *testing.T) {
	sheet, err := ParseStylesheet(`p { color: red; } @media print { p { color: black; } } a:unknownpseudo { color: red; }`)
	if err != nil {
		t.Skipf("parser rejected input: %v", err)
	}
	if sheet.Len() != 1 {
		t.Fatalf("expected only the plain rule, got %d", sheet.Len())
	}
}

func TestNormalizeColor(t *testing.T) {
	cases := map[string]string{
		"#abc":      "#aabbcc",
		"#a1b2c3":   "#a1b2c3",
		"red":       "#ff0000",
		"inherit":   "",
		"#zzz":      "",
		"#1234":     "",
		"#fff none": "#ffffff",
	}
	for in, want := range cases {
		got, ok := normalizeColor(in)
		if want == "" {
			if ok {
				t.Fatalf("expected %q to be rejected, got %q", in, got)
			}
			continue
		}
		if got != want {
			t.Fatalf("normalizeColor(%q) = %q, want %q", in, got, want)
		}
	}
}
