package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBufferStartsUntitled(t *testing.T) {
	b := NewBufferStore()
	if b.Path() != "" || b.Name() != "untitled" {
		t.Fatalf("expected untitled buffer, got %q/%q", b.Path(), b.Name())
	}
	if b.Dirty("") {
		t.Fatalf("expected empty buffer clean")
	}
	if !b.Dirty("x") {
		t.Fatalf("expected edits to mark buffer dirty")
	}
	if err := b.Save("x"); err == nil {
		t.Fatalf("expected save without file to fail")
	}
}

func TestBufferOpenAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("# hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b := NewBufferStore()
	content, err := b.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if content != "# hi" {
		t.Fatalf("expected file content, got %q", content)
	}
	if b.Name() != "notes.md" {
		t.Fatalf("expected name notes.md, got %q", b.Name())
	}
	if b.Dirty("# hi") {
		t.Fatalf("expected unchanged content clean")
	}
	if err := b.Save("# bye"); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "# bye" {
		t.Fatalf("expected saved content on disk, got %q", data)
	}
	if b.Dirty("# bye") {
		t.Fatalf("expected clean after save")
	}
	b.Reset()
	if b.Path() != "" || b.Saved() != "" {
		t.Fatalf("expected reset buffer")
	}
}

func TestBufferOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.md")
	b := NewBufferStore()
	content, err := b.Open(path)
	if err != nil {
		t.Fatalf("open missing: %v", err)
	}
	if content != "" || b.Path() != path {
		t.Fatalf("expected empty buffer bound to %q, got %q/%q", path, content, b.Path())
	}
}

func TestBufferOpenDirectoryFails(t *testing.T) {
	b := NewBufferStore()
	if _, err := b.Open(t.TempDir()); err == nil {
		t.Fatalf("expected error opening a directory")
	}
}

func TestNormalizeMatchesEditorForm(t *testing.T) {
	cases := map[string]string{
		"a\r\nb":  "a\nb",
		"\tx":     "    x",
		"a\rb":    "a\nb",
		"bell\a!": "bell!",
		"plain\n": "plain\n",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestBufferCRLFAndTabsRoundTrip(t *testing.T) {
	raw := "# T\r\n\r\n```go\r\nfunc f() {\r\n\treturn\r\n}\r\n```\r\n"
	path := filepath.Join(t.TempDir(), "crlf.md")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b := NewBufferStore()
	content, err := b.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if strings.ContainsAny(content, "\r\t") {
		t.Fatalf("expected editor form without CR or tab, got %q", content)
	}
	if b.Dirty(content) {
		t.Fatalf("expected freshly opened buffer clean")
	}
	if err := b.Save(content); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != raw {
		t.Fatalf("expected unedited save to keep bytes\nexpected %q\ngot      %q", raw, data)
	}
}

func TestBufferEditedSaveKeepsLineEndingAndTabs(t *testing.T) {
	raw := "a\r\n\tb\r\n"
	path := filepath.Join(t.TempDir(), "edit.md")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b := NewBufferStore()
	content, err := b.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := b.Save(content + "        c\n"); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if want := "a\r\n\tb\r\n\t\tc\r\n"; string(data) != want {
		t.Fatalf("expected %q, got %q", want, data)
	}
	if b.Dirty(content + "        c\n") {
		t.Fatalf("expected clean after save")
	}
}
