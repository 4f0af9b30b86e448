package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/runeutil"
)

// BufferStore tracks the file behind the editor and the content last read
// from or written to it. Content crosses the interface in editor form (see
// Normalize); the bytes on disk keep their own line endings and tabs.
type BufferStore interface {
	Path() string
	Name() string
	Saved() string
	Dirty(current string) bool
	Open(path string) (string, error)
	Load(path, content string)
	Save(content string) error
	Reset()
}

type bufferStore struct {
	path  string
	raw   string
	saved string
	// lines maps each normalised line of raw to its bytes on disk.
	lines     map[string]string
	crlf      bool
	tabIndent bool
}

var sanitizer = runeutil.NewSanitizer()

// Normalize returns content the way the editor holds it: CRLF line endings
// folded to LF, tabs expanded and other control characters dropped.
func Normalize(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return string(sanitizer.Sanitize([]rune(content)))
}

// NewBufferStore returns an empty, untitled buffer.
func NewBufferStore() BufferStore {
	return &bufferStore{}
}

func (b *bufferStore) Path() string {
	return b.path
}

// Name is the display name shown in the header.
func (b *bufferStore) Name() string {
	if b.path == "" {
		return "untitled"
	}
	return filepath.Base(b.path)
}

func (b *bufferStore) Saved() string {
	return b.saved
}

func (b *bufferStore) Dirty(current string) bool {
	return Normalize(current) != b.saved
}

// Open reads path from disk and makes it the current buffer. A missing file
// opens as an empty buffer that Save will create.
func (b *bufferStore) Open(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("state: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("state: open %s: %w", abs, err)
	}
	b.Load(abs, string(data))
	return b.saved, nil
}

// Load binds path with content as read from disk.
func (b *bufferStore) Load(path, content string) {
	b.path = path
	b.raw = content
	b.saved = Normalize(content)
	b.crlf = strings.Contains(content, "\r\n")
	b.tabIndent = false
	b.lines = make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, "\t") {
			b.tabIndent = true
		}
		key := Normalize(line)
		if _, ok := b.lines[key]; !ok {
			b.lines[key] = line
		}
	}
}

// Save writes content to the bound file. Unedited content is written back
// byte for byte; edited content keeps the file's line ending, and lines
// that still match a line on disk keep its original bytes.
func (b *bufferStore) Save(content string) error {
	if b.path == "" {
		return fmt.Errorf("state: buffer has no file")
	}
	data := b.denormalize(Normalize(content))
	if err := os.WriteFile(b.path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("state: save %s: %w", b.path, err)
	}
	b.Load(b.path, data)
	return nil
}

func (b *bufferStore) denormalize(content string) string {
	if content == b.saved && b.raw != "" {
		return b.raw
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if orig, ok := b.lines[line]; ok {
			lines[i] = orig
			continue
		}
		if b.tabIndent {
			lines[i] = retab(line)
		}
	}
	sep := "\n"
	if b.crlf {
		sep = "\r\n"
	}
	return strings.Join(lines, sep)
}

// retab turns each leading run of four spaces back into a tab.
func retab(line string) string {
	var prefix strings.Builder
	for strings.HasPrefix(line, tabWidth) {
		prefix.WriteByte('\t')
		line = line[len(tabWidth):]
	}
	return prefix.String() + line
}

const tabWidth = "    "

func (b *bufferStore) Reset() {
	b.path = ""
	b.raw = ""
	b.saved = ""
	b.lines = nil
	b.crlf = false
	b.tabIndent = false
}
