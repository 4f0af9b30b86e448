// Package render converts markdown source into the markup and stylesheet
// pair shown by the preview.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Document is the result of one render cycle. It is never mutated after
// Render returns; the next keystroke produces a new one.
type Document struct {
	Markup     string
	Stylesheet string
	Title      string
	Theme      string
}

// Renderer turns the full editor text into a Document.
type Renderer interface {
	Render(markdown string) (Document, error)
}

// Func adapts a function to the Renderer interface.
type Func func(markdown string) (Document, error)

// Render implements Renderer.
func (f Func) Render(markdown string) (Document, error) {
	return f(markdown)
}

// Options sets the fallbacks used when the source has no front matter.
type Options struct {
	Theme     string
	Highlight string
}

const defaultHighlight = "monokai"

// Markdown renders CommonMark plus GFM, emoji shortcodes and highlighted
// code fences. Output markup is sanitised before it leaves the package.
type Markdown struct {
	opts   Options
	md     goldmark.Markdown
	code   *codeRenderer
	policy *bluemonday.Policy

	mu sync.Mutex
}

// NewMarkdown builds a Markdown renderer.
func NewMarkdown(opts Options) *Markdown {
	if _, ok := themes[opts.Theme]; !ok {
		opts.Theme = DefaultTheme
	}
	if strings.TrimSpace(opts.Highlight) == "" {
		opts.Highlight = defaultHighlight
	}
	code := newCodeRenderer()
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, emoji.Emoji),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(code, 200)),
		),
	)
	return &Markdown{
		opts:   opts,
		md:     md,
		code:   code,
		policy: newPolicy(),
	}
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("span")
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	return p
}

// Render implements Renderer. Empty input yields an empty markup with the
// default stylesheet.
func (m *Markdown) Render(markdown string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	front, body, err := parseFrontMatter(markdown)
	if err != nil {
		return Document{}, err
	}
	theme := m.opts.Theme
	if _, ok := themes[front.Theme]; ok {
		theme = front.Theme
	}
	highlight := m.opts.Highlight
	if front.Highlight != "" {
		highlight = front.Highlight
	}
	style := styles.Get(highlight)
	m.code.style = style

	source := []byte(body)
	root := m.md.Parser().Parse(text.NewReader(source))
	var buf bytes.Buffer
	if err := m.md.Renderer().Render(&buf, source, root); err != nil {
		return Document{}, fmt.Errorf("render markdown: %w", err)
	}

	css, err := stylesheet(theme, style, front.Style)
	if err != nil {
		return Document{}, err
	}

	title := strings.TrimSpace(front.Title)
	if title == "" {
		title = firstHeading(root, source)
	}
	return Document{
		Markup:     m.policy.Sanitize(buf.String()),
		Stylesheet: css,
		Title:      title,
		Theme:      theme,
	}, nil
}

func firstHeading(root ast.Node, source []byte) string {
	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(string(h.Text(source)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}
