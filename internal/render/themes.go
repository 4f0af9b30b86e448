package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// DefaultTheme is used when neither the options nor the document pick one.
const DefaultTheme = "default"

var themes = map[string]string{
	"default": `h1, h2 { color: #58a6ff; font-weight: bold; }
h3, h4, h5, h6 { color: #79c0ff; font-weight: bold; }
a { color: #58a6ff; text-decoration: underline; }
strong { font-weight: bold; }
em { font-style: italic; }
del { text-decoration: line-through; }
code { color: #ffa657; }
blockquote { color: #8b949e; font-style: italic; }
th { font-weight: bold; }
hr { color: #30363d; }
`,
	"gaia": `h1, h2, h3, h4, h5, h6 { color: #fff8e1; background-color: #455a64; font-weight: bold; }
a { color: #ffcc80; text-decoration: underline; }
strong { color: #ffcc80; font-weight: bold; }
em { font-style: italic; }
del { text-decoration: line-through; }
code { color: #80cbc4; }
blockquote { color: #b0bec5; }
th { font-weight: bold; }
hr { color: #607d8b; }
`,
	"uncover": `h1, h2 { color: #202228; background-color: #fdfcff; font-weight: bold; }
h3, h4, h5, h6 { color: #fdfcff; font-weight: bold; }
a { color: #0288d1; text-decoration: underline; }
strong { font-weight: bold; }
em { font-style: italic; }
del { text-decoration: line-through; }
code { color: #e91e63; }
blockquote { color: #9e9e9e; font-style: italic; }
th { font-weight: bold; }
hr { color: #9e9e9e; }
`,
}

// Themes lists the built-in theme names.
func Themes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// stylesheet assembles theme, highlight and inline CSS. Equal inputs always
// produce byte-identical output.
func stylesheet(theme string, style *chroma.Style, extra string) (string, error) {
	var b strings.Builder
	b.WriteString(themes[theme])
	highlight, err := highlightCSS(style)
	if err != nil {
		return "", fmt.Errorf("highlight css: %w", err)
	}
	b.WriteString(highlight)
	if extra = strings.TrimSpace(extra); extra != "" {
		b.WriteString("\n")
		b.WriteString(extra)
		b.WriteString("\n")
	}
	return b.String(), nil
}
