package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"
)

const (
	quotePrefix  = "│ "
	listIndent   = "  "
	bulletMarker = "• "
)

// Paint renders the live tree as styled terminal text wrapped to width.
// A width of zero or less disables wrapping.
func (s *Surface) Paint(width int) string {
	p := &painter{sheet: s.sheet, width: width}
	for c := s.root.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, textStyle{})
	}
	p.flush()
	for len(p.out) > 0 && p.out[len(p.out)-1] == "" {
		p.out = p.out[:len(p.out)-1]
	}
	return strings.Join(p.out, "\n")
}

type segment struct {
	text  string
	style textStyle
}

type painter struct {
	sheet  *Stylesheet
	width  int
	out    []string
	line   []segment
	prefix []string
	marker string
	pre    int
}

func (p *painter) walk(n *html.Node, inherited textStyle) {
	switch n.Type {
	case html.TextNode:
		p.text(n.Data, inherited)
		return
	case html.ElementNode:
	default:
		return
	}
	style := p.sheet.computeStyle(n, inherited)
	switch n.Data {
	case "br":
		p.flush()
	case "hr":
		p.flush()
		width := p.width - p.prefixWidth()
		if width <= 0 {
			width = 3
		}
		p.emit(style.render(strings.Repeat("─", width)))
		p.blank()
	case "h1", "h2", "h3", "h4", "h5", "h6":
		p.flush()
		level := int(n.Data[1] - '0')
		p.line = append(p.line, segment{text: strings.Repeat("#", level) + " ", style: style})
		p.children(n, style)
		p.flush()
		p.blank()
	case "p":
		p.flush()
		p.children(n, style)
		p.flush()
		p.blank()
	case "pre":
		p.flush()
		p.pre++
		p.children(n, style)
		if len(p.line) > 0 {
			p.flushRaw()
		}
		p.pre--
		p.blank()
	case "blockquote":
		p.flush()
		p.prefix = append(p.prefix, quotePrefix)
		p.children(n, style)
		p.flush()
		p.prefix = p.prefix[:len(p.prefix)-1]
		p.blank()
	case "ul", "ol":
		p.list(n, style)
	case "tr":
		p.flush()
		first := true
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if !first {
				p.line = append(p.line, segment{text: " │ ", style: style})
			}
			first = false
			p.walk(c, style)
		}
		p.flush()
	case "table":
		p.flush()
		p.children(n, style)
		p.blank()
	case "img":
		alt := attr(n, "alt")
		if alt == "" {
			alt = attr(n, "src")
		}
		p.line = append(p.line, segment{text: fmt.Sprintf("[image: %s]", alt), style: style})
	case "input":
		if attr(n, "type") == "checkbox" {
			mark := "[ ] "
			if hasAttr(n, "checked") {
				mark = "[x] "
			}
			p.line = append(p.line, segment{text: mark, style: style})
		}
	default:
		p.children(n, style)
	}
}

func (p *painter) children(n *html.Node, style textStyle) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, style)
	}
}

func (p *painter) list(n *html.Node, style textStyle) {
	p.flush()
	ordered := n.Data == "ol"
	index := 1
	nested := len(p.prefix) > 0 && p.prefix[len(p.prefix)-1] == listIndent
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		marker := bulletMarker
		if ordered {
			marker = fmt.Sprintf("%d. ", index)
			index++
		}
		p.flush()
		p.prefix = append(p.prefix, listIndent)
		p.marker = style.render(marker)
		itemStyle := p.sheet.computeStyle(c, style)
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			if gc.Type == html.ElementNode && gc.Data == "p" {
				p.children(gc, p.sheet.computeStyle(gc, itemStyle))
				continue
			}
			p.walk(gc, itemStyle)
		}
		p.flush()
		if p.marker != "" {
			p.emit("")
		}
		p.prefix = p.prefix[:len(p.prefix)-1]
	}
	if !nested {
		p.blank()
	}
}

func (p *painter) text(data string, style textStyle) {
	if p.pre > 0 {
		parts := strings.Split(data, "\n")
		for i, part := range parts {
			if i > 0 {
				p.flushRaw()
			}
			if part != "" {
				p.line = append(p.line, segment{text: part, style: style})
			}
		}
		return
	}
	collapsed := strings.Join(strings.Fields(data), " ")
	if collapsed == "" {
		if len(p.line) > 0 && data != "" && !strings.HasSuffix(p.line[len(p.line)-1].text, " ") {
			p.line = append(p.line, segment{text: " ", style: style})
		}
		return
	}
	if startsWithSpace(data) && len(p.line) > 0 && !strings.HasSuffix(p.line[len(p.line)-1].text, " ") {
		collapsed = " " + collapsed
	}
	if endsWithSpace(data) {
		collapsed += " "
	}
	p.line = append(p.line, segment{text: collapsed, style: style})
}

// flush wraps and emits the pending inline run.
func (p *painter) flush() {
	if p.pre > 0 {
		p.flushRaw()
		return
	}
	if len(p.line) == 0 {
		return
	}
	text := strings.TrimRight(p.joined(), " ")
	p.line = p.line[:0]
	if text == "" {
		return
	}
	if limit := p.width - p.prefixWidth(); p.width > 0 && limit > 0 {
		text = wordwrap.String(text, limit)
	}
	for _, l := range strings.Split(text, "\n") {
		p.emit(l)
	}
}

// flushRaw emits the pending run as one unwrapped line, as pre blocks need.
func (p *painter) flushRaw() {
	if len(p.line) == 0 {
		p.emit("")
		return
	}
	text := p.joined()
	p.line = p.line[:0]
	p.emit(text)
}

func (p *painter) joined() string {
	var b strings.Builder
	for _, seg := range p.line {
		b.WriteString(seg.style.render(seg.text))
	}
	return b.String()
}

// emit appends a finished line. The first line of a list item hangs its
// marker in place of the innermost indent.
func (p *painter) emit(line string) {
	prefix := strings.Join(p.prefix, "")
	if p.marker != "" && len(p.prefix) > 0 {
		prefix = strings.Join(p.prefix[:len(p.prefix)-1], "") + p.marker
		p.marker = ""
	}
	p.out = append(p.out, prefix+line)
}

func (p *painter) blank() {
	if len(p.out) == 0 || p.out[len(p.out)-1] == "" {
		return
	}
	if len(p.prefix) > 0 {
		return
	}
	p.out = append(p.out, "")
}

func (p *painter) prefixWidth() int {
	return lipgloss.Width(strings.Join(p.prefix, ""))
}

func (ts textStyle) render(s string) string {
	if ts == (textStyle{}) {
		return s
	}
	st := lipgloss.NewStyle()
	if ts.fg != "" {
		st = st.Foreground(lipgloss.Color(ts.fg))
	}
	if ts.bg != "" {
		st = st.Background(lipgloss.Color(ts.bg))
	}
	if ts.bold {
		st = st.Bold(true)
	}
	if ts.italic {
		st = st.Italic(true)
	}
	if ts.underline {
		st = st.Underline(true)
	}
	if ts.strike {
		st = st.Strikethrough(true)
	}
	return st.Render(s)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\n\r") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\n\r") != s
}
