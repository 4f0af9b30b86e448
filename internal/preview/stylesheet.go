package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Stylesheet is the parsed form of the applied CSS, reduced to the rules a
// terminal can honour.
type Stylesheet struct {
	rules []styleRule
}

type styleRule struct {
	selector string
	match    cascadia.Selector
	decls    []*css.Declaration
}

// ParseStylesheet parses CSS text. Rules whose selectors cascadia cannot
// compile are skipped. On a parse error the returned sheet is empty but
// usable.
func ParseStylesheet(text string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	if strings.TrimSpace(text) == "" {
		return sheet, nil
	}
	parsed, err := parser.Parse(text)
	if err != nil {
		return sheet, fmt.Errorf("parse stylesheet: %w", err)
	}
	for _, rule := range parsed.Rules {
		if rule.Kind != css.QualifiedRule {
			continue
		}
		for _, sel := range rule.Selectors {
			match, err := cascadia.Compile(sel)
			if err != nil {
				continue
			}
			sheet.rules = append(sheet.rules, styleRule{selector: sel, match: match, decls: rule.Declarations})
		}
	}
	return sheet, nil
}

// Len reports the number of compiled selector rules.
func (s *Stylesheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// textStyle is the subset of computed CSS the painter maps to lipgloss.
type textStyle struct {
	fg        string
	bg        string
	bold      bool
	italic    bool
	underline bool
	strike    bool
}

// computeStyle layers matching rules over the inherited style in source
// order. Specificity is not considered; later rules win.
func (s *Stylesheet) computeStyle(n *html.Node, inherited textStyle) textStyle {
	out := inherited
	if s == nil || n == nil || n.Type != html.ElementNode {
		return out
	}
	for _, rule := range s.rules {
		if !rule.match.Match(n) {
			continue
		}
		for _, decl := range rule.decls {
			applyDeclaration(&out, decl.Property, decl.Value)
		}
	}
	return out
}

func applyDeclaration(st *textStyle, property, value string) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch strings.ToLower(property) {
	case "color":
		if c, ok := normalizeColor(value); ok {
			st.fg = c
		}
	case "background-color", "background":
		if c, ok := normalizeColor(value); ok {
			st.bg = c
		}
	case "font-weight":
		switch value {
		case "bold", "bolder":
			st.bold = true
		case "normal", "lighter":
			st.bold = false
		default:
			if w, err := strconv.Atoi(value); err == nil {
				st.bold = w >= 600
			}
		}
	case "font-style":
		switch value {
		case "italic", "oblique":
			st.italic = true
		case "normal":
			st.italic = false
		}
	case "text-decoration", "text-decoration-line":
		if value == "none" {
			st.underline = false
			st.strike = false
			return
		}
		if strings.Contains(value, "underline") {
			st.underline = true
		}
		if strings.Contains(value, "line-through") {
			st.strike = true
		}
	}
}

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
}

func normalizeColor(value string) (string, bool) {
	if fields := strings.Fields(value); len(fields) > 0 {
		value = fields[0]
	}
	if hex, ok := namedColors[value]; ok {
		return hex, true
	}
	if !strings.HasPrefix(value, "#") {
		return "", false
	}
	digits := value[1:]
	if _, err := strconv.ParseUint(digits, 16, 32); err != nil {
		return "", false
	}
	switch len(digits) {
	case 3:
		var b strings.Builder
		b.WriteByte('#')
		for _, r := range digits {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return b.String(), true
	case 6:
		return value, true
	}
	return "", false
}
