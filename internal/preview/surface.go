// Package preview owns the live preview surface and the scheduler that
// decides when new render output is written into it.
package preview

import (
	"github.com/atomicstack/mdpreview/internal/dom"
	"github.com/atomicstack/mdpreview/internal/logging/events"
	"golang.org/x/net/html"
)

// Surface is the single live preview: a DOM container and the stylesheet
// text currently applied to it. It is mutated in place and never swapped.
type Surface struct {
	root      *html.Node
	css       string
	sheet     *Stylesheet
	cssWrites int
	revision  int
}

// NewSurface returns an empty surface with no stylesheet applied.
func NewSurface() *Surface {
	return &Surface{
		root:  dom.NewContainer(),
		sheet: &Stylesheet{},
	}
}

// Root is the container the reconciler patches.
func (s *Surface) Root() *html.Node {
	return s.root
}

// Stylesheet returns the applied stylesheet text.
func (s *Surface) Stylesheet() string {
	return s.css
}

// StylesheetWrites counts how many times the stylesheet slot was assigned.
func (s *Surface) StylesheetWrites() int {
	return s.cssWrites
}

// Revision counts successful patches applied to the surface.
func (s *Surface) Revision() int {
	return s.revision
}

// ApplyStylesheet replaces the stylesheet when its text differs from the one
// already applied. It reports whether a write happened.
func (s *Surface) ApplyStylesheet(css string) bool {
	if css == s.css {
		return false
	}
	sheet, err := ParseStylesheet(css)
	if err != nil {
		events.Render.StylesheetError(err)
	}
	s.css = css
	s.sheet = sheet
	s.cssWrites++
	return true
}

func (s *Surface) markPatched() {
	s.revision++
}
