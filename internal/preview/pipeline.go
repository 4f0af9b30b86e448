package preview

import (
	"fmt"

	"github.com/atomicstack/mdpreview/internal/logging/events"
	"github.com/atomicstack/mdpreview/internal/render"
)

// Pipeline connects the editor's change notifications to the scheduler.
type Pipeline struct {
	renderer  render.Renderer
	scheduler *Scheduler
	last      render.Document
}

// NewPipeline returns a Pipeline rendering through r into s.
func NewPipeline(r render.Renderer, s *Scheduler) *Pipeline {
	return &Pipeline{renderer: r, scheduler: s}
}

// Input renders the full editor text and hands the result to the scheduler.
// A conversion failure is returned to the caller and nothing is scheduled,
// so the surface keeps its previous state.
func (p *Pipeline) Input(text string) error {
	doc, err := p.renderer.Render(text)
	if err != nil {
		events.Render.ConversionFailed(err)
		return fmt.Errorf("render: %w", err)
	}
	p.last = doc
	p.scheduler.OnDocumentReady(doc)
	return nil
}

// Last returns the most recently rendered document, applied or not.
func (p *Pipeline) Last() render.Document {
	return p.last
}
