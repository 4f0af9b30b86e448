package preview

import (
	"github.com/atomicstack/mdpreview/internal/dom"
	"github.com/atomicstack/mdpreview/internal/logging"
	"github.com/atomicstack/mdpreview/internal/logging/events"
	"github.com/atomicstack/mdpreview/internal/render"
	"github.com/atomicstack/mdpreview/internal/schedule"
)

// Options tunes a Scheduler.
type Options struct {
	// LatestWins drops callbacks superseded by a newer document before they
	// touch the surface. Off by default: every callback applies its own
	// document and the last one to run wins.
	LatestWins bool
	// Report receives reconciliation failures from inside the deferred
	// callback. Defaults to logging.Error.
	Report func(error)
	// Applied runs after a document was patched into the surface.
	Applied func(render.Document)
}

// Scheduler decouples the rate of DOM mutation from the rate of input.
// OnDocumentReady only requests a slot; the surface is written when the
// host runs the callback.
type Scheduler struct {
	surface    *Surface
	reconciler dom.Reconciler
	host       schedule.Host
	opts       Options
	generation uint64
}

// NewScheduler wires a surface, reconciler and host primitives together.
func NewScheduler(surface *Surface, reconciler dom.Reconciler, host schedule.Host, opts Options) *Scheduler {
	if opts.Report == nil {
		opts.Report = logging.Error
	}
	return &Scheduler{
		surface:    surface,
		reconciler: reconciler,
		host:       host,
		opts:       opts,
	}
}

// Surface exposes the surface the scheduler writes to.
func (s *Scheduler) Surface() *Surface {
	return s.surface
}

// OnDocumentReady schedules doc for application at the host's next idle or
// frame opportunity.
func (s *Scheduler) OnDocumentReady(doc render.Document) {
	s.generation++
	gen := s.generation
	events.Render.Scheduled(s.host.Kind(), gen)
	s.host.Select().Request(func() {
		s.apply(doc, gen)
	})
}

func (s *Scheduler) apply(doc render.Document, gen uint64) {
	if s.opts.LatestWins && gen != s.generation {
		events.Render.Superseded(gen, s.generation)
		return
	}
	if s.surface.ApplyStylesheet(doc.Stylesheet) {
		events.Render.StylesheetApplied(gen, len(doc.Stylesheet))
	}
	if err := s.reconciler.Patch(s.surface.Root(), doc.Markup); err != nil {
		events.Render.PatchFailed(gen, err)
		s.opts.Report(err)
		return
	}
	s.surface.markPatched()
	events.Render.Patched(gen, s.surface.Revision())
	if s.opts.Applied != nil {
		s.opts.Applied(doc)
	}
}
