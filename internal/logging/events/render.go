package events

import "github.com/atomicstack/mdpreview/internal/logging"

type RenderTracer struct{}

var Render = RenderTracer{}

func (RenderTracer) Scheduled(primitive string, generation uint64) {
	logging.Trace("render.scheduled", map[string]interface{}{"primitive": primitive, "generation": generation})
}

func (RenderTracer) Superseded(generation, latest uint64) {
	logging.Trace("render.superseded", map[string]interface{}{"generation": generation, "latest": latest})
}

func (RenderTracer) StylesheetApplied(generation uint64, size int) {
	logging.Trace("render.stylesheet", map[string]interface{}{"generation": generation, "bytes": size})
}

func (RenderTracer) StylesheetError(err error) {
	if err == nil {
		return
	}
	logging.Trace("render.stylesheet.error", map[string]interface{}{"error": err.Error()})
}

func (RenderTracer) Patched(generation uint64, revision int) {
	logging.Trace("render.patched", map[string]interface{}{"generation": generation, "revision": revision})
}

func (RenderTracer) PatchFailed(generation uint64, err error) {
	logging.Trace("render.patch.error", map[string]interface{}{"generation": generation, "error": err.Error()})
}

func (RenderTracer) ConversionFailed(err error) {
	logging.Trace("render.conversion.error", map[string]interface{}{"error": err.Error()})
}
