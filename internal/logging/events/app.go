package events

import "github.com/atomicstack/mdpreview/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

// Stop records how the program ended; err is nil on a normal quit.
func (AppTracer) Stop(file string, err error) {
	payload := map[string]interface{}{"file": file}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.stop", payload)
}
