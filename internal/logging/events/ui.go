package events

import "github.com/atomicstack/mdpreview/internal/logging"

type MenuTracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type FileTracer struct{}

var (
	Menu    = MenuTracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
	File    = FileTracer{}
)

func (MenuTracer) Open(items []string) {
	logging.Trace("menu.open", map[string]interface{}{"items": items})
}

func (MenuTracer) Close(reason string) {
	logging.Trace("menu.close", map[string]interface{}{"reason": reason})
}

func (MenuTracer) Select(id, label string) {
	logging.Trace("menu.select", map[string]interface{}{"item": id, "label": label})
}

func (MenuTracer) Dispatch(id string) {
	logging.Trace("menu.dispatch", map[string]interface{}{"item": id})
}

func (MenuTracer) Cursor(cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"cursor": cursor})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (FileTracer) Open(path string, size int) {
	logging.Trace("file.open", map[string]interface{}{"path": path, "bytes": size})
}

func (FileTracer) Reload(path string, applied bool) {
	logging.Trace("file.reload", map[string]interface{}{"path": path, "applied": applied})
}

func (FileTracer) Export(paths []string) {
	logging.Trace("file.export", map[string]interface{}{"paths": paths})
}
