// Package ui contains the Bubble Tea program behind the markdown editor: a
// header with the application menu, the editor pane and the live preview.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry to a focused function (keys,
//     mouse, resize, deferred callbacks, watcher events, export results).
//   - Messages without a handler, such as cursor blinks, are forwarded to
//     the focused text input.
//
// Rendering:
//   - Every edit hands the editor's full text to a preview.Pipeline. The
//     resulting document is patched into the preview surface on a later
//     idle or frame turn. Those turns are tea commands built in host.go;
//     callbacks that need to return commands queue them with enqueue and
//     finishUpdate batches them into the handler's result.
//
// Menu:
//   - menu.Controller owns the open/closed state and the delayed dispatch.
//     This package only maps clicks, keys and shortcuts onto Toggle, Select
//     and Shortcut, and keeps the dropdown's cursor and filter in
//     internal/ui/state.Dropdown.
//
// Files:
//   - internal/state.BufferStore remembers the open file. A backend.Watcher
//     follows it on disk and the dispatcher decides whether an external
//     change reloads the editor or is reported as a conflict.
//   - Exports run through the command bus so the Chromium round trip never
//     blocks Update.
package ui
