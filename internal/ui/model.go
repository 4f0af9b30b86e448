package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/mdpreview/internal/backend"
	"github.com/atomicstack/mdpreview/internal/data/dispatcher"
	"github.com/atomicstack/mdpreview/internal/dom"
	"github.com/atomicstack/mdpreview/internal/export"
	"github.com/atomicstack/mdpreview/internal/logging"
	"github.com/atomicstack/mdpreview/internal/menu"
	"github.com/atomicstack/mdpreview/internal/preview"
	"github.com/atomicstack/mdpreview/internal/render"
	"github.com/atomicstack/mdpreview/internal/schedule"
	"github.com/atomicstack/mdpreview/internal/state"
	"github.com/atomicstack/mdpreview/internal/theme"
	"github.com/atomicstack/mdpreview/internal/ui/command"
	uistate "github.com/atomicstack/mdpreview/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type Mode int

const (
	ModeEdit Mode = iota
	ModeOpenPrompt
)

type focusTarget int

const (
	focusEditor focusTarget = iota
	focusActivator
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model. Zero values select the Bubble Tea backed
// primitives and the built-in defaults.
type Options struct {
	File          string
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
	Theme         string
	Idle          bool
	IdleQuiet     time.Duration
	FrameInterval time.Duration
	MenuDelay     time.Duration
	LatestWins    bool
	ExportDir     string
	// InitialWidth and InitialHeight size the window until the first
	// WindowSizeMsg. Unlike Width and Height they do not pin the size.
	InitialWidth  int
	InitialHeight int

	// Detector decides between the two print entries on every menu open.
	Detector menu.Detector
	// Finder locates Chromium for PDF export. Nil exports HTML only.
	Finder export.BinaryFinder
	// Watch starts a file watcher for the opened file. Nil disables watching.
	Watch func(path string) (*backend.Watcher, error)
	// Host and Timer replace the tea-based primitives, mainly for tests.
	Host  *schedule.Host
	Timer schedule.Timer
	// StaticCursor disables cursor blinking.
	StaticCursor bool
}

// Model implements the Bubble Tea model for the editor window.
type Model struct {
	editor       textarea.Model
	preview      viewport.Model
	prompt       textinput.Model
	filterCursor cursor.Model

	renderer   render.Renderer
	surface    *preview.Surface
	scheduler  *preview.Scheduler
	pipeline   *preview.Pipeline
	hostKind   string
	menu       *menu.Controller
	dropdown   *uistate.Dropdown
	buffer     state.BufferStore
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus
	watcher    *backend.Watcher
	watch      func(string) (*backend.Watcher, error)
	finder     export.BinaryFinder
	exportDir  string
	themeName  string

	activity *activity
	queued   []tea.Cmd
	handlers map[reflect.Type]msgHandler

	focus        focusTarget
	mode         Mode
	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	verbose      bool
	staticCursor bool
	exporting    bool
}

// NewModel initialises the editor, preview pipeline and header menu.
func NewModel(opts Options) *Model {
	m := &Model{
		bus:          command.New(),
		buffer:       state.NewBufferStore(),
		activity:     &activity{},
		watch:        opts.Watch,
		finder:       opts.Finder,
		exportDir:    opts.ExportDir,
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		staticCursor: opts.StaticCursor,
		themeName:    opts.Theme,
	}
	m.dispatcher = dispatcher.New(m.buffer)

	m.editor = textarea.New()
	m.editor.ShowLineNumbers = false
	m.editor.CharLimit = 0
	m.editor.MaxHeight = 0
	m.editor.Placeholder = "# Start typing markdown"
	m.editor.Prompt = ""

	m.preview = viewport.New(0, 0)

	m.prompt = textinput.New()
	m.prompt.Prompt = "Open: "
	m.prompt.Placeholder = "path/to/file.md"
	m.prompt.CharLimit = 0
	if styles.Prompt != nil {
		m.prompt.PromptStyle = *styles.Prompt
	}

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.filterCursor = c

	if opts.StaticCursor {
		m.editor.Cursor.SetMode(cursor.CursorStatic)
		m.prompt.Cursor.SetMode(cursor.CursorStatic)
		m.filterCursor.SetMode(cursor.CursorStatic)
	}

	host := m.teaHost(opts.Idle, nonZero(opts.IdleQuiet, 40*time.Millisecond), nonZero(opts.FrameInterval, 16*time.Millisecond))
	if opts.Host != nil {
		host = *opts.Host
	}
	m.hostKind = host.Kind()
	var timer schedule.Timer = teaTimer{enqueue: m.enqueue}
	if opts.Timer != nil {
		timer = opts.Timer
	}

	m.renderer = render.NewMarkdown(render.Options{Theme: opts.Theme})
	m.surface = preview.NewSurface()
	m.scheduler = preview.NewScheduler(m.surface, dom.NewPatcher(), host, preview.Options{
		LatestWins: opts.LatestWins,
		Report:     m.reportPatchError,
		Applied:    func(render.Document) { m.refreshPreview() },
	})
	m.pipeline = preview.NewPipeline(m.renderer, m.scheduler)

	m.menu = menu.NewController(menu.Config{
		Commands: menu.Commands{
			New:   m.newDocument,
			Open:  m.startOpenPrompt,
			Print: m.print,
		},
		Detector:  opts.Detector,
		Activator: menu.ActivatorFunc(m.focusActivator),
		Timer:     timer,
		Delay:     opts.MenuDelay,
	})

	m.width, m.height = opts.InitialWidth, opts.InitialHeight
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.layout()
	m.registerHandlers()

	m.enqueue(m.editor.Focus())
	if opts.File != "" {
		m.openFile(opts.File)
	} else {
		m.renderInput()
	}
	return m
}

func nonZero(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := m.takeQueued()
	if m.watcher != nil {
		cmds = append(cmds, waitForBackendEvent(m.watcher))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if cmd := m.forwardToInputs(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(deferredMsg{}):       m.handleDeferredMsg,
		reflect.TypeOf(timerMsg{}):          m.handleTimerMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(exportResultMsg{}):   m.handleExportResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// forwardToInputs passes messages without a dedicated handler, such as
// cursor blinks, to the focused text inputs.
func (m *Model) forwardToInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.mode == ModeOpenPrompt {
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	} else if m.focus == focusEditor {
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.takeQueued()...)
	filtered := cmds[:0]
	for _, cmd := range cmds {
		if cmd != nil {
			filtered = append(filtered, cmd)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return tea.Batch(filtered...)
}

// renderInput pushes the editor's full text through the render pipeline.
func (m *Model) renderInput() {
	if err := m.pipeline.Input(m.editor.Value()); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return
	}
	if m.errMsg != "" && m.mode == ModeEdit {
		m.errMsg = ""
	}
}

func (m *Model) reportPatchError(err error) {
	logging.Error(err)
	m.errMsg = err.Error()
}

// refreshPreview repaints the live tree into the preview viewport.
func (m *Model) refreshPreview() {
	m.preview.SetContent(m.surface.Paint(m.preview.Width))
}

func (m *Model) focusEditor() {
	m.focus = focusEditor
	m.enqueue(m.editor.Focus())
}

func (m *Model) focusActivator() {
	m.focus = focusActivator
	m.editor.Blur()
}
