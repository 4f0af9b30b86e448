package menu

import (
	"time"

	"github.com/atomicstack/mdpreview/internal/logging/events"
	"github.com/atomicstack/mdpreview/internal/schedule"
)

// DefaultDelay separates closing the menu from running the chosen command.
const DefaultDelay = 100 * time.Millisecond

// Activator is the header control that owns the menu.
type Activator interface {
	Focus()
}

// ActivatorFunc adapts a function to the Activator interface.
type ActivatorFunc func()

// Focus implements Activator.
func (f ActivatorFunc) Focus() {
	if f != nil {
		f()
	}
}

// Config wires a Controller to its collaborators.
type Config struct {
	Commands  Commands
	Detector  Detector
	Activator Activator
	Timer     schedule.Timer
	Delay     time.Duration
}

// Controller is the open/closed state machine behind the header dropdown.
// It is not safe for concurrent use; all calls happen on the UI thread.
type Controller struct {
	commands  Commands
	detector  Detector
	activator Activator
	timer     schedule.Timer
	delay     time.Duration

	open         bool
	restoreFocus bool
	items        []Item

	seq     uint64
	pending map[uint64]func()
}

// NewController constructs a closed controller.
func NewController(cfg Config) *Controller {
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Controller{
		commands:  cfg.Commands,
		detector:  cfg.Detector,
		activator: cfg.Activator,
		timer:     cfg.Timer,
		delay:     delay,
		pending:   make(map[uint64]func()),
	}
}

// IsOpen reports whether the dropdown is showing.
func (c *Controller) IsOpen() bool {
	return c.open
}

// Items returns the entries computed when the menu was last opened.
func (c *Controller) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Delay returns the dispatch delay in use.
func (c *Controller) Delay() time.Duration {
	return c.delay
}

// Pending reports how many selected commands are still waiting to run.
func (c *Controller) Pending() int {
	return len(c.pending)
}

// Toggle flips the menu. Opening recomputes the entries and remembers that
// the activator should get focus back; closing hands focus back once.
func (c *Controller) Toggle() bool {
	if c.open {
		c.close("toggle")
		if c.restoreFocus {
			c.restoreFocus = false
			if c.activator != nil {
				c.activator.Focus()
			}
		}
		return false
	}
	c.openMenu()
	return true
}

// Select closes the menu and schedules the item's action after the
// configured delay. It does nothing when the menu is closed or id is unknown.
func (c *Controller) Select(id string) bool {
	if !c.open {
		return false
	}
	item, ok := c.find(id)
	if !ok {
		return false
	}
	events.Menu.Select(item.ID, item.Label)
	c.restoreFocus = false
	c.close("select")
	c.dispatch(item)
	return true
}

// Shortcut runs the entry bound to hint through the same path as a click:
// the menu is opened if needed, then the matching item is selected. When no
// entry matches, a menu opened here is closed again without moving focus.
func (c *Controller) Shortcut(hint string) bool {
	wasOpen := c.open
	if !wasOpen {
		c.openMenu()
	}
	for _, item := range c.items {
		if item.Hint == hint {
			return c.Select(item.ID)
		}
	}
	if !wasOpen {
		c.restoreFocus = false
		c.close("shortcut")
	}
	return false
}

// Stop cancels every dispatch that has not fired yet.
func (c *Controller) Stop() {
	for id, cancel := range c.pending {
		if cancel != nil {
			cancel()
		}
		delete(c.pending, id)
	}
}

func (c *Controller) openMenu() {
	chromium := false
	if c.detector != nil {
		chromium = c.detector.Chromium()
	}
	c.items = VisibleItems(DefaultItems(c.commands, chromium))
	c.open = true
	c.restoreFocus = true
	events.Menu.Open(Labels(c.items))
}

func (c *Controller) close(reason string) {
	c.open = false
	events.Menu.Close(reason)
}

func (c *Controller) find(id string) (Item, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func (c *Controller) dispatch(item Item) {
	if c.timer == nil {
		events.Menu.Dispatch(item.ID)
		item.Invoke()
		return
	}
	c.seq++
	id := c.seq
	c.pending[id] = c.timer.After(c.delay, func() {
		delete(c.pending, id)
		events.Menu.Dispatch(item.ID)
		item.Invoke()
	})
}
