package menu

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/mdpreview/internal/testutil"
)

type focusCounter struct{ calls int }

func (f *focusCounter) Focus() { f.calls++ }

type counter struct{ calls int }

func (c *counter) run() { c.calls++ }

func newTestController(cmds Commands, chromium bool) (*Controller, *focusCounter, *testutil.Timers) {
	focus := &focusCounter{}
	timers := &testutil.Timers{}
	c := NewController(Config{
		Commands:  cmds,
		Detector:  DetectorFunc(func() bool { return chromium }),
		Activator: focus,
		Timer:     timers,
	})
	return c, focus, timers
}

func TestToggleOpensWithoutFocusAndClosesWithFocusOnce(t *testing.T) {
	c, focus, _ := newTestController(Commands{}, false)
	if c.IsOpen() {
		t.Fatalf("expected controller to start closed")
	}
	if !c.Toggle() {
		t.Fatalf("expected first toggle to open")
	}
	if !c.IsOpen() {
		t.Fatalf("expected menu open after first toggle")
	}
	if focus.calls != 0 {
		t.Fatalf("expected no focus call on open, got %d", focus.calls)
	}
	if c.Toggle() {
		t.Fatalf("expected second toggle to close")
	}
	if c.IsOpen() {
		t.Fatalf("expected menu closed after second toggle")
	}
	if focus.calls != 1 {
		t.Fatalf("expected exactly one focus call, got %d", focus.calls)
	}
}

func TestSelectClosesThenDispatchesAfterDelay(t *testing.T) {
	var newCmd counter
	c, focus, timers := newTestController(Commands{New: newCmd.run}, false)
	c.Toggle()
	if !c.Select(ItemNew) {
		t.Fatalf("expected select to succeed")
	}
	if c.IsOpen() {
		t.Fatalf("expected menu closed immediately after select")
	}
	if newCmd.calls != 0 {
		t.Fatalf("expected New to be deferred, got %d calls", newCmd.calls)
	}
	if c.Pending() != 1 || timers.Len() != 1 {
		t.Fatalf("expected one pending dispatch, got %d/%d", c.Pending(), timers.Len())
	}
	timers.Advance(DefaultDelay - time.Millisecond)
	if newCmd.calls != 0 {
		t.Fatalf("expected New still pending before the delay elapses")
	}
	timers.Advance(time.Millisecond)
	if newCmd.calls != 1 {
		t.Fatalf("expected New to run once, got %d", newCmd.calls)
	}
	if c.Pending() != 0 {
		t.Fatalf("expected no pending dispatch, got %d", c.Pending())
	}
	if focus.calls != 0 {
		t.Fatalf("expected no focus call on select path, got %d", focus.calls)
	}
}

func TestItemsWithoutChromium(t *testing.T) {
	c, _, _ := newTestController(Commands{}, false)
	c.Toggle()
	labels := Labels(c.Items())
	expected := []string{LabelNew, LabelOpen, LabelPrint}
	if len(labels) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, labels)
	}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, labels)
		}
	}
}

func TestChromiumReplacesPrintLabel(t *testing.T) {
	var printCmd counter
	c, _, timers := newTestController(Commands{Print: printCmd.run}, true)
	c.Toggle()
	labels := Labels(c.Items())
	expected := []string{LabelNew, LabelOpen, LabelPrintPDF}
	if len(labels) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, labels)
	}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, labels)
		}
	}
	if c.Select(ItemPrint) {
		t.Fatalf("expected plain print entry to be absent")
	}
	if !c.Select(ItemPrintPDF) {
		t.Fatalf("expected pdf entry to be selectable")
	}
	timers.RunPending()
	if printCmd.calls != 1 {
		t.Fatalf("expected print command once, got %d", printCmd.calls)
	}
}

func TestPlainPrintDispatchesPrintCommand(t *testing.T) {
	var printCmd counter
	c, _, timers := newTestController(Commands{Print: printCmd.run}, false)
	c.Toggle()
	c.Select(ItemPrint)
	if printCmd.calls != 0 {
		t.Fatalf("expected print deferred")
	}
	timers.RunPending()
	if printCmd.calls != 1 {
		t.Fatalf("expected print command once, got %d", printCmd.calls)
	}
}

func TestDetectorEvaluatedOnEveryOpen(t *testing.T) {
	available := false
	calls := 0
	c := NewController(Config{
		Detector: DetectorFunc(func() bool {
			calls++
			return available
		}),
		Timer: &testutil.Timers{},
	})
	c.Toggle()
	c.Toggle()
	available = true
	c.Toggle()
	if calls != 2 {
		t.Fatalf("expected detector per open, got %d calls", calls)
	}
	items := c.Items()
	if items[len(items)-1].ID != ItemPrintPDF {
		t.Fatalf("expected pdf entry after detection changed, got %q", items[len(items)-1].ID)
	}
}

func TestNilCommandSelectsSilently(t *testing.T) {
	c, _, timers := newTestController(Commands{}, false)
	c.Toggle()
	if !c.Select(ItemOpen) {
		t.Fatalf("expected entry without command to stay selectable")
	}
	if c.IsOpen() {
		t.Fatalf("expected menu closed")
	}
	if fired := timers.RunPending(); fired != 1 {
		t.Fatalf("expected dispatch timer to fire, got %d", fired)
	}
}

func TestSelectWhileClosedIsIgnored(t *testing.T) {
	var newCmd counter
	c, _, timers := newTestController(Commands{New: newCmd.run}, false)
	if c.Select(ItemNew) {
		t.Fatalf("expected select on closed menu to fail")
	}
	if timers.Len() != 0 {
		t.Fatalf("expected nothing scheduled, got %d", timers.Len())
	}
}

func TestShortcutUsesSelectPath(t *testing.T) {
	var open counter
	c, focus, timers := newTestController(Commands{Open: open.run}, false)
	if !c.Shortcut(HintOpen) {
		t.Fatalf("expected shortcut to select")
	}
	if c.IsOpen() {
		t.Fatalf("expected menu closed after shortcut")
	}
	timers.RunPending()
	if open.calls != 1 {
		t.Fatalf("expected open command once, got %d", open.calls)
	}
	if focus.calls != 0 {
		t.Fatalf("expected no focus call, got %d", focus.calls)
	}
}

func TestUnknownShortcutClosesWithoutFocus(t *testing.T) {
	c, focus, timers := newTestController(Commands{}, false)
	if c.Shortcut("ctrl+q") {
		t.Fatalf("expected unknown hint to select nothing")
	}
	if c.IsOpen() {
		t.Fatalf("expected menu closed again")
	}
	if focus.calls != 0 {
		t.Fatalf("expected no focus call, got %d", focus.calls)
	}
	if timers.Len() != 0 {
		t.Fatalf("expected nothing scheduled")
	}
	c.Toggle()
	if c.Shortcut("ctrl+q") || !c.IsOpen() {
		t.Fatalf("expected an already open menu to stay open")
	}
}

func TestStopCancelsPendingDispatch(t *testing.T) {
	var newCmd counter
	c, _, timers := newTestController(Commands{New: newCmd.run}, false)
	c.Toggle()
	c.Select(ItemNew)
	c.Stop()
	timers.RunPending()
	if newCmd.calls != 0 {
		t.Fatalf("expected cancelled dispatch, got %d calls", newCmd.calls)
	}
	if c.Pending() != 0 {
		t.Fatalf("expected pending cleared, got %d", c.Pending())
	}
}

func TestCustomDelay(t *testing.T) {
	var newCmd counter
	timers := &testutil.Timers{}
	c := NewController(Config{Commands: Commands{New: newCmd.run}, Timer: timers, Delay: 250 * time.Millisecond})
	c.Toggle()
	c.Select(ItemNew)
	timers.Advance(DefaultDelay)
	if newCmd.calls != 0 {
		t.Fatalf("expected custom delay to hold dispatch")
	}
	timers.Advance(150 * time.Millisecond)
	if newCmd.calls != 1 {
		t.Fatalf("expected dispatch after custom delay, got %d", newCmd.calls)
	}
}

func TestRowsAlignHints(t *testing.T) {
	rows := Rows(VisibleItems(DefaultItems(Commands{}, true)))
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	width := len([]rune(rows[0]))
	for _, row := range rows[1:] {
		if len([]rune(row)) != width {
			t.Fatalf("expected aligned rows, got %q", rows)
		}
	}
	expected := "New" + strings.Repeat(" ", 23) + "ctrl+n"
	if rows[0] != expected {
		t.Fatalf("expected %q, got %q", expected, rows[0])
	}
}
