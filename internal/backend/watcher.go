package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/mdpreview/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of change emitted by the watcher.
type Kind int

const (
	KindChanged Kind = iota
	KindRemoved
)

// Event carries the file's new content, or the error hit reading it.
type Event struct {
	Kind    Kind
	Path    string
	Content string
	Err     error
}

// DefaultInterval is the minimum gap between two reloads of the same file,
// and the polling period when fsnotify is unavailable.
const DefaultInterval = 250 * time.Millisecond

// Watcher follows a single file on disk and publishes its content whenever
// it changes.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	fs     *fsnotify.Watcher
	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors which save by rename are still seen. When fsnotify cannot be used
// the watcher falls back to polling the modification time.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("backend: resolve %s: %w", path, err)
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		if addErr := fsw.Add(filepath.Dir(abs)); addErr != nil {
			fsw.Close()
			err = addErr
		} else {
			w.fs = fsw
		}
	}

	w.wg.Add(1)
	if w.fs != nil {
		go w.notify()
	} else {
		logging.Warn("file watcher falling back to polling", "path", abs, "err", err)
		go w.poll()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns a channel of change events. It is closed after Stop once
// the watcher goroutine has exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) notify() {
	defer w.wg.Done()
	defer w.fs.Close()

	throttle := newThrottle(w.interval)
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if !throttle.wait(w.ctx) {
				return
			}
			w.drain()
			if !w.emit(w.read()) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Error(fmt.Errorf("backend: watch %s: %w", w.path, err))
		}
	}
}

// drain discards events queued while throttled; the read that follows
// observes all of them.
func (w *Watcher) drain() {
	for {
		select {
		case <-w.fs.Events:
		default:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	last := w.modTime()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			mod := w.modTime()
			if mod.Equal(last) {
				continue
			}
			last = mod
			if !w.emit(w.read()) {
				return
			}
		}
	}
}

func (w *Watcher) modTime() time.Time {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (w *Watcher) read() Event {
	data, err := os.ReadFile(w.path)
	if os.IsNotExist(err) {
		return Event{Kind: KindRemoved, Path: w.path}
	}
	if err != nil {
		return Event{Kind: KindChanged, Path: w.path, Err: fmt.Errorf("backend: read %s: %w", w.path, err)}
	}
	return Event{Kind: KindChanged, Path: w.path, Content: string(data)}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
