package app

import (
	"errors"
	"time"

	"github.com/atomicstack/mdpreview/internal/backend"
	"github.com/atomicstack/mdpreview/internal/browser"
	"github.com/atomicstack/mdpreview/internal/logging/events"
	"github.com/atomicstack/mdpreview/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
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
	Chromium      string

	// TerminalWidth and TerminalHeight are the size probed at startup.
	TerminalWidth  int
	TerminalHeight int
}

// Options converts the configuration into UI options wired to the real
// watcher and Chromium detector.
func (c Config) Options() ui.Options {
	detector := browser.NewDetector(c.Chromium)
	return ui.Options{
		File:          c.File,
		Width:         c.Width,
		Height:        c.Height,
		ShowFooter:    c.ShowFooter,
		Verbose:       c.Verbose,
		Theme:         c.Theme,
		Idle:          c.Idle,
		IdleQuiet:     c.IdleQuiet,
		FrameInterval: c.FrameInterval,
		MenuDelay:     c.MenuDelay,
		LatestWins:    c.LatestWins,
		ExportDir:     c.ExportDir,
		InitialWidth:  c.TerminalWidth,
		InitialHeight: c.TerminalHeight,
		Detector:      detector,
		Finder:        detector,
		Watch: func(path string) (*backend.Watcher, error) {
			return backend.NewWatcher(path, backend.DefaultInterval)
		},
	}
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model := ui.NewModel(cfg.Options())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	events.App.Stop(cfg.File, err)
	return err
}
