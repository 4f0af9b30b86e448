package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/mdpreview/internal/app"
	"github.com/atomicstack/mdpreview/internal/config"
	"github.com/atomicstack/mdpreview/internal/logging"
	"github.com/atomicstack/mdpreview/internal/logging/events"
	"github.com/google/uuid"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	terminal := probeTerminal(standardDescriptors())
	cfg.App = withTerminalSize(cfg.App, terminal)
	events.App.Start(startupTracePayload(cfg, terminal))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// terminalInfo records which standard descriptor is a terminal and the
// first size one of them reported.
type terminalInfo struct {
	Source string          `json:"source,omitempty"`
	Width  int             `json:"width,omitempty"`
	Height int             `json:"height,omitempty"`
	Probes []terminalProbe `json:"probes"`
}

type terminalProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

type descriptor struct {
	name string
	fd   int
}

func standardDescriptors() []descriptor {
	return []descriptor{
		{"stdout", int(os.Stdout.Fd())},
		{"stdin", int(os.Stdin.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
}

// probeTerminal asks each descriptor for its size. stdout comes first since
// that is where the program draws.
func probeTerminal(fds []descriptor) terminalInfo {
	info := terminalInfo{Probes: make([]terminalProbe, 0, len(fds))}
	for _, d := range fds {
		probe := terminalProbe{Name: d.name}
		if d.fd >= 0 && term.IsTerminal(d.fd) {
			probe.Terminal = true
			width, height, err := term.GetSize(d.fd)
			switch {
			case err != nil:
				probe.Error = err.Error()
			case info.Source == "":
				info.Source = d.name
				info.Width, info.Height = width, height
				fallthrough
			default:
				probe.Width, probe.Height = width, height
			}
		}
		info.Probes = append(info.Probes, probe)
	}
	return info
}

// withTerminalSize seeds the editor's starting size from the terminal when
// the user fixed neither dimension. The seeded size still follows resizes.
func withTerminalSize(cfg app.Config, info terminalInfo) app.Config {
	if cfg.Width > 0 || cfg.Height > 0 || info.Source == "" {
		return cfg
	}
	cfg.TerminalWidth = info.Width
	cfg.TerminalHeight = info.Height
	return cfg
}

func startupTracePayload(cfg config.Config, terminal terminalInfo) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	primitive := "frame"
	if cfg.App.Idle {
		primitive = "idle"
	}
	payload := map[string]interface{}{
		"session":   uuid.NewString(),
		"file":      cfg.App.File,
		"theme":     cfg.App.Theme,
		"primitive": primitive,
		"argv":      cfg.Args,
		"flags":     flags,
		"config":    cfg,
		"terminal":  terminal,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}
