package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/atomicstack/mdpreview/internal/app"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	File     string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envConfig        = "MDPREVIEW_CONFIG"
	envWidth         = "MDPREVIEW_WIDTH"
	envHeight        = "MDPREVIEW_HEIGHT"
	envShowFooter    = "MDPREVIEW_FOOTER"
	envVerbose       = "MDPREVIEW_VERBOSE"
	envTrace         = "MDPREVIEW_TRACE"
	envLogFile       = "MDPREVIEW_LOG_FILE"
	envTheme         = "MDPREVIEW_THEME"
	envIdle          = "MDPREVIEW_IDLE"
	envIdleQuiet     = "MDPREVIEW_IDLE_QUIET"
	envFrameInterval = "MDPREVIEW_FRAME_INTERVAL"
	envMenuDelay     = "MDPREVIEW_MENU_DELAY"
	envLatestWins    = "MDPREVIEW_LATEST_WINS"
	envExportDir     = "MDPREVIEW_EXPORT_DIR"
	envChromium      = "MDPREVIEW_CHROMIUM"
)

const (
	DefaultIdleQuiet     = 40 * time.Millisecond
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultMenuDelay     = 100 * time.Millisecond
)

// DefaultPath is the config file read when neither flag nor environment
// names one.
var DefaultPath = func() string {
	return filepath.Join(xdg.ConfigHome, "mdpreview", "config.yaml")
}

// fileConfig mirrors the flags in the optional YAML config file.
type fileConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Footer        bool   `yaml:"footer"`
	Trace         bool   `yaml:"trace"`
	Verbose       bool   `yaml:"verbose"`
	LogFile       string `yaml:"log-file"`
	Theme         string `yaml:"theme"`
	Idle          *bool  `yaml:"idle"`
	IdleQuiet     string `yaml:"idle-quiet"`
	FrameInterval string `yaml:"frame-interval"`
	MenuDelay     string `yaml:"menu-delay"`
	LatestWins    bool   `yaml:"latest-wins"`
	ExportDir     string `yaml:"export-dir"`
	Chromium      string `yaml:"chromium"`
}

// Load parses configuration from CLI arguments, environment variables and
// the config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flag, then environment, then config file, then built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path, explicit := configPath(args, env)
	file, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}
	idleQuiet, err := fileDuration(file.IdleQuiet, DefaultIdleQuiet, "idle-quiet")
	if err != nil {
		return Config{}, err
	}
	frameInterval, err := fileDuration(file.FrameInterval, DefaultFrameInterval, "frame-interval")
	if err != nil {
		return Config{}, err
	}
	menuDelay, err := fileDuration(file.MenuDelay, DefaultMenuDelay, "menu-delay")
	if err != nil {
		return Config{}, err
	}
	idle := true
	if file.Idle != nil {
		idle = *file.Idle
	}

	fs := flag.NewFlagSet("mdpreview", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", path, "path to the YAML config file")
	width := fs.Int("width", envOrInt(env, envWidth, file.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, file.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, file.Footer), "enable footer hint row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Trace), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, file.Verbose), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")
	themeName := fs.String("theme", envOrDefault(env, envTheme, file.Theme), "preview theme (default, gaia, uncover)")
	useIdle := fs.Bool("idle", envOrBool(env, envIdle, idle), "apply previews when input goes quiet instead of on the next frame")
	quiet := fs.Duration("idle-quiet", envOrDuration(env, envIdleQuiet, idleQuiet), "input silence that counts as idle")
	frame := fs.Duration("frame-interval", envOrDuration(env, envFrameInterval, frameInterval), "frame length used when idle scheduling is off")
	delay := fs.Duration("menu-delay", envOrDuration(env, envMenuDelay, menuDelay), "delay between closing the menu and running the command")
	latestWins := fs.Bool("latest-wins", envOrBool(env, envLatestWins, file.LatestWins), "skip preview updates superseded by newer input")
	exportDir := fs.String("export-dir", envOrDefault(env, envExportDir, file.ExportDir), "directory for HTML/PDF exports (default: next to the file)")
	chromium := fs.String("chromium", envOrDefault(env, envChromium, file.Chromium), "path to a Chromium binary for PDF export")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	for name, d := range map[string]time.Duration{"idle-quiet": *quiet, "frame-interval": *frame, "menu-delay": *delay} {
		if d <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0 (got %s)", name, d)
		}
	}
	if fs.NArg() > 1 {
		return Config{}, fmt.Errorf("expected at most one file argument, got %d", fs.NArg())
	}

	cfg := Config{
		App: app.Config{
			File:          fs.Arg(0),
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			Verbose:       *verbose,
			Theme:         *themeName,
			Idle:          *useIdle,
			IdleQuiet:     *quiet,
			FrameInterval: *frame,
			MenuDelay:     *delay,
			LatestWins:    *latestWins,
			ExportDir:     *exportDir,
			Chromium:      *chromium,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		File: path,
		Flags: map[string]string{
			"config":        path,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"verbose":       strconv.FormatBool(*verbose),
			"logFile":       *logFile,
			"theme":         *themeName,
			"idle":          strconv.FormatBool(*useIdle),
			"idleQuiet":     quiet.String(),
			"frameInterval": frame.String(),
			"menuDelay":     delay.String(),
			"latestWins":    strconv.FormatBool(*latestWins),
			"exportDir":     *exportDir,
			"chromium":      *chromium,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configPath finds the config file before the full flag parse, since the
// file supplies the flag defaults.
func configPath(args []string, env map[string]string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v, ok := env[envConfig]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	return DefaultPath(), false
}

func readFile(path string, explicit bool) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func fileDuration(value string, fallback time.Duration, key string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the file argument, when given, is not a directory.
func Validate(cfg Config) error {
	if cfg.App.File == "" {
		return nil
	}
	info, err := os.Stat(cfg.App.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("file %s: %w", cfg.App.File, err)
	}
	if info.IsDir() {
		return fmt.Errorf("file %s is a directory", cfg.App.File)
	}
	return nil
}
