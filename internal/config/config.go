package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/editmenu/internal/app"
	"github.com/atomicstack/editmenu/internal/menu"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
	Mouse   bool
}

const (
	envMenuID       = "EDITMENU_MENU_ID"
	envVisibleClass = "EDITMENU_VISIBLE_CLASS"
	envSubmenuClass = "EDITMENU_SUBMENU_CLASS"
	envMaxHistory   = "EDITMENU_MAX_HISTORY"
	envDebounceMS   = "EDITMENU_DEBOUNCE_MS"
	envWidth        = "EDITMENU_WIDTH"
	envHeight       = "EDITMENU_HEIGHT"
	envMouse        = "EDITMENU_MOUSE"
	envVerbose      = "EDITMENU_VERBOSE"
	envTrace        = "EDITMENU_TRACE"
	envLogFile      = "EDITMENU_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	defaults := menu.DefaultConfig()

	fs := flag.NewFlagSet("editmenu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuID := fs.String("menu-id", envOrDefault(env, envMenuID, defaults.MenuID), "id of the context menu element")
	visibleClass := fs.String("visible-class", envOrDefault(env, envVisibleClass, defaults.VisibleClass), "class toggled while the menu is shown")
	submenuClass := fs.String("submenu-class", envOrDefault(env, envSubmenuClass, defaults.SubmenuClass), "class marking nested submenus")
	maxHistory := fs.Int("max-history", envOrInt(env, envMaxHistory, defaults.MaxHistorySize), "maximum undo and redo snapshots")
	debounceMS := fs.Int("debounce-ms", envOrInt(env, envDebounceMS, int(defaults.DebounceDelay/time.Millisecond)), "delay in milliseconds between an edit and its history snapshot")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	mouse := fs.Bool("mouse", envOrBool(env, envMouse, true), "report mouse motion and clicks")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *debounceMS < 0 {
		return Config{}, fmt.Errorf("debounce-ms must be >= 0 (got %d)", *debounceMS)
	}
	if fs.NArg() > 1 {
		return Config{}, fmt.Errorf("expected at most one file argument (got %d)", fs.NArg())
	}

	// Geometry and hover timings are left zero so the ui can apply its
	// cell-based values before menu defaults.
	menuCfg := menu.Config{
		MenuID:         *menuID,
		VisibleClass:   *visibleClass,
		SubmenuClass:   *submenuClass,
		MaxHistorySize: *maxHistory,
		DebounceDelay:  time.Duration(*debounceMS) * time.Millisecond,
	}

	cfg := Config{
		App: app.Config{
			Path:    fs.Arg(0),
			Width:   *width,
			Height:  *height,
			Mouse:   *mouse,
			Verbose: *verbose,
			Menu:    menuCfg,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
			Mouse:   *mouse,
		},
		Flags: map[string]string{
			"menuID":       *menuID,
			"visibleClass": *visibleClass,
			"submenuClass": *submenuClass,
			"maxHistory":   strconv.Itoa(*maxHistory),
			"debounceMS":   strconv.Itoa(*debounceMS),
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"mouse":        strconv.FormatBool(*mouse),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
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

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks the menu options after defaults are applied.
func Validate(cfg Config) error {
	if err := cfg.App.Menu.WithDefaults().Validate(); err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	return nil
}
