package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/editmenu/internal/app"
	"github.com/atomicstack/editmenu/internal/config"
	"github.com/atomicstack/editmenu/internal/logging"
	"github.com/atomicstack/editmenu/internal/logging/events"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("editmenu must run in a terminal")

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := probeTerminal(standardDescriptors())
	events.App.Start(startupTracePayload(runtimeCfg, tty))

	if err := requireTerminal(tty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty terminalReport) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"file":   cfg.App.Path,
		"tty":    tty,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type descriptor struct {
	name string
	fd   int
}

func standardDescriptors() []descriptor {
	return []descriptor{
		{"stdin", int(os.Stdin.Fd())},
		{"stdout", int(os.Stdout.Fd())},
	}
}

type terminalReport struct {
	Size   *terminalSize   `json:"size,omitempty"`
	Probes []terminalProbe `json:"probes"`
}

type terminalSize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type terminalProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Error      string `json:"error,omitempty"`
}

// probeTerminal reports which descriptors are terminals and the first size
// that could be read.
func probeTerminal(fds []descriptor) terminalReport {
	report := terminalReport{Probes: make([]terminalProbe, 0, len(fds))}
	for _, d := range fds {
		probe := terminalProbe{Name: d.name}
		if d.fd >= 0 && term.IsTerminal(d.fd) {
			probe.IsTerminal = true
			width, height, err := term.GetSize(d.fd)
			switch {
			case err != nil:
				probe.Error = err.Error()
			case report.Size == nil:
				report.Size = &terminalSize{Source: d.name, Width: width, Height: height}
			}
		}
		report.Probes = append(report.Probes, probe)
	}
	return report
}

// requireTerminal fails unless both input and output are terminals; the
// editor needs raw key input and an alternate screen.
func requireTerminal(report terminalReport) error {
	if len(report.Probes) == 0 {
		return errNoTerminal
	}
	for _, p := range report.Probes {
		if !p.IsTerminal {
			return fmt.Errorf("%w (%s is not a tty)", errNoTerminal, p.Name)
		}
	}
	return nil
}
