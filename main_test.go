package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/editmenu/internal/app"
	"github.com/atomicstack/editmenu/internal/config"
	"github.com/atomicstack/editmenu/internal/menu"
)

func TestProbeTerminalRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	report := probeTerminal([]descriptor{{"file", int(f.Fd())}, {"closed", -1}})
	if len(report.Probes) != 2 {
		t.Fatalf("expected 2 probes, got %d", len(report.Probes))
	}
	for _, p := range report.Probes {
		if p.IsTerminal {
			t.Fatalf("probe %s reported a terminal", p.Name)
		}
	}
	if report.Size != nil {
		t.Fatalf("expected no size, got %+v", report.Size)
	}
	if err := requireTerminal(report); !errors.Is(err, errNoTerminal) {
		t.Fatalf("requireTerminal = %v, want errNoTerminal", err)
	}
}

func TestRequireTerminal(t *testing.T) {
	tests := []struct {
		name   string
		report terminalReport
		ok     bool
	}{
		{name: "no probes", report: terminalReport{}},
		{name: "all terminals", report: terminalReport{Probes: []terminalProbe{{Name: "stdin", IsTerminal: true}, {Name: "stdout", IsTerminal: true}}}, ok: true},
		{name: "piped output", report: terminalReport{Probes: []terminalProbe{{Name: "stdin", IsTerminal: true}, {Name: "stdout"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireTerminal(tt.report)
			if (err == nil) != tt.ok {
				t.Fatalf("requireTerminal = %v, ok want %v", err, tt.ok)
			}
		})
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Path:    "notes.txt",
			Width:   80,
			Height:  24,
			Mouse:   true,
			Verbose: true,
			Menu:    menu.Config{MenuID: "context-menu", MaxHistorySize: 10},
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"menuID":     "context-menu",
			"maxHistory": "10",
			"width":      "80",
			"height":     "24",
			"mouse":      "true",
			"verbose":    "true",
		},
		Args: []string{"-max-history", "10", "notes.txt"},
	}
	tty := terminalReport{Probes: []terminalProbe{{Name: "stdin", IsTerminal: true}}}

	payload := startupTracePayload(cfg, tty)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	tests := []struct {
		key  string
		want interface{}
	}{
		{"menuID", "context-menu"},
		{"maxHistory", "10"},
		{"width", "80"},
		{"height", "24"},
		{"mouse", "true"},
		{"verbose", "true"},
		{"trace", true},
		{"logFile", "trace.log"},
	}
	for _, tt := range tests {
		if flagsValue[tt.key] != tt.want {
			t.Fatalf("flag %s = %v, want %v", tt.key, flagsValue[tt.key], tt.want)
		}
	}
	if payload["file"] != "notes.txt" {
		t.Fatalf("expected file in payload, got %v", payload["file"])
	}
	if got, ok := payload["tty"].(terminalReport); !ok || len(got.Probes) != 1 {
		t.Fatalf("expected tty report in payload, got %#v", payload["tty"])
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
