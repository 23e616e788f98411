package command

import (
	"errors"
	"testing"
)

func TestExecuteReturnsResult(t *testing.T) {
	bus := New()
	tests := []struct {
		name    string
		handler Handler
		want    *Result
	}{
		{name: "nil handler", handler: nil},
		{name: "no-op", handler: func() (string, error) { return "", nil }},
		{
			name:    "info",
			handler: func() (string, error) { return "Opened search", nil },
			want:    &Result{ID: "search", Label: "Search", Info: "Opened search"},
		},
		{
			name:    "error",
			handler: func() (string, error) { return "", errors.New("boom") },
			want:    &Result{ID: "search", Label: "Search", Err: errors.New("boom")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := bus.Execute(Request{ID: "search", Label: "Search", Handler: tt.handler})
			if cmd == nil {
				t.Fatalf("expected a command")
			}
			msg := cmd()
			if tt.want == nil {
				if msg != nil {
					t.Fatalf("expected no message, got %#v", msg)
				}
				return
			}
			res, ok := msg.(Result)
			if !ok {
				t.Fatalf("expected Result, got %T", msg)
			}
			if res.ID != tt.want.ID || res.Info != tt.want.Info || (res.Err == nil) != (tt.want.Err == nil) {
				t.Fatalf("unexpected result %#v", res)
			}
		})
	}
}
