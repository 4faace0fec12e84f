package ui

import (
	"strings"
	"testing"

	"reprint/internal/driver"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.js", 20, "short.js"},
		{"very/long/path/file.js", 10, "very/lo..."},
		{"abcdef", 2, "ab"},
		{"\u4e16\u754c\u4e16\u754c.js", 7, "\u4e16\u754c..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d): want %q got %q", tt.in, tt.width, tt.want, got)
		}
	}
}

func TestApplyEvent(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("reprint", []string{"a.js", "b.js"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Fatalf("want %q got %q", "parsing", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StagePrint, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.js", Stage: driver.StagePrint, Status: driver.StatusCached})
	m.applyEvent(driver.Event{File: "unknown.js", Stage: driver.StagePrint, Status: driver.StatusError})
	if got := m.percent(); got != 1.0 {
		t.Fatalf("want 1.0 got %v", got)
	}
	if view := m.View(); !strings.Contains(view, "(2/2)") || !strings.Contains(view, "cached") {
		t.Fatalf("unexpected view %q", view)
	}
}
