package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Fatalf("%s.ShouldEmit(%s): want %v got %v", tt.level, tt.scope, tt.want, got)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	span := Begin(tr, ScopePass, "print", 0)
	Point(tr, ScopeNode, "reprint", "patched", map[string]string{"kind": "CallExpr", "patches": "1"})
	span.WithExtra("files", "2").End("ok")

	out := buf.String()
	for _, want := range []string{"> print", "* reprint (patched) {kind=CallExpr, patches=1}", "< print (ok) {files=2}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "apply", 0).End("")
	Point(tr, ScopeNode, "dropped", "", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 events got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ev.Kind != "end" || ev.Name != "apply" || ev.Scope != "driver" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, "", nil)
	}
	var got []string
	for _, ev := range r.Snapshot() {
		got = append(got, ev.Name)
	}
	if strings.Join(got, ",") != "c,d,e" {
		t.Fatalf("want c,d,e got %v", got)
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	s := Begin(nil, ScopeDriver, "x", 0)
	if s.ID() != 0 || s.WithExtra("k", "v").End("") != 0 {
		t.Fatalf("disabled span must be inert")
	}
	ctx := WithTracer(context.Background(), nil)
	if FromContext(ctx).Enabled() {
		t.Fatalf("nil tracer must become Nop")
	}
	if CurrentSpan(WithSpan(ctx, s)) != 0 {
		t.Fatalf("disabled span must not become a parent")
	}
}

func TestMultiTracerRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopePass, "parse", 0).End("")
	m, ok := tr.(*MultiTracer)
	if !ok || m.Ring() == nil {
		t.Fatalf("ModeBoth must build a MultiTracer with a ring, got %T", tr)
	}
	if n := len(m.Ring().Snapshot()); n != 2 {
		t.Fatalf("ring should hold 2 events, has %d", n)
	}
	if buf.Len() == 0 {
		t.Fatalf("stream output is empty")
	}
}
