package source

import (
	"strings"
	"testing"
)

func TestSplitLinesRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines int
	}{
		{"empty", "", 1},
		{"no terminator", "abc", 1},
		{"lf", "a\nb\n", 3},
		{"crlf", "a\r\nb", 2},
		{"cr", "a\rb\r", 3},
		{"mixed", "a\r\nb\nc\rd", 4},
		{"unicode separators", "a\u2028b\u2029c", 3},
		{"blank lines", "\n\n\n", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := SplitLines(tt.text)
			if len(raw) != tt.lines {
				t.Fatalf("expected %d lines, got %d", tt.lines, len(raw))
			}
			var sb strings.Builder
			for _, l := range raw {
				sb.WriteString(l.Text)
				sb.WriteString(l.Term)
			}
			if got := sb.String(); got != tt.text {
				t.Fatalf("round trip mismatch: want %q got %q", tt.text, got)
			}
			if raw[len(raw)-1].Term != "" {
				t.Fatalf("last line must not carry a terminator")
			}
		})
	}
}

func TestCountSpaces(t *testing.T) {
	tests := []struct {
		ws       string
		tabWidth int
		want     int
	}{
		{"", 4, 0},
		{"    ", 4, 4},
		{"\t", 4, 4},
		{"  \t", 4, 4},
		{"\t  ", 8, 10},
		{"\t\t", 2, 4},
	}
	for _, tt := range tests {
		if got := CountSpaces(tt.ws, tt.tabWidth); got != tt.want {
			t.Fatalf("CountSpaces(%q, %d) = %d, want %d", tt.ws, tt.tabWidth, got, tt.want)
		}
	}
}

func TestFilePosOf(t *testing.T) {
	f := Virtual("t.js", "ab\n\tcd\r\n  ef")
	tests := []struct {
		off  int
		want Pos
	}{
		{0, Pos{1, 0}},
		{2, Pos{1, 2}},
		{3, Pos{2, 0}},
		{4, Pos{2, 4}}, // after the tab
		{5, Pos{2, 5}},
		{8, Pos{3, 0}},
		{10, Pos{3, 2}},
		{12, Pos{3, 4}},
		{100, Pos{3, 4}},
	}
	for _, tt := range tests {
		if got := f.PosOf(tt.off); got != tt.want {
			t.Fatalf("PosOf(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
	if f.Flags&FileHadCRLF == 0 {
		t.Fatalf("expected FileHadCRLF flag")
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}
}

func TestRangeRelations(t *testing.T) {
	outer := NewRange(2, 12, 6, 1)
	inner := NewRange(5, 10, 5, 14)
	if !outer.Contains(inner) {
		t.Fatalf("expected %v to contain %v", outer, inner)
	}
	if inner.Contains(outer) {
		t.Fatalf("did not expect %v to contain %v", inner, outer)
	}
	if !outer.Contains(outer) {
		t.Fatalf("a range contains itself")
	}
	crossing := NewRange(1, 0, 3, 0)
	if !crossing.Overlaps(outer) || crossing.Contains(outer) || outer.Contains(crossing) {
		t.Fatalf("expected %v and %v to overlap without nesting", crossing, outer)
	}
	adjacent := NewRange(6, 1, 6, 4)
	if adjacent.Overlaps(outer) {
		t.Fatalf("adjacent ranges must not overlap")
	}
	if (Range{Start: Pos{3, 0}, End: Pos{2, 0}}).Valid() {
		t.Fatalf("inverted range reported valid")
	}
	if got := inner.Cover(adjacent); got != NewRange(5, 10, 6, 4) {
		t.Fatalf("Cover mismatch: %v", got)
	}
}
