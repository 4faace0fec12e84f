package lines

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"reprint/internal/source"
)

func pos(line, col int) source.Pos { return source.Pos{Line: line, Column: col} }

func fromString(s string) *Lines { return FromString(s, Options{}) }

func TestFromStringRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"x",
		"a\nb\n",
		"a\r\nb\r\n\r\n",
		"a\rb",
		"mixed\r\nterm\nhere\r",
		"\tfoo\n\t\tbar\n",
		"   \n\t \nx",
		"line\u2028sep\u2029para",
		"\ufeffbom();\n",
		"trailing space   \n  \n",
	}
	for _, text := range tests {
		l := fromString(text)
		if got := l.String(); got != text {
			t.Fatalf("round trip mismatch: want %q got %q", text, got)
		}
		again := fromString(l.String())
		if again.String() != l.String() {
			t.Fatalf("second round trip mismatch for %q", text)
		}
	}
}

func TestSliceEveryBoundaryReconstructs(t *testing.T) {
	text := "function f() {\n    return 1; // one\n\n  }\r\nx"
	l := fromString(text)
	// собираем все позиции и режем между соседними
	var positions []source.Pos
	p := l.FirstPos()
	for {
		positions = append(positions, p)
		next, ok := l.NextPos(p)
		if !ok {
			break
		}
		p = next
	}
	pieces := make([]*Lines, 0, len(positions))
	for i := 0; i+1 < len(positions); i++ {
		s, err := l.Slice(positions[i], positions[i+1])
		if err != nil {
			t.Fatalf("slice %v-%v: %v", positions[i], positions[i+1], err)
		}
		pieces = append(pieces, s)
	}
	if got := Join(pieces...).String(); got != text {
		t.Fatalf("reassembled text mismatch:\nwant %q\ngot  %q", text, got)
	}
}

func TestSlice(t *testing.T) {
	l := fromString("// file comment\nexports.foo({\n    bar: 42,\n    baz: this\n});\n")
	tests := []struct {
		name       string
		start, end source.Pos
		want       string
	}{
		{"single line", pos(2, 0), pos(2, 7), "exports"},
		{"multi line", pos(2, 12), pos(5, 1), "{\n    bar: 42,\n    baz: this\n}"},
		{"inside indentation", pos(3, 2), pos(3, 8), "  bar:"},
		{"empty", pos(4, 9), pos(4, 9), ""},
		{"whole", l.FirstPos(), l.LastPos(), l.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.SliceString(tt.start, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("want %q got %q", tt.want, got)
			}
		})
	}
}

func TestSliceOutOfBounds(t *testing.T) {
	l := fromString("ab\ncd")
	bad := []source.Range{
		{Start: pos(0, 0), End: pos(1, 1)},
		{Start: pos(1, 0), End: pos(3, 0)},
		{Start: pos(1, 0), End: pos(1, 3)},
		{Start: pos(1, -1), End: pos(1, 1)},
		{Start: pos(2, 1), End: pos(1, 1)},
	}
	for _, r := range bad {
		if _, err := l.SliceRange(r); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("slice %v: expected ErrOutOfBounds, got %v", r, err)
		}
	}
}

func TestIndent(t *testing.T) {
	l := fromString("a {\n    b;\n\n  c;\n}")
	shifted := l.Indent(2)
	want := "  a {\n      b;\n\n    c;\n  }"
	if got := shifted.String(); got != want {
		t.Fatalf("Indent(2):\nwant %q\ngot  %q", want, got)
	}
	if got := shifted.Indent(-2).String(); got != l.String() {
		t.Fatalf("Indent(2).Indent(-2) is not the identity: %q", got)
	}

	clamped := l.Indent(-3)
	if got, want := clamped.String(), "a {\n b;\n\nc;\n}"; got != want {
		t.Fatalf("Indent(-3):\nwant %q\ngot  %q", want, got)
	}
	if got := clamped.Indent(3).String(); got != l.String() {
		t.Fatalf("logical indentation lost after clamping: %q", got)
	}

	tail := l.IndentTail(4)
	if got, want := tail.String(), "a {\n        b;\n\n      c;\n    }"; got != want {
		t.Fatalf("IndentTail(4):\nwant %q\ngot  %q", want, got)
	}
}

func TestIndentDeltaRange(t *testing.T) {
	src := "if (x) {\n    foo();\n      bar();\n\n    baz();\n}"
	base := fromString(src)
	for delta := -4; delta <= 4; delta++ {
		got := base.Indent(delta)
		for line := 1; line <= base.Len(); line++ {
			orig := base.IndentAt(line)
			want := max(orig+delta, 0)
			if base.LineLength(line) == 0 {
				want = orig
			}
			if have := got.IndentAt(line); have != want {
				t.Fatalf("delta %d line %d: want indent %d got %d", delta, line, want, have)
			}
		}
		if back := got.Indent(-delta).String(); back != src {
			t.Fatalf("delta %d not invertible: %q", delta, back)
		}
		for i, text := range strings.Split(got.String(), "\n") {
			if strings.TrimSpace(text) == "" && text != "" {
				t.Fatalf("delta %d: blank line %d gained whitespace %q", delta, i+1, text)
			}
		}
	}
}

func TestIndentKeepsTabsWhenUnchanged(t *testing.T) {
	l := fromString("\tfoo\n\t\tbar")
	if got := l.IndentTail(0).String(); got != "\tfoo\n\t\tbar" {
		t.Fatalf("unchanged indentation must reuse tabs, got %q", got)
	}
	if got := l.IndentTail(-4).String(); got != "\tfoo\n    bar" {
		t.Fatalf("changed indentation is regenerated with spaces, got %q", got)
	}
	tabs := FromString("\tfoo\n\t\tbar", Options{UseTabs: true})
	if got := tabs.Indent(4).String(); got != "\t\tfoo\n\t\t\tbar" {
		t.Fatalf("UseTabs indentation mismatch, got %q", got)
	}
}

func TestLockIndentTail(t *testing.T) {
	l := fromString("`multi\n  line`").LockIndentTail()
	if got := l.Indent(4).String(); got != "    `multi\n  line`" {
		t.Fatalf("locked lines must keep their indentation, got %q", got)
	}
}

func TestConcatMergesBoundaryLines(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"same line", []string{"foo", "(", "bar", ")"}, "foo(bar)"},
		{"multi line", []string{"a {\n  b", ";\n}", " c"}, "a {\n  b;\n} c"},
		{"empty pieces", []string{"", "x", "", "y"}, "xy"},
		{"newline ends", []string{"a\n", "b\n", ""}, "a\nb\n"},
		{"indented second piece", []string{"x = ", "  {\n    y\n  }"}, "x =   {\n    y\n  }"},
		{"crlf pieces", []string{"a\r\n", "b"}, "a\r\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elems := make([]*Lines, len(tt.parts))
			for i, p := range tt.parts {
				elems[i] = fromString(p)
			}
			if got := Join(elems...).String(); got != tt.want {
				t.Fatalf("want %q got %q", tt.want, got)
			}
			if got := elems[0].Concat(elems[1:]...).String(); got != tt.want {
				t.Fatalf("Concat: want %q got %q", tt.want, got)
			}
		})
	}
}

func TestJoinWith(t *testing.T) {
	elems := []*Lines{fromString("a"), fromString(""), fromString("b"), fromString("c")}
	if got := JoinWith(fromString(",\n"), elems).String(); got != "a,\nb,\nc" {
		t.Fatalf("JoinWith mismatch: %q", got)
	}
	if got := ConcatAny(Options{}, "(", fromString("x"), nil, ")").String(); got != "(x)" {
		t.Fatalf("ConcatAny mismatch: %q", got)
	}
}

func TestTrim(t *testing.T) {
	l := fromString("\n\n   foo\n  bar  \n\n")
	if got := l.Trim().String(); got != "foo\n  bar" {
		t.Fatalf("Trim mismatch: %q", got)
	}
	if got := l.TrimLeft().String(); got != "foo\n  bar  \n\n" {
		t.Fatalf("TrimLeft mismatch: %q", got)
	}
	if got := fromString(" \n\t\n").Trim(); !got.IsEmpty() {
		t.Fatalf("whitespace-only buffer must trim to empty, got %q", got.String())
	}
}

func TestCharAtAndSkipSpaces(t *testing.T) {
	l := fromString("  ab\n\n c")
	got := []byte{}
	for p, ok := l.FirstPos(), true; ok; p, ok = l.NextPos(p) {
		got = append(got, l.CharAt(p))
	}
	want := []byte{' ', ' ', 'a', 'b', '\n', '\n', ' ', 'c', 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("CharAt walk mismatch (-want +got):\n%s", diff)
	}

	p, ok := l.SkipSpaces(pos(1, 4), false)
	if !ok || p != pos(3, 1) {
		t.Fatalf("forward SkipSpaces: got %v %v", p, ok)
	}
	p, ok = l.SkipSpaces(pos(3, 1), true)
	if !ok || p != pos(1, 4) {
		t.Fatalf("backward SkipSpaces: got %v %v", p, ok)
	}
	if l.FirstChar() != 'a' || l.LastChar() != 'c' {
		t.Fatalf("FirstChar/LastChar mismatch: %q %q", l.FirstChar(), l.LastChar())
	}
}

func TestGuessTabWidthAndTerminator(t *testing.T) {
	l := fromString("a\r\n  b\r\n    c\r\n  d\ne")
	if got := l.GuessTabWidth(); got != 2 {
		t.Fatalf("GuessTabWidth: want 2 got %d", got)
	}
	if got := l.LineTerminator(); got != "\r\n" {
		t.Fatalf("LineTerminator: want CRLF got %q", got)
	}
	if got := fromString("x").LineTerminator(); got != "\n" {
		t.Fatalf("default terminator: %q", got)
	}
}
