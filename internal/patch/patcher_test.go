package patch

import (
	"errors"
	"testing"

	"reprint/internal/ast"
	"reprint/internal/lines"
	"reprint/internal/source"
)

const canonical = "// file comment\n" +
	"exports.foo({\n" +
	"    // some comment\n" +
	"    bar: 42,\n" +
	"    baz: this\n" +
	"});\n"

var (
	thisRange   = source.NewRange(5, 9, 5, 13)
	objectRange = source.NewRange(2, 12, 6, 1)
)

func mustGet(t *testing.T, p *Patcher, r *source.Range) string {
	t.Helper()
	out, err := p.Get(r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return out.String()
}

func TestCanonicalScenarioBothOrders(t *testing.T) {
	src := lines.FromString(canonical, lines.Options{})
	want := "// file comment\nexports.foo(oyez);\n"

	orders := []struct {
		name  string
		first source.Range
		text1 string
		next  source.Range
		text2 string
	}{
		{"inner first", thisRange, "self", objectRange, "oyez"},
		{"outer first", objectRange, "oyez", thisRange, "self"},
	}
	for _, tt := range orders {
		t.Run(tt.name, func(t *testing.T) {
			p := New(src)
			if err := p.ReplaceString(tt.first, tt.text1); err != nil {
				t.Fatalf("first replace: %v", err)
			}
			if err := p.ReplaceString(tt.next, tt.text2); err != nil {
				t.Fatalf("second replace: %v", err)
			}
			if got := mustGet(t, p, nil); got != want {
				t.Fatalf("want %q got %q", want, got)
			}
			if p.Len() != 1 {
				t.Fatalf("only the outer patch should survive, have %d", p.Len())
			}
		})
	}

	t.Run("inner only", func(t *testing.T) {
		p := New(src)
		if err := p.ReplaceString(thisRange, "self"); err != nil {
			t.Fatalf("replace: %v", err)
		}
		want := "// file comment\nexports.foo({\n    // some comment\n    bar: 42,\n    baz: self\n});\n"
		if got := mustGet(t, p, nil); got != want {
			t.Fatalf("want %q got %q", want, got)
		}
	})
}

func TestPatchPrecedenceMatchesOuterAlone(t *testing.T) {
	src := lines.FromString("function f(a, b) {\n  return a + b;\n}\n", lines.Options{})
	outer := source.NewRange(2, 2, 2, 15)
	inner := source.NewRange(2, 9, 2, 14)

	alone := New(src)
	if err := alone.ReplaceString(outer, "throw 1;"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	want := mustGet(t, alone, nil)

	for _, ranges := range [][]source.Range{{outer, inner}, {inner, outer}, {outer, outer}} {
		p := New(src)
		for _, r := range ranges {
			text := "b - a"
			if r == outer {
				text = "throw 1;"
			}
			if err := p.ReplaceString(r, text); err != nil {
				t.Fatalf("replace %v: %v", r, err)
			}
		}
		if got := mustGet(t, p, nil); got != want {
			t.Fatalf("order %v: want %q got %q", ranges, want, got)
		}
	}
}

func TestLocalizedReplacementKeepsAdjacentComments(t *testing.T) {
	src := lines.FromString("a = b; /* keep */ c;\n// tail\n", lines.Options{})
	p := New(src)
	if err := p.ReplaceString(source.NewRange(1, 4, 1, 5), "x"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got, want := mustGet(t, p, nil), "a = x; /* keep */ c;\n// tail\n"; got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestOverlapLeavesPatchSetUntouched(t *testing.T) {
	src := lines.FromString("abcdefghij", lines.Options{})
	p := New(src)
	if err := p.ReplaceString(source.NewRange(1, 0, 1, 5), "X"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	err := p.ReplaceString(source.NewRange(1, 3, 1, 8), "Y")
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
	if p.Len() != 1 {
		t.Fatalf("patch set changed after a rejected replace: %d", p.Len())
	}
	if got := mustGet(t, p, nil); got != "Xfghij" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestReplaceOutOfBounds(t *testing.T) {
	p := New(lines.FromString("ab\ncd", lines.Options{}))
	err := p.ReplaceString(source.NewRange(10, 0, 10, 1), "x")
	if !errors.Is(err, lines.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestInsertionNextToReplacement(t *testing.T) {
	p := New(lines.FromString("abcdef", lines.Options{}))
	if err := p.ReplaceString(source.NewRange(1, 3, 1, 3), "X"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := p.ReplaceString(source.NewRange(1, 0, 1, 3), "Y"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := mustGet(t, p, nil); got != "YXdef" {
		t.Fatalf("want %q got %q", "YXdef", got)
	}
}

func TestGetWindow(t *testing.T) {
	src := lines.FromString(canonical, lines.Options{})
	p := New(src)
	if err := p.ReplaceString(thisRange, "self"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	r := objectRange
	want := "{\n    // some comment\n    bar: 42,\n    baz: self\n}"
	if got := mustGet(t, p, &r); got != want {
		t.Fatalf("want %q got %q", want, got)
	}

	head := source.NewRange(1, 0, 2, 7)
	if got := mustGet(t, p, &head); got != "// file comment\nexports" {
		t.Fatalf("patches outside the window must be ignored, got %q", got)
	}

	straddle := source.NewRange(5, 0, 5, 11)
	if _, err := p.Get(&straddle); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap for a straddling patch, got %v", err)
	}
}

func TestMultiLineReplacementIndented(t *testing.T) {
	src := lines.FromString("if (x) {\n    call(a);\n}\n", lines.Options{})
	p := New(src)
	repl := lines.FromString("{\n  k: 1\n}", lines.Options{}).IndentTail(4)
	if err := p.Replace(source.NewRange(2, 9, 2, 10), repl); err != nil {
		t.Fatalf("replace: %v", err)
	}
	want := "if (x) {\n    call({\n      k: 1\n    });\n}\n"
	if got := mustGet(t, p, nil); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestDeleteComments(t *testing.T) {
	src := lines.FromString(canonical, lines.Options{})
	prop := &ast.Property{}
	ast.AddComment(prop, &ast.Comment{
		Text:    "// some comment",
		Leading: true,
		Loc:     &ast.Loc{Range: source.NewRange(3, 4, 3, 19), Indent: 4},
	})
	p := New(src)
	if err := p.DeleteComments(prop); err != nil {
		t.Fatalf("DeleteComments: %v", err)
	}
	want := "// file comment\nexports.foo({\n    bar: 42,\n    baz: this\n});\n"
	if got := mustGet(t, p, nil); got != want {
		t.Fatalf("leading: want %q got %q", want, got)
	}

	src = lines.FromString("x = 1; // one\ny;", lines.Options{})
	stmt := &ast.ExprStmt{}
	ast.AddComment(stmt, &ast.Comment{
		Text:     "// one",
		Trailing: true,
		Loc:      &ast.Loc{Range: source.NewRange(1, 7, 1, 13)},
	})
	p = New(src)
	if err := p.DeleteComments(stmt); err != nil {
		t.Fatalf("DeleteComments: %v", err)
	}
	if got := mustGet(t, p, nil); got != "x = 1;\ny;" {
		t.Fatalf("trailing: got %q", got)
	}
}
