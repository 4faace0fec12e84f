package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"reprint/internal/ast"
	"reprint/internal/diag"
	"reprint/internal/parser"
	"reprint/internal/source"
)

const canonical = "// file comment\nexports.foo({\n    bar: 42,\n    baz: this\n});\n"

func mustParse(t *testing.T, src string) *parser.Result {
	t.Helper()
	res, err := parser.Parse("test.js", []byte(src), parser.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return res
}

func rangeOf(t *testing.T, n ast.Node) source.Range {
	t.Helper()
	if n.Loc() == nil {
		t.Fatalf("%s has no Loc", n.Kind())
	}
	return n.Loc().Range
}

func TestParseCanonicalLocs(t *testing.T) {
	res := mustParse(t, canonical)
	if len(res.File.Body) != 1 {
		t.Fatalf("want 1 statement got %d", len(res.File.Body))
	}
	stmt := res.File.Body[0].(*ast.ExprStmt)
	call := stmt.X.(*ast.CallExpr)
	obj := call.Args[0].(*ast.ObjectLit)
	baz := obj.Props[1]

	cases := []struct {
		name string
		node ast.Node
		want source.Range
	}{
		{"file", res.File, source.NewRange(1, 0, 6, 0)},
		{"stmt", stmt, source.NewRange(2, 0, 5, 3)},
		{"call", call, source.NewRange(2, 0, 5, 2)},
		{"callee", call.Callee, source.NewRange(2, 0, 2, 11)},
		{"object", obj, source.NewRange(2, 12, 5, 1)},
		{"bar", obj.Props[0], source.NewRange(3, 4, 3, 11)},
		{"this", baz.Value, source.NewRange(4, 9, 4, 13)},
	}
	for _, tc := range cases {
		if got := rangeOf(t, tc.node); got != tc.want {
			t.Fatalf("%s: want %s got %s", tc.name, tc.want, got)
		}
	}
	if got := baz.Loc().Indent; got != 4 {
		t.Fatalf("want indent 4 got %d", got)
	}
	// объект начинается посреди строки и берёт отступ оператора
	if got := obj.Loc().Indent; got != 0 {
		t.Fatalf("want object indent 0 got %d", got)
	}
	if _, ok := baz.Value.(*ast.This); !ok {
		t.Fatalf("want this got %s", baz.Value.Kind())
	}
	if lead := ast.LeadingComments(stmt); len(lead) != 1 || lead[0].Text != "// file comment" {
		t.Fatalf("want leading file comment got %#v", lead)
	}
	if res.Snapshot.Original(baz) == nil {
		t.Fatalf("property missing from snapshot")
	}
}

func TestParseCommentAttachment(t *testing.T) {
	src := "var a = 1; // one\n/* two */\nvar b = [\n  1, // x\n  2\n  // dangling\n];\n"
	res := mustParse(t, src)
	a := res.File.Body[0]
	b := res.File.Body[1].(*ast.VarDecl)
	arr := b.Decls[0].Init.(*ast.ArrayLit)

	texts := func(cs []*ast.Comment) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.Text)
		}
		return out
	}
	cases := []struct {
		name string
		got  []string
		want []string
	}{
		{"a trailing", texts(ast.TrailingComments(a)), []string{"// one"}},
		{"b leading", texts(ast.LeadingComments(b)), []string{"/* two */"}},
		{"elem 1 trailing", texts(ast.TrailingComments(arr.Elems[0])), []string{"// x"}},
		{"elem 2 trailing", texts(ast.TrailingComments(arr.Elems[1])), []string{"// dangling"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, tc.got); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", tc.name, diff)
		}
	}
	if !ast.LeadingComments(b)[0].Block {
		t.Fatalf("want block comment")
	}
}

func TestParseASIAndReturn(t *testing.T) {
	res := mustParse(t, "a = 1\nb = 2\nreturn\n42\n")
	var kinds []string
	for _, st := range res.File.Body {
		kinds = append(kinds, st.Kind().String())
	}
	want := []string{"ExprStmt", "ExprStmt", "ReturnStmt", "ExprStmt"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	if ret := res.File.Body[2].(*ast.ReturnStmt); ret.Arg != nil {
		t.Fatalf("return followed by newline must have no argument")
	}
	if got := rangeOf(t, res.File.Body[0]); got != source.NewRange(1, 0, 1, 5) {
		t.Fatalf("want 1:0-1:5 got %s", got)
	}
}

func TestParseParensOutsideLoc(t *testing.T) {
	res := mustParse(t, "(a + b) * c;")
	bin := res.File.Body[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
	if got := rangeOf(t, bin.X); got != source.NewRange(1, 1, 1, 6) {
		t.Fatalf("inner: want 1:1-1:6 got %s", got)
	}
	if got := rangeOf(t, bin); got != source.NewRange(1, 0, 1, 11) {
		t.Fatalf("outer: want 1:0-1:11 got %s", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{"var = 1;", diag.SynExpectIdentifier},
		{"a + ;", diag.SynExpectExpression},
		{"1 = 2;", diag.SynInvalidAssignTarget},
		{"foo(1, 2;", diag.SynUnclosedParen},
		{"a b", diag.SynExpectSemicolon},
		{"x = '\\1';", diag.LexBadEscape},
		{"i++;", diag.SynUnexpectedToken},
	}
	for _, tc := range cases {
		_, err := parser.Parse("bad.js", []byte(tc.src), parser.Options{})
		if !errors.Is(err, parser.ErrSyntax) {
			t.Fatalf("%q: want ErrSyntax got %v", tc.src, err)
		}
		var perr *parser.Error
		if !errors.As(err, &perr) || len(perr.Diagnostics) == 0 {
			t.Fatalf("%q: want *parser.Error with diagnostics got %v", tc.src, err)
		}
		if tc.code != diag.UnknownCode && perr.Diagnostics[0].Code != tc.code {
			t.Fatalf("%q: want %s got %s", tc.src, tc.code.ID(), perr.Diagnostics[0].Code.ID())
		}
	}
}

func TestParseExpr(t *testing.T) {
	x, err := parser.ParseExpr("a.b(1, 'x')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := x.(*ast.CallExpr)
	if !ok {
		t.Fatalf("want CallExpr got %s", x.Kind())
	}
	ast.Inspect(call, func(n ast.Node) bool {
		if n.Loc() != nil {
			t.Fatalf("%s kept its Loc", n.Kind())
		}
		return true
	})
	if s := call.Args[1].(*ast.StringLit); s.Value != "x" || s.Raw != "'x'" {
		t.Fatalf("want x/'x' got %q/%q", s.Value, s.Raw)
	}
	if _, err := parser.ParseExpr("a b"); !errors.Is(err, parser.ErrSyntax) {
		t.Fatalf("want trailing input error got %v", err)
	}
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		src   string
		check func(ast.Expr) bool
	}{
		{"a - b - c", func(x ast.Expr) bool {
			_, ok := x.(*ast.BinaryExpr).X.(*ast.BinaryExpr)
			return ok
		}},
		{"a ** b ** c", func(x ast.Expr) bool {
			_, ok := x.(*ast.BinaryExpr).Y.(*ast.BinaryExpr)
			return ok
		}},
		{"a || b && c", func(x ast.Expr) bool {
			l := x.(*ast.LogicalExpr)
			y, ok := l.Y.(*ast.LogicalExpr)
			return l.Op == "||" && ok && y.Op == "&&"
		}},
		{"a = b = c", func(x ast.Expr) bool {
			_, ok := x.(*ast.AssignExpr).Y.(*ast.AssignExpr)
			return ok
		}},
		{"new Foo.Bar(1).baz", func(x ast.Expr) bool {
			m := x.(*ast.MemberExpr)
			n, ok := m.X.(*ast.NewExpr)
			return ok && len(n.Args) == 1
		}},
		{"a ? b : c ? d : e", func(x ast.Expr) bool {
			_, ok := x.(*ast.CondExpr).Alt.(*ast.CondExpr)
			return ok
		}},
		{"typeof a.b", func(x ast.Expr) bool {
			_, ok := x.(*ast.UnaryExpr).X.(*ast.MemberExpr)
			return ok
		}},
	}
	for _, tc := range cases {
		x, err := parser.ParseExpr(tc.src)
		if err != nil {
			t.Fatalf("%q: %v", tc.src, err)
		}
		if !tc.check(x) {
			t.Fatalf("%q: unexpected shape %s", tc.src, x.Kind())
		}
	}
}

func TestParseMaxErrors(t *testing.T) {
	_, err := parser.Parse("bad.js", []byte("var = 1;\nvar = 2;\nvar = 3;\n"), parser.Options{MaxErrors: 1})
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("want *parser.Error got %v", err)
	}
	if len(perr.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic got %d", len(perr.Diagnostics))
	}
}

func TestIndentOfNodeOpeningMidLine(t *testing.T) {
	res, err := parser.Parse("t.js", []byte("    function\n      foo(bar,\n  baz) {\n        qux();\n    }"), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fd := res.File.Body[0].(*ast.FuncDecl)
	cases := []struct {
		name string
		node ast.Node
		want int
	}{
		{"func", fd, 4},
		{"name", fd.Name, 6},
		{"param baz", fd.Params[1], 2},
		{"body", fd.Body, 4},
		{"call", fd.Body.Body[0], 8},
	}
	for _, tc := range cases {
		if got := tc.node.Loc().Indent; got != tc.want {
			t.Fatalf("%s: want indent %d got %d", tc.name, tc.want, got)
		}
	}
}

func TestParseThrow(t *testing.T) {
	res, err := parser.Parse("t.js", []byte("throw[1,2,3]"), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	th, ok := res.File.Body[0].(*ast.ThrowStmt)
	if !ok {
		t.Fatalf("want ThrowStmt got %s", res.File.Body[0].Kind())
	}
	if got := rangeOf(t, th); got != source.NewRange(1, 0, 1, 12) {
		t.Fatalf("want 1:0-1:12 got %s", got)
	}
	if _, ok := th.Arg.(*ast.ArrayLit); !ok {
		t.Fatalf("want array argument got %s", th.Arg.Kind())
	}

	_, err = parser.Parse("t.js", []byte("throw\nx;\n"), parser.Options{})
	if !errors.Is(err, parser.ErrSyntax) {
		t.Fatalf("want syntax error for newline after throw got %v", err)
	}
}
