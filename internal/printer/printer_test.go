package printer_test

import (
	"errors"
	"strings"
	"testing"

	"reprint/internal/ast"
	"reprint/internal/diag"
	"reprint/internal/parser"
	"reprint/internal/printer"
	"reprint/internal/reprint"
	"reprint/internal/source"
)

const canonical = "// file comment\n" +
	"exports.foo({\n" +
	"    // some comment\n" +
	"    bar: 42,\n" +
	"    baz: this\n" +
	"});\n"

func parse(t *testing.T, src string) *parser.Result {
	t.Helper()
	res, err := parser.Parse("test.js", []byte(src), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res
}

func printOpts(t *testing.T, res *parser.Result, n ast.Node, opts printer.Options) string {
	t.Helper()
	out, err := printer.New(opts, res.Snapshot).Print(n)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	return out.String()
}

func render(t *testing.T, res *parser.Result) string {
	t.Helper()
	return printOpts(t, res, res.File, printer.DefaultOptions())
}

func canonicalObject(f *ast.File) (*ast.CallExpr, *ast.ObjectLit) {
	call := f.Body[0].(*ast.ExprStmt).X.(*ast.CallExpr)
	return call, call.Args[0].(*ast.ObjectLit)
}

func TestIdentityReprint(t *testing.T) {
	for _, src := range []string{
		canonical,
		"",
		"a;",
		"var x = 1,\n\ty = [1,2 ,3];\r\n\r\nif (x) { y() } else {\n  z( /* c */ )\n}\n",
		"function f(a, b) {\n    return (a + b) * 2 // sum\n}\n/* trailing */\n",
	} {
		res := parse(t, src)
		if got := render(t, res); got != src {
			t.Fatalf("want %q got %q", src, got)
		}
	}
}

func TestCanonicalThisToSelf(t *testing.T) {
	res := parse(t, canonical)
	_, obj := canonicalObject(res.File)
	obj.Props[1].Value = ast.NewIdent("self")

	want := strings.Replace(canonical, "baz: this", "baz: self", 1)
	if got := render(t, res); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestCanonicalNestedReplacement(t *testing.T) {
	want := "// file comment\nexports.foo(oyez);\n"
	edits := []func(f *ast.File){
		func(f *ast.File) {
			_, obj := canonicalObject(f)
			obj.Props[1].Value = ast.NewIdent("self")
		},
		func(f *ast.File) {
			call, _ := canonicalObject(f)
			call.Args[0] = ast.NewIdent("oyez")
		},
	}
	for _, order := range [][]int{{0, 1}, {1, 0}} {
		res := parse(t, canonical)
		for _, i := range order {
			edits[i](res.File)
		}
		if got := render(t, res); got != want {
			t.Fatalf("order %v: want %q got %q", order, want, got)
		}
	}
}

func TestReturnArgumentGetsSpace(t *testing.T) {
	res := parse(t, "function f() {\n    return\"foo\";\n}\n")
	fn := res.File.Body[0].(*ast.FuncDecl)
	fn.Body.Body[0].(*ast.ReturnStmt).Arg = ast.NewNull()

	want := "function f() {\n    return null;\n}\n"
	if got := render(t, res); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestKeywordArgumentsGetSpace(t *testing.T) {
	cases := []struct {
		src, want string
		arg       ast.Expr
	}{
		{`return"foo"`, "return null", ast.NewNull()},
		{"throw[1,2,3]", "throw false", ast.NewBool(false)},
	}
	for _, tc := range cases {
		res := parse(t, tc.src)
		if got := render(t, res); got != tc.src {
			t.Fatalf("identity: want %q got %q", tc.src, got)
		}
		switch stmt := res.File.Body[0].(type) {
		case *ast.ReturnStmt:
			stmt.Arg = tc.arg
		case *ast.ThrowStmt:
			stmt.Arg = tc.arg
		default:
			t.Fatalf("%q: unexpected %s", tc.src, stmt.Kind())
		}
		if got := render(t, res); got != tc.want {
			t.Fatalf("want %q got %q", tc.want, got)
		}
	}
}

func TestOperatorsDoNotFuse(t *testing.T) {
	res := parse(t, "x = a-b;\ny = a+b;\n")
	minus := res.File.Body[0].(*ast.ExprStmt).X.(*ast.AssignExpr).Y.(*ast.BinaryExpr)
	minus.Y = &ast.UnaryExpr{Op: "-", X: ast.NewIdent("c")}
	plus := res.File.Body[1].(*ast.ExprStmt).X.(*ast.AssignExpr).Y.(*ast.BinaryExpr)
	plus.Y = &ast.UnaryExpr{Op: "+", X: ast.NewIdent("c")}

	want := "x = a- -c;\ny = a+ +c;\n"
	got := render(t, res)
	if got != want {
		t.Fatalf("want %q got %q", want, got)
	}
	if _, err := parser.Parse("again.js", []byte(got), parser.Options{}); err != nil {
		t.Fatalf("reprinted text does not parse: %v", err)
	}
}

func TestSwappedElementsAreRegenerated(t *testing.T) {
	res := parse(t, "// first\na();\n// second\nb();\nx = [1, 2, 3];\n")
	body := res.File.Body
	body[0], body[1] = body[1], body[0]
	arr := body[2].(*ast.ExprStmt).X.(*ast.AssignExpr).Y.(*ast.ArrayLit)
	arr.Elems[0], arr.Elems[2] = arr.Elems[2], arr.Elems[0]

	want := "// second\nb();\n// first\na();\nx = [3, 2, 1];\n"
	if got := render(t, res); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestBuiltNodesPrint(t *testing.T) {
	res := parse(t, "x = a.b;\ny = 1;\n")
	res.File.Body[0].(*ast.ExprStmt).X.(*ast.AssignExpr).Y = ast.NewIndex(ast.NewIdent("a"), ast.NewInt(0))
	res.File.Body[1].(*ast.ExprStmt).X.(*ast.AssignExpr).Y = ast.NewArray(ast.NewInt(1), ast.NewBool(true), ast.NewNull())

	want := "x = a[0];\ny = [1, true, null];\n"
	if got := render(t, res); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestReindentReplacement(t *testing.T) {
	opts := printer.DefaultOptions()
	opts.TabWidth = 4
	for delta := -4; delta <= 4; delta++ {
		w := 4 + delta
		pad := strings.Repeat(" ", w)
		src := "if (x) {\n" + pad + "foo(this);\n}\n"
		res := parse(t, src)
		stmt := res.File.Body[0].(*ast.IfStmt).Then.(*ast.BlockStmt).Body[0].(*ast.ExprStmt)
		stmt.X.(*ast.CallExpr).Args[0] = ast.NewObject(ast.NewProperty("q", ast.NewInt(1)))

		want := "if (x) {\n" + pad + "foo({\n" + pad + "    q: 1\n" + pad + "});\n}\n"
		if got := printOpts(t, res, res.File, opts); got != want {
			t.Fatalf("delta %d: want %q got %q", delta, want, got)
		}
		// the statement alone comes out relative to its own first line
		wantStmt := "foo({\n    q: 1\n});"
		if got := printOpts(t, res, stmt, opts); got != wantStmt {
			t.Fatalf("delta %d: want %q got %q", delta, wantStmt, got)
		}
	}
}

func TestParens(t *testing.T) {
	cases := []struct {
		name string
		src  string
		edit func(f *ast.File)
		want string
	}{
		{
			name: "new operand needs parens",
			src:  "a * b;\n",
			edit: func(f *ast.File) {
				bin := f.Body[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
				bin.Y = ast.NewBinary("+", ast.NewIdent("c"), ast.NewIdent("d"))
			},
			want: "a * (c + d);\n",
		},
		{
			name: "patch inside existing parens",
			src:  "(a + b) * c;\n",
			edit: func(f *ast.File) {
				bin := f.Body[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
				bin.X.(*ast.BinaryExpr).X = ast.NewIdent("z")
			},
			want: "(z + b) * c;\n",
		},
		{
			name: "moved node gains parens",
			src:  "x = a + b;\ny = c * d;\n",
			edit: func(f *ast.File) {
				sum := f.Body[0].(*ast.ExprStmt).X.(*ast.AssignExpr).Y
				f.Body[1].(*ast.ExprStmt).X.(*ast.AssignExpr).Y.(*ast.BinaryExpr).X = sum
			},
			want: "x = a + b;\ny = (a + b) * d;\n",
		},
		{
			name: "object first in statement",
			src:  "x;\n",
			edit: func(f *ast.File) {
				f.Body[0].(*ast.ExprStmt).X = ast.NewMember(ast.NewObject(), "a")
			},
			want: "({}).a;\n",
		},
	}
	for _, tc := range cases {
		res := parse(t, tc.src)
		tc.edit(res.File)
		if got := render(t, res); got != tc.want {
			t.Fatalf("%s: want %q got %q", tc.name, tc.want, got)
		}
	}
}

func TestCommentChange(t *testing.T) {
	res := parse(t, "// old\nfoo();\nbar();\n")
	res.File.Body[0].(*ast.ExprStmt).SetComments([]*ast.Comment{ast.NewLineComment(" new")})

	want := "// new\nfoo();\nbar();\n"
	if got := render(t, res); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestListLengthChange(t *testing.T) {
	res := parse(t, "var a = [1,  2];\n\nb();\n")
	decl := res.File.Body[0].(*ast.VarDecl)
	arr := decl.Decls[0].Init.(*ast.ArrayLit)
	arr.Elems = append(arr.Elems, ast.NewInt(3))
	res.File.Body = append(res.File.Body, ast.NewExprStmt(ast.NewCall(ast.NewIdent("c"))))

	want := "var a = [1, 2, 3];\n\nb();\nc();\n"
	if got := render(t, res); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestPrintGenerically(t *testing.T) {
	res := parse(t, canonical)
	out, err := printer.New(printer.DefaultOptions(), res.Snapshot).PrintGenerically(res.File)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if got := out.String(); got != canonical {
		t.Fatalf("want %q got %q", canonical, got)
	}

	res = parse(t, "if(a)b();else{c()}\n")
	out, err = printer.New(printer.Options{TabWidth: 2}, nil).PrintGenerically(res.File)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	want := "if (a)\n  b();\nelse {\n  c();\n}\n"
	if got := out.String(); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestQuoteAndTerminator(t *testing.T) {
	src := "x = \"it's\";\r\ny = 1;\r\n"
	cases := []struct {
		quote string
		want  string
	}{
		{printer.QuoteAuto, "x = \"it's\";\r\ny = 1;\r\nz = \"new\\n\";\r\n"},
		{printer.QuoteSingle, "x = 'it\\'s';\r\ny = 1;\r\nz = 'new\\n';\r\n"},
	}
	for _, tc := range cases {
		res := parse(t, src)
		res.File.Body = append(res.File.Body, ast.NewExprStmt(ast.NewAssign(ast.NewIdent("z"), ast.NewString("new\n"))))
		opts := printer.DefaultOptions()
		opts.Quote = tc.quote
		opts.ReuseWhitespace = false
		if got := printOpts(t, res, res.File, opts); got != tc.want {
			t.Fatalf("%s: want %q got %q", tc.quote, tc.want, got)
		}
	}
}

type collect struct{ codes []diag.Code }

func (c *collect) Report(code diag.Code, _ diag.Severity, _ source.Range, _ string, _ []diag.Note) {
	c.codes = append(c.codes, code)
}

func TestContractViolationSurfaces(t *testing.T) {
	res := parse(t, "foo(this);\n")
	call := res.File.Body[0].(*ast.ExprStmt).X.(*ast.CallExpr)
	call.Args[0] = ast.NewIdent("self")
	// ломаем исходную локацию в снимке
	orig := res.Snapshot.Original(call).(*ast.CallExpr)
	orig.Args[0].(*ast.This).SetLoc(&ast.Loc{Range: source.NewRange(9, 0, 9, 4)})

	_, err := printer.New(printer.DefaultOptions(), res.Snapshot).Print(res.File)
	if !errors.Is(err, reprint.ErrContract) {
		t.Fatalf("want ErrContract got %v", err)
	}
}

func TestOverlapFallsBackToGeneric(t *testing.T) {
	res := parse(t, "foo(this);\n")
	call := res.File.Body[0].(*ast.ExprStmt).X.(*ast.CallExpr)
	call.Callee = ast.NewIdent("bar")
	call.Args[0] = ast.NewIdent("self")
	// аргумент "налезает" на callee: патчи пересекаются
	orig := res.Snapshot.Original(call).(*ast.CallExpr)
	orig.Args[0].(*ast.This).SetLoc(&ast.Loc{Range: source.NewRange(1, 2, 1, 8)})

	rep := &collect{}
	opts := printer.DefaultOptions()
	opts.Reporter = rep
	out, err := printer.New(opts, res.Snapshot).Print(res.File)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if got, want := out.String(), "bar(self);\n"; got != want {
		t.Fatalf("want %q got %q", want, got)
	}
	if len(rep.codes) == 0 || rep.codes[0] != diag.PrintFallback {
		t.Fatalf("want PrintFallback reports got %v", rep.codes)
	}
}
