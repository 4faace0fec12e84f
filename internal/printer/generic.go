package printer

import (
	"fmt"
	"strconv"
	"strings"

	"reprint/internal/ast"
	"reprint/internal/cursor"
	"reprint/internal/lines"
	"reprint/internal/source"
)

// elem is one printed list element: leading comments and the node in body,
// trailing comments apart so that a separator can go between them.
type elem struct {
	node     ast.Node
	body     *lines.Lines
	trailing *lines.Lines // nil without trailing comments
}

func (e elem) line() *lines.Lines {
	if e.trailing == nil {
		return e.body
	}
	return lines.Join(e.body, e.trailing)
}

// field prints the child reached through name, comments included.
func (p *Printer) field(path *cursor.Path, name string) (*lines.Lines, error) {
	var out *lines.Lines
	err := path.Call(func(cp *cursor.Path) error {
		var err error
		out, err = p.print(cp, true, false)
		return err
	}, name)
	return out, err
}

func (p *Printer) elems(path *cursor.Path, name string) ([]elem, error) {
	return cursor.Map(path, name, func(cp *cursor.Path) (elem, error) {
		n, _ := cp.Value().(ast.Node)
		body, err := p.print(cp, false, false)
		if err != nil || ast.IsNil(n) {
			return elem{body: body}, err
		}
		return elem{node: n, body: p.leading(n, body), trailing: p.trailing(n)}, nil
	})
}

// stmts prints a statement list one per line, keeping a single blank line
// where the source had one or more.
func (p *Printer) stmts(path *cursor.Path, name string) (*lines.Lines, error) {
	items, err := p.elems(path, name)
	if err != nil {
		return nil, err
	}
	parts := make([]*lines.Lines, 0, len(items))
	for i, it := range items {
		line := it.line()
		if i > 0 && p.blankBetween(items[i-1].node, it.node) {
			line = lines.Join(p.newline(), line)
		}
		parts = append(parts, line)
	}
	return p.stack(parts), nil
}

// blankBetween reports whether next followed a blank source line that also
// lies after prev. Moved statements keep their old lines, so the gap alone
// says nothing.
func (p *Printer) blankBetween(prev, next ast.Node) bool {
	if ast.IsNil(prev) || ast.IsNil(next) {
		return false
	}
	end, ok := lastLine(prev)
	if !ok {
		return false
	}
	start, ok := firstLine(next)
	if !ok || start-end <= 1 {
		return false
	}
	return p.blankLine(start - 1)
}

func (p *Printer) blankLine(line int) bool {
	if p.snap == nil || p.snap.Lines == nil {
		return true
	}
	src := p.snap.Lines
	text, err := src.SliceString(source.Pos{Line: line}, source.Pos{Line: line, Column: src.LineLength(line)})
	return err == nil && strings.TrimSpace(text) == ""
}

func firstLine(n ast.Node) (int, bool) {
	if lead := ast.LeadingComments(n); len(lead) > 0 && lead[0].Loc != nil {
		return lead[0].Loc.Start.Line, true
	}
	if loc := n.Loc(); loc != nil {
		return loc.Start.Line, true
	}
	return 0, false
}

func lastLine(n ast.Node) (int, bool) {
	loc := n.Loc()
	if loc == nil {
		return 0, false
	}
	end := loc.End.Line
	for _, c := range ast.TrailingComments(n) {
		if c.Loc != nil {
			end = max(end, c.Loc.End.Line)
		}
	}
	return end, true
}

// commaList lays items out between open and close. Lists go on one line
// unless multi is set or a comment forces line breaks.
func (p *Printer) commaList(open, close string, items []elem, multi bool) *lines.Lines {
	if len(items) == 0 {
		return p.text(open + close)
	}
	for _, it := range items {
		if it.trailing != nil || (!ast.IsNil(it.node) && len(ast.LeadingComments(it.node)) > 0) {
			multi = true
		}
	}
	if !multi {
		parts := make([]*lines.Lines, len(items))
		for i, it := range items {
			parts[i] = it.body
		}
		return p.concat(open, lines.JoinWith(p.text(", "), parts), close)
	}
	parts := make([]*lines.Lines, len(items))
	for i, it := range items {
		line := it.body
		if i < len(items)-1 || p.opts.TrailingComma {
			line = p.concat(line, ",")
		}
		if it.trailing != nil {
			line = lines.Join(line, it.trailing)
		}
		parts[i] = line
	}
	return p.block(open, close, p.stack(parts))
}

func (p *Printer) joined(items []elem, sep string) *lines.Lines {
	parts := make([]*lines.Lines, len(items))
	for i, it := range items {
		parts[i] = it.line()
	}
	return lines.JoinWith(p.text(sep), parts)
}

// clause prints the body of if/else: blocks stay on the same line, other
// statements go indented on the next one.
func (p *Printer) clause(st ast.Stmt, text *lines.Lines) *lines.Lines {
	switch st.(type) {
	case *ast.BlockStmt, *ast.IfStmt:
		return p.concat(" ", text)
	}
	return lines.Join(p.newline(), text.Indent(p.unit))
}

func (p *Printer) printGeneric(path *cursor.Path, n ast.Node) (*lines.Lines, error) {
	switch n := n.(type) {
	case *ast.File:
		body, err := p.stmts(path, "Body")
		if err != nil || body.IsEmpty() {
			return body, err
		}
		return p.concat(body, "\n"), nil

	case *ast.VarDecl:
		decls, err := p.elems(path, "Decls")
		if err != nil {
			return nil, err
		}
		return p.concat(n.Keyword+" ", p.joined(decls, ", "), ";"), nil

	case *ast.VarDeclarator:
		name, err := p.field(path, "Name")
		if err != nil || n.Init == nil {
			return name, err
		}
		init, err := p.field(path, "Init")
		if err != nil {
			return nil, err
		}
		return p.concat(name, " = ", init), nil

	case *ast.ExprStmt:
		x, err := p.field(path, "X")
		if err != nil {
			return nil, err
		}
		return p.concat(x, ";"), nil

	case *ast.ReturnStmt:
		if n.Arg == nil {
			return p.text("return;"), nil
		}
		arg, err := p.field(path, "Arg")
		if err != nil {
			return nil, err
		}
		return p.concat("return ", arg, ";"), nil

	case *ast.ThrowStmt:
		arg, err := p.field(path, "Arg")
		if err != nil {
			return nil, err
		}
		return p.concat("throw ", arg, ";"), nil

	case *ast.IfStmt:
		return p.ifStmt(path, n)

	case *ast.BlockStmt:
		body, err := p.stmts(path, "Body")
		if err != nil {
			return nil, err
		}
		return p.block("{", "}", body), nil

	case *ast.FuncDecl:
		return p.function(path, n.Name != nil)

	case *ast.FuncExpr:
		return p.function(path, n.Name != nil)

	case *ast.EmptyStmt:
		return p.text(";"), nil

	case *ast.Ident:
		return p.text(n.Name), nil

	case *ast.This:
		return p.text("this"), nil

	case *ast.NullLit:
		return p.text("null"), nil

	case *ast.BoolLit:
		return p.text(strconv.FormatBool(n.Value)), nil

	case *ast.NumberLit:
		return p.text(n.Raw), nil

	case *ast.StringLit:
		return p.text(p.quote(n)), nil

	case *ast.ArrayLit:
		items, err := p.elems(path, "Elems")
		if err != nil {
			return nil, err
		}
		return p.commaList("[", "]", items, false), nil

	case *ast.ObjectLit:
		items, err := p.elems(path, "Props")
		if err != nil {
			return nil, err
		}
		return p.commaList("{", "}", items, true), nil

	case *ast.Property:
		key, err := p.field(path, "Key")
		if err != nil {
			return nil, err
		}
		value, err := p.field(path, "Value")
		if err != nil {
			return nil, err
		}
		return p.concat(key, ": ", value), nil

	case *ast.MemberExpr:
		x, err := p.field(path, "X")
		if err != nil {
			return nil, err
		}
		prop, err := p.field(path, "Prop")
		if err != nil {
			return nil, err
		}
		if n.Computed {
			return p.concat(x, "[", prop, "]"), nil
		}
		return p.concat(x, ".", prop), nil

	case *ast.CallExpr:
		return p.call(path, "")

	case *ast.NewExpr:
		return p.call(path, "new ")

	case *ast.UnaryExpr:
		x, err := p.field(path, "X")
		if err != nil {
			return nil, err
		}
		sep := ""
		switch {
		case len(n.Op) > 1:
			sep = " " // typeof, void, delete
		case (n.Op == "-" || n.Op == "+") && x.FirstChar() == n.Op[0]:
			sep = " " // - -x, + +x
		}
		return p.concat(n.Op, sep, x), nil

	case *ast.BinaryExpr:
		return p.infix(path, n.Op)

	case *ast.LogicalExpr:
		return p.infix(path, n.Op)

	case *ast.AssignExpr:
		return p.infix(path, n.Op)

	case *ast.CondExpr:
		test, err := p.field(path, "Test")
		if err != nil {
			return nil, err
		}
		cons, err := p.field(path, "Cons")
		if err != nil {
			return nil, err
		}
		alt, err := p.field(path, "Alt")
		if err != nil {
			return nil, err
		}
		return p.concat(test, " ? ", cons, " : ", alt), nil

	case *ast.SeqExpr:
		items, err := p.elems(path, "List")
		if err != nil {
			return nil, err
		}
		return p.joined(items, ", "), nil
	}
	return nil, fmt.Errorf("printer: unexpected node %s", n.Kind())
}

func (p *Printer) ifStmt(path *cursor.Path, n *ast.IfStmt) (*lines.Lines, error) {
	test, err := p.field(path, "Test")
	if err != nil {
		return nil, err
	}
	then, err := p.field(path, "Then")
	if err != nil {
		return nil, err
	}
	out := p.concat("if (", test, ")", p.clause(n.Then, then))
	if n.Else == nil {
		return out, nil
	}
	els, err := p.field(path, "Else")
	if err != nil {
		return nil, err
	}
	if _, ok := n.Then.(*ast.BlockStmt); ok {
		return p.concat(out, " else", p.clause(n.Else, els)), nil
	}
	return p.stack([]*lines.Lines{out, p.concat("else", p.clause(n.Else, els))}), nil
}

func (p *Printer) function(path *cursor.Path, named bool) (*lines.Lines, error) {
	parts := []any{"function"}
	if named {
		name, err := p.field(path, "Name")
		if err != nil {
			return nil, err
		}
		parts = append(parts, " ", name)
	}
	params, err := p.elems(path, "Params")
	if err != nil {
		return nil, err
	}
	body, err := p.field(path, "Body")
	if err != nil {
		return nil, err
	}
	parts = append(parts, "(", p.joined(params, ", "), ") ", body)
	return p.concat(parts...), nil
}

// call prints calls and, with prefix "new ", constructor calls; arguments
// always get parentheses.
func (p *Printer) call(path *cursor.Path, prefix string) (*lines.Lines, error) {
	callee, err := p.field(path, "Callee")
	if err != nil {
		return nil, err
	}
	args, err := p.elems(path, "Args")
	if err != nil {
		return nil, err
	}
	return p.concat(prefix, callee, p.commaList("(", ")", args, false)), nil
}

func (p *Printer) infix(path *cursor.Path, op string) (*lines.Lines, error) {
	x, err := p.field(path, "X")
	if err != nil {
		return nil, err
	}
	y, err := p.field(path, "Y")
	if err != nil {
		return nil, err
	}
	return p.concat(x, " "+op+" ", y), nil
}
