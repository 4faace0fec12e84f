package cursor

import (
	"strings"

	"reprint/internal/ast"
)

// Operator precedence levels; higher binds tighter.
const (
	levelSeq     = 1
	levelAssign  = 2
	levelCond    = 3
	levelUnary   = 15
	levelPostfix = 17 // member access, call, new
	levelPrimary = 18
)

var binaryLevels = map[string]int{
	"??": 4, "||": 4,
	"&&": 5,
	"|":  6,
	"^":  7,
	"&":  8,
	"==": 9, "!=": 9, "===": 9, "!==": 9,
	"<": 10, ">": 10, "<=": 10, ">=": 10, "instanceof": 10, "in": 10,
	"<<": 11, ">>": 11, ">>>": 11,
	"+": 12, "-": 12,
	"*": 13, "/": 13, "%": 13,
	"**": 14,
}

// BinaryLevel returns the precedence of a binary or logical operator, 0 for
// unknown operators.
func BinaryLevel(op string) int { return binaryLevels[op] }

func level(n ast.Node) int {
	switch n := n.(type) {
	case *ast.SeqExpr:
		return levelSeq
	case *ast.AssignExpr:
		return levelAssign
	case *ast.CondExpr:
		return levelCond
	case *ast.LogicalExpr:
		return binaryLevels[n.Op]
	case *ast.BinaryExpr:
		return binaryLevels[n.Op]
	case *ast.UnaryExpr:
		return levelUnary
	case *ast.MemberExpr, *ast.CallExpr, *ast.NewExpr:
		return levelPostfix
	}
	return levelPrimary
}

// minLevel is the lowest precedence a child may have in field of parent
// without being parenthesised.
func minLevel(parent ast.Node, field string) int {
	switch p := parent.(type) {
	case *ast.ExprStmt, *ast.ReturnStmt, *ast.ThrowStmt, *ast.IfStmt:
		return levelSeq
	case *ast.MemberExpr:
		if field == "X" {
			return levelPostfix
		}
		return levelSeq
	case *ast.Property:
		if field == "Key" {
			return levelSeq
		}
		return levelAssign
	case *ast.VarDeclarator, *ast.ArrayLit, *ast.SeqExpr:
		return levelAssign
	case *ast.CallExpr, *ast.NewExpr:
		if field == "Callee" {
			return levelPostfix
		}
		return levelAssign
	case *ast.AssignExpr:
		if field == "X" {
			return levelPostfix
		}
		return levelAssign
	case *ast.CondExpr:
		if field == "Test" {
			return levelCond + 1
		}
		return levelAssign
	case *ast.UnaryExpr:
		return levelUnary
	case *ast.BinaryExpr:
		return operandLevel(p.Op, field)
	case *ast.LogicalExpr:
		return operandLevel(p.Op, field)
	}
	return levelSeq
}

func operandLevel(op, field string) int {
	lv := binaryLevels[op]
	rightAssoc := op == "**"
	if rightAssoc && field == "X" {
		// -a ** b is a syntax error
		return levelUnary + 1
	}
	if (field == "X") == rightAssoc {
		return lv + 1
	}
	return lv
}

// NeedsParensIn reports whether child must be parenthesised when placed in
// field of parent.
func NeedsParensIn(parent ast.Node, field string, child ast.Node) bool {
	if ast.IsNil(parent) || ast.IsNil(child) || !child.Kind().IsExpr() {
		return false
	}
	if level(child) < minLevel(parent, field) {
		return true
	}
	switch p := parent.(type) {
	case *ast.LogicalExpr:
		// ?? cannot be mixed with && or || without parentheses.
		if c, ok := child.(*ast.LogicalExpr); ok && (p.Op == "??") != (c.Op == "??") {
			return true
		}
	case *ast.NewExpr:
		if field == "Callee" && callInChain(child) {
			return true
		}
	case *ast.MemberExpr:
		if field == "X" && !p.Computed {
			if num, ok := child.(*ast.NumberLit); ok && isPlainInteger(num.Raw) {
				return true
			}
		}
	}
	return false
}

func callInChain(n ast.Node) bool {
	for {
		switch v := n.(type) {
		case *ast.CallExpr:
			return true
		case *ast.MemberExpr:
			n = v.X
		default:
			return false
		}
	}
}

func isPlainInteger(raw string) bool {
	if raw == "" {
		return false
	}
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		return false
	}
	return !strings.ContainsAny(raw, ".eE")
}

// NeedsParens reports whether the node at the current position must be
// wrapped in parentheses to keep its meaning in its parent.
func (p *Path) NeedsParens() bool {
	n, at := p.nodeAt(0)
	if n == nil || at != len(p.stack)-1 || !n.Kind().IsExpr() {
		return false
	}
	parent, _ := p.nodeAt(1)
	if parent == nil {
		return false
	}
	if NeedsParensIn(parent, p.stack[at].Name, n) {
		return true
	}
	switch n.(type) {
	case *ast.FuncExpr, *ast.ObjectLit:
		return p.FirstInStatement()
	}
	return false
}

// FirstInStatement reports whether the current node would be the first
// token of an expression statement.
func (p *Path) FirstInStatement() bool {
	child, at := p.nodeAt(0)
	for at > 0 {
		field := p.stack[at].Name
		var parent ast.Node
		pat := -1
		for i := at - 1; i >= 0; i-- {
			if n := asNode(p.stack[i].Value); n != nil {
				parent, pat = n, i
				break
			}
		}
		if parent == nil {
			return false
		}
		switch v := parent.(type) {
		case *ast.ExprStmt:
			return field == "X"
		case *ast.CallExpr:
			if field != "Callee" {
				return false
			}
		case *ast.NewExpr:
			return false
		case *ast.MemberExpr:
			if field != "X" {
				return false
			}
		case *ast.BinaryExpr, *ast.LogicalExpr, *ast.AssignExpr:
			if field != "X" {
				return false
			}
		case *ast.CondExpr:
			if field != "Test" {
				return false
			}
		case *ast.SeqExpr:
			if len(v.List) == 0 || v.List[0] != child {
				return false
			}
		default:
			return false
		}
		if NeedsParensIn(parent, field, child) {
			return false
		}
		child, at = parent, pat
	}
	return false
}

// IsStatementPosition reports whether the current node sits where a
// statement is expected.
func (p *Path) IsStatementPosition() bool {
	n, at := p.nodeAt(0)
	if n == nil || at != len(p.stack)-1 || !n.Kind().IsStmt() {
		return false
	}
	switch p.ParentNode().(type) {
	case *ast.FuncDecl, *ast.FuncExpr:
		return false
	}
	switch p.stack[at].Name {
	case "Body", "Then", "Else":
		return true
	}
	return false
}

// Siblings returns the list the current node is an element of, nil when
// the node is not in a list.
func (p *Path) Siblings() []ast.Node {
	if len(p.stack) < 2 || p.top().Index < 0 {
		return nil
	}
	list, _ := p.stack[len(p.stack)-2].Value.([]ast.Node)
	return list
}
