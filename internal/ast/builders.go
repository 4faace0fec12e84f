package ast

import "strconv"

// Builders for mutation code. The nodes they return have no location and
// are therefore always printed from scratch.

func NewIdent(name string) *Ident { return &Ident{Name: name} }

func NewThis() *This { return &This{} }

func NewNull() *NullLit { return &NullLit{} }

func NewBool(v bool) *BoolLit { return &BoolLit{Value: v} }

// NewString builds a string literal; the printer picks the quotes.
func NewString(v string) *StringLit { return &StringLit{Value: v} }

func NewNumber(raw string) *NumberLit { return &NumberLit{Raw: raw} }

// NewInt is NewNumber for an integer value.
func NewInt(v int64) *NumberLit { return &NumberLit{Raw: strconv.FormatInt(v, 10)} }

func NewMember(x Expr, name string) *MemberExpr {
	return &MemberExpr{X: x, Prop: NewIdent(name)}
}

func NewIndex(x, index Expr) *MemberExpr {
	return &MemberExpr{X: x, Prop: index, Computed: true}
}

func NewCall(callee Expr, args ...Expr) *CallExpr {
	return &CallExpr{Callee: callee, Args: args}
}

func NewBinary(op string, x, y Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, X: x, Y: y}
}

func NewAssign(x, y Expr) *AssignExpr {
	return &AssignExpr{Op: "=", X: x, Y: y}
}

func NewExprStmt(x Expr) *ExprStmt { return &ExprStmt{X: x} }

func NewReturn(arg Expr) *ReturnStmt { return &ReturnStmt{Arg: arg} }

func NewThrow(arg Expr) *ThrowStmt { return &ThrowStmt{Arg: arg} }

func NewBlock(body ...Stmt) *BlockStmt { return &BlockStmt{Body: body} }

func NewProperty(key string, value Expr) *Property {
	return &Property{Key: NewIdent(key), Value: value}
}

func NewObject(props ...*Property) *ObjectLit { return &ObjectLit{Props: props} }

func NewArray(elems ...Expr) *ArrayLit { return &ArrayLit{Elems: elems} }

// NewLineComment builds a leading `//` comment; text excludes the slashes.
func NewLineComment(text string) *Comment {
	return &Comment{Text: "//" + text, Leading: true}
}

// NewBlockComment builds a leading `/* */` comment; text excludes the delimiters.
func NewBlockComment(text string) *Comment {
	return &Comment{Block: true, Text: "/*" + text + "*/", Leading: true}
}
