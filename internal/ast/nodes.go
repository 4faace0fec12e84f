package ast

// File is the root of a parsed program.
type File struct {
	Base
	Body []Stmt
}

// VarDecl is a var, let or const declaration.
type VarDecl struct {
	Base
	Keyword string
	Decls   []*VarDeclarator
}

// VarDeclarator is one `name = init` binding of a VarDecl. Init may be nil.
type VarDeclarator struct {
	Base
	Name *Ident
	Init Expr
}

type ExprStmt struct {
	Base
	X Expr
}

// ReturnStmt is `return` with an optional argument.
type ReturnStmt struct {
	Base
	Arg Expr
}

// ThrowStmt is `throw` with its required argument.
type ThrowStmt struct {
	Base
	Arg Expr
}

// IfStmt has an optional Else branch.
type IfStmt struct {
	Base
	Test Expr
	Then Stmt
	Else Stmt
}

type BlockStmt struct {
	Base
	Body []Stmt
}

type FuncDecl struct {
	Base
	Name   *Ident
	Params []*Ident
	Body   *BlockStmt
}

type EmptyStmt struct {
	Base
}

type Ident struct {
	Base
	Name string
}

type This struct {
	Base
}

// NumberLit keeps the literal as written.
type NumberLit struct {
	Base
	Raw string
}

// StringLit holds the decoded value and, for parsed literals, the raw text
// including quotes. Raw is dropped whenever Value is changed by a builder.
type StringLit struct {
	Base
	Value string
	Raw   string
}

type BoolLit struct {
	Base
	Value bool
}

type NullLit struct {
	Base
}

type ArrayLit struct {
	Base
	Elems []Expr
}

type ObjectLit struct {
	Base
	Props []*Property
}

// Property is a `key: value` entry of an object literal. Key is an Ident,
// StringLit or NumberLit.
type Property struct {
	Base
	Key   Expr
	Value Expr
}

// FuncExpr is a function expression; Name may be nil.
type FuncExpr struct {
	Base
	Name   *Ident
	Params []*Ident
	Body   *BlockStmt
}

// MemberExpr is `X.Prop` or, when Computed, `X[Prop]`.
type MemberExpr struct {
	Base
	X        Expr
	Prop     Expr
	Computed bool
}

type CallExpr struct {
	Base
	Callee Expr
	Args   []Expr
}

type NewExpr struct {
	Base
	Callee Expr
	Args   []Expr
}

// UnaryExpr is a prefix operator: ! - + ~ typeof void delete.
type UnaryExpr struct {
	Base
	Op string
	X  Expr
}

type BinaryExpr struct {
	Base
	Op string
	X  Expr
	Y  Expr
}

// LogicalExpr is one of && || ??.
type LogicalExpr struct {
	Base
	Op string
	X  Expr
	Y  Expr
}

// AssignExpr covers = and the compound assignment operators.
type AssignExpr struct {
	Base
	Op string
	X  Expr
	Y  Expr
}

type CondExpr struct {
	Base
	Test Expr
	Cons Expr
	Alt  Expr
}

type SeqExpr struct {
	Base
	List []Expr
}

func (*File) Kind() Kind          { return KindFile }
func (*VarDecl) Kind() Kind       { return KindVarDecl }
func (*VarDeclarator) Kind() Kind { return KindVarDeclarator }
func (*ExprStmt) Kind() Kind      { return KindExprStmt }
func (*ReturnStmt) Kind() Kind    { return KindReturnStmt }
func (*ThrowStmt) Kind() Kind     { return KindThrowStmt }
func (*IfStmt) Kind() Kind        { return KindIfStmt }
func (*BlockStmt) Kind() Kind     { return KindBlockStmt }
func (*FuncDecl) Kind() Kind      { return KindFuncDecl }
func (*EmptyStmt) Kind() Kind     { return KindEmptyStmt }
func (*Ident) Kind() Kind         { return KindIdent }
func (*This) Kind() Kind          { return KindThis }
func (*NumberLit) Kind() Kind     { return KindNumberLit }
func (*StringLit) Kind() Kind     { return KindStringLit }
func (*BoolLit) Kind() Kind       { return KindBoolLit }
func (*NullLit) Kind() Kind       { return KindNullLit }
func (*ArrayLit) Kind() Kind      { return KindArrayLit }
func (*ObjectLit) Kind() Kind     { return KindObjectLit }
func (*Property) Kind() Kind      { return KindProperty }
func (*FuncExpr) Kind() Kind      { return KindFuncExpr }
func (*MemberExpr) Kind() Kind    { return KindMemberExpr }
func (*CallExpr) Kind() Kind      { return KindCallExpr }
func (*NewExpr) Kind() Kind       { return KindNewExpr }
func (*UnaryExpr) Kind() Kind     { return KindUnaryExpr }
func (*BinaryExpr) Kind() Kind    { return KindBinaryExpr }
func (*LogicalExpr) Kind() Kind   { return KindLogicalExpr }
func (*AssignExpr) Kind() Kind    { return KindAssignExpr }
func (*CondExpr) Kind() Kind      { return KindCondExpr }
func (*SeqExpr) Kind() Kind       { return KindSeqExpr }

func (*VarDecl) stmtNode()    {}
func (*ExprStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode() {}
func (*ThrowStmt) stmtNode()  {}
func (*IfStmt) stmtNode()     {}
func (*BlockStmt) stmtNode()  {}
func (*FuncDecl) stmtNode()   {}
func (*EmptyStmt) stmtNode()  {}

func (*Ident) exprNode()       {}
func (*This) exprNode()        {}
func (*NumberLit) exprNode()   {}
func (*StringLit) exprNode()   {}
func (*BoolLit) exprNode()     {}
func (*NullLit) exprNode()     {}
func (*ArrayLit) exprNode()    {}
func (*ObjectLit) exprNode()   {}
func (*FuncExpr) exprNode()    {}
func (*MemberExpr) exprNode()  {}
func (*CallExpr) exprNode()    {}
func (*NewExpr) exprNode()     {}
func (*UnaryExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}
func (*LogicalExpr) exprNode() {}
func (*AssignExpr) exprNode()  {}
func (*CondExpr) exprNode()    {}
func (*SeqExpr) exprNode()     {}
