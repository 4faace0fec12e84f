package ast

// Kind enumerates node productions. The set is closed: every switch over
// Kind in this module is exhaustive.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Statements and declarations.
	KindFile
	KindVarDecl
	KindVarDeclarator
	KindExprStmt
	KindReturnStmt
	KindThrowStmt
	KindIfStmt
	KindBlockStmt
	KindFuncDecl
	KindEmptyStmt

	// Expressions.
	KindIdent
	KindThis
	KindNumberLit
	KindStringLit
	KindBoolLit
	KindNullLit
	KindArrayLit
	KindObjectLit
	KindProperty
	KindFuncExpr
	KindMemberExpr
	KindCallExpr
	KindNewExpr
	KindUnaryExpr
	KindBinaryExpr
	KindLogicalExpr
	KindAssignExpr
	KindCondExpr
	KindSeqExpr

	KindComment
)

var kindNames = [...]string{
	KindInvalid:       "Invalid",
	KindFile:          "File",
	KindVarDecl:       "VarDecl",
	KindVarDeclarator: "VarDeclarator",
	KindExprStmt:      "ExprStmt",
	KindReturnStmt:    "ReturnStmt",
	KindThrowStmt:     "ThrowStmt",
	KindIfStmt:        "IfStmt",
	KindBlockStmt:     "BlockStmt",
	KindFuncDecl:      "FuncDecl",
	KindEmptyStmt:     "EmptyStmt",
	KindIdent:         "Ident",
	KindThis:          "This",
	KindNumberLit:     "NumberLit",
	KindStringLit:     "StringLit",
	KindBoolLit:       "BoolLit",
	KindNullLit:       "NullLit",
	KindArrayLit:      "ArrayLit",
	KindObjectLit:     "ObjectLit",
	KindProperty:      "Property",
	KindFuncExpr:      "FuncExpr",
	KindMemberExpr:    "MemberExpr",
	KindCallExpr:      "CallExpr",
	KindNewExpr:       "NewExpr",
	KindUnaryExpr:     "UnaryExpr",
	KindBinaryExpr:    "BinaryExpr",
	KindLogicalExpr:   "LogicalExpr",
	KindAssignExpr:    "AssignExpr",
	KindCondExpr:      "CondExpr",
	KindSeqExpr:       "SeqExpr",
	KindComment:       "Comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsExpr reports whether nodes of kind k may stand in expression position.
func (k Kind) IsExpr() bool {
	return k >= KindIdent && k <= KindSeqExpr && k != KindProperty
}

// IsStmt reports whether nodes of kind k may stand in statement position.
func (k Kind) IsStmt() bool {
	switch k {
	case KindVarDecl, KindExprStmt, KindReturnStmt, KindThrowStmt, KindIfStmt, KindBlockStmt, KindFuncDecl, KindEmptyStmt:
		return true
	default:
		return false
	}
}
