package parser

import (
	"reprint/internal/ast"
	"reprint/internal/cursor"
	"reprint/internal/token"
)

// binaryPrec возвращает приоритет бинарного оператора, 0: не бинарный.
// Таблица общая с cursor, чтобы расстановка скобок при печати и разбор
// совпадали.
func binaryPrec(k token.Kind) int {
	switch {
	case k == token.KwIn || k == token.KwInstanceof:
		return cursor.BinaryLevel(k.String())
	case k.IsOperator() && !k.IsAssign():
		return cursor.BinaryLevel(k.String())
	}
	return 0
}

// rightAssoc: только возведение в степень.
func rightAssoc(k token.Kind) bool {
	return k == token.StarStar
}

func makeBinary(op string, x, y ast.Expr) ast.Expr {
	switch op {
	case "&&", "||", "??":
		return &ast.LogicalExpr{Op: op, X: x, Y: y}
	}
	return &ast.BinaryExpr{Op: op, X: x, Y: y}
}
