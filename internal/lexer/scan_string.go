package lexer

import (
	"reprint/internal/diag"
	"reprint/internal/token"
)

// scanString читает литерал в кавычках quote (' или "). Escape-последовательности
// не декодируются здесь: Text хранит сырой литерал вместе с кавычками,
// значение получает парсер. "\\" перед переводом строки: продолжение строки.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if n := lx.newlineWidth(); n > 0 {
				lx.cursor.Advance(n)
				continue
			}
			lx.bumpRune()
			continue
		}
		if b == '\n' || b == '\r' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
