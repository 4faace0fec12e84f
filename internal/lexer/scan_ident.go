package lexer

import (
	"reprint/internal/diag"
	"reprint/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.bumpRune()
	for {
		if b := lx.cursor.Peek(); b < utf8RuneSelf {
			if b == 0 || !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
