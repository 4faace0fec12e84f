package lexer

import (
	"reprint/internal/diag"
	"reprint/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.0, .5, 1e-3, разделители '_'
// и суффикс BigInt 'n'. Token.Text хранит исходную запись, ничего не
// нормализуем: перепечатка должна вернуть те же байты.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	bad := func(msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	digits := func(ok func(byte) bool) int {
		n := 0
		for b := lx.cursor.Peek(); ok(b) || b == '_'; b = lx.cursor.Peek() {
			lx.cursor.Bump()
			n++
		}
		return n
	}

	if lx.cursor.Peek() == '0' {
		var radix func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			radix = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			radix = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			radix = isHex
		}
		if radix != nil {
			lx.cursor.Advance(2)
			if digits(radix) == 0 {
				return bad("missing digits after radix prefix")
			}
			lx.cursor.Eat('n')
			return lx.finishNumber(start)
		}
	}

	intDigits := digits(isDec)
	if lx.cursor.Peek() == 'n' && intDigits > 0 {
		lx.cursor.Bump()
		return lx.finishNumber(start)
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		// "1." допустимо
		if digits(isDec) == 0 && intDigits == 0 {
			return bad("expected digit after '.'")
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if digits(isDec) == 0 {
			return bad("expected digit after exponent")
		}
	}
	return lx.finishNumber(start)
}

// finishNumber rejects an identifier glued to the literal ("3in", "1x").
func (lx *Lexer) finishNumber(start Mark) token.Token {
	if b := lx.cursor.Peek(); isIdentStartByte(b) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "identifier starts immediately after numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: lx.text(sp)}
}
