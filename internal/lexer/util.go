package lexer

import (
	"unicode"
	"unicode/utf8"
)

// ===== Работа с рунами поверх Cursor =====

func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Advance(sz)
}

// ===== Классификаторы =====

func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}
func isIdentStartRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// ===== Матчеры последовательностей операторов (жадность) =====

// try пробует съесть s целиком.
func (lx *Lexer) try(s string) bool {
	for i := 0; i < len(s); i++ {
		if lx.cursor.PeekAt(uint32(i)) != s[i] {
			return false
		}
	}
	lx.cursor.Advance(len(s))
	return true
}
