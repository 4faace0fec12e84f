package lexer

import (
	"reprint/internal/diag"
	"reprint/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - пробелы, табы, BOM и nbsp коалесцируются в один TriviaSpace
//   - подряд идущие переводы строк (\n, \r, U+2028, U+2029): в один TriviaNewline
//   - //... до конца строки -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (без вложенности; если не закрыт: репорт и обрезаем на EOF)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()

		if lx.spaceWidth() > 0 {
			for n := lx.spaceWidth(); n > 0; n = lx.spaceWidth() {
				lx.cursor.Advance(n)
			}
			lx.push(token.TriviaSpace, start)
			continue
		}

		if lx.newlineWidth() > 0 {
			for n := lx.newlineWidth(); n > 0; n = lx.newlineWidth() {
				lx.cursor.Advance(n)
			}
			lx.push(token.TriviaNewline, start)
			continue
		}

		if lx.cursor.Peek() == '/' && lx.scanComment() {
			continue
		}

		// нет больше trivia
		break
	}
}

func (lx *Lexer) push(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// spaceWidth returns the byte length of the horizontal whitespace at the
// cursor, 0 when there is none.
func (lx *Lexer) spaceWidth() int {
	switch b := lx.cursor.Peek(); b {
	case ' ', '\t', '\v', '\f':
		return 1
	case 0xC2:
		if lx.cursor.PeekAt(1) == 0xA0 {
			return 2
		}
	case 0xEF:
		if lx.cursor.PeekAt(1) == 0xBB && lx.cursor.PeekAt(2) == 0xBF {
			return 3
		}
	}
	return 0
}

// newlineWidth returns the byte length of the line terminator at the cursor.
func (lx *Lexer) newlineWidth() int {
	switch lx.cursor.Peek() {
	case '\n':
		return 1
	case '\r':
		if lx.cursor.PeekAt(1) == '\n' {
			return 2
		}
		return 1
	case 0xE2:
		if lx.cursor.PeekAt(1) == 0x80 {
			if b := lx.cursor.PeekAt(2); b == 0xA8 || b == 0xA9 {
				return 3
			}
		}
	}
	return 0
}

// //... , /*...*/
func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/':
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.newlineWidth() == 0 {
			lx.cursor.Bump()
		}
		lx.push(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
				lx.cursor.Advance(2)
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.push(token.TriviaBlockComment, start)
		return true

	default:
		// это не комментарий: пусть сканируется как оператор '/'
		lx.cursor.Reset(start)
		return false
	}
}
