package lexer

import (
	"fmt"

	"reprint/internal/diag"
	"reprint/internal/source"
	"reprint/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF; trivia перед концом файла
// приклеиваются к EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.hold}
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// Возможный Unicode идентификатор
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)

	default:
		tok = lx.scanOperatorOrPunct()
	}

	if limit := lx.opts.MaxTokenLen; limit > 0 && int(tok.Span.Len()) > limit {
		lx.errLex(diag.LexTokenTooLong, tok.Span, fmt.Sprintf("token longer than %d bytes", limit))
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All scans the whole file, EOF included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
