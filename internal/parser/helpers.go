package parser

import (
	"fmt"

	"reprint/internal/ast"
	"reprint/internal/diag"
	"reprint/internal/source"
	"reprint/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: на EOF указываем сразу за последним токеном
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(code, diag.SevError, sp, fmt.Sprintf("%s, got %s", msg, describe(p.lx.Peek())))
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// репортует ошибку на текущем токене
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		p.errors++
		if p.opts.MaxErrors > 0 && p.errors > p.opts.MaxErrors {
			return // достигли лимита
		}
	}
	diag.NewReportBuilder(p.rep, sev, code, p.file.RangeOf(sp), msg).Emit()
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.Number, token.String:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	}
	return fmt.Sprintf("%q", tok.Text)
}

// consumeSemicolon съедает ';' или применяет автоматическую вставку: перед
// '}', EOF или после перевода строки точка с запятой не нужна.
func (p *Parser) consumeSemicolon() bool {
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	next := p.lx.Peek()
	if next.Kind == token.RBrace || next.Kind == token.EOF || next.NewlineBefore() {
		return true
	}
	p.err(diag.SynExpectSemicolon, fmt.Sprintf("expected ';', got %s", describe(next)))
	return false
}

// resyncStmt: пропускаем токены до конца оператора: ';' (съедается), '}'
// или EOF. Токен, с которого началась ошибка, съедается всегда.
func (p *Parser) resyncStmt() {
	if !p.atOr(token.EOF, token.RBrace) {
		p.advance()
	}
	for !p.atOr(token.EOF, token.RBrace) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if p.lx.Peek().NewlineBefore() {
			return
		}
		p.advance()
	}
}

// ===== Локации =====

// finish записывает span узла и ставит ему Loc. Indent проставит fixIndents.
func finish[T ast.Node](p *Parser, n T, sp source.Span) T {
	p.spans[n] = sp
	setLoc(n, &ast.Loc{Range: p.file.RangeOf(sp)})
	return n
}

func setLoc(n ast.Node, loc *ast.Loc) {
	if s, ok := n.(interface{ SetLoc(*ast.Loc) }); ok {
		s.SetLoc(loc)
	}
}

// outer возвращает span узла вместе с окружающими скобками.
func (p *Parser) outer(n ast.Node) source.Span {
	if sp, ok := p.parens[n]; ok {
		return sp
	}
	return p.spans[n]
}

// from строит span от начала узла n до последнего съеденного токена.
func (p *Parser) from(n ast.Node) source.Span {
	return source.Span{Start: p.outer(n).Start, End: p.lastSpan.End}
}

// since строит span от токена start до последнего съеденного токена.
func (p *Parser) since(start token.Token) source.Span {
	return source.Span{Start: start.Span.Start, End: p.lastSpan.End}
}

// fixIndents ставит Loc.Indent сверху вниз: узел, перед которым на строке
// одни пробелы, задаёт отступ своей колонкой, остальные наследуют отступ
// ближайшего охватывающего узла.
func (p *Parser) fixIndents(n ast.Node, inherited int) {
	indent := inherited
	if loc := n.Loc(); loc != nil {
		if p.startsLine(loc.Start) {
			indent = loc.Start.Column
		}
		loc.Indent = indent
	}
	for _, c := range n.Comments() {
		if c.Loc == nil {
			continue
		}
		c.Loc.Indent = indent
		if p.startsLine(c.Loc.Start) {
			c.Loc.Indent = c.Loc.Start.Column
		}
	}
	for _, child := range ast.Children(n) {
		p.fixIndents(child, indent)
	}
}

// startsLine reports whether only whitespace precedes pos on its line.
func (p *Parser) startsLine(pos source.Pos) bool {
	return pos.Column <= p.indentOf(pos.Line)
}

func (p *Parser) indentOf(line int) int {
	text := p.file.LineText(line)
	return source.CountSpaces(text[:source.LeadingWhitespace(text)], p.file.TabWidth)
}
