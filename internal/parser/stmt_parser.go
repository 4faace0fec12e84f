package parser

import (
	"fmt"

	"reprint/internal/ast"
	"reprint/internal/diag"
	"reprint/internal/token"
)

// parseStmtList разбирает операторы до closer (EOF или '}'), привязывая
// комментарии: всё перед оператором: leading, хвост его строки: trailing.
func (p *Parser) parseStmtList(closer token.Kind) []ast.Stmt {
	var out []ast.Stmt
	for !p.atOr(closer, token.EOF) && !p.enough() {
		if p.at(token.RBrace) {
			p.err(diag.SynUnexpectedToken, "unexpected '}'")
			p.advance()
			continue
		}
		lead := p.takeLeading()
		st := p.parseStmt()
		if st == nil {
			p.resyncStmt()
			continue
		}
		attach(st, lead)
		attach(st, p.takeTrailing(closer))
		out = append(out, st)
	}
	return out
}

// parseStmt выбирает распознаватель по первому токену.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.lx.Peek().Kind {
	case token.KwVar, token.KwLet, token.KwConst:
		return nilStmt(p.parseVarDecl())
	case token.KwFunction:
		return nilStmt(p.parseFuncDecl())
	case token.KwReturn:
		return nilStmt(p.parseReturn())
	case token.KwThrow:
		return nilStmt(p.parseThrow())
	case token.KwIf:
		return nilStmt(p.parseIf())
	case token.LBrace:
		return nilStmt(p.parseBlock())
	case token.Semicolon:
		tok := p.advance()
		return finish(p, &ast.EmptyStmt{}, tok.Span)
	default:
		return nilStmt(p.parseExprStmt())
	}
}

// nilStmt не даёт типизированному nil просочиться в интерфейс.
func nilStmt[T interface {
	ast.Stmt
	comparable
}](s T) ast.Stmt {
	var zero T
	if s == zero {
		return nil
	}
	return s
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	kw := p.advance()
	d := &ast.VarDecl{Keyword: kw.Text}
	for {
		decl := p.parseDeclarator()
		if decl == nil {
			return nil
		}
		d.Decls = append(d.Decls, decl)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if !p.consumeSemicolon() {
		return nil
	}
	return finish(p, d, p.since(kw))
}

func (p *Parser) parseDeclarator() *ast.VarDeclarator {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name")
	if !ok {
		return nil
	}
	d := &ast.VarDeclarator{Name: finish(p, &ast.Ident{Name: nameTok.Text}, nameTok.Span)}
	if p.at(token.Assign) {
		p.advance()
		init := p.parseAssign()
		if init == nil {
			return nil
		}
		d.Init = init
	}
	return finish(p, d, p.since(nameTok))
}

func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	kw := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return nil
	}
	fd := &ast.FuncDecl{Name: finish(p, &ast.Ident{Name: nameTok.Text}, nameTok.Span)}
	if fd.Params, ok = p.parseParams(); !ok {
		return nil
	}
	if fd.Body = p.parseBlock(); fd.Body == nil {
		return nil
	}
	return finish(p, fd, p.since(kw))
}

// parseThrow: перевод строки после throw недопустим.
func (p *Parser) parseThrow() *ast.ThrowStmt {
	kw := p.advance()
	if p.lx.Peek().NewlineBefore() {
		p.err(diag.SynExpectExpression, "illegal newline after throw")
		return nil
	}
	t := &ast.ThrowStmt{}
	if t.Arg = p.parseExpr(); t.Arg == nil {
		return nil
	}
	if !p.consumeSemicolon() {
		return nil
	}
	return finish(p, t, p.since(kw))
}

// parseReturn: аргумент обязан начинаться на той же строке, что и return.
func (p *Parser) parseReturn() *ast.ReturnStmt {
	kw := p.advance()
	r := &ast.ReturnStmt{}
	if next := p.lx.Peek(); !next.NewlineBefore() && !p.atOr(token.Semicolon, token.RBrace, token.EOF) {
		if r.Arg = p.parseExpr(); r.Arg == nil {
			return nil
		}
	}
	if !p.consumeSemicolon() {
		return nil
	}
	return finish(p, r, p.since(kw))
}

func (p *Parser) parseIf() *ast.IfStmt {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after if"); !ok {
		return nil
	}
	st := &ast.IfStmt{Test: p.parseExpr()}
	if st.Test == nil {
		return nil
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return nil
	}
	if st.Then = p.parseStmt(); st.Then == nil {
		return nil
	}
	if p.at(token.KwElse) {
		p.advance()
		if st.Else = p.parseStmt(); st.Else == nil {
			return nil
		}
	}
	return finish(p, st, p.since(kw))
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	lb, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return nil
	}
	body := p.parseStmtList(token.RBrace)
	attachDangling(p, body, p.lx.Peek())
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, fmt.Sprintf("expected '}' to close block at %s", p.file.RangeOf(lb.Span).Start)); !ok {
		return nil
	}
	return finish(p, &ast.BlockStmt{Body: body}, p.since(lb))
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	x := p.parseExpr()
	if x == nil {
		return nil
	}
	if !p.consumeSemicolon() {
		return nil
	}
	return finish(p, &ast.ExprStmt{X: x}, p.from(x))
}
