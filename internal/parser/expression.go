package parser

import (
	"fmt"

	"reprint/internal/ast"
	"reprint/internal/diag"
	"reprint/internal/token"
)

// parseExpr: выражение с запятой (SeqExpr).
func (p *Parser) parseExpr() ast.Expr {
	x := p.parseAssign()
	if x == nil || !p.at(token.Comma) {
		return x
	}
	seq := &ast.SeqExpr{List: []ast.Expr{x}}
	for p.at(token.Comma) {
		p.advance()
		y := p.parseAssign()
		if y == nil {
			return nil
		}
		seq.List = append(seq.List, y)
	}
	return finish(p, seq, p.from(x))
}

// parseAssign: присваивание правоассоциативно.
func (p *Parser) parseAssign() ast.Expr {
	x := p.parseCond()
	if x == nil {
		return nil
	}
	op := p.lx.Peek()
	if !op.Kind.IsAssign() {
		return x
	}
	switch x.(type) {
	case *ast.Ident, *ast.MemberExpr:
	default:
		p.err(diag.SynInvalidAssignTarget, fmt.Sprintf("invalid left-hand side in assignment before %q", op.Text))
		return nil
	}
	p.advance()
	y := p.parseAssign()
	if y == nil {
		return nil
	}
	return finish(p, &ast.AssignExpr{Op: op.Text, X: x, Y: y}, p.from(x))
}

func (p *Parser) parseCond() ast.Expr {
	test := p.parseBinary(1)
	if test == nil || !p.at(token.Question) {
		return test
	}
	p.advance()
	cons := p.parseAssign()
	if cons == nil {
		return nil
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression"); !ok {
		return nil
	}
	alt := p.parseAssign()
	if alt == nil {
		return nil
	}
	return finish(p, &ast.CondExpr{Test: test, Cons: cons, Alt: alt}, p.from(test))
}

// parseBinary: precedence climbing: операторы с приоритетом >= minPrec.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	x := p.parseUnary()
	if x == nil {
		return nil
	}
	for {
		op := p.lx.Peek()
		prec := binaryPrec(op.Kind)
		if prec == 0 || prec < minPrec {
			return x
		}
		p.advance()
		next := prec + 1
		if rightAssoc(op.Kind) {
			next = prec
		}
		y := p.parseBinary(next)
		if y == nil {
			return nil
		}
		x = finish(p, makeBinary(op.Text, x, y), p.from(x))
	}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Bang, token.Minus, token.Plus, token.Tilde, token.KwTypeof, token.KwVoid, token.KwDelete:
		p.advance()
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		return finish(p, &ast.UnaryExpr{Op: tok.Text, X: x}, p.since(tok))
	case token.PlusPlus, token.MinusMinus:
		p.err(diag.SynUnexpectedToken, fmt.Sprintf("update operator %q is not supported", tok.Text))
		return nil
	}
	x := p.parsePostfix()
	if next := p.lx.Peek(); x != nil && (next.Kind == token.PlusPlus || next.Kind == token.MinusMinus) && !next.NewlineBefore() {
		p.err(diag.SynUnexpectedToken, fmt.Sprintf("update operator %q is not supported", next.Text))
		return nil
	}
	return x
}

func (p *Parser) parsePostfix() ast.Expr {
	var x ast.Expr
	if p.at(token.KwNew) {
		x = p.parseNew()
	} else {
		x = p.parsePrimary()
	}
	if x == nil {
		return nil
	}
	return p.parseSuffixes(x, true)
}

// parseSuffixes навешивает .name, [index] и, если allowCall, (args).
func (p *Parser) parseSuffixes(x ast.Expr, allowCall bool) ast.Expr {
	for {
		switch p.lx.Peek().Kind {
		case token.Dot:
			p.advance()
			name := p.parsePropertyName()
			if name == nil {
				return nil
			}
			x = finish(p, &ast.MemberExpr{X: x, Prop: name}, p.from(x))
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			if idx == nil {
				return nil
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
				return nil
			}
			x = finish(p, &ast.MemberExpr{X: x, Prop: idx, Computed: true}, p.from(x))
		case token.LParen:
			if !allowCall {
				return x
			}
			args, ok := p.parseArgs()
			if !ok {
				return nil
			}
			x = finish(p, &ast.CallExpr{Callee: x, Args: args}, p.from(x))
		default:
			return x
		}
	}
}

// parseNew: new Callee[(args)]; вызов внутри callee не разбирается.
func (p *Parser) parseNew() ast.Expr {
	kw := p.advance()
	var callee ast.Expr
	if p.at(token.KwNew) {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	if callee == nil {
		return nil
	}
	if callee = p.parseSuffixes(callee, false); callee == nil {
		return nil
	}
	n := &ast.NewExpr{Callee: callee}
	if p.at(token.LParen) {
		args, ok := p.parseArgs()
		if !ok {
			return nil
		}
		n.Args = args
	}
	return finish(p, n, p.since(kw))
}

func (p *Parser) parseArgs() ([]ast.Expr, bool) {
	p.advance() // '('
	return parseList(p, token.RParen, diag.SynUnclosedParen, p.parseElem)
}

func (p *Parser) parseElem() (ast.Expr, bool) {
	x := p.parseAssign()
	return x, x != nil
}

// parseList разбирает элементы через запятую до closer и съедает его.
// Висячая запятая разрешена.
func parseList[T ast.Node](p *Parser, closer token.Kind, code diag.Code, elem func() (T, bool)) ([]T, bool) {
	var out []T
	for !p.at(closer) {
		lead := p.takeLeading()
		x, ok := elem()
		if !ok {
			return nil, false
		}
		attach(x, lead)
		out = append(out, x)
		if !p.at(token.Comma) {
			attach(x, p.takeTrailing(closer))
			break
		}
		p.advance()
		attach(x, p.takeTrailing(closer))
	}
	attachDangling(p, out, p.lx.Peek())
	if _, ok := p.expect(closer, code, fmt.Sprintf("expected '%s'", closer)); !ok {
		return nil, false
	}
	return out, true
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return finish(p, &ast.Ident{Name: tok.Text}, tok.Span)
	case token.KwThis:
		p.advance()
		return finish(p, &ast.This{}, tok.Span)
	case token.KwNull:
		p.advance()
		return finish(p, &ast.NullLit{}, tok.Span)
	case token.KwTrue, token.KwFalse:
		p.advance()
		return finish(p, &ast.BoolLit{Value: tok.Kind == token.KwTrue}, tok.Span)
	case token.Number:
		p.advance()
		return finish(p, &ast.NumberLit{Raw: tok.Text}, tok.Span)
	case token.String:
		return p.parseString()
	case token.LParen:
		p.advance()
		x := p.parseExpr()
		if x == nil {
			return nil
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return nil
		}
		p.parens[x] = p.since(tok)
		return x
	case token.LBracket:
		p.advance()
		elems, ok := parseList(p, token.RBracket, diag.SynUnclosedBracket, p.parseElem)
		if !ok {
			return nil
		}
		return finish(p, &ast.ArrayLit{Elems: elems}, p.since(tok))
	case token.LBrace:
		p.advance()
		props, ok := parseList(p, token.RBrace, diag.SynUnclosedBrace, p.parseProperty)
		if !ok {
			return nil
		}
		return finish(p, &ast.ObjectLit{Props: props}, p.since(tok))
	case token.KwFunction:
		return p.parseFuncExpr()
	}
	p.err(diag.SynExpectExpression, fmt.Sprintf("expected expression, got %s", describe(tok)))
	return nil
}

func (p *Parser) parseString() ast.Expr {
	tok := p.advance()
	value, err := decodeString(tok.Text)
	if err != nil {
		p.report(diag.LexBadEscape, diag.SevError, tok.Span, err.Error())
		return nil
	}
	return finish(p, &ast.StringLit{Value: value, Raw: tok.Text}, tok.Span)
}

func (p *Parser) parseProperty() (*ast.Property, bool) {
	start := p.lx.Peek()
	var key ast.Expr
	switch {
	case start.Kind == token.String:
		if key = p.parseString(); key == nil {
			return nil, false
		}
	case start.Kind == token.Number:
		p.advance()
		key = finish(p, &ast.NumberLit{Raw: start.Text}, start.Span)
	default:
		name := p.parsePropertyName()
		if name == nil {
			return nil, false
		}
		key = name
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after property key"); !ok {
		return nil, false
	}
	value := p.parseAssign()
	if value == nil {
		return nil, false
	}
	return finish(p, &ast.Property{Key: key, Value: value}, p.since(start)), true
}

// parsePropertyName: идентификатор или ключевое слово после '.' и в ключах.
func (p *Parser) parsePropertyName() *ast.Ident {
	tok := p.lx.Peek()
	if tok.Kind != token.Ident && !tok.Kind.IsKeyword() {
		p.err(diag.SynExpectIdentifier, fmt.Sprintf("expected property name, got %s", describe(tok)))
		return nil
	}
	p.advance()
	return finish(p, &ast.Ident{Name: tok.Text}, tok.Span)
}

func (p *Parser) parseFuncExpr() ast.Expr {
	kw := p.advance()
	fe := &ast.FuncExpr{}
	if p.at(token.Ident) {
		tok := p.advance()
		fe.Name = finish(p, &ast.Ident{Name: tok.Text}, tok.Span)
	}
	var ok bool
	if fe.Params, ok = p.parseParams(); !ok {
		return nil
	}
	if fe.Body = p.parseBlock(); fe.Body == nil {
		return nil
	}
	return finish(p, fe, p.since(kw))
}

func (p *Parser) parseParams() ([]*ast.Ident, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before parameters"); !ok {
		return nil, false
	}
	return parseList(p, token.RParen, diag.SynUnclosedParen, func() (*ast.Ident, bool) {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return nil, false
		}
		return finish(p, &ast.Ident{Name: tok.Text}, tok.Span), true
	})
}
