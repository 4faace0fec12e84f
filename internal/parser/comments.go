package parser

import (
	"reprint/internal/ast"
	"reprint/internal/token"
)

// Комментарии привязываются к элементам списков: операторам, свойствам
// объектов, элементам массивов и аргументам вызовов. Комментарий внутри
// выражения остаётся непривязанным и живёт только в исходном тексте.

// takeLeading забирает ещё не привязанные комментарии перед следующим токеном.
func (p *Parser) takeLeading() []*ast.Comment {
	var out []*ast.Comment
	for _, tv := range p.lx.Peek().Leading {
		if !tv.IsComment() || p.used[tv.Span.Start] {
			continue
		}
		p.used[tv.Span.Start] = true
		out = append(out, p.comment(tv, true))
	}
	return out
}

// takeTrailing забирает комментарии, которые стоят в конце строки, где
// закончился предыдущий элемент: до первого перевода строки, при условии что
// после них строка кончается или идёт закрывающий токен closer.
func (p *Parser) takeTrailing(closer token.Kind) []*ast.Comment {
	next := p.lx.Peek()
	var cand []token.Trivia
	lineEnds := next.Kind == closer || next.Kind == token.EOF
	for _, tv := range next.Leading {
		if tv.Kind == token.TriviaNewline {
			lineEnds = true
			break
		}
		if tv.IsComment() && !p.used[tv.Span.Start] {
			cand = append(cand, tv)
		}
	}
	if len(cand) == 0 || !lineEnds {
		return nil
	}
	out := make([]*ast.Comment, 0, len(cand))
	for _, tv := range cand {
		p.used[tv.Span.Start] = true
		out = append(out, p.comment(tv, false))
	}
	return out
}

// attachDangling привязывает комментарии перед закрывающим токеном к
// последнему элементу списка как trailing.
func attachDangling[T ast.Node](p *Parser, elems []T, closer token.Token) {
	if len(elems) == 0 {
		return
	}
	last := elems[len(elems)-1]
	for _, tv := range closer.Leading {
		if !tv.IsComment() || p.used[tv.Span.Start] {
			continue
		}
		p.used[tv.Span.Start] = true
		ast.AddComment(last, p.comment(tv, false))
	}
}

func (p *Parser) comment(tv token.Trivia, leading bool) *ast.Comment {
	return &ast.Comment{
		Block:    tv.Kind == token.TriviaBlockComment,
		Text:     tv.Text,
		Leading:  leading,
		Trailing: !leading,
		Loc:      &ast.Loc{Range: p.file.RangeOf(tv.Span)},
	}
}

func attach(n ast.Node, cs []*ast.Comment) {
	for _, c := range cs {
		ast.AddComment(n, c)
	}
}
