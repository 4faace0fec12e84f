package printer

import (
	"reprint/internal/ast"
	"reprint/internal/lines"
)

func (p *Printer) withComments(n ast.Node, body *lines.Lines) *lines.Lines {
	out := p.leading(n, body)
	if tr := p.trailing(n); tr != nil {
		out = lines.Join(out, tr)
	}
	return out
}

// leading puts the leading comments of n in front of body. A line comment
// always ends its line; a block comment stays on the node's line when it
// was there in the source.
func (p *Printer) leading(n ast.Node, body *lines.Lines) *lines.Lines {
	cs := ast.LeadingComments(n)
	if len(cs) == 0 {
		return body
	}
	parts := make([]*lines.Lines, 0, 2*len(cs)+1)
	for i, c := range cs {
		parts = append(parts, p.commentText(c))
		nextLine, ok := 0, false
		if i+1 < len(cs) && cs[i+1].Loc != nil {
			nextLine, ok = cs[i+1].Loc.Start.Line, true
		} else if i+1 == len(cs) && n.Loc() != nil {
			nextLine, ok = n.Loc().Start.Line, true
		}
		switch {
		case c.Block && c.Loc != nil && ok && c.Loc.End.Line == nextLine:
			parts = append(parts, p.text(" "))
		case c.Loc != nil && ok && nextLine-c.Loc.End.Line > 1:
			parts = append(parts, p.text("\n\n"))
		default:
			parts = append(parts, p.newline())
		}
	}
	parts = append(parts, body)
	return lines.Join(parts...)
}

// trailing renders the trailing comments of n, each preceded by a space;
// nil when there are none.
func (p *Printer) trailing(n ast.Node) *lines.Lines {
	cs := ast.TrailingComments(n)
	if len(cs) == 0 {
		return nil
	}
	parts := make([]any, 0, 2*len(cs))
	for _, c := range cs {
		parts = append(parts, " ", p.commentText(c))
	}
	return p.concat(parts...)
}

func (p *Printer) commentText(c *ast.Comment) *lines.Lines {
	text := p.text(c.Text)
	if c.Block {
		return text.LockIndentTail()
	}
	return text
}
