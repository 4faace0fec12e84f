package printer

import (
	"fmt"
	"strings"

	"reprint/internal/ast"
)

// quote returns the source form of a string literal. In auto mode a parsed
// literal keeps its raw text.
func (p *Printer) quote(s *ast.StringLit) string {
	switch p.opts.Quote {
	case QuoteSingle:
		return quoteJS(s.Value, '\'')
	case QuoteDouble:
		return quoteJS(s.Value, '"')
	}
	if s.Raw != "" {
		return s.Raw
	}
	return quoteJS(s.Value, '"')
}

func quoteJS(s string, q rune) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteRune(q)
	for _, r := range s {
		switch r {
		case q, '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteRune(q)
	return b.String()
}
