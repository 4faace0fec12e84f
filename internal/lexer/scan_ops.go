package lexer

import (
	"reprint/internal/diag"
	"reprint/internal/token"
)

// multiByteOps is ordered longest first; scanOperatorOrPunct takes the first
// match.
var multiByteOps = []struct {
	text string
	kind token.Kind
}{
	{">>>=", token.UShrAssign},
	{"===", token.EqEqEq},
	{"!==", token.BangEqEq},
	{"**=", token.StarStarAssign},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{">>>", token.UShr},
	{"&&=", token.AndAndAssign},
	{"||=", token.OrOrAssign},
	{"??=", token.QuestionQAssign},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
	{"**", token.StarStar},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"??", token.QuestionQuestion},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"=>", token.Arrow},
}

var singleByteOps = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'?': token.Question,
	':': token.Colon,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'!': token.Bang,
	'~': token.Tilde,
}

// Жадность: сначала длинные последовательности, затем односимвольные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	for _, op := range multiByteOps {
		if lx.try(op.text) {
			return emit(op.kind)
		}
	}
	if k, ok := singleByteOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}

	// неизвестный символ
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return emit(token.Invalid)
}
