package token

import (
	"reprint/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a number, string, boolean or null.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// NewlineBefore reports whether a line break separates the token from the
// previous one. Line breaks inside block comments count too.
func (t Token) NewlineBefore() bool {
	for _, tv := range t.Leading {
		switch tv.Kind {
		case TriviaNewline:
			return true
		case TriviaBlockComment:
			if hasLineBreak(tv.Text) {
				return true
			}
		}
	}
	return false
}

func hasLineBreak(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return true
		}
	}
	return false
}
