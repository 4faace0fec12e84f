package token

import (
	"testing"

	"reprint/internal/source"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"var":        KwVar,
		"function":   KwFunction,
		"return":     KwReturn,
		"throw":      KwThrow,
		"this":       KwThis,
		"instanceof": KwInstanceof,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v %v, want %v", lexeme, got, ok, want)
		}
		if !got.IsKeyword() {
			t.Fatalf("%v should be keyword", got)
		}
	}
	for _, s := range []string{"This", "VAR", "exports", "self", "undefined"} {
		if k, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want !ok", s, k)
		}
	}
}

func TestKindClasses(t *testing.T) {
	for _, k := range []Kind{Assign, PlusAssign, UShrAssign, QuestionQAssign} {
		if !k.IsAssign() {
			t.Fatalf("%v should be assignment", k)
		}
	}
	for _, k := range []Kind{EqEq, EqEqEq, Plus, Ident, KwIn} {
		if k.IsAssign() {
			t.Fatalf("%v must NOT be assignment", k)
		}
	}
	if !LParen.IsOperator() || !Arrow.IsOperator() || Ident.IsOperator() {
		t.Fatalf("IsOperator bounds are wrong")
	}
	if got := StarStarAssign.String(); got != "**=" {
		t.Fatalf("want %q got %q", "**=", got)
	}
}

func TestNewlineBefore(t *testing.T) {
	sp := source.Span{}
	tests := []struct {
		name    string
		leading []Trivia
		want    bool
	}{
		{"none", nil, false},
		{"space", []Trivia{{Kind: TriviaSpace, Span: sp, Text: " "}}, false},
		{"newline", []Trivia{{Kind: TriviaNewline, Span: sp, Text: "\n"}}, true},
		{"line comment only", []Trivia{{Kind: TriviaLineComment, Span: sp, Text: "// x"}}, false},
		{"multi-line block", []Trivia{{Kind: TriviaBlockComment, Span: sp, Text: "/* a\nb */"}}, true},
	}
	for _, tt := range tests {
		tok := Token{Kind: Ident, Text: "x", Leading: tt.leading}
		if got := tok.NewlineBefore(); got != tt.want {
			t.Fatalf("%s: want %v got %v", tt.name, tt.want, got)
		}
	}
}
