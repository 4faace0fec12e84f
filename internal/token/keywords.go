package token

var keywords = map[string]Kind{
	"var":        KwVar,
	"let":        KwLet,
	"const":      KwConst,
	"function":   KwFunction,
	"return":     KwReturn,
	"throw":      KwThrow,
	"if":         KwIf,
	"else":       KwElse,
	"new":        KwNew,
	"this":       KwThis,
	"null":       KwNull,
	"true":       KwTrue,
	"false":      KwFalse,
	"typeof":     KwTypeof,
	"void":       KwVoid,
	"delete":     KwDelete,
	"in":         KwIn,
	"instanceof": KwInstanceof,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwVar && k <= KwInstanceof
}
