package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	Number
	String

	KwVar      // var
	KwLet      // let
	KwConst    // const
	KwFunction // function
	KwReturn   // return
	KwThrow    // throw
	KwIf       // if
	KwElse     // else
	KwNew      // new
	KwThis     // this
	KwNull     // null
	KwTrue     // true
	KwFalse    // false
	KwTypeof   // typeof
	KwVoid     // void
	KwDelete   // delete
	KwIn       // in
	KwInstanceof

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Question  // ?
	Colon     // :

	Assign           // =
	PlusAssign       // +=
	MinusAssign      // -=
	StarAssign       // *=
	SlashAssign      // /=
	PercentAssign    // %=
	StarStarAssign   // **=
	ShlAssign        // <<=
	ShrAssign        // >>=
	UShrAssign       // >>>=
	AmpAssign        // &=
	PipeAssign       // |=
	CaretAssign      // ^=
	AndAndAssign     // &&=
	OrOrAssign       // ||=
	QuestionQAssign  // ??=
	EqEq             // ==
	BangEq           // !=
	EqEqEq           // ===
	BangEqEq         // !==
	Lt               // <
	LtEq             // <=
	Gt               // >
	GtEq             // >=
	Shl              // <<
	Shr              // >>
	UShr             // >>>
	Plus             // +
	Minus            // -
	Star             // *
	StarStar         // **
	Slash            // /
	Percent          // %
	Amp              // &
	Pipe             // |
	Caret            // ^
	Bang             // !
	Tilde            // ~
	AndAnd           // &&
	OrOr             // ||
	QuestionQuestion // ??
	PlusPlus         // ++
	MinusMinus       // --
	Arrow            // =>
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	Number:           "Number",
	String:           "String",
	KwVar:            "var",
	KwLet:            "let",
	KwConst:          "const",
	KwFunction:       "function",
	KwReturn:         "return",
	KwThrow:          "throw",
	KwIf:             "if",
	KwElse:           "else",
	KwNew:            "new",
	KwThis:           "this",
	KwNull:           "null",
	KwTrue:           "true",
	KwFalse:          "false",
	KwTypeof:         "typeof",
	KwVoid:           "void",
	KwDelete:         "delete",
	KwIn:             "in",
	KwInstanceof:     "instanceof",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
	Semicolon:        ";",
	Comma:            ",",
	Dot:              ".",
	Question:         "?",
	Colon:            ":",
	Assign:           "=",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	StarStarAssign:   "**=",
	ShlAssign:        "<<=",
	ShrAssign:        ">>=",
	UShrAssign:       ">>>=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	AndAndAssign:     "&&=",
	OrOrAssign:       "||=",
	QuestionQAssign:  "??=",
	EqEq:             "==",
	BangEq:           "!=",
	EqEqEq:           "===",
	BangEqEq:         "!==",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Shl:              "<<",
	Shr:              ">>",
	UShr:             ">>>",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	StarStar:         "**",
	Slash:            "/",
	Percent:          "%",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Bang:             "!",
	Tilde:            "~",
	AndAnd:           "&&",
	OrOr:             "||",
	QuestionQuestion: "??",
	PlusPlus:         "++",
	MinusMinus:       "--",
	Arrow:            "=>",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsAssign reports whether k is "=" or a compound assignment operator.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= QuestionQAssign
}

// IsOperator reports whether k is an operator or punctuation.
func (k Kind) IsOperator() bool {
	return k >= LParen && k <= Arrow
}
