package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexBadEscape                Code = 1006

	// Парсерные
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnclosedParen       Code = 2002
	SynUnclosedBrace       Code = 2003
	SynUnclosedBracket     Code = 2004
	SynExpectSemicolon     Code = 2005
	SynExpectIdentifier    Code = 2006
	SynExpectExpression    Code = 2007
	SynExpectColon         Code = 2008
	SynInvalidAssignTarget Code = 2009
	SynTrailingInput       Code = 2010

	// Перепечатка
	PrintInfo      Code = 3000
	PrintFallback  Code = 3001
	PrintContract  Code = 3002
	PrintRoundTrip Code = 3003

	// Ввод-вывод и конфигурация
	IOLoadFileError   Code = 4001
	ConfigBadValue    Code = 4002
	ConfigUnknownRule Code = 4003

	// Наблюдаемость
	ObsInfo    Code = 5000
	ObsTimings Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid number literal",
	LexTokenTooLong:             "Token too long",
	LexBadEscape:                "Invalid escape sequence",

	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynUnclosedParen:       "Unclosed parenthesis",
	SynUnclosedBrace:       "Unclosed brace",
	SynUnclosedBracket:     "Unclosed bracket",
	SynExpectSemicolon:     "Expect semicolon",
	SynExpectIdentifier:    "Expect identifier",
	SynExpectExpression:    "Expect expression",
	SynExpectColon:         "Expect colon",
	SynInvalidAssignTarget: "Invalid assignment target",
	SynTrailingInput:       "Unexpected input after expression",

	PrintInfo:      "Printer information",
	PrintFallback:  "Original text could not be reused",
	PrintContract:  "Invalid original location",
	PrintRoundTrip: "Identity reprint differs from source",

	IOLoadFileError:   "Failed to load file",
	ConfigBadValue:    "Invalid configuration value",
	ConfigUnknownRule: "Unknown recipe rule",

	ObsInfo:    "Observability information",
	ObsTimings: "Timing report",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PRT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
