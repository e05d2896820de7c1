package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1004

	// Парсерные
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2006
	SynExpectIdentifier Code = 2010
	SynExpectAssign     Code = 2011
	SynExpectExpression Code = 2012
	SynTrailingInput    Code = 2013
	SynTooDeep          Code = 2090

	// Времени выполнения
	RunDivisionByZero  Code = 3001
	RunUndefinedName   Code = 3002
	RunIntegerOverflow Code = 3003
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	LexUnknownChar:      "Unknown character",
	LexBadNumber:        "Bad number literal",
	SynUnexpectedToken:  "Unexpected token",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynExpectIdentifier: "Expected identifier",
	SynExpectAssign:     "Expected '='",
	SynExpectExpression: "Expected expression",
	SynTrailingInput:    "Unexpected input after expression",
	SynTooDeep:          "Expression nested too deeply",
	RunDivisionByZero:   "Division by zero",
	RunUndefinedName:    "Undefined name",
	RunIntegerOverflow:  "Integer overflow",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RUN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Kind returns the diagnostic kind implied by the code range.
func (c Code) Kind() Kind {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return IllegalCharacter
	case ic >= 2000 && ic < 3000:
		return InvalidSyntax
	case ic >= 3000 && ic < 4000:
		return RuntimeError
	}
	return 0
}
