package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Every kind has exactly one Record type.
type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexTabAsIndent        Code = 1001
	LexBadIndent          Code = 1002
	LexInvalidChar        Code = 1003
	LexReservedWord       Code = 1004
	LexUnterminatedString Code = 1005

	// Синтаксические
	SynUnexpectedToken             Code = 2001
	SynUnexpectedEOF               Code = 2002
	SynEmptyLookupKey              Code = 2003
	SynInvalidEmptyExpr            Code = 2004
	SynExcessiveExpr               Code = 2005
	SynTooManySliceParts           Code = 2006
	SynInvalidName                 Code = 2007
	SynInvalidLeftValue            Code = 2008
	SynSliceStepOmitted            Code = 2009
	SynElseNotMatchIf              Code = 2010
	SynIfAlreadyMatchElse          Code = 2011
	SynIncompleteConditional       Code = 2012
	SynInvalidIndent               Code = 2013
	SynExportToIdent               Code = 2014
	SynAsyncPlaceholderNotArgument Code = 2015
	SynAsyncParamNotExpr           Code = 2016
	SynMoreThanOneAsyncPlaceholder Code = 2017

	// Разрешение имён
	NamForbidDefFunc      Code = 3001
	NamForbidDefName      Code = 3002
	NamAlreadyInLocal     Code = 3003
	NamRefBeforeDef       Code = 3004
	NamNotDef             Code = 3005
	NamImportReservedWord Code = 3006

	// Типы и операторы
	TypPreUnaryOpUnavailable Code = 4001
	TypBinaryOpUnavailable   Code = 4002
	TypDivisionByZero        Code = 4003
	TypCondNotBool           Code = 4004
	TypInvalidPropertyName   Code = 4005

	// Поток управления
	FlwTerminated                    Code = 5001
	FlwReturnNotAllowedInPipe        Code = 5002
	FlwPipeReferenceNotInListContext Code = 5003
)

// Codes lists every known code in ascending order.
var Codes = []Code{
	LexTabAsIndent, LexBadIndent, LexInvalidChar, LexReservedWord, LexUnterminatedString,
	SynUnexpectedToken, SynUnexpectedEOF, SynEmptyLookupKey, SynInvalidEmptyExpr, SynExcessiveExpr,
	SynTooManySliceParts, SynInvalidName, SynInvalidLeftValue, SynSliceStepOmitted, SynElseNotMatchIf,
	SynIfAlreadyMatchElse, SynIncompleteConditional, SynInvalidIndent, SynExportToIdent,
	SynAsyncPlaceholderNotArgument, SynAsyncParamNotExpr, SynMoreThanOneAsyncPlaceholder,
	NamForbidDefFunc, NamForbidDefName, NamAlreadyInLocal, NamRefBeforeDef, NamNotDef,
	NamImportReservedWord,
	TypPreUnaryOpUnavailable, TypBinaryOpUnavailable, TypDivisionByZero, TypCondNotBool,
	TypInvalidPropertyName,
	FlwTerminated, FlwReturnNotAllowedInPipe, FlwPipeReferenceNotInListContext,
}

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexTabAsIndent:        "Tab used as indent",
	LexBadIndent:          "Indent not a multiple of 4 spaces",
	LexInvalidChar:        "Invalid character",
	LexReservedWord:       "Reserved word used",
	LexUnterminatedString: "Unterminated string literal",

	SynUnexpectedToken:             "Unexpected token",
	SynUnexpectedEOF:               "Unexpected end of file",
	SynEmptyLookupKey:              "Empty lookup key",
	SynInvalidEmptyExpr:            "Expression omitted",
	SynExcessiveExpr:               "More than one expression in parentheses",
	SynTooManySliceParts:           "Too many slice parts",
	SynInvalidName:                 "Invalid name",
	SynInvalidLeftValue:            "Invalid left value",
	SynSliceStepOmitted:            "Slice step omitted",
	SynElseNotMatchIf:              "Else without if",
	SynIfAlreadyMatchElse:          "If already matched by else",
	SynIncompleteConditional:       "Incomplete conditional expression",
	SynInvalidIndent:               "Invalid indentation",
	SynExportToIdent:               "Invalid export target",
	SynAsyncPlaceholderNotArgument: "Async placeholder outside arguments",
	SynAsyncParamNotExpr:           "Async parameter is not an expression",
	SynMoreThanOneAsyncPlaceholder: "More than one async placeholder",

	NamForbidDefFunc:      "Function definition forbidden here",
	NamForbidDefName:      "Name definition forbidden here",
	NamAlreadyInLocal:     "Name already defined",
	NamRefBeforeDef:       "Name referenced before definition",
	NamNotDef:             "Name not defined",
	NamImportReservedWord: "Reserved word imported as name",

	TypPreUnaryOpUnavailable: "Prefix unary operation unavailable",
	TypBinaryOpUnavailable:   "Binary operation unavailable",
	TypDivisionByZero:        "Division by zero",
	TypCondNotBool:           "Condition is not boolean",
	TypInvalidPropertyName:   "Invalid property name",

	FlwTerminated:                    "Flow already terminated",
	FlwReturnNotAllowedInPipe:        "Return inside pipeline",
	FlwPipeReferenceNotInListContext: "Pipeline reference outside list context",
}

// ID returns the stable short identifier, e.g. "TYP4003".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("NAM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("FLW%04d", ic)
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

// ParseCode maps an identifier such as "TYP4003" back to its Code.
func ParseCode(id string) (Code, bool) {
	for _, c := range Codes {
		if c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
