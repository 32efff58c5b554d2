package diag

import (
	"fmt"

	"kiln/internal/source"
)

// Record is one reported diagnostic. The set of implementations is closed:
// every Code has exactly one record struct carrying that kind's fields.
type Record interface {
	Code() Code
	// Primary is the position the rendered header points at; NoPos when the
	// kind has no location.
	Primary() source.Pos
	// Lines are the message lines without indentation.
	Lines() []string
	isRecord()
}

type base struct{}

func (base) isRecord() {}

// Лексические

type TabAsIndent struct {
	base
	Pos source.Pos
}

func (TabAsIndent) Code() Code            { return LexTabAsIndent }
func (r TabAsIndent) Primary() source.Pos { return r.Pos }
func (TabAsIndent) Lines() []string       { return []string{"use tab as indent is forbidden."} }

type BadIndent struct {
	base
	Pos source.Pos
}

func (BadIndent) Code() Code            { return LexBadIndent }
func (r BadIndent) Primary() source.Pos { return r.Pos }
func (BadIndent) Lines() []string       { return []string{"indent not exactly 4 spaces."} }

type InvalidChar struct {
	base
	Pos       source.Pos
	Character int
}

func (InvalidChar) Code() Code            { return LexInvalidChar }
func (r InvalidChar) Primary() source.Pos { return r.Pos }
func (r InvalidChar) Lines() []string {
	return []string{fmt.Sprintf("invalid character %c (decimal value: %d).", rune(r.Character), r.Character)}
}

type ReservedWord struct {
	base
	Pos   source.Pos
	Token string
}

func (ReservedWord) Code() Code            { return LexReservedWord }
func (r ReservedWord) Primary() source.Pos { return r.Pos }
func (r ReservedWord) Lines() []string     { return []string{"use reserved word: " + r.Token} }

type UnterminatedString struct {
	base
	Pos source.Pos
}

func (UnterminatedString) Code() Code            { return LexUnterminatedString }
func (r UnterminatedString) Primary() source.Pos { return r.Pos }
func (UnterminatedString) Lines() []string       { return []string{"string literal not terminated."} }

// Синтаксические

type UnexpectedToken struct {
	base
	Pos   source.Pos
	Image string
}

func (UnexpectedToken) Code() Code            { return SynUnexpectedToken }
func (r UnexpectedToken) Primary() source.Pos { return r.Pos }
func (r UnexpectedToken) Lines() []string     { return []string{"unexpected " + r.Image} }

// UnexpectedEOF has no header when Pos is unknown.
type UnexpectedEOF struct {
	base
	Pos source.Pos
}

func (UnexpectedEOF) Code() Code            { return SynUnexpectedEOF }
func (r UnexpectedEOF) Primary() source.Pos { return r.Pos }
func (UnexpectedEOF) Lines() []string {
	return []string{"Unexpected end of file; expression not finished"}
}

type EmptyLookupKey struct {
	base
	Pos source.Pos
}

func (EmptyLookupKey) Code() Code            { return SynEmptyLookupKey }
func (r EmptyLookupKey) Primary() source.Pos { return r.Pos }
func (EmptyLookupKey) Lines() []string {
	return []string{"an expression is supposed as lookup key."}
}

type InvalidEmptyExpr struct {
	base
	Pos source.Pos
}

func (InvalidEmptyExpr) Code() Code            { return SynInvalidEmptyExpr }
func (r InvalidEmptyExpr) Primary() source.Pos { return r.Pos }
func (InvalidEmptyExpr) Lines() []string       { return []string{"expression omitted."} }

type ExcessiveExpr struct {
	base
	Pos source.Pos
}

func (ExcessiveExpr) Code() Code            { return SynExcessiveExpr }
func (r ExcessiveExpr) Primary() source.Pos { return r.Pos }
func (ExcessiveExpr) Lines() []string {
	return []string{"more than one expressions in parentheses."}
}

type TooManySliceParts struct {
	base
	Pos source.Pos
}

func (TooManySliceParts) Code() Code            { return SynTooManySliceParts }
func (r TooManySliceParts) Primary() source.Pos { return r.Pos }
func (TooManySliceParts) Lines() []string {
	return []string{"more than 3 expressions as list slice."}
}

type InvalidName struct {
	base
	Pos source.Pos
}

func (InvalidName) Code() Code            { return SynInvalidName }
func (r InvalidName) Primary() source.Pos { return r.Pos }
func (InvalidName) Lines() []string {
	return []string{"invalid name; an identifier is supposed here."}
}

type InvalidLeftValue struct {
	base
	Pos source.Pos
}

func (InvalidLeftValue) Code() Code            { return SynInvalidLeftValue }
func (r InvalidLeftValue) Primary() source.Pos { return r.Pos }
func (InvalidLeftValue) Lines() []string       { return []string{"invalid left value."} }

type SliceStepOmitted struct {
	base
	Pos source.Pos
}

func (SliceStepOmitted) Code() Code            { return SynSliceStepOmitted }
func (r SliceStepOmitted) Primary() source.Pos { return r.Pos }
func (SliceStepOmitted) Lines() []string       { return []string{"slice step omitted."} }

type ElseNotMatchIf struct {
	base
	ElsePos source.Pos
}

func (ElseNotMatchIf) Code() Code            { return SynElseNotMatchIf }
func (r ElseNotMatchIf) Primary() source.Pos { return r.ElsePos }
func (ElseNotMatchIf) Lines() []string       { return []string{"`else' does not match an `if'."} }

type IfAlreadyMatchElse struct {
	base
	PrevElsePos source.Pos
	ThisElsePos source.Pos
}

func (IfAlreadyMatchElse) Code() Code            { return SynIfAlreadyMatchElse }
func (r IfAlreadyMatchElse) Primary() source.Pos { return r.ThisElsePos }
func (r IfAlreadyMatchElse) Lines() []string {
	return []string{"another `else' already matches the `if' at " + r.PrevElsePos.String()}
}

type IncompleteConditional struct {
	base
	Pos source.Pos
}

func (IncompleteConditional) Code() Code            { return SynIncompleteConditional }
func (r IncompleteConditional) Primary() source.Pos { return r.Pos }
func (IncompleteConditional) Lines() []string {
	return []string{"incomplete conditional expression, `else' is expected"}
}

type InvalidIndent struct {
	base
	Pos source.Pos
}

func (InvalidIndent) Code() Code            { return SynInvalidIndent }
func (r InvalidIndent) Primary() source.Pos { return r.Pos }
func (InvalidIndent) Lines() []string       { return []string{"invalid indentation"} }

type ExportToIdent struct {
	base
	Pos   source.Pos
	Ident string
}

func (ExportToIdent) Code() Code            { return SynExportToIdent }
func (r ExportToIdent) Primary() source.Pos { return r.Pos }
func (r ExportToIdent) Lines() []string {
	return []string{"export to identifier is invalid: " + r.Ident}
}

type AsyncPlaceholderNotArgument struct {
	base
	Pos source.Pos
}

func (AsyncPlaceholderNotArgument) Code() Code            { return SynAsyncPlaceholderNotArgument }
func (r AsyncPlaceholderNotArgument) Primary() source.Pos { return r.Pos }
func (AsyncPlaceholderNotArgument) Lines() []string {
	return []string{"asynchronous placeholder should appear as an argument."}
}

type AsyncParamNotExpr struct {
	base
	Pos source.Pos
}

func (AsyncParamNotExpr) Code() Code            { return SynAsyncParamNotExpr }
func (r AsyncParamNotExpr) Primary() source.Pos { return r.Pos }
func (AsyncParamNotExpr) Lines() []string {
	return []string{"asynchronous parameter should appear as an expression."}
}

type MoreThanOneAsyncPlaceholder struct {
	base
	Pos source.Pos
}

func (MoreThanOneAsyncPlaceholder) Code() Code            { return SynMoreThanOneAsyncPlaceholder }
func (r MoreThanOneAsyncPlaceholder) Primary() source.Pos { return r.Pos }
func (MoreThanOneAsyncPlaceholder) Lines() []string {
	return []string{"more than one asynchronous placeholders in one call."}
}

// Имена

type ForbidDefFunc struct {
	base
	Pos  source.Pos
	Name string
}

func (ForbidDefFunc) Code() Code            { return NamForbidDefFunc }
func (r ForbidDefFunc) Primary() source.Pos { return r.Pos }
func (r ForbidDefFunc) Lines() []string {
	return []string{"attempt define Function `" + r.Name + "' but forbidden here."}
}

type ForbidDefName struct {
	base
	Pos  source.Pos
	Name string
}

func (ForbidDefName) Code() Code            { return NamForbidDefName }
func (r ForbidDefName) Primary() source.Pos { return r.Pos }
func (r ForbidDefName) Lines() []string {
	return []string{"attempt define name `" + r.Name + "' but forbidden here."}
}

type NameAlreadyInLocal struct {
	base
	PrevDefPos source.Pos
	ThisDefPos source.Pos
	Name       string
}

func (NameAlreadyInLocal) Code() Code            { return NamAlreadyInLocal }
func (r NameAlreadyInLocal) Primary() source.Pos { return r.ThisDefPos }
func (r NameAlreadyInLocal) Lines() []string {
	return []string{
		"name `" + r.Name + "' already defined.",
		"see previous definition in local at " + r.PrevDefPos.String(),
	}
}

type NameRefBeforeDef struct {
	base
	DefPos       source.Pos
	RefPositions []source.Pos
	Name         string
}

func (NameRefBeforeDef) Code() Code            { return NamRefBeforeDef }
func (r NameRefBeforeDef) Primary() source.Pos { return r.DefPos }
func (r NameRefBeforeDef) Lines() []string {
	lines := make([]string, 0, len(r.RefPositions)+1)
	lines = append(lines, "name `"+r.Name+"' definition after reference. see references at:")
	for _, p := range r.RefPositions {
		lines = append(lines, "- "+p.String())
	}
	return lines
}

type NameNotDef struct {
	base
	RefPos source.Pos
	Name   string
}

func (NameNotDef) Code() Code            { return NamNotDef }
func (r NameNotDef) Primary() source.Pos { return r.RefPos }
func (r NameNotDef) Lines() []string     { return []string{"name `" + r.Name + "' not defined."} }

type ImportReservedWord struct {
	base
	Pos  source.Pos
	Name string
}

func (ImportReservedWord) Code() Code            { return NamImportReservedWord }
func (r ImportReservedWord) Primary() source.Pos { return r.Pos }
func (r ImportReservedWord) Lines() []string {
	return []string{"import reserved word as name: " + r.Name}
}

// Типы и операторы

type PreUnaryOpUnavailable struct {
	base
	Pos     source.Pos
	Op      string
	Operand string
}

func (PreUnaryOpUnavailable) Code() Code            { return TypPreUnaryOpUnavailable }
func (r PreUnaryOpUnavailable) Primary() source.Pos { return r.Pos }
func (r PreUnaryOpUnavailable) Lines() []string {
	return []string{fmt.Sprintf("no available prefix unary operation %s for type `%s'.", r.Op, r.Operand)}
}

type BinaryOpUnavailable struct {
	base
	Pos   source.Pos
	Op    string
	Left  string
	Right string
}

func (BinaryOpUnavailable) Code() Code            { return TypBinaryOpUnavailable }
func (r BinaryOpUnavailable) Primary() source.Pos { return r.Pos }
func (r BinaryOpUnavailable) Lines() []string {
	return []string{fmt.Sprintf("no available binary operation %s for type `%s' and `%s'.", r.Op, r.Left, r.Right)}
}

type DivisionByZero struct {
	base
	Pos source.Pos
}

func (DivisionByZero) Code() Code            { return TypDivisionByZero }
func (r DivisionByZero) Primary() source.Pos { return r.Pos }
func (DivisionByZero) Lines() []string       { return []string{"divided by zero."} }

type CondNotBool struct {
	base
	Pos        source.Pos
	ActualType string
}

func (CondNotBool) Code() Code            { return TypCondNotBool }
func (r CondNotBool) Primary() source.Pos { return r.Pos }
func (r CondNotBool) Lines() []string {
	return []string{"condition type is not boolean, actual type: " + r.ActualType}
}

type InvalidPropertyName struct {
	base
	Pos  source.Pos
	Expr string
}

func (InvalidPropertyName) Code() Code            { return TypInvalidPropertyName }
func (r InvalidPropertyName) Primary() source.Pos { return r.Pos }
func (r InvalidPropertyName) Lines() []string {
	return []string{"invalid property name: " + r.Expr, "the expression could not be folded."}
}

// Поток управления

type FlowTerminated struct {
	base
	ThisPos source.Pos
	PrevPos source.Pos
}

func (FlowTerminated) Code() Code            { return FlwTerminated }
func (r FlowTerminated) Primary() source.Pos { return r.ThisPos }
func (r FlowTerminated) Lines() []string {
	return []string{"flow already terminated at " + r.PrevPos.String()}
}

type ReturnNotAllowedInPipe struct {
	base
	Pos source.Pos
}

func (ReturnNotAllowedInPipe) Code() Code            { return FlwReturnNotAllowedInPipe }
func (r ReturnNotAllowedInPipe) Primary() source.Pos { return r.Pos }
func (ReturnNotAllowedInPipe) Lines() []string {
	return []string{"return statement not allowed in pipeline."}
}

type PipeReferenceNotInListContext struct {
	base
	Pos source.Pos
}

func (PipeReferenceNotInListContext) Code() Code            { return FlwPipeReferenceNotInListContext }
func (r PipeReferenceNotInListContext) Primary() source.Pos { return r.Pos }
func (PipeReferenceNotInListContext) Lines() []string {
	return []string{"pipeline reference not in list context."}
}
