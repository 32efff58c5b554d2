package fold

import (
	"errors"

	"kiln/internal/ast"
	"kiln/internal/diag"
	"kiln/internal/hir"
	"kiln/internal/literal"
	"kiln/internal/source"
)

// Options tune value rendering.
type Options struct {
	// FloatDigits is the significant-digit budget for floats with a
	// non-terminating decimal expansion when they are concatenated to strings.
	FloatDigits int
}

// Folder evaluates operators over literal operands.
// Registries are built once by New and never mutated; a Folder is safe for
// concurrent use as long as its sink is.
type Folder struct {
	rules *Rules
	sink  diag.Sink
	opts  Options

	// реестры реализаций по типу результата
	preUnary map[literal.Type]map[PreUnaryKey]UnaryFunc
	binary   map[literal.Type]map[BinaryKey]BinaryFunc
}

// New builds a Folder over rules. A nil sink reports to stderr.
func New(rules *Rules, sink diag.Sink, opts Options) *Folder {
	if rules == nil {
		rules = NewRules(PolicyUnsupported)
	}
	if sink == nil {
		sink = diag.NewEmitter(nil, diag.EmitterOptions{})
	}
	if opts.FloatDigits <= 0 {
		opts.FloatDigits = literal.DefaultFloatDigits
	}
	f := &Folder{
		rules:    rules,
		sink:     sink,
		opts:     opts,
		preUnary: make(map[literal.Type]map[PreUnaryKey]UnaryFunc, len(literal.Types)),
		binary:   make(map[literal.Type]map[BinaryKey]BinaryFunc, len(literal.Types)),
	}
	for _, t := range literal.Types {
		f.preUnary[t] = make(map[PreUnaryKey]UnaryFunc)
		f.binary[t] = make(map[BinaryKey]BinaryFunc)
	}
	// реализации регистрируются только для объявленных строк таблицы
	for _, rule := range rules.PreUnaryRules() {
		if impl := unaryImpl(rule.Key, rule.Result); impl != nil {
			f.preUnary[rule.Result][rule.Key] = impl
		}
	}
	for _, rule := range rules.BinaryRules() {
		if impl := binaryImpl(rule.Key, rule.Result, opts.FloatDigits); impl != nil {
			f.binary[rule.Result][rule.Key] = impl
		}
	}
	return f
}

// Rules returns the table the folder was built with.
func (f *Folder) Rules() *Rules { return f.rules }

// Sink returns the diagnostics sink the folder reports to.
func (f *Folder) Sink() diag.Sink { return f.sink }

// CompileLiteral turns an expression already known to be constant into an
// output literal node. It returns false, without reporting, when ctx does
// not give id one of the four literal types.
func (f *Folder) CompileLiteral(pos source.Pos, id ast.ExprID, ctx Context) (*hir.Expr, bool) {
	v := valueOf(id, ctx)
	if !v.IsValid() {
		return nil, false
	}
	return hir.NewLiteral(pos, v), true
}

// PreUnaryResultType is the type FoldPreUnaryValue returns for an operand
// of type operand, including the degraded fallback.
func (f *Folder) PreUnaryResultType(op ast.UnaryOp, operand literal.Type) literal.Type {
	if op == ast.UnaryTypeof && operand.IsValid() {
		return literal.String
	}
	if t, ok := f.rules.PreUnaryType(op, operand); ok {
		return t
	}
	return operand
}

// BinaryResultType is the type FoldBinaryValue returns, including the
// degraded fallback.
func (f *Folder) BinaryResultType(op ast.BinaryOp, left, right literal.Type) literal.Type {
	if t, ok := f.rules.BinaryType(op, left, right); ok {
		return t
	}
	return right
}

// FoldPreUnaryValue folds a prefix operator applied to a constant operand.
func (f *Folder) FoldPreUnaryValue(pos source.Pos, op ast.UnaryOp, operand ast.ExprID, ctx Context) literal.Value {
	return f.EvalPreUnary(pos, op, valueOf(operand, ctx))
}

// FoldBinaryValue folds a binary operator applied to constant operands.
func (f *Folder) FoldBinaryValue(pos source.Pos, op ast.BinaryOp, lhs, rhs ast.ExprID, ctx Context) literal.Value {
	return f.EvalBinary(pos, op, valueOf(lhs, ctx), valueOf(rhs, ctx))
}

// EvalPreUnary is FoldPreUnaryValue over an already folded operand.
//
// Когда реализации нет, сообщаем PreUnaryOpUnavailable и возвращаем сам
// операнд, приведённый к номинальному типу результата (если он есть).
func (f *Folder) EvalPreUnary(pos source.Pos, op ast.UnaryOp, v literal.Value) literal.Value {
	// typeof не строка таблицы: определён для любого литерала
	if op == ast.UnaryTypeof && v.IsValid() {
		return literal.StringValue(typeofName(v.Type()))
	}
	t, ok := f.rules.PreUnaryType(op, v.Type())
	if ok {
		if impl, found := f.preUnary[t][PreUnaryKey{op, v.Type()}]; found {
			return f.apply(pos, t, func() (literal.Value, error) { return impl(v) })
		}
	}
	f.sink.Report(diag.PreUnaryOpUnavailable{Pos: pos, Op: op.String(), Operand: v.Type().String()})
	if !ok {
		return v
	}
	return v.Convert(t)
}

// EvalBinary is FoldBinaryValue over already folded operands.
// On a lookup miss the right operand stands in for the result.
func (f *Folder) EvalBinary(pos source.Pos, op ast.BinaryOp, lhs, rhs literal.Value) literal.Value {
	key := BinaryKey{op, lhs.Type(), rhs.Type()}
	t, ok := f.rules.BinaryType(op, key.Left, key.Right)
	if ok {
		if impl, found := f.binary[t][key]; found {
			return f.apply(pos, t, func() (literal.Value, error) { return impl(lhs, rhs) })
		}
	}
	f.sink.Report(diag.BinaryOpUnavailable{
		Pos:   pos,
		Op:    op.String(),
		Left:  key.Left.String(),
		Right: key.Right.String(),
	})
	if !ok {
		return rhs
	}
	return rhs.Convert(t)
}

// apply runs an implementation; arithmetic failure yields the zero value of t.
func (f *Folder) apply(pos source.Pos, t literal.Type, run func() (literal.Value, error)) literal.Value {
	v, err := run()
	if err == nil {
		return v
	}
	if errors.Is(err, ErrDivisionByZero) {
		f.sink.Report(diag.DivisionByZero{Pos: pos})
	}
	return literal.Zero(t)
}
