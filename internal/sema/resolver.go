package sema

import (
	"math/big"

	"kiln/internal/ast"
	"kiln/internal/diag"
	"kiln/internal/fold"
	"kiln/internal/literal"
)

// Resolver decides which expressions of one file are compile-time
// constants and supplies their values to the folder. It implements
// fold.Context.
//
// Types and values are memoised per node, so every diagnostic raised while
// resolving or folding a node is raised once however often it is queried.
type Resolver struct {
	exprs  *ast.Exprs
	folder *fold.Folder
	sink   diag.Sink
	scope  *scope

	types  map[ast.ExprID]literal.Type
	values map[ast.ExprID]literal.Value
	refs   map[ast.ExprID]*binding

	// ссылки на имена, определённые ниже по файлу
	early map[string][]ast.ExprID
}

var _ fold.Context = (*Resolver)(nil)

func newResolver(exprs *ast.Exprs, folder *fold.Folder, sink diag.Sink, sc *scope) *Resolver {
	return &Resolver{
		exprs:  exprs,
		folder: folder,
		sink:   sink,
		scope:  sc,
		types:  make(map[ast.ExprID]literal.Type),
		values: make(map[ast.ExprID]literal.Value),
		refs:   make(map[ast.ExprID]*binding),
		early:  make(map[string][]ast.ExprID),
	}
}

// LiteralType returns the literal type of id, or literal.Invalid when id is
// runtime code (extern names, unresolved names, operators over them).
func (r *Resolver) LiteralType(id ast.ExprID) literal.Type {
	if t, ok := r.types[id]; ok {
		return t
	}
	t := r.resolveType(id)
	r.types[id] = t
	return t
}

func (r *Resolver) BoolValue(id ast.ExprID) bool      { return r.value(id).Bool() }
func (r *Resolver) IntValue(id ast.ExprID) *big.Int   { return r.value(id).Int() }
func (r *Resolver) FloatValue(id ast.ExprID) *big.Rat { return r.value(id).Float() }
func (r *Resolver) StringValue(id ast.ExprID) string  { return r.value(id).Str() }

func (r *Resolver) resolveType(id ast.ExprID) literal.Type {
	expr := r.exprs.Get(id)
	if expr == nil {
		return literal.Invalid
	}
	switch expr.Kind {
	case ast.ExprLit:
		v := r.parseLiteral(id)
		if v.IsValid() {
			r.values[id] = v
		}
		return v.Type()

	case ast.ExprIdent:
		data, _ := r.exprs.Ident(id)
		b := r.resolveName(id, data.Name)
		if b == nil || b.kind != bindingLet {
			return literal.Invalid
		}
		return r.LiteralType(b.value)

	case ast.ExprGroup:
		data, _ := r.exprs.Group(id)
		return r.LiteralType(data.Inner)

	case ast.ExprUnary:
		data, _ := r.exprs.Unary(id)
		operand := r.LiteralType(data.Operand)
		if !operand.IsValid() {
			return literal.Invalid
		}
		return r.folder.PreUnaryResultType(data.Op, operand)

	case ast.ExprBinary:
		data, _ := r.exprs.Binary(id)
		left := r.LiteralType(data.Left)
		right := r.LiteralType(data.Right)
		if !left.IsValid() || !right.IsValid() {
			return literal.Invalid
		}
		return r.folder.BinaryResultType(data.Op, left, right)
	}
	return literal.Invalid
}

// value folds id; callers only ask for nodes with a valid literal type.
func (r *Resolver) value(id ast.ExprID) literal.Value {
	if v, ok := r.values[id]; ok {
		return v
	}
	if !r.LiteralType(id).IsValid() {
		return literal.Value{}
	}
	if v, ok := r.values[id]; ok {
		return v
	}

	expr := r.exprs.Get(id)
	var v literal.Value
	switch expr.Kind {
	case ast.ExprIdent:
		v = r.value(r.refs[id].value)
	case ast.ExprGroup:
		data, _ := r.exprs.Group(id)
		v = r.value(data.Inner)
	case ast.ExprUnary:
		data, _ := r.exprs.Unary(id)
		v = r.folder.FoldPreUnaryValue(expr.Pos, data.Op, data.Operand, r)
	case ast.ExprBinary:
		data, _ := r.exprs.Binary(id)
		v = r.folder.FoldBinaryValue(expr.Pos, data.Op, data.Left, data.Right, r)
	}
	r.values[id] = v
	return v
}

func (r *Resolver) parseLiteral(id ast.ExprID) literal.Value {
	data, ok := r.exprs.Literal(id)
	if !ok {
		return literal.Value{}
	}
	switch data.Kind {
	case ast.ExprLitTrue:
		return literal.BoolValue(true)
	case ast.ExprLitFalse:
		return literal.BoolValue(false)
	case ast.ExprLitString:
		return literal.StringValue(data.Value)
	case ast.ExprLitInt:
		v, err := literal.ParseInt(data.Value)
		if err != nil {
			return literal.Value{}
		}
		return v
	case ast.ExprLitFloat:
		v, err := literal.ParseFloat(data.Value)
		if err != nil {
			return literal.Value{}
		}
		return v
	}
	return literal.Value{}
}

// resolveName binds an identifier node to a visible name. Names defined
// further down the file are collected for NameRefBeforeDef; unknown names
// are reported at once.
func (r *Resolver) resolveName(id ast.ExprID, name string) *binding {
	if b, ok := r.refs[id]; ok {
		return b
	}
	if b, ok := r.scope.lookup(name); ok {
		r.refs[id] = b
		return b
	}
	if _, ok := r.scope.later[name]; ok {
		r.early[name] = append(r.early[name], id)
		return nil
	}
	r.sink.Report(diag.NameNotDef{RefPos: r.exprs.Get(id).Pos, Name: name})
	return nil
}

// reportEarlyRefs raises one NameRefBeforeDef per name, in definition order.
func (r *Resolver) reportEarlyRefs() {
	for _, name := range r.scope.order {
		ids := r.early[name]
		if len(ids) == 0 {
			continue
		}
		rec := diag.NameRefBeforeDef{DefPos: r.scope.later[name], Name: name}
		for _, id := range ids {
			rec.RefPositions = append(rec.RefPositions, r.exprs.Get(id).Pos)
		}
		r.sink.Report(rec)
	}
}
