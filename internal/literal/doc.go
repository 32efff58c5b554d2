// Package literal defines the value model shared by the folding engine: the
// four literal types and an immutable tagged value over them.
//
// Int values are backed by math/big.Int and Float values by math/big.Rat, so
// folded constants stay exact regardless of magnitude. Constructors copy their
// arguments and accessors hand out copies; a Value is never mutated after it
// is built.
package literal
