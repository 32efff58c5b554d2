package literal

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"fortio.org/safecast"
)

// DefaultFloatDigits is the number of significant digits used to render a
// Float whose decimal expansion does not terminate.
const DefaultFloatDigits = 30

// Value is an immutable tagged union over the four literal types.
// The zero Value has type Invalid.
type Value struct {
	typ Type
	b   bool
	i   *big.Int
	f   *big.Rat
	s   string
}

// BoolValue builds a Bool value.
func BoolValue(b bool) Value {
	return Value{typ: Bool, b: b}
}

// IntValue builds an Int value from a copy of i. A nil i means zero.
func IntValue(i *big.Int) Value {
	v := new(big.Int)
	if i != nil {
		v.Set(i)
	}
	return Value{typ: Int, i: v}
}

// IntFrom builds an Int value from a machine integer.
func IntFrom(i int64) Value {
	return Value{typ: Int, i: big.NewInt(i)}
}

// FloatValue builds a Float value from a copy of r. A nil r means zero.
func FloatValue(r *big.Rat) Value {
	v := new(big.Rat)
	if r != nil {
		v.Set(r)
	}
	return Value{typ: Float, f: v}
}

// StringValue builds a String value.
func StringValue(s string) Value {
	return Value{typ: String, s: s}
}

// ParseInt parses a decimal integer literal of any magnitude.
func ParseInt(text string) (Value, error) {
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Value{}, fmt.Errorf("invalid integer literal %q", text)
	}
	return Value{typ: Int, i: i}, nil
}

// ParseFloat parses a decimal float literal ("3.5", "1e-3", ".5") exactly.
func ParseFloat(text string) (Value, error) {
	r, ok := new(big.Rat).SetString(text)
	if !ok || strings.ContainsRune(text, '/') {
		return Value{}, fmt.Errorf("invalid float literal %q", text)
	}
	return Value{typ: Float, f: r}, nil
}

// Zero returns the zero value of t: false, 0, 0.0 or "".
func Zero(t Type) Value {
	switch t {
	case Bool:
		return BoolValue(false)
	case Int:
		return IntFrom(0)
	case Float:
		return FloatValue(nil)
	case String:
		return StringValue("")
	default:
		return Value{}
	}
}

// Type returns the active variant.
func (v Value) Type() Type {
	return v.typ
}

// IsValid reports whether v holds one of the four variants.
func (v Value) IsValid() bool {
	return v.typ.IsValid()
}

// Bool returns the value as a boolean: strings are true when non-empty,
// numbers when non-zero.
func (v Value) Bool() bool {
	switch v.typ {
	case Bool:
		return v.b
	case Int:
		return v.i.Sign() != 0
	case Float:
		return v.f.Sign() != 0
	case String:
		return v.s != ""
	default:
		return false
	}
}

// Int returns a copy of the value as an integer. Floats truncate toward zero;
// booleans map to 0/1; strings parse as decimal or yield 0.
func (v Value) Int() *big.Int {
	switch v.typ {
	case Int:
		return new(big.Int).Set(v.i)
	case Float:
		return new(big.Int).Quo(v.f.Num(), v.f.Denom())
	case Bool:
		if v.b {
			return big.NewInt(1)
		}
		return new(big.Int)
	case String:
		if i, ok := new(big.Int).SetString(strings.TrimSpace(v.s), 10); ok {
			return i
		}
		return new(big.Int)
	default:
		return new(big.Int)
	}
}

// Float returns a copy of the value as a rational. Ints promote exactly.
func (v Value) Float() *big.Rat {
	switch v.typ {
	case Float:
		return new(big.Rat).Set(v.f)
	case Int:
		return new(big.Rat).SetInt(v.i)
	case Bool:
		if v.b {
			return big.NewRat(1, 1)
		}
		return new(big.Rat)
	case String:
		if r, ok := new(big.Rat).SetString(strings.TrimSpace(v.s)); ok {
			return r
		}
		return new(big.Rat)
	default:
		return new(big.Rat)
	}
}

// Str returns the string payload for String values and the canonical text otherwise.
func (v Value) Str() string {
	if v.typ == String {
		return v.s
	}
	return v.Text()
}

// Text renders the canonical textual form used by string concatenation.
func (v Value) Text() string {
	return v.TextDigits(DefaultFloatDigits)
}

// TextDigits is Text with an explicit significant-digit budget for
// non-terminating floats.
func (v Value) TextDigits(digits int) string {
	switch v.typ {
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Int:
		return v.i.String()
	case Float:
		return FormatFloat(v.f, digits)
	case String:
		return v.s
	default:
		return "<invalid>"
	}
}

// Convert reinterprets v as type t through the accessors above. It backs the
// degraded fallback of an unavailable operator.
func (v Value) Convert(t Type) Value {
	if v.typ == t {
		return v
	}
	switch t {
	case Bool:
		return BoolValue(v.Bool())
	case Int:
		return Value{typ: Int, i: v.Int()}
	case Float:
		return Value{typ: Float, f: v.Float()}
	case String:
		return StringValue(v.Str())
	default:
		return Value{}
	}
}

// Equal reports structural equality: same variant and same payload.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case Bool:
		return v.b == o.b
	case Int:
		return v.i.Cmp(o.i) == 0
	case Float:
		return v.f.Cmp(o.f) == 0
	case String:
		return v.s == o.s
	default:
		return true
	}
}

// String implements fmt.Stringer for debugging: strings come back quoted.
func (v Value) String() string {
	if v.typ == String {
		return fmt.Sprintf("%q", v.s)
	}
	return v.Text()
}

// FormatFloat renders r in plain decimal notation. Terminating expansions are
// exact with trailing zeros trimmed ("5.5", "5"); others are rounded to the
// given number of significant digits.
func FormatFloat(r *big.Rat, digits int) string {
	if r.IsInt() {
		return r.Num().String()
	}
	if places, ok := terminatingPlaces(r.Denom()); ok {
		return trimZeros(r.FloatString(places))
	}
	if digits <= 0 {
		digits = DefaultFloatDigits
	}
	return trimZeros(r.FloatString(fractionPlaces(r, digits)))
}

// terminatingPlaces returns the number of fractional digits of 1/denom when
// denom has no prime factors other than 2 and 5.
func terminatingPlaces(denom *big.Int) (int, bool) {
	d := new(big.Int).Abs(denom)
	if d.Sign() == 0 {
		return 0, false
	}
	twos := d.TrailingZeroBits()
	d.Rsh(d, twos)
	fives, ok := powerOfFive(d)
	if !ok {
		return 0, false
	}
	return max(safecast.MustConv[int](twos), fives), true
}

var (
	bigOne  = big.NewInt(1)
	bigFive = big.NewInt(5)
	bigTen  = big.NewInt(10)
)

// powerOfFive reports k when d == 5^k. 5^k has floor(k*log2(5))+1 bits, so
// only the exponents next to that estimate are tried.
func powerOfFive(d *big.Int) (int, bool) {
	if d.Cmp(bigOne) == 0 {
		return 0, true
	}
	if new(big.Int).Mod(d, bigFive).Sign() != 0 {
		return 0, false
	}
	k := int(float64(d.BitLen()-1) / math.Log2(5))
	for c := max(k-1, 1); c <= k+1; c++ {
		if new(big.Int).Exp(bigFive, big.NewInt(int64(c)), nil).Cmp(d) == 0 {
			return c, true
		}
	}
	return 0, false
}

// fractionPlaces picks how many fractional digits give `digits` significant ones.
func fractionPlaces(r *big.Rat, digits int) int {
	abs := new(big.Rat).Abs(r)
	intPart := new(big.Int).Quo(abs.Num(), abs.Denom())
	if intPart.Sign() > 0 {
		return max(digits-len(intPart.String()), 1)
	}
	// ведущие нули после запятой не значащие
	return decimalShift(abs.Num(), abs.Denom()) - 1 + digits
}

// decimalShift returns the smallest m with num*10^m >= den (0 < num < den).
// The estimate from bit lengths never overshoots, so a few steps finish it.
func decimalShift(num, den *big.Int) int {
	m := max(int(float64(den.BitLen()-num.BitLen())*math.Log10(2))-1, 0)
	x := new(big.Int).Exp(bigTen, big.NewInt(int64(m)), nil)
	x.Mul(x, num)
	for x.Cmp(den) < 0 {
		x.Mul(x, bigTen)
		m++
	}
	return m
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
