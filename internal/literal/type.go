package literal

// Type is the finite type domain of foldable constants.
type Type uint8

const (
	// Invalid is the zero Type; it is never the type of a literal.
	Invalid Type = iota
	Bool
	Int
	Float
	String
)

// Types lists the four literal types in declaration order.
var Types = [...]Type{Bool, Int, Float, String}

// String returns the type name used in diagnostics ("bool", "int", ...).
func (t Type) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "invalid"
	}
}

// IsValid reports whether t is one of the four literal types.
func (t Type) IsValid() bool {
	return t >= Bool && t <= String
}

// IsNumeric reports whether t is Int or Float.
func (t Type) IsNumeric() bool {
	return t == Int || t == Float
}

// ParseType maps a type name back to a Type.
func ParseType(name string) (Type, bool) {
	for _, t := range Types {
		if t.String() == name {
			return t, true
		}
	}
	return Invalid, false
}
