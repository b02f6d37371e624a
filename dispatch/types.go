package dispatch

import (
	"fmt"
	"strconv"
)

// Kind identifies the family of a runtime type.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindDuration
	KindEnum
	KindArray
)

// String returns the kind name used in help and error messages
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDuration:
		return "duration"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Type describes the target type of an option. Types are small values and
// compare by kind, element type and enum identity.
type Type struct {
	kind Kind
	elem *Type
	enum *Enum
}

// Scalar types
var (
	String   = Type{kind: KindString}
	Bool     = Type{kind: KindBool}
	Int      = Type{kind: KindInt}
	Float    = Type{kind: KindFloat}
	Duration = Type{kind: KindDuration}
)

// EnumOf returns the type whose values are members of e.
func EnumOf(e *Enum) Type {
	return Type{kind: KindEnum, enum: e}
}

// ArrayOf returns an array type with the given element type.
func ArrayOf(elem Type) Type {
	return Type{kind: KindArray, elem: &elem}
}

// Kind returns the type family
func (t Type) Kind() Kind { return t.kind }

// Elem returns the element type of an array type, or the zero Type.
func (t Type) Elem() Type {
	if t.elem == nil {
		return Type{}
	}
	return *t.elem
}

// Enum returns the enum definition of an enum type, nil otherwise
func (t Type) Enum() *Enum { return t.enum }

// IsArray reports whether t is an array type
func (t Type) IsArray() bool { return t.kind == KindArray }

// Equal reports whether two types describe the same values.
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind || t.enum != other.enum {
		return false
	}
	if t.kind == KindArray {
		return t.Elem().Equal(other.Elem())
	}
	return true
}

func (t Type) String() string {
	switch t.kind {
	case KindArray:
		return "[]" + t.Elem().String()
	case KindEnum:
		if t.enum != nil && t.enum.Name != "" {
			return Signature(t.enum.Name)
		}
		return "enum"
	default:
		return t.kind.String()
	}
}

// EnumMember is one named value of an Enum. Signature optionally overrides
// the command-line spelling derived from Name.
type EnumMember struct {
	Name      string
	Value     int64
	Signature string
}

// Member creates an enum member without a custom signature
func Member(name string, value int64) EnumMember {
	return EnumMember{Name: name, Value: value}
}

// WithSignature returns a copy of m using sig as its custom signature
func (m EnumMember) WithSignature(sig string) EnumMember {
	m.Signature = sig
	return m
}

// Token returns the spelling of m on the command line
func (m EnumMember) Token() string {
	if m.Signature != "" {
		return m.Signature
	}
	return Signature(m.Name)
}

// Enum is a closed set of named integer values.
type Enum struct {
	Name    string
	members []EnumMember
}

// NewEnum creates an enum with the given members in declaration order.
func NewEnum(name string, members ...EnumMember) *Enum {
	return &Enum{Name: name, members: append([]EnumMember(nil), members...)}
}

// Members returns the members in declaration order.
func (e *Enum) Members() []EnumMember {
	return append([]EnumMember(nil), e.members...)
}

// Lookup resolves a token to a member: by integer value first, then by the
// signature of the member name, then by the member's custom signature.
func (e *Enum) Lookup(token string) (EnumMember, bool) {
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		for _, m := range e.members {
			if m.Value == n {
				return m, true
			}
		}
	}
	for _, m := range e.members {
		if Signature(m.Name) == token {
			return m, true
		}
	}
	for _, m := range e.members {
		if m.Signature != "" && m.Signature == token {
			return m, true
		}
	}
	return EnumMember{}, false
}

// ByName returns the member declared with the given name
func (e *Enum) ByName(name string) (EnumMember, bool) {
	for _, m := range e.members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}

// tokens lists the accepted spellings, used in conversion errors
func (e *Enum) tokens() []string {
	out := make([]string, 0, len(e.members))
	for _, m := range e.members {
		out = append(out, m.Token())
	}
	return out
}

func (e *Enum) String() string {
	return fmt.Sprintf("enum %s%v", e.Name, e.tokens())
}
