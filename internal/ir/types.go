package ir

import "strings"

// Scalar is the base type underneath any number of pointer
// indirections.
type Scalar int

const (
	Void Scalar = iota
	Int
	Byte
)

func (s Scalar) String() string {
	switch s {
	case Void:
		return "void"
	case Int:
		return "int"
	case Byte:
		return "byte"
	default:
		return "?"
	}
}

// TypeDef is an immutable value type: a scalar plus a pointer level.
// Equality is structural (plain Go struct comparison), matching the
// spec's "compared by structural equality" requirement.
type TypeDef struct {
	Scalar       Scalar
	PointerLevel int
}

func VoidType() TypeDef { return TypeDef{Scalar: Void} }
func IntType() TypeDef  { return TypeDef{Scalar: Int} }
func ByteType() TypeDef { return TypeDef{Scalar: Byte} }

// PointerTo returns a type one indirection level deeper than t.
func PointerTo(t TypeDef) TypeDef {
	return TypeDef{Scalar: t.Scalar, PointerLevel: t.PointerLevel + 1}
}

// Deref returns a type one indirection level shallower than t. Callers
// must only call this on a t with PointerLevel > 0.
func Deref(t TypeDef) TypeDef {
	return TypeDef{Scalar: t.Scalar, PointerLevel: t.PointerLevel - 1}
}

func (t TypeDef) IsPointer() bool { return t.PointerLevel > 0 }
func (t TypeDef) IsVoid() bool    { return t.Scalar == Void && t.PointerLevel == 0 }

// Key is a stable string used to mangle function names for
// overloading: name + the Key of each argument type in declaration
// order.
func (t TypeDef) Key() string {
	return strings.Repeat("p", t.PointerLevel) + t.Scalar.String()
}

func (t TypeDef) String() string {
	if t.PointerLevel == 0 {
		return t.Scalar.String()
	}
	return strings.Repeat("ptr ", t.PointerLevel) + t.Scalar.String()
}

// CanCastTo reports whether a value of type from may be cast to type
// to, and whether doing so requires the narrowing cast8 instruction
// (an AND-mask truncating an int down to its low byte). Every other
// accepted cast is a pure reinterpretation with no emitted
// instruction.
//
// Table (spec.md §4.1):
//
//	any pointer  -> any pointer, or -> int
//	int          -> any pointer, or -> int
//	byte         -> int or byte
//	int          -> byte            (narrowing, emits cast8)
//	anything else: rejected
func CanCastTo(from, to TypeDef) (ok, narrow bool) {
	switch {
	case to.IsPointer() && (from.IsPointer() || from.Scalar == Int && !from.IsPointer()):
		return true, false
	case to.Scalar == Int && !to.IsPointer() &&
		(from.IsPointer() || (!from.IsPointer() && (from.Scalar == Int || from.Scalar == Byte))):
		return true, false
	case to.Scalar == Byte && !to.IsPointer() && !from.IsPointer() && from.Scalar == Byte:
		return true, false
	case to.Scalar == Byte && !to.IsPointer() && !from.IsPointer() && from.Scalar == Int:
		return true, true
	default:
		return false, false
	}
}
