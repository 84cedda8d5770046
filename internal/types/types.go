// Package types implements Fox's type representations and the unification
// engine Sema drives them through (spec 3.3, 4.4.2). It is grounded on the
// teacher's types package (ComedicChimera/chai bootstrap/types:
// typevar.go, unify.go, solver.go) but cut down to exactly Fox's variant
// set: Primitive, Array, LValue, Function, TypeVariable, and the single
// Error sentinel.
package types

import "fmt"

// Type is the common interface every type variant implements. Types are
// immutable once constructed; Array and LValue instances are interned by
// the owning ASTContext (internal/ast) so identity comparison is valid for
// them, matching spec 3.3's "interned where identity matters".
type Type interface {
	String() string

	// IsNumeric reports whether the type is Int or Double.
	IsNumeric() bool

	// IsNumericOrBool reports whether the type is numeric or Bool.
	IsNumericOrBool() bool

	// IsAssignable reports whether the outer type is an LValue wrapper.
	IsAssignable() bool

	// RValue strips a single outer LValue wrapper, if present.
	RValue() Type

	// HasError reports whether the type is, or transitively contains, the
	// Error sentinel.
	HasError() bool
}

// -----------------------------------------------------------------------------
// Primitive

// PrimitiveKind enumerates Fox's scalar primitive types.
type PrimitiveKind int

const (
	KindInt PrimitiveKind = iota
	KindDouble
	KindBool
	KindChar
	KindString
	KindVoid
)

func (k PrimitiveKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	default:
		return "<unknown primitive>"
	}
}

// Primitive is one of Fox's scalar built-in types. Every Primitive value is
// one of the package-level singletons below; there is exactly one instance
// per PrimitiveKind so pointer equality is valid.
type Primitive struct {
	Kind PrimitiveKind
}

// Singletons, per spec 3.3.
var (
	Int    = &Primitive{Kind: KindInt}
	Double = &Primitive{Kind: KindDouble}
	Bool   = &Primitive{Kind: KindBool}
	Char   = &Primitive{Kind: KindChar}
	String = &Primitive{Kind: KindString}
	Void   = &Primitive{Kind: KindVoid}
)

func (p *Primitive) String() string { return p.Kind.String() }
func (p *Primitive) IsNumeric() bool {
	return p == Int || p == Double
}
func (p *Primitive) IsNumericOrBool() bool { return p.IsNumeric() || p == Bool }
func (p *Primitive) IsAssignable() bool    { return false }
func (p *Primitive) RValue() Type          { return p }
func (p *Primitive) HasError() bool        { return false }

// -----------------------------------------------------------------------------
// Array

// Array wraps an element type; it is deduplicated by element type identity
// by the owning ASTContext (spec 3.3).
type Array struct {
	Elem Type
}

func (a *Array) String() string        { return "[" + a.Elem.String() + "]" }
func (a *Array) IsNumeric() bool       { return false }
func (a *Array) IsNumericOrBool() bool { return false }
func (a *Array) IsAssignable() bool    { return false }
func (a *Array) RValue() Type          { return a }
func (a *Array) HasError() bool        { return a.Elem.HasError() }

// -----------------------------------------------------------------------------
// LValue

// LValue marks a type as assignable (spec 3.3). LValue(LValue(T)) and
// LValue(Function(..)) never arise; constructors enforcing that live on
// ASTContext (internal/ast), since only it can intern/dedup instances.
type LValue struct {
	Inner Type
}

func (l *LValue) String() string        { return l.Inner.String() }
func (l *LValue) IsNumeric() bool       { return l.Inner.IsNumeric() }
func (l *LValue) IsNumericOrBool() bool { return l.Inner.IsNumericOrBool() }
func (l *LValue) IsAssignable() bool    { return true }
func (l *LValue) RValue() Type          { return l.Inner }
func (l *LValue) HasError() bool        { return l.Inner.HasError() }

// -----------------------------------------------------------------------------
// Function

// Function is value-compared (spec 3.3); it may be interned but identity is
// never relied upon.
type Function struct {
	Params []Type
	Ret    Type
}

func (f *Function) String() string {
	s := "func("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") " + f.Ret.String()
}
func (f *Function) IsNumeric() bool       { return false }
func (f *Function) IsNumericOrBool() bool { return false }
func (f *Function) IsAssignable() bool    { return false }
func (f *Function) RValue() Type          { return f }
func (f *Function) HasError() bool {
	if f.Ret.HasError() {
		return true
	}
	for _, p := range f.Params {
		if p.HasError() {
			return true
		}
	}
	return false
}

// FuncEqual performs structural (value) comparison of two function types.
func FuncEqual(a, b *Function) bool {
	if len(a.Params) != len(b.Params) || !Equal(a.Ret, b.Ret) {
		return false
	}
	for i := range a.Params {
		if !Equal(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

// -----------------------------------------------------------------------------
// TypeVariable

// Variable is a unification placeholder created during type checking
// (spec 3.3/4.4.2). Its binding is held by the owning Unifier, not inline,
// so that Reset (spec 5: "fully reset between functions... to keep ids
// small") can drop every binding in one step.
type Variable struct {
	ID   int
	home *Unifier
}

func (v *Variable) String() string {
	if t, ok := v.home.binding(v.ID); ok {
		return t.String()
	}
	return fmt.Sprintf("?%d", v.ID)
}
func (v *Variable) IsNumeric() bool {
	if t, ok := v.home.binding(v.ID); ok {
		return t.IsNumeric()
	}
	return false
}
func (v *Variable) IsNumericOrBool() bool {
	if t, ok := v.home.binding(v.ID); ok {
		return t.IsNumericOrBool()
	}
	return false
}
func (v *Variable) IsAssignable() bool { return false }
func (v *Variable) RValue() Type       { return v }
func (v *Variable) HasError() bool {
	t, ok := v.home.binding(v.ID)
	return ok && t.HasError()
}

// -----------------------------------------------------------------------------
// Error

// errorType is the Error sentinel (spec 3.3): it absorbs further errors
// silently, and Array(Error)/LValue(Error) do not propagate further
// type-variable creation (enforced by Sema, which checks HasError before
// creating fresh variables for a malformed subexpression).
type errorType struct{}

// Error is the single Error sentinel instance.
var Error Type = &errorType{}

func (*errorType) String() string        { return "<error>" }
func (*errorType) IsNumeric() bool       { return false }
func (*errorType) IsNumericOrBool() bool { return false }
func (*errorType) IsAssignable() bool    { return false }
func (*errorType) RValue() Type          { return Error }
func (*errorType) HasError() bool        { return true }

// -----------------------------------------------------------------------------
// structural equality, used by Unify's default case and by callers that
// need value comparison independent of any Unifier (e.g. BCGen deciding
// whether two locals share a type).

// Equal reports whether a and b are the same type once an outer LValue
// wrapper is stripped from each. Variables compare equal only by identity
// (same ID in the same Unifier); callers that want unification semantics
// should call Unifier.Unify instead.
func Equal(a, b Type) bool {
	a, b = Inner(a), Inner(b)
	a, b = Inner(a.RValue()), Inner(b.RValue())

	switch av := a.(type) {
	case *Primitive:
		bv, ok := b.(*Primitive)
		return ok && av.Kind == bv.Kind
	case *Array:
		bv, ok := b.(*Array)
		return ok && Equal(av.Elem, bv.Elem)
	case *LValue:
		bv, ok := b.(*LValue)
		return ok && Equal(av.Inner, bv.Inner)
	case *Function:
		bv, ok := b.(*Function)
		return ok && FuncEqual(av, bv)
	case *Variable:
		bv, ok := b.(*Variable)
		return ok && av.home == bv.home && av.ID == bv.ID
	case *errorType:
		_, ok := b.(*errorType)
		return ok
	default:
		return false
	}
}

// Inner resolves a bound type Variable to its current substitution,
// recursively, leaving every other variant untouched. An unbound variable
// is returned as-is.
func Inner(t Type) Type {
	for {
		v, ok := t.(*Variable)
		if !ok {
			return t
		}
		bound, ok := v.home.binding(v.ID)
		if !ok {
			return t
		}
		t = bound
	}
}
