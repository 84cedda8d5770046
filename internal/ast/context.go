package ast

import (
	"foxc/internal/report"
	"foxc/internal/types"
)

// Ident is an interned identifier (spec 3.4): two Idents compare equal by
// pointer, never by string content, once they come out of a Context's
// interner.
type Ident struct {
	Name string
}

// Context is the ASTContext of spec 3.3/4 and the GLOSSARY: it owns the
// arena every AST and type node is allocated from, the identifier
// interner, the Array/LValue type dedup tables, and the fixed builtin
// table. One Context exists per compilation (spec 3.6); resetting its
// arena invalidates every node it ever handed out.
type Context struct {
	Arena *Arena

	idents map[string]*Ident

	arrays  map[types.Type]*types.Array
	lvalues map[types.Type]*types.LValue

	builtins    map[*Ident]*BuiltinFuncDecl
	builtinList []*BuiltinFuncDecl

	// Unit is the single top-level declaration recorded for this
	// compilation's one source file (spec 3.5's UnitDecl is "one per
	// source file"; a multi-file compilation would hold one Context per
	// file, since the arena, interner, and type tables are otherwise
	// independent per file in this front-end's scope).
	Unit *UnitDecl
}

// NewContext creates a Context with its builtin table pre-registered
// (spec 6.4).
func NewContext() *Context {
	ctx := &Context{
		Arena:   NewArena(),
		idents:  make(map[string]*Ident),
		arrays:  make(map[types.Type]*types.Array),
		lvalues: make(map[types.Type]*types.LValue),
	}
	ctx.registerBuiltins()
	return ctx
}

// Intern returns the unique *Ident for name, creating it on first use.
func (ctx *Context) Intern(name string) *Ident {
	if id, ok := ctx.idents[name]; ok {
		return id
	}
	id := &Ident{Name: name}
	ctx.idents[name] = id
	return id
}

// InternArray returns the unique *types.Array wrapping elem, creating it on
// first use (spec 3.3: "Array(Type) — Deduplicated by element type").
func (ctx *Context) InternArray(elem types.Type) *types.Array {
	if a, ok := ctx.arrays[elem]; ok {
		return a
	}
	a := &types.Array{Elem: elem}
	ctx.arrays[elem] = a
	return a
}

// InternLValue returns the unique *types.LValue wrapping inner, enforcing
// the invariants of spec 3.3: LValue(LValue(T)) is forbidden (wrapping an
// LValue again simply returns the same LValue back, since the inner type
// is already assignable) and LValue(Function(..)) never arises (functions
// are always const, so callers must not ask for this; doing so panics as
// an internal-invariant violation rather than silently producing a
// malformed type).
func (ctx *Context) InternLValue(inner types.Type) *types.LValue {
	if already, ok := inner.(*types.LValue); ok {
		return already
	}
	if _, isFunc := types.Inner(inner).(*types.Function); isFunc {
		report.PanicICE("cannot form LValue of a Function type")
	}

	if l, ok := ctx.lvalues[inner]; ok {
		return l
	}
	l := &types.LValue{Inner: inner}
	ctx.lvalues[inner] = l
	return l
}
