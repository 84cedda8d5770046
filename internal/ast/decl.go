package ast

import (
	"foxc/internal/report"
	"foxc/internal/types"
)

// Decl is the interface every declaration node implements (spec 3.5).
type Decl interface {
	Node
	declNode() // unexported marker restricting implementers to this package
}

// -----------------------------------------------------------------------------
// TypeLoc: unresolved type syntax, produced by the parser and resolved to a
// concrete types.Type by Sema. Fox's surface syntax for types is either a
// primitive name (int, double, bool, char, string, void) or an array form
// `[T]`; function types never appear as surface syntax (a function's type
// is always derived from its FuncDecl signature), matching spec 3.3/4.3.

// TypeLocKind distinguishes the two forms of type syntax.
type TypeLocKind int

const (
	TypeLocNamed TypeLocKind = iota
	TypeLocArray
)

// TypeLoc is an unresolved reference to a type as written in source.
type TypeLoc struct {
	Base
	Kind TypeLocKind

	// Name is populated when Kind == TypeLocNamed.
	Name string

	// Elem is populated when Kind == TypeLocArray.
	Elem *TypeLoc

	// Resolved is filled in by Sema once the TypeLoc has been checked.
	Resolved types.Type
}

// -----------------------------------------------------------------------------
// UnitDecl: one per source file, and itself the root scope (spec 3.5).

type UnitDecl struct {
	DeclBase
	Name  *Ident
	File  report.FileId
	Decls []Decl
	Scope Scope
}

func (d *UnitDecl) declNode() {}

// -----------------------------------------------------------------------------
// FuncDecl: introduces a scope for its parameters (spec 3.5).

type FuncDecl struct {
	DeclBase
	Name          *Ident
	Params        []*ParamDecl
	ReturnTypeLoc *TypeLoc // nil means Void
	Body          *CompoundStmt
	HeaderEndLoc  report.SourceLoc

	ParamScope Scope

	// Sig is the function's resolved type, filled in by Sema before the
	// body is checked (so recursive calls within the body resolve).
	Sig *types.Function
}

func (d *FuncDecl) declNode() {}

// -----------------------------------------------------------------------------
// ParamDecl: lives inside a FuncDecl's scope (spec 3.5).

type ParamDecl struct {
	DeclBase
	Name      *Ident
	TypeLoc   *TypeLoc
	IsMutable bool

	// Type is the resolved parameter type (never wrapped in LValue itself;
	// Sema wraps it in LValue only at the DeclRefExpr site, per spec
	// 4.4.2, when IsMutable is true).
	Type types.Type
}

func (d *ParamDecl) declNode() {}

// -----------------------------------------------------------------------------
// VarDecl: `let` (IsConst) or `var` (spec 3.5).

type VarDecl struct {
	DeclBase
	Name    *Ident
	TypeLoc *TypeLoc // nil if the type is inferred from Init
	Init    Expr     // nil for a declaration with no initializer
	IsConst bool

	// Type is the resolved, finalized declared type, filled in by Sema.
	Type types.Type
}

func (d *VarDecl) declNode() {}

// IsMutableValue reports whether references to decl should be wrapped in
// LValue at use sites (spec 4.4.2): true for `var`, false for `let` and for
// any function declaration (functions are always const).
func IsMutableValue(d Decl) bool {
	switch v := d.(type) {
	case *VarDecl:
		return !v.IsConst
	case *ParamDecl:
		return v.IsMutable
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// BuiltinFuncDecl.declNode lives in builtin.go alongside its type.
