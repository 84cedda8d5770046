// Package ast defines Fox's abstract syntax tree: declarations, statements,
// expressions, and the ASTContext that owns them (spec 3.5). Every node
// family is modelled as a small interface plus a set of concrete struct
// types carrying a common Base — a tagged-variant style rather than a
// class hierarchy, per spec 9's "Polymorphic AST nodes" guidance (no
// inheritance is needed; dispatch is a Go type switch).
package ast

import "foxc/internal/report"

// Node is the interface every AST node — Decl, Stmt, or Expr — implements.
type Node interface {
	Range() report.SourceRange
}

// Base is embedded by every concrete node; it stores the node's source
// range (spec 3.5: "Every node carries a SourceRange").
type Base struct {
	Rng report.SourceRange
}

func (b Base) Range() report.SourceRange { return b.Rng }

// CheckState tracks a declaration's progress through Sema (spec 3.5): the
// Checking marker is what lets Sema detect a self-referential initializer
// (spec 4.4.1).
type CheckState int

const (
	Unchecked CheckState = iota
	Checking
	Checked
)

// DeclBase is embedded by every Decl; it adds the check state to Base.
type DeclBase struct {
	Base
	State CheckState
}

// Scope maps interned identifiers to the (possibly more than one, to allow
// shadow-checking per spec 4.4.1) declarations introduced under that name
// in one lexical level. Only UnitDecl and FuncDecl expose a Scope directly
// (spec 9: "Only FuncDecl and UnitDecl need to expose their ordered child
// declarations"); a CompoundStmt's local scope is modelled the same way
// but owned by the CompoundStmt itself.
type Scope struct {
	order []Decl
	byID  map[*Ident][]Decl
}

// Add registers decl under id, preserving declaration order for iteration
// and appending to id's candidate list for lookup/shadow-checking.
func (s *Scope) Add(id *Ident, decl Decl) {
	if s.byID == nil {
		s.byID = make(map[*Ident][]Decl)
	}
	s.order = append(s.order, decl)
	s.byID[id] = append(s.byID[id], decl)
}

// Lookup returns every declaration registered under id in this scope.
func (s *Scope) Lookup(id *Ident) []Decl {
	return s.byID[id]
}

// Decls returns every declaration in this scope, in declaration order.
func (s *Scope) Decls() []Decl {
	return s.order
}
