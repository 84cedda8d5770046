package ast

// Stmt is the interface every statement node implements (spec 3.5).
type Stmt interface {
	Node
	stmtNode()
}

// NullStmt is an empty statement: a bare `;` (spec 3.5, 4.1).
type NullStmt struct {
	Base
}

func (s *NullStmt) stmtNode() {}

// ReturnStmt is `return expr?;` (spec 3.5, 4.4.3).
type ReturnStmt struct {
	Base
	Value Expr // nil for a bare `return;`
}

func (s *ReturnStmt) stmtNode() {}

// ConditionStmt is `if cond { ... } else ...` (spec 3.5, 4.4.3). Else is nil
// when there is no else-clause, a *CompoundStmt for a plain else-block, and
// a *ConditionStmt when chained as `else if`.
type ConditionStmt struct {
	Base
	Cond Expr
	Then *CompoundStmt
	Else Stmt
}

func (s *ConditionStmt) stmtNode() {}

// WhileStmt is `while cond { ... }` (spec 3.5, 4.4.3).
type WhileStmt struct {
	Base
	Cond Expr
	Body *CompoundStmt
}

func (s *WhileStmt) stmtNode() {}

// CompoundStmt is a `{ ... }` block: a sequence of statements and the local
// declarations introduced directly inside it (spec 3.5). It is itself both a
// Stmt and a declaration scope, per the delayed-declaration-registration
// rule of spec 4.2 (a name declared anywhere in the block is visible to
// every statement in the block, including ones that lexically precede it).
type CompoundStmt struct {
	Base
	Stmts []Stmt
	Scope Scope
}

func (s *CompoundStmt) stmtNode() {}

// DeclStmt wraps a VarDecl so it can appear in a CompoundStmt's Stmts list in
// its original source position, even though it is also recorded in the
// enclosing Scope (spec 4.2's delayed registration: declaration order for
// execution is positional, but name visibility is block-wide).
type DeclStmt struct {
	Base
	Decl *VarDecl
}

func (s *DeclStmt) stmtNode() {}

// ExprStmt is an expression evaluated for its side effects, e.g. a call or
// an assignment (spec 3.5, 4.4.3).
type ExprStmt struct {
	Base
	X Expr
}

func (s *ExprStmt) stmtNode() {}
