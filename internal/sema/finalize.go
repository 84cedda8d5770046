package sema

import (
	"foxc/internal/ast"
	"foxc/internal/report"
	"foxc/internal/types"
)

// finalize implements spec 4.4.3's third pass: every expression under d has
// its type simplified, stripping TypeVariables left over from unification.
// An expression whose type fails to simplify becomes ErrorType and reports
// expr_failed_infer; diagnostics are then muted for the rest of that
// expression's subtree until the walk climbs back out of it, so one
// unresolved variable doesn't produce a cascade of identical errors for
// every node built on top of it.
func (c *Checker) finalize(d ast.Decl) {
	var muteRoot ast.Expr

	ast.WalkDecl(d, &ast.Hooks{
		PreExpr: func(e ast.Expr) bool {
			t := e.Type()
			if t == nil {
				return true
			}

			st, ok := c.unify.Simplify(t)
			if ok {
				ast.SetType(e, st)
				return true
			}

			ast.SetType(e, types.Error)
			if muteRoot == nil {
				c.diag.Errorf(report.KindExprFailedInfer, e.Range(), "could not infer a concrete type for this expression")
				muteRoot = e
			}
			return true
		},
		PostExpr: func(e ast.Expr) {
			if muteRoot == e {
				muteRoot = nil
			}
		},
	})
}
