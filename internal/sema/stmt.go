package sema

import (
	"foxc/internal/ast"
	"foxc/internal/report"
	"foxc/internal/types"
)

// checkCompoundStmt checks each child in order; expressions in statement
// position are checked but their value is discarded (spec 4.4.4).
func (c *Checker) checkCompoundStmt(cs *ast.CompoundStmt) {
	c.pushScope(&cs.Scope)
	for _, s := range cs.Stmts {
		c.checkStmt(s)
	}
	c.popScope()
}

func (c *Checker) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.NullStmt:
		// nothing to check

	case *ast.DeclStmt:
		c.checkVarDecl(n.Decl)

	case *ast.ExprStmt:
		c.checkExpr(&n.X)

	case *ast.ReturnStmt:
		c.checkReturnStmt(n)

	case *ast.ConditionStmt:
		c.checkConditionStmt(n)

	case *ast.WhileStmt:
		c.checkWhileStmt(n)

	case *ast.CompoundStmt:
		c.checkCompoundStmt(n)

	default:
		report.PanicICE("checkStmt: unhandled stmt %T", s)
	}
}

// checkVarDecl implements spec 4.4.4's VarDecl rule: mark Checking, check
// the initializer (if present) against the declared type, mark Checked.
func (c *Checker) checkVarDecl(v *ast.VarDecl) {
	v.State = ast.Checking

	declared := v.Type
	if v.TypeLoc != nil && declared == nil {
		declared = c.resolveTypeLoc(v.TypeLoc)
		v.Type = declared
	}

	if v.Init != nil {
		initType := c.checkExpr(&v.Init)

		switch {
		case declared == nil:
			// No declared type: infer it from the initializer directly
			// (spec 4.4.4 parenthetical: "or create a fresh variable if
			// untyped-initializer form is ever added" — Fox's `let x = e;`
			// is exactly that form, so the declared type becomes e's type).
			v.Type = initType
		case !c.unify.Unify(declared, initType, nil):
			c.diag.Errorf(report.KindInvalidAssignment, v.Init.Range(),
				"cannot initialize %q of type %s with value of type %s", v.Name.Name, declared, initType)
		}
	} else if declared == nil {
		report.PanicICE("var %q has neither a declared type nor an initializer", v.Name.Name)
	}

	v.State = ast.Checked
}

func (c *Checker) checkReturnStmt(rs *ast.ReturnStmt) {
	var retType types.Type = types.Void
	if c.curFunc != nil {
		retType = c.curFunc.Sig.Ret
	}

	if rs.Value == nil {
		if !types.Equal(retType, types.Void) {
			c.diag.Errorf(report.KindInvalidAssignment, rs.Range(),
				"bare return not allowed: function returns %s", retType)
		}
		return
	}

	valType := c.checkExpr(&rs.Value)
	if !c.unify.Unify(retType, valType, nil) {
		c.diag.Errorf(report.KindInvalidAssignment, rs.Value.Range(),
			"cannot return value of type %s from function returning %s", valType, retType)
	}
}

func (c *Checker) checkConditionStmt(cs *ast.ConditionStmt) {
	c.checkConditionOperand(&cs.Cond)
	c.checkStmt(cs.Then)
	if cs.Else != nil {
		c.checkStmt(cs.Else)
	}
}

func (c *Checker) checkWhileStmt(ws *ast.WhileStmt) {
	c.checkConditionOperand(&ws.Cond)
	c.checkStmt(ws.Body)
}

// checkConditionOperand checks *cond and enforces spec 4.4.4's rule that a
// ConditionStmt/WhileStmt condition's final type must be numeric or
// boolean.
func (c *Checker) checkConditionOperand(cond *ast.Expr) {
	t := c.checkExpr(cond)
	if t.HasError() {
		return
	}
	if !t.RValue().IsNumericOrBool() {
		c.diag.Errorf(report.KindBinExprInvalidOperands, (*cond).Range(),
			"condition must be numeric or boolean, found %s", t)
	}
}
