package sema

import (
	"foxc/internal/ast"
	"foxc/internal/types"
)

// checkTopLevelSignature resolves a top-level declaration's type without
// descending into any body or initializer, so that a function can be called
// by another declared later in the same unit (spec 4.4: Sema's lookup chain
// has no notion of declaration order among unit globals).
func (c *Checker) checkTopLevelSignature(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FuncDecl:
		params := make([]types.Type, len(n.Params))
		for i, p := range n.Params {
			p.Type = c.resolveTypeLoc(p.TypeLoc)
			params[i] = p.Type
		}
		ret := c.resolveTypeLoc(n.ReturnTypeLoc)
		n.Sig = &types.Function{Params: params, Ret: ret}

	case *ast.VarDecl:
		if n.TypeLoc != nil {
			n.Type = c.resolveTypeLoc(n.TypeLoc)
		}
		// An untyped global's type is filled in from its initializer in
		// checkTopLevelBody, since that requires checking an expression.
	}
}

// checkTopLevelBody checks a function's body or a global's initializer
// (spec 4.4.4).
func (c *Checker) checkTopLevelBody(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FuncDecl:
		c.checkFuncBody(n)
	case *ast.VarDecl:
		c.checkGlobalVarDecl(n)
	}
}

func (c *Checker) checkFuncBody(fn *ast.FuncDecl) {
	if fn.Body == nil {
		return
	}

	c.unify.Reset() // spec 5: variable ids reset per function
	prevFunc := c.curFunc
	c.curFunc = fn

	c.reportIllegalRedecls(&fn.ParamScope)
	c.pushScope(&fn.ParamScope)
	c.checkCompoundStmt(fn.Body)
	c.popScope()
	c.finalize(fn)

	c.curFunc = prevFunc
}

func (c *Checker) checkGlobalVarDecl(v *ast.VarDecl) {
	c.unify.Reset()
	c.checkVarDecl(v)
	c.finalize(v)
}
