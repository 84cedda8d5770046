// Package sema implements Fox's semantic analyzer (spec 4.4): name
// resolution, bottom-up type checking via unification, and a finalization
// pass that strips every TypeVariable out of the checked tree.
package sema

import (
	"foxc/internal/ast"
	"foxc/internal/report"
	"foxc/internal/types"
)

// Checker drives all three passes over one UnitDecl. It owns the Unifier for
// whichever function (or the unit's own globals) is currently being
// checked; spec 5 requires that table to be reset between such scopes to
// keep variable ids small.
type Checker struct {
	ctx  *ast.Context
	diag *report.Engine

	unify *types.Unifier

	// scopes is the active lookup chain, innermost last: [unit] while
	// checking globals, [unit, params] or [unit, params, compound...]
	// while checking a function body (spec 4.4.1).
	scopes []*ast.Scope

	// curFunc is the FuncDecl currently being checked, used by ReturnStmt
	// checking; nil while checking top-level globals.
	curFunc *ast.FuncDecl
}

// NewChecker creates a Checker for one compilation's ASTContext.
func NewChecker(ctx *ast.Context, diag *report.Engine) *Checker {
	return &Checker{ctx: ctx, diag: diag, unify: types.NewUnifier()}
}

// Check runs all three passes over unit (spec 4.4: "name resolution, type
// checking, finalization, in order").
func (c *Checker) Check(unit *ast.UnitDecl) {
	c.reportIllegalRedecls(&unit.Scope)

	c.pushScope(&unit.Scope)
	defer c.popScope()

	for _, d := range unit.Decls {
		c.checkTopLevelSignature(d)
	}
	for _, d := range unit.Decls {
		c.checkTopLevelBody(d)
	}
}

// reportIllegalRedecls implements spec 4.4.1's "multiple globals or
// multiple parameters with the same identifier produce an illegal
// redeclaration mark on all but the first" directly: every candidate past
// the first under one identifier is reported, with a note back at the
// declaration it redeclares. pruneIllegalRedecl relies on this having
// already happened so a later lookup never needs to report the same
// offenders again as an ambiguous_ref.
func (c *Checker) reportIllegalRedecls(scope *ast.Scope) {
	first := make(map[*ast.Ident]ast.Decl)
	for _, d := range scope.Decls() {
		name := declName(d)
		if name == nil {
			continue
		}
		prior, ok := first[name]
		if !ok {
			first[name] = d
			continue
		}
		c.diag.Errorf(report.KindIllegalRedecl, d.Range(),
			"%q is declared more than once in this scope", name.Name)
		c.diag.Notef(report.KindDeclaredHereWithType, prior.Range(),
			"previous declaration is here")
	}
}

// declName returns the identifier a top-level or parameter declaration
// introduces, or nil for decl kinds that don't (there are none today, but
// reportIllegalRedecls is written to stay safe if one is ever added).
func declName(d ast.Decl) *ast.Ident {
	switch n := d.(type) {
	case *ast.FuncDecl:
		return n.Name
	case *ast.VarDecl:
		return n.Name
	case *ast.ParamDecl:
		return n.Name
	default:
		return nil
	}
}

func (c *Checker) pushScope(s *ast.Scope) { c.scopes = append(c.scopes, s) }
func (c *Checker) popScope()              { c.scopes = c.scopes[:len(c.scopes)-1] }

// -----------------------------------------------------------------------------
// lookup (spec 4.4.1)

// lookup resolves name against the scope chain, current local compound
// first, then enclosing function parameters, then the unit's globals, then
// the builtin table. It applies the shadowing and self-referential-
// initializer rules before returning.
func (c *Checker) lookup(name *ast.Ident, rng report.SourceRange) (ast.Decl, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		cands := pruneIllegalRedecl(c.scopes[i].Lookup(name))
		if len(cands) == 0 {
			continue
		}
		if len(cands) > 1 {
			c.reportAmbiguous(name, rng, cands)
			return nil, false
		}

		decl := cands[0]
		if vd, ok := decl.(*ast.VarDecl); ok && vd.State == ast.Checking {
			c.diag.Errorf(report.KindVarInitSelfRef, rng, "variable %q referenced in its own initializer", name.Name)
			return nil, false
		}
		return decl, true
	}

	if b, ok := c.ctx.LookupBuiltin(name); ok {
		return b, true
	}

	c.diag.Errorf(report.KindUndeclaredId, rng, "undeclared identifier %q", name.Name)
	return nil, false
}

// pruneIllegalRedecl implements spec 4.4.1's shadowing filter: when a scope
// holds more than one declaration under the same identifier (multiple
// globals or multiple parameters with that name), all but the first are
// illegal redeclarations and are dropped before ambiguity is even
// considered, so a lookup against such a scope sees exactly one candidate
// rather than reporting ambiguous_ref against declarations that are already
// individually erroneous.
func pruneIllegalRedecl(cands []ast.Decl) []ast.Decl {
	if len(cands) <= 1 {
		return cands
	}
	return cands[:1]
}

func (c *Checker) reportAmbiguous(name *ast.Ident, rng report.SourceRange, cands []ast.Decl) {
	c.diag.Errorf(report.KindAmbiguousRef, rng, "ambiguous reference to %q", name.Name)
	for _, d := range cands {
		c.diag.Notef(report.KindPotentialCandidateHere, d.Range(), "potential candidate here")
	}
}

// resolveRef rewrites an UnresolvedDeclRefExpr into a DeclRefExpr (spec
// 4.4.1/4.4.2); on lookup failure it returns an ErrorExpr instead, since
// UnresolvedDeclRefExpr must never survive Sema (spec 3.5).
func (c *Checker) resolveRef(u *ast.UnresolvedDeclRefExpr) ast.Expr {
	decl, ok := c.lookup(u.Name, u.Range())
	if !ok {
		return ast.NewErrorExpr(u.Range())
	}

	ref := ast.Alloc[ast.DeclRefExpr](c.ctx.Arena)
	ref.Decl = decl
	ref.Rng = u.Range()

	valType := declValueType(decl)
	if ast.IsMutableValue(decl) {
		valType = c.ctx.InternLValue(valType)
	}
	ast.SetType(ref, valType)
	return ref
}

// declValueType returns decl's value type as seen from a reference to it,
// before any LValue wrapping (spec 4.4.2's UnresolvedDeclRef rule).
func declValueType(decl ast.Decl) types.Type {
	switch d := decl.(type) {
	case *ast.VarDecl:
		return d.Type
	case *ast.ParamDecl:
		return d.Type
	case *ast.FuncDecl:
		return d.Sig
	case *ast.BuiltinFuncDecl:
		return d.Sig
	default:
		report.PanicICE("declValueType: unhandled decl %T", decl)
		return types.Error
	}
}
