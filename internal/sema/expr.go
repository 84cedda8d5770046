package sema

import (
	"foxc/internal/ast"
	"foxc/internal/report"
	"foxc/internal/types"
)

// checkExpr is the bottom-up type checker's single entry point (spec
// 4.4.2). pe addresses the slot holding the expression being checked so
// that an UnresolvedDeclRefExpr can be rewritten into a DeclRefExpr in
// place, matching spec 3.6's "Sema mutates existing nodes... rewrites
// UnresolvedDeclRefExpr into DeclRefExpr".
func (c *Checker) checkExpr(pe *ast.Expr) types.Type {
	switch n := (*pe).(type) {
	case *ast.UnresolvedDeclRefExpr:
		resolved := c.resolveRef(n)
		*pe = resolved
		return resolved.Type()

	case *ast.IntLit:
		ast.SetType(n, types.Int)
		return types.Int
	case *ast.DoubleLit:
		ast.SetType(n, types.Double)
		return types.Double
	case *ast.BoolLit:
		ast.SetType(n, types.Bool)
		return types.Bool
	case *ast.CharLit:
		ast.SetType(n, types.Char)
		return types.Char
	case *ast.StringLit:
		ast.SetType(n, types.String)
		return types.String

	case *ast.ArrayLit:
		return c.checkArrayLit(n)
	case *ast.BinaryExpr:
		return c.checkBinaryExpr(n)
	case *ast.UnaryExpr:
		return c.checkUnaryExpr(n)
	case *ast.CastExpr:
		return c.checkCastExpr(n)
	case *ast.SubscriptExpr:
		return c.checkSubscriptExpr(n)
	case *ast.CallExpr:
		return c.checkCallExpr(n)
	case *ast.BuiltinMemberRefExpr:
		return c.checkBuiltinMemberRefExpr(n)

	case *ast.DeclRefExpr:
		// Already resolved; occurs if the same node is ever checked twice,
		// which should not happen outside of re-entrant debugging tools.
		return n.Type()

	case *ast.ErrorExpr:
		return types.Error

	default:
		report.PanicICE("checkExpr: unhandled expr %T", *pe)
		return types.Error
	}
}

// -----------------------------------------------------------------------------
// array literals

func (c *Checker) checkArrayLit(n *ast.ArrayLit) types.Type {
	if len(n.Elems) == 0 {
		t := c.ctx.InternArray(c.unify.NewVar())
		ast.SetType(n, t)
		return t
	}

	var elemType types.Type
	for i := range n.Elems {
		et := c.checkExpr(&n.Elems[i])
		if et.HasError() {
			continue
		}
		if _, isFunc := types.Inner(et.RValue()).(*types.Function); isFunc {
			c.diag.Errorf(report.KindFuncTypeInArrLit, n.Elems[i].Range(), "function value not allowed in an array literal")
			continue
		}
		if elemType == nil {
			elemType = et.RValue()
			continue
		}
		if !c.unify.Unify(elemType, et.RValue(), nil) {
			c.diag.Errorf(report.KindUnexpectedElemOfTypeInArrLit, n.Elems[i].Range(),
				"array literal element of type %s does not match earlier elements of type %s", et, elemType)
		}
	}
	if elemType == nil {
		elemType = types.Error
	}

	t := c.ctx.InternArray(elemType)
	ast.SetType(n, t)
	return t
}

// -----------------------------------------------------------------------------
// binary operators

func (c *Checker) checkBinaryExpr(n *ast.BinaryExpr) types.Type {
	if n.Op == ast.OpAssign {
		return c.checkAssignExpr(n)
	}

	lhsType := c.checkExpr(&n.Lhs)
	rhsType := c.checkExpr(&n.Rhs)

	switch n.Op {
	case ast.OpAdd:
		if lhsType.HasError() || rhsType.HasError() {
			ast.SetType(n, types.Error)
			return types.Error
		}
		if isStringOrChar(lhsType.RValue()) || isStringOrChar(rhsType.RValue()) {
			n.Op = ast.OpConcat // spec 3.6: '+' on String/Char rewritten to Concat
			ast.SetType(n, types.String)
			return types.String
		}
		return c.checkArithOperands(n, lhsType, rhsType)

	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		return c.checkArithOperands(n, lhsType, rhsType)

	case ast.OpEq, ast.OpNe:
		// Equality is only defined over Int/Double/Bool/Char, same as the
		// ranking comparisons: BCGen has no string-equality instruction, so
		// a String operand here would have nowhere to lower to.
		if !lhsType.HasError() && !rhsType.HasError() {
			if isString(lhsType.RValue()) || isString(rhsType.RValue()) {
				c.diag.Errorf(report.KindBinExprInvalidOperands, n.Range(), "equality operators do not accept string operands")
			} else if !c.unify.Unify(lhsType.RValue(), rhsType.RValue(), nil) {
				c.diag.Errorf(report.KindBinExprInvalidOperands, n.Range(), "cannot compare %s and %s", lhsType, rhsType)
			}
		}
		ast.SetType(n, types.Bool)
		return types.Bool

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		// Ranking comparisons forbid Bool outright (spec 4.4.2) and, since
		// BCGen has no string-ordering instruction, String as well: a
		// ranking comparison only ever lowers to an Int/Double/Char
		// comparison opcode.
		if !lhsType.HasError() && !rhsType.HasError() {
			if isBool(lhsType.RValue()) || isBool(rhsType.RValue()) {
				c.diag.Errorf(report.KindBinExprInvalidOperands, n.Range(), "comparison operators do not accept boolean operands")
			} else if isString(lhsType.RValue()) || isString(rhsType.RValue()) {
				c.diag.Errorf(report.KindBinExprInvalidOperands, n.Range(), "comparison operators do not accept string operands")
			} else if !c.unify.Unify(lhsType.RValue(), rhsType.RValue(), nil) {
				c.diag.Errorf(report.KindBinExprInvalidOperands, n.Range(), "cannot compare %s and %s", lhsType, rhsType)
			}
		}
		ast.SetType(n, types.Bool)
		return types.Bool

	case ast.OpAnd, ast.OpOr:
		if !lhsType.HasError() && !isBool(lhsType.RValue()) {
			c.diag.Errorf(report.KindBinExprInvalidOperands, n.Lhs.Range(), "operator %s requires a bool operand, found %s", n.Op, lhsType)
		}
		if !rhsType.HasError() && !isBool(rhsType.RValue()) {
			c.diag.Errorf(report.KindBinExprInvalidOperands, n.Rhs.Range(), "operator %s requires a bool operand, found %s", n.Op, rhsType)
		}
		ast.SetType(n, types.Bool)
		return types.Bool

	default:
		report.PanicICE("checkBinaryExpr: unhandled op %v", n.Op)
		return types.Error
	}
}

func (c *Checker) checkArithOperands(n *ast.BinaryExpr, lhsType, rhsType types.Type) types.Type {
	if lhsType.HasError() || rhsType.HasError() {
		ast.SetType(n, types.Error)
		return types.Error
	}
	if !c.unify.Unify(lhsType.RValue(), rhsType.RValue(), nil) {
		c.diag.Errorf(report.KindBinExprInvalidOperands, n.Range(), "operand type mismatch: %s and %s", lhsType, rhsType)
		ast.SetType(n, types.Error)
		return types.Error
	}

	result := lhsType.RValue()
	if !result.IsNumeric() {
		c.diag.Errorf(report.KindBinExprInvalidOperands, n.Range(), "operator %s requires numeric operands, found %s", n.Op, result)
		ast.SetType(n, types.Error)
		return types.Error
	}

	ast.SetType(n, result)
	return result
}

func (c *Checker) checkAssignExpr(n *ast.BinaryExpr) types.Type {
	lhsType := c.checkExpr(&n.Lhs)
	rhsType := c.checkExpr(&n.Rhs)

	if !lhsType.IsAssignable() {
		if !lhsType.HasError() {
			c.diag.Errorf(report.KindUnassignableExpr, n.Lhs.Range(), "left side of assignment is not assignable")
		}
		ast.SetType(n, types.Error)
		return types.Error
	}

	stripped := lhsType.RValue()
	if !rhsType.HasError() && !c.unify.Unify(stripped, rhsType, nil) {
		c.diag.Errorf(report.KindInvalidAssignment, n.Rhs.Range(), "cannot assign value of type %s to %s", rhsType, stripped)
		ast.SetType(n, types.Error)
		return types.Error
	}

	ast.SetType(n, stripped)
	return stripped
}

func isStringOrChar(t types.Type) bool {
	p, ok := types.Inner(t).(*types.Primitive)
	return ok && (p.Kind == types.KindString || p.Kind == types.KindChar)
}

func isBool(t types.Type) bool {
	p, ok := types.Inner(t).(*types.Primitive)
	return ok && p.Kind == types.KindBool
}

func isString(t types.Type) bool {
	p, ok := types.Inner(t).(*types.Primitive)
	return ok && p.Kind == types.KindString
}

// -----------------------------------------------------------------------------
// unary operators

func (c *Checker) checkUnaryExpr(n *ast.UnaryExpr) types.Type {
	childType := c.checkExpr(&n.Child)
	if childType.HasError() {
		ast.SetType(n, types.Error)
		return types.Error
	}

	switch n.Op {
	case ast.OpNot:
		if !c.unify.Unify(childType.RValue(), types.Bool, nil) {
			c.diag.Errorf(report.KindUnaryOpBadChildType, n.Range(), "'!' requires a bool operand, found %s", childType)
			ast.SetType(n, types.Error)
			return types.Error
		}
		ast.SetType(n, types.Bool)
		return types.Bool

	case ast.OpNeg, ast.OpPos:
		rv := childType.RValue()
		if !rv.IsNumeric() {
			c.diag.Errorf(report.KindUnaryOpBadChildType, n.Range(), "unary %q requires a numeric operand, found %s", n.Op, childType)
			ast.SetType(n, types.Error)
			return types.Error
		}
		ast.SetType(n, rv)
		return rv

	default:
		report.PanicICE("checkUnaryExpr: unhandled op %v", n.Op)
		return types.Error
	}
}

// -----------------------------------------------------------------------------
// cast

func (c *Checker) checkCastExpr(n *ast.CastExpr) types.Type {
	childType := c.checkExpr(&n.Child)
	goal := c.resolveTypeLoc(n.TargetTypeLoc)

	if childType.HasError() || goal.HasError() {
		ast.SetType(n, types.Error)
		return types.Error
	}

	if !c.unify.Unify(childType, goal, types.NumericCastComparator) {
		c.diag.Errorf(report.KindInvalidExplicitCast, n.Range(), "cannot cast value of type %s to %s", childType, goal)
		ast.SetType(n, types.Error)
		return types.Error
	}

	if types.Equal(childType.RValue(), goal) {
		n.IsUseless = true
		c.diag.Warnf(report.KindUselessRedundantCast, n.Range(), "redundant cast: expression is already of type %s", goal)
	}

	ast.SetType(n, goal)
	return goal
}

// -----------------------------------------------------------------------------
// subscript

func (c *Checker) checkSubscriptExpr(n *ast.SubscriptExpr) types.Type {
	baseType := c.checkExpr(&n.BaseExpr)
	idxType := c.checkExpr(&n.IndexExpr)

	if !idxType.HasError() && !c.unify.Unify(idxType.RValue(), types.Int, nil) {
		c.diag.Errorf(report.KindArrSubInvalidTypes, n.IndexExpr.Range(), "subscript index must be int, found %s", idxType)
	}

	if baseType.HasError() {
		ast.SetType(n, types.Error)
		return types.Error
	}

	isLValue := baseType.IsAssignable()
	rv := baseType.RValue()

	var elemType types.Type
	switch bt := types.Inner(rv).(type) {
	case *types.Array:
		elemType = bt.Elem
	case *types.Primitive:
		if bt.Kind == types.KindString {
			elemType = types.Char
		}
	}

	if elemType == nil {
		c.diag.Errorf(report.KindArrSubInvalidTypes, n.BaseExpr.Range(), "cannot subscript value of type %s", baseType)
		ast.SetType(n, types.Error)
		return types.Error
	}

	result := elemType
	if isLValue {
		result = c.ctx.InternLValue(elemType)
	}
	ast.SetType(n, result)
	return result
}

// -----------------------------------------------------------------------------
// calls

func (c *Checker) checkCallExpr(call *ast.CallExpr) types.Type {
	calleeType := c.checkExpr(&call.Callee)
	for i := range call.Args {
		c.checkExpr(&call.Args[i])
	}

	if calleeType.HasError() {
		ast.SetType(call, types.Error)
		return types.Error
	}

	fn, ok := types.Inner(calleeType).(*types.Function)
	if !ok {
		c.diag.Errorf(report.KindExprIsntFunc, call.Callee.Range(), "expression of type %s is not callable", calleeType)
		ast.SetType(call, types.Error)
		return types.Error
	}

	provided := len(call.Args)
	expected := len(fn.Params)
	if provided != expected {
		switch {
		case provided == 0:
			c.diag.Errorf(report.KindCannotCallWithNoArgs, call.Callee.Range(), "call requires %d argument(s), none provided", expected)
		case provided < expected:
			c.diag.Errorf(report.KindNotEnoughArgsInFuncCall, call.Range(), "not enough arguments in call: expected %d, got %d", expected, provided)
		default:
			c.diag.Errorf(report.KindTooManyArgsInFuncCall, call.Range(), "too many arguments in call: expected %d, got %d", expected, provided)
		}
		ast.SetType(call, types.Error)
		return types.Error
	}

	allOk := true
	for i, arg := range call.Args {
		if !c.unify.Unify(fn.Params[i], arg.Type(), nil) {
			allOk = false
		}
	}
	if !allOk {
		c.diag.Errorf(report.KindCannotCallFuncWithArgs, call.Callee.Range(), "argument types do not match this function's signature")
		ast.SetType(call, types.Error)
		return types.Error
	}

	ast.SetType(call, fn.Ret)
	return fn.Ret
}

// checkBuiltinMemberRefExpr resolves a `.member` access to a bound-method
// function type: the underlying builtin's signature with its leading base
// parameter removed, so that the enclosing CallExpr's arg-count/type check
// (spec 4.4.2) runs unmodified against `arr.append(x)` the same way it
// would against a free function call (spec 4.5.3).
func (c *Checker) checkBuiltinMemberRefExpr(n *ast.BuiltinMemberRefExpr) types.Type {
	baseType := c.checkExpr(&n.BaseExpr)

	kind := ast.BuiltinKindForMember(n.Member)
	decl := c.ctx.BuiltinByKind(kind)

	if !baseType.HasError() {
		c.unify.Unify(baseType.RValue(), decl.Sig.Params[0], nil)
	}

	bound := &types.Function{Params: decl.Sig.Params[1:], Ret: decl.Sig.Ret}
	ast.SetType(n, bound)
	return bound
}
