package ast

import (
	"foxc/internal/report"
	"foxc/internal/types"
)

// Expr is the interface every expression node implements (spec 3.5).
type Expr interface {
	Node
	exprNode()

	// Type returns the expression's resolved type, valid only once Sema has
	// run. It is the empty interface value (nil types.Type) beforehand.
	Type() types.Type
	setType(types.Type)
}

// exprBase is embedded by every concrete Expr; it carries the node's source
// range and its Sema-assigned type (spec 3.5: "Sema mutates existing nodes
// (sets type fields)").
type exprBase struct {
	Base
	typ types.Type
}

func (e *exprBase) Type() types.Type     { return e.typ }
func (e *exprBase) setType(t types.Type) { e.typ = t }

// SetType is the package-external hook Sema uses to assign an expression's
// type; exprNode's own setType stays unexported so only this package's Sema
// helpers (and this function) can call it.
func SetType(e Expr, t types.Type) { e.setType(t) }

// -----------------------------------------------------------------------------
// Literals (spec 3.5).

type IntLit struct {
	exprBase
	Value int64
}

func (e *IntLit) exprNode() {}

type DoubleLit struct {
	exprBase
	Value float64
}

func (e *DoubleLit) exprNode() {}

type BoolLit struct {
	exprBase
	Value bool
}

func (e *BoolLit) exprNode() {}

type CharLit struct {
	exprBase
	Value rune
}

func (e *CharLit) exprNode() {}

type StringLit struct {
	exprBase
	Value string
}

func (e *StringLit) exprNode() {}

// ArrayLit is an array literal `[e0, e1, ...]` (spec 3.5, 4.4.3: lowered to
// a sequence of arrAppend builtin calls by BCGen, per spec 4.5.3).
type ArrayLit struct {
	exprBase
	Elems []Expr
}

func (e *ArrayLit) exprNode() {}

// -----------------------------------------------------------------------------
// Operators (spec 4.3's precedence table).

type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpAssign
	// OpConcat is never produced by the parser; Sema rewrites OpAdd to this
	// when either operand is String or Char (spec 3.5, 4.4.3).
	OpConcat
)

func (op BinOp) String() string {
	return binOpNames[op]
}

var binOpNames = map[BinOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%", OpPow: "**",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpAnd: "&&", OpOr: "||", OpAssign: "=", OpConcat: "++",
}

// IsComparison reports whether op is one of the ranking comparisons that
// forbid Bool operands (spec 4.4.3's BinaryExpr-comparison rule).
func (op BinOp) IsComparison() bool {
	switch op {
	case OpLt, OpLe, OpGt, OpGe:
		return true
	default:
		return false
	}
}

type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
	OpPos
)

func (op UnaryOp) String() string {
	return unaryOpNames[op]
}

var unaryOpNames = map[UnaryOp]string{
	OpNot: "!", OpNeg: "-", OpPos: "+",
}

// -----------------------------------------------------------------------------
// Composite expressions (spec 3.5).

type BinaryExpr struct {
	exprBase
	Op       BinOp
	Lhs, Rhs Expr
}

func (e *BinaryExpr) exprNode() {}

type UnaryExpr struct {
	exprBase
	Op    UnaryOp
	Child Expr
}

func (e *UnaryExpr) exprNode() {}

// CastExpr is `child as T` (spec 3.5, 4.4.3). IsUseless is set by Sema when
// Child's resolved r-value type already equals TargetTypeLoc's resolved
// type; it is a warning, never an error (spec 4.4.3).
type CastExpr struct {
	exprBase
	Child         Expr
	TargetTypeLoc *TypeLoc
	IsUseless     bool
}

func (e *CastExpr) exprNode() {}

// SubscriptExpr is `base[index]` (spec 3.5, 4.4.3).
type SubscriptExpr struct {
	exprBase
	BaseExpr  Expr
	IndexExpr Expr
}

func (e *SubscriptExpr) exprNode() {}

// CallExpr is `callee(args...)` (spec 3.5, 4.4.3).
type CallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) exprNode() {}

// UnresolvedDeclRefExpr names an identifier the parser saw but Sema has not
// yet resolved (spec 3.5: "must not survive Sema").
type UnresolvedDeclRefExpr struct {
	exprBase
	Name *Ident
}

func (e *UnresolvedDeclRefExpr) exprNode() {}

// DeclRefExpr is the post-resolution replacement for an
// UnresolvedDeclRefExpr (spec 3.5, 4.4.1).
type DeclRefExpr struct {
	exprBase
	Decl Decl
}

func (e *DeclRefExpr) exprNode() {}

// BuiltinMemberRefExpr wraps a base expression's resolved `.member` access,
// e.g. `arr.append`, `str.length` (spec 3.5, 4.5.3). It only ever appears as
// a CallExpr's Callee; referencing one without calling it is a Sema error.
type BuiltinMemberRefExpr struct {
	exprBase
	BaseExpr Expr
	Member   BuiltinMemberKind
}

func (e *BuiltinMemberRefExpr) exprNode() {}

// ErrorExpr is Sema's poison value (spec 3.5: "may survive Sema", spec
// 7's propagation policy: "poisons the node ... so that parent diagnostics
// are suppressed"). Its Type is always types.Error.
type ErrorExpr struct {
	exprBase
}

func (e *ErrorExpr) exprNode() {}

// NewErrorExpr builds an ErrorExpr at rng, pre-typed as types.Error so
// callers never forget to set it.
func NewErrorExpr(rng report.SourceRange) *ErrorExpr {
	e := &ErrorExpr{exprBase: exprBase{Base: Base{Rng: rng}}}
	e.typ = types.Error
	return e
}
