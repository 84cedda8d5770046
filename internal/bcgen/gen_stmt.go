package bcgen

import (
	"math"

	"foxc/internal/ast"
	"foxc/internal/bytecode"
	"foxc/internal/report"
)

// funcGen lowers one function body (or one global initializer, in which
// case fn is nil) into gen.mod, tracking the registers bound to its
// parameters and local variables as they come into and leave scope (spec
// 4.5.2's use_decl/free-on-scope-exit).
type funcGen struct {
	gen *Generator
	fn  *ast.FuncDecl

	regs   *RegisterAllocator
	locals map[ast.Decl]Register

	retIsVoid bool
}

func (fg *funcGen) isGlobal(d *ast.VarDecl) bool {
	_, ok := fg.gen.globalRegs[d]
	return ok
}

// genCompoundStmt lowers a block's statements in order, freeing any local
// variable registers the block introduced once every statement has run
// (spec 4.5.4: "allocate/free locals as declarations are visited").
func (fg *funcGen) genCompoundStmt(cs *ast.CompoundStmt) {
	var declared []*ast.VarDecl
	for _, s := range cs.Stmts {
		fg.genStmt(s)
		if ds, ok := s.(*ast.DeclStmt); ok {
			declared = append(declared, ds.Decl)
		}
	}
	for i := len(declared) - 1; i >= 0; i-- {
		reg := fg.locals[declared[i]]
		reg.Free()
	}
}

func (fg *funcGen) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.NullStmt:
		// nothing to emit

	case *ast.ExprStmt:
		v := fg.genExpr(n.X, nil)
		v.free()

	case *ast.DeclStmt:
		fg.genLocalVarDecl(n.Decl)

	case *ast.CompoundStmt:
		fg.genCompoundStmt(n)

	case *ast.ConditionStmt:
		fg.genConditionStmt(n)

	case *ast.WhileStmt:
		fg.genWhileStmt(n)

	case *ast.ReturnStmt:
		fg.genReturnStmt(n)

	default:
		report.PanicICE("genStmt: unhandled stmt %T", s)
	}
}

// genLocalVarDecl implements spec 4.5.4's "VarDecl local": allocate a
// register, bind it to the decl for the rest of its lexical scope, and if
// an initializer is present, lower it directly into that register.
func (fg *funcGen) genLocalVarDecl(v *ast.VarDecl) {
	reg := fg.regs.Allocate(v.Range())
	fg.locals[v] = reg
	if v.Init != nil {
		fg.genExpr(v.Init, &reg)
	}
}

// genConditionStmt follows the exact jump sequence of the original
// compiler's ConditionStmt lowering (lib/BCGen/BCGenStmt.cpp): a CondJump
// that skips over a placeholder Jump when the condition is true, so that
// a false condition falls through into the placeholder and jumps to the
// else branch (or past the then branch, if there is none).
func (fg *funcGen) genConditionStmt(n *ast.ConditionStmt) {
	cond := fg.genExpr(n.Cond, nil)
	fg.gen.mod.Emit(bytecode.UnaryWithReg(bytecode.OpCondJump, cond.reg.Num(), 1), n.Cond.Range())
	cond.free()

	jumpIfNot := fg.gen.mod.Emit(bytecode.Unary(bytecode.OpJump, 0), n.Range())

	fg.genCompoundStmt(n.Then)

	if n.Else == nil {
		fg.patchJump(jumpIfNot, fg.gen.mod.Len())
		return
	}

	jumpEnd := fg.gen.mod.Emit(bytecode.Unary(bytecode.OpJump, 0), n.Range())
	fg.patchJump(jumpIfNot, fg.gen.mod.Len())

	fg.genStmt(n.Else)

	fg.patchJump(jumpEnd, fg.gen.mod.Len())
}

// genWhileStmt has no original to port from (the original compiler left
// WhileStmt's BCGen as an unimplemented stub); this follows spec 4.5.4's
// prose directly, reusing ConditionStmt's CondJump/Jump exit idiom and
// adding the backward jump to re-test the condition.
func (fg *funcGen) genWhileStmt(n *ast.WhileStmt) {
	top := fg.gen.mod.Len()

	cond := fg.genExpr(n.Cond, nil)
	fg.gen.mod.Emit(bytecode.UnaryWithReg(bytecode.OpCondJump, cond.reg.Num(), 1), n.Cond.Range())
	cond.free()

	exitJump := fg.gen.mod.Emit(bytecode.Unary(bytecode.OpJump, 0), n.Range())

	fg.genCompoundStmt(n.Body)

	backJump := fg.gen.mod.Emit(bytecode.Unary(bytecode.OpJump, 0), n.Range())
	fg.patchJump(backJump, top)

	fg.patchJump(exitJump, fg.gen.mod.Len())
}

// genReturnStmt also has no original (ReturnStmt's BCGen was likewise an
// unimplemented stub); the value, if any, is generated with genExpr (a
// local yields its own register, not a copy) and that register is named
// directly in the Return instruction's operand.
func (fg *funcGen) genReturnStmt(n *ast.ReturnStmt) {
	if n.Value == nil {
		fg.gen.mod.Emit(bytecode.Unary(bytecode.OpReturn, 0), n.Range())
		return
	}

	v := fg.genExpr(n.Value, nil)
	fg.gen.mod.Emit(bytecode.UnaryWithReg(bytecode.OpReturn, v.reg.Num(), 0), n.Range())
	v.free()
}

// patchJump fills in jumpIdx's offset so it lands on targetIdx, relative to
// the instruction immediately after the jump (spec 4.5.1). A computed
// offset that doesn't fit the signed 16-bit field is a hard compile error
// (spec 4.5.4's "assert it fits") rather than a panic, since unlike the
// other ICEs this one is reachable from pathologically large source input.
func (fg *funcGen) patchJump(jumpIdx, targetIdx int) {
	offset := targetIdx - (jumpIdx + 1)

	if offset < math.MinInt16 || offset > math.MaxInt16 {
		fg.gen.diag.Errorf(report.KindJumpOffsetOutOfRange, fg.gen.mod.DebugRanges[jumpIdx],
			"jump offset %d is out of range for this instruction", offset)
		offset = 0
	}

	old := fg.gen.mod.Instructions[jumpIdx]
	if old.Op == bytecode.OpCondJump {
		fg.gen.mod.Patch(jumpIdx, bytecode.UnaryWithReg(bytecode.OpCondJump, old.A, int16(offset)))
	} else {
		fg.gen.mod.Patch(jumpIdx, bytecode.Unary(bytecode.OpJump, int16(offset)))
	}
}
