package bcgen

import (
	"foxc/internal/ast"
	"foxc/internal/bytecode"
	"foxc/internal/common"
	"foxc/internal/report"
	"foxc/internal/types"
)

// Generator drives BCGen's two passes over a checked UnitDecl: first
// registering every global and function (so a call to a function declared
// later in the unit still resolves, spec 4.4.1), then lowering each body.
type Generator struct {
	ctx  *ast.Context
	diag *report.Engine
	mod  *bytecode.Module

	maxRegisters int

	globalRegs map[*ast.VarDecl]uint16 // VarDecl -> global table id
	funcSlots  map[*ast.FuncDecl]int   // FuncDecl -> function table index
}

// NewGenerator creates a Generator that reports through diag and respects
// maxRegisters as the per-function register ceiling (spec 4.5.2, overridable
// by a project descriptor's `max-registers`, internal/config).
func NewGenerator(ctx *ast.Context, diag *report.Engine, maxRegisters int) *Generator {
	if maxRegisters <= 0 {
		maxRegisters = common.MaxRegisters
	}
	return &Generator{
		ctx:          ctx,
		diag:         diag,
		mod:          bytecode.NewModule(),
		maxRegisters: maxRegisters,
		globalRegs:   make(map[*ast.VarDecl]uint16),
		funcSlots:    make(map[*ast.FuncDecl]int),
	}
}

// Module returns the bytecode.Module this Generator has built so far,
// letting a driver inspect it after Generate returns (spec 7's exit-code
// convention and SPEC_FULL 2.4's debug dump both need this).
func (g *Generator) Module() *bytecode.Module { return g.mod }

// Generate lowers unit to a bytecode.Module. BCGen refuses to run at all if
// Sema already reported an error (spec 4.5/7: "BCGen refuses to run if Sema
// reported any error").
func (g *Generator) Generate(unit *ast.UnitDecl) *bytecode.Module {
	if g.diag.AnyErrors() {
		return g.mod
	}

	for _, d := range unit.Decls {
		g.declareTopLevel(d)
	}
	for _, d := range unit.Decls {
		g.genTopLevel(d)
	}
	return g.mod
}

func (g *Generator) declareTopLevel(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FuncDecl:
		g.funcSlots[n] = g.mod.AddFunction(n.Name.Name, len(n.Params), types.Equal(n.Sig.Ret, types.Void))
	case *ast.VarDecl:
		g.globalRegs[n] = g.mod.AddGlobal(n.Name.Name, typeTag(n.Type))
	}
}

func (g *Generator) genTopLevel(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FuncDecl:
		g.genFuncBody(n)
	case *ast.VarDecl:
		g.genGlobalInit(n)
	}
}

// genGlobalInit lowers a global's initializer into a throwaway function-less
// register context: a single register suffices since the result is
// immediately stored to the global slot.
func (g *Generator) genGlobalInit(v *ast.VarDecl) {
	if v.Init == nil {
		return
	}

	regAlloc := NewRegisterAllocator(g.maxRegisters, g.diag)
	fg := &funcGen{gen: g, regs: regAlloc, locals: map[ast.Decl]Register{}}

	start := g.mod.Len()
	val := fg.genExpr(v.Init, nil)
	g.mod.Emit(bytecode.BinaryWide(bytecode.OpSetGlobal, val.reg.Num(), g.globalRegs[v]), v.Range())
	val.free()

	if regAlloc.Poisoned() {
		g.mod.Instructions = g.mod.Instructions[:start]
		g.mod.DebugRanges = g.mod.DebugRanges[:start]
	}
}

func (g *Generator) genFuncBody(fn *ast.FuncDecl) {
	if fn.Body == nil {
		return
	}

	regAlloc := NewRegisterAllocator(g.maxRegisters, g.diag)
	fg := &funcGen{
		gen:       g,
		fn:        fn,
		regs:      regAlloc,
		locals:    map[ast.Decl]Register{},
		retIsVoid: types.Equal(fn.Sig.Ret, types.Void),
	}

	if len(fn.Params) > 0 {
		regs := regAlloc.AllocateConsecutive(len(fn.Params), fn.Range())
		for i, p := range fn.Params {
			fg.locals[p] = regs[i]
		}
	}

	start := g.mod.Len()
	fg.genCompoundStmt(fn.Body)

	// Every path through a function must end in a Return; a body that
	// falls off the end (no explicit return reached) still needs one so
	// the VM has a well-defined exit instruction.
	g.mod.Emit(bytecode.Unary(bytecode.OpReturn, 0), fn.Range())

	end := g.mod.Len()

	if regAlloc.Poisoned() {
		g.mod.Instructions = g.mod.Instructions[:start]
		g.mod.DebugRanges = g.mod.DebugRanges[:start]
		end = start
	}

	g.mod.SetFunctionRange(g.funcSlots[fn], start, end, regAlloc.HighWaterMark())
}

// typeTag renders t for the bytecode module's global table (spec 6.3's
// "(name, type_tag)"); the VM only needs enough information to pick a
// storage representation, so the type's own String() is sufficient.
func typeTag(t types.Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}

// isReferenceType reports whether t's values are heap-allocated at
// runtime (String, Array) as opposed to inline scalar values (Int,
// Double, Bool, Char); BCGen uses this to pick NewRefArray vs
// NewValueArray when lowering an array literal (spec 4.5.3).
func isReferenceType(t types.Type) bool {
	switch types.Inner(t).(type) {
	case *types.Array:
		return true
	}
	if p, ok := types.Inner(t).(*types.Primitive); ok {
		return p.Kind == types.KindString
	}
	return false
}
