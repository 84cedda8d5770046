package bcgen

import (
	"testing"

	"foxc/internal/ast"
	"foxc/internal/bytecode"
	"foxc/internal/lexer"
	"foxc/internal/parser"
	"foxc/internal/report"
	"foxc/internal/sema"
)

// generate runs the full lex -> parse -> check -> generate pipeline and
// fails the test immediately if any stage reports an error, since BCGen's
// own tests care about what gets emitted, not about re-proving the earlier
// stages.
func generate(t *testing.T, src string) *bytecode.Module {
	t.Helper()
	sm := report.NewSourceManager()
	file := sm.LoadFromString("test.fox", src)
	diag := report.NewEngine(sm, nil)

	toks, _ := lexer.New(sm.GetContent(file), file, diag).Lex()
	ctx := ast.NewContext()
	unit := parser.New(toks, file, diag, ctx, sm).ParseUnit("test")
	if diag.AnyErrors() {
		t.Fatalf("unexpected parse errors for %q", src)
	}

	sema.NewChecker(ctx, diag).Check(unit)
	if diag.AnyErrors() {
		t.Fatalf("unexpected sema errors for %q", src)
	}

	mod := NewGenerator(ctx, diag, 0).Generate(unit)
	if diag.AnyErrors() {
		t.Fatalf("unexpected bcgen errors for %q", src)
	}
	return mod
}

func ops(mod *bytecode.Module, start, end int) []bytecode.OpCode {
	var out []bytecode.OpCode
	for _, instr := range mod.Instructions[start:end] {
		out = append(out, instr.Op)
	}
	return out
}

func TestGenerateRefusesToRunAfterSemaErrors(t *testing.T) {
	sm := report.NewSourceManager()
	file := sm.LoadFromString("test.fox", `func main() { let x = y; }`)
	diag := report.NewEngine(sm, nil)

	toks, _ := lexer.New(sm.GetContent(file), file, diag).Lex()
	ctx := ast.NewContext()
	unit := parser.New(toks, file, diag, ctx, sm).ParseUnit("test")
	sema.NewChecker(ctx, diag).Check(unit)
	if !diag.AnyErrors() {
		t.Fatalf("expected sema to report an undeclared-identifier error")
	}

	mod := NewGenerator(ctx, diag, 0).Generate(unit)
	if len(mod.Instructions) != 0 {
		t.Errorf("expected BCGen to emit nothing once Sema has already reported an error")
	}
}

func TestGenerateIntArithUsesIntOpcodes(t *testing.T) {
	mod := generate(t, `func main(): int { return 1 + 2; }`)

	fn := mod.Functions[0]
	got := ops(mod, fn.InstrStart, fn.InstrEnd)
	if !containsOp(got, bytecode.OpAddInt) {
		t.Errorf("expected OpAddInt in %v", got)
	}
	if containsOp(got, bytecode.OpAddDouble) {
		t.Errorf("did not expect OpAddDouble for int operands, got %v", got)
	}
}

func TestGenerateDoubleArithUsesDoubleOpcodes(t *testing.T) {
	mod := generate(t, `func main(): double { return 1.0 + 2.0; }`)

	fn := mod.Functions[0]
	got := ops(mod, fn.InstrStart, fn.InstrEnd)
	if !containsOp(got, bytecode.OpAddDouble) {
		t.Errorf("expected OpAddDouble in %v", got)
	}
}

func TestGenerateGreaterThanSynthesizedFromLEAndNot(t *testing.T) {
	// int '>' has no direct opcode: it's LEInt on the same operands
	// followed by LNot, since a > b is !(a <= b).
	mod := generate(t, `func main(): bool { return 1 > 2; }`)

	fn := mod.Functions[0]
	got := ops(mod, fn.InstrStart, fn.InstrEnd)
	if !containsAdjacent(got, bytecode.OpLEInt, bytecode.OpLNot) {
		t.Errorf("expected OpLEInt followed by OpLNot, got %v", got)
	}
}

func TestGenerateDoubleGreaterThanHasDirectOpcode(t *testing.T) {
	mod := generate(t, `func main(): bool { return 1.0 > 2.0; }`)

	fn := mod.Functions[0]
	got := ops(mod, fn.InstrStart, fn.InstrEnd)
	if !containsOp(got, bytecode.OpGTDouble) {
		t.Errorf("expected a direct OpGTDouble, got %v", got)
	}
}

func TestGenerateIfElseEmitsCondJumpAndTwoJumps(t *testing.T) {
	mod := generate(t, `func main() {
		if true {
			return;
		} else {
			return;
		}
	}`)

	fn := mod.Functions[0]
	got := ops(mod, fn.InstrStart, fn.InstrEnd)
	if !containsOp(got, bytecode.OpCondJump) {
		t.Fatalf("expected a CondJump, got %v", got)
	}
	count := 0
	for _, op := range got {
		if op == bytecode.OpJump {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 Jumps (skip-then, skip-else), got %d in %v", count, got)
	}
}

func TestGenerateWhileJumpsBackToTop(t *testing.T) {
	mod := generate(t, `func main() {
		while true {
			return;
		}
	}`)

	fn := mod.Functions[0]
	idx := fn.InstrStart
	for i := fn.InstrStart; i < fn.InstrEnd; i++ {
		if mod.Instructions[i].Op == bytecode.OpJump {
			idx = i
		}
	}
	backJump := mod.Instructions[idx]
	offset := int(backJump.Arg)
	target := idx + 1 + offset
	if target != fn.InstrStart {
		t.Errorf("expected the back-jump at %d to target the loop top %d, got %d", idx, fn.InstrStart, target)
	}
}

func TestGenerateGlobalInitUsesSetGlobal(t *testing.T) {
	mod := generate(t, `let x = 5;`)

	if len(mod.Globals) != 1 || mod.Globals[0].Name != "x" {
		t.Fatalf("expected one global named x, got %v", mod.Globals)
	}
	found := false
	for _, instr := range mod.Instructions {
		if instr.Op == bytecode.OpSetGlobal {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a SetGlobal instruction for the global initializer")
	}
}

func TestGenerateStringConcatUsesBuiltinCall(t *testing.T) {
	mod := generate(t, `func main(): string { return "a" + "b"; }`)

	fn := mod.Functions[0]
	got := ops(mod, fn.InstrStart, fn.InstrEnd)
	if !containsOp(got, bytecode.OpLoadBuiltinFunc) || !containsOp(got, bytecode.OpCall) {
		t.Errorf("expected string '+' to lower to a builtin call, got %v", got)
	}
}

func TestGenerateStringPlusCharPromotesCharThenConcats(t *testing.T) {
	mod := generate(t, `func greet(c : char) : string { return "hi " + c; }`)

	fn := mod.Functions[0]
	got := ops(mod, fn.InstrStart, fn.InstrEnd)

	// Two builtin calls: charToString to promote c, then strConcat. Both
	// route through LoadBuiltinFunc + Call, so the signal is two of each.
	count := func(op bytecode.OpCode) int {
		n := 0
		for _, o := range got {
			if o == op {
				n++
			}
		}
		return n
	}
	if count(bytecode.OpLoadBuiltinFunc) != 2 {
		t.Errorf("expected 2 LoadBuiltinFunc (charToString, strConcat), got %d in %v", count(bytecode.OpLoadBuiltinFunc), got)
	}
	if count(bytecode.OpLoadStringK) != 1 {
		t.Errorf("expected 1 LoadStringK for \"hi \", got %d in %v", count(bytecode.OpLoadStringK), got)
	}
}

func TestGenerateSmallIntLiteralUsesStoreSmallInt(t *testing.T) {
	mod := generate(t, `func main(): int { return 7; }`)

	fn := mod.Functions[0]
	got := ops(mod, fn.InstrStart, fn.InstrEnd)
	if !containsOp(got, bytecode.OpStoreSmallInt) {
		t.Errorf("expected a small int literal to use StoreSmallInt, got %v", got)
	}
}

func TestGenerateLargeIntLiteralUsesConstPool(t *testing.T) {
	mod := generate(t, `func main(): int { return 1000000; }`)

	fn := mod.Functions[0]
	got := ops(mod, fn.InstrStart, fn.InstrEnd)
	if !containsOp(got, bytecode.OpLoadIntK) {
		t.Errorf("expected an out-of-16-bit-range literal to use LoadIntK, got %v", got)
	}
	if len(mod.Consts.Ints) != 1 || mod.Consts.Ints[0] != 1000000 {
		t.Errorf("expected the constant pool to hold 1000000, got %v", mod.Consts.Ints)
	}
}

func TestGenerateNegatedLiteralIsFoldedNotNegated(t *testing.T) {
	mod := generate(t, `func main(): int { return -7; }`)

	fn := mod.Functions[0]
	got := ops(mod, fn.InstrStart, fn.InstrEnd)
	if containsOp(got, bytecode.OpNegInt) {
		t.Errorf("expected unary minus on a literal to fold into the constant, not emit NegInt, got %v", got)
	}
	if !containsOp(got, bytecode.OpStoreSmallInt) {
		t.Errorf("expected the folded negative literal to still use StoreSmallInt, got %v", got)
	}
}

func TestGenerateFunctionBodyEndsWithReturn(t *testing.T) {
	mod := generate(t, `func main() { }`)

	fn := mod.Functions[0]
	if fn.InstrEnd == fn.InstrStart {
		t.Fatalf("expected at least one instruction for an empty body's implicit return")
	}
	last := mod.Instructions[fn.InstrEnd-1]
	if last.Op != bytecode.OpReturn {
		t.Errorf("expected the last instruction to be Return, got %s", last.Op)
	}
}

func TestGenerateCallExprAllocatesConsecutiveRegistersForArgs(t *testing.T) {
	mod := generate(t, `
		func add(a: int, b: int): int { return a + b; }
		func main(): int { return add(1, 2); }
	`)
	main := mod.Functions[1]
	got := ops(mod, main.InstrStart, main.InstrEnd)
	if !containsOp(got, bytecode.OpCall) {
		t.Errorf("expected a Call instruction, got %v", got)
	}
}

func containsOp(ops []bytecode.OpCode, want bytecode.OpCode) bool {
	for _, op := range ops {
		if op == want {
			return true
		}
	}
	return false
}

func containsAdjacent(ops []bytecode.OpCode, first, second bytecode.OpCode) bool {
	for i := 0; i+1 < len(ops); i++ {
		if ops[i] == first && ops[i+1] == second {
			return true
		}
	}
	return false
}
