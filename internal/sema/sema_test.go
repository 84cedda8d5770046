package sema

import (
	"testing"

	"foxc/internal/ast"
	"foxc/internal/lexer"
	"foxc/internal/parser"
	"foxc/internal/report"
)

func check(t *testing.T, src string) (*ast.UnitDecl, *report.Engine) {
	t.Helper()
	unit, diag, _ := checkCapturing(t, src)
	return unit, diag
}

// recordingConsumer collects every diagnostic (and its attached notes)
// Sema emits, letting a test assert on which Kinds were reported without
// screen-scraping the text consumer's rendered output.
type recordingConsumer struct {
	kinds []report.Kind
}

func (c *recordingConsumer) Consume(sm *report.SourceManager, d report.Diagnostic) {
	c.kinds = append(c.kinds, d.Kind)
	for _, n := range d.Notes {
		c.kinds = append(c.kinds, n.Kind)
	}
}

func checkCapturing(t *testing.T, src string) (*ast.UnitDecl, *report.Engine, *recordingConsumer) {
	t.Helper()
	rec := &recordingConsumer{}
	sm := report.NewSourceManager()
	file := sm.LoadFromString("test.fox", src)
	diag := report.NewEngine(sm, rec)

	toks, _ := lexer.New(sm.GetContent(file), file, diag).Lex()
	ctx := ast.NewContext()
	unit := parser.New(toks, file, diag, ctx, sm).ParseUnit("test")
	if diag.AnyErrors() {
		t.Fatalf("unexpected parse errors for %q", src)
	}

	NewChecker(ctx, diag).Check(unit)
	return unit, diag, rec
}

func TestCheckWellTypedProgram(t *testing.T) {
	_, diag := check(t, `
		func add(a: int, b: int): int {
			return a + b;
		}
		func main() {
			let x = add(1, 2);
			var y = x;
			y = y + 1;
		}
	`)
	if diag.AnyErrors() {
		t.Fatalf("unexpected errors checking a well-typed program")
	}
}

func TestCheckUndeclaredIdentifier(t *testing.T) {
	_, diag := check(t, `func main() { let x = y; }`)
	if !diag.AnyErrors() {
		t.Fatalf("expected an undeclared-identifier error")
	}
}

func TestCheckForwardReferenceToLaterFunction(t *testing.T) {
	// main calls helper, which is declared after it: Sema's two-pass
	// structure (signatures first, then bodies) must make this legal.
	_, diag := check(t, `
		func main(): int {
			return helper();
		}
		func helper(): int {
			return 1;
		}
	`)
	if diag.AnyErrors() {
		t.Fatalf("unexpected errors on a forward reference to a later function")
	}
}

func TestCheckSelfReferentialInitializerIsError(t *testing.T) {
	_, diag := check(t, `func main() { let x = x; }`)
	if !diag.AnyErrors() {
		t.Fatalf("expected a self-referential-initializer error")
	}
}

func TestCheckStringComparisonRejected(t *testing.T) {
	tests := []string{
		`func main() { let a = "x" < "y"; }`,
		`func main() { let a = "x" >= "y"; }`,
		`func main() { let a = "x" == "y"; }`,
		`func main() { let a = "x" != "y"; }`,
	}
	for _, src := range tests {
		_, diag := check(t, src)
		if !diag.AnyErrors() {
			t.Errorf("expected a string-comparison error for %q", src)
		}
	}
}

func TestCheckNumericComparisonAccepted(t *testing.T) {
	_, diag := check(t, `func main() { let a = 1 < 2; let b = 1.0 >= 2.0; }`)
	if diag.AnyErrors() {
		t.Fatalf("unexpected errors checking numeric comparisons")
	}
}

func TestCheckBoolComparisonRejected(t *testing.T) {
	_, diag := check(t, `func main() { let a = true < false; }`)
	if !diag.AnyErrors() {
		t.Fatalf("expected a bool-comparison error")
	}
}

func TestCheckAssignToImmutableParamIsError(t *testing.T) {
	_, diag := check(t, `func f(a: int) { a = 1; }`)
	if !diag.AnyErrors() {
		t.Fatalf("expected an error assigning to an immutable (non-'var') parameter")
	}
}

func TestCheckAssignToMutableParamOk(t *testing.T) {
	_, diag := check(t, `func f(var a: int) { a = 1; }`)
	if diag.AnyErrors() {
		t.Fatalf("unexpected error assigning to a mutable parameter")
	}
}

func TestCheckAssignToLetIsError(t *testing.T) {
	_, diag := check(t, `func main() { let x = 1; x = 2; }`)
	if !diag.AnyErrors() {
		t.Fatalf("expected an error assigning to a `let` binding")
	}
}

func TestCheckStringConcatViaPlus(t *testing.T) {
	unit, diag := check(t, `func main() { let s = "a" + "b"; }`)
	if diag.AnyErrors() {
		t.Fatalf("unexpected errors concatenating strings with '+'")
	}
	fn := unit.Decls[0].(*ast.FuncDecl)
	varDecl := fn.Body.Stmts[0].(*ast.DeclStmt).Decl
	bin := varDecl.Init.(*ast.BinaryExpr)
	if bin.Op != ast.OpConcat {
		t.Errorf("expected '+' on strings to rewrite to OpConcat, got %s", bin.Op)
	}
}

func TestCheckArithTypeMismatchIsError(t *testing.T) {
	_, diag := check(t, `func main() { let x = 1 + 1.0; }`)
	if !diag.AnyErrors() {
		t.Fatalf("expected an error mixing int and double without a cast")
	}
}

func TestCheckLogicalOperatorsRequireBool(t *testing.T) {
	_, diag := check(t, `func main() { let x = 1 && true; }`)
	if !diag.AnyErrors() {
		t.Fatalf("expected an error: && requires a bool left operand")
	}
}

func TestCheckDuplicateGlobalIsIllegalRedeclNotAmbiguous(t *testing.T) {
	_, diag, rec := checkCapturing(t, `
		let x: int = 0;
		let x: int = 1;
		func f(): int { return x; }
	`)
	if !diag.AnyErrors() {
		t.Fatalf("expected an illegal-redeclaration error for the duplicate global x")
	}
	if !hasKind(rec.kinds, report.KindIllegalRedecl) {
		t.Errorf("expected an illegal_redeclaration diagnostic, got %v", rec.kinds)
	}
	if hasKind(rec.kinds, report.KindAmbiguousRef) {
		t.Errorf("did not expect ambiguous_ref once pruning leaves a single legal candidate, got %v", rec.kinds)
	}
}

func hasKind(kinds []report.Kind, want report.Kind) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func TestCheckDuplicateParamIsIllegalRedecl(t *testing.T) {
	_, diag := check(t, `func f(a: int, a: int): int { return a; }`)
	if !diag.AnyErrors() {
		t.Fatalf("expected an illegal-redeclaration error for the duplicate parameter a")
	}
}

func TestCheckCastToSameTypeWarnsRedundant(t *testing.T) {
	_, diag, rec := checkCapturing(t, `func main(): int { let x: int = 1; return x as int; }`)
	if diag.AnyErrors() {
		t.Fatalf("a redundant cast is a warning, not an error")
	}
	if !hasKind(rec.kinds, report.KindUselessRedundantCast) {
		t.Errorf("expected a useless_redundant_cast diagnostic, got %v", rec.kinds)
	}
}

func TestCheckCastToWideningTypeHasNoRedundantWarning(t *testing.T) {
	_, _, rec := checkCapturing(t, `func main(): double { let x: int = 1; return x as double; }`)
	if hasKind(rec.kinds, report.KindUselessRedundantCast) {
		t.Errorf("did not expect useless_redundant_cast for a genuine int->double cast, got %v", rec.kinds)
	}
}
