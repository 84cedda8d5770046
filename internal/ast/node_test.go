package ast

import "testing"

func TestScopeAddPreservesOrderAndLookup(t *testing.T) {
	ctx := NewContext()
	a := ctx.Intern("a")
	b := ctx.Intern("b")

	declA1 := &VarDecl{Name: a}
	declA2 := &VarDecl{Name: a} // shadow/redeclaration candidate
	declB := &VarDecl{Name: b}

	var scope Scope
	scope.Add(a, declA1)
	scope.Add(b, declB)
	scope.Add(a, declA2)

	order := scope.Decls()
	if len(order) != 3 || order[0] != declA1 || order[1] != declB || order[2] != declA2 {
		t.Fatalf("Decls() did not preserve insertion order: %v", order)
	}

	candidates := scope.Lookup(a)
	if len(candidates) != 2 || candidates[0] != declA1 || candidates[1] != declA2 {
		t.Errorf("Lookup(a) = %v, want [declA1, declA2]", candidates)
	}

	if got := scope.Lookup(ctx.Intern("nonexistent")); got != nil {
		t.Errorf("Lookup of an unregistered id should return nil, got %v", got)
	}
}

func TestSetTypeAndType(t *testing.T) {
	lit := &IntLit{}
	if lit.Type() != nil {
		t.Fatalf("fresh expression's Type() should be nil, got %v", lit.Type())
	}

	SetType(lit, nil)
	if lit.Type() != nil {
		t.Errorf("SetType(nil) should leave Type() nil")
	}
}

func TestCheckStateProgression(t *testing.T) {
	var d DeclBase
	if d.State != Unchecked {
		t.Fatalf("fresh DeclBase.State = %v, want Unchecked", d.State)
	}
	d.State = Checking
	d.State = Checked
	if d.State != Checked {
		t.Errorf("expected State to end as Checked")
	}
}
