package ast

import "testing"

func TestArenaAllocGrowsLen(t *testing.T) {
	a := NewArena()
	if a.Len() != 0 {
		t.Fatalf("fresh arena Len() = %d, want 0", a.Len())
	}

	n1 := Alloc[IntLit](a)
	n2 := Alloc[BoolLit](a)
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after two allocations", a.Len())
	}
	if n1 == nil || n2 == nil {
		t.Errorf("Alloc returned a nil pointer")
	}
}

func TestArenaResetDropsNodes(t *testing.T) {
	a := NewArena()
	Alloc[IntLit](a)
	Alloc[IntLit](a)
	a.Reset()

	if a.Len() != 0 {
		t.Errorf("Len() after Reset() = %d, want 0", a.Len())
	}
}

func TestArenaAllocZeroValue(t *testing.T) {
	a := NewArena()
	n := Alloc[IntLit](a)
	if n.Value != 0 {
		t.Errorf("freshly allocated IntLit.Value = %d, want zero value 0", n.Value)
	}
}
