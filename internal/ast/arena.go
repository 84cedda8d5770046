package ast

// Arena is a bump allocator: every AST or type node the parser and Sema
// create is owned by one, never freed individually (spec 3.5, 3.6). Go's
// garbage collector does the actual reclamation, but Arena still gives the
// compiler a single place that "owns" every live node and a single Reset
// point that invalidates them all at once, matching the teacher's
// LinearAllocator usage pattern (ComedicChimera/chai
// original_source/lib/Common/LinearAllocator.cpp) and spec 3.6's
// lifecycle rule ("resetting the arena invalidates every AST and type
// pointer").
type Arena struct {
	nodes []any
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc allocates a new zero-valued T owned by the arena and returns a
// pointer to it.
func Alloc[T any](a *Arena) *T {
	n := new(T)
	a.nodes = append(a.nodes, n)
	return n
}

// Reset drops every node the arena has allocated. Any pointer obtained from
// Alloc before Reset becomes logically dead: spec 3.6 forbids dereferencing
// it afterward, though nothing in Go will fault if a caller does so by
// mistake (unlike the C++ original, where the backing memory can be
// reused). Reset never double-frees, since it only drops references.
func (a *Arena) Reset() {
	a.nodes = nil
}

// Len reports how many nodes the arena currently owns, exposed for tests
// that assert on arena growth/reset behavior (spec 8, "arena immutability").
func (a *Arena) Len() int {
	return len(a.nodes)
}
