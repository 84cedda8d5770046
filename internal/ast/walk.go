package ast

// Hooks bundles the pre/post callbacks a Walk invokes for each node family.
// A nil hook is simply skipped. This replaces the double-dispatch
// ASTWalker+ASTVisitor pair the original compiler carried in two separate
// copies (one per historical implementation) with the single generic
// traversal spec 9's REDESIGN FLAGS calls for.
//
// Each Pre hook returns false to skip descending into that node's children
// (e.g. Sema's finalization pass uses this to stop at a node already poisoned
// by an inference failure, per spec 4.4.3's mute-on-first-failure rule).
type Hooks struct {
	PreDecl  func(Decl) bool
	PostDecl func(Decl)
	PreStmt  func(Stmt) bool
	PostStmt func(Stmt)
	PreExpr  func(Expr) bool
	PostExpr func(Expr)
}

// WalkDecl traverses d and everything reachable from it, in source order.
func WalkDecl(d Decl, h *Hooks) {
	if d == nil {
		return
	}
	if h.PreDecl != nil && !h.PreDecl(d) {
		return
	}

	switch n := d.(type) {
	case *UnitDecl:
		for _, child := range n.Decls {
			WalkDecl(child, h)
		}
	case *FuncDecl:
		for _, p := range n.Params {
			WalkDecl(p, h)
		}
		if n.Body != nil {
			WalkStmt(n.Body, h)
		}
	case *ParamDecl:
		// leaf
	case *VarDecl:
		WalkExpr(n.Init, h)
	case *BuiltinFuncDecl:
		// leaf; never appears in a walked tree produced by the parser
	}

	if h.PostDecl != nil {
		h.PostDecl(d)
	}
}

// WalkStmt traverses s and everything reachable from it, in source order.
func WalkStmt(s Stmt, h *Hooks) {
	if s == nil {
		return
	}
	if h.PreStmt != nil && !h.PreStmt(s) {
		return
	}

	switch n := s.(type) {
	case *NullStmt:
		// leaf
	case *ReturnStmt:
		WalkExpr(n.Value, h)
	case *ConditionStmt:
		WalkExpr(n.Cond, h)
		WalkStmt(n.Then, h)
		WalkStmt(n.Else, h)
	case *WhileStmt:
		WalkExpr(n.Cond, h)
		WalkStmt(n.Body, h)
	case *CompoundStmt:
		for _, child := range n.Stmts {
			WalkStmt(child, h)
		}
	case *DeclStmt:
		WalkDecl(n.Decl, h)
	case *ExprStmt:
		WalkExpr(n.X, h)
	}

	if h.PostStmt != nil {
		h.PostStmt(s)
	}
}

// WalkExpr traverses e and everything reachable from it, in source order. A
// nil e is a no-op, so callers never need to guard optional children
// (ReturnStmt.Value, VarDecl.Init, ...) before calling this.
func WalkExpr(e Expr, h *Hooks) {
	if e == nil {
		return
	}
	if h.PreExpr != nil && !h.PreExpr(e) {
		return
	}

	switch n := e.(type) {
	case *IntLit, *DoubleLit, *BoolLit, *CharLit, *StringLit:
		// leaf
	case *ArrayLit:
		for _, elem := range n.Elems {
			WalkExpr(elem, h)
		}
	case *BinaryExpr:
		WalkExpr(n.Lhs, h)
		WalkExpr(n.Rhs, h)
	case *UnaryExpr:
		WalkExpr(n.Child, h)
	case *CastExpr:
		WalkExpr(n.Child, h)
	case *SubscriptExpr:
		WalkExpr(n.BaseExpr, h)
		WalkExpr(n.IndexExpr, h)
	case *CallExpr:
		WalkExpr(n.Callee, h)
		for _, a := range n.Args {
			WalkExpr(a, h)
		}
	case *UnresolvedDeclRefExpr, *DeclRefExpr:
		// leaf
	case *BuiltinMemberRefExpr:
		WalkExpr(n.BaseExpr, h)
	case *ErrorExpr:
		// leaf
	}

	if h.PostExpr != nil {
		h.PostExpr(e)
	}
}
