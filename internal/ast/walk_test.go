package ast

import "testing"

func TestWalkExprVisitsChildrenInOrder(t *testing.T) {
	// (1 + 2)
	lhs := &IntLit{Value: 1}
	rhs := &IntLit{Value: 2}
	bin := &BinaryExpr{Op: OpAdd, Lhs: lhs, Rhs: rhs}

	var visited []Expr
	WalkExpr(bin, &Hooks{
		PreExpr: func(e Expr) bool {
			visited = append(visited, e)
			return true
		},
	})

	if len(visited) != 3 || visited[0] != bin || visited[1] != lhs || visited[2] != rhs {
		t.Fatalf("expected [bin, lhs, rhs] pre-order, got %v", visited)
	}
}

func TestWalkExprPreFalseSkipsChildren(t *testing.T) {
	lhs := &IntLit{Value: 1}
	rhs := &IntLit{Value: 2}
	bin := &BinaryExpr{Op: OpAdd, Lhs: lhs, Rhs: rhs}

	var visited []Expr
	WalkExpr(bin, &Hooks{
		PreExpr: func(e Expr) bool {
			visited = append(visited, e)
			return e != bin // stop descending once we hit the root
		},
	})

	if len(visited) != 1 {
		t.Fatalf("expected descent into children to be skipped, visited %v", visited)
	}
}

func TestWalkExprNilIsNoOp(t *testing.T) {
	calls := 0
	WalkExpr(nil, &Hooks{PreExpr: func(Expr) bool { calls++; return true }})
	if calls != 0 {
		t.Errorf("expected WalkExpr(nil, ...) to never invoke hooks")
	}
}

func TestWalkStmtDescendsIntoCompoundAndCondition(t *testing.T) {
	cond := &BoolLit{Value: true}
	thenBody := &CompoundStmt{Stmts: []Stmt{&NullStmt{}}}
	ifStmt := &ConditionStmt{Cond: cond, Then: thenBody}
	block := &CompoundStmt{Stmts: []Stmt{ifStmt}}

	var stmtsSeen []Stmt
	var exprsSeen []Expr
	WalkStmt(block, &Hooks{
		PreStmt: func(s Stmt) bool { stmtsSeen = append(stmtsSeen, s); return true },
		PreExpr: func(e Expr) bool { exprsSeen = append(exprsSeen, e); return true },
	})

	if len(stmtsSeen) != 4 { // block, ifStmt, the Then block, the NullStmt inside it
		t.Fatalf("expected 4 statements visited, got %d: %v", len(stmtsSeen), stmtsSeen)
	}
	if len(exprsSeen) != 1 || exprsSeen[0] != cond {
		t.Fatalf("expected exactly the condition expression visited, got %v", exprsSeen)
	}
}

func TestWalkDeclDescendsIntoFuncBody(t *testing.T) {
	retVal := &IntLit{Value: 0}
	body := &CompoundStmt{Stmts: []Stmt{&ReturnStmt{Value: retVal}}}
	fn := &FuncDecl{Body: body}

	var exprsSeen []Expr
	WalkDecl(fn, &Hooks{
		PreExpr: func(e Expr) bool { exprsSeen = append(exprsSeen, e); return true },
	})

	if len(exprsSeen) != 1 || exprsSeen[0] != retVal {
		t.Fatalf("expected the return value expression to be visited, got %v", exprsSeen)
	}
}

func TestWalkDeclNilIsNoOp(t *testing.T) {
	calls := 0
	WalkDecl(nil, &Hooks{PreDecl: func(Decl) bool { calls++; return true }})
	if calls != 0 {
		t.Errorf("expected WalkDecl(nil, ...) to never invoke hooks")
	}
}

func TestWalkPostHooksFireAfterChildren(t *testing.T) {
	lhs := &IntLit{Value: 1}
	rhs := &IntLit{Value: 2}
	bin := &BinaryExpr{Op: OpAdd, Lhs: lhs, Rhs: rhs}

	var order []string
	WalkExpr(bin, &Hooks{
		PreExpr:  func(e Expr) bool { order = append(order, "pre"); return true },
		PostExpr: func(e Expr) { order = append(order, "post") },
	})

	// pre(bin) pre(lhs) post(lhs) pre(rhs) post(rhs) post(bin)
	want := []string{"pre", "pre", "post", "pre", "post", "post"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}
