package lexer

import (
	"testing"

	"foxc/internal/report"
	"foxc/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *report.Engine) {
	t.Helper()
	sm := report.NewSourceManager()
	file := sm.LoadFromString("test.fox", src)
	diag := report.NewEngine(sm, nil)
	toks, _ := New(sm.GetContent(file), file, diag).Lex()
	return toks, diag
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexBasicDecl(t *testing.T) {
	toks, diag := lexAll(t, "let x = 10;")

	want := []token.Kind{token.Let, token.Ident, token.Assign, token.IntLit, token.Semi, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: want %v got %v", want, got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: want %s got %s", i, k, got[i])
		}
	}
	if toks[1].Ident != "x" {
		t.Errorf("ident text: want x got %q", toks[1].Ident)
	}
	if diag.AnyErrors() {
		t.Errorf("unexpected errors lexing %q", "let x = 10;")
	}
}

func TestLexOperators(t *testing.T) {
	toks, _ := lexAll(t, "= + - * / % ** == != < > <= >= && || ! & |")
	want := []token.Kind{
		token.Assign, token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.StarStar,
		token.EqEq, token.NotEq, token.Less, token.Greater, token.LessEq, token.GreaterEq,
		token.AndAnd, token.OrOr, token.Not, token.Amp, token.Pipe, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: want %d got %d (%v)", len(want), len(got), got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: want %s got %s", i, k, got[i])
		}
	}
}

func TestLexGreedyTwoCharOps(t *testing.T) {
	// '=' followed directly by another '=' must lex as one EqEq, not two Assigns.
	toks, _ := lexAll(t, "====")
	want := []token.Kind{token.EqEq, token.EqEq, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("want %v got %v", want, got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: want %s got %s", i, k, got[i])
		}
	}
}

func TestLexKeywordsVsIdents(t *testing.T) {
	toks, _ := lexAll(t, "func funcy if ifs else elsewhere while return as")
	want := []token.Kind{
		token.Func, token.Ident, token.If, token.Ident, token.Else, token.Ident, token.While, token.Return, token.As, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("want %v got %v", want, got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: want %s got %s", i, k, got[i])
		}
	}
}

func TestLexBoolLitIsNotKeyword(t *testing.T) {
	toks, _ := lexAll(t, "true false")
	if toks[0].Kind != token.BoolLit || toks[1].Kind != token.BoolLit {
		t.Fatalf("expected true/false to lex as BoolLit, got %v", kinds(toks))
	}
}

func TestLexIntVsDoubleLit(t *testing.T) {
	toks, _ := lexAll(t, "42 3.14 7.")
	if toks[0].Kind != token.IntLit {
		t.Errorf("42: want IntLit got %s", toks[0].Kind)
	}
	if toks[1].Kind != token.DoubleLit {
		t.Errorf("3.14: want DoubleLit got %s", toks[1].Kind)
	}
	// "7." is not followed by a digit, so the '.' does not join the number:
	// this lexes as IntLit("7") followed by Dot.
	if toks[2].Kind != token.IntLit || toks[3].Kind != token.Dot {
		t.Errorf("7.: want [IntLit Dot] got %v", kinds(toks[2:4]))
	}
}

func TestLexStringAndCharLit(t *testing.T) {
	toks, diag := lexAll(t, `"hello\n" 'a' '\''`)
	want := []token.Kind{token.StringLit, token.CharLit, token.CharLit, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("want %v got %v", want, got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: want %s got %s", i, k, got[i])
		}
	}
	if diag.AnyErrors() {
		t.Errorf("unexpected errors")
	}
}

func TestLexUnterminatedStringReportsAndRecovers(t *testing.T) {
	toks, diag := lexAll(t, "\"unterminated\nlet")
	if !diag.AnyErrors() {
		t.Fatalf("expected an unterminated-string error")
	}
	if toks[0].Kind != token.Invalid {
		t.Errorf("want first token Invalid, got %s", toks[0].Kind)
	}
	// Lexing must resume after the error rather than aborting.
	found := false
	for _, tok := range toks {
		if tok.Kind == token.Let {
			found = true
		}
	}
	if !found {
		t.Errorf("expected lexer to recover and still produce the trailing 'let'")
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	_, diag := lexAll(t, "/* never closed")
	if !diag.AnyErrors() {
		t.Fatalf("expected an unterminated-block-comment error")
	}
}

func TestLexLineCommentStopsAtNewline(t *testing.T) {
	toks, _ := lexAll(t, "let // x = 10\nvar")
	want := []token.Kind{token.Let, token.Var, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("want %v got %v", want, got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: want %s got %s", i, k, got[i])
		}
	}
}

func TestLexUnrecognizedByteIsInvalidButRecovers(t *testing.T) {
	toks, diag := lexAll(t, "let @ x")
	// The lexer reports nothing for '@' itself: it emits an Invalid token
	// and the parser turns that token into a diagnostic.
	if diag.AnyErrors() {
		t.Fatalf("expected no lexer diagnostic for '@'")
	}
	want := []token.Kind{token.Let, token.Invalid, token.Ident, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("want %v got %v", want, got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: want %s got %s", i, k, got[i])
		}
	}
}

func TestLexEmptyInputYieldsOnlyEOF(t *testing.T) {
	toks, diag := lexAll(t, "")
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("want single EOF token, got %v", kinds(toks))
	}
	if diag.AnyErrors() {
		t.Errorf("unexpected errors on empty input")
	}
}

func TestTokenText(t *testing.T) {
	sm := report.NewSourceManager()
	src := "let xyz = 123;"
	file := sm.LoadFromString("test.fox", src)
	diag := report.NewEngine(sm, nil)
	toks, _ := New(sm.GetContent(file), file, diag).Lex()

	if got := TokenText(sm, toks[1]); got != "xyz" {
		t.Errorf("TokenText: want %q got %q", "xyz", got)
	}
	if got := TokenText(sm, toks[3]); got != "123" {
		t.Errorf("TokenText: want %q got %q", "123", got)
	}
}
