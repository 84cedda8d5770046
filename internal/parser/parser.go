// Package parser implements Fox's recursive-descent parser (spec 4.3): one
// token of lookahead, panic-mode error recovery, precedence-climbing
// expressions. It produces an AST in which every name reference is still an
// ast.UnresolvedDeclRefExpr; internal/sema resolves those.
package parser

import (
	"foxc/internal/ast"
	"foxc/internal/report"
	"foxc/internal/token"
)

// Result is the tri-state outcome of a parse method (spec 4.3): Ok means a
// node was built; NotFound means the rule does not apply here and no input
// was consumed; Error means input was consumed but the rule failed (the
// caller should synchronize before continuing).
type Result int

const (
	Ok Result = iota
	NotFound
	Error
)

// Parser walks a fixed token vector for one file, producing declarations,
// statements, and expressions owned by ctx's arena.
type Parser struct {
	toks []token.Token
	pos  int

	file report.FileId
	diag *report.Engine
	ctx  *ast.Context
	sm   *report.SourceManager
}

// New creates a Parser over toks, the output of one internal/lexer.Lex call
// for file.
func New(toks []token.Token, file report.FileId, diag *report.Engine, ctx *ast.Context, sm *report.SourceManager) *Parser {
	return &Parser{toks: toks, file: file, diag: diag, ctx: ctx, sm: sm}
}

// ParseUnit parses an entire file into a UnitDecl (spec 3.5: "one per source
// file; is itself the root scope"). name is the unit's identifier, typically
// derived from the file's base name.
func (p *Parser) ParseUnit(name string) *ast.UnitDecl {
	unit := ast.Alloc[ast.UnitDecl](p.ctx.Arena)
	unit.Name = p.ctx.Intern(name)
	unit.File = p.file

	for !p.at(token.EOF) {
		start := p.pos
		decl, res := p.parseTopLevelDecl()
		if res == Ok {
			unit.Decls = append(unit.Decls, decl)
			unit.Scope.Add(declName(decl), decl)
		} else if res == Error || p.pos == start {
			p.synchronizeStmt()
		}
	}

	p.ctx.Unit = unit
	return unit
}

func declName(d ast.Decl) *ast.Ident {
	switch n := d.(type) {
	case *ast.FuncDecl:
		return n.Name
	case *ast.VarDecl:
		return n.Name
	default:
		report.PanicICE("declName: unhandled decl %T", d)
		return nil
	}
}

// -----------------------------------------------------------------------------
// cursor

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) atAny(ks ...token.Kind) bool {
	for _, k := range ks {
		if p.at(k) {
			return true
		}
	}
	return false
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) rng() report.SourceRange {
	return p.cur().Range
}

// spanFrom builds a range covering everything from start to the token just
// consumed (p.pos-1), used once a multi-token construct has finished
// parsing.
func (p *Parser) spanFrom(start report.SourceRange) report.SourceRange {
	return report.RangeOver(start, p.toks[p.pos-1].Range)
}

// expect consumes the current token if it has kind k; otherwise it reports
// diagKind at the current token and returns the zero Token and false.
func (p *Parser) expect(k token.Kind, diagKind report.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.diag.Errorf(diagKind, p.rng(), "expected %s, found %s", k, p.cur().Kind)
	return token.Token{}, false
}

func (p *Parser) errorf(kind report.Kind, format string, args ...any) {
	p.diag.Errorf(kind, p.rng(), format, args...)
}

// -----------------------------------------------------------------------------
// synchronization (spec 4.3)

// synchronizeStmt skips tokens until the next ';', a matching '}', or a
// statement-starting keyword, balancing brackets with counters so it never
// walks out of the enclosing construct.
func (p *Parser) synchronizeStmt() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.Semi:
			p.advance()
			return
		}
		if depth == 0 {
			if _, ok := token.StmtStartKeywords[p.cur().Kind]; ok {
				return
			}
		}
		p.advance()
	}
}

// synchronizeExpr skips to the first ';', ')', or ']' at the current
// bracket depth, used when an expression-granularity parse fails.
func (p *Parser) synchronizeExpr() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			if depth == 0 {
				return
			}
			depth--
		case token.Semi:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}
