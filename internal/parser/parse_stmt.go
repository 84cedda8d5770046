package parser

import (
	"foxc/internal/ast"
	"foxc/internal/report"
	"foxc/internal/token"
)

// parseCompoundStmt = '{' stmt* '}'
//
// Declarations encountered directly inside the block are accumulated and
// committed to the CompoundStmt's own Scope as they're parsed ("delayed
// declaration registration", spec 4.3): since Scope.Add just appends, a
// later statement in the same block can already see a name declared by an
// earlier one, and Sema's shadow-checking walks the whole Scope rather than
// a prefix of it.
func (p *Parser) parseCompoundStmt() (*ast.CompoundStmt, Result) {
	startRng := p.rng()
	if _, ok := p.expect(token.LBrace, report.KindExpectedLBrace); !ok {
		return nil, Error
	}

	cs := ast.Alloc[ast.CompoundStmt](p.ctx.Arena)

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		startPos := p.pos
		stmt, res := p.parseStmt()
		if res == Ok {
			cs.Stmts = append(cs.Stmts, stmt)
			if ds, isDecl := stmt.(*ast.DeclStmt); isDecl {
				cs.Scope.Add(ds.Decl.Name, ds.Decl)
			}
		} else if res == Error || p.pos == startPos {
			p.synchronizeStmt()
		}
	}

	if _, ok := p.expect(token.RBrace, report.KindExpectedRBrace); !ok {
		p.diag.Notef(report.KindToMatchThisBrace, startRng, "to match this brace")
		return nil, Error
	}

	cs.Rng = p.spanFrom(startRng)
	return cs, Ok
}

// parseStmt = null_stmt | return_stmt | if_stmt | while_stmt | var_decl_stmt
//           | compound_stmt | expr_stmt
func (p *Parser) parseStmt() (ast.Stmt, Result) {
	switch p.cur().Kind {
	case token.Semi:
		rng := p.rng()
		p.advance()
		n := ast.Alloc[ast.NullStmt](p.ctx.Arena)
		n.Rng = rng
		return n, Ok

	case token.Return:
		return p.parseReturnStmt()

	case token.If:
		return p.parseConditionStmt()

	case token.While:
		return p.parseWhileStmt()

	case token.Let, token.Var:
		v, res := p.parseVarDecl()
		if res != Ok {
			return nil, res
		}
		ds := ast.Alloc[ast.DeclStmt](p.ctx.Arena)
		ds.Decl = v
		ds.Rng = v.Rng
		return ds, Ok

	case token.LBrace:
		return p.parseCompoundStmt()

	case token.Else:
		p.errorf(report.KindElseWithoutIf, "'else' without a preceding 'if'")
		p.advance()
		return nil, Error

	default:
		return p.parseExprStmt()
	}
}

// return_stmt = 'return' expr? ';'
func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, Result) {
	startRng := p.rng()
	p.advance() // 'return'

	rs := ast.Alloc[ast.ReturnStmt](p.ctx.Arena)
	if !p.at(token.Semi) {
		val, res := p.parseExpr()
		if res == Error {
			p.synchronizeExpr()
		}
		rs.Value = val
	}

	if _, ok := p.expect(token.Semi, report.KindExpectedSemi); !ok {
		return nil, Error
	}
	rs.Rng = p.spanFrom(startRng)
	return rs, Ok
}

// if_stmt = 'if' expr compound_stmt ('else' (if_stmt | compound_stmt))?
func (p *Parser) parseConditionStmt() (*ast.ConditionStmt, Result) {
	startRng := p.rng()
	p.advance() // 'if'

	cond, res := p.parseExpr()
	if res != Ok {
		p.synchronizeExpr()
		return nil, Error
	}

	then, res := p.parseCompoundStmt()
	if res != Ok {
		return nil, Error
	}

	cs := ast.Alloc[ast.ConditionStmt](p.ctx.Arena)
	cs.Cond = cond
	cs.Then = then

	if p.at(token.Else) {
		p.advance()
		if p.at(token.If) {
			elseIf, res := p.parseConditionStmt()
			if res != Ok {
				return nil, Error
			}
			cs.Else = elseIf
		} else {
			elseBlock, res := p.parseCompoundStmt()
			if res != Ok {
				return nil, Error
			}
			cs.Else = elseBlock
		}
	}

	cs.Rng = p.spanFrom(startRng)
	return cs, Ok
}

// while_stmt = 'while' expr compound_stmt
func (p *Parser) parseWhileStmt() (*ast.WhileStmt, Result) {
	startRng := p.rng()
	p.advance() // 'while'

	cond, res := p.parseExpr()
	if res != Ok {
		p.synchronizeExpr()
		return nil, Error
	}

	body, res := p.parseCompoundStmt()
	if res != Ok {
		return nil, Error
	}

	ws := ast.Alloc[ast.WhileStmt](p.ctx.Arena)
	ws.Cond = cond
	ws.Body = body
	ws.Rng = p.spanFrom(startRng)
	return ws, Ok
}

// expr_stmt = expr ';'
func (p *Parser) parseExprStmt() (*ast.ExprStmt, Result) {
	startRng := p.rng()
	x, res := p.parseExpr()
	if res != Ok {
		p.synchronizeExpr()
		return nil, Error
	}

	if _, ok := p.expect(token.Semi, report.KindExpectedSemi); !ok {
		return nil, Error
	}

	es := ast.Alloc[ast.ExprStmt](p.ctx.Arena)
	es.X = x
	es.Rng = p.spanFrom(startRng)
	return es, Ok
}
