package parser

import (
	"strconv"

	"foxc/internal/ast"
	"foxc/internal/report"
	"foxc/internal/token"
)

// parseExpr = assign_expr
//
// Expression parsing never returns NotFound: once the caller has decided an
// expression belongs here, failure to produce one is always an Error, and
// the caller is responsible for synchronizing afterward (spec 4.3).
func (p *Parser) parseExpr() (ast.Expr, Result) {
	return p.parseAssignExpr()
}

// assign_expr = or_expr ('=' assign_expr)?
//
// Right-associative: parsed by having the right-hand side recurse into
// parseAssignExpr again (spec 4.3).
func (p *Parser) parseAssignExpr() (ast.Expr, Result) {
	startRng := p.rng()
	lhs, res := p.parseOrExpr()
	if res != Ok {
		return nil, res
	}

	if p.at(token.Assign) {
		p.advance()
		rhs, res := p.parseAssignExpr()
		if res != Ok {
			return nil, Error
		}
		return p.binExpr(startRng, ast.OpAssign, lhs, rhs), Ok
	}

	return lhs, Ok
}

func (p *Parser) binExpr(startRng report.SourceRange, op ast.BinOp, lhs, rhs ast.Expr) *ast.BinaryExpr {
	b := ast.Alloc[ast.BinaryExpr](p.ctx.Arena)
	b.Op = op
	b.Lhs = lhs
	b.Rhs = rhs
	b.Rng = p.spanFrom(startRng)
	return b
}

// or_expr = and_expr ('||' and_expr)*
func (p *Parser) parseOrExpr() (ast.Expr, Result) {
	startRng := p.rng()
	lhs, res := p.parseAndExpr()
	if res != Ok {
		return nil, res
	}
	for p.at(token.OrOr) {
		p.advance()
		rhs, res := p.parseAndExpr()
		if res != Ok {
			return nil, Error
		}
		lhs = p.binExpr(startRng, ast.OpOr, lhs, rhs)
	}
	return lhs, Ok
}

// and_expr = eq_expr ('&&' eq_expr)*
func (p *Parser) parseAndExpr() (ast.Expr, Result) {
	startRng := p.rng()
	lhs, res := p.parseEqExpr()
	if res != Ok {
		return nil, res
	}
	for p.at(token.AndAnd) {
		p.advance()
		rhs, res := p.parseEqExpr()
		if res != Ok {
			return nil, Error
		}
		lhs = p.binExpr(startRng, ast.OpAnd, lhs, rhs)
	}
	return lhs, Ok
}

// eq_expr = comp_expr (('==' | '!=') comp_expr)*
func (p *Parser) parseEqExpr() (ast.Expr, Result) {
	startRng := p.rng()
	lhs, res := p.parseCompExpr()
	if res != Ok {
		return nil, res
	}
	for p.atAny(token.EqEq, token.NotEq) {
		op := ast.OpEq
		if p.at(token.NotEq) {
			op = ast.OpNe
		}
		p.advance()
		rhs, res := p.parseCompExpr()
		if res != Ok {
			return nil, Error
		}
		lhs = p.binExpr(startRng, op, lhs, rhs)
	}
	return lhs, Ok
}

// comp_expr = add_expr (('<' | '<=' | '>' | '>=') add_expr)*
func (p *Parser) parseCompExpr() (ast.Expr, Result) {
	startRng := p.rng()
	lhs, res := p.parseAddExpr()
	if res != Ok {
		return nil, res
	}
	for p.atAny(token.Less, token.LessEq, token.Greater, token.GreaterEq) {
		var op ast.BinOp
		switch p.cur().Kind {
		case token.Less:
			op = ast.OpLt
		case token.LessEq:
			op = ast.OpLe
		case token.Greater:
			op = ast.OpGt
		default:
			op = ast.OpGe
		}
		p.advance()
		rhs, res := p.parseAddExpr()
		if res != Ok {
			return nil, Error
		}
		lhs = p.binExpr(startRng, op, lhs, rhs)
	}
	return lhs, Ok
}

// add_expr = term (('+' | '-') term)*
func (p *Parser) parseAddExpr() (ast.Expr, Result) {
	startRng := p.rng()
	lhs, res := p.parseTerm()
	if res != Ok {
		return nil, res
	}
	for p.atAny(token.Plus, token.Minus) {
		op := ast.OpAdd
		if p.at(token.Minus) {
			op = ast.OpSub
		}
		p.advance()
		rhs, res := p.parseTerm()
		if res != Ok {
			return nil, Error
		}
		lhs = p.binExpr(startRng, op, lhs, rhs)
	}
	return lhs, Ok
}

// term = pow_expr (('*' | '/' | '%') pow_expr)*
func (p *Parser) parseTerm() (ast.Expr, Result) {
	startRng := p.rng()
	lhs, res := p.parsePowExpr()
	if res != Ok {
		return nil, res
	}
	for p.atAny(token.Star, token.Slash, token.Percent) {
		var op ast.BinOp
		switch p.cur().Kind {
		case token.Star:
			op = ast.OpMul
		case token.Slash:
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		p.advance()
		rhs, res := p.parsePowExpr()
		if res != Ok {
			return nil, Error
		}
		lhs = p.binExpr(startRng, op, lhs, rhs)
	}
	return lhs, Ok
}

// pow_expr = unary_expr ('**' pow_expr)?
//
// Right-associative (spec 4.3): the recommended simpler shape over the
// original's dedicated right-assoc code path.
func (p *Parser) parsePowExpr() (ast.Expr, Result) {
	startRng := p.rng()
	lhs, res := p.parseUnaryExpr()
	if res != Ok {
		return nil, res
	}
	if p.at(token.StarStar) {
		p.advance()
		rhs, res := p.parsePowExpr()
		if res != Ok {
			return nil, Error
		}
		return p.binExpr(startRng, ast.OpPow, lhs, rhs), Ok
	}
	return lhs, Ok
}

// unary_expr = ('!' | '-' | '+') unary_expr | postfix_expr
func (p *Parser) parseUnaryExpr() (ast.Expr, Result) {
	if p.atAny(token.Not, token.Minus, token.Plus) {
		startRng := p.rng()
		var op ast.UnaryOp
		switch p.cur().Kind {
		case token.Not:
			op = ast.OpNot
		case token.Minus:
			op = ast.OpNeg
		default:
			op = ast.OpPos
		}
		p.advance()

		child, res := p.parseUnaryExpr()
		if res != Ok {
			return nil, Error
		}

		u := ast.Alloc[ast.UnaryExpr](p.ctx.Arena)
		u.Op = op
		u.Child = child
		u.Rng = p.spanFrom(startRng)
		return u, Ok
	}

	return p.parsePostfixExpr()
}

// postfix_expr = primary_expr (call_suffix | index_suffix | member_suffix | cast_suffix)*
//
// Cast binds at the highest suffix priority, so `-x as int` is never
// reachable from here (it parses as `-(x as int)` because unary_expr calls
// this after consuming the prefix operator, matching spec 4.3).
func (p *Parser) parsePostfixExpr() (ast.Expr, Result) {
	startRng := p.rng()
	base, res := p.parsePrimaryExpr()
	if res != Ok {
		return nil, res
	}

	for {
		switch p.cur().Kind {
		case token.LParen:
			p.advance()
			var args []ast.Expr
			if !p.at(token.RParen) {
				for {
					arg, res := p.parseExpr()
					if res != Ok {
						return nil, Error
					}
					args = append(args, arg)
					if p.at(token.Comma) {
						p.advance()
						continue
					}
					break
				}
			}
			if _, ok := p.expect(token.RParen, report.KindExpectedRParen); !ok {
				return nil, Error
			}
			call := ast.Alloc[ast.CallExpr](p.ctx.Arena)
			call.Callee = base
			call.Args = args
			call.Rng = p.spanFrom(startRng)
			base = call

		case token.LBracket:
			p.advance()
			idx, res := p.parseExpr()
			if res != Ok {
				return nil, Error
			}
			if _, ok := p.expect(token.RBracket, report.KindExpectedRBracket); !ok {
				return nil, Error
			}
			sub := ast.Alloc[ast.SubscriptExpr](p.ctx.Arena)
			sub.BaseExpr = base
			sub.IndexExpr = idx
			sub.Rng = p.spanFrom(startRng)
			base = sub

		case token.Dot:
			p.advance()
			nameTok, ok := p.expect(token.Ident, report.KindExpectedStmt)
			if !ok {
				return nil, Error
			}
			member, ok := resolveMember(nameTok.Ident)
			if !ok {
				p.diag.Errorf(report.KindUndeclaredId, nameTok.Range, "no builtin member named %q", nameTok.Ident)
				return nil, Error
			}
			ref := ast.Alloc[ast.BuiltinMemberRefExpr](p.ctx.Arena)
			ref.BaseExpr = base
			ref.Member = member
			ref.Rng = p.spanFrom(startRng)
			base = ref

		case token.As:
			p.advance()
			tl, res := p.parseTypeLoc()
			if res != Ok {
				return nil, Error
			}
			cast := ast.Alloc[ast.CastExpr](p.ctx.Arena)
			cast.Child = base
			cast.TargetTypeLoc = tl
			cast.Rng = p.spanFrom(startRng)
			base = cast

		default:
			return base, Ok
		}
	}
}

// resolveMember looks a `.name` suffix up in the string member table and
// then the array member table, returning the first match without regard to
// the base's type; the caller reports undeclared_id if name matches
// neither (spec 4.5.3).
func resolveMember(name string) (ast.BuiltinMemberKind, bool) {
	if k, ok := ast.LookupStringMember(name); ok {
		return k, true
	}
	if k, ok := ast.LookupArrayMember(name); ok {
		return k, true
	}
	return 0, false
}

// primary_expr = literal | ident | '(' expr ')' | array_lit
func (p *Parser) parsePrimaryExpr() (ast.Expr, Result) {
	startRng := p.rng()

	switch p.cur().Kind {
	case token.IntLit:
		tok := p.advance()
		n := ast.Alloc[ast.IntLit](p.ctx.Arena)
		v, err := strconv.ParseInt(tokenText(p, tok), 10, 64)
		if err != nil {
			p.diag.Errorf(report.KindExpectedExpr, tok.Range, "malformed integer literal")
		}
		n.Value = v
		n.Rng = tok.Range
		return n, Ok

	case token.DoubleLit:
		tok := p.advance()
		n := ast.Alloc[ast.DoubleLit](p.ctx.Arena)
		v, err := strconv.ParseFloat(tokenText(p, tok), 64)
		if err != nil {
			p.diag.Errorf(report.KindExpectedExpr, tok.Range, "malformed double literal")
		}
		n.Value = v
		n.Rng = tok.Range
		return n, Ok

	case token.BoolLit:
		tok := p.advance()
		n := ast.Alloc[ast.BoolLit](p.ctx.Arena)
		n.Value = tokenText(p, tok) == "true"
		n.Rng = tok.Range
		return n, Ok

	case token.CharLit:
		tok := p.advance()
		n := ast.Alloc[ast.CharLit](p.ctx.Arena)
		n.Value = decodeCharLit(tokenText(p, tok))
		n.Rng = tok.Range
		return n, Ok

	case token.StringLit:
		tok := p.advance()
		n := ast.Alloc[ast.StringLit](p.ctx.Arena)
		n.Value = decodeStringLit(tokenText(p, tok))
		n.Rng = tok.Range
		return n, Ok

	case token.Ident:
		tok := p.advance()
		n := ast.Alloc[ast.UnresolvedDeclRefExpr](p.ctx.Arena)
		n.Name = p.ctx.Intern(tok.Ident)
		n.Rng = tok.Range
		return n, Ok

	case token.LParen:
		p.advance()
		inner, res := p.parseExpr()
		if res != Ok {
			return nil, Error
		}
		if _, ok := p.expect(token.RParen, report.KindExpectedRParen); !ok {
			return nil, Error
		}
		return inner, Ok

	case token.LBracket:
		return p.parseArrayLit(startRng)

	default:
		p.errorf(report.KindExpectedExpr, "expected an expression, found %s", p.cur().Kind)
		return nil, Error
	}
}

// array_lit = '[' (expr (',' expr)*)? ']'
func (p *Parser) parseArrayLit(startRng report.SourceRange) (ast.Expr, Result) {
	p.advance() // '['

	arr := ast.Alloc[ast.ArrayLit](p.ctx.Arena)
	if !p.at(token.RBracket) {
		for {
			elem, res := p.parseExpr()
			if res != Ok {
				return nil, Error
			}
			arr.Elems = append(arr.Elems, elem)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	if _, ok := p.expect(token.RBracket, report.KindExpectedRBracket); !ok {
		return nil, Error
	}
	arr.Rng = p.spanFrom(startRng)
	return arr, Ok
}
