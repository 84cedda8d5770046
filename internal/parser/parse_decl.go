package parser

import (
	"foxc/internal/ast"
	"foxc/internal/report"
	"foxc/internal/token"
)

// parseTopLevelDecl = func_decl | var_decl
//
// A unit's top level admits only function and global variable declarations
// (spec 3.5's UnitDecl).
func (p *Parser) parseTopLevelDecl() (ast.Decl, Result) {
	switch p.cur().Kind {
	case token.Func:
		return p.parseFuncDecl()
	case token.Let, token.Var:
		d, res := p.parseVarDecl()
		return d, res
	default:
		p.errorf(report.KindExpectedStmt, "expected a function or variable declaration, found %s", p.cur().Kind)
		return nil, Error
	}
}

// func_decl = 'func' ident '(' param_list? ')' (':' type_loc)? compound_stmt
func (p *Parser) parseFuncDecl() (*ast.FuncDecl, Result) {
	startRng := p.rng()
	p.advance() // 'func'

	nameTok, ok := p.expect(token.Ident, report.KindExpectedStmt)
	if !ok {
		return nil, Error
	}

	fn := ast.Alloc[ast.FuncDecl](p.ctx.Arena)
	fn.Name = p.ctx.Intern(nameTok.Ident)

	if _, ok := p.expect(token.LParen, report.KindExpectedRParen); !ok {
		return nil, Error
	}

	if !p.at(token.RParen) {
		for {
			param, res := p.parseParamDecl()
			if res != Ok {
				return nil, Error
			}
			fn.Params = append(fn.Params, param)
			fn.ParamScope.Add(param.Name, param)

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

	if p.at(token.Colon) {
		p.advance()
		tl, res := p.parseTypeLoc()
		if res != Ok {
			return nil, Error
		}
		fn.ReturnTypeLoc = tl
	}

	fn.HeaderEndLoc = p.toks[p.pos-1].Range.End()

	body, res := p.parseCompoundStmt()
	if res != Ok {
		return nil, Error
	}
	fn.Body = body
	fn.Rng = p.spanFrom(startRng)

	return fn, Ok
}

// param_decl = 'var'? ident ':' type_loc
func (p *Parser) parseParamDecl() (*ast.ParamDecl, Result) {
	startRng := p.rng()

	mutable := false
	if p.at(token.Var) {
		mutable = true
		p.advance()
	}

	nameTok, ok := p.expect(token.Ident, report.KindExpectedStmt)
	if !ok {
		return nil, Error
	}

	if _, ok := p.expect(token.Colon, report.KindExpectedType); !ok {
		return nil, Error
	}

	tl, res := p.parseTypeLoc()
	if res != Ok {
		return nil, Error
	}

	param := ast.Alloc[ast.ParamDecl](p.ctx.Arena)
	param.Name = p.ctx.Intern(nameTok.Ident)
	param.TypeLoc = tl
	param.IsMutable = mutable
	param.Rng = p.spanFrom(startRng)
	return param, Ok
}

// var_decl = ('let' | 'var') ident (':' type_loc)? ('=' expr)? ';'
func (p *Parser) parseVarDecl() (*ast.VarDecl, Result) {
	startRng := p.rng()
	isConst := p.at(token.Let)
	p.advance() // 'let' or 'var'

	nameTok, ok := p.expect(token.Ident, report.KindExpectedStmt)
	if !ok {
		return nil, Error
	}

	v := ast.Alloc[ast.VarDecl](p.ctx.Arena)
	v.Name = p.ctx.Intern(nameTok.Ident)
	v.IsConst = isConst

	if p.at(token.Colon) {
		p.advance()
		tl, res := p.parseTypeLoc()
		if res != Ok {
			return nil, Error
		}
		v.TypeLoc = tl
	}

	if p.at(token.Assign) {
		p.advance()
		init, res := p.parseExpr()
		if res == Error {
			p.synchronizeExpr()
		}
		v.Init = init
	}

	if _, ok := p.expect(token.Semi, report.KindExpectedSemi); !ok {
		return nil, Error
	}

	v.Rng = p.spanFrom(startRng)
	return v, Ok
}

// type_loc = ident | '[' type_loc ']'
func (p *Parser) parseTypeLoc() (*ast.TypeLoc, Result) {
	startRng := p.rng()

	if p.at(token.LBracket) {
		p.advance()
		elem, res := p.parseTypeLoc()
		if res != Ok {
			return nil, Error
		}
		if _, ok := p.expect(token.RBracket, report.KindExpectedRBracket); !ok {
			return nil, Error
		}
		tl := ast.Alloc[ast.TypeLoc](p.ctx.Arena)
		tl.Kind = ast.TypeLocArray
		tl.Elem = elem
		tl.Rng = p.spanFrom(startRng)
		return tl, Ok
	}

	if p.at(token.Ident) {
		nameTok := p.advance()
		tl := ast.Alloc[ast.TypeLoc](p.ctx.Arena)
		tl.Kind = ast.TypeLocNamed
		tl.Name = nameTok.Ident
		tl.Rng = p.spanFrom(startRng)
		return tl, Ok
	}

	p.errorf(report.KindExpectedType, "expected a type, found %s", p.cur().Kind)
	return nil, Error
}
