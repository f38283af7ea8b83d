package parser

import (
	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/token"
)

func (p *Parser) blockStmt() *ast.BlockStmt {
	start := p.expect(token.Lbrace)
	blk := &ast.BlockStmt{}
	p.fnest++
	for p.tok.Kind != token.Rbrace && p.tok.Kind != token.EOF && !p.abort {
		if s := p.stmt(); s != nil {
			blk.Stmts = append(blk.Stmts, s)
		}
	}
	p.fnest--
	end := p.tok.Pos
	p.want(token.Rbrace)
	blk.SetPos(start, end)
	return blk
}

// stmt dispatches by leading token per spec.md §4.3.
func (p *Parser) stmt() ast.Stmt {
	switch p.tok.Kind {
	case token.Semi:
		p.next()
		return nil // null statement
	case token.Lbrace:
		return p.blockStmt()
	case token.KwBreak:
		start := p.tok.Pos
		p.next()
		p.want(token.Semi)
		s := &ast.BreakStmt{}
		s.SetPos(start, start)
		return s
	case token.KwContinue:
		start := p.tok.Pos
		p.next()
		p.want(token.Semi)
		s := &ast.ContinueStmt{}
		s.SetPos(start, start)
		return s
	case token.KwReturn:
		return p.returnStmt()
	case token.KwIf:
		return p.ifStmt()
	case token.KwWhile:
		return p.whileStmt()
	case token.KwFor:
		return p.forStmt()
	case token.KwUsing:
		return p.usingStmt()
	case token.KwClass, token.KwStruct, token.KwEnum, token.KwTypedef, token.KwTemplate:
		// local type declarations reuse the top-level declaration parsers;
		// they are Decls, so wrap in a DeclStmt-shaped ExprStmt is wrong —
		// instead recurse through topDecl and drop it into the block as a
		// pseudo-statement via declStmt.
		return p.declStmt()
	default:
		if d, ok := p.tryDeclaration(false, ast.AccessPublic); ok {
			return declToStmt(d)
		}
		return p.exprStmt()
	}
}

// declStmt handles local class/enum/typedef/template declarations,
// which share the top-level declaration grammar.
func (p *Parser) declStmt() ast.Stmt {
	d := p.topDecl()
	if d == nil {
		return nil
	}
	return declToStmt(d)
}

// declToStmt wraps a local declaration (from tryDeclaration or topDecl)
// so it can sit in a BlockStmt's Stmts list. Function-local named
// declarations other than variables (nested class/enum/etc.) are rare
// but legal; they are represented as a DeclStmt.
func declToStmt(d ast.Decl) ast.Stmt {
	if vd, ok := d.(*ast.VarDecl); ok {
		vs := &ast.VarDeclStmt{Type: vd.Type, Name: vd.Name, Init: vd.Init, Args: vd.Args, Braced: vd.Braced}
		vs.SetPos(vd.Pos(), vd.End())
		return vs
	}
	ds := &ast.DeclStmt{D: d}
	ds.SetPos(d.Pos(), d.End())
	return ds
}

func (p *Parser) exprStmt() ast.Stmt {
	start := p.tok.Pos
	x := p.expr()
	end := p.tok.Pos
	p.want(token.Semi)
	es := &ast.ExprStmt{X: x}
	es.SetPos(start, end)
	return es
}

func (p *Parser) returnStmt() ast.Stmt {
	start := p.expect(token.KwReturn)
	rs := &ast.ReturnStmt{}
	if p.tok.Kind != token.Semi {
		rs.Value = p.expr()
	}
	end := p.tok.Pos
	p.want(token.Semi)
	rs.SetPos(start, end)
	return rs
}

func (p *Parser) ifStmt() ast.Stmt {
	start := p.expect(token.KwIf)
	p.want(token.Lparen)
	cond := p.expr()
	p.want(token.Rparen)
	then := p.stmt()
	is := &ast.IfStmt{Cond: cond, Then: then}
	end := then.End()
	if p.got(token.KwElse) {
		is.Else = p.stmt()
		end = is.Else.End()
	}
	is.SetPos(start, end)
	return is
}

func (p *Parser) whileStmt() ast.Stmt {
	start := p.expect(token.KwWhile)
	p.want(token.Lparen)
	cond := p.expr()
	p.want(token.Rparen)
	body := p.stmt()
	ws := &ast.WhileStmt{Cond: cond, Body: body}
	ws.SetPos(start, body.End())
	return ws
}

func (p *Parser) forStmt() ast.Stmt {
	start := p.expect(token.KwFor)
	p.want(token.Lparen)

	fs := &ast.ForStmt{}
	if p.tok.Kind != token.Semi {
		fs.Init = p.stmt() // consumes its own trailing ';'
	} else {
		p.next()
	}
	if p.tok.Kind != token.Semi {
		fs.Cond = p.expr()
	}
	p.want(token.Semi)
	if p.tok.Kind != token.Rparen {
		fs.Post = p.expr()
	}
	p.want(token.Rparen)
	fs.Body = p.stmt()
	fs.SetPos(start, fs.Body.End())
	return fs
}

func (p *Parser) usingStmt() ast.Stmt {
	start := p.expect(token.KwUsing)
	us := &ast.UsingStmt{}
	if p.tok.Kind == token.Ident && p.frag.PeekAt(1).Kind == token.Assign {
		us.Name = p.name()
		p.next() // '='
		us.Alias = p.typeExpr()
	} else {
		p.name() // using-namespace directive: Name and Alias stay nil
	}
	end := p.tok.Pos
	p.want(token.Semi)
	us.SetPos(start, end)
	return us
}
