package parser

import (
	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/token"
)

// tryDeclaration implements declaration detection (spec.md §4.3.1):
// read optional specifiers, then a type-specifier, then a declarator.
// At each step a committed decision may be made: constructor,
// destructor, cast operator, regular function, or variable. If none
// applies before the fragment's natural boundary, the parser rewinds
// to its entry position and reports "not a declaration".
func (p *Parser) tryDeclaration(isMember bool, access ast.Access) (ast.Decl, bool) {
	mark := p.frag.Mark()
	start := p.tok.Pos

	spec := p.specifiers()
	spec.Access = access

	// Destructor: ~Name(...)
	if p.tok.Kind == token.Tilde {
		p.next()
		name := p.name()
		fd := p.finishFuncDecl(start, name, spec, true, nil)
		return fd, true
	}

	// Constructor: bare Name immediately followed by '(' inside a class,
	// with no intervening type — recognized before falling into the
	// general type-specifier path.
	if isMember && p.tok.Kind == token.Ident && p.frag.PeekAt(1).Kind == token.Lparen {
		name := p.name()
		fd := p.finishFuncDecl(start, name, spec, false, nil)
		fd.Result = nil
		if fd.Body == nil && p.tok.Kind == token.Semi {
			p.next()
		}
		return fd, true
	}

	// Cast operator: `operator` Type `(` `)`
	if p.tok.Kind == token.KwOperator && p.frag.PeekAt(1).Kind != token.Lparen &&
		p.frag.PeekAt(1).Kind != token.Lbrack {
		opStart := p.tok.Pos
		p.next()
		if suffix := p.tryLiteralOperatorSuffix(); suffix != "" {
			name := &ast.OperatorName{LiteralSuffx: suffix}
			name.SetPos(opStart, p.tok.Pos)
			return p.finishFuncDecl(start, name, spec, false, nil), true
		}
		target := p.typeExpr()
		name := &ast.OperatorName{}
		name.SetPos(opStart, opStart)
		fd := p.finishFuncDecl(start, name, spec, false, target)
		return fd, true
	}

	// General path: type-specifier, then declarator.
	if !p.startsType() {
		p.frag.Reset(mark)
		p.tok = p.frag.Peek()
		return nil, false
	}
	ty := p.typeExpr()

	// operator NAME after a type prefix never happens in this grammar
	// (cast operators have no return type), so the only remaining
	// declarator forms are: Name(...) -> function, `operator OP`
	// -> operator function/subscript/call, or Name [= init]; -> variable.
	if p.tok.Kind == token.KwOperator {
		name := p.operatorName()
		fd := p.finishFuncDecl(start, name, spec, false, ty)
		return fd, true
	}

	if p.tok.Kind != token.Ident {
		p.frag.Reset(mark)
		p.tok = p.frag.Peek()
		return nil, false
	}
	name := p.name()

	// `Name(` is a function declarator when `)` or a token that can
	// begin a parameter type follows; otherwise it is direct-initialization.
	if p.tok.Kind == token.Lparen {
		switch p.frag.PeekAt(1).Kind {
		case token.Rparen, token.Ident, token.KwVoid, token.KwBool, token.KwChar,
			token.KwInt, token.KwFloat, token.KwDouble, token.KwConst:
			fd := p.finishFuncDecl(start, name, spec, false, ty)
			return fd, true
		}
	}

	// Variable declaration.
	vd := &ast.VarDecl{Type: ty, Name: name, Static: spec.Static, Access: access}
	switch p.tok.Kind {
	case token.Assign:
		p.next()
		vd.Init = p.assignExpr()
	case token.Lparen:
		// direct-initialization T x(e1, e2), stored in Args like a
		// brace-init argument list but with Braced left false. An
		// identifier right after `(` is taken as a parameter type above,
		// so `T x(y);` declares a function.
		p.next()
		lst := p.frag.List(token.Rparen)
		for !lst.Done() {
			vd.Args = append(vd.Args, p.assignExpr())
			if !p.consumeComma(lst) {
				break
			}
		}
		p.want(token.Rparen)
	case token.Lbrace:
		p.next()
		vd.Braced = true
		lst := p.frag.List(token.Rbrace)
		for !lst.Done() {
			vd.Args = append(vd.Args, p.assignExpr())
			if !p.consumeComma(lst) {
				break
			}
		}
		p.want(token.Rbrace)
	}
	end := p.tok.Pos
	p.want(token.Semi)
	vd.SetPos(start, end)
	return vd, true
}

// specifiers consumes any leading storage/virtuality/const specifiers
// that may precede a declarator.
func (p *Parser) specifiers() ast.FuncSpecifiers {
	var s ast.FuncSpecifiers
	for {
		switch p.tok.Kind {
		case token.KwVirtual:
			s.Virtual = true
		case token.KwStatic:
			s.Static = true
		case token.KwExplicit:
			s.Explicit = true
		case token.KwConstexpr:
			s.Constexpr = true
		default:
			return s
		}
		p.next()
	}
}

// startsType reports whether the current token can begin a
// type-specifier, without consuming anything.
func (p *Parser) startsType() bool {
	switch p.tok.Kind {
	case token.KwVoid, token.KwBool, token.KwChar, token.KwInt, token.KwFloat,
		token.KwDouble, token.KwConst, token.Ident:
		return true
	}
	return false
}

func (p *Parser) operatorName() *ast.OperatorName {
	start := p.expect(token.KwOperator)
	on := &ast.OperatorName{}
	switch {
	case p.tok.Kind == token.Lparen && p.frag.PeekAt(1).Kind == token.Rparen:
		p.next()
		p.next()
		on.IsCall = true
	case p.tok.Kind == token.Lbrack && p.frag.PeekAt(1).Kind == token.Rbrack:
		p.next()
		p.next()
		on.IsIndex = true
	default:
		on.Op = p.tok.Kind
		p.next()
	}
	on.SetPos(start, start)
	return on
}

// tryLiteralOperatorSuffix recognizes `"" suffix` right after `operator`,
// as used by literal-operator declarations (`operator"" _km`).
func (p *Parser) tryLiteralOperatorSuffix() string {
	if p.tok.Kind != token.StringLit || p.tok.Text != "" {
		return ""
	}
	p.next()
	if p.tok.Kind != token.Ident {
		p.syntaxError("expected literal-operator suffix identifier")
		return "_"
	}
	suffix := p.tok.Text
	p.next()
	return suffix
}

// finishFuncDecl parses the parameter list, optional trailing
// specifiers, and body/`;`/`= default`/`= delete`/`= 0` tail shared by
// every function-variant declarator.
func (p *Parser) finishFuncDecl(start token.Pos, name ast.Ident, spec ast.FuncSpecifiers, isDtor bool, result ast.Expr) *ast.FuncDecl {
	fd := &ast.FuncDecl{Name: name, Result: result, Specifiers: spec, IsDestructor: isDtor}

	p.want(token.Lparen)
	lst := p.frag.List(token.Rparen)
	for !lst.Done() {
		fd.Params = append(fd.Params, p.paramField())
		if !p.consumeComma(lst) {
			break
		}
	}
	p.want(token.Rparen)

	if p.got(token.KwConst) {
		// const member function: the const-qualified `this` this implies
		// is added by the checker (C4/C8), not represented separately here.
		fd.Specifiers.Const = true
	}

	// A constructor's member-initializer list sits between the
	// parameter list and the body.
	if p.got(token.Colon) {
		fd.Inits = p.memberInitList()
	}

	end := p.tok.Pos
	switch {
	case p.got(token.Assign):
		switch {
		case p.got(token.KwDefault):
			fd.Specifiers.Defaulted = true
		case p.got(token.KwDelete):
			fd.Specifiers.Deleted = true
		case p.tok.Kind == token.IntLit && p.tok.Text == "0":
			fd.Specifiers.Pure = true
			p.next()
		default:
			p.syntaxError("expected 'default', 'delete', or '0'")
		}
		end = p.tok.Pos
		p.want(token.Semi)
	case p.tok.Kind == token.Lbrace:
		fd.Body = p.blockStmt()
		end = fd.Body.End()
	default:
		end = p.tok.Pos
		p.want(token.Semi)
	}

	fd.SetPos(start, end)
	return fd
}

func (p *Parser) paramField() *ast.Field {
	start := p.tok.Pos
	ty := p.typeExpr()
	f := &ast.Field{Type: ty}
	if p.tok.Kind == token.Ident {
		f.Name = p.name()
	}
	if p.got(token.Assign) {
		f.Default = p.assignExpr()
	}
	end := ty.End()
	if f.Name != nil {
		end = f.Name.End()
	}
	f.SetPos(start, end)
	return f
}

// memberInitList parses a constructor's member-initializer list:
// `m(e)` or `m{e}`, comma-separated, including delegating constructors
// (`T() : T(...)`, where the "member" name is the class itself).
func (p *Parser) memberInitList() []*ast.MemberInit {
	var inits []*ast.MemberInit
	for {
		start := p.tok.Pos
		name := p.name()
		mi := &ast.MemberInit{Name: name}
		braced := p.tok.Kind == token.Lbrace
		if braced {
			p.next()
		} else {
			p.want(token.Lparen)
		}
		mi.Braced = braced
		end := token.Rparen
		if braced {
			end = token.Rbrace
		}
		lst := p.frag.List(end)
		for !lst.Done() {
			mi.Args = append(mi.Args, p.assignExpr())
			if !p.consumeComma(lst) {
				break
			}
		}
		if braced {
			p.want(token.Rbrace)
		} else {
			p.want(token.Rparen)
		}
		mi.SetPos(start, p.tok.Pos)
		inits = append(inits, mi)
		if !p.got(token.Comma) {
			break
		}
	}
	return inits
}
