// Package parser implements the AST builder (spec.md C3): a family of
// cooperating recursive-descent parsers, each operating inside a
// fragment (internal/fragment), producing an immutable internal/ast
// tree.
package parser

import (
	"io"

	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/fragment"
	"github.com/libscript-lang/libscript/internal/lexer"
	"github.com/libscript-lang/libscript/internal/token"
)

// maxErrors bounds how many syntax errors accumulate before parsing
// gives up on the remainder of the file.
const maxErrors = 50

// SyntaxError is a parser-reported error carrying its source offset,
// per spec.md §7's syntax-error tier.
type SyntaxError struct {
	Pos token.Pos
	Msg string
}

func (e *SyntaxError) Error() string { return e.Pos.String() + ": " + e.Msg }

// Parser builds an ast.File from a token stream.
type Parser struct {
	frag *fragment.Fragment
	tok  token.Token

	errh   func(pos token.Pos, msg string)
	errcnt int
	first  error
	abort  bool

	fnest int // function-body nesting depth
}

// New creates a Parser reading filename's contents from src.
func New(filename string, src io.Reader, errh func(pos token.Pos, msg string)) *Parser {
	toks := lexer.All(filename, src, errh)
	cur := fragment.NewCursor(toks)
	p := &Parser{frag: fragment.NewRoot(cur), errh: errh}
	p.tok = p.frag.Peek()
	return p
}

// ----------------------------------------------------------------------
// Token navigation, mirroring the teacher's got/want/expect idiom.

func (p *Parser) next() {
	p.frag.Advance()
	p.tok = p.frag.Peek()
}

// consumeComma and closeTemplateArgs delegate to a caller's sub-fragment
// (list or template-argument list) but, unlike the fragment's own
// methods, also refresh p.tok: these calls move the shared cursor
// directly rather than through next(), and p.tok would otherwise go
// stale the moment a '>>' split or a comma is consumed this way.
func (p *Parser) consumeComma(f *fragment.Fragment) bool {
	if f.ConsumeComma() {
		p.tok = p.frag.Peek()
		return true
	}
	return false
}

func (p *Parser) closeTemplateArgs(f *fragment.Fragment) token.Token {
	end := f.CloseTemplateArgs()
	p.tok = p.frag.Peek()
	return end
}

func (p *Parser) got(k token.Kind) bool {
	if p.tok.Kind == k {
		p.next()
		return true
	}
	return false
}

func (p *Parser) want(k token.Kind) {
	if !p.got(k) {
		p.syntaxError("expected " + k.String() + ", got " + p.tok.Kind.String())
		p.recover()
	}
}

func (p *Parser) expect(k token.Kind) token.Pos {
	pos := p.tok.Pos
	p.want(k)
	return pos
}

func (p *Parser) syntaxError(msg string) { p.syntaxErrorAt(p.tok.Pos, msg) }

func (p *Parser) syntaxErrorAt(pos token.Pos, msg string) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++
	if p.errh != nil {
		p.errh(pos, msg)
	}
	if p.errcnt >= maxErrors {
		p.abort = true
	}
}

// recover advances to the next statement/declaration boundary so the
// outer parser keeps surfacing further diagnostics (spec.md §7: "the
// outer program parser does recover at statement granularity").
func (p *Parser) recover() {
	for {
		switch p.tok.Kind {
		case token.Semi, token.Rbrace, token.EOF:
			if p.tok.Kind != token.EOF {
				p.next()
			}
			return
		case token.KwClass, token.KwStruct, token.KwEnum, token.KwNamespace,
			token.KwTemplate, token.KwTypedef, token.KwUsing, token.KwIf,
			token.KwFor, token.KwWhile, token.KwReturn:
			return
		}
		p.next()
	}
}

func (p *Parser) Errors() int       { return p.errcnt }
func (p *Parser) FirstError() error { return p.first }

// ----------------------------------------------------------------------
// Entry point

// Parse parses a complete translation unit.
func (p *Parser) Parse() *ast.File {
	f := &ast.File{}
	for !p.abort && p.tok.Kind != token.EOF {
		for p.tok.Kind == token.Semi {
			p.next()
		}
		if p.tok.Kind == token.EOF {
			break
		}
		switch p.tok.Kind {
		case token.KwImport, token.KwExport:
			f.Imports = append(f.Imports, p.importDecl())
		default:
			if d := p.topDecl(); d != nil {
				f.Decls = append(f.Decls, d)
			}
		}
	}
	return f
}

func (p *Parser) importDecl() *ast.ImportDecl {
	start := p.tok.Pos
	export := p.got(token.KwExport)
	p.want(token.KwImport)
	name := p.qualifiedName()
	p.want(token.Semi)
	d := &ast.ImportDecl{Export: export, Name: name.(*ast.Name)}
	d.SetPos(start, name.End())
	return d
}

// topDecl dispatches on the leading token per spec.md §4.3.
func (p *Parser) topDecl() ast.Decl {
	switch p.tok.Kind {
	case token.KwNamespace:
		return p.namespaceDecl()
	case token.KwClass, token.KwStruct:
		return p.classDecl()
	case token.KwEnum:
		return p.enumDecl()
	case token.KwTemplate:
		return p.templateDecl()
	case token.KwTypedef:
		return p.typedefDecl()
	case token.KwFriend:
		return p.friendDecl()
	default:
		if d, ok := p.tryDeclaration(false, ast.AccessPublic); ok {
			return d
		}
		p.syntaxError("expected declaration")
		p.recover()
		return nil
	}
}

// ----------------------------------------------------------------------
// Names, qualified names, types

func (p *Parser) name() *ast.Name {
	start := p.tok.Pos
	if p.tok.Kind != token.Ident {
		p.syntaxError("expected identifier")
		n := &ast.Name{Value: "_"}
		n.SetPos(start, start)
		return n
	}
	n := &ast.Name{Value: p.tok.Text}
	p.next()
	n.SetPos(start, start)
	return n
}

func (p *Parser) qualifiedName() ast.Ident {
	start := p.tok.Pos
	var id ast.Ident = p.name()
	for p.tok.Kind == token.ColonColon {
		p.next()
		right := p.name()
		sc := &ast.ScopedID{Left: id, Right: right}
		sc.SetPos(start, right.End())
		id = sc
	}
	return id
}

// typeExpr parses a type-specifier: an optional `const`, a base name
// (possibly template-id or scoped-id), and trailing `&`/`&&`.
func (p *Parser) typeExpr() ast.Expr {
	start := p.tok.Pos
	isConst := p.got(token.KwConst)

	var base ast.Expr
	switch p.tok.Kind {
	case token.KwVoid, token.KwBool, token.KwChar, token.KwInt, token.KwFloat, token.KwDouble:
		n := &ast.Name{Value: p.tok.Text}
		n.SetPos(p.tok.Pos, p.tok.Pos)
		p.next()
		base = n
	case token.Ident:
		base = p.qualifiedTypeName()
	default:
		p.syntaxError("expected type")
		n := &ast.Name{Value: "_"}
		n.SetPos(start, start)
		base = n
	}

	ref, rref := false, false
	if p.tok.Kind == token.AndAnd {
		rref = true
		p.next()
	} else if p.tok.Kind == token.And {
		ref = true
		p.next()
	}

	if !isConst && !ref && !rref {
		return base
	}
	qt := &ast.QualifiedType{Base: base, Const: isConst, Ref: ref, RvalueRef: rref}
	qt.SetPos(start, base.End())
	return qt
}

// qualifiedTypeName parses a possibly-templated, possibly-scoped type
// name: Name | Name<Args,...> | Left::Right (each segment may itself be
// a template-id, e.g. `outer::Inner<int>`).
func (p *Parser) qualifiedTypeName() ast.Expr {
	start := p.tok.Pos
	var id ast.Ident = p.templateOrPlainName()
	for p.tok.Kind == token.ColonColon {
		p.next()
		right := p.templateOrPlainName()
		sc := &ast.ScopedID{Left: id, Right: right}
		sc.SetPos(start, right.End())
		id = sc
	}
	return id
}

func (p *Parser) templateOrPlainName() ast.Ident {
	n := p.name()
	if p.tok.Kind != token.Lss {
		return n
	}
	mark := p.frag.Mark()
	p.next()
	targ := p.frag.TemplateArgs()
	tid := &ast.TemplateID{Base: n}
	for !targ.Done() {
		tid.Args = append(tid.Args, p.typeOrConstExpr())
		if !p.consumeComma(targ) {
			break
		}
	}
	end := p.closeTemplateArgs(targ)
	if end.Kind != token.Gtr {
		// No closing '>': the '<' is a less-than operator (`i < 10`).
		p.frag.Reset(mark)
		p.tok = p.frag.Peek()
		return n
	}
	tid.SetPos(n.Pos(), end.Pos)
	return tid
}

// typeOrConstExpr parses one template argument: a type-specifier if the
// lookahead names a type, otherwise a constant expression (IntParam /
// BoolParam arguments).
func (p *Parser) typeOrConstExpr() ast.Expr {
	switch p.tok.Kind {
	case token.KwVoid, token.KwBool, token.KwChar, token.KwInt, token.KwFloat, token.KwDouble, token.KwConst:
		return p.typeExpr()
	case token.Ident:
		// Ambiguous between a type name and a value; the parser always
		// builds a type-shaped node here, and the checker resolves every
		// template argument other than an int or bool literal as a type.
		return p.typeExpr()
	default:
		return p.expr()
	}
}

// ----------------------------------------------------------------------
// Namespace, class, enum, typedef, using, friend, template

func (p *Parser) namespaceDecl() *ast.NamespaceDecl {
	start := p.expect(token.KwNamespace)
	name := p.name()
	p.want(token.Lbrace)
	nd := &ast.NamespaceDecl{Name: name}
	for p.tok.Kind != token.Rbrace && p.tok.Kind != token.EOF && !p.abort {
		for p.tok.Kind == token.Semi {
			p.next()
		}
		if p.tok.Kind == token.Rbrace {
			break
		}
		if d := p.topDecl(); d != nil {
			nd.Decls = append(nd.Decls, d)
		}
	}
	end := p.tok.Pos
	p.want(token.Rbrace)
	nd.SetPos(start, end)
	return nd
}

func (p *Parser) classDecl() *ast.ClassDecl {
	start := p.tok.Pos
	isStruct := p.tok.Kind == token.KwStruct
	p.next() // consume class/struct

	cd := &ast.ClassDecl{IsStruct: isStruct}
	cd.Name = p.name()
	if p.got(token.Colon) {
		switch {
		case p.got(token.KwPublic):
		case p.got(token.KwPrivate):
		case p.got(token.KwProtected):
		}
		cd.Base = p.name()
	}

	p.want(token.Lbrace)
	// Members before any access label are public in both a class and a struct.
	access := ast.AccessPublic
	for p.tok.Kind != token.Rbrace && p.tok.Kind != token.EOF && !p.abort {
		for p.tok.Kind == token.Semi {
			p.next()
		}
		if p.tok.Kind == token.Rbrace {
			break
		}
		switch p.tok.Kind {
		case token.KwPublic, token.KwPrivate, token.KwProtected:
			access = accessFromToken(p.tok.Kind)
			lblPos := p.tok.Pos
			p.next()
			p.want(token.Colon)
			lbl := &ast.AccessLabel{Access: access}
			lbl.SetPos(lblPos, lblPos)
			cd.Members = append(cd.Members, lbl)
		case token.KwFriend:
			cd.Members = append(cd.Members, p.friendDecl())
		case token.KwEnum:
			cd.Members = append(cd.Members, p.enumDecl())
		case token.KwTemplate:
			cd.Members = append(cd.Members, p.templateDecl())
		case token.KwClass, token.KwStruct:
			cd.Members = append(cd.Members, p.classDecl())
		case token.KwTypedef:
			cd.Members = append(cd.Members, p.typedefDecl())
		default:
			if d, ok := p.tryDeclaration(true, access); ok {
				cd.Members = append(cd.Members, d)
			} else {
				p.syntaxError("expected member declaration")
				p.recover()
			}
		}
	}
	end := p.tok.Pos
	p.want(token.Rbrace)
	p.want(token.Semi)
	cd.SetPos(start, end)
	return cd
}

func accessFromToken(k token.Kind) ast.Access {
	switch k {
	case token.KwPublic:
		return ast.AccessPublic
	case token.KwProtected:
		return ast.AccessProtected
	default:
		return ast.AccessPrivate
	}
}

func (p *Parser) friendDecl() *ast.FriendDecl {
	start := p.expect(token.KwFriend)
	p.got(token.KwClass)
	name := p.name()
	p.want(token.Semi)
	fd := &ast.FriendDecl{Name: name}
	fd.SetPos(start, name.End())
	return fd
}

func (p *Parser) enumDecl() *ast.EnumDecl {
	start := p.expect(token.KwEnum)
	isClass := p.got(token.KwClass)
	name := p.name()
	p.want(token.Lbrace)
	ed := &ast.EnumDecl{Name: name, IsEnumClass: isClass}
	for p.tok.Kind != token.Rbrace && p.tok.Kind != token.EOF {
		vn := p.name()
		ev := &ast.EnumValue{Name: vn}
		if p.got(token.Assign) {
			ev.Value = p.assignExpr()
		}
		ev.SetPos(vn.Pos(), vn.End())
		ed.Values = append(ed.Values, ev)
		if !p.got(token.Comma) {
			break
		}
	}
	end := p.tok.Pos
	p.want(token.Rbrace)
	p.want(token.Semi)
	ed.SetPos(start, end)
	return ed
}

func (p *Parser) typedefDecl() *ast.TypedefDecl {
	start := p.expect(token.KwTypedef)
	ty := p.typeExpr()
	name := p.name()
	p.want(token.Semi)
	td := &ast.TypedefDecl{Name: name, Type: ty}
	td.SetPos(start, name.End())
	return td
}

func (p *Parser) templateDecl() *ast.TemplateDecl {
	start := p.expect(token.KwTemplate)
	p.want(token.Lss)
	var params []*ast.TemplateParam
	targ := p.frag.TemplateArgs()
	for !targ.Done() {
		params = append(params, p.templateParam())
		if !p.consumeComma(targ) {
			break
		}
	}
	p.closeTemplateArgs(targ)

	var body ast.Decl
	switch p.tok.Kind {
	case token.KwClass, token.KwStruct:
		body = p.classDecl()
	default:
		if d, ok := p.tryDeclaration(false, ast.AccessPublic); ok {
			body = d
		} else {
			p.syntaxError("expected class or function after template parameter list")
		}
	}
	td := &ast.TemplateDecl{Params: params, Body: body}
	end := start
	if body != nil {
		end = body.End()
	}
	td.SetPos(start, end)
	return td
}

func (p *Parser) templateParam() *ast.TemplateParam {
	start := p.tok.Pos
	var kind ast.TemplateParamKind
	switch p.tok.Kind {
	case token.KwInt:
		kind = ast.IntParam
		p.next()
	case token.KwBool:
		kind = ast.BoolParam
		p.next()
	default:
		kind = ast.TypeParam
		// bare "typename"-less style: a plain identifier introduces the
		// parameter name directly, e.g. `template<T>`.
	}
	name := p.name()
	tp := &ast.TemplateParam{Kind: kind, Name: name}
	if p.got(token.Assign) {
		if kind == ast.TypeParam {
			tp.Default = p.typeExpr()
		} else {
			tp.Default = p.assignExpr()
		}
	}
	tp.SetPos(start, name.End())
	return tp
}
