package parser

import (
	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/token"
)

// expr parses a full expression, including the comma operator (group 15,
// the loosest-binding group in spec.md §6).
func (p *Parser) expr() ast.Expr {
	return p.parsePrecedence(0)
}

// assignExpr parses an expression one level tighter than comma: the
// level used for call arguments, initializers, and array elements,
// where a bare comma is a separator, not an operator.
func (p *Parser) assignExpr() ast.Expr {
	commaBp, _, _ := bindingPower(token.Comma)
	return p.parsePrecedence(commaBp + 1)
}

// parsePrecedence implements operator-precedence (Pratt) parsing:
// parse one unary operand, then fold in infix operators whose binding
// power is at least minBp, per Design Notes §9's pure precedence/
// associativity functions.
func (p *Parser) parsePrecedence(minBp int) ast.Expr {
	left := p.parseUnary()
	for {
		bp, assoc, ok := bindingPower(p.tok.Kind)
		if !ok || bp < minBp || p.tok.Kind == token.ColonColon {
			return left
		}
		op := p.tok
		p.next()

		if op.Kind == token.Question {
			then := p.parsePrecedence(0)
			p.want(token.Colon)
			elseExpr := p.parsePrecedence(bp)
			ce := &ast.ConditionalExpr{Cond: left, Then: then, Else: elseExpr}
			ce.SetPos(left.Pos(), elseExpr.End())
			left = ce
			continue
		}

		nextMin := bp + 1
		if assoc == RightAssoc {
			nextMin = bp
		}
		right := p.parsePrecedence(nextMin)
		be := &ast.BinaryExpr{Op: op.Kind, X: left, Y: right}
		be.SetPos(left.Pos(), right.End())
		left = be
	}
}

// parseUnary handles group-3 prefix operators, recursing on itself so
// `--!x` parses right-associatively, then hands off to parsePostfix.
func (p *Parser) parseUnary() ast.Expr {
	if isPrefixOp(p.tok.Kind) {
		start := p.tok.Pos
		op := p.tok.Kind
		p.next()
		x := p.parseUnary()
		u := &ast.UnaryExpr{Op: op, X: x}
		u.SetPos(start, x.End())
		return u
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of
// group-2 postfix continuations: call, index, member access, postfix
// ++/--, and brace-construction.
func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.tok.Kind {
		case token.Lparen:
			p.next()
			call := &ast.CallExpr{Fun: x}
			lst := p.frag.List(token.Rparen)
			for !lst.Done() {
				call.Args = append(call.Args, p.assignExpr())
				if !p.consumeComma(lst) {
					break
				}
			}
			end := p.tok.Pos
			p.want(token.Rparen)
			call.SetPos(x.Pos(), end)
			x = call
		case token.Lbrack:
			p.next()
			idx := p.expr()
			end := p.tok.Pos
			p.want(token.Rbrack)
			ie := &ast.IndexExpr{X: x, Index: idx}
			ie.SetPos(x.Pos(), end)
			x = ie
		case token.Dot:
			p.next()
			sel := p.memberSelector()
			me := &ast.MemberExpr{X: x, Sel: sel}
			me.SetPos(x.Pos(), sel.End())
			x = me
		case token.Inc, token.Dec:
			op := p.tok.Kind
			end := p.tok.Pos
			p.next()
			u := &ast.UnaryExpr{Op: op, X: x, Postfix: true}
			u.SetPos(x.Pos(), end)
			x = u
		case token.Lbrace:
			if !bracesStartConstruction(x) {
				return x
			}
			p.next()
			bc := &ast.BraceConstructExpr{Type: x}
			lst := p.frag.List(token.Rbrace)
			for !lst.Done() {
				bc.Args = append(bc.Args, p.assignExpr())
				if !p.consumeComma(lst) {
					break
				}
			}
			end := p.tok.Pos
			p.want(token.Rbrace)
			bc.SetPos(x.Pos(), end)
			x = bc
		default:
			return x
		}
	}
}

// bracesStartConstruction reports whether a following `{` continues x
// as a brace-construction. Only identifier-shaped operands (names,
// template-ids, scoped-ids, member access — anything naming a type or
// constructible value) take this continuation, so that e.g. an `if
// (cond) { ... }` body is never misparsed as `cond{...}`.
func bracesStartConstruction(x ast.Expr) bool {
	switch x.(type) {
	case *ast.Name, *ast.TemplateID, *ast.ScopedID, *ast.MemberExpr:
		return true
	}
	return false
}

func (p *Parser) memberSelector() ast.Ident {
	if p.tok.Kind == token.KwOperator {
		return p.operatorName()
	}
	return p.templateOrPlainName()
}

// parsePrimary parses a literal, identifier/qualified-id, `this`,
// parenthesized expression, lambda, or array literal.
func (p *Parser) parsePrimary() ast.Expr {
	start := p.tok.Pos
	switch p.tok.Kind {
	case token.IntLit:
		lit := &ast.BasicLit{Value: p.tok.Text, Kind: ast.IntLit}
		lit.SetPos(start, start)
		p.next()
		return lit
	case token.FloatLit:
		lit := &ast.BasicLit{Value: p.tok.Text, Kind: ast.FloatLit}
		lit.SetPos(start, start)
		p.next()
		return lit
	case token.StringLit:
		lit := &ast.BasicLit{Value: p.tok.Text, Kind: ast.StringLit}
		lit.SetPos(start, start)
		p.next()
		return lit
	case token.UserLit:
		value, suffix := splitUserLit(p.tok.Text)
		lit := &ast.BasicLit{Value: value, Kind: ast.UserLit, Suffix: suffix}
		lit.SetPos(start, start)
		p.next()
		return lit
	case token.KwTrue, token.KwFalse:
		lit := &ast.BasicLit{Value: p.tok.Text, Kind: ast.BoolLit}
		lit.SetPos(start, start)
		p.next()
		return lit
	case token.KwNullptr:
		lit := &ast.BasicLit{Kind: ast.NullLit}
		lit.SetPos(start, start)
		p.next()
		return lit
	case token.KwThis:
		p.next()
		t := &ast.ThisExpr{}
		t.SetPos(start, start)
		return t
	case token.Lparen:
		p.next()
		x := p.expr()
		p.want(token.Rparen)
		return x
	case token.Lbrack:
		return p.lambdaOrArray()
	case token.Ident:
		return p.templateOrScopedID()
	default:
		p.syntaxError("expected expression")
		n := &ast.Name{Value: "_"}
		n.SetPos(start, start)
		p.next()
		return n
	}
}

func splitUserLit(text string) (value, suffix string) {
	for i := 0; i < len(text); i++ {
		if text[i] == 0 {
			return text[:i], text[i+1:]
		}
	}
	return text, ""
}

func (p *Parser) templateOrScopedID() ast.Expr {
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

// lambdaOrArray implements the `[` disambiguation rule (spec.md §4.3):
// speculatively scan the bracketed content; if it is followed by `(`
// the construct is a lambda, otherwise an array literal.
func (p *Parser) lambdaOrArray() ast.Expr {
	start := p.tok.Pos
	mark := p.frag.Mark()

	p.next() // consume '['
	depth := 1
	for depth > 0 && p.tok.Kind != token.EOF {
		switch p.tok.Kind {
		case token.Lbrack:
			depth++
		case token.Rbrack:
			depth--
		}
		if depth == 0 {
			break
		}
		p.next()
	}
	isLambda := p.tok.Kind == token.Rbrack && p.frag.PeekAt(1).Kind == token.Lparen
	p.frag.Reset(mark)
	p.tok = p.frag.Peek()

	if isLambda {
		return p.lambdaExpr()
	}
	return p.arrayLit(start)
}

func (p *Parser) lambdaExpr() *ast.LambdaExpr {
	start := p.expect(token.Lbrack)
	le := &ast.LambdaExpr{}
	lst := p.frag.List(token.Rbrack)
	for p.tok.Kind != token.Rbrack && !lst.Done() {
		f := &ast.Field{}
		captureStart := p.tok.Pos
		f.Name = p.name()
		f.SetPos(captureStart, captureStart)
		le.Captures = append(le.Captures, f)
		if !p.consumeComma(lst) {
			break
		}
	}
	p.want(token.Rbrack)

	p.want(token.Lparen)
	plst := p.frag.List(token.Rparen)
	for !plst.Done() {
		le.Params = append(le.Params, p.paramField())
		if !p.consumeComma(plst) {
			break
		}
	}
	p.want(token.Rparen)

	if p.got(token.Arrow) {
		le.Result = p.typeExpr()
	}
	le.Body = p.blockStmt()
	le.SetPos(start, le.Body.End())
	return le
}

func (p *Parser) arrayLit(start token.Pos) *ast.ArrayLitExpr {
	p.want(token.Lbrack)
	al := &ast.ArrayLitExpr{}
	lst := p.frag.List(token.Rbrack)
	for !lst.Done() {
		al.Elems = append(al.Elems, p.assignExpr())
		if !p.consumeComma(lst) {
			break
		}
	}
	end := p.tok.Pos
	p.want(token.Rbrack)
	al.SetPos(start, end)
	return al
}
