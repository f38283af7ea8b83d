package check

import (
	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/program"
	"github.com/libscript-lang/libscript/internal/scope"
	"github.com/libscript-lang/libscript/internal/symbols"
	"github.com/libscript-lang/libscript/internal/token"
)

// checkFuncBody implements spec.md §4.9's function-body compilation:
// parameters enter the local stack, constructors run their
// base/member initializer list before the written body, destructors
// append member/base destructor calls after it.
func (c *Checker) checkFuncBody(d *ast.FuncDecl) {
	fn := c.funcsByDecl[d]
	if fn == nil || d.Body == nil {
		return
	}

	prevFunc, prevClass := c.curFunc, c.curClass
	c.curFunc = fn
	if cls, ok := fn.Enclosing.(*symbols.Class); ok {
		c.curClass = cls
	}
	c.openScope(scope.FuncBodyScope, d.Pos(), d.End(), "function "+fn.Name())
	mark := len(c.locals)

	params := fn.Proto.Params
	if fn.Proto.HasThis() {
		params = params[1:]
	}
	for i, p := range d.Params {
		c.declareLocal(p.Name.Value, params[i])
	}

	var prologue []*program.Value
	if fn.Kind == symbols.Constructor {
		prologue = c.checkMemberInits(d)
	}

	body := c.checkBlockStmts(d.Body.Stmts)
	if fn.Kind == symbols.Destructor {
		body.Args = append(body.Args, c.destructorEpilogue()...)
	}

	locals := make([]program.LocalSlot, len(c.locals)-mark)
	for i, l := range c.locals[mark:] {
		locals[i] = program.LocalSlot{Type: l.typ, Name: l.name, Index: l.index}
	}
	c.locals = c.locals[:mark]
	c.closeScope()
	c.curFunc, c.curClass = prevFunc, prevClass

	allStmts := append(prologue, body)
	fn.Body = &program.Function{Symbol: fn, Locals: locals, Body: &program.Value{Op: program.OpBlock, Args: allStmts, Pos: progPos(d.Pos())}}
}

func (c *Checker) declareLocal(name string, typ symbols.TypeID) int {
	idx := len(c.locals)
	c.locals = append(c.locals, localSlot{name: name, typ: typ, index: idx})
	c.scope.Declare(name, scope.Result{Kind: scope.FoundLocalVariable, LocalIndex: idx})
	return idx
}

// checkMemberInits resolves a constructor's initializer list: a
// delegating call to another constructor of the same class, or
// per-member/per-base initializer calls, per spec.md §4.9's "function
// body prologue" rule.
func (c *Checker) checkMemberInits(d *ast.FuncDecl) []*program.Value {
	var out []*program.Value
	initialized := make(map[string]bool)
	for _, init := range d.Inits {
		args := c.checkExprList(init.Args)
		switch {
		case c.curClass != nil && init.Name.Value == c.curClass.Name():
			fn, callArgs, ok := c.resolveCall(init.Pos(), init.Name.Value, c.curClass.Ctors, nil, args)
			if ok {
				out = append(out, c.emitCall(init.Pos(), fn, nil, callArgs))
			}
			return out // a delegating constructor call replaces the rest of the list
		case c.curClass != nil && c.curClass.Base != nil && init.Name.Value == c.curClass.Base.Name():
			fn, callArgs, ok := c.resolveCall(init.Pos(), init.Name.Value, c.curClass.Base.Ctors, nil, args)
			if ok {
				out = append(out, c.emitCall(init.Pos(), fn, nil, callArgs))
			}
			initialized[init.Name.Value] = true
		default:
			out = append(out, c.checkFieldInit(init, args))
			initialized[init.Name.Value] = true
		}
	}
	if c.curClass != nil && c.curClass.Base != nil && !initialized[c.curClass.Base.Name()] && len(c.curClass.Base.Ctors) > 0 {
		if fn, callArgs, ok := c.resolveCall(d.Pos(), c.curClass.Base.Name(), c.curClass.Base.Ctors, nil, nil); ok {
			out = append(out, c.emitCall(d.Pos(), fn, nil, callArgs))
		}
	}
	for _, f := range c.curClass.Fields {
		if initialized[f.Name()] || f.IsStatic {
			continue
		}
		if v := c.defaultInitField(f, d.Pos()); v != nil {
			out = append(out, v)
		}
	}
	return out
}

func (c *Checker) checkFieldInit(init *ast.MemberInit, args []*program.Value) *program.Value {
	for _, f := range c.curClass.Fields {
		if f.Name() == init.Name.Value {
			v := c.construct(f.Type(), args, init.Braced, init.Pos())
			return c.memberInit(f, v, init.Pos())
		}
	}
	c.report(init.Pos(), NoSuchMember, "%q is not a member of %s", init.Name.Value, c.curClass.Name())
	return c.invalidValue(init.Pos())
}

// defaultInitField initializes a field no initializer list entry
// named: a class-typed field runs its default constructor, a
// fundamental-typed field is left to its storage's own zero value and
// needs no program node.
func (c *Checker) defaultInitField(f *symbols.Var, pos token.Pos) *program.Value {
	cls := c.Table.ClassOf(f.Type())
	if cls == nil || len(cls.Ctors) == 0 {
		return nil
	}
	v := c.construct(f.Type(), nil, false, pos)
	return c.memberInit(f, v, pos)
}

func (c *Checker) memberInit(f *symbols.Var, v *program.Value, pos token.Pos) *program.Value {
	return &program.Value{Op: program.OpMemberInit, Args: []*program.Value{c.thisValue(pos), v}, AuxInt: int64(f.Index), Pos: progPos(pos)}
}

// destructorEpilogue appends per-field destructor calls in reverse
// declaration order, then a base-destructor call, per spec.md §4.9.
func (c *Checker) destructorEpilogue() []*program.Value {
	var out []*program.Value
	for i := len(c.curClass.Fields) - 1; i >= 0; i-- {
		f := c.curClass.Fields[i]
		if cls := c.Table.ClassOf(f.Type()); cls != nil && cls.Dtor != nil {
			member := c.accessor.AccessDataMember(c.thisValue(f.Pos()), f.Index, f.Type())
			out = append(out, c.emitCall(f.Pos(), cls.Dtor, member, nil))
		}
	}
	if c.curClass.Base != nil && c.curClass.Base.Dtor != nil {
		out = append(out, c.emitCall(c.curClass.Pos(), c.curClass.Base.Dtor, c.thisValue(c.curClass.Pos()), nil))
	}
	return out
}

// checkBlockStmts compiles a statement list inside a fresh block
// scope, appending an OpDestroyLocals trailer for every local that
// went out of scope (spec.md §4.9's local-stack destruction rule).
func (c *Checker) checkBlockStmts(stmts []ast.Stmt) *program.Value {
	c.openScope(scope.BlockScope, token.Pos{}, token.Pos{}, "block")
	mark := len(c.locals)

	var body []*program.Value
	for _, s := range stmts {
		body = append(body, c.checkStmt(s))
	}

	if destroyed := len(c.locals) - mark; destroyed > 0 {
		body = append(body, &program.Value{Op: program.OpDestroyLocals, AuxInt: int64(destroyed)})
	}
	c.locals = c.locals[:mark]
	c.closeScope()
	return &program.Value{Op: program.OpBlock, Args: body}
}

func (c *Checker) checkStmt(s ast.Stmt) *program.Value {
	switch s := s.(type) {
	case *ast.BlockStmt:
		return c.checkBlockStmts(s.Stmts)
	case *ast.ExprStmt:
		return &program.Value{Op: program.OpExprStmt, Args: []*program.Value{c.checkExpr(s.X)}, Pos: progPos(s.Pos())}
	case *ast.IfStmt:
		return c.checkIf(s)
	case *ast.WhileStmt:
		return c.checkWhile(s)
	case *ast.ForStmt:
		return c.checkFor(s)
	case *ast.ReturnStmt:
		return c.checkReturn(s)
	case *ast.BreakStmt:
		return c.checkBreak(s)
	case *ast.ContinueStmt:
		return c.checkContinue(s)
	case *ast.VarDeclStmt:
		return c.checkLocalVarDecl(s)
	case *ast.DeclStmt:
		c.collectDecl(s.D)
		return &program.Value{Op: program.OpBlock, Pos: progPos(s.Pos())}
	case *ast.UsingStmt:
		return c.checkUsing(s)
	default:
		c.invalidAST(s.Pos(), "unexpected statement %T", s)
		return c.invalidValue(s.Pos())
	}
}

func (c *Checker) checkIf(s *ast.IfStmt) *program.Value {
	cond := c.convertTo(c.checkExpr(s.Cond), symbols.Boolean, s.Pos())
	then := c.checkStmt(s.Then)
	var els *program.Value
	if s.Else != nil {
		els = c.checkStmt(s.Else)
	}
	v := program.NewValue(program.OpIf, symbols.Void, progPos(s.Pos()), cond, then)
	if els != nil {
		v.Args = append(v.Args, els)
	}
	return v
}

func (c *Checker) checkWhile(s *ast.WhileStmt) *program.Value {
	cond := c.convertTo(c.checkExpr(s.Cond), symbols.Boolean, s.Pos())
	c.loopDepth++
	body := c.checkStmt(s.Body)
	c.loopDepth--
	return program.NewValue(program.OpWhile, symbols.Void, progPos(s.Pos()), cond, body)
}

func (c *Checker) checkFor(s *ast.ForStmt) *program.Value {
	c.openScope(scope.BlockScope, s.Pos(), s.End(), "for")
	mark := len(c.locals)

	var init *program.Value
	if s.Init != nil {
		init = c.checkStmt(s.Init)
	} else {
		init = &program.Value{Op: program.OpBlock}
	}
	var cond *program.Value
	if s.Cond != nil {
		cond = c.convertTo(c.checkExpr(s.Cond), symbols.Boolean, s.Pos())
	} else {
		cond = &program.Value{Op: program.OpLiteral, Type: symbols.Boolean, Aux: true}
	}
	var post *program.Value
	if s.Post != nil {
		post = &program.Value{Op: program.OpExprStmt, Args: []*program.Value{c.checkExpr(s.Post)}}
	} else {
		post = &program.Value{Op: program.OpBlock}
	}

	c.loopDepth++
	body := c.checkStmt(s.Body)
	c.loopDepth--

	c.locals = c.locals[:mark]
	c.closeScope()
	return program.NewValue(program.OpFor, symbols.Void, progPos(s.Pos()), init, cond, post, body)
}

func (c *Checker) checkReturn(s *ast.ReturnStmt) *program.Value {
	if c.curFunc == nil {
		c.invalidAST(s.Pos(), "return outside a function")
		return c.invalidValue(s.Pos())
	}
	if c.curFunc.Kind == symbols.Constructor || c.curFunc.Kind == symbols.Destructor {
		if s.Value != nil {
			c.report(s.Pos(), ReturnStatementWithValue, "%s cannot return a value", c.curFunc.Name())
		}
		return &program.Value{Op: program.OpReturn, Pos: progPos(s.Pos())}
	}

	ret := c.curFunc.Proto.Return
	if s.Value == nil {
		if ret != symbols.Void && ret.BaseType() != symbols.Auto {
			c.report(s.Pos(), ReturnStatementWithoutValue, "missing return value")
		}
		return &program.Value{Op: program.OpReturn, Pos: progPos(s.Pos())}
	}

	value := c.checkExpr(s.Value)
	if ret == symbols.Void {
		c.report(s.Pos(), ReturnStatementWithValue, "void function cannot return a value")
		return &program.Value{Op: program.OpReturn, Args: []*program.Value{value}, Pos: progPos(s.Pos())}
	}
	if ret.BaseType() == symbols.Auto || c.curFunc.ReturnDeduced {
		if c.curFunc.ReturnDeduced && value.Type.Decayed() != c.curFunc.Proto.Return {
			c.report(s.Pos(), InconsistentAutoReturnType, "inconsistent deduced return type")
		}
		c.curFunc.Proto.Return = value.Type.Decayed()
		c.curFunc.ReturnDeduced = true
		return &program.Value{Op: program.OpReturn, Args: []*program.Value{value}, Pos: progPos(s.Pos())}
	}
	value = c.convertTo(value, ret, s.Pos())
	return &program.Value{Op: program.OpReturn, Args: []*program.Value{value}, Pos: progPos(s.Pos())}
}

func (c *Checker) checkBreak(s *ast.BreakStmt) *program.Value {
	if c.loopDepth == 0 {
		c.report(s.Pos(), InvalidAST, "break outside a loop")
	}
	return &program.Value{Op: program.OpBreak, Pos: progPos(s.Pos())}
}

func (c *Checker) checkContinue(s *ast.ContinueStmt) *program.Value {
	if c.loopDepth == 0 {
		c.report(s.Pos(), InvalidAST, "continue outside a loop")
	}
	return &program.Value{Op: program.OpContinue, Pos: progPos(s.Pos())}
}

// checkLocalVarDecl implements spec.md §4.9's variable-declaration
// rule: initializer form drives constructor/assignment selection,
// `auto` deduces from the initializer, references and enum/function-
// typed variables require one.
func (c *Checker) checkLocalVarDecl(s *ast.VarDeclStmt) *program.Value {
	typ := c.resolveType(s.Type)
	isAuto := typ.BaseType() == symbols.Auto

	var args []*program.Value
	if s.Init != nil {
		args = []*program.Value{c.checkExpr(s.Init)}
	} else {
		args = c.checkExprList(s.Args)
	}

	if isAuto {
		if len(args) != 1 {
			c.report(s.Pos(), CouldNotConvert, "auto variable %q requires exactly one initializer", s.Name.Value)
			return c.invalidValue(s.Pos())
		}
		typ = args[0].Type.Decayed()
	} else if typ.IsReference() && len(args) == 0 {
		c.report(s.Pos(), CouldNotConvert, "reference %q must be initialized", s.Name.Value)
	} else if (typ.Flags()&symbols.FlagEnum != 0 || typ.Flags()&symbols.FlagFuncSig != 0) && len(args) == 0 {
		c.report(s.Pos(), CouldNotConvert, "%q must be initialized", s.Name.Value)
	}

	var init *program.Value
	if len(args) > 0 && !isAuto {
		init = c.construct(typ, args, s.Braced, s.Pos())
	} else if len(args) > 0 {
		init = args[0]
	}

	idx := c.declareLocal(s.Name.Value, typ)
	return &program.Value{Op: program.OpVarDecl, Type: typ, AuxInt: int64(idx), Args: argList(init), Pos: progPos(s.Pos())}
}

func argList(v *program.Value) []*program.Value {
	if v == nil {
		return nil
	}
	return []*program.Value{v}
}

// checkUsing handles a local type alias (`using Name = Type;`); a
// local using-namespace directive is accepted but has no effect here
// since block scopes always consult their parent chain already.
func (c *Checker) checkUsing(s *ast.UsingStmt) *program.Value {
	if s.Name != nil {
		c.scope.Declare(s.Name.Value, scope.Result{Kind: scope.FoundType, Type: c.resolveType(s.Alias)})
	}
	return &program.Value{Op: program.OpBlock, Pos: progPos(s.Pos())}
}
