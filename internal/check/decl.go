package check

import (
	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/scope"
	"github.com/libscript-lang/libscript/internal/symbols"
)

// collectDecl registers one top-level (or nested) declaration into
// the symbol table and current scope, mirroring the teacher's
// collectDecls phase: declarations are visible to every function body
// regardless of source order, since forward references are legal.
func (c *Checker) collectDecl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.NamespaceDecl:
		c.collectNamespace(d)
	case *ast.ClassDecl:
		c.collectClass(d)
	case *ast.EnumDecl:
		c.collectEnum(d)
	case *ast.TypedefDecl:
		c.collectTypedef(d)
	case *ast.FuncDecl:
		c.collectFunc(d, false, symbols.AccessPublic)
	case *ast.VarDecl:
		c.collectVar(d)
	case *ast.TemplateDecl:
		c.collectTemplate(d)
	case *ast.ImportDecl:
		// Accepted without effect: no symbol is registered for an import.
	case *ast.AccessLabel, *ast.FriendDecl:
		// Handled inline by collectClass.
	default:
		c.invalidAST(d.Pos(), "unexpected top-level declaration %T", d)
	}
}

func (c *Checker) currentNamespaceScope() *scope.Scope {
	for s := c.scope; s != nil; s = s.Parent() {
		if s.Kind() == scope.NamespaceScope {
			return s
		}
	}
	return c.scope
}

func (c *Checker) collectNamespace(d *ast.NamespaceDecl) {
	parentNS := c.enclosingNamespace()
	ns := symbols.NewNamespace(d.Pos(), d.Name.Value, parentNS)
	parentNS.AddNamespace(ns)

	c.openScope(scope.NamespaceScope, d.Pos(), d.End(), "namespace "+d.Name.Value)
	c.scope = scope.NewNamespaceScope(c.scope.Parent(), ns)
	for _, nd := range d.Decls {
		c.collectDecl(nd)
	}
	c.closeScope()
}

// enclosingNamespace finds the nearest backing *symbols.Namespace by
// walking up the scope chain — every scope ultimately descends from
// the root namespace scope.
func (c *Checker) enclosingNamespace() *symbols.Namespace {
	for s := c.scope; s != nil; s = s.Parent() {
		if ns := namespaceOf(s); ns != nil {
			return ns
		}
	}
	return c.Table.Root
}

func namespaceOf(s *scope.Scope) *symbols.Namespace {
	return s.Namespace()
}

func (c *Checker) collectClass(d *ast.ClassDecl) {
	cls := symbols.NewClass(d.Pos(), d.Name.Value)
	if d.Base != nil {
		if r := c.lookup(d.Base.Value); r.Kind == scope.FoundType {
			cls.Base = c.Table.ClassOf(r.Type)
		}
	}
	c.Table.RegisterClass(cls)
	c.enclosingNamespace().AddClass(cls)

	prevClass := c.curClass
	c.curClass = cls
	c.openScope(scope.ClassScope, d.Pos(), d.End(), "class "+d.Name.Value)
	c.scope = scope.NewClassScope(c.scope.Parent(), cls)

	// Members before any access label are public in both a class and a struct.
	access := symbols.AccessPublic
	for _, m := range d.Members {
		switch m := m.(type) {
		case *ast.AccessLabel:
			access = accessLevel(m.Access)
		case *ast.FuncDecl:
			c.collectMemberFunc(cls, m, access)
		case *ast.VarDecl:
			c.collectMemberVar(cls, m, access)
		case *ast.FriendDecl:
			// Accepted without effect: friendship is not recorded, and
			// access checks do not consult it.
		case *ast.TemplateDecl:
			c.collectNestedTemplate(cls, m)
		default:
			c.collectDecl(m)
		}
	}
	cls.AssignVTableSlots()

	c.closeScope()
	c.curClass = prevClass
}

func accessLevel(a ast.Access) symbols.AccessLevel {
	switch a {
	case ast.AccessPublic:
		return symbols.AccessPublic
	case ast.AccessProtected:
		return symbols.AccessProtected
	default:
		return symbols.AccessPrivate
	}
}

func (c *Checker) collectMemberVar(cls *symbols.Class, d *ast.VarDecl, access symbols.AccessLevel) {
	typ := c.resolveType(d.Type)
	v := symbols.NewVar(d.Pos(), d.Name.Value, typ)
	v.Access = access
	v.IsStatic = d.Static
	if d.Static {
		cls.StaticFields = append(cls.StaticFields, v)
	} else {
		cls.AddField(v)
	}
}

func (c *Checker) collectMemberFunc(cls *symbols.Class, d *ast.FuncDecl, access symbols.AccessLevel) {
	fn := c.buildFunctionSymbol(d, true, access)
	switch {
	case isConstructorDecl(d, cls.Name()):
		fn.Kind = symbols.Constructor
		cls.Ctors = append(cls.Ctors, fn)
	case d.IsDestructor:
		fn.Kind = symbols.Destructor
		cls.Dtor = fn
	case isCastOperator(d):
		fn.Kind = symbols.CastFunction
		cls.Casts = append(cls.Casts, fn)
	case isOperatorDecl(d):
		fn.Kind = symbols.OperatorFunction
		cls.Operators = append(cls.Operators, fn)
	default:
		fn.Kind = symbols.RegularFunction
		cls.Methods = append(cls.Methods, fn)
	}
}

func isConstructorDecl(d *ast.FuncDecl, className string) bool {
	if d.IsDestructor || d.Result != nil {
		return false
	}
	n, ok := d.Name.(*ast.Name)
	return ok && n.Value == className
}

func isCastOperator(d *ast.FuncDecl) bool {
	_, ok := d.Name.(*ast.OperatorName)
	return ok && d.Result != nil
}

func isOperatorDecl(d *ast.FuncDecl) bool {
	_, ok := d.Name.(*ast.OperatorName)
	return ok
}

func (c *Checker) collectFunc(d *ast.FuncDecl, isMember bool, access symbols.AccessLevel) {
	fn := c.buildFunctionSymbol(d, isMember, access)
	fn.Kind = symbols.RegularFunction
	if isOperatorDecl(d) {
		fn.Kind = symbols.OperatorFunction
	}
	c.enclosingNamespace().AddFunction(fn)
}

// buildFunctionSymbol resolves d's prototype and registers its
// signature type, but does not attach the body — that happens when
// checkFuncBody walks the now-fully-collected symbol table.
func (c *Checker) buildFunctionSymbol(d *ast.FuncDecl, isMember bool, access symbols.AccessLevel) *symbols.Function {
	name := funcName(d)
	var params []symbols.TypeID
	if isMember && !d.Specifiers.Static {
		this := c.curClass.Type().Ref() | symbols.TypeID(symbols.FlagThisParam)
		if d.Specifiers.Const {
			this = this | symbols.TypeID(symbols.FlagConst)
		}
		params = append(params, this)
	}
	var defaults []interface{}
	for _, p := range d.Params {
		params = append(params, c.resolveType(p.Type))
		defaults = append(defaults, p.Default)
	}
	ret := symbols.Void
	if d.Result != nil {
		ret = c.resolveType(d.Result)
	}
	proto := &symbols.Prototype{Return: ret, Params: params}

	fn := symbols.NewFunction(d.Pos(), name, symbols.RegularFunction, proto)
	fn.DefaultArgs = defaults
	fn.Flags = symbols.FunctionFlags{
		Virtual: d.Specifiers.Virtual, Pure: d.Specifiers.Pure,
		Deleted: d.Specifiers.Deleted, Defaulted: d.Specifiers.Defaulted,
		Explicit: d.Specifiers.Explicit, Constexpr: d.Specifiers.Constexpr,
		Static: d.Specifiers.Static, Access: access,
	}
	if isMember {
		fn.Enclosing = c.curClass
	}
	c.Table.DeclareFunction(fn)
	c.funcsByDecl[d] = fn
	return fn
}

func funcName(d *ast.FuncDecl) string {
	switch n := d.Name.(type) {
	case *ast.Name:
		if d.IsDestructor {
			return "~" + n.Value
		}
		return n.Value
	case *ast.OperatorName:
		switch {
		case n.IsCall:
			return "operator()"
		case n.IsIndex:
			return "operator[]"
		case n.LiteralSuffx != "":
			return `operator"" ` + n.LiteralSuffx
		default:
			return "operator" + n.Op.String()
		}
	default:
		return "<invalid>"
	}
}

func (c *Checker) collectEnum(d *ast.EnumDecl) {
	e := symbols.NewEnum(d.Pos(), d.Name.Value, d.IsEnumClass)
	c.Table.RegisterEnum(e)
	for _, v := range d.Values {
		var val int64
		explicit := v.Value != nil
		if explicit {
			val = constIntOf(v.Value)
		}
		e.AddValue(v.Pos(), v.Name.Value, explicit, val)
	}
	c.enclosingNamespace().AddEnum(e)
}

// constIntOf evaluates a constant integer expression for an explicit
// enumerator value. Only literal integers are supported; anything
// else folds to 0, matching the checker's general policy of not
// implementing full constant-expression evaluation (out of scope).
func constIntOf(e ast.Expr) int64 {
	if lit, ok := e.(*ast.BasicLit); ok && lit.Kind == ast.IntLit {
		var n int64
		for _, ch := range lit.Value {
			if ch < '0' || ch > '9' {
				return n
			}
			n = n*10 + int64(ch-'0')
		}
		return n
	}
	return 0
}

func (c *Checker) collectTypedef(d *ast.TypedefDecl) {
	c.enclosingNamespace().Typedefs[d.Name.Value] = c.resolveType(d.Type)
}

func (c *Checker) collectVar(d *ast.VarDecl) {
	typ := c.resolveType(d.Type)
	if d.Init != nil || len(d.Args) > 0 {
		exprs := d.Args
		if d.Init != nil {
			exprs = []ast.Expr{d.Init}
		}
		args := c.checkExprList(exprs)
		if typ.BaseType() == symbols.Auto && len(args) == 1 {
			typ = args[0].Type.Decayed()
		} else {
			c.construct(typ, args, d.Braced, d.Pos())
		}
	}
	v := symbols.NewVar(d.Pos(), d.Name.Value, typ)
	v.Access = accessLevel(d.Access)
	c.enclosingNamespace().AddVariable(v)
}

func (c *Checker) collectTemplate(d *ast.TemplateDecl) {
	variant := symbols.FunctionTemplate
	if _, ok := d.Body.(*ast.ClassDecl); ok {
		variant = symbols.ClassTemplate
	}
	tpl := symbols.NewTemplate(d.Pos(), templateName(d), variant, c.templateInstaller(d))
	for i, p := range d.Params {
		tp := &symbols.TemplateParameter{Kind: templateParamKind(p.Kind), Index: i}
		tpl.Params = append(tpl.Params, tp)
	}
	c.enclosingNamespace().AddTemplate(tpl)
}

func templateName(d *ast.TemplateDecl) string {
	switch body := d.Body.(type) {
	case *ast.ClassDecl:
		return body.Name.Value
	case *ast.FuncDecl:
		return funcName(body)
	default:
		return "<template>"
	}
}

func templateParamKind(k ast.TemplateParamKind) symbols.TemplateParamKind {
	switch k {
	case ast.IntParam:
		return symbols.IntParam
	case ast.BoolParam:
		return symbols.BoolParam
	default:
		return symbols.TypeParam
	}
}

func (c *Checker) collectNestedTemplate(cls *symbols.Class, d *ast.TemplateDecl) {
	variant := symbols.FunctionTemplate
	if _, ok := d.Body.(*ast.ClassDecl); ok {
		variant = symbols.ClassTemplate
	}
	tpl := symbols.NewTemplate(d.Pos(), templateName(d), variant, c.templateInstaller(d))
	cls.Templates = append(cls.Templates, tpl)
}

// templateInstaller builds, for a class template, the Installer
// callback spec.md §4.4 describes: the first time a given argument
// vector is requested, collect the template body's member functions and
// data members into the instantiated Class with the bound type
// arguments substituted. Member function bodies are not checked here.
func (c *Checker) templateInstaller(d *ast.TemplateDecl) symbols.Installer {
	body, ok := d.Body.(*ast.ClassDecl)
	if !ok {
		return nil
	}
	return func(table *symbols.Table, inst *symbols.Class, args []symbols.TemplateArg) {
		sub := c.bindTemplateArgs(d.Params, args)
		prevClass := c.curClass
		c.curClass = inst
		for _, m := range body.Members {
			switch m := m.(type) {
			case *ast.FuncDecl:
				c.collectMemberFuncSubstituted(inst, m, symbols.AccessPublic, sub)
			case *ast.VarDecl:
				prevSub := c.typeSubst
				c.typeSubst = sub
				c.collectMemberVar(inst, m, symbols.AccessPublic)
				c.typeSubst = prevSub
			}
		}
		inst.AssignVTableSlots()
		c.curClass = prevClass
	}
}

// bindTemplateArgs maps each template parameter name to the TypeID
// bound for it, for substitution while collecting an instantiation's
// members (spec.md §4.4's "build the class's members" step).
func (c *Checker) bindTemplateArgs(params []*ast.TemplateParam, args []symbols.TemplateArg) map[string]symbols.TypeID {
	sub := make(map[string]symbols.TypeID)
	for i, p := range params {
		if i < len(args) && args[i].Kind == symbols.TypeParam {
			sub[p.Name.Value] = args[i].Type
		}
	}
	return sub
}

func (c *Checker) collectMemberFuncSubstituted(cls *symbols.Class, d *ast.FuncDecl, access symbols.AccessLevel, sub map[string]symbols.TypeID) {
	prevSub := c.typeSubst
	c.typeSubst = sub
	c.collectMemberFunc(cls, d, access)
	c.typeSubst = prevSub
}
