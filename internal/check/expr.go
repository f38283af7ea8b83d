package check

import (
	"strconv"

	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/convert"
	"github.com/libscript-lang/libscript/internal/program"
	"github.com/libscript-lang/libscript/internal/scope"
	"github.com/libscript-lang/libscript/internal/symbols"
	"github.com/libscript-lang/libscript/internal/token"
)

// checkExpr is the expression checker's entry point (spec.md §4.8):
// one case per AST expression node shape, producing a typed
// internal/program value.
func (c *Checker) checkExpr(e ast.Expr) *program.Value {
	switch e := e.(type) {
	case *ast.BasicLit:
		return c.checkBasicLit(e)
	case *ast.Name:
		return c.checkIdent(e)
	case *ast.ScopedID, *ast.TemplateID:
		return c.checkQualifiedIdent(e.(ast.Ident))
	case *ast.ThisExpr:
		return c.checkThis(e)
	case *ast.UnaryExpr:
		return c.checkUnary(e)
	case *ast.BinaryExpr:
		return c.checkBinary(e)
	case *ast.ConditionalExpr:
		return c.checkConditional(e)
	case *ast.CallExpr:
		return c.checkCall(e)
	case *ast.IndexExpr:
		return c.checkIndex(e)
	case *ast.MemberExpr:
		return c.checkMemberAccess(e)
	case *ast.BraceConstructExpr:
		return c.checkConstruct(e.Type, e.Args, true, e.Pos())
	case *ast.ArrayLitExpr:
		return c.checkArrayLit(e)
	case *ast.LambdaExpr:
		return c.checkLambda(e)
	default:
		c.invalidAST(e.Pos(), "unexpected expression %T", e)
		return c.invalidValue(e.Pos())
	}
}

func (c *Checker) checkConstruct(typeExpr ast.Expr, argExprs []ast.Expr, braced bool, pos token.Pos) *program.Value {
	typ := c.resolveType(typeExpr)
	return c.construct(typ, c.checkExprList(argExprs), braced, pos)
}

// construct implements the shared paren/brace construction rule: a
// single resolve-constructor call for class targets, a single
// non-narrowing (when braced) conversion for everything else.
func (c *Checker) construct(typ symbols.TypeID, args []*program.Value, braced bool, pos token.Pos) *program.Value {
	if cls := c.Table.ClassOf(typ); cls != nil {
		fn, callArgs, ok := c.resolveCall(pos, cls.Name(), cls.Ctors, nil, args)
		if !ok {
			return c.invalidValue(pos)
		}
		return c.emitCall(pos, fn, nil, callArgs)
	}
	if len(args) != 1 {
		c.report(pos, CouldNotFindValidConstructor, "construction of %s requires exactly one argument", c.Table.Name(typ))
		return c.invalidValue(pos)
	}
	conv := convert.Compute(c.Table, args[0].Type, typ)
	if !conv.Convertible() {
		c.report(pos, CouldNotConvert, "cannot convert %s to %s", c.Table.Name(args[0].Type), c.Table.Name(typ))
		return c.invalidValue(pos)
	}
	if braced && conv.Standard.Narrowing() {
		c.report(pos, NarrowingConversionInBraceInitialization, "narrowing conversion in brace initialization")
		return c.invalidValue(pos)
	}
	return c.applyConversion(args[0], typ, conv)
}

func (c *Checker) checkBasicLit(lit *ast.BasicLit) *program.Value {
	switch lit.Kind {
	case ast.IntLit:
		return &program.Value{Op: program.OpLiteral, Type: symbols.Int, Aux: lit.Value, Pos: progPos(lit.Pos())}
	case ast.FloatLit:
		return &program.Value{Op: program.OpLiteral, Type: symbols.Double, Aux: lit.Value, Pos: progPos(lit.Pos())}
	case ast.StringLit:
		return &program.Value{Op: program.OpLiteral, Type: symbols.String, Aux: lit.Value, Pos: progPos(lit.Pos())}
	case ast.BoolLit:
		return &program.Value{Op: program.OpLiteral, Type: symbols.Boolean, Aux: lit.Value == "true", Pos: progPos(lit.Pos())}
	case ast.NullLit:
		return &program.Value{Op: program.OpLiteral, Type: symbols.Null, Pos: progPos(lit.Pos())}
	case ast.UserLit:
		return c.checkUserLit(lit)
	default:
		c.invalidAST(lit.Pos(), "unexpected literal kind %v", lit.Kind)
		return c.invalidValue(lit.Pos())
	}
}

// checkUserLit implements spec.md §4.8's user-defined-literal rule:
// strip the suffix, build the prefix value, then resolve a literal
// operator in the enclosing scope chain and call it with that value.
func (c *Checker) checkUserLit(lit *ast.BasicLit) *program.Value {
	prefix := prefixValue(lit)
	r := c.lookup(literalOperatorName(lit.Suffix))
	if r.Kind != scope.FoundFunctions {
		c.report(lit.Pos(), CouldNotFindValidOverload, "no literal operator for suffix %q", lit.Suffix)
		return c.invalidValue(lit.Pos())
	}
	fn, callArgs, ok := c.resolveCall(lit.Pos(), literalOperatorName(lit.Suffix), r.Functions, nil, []*program.Value{prefix})
	if !ok {
		return c.invalidValue(lit.Pos())
	}
	return c.emitCall(lit.Pos(), fn, nil, callArgs)
}

func literalOperatorName(suffix string) string { return `operator"" ` + suffix }

// prefixValue parses the numeric or string portion of a user-defined
// literal ahead of its suffix, per the lexer's UserLit convention
// (numeric or string literal immediately followed by an identifier).
func prefixValue(lit *ast.BasicLit) *program.Value {
	if _, err := strconv.ParseFloat(lit.Value, 64); err == nil {
		if _, ierr := strconv.ParseInt(lit.Value, 0, 64); ierr == nil {
			return &program.Value{Op: program.OpLiteral, Type: symbols.Int, Aux: lit.Value, Pos: progPos(lit.Pos())}
		}
		return &program.Value{Op: program.OpLiteral, Type: symbols.Double, Aux: lit.Value, Pos: progPos(lit.Pos())}
	}
	return &program.Value{Op: program.OpLiteral, Type: symbols.String, Aux: lit.Value, Pos: progPos(lit.Pos())}
}

// checkIdent implements spec.md §4.8's Identifier case: resolve via
// C5, then map the lookup result variant onto a program node. Storage
// access is delegated to the Checker's VariableAccessor.
func (c *Checker) checkIdent(name *ast.Name) *program.Value {
	r := c.lookup(name.Value)
	switch r.Kind {
	case scope.FoundLocalVariable:
		return c.accessor.AccessLocal(r.LocalIndex, localTypeAt(c.locals, r.LocalIndex))
	case scope.FoundGlobalVariable:
		return c.accessor.AccessGlobal(r.Variable)
	case scope.FoundCapture:
		return c.accessor.AccessCapture(r.CaptureIndex, symbols.Void)
	case scope.FoundDataMember:
		return c.accessor.AccessDataMember(c.thisValue(name.Pos()), r.DataMemberIndex, c.dataMemberType(r.DataMemberIndex))
	case scope.FoundStaticDataMember:
		return c.accessor.AccessStaticMember(r.StaticVar)
	case scope.FoundEnumerator:
		return &program.Value{Op: program.OpLiteral, Type: r.Enumerator.Type(), AuxInt: r.Enumerator.Value, Pos: progPos(name.Pos())}
	case scope.FoundFunctions:
		return &program.Value{Op: program.OpFunctionLiteral, Aux: r.Functions, Pos: progPos(name.Pos())}
	case scope.FoundType:
		c.report(name.Pos(), TypeNameInExpression, "%q names a type, not a value", name.Value)
		return c.invalidValue(name.Pos())
	case scope.FoundNamespace:
		c.report(name.Pos(), NamespaceNameInExpression, "%q names a namespace, not a value", name.Value)
		return c.invalidValue(name.Pos())
	case scope.FoundTemplate:
		c.report(name.Pos(), TemplateNamesAreNotExpressions, "%q names a template, not a value", name.Value)
		return c.invalidValue(name.Pos())
	default:
		c.report(name.Pos(), NoSuchMember, "undeclared identifier %q", name.Value)
		return c.invalidValue(name.Pos())
	}
}

func localTypeAt(locals []localSlot, idx int) symbols.TypeID {
	for _, l := range locals {
		if l.index == idx {
			return l.typ
		}
	}
	return symbols.Void
}

func (c *Checker) dataMemberType(idx int) symbols.TypeID {
	if c.curClass == nil {
		return symbols.Void
	}
	for _, f := range c.curClass.AllFields() {
		if f.Index == idx {
			return f.Type()
		}
	}
	return symbols.Void
}

func (c *Checker) thisValue(pos token.Pos) *program.Value {
	typ := symbols.Void
	if c.curClass != nil {
		typ = c.curClass.Type().Ref()
	}
	return &program.Value{Op: program.OpThis, Type: typ, Pos: progPos(pos)}
}

func (c *Checker) checkThis(e *ast.ThisExpr) *program.Value {
	if c.curClass == nil {
		c.report(e.Pos(), InvalidAST, "this used outside a member function")
		return c.invalidValue(e.Pos())
	}
	return c.thisValue(e.Pos())
}

// checkQualifiedIdent resolves a `Scope::name` or `Name<Args>` used in
// value (not type) position — e.g. a qualified function call target,
// or a class-template name in an error path that expects a value.
func (c *Checker) checkQualifiedIdent(id ast.Ident) *program.Value {
	switch id := id.(type) {
	case *ast.ScopedID:
		typ := c.resolveType(id)
		if typ != symbols.Void {
			c.report(id.Pos(), TypeNameInExpression, "qualified name denotes a type, not a value")
		}
		return c.invalidValue(id.Pos())
	case *ast.TemplateID:
		c.report(id.Pos(), TemplateNamesAreNotExpressions, "template-id used as a value")
		return c.invalidValue(id.Pos())
	default:
		c.invalidAST(id.Pos(), "unexpected identifier %T", id)
		return c.invalidValue(id.Pos())
	}
}

// checkMemberAccess implements spec.md §4.8's `a.b` case: the LHS must
// be an object type; the result type is `const ref T` if the object is
// const, `ref T` otherwise.
func (c *Checker) checkMemberAccess(e *ast.MemberExpr) *program.Value {
	object := c.checkExpr(e.X)
	cls := c.Table.ClassOf(object.Type.Decayed())
	if cls == nil {
		c.report(e.Pos(), NoSuchMember, "%s is not a class type", c.Table.Name(object.Type))
		return c.invalidValue(e.Pos())
	}
	name, ok := e.Sel.(*ast.Name)
	if !ok {
		c.invalidAST(e.Pos(), "unexpected member selector %T", e.Sel)
		return c.invalidValue(e.Pos())
	}
	r := scope.MemberLookup(cls, name.Value)
	switch r.Kind {
	case scope.FoundDataMember:
		memberType := c.fieldType(cls, r.DataMemberIndex)
		if object.Type.IsConst() {
			memberType = memberType.CRef()
		} else {
			memberType = memberType.Ref()
		}
		return c.accessor.AccessDataMember(object, r.DataMemberIndex, memberType)
	case scope.FoundStaticDataMember:
		return c.accessor.AccessStaticMember(r.StaticVar)
	case scope.FoundFunctions:
		return &program.Value{Op: program.OpFunctionLiteral, Aux: r.Functions, Args: []*program.Value{object}, Pos: progPos(e.Pos())}
	default:
		c.report(e.Pos(), NoSuchMember, "%s has no member %q", cls.Name(), name.Value)
		return c.invalidValue(e.Pos())
	}
}

func (c *Checker) fieldType(cls *symbols.Class, idx int) symbols.TypeID {
	for _, f := range cls.AllFields() {
		if f.Index == idx {
			return f.Type()
		}
	}
	return symbols.Void
}

// checkIndex implements `x[i]` as an operator[] call.
func (c *Checker) checkIndex(e *ast.IndexExpr) *program.Value {
	object := c.checkExpr(e.X)
	index := c.checkExpr(e.Index)
	cls := c.Table.ClassOf(object.Type.Decayed())
	if cls == nil {
		c.report(e.Pos(), NoSuchMember, "%s does not support indexing", c.Table.Name(object.Type))
		return c.invalidValue(e.Pos())
	}
	r := scope.MemberLookup(cls, "operator[]")
	if r.Kind != scope.FoundFunctions {
		c.report(e.Pos(), CouldNotFindValidOverload, "%s has no operator[]", cls.Name())
		return c.invalidValue(e.Pos())
	}
	fn, callArgs, ok := c.resolveCall(e.Pos(), "operator[]", r.Functions, object, []*program.Value{index})
	if !ok {
		return c.invalidValue(e.Pos())
	}
	return c.emitCall(e.Pos(), fn, object, callArgs)
}

// checkUnary implements prefix/postfix `++ -- + - ! ~`, discriminated
// by UnaryExpr.Postfix rather than token offset, since the parser
// already records which form it reduced.
func (c *Checker) checkUnary(e *ast.UnaryExpr) *program.Value {
	operand := c.checkExpr(e.X)
	return c.resolveOperator(e.Pos(), unaryOpName(e.Op, e.Postfix), []*program.Value{operand})
}

func unaryOpName(op token.Kind, postfix bool) string {
	if postfix && (op == token.Inc || op == token.Dec) {
		return "operator" + op.String() + "#post"
	}
	return "operator" + op.String()
}

// checkBinary implements the binary operators through operator lookup +
// overload resolution. `.` never reaches it: the parser builds a
// MemberExpr for member access.
func (c *Checker) checkBinary(e *ast.BinaryExpr) *program.Value {
	x := c.checkExpr(e.X)
	y := c.checkExpr(e.Y)
	return c.resolveOperator(e.Pos(), "operator"+e.Op.String(), []*program.Value{x, y})
}

// resolveOperator implements spec.md §4.8's Operator case: gather
// candidates via operator lookup over the current scope chain and
// each operand's class hierarchy, then overload-resolve.
func (c *Checker) resolveOperator(pos token.Pos, name string, operands []*program.Value) *program.Value {
	candidates := scope.LookupOperators(c.scope, c.Table, name, typesOf(operands)...)
	if len(candidates) == 0 {
		if v, ok := c.builtinOperator(pos, name, operands); ok {
			return v
		}
		c.report(pos, CouldNotFindValidOverload, "no %s overload found", name)
		return c.invalidValue(pos)
	}
	var object *program.Value
	args := operands
	if operands[0].Type.Flags()&symbols.FlagObject != 0 {
		object = operands[0]
		args = operands[1:]
	}
	fn, callArgs, ok := c.resolveCall(pos, name, candidates, object, args)
	if !ok {
		return c.invalidValue(pos)
	}
	return c.emitCall(pos, fn, object, callArgs)
}

// checkConditional implements `c?t:f`: both branches must convert to
// a common type, tried in each direction per spec.md §4.8.
func (c *Checker) checkConditional(e *ast.ConditionalExpr) *program.Value {
	cond := c.checkExpr(e.Cond)
	cond = c.convertTo(cond, symbols.Boolean, e.Pos())
	then := c.checkExpr(e.Then)
	els := c.checkExpr(e.Else)

	common := then.Type
	if conv := convert.Compute(c.Table, els.Type, then.Type); conv.Convertible() {
		els = c.applyConversion(els, then.Type, conv)
	} else if conv := convert.Compute(c.Table, then.Type, els.Type); conv.Convertible() {
		then = c.applyConversion(then, els.Type, conv)
		common = els.Type
	} else {
		c.report(e.Pos(), CouldNotConvert, "incompatible conditional operand types %s and %s", c.Table.Name(then.Type), c.Table.Name(els.Type))
	}
	return &program.Value{Op: program.OpConditional, Type: common, Args: []*program.Value{cond, then, els}, Pos: progPos(e.Pos())}
}

func (c *Checker) convertTo(v *program.Value, dest symbols.TypeID, pos token.Pos) *program.Value {
	conv := convert.Compute(c.Table, v.Type, dest)
	if !conv.Convertible() {
		c.report(pos, CouldNotConvert, "cannot convert %s to %s", c.Table.Name(v.Type), c.Table.Name(dest))
		return v
	}
	return c.applyConversion(v, dest, conv)
}

// checkArrayLit implements `[e1, ...]`: the element type is the first
// element's base type, InitializerList is rejected there, and every
// other element converts to it.
func (c *Checker) checkArrayLit(e *ast.ArrayLitExpr) *program.Value {
	if len(e.Elems) == 0 {
		c.report(e.Pos(), CouldNotConvert, "empty array literal has no element type")
		return c.invalidValue(e.Pos())
	}
	elems := c.checkExprList(e.Elems)
	elemType := elems[0].Type.Decayed()
	if elemType.BaseType() == symbols.InitializerList {
		c.report(e.Pos(), CouldNotConvert, "initializer_list cannot be an array element")
		return c.invalidValue(e.Pos())
	}
	for i := 1; i < len(elems); i++ {
		elems[i] = c.convertTo(elems[i], elemType, e.Elems[i].Pos())
	}
	arrayTemplate := c.lookup("Array")
	arrayType := elemType
	if arrayTemplate.Kind == scope.FoundTemplate {
		cls := arrayTemplate.Template.InstantiateClass(c.Table, []symbols.TemplateArg{{Kind: symbols.TypeParam, Type: elemType}})
		arrayType = cls.Type()
	}
	return &program.Value{Op: program.OpArrayConstruct, Type: arrayType, Args: elems, Pos: progPos(e.Pos())}
}

// checkLambda resolves captures in the enclosing scope and delegates
// synthesis of the closure type and call operator to the installed
// LambdaProcessor (spec.md §4.8).
func (c *Checker) checkLambda(e *ast.LambdaExpr) *program.Value {
	var captures []capturedVar
	for _, capField := range e.Captures {
		r := c.lookup(capField.Name.Value)
		switch r.Kind {
		case scope.FoundLocalVariable:
			captures = append(captures, capturedVar{Name: capField.Name.Value, Type: localTypeAt(c.locals, r.LocalIndex), Kind: capturedLocal, Index: r.LocalIndex})
		case scope.FoundDataMember:
			captures = append(captures, capturedVar{Name: capField.Name.Value, Type: c.dataMemberType(r.DataMemberIndex), Kind: capturedDataMember, Index: r.DataMemberIndex})
		case scope.FoundGlobalVariable:
			captures = append(captures, capturedVar{Name: capField.Name.Value, Type: r.Variable.Type(), Kind: capturedGlobal, Index: r.GlobalIndex})
		default:
			c.report(capField.Name.Pos(), NoSuchMember, "undeclared capture %q", capField.Name.Value)
		}
	}
	return c.lambdas.ProcessLambda(c, e, captures)
}
