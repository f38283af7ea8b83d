package check

import (
	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/convert"
	"github.com/libscript-lang/libscript/internal/overload"
	"github.com/libscript-lang/libscript/internal/program"
	"github.com/libscript-lang/libscript/internal/scope"
	"github.com/libscript-lang/libscript/internal/symbols"
	"github.com/libscript-lang/libscript/internal/token"
)

// checkCall implements spec.md §4.8's four call subcases: plain
// identifier, qualified member call, functor call, and function-
// variable call, dispatching on the shape of e.Fun.
func (c *Checker) checkCall(e *ast.CallExpr) *program.Value {
	switch fun := e.Fun.(type) {
	case *ast.Name:
		return c.checkPlainCall(e, fun)
	case *ast.TemplateID:
		return c.checkTemplateCall(e, fun)
	case *ast.MemberExpr:
		return c.checkMethodCall(e, fun)
	default:
		return c.checkFunctorOrVariableCall(e)
	}
}

func (c *Checker) checkPlainCall(e *ast.CallExpr, name *ast.Name) *program.Value {
	r := c.lookup(name.Value)
	switch r.Kind {
	case scope.FoundType:
		return c.construct(r.Type, c.checkExprList(e.Args), false, e.Pos())
	case scope.FoundFunctions:
		args := c.checkExprList(e.Args)
		fn, callArgs, ok := c.resolveCall(e.Pos(), name.Value, r.Functions, nil, args)
		if !ok {
			return c.invalidValue(e.Pos())
		}
		return c.emitCall(e.Pos(), fn, nil, callArgs)
	case scope.FoundTemplate:
		c.report(e.Pos(), TemplateNamesAreNotExpressions, "%q names a template; explicit template arguments are required", name.Value)
		return c.invalidValue(e.Pos())
	case scope.FoundNamespace:
		c.report(e.Pos(), NamespaceNameInExpression, "%q names a namespace", name.Value)
		return c.invalidValue(e.Pos())
	default:
		return c.checkVariableCall(e, c.checkIdent(name))
	}
}

// checkTemplateCall handles `Name<Args>(args)`: a class-template name
// is the construction case, resolveType already instantiates it.
func (c *Checker) checkTemplateCall(e *ast.CallExpr, tid *ast.TemplateID) *program.Value {
	name, ok := tid.Base.(*ast.Name)
	if !ok {
		c.invalidAST(tid.Pos(), "unexpected template base %T", tid.Base)
		return c.invalidValue(e.Pos())
	}
	r := c.lookup(name.Value)
	if r.Kind != scope.FoundTemplate || r.Template.Variant != symbols.ClassTemplate {
		c.report(e.Pos(), TemplateNamesAreNotExpressions, "function-template call deduction is not supported; supply a class-template name")
		return c.invalidValue(e.Pos())
	}
	return c.construct(c.resolveType(tid), c.checkExprList(e.Args), false, e.Pos())
}

func (c *Checker) checkMethodCall(e *ast.CallExpr, sel *ast.MemberExpr) *program.Value {
	object := c.checkExpr(sel.X)
	name, ok := sel.Sel.(*ast.Name)
	if !ok {
		c.invalidAST(sel.Pos(), "unexpected member selector %T", sel.Sel)
		return c.invalidValue(e.Pos())
	}
	cls := c.Table.ClassOf(object.Type.Decayed())
	if cls == nil {
		c.report(sel.Pos(), NoSuchMember, "%s is not a class type", c.Table.Name(object.Type))
		return c.invalidValue(e.Pos())
	}
	r := scope.MemberLookup(cls, name.Value)
	if r.Kind != scope.FoundFunctions {
		c.report(sel.Pos(), NoSuchMember, "%s has no member %q", cls.Name(), name.Value)
		return c.invalidValue(e.Pos())
	}
	args := c.checkExprList(e.Args)
	fn, callArgs, ok2 := c.resolveCall(e.Pos(), name.Value, r.Functions, object, args)
	if !ok2 {
		return c.invalidValue(e.Pos())
	}
	return c.emitCall(e.Pos(), fn, object, callArgs)
}

// checkFunctorOrVariableCall handles `expr(args)` where expr is
// neither a bare name nor a member access: a functor call if expr's
// type is a class with `operator()`, or a function-variable call if
// expr's type is a function signature.
func (c *Checker) checkFunctorOrVariableCall(e *ast.CallExpr) *program.Value {
	callee := c.checkExpr(e.Fun)
	return c.checkVariableCall(e, callee)
}

func (c *Checker) checkVariableCall(e *ast.CallExpr, callee *program.Value) *program.Value {
	if cls := c.Table.ClassOf(callee.Type.Decayed()); cls != nil {
		r := scope.MemberLookup(cls, "operator()")
		if r.Kind != scope.FoundFunctions {
			c.report(e.Pos(), CouldNotFindValidCallOperator, "%s has no operator()", cls.Name())
			return c.invalidValue(e.Pos())
		}
		args := c.checkExprList(e.Args)
		fn, callArgs, ok := c.resolveCall(e.Pos(), "operator()", r.Functions, callee, args)
		if !ok {
			return c.invalidValue(e.Pos())
		}
		return c.emitCall(e.Pos(), fn, callee, callArgs)
	}

	if callee.Type.Flags()&symbols.FlagFuncSig != 0 {
		proto := c.Table.PrototypeOf(callee.Type.BaseType())
		if proto == nil {
			c.invalidAST(e.Pos(), "function-signature type with no prototype")
			return c.invalidValue(e.Pos())
		}
		args := c.checkExprList(e.Args)
		if len(args) != proto.Arity() {
			c.report(e.Pos(), CouldNotConvert, "expected %d arguments, got %d", proto.Arity(), len(args))
			return c.invalidValue(e.Pos())
		}
		var callArgs []*program.Value
		for i, a := range args {
			conv := convert.Compute(c.Table, a.Type, proto.Params[i])
			if !conv.Convertible() {
				c.report(e.Args[i].Pos(), CouldNotConvert, "cannot convert argument %d to %s", i, c.Table.Name(proto.Params[i]))
				return c.invalidValue(e.Pos())
			}
			callArgs = append(callArgs, c.applyConversion(a, proto.Params[i], conv))
		}
		v := program.NewValue(program.OpCall, proto.Return, progPos(e.Pos()), append([]*program.Value{callee}, callArgs...)...)
		return v
	}

	c.report(e.Pos(), CouldNotFindValidCallOperator, "%s is not callable", c.Table.Name(callee.Type))
	return c.invalidValue(e.Pos())
}

// resolveCall picks the best candidate and converts object/args to its
// parameters, implementing spec.md §4.7's algorithm via
// internal/overload. object is nil for a free-function or constructor
// call.
func (c *Checker) resolveCall(pos token.Pos, name string, candidates []*symbols.Function, object *program.Value, args []*program.Value) (*symbols.Function, []*program.Value, bool) {
	hasThis := object != nil
	var objType symbols.TypeID
	if hasThis {
		objType = object.Type
	}
	res := overload.Resolve(c.Table, candidates, hasThis, objType, typesOf(args))
	if res.Ambiguous {
		c.report(pos, AmbiguousFunctionName, "ambiguous call to %q", name)
		return nil, nil, false
	}
	if res.Best == nil {
		c.report(pos, CouldNotFindValidOverload, "no matching overload for %q", name)
		return nil, nil, false
	}
	if res.Best.Flags.Deleted {
		c.report(pos, CallToDeletedFunction, "call to deleted function %q", name)
		return nil, nil, false
	}
	if res.Best.Flags.Access == symbols.AccessPrivate && c.curClass != res.Best.Enclosing {
		c.report(pos, InaccessibleMember, "%q is private", name)
		return nil, nil, false
	}

	params := res.Best.Proto.Params
	effective := params
	usesThis := res.Best.Proto.HasThis()
	if usesThis {
		effective = params[1:]
	}

	var callArgs []*program.Value
	idx := 0
	if hasThis && usesThis {
		callArgs = append(callArgs, c.applyConversion(object, params[0], res.Conversions[0]))
		idx = 1
	}
	for i, a := range args {
		callArgs = append(callArgs, c.applyConversion(a, effective[i], res.Conversions[idx+i]))
	}
	return res.Best, callArgs, true
}

// emitCall builds the call's program node once a candidate has been
// chosen: a constructor call, a virtual call (through object's
// vtable), or a plain static call.
func (c *Checker) emitCall(pos token.Pos, fn *symbols.Function, object *program.Value, callArgs []*program.Value) *program.Value {
	if fn.Kind == symbols.Constructor {
		return &program.Value{Op: program.OpConstructorCall, Type: fn.Enclosing.Type(), Args: callArgs, Aux: fn, Pos: progPos(pos)}
	}
	if fn.Flags.Virtual && object != nil {
		return &program.Value{Op: program.OpVirtualCall, Type: fn.Proto.Return, Args: callArgs, AuxInt: int64(fn.VTableIndex), Pos: progPos(pos)}
	}
	return &program.Value{Op: program.OpCall, Type: fn.Proto.Return, Args: callArgs, Aux: fn, Pos: progPos(pos)}
}

// applyConversion wraps v in an OpConvert node unless r is a pure
// identity (no const adjustment), matching convert.Result's own
// Convertible/Rank accessors rather than re-deriving them.
func (c *Checker) applyConversion(v *program.Value, dest symbols.TypeID, r convert.Result) *program.Value {
	if r.Rank() == convert.ExactMatch && !r.Standard.ConstAdjusted() {
		return v
	}
	return &program.Value{Op: program.OpConvert, Type: dest, Args: []*program.Value{v}, Aux: r, Pos: v.Pos}
}

func typesOf(args []*program.Value) []symbols.TypeID {
	ts := make([]symbols.TypeID, len(args))
	for i, a := range args {
		ts[i] = a.Type
	}
	return ts
}

func (c *Checker) checkExprList(exprs []ast.Expr) []*program.Value {
	vals := make([]*program.Value, len(exprs))
	for i, e := range exprs {
		vals[i] = c.checkExpr(e)
	}
	return vals
}

func (c *Checker) invalidValue(pos token.Pos) *program.Value {
	return &program.Value{Op: program.OpInvalid, Type: symbols.Void, Pos: progPos(pos)}
}
