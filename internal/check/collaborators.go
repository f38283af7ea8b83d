package check

import (
	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/program"
	"github.com/libscript-lang/libscript/internal/symbols"
)

// VariableAccessor builds the program.Value that reads one local,
// global, capture, or data-member slot a name lookup resolved to
// (spec.md §4.8's Identifier case: "delegated to an injected
// VariableAccessor collaborator"). The checker never picks a concrete
// storage layout itself; a host that lays out locals differently than
// the default flat stack supplies its own.
type VariableAccessor interface {
	AccessLocal(idx int, typ symbols.TypeID) *program.Value
	AccessGlobal(v *symbols.Var) *program.Value
	AccessCapture(idx int, typ symbols.TypeID) *program.Value
	AccessDataMember(object *program.Value, idx int, typ symbols.TypeID) *program.Value
	AccessStaticMember(v *symbols.Var) *program.Value
}

// LambdaProcessor builds the synthesized closure type and call
// operator for one lambda expression (spec.md §4.8: "the core defines
// the contract: captures resolved in enclosing scope, a synthesized
// closure type, a generated call operator"). The checker resolves the
// captures before calling in; everything past that is host policy.
type LambdaProcessor interface {
	ProcessLambda(c *Checker, e *ast.LambdaExpr, captures []capturedVar) *program.Value
}

type capturedVar struct {
	Name string
	Type symbols.TypeID
	Kind scopeResultKind
	// Index identifies the captured slot in its own enclosing scope:
	// a local-stack index, a capture index of an outer lambda, or a
	// data-member index, depending on Kind.
	Index int
}

// scopeResultKind narrows scope.Kind to the variants a capture can
// name, avoiding an import of the scope package's full Kind set here.
type scopeResultKind int

const (
	capturedLocal scopeResultKind = iota
	capturedDataMember
	capturedGlobal
)

// defaultAccessor is the Checker's VariableAccessor when none is
// supplied: a direct 1:1 mapping onto internal/program's access ops.
type defaultAccessor struct{}

func (defaultAccessor) AccessLocal(idx int, typ symbols.TypeID) *program.Value {
	return &program.Value{Op: program.OpLocalAccess, Type: typ, AuxInt: int64(idx)}
}
func (defaultAccessor) AccessGlobal(v *symbols.Var) *program.Value {
	return &program.Value{Op: program.OpGlobalAccess, Type: v.Type(), Aux: v}
}
func (defaultAccessor) AccessCapture(idx int, typ symbols.TypeID) *program.Value {
	return &program.Value{Op: program.OpCaptureAccess, Type: typ, AuxInt: int64(idx)}
}
func (defaultAccessor) AccessDataMember(object *program.Value, idx int, typ symbols.TypeID) *program.Value {
	return &program.Value{Op: program.OpDataMemberAccess, Type: typ, AuxInt: int64(idx), Args: []*program.Value{object}}
}
func (defaultAccessor) AccessStaticMember(v *symbols.Var) *program.Value {
	return &program.Value{Op: program.OpStaticMemberAccess, Type: v.Type(), Aux: v}
}

// defaultLambdas synthesizes the minimal closure a lambda needs when
// no host LambdaProcessor is installed: an anonymous Class, registered
// like any other class (its type carries FlagObject, not FlagClosure),
// with one Operators entry (operator()) and one field per capture,
// matching the same Class/Function shapes any other class gets.
type defaultLambdas struct{}

func (defaultLambdas) ProcessLambda(c *Checker, e *ast.LambdaExpr, captures []capturedVar) *program.Value {
	cls := symbols.NewClass(e.Pos(), "<lambda>")
	c.Table.RegisterClass(cls)

	for _, cv := range captures {
		f := symbols.NewVar(e.Pos(), cv.Name, cv.Type)
		cls.AddField(f)
	}

	params := []symbols.TypeID{cls.Type().Ref() | symbols.TypeID(symbols.FlagThisParam)}
	for _, p := range e.Params {
		params = append(params, c.resolveType(p.Type))
	}
	ret := symbols.Void
	if e.Result != nil {
		ret = c.resolveType(e.Result)
	}
	proto := &symbols.Prototype{Return: ret, Params: params}
	callOp := symbols.NewFunction(e.Pos(), "operator()", symbols.OperatorFunction, proto)
	c.Table.DeclareFunction(callOp)
	cls.Operators = append(cls.Operators, callOp)

	return &program.Value{Op: program.OpConstructorCall, Type: cls.Type(), Aux: callOp}
}
