package symbols

import "github.com/libscript-lang/libscript/internal/token"

// InstallBuiltins registers the built-ins spec.md §4.4 requires to be
// available without an explicit declaration: the `Array<T>` class
// template, installed the first time a given element type is
// instantiated with default/copy/size constructors, a destructor,
// `size`, `resize`, assignment, and both subscript overloads. Grounded
// on Template.InstantiateClass's own doc comment describing this exact
// member set.
func InstallBuiltins(table *Table) {
	arr := NewTemplate(token.Pos{}, "Array", ClassTemplate, installArray)
	arr.Params = []*TemplateParameter{
		{object: object{name: "T"}, Kind: TypeParam, Index: 0},
	}
	table.Root.AddTemplate(arr)
}

// installArray builds the member set of one Array<T> instantiation.
// Bodies are left nil: these are host-provided primitives that the
// external interpreter implements directly, the same way a fundamental
// type's operators have no program-tree body of their own.
func installArray(table *Table, inst *Class, args []TemplateArg) {
	elem := args[0].Type
	self := inst.Type()

	newFunc := func(name string, kind FunctionKind, ret TypeID, params ...TypeID) *Function {
		proto := &Prototype{Return: ret, Params: params}
		f := NewFunction(token.Pos{}, name, kind, proto)
		f.Enclosing = inst
		table.DeclareFunction(f)
		return f
	}

	this := self.Ref() | TypeID(FlagThisParam)
	cthis := self.CRef() | TypeID(FlagThisParam)

	// Default, copy, and size constructors.
	inst.Ctors = append(inst.Ctors,
		newFunc(inst.Name(), Constructor, Void, this),
		newFunc(inst.Name(), Constructor, Void, this, self.CRef()),
		newFunc(inst.Name(), Constructor, Void, this, Int),
	)

	inst.Dtor = newFunc("~"+inst.Name(), Destructor, Void, this)

	inst.Methods = append(inst.Methods,
		newFunc("size", RegularFunction, Int, cthis),
		newFunc("resize", RegularFunction, Void, this, Int),
	)

	inst.Operators = append(inst.Operators,
		newFunc("operator=", OperatorFunction, self.Ref(), this, self.CRef()),
		newFunc("operator[]", OperatorFunction, elem.Ref(), this, Int),
		newFunc("operator[]", OperatorFunction, elem.CRef(), cthis, Int),
	)
}
