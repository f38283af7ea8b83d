package symbols

import (
	"testing"

	"github.com/libscript-lang/libscript/internal/token"
)

func TestTypeIDRefAndConst(t *testing.T) {
	r := Int.Ref()
	if !r.IsReference() || r.IsConst() || r.IsRvalueRef() {
		t.Errorf("Int.Ref() = %v, want reference, non-const, non-rvalue", r)
	}
	cr := Int.CRef()
	if !cr.IsReference() || !cr.IsConst() {
		t.Errorf("Int.CRef() = %v, want reference and const", cr)
	}
	rr := Int.RRef()
	if !rr.IsRvalueRef() || rr.IsReference() == false {
		t.Errorf("Int.RRef() = %v, want rvalue reference", rr)
	}
}

func TestTypeIDDecayedStripsQualifiers(t *testing.T) {
	q := Int.CRef()
	d := q.Decayed()
	if d.IsReference() || d.IsConst() {
		t.Errorf("Decayed() = %v, want plain value type", d)
	}
	if d.BaseType() != Int.BaseType() {
		t.Errorf("Decayed() base = %v, want Int", d.BaseType())
	}
}

func TestTypeIDBaseTypeStripsFlags(t *testing.T) {
	flagged := Int.Ref() | TypeID(FlagThisParam)
	if flagged.BaseType() != Int {
		t.Errorf("BaseType() = %v, want Int", flagged.BaseType())
	}
}

func TestTypeIDWithConstIsIdempotent(t *testing.T) {
	c1 := Int.WithConst()
	c2 := c1.WithConst()
	if c1 != c2 {
		t.Errorf("WithConst() should be idempotent: %v != %v", c1, c2)
	}
}

func TestTableRegisterClassAssignsDistinctTypeIDs(t *testing.T) {
	table := NewTable()
	a := NewClass(token.Pos{}, "A")
	b := NewClass(token.Pos{}, "B")
	table.RegisterClass(a)
	table.RegisterClass(b)

	if a.Type() == b.Type() {
		t.Error("distinct classes should get distinct TypeIDs")
	}
	if table.ClassOf(a.Type()) != a {
		t.Error("ClassOf(a.Type()) should return a")
	}
	if a.Type().Flags()&FlagObject == 0 {
		t.Error("a registered class's TypeID should carry FlagObject")
	}
}

func TestTableFuncTypeInternsIdenticalPrototypes(t *testing.T) {
	table := NewTable()
	p1 := &Prototype{Return: Int, Params: []TypeID{Int, Boolean}}
	p2 := &Prototype{Return: Int, Params: []TypeID{Int, Boolean}}

	id1 := table.FuncType(p1)
	id2 := table.FuncType(p2)
	if id1 != id2 {
		t.Errorf("structurally identical prototypes should intern to the same TypeID: %v != %v", id1, id2)
	}

	p3 := &Prototype{Return: Void, Params: []TypeID{Int}}
	id3 := table.FuncType(p3)
	if id3 == id1 {
		t.Error("differing prototypes should not share a TypeID")
	}
}

func TestTableInheritanceLevel(t *testing.T) {
	table := NewTable()
	base := NewClass(token.Pos{}, "Base")
	table.RegisterClass(base)
	mid := NewClass(token.Pos{}, "Mid")
	mid.Base = base
	table.RegisterClass(mid)
	derived := NewClass(token.Pos{}, "Derived")
	derived.Base = mid
	table.RegisterClass(derived)

	if table.InheritanceLevel(derived, base) != 2 {
		t.Errorf("InheritanceLevel(derived, base) = %d, want 2", table.InheritanceLevel(derived, base))
	}
	if table.InheritanceLevel(base, derived) != -1 {
		t.Errorf("InheritanceLevel(base, derived) = %d, want -1", table.InheritanceLevel(base, derived))
	}
}

func TestClassFindMethodHidesBaseOverloadSet(t *testing.T) {
	base := NewClass(token.Pos{}, "Base")
	base.Methods = append(base.Methods, NewFunction(token.Pos{}, "f", RegularFunction, &Prototype{Return: Int}))

	derived := NewClass(token.Pos{}, "Derived")
	derived.Base = base
	derived.Methods = append(derived.Methods, NewFunction(token.Pos{}, "f", RegularFunction, &Prototype{Return: Void, Params: []TypeID{Int}}))

	found := derived.FindMethod("f")
	if len(found) != 1 {
		t.Fatalf("len(FindMethod) = %d, want 1 (derived's own overload set hides base's)", len(found))
	}
	if found[0].Proto.Return != Void {
		t.Errorf("expected the derived overload, got one returning %v", found[0].Proto.Return)
	}
}

func TestAssignVTableSlotsMatchesImplicitOverrideIgnoringThis(t *testing.T) {
	base := NewClass(token.Pos{}, "A")
	baseThis := TypeID(0).WithConst() // placeholder distinct from derived's this
	baseF := NewFunction(token.Pos{}, "f", RegularFunction, &Prototype{Return: Int, Params: []TypeID{baseThis | TypeID(FlagThisParam)}})
	baseF.Flags.Virtual = true
	base.Methods = append(base.Methods, baseF)
	base.AssignVTableSlots()

	derived := NewClass(token.Pos{}, "B")
	derived.Base = base
	derivedThis := TypeID(1) | TypeID(FlagThisParam) // a distinct class's `this`, never equal to base's
	derivedF := NewFunction(token.Pos{}, "f", RegularFunction, &Prototype{Return: Int, Params: []TypeID{derivedThis}})
	// derivedF.Flags.Virtual is deliberately left false: it never repeats `virtual`.
	derived.Methods = append(derived.Methods, derivedF)
	derived.AssignVTableSlots()

	if len(derived.VTable) != 1 {
		t.Fatalf("len(B.VTable) = %d, want 1 (B::f must replace A::f's slot, not append)", len(derived.VTable))
	}
	if derived.VTable[0] != derivedF {
		t.Fatalf("B.VTable[0] = %v, want B::f", derived.VTable[0])
	}
	if !derivedF.Flags.Virtual {
		t.Error("B::f.Flags.Virtual = false, want true after an implicit override match")
	}
	if derivedF.VTableIndex != 0 {
		t.Errorf("B::f.VTableIndex = %d, want 0", derivedF.VTableIndex)
	}
}

func TestAssignVTableSlotsAppendsNonMatchingVirtual(t *testing.T) {
	base := NewClass(token.Pos{}, "A")
	baseF := NewFunction(token.Pos{}, "f", RegularFunction, &Prototype{Return: Int})
	baseF.Flags.Virtual = true
	base.Methods = append(base.Methods, baseF)
	base.AssignVTableSlots()

	derived := NewClass(token.Pos{}, "B")
	derived.Base = base
	derivedG := NewFunction(token.Pos{}, "g", RegularFunction, &Prototype{Return: Boolean})
	derivedG.Flags.Virtual = true
	derived.Methods = append(derived.Methods, derivedG)
	derived.AssignVTableSlots()

	if len(derived.VTable) != 2 {
		t.Fatalf("len(B.VTable) = %d, want 2 (A::f kept, B::g appended)", len(derived.VTable))
	}
	if derived.VTable[0] != baseF {
		t.Errorf("B.VTable[0] = %v, want inherited A::f", derived.VTable[0])
	}
	if derived.VTable[1] != derivedG || derivedG.VTableIndex != 1 {
		t.Errorf("B.VTable[1] = %v (index %d), want B::g at index 1", derived.VTable[1], derivedG.VTableIndex)
	}
}

func TestClassAllFieldsOrdersBaseBeforeDerived(t *testing.T) {
	base := NewClass(token.Pos{}, "Base")
	base.AddField(NewVar(token.Pos{}, "a", Int))
	derived := NewClass(token.Pos{}, "Derived")
	derived.Base = base
	derived.AddField(NewVar(token.Pos{}, "b", Int))

	all := derived.AllFields()
	if len(all) != 2 || all[0].Name() != "a" || all[1].Name() != "b" {
		t.Errorf("AllFields() = %+v, want [a b]", all)
	}
	if derived.Fields[0].Index != 1 {
		t.Errorf("derived's own field index = %d, want 1 (past Base's one inherited field)", derived.Fields[0].Index)
	}
}

func TestInstallBuiltinsRegistersArrayTemplate(t *testing.T) {
	table := NewTable()
	r, ok := table.Root.byName["Array"]
	if !ok || len(r) != 1 {
		t.Fatal("expected Array to be registered in the root namespace")
	}
	tmpl, ok := r[0].(*Template)
	if !ok {
		t.Fatalf("Array = %T, want *Template", r[0])
	}

	inst := tmpl.InstantiateClass(table, []TemplateArg{{Kind: TypeParam, Type: Int}})
	if len(inst.Ctors) != 3 {
		t.Errorf("len(Ctors) = %d, want 3", len(inst.Ctors))
	}
	if inst.Dtor == nil {
		t.Error("expected a destructor")
	}
	if len(inst.Methods) != 2 {
		t.Errorf("len(Methods) = %d, want 2 (size, resize)", len(inst.Methods))
	}
	if len(inst.Operators) != 3 {
		t.Errorf("len(Operators) = %d, want 3 (operator=, two operator[])", len(inst.Operators))
	}
}

func TestInstantiateClassCachesByArgs(t *testing.T) {
	table := NewTable()
	arr, _ := table.Root.byName["Array"]
	tmpl := arr[0].(*Template)

	a := tmpl.InstantiateClass(table, []TemplateArg{{Kind: TypeParam, Type: Int}})
	b := tmpl.InstantiateClass(table, []TemplateArg{{Kind: TypeParam, Type: Int}})
	if a != b {
		t.Error("instantiating with the same args twice should return the cached Class")
	}
	c := tmpl.InstantiateClass(table, []TemplateArg{{Kind: TypeParam, Type: Boolean}})
	if a == c {
		t.Error("instantiating with different args should produce a distinct Class")
	}
}
