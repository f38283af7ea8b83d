package scope

import (
	"testing"

	"github.com/libscript-lang/libscript/internal/symbols"
	"github.com/libscript-lang/libscript/internal/token"
)

func TestLookupChainBuiltinShortCircuit(t *testing.T) {
	root := symbols.NewNamespace(token.Pos{}, "", nil)
	ns := NewNamespaceScope(nil, root)
	r := LookupChain(ns, "int")
	if r.Kind != FoundType || r.Type != symbols.Int {
		t.Errorf("LookupChain(int) = %+v, want FoundType Int", r)
	}
}

func TestLookupChainWalksParent(t *testing.T) {
	root := symbols.NewNamespace(token.Pos{}, "", nil)
	v := symbols.NewVar(token.Pos{}, "g", symbols.Int)
	root.AddVariable(v)

	ns := NewNamespaceScope(nil, root)
	block := New(ns, BlockScope, token.Pos{}, token.Pos{}, "")

	r := LookupChain(block, "g")
	if r.Kind != FoundGlobalVariable {
		t.Errorf("LookupChain(g) = %+v, want FoundGlobalVariable", r)
	}
}

func TestLookupChainLocalShadowsGlobal(t *testing.T) {
	root := symbols.NewNamespace(token.Pos{}, "", nil)
	root.AddVariable(symbols.NewVar(token.Pos{}, "x", symbols.Int))

	ns := NewNamespaceScope(nil, root)
	block := New(ns, BlockScope, token.Pos{}, token.Pos{}, "")
	block.Declare("x", Result{Kind: FoundLocalVariable, LocalIndex: 0})

	r := LookupChain(block, "x")
	if r.Kind != FoundLocalVariable {
		t.Errorf("expected local to shadow global, got %+v", r)
	}
}

func TestLookupChainNotFound(t *testing.T) {
	root := symbols.NewNamespace(token.Pos{}, "", nil)
	ns := NewNamespaceScope(nil, root)
	r := LookupChain(ns, "doesNotExist")
	if r.Found() {
		t.Errorf("expected not found, got %+v", r)
	}
}

func TestMemberLookupWalksBaseChain(t *testing.T) {
	base := symbols.NewClass(token.Pos{}, "Base")
	baseMethod := symbols.NewFunction(token.Pos{}, "greet", symbols.RegularFunction, &symbols.Prototype{Return: symbols.Void})
	base.Methods = append(base.Methods, baseMethod)

	derived := symbols.NewClass(token.Pos{}, "Derived")
	derived.Base = base

	r := MemberLookup(derived, "greet")
	if r.Kind != FoundFunctions || len(r.Functions) != 1 {
		t.Errorf("MemberLookup(greet) = %+v, want one inherited function", r)
	}
}

func TestMemberLookupStopsAtShadowingDataMember(t *testing.T) {
	base := symbols.NewClass(token.Pos{}, "Base")
	baseMethod := symbols.NewFunction(token.Pos{}, "width", symbols.RegularFunction, &symbols.Prototype{Return: symbols.Int})
	base.Methods = append(base.Methods, baseMethod)

	derived := symbols.NewClass(token.Pos{}, "Derived")
	derived.Base = base
	derived.AddField(symbols.NewVar(token.Pos{}, "width", symbols.Int))

	r := MemberLookup(derived, "width")
	if r.Kind != FoundDataMember {
		t.Errorf("MemberLookup(width) = %+v, want FoundDataMember (derived's own field hides the inherited method)", r)
	}
}

func TestMemberLookupFindsOwnDataMember(t *testing.T) {
	base := symbols.NewClass(token.Pos{}, "Base")
	derived := symbols.NewClass(token.Pos{}, "Derived")
	derived.Base = base
	derived.AddField(symbols.NewVar(token.Pos{}, "width", symbols.Int))

	r := MemberLookup(derived, "width")
	if r.Kind != FoundDataMember || r.DataMemberIndex != 0 {
		t.Errorf("MemberLookup(width) = %+v, want FoundDataMember index 0", r)
	}
}

func TestScopeDeclareAndLookupLocal(t *testing.T) {
	block := New(nil, BlockScope, token.Pos{}, token.Pos{}, "")
	block.Declare("i", Result{Kind: FoundLocalVariable, LocalIndex: 3})
	r := block.Lookup("i")
	if r.Kind != FoundLocalVariable || r.LocalIndex != 3 {
		t.Errorf("Lookup(i) = %+v, want LocalIndex 3", r)
	}
}

func TestClassScopeLookupSeesInheritedMembers(t *testing.T) {
	base := symbols.NewClass(token.Pos{}, "Base")
	baseMethod := symbols.NewFunction(token.Pos{}, "greet", symbols.RegularFunction, &symbols.Prototype{Return: symbols.Void})
	base.Methods = append(base.Methods, baseMethod)

	derived := symbols.NewClass(token.Pos{}, "Derived")
	derived.Base = base

	s := NewClassScope(nil, derived)
	r := s.Lookup("greet")
	if r.Kind != FoundFunctions || len(r.Functions) != 1 {
		t.Errorf("unqualified Lookup(greet) = %+v, want the inherited method found via MemberLookup", r)
	}
}

func TestNewClassScopeBacksOntoClass(t *testing.T) {
	c := symbols.NewClass(token.Pos{}, "A")
	s := NewClassScope(nil, c)
	if s.Class() != c {
		t.Error("expected Class() to return the backing class")
	}
	if s.Kind() != ClassScope {
		t.Errorf("Kind() = %v, want ClassScope", s.Kind())
	}
}
