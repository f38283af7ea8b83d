package overload

import (
	"testing"

	"github.com/libscript-lang/libscript/internal/symbols"
	"github.com/libscript-lang/libscript/internal/token"
)

func freeFunc(name string, params ...symbols.TypeID) *symbols.Function {
	return symbols.NewFunction(token.Pos{}, name, symbols.RegularFunction, &symbols.Prototype{Return: symbols.Void, Params: params})
}

func TestResolveExactMatchWins(t *testing.T) {
	table := symbols.NewTable()
	candidates := []*symbols.Function{
		freeFunc("f", symbols.Int),
		freeFunc("f", symbols.Double),
	}
	r := Resolve(table, candidates, false, symbols.Void, []symbols.TypeID{symbols.Int})
	if !r.Found() {
		t.Fatal("expected a best match")
	}
	if r.Best != candidates[0] {
		t.Errorf("Best = %v, want the int overload", r.Best.Proto.Params)
	}
}

func TestResolveIncorrectParameterCount(t *testing.T) {
	table := symbols.NewTable()
	candidates := []*symbols.Function{freeFunc("f", symbols.Int, symbols.Int)}
	r := Resolve(table, candidates, false, symbols.Void, []symbols.TypeID{symbols.Int})
	if r.Found() {
		t.Fatal("expected no viable candidate")
	}
	if r.Entries[0].Viability != IncorrectParameterCount {
		t.Errorf("Viability = %v, want IncorrectParameterCount", r.Entries[0].Viability)
	}
}

func TestResolveCouldNotConvertArgument(t *testing.T) {
	table := symbols.NewTable()
	base := symbols.NewClass(token.Pos{}, "Base")
	table.RegisterClass(base)
	other := symbols.NewClass(token.Pos{}, "Other")
	table.RegisterClass(other)

	candidates := []*symbols.Function{freeFunc("f", other.Type())}
	r := Resolve(table, candidates, false, symbols.Void, []symbols.TypeID{base.Type()})
	if r.Found() {
		t.Fatal("expected no viable candidate for unrelated class argument")
	}
	if r.Entries[0].Viability != CouldNotConvertArgument {
		t.Errorf("Viability = %v, want CouldNotConvertArgument", r.Entries[0].Viability)
	}
}

func TestResolveAmbiguousWhenEquallyGood(t *testing.T) {
	table := symbols.NewTable()
	candidates := []*symbols.Function{
		freeFunc("f", symbols.Int),
		freeFunc("f", symbols.Boolean),
	}
	// A bare string-less numeric-family gap: int and bool are both a
	// plain Conversion away from float, so neither dominates.
	r := Resolve(table, candidates, false, symbols.Void, []symbols.TypeID{symbols.Float})
	if !r.Ambiguous {
		t.Errorf("expected ambiguity between equally-ranked overloads, got %+v", r)
	}
}

func TestResolveDefaultArgumentAllowsFewerArgs(t *testing.T) {
	table := symbols.NewTable()
	fn := freeFunc("f", symbols.Int, symbols.Int)
	fn.DefaultArgs = []interface{}{nil, "0"}
	r := Resolve(table, []*symbols.Function{fn}, false, symbols.Void, []symbols.TypeID{symbols.Int})
	if !r.Found() {
		t.Fatal("expected the defaulted-argument call to be viable")
	}
}

func TestResolveMemberCallBindsImplicitObject(t *testing.T) {
	table := symbols.NewTable()
	c := symbols.NewClass(token.Pos{}, "Widget")
	table.RegisterClass(c)
	this := c.Type().Ref() | symbols.TypeID(symbols.FlagThisParam)
	method := symbols.NewFunction(token.Pos{}, "resize", symbols.RegularFunction, &symbols.Prototype{Return: symbols.Void, Params: []symbols.TypeID{this, symbols.Int}})

	r := Resolve(table, []*symbols.Function{method}, true, c.Type(), []symbols.TypeID{symbols.Int})
	if !r.Found() {
		t.Fatalf("expected method call to resolve, entries=%+v", r.Entries)
	}
}
