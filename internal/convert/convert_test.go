package convert

import (
	"testing"

	"github.com/libscript-lang/libscript/internal/symbols"
	"github.com/libscript-lang/libscript/internal/token"
)

func TestComputeExactMatch(t *testing.T) {
	table := symbols.NewTable()
	r := Compute(table, symbols.Int, symbols.Int)
	if r.Rank() != ExactMatch {
		t.Errorf("int->int Rank() = %v, want ExactMatch", r.Rank())
	}
}

func TestComputePromotionCharToInt(t *testing.T) {
	table := symbols.NewTable()
	r := Compute(table, symbols.Char, symbols.Int)
	if r.Rank() != Promotion {
		t.Errorf("char->int Rank() = %v, want Promotion", r.Rank())
	}
}

func TestComputeConversionIntToFloat(t *testing.T) {
	table := symbols.NewTable()
	r := Compute(table, symbols.Int, symbols.Float)
	if r.Rank() != Conversion {
		t.Errorf("int->float Rank() = %v, want Conversion", r.Rank())
	}
	if !r.Standard.Narrowing() {
		t.Error("int->float should be narrowing")
	}
}

func TestComputePromotionFloatToDouble(t *testing.T) {
	table := symbols.NewTable()
	r := Compute(table, symbols.Float, symbols.Double)
	if r.Rank() != Promotion {
		t.Errorf("float->double Rank() = %v, want Promotion", r.Rank())
	}
	if r.Standard.Narrowing() {
		t.Error("float->double is a promotion, not narrowing")
	}
}

func TestComputeNonConstReferenceRejectsConstSource(t *testing.T) {
	table := symbols.NewTable()
	r := Compute(table, symbols.Int.WithConst(), symbols.Int.Ref())
	if r.Convertible() {
		t.Error("binding a const int to a non-const int& should not convert")
	}
}

func TestComputeDerivedToBaseReference(t *testing.T) {
	table := symbols.NewTable()
	base := symbols.NewClass(token.Pos{}, "Base")
	table.RegisterClass(base)
	derived := symbols.NewClass(token.Pos{}, "Derived")
	derived.Base = base
	table.RegisterClass(derived)

	r := Compute(table, derived.Type(), base.Type().Ref())
	if !r.Convertible() {
		t.Fatal("expected derived -> base& to convert")
	}
	if r.Standard.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", r.Standard.Depth())
	}
}

func TestComputeUnrelatedClassesNotConvertible(t *testing.T) {
	table := symbols.NewTable()
	a := symbols.NewClass(token.Pos{}, "A")
	table.RegisterClass(a)
	b := symbols.NewClass(token.Pos{}, "B")
	table.RegisterClass(b)

	r := Compute(table, a.Type(), b.Type())
	if r.Convertible() {
		t.Error("unrelated classes should not convert")
	}
}

func TestComputeEnumToInt(t *testing.T) {
	table := symbols.NewTable()
	e := symbols.NewEnum(token.Pos{}, "Color", false)
	table.RegisterEnum(e)

	r := Compute(table, e.Type(), symbols.Int)
	if r.Rank() != Conversion {
		t.Errorf("enum->int Rank() = %v, want Conversion", r.Rank())
	}
}

func TestIsFundamental(t *testing.T) {
	if !IsFundamental(symbols.Int) {
		t.Error("Int should be fundamental")
	}
	if !IsFundamental(symbols.Boolean) {
		t.Error("Boolean should be fundamental")
	}
	table := symbols.NewTable()
	c := symbols.NewClass(token.Pos{}, "X")
	table.RegisterClass(c)
	if IsFundamental(c.Type()) {
		t.Error("a class type should not be fundamental")
	}
}

func TestCommonArithmeticType(t *testing.T) {
	got, ok := CommonArithmeticType(symbols.Int, symbols.Double)
	if !ok {
		t.Fatal("expected a common arithmetic type for int/double")
	}
	if got.BaseType() != symbols.Double {
		t.Errorf("CommonArithmeticType(int, double) = %v, want double", got)
	}
}
