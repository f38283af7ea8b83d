package check

import (
	"strings"
	"testing"

	"github.com/libscript-lang/libscript/internal/parser"
	"github.com/libscript-lang/libscript/internal/symbols"
	"github.com/libscript-lang/libscript/internal/token"
)

// checkSource parses and type-checks src, returning every reported
// diagnostic message as "pos: code: msg".
func checkSource(src string) []string {
	r := strings.NewReader(src)
	var errs []string
	parseErrh := func(pos token.Pos, msg string) {
		errs = append(errs, pos.String()+": syntax: "+msg)
	}
	p := parser.New("test.lsc", r, parseErrh)
	file := p.Parse()
	if len(errs) > 0 {
		return errs
	}

	errh := func(e *TypeError) {
		errs = append(errs, e.Pos.String()+": "+e.Code+": "+e.Msg)
	}
	c := New(symbols.NewTable(), errh)
	c.CheckFile(file)
	return errs
}

func expectNoErrors(t *testing.T, src string) {
	t.Helper()
	errs := checkSource(src)
	if len(errs) > 0 {
		t.Errorf("unexpected errors:\n%s", strings.Join(errs, "\n"))
	}
}

func expectError(t *testing.T, src string, code string) {
	t.Helper()
	errs := checkSource(src)
	for _, e := range errs {
		if strings.Contains(e, code) {
			return
		}
	}
	t.Errorf("expected an error containing %q, got:\n%s", code, strings.Join(errs, "\n"))
}

func TestIntegerArithmetic(t *testing.T) {
	expectNoErrors(t, `int a = 1 + 2 * 3;`)
}

func TestArrayTemplateTerminator(t *testing.T) {
	expectNoErrors(t, `
Array<Array<int>> aa;
int n = aa.size();
`)
}

func TestVirtualDispatch(t *testing.T) {
	src := `
class A { virtual int f() { return 1; } };
class B : A { int f() { return 2; } };
int g(A & a) { return a.f(); }
`
	r := strings.NewReader(src)
	var errs []string
	p := parser.New("test.lsc", r, func(pos token.Pos, msg string) {
		errs = append(errs, pos.String()+": syntax: "+msg)
	})
	file := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("unexpected syntax errors:\n%s", strings.Join(errs, "\n"))
	}

	table := symbols.NewTable()
	c := New(table, func(e *TypeError) {
		errs = append(errs, e.Pos.String()+": "+e.Code+": "+e.Msg)
	})
	c.CheckFile(file)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", strings.Join(errs, "\n"))
	}

	objs := table.Root.Lookup("B")
	if len(objs) != 1 {
		t.Fatalf("Lookup(%q) = %d objects, want 1", "B", len(objs))
	}
	b, ok := objs[0].(*symbols.Class)
	if !ok {
		t.Fatalf("Lookup(%q) = %T, want *symbols.Class", "B", objs[0])
	}

	if len(b.VTable) != 1 {
		t.Fatalf("len(B.VTable) = %d, want 1 (B::f must replace A::f's slot, not append)", len(b.VTable))
	}
	bf := b.VTable[0]
	if bf.Enclosing != b {
		t.Errorf("B.VTable[0] belongs to %v, want B::f itself: B::f must override A::f even without repeating `virtual`", bf.Enclosing)
	}
	if !bf.Flags.Virtual {
		t.Error("B::f.Flags.Virtual = false, want true: an implicit override is still virtual")
	}
	if bf.VTableIndex != 0 {
		t.Errorf("B::f.VTableIndex = %d, want 0", bf.VTableIndex)
	}
}

func TestConversionConstructorAmbiguity(t *testing.T) {
	expectNoErrors(t, `
class A { A(int); A(bool); };
A a = true;
A b = 1;
`)
}

func TestNarrowingRejectedInBraceInit(t *testing.T) {
	expectError(t, `int a{3.14};`, NarrowingConversionInBraceInitialization)
}

func TestNarrowingAllowedWithParensOrAssign(t *testing.T) {
	expectNoErrors(t, `int a(3.14);`)
	expectNoErrors(t, `int a = 3.14;`)
}

func TestReturnStatementWithoutValue(t *testing.T) {
	expectError(t, `int foo() { return; }`, ReturnStatementWithoutValue)
}

func TestReturnStatementWithValue(t *testing.T) {
	expectError(t, `void foo() { return 2; }`, ReturnStatementWithValue)
}

func TestBasicVarDecl(t *testing.T) {
	expectNoErrors(t, `
int x;
int y = 10;
bool z = true;
`)
}

func TestIfWhileFor(t *testing.T) {
	expectNoErrors(t, `
int f() {
	int i = 0;
	if (i < 10) {
		while (i < 5) {
			i = i + 1;
		}
		for (int j = 0; j < 3; j = j + 1) {
			i = i + j;
		}
	}
	return i;
}
`)
}

func TestAutoReturnDeduction(t *testing.T) {
	expectNoErrors(t, `
auto pick(bool b) {
	if (b) {
		return 1;
	}
	return 2;
}
`)
}

func TestInconsistentAutoReturn(t *testing.T) {
	expectError(t, `
auto pick(bool b) {
	if (b) {
		return 1;
	}
	return true;
}
`, InconsistentAutoReturnType)
}

func TestConstructorMemberInit(t *testing.T) {
	expectNoErrors(t, `
class Point {
	Point(int x, int y) : x(x), y(y) {}
	int x;
	int y;
};
`)
}

func TestBreakContinueOutsideLoop(t *testing.T) {
	expectError(t, `void f() { break; }`, InvalidAST)
	expectError(t, `void f() { continue; }`, InvalidAST)
}
