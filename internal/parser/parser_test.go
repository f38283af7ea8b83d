package parser

import (
	"strings"
	"testing"

	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/token"
)

func parse(t *testing.T, src string) (*ast.File, []string) {
	t.Helper()
	var errs []string
	errh := func(pos token.Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	}
	p := New("test.lsc", strings.NewReader(src), errh)
	file := p.Parse()
	return file, errs
}

func dump(file *ast.File) string {
	var b strings.Builder
	for _, d := range file.Decls {
		ast.Fprint(&b, d)
	}
	return b.String()
}

func TestParseVarDecl(t *testing.T) {
	file, errs := parse(t, "int a = 1 + 2 * 3;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(file.Decls) != 1 {
		t.Fatalf("len(Decls) = %d, want 1", len(file.Decls))
	}
	out := dump(file)
	if !strings.Contains(out, "VarDecl") {
		t.Errorf("expected VarDecl in dump, got %q", out)
	}
}

func TestParseClassWithCtorAndMemberInit(t *testing.T) {
	src := `
class Point {
	Point(int x, int y) : x(x), y(y) {}
	int x;
	int y;
};
`
	file, errs := parse(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(file.Decls) != 1 {
		t.Fatalf("len(Decls) = %d, want 1", len(file.Decls))
	}
	cd, ok := file.Decls[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("Decls[0] = %T, want *ast.ClassDecl", file.Decls[0])
	}
	if cd.Name.Value != "Point" {
		t.Errorf("class name = %q, want Point", cd.Name.Value)
	}
	if len(cd.Members) != 3 {
		t.Fatalf("len(Members) = %d, want 3 (ctor, x, y)", len(cd.Members))
	}
	ctor, ok := cd.Members[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("Members[0] = %T, want *ast.FuncDecl", cd.Members[0])
	}
	if len(ctor.Inits) != 2 {
		t.Fatalf("len(Inits) = %d, want 2", len(ctor.Inits))
	}
	if ctor.Inits[0].Name.Value != "x" || ctor.Inits[1].Name.Value != "y" {
		t.Errorf("Inits = %+v, want [x y]", ctor.Inits)
	}
}

func TestParseTemplateArrayType(t *testing.T) {
	file, errs := parse(t, "Array<Array<int>> aa;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(file.Decls) != 1 {
		t.Fatalf("len(Decls) = %d, want 1", len(file.Decls))
	}
	vd, ok := file.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("Decls[0] = %T, want *ast.VarDecl", file.Decls[0])
	}
	tid, ok := vd.Type.(*ast.TemplateID)
	if !ok {
		t.Fatalf("Type = %T, want *ast.TemplateID", vd.Type)
	}
	if len(tid.Args) != 1 {
		t.Fatalf("len(Args) = %d, want 1", len(tid.Args))
	}
	if _, ok := tid.Args[0].(*ast.TemplateID); !ok {
		t.Errorf("nested Array<int> arg = %T, want *ast.TemplateID (>> must split into two closing angle brackets)", tid.Args[0])
	}
}

func TestParseTemplateTwoArgsAfterComma(t *testing.T) {
	file, errs := parse(t, "Pair<int, bool> p;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	vd, ok := file.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("Decls[0] = %T, want *ast.VarDecl", file.Decls[0])
	}
	tid, ok := vd.Type.(*ast.TemplateID)
	if !ok {
		t.Fatalf("Type = %T, want *ast.TemplateID", vd.Type)
	}
	if len(tid.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2 (the comma must not leave the parser stuck on a stale token)", len(tid.Args))
	}
}

func TestParseReferenceToNestedTemplate(t *testing.T) {
	src := "void f(Array<Array<int>>& a) {}"
	file, errs := parse(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fd, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("Decls[0] = %T, want *ast.FuncDecl", file.Decls[0])
	}
	if len(fd.Params) != 1 {
		t.Fatalf("len(Params) = %d, want 1", len(fd.Params))
	}
	qt, ok := fd.Params[0].Type.(*ast.QualifiedType)
	if !ok {
		t.Fatalf("param type = %T, want *ast.QualifiedType (the '&' right after '>>' must not be missed)", fd.Params[0].Type)
	}
	if !qt.Ref {
		t.Error("expected Ref to be set on the nested-template parameter type")
	}
}

func TestParseIfWhileFor(t *testing.T) {
	src := `
void f() {
	if (1) {
		while (1) {
			for (int i = 0; i; i) {
				break;
			}
		}
	} else {
		return;
	}
}
`
	_, errs := parse(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestParseVirtualAndOperator(t *testing.T) {
	src := `
class A {
	virtual int f() { return 1; }
	A operator+(A other) { return this; }
};
`
	file, errs := parse(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	cd := file.Decls[0].(*ast.ClassDecl)
	fd, ok := cd.Members[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("Members[0] = %T, want *ast.FuncDecl", cd.Members[0])
	}
	if !fd.Specifiers.Virtual {
		t.Error("expected Virtual specifier on f()")
	}
	op, ok := cd.Members[1].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("Members[1] = %T, want *ast.FuncDecl", cd.Members[1])
	}
	if _, ok := op.Name.(*ast.OperatorName); !ok {
		t.Errorf("Name = %T, want *ast.OperatorName", op.Name)
	}
}

func TestSyntaxErrorRecoversAndReports(t *testing.T) {
	_, errs := parse(t, "int a = ;")
	if len(errs) == 0 {
		t.Error("expected at least one syntax error")
	}
}

func TestParseLambda(t *testing.T) {
	_, errs := parse(t, "auto f = [](int x) { return x; };")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
