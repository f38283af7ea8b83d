package ast

import (
	"bytes"
	"strings"
	"testing"
)

func TestFprintName(t *testing.T) {
	n := &Name{Value: "x"}
	var buf bytes.Buffer
	Fprint(&buf, n)
	if !strings.Contains(buf.String(), `Name`) || !strings.Contains(buf.String(), `"x"`) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestFprintNestedIndent(t *testing.T) {
	ret := &ReturnStmt{Value: &BasicLit{Kind: IntLit, Value: "2"}}
	blk := &BlockStmt{Stmts: []Stmt{ret}}
	var buf bytes.Buffer
	Fprint(&buf, blk)
	out := buf.String()
	if !strings.Contains(out, "BlockStmt") {
		t.Errorf("expected BlockStmt header, got %q", out)
	}
	if !strings.Contains(out, "ReturnStmt") {
		t.Errorf("expected nested ReturnStmt, got %q", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("expected child line to be indented, got %q", lines[1])
	}
}

func TestFprintFuncDecl(t *testing.T) {
	fd := &FuncDecl{
		Name: &Name{Value: "f"},
		Body: &BlockStmt{},
	}
	var buf bytes.Buffer
	Fprint(&buf, fd)
	out := buf.String()
	if !strings.Contains(out, "FuncDecl") || !strings.Contains(out, "f") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "Body:") {
		t.Errorf("expected Body field, got %q", out)
	}
}

func TestFprintClassDecl(t *testing.T) {
	cd := &ClassDecl{
		Name: &Name{Value: "A"},
		Base: &Name{Value: "Base"},
	}
	var buf bytes.Buffer
	Fprint(&buf, cd)
	out := buf.String()
	if !strings.Contains(out, "class A : Base") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestFprintOperatorName(t *testing.T) {
	on := &OperatorName{IsIndex: true}
	if got := identString(on); got != "operator[]" {
		t.Errorf("identString(IsIndex) = %q, want %q", got, "operator[]")
	}
	on2 := &OperatorName{IsCall: true}
	if got := identString(on2); got != "operator()" {
		t.Errorf("identString(IsCall) = %q, want %q", got, "operator()")
	}
}

func TestFprintNilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output for nil node, got %q", buf.String())
	}
}
