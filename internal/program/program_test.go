package program

import (
	"testing"

	"github.com/libscript-lang/libscript/internal/symbols"
)

var nopos Pos

// makeAddExpr builds the program tree for `1 + 2 * 3`, the shape
// scenario 1's literal input expects: a `+` root whose right operand is
// a `*` call.
func makeAddExpr() *Value {
	one := NewValue(OpLiteral, symbols.Int, nopos)
	one.Aux = int64(1)
	two := NewValue(OpLiteral, symbols.Int, nopos)
	two.Aux = int64(2)
	three := NewValue(OpLiteral, symbols.Int, nopos)
	three.Aux = int64(3)

	mul := NewValue(OpBuiltinBinary, symbols.Int, nopos, two, three)
	mul.Aux = "*"

	add := NewValue(OpBuiltinBinary, symbols.Int, nopos, one, mul)
	add.Aux = "+"
	return add
}

func TestManualConstruct(t *testing.T) {
	add := makeAddExpr()

	if add.Op != OpBuiltinBinary {
		t.Errorf("Op = %v, want OpBuiltinBinary", add.Op)
	}
	if add.Aux != "+" {
		t.Errorf("Aux = %v, want \"+\"", add.Aux)
	}
	if len(add.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2", len(add.Args))
	}
	right := add.Args[1]
	if right.Op != OpBuiltinBinary || right.Aux != "*" {
		t.Errorf("right operand = %+v, want a '*' builtin binary", right)
	}
}

func TestIsStatement(t *testing.T) {
	stmts := []Op{OpBlock, OpExprStmt, OpIf, OpWhile, OpFor, OpReturn, OpBreak, OpContinue, OpVarDecl, OpDestroyLocals, OpMemberInit}
	for _, op := range stmts {
		v := &Value{Op: op}
		if !v.IsStatement() {
			t.Errorf("Op %v: IsStatement() = false, want true", op)
		}
	}

	exprs := []Op{OpLiteral, OpCall, OpVirtualCall, OpConstructorCall, OpConvert, OpThis, OpBuiltinUnary, OpBuiltinBinary}
	for _, op := range exprs {
		v := &Value{Op: op}
		if v.IsStatement() {
			t.Errorf("Op %v: IsStatement() = true, want false", op)
		}
	}
}

func TestMemberInitShape(t *testing.T) {
	this := NewValue(OpThis, symbols.Int, nopos)
	init := NewValue(OpLiteral, symbols.Int, nopos, this)
	init.Aux = int64(0)

	mi := NewValue(OpMemberInit, symbols.Void, nopos, this, init)
	mi.AuxInt = 1

	if !mi.IsStatement() {
		t.Errorf("OpMemberInit should be a statement")
	}
	if mi.AuxInt != 1 {
		t.Errorf("AuxInt = %d, want 1 (field index)", mi.AuxInt)
	}
	if len(mi.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2 (this, initializer)", len(mi.Args))
	}
	if mi.Args[0].Op != OpThis {
		t.Errorf("Args[0].Op = %v, want OpThis", mi.Args[0].Op)
	}
}

func TestFunctionLocalsLayout(t *testing.T) {
	fn := &Function{
		Locals: []LocalSlot{
			{Type: symbols.Int, Name: "i", Index: 0},
			{Type: symbols.Boolean, Name: "done", Index: 1},
		},
		Body: NewValue(OpBlock, symbols.Void, nopos),
	}
	if len(fn.Locals) != 2 {
		t.Fatalf("len(Locals) = %d, want 2", len(fn.Locals))
	}
	if fn.Locals[1].Name != "done" || fn.Locals[1].Index != 1 {
		t.Errorf("Locals[1] = %+v, want {done, 1}", fn.Locals[1])
	}
	if fn.Body.Op != OpBlock {
		t.Errorf("Body.Op = %v, want OpBlock", fn.Body.Op)
	}
}
