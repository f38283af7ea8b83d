package check

import (
	"strings"

	"github.com/libscript-lang/libscript/internal/convert"
	"github.com/libscript-lang/libscript/internal/program"
	"github.com/libscript-lang/libscript/internal/symbols"
	"github.com/libscript-lang/libscript/internal/token"
)

// comparisonOps and logicalOps always yield bool; everything else in
// builtinOperator is an arithmetic/bitwise op that yields the usual-
// arithmetic-conversion result of its operands.
var comparisonOps = map[string]bool{
	"operator==": true, "operator!=": true, "operator<": true,
	"operator>": true, "operator<=": true, "operator>=": true,
}

var logicalOps = map[string]bool{"operator&&": true, "operator||": true, "operator!": true}

// builtinOperator is the fallback for spec.md §4.8's Operator case
// when operator lookup finds no candidate: the usual C-style built-in
// arithmetic/comparison/logical operators over fundamental types, with
// no function symbol behind them (there is nothing to overload-resolve
// or call — the host evaluates OpBuiltinUnary/OpBuiltinBinary
// directly).
func (c *Checker) builtinOperator(pos token.Pos, name string, operands []*program.Value) (*program.Value, bool) {
	for _, o := range operands {
		if !convert.IsFundamental(o.Type.Decayed()) {
			return nil, false
		}
	}

	base := strings.TrimSuffix(name, "#post")

	if logicalOps[base] {
		for i, o := range operands {
			operands[i] = c.convertTo(o, symbols.Boolean, pos)
		}
		return builtinValue(program.OpBuiltinBinary, symbols.Boolean, name, operands, pos), true
	}

	if len(operands) == 1 {
		return builtinValue(program.OpBuiltinUnary, operands[0].Type.Decayed(), name, operands, pos), true
	}

	common, ok := convert.CommonArithmeticType(operands[0].Type, operands[1].Type)
	if !ok {
		return nil, false
	}
	if comparisonOps[base] {
		return builtinValue(program.OpBuiltinBinary, symbols.Boolean, name, operands, pos), true
	}
	for i, o := range operands {
		operands[i] = c.convertTo(o, common, pos)
	}
	return builtinValue(program.OpBuiltinBinary, common, name, operands, pos), true
}

func builtinValue(op program.Op, typ symbols.TypeID, name string, operands []*program.Value, pos token.Pos) *program.Value {
	return &program.Value{Op: op, Type: typ, Args: operands, Aux: name, Pos: progPos(pos)}
}
