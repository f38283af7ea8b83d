package parser

import "github.com/libscript-lang/libscript/internal/token"

// Assoc is operator associativity.
type Assoc int

const (
	LeftAssoc Assoc = iota
	RightAssoc
)

// precedence and associativity are kept as pure functions driving a
// Pratt-style expression parser, per Design Notes §9 ("operator
// precedence via table lookup with side effects... retained as a pure
// function"). Binding power is 10 per group so a synthetic ?: /
// compound-assignment group (14) and comma (15) both have room below
// the lowest binary operator.
//
// Group numbers follow spec.md §6 exactly; group 1 (`::`) binds
// tightest, group 15 (`,`) loosest.
func bindingPower(k token.Kind) (bp int, assoc Assoc, ok bool) {
	group, assoc, ok := group(k)
	if !ok {
		return 0, LeftAssoc, false
	}
	return (16 - group) * 10, assoc, true
}

func group(k token.Kind) (int, Assoc, bool) {
	switch k {
	case token.ColonColon:
		return 1, LeftAssoc, true
	case token.Mul, token.Div, token.Rem:
		return 4, LeftAssoc, true
	case token.Add, token.Sub:
		return 5, LeftAssoc, true
	case token.Shl, token.Shr:
		return 6, LeftAssoc, true
	case token.Lss, token.Gtr, token.Leq, token.Geq:
		return 7, LeftAssoc, true
	case token.Eql, token.Neq:
		return 8, LeftAssoc, true
	case token.And:
		return 9, LeftAssoc, true
	case token.Xor:
		return 10, LeftAssoc, true
	case token.Or:
		return 11, LeftAssoc, true
	case token.AndAnd:
		return 12, LeftAssoc, true
	case token.OrOr:
		return 13, LeftAssoc, true
	case token.Question,
		token.Assign, token.AddAssign, token.SubAssign, token.MulAssign,
		token.DivAssign, token.RemAssign, token.AndAssign, token.OrAssign,
		token.XorAssign, token.ShlAssign, token.ShrAssign:
		return 14, RightAssoc, true
	case token.Comma:
		return 15, LeftAssoc, true
	}
	return 0, LeftAssoc, false
}

// isPrefixOp reports whether k can start a group-3 prefix operator.
func isPrefixOp(k token.Kind) bool {
	switch k {
	case token.Add, token.Sub, token.Not, token.Tilde, token.Inc, token.Dec:
		return true
	}
	return false
}

// isPostfixOp reports whether k continues an operand as a group-2
// postfix operator (++, --; call/index/member are structural, handled
// separately in parsePostfix).
func isPostfixOp(k token.Kind) bool {
	return k == token.Inc || k == token.Dec
}
