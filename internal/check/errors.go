package check

import (
	"fmt"

	"github.com/libscript-lang/libscript/internal/token"
)

// TypeError is one diagnostic produced while checking. Code is one of
// the named diagnostic kinds spec.md §4.8 lists; Msg is a rendered,
// human-readable description.
type TypeError struct {
	Pos  token.Pos
	Code string
	Msg  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is called for every diagnostic as it's raised.
type ErrorHandler func(e *TypeError)

func (c *Checker) report(pos token.Pos, code, format string, args ...interface{}) {
	e := &TypeError{Pos: pos, Code: code, Msg: fmt.Sprintf(format, args...)}
	if c.errors == 0 {
		c.first = e
	}
	c.errors++
	if c.errh != nil {
		c.errh(e)
	}
}

// Errors returns the number of diagnostics raised so far.
func (c *Checker) Errors() int { return c.errors }

// FirstError returns the first diagnostic raised, or nil.
func (c *Checker) FirstError() *TypeError { return c.first }

// Named diagnostic kinds, spec.md §4.8 and §4.9's full list.
const (
	CouldNotConvert                         = "CouldNotConvert"
	CouldNotFindValidOverload                = "CouldNotFindValidOverload"
	CouldNotFindValidConstructor             = "CouldNotFindValidConstructor"
	CouldNotFindValidCallOperator            = "CouldNotFindValidCallOperator"
	InaccessibleMember                       = "InaccessibleMember"
	CallToDeletedFunction                    = "CallToDeletedFunction"
	AmbiguousFunctionName                    = "AmbiguousFunctionName"
	NoSuchMember                             = "NoSuchMember"
	NamespaceNameInExpression                = "NamespaceNameInExpression"
	TypeNameInExpression                     = "TypeNameInExpression"
	TemplateNamesAreNotExpressions           = "TemplateNamesAreNotExpressions"
	NarrowingConversionInBraceInitialization = "NarrowingConversionInBraceInitialization"
	InconsistentAutoReturnType               = "InconsistentAutoReturnType"
	ReturnStatementWithoutValue              = "ReturnStatementWithoutValue"
	ReturnStatementWithValue                 = "ReturnStatementWithValue"
	InvalidAST                               = "InvalidAST"
)

func (c *Checker) invalidAST(pos token.Pos, format string, args ...interface{}) {
	c.report(pos, InvalidAST, "invalid AST: "+format, args...)
}
