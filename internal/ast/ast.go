// Package ast defines the immutable syntax tree produced by
// internal/parser (spec.md C3, §3 "AST node").
package ast

import "github.com/libscript-lang/libscript/internal/token"

// Node is the interface implemented by every AST node.
type Node interface {
	Pos() token.Pos
	End() token.Pos
	aNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is implemented by declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// Ident is implemented by the four identifier variants spec.md §3
// names: simple name, operator name, template-id, scoped-id.
type Ident interface {
	Expr
	aIdent()
}

// ----------------------------------------------------------------------
// base embeds, following the teacher's interface + embedded marker idiom

type node struct {
	pos token.Pos
	end token.Pos
}

func (n *node) Pos() token.Pos { return n.pos }
func (n *node) End() token.Pos {
	if n.end.IsValid() {
		return n.end
	}
	return n.pos
}
func (n *node) aNode() {}

// SetPos records the node's start and end positions. Every constructor
// in internal/parser calls this immediately after building a node,
// since the embedded node/expr/stmt/decl/ident structs are unexported
// and cannot be set via a struct literal from outside this package.
func (n *node) SetPos(start, end token.Pos) {
	n.pos = start
	n.end = end
}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

type decl struct{ node }

func (*decl) aDecl() {}

type ident struct{ expr }

func (*ident) aIdent() {}

// ----------------------------------------------------------------------
// Identifiers (spec.md §3)

// Name is a simple identifier: x, foo, Array.
type Name struct {
	ident
	Value string
}

// OperatorName is `operator+`, `operator()`, `operator[]`, or
// `operator"" suffix` for a literal operator.
type OperatorName struct {
	ident
	Op           token.Kind // 0 for call/index/literal forms
	IsCall       bool       // operator()
	IsIndex      bool       // operator[]
	LiteralSuffx string     // non-empty for operator"" suffix
}

// TemplateID is `name<args...>`.
type TemplateID struct {
	ident
	Base Ident
	Args []Expr // type-expressions or constant-expressions
}

// ScopedID is `left::right`.
type ScopedID struct {
	ident
	Left  Ident
	Right Ident
}

// ----------------------------------------------------------------------
// Type expressions

// QualifiedType decorates a base type expression with reference/const
// qualifiers (spec.md §3 Type model: `const T&` etc.).
type QualifiedType struct {
	expr
	Base      Expr
	Const     bool
	Ref       bool
	RvalueRef bool
}

// ----------------------------------------------------------------------
// Expressions

type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	BoolLit
	NullLit
	UserLit
)

// BasicLit is a literal value.
type BasicLit struct {
	expr
	Value  string
	Kind   LitKind
	Suffix string // user-defined-literal operator suffix, if Kind == UserLit
}

// UnaryExpr is a prefix or postfix unary operation: -x, !x, x++, x--.
type UnaryExpr struct {
	expr
	Op      token.Kind
	X       Expr
	Postfix bool
}

// BinaryExpr is an infix binary operation, including assignment forms.
type BinaryExpr struct {
	expr
	Op   token.Kind
	X, Y Expr
}

// ConditionalExpr is the ternary `a ? b : c`, rebuilt during reduction
// of the two infix `?`/`:` tokens (spec.md §4.3).
type ConditionalExpr struct {
	expr
	Cond, Then, Else Expr
}

// CallExpr is `Fun(Args...)`.
type CallExpr struct {
	expr
	Fun  Expr
	Args []Expr
}

// IndexExpr is `X[Index]`.
type IndexExpr struct {
	expr
	X     Expr
	Index Expr
}

// MemberExpr is `X.Sel`.
type MemberExpr struct {
	expr
	X   Expr
	Sel Ident
}

// BraceConstructExpr is `T{args...}`, also the narrowing-checked
// brace-initializer form used in variable declarations.
type BraceConstructExpr struct {
	expr
	Type Expr
	Args []Expr
}

// ArrayLitExpr is `[a, b, c]`.
type ArrayLitExpr struct {
	expr
	Elems []Expr
}

// LambdaExpr is `[captures](params) -> ret { body }`.
type LambdaExpr struct {
	expr
	Captures []*Field
	Params   []*Field
	Result   Expr // nil if not specified (deduced)
	Body     *BlockStmt
}

// ThisExpr is the bare `this` keyword.
type ThisExpr struct{ expr }

// ----------------------------------------------------------------------
// Statements

// BlockStmt is `{ Stmts... }`.
type BlockStmt struct {
	stmt
	Stmts []Stmt
}

// ExprStmt wraps a bare expression statement.
type ExprStmt struct {
	stmt
	X Expr
}

// IfStmt is `if (Cond) Then else Else`.
type IfStmt struct {
	stmt
	Cond       Expr
	Then, Else Stmt // Else is nil if absent
}

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
}

// ForStmt is `for (Init; Cond; Post) Body`.
type ForStmt struct {
	stmt
	Init       Stmt // may be nil or a VarDecl/ExprStmt
	Cond, Post Expr // either may be nil
	Body       Stmt
}

// ReturnStmt is `return Value;` or bare `return;`.
type ReturnStmt struct {
	stmt
	Value Expr // nil for a value-less return
}

// BreakStmt is `break;`.
type BreakStmt struct{ stmt }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ stmt }

// VarDeclStmt is a local variable declaration, parens/paren-less, or
// brace-init form (the narrowing check in spec.md §4.6/§8 scenario 5
// applies only when Braced is true).
type VarDeclStmt struct {
	stmt
	Type   Expr
	Name   *Name
	Init   Expr // may be nil
	Args   []Expr
	Braced bool
}

// DeclStmt wraps a function-local class/enum/typedef/template
// declaration so it can appear in a BlockStmt's statement list.
type DeclStmt struct {
	stmt
	D Decl
}

// UsingStmt is `using Name = Type;` or `using Namespace;`.
type UsingStmt struct {
	stmt
	Name  *Name // nil for a using-namespace directive
	Alias Expr  // nil for a using-namespace directive
}

// ----------------------------------------------------------------------
// Declarations

// Field is a named, typed slot: parameter, data member, capture, or
// receiver — mirroring the teacher's single reusable Field shape.
type Field struct {
	node
	Name    *Name
	Type    Expr // nil for a by-value/by-reference capture with no type
	Default Expr // default argument expression, nil if none
}

// File is a complete translation unit.
type File struct {
	node
	Imports []*ImportDecl
	Decls   []Decl
}

// ImportDecl is `import Name;` or `export import Name;` (spec.md's
// supplemented namespace-alias feature: parsed only; the checker binds
// no symbol for it, and resolution across translation units stays out
// of scope).
type ImportDecl struct {
	decl
	Export bool
	Name   *Name
}

// NamespaceDecl is `namespace Name { Decls... }`.
type NamespaceDecl struct {
	decl
	Name  *Name
	Decls []Decl
}

// ClassDecl is `class Name : Base { Members... }`.
type ClassDecl struct {
	decl
	Name    *Name
	Base    *Name // nil if none
	Members []Decl
	IsStruct bool // struct vs class keyword (members default to public in both)
}

// AccessLabel is `public:`/`private:`/`protected:` inside a ClassDecl's
// member list.
type AccessLabel struct {
	decl
	Access Access
}

type Access int

const (
	AccessDefault Access = iota
	AccessPublic
	AccessPrivate
	AccessProtected
)

// FriendDecl is `friend class Name;` (spec.md's supplemented feature;
// parsed only, the checker records nothing for it and access control
// does not consult it).
type FriendDecl struct {
	decl
	Name *Name
}

// EnumDecl is `enum Name { A, B = 2, C };` or `enum class Name {...}`.
type EnumDecl struct {
	decl
	Name       *Name
	IsEnumClass bool
	Values     []*EnumValue
}

// EnumValue is one `name` or `name = expr` entry.
type EnumValue struct {
	node
	Name  *Name
	Value Expr // nil if implicit (previous + 1)
}

// TypedefDecl is `typedef Type Name;`.
type TypedefDecl struct {
	decl
	Name *Name
	Type Expr
}

// FuncDecl covers every function variant spec.md §3 names (regular
// function, constructor, destructor, operator function, cast, literal
// operator); which variant is distinguished by Name's concrete Ident
// type plus the Specifiers flags, not by a separate Go type.
type FuncDecl struct {
	decl
	Name         Ident // *Name, *OperatorName, or a *Name matching the class (constructor)
	Params       []*Field
	Result       Expr // nil for constructors/destructors; explicit cast target for CastFunction
	Body         *BlockStmt // nil for a declaration-only prototype
	Specifiers   FuncSpecifiers
	IsDestructor bool
	Inits        []*MemberInit // constructor member-initializer list, including delegating `T(...)`
}

// MemberInit is one entry of a constructor's member-initializer list:
// `m(e)` or `m{e}`, or a delegating-constructor call naming the class.
type MemberInit struct {
	node
	Name   *Name
	Args   []Expr
	Braced bool
}

// FuncSpecifiers are the function-level flags spec.md's Function model
// requires: {virtual, pure, deleted, defaulted, explicit, constexpr,
// const, static, access-level}.
type FuncSpecifiers struct {
	Virtual    bool
	Pure       bool
	Deleted    bool
	Defaulted  bool
	Explicit   bool
	Constexpr  bool
	Const      bool // trailing `const` on a member function: a const-qualified `this`
	Static     bool
	Access     Access
}

// TemplateParam is one entry in a template parameter list: {TypeParam |
// IntParam | BoolParam}, each optionally with a default.
type TemplateParamKind int

const (
	TypeParam TemplateParamKind = iota
	IntParam
	BoolParam
)

type TemplateParam struct {
	node
	Kind    TemplateParamKind
	Name    *Name
	Default Expr // nil if none
}

// TemplateDecl is `template<Params...> Decl` wrapping a ClassDecl or a
// FuncDecl (spec.md's Template variant {ClassTemplate, FunctionTemplate}).
type TemplateDecl struct {
	decl
	Params []*TemplateParam
	Body   Decl // *ClassDecl or *FuncDecl
}

// VarDecl is a namespace- or class-scope variable/static-data-member
// declaration (local variables use VarDeclStmt instead).
type VarDecl struct {
	decl
	Type   Expr
	Name   *Name
	Init   Expr
	Args   []Expr // direct- or brace-initialization argument list
	Braced bool
	Static bool
	Access Access
}
