package symbols

import "github.com/libscript-lang/libscript/internal/token"

// Object represents a declared entity, grounded on the teacher's
// Object/object split (types/object.go): a small interface plus an
// embeddable base struct carrying name/type/position.
type Object interface {
	Name() string
	Type() TypeID
	Pos() token.Pos
	aObject()
}

type object struct {
	name string
	typ  TypeID
	pos  token.Pos
}

func (o *object) Name() string  { return o.name }
func (o *object) Type() TypeID  { return o.typ }
func (o *object) Pos() token.Pos { return o.pos }
func (*object) aObject()        {}

// Var is a data member, static data member, local, or global variable.
type Var struct {
	object
	IsField  bool
	IsStatic bool
	Access   AccessLevel
	Index    int // data-member slot or local-stack slot, assigned by C9
}

func NewVar(pos token.Pos, name string, typ TypeID) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}}
}

// AccessLevel mirrors ast.Access without importing the ast package
// (symbols must not depend on the syntax tree).
type AccessLevel int

const (
	AccessPublic AccessLevel = iota
	AccessPrivate
	AccessProtected
)

// Enumerator is one entry of an Enum's insertion-ordered value map.
type Enumerator struct {
	object
	Value int64
}

func NewEnumerator(pos token.Pos, name string, enumType TypeID, value int64) *Enumerator {
	return &Enumerator{object: object{name: name, typ: enumType, pos: pos}, Value: value}
}

// TemplateParamKind mirrors ast.TemplateParamKind for the same reason.
type TemplateParamKind int

const (
	TypeParam TemplateParamKind = iota
	IntParam
	BoolParam
)

// TemplateParameter is a template type/int/bool parameter bound in a
// template's own scope.
type TemplateParameter struct {
	object
	Kind    TemplateParamKind
	Index   int
	Default Object // nil if none
}
