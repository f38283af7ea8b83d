package symbols

import "github.com/libscript-lang/libscript/internal/token"

// TemplateVariant distinguishes a class template (`class Array<T>`)
// from a function template.
type TemplateVariant int

const (
	ClassTemplate TemplateVariant = iota
	FunctionTemplate
)

// TemplateArg is one bound template argument: a type for a TypeParam,
// or a constant int/bool value for an IntParam/BoolParam.
type TemplateArg struct {
	Kind    TemplateParamKind
	Type    TypeID // valid when Kind == TypeParam
	IntVal  int64  // valid when Kind == IntParam
	BoolVal bool   // valid when Kind == BoolParam
}

func (a TemplateArg) key() byte {
	switch a.Kind {
	case TypeParam:
		return byte(a.Type) ^ byte(a.Type>>8) ^ byte(a.Type>>16) ^ byte(a.Type>>24)
	case IntParam:
		return byte(a.IntVal)
	default:
		if a.BoolVal {
			return 1
		}
		return 0
	}
}

func argsKey(args []TemplateArg) string {
	b := make([]byte, len(args))
	for i, a := range args {
		b[i] = a.key()
	}
	return string(b)
}

// Installer builds the members of a class-template instantiation
// (default/copy constructor, destructor, and any synthesized methods)
// once, the first time a given argument vector is requested. Grounded
// on spec.md §4.4's description of `Array<T>` synthesizing its
// constructors, destructor, `size`, `resize`, assignment, and both
// subscript overloads on first instantiation.
type Installer func(table *Table, inst *Class, args []TemplateArg)

// Template is a class or function template: an ordered parameter list
// plus a cache of instantiations keyed by argument vector.
type Template struct {
	name    string
	pos     token.Pos
	Variant TemplateVariant
	Params  []*TemplateParameter

	// FuncBody is the uninstantiated function-template pattern, used only
	// when Variant == FunctionTemplate; the checker does not set it.
	FuncBody interface{}

	install Installer
	classes map[string]*Class
	funcs   map[string]*Function
}

func NewTemplate(pos token.Pos, name string, variant TemplateVariant, install Installer) *Template {
	return &Template{
		name: name, pos: pos, Variant: variant, install: install,
		classes: make(map[string]*Class),
		funcs:   make(map[string]*Function),
	}
}

func (t *Template) Name() string   { return t.name }
func (t *Template) Pos() token.Pos { return t.pos }
func (t *Template) Type() TypeID   { return Void }
func (*Template) aObject()         {}

// InstantiateClass returns the Class for args, building and caching it
// via Installer on first use.
func (t *Template) InstantiateClass(table *Table, args []TemplateArg) *Class {
	key := argsKey(args)
	if c, ok := t.classes[key]; ok {
		return c
	}
	c := NewClass(t.pos, templateInstanceName(t.name, args))
	table.registerClassType(c)
	t.classes[key] = c
	if t.install != nil {
		t.install(table, c, args)
	}
	return c
}

func templateInstanceName(name string, args []TemplateArg) string {
	s := name + "<"
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		switch a.Kind {
		case TypeParam:
			s += a.Type.String()
		case IntParam:
			s += "int"
		default:
			s += "bool"
		}
	}
	return s + ">"
}
