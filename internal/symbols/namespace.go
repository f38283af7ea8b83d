package symbols

import "github.com/libscript-lang/libscript/internal/token"

// Namespace is a named grouping of declarations; the Table's root
// namespace (created via NewTable) has an empty name and no Parent.
type Namespace struct {
	name   string
	pos    token.Pos
	Parent *Namespace

	Namespaces []*Namespace
	Classes    []*Class
	Enums      []*Enum
	Functions  []*Function // includes OperatorFunction and LiteralOperator
	Typedefs   map[string]TypeID
	Templates  []*Template
	Variables  []*Var

	byName map[string][]Object
}

func NewNamespace(pos token.Pos, name string, parent *Namespace) *Namespace {
	return &Namespace{
		name: name, pos: pos, Parent: parent,
		Typedefs: make(map[string]TypeID),
		byName:   make(map[string][]Object),
	}
}

func (n *Namespace) Name() string   { return n.name }
func (n *Namespace) Pos() token.Pos { return n.pos }
func (n *Namespace) Type() TypeID   { return Void } // namespaces have no value type
func (*Namespace) aObject()         {}

// declare records obj under name for Lookup, without enforcing
// uniqueness — overloaded functions share a name and are disambiguated
// by the caller (C7).
func (n *Namespace) declare(name string, obj Object) {
	n.byName[name] = append(n.byName[name], obj)
}

// Lookup returns every declaration visible directly in n under name
// (not walking Parent — that is internal/scope's job).
func (n *Namespace) Lookup(name string) []Object { return n.byName[name] }

func (n *Namespace) AddNamespace(ns *Namespace) {
	n.Namespaces = append(n.Namespaces, ns)
	n.declare(ns.name, ns)
}

func (n *Namespace) AddClass(c *Class) {
	n.Classes = append(n.Classes, c)
	n.declare(c.name, c)
}

func (n *Namespace) AddEnum(e *Enum) {
	n.Enums = append(n.Enums, e)
	n.declare(e.name, e)
	for _, v := range e.Values {
		if !e.IsClass {
			n.declare(v.Name(), v)
		}
	}
}

func (n *Namespace) AddFunction(f *Function) {
	n.Functions = append(n.Functions, f)
	n.declare(f.Name(), f)
}

func (n *Namespace) AddTemplate(t *Template) {
	n.Templates = append(n.Templates, t)
	n.declare(t.Name(), t)
}

func (n *Namespace) AddVariable(v *Var) {
	n.Variables = append(n.Variables, v)
	n.declare(v.Name(), v)
}

// Root walks up Parent links to find the outermost namespace.
func (n *Namespace) Root() *Namespace {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
