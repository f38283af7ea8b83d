package scope

import (
	"github.com/libscript-lang/libscript/internal/symbols"
	"github.com/libscript-lang/libscript/internal/token"
)

// ScopeKind tags what a Scope node represents, per spec.md §4.5's
// "polymorphic stack node; variants: namespace, class, enum,
// template-parameters, template-arguments, function-arguments,
// function-body, lexical-block, lambda".
type ScopeKind int

const (
	NamespaceScope ScopeKind = iota
	ClassScope
	EnumScope
	TemplateParamsScope
	TemplateArgsScope
	FuncArgsScope
	FuncBodyScope
	BlockScope
	LambdaScope
)

// Scope is a lexical scope node with a parent pointer, grounded on
// the teacher's types.Scope (parent/children tree, name→Object map,
// Insert/Lookup/LookupParent). Unlike the teacher, a Scope here may
// also delegate to a backing symbol-table object (a *symbols.Namespace
// or *symbols.Class) for declarations that already live there, rather
// than duplicating them into elems.
type Scope struct {
	kind     ScopeKind
	parent   *Scope
	children []*Scope
	elems    map[string]Result
	pos, end token.Pos
	comment  string

	ns    *symbols.Namespace // backing object for NamespaceScope
	class *symbols.Class      // backing object for ClassScope
	enum  *symbols.Enum       // backing object for EnumScope
}

// New creates a scope with the given parent and no backing object
// (template-param/arg, function-arg/body, block, and lambda scopes).
func New(parent *Scope, kind ScopeKind, pos, end token.Pos, comment string) *Scope {
	s := &Scope{kind: kind, parent: parent, elems: make(map[string]Result), pos: pos, end: end, comment: comment}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

func NewNamespaceScope(parent *Scope, ns *symbols.Namespace) *Scope {
	s := New(parent, NamespaceScope, ns.Pos(), ns.Pos(), "namespace "+ns.Name())
	s.ns = ns
	return s
}

func NewClassScope(parent *Scope, c *symbols.Class) *Scope {
	s := New(parent, ClassScope, c.Pos(), c.Pos(), "class "+c.Name())
	s.class = c
	return s
}

func NewEnumScope(parent *Scope, e *symbols.Enum) *Scope {
	s := New(parent, EnumScope, e.Pos(), e.Pos(), "enum "+e.Name())
	s.enum = e
	return s
}

func (s *Scope) Parent() *Scope    { return s.parent }
func (s *Scope) Children() []*Scope { return s.children }
func (s *Scope) Kind() ScopeKind   { return s.kind }
func (s *Scope) Comment() string   { return s.comment }

// Namespace returns s's backing namespace, or nil if s is not a
// NamespaceScope.
func (s *Scope) Namespace() *symbols.Namespace { return s.ns }

// Class returns s's backing class, or nil if s is not a ClassScope.
func (s *Scope) Class() *symbols.Class { return s.class }

// Enum returns s's backing enum, or nil if s is not an EnumScope.
func (s *Scope) Enum() *symbols.Enum { return s.enum }

// Declare binds name to r directly in this scope's local table. Used
// for locals, captures, template parameters, and function parameters
// — anything that doesn't already live in a symbols.Namespace/Class.
func (s *Scope) Declare(name string, r Result) {
	s.elems[name] = r
}

// Lookup searches only this scope (no parent traversal), checking
// local bindings first and then the backing namespace/class/enum, if
// any. Built-in type names are NOT checked here; callers that want
// the full rule go through LookupChain.
func (s *Scope) Lookup(name string) Result {
	if r, ok := s.elems[name]; ok {
		return r
	}
	switch {
	case s.ns != nil:
		return resultFromObjects(s.ns.Lookup(name))
	case s.class != nil:
		return MemberLookup(s.class, name)
	case s.enum != nil:
		if ev := s.enum.Lookup(name); ev != nil {
			return Result{Kind: FoundEnumerator, Enumerator: ev}
		}
	}
	return Result{}
}

// LookupChain walks from s up through Parent links, applying the
// built-in-type short-circuit first, per spec.md §4.5.
func LookupChain(s *Scope, name string) Result {
	if r, ok := lookupBuiltin(name); ok {
		return r
	}
	for cur := s; cur != nil; cur = cur.parent {
		if r := cur.Lookup(name); r.Found() {
			return r
		}
	}
	return Result{}
}

// resultFromObjects classifies a namespace-level lookup's matches into
// the appropriate NameLookupResult variant. Multiple matches are only
// ever functions (overload sets); anything else is declared once.
func resultFromObjects(objs []symbols.Object) Result {
	if len(objs) == 0 {
		return Result{}
	}
	if fns := asFunctions(objs); fns != nil {
		return Result{Kind: FoundFunctions, Functions: fns}
	}
	switch o := objs[0].(type) {
	case *symbols.Class:
		return Result{Kind: FoundType, Type: o.Type()}
	case *symbols.Enum:
		return Result{Kind: FoundType, Type: o.Type()}
	case *symbols.Namespace:
		return Result{Kind: FoundNamespace, Namespace: o}
	case *symbols.Template:
		return Result{Kind: FoundTemplate, Template: o}
	case *symbols.Var:
		if o.IsStatic {
			return Result{Kind: FoundStaticDataMember, StaticVar: o}
		}
		return Result{Kind: FoundGlobalVariable, Variable: o}
	case *symbols.Enumerator:
		return Result{Kind: FoundEnumerator, Enumerator: o}
	}
	return Result{}
}

func asFunctions(objs []symbols.Object) []*symbols.Function {
	fns := make([]*symbols.Function, 0, len(objs))
	for _, o := range objs {
		f, ok := o.(*symbols.Function)
		if !ok {
			return nil
		}
		fns = append(fns, f)
	}
	if len(fns) == 0 {
		return nil
	}
	return fns
}

// classOwnLookup checks only c's own (non-inherited) members; member
// lookup through the base chain is MemberLookup below. Methods are
// matched against c.Methods directly rather than c.FindMethod, which
// already walks the base chain itself and would defeat the "own
// members only" contract this function exists to provide.
func classOwnLookup(c *symbols.Class, name string) Result {
	var fns []*symbols.Function
	for _, m := range c.Methods {
		if m.Name() == name {
			fns = append(fns, m)
		}
	}
	if len(fns) > 0 {
		return Result{Kind: FoundFunctions, Functions: fns}
	}
	for _, f := range c.Fields {
		if f.Name() == name {
			return Result{Kind: FoundDataMember, DataMemberIndex: f.Index}
		}
	}
	for _, f := range c.StaticFields {
		if f.Name() == name {
			return Result{Kind: FoundStaticDataMember, StaticVar: f}
		}
	}
	for _, t := range c.Templates {
		if t.Name() == name {
			return Result{Kind: FoundTemplate, Template: t}
		}
	}
	return Result{}
}

// MemberLookup implements spec.md §4.5's member-lookup rule: walk c,
// then each base in order, collecting member functions/templates
// until a non-function member (a data member) is found, at which
// point the search stops at that depth (C++'s name-hiding rule).
func MemberLookup(c *symbols.Class, name string) Result {
	for cur := c; cur != nil; cur = cur.Base {
		if r := classOwnLookup(cur, name); r.Found() {
			return r
		}
	}
	return Result{}
}
