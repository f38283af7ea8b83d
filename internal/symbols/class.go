package symbols

import "github.com/libscript-lang/libscript/internal/token"

// Class is a user-defined type: an ordered set of data members, a
// constructor set, at most one destructor, a method set (with virtual
// methods indexed into a vtable), operators, casts, and nested
// templates, grounded on spec.md §4.4's Class model.
type Class struct {
	name string
	pos  token.Pos

	Base *Class // single inheritance only; nil if none

	Fields       []*Var // ordered, non-static data members
	StaticFields []*Var

	Ctors []*Function
	Dtor  *Function // nil if implicit/absent

	Methods   []*Function // non-virtual and virtual member functions
	Operators []*Function
	Casts     []*Function

	Templates []*Template // nested class/function templates

	// VTable holds the virtual methods in slot order; a derived class's
	// VTable starts as a copy of its base's and overrides entries whose
	// Prototype matches.
	VTable []*Function

	sigType TypeID
}

func NewClass(pos token.Pos, name string) *Class {
	return &Class{name: name, pos: pos}
}

func (c *Class) Name() string   { return c.name }
func (c *Class) Pos() token.Pos { return c.pos }
func (c *Class) Type() TypeID   { return c.sigType }
func (*Class) aObject()         {}

func (c *Class) setSigType(id TypeID) { c.sigType = id }

// AddField appends a non-static data member and assigns its Index,
// offset past whatever fields c's base chain already contributes —
// Base must already be set by the time a class's first field is added.
func (c *Class) AddField(v *Var) {
	v.IsField = true
	offset := 0
	if c.Base != nil {
		offset = len(c.Base.AllFields())
	}
	v.Index = offset + len(c.Fields)
	c.Fields = append(c.Fields, v)
}

// AllFields returns base fields followed by this class's own, in
// declaration order — the layout the constructor/destructor walk and
// the checker's member-index computation rely on.
func (c *Class) AllFields() []*Var {
	if c.Base == nil {
		return c.Fields
	}
	return append(c.Base.AllFields(), c.Fields...)
}

// IsDerivedFrom reports whether base appears anywhere in c's ancestor
// chain, including c itself.
func (c *Class) IsDerivedFrom(base *Class) bool {
	for cur := c; cur != nil; cur = cur.Base {
		if cur == base {
			return true
		}
	}
	return false
}

// InheritanceLevel returns the number of Base steps from c to base, or
// -1 if base is not an ancestor. Used by overload resolution to rank
// derived-to-base conversions (spec.md §4.6).
func (c *Class) InheritanceLevel(base *Class) int {
	level := 0
	for cur := c; cur != nil; cur = cur.Base {
		if cur == base {
			return level
		}
		level++
	}
	return -1
}

// FindMethod looks up a method by name in c, then up the base chain,
// returning every overload found at the nearest declaring class (C++'s
// name-hiding rule: a derived class's own overload set hides, not
// merges with, the base's).
func (c *Class) FindMethod(name string) []*Function {
	for cur := c; cur != nil; cur = cur.Base {
		var found []*Function
		for _, m := range cur.Methods {
			if m.Name() == name {
				found = append(found, m)
			}
		}
		if len(found) > 0 {
			return found
		}
	}
	return nil
}

// AssignVTableSlots lays out c's vtable: inherited virtual methods keep
// their base slot, new virtuals append a slot. A method that matches an
// inherited virtual's name and signature (return type plus explicit
// parameters, ignoring the covariant `this`) overrides it and takes its
// slot even if the method itself never repeats the `virtual` keyword —
// C++ treats that match as an implicit override, not a new function.
func (c *Class) AssignVTableSlots() {
	if c.Base != nil {
		c.Base.AssignVTableSlots()
		c.VTable = append(c.VTable, c.Base.VTable...)
	}
	for _, m := range c.Methods {
		overridden := false
		for i, v := range c.VTable {
			if v.Name() == m.Name() && v.Proto.OverrideMatches(m.Proto) {
				c.VTable[i] = m
				m.VTableIndex = i
				m.Flags.Virtual = true
				overridden = true
				break
			}
		}
		if overridden {
			continue
		}
		if !m.Flags.Virtual {
			continue
		}
		m.VTableIndex = len(c.VTable)
		c.VTable = append(c.VTable, m)
	}
}
