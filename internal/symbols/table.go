package symbols

import "github.com/libscript-lang/libscript/internal/token"

// typeEntry backs one user-defined TypeID.Index() slot: exactly one of
// the three fields is non-nil.
type typeEntry struct {
	class *Class
	enum  *Enum
	proto *Prototype
}

// Table is the per-compilation type and symbol registry: it assigns
// TypeIDs lazily as classes, enums, and function signatures are
// declared, interns identical prototypes into a single signature
// TypeID, and owns the root namespace. Grounded on the teacher's
// Universe (types/universe.go): a single long-lived table that
// built-ins and every later declaration register into.
type Table struct {
	entries []typeEntry // indexed by TypeID.Index() - firstUserIndex
	protoKeys map[string]TypeID

	Root *Namespace
}

func NewTable() *Table {
	t := &Table{protoKeys: make(map[string]TypeID)}
	t.Root = NewNamespace(token.Pos{}, "", nil)
	InstallBuiltins(t)
	return t
}

func (t *Table) alloc() uint32 {
	idx := uint32(firstUserIndex) + uint32(len(t.entries))
	t.entries = append(t.entries, typeEntry{})
	return idx
}

// RegisterClass assigns c a fresh TypeID, for callers outside this
// package (internal/check's declaration-collection pass) that build a
// *Class directly rather than through a Template's Installer.
func (t *Table) RegisterClass(c *Class) { t.registerClassType(c) }

// RegisterEnum assigns e a fresh TypeID, the exported counterpart to
// RegisterClass for enum declarations.
func (t *Table) RegisterEnum(e *Enum) { t.registerEnumType(e) }

// registerClassType assigns c a fresh TypeID flagged FlagObject.
func (t *Table) registerClassType(c *Class) {
	idx := t.alloc()
	t.entries[idx-uint32(firstUserIndex)].class = c
	c.setSigType(newID(idx, FlagObject))
}

// registerEnumType assigns e a fresh TypeID flagged FlagEnum.
func (t *Table) registerEnumType(e *Enum) {
	idx := t.alloc()
	t.entries[idx-uint32(firstUserIndex)].enum = e
	e.setSigType(newID(idx, FlagEnum))
}

// FuncType interns proto, returning the same TypeID for structurally
// identical prototypes (spec.md §4.4: function types are interned).
func (t *Table) FuncType(proto *Prototype) TypeID {
	key := proto.key()
	if id, ok := t.protoKeys[key]; ok {
		return id
	}
	idx := t.alloc()
	t.entries[idx-uint32(firstUserIndex)].proto = proto
	id := newID(idx, FlagFuncSig)
	t.protoKeys[key] = id
	return id
}

// DeclareFunction interns f's prototype into a signature TypeID and
// records f under owner (a *Namespace or *Class's Methods/Ctors/etc is
// the caller's responsibility — DeclareFunction only assigns the type).
func (t *Table) DeclareFunction(f *Function) {
	f.setSigType(t.FuncType(f.Proto))
}

// ClassOf returns the Class backing id, or nil if id does not name a
// registered class type.
func (t *Table) ClassOf(id TypeID) *Class {
	i := id.Index()
	if i < uint32(firstUserIndex) || i-uint32(firstUserIndex) >= uint32(len(t.entries)) {
		return nil
	}
	return t.entries[i-uint32(firstUserIndex)].class
}

// EnumOf returns the Enum backing id, or nil if id does not name a
// registered enum type.
func (t *Table) EnumOf(id TypeID) *Enum {
	i := id.Index()
	if i < uint32(firstUserIndex) || i-uint32(firstUserIndex) >= uint32(len(t.entries)) {
		return nil
	}
	return t.entries[i-uint32(firstUserIndex)].enum
}

// PrototypeOf returns the Prototype backing a function-signature id.
func (t *Table) PrototypeOf(id TypeID) *Prototype {
	i := id.Index()
	if i < uint32(firstUserIndex) || i-uint32(firstUserIndex) >= uint32(len(t.entries)) {
		return nil
	}
	return t.entries[i-uint32(firstUserIndex)].proto
}

// InheritanceLevel returns the number of base-class steps from derived
// to base (0 if derived == base), or -1 if base is not an ancestor of
// derived. Used by overload resolution to rank derived-to-base
// reference bindings (spec.md §4.6).
func (t *Table) InheritanceLevel(derived, base *Class) int {
	return derived.InheritanceLevel(base)
}

// Name returns a human-readable name for id, consulting built-ins
// first, then the registered class/enum tables.
func (t *Table) Name(id TypeID) string {
	if name, ok := builtinNames[id.BaseType()]; ok {
		return name
	}
	if c := t.ClassOf(id); c != nil {
		return c.Name()
	}
	if e := t.EnumOf(id); e != nil {
		return e.Name()
	}
	return id.String()
}
