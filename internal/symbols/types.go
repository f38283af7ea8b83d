// Package symbols implements the type system and symbol tables
// (spec.md C4): type identifiers, classes, enums, namespaces,
// templates, and prototypes, registered lazily in a per-compilation
// Table.
package symbols

import "fmt"

// TypeID is the 32-bit type handle spec.md §3 describes: the low 16
// bits index the type table, the upper bits are orthogonal flags. It
// is kept as the canonical representation — accessors are published,
// the bit layout is not, per Design Notes §9.
type TypeID uint32

const (
	indexBits = 16
	indexMask = (1 << indexBits) - 1
)

// Flag bits occupy the upper half of a TypeID.
type Flag uint32

const (
	FlagReference Flag = 1 << (indexBits + 0)
	FlagConst     Flag = 1 << (indexBits + 1)
	FlagRvalueRef Flag = 1 << (indexBits + 2)
	FlagEnum      Flag = 1 << (indexBits + 3)
	FlagObject    Flag = 1 << (indexBits + 4)
	FlagClosure   Flag = 1 << (indexBits + 5)
	FlagFuncSig   Flag = 1 << (indexBits + 6)
	FlagThisParam Flag = 1 << (indexBits + 7)
	FlagOptional  Flag = 1 << (indexBits + 8) // uninitialized/optional slot
	FlagProtected Flag = 1 << (indexBits + 9)
	FlagPrivate   Flag = 1 << (indexBits + 10)
	FlagManaged   Flag = 1 << (indexBits + 11)

	flagMask = ^TypeID(indexMask)
)

// Built-in types occupy fixed, stable indices.
const (
	Null TypeID = iota
	Void
	Boolean
	Char
	Int
	Float
	Double
	String
	InitializerList
	Auto

	firstUserIndex
)

func newID(index uint32, flags Flag) TypeID {
	return TypeID(index&indexMask) | TypeID(flags)
}

// Index returns the low-16-bit type-table index.
func (t TypeID) Index() uint32 { return uint32(t) & indexMask }

// Flags returns the upper-bit flag set.
func (t TypeID) Flags() Flag { return Flag(t) &^ Flag(indexMask) }

func (t TypeID) has(f Flag) bool { return Flag(t)&f != 0 }

// BaseType strips all flags, per spec.md §3's invariant.
func (t TypeID) BaseType() TypeID { return TypeID(t.Index()) }

func (t TypeID) IsReference() bool { return t.has(FlagReference) || t.has(FlagRvalueRef) }
func (t TypeID) IsRvalueRef() bool { return t.has(FlagRvalueRef) }
func (t TypeID) IsConst() bool     { return t.has(FlagConst) }

// Ref produces a `T&` handle from t without touching the type table.
func (t TypeID) Ref() TypeID {
	return TypeID(t.Index()) | TypeID(t.Flags()&^(FlagRvalueRef)) | TypeID(FlagReference)
}

// CRef produces a canonical `const T&` handle: reference flags are
// always paired with const, per spec.md §3's normalization invariant.
func (t TypeID) CRef() TypeID {
	return t.Ref() | TypeID(FlagConst)
}

// RRef produces a `T&&` handle.
func (t TypeID) RRef() TypeID {
	return TypeID(t.Index()) | TypeID(t.Flags()&^(FlagReference)) | TypeID(FlagRvalueRef)
}

// WithConst returns t with the const flag set.
func (t TypeID) WithConst() TypeID { return t | TypeID(FlagConst) }

// Decayed strips reference/const flags, leaving the value type.
func (t TypeID) Decayed() TypeID {
	return TypeID(t.Index()) | TypeID(t.Flags()&^(FlagReference|FlagRvalueRef|FlagConst))
}

func (t TypeID) String() string {
	return fmt.Sprintf("type#%d(flags=%#x)", t.Index(), uint32(t.Flags()))
}

// builtinNames gives Table.Name a readable default for built-ins before
// any user declarations are registered.
var builtinNames = map[TypeID]string{
	Null: "null", Void: "void", Boolean: "bool", Char: "char",
	Int: "int", Float: "float", Double: "double", String: "string",
	InitializerList: "initializer_list", Auto: "auto",
}
