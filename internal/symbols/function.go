package symbols

import "github.com/libscript-lang/libscript/internal/token"

// FunctionKind distinguishes the eight callable variants spec.md §4.4
// enumerates. They share one representation rather than eight
// separate types because overload resolution (C7) treats them
// uniformly; only construction and lookup care which kind a Function is.
type FunctionKind int

const (
	RegularFunction FunctionKind = iota
	Constructor
	Destructor
	OperatorFunction
	CastFunction
	LiteralOperator
	ScriptFunction
	TemplateInstance
)

// FunctionFlags collects the boolean attributes a declaration may carry.
type FunctionFlags struct {
	Virtual   bool
	Pure      bool
	Deleted   bool
	Defaulted bool
	Explicit  bool
	Constexpr bool
	Static    bool
	Access    AccessLevel
}

// Function is a declared or instantiated callable: a free function, a
// member function, a constructor/destructor, an operator or cast
// function, a literal operator, a script-level function, or one
// concrete instantiation of a function template.
type Function struct {
	name      string
	pos       token.Pos
	Kind      FunctionKind
	Enclosing Object // weak: the class, namespace, or template this belongs to
	Flags     FunctionFlags
	Proto     *Prototype

	// DefaultArgs holds one opaque unchecked expression per trailing
	// parameter with a default; nil entries mean "no default". The
	// checker (C9) type-checks and caches them against the call site.
	DefaultArgs []interface{}

	// Body is nil until C9 compiles it into a typed program statement.
	Body interface{}

	// VTableIndex is the slot assigned when Flags.Virtual is set;
	// -1 otherwise.
	VTableIndex int

	// LiteralSuffix names the suffix recognized for LiteralOperator,
	// e.g. "_km" in `operator"" _km`.
	LiteralSuffix string

	// TemplateOf is non-nil for TemplateInstance functions: the
	// template this was instantiated from, and the argument vector used.
	TemplateOf   *Template
	TemplateArgs []TemplateArg

	// ReturnDeduced marks that Proto.Return started as auto and has
	// been pinned to the type of a first `return`; later returns are
	// checked for consistency against it instead of deducing again.
	ReturnDeduced bool

	sigType TypeID
}

func NewFunction(pos token.Pos, name string, kind FunctionKind, proto *Prototype) *Function {
	return &Function{name: name, pos: pos, Kind: kind, Proto: proto, VTableIndex: -1}
}

func (f *Function) Name() string   { return f.name }
func (f *Function) Pos() token.Pos { return f.pos }

// Type returns a function-signature TypeID tagged with FlagFuncSig;
// the type table interns the underlying Prototype (see Table.funcType).
func (f *Function) Type() TypeID { return f.sigType }

func (*Function) aObject() {}

// setSigType is called by Table.declareFunction at registration time.
func (f *Function) setSigType(id TypeID) { f.sigType = id }
