// Package scope implements the scope stack and name lookup (spec.md
// C5): a parent-pointer tree of lexical scopes, qualified lookup,
// member lookup through class hierarchies, and operator lookup.
package scope

import "github.com/libscript-lang/libscript/internal/symbols"

// Kind tags which NameLookupResult variant is populated. Only one
// field group on a Result is meaningful for a given Kind — this
// mirrors the tagged-variant style internal/program uses instead of
// a Go interface hierarchy, since callers mostly just need to branch
// on "what did this name turn out to be" rather than dispatch methods.
type Kind int

const (
	Unknown Kind = iota
	FoundFunctions
	FoundType
	FoundVariable
	FoundDataMember
	FoundStaticDataMember
	FoundGlobalVariable
	FoundLocalVariable
	FoundCapture
	FoundEnumerator
	FoundNamespace
	FoundTemplate
	FoundTemplateParameter
)

// Result is the outcome of a name lookup. Exactly the fields relevant
// to Kind are set; the rest are zero.
type Result struct {
	Kind Kind

	Functions []*symbols.Function // FoundFunctions

	Type symbols.TypeID // FoundType

	Variable *symbols.Var // FoundVariable (a plain value, no storage class known yet)

	DataMemberIndex int // FoundDataMember
	StaticVar       *symbols.Var // FoundStaticDataMember
	GlobalIndex     int          // FoundGlobalVariable
	LocalIndex      int          // FoundLocalVariable
	CaptureIndex    int          // FoundCapture

	Enumerator *symbols.Enumerator // FoundEnumerator

	Namespace *symbols.Namespace // FoundNamespace
	Template  *symbols.Template  // FoundTemplate

	TemplateParamIndex int // FoundTemplateParameter
}

func (r Result) Found() bool { return r.Kind != Unknown }

var builtinTypes = map[string]symbols.TypeID{
	"void":   symbols.Void,
	"bool":   symbols.Boolean,
	"char":   symbols.Char,
	"int":    symbols.Int,
	"float":  symbols.Float,
	"double": symbols.Double,
	"auto":   symbols.Auto,
}

// lookupBuiltin short-circuits built-in type names before any scope is
// consulted, per spec.md §4.5.
func lookupBuiltin(name string) (Result, bool) {
	if id, ok := builtinTypes[name]; ok {
		return Result{Kind: FoundType, Type: id}, true
	}
	return Result{}, false
}
