package scope

import "github.com/libscript-lang/libscript/internal/symbols"

// QualifiedView wraps a *Scope so that Parent() reports nil, without
// mutating the wrapped Scope. Used for qualified lookup (`A::B::x`):
// resolve A, then B, to a scope; look up x only in that scope's own
// table, never ascending to an enclosing scope. This is the Open
// Question resolution for spec.md §4.5's "scoped-acquisition guard" —
// a wrapper value restored automatically by going out of scope,
// rather than the spec's literal mutate-then-restore of a shared
// parent pointer.
type QualifiedView struct {
	target *Scope
}

func NewQualifiedView(s *Scope) QualifiedView { return QualifiedView{target: s} }

// Lookup looks up name directly in the wrapped scope, never
// ascending — the qualified-lookup rule in full.
func (v QualifiedView) Lookup(name string) Result {
	if v.target == nil {
		return Result{}
	}
	return v.target.Lookup(name)
}

// ResolveQualifier resolves one `::`-separated path segment — a
// namespace or class name looked up in s's chain — to the Scope it
// names, for use as the next segment's (or the final name's) lookup
// target. table is consulted to turn a FoundType result naming a
// class back into its Class (scope.Result only carries the TypeID).
func ResolveQualifier(s *Scope, name string, table *symbols.Table) (*Scope, bool) {
	r := LookupChain(s, name)
	switch r.Kind {
	case FoundNamespace:
		return NewNamespaceScope(nil, r.Namespace), true
	case FoundType:
		if c := table.ClassOf(r.Type); c != nil {
			return NewClassScope(nil, c), true
		}
	}
	return nil, false
}
