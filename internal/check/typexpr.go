package check

import (
	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/scope"
	"github.com/libscript-lang/libscript/internal/symbols"
)

// resolveType converts a type-expression node into a TypeID, grounded
// on the teacher's types2/typexpr.go: a type expression is just an
// expression that is expected to name a type, so this walks the same
// node shapes the expression checker does, but only the ones that can
// denote a type (spec.md §3's type model).
func (c *Checker) resolveType(e ast.Expr) symbols.TypeID {
	switch e := e.(type) {
	case nil:
		return symbols.Void
	case *ast.QualifiedType:
		base := c.resolveType(e.Base)
		if e.RvalueRef {
			base = base.RRef()
		} else if e.Ref {
			base = base.Ref()
		}
		if e.Const {
			base = base.WithConst()
		}
		return base
	case *ast.Name:
		if t, ok := c.typeSubst[e.Value]; ok {
			return t
		}
		r := c.lookup(e.Value)
		if r.Kind == scope.FoundType {
			return r.Type
		}
		c.report(e.Pos(), TypeNameInExpression, "undeclared type %q", e.Value)
		return symbols.Void
	case *ast.TemplateID:
		return c.resolveTemplateID(e)
	case *ast.ScopedID:
		return c.resolveScopedType(e)
	default:
		c.invalidAST(e.Pos(), "unexpected type expression %T", e)
		return symbols.Void
	}
}

func (c *Checker) resolveTemplateID(e *ast.TemplateID) symbols.TypeID {
	name, ok := e.Base.(*ast.Name)
	if !ok {
		c.invalidAST(e.Pos(), "unexpected template name %T", e.Base)
		return symbols.Void
	}
	r := c.lookup(name.Value)
	if r.Kind != scope.FoundTemplate {
		c.report(e.Pos(), TypeNameInExpression, "%q is not a template", name.Value)
		return symbols.Void
	}
	args := make([]symbols.TemplateArg, len(e.Args))
	for i, a := range e.Args {
		args[i] = c.resolveTemplateArg(a)
	}
	cls := r.Template.InstantiateClass(c.Table, args)
	return cls.Type()
}

// resolveTemplateArg binds one `<...>` argument: a literal int/bool
// constant, or a type-expression, matching the two TemplateArg kinds
// spec.md §4.4 allows (non-type template parameters and type
// parameters).
func (c *Checker) resolveTemplateArg(e ast.Expr) symbols.TemplateArg {
	if lit, ok := e.(*ast.BasicLit); ok {
		switch lit.Kind {
		case ast.IntLit:
			return symbols.TemplateArg{Kind: symbols.IntParam, IntVal: constIntOf(lit)}
		case ast.BoolLit:
			return symbols.TemplateArg{Kind: symbols.BoolParam, BoolVal: lit.Value == "true"}
		}
	}
	return symbols.TemplateArg{Kind: symbols.TypeParam, Type: c.resolveType(e)}
}

// resolveScopedType resolves a `A::B` type name by walking each `::`
// segment with scope.ResolveQualifier, then resolving the final
// segment in the resulting scope without ascending.
func (c *Checker) resolveScopedType(e *ast.ScopedID) symbols.TypeID {
	segs := flattenScoped(e)
	cur := c.scope
	for i, seg := range segs {
		if i == len(segs)-1 {
			view := scope.NewQualifiedView(cur)
			switch n := seg.(type) {
			case *ast.Name:
				r := view.Lookup(n.Value)
				if r.Kind == scope.FoundType {
					return r.Type
				}
				c.report(seg.Pos(), TypeNameInExpression, "undeclared type %q", n.Value)
				return symbols.Void
			case *ast.TemplateID:
				return c.resolveTemplateID(n)
			default:
				c.invalidAST(seg.Pos(), "unexpected qualified type segment %T", seg)
				return symbols.Void
			}
		}
		name, ok := seg.(*ast.Name)
		if !ok {
			c.invalidAST(seg.Pos(), "unexpected qualifier segment %T", seg)
			return symbols.Void
		}
		next, ok := scope.ResolveQualifier(cur, name.Value, c.Table)
		if !ok {
			c.report(seg.Pos(), TypeNameInExpression, "undeclared namespace or class %q", name.Value)
			return symbols.Void
		}
		cur = next
	}
	return symbols.Void
}

// flattenScoped unrolls a left-nested ScopedID chain into an ordered
// slice of segments (A::B::C becomes [A, B, C]).
func flattenScoped(e *ast.ScopedID) []ast.Ident {
	var segs []ast.Ident
	var left ast.Ident = e
	var tail []ast.Ident
	for {
		s, ok := left.(*ast.ScopedID)
		if !ok {
			segs = append(segs, left)
			break
		}
		tail = append(tail, s.Right)
		left = s.Left
	}
	for i := len(tail) - 1; i >= 0; i-- {
		segs = append(segs, tail[i])
	}
	return segs
}
