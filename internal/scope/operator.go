package scope

import "github.com/libscript-lang/libscript/internal/symbols"

// LookupOperators implements spec.md §4.5's distinct operator-lookup
// rule: the current scope chain, plus the namespaces enclosing each
// operand type, plus each operand's class hierarchy (member operators
// declared on the class or inherited from a base).
func LookupOperators(current *Scope, table *symbols.Table, op string, operandTypes ...symbols.TypeID) []*symbols.Function {
	var found []*symbols.Function
	seen := make(map[*symbols.Function]bool)
	add := func(fns []*symbols.Function) {
		for _, f := range fns {
			if !seen[f] {
				seen[f] = true
				found = append(found, f)
			}
		}
	}

	for cur := current; cur != nil; cur = cur.parent {
		if r := cur.Lookup(op); r.Kind == FoundFunctions {
			add(onlyOperators(r.Functions))
		}
	}

	for _, t := range operandTypes {
		c := table.ClassOf(t)
		for anc := c; anc != nil; anc = anc.Base {
			add(matchingOperators(anc.Operators, op))
		}
	}

	return found
}

func onlyOperators(fns []*symbols.Function) []*symbols.Function {
	var out []*symbols.Function
	for _, f := range fns {
		if f.Kind == symbols.OperatorFunction {
			out = append(out, f)
		}
	}
	return out
}

func matchingOperators(ops []*symbols.Function, op string) []*symbols.Function {
	var out []*symbols.Function
	for _, f := range ops {
		if f.Name() == op {
			out = append(out, f)
		}
	}
	return out
}
