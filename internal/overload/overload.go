// Package overload implements overload resolution (spec.md C7):
// best-viable-function selection over a candidate set and an argument
// list, using internal/convert's per-argument conversion ranking.
package overload

import (
	"github.com/libscript-lang/libscript/internal/convert"
	"github.com/libscript-lang/libscript/internal/symbols"
)

// Viability is the per-candidate diagnostic status spec.md §4.7 names.
type Viability int

const (
	Viable Viability = iota
	IncorrectParameterCount
	CouldNotConvertArgument
)

// Entry pairs a candidate function with its resolution outcome.
type Entry struct {
	Function    *symbols.Function
	Viability   Viability
	Conversions []convert.Result // one per effective argument, in order
}

// Result is the outcome of resolving one call.
type Result struct {
	Best        *symbols.Function
	Conversions []convert.Result // per-argument conversions chosen for Best
	Ambiguous   bool
	Entries     []Entry // every candidate considered, for diagnostics
}

func (r Result) Found() bool { return r.Best != nil && !r.Ambiguous }

// Resolve selects the best viable function from candidates given
// argTypes (and, for member calls, hasImplicitObject/objectType),
// implementing spec.md §4.7's five-step algorithm.
func Resolve(table *symbols.Table, candidates []*symbols.Function, hasImplicitObject bool, objectType symbols.TypeID, argTypes []symbols.TypeID) Result {
	var entries []Entry
	var best *symbols.Function
	var bestConvs []convert.Result
	var ambiguousWith *symbols.Function

	for _, fn := range candidates {
		convs, viability := viabilityOf(table, fn, hasImplicitObject, objectType, argTypes)
		entries = append(entries, Entry{Function: fn, Viability: viability, Conversions: convs})
		if viability != Viable {
			continue
		}

		if best == nil {
			best = fn
			bestConvs = convs
			continue
		}

		switch dominance(convs, bestConvs) {
		case 1: // fn is strictly better than best
			best = fn
			bestConvs = convs
			ambiguousWith = nil
		case -1: // best remains strictly better
			// fn loses outright
		case 0: // equal quality: ambiguous, unless a later candidate dominates both
			ambiguousWith = fn
		}
	}

	if ambiguousWith != nil {
		return Result{Best: best, Conversions: bestConvs, Ambiguous: true, Entries: entries}
	}
	return Result{Best: best, Conversions: bestConvs, Entries: entries}
}

// viabilityOf runs steps 1-4 of spec.md §4.7 for one candidate.
func viabilityOf(table *symbols.Table, fn *symbols.Function, hasImplicitObject bool, objectType symbols.TypeID, argTypes []symbols.TypeID) ([]convert.Result, Viability) {
	params := fn.Proto.Params
	usesThis := fn.Proto.HasThis()

	effectiveParams := params
	if usesThis {
		effectiveParams = params[1:]
	}

	defaulted := 0
	for _, d := range fn.DefaultArgs {
		if d != nil {
			defaulted++
		}
	}

	nArgs := len(argTypes)
	nParams := len(effectiveParams)
	if nArgs < nParams-defaulted || nArgs > nParams {
		return nil, IncorrectParameterCount
	}

	var convs []convert.Result

	if usesThis && hasImplicitObject {
		thisParam := params[0]
		oc := convert.Compute(table, objectType, thisParam)
		if !oc.Convertible() || !oc.Standard.IsReferenceBind() {
			return nil, CouldNotConvertArgument
		}
		convs = append(convs, oc)
	}

	for i, at := range argTypes {
		pc := convert.Compute(table, at, effectiveParams[i])
		if !pc.Convertible() {
			return nil, CouldNotConvertArgument
		}
		convs = append(convs, pc)
	}

	return convs, Viable
}

// dominance implements step 5's comparison: 1 if a dominates b (all
// conversions at least as good, one strictly better), -1 if b
// dominates a, 0 if neither (ambiguous).
func dominance(a, b []convert.Result) int {
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	aBetter, bBetter := false, false
	for i := range a {
		switch compareConversion(a[i], b[i]) {
		case 1:
			aBetter = true
		case -1:
			bBetter = true
		}
	}
	switch {
	case aBetter && !bBetter:
		return 1
	case bBetter && !aBetter:
		return -1
	default:
		return 0
	}
}

// compareConversion ranks two conversions for the same argument slot:
// higher Rank wins; within derived-to-base, smaller depth wins;
// reference binding beats a copy; lacking a const adjustment beats
// having one — per spec.md §4.6's ranking tie-breaks.
func compareConversion(a, b convert.Result) int {
	if a.Rank() != b.Rank() {
		if a.Rank() > b.Rank() {
			return 1
		}
		return -1
	}
	as, bs := a.Standard, b.Standard
	if as.Depth() != bs.Depth() {
		if as.Depth() < bs.Depth() {
			return 1
		}
		return -1
	}
	if as.IsReferenceBind() != bs.IsReferenceBind() {
		if as.IsReferenceBind() {
			return 1
		}
		return -1
	}
	if as.ConstAdjusted() != bs.ConstAdjusted() {
		if !as.ConstAdjusted() {
			return 1
		}
		return -1
	}
	return 0
}

// AmbiguousFunctionName is an error value describing an Ambiguous
// Resolve result; kept here rather than in internal/check since the
// candidate list it names comes directly from a Result. internal/check
// reports ambiguity with its own AmbiguousFunctionName code and does
// not construct this type.
type AmbiguousFunctionName struct {
	Name      string
	Entries   []Entry
}

func (e *AmbiguousFunctionName) Error() string {
	return "ambiguous call to overloaded function " + e.Name
}
