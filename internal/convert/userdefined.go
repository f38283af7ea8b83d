package convert

import "github.com/libscript-lang/libscript/internal/symbols"

// computeUserDefined implements spec.md §4.6 rule 6: a converting
// constructor on dest, or a conversion operator on src, chosen as the
// one whose own standard conversion is best. Two incomparable
// candidates make the conversion ambiguous (reported as not
// convertible — the caller, C8, raises the diagnostic with the
// candidate list when it needs one).
func computeUserDefined(table *symbols.Table, src, dest symbols.TypeID) (UserDefined, bool) {
	if destClass := table.ClassOf(dest); destClass != nil {
		return bestConvertingConstructor(table, destClass, src)
	}
	if srcClass := table.ClassOf(src); srcClass != nil {
		return bestConversionOperator(table, srcClass, dest)
	}
	return UserDefined{}, false
}

func bestConvertingConstructor(table *symbols.Table, destClass *symbols.Class, src symbols.TypeID) (UserDefined, bool) {
	var best UserDefined
	var bestSC StandardConversion
	ambiguous := false

	for _, ctor := range destClass.Ctors {
		if ctor.Flags.Deleted || ctor.Flags.Explicit {
			continue
		}
		if ctor.Proto.Arity() != 1 {
			continue
		}
		var param symbols.TypeID
		if ctor.Proto.HasThis() {
			param = ctor.Proto.Params[1]
		} else {
			param = ctor.Proto.Params[0]
		}
		sc := computeStandard(table, src, param)
		if !sc.Convertible() {
			continue
		}
		switch compareRank(sc, bestSC) {
		case 1:
			best = UserDefined{First: sc, Function: ctor, Second: identityOrRefBind(destClass.Type(), destClass.Type())}
			bestSC = sc
			ambiguous = false
		case 0:
			if bestSC.rank != NotConvertible {
				ambiguous = true
			} else {
				best = UserDefined{First: sc, Function: ctor, Second: identityOrRefBind(destClass.Type(), destClass.Type())}
				bestSC = sc
			}
		}
	}
	if ambiguous || bestSC.rank == NotConvertible {
		return UserDefined{}, false
	}
	return best, true
}

func bestConversionOperator(table *symbols.Table, srcClass *symbols.Class, dest symbols.TypeID) (UserDefined, bool) {
	var best UserDefined
	var bestSC StandardConversion
	ambiguous := false

	for _, cast := range srcClass.Casts {
		if cast.Flags.Deleted {
			continue
		}
		target := cast.Proto.Return
		sc := computeStandard(table, target, dest)
		if !sc.Convertible() {
			continue
		}
		switch compareRank(sc, bestSC) {
		case 1:
			best = UserDefined{First: identityOrRefBind(srcClass.Type(), srcClass.Type()), Function: cast, Second: sc}
			bestSC = sc
			ambiguous = false
		case 0:
			if bestSC.rank != NotConvertible {
				ambiguous = true
			} else {
				best = UserDefined{First: identityOrRefBind(srcClass.Type(), srcClass.Type()), Function: cast, Second: sc}
				bestSC = sc
			}
		}
	}
	if ambiguous || bestSC.rank == NotConvertible {
		return UserDefined{}, false
	}
	return best, true
}

// compareRank reports 1 if a is strictly better than b, -1 if b is
// strictly better, 0 if neither dominates (equal or incomparable).
func compareRank(a, b StandardConversion) int {
	if a.rank != b.rank {
		if a.rank > b.rank {
			return 1
		}
		return -1
	}
	if a.kind == kindDerivedToBase && b.kind == kindDerivedToBase && a.depth != b.depth {
		if a.depth < b.depth {
			return 1
		}
		return -1
	}
	return 0
}
