package types

// NumericCastComparator is the comparator passed to Unify when checking a
// CastExpr (spec 4.4.2): it treats any two of Int|Double|Bool|Char as
// mutually cast-compatible. This includes Bool<->numeric, which spec 9
// flags as an open question about the original's cast-compatibility code
// ("Some cast comparator code allows Bool <-> numeric unconditionally...
// keep it behind a named cast comparator and document"); DESIGN.md records
// the decision to preserve that behavior rather than narrow it, since
// narrowing it is a language-semantics change spec.md does not ask for.
func NumericCastComparator(a, b Type) bool {
	return isCastPrimitive(a) && isCastPrimitive(b)
}

func isCastPrimitive(t Type) bool {
	p, ok := Inner(t).(*Primitive)
	if !ok {
		return false
	}
	switch p.Kind {
	case KindInt, KindDouble, KindBool, KindChar:
		return true
	default:
		return false
	}
}
