package types

// Unifier owns the bindings for every TypeVariable created during the
// checking of one function (or one compilation unit's globals): spec 5
// requires the type variable table to be "fully reset between functions or
// between separate compilation units to keep ids small", so Sema keeps one
// Unifier per Checker and calls Reset before each function body and each
// global initializer, mirroring the teacher's Solver.Solve() reset at the
// end of bootstrap/types/solver.go.
type Unifier struct {
	bindings []Type // bindings[id] is the substitution for Variable{ID: id}, or nil if unbound
}

// NewUnifier creates an empty Unifier.
func NewUnifier() *Unifier {
	return &Unifier{}
}

// NewVar creates a fresh, unbound type variable owned by u.
func (u *Unifier) NewVar() *Variable {
	id := len(u.bindings)
	u.bindings = append(u.bindings, nil)
	return &Variable{ID: id, home: u}
}

func (u *Unifier) binding(id int) (Type, bool) {
	t := u.bindings[id]
	return t, t != nil
}

func (u *Unifier) bind(id int, t Type) {
	u.bindings[id] = t
}

// Reset drops every binding, as if the Unifier were newly created. Sema
// calls this between functions and between the top-level pass over a
// unit's globals, per spec 5.
func (u *Unifier) Reset() {
	u.bindings = nil
}

// Comparator is an alternate equality relation Unify may consult instead of
// structural equality when neither side is a variable. Spec 4.4.2 uses
// exactly one: the cast-compatibility relation (see cast.go), which admits
// any two of Int|Double|Bool|Char as equal for the purpose of explicit
// casts. A nil Comparator means "structural equality only".
type Comparator func(a, b Type) bool

// Unify attempts to make a and b equal by substituting type variables,
// optionally widening the notion of equality for non-variable types via
// cmp (spec 4.4.2). It returns whether unification succeeded; on success
// any variable touched is bound for the remainder of the Unifier's
// lifetime (until Reset).
func (u *Unifier) Unify(a, b Type, cmp Comparator) bool {
	av, aIsVar := a.(*Variable)
	bv, bIsVar := b.(*Variable)

	switch {
	case aIsVar && !hasBinding(av):
		if bIsVar && av == bv {
			return true
		}
		u.bind(av.ID, b)
		return true
	case bIsVar && !hasBinding(bv):
		u.bind(bv.ID, a)
		return true
	case aIsVar:
		return u.Unify(mustResolve(av), b, cmp)
	case bIsVar:
		return u.Unify(a, mustResolve(bv), cmp)
	}

	switch av := a.(type) {
	case *Array:
		bv, ok := b.(*Array)
		return ok && u.Unify(av.Elem, bv.Elem, cmp)
	case *LValue:
		bv, ok := b.(*LValue)
		return ok && u.Unify(av.Inner, bv.Inner, cmp)
	case *Function:
		bv, ok := b.(*Function)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !u.Unify(av.Params[i], bv.Params[i], cmp) {
				return false
			}
		}
		return u.Unify(av.Ret, bv.Ret, cmp)
	case *errorType:
		// Error absorbs further errors silently (spec 3.3): unifying
		// with Error always succeeds and never creates more work.
		return true
	default:
		if _, ok := b.(*errorType); ok {
			return true
		}
		if cmp != nil && cmp(a, b) {
			return true
		}
		return Equal(a, b)
	}
}

func hasBinding(v *Variable) bool {
	_, ok := v.home.binding(v.ID)
	return ok
}

func mustResolve(v *Variable) Type {
	t, _ := v.home.binding(v.ID)
	return t
}

// Simplify recursively substitutes every bound variable reachable from t.
// It returns (simplified, true) if no unbound variable remains anywhere in
// t, or (nil, false) otherwise (spec 4.4.2: "returns a type with no
// TypeVariable on success, null if an unbound variable remains").
// Simplify is idempotent: Simplify(Simplify(t)) == Simplify(t) for every
// reachable type, since a simplified type by construction contains no
// more Variables to resolve.
func (u *Unifier) Simplify(t Type) (Type, bool) {
	switch v := t.(type) {
	case *Variable:
		bound, ok := u.binding(v.ID)
		if !ok {
			return nil, false
		}
		return u.Simplify(bound)
	case *Array:
		elem, ok := u.Simplify(v.Elem)
		if !ok {
			return nil, false
		}
		return &Array{Elem: elem}, true
	case *LValue:
		inner, ok := u.Simplify(v.Inner)
		if !ok {
			return nil, false
		}
		return &LValue{Inner: inner}, true
	case *Function:
		ret, ok := u.Simplify(v.Ret)
		if !ok {
			return nil, false
		}
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			sp, ok := u.Simplify(p)
			if !ok {
				return nil, false
			}
			params[i] = sp
		}
		return &Function{Params: params, Ret: ret}, true
	default:
		return t, true
	}
}
