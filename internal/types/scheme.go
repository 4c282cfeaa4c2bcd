package types

// varIDs is a process-wide counter for fresh type variable identities.
// It is the only package-level mutable state in this package, exists
// purely so printed variable names stay distinct within a run, and is
// never read for anything semantic (levels and Bound/Link are what
// the unifier actually reasons about).
var varIDs int

func nextVarID() int {
	varIDs++
	return varIDs
}

// NewVar returns a fresh unbound type variable at the given level.
func NewVar(level Level) *Var {
	return &Var{ID: nextVarID(), Level: level}
}

// NewErrorVar returns a fresh variable marked so the unifier treats it
// as compatible with anything. The checker substitutes one of these
// at every local failure so inference can continue and report
// multiple independent diagnostics per compile (§4.3.8).
func NewErrorVar(level Level) *Var {
	return &Var{ID: nextVarID(), Level: level, errVar: true}
}

// Instantiate replaces a scheme's quantified variables with fresh
// variables at the given level, producing a monomorphic use of a
// polymorphic binding.
func Instantiate(s *Scheme, level Level) Type {
	if len(s.Vars) == 0 {
		return s.Type
	}
	sub := make(map[*Var]*Var, len(s.Vars))
	for _, v := range s.Vars {
		sub[v] = NewVar(level)
	}
	return substituteVars(s.Type, sub)
}

func substituteVars(t Type, sub map[*Var]*Var) Type {
	switch tt := Prune(t).(type) {
	case *Var:
		if fresh, ok := sub[tt]; ok {
			return fresh
		}
		return tt
	case *Const:
		return tt
	case *Func:
		return &Func{Param: substituteVars(tt.Param, sub), Return: substituteVars(tt.Return, sub)}
	case *Tuple:
		elems := make([]Type, len(tt.Elems))
		for i, e := range tt.Elems {
			elems[i] = substituteVars(e, sub)
		}
		return &Tuple{Elems: elems}
	case *Record:
		fields := make(map[string]Type, len(tt.Fields))
		for n, f := range tt.Fields {
			fields[n] = substituteVars(f, sub)
		}
		var row *Var
		if tt.Row != nil {
			if fresh, ok := sub[tt.Row]; ok {
				row = fresh
			} else {
				row = tt.Row
			}
		}
		return &Record{Fields: fields, Row: row}
	case *Named:
		args := make([]Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = substituteVars(a, sub)
		}
		return &Named{Name: tt.Name, Args: args}
	case *Ref:
		return &Ref{Elem: substituteVars(tt.Elem, sub)}
	default:
		return t
	}
}

// Generalize collects every unbound variable in t with level strictly
// greater than ceiling and turns them into the quantified parameters
// of a scheme (§4.3.2). Variables bound in an outer scope (level <=
// ceiling) are left free so they can never be generalized locally.
func Generalize(ceiling Level, t Type) *Scheme {
	seen := map[*Var]bool{}
	var vars []*Var
	var walk func(Type)
	walk = func(ty Type) {
		switch tt := Prune(ty).(type) {
		case *Var:
			if !tt.Bound && tt.Level > ceiling && !seen[tt] {
				seen[tt] = true
				vars = append(vars, tt)
			}
		case *Func:
			walk(tt.Param)
			walk(tt.Return)
		case *Tuple:
			for _, e := range tt.Elems {
				walk(e)
			}
		case *Record:
			for _, f := range tt.Fields {
				walk(f)
			}
			if tt.Row != nil {
				walk(tt.Row)
			}
		case *Named:
			for _, a := range tt.Args {
				walk(a)
			}
		case *Ref:
			walk(tt.Elem)
		}
	}
	walk(t)
	return &Scheme{Vars: vars, Type: t}
}

// MonoScheme wraps a type with no quantified variables, for bindings
// that the value restriction denies generalization to.
func MonoScheme(t Type) *Scheme {
	return &Scheme{Type: t}
}
