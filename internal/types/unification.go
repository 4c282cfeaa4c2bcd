package types

import "fmt"

// UnifyError is returned by Unify when two types cannot be made equal.
// The checker turns this into a diag.Diagnostic at the call site,
// where it has the expression's location.
type UnifyError struct {
	Kind     string // "mismatch", "occurs", "arity", "field_missing", "field_extra"
	Expected Type
	Actual   Type
	Detail   string
}

func (e *UnifyError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Kind, e.Expected, e.Actual)
}

// Unify makes a and b equal by destructively binding unbound
// variables, following §4.3.1's six-case procedure. It never
// allocates fresh variables; callers that need a guaranteed-bound
// result must do so before calling Unify.
func Unify(a, b Type) error {
	a, b = Prune(a), Prune(b)

	av, aIsVar := a.(*Var)
	bv, bIsVar := b.(*Var)

	// Case 1: same variable cell.
	if aIsVar && bIsVar && av == bv {
		return nil
	}

	// Case 2: one side is an unbound variable.
	if aIsVar && !av.Bound {
		return bindVar(av, b)
	}
	if bIsVar && !bv.Bound {
		return bindVar(bv, a)
	}

	switch at := a.(type) {
	case *Const:
		bt, ok := b.(*Const)
		if !ok || at.Name != bt.Name {
			return &UnifyError{Kind: "mismatch", Expected: a, Actual: b}
		}
		return nil

	case *Func:
		bt, ok := b.(*Func)
		if !ok {
			return &UnifyError{Kind: "mismatch", Expected: a, Actual: b}
		}
		if err := Unify(at.Param, bt.Param); err != nil {
			return err
		}
		return Unify(at.Return, bt.Return)

	case *Named:
		bt, ok := b.(*Named)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			return &UnifyError{Kind: "mismatch", Expected: a, Actual: b}
		}
		for i := range at.Args {
			if err := Unify(at.Args[i], bt.Args[i]); err != nil {
				return err
			}
		}
		return nil

	case *Record:
		bt, ok := b.(*Record)
		if !ok {
			return &UnifyError{Kind: "mismatch", Expected: a, Actual: b}
		}
		return unifyRecords(at, bt)

	case *Tuple:
		bt, ok := b.(*Tuple)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return &UnifyError{Kind: "arity", Expected: a, Actual: b}
		}
		for i := range at.Elems {
			if err := Unify(at.Elems[i], bt.Elems[i]); err != nil {
				return err
			}
		}
		return nil

	case *Ref:
		bt, ok := b.(*Ref)
		if !ok {
			return &UnifyError{Kind: "mismatch", Expected: a, Actual: b}
		}
		return Unify(at.Elem, bt.Elem)

	default:
		return &UnifyError{Kind: "mismatch", Expected: a, Actual: b}
	}
}

// bindVar binds an unbound variable to a concrete type after an
// occurs check, lowering the level of every unbound variable the
// bound type transitively reaches to min(v.Level, that variable's
// level) -- the step that keeps generalization sound across nested
// lets (§4.3.1 step 2).
func bindVar(v *Var, t Type) error {
	if v.errVar {
		return nil
	}
	pruned := Prune(t)
	if pv, ok := pruned.(*Var); ok && pv == v {
		return nil
	}
	if occursIn(v, pruned) {
		return &UnifyError{Kind: "occurs", Expected: v, Actual: pruned}
	}
	lowerLevels(v.Level, pruned)
	v.Bound = true
	v.Link = pruned
	return nil
}

func occursIn(v *Var, t Type) bool {
	switch tt := Prune(t).(type) {
	case *Var:
		return tt == v
	case *Func:
		return occursIn(v, tt.Param) || occursIn(v, tt.Return)
	case *Tuple:
		for _, e := range tt.Elems {
			if occursIn(v, e) {
				return true
			}
		}
		return false
	case *Record:
		for _, f := range tt.Fields {
			if occursIn(v, f) {
				return true
			}
		}
		if tt.Row != nil {
			return occursIn(v, tt.Row)
		}
		return false
	case *Named:
		for _, a := range tt.Args {
			if occursIn(v, a) {
				return true
			}
		}
		return false
	case *Ref:
		return occursIn(v, tt.Elem)
	default:
		return false
	}
}

func lowerLevels(ceiling Level, t Type) {
	switch tt := Prune(t).(type) {
	case *Var:
		if !tt.Bound && tt.Level > ceiling {
			tt.Level = ceiling
		}
	case *Func:
		lowerLevels(ceiling, tt.Param)
		lowerLevels(ceiling, tt.Return)
	case *Tuple:
		for _, e := range tt.Elems {
			lowerLevels(ceiling, e)
		}
	case *Record:
		for _, f := range tt.Fields {
			lowerLevels(ceiling, f)
		}
		if tt.Row != nil {
			lowerLevels(ceiling, tt.Row)
		}
	case *Named:
		for _, a := range tt.Args {
			lowerLevels(ceiling, a)
		}
	case *Ref:
		lowerLevels(ceiling, tt.Elem)
	}
}

// unifyRecords implements §4.3.3: two closed records must have
// exactly the same field set and matching field types; a closed
// record unifies with an open one when the closed side has at least
// the required fields, binding the open side's row variable to the
// remainder.
func unifyRecords(a, b *Record) error {
	switch {
	case a.IsClosed() && b.IsClosed():
		if len(a.Fields) != len(b.Fields) {
			return missingOrExtra(a, b)
		}
		for name, at := range a.Fields {
			bt, ok := b.Fields[name]
			if !ok {
				return &UnifyError{Kind: "field_extra", Expected: b, Actual: a, Detail: name}
			}
			if err := Unify(at, bt); err != nil {
				return err
			}
		}
		return nil

	case a.IsClosed() && !b.IsClosed():
		return unifyOpenAgainstClosed(b, a)

	case !a.IsClosed() && b.IsClosed():
		return unifyOpenAgainstClosed(a, b)

	default: // both open: share fields unify, row absorbs the rest via a fresh record
		for name, at := range a.Fields {
			if bt, ok := b.Fields[name]; ok {
				if err := Unify(at, bt); err != nil {
					return err
				}
			}
		}
		merged := map[string]Type{}
		for n, t := range a.Fields {
			merged[n] = t
		}
		for n, t := range b.Fields {
			if _, ok := merged[n]; !ok {
				merged[n] = t
			}
		}
		rest := &Var{ID: freshRestID(), Level: minLevel(a.Row.Level, b.Row.Level)}
		if err := bindVar(a.Row, &Record{Fields: subtract(merged, a.Fields), Row: rest}); err != nil {
			return err
		}
		return bindVar(b.Row, &Record{Fields: subtract(merged, b.Fields), Row: rest})
	}
}

func unifyOpenAgainstClosed(open *Record, closed *Record) error {
	extra := map[string]Type{}
	for name, ct := range closed.Fields {
		ot, ok := open.Fields[name]
		if !ok {
			extra[name] = ct
			continue
		}
		if err := Unify(ot, ct); err != nil {
			return err
		}
	}
	for name := range open.Fields {
		if _, ok := closed.Fields[name]; !ok {
			return &UnifyError{Kind: "field_missing", Expected: open, Actual: closed, Detail: name}
		}
	}
	return bindVar(open.Row, &Record{Fields: extra, Row: nil})
}

func missingOrExtra(a, b *Record) error {
	for name := range a.Fields {
		if _, ok := b.Fields[name]; !ok {
			return &UnifyError{Kind: "field_extra", Expected: b, Actual: a, Detail: name}
		}
	}
	for name := range b.Fields {
		if _, ok := a.Fields[name]; !ok {
			return &UnifyError{Kind: "field_missing", Expected: a, Actual: b, Detail: name}
		}
	}
	return nil
}

func subtract(all, minus map[string]Type) map[string]Type {
	out := map[string]Type{}
	for n, t := range all {
		if _, ok := minus[n]; !ok {
			out[n] = t
		}
	}
	return out
}

func minLevel(a, b Level) Level {
	if a < b {
		return a
	}
	return b
}

var restIDCounter int

func freshRestID() int {
	restIDCounter++
	return restIDCounter
}
