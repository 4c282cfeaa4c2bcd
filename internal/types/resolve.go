package types

import (
	"fmt"

	"github.com/vibefun/vibefun/internal/ast"
)

// ResolveTypeExpr converts a surface type expression into an internal
// Type. varScope maps lowercase type-variable names already seen
// within the same annotation (or the same type declaration) to the
// Var they resolve to, so `a -> a` shares one variable and not two;
// callers resolving a single standalone annotation should pass a
// fresh empty map, and callers resolving every field of one type
// declaration should share one map across all of them so the
// declaration's parameters line up.
//
// openRecords governs whether a `{ field: T, ... }` written in the
// surface syntax resolves to an open record (a fresh row variable,
// width-subtyping per §4.3.3) or a closed one (an exact shape).
// Function parameter annotations resolve open so a caller can pass a
// record with extra fields; a named record type declaration resolves
// closed, since `type Point = { x: Int, y: Int }` defines an exact
// shape, not a lower bound on one.
func ResolveTypeExpr(reg *Registry, varScope map[string]*Var, level Level, te ast.TypeExpr, openRecords bool) (Type, error) {
	switch t := te.(type) {
	case *ast.TypeConst:
		switch t.Name {
		case "Int":
			return Int, nil
		case "Float":
			return Float, nil
		case "String":
			return String, nil
		case "Bool":
			return Bool, nil
		case "Unit":
			return Unit, nil
		}
		if b, ok := reg.Lookup(t.Name); ok {
			if len(b.Params) != 0 {
				return nil, fmt.Errorf("type %s expects %d argument(s)", t.Name, len(b.Params))
			}
			if b.IsVariant {
				return &Named{Name: t.Name}, nil
			}
			return instantiateAlias(b, nil, level), nil
		}
		return nil, fmt.Errorf("unbound type %s", t.Name)

	case *ast.TypeVarExpr:
		if v, ok := varScope[t.Name]; ok {
			return v, nil
		}
		v := NewVar(level)
		varScope[t.Name] = v
		return v, nil

	case *ast.TypeApp:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			rt, err := ResolveTypeExpr(reg, varScope, level, a, openRecords)
			if err != nil {
				return nil, err
			}
			args[i] = rt
		}
		b, ok := reg.Lookup(t.Name)
		if !ok {
			return nil, fmt.Errorf("unbound type %s", t.Name)
		}
		if len(b.Params) != len(args) {
			return nil, fmt.Errorf("type %s expects %d argument(s), got %d", t.Name, len(b.Params), len(args))
		}
		if b.IsVariant {
			return &Named{Name: t.Name, Args: args}, nil
		}
		return instantiateAlias(b, args, level), nil

	case *ast.TypeArrow:
		if len(t.Params) == 0 {
			return ResolveTypeExpr(reg, varScope, level, t.Return, openRecords)
		}
		ret, err := ResolveTypeExpr(reg, varScope, level, t.Return, openRecords)
		if err != nil {
			return nil, err
		}
		for i := len(t.Params) - 1; i >= 0; i-- {
			p, err := ResolveTypeExpr(reg, varScope, level, t.Params[i], openRecords)
			if err != nil {
				return nil, err
			}
			ret = &Func{Param: p, Return: ret}
		}
		return ret, nil

	case *ast.TypeRecord:
		fields := map[string]Type{}
		for _, f := range t.Fields {
			ft, err := ResolveTypeExpr(reg, varScope, level, f.Type, openRecords)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = ft
		}
		if openRecords {
			return &Record{Fields: fields, Row: NewVar(level)}, nil
		}
		return &Record{Fields: fields}, nil

	case *ast.TypeTuple:
		elems := make([]Type, len(t.Elements))
		for i, e := range t.Elements {
			et, err := ResolveTypeExpr(reg, varScope, level, e, openRecords)
			if err != nil {
				return nil, err
			}
			elems[i] = et
		}
		return &Tuple{Elems: elems}, nil

	case *ast.TypeUnion:
		return nil, fmt.Errorf("bare union type expressions must be declared as a named variant")

	default:
		return nil, fmt.Errorf("unsupported type expression %T", te)
	}
}

// instantiateAlias substitutes a structural alias/record binding's
// canonical parameter variables with the given arguments (or fresh
// variables at level, if args is nil -- used when referencing a
// zero-argument alias that nonetheless declared parameters is invalid
// and already rejected by the caller).
func instantiateAlias(b *TypeBinding, args []Type, level Level) Type {
	if len(b.ParamVars) == 0 {
		return b.Underlying
	}
	sub := make(map[*Var]*Var, len(b.ParamVars))
	for i, pv := range b.ParamVars {
		if args != nil {
			if av, ok := Prune(args[i]).(*Var); ok {
				sub[pv] = av
				continue
			}
		}
		sub[pv] = NewVar(level)
	}
	result := substituteVars(b.Underlying, sub)
	if args == nil {
		return result
	}
	// args may themselves be non-var concrete types; substituteVars only
	// swaps variable identities, so unify the fresh placeholders with the
	// real argument types to finish the instantiation.
	for i, pv := range b.ParamVars {
		if _, ok := Prune(args[i]).(*Var); ok {
			continue
		}
		if fresh, ok := sub[pv]; ok {
			_ = Unify(fresh, args[i])
		}
	}
	return result
}
