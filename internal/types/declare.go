package types

import (
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

// DeclareType resolves one Core type declaration into the registry.
// Every TypeDecl in a module must be declared before any expression in
// that module is type-checked, since constructors and alias names can
// be referenced before their textual position (the resolver already
// guarantees the declaring module itself has no unresolved cycle
// through a value edge by the time this runs).
func DeclareType(reg *Registry, diags *diag.Collector, td *core.TypeDecl) {
	varScope := map[string]*Var{}
	paramVars := make([]*Var, len(td.TypeParams))
	for i, p := range td.TypeParams {
		v := NewVar(0)
		varScope[p] = v
		paramVars[i] = v
	}

	switch td.Kind {
	case core.TypeDeclAlias:
		underlying, err := ResolveTypeExpr(reg, varScope, 0, td.Alias, false)
		if err != nil {
			diags.Errorf(diag.UnboundType, td.Pos(), "%s: %s", td.Name, err)
			underlying = NewErrorVar(0)
		}
		reg.DefineAlias(td.Name, td.TypeParams, paramVars, underlying)

	case core.TypeDeclRecord:
		fields := map[string]Type{}
		for _, f := range td.Fields {
			ft, err := ResolveTypeExpr(reg, varScope, 0, f.Type, false)
			if err != nil {
				diags.Errorf(diag.UnboundType, f.Pos, "field %s of %s: %s", f.Name, td.Name, err)
				ft = NewErrorVar(0)
			}
			fields[f.Name] = ft
		}
		reg.DefineAlias(td.Name, td.TypeParams, paramVars, &Record{Fields: fields})

	case core.TypeDeclVariant:
		cases := make([]ConstructorInfo, len(td.Constructors))
		for i, cs := range td.Constructors {
			fieldTypes := make([]Type, len(cs.Fields))
			for j, fte := range cs.Fields {
				ft, err := ResolveTypeExpr(reg, varScope, 0, fte, false)
				if err != nil {
					diags.Errorf(diag.UnboundType, td.Pos(), "constructor %s field %d: %s", cs.Name, j, err)
					ft = NewErrorVar(0)
				}
				fieldTypes[j] = ft
			}
			cases[i] = ConstructorInfo{
				Name:       cs.Name,
				TypeName:   td.Name,
				TypeParams: td.TypeParams,
				Fields:     fieldTypes,
				Index:      i,
			}
		}
		reg.DefineVariant(td.Name, td.TypeParams, paramVars, cases)
	}
}

// ConstructorSchemes returns the curried function scheme for every case
// of a variant TypeDecl, so a bare reference to a constructor (`let f =
// Some`) type-checks as a first-class function rather than failing as
// an unbound variable. Each scheme is quantified over the type's own
// parameter variables, since a constructor is polymorphic in exactly
// the type's declared parameters -- nothing more, nothing less.
func ConstructorSchemes(reg *Registry, td *core.TypeDecl) map[string]*Scheme {
	if td.Kind != core.TypeDeclVariant {
		return nil
	}
	b, ok := reg.Lookup(td.Name)
	if !ok {
		return nil
	}
	resultArgs := paramVarsAsTypes(b.ParamVars)
	out := make(map[string]*Scheme, len(b.Constructors))
	for _, ci := range b.Constructors {
		t := Type(&Named{Name: td.Name, Args: resultArgs})
		for i := len(ci.Fields) - 1; i >= 0; i-- {
			t = &Func{Param: ci.Fields[i], Return: t}
		}
		out[ci.Name] = &Scheme{Vars: b.ParamVars, Type: t}
	}
	return out
}

func paramVarsAsTypes(vars []*Var) []Type {
	out := make([]Type, len(vars))
	for i, v := range vars {
		out[i] = v
	}
	return out
}

// InstantiateConstructor produces a fresh-at-level use of a
// constructor's field types and its variant's applied result type,
// substituting the type's canonical parameter variables for new ones
// so each call site gets its own instance (§4.3.4/§4.3.5).
func InstantiateConstructor(reg *Registry, ci *ConstructorInfo, level Level) (fields []Type, result Type) {
	b, ok := reg.Lookup(ci.TypeName)
	if !ok || len(b.ParamVars) == 0 {
		return ci.Fields, &Named{Name: ci.TypeName}
	}
	sub := make(map[*Var]*Var, len(b.ParamVars))
	args := make([]Type, len(b.ParamVars))
	for i, pv := range b.ParamVars {
		fresh := NewVar(level)
		sub[pv] = fresh
		args[i] = fresh
	}
	fields = make([]Type, len(ci.Fields))
	for i, f := range ci.Fields {
		fields[i] = substituteVars(f, sub)
	}
	return fields, &Named{Name: ci.TypeName, Args: args}
}
