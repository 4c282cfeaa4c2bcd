package types

import (
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

// inferExpr dispatches on the Core expression kind, annotates the
// node with its inferred type via the promoted Node.SetType, and
// returns that type.
func (c *Checker) inferExpr(env *Env, e core.Expr) Type {
	t := c.inferExprUntyped(env, e)
	e.SetType(t)
	return t
}

func (c *Checker) inferExprUntyped(env *Env, e core.Expr) Type {
	switch ex := e.(type) {
	case *core.Lit:
		return c.inferLit(ex)
	case *core.Var:
		return c.inferVar(env, ex)
	case *core.Lambda:
		return c.inferLambda(env, ex)
	case *core.App:
		return c.inferApp(env, ex)
	case *core.Let:
		_, newEnv := c.bindLet(env, ex.Pattern, ex.Value, ex.Recursive)
		return c.inferExpr(newEnv, ex.Body)
	case *core.LetRecGroup:
		newEnv := c.bindLetRecGroup(env, ex.Bindings)
		return c.inferExpr(newEnv, ex.Body)
	case *core.If:
		return c.inferIf(env, ex)
	case *core.Match:
		return c.inferMatch(env, ex)
	case *core.BinOp:
		return c.inferBinOp(env, ex)
	case *core.UnOp:
		return c.inferUnOp(env, ex)
	case *core.Record:
		return c.inferRecord(env, ex)
	case *core.RecordAccess:
		return c.inferRecordAccess(env, ex)
	case *core.RecordUpdate:
		return c.inferRecordUpdate(env, ex)
	case *core.Tuple:
		return c.inferTuple(env, ex)
	case *core.List:
		return c.inferList(env, ex)
	case *core.VariantLit:
		return c.inferVariantLit(env, ex)
	case *core.RefNew:
		return &Ref{Elem: c.inferExpr(env, ex.Value)}
	default:
		c.diags.Errorf(diag.InvalidDesugar, e.Pos(), "unsupported core expression %T", e)
		return c.freshErrorType()
	}
}

func (c *Checker) inferLit(l *core.Lit) Type {
	switch l.Kind {
	case core.IntLit:
		return Int
	case core.FloatLit:
		return Float
	case core.StringLit:
		return String
	case core.BoolLit:
		return Bool
	default:
		return Unit
	}
}

func (c *Checker) inferVar(env *Env, v *core.Var) Type {
	scheme, ok := env.Lookup(v.Name)
	if !ok {
		c.diags.Errorf(diag.UnboundVariable, v.Pos(), "unbound variable %s", v.Name)
		return c.freshErrorType()
	}
	return Instantiate(scheme, c.level)
}

func (c *Checker) inferLambda(env *Env, l *core.Lambda) Type {
	var paramType Type
	if l.Param.Annotation != nil {
		t, err := ResolveTypeExpr(c.reg, map[string]*Var{}, c.level, l.Param.Annotation, true)
		if err != nil {
			c.diags.Errorf(diag.UnboundType, l.Pos(), "parameter %s: %s", l.Param.Name, err)
			t = c.freshVar()
		}
		paramType = t
	} else {
		paramType = c.freshVar()
	}
	bodyEnv := env.Extend(l.Param.Name, MonoScheme(paramType))
	retType := c.inferExpr(bodyEnv, l.Body)
	return &Func{Param: paramType, Return: retType}
}

func (c *Checker) inferApp(env *Env, a *core.App) Type {
	fnType := c.inferExpr(env, a.Func)
	argType := c.inferExpr(env, a.Arg)
	result := c.freshVar()
	c.unify(a.Pos(), fnType, &Func{Param: argType, Return: result})
	return Prune(result)
}

func (c *Checker) inferIf(env *Env, i *core.If) Type {
	condType := c.inferExpr(env, i.Cond)
	c.unify(i.Cond.Pos(), Bool, condType)
	thenType := c.inferExpr(env, i.Then)
	elseType := c.inferExpr(env, i.Else)
	return c.unify(i.Pos(), thenType, elseType)
}

func (c *Checker) inferMatch(env *Env, m *core.Match) Type {
	scrutType := c.inferExpr(env, m.Scrutinee)
	result := c.freshVar()
	var resultType Type = result
	for _, arm := range m.Arms {
		armEnv, diags := c.checkPattern(env, arm.Pattern, scrutType, m.Pos())
		c.diags.Merge(diags)
		if arm.Guard != nil {
			guardType := c.inferExpr(armEnv, arm.Guard)
			c.unify(arm.Guard.Pos(), Bool, guardType)
		}
		bodyType := c.inferExpr(armEnv, arm.Body)
		resultType = c.unify(arm.Body.Pos(), resultType, bodyType)
	}
	return resultType
}

func (c *Checker) inferRecord(env *Env, r *core.Record) Type {
	fields := map[string]Type{}
	for _, f := range r.Fields {
		fields[f.Name] = c.inferExpr(env, f.Value)
	}
	if r.Spread == nil {
		return &Record{Fields: fields}
	}
	spreadType := c.inferExpr(env, r.Spread)
	if sr, ok := Prune(spreadType).(*Record); ok && sr.IsClosed() {
		merged := map[string]Type{}
		for n, t := range sr.Fields {
			merged[n] = t
		}
		for n, t := range fields {
			merged[n] = t
		}
		return &Record{Fields: merged}
	}
	row := c.freshVar()
	c.unify(r.Pos(), spreadType, &Record{Fields: map[string]Type{}, Row: row})
	return &Record{Fields: fields, Row: c.freshVar()}
}

func (c *Checker) inferRecordAccess(env *Env, r *core.RecordAccess) Type {
	recType := c.inferExpr(env, r.Record)
	fieldVar := c.freshVar()
	row := c.freshVar()
	c.unify(r.Pos(), recType, &Record{Fields: map[string]Type{r.Field: fieldVar}, Row: row})
	return Prune(fieldVar)
}

func (c *Checker) inferRecordUpdate(env *Env, r *core.RecordUpdate) Type {
	baseType := c.inferExpr(env, r.Base)
	for _, f := range r.Fields {
		valType := c.inferExpr(env, f.Value)
		row := c.freshVar()
		c.unify(r.Pos(), baseType, &Record{Fields: map[string]Type{f.Name: valType}, Row: row})
	}
	return Prune(baseType)
}

func (c *Checker) inferTuple(env *Env, t *core.Tuple) Type {
	elems := make([]Type, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = c.inferExpr(env, e)
	}
	return &Tuple{Elems: elems}
}

func (c *Checker) inferList(env *Env, l *core.List) Type {
	elem := c.freshVar()
	var elemType Type = elem
	for _, e := range l.Elements {
		et := c.inferExpr(env, e)
		elemType = c.unify(e.Pos(), elemType, et)
	}
	if l.Tail != nil {
		tailType := c.inferExpr(env, l.Tail)
		c.unify(l.Tail.Pos(), ListOf(elemType), tailType)
	}
	return ListOf(elemType)
}

func (c *Checker) inferVariantLit(env *Env, v *core.VariantLit) Type {
	ci, ok := c.reg.Constructor(v.Constructor)
	if !ok {
		c.diags.Errorf(diag.UnboundConstructor, v.Pos(), "unbound constructor %s", v.Constructor)
		for _, a := range v.Args {
			c.inferExpr(env, a)
		}
		return c.freshErrorType()
	}
	if len(ci.Fields) != len(v.Args) {
		c.diags.Errorf(diag.ArityMismatch, v.Pos(), "%s expects %d argument(s), got %d", v.Constructor, len(ci.Fields), len(v.Args))
		for _, a := range v.Args {
			c.inferExpr(env, a)
		}
		return c.freshErrorType()
	}
	fieldTypes, result := InstantiateConstructor(c.reg, ci, c.level)
	for i, a := range v.Args {
		argType := c.inferExpr(env, a)
		c.unify(a.Pos(), fieldTypes[i], argType)
	}
	return result
}
