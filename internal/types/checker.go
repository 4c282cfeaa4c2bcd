package types

import (
	"fmt"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

// Checker runs Algorithm J style inference over a Core module. One
// Checker is used per module; the registry it's given must already
// contain every type declared or imported into that module's scope.
type Checker struct {
	reg   *Registry
	diags *diag.Collector
	level Level
}

// NewChecker returns a Checker ready to check declarations at the
// module's top level (level 0).
func NewChecker(reg *Registry) *Checker {
	return &Checker{reg: reg, diags: diag.NewCollector()}
}

// Diagnostics returns every diagnostic collected while checking.
func (c *Checker) Diagnostics() *diag.Collector { return c.diags }

func (c *Checker) freshVar() *Var { return NewVar(c.level) }

// CheckModule type-checks every declaration of mod in order, starting
// from an empty environment, and returns the final environment (every
// top-level binding's scheme) for a single-module caller (tests,
// single-file tools).
func (c *Checker) CheckModule(mod *core.Module) *Env {
	return c.CheckModuleFrom(nil, mod)
}

// CheckModuleFrom is CheckModule starting from env instead of empty,
// so internal/compiler can seed a module's scope with the schemes its
// dependencies exported before checking its own declarations (§4,
// whole-program compilation order).
func (c *Checker) CheckModuleFrom(env *Env, mod *core.Module) *Env {
	for _, decl := range mod.Decls {
		env = c.checkDecl(env, decl)
	}
	return env
}

func (c *Checker) checkDecl(env *Env, decl core.Decl) *Env {
	switch d := decl.(type) {
	case *core.TypeDecl:
		DeclareType(c.reg, c.diags, d)
		newEnv := env
		for name, scheme := range ConstructorSchemes(c.reg, d) {
			newEnv = newEnv.Extend(name, scheme)
		}
		return newEnv

	case *core.ExternalTypeDecl:
		c.reg.DefineAlias(d.Name, nil, nil, &Named{Name: d.Name})
		return env

	case *core.ExternalDecl:
		t, err := ResolveTypeExpr(c.reg, map[string]*Var{}, c.level, d.DeclaredType, false)
		if err != nil {
			c.diags.Errorf(diag.UnboundType, d.Pos(), "external %s: %s", d.Name, err)
			t = c.freshVar()
		}
		scheme := Generalize(-1, t)
		return env.Extend(d.Name, scheme)

	case *core.LetDecl:
		valType, newEnv := c.bindLet(env, d.Pattern, d.Value, d.Recursive)
		d.SetType(valType)
		if s, ok := schemeOf(newEnv, firstName(d.Pattern)); ok {
			d.Scheme = s
		}
		return newEnv

	case *core.LetRecGroupDecl:
		newEnv := c.bindLetRecGroup(env, d.Bindings)
		if d.Schemes == nil {
			d.Schemes = map[string]interface{}{}
		}
		for _, b := range d.Bindings {
			if s, ok := newEnv.Lookup(b.Name); ok {
				d.Schemes[b.Name] = s
			}
		}
		return newEnv

	default:
		return env
	}
}

func schemeOf(env *Env, name string) (*Scheme, bool) {
	if name == "" {
		return nil, false
	}
	return env.Lookup(name)
}

func firstName(p core.Pattern) string {
	if vp, ok := p.(*core.VarPattern); ok {
		return vp.Name
	}
	return ""
}

// bindLet type-checks one (possibly self-recursive) let binding at an
// incremented level, applies the syntactic value restriction, and
// returns the inferred type of the value together with the extended
// environment.
func (c *Checker) bindLet(env *Env, pat core.Pattern, value core.Expr, recursive bool) (Type, *Env) {
	c.level++
	bodyEnv := env
	var selfVar *Var
	if recursive {
		selfVar = c.freshVar()
		if name := firstName(pat); name != "" {
			bodyEnv = bodyEnv.Extend(name, MonoScheme(selfVar))
		}
	}
	valType := c.inferExpr(bodyEnv, value)
	if selfVar != nil {
		c.unify(value.Pos(), selfVar, valType)
	}
	c.level--

	var scheme *Scheme
	if isSyntacticValue(value) {
		scheme = Generalize(c.level, valType)
	} else {
		scheme = MonoScheme(valType)
	}
	return valType, c.bindPattern(env, pat, valType, scheme, value.Pos())
}

// bindPattern extends env for every variable a (possibly compound)
// pattern introduces. A bare variable pattern gets the full let-
// generalized scheme; variables inside a destructuring pattern are
// bound monomorphically to their structural position, matching what
// most ML-family implementations do in practice (full principal
// generalization through destructuring is not attempted).
func (c *Checker) bindPattern(env *Env, pat core.Pattern, valType Type, scheme *Scheme, pos ast.Pos) *Env {
	if vp, ok := pat.(*core.VarPattern); ok {
		return env.Extend(vp.Name, scheme)
	}
	newEnv, diags := c.checkPattern(env, pat, valType, pos)
	c.diags.Merge(diags)
	return newEnv
}

// bindLetRecGroup type-checks a mutually recursive group: every
// binding gets a fresh monomorphic variable up front so the bodies can
// reference each other and themselves, then each is generalized
// independently once the whole group has been checked (§4.3.2).
func (c *Checker) bindLetRecGroup(env *Env, bindings []core.RecBinding) *Env {
	c.level++
	groupEnv := env
	placeholders := make(map[string]*Var, len(bindings))
	for _, b := range bindings {
		v := c.freshVar()
		placeholders[b.Name] = v
		groupEnv = groupEnv.Extend(b.Name, MonoScheme(v))
	}
	valTypes := make(map[string]Type, len(bindings))
	for _, b := range bindings {
		t := c.inferExpr(groupEnv, b.Value)
		c.unify(b.Value.Pos(), placeholders[b.Name], t)
		valTypes[b.Name] = t
	}
	c.level--

	finalEnv := env
	for _, b := range bindings {
		var scheme *Scheme
		if isSyntacticValue(b.Value) {
			scheme = Generalize(c.level, valTypes[b.Name])
		} else {
			scheme = MonoScheme(valTypes[b.Name])
		}
		finalEnv = finalEnv.Extend(b.Name, scheme)
	}
	return finalEnv
}

// isSyntacticValue implements the value restriction (§4.3.2): only
// lets whose right-hand side is a syntactic value are eligible for
// let-generalization.
func isSyntacticValue(e core.Expr) bool {
	switch v := e.(type) {
	case *core.Lit, *core.Var, *core.Lambda:
		return true
	case *core.VariantLit:
		for _, a := range v.Args {
			if !isSyntacticValue(a) {
				return false
			}
		}
		return true
	case *core.Record:
		if v.Spread != nil && !isSyntacticValue(v.Spread) {
			return false
		}
		for _, f := range v.Fields {
			if !isSyntacticValue(f.Value) {
				return false
			}
		}
		return true
	case *core.Tuple:
		for _, el := range v.Elements {
			if !isSyntacticValue(el) {
				return false
			}
		}
		return true
	case *core.List:
		if v.Tail != nil && !isSyntacticValue(v.Tail) {
			return false
		}
		for _, el := range v.Elements {
			if !isSyntacticValue(el) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// unify unifies expected and actual, reporting a diagnostic at pos on
// failure (coded per the UnifyError's kind -- see unifyErrorCode) and
// returning a fresh error-recovery type so the caller's own result can
// stay well-formed and inference can continue past this one mismatch
// (§4.3.8).
func (c *Checker) unify(pos ast.Pos, expected, actual Type) Type {
	if err := Unify(expected, actual); err != nil {
		c.diags.Errorf(unifyErrorCode(err), pos, "%s", describeUnifyError(err))
		return c.freshErrorType()
	}
	return Prune(expected)
}

// unifyErrorCode maps a UnifyError's Kind to its stable diagnostic
// code (§6.3): occurs-check failures and record width mismatches each
// get their own VF1xxx code rather than collapsing into the generic
// mismatch code.
func unifyErrorCode(err error) string {
	ue, ok := err.(*UnifyError)
	if !ok {
		return diag.TypeMismatch
	}
	switch ue.Kind {
	case "occurs":
		return diag.OccursCheck
	case "field_missing":
		return diag.RecordFieldMissing
	case "field_extra":
		return diag.RecordFieldExtra
	case "arity":
		return diag.ArityMismatch
	default:
		return diag.TypeMismatch
	}
}

func (c *Checker) freshErrorType() Type { return NewErrorVar(c.level) }

func describeUnifyError(err error) string {
	if ue, ok := err.(*UnifyError); ok {
		switch ue.Kind {
		case "field_missing":
			return fmt.Sprintf("missing field %q", ue.Detail)
		case "field_extra":
			return fmt.Sprintf("unexpected field %q", ue.Detail)
		case "occurs":
			return fmt.Sprintf("infinite type: %s occurs in %s", ue.Expected, ue.Actual)
		case "arity":
			return fmt.Sprintf("expected %s, got %s", ue.Expected, ue.Actual)
		}
		return fmt.Sprintf("expected %s, got %s", ue.Expected, ue.Actual)
	}
	return err.Error()
}
