package types

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

// checkPattern unifies a pattern's implied shape against scrutType and
// returns the environment extended with every variable the pattern
// binds, plus any diagnostics raised along the way. Core patterns
// carry no position of their own (§3.3 strips it during desugaring),
// so pos -- the position of the enclosing match arm or let binding --
// is what every diagnostic under this pattern points at. checkPattern
// never mutates c.diags directly so callers can decide ordering; every
// existing call site merges the result immediately.
func (c *Checker) checkPattern(env *Env, pat core.Pattern, scrutType Type, pos ast.Pos) (*Env, *diag.Collector) {
	local := diag.NewCollector()
	return c.checkPatternInto(env, pat, scrutType, pos, local), local
}

func (c *Checker) checkPatternInto(env *Env, pat core.Pattern, scrutType Type, pos ast.Pos, diags *diag.Collector) *Env {
	switch p := pat.(type) {
	case *core.WildcardPattern:
		return env

	case *core.VarPattern:
		return env.Extend(p.Name, MonoScheme(scrutType))

	case *core.LitPattern:
		litType := litKindType(p.Kind)
		if err := Unify(litType, scrutType); err != nil {
			diags.Errorf(diag.PatternTypeMismatch, pos, "pattern literal does not match scrutinee type: %s", describeUnifyError(err))
		}
		return env

	case *core.VariantPattern:
		ci, ok := c.reg.Constructor(p.Constructor)
		if !ok {
			diags.Errorf(diag.UnboundConstructor, pos, "unbound constructor %s", p.Constructor)
			return env
		}
		if len(ci.Fields) != len(p.Args) {
			diags.Errorf(diag.ArityMismatch, pos, "%s expects %d argument(s), got %d", p.Constructor, len(ci.Fields), len(p.Args))
		}
		fieldTypes, result := InstantiateConstructor(c.reg, ci, c.level)
		if err := Unify(result, scrutType); err != nil {
			diags.Errorf(diag.PatternTypeMismatch, pos, "%s", describeUnifyError(err))
		}
		cur := env
		for i, sub := range p.Args {
			var ft Type = c.freshErrorType()
			if i < len(fieldTypes) {
				ft = fieldTypes[i]
			}
			cur = c.checkPatternInto(cur, sub, ft, pos, diags)
		}
		return cur

	case *core.TuplePattern:
		elemVars := make([]Type, len(p.Elements))
		for i := range elemVars {
			elemVars[i] = c.freshVar()
		}
		if err := Unify(&Tuple{Elems: elemVars}, scrutType); err != nil {
			diags.Errorf(diag.PatternTypeMismatch, pos, "%s", describeUnifyError(err))
		}
		cur := env
		for i, sub := range p.Elements {
			cur = c.checkPatternInto(cur, sub, elemVars[i], pos, diags)
		}
		return cur

	case *core.RecordPattern:
		fieldVars := make(map[string]Type, len(p.Fields))
		for _, f := range p.Fields {
			fieldVars[f.Name] = c.freshVar()
		}
		row := c.freshVar()
		if err := Unify(&Record{Fields: fieldVars, Row: row}, scrutType); err != nil {
			diags.Errorf(diag.PatternTypeMismatch, pos, "%s", describeUnifyError(err))
		}
		cur := env
		for _, f := range p.Fields {
			cur = c.checkPatternInto(cur, f.Pattern, fieldVars[f.Name], pos, diags)
		}
		return cur

	case *core.ListPattern:
		elem := c.freshVar()
		if err := Unify(ListOf(elem), scrutType); err != nil {
			diags.Errorf(diag.PatternTypeMismatch, pos, "%s", describeUnifyError(err))
		}
		cur := env
		for _, sub := range p.Elements {
			cur = c.checkPatternInto(cur, sub, elem, pos, diags)
		}
		if p.Rest != nil {
			cur = c.checkPatternInto(cur, p.Rest, ListOf(elem), pos, diags)
		}
		return cur

	case *core.OrPattern:
		// Each alternative is checked against the scrutinee type on
		// its own, and the first alternative's bindings are returned.
		// Neither the name sets nor the types of same-named variables
		// are compared across alternatives.
		var first *Env
		for i, alt := range p.Alternatives {
			altEnv := c.checkPatternInto(env, alt, scrutType, pos, diags)
			if i == 0 {
				first = altEnv
			}
		}
		return first

	default:
		diags.Errorf(diag.InvalidDesugar, pos, "unsupported pattern %T", pat)
		return env
	}
}

func litKindType(k core.LitKind) Type {
	switch k {
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
