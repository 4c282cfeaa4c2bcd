package desugar

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

// desugarPattern lowers a surface pattern to Core and returns the
// scope extended with every name the pattern binds. Core has no
// pattern-level guard node (§3.3): a GuardPattern nested inside an
// or-pattern or constructor argument has its condition appended to
// guards instead, for the caller (desugarMatch) to conjoin onto the
// arm's own MatchArm.Guard once the whole pattern's bindings are in
// scope. TypedPattern is dropped outright -- Core patterns carry no
// type of their own, the checker unifies the scrutinee type directly.
func (d *Desugarer) desugarPattern(sc *refScope, p ast.Pattern, guards *[]ast.Expr) (core.Pattern, *refScope) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return &core.WildcardPattern{}, sc

	case *ast.Var:
		return &core.VarPattern{Name: pat.Name}, sc.extend(pat.Name, core.RefLocal)

	case *ast.Literal:
		return d.desugarLitPattern(pat), sc

	case *ast.VariantPattern:
		args := make([]core.Pattern, len(pat.Args))
		cur := sc
		for i, a := range pat.Args {
			var lowered core.Pattern
			lowered, cur = d.desugarPattern(cur, a, guards)
			args[i] = lowered
		}
		return &core.VariantPattern{Constructor: pat.Constructor, Args: args}, cur

	case *ast.TuplePattern:
		elems := make([]core.Pattern, len(pat.Elements))
		cur := sc
		for i, e := range pat.Elements {
			var lowered core.Pattern
			lowered, cur = d.desugarPattern(cur, e, guards)
			elems[i] = lowered
		}
		return &core.TuplePattern{Elements: elems}, cur

	case *ast.RecordPattern:
		fields := make([]core.FieldPattern, len(pat.Fields))
		cur := sc
		for i, f := range pat.Fields {
			var lowered core.Pattern
			lowered, cur = d.desugarPattern(cur, f.Pattern, guards)
			fields[i] = core.FieldPattern{Name: f.Name, Pattern: lowered}
		}
		return &core.RecordPattern{Fields: fields}, cur

	case *ast.ListPattern:
		elems := make([]core.Pattern, len(pat.Elements))
		cur := sc
		for i, e := range pat.Elements {
			var lowered core.Pattern
			lowered, cur = d.desugarPattern(cur, e, guards)
			elems[i] = lowered
		}
		var rest core.Pattern
		if pat.Rest != nil {
			rest, cur = d.desugarPattern(cur, pat.Rest, guards)
		}
		return &core.ListPattern{Elements: elems, Rest: rest}, cur

	case *ast.OrPattern:
		alts := make([]core.Pattern, len(pat.Alternatives))
		// The scope returned to the caller is the first
		// alternative's; no stage compares the names the
		// alternatives bind.
		var firstScope *refScope
		for i, a := range pat.Alternatives {
			lowered, altScope := d.desugarPattern(sc, a, guards)
			alts[i] = lowered
			if i == 0 {
				firstScope = altScope
			}
		}
		return &core.OrPattern{Alternatives: alts}, firstScope

	case *ast.GuardPattern:
		inner, innerScope := d.desugarPattern(sc, pat.Inner, guards)
		*guards = append(*guards, pat.Cond)
		return inner, innerScope

	case *ast.TypedPattern:
		return d.desugarPattern(sc, pat.Inner, guards)

	default:
		d.diags.Errorf(diag.InvalidDesugar, p.Position(), "unsupported pattern %T", p)
		return &core.WildcardPattern{}, sc
	}
}

func (d *Desugarer) desugarLitPattern(l *ast.Literal) *core.LitPattern {
	var kind core.LitKind
	switch l.Kind {
	case ast.IntLit:
		kind = core.IntLit
	case ast.FloatLit:
		kind = core.FloatLit
	case ast.StringLit:
		kind = core.StringLit
	case ast.BoolLit:
		kind = core.BoolLit
	default:
		kind = core.UnitLit
	}
	return &core.LitPattern{Kind: kind, Value: l.Value}
}
