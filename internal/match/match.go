// Package match implements the pattern match analyzer (§4.4): given a
// type-checked module, it decides, for every match expression,
// whether its arms are exhaustive and whether any arm is unreachable,
// using classical matrix decomposition (specialize by the head
// constructor of the first column, recurse). It runs strictly after
// type checking, since deciding whether a set of variant constructors
// is complete requires the registry the checker already built.
package match

import (
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
	"github.com/vibefun/vibefun/internal/types"
)

// Analyzer walks a module's Core IR looking for Match expressions and
// reports exhaustiveness/reachability diagnostics for each one found.
type Analyzer struct {
	reg   *types.Registry
	diags *diag.Collector
}

// New returns an Analyzer that resolves variant completeness against reg.
func New(reg *types.Registry) *Analyzer {
	return &Analyzer{reg: reg, diags: diag.NewCollector()}
}

// Check analyzes every match expression in mod and returns the
// diagnostics collected. A module with zero match expressions always
// returns an empty collector.
func Check(reg *types.Registry, mod *core.Module) *diag.Collector {
	a := New(reg)
	for _, d := range mod.Decls {
		a.walkDecl(d)
	}
	return a.diags
}

func (a *Analyzer) walkDecl(d core.Decl) {
	switch dd := d.(type) {
	case *core.LetDecl:
		a.walkExpr(dd.Value)
	case *core.LetRecGroupDecl:
		for _, b := range dd.Bindings {
			a.walkExpr(b.Value)
		}
	// TypeDecl, ExternalDecl, ExternalTypeDecl, ReExportDecl carry no
	// expressions to search.
	default:
	}
}

// walkExpr visits every subexpression, analyzing each Match it finds
// along the way (including matches nested inside other matches' arms).
func (a *Analyzer) walkExpr(e core.Expr) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *core.Lit, *core.Var:
		// leaves

	case *core.Lambda:
		a.walkExpr(ex.Body)

	case *core.App:
		a.walkExpr(ex.Func)
		a.walkExpr(ex.Arg)

	case *core.Let:
		a.walkExpr(ex.Value)
		a.walkExpr(ex.Body)

	case *core.LetRecGroup:
		for _, b := range ex.Bindings {
			a.walkExpr(b.Value)
		}
		a.walkExpr(ex.Body)

	case *core.If:
		a.walkExpr(ex.Cond)
		a.walkExpr(ex.Then)
		a.walkExpr(ex.Else)

	case *core.Match:
		a.walkExpr(ex.Scrutinee)
		for _, arm := range ex.Arms {
			a.walkExpr(arm.Guard)
			a.walkExpr(arm.Body)
		}
		a.analyzeMatch(ex)

	case *core.BinOp:
		a.walkExpr(ex.Left)
		a.walkExpr(ex.Right)

	case *core.UnOp:
		a.walkExpr(ex.Operand)

	case *core.Record:
		a.walkExpr(ex.Spread)
		for _, f := range ex.Fields {
			a.walkExpr(f.Value)
		}

	case *core.RecordAccess:
		a.walkExpr(ex.Record)

	case *core.RecordUpdate:
		a.walkExpr(ex.Base)
		for _, f := range ex.Fields {
			a.walkExpr(f.Value)
		}

	case *core.Tuple:
		for _, el := range ex.Elements {
			a.walkExpr(el)
		}

	case *core.List:
		for _, el := range ex.Elements {
			a.walkExpr(el)
		}
		a.walkExpr(ex.Tail)

	case *core.VariantLit:
		for _, arg := range ex.Args {
			a.walkExpr(arg)
		}

	case *core.RefNew:
		a.walkExpr(ex.Value)

	default:
		// Unknown expression kind: nothing to recurse into safely, and
		// every concrete Core expr kind is handled above.
	}
}

// analyzeMatch runs exhaustiveness and reachability analysis on a
// single match expression's arms.
func (a *Analyzer) analyzeMatch(m *core.Match) {
	var covering [][]core.Pattern // unguarded rows seen so far, one column each
	seenUnreachable := map[int]bool{}

	for armIdx, arm := range m.Arms {
		for _, p := range expandOrRows(arm.Pattern) {
			row := []core.Pattern{p}
			if w, useful := a.usefulness(covering, row); !useful {
				_ = w
				if !seenUnreachable[armIdx] {
					seenUnreachable[armIdx] = true
					a.diags.Warnf(diag.UnreachablePattern, m.Pos(),
						"arm %d of this match is unreachable: every value it matches is already covered by an earlier arm", armIdx+1)
				}
			}
			if arm.Guard == nil {
				covering = append(covering, row)
			}
		}
	}

	if w, useful := a.usefulness(covering, []core.Pattern{&core.WildcardPattern{}}); useful {
		witness := "_"
		if len(w) == 1 {
			witness = w[0].String()
		}
		a.diags.Errorf(diag.NonExhaustiveMatch, m.Pos(),
			"match is not exhaustive: value %s is not covered by any arm", witness)
	}
}

// expandOrRows flattens a pattern's top-level or-alternatives into the
// separate rows the matrix algorithm needs to see (§4.4: "or-patterns
// expand to multiple rows before specialization").
func expandOrRows(p core.Pattern) []core.Pattern {
	if or, ok := p.(*core.OrPattern); ok {
		var out []core.Pattern
		for _, alt := range or.Alternatives {
			out = append(out, expandOrRows(alt)...)
		}
		return out
	}
	return []core.Pattern{p}
}
