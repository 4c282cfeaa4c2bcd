package fixtures

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/compiler"
)

// S2MatchOption is:
//
//	type Option<T> = Some(T) | None
//	let getOr = (o, d) => match o { | Some(x) => x | None => d }
//	export let a = getOr(Some(42), 0)
//	export let b = getOr(None, -1)
//
// Exercises variant construction, matching a one-field constructor
// with a binding pattern against a zero-field one, and reuse of the
// same polymorphic getOr at two different element types.
func S2MatchOption() Scenario {
	optionType := variantType("Option", false, []string{"T"},
		variantCase("Some", &ast.TypeVarExpr{Name: "T"}),
		variantCase("None"),
	)

	getOrBody := match(id("o"),
		arm(variantPat("Some", id("x")), id("x")),
		arm(variantPat("None"), id("d")),
	)
	getOrDecl := let("getOr", lambda([]string{"o", "d"}, getOrBody), false)

	aDecl := let("a", call(id("getOr"), variant("Some", intLit(42)), intLit(0)), true)
	bDecl := let("b", call(id("getOr"), variant("None"), intLit(-1)), true)

	mod := module("main.vf", nil, optionType, getOrDecl, aDecl, bDecl)

	return Scenario{
		Name:        "match-option",
		Description: "matching Some/None, evaluating a to 42 and b to -1",
		Inputs: compiler.Inputs{
			Modules:    map[string]*ast.Module{"main.vf": mod},
			EntryPoint: "main.vf",
		},
	}
}
