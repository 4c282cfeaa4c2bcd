package fixtures

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/compiler"
)

// S1CurriedArithmetic is:
//
//	let add = (x, y) => x + y
//	export let r = add(1)(2)
//
// A nested surface App models the curried call site; desugaring turns
// both the two-parameter lambda and the two one-argument calls into
// single-argument Core lambdas and applications. Compiles clean; the
// emitted module evaluates r to 3.
func S1CurriedArithmetic() Scenario {
	addBody := &ast.BinaryOp{Op: "+", Left: id("x"), Right: id("y")}
	addDecl := let("add", lambda([]string{"x", "y"}, addBody), false)

	curried := call(call(id("add"), intLit(1)), intLit(2))
	rDecl := let("r", curried, true)

	mod := module("main.vf", nil, addDecl, rDecl)

	return Scenario{
		Name:        "curried-arithmetic",
		Description: "curried two-argument addition, compiled and evaluated to 3",
		Inputs: compiler.Inputs{
			Modules:    map[string]*ast.Module{"main.vf": mod},
			EntryPoint: "main.vf",
		},
	}
}
