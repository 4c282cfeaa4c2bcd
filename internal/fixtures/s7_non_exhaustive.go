package fixtures

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/compiler"
)

// S7NonExhaustiveMatch is:
//
//	type Color = Red | Green | Blue
//	let name = (c) => match c { | Red => "r" | Green => "g" }
//
// The match covers two of three constructors. Expect a non-exhaustive
// match diagnostic naming Blue, and no generated output.
func S7NonExhaustiveMatch() Scenario {
	colorType := variantType("Color", false, nil,
		variantCase("Red"),
		variantCase("Green"),
		variantCase("Blue"),
	)

	nameBody := match(id("c"),
		arm(variantPat("Red"), strLit("r")),
		arm(variantPat("Green"), strLit("g")),
	)
	nameDecl := let("name", lambda([]string{"c"}, nameBody), false)

	mod := module("main.vf", nil, colorType, nameDecl)

	return Scenario{
		Name:        "non-exhaustive-match",
		Description: "match over Red/Green/Blue covering only two cases",
		Inputs: compiler.Inputs{
			Modules:    map[string]*ast.Module{"main.vf": mod},
			EntryPoint: "main.vf",
		},
	}
}
