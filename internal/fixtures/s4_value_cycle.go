package fixtures

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/compiler"
)

// S4ValueCycle is two modules that import each other's value:
//
//	// a.vf: import { y } from "./b"; export let x = 1
//	// b.vf: import { x } from "./a"; export let y = 2
//
// Both modules are keyed by the exact string the other imports them
// as, so the two edges close the cycle without a Resolved table.
// Expect a circular-dependency warning naming the cycle, with both
// modules still compiling.
func S4ValueCycle() Scenario {
	aImp := importDecl("./b", ast.ImportItem{Name: "y"})
	aMod := module("./a", []*ast.ImportDecl{aImp}, let("x", intLit(1), true))

	bImp := importDecl("./a", ast.ImportItem{Name: "x"})
	bMod := module("./b", []*ast.ImportDecl{bImp}, let("y", intLit(2), true))

	return Scenario{
		Name:        "value-cycle",
		Description: "a.vf and b.vf import each other's export; expect a circular-dependency warning",
		Inputs: compiler.Inputs{
			Modules: map[string]*ast.Module{
				"./a": aMod,
				"./b": bMod,
			},
			EntryPoint: "./a",
		},
	}
}
