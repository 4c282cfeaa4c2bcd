package fixtures

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/compiler"
)

// S3SelfImport is:
//
//	// a.vf
//	import { x } from "./a"
//	export let x = 1
//
// A module that imports itself. The module is keyed under the same
// string it imports, "./a", so the resolver's canonicalization needs
// no Resolved entry to see the edge land back on its own node. Expect
// a self-import error and no generated output.
func S3SelfImport() Scenario {
	imp := importDecl("./a", ast.ImportItem{Name: "x"})
	xDecl := let("x", intLit(1), true)

	mod := module("./a", []*ast.ImportDecl{imp}, xDecl)

	return Scenario{
		Name:        "self-import",
		Description: "a module importing itself; expect a self-import error and no output",
		Inputs: compiler.Inputs{
			Modules:    map[string]*ast.Module{"./a": mod},
			EntryPoint: "./a",
		},
	}
}
