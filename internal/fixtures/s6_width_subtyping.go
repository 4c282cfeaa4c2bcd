package fixtures

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/compiler"
)

// S6WidthSubtyping is:
//
//	type Point2D = { x: Int, y: Int }
//	let getX = (p: { x: Int }) => p.x
//	export let v = getX({ x: 3, y: 4, z: 5 })
//
// getX's parameter only names field x, so a three-field record
// literal still unifies against it by width subtyping. No diagnostics;
// v evaluates to 3.
func S6WidthSubtyping() Scenario {
	point2D := &ast.TypeDecl{
		Name: "Point2D",
		Kind: ast.TypeDefRecord,
		Fields: []ast.RecordField{
			{Name: "x", Type: &ast.TypeConst{Name: "Int"}},
			{Name: "y", Type: &ast.TypeConst{Name: "Int"}},
		},
	}

	getXBody := &ast.RecordAccess{Record: id("p"), Field: "x"}
	getXLambda := &ast.Lambda{
		Params: []ast.LambdaParam{{
			Name: "p",
			Annotation: &ast.TypeRecord{
				Fields: []ast.RecordField{{Name: "x", Type: &ast.TypeConst{Name: "Int"}}},
			},
		}},
		Body: getXBody,
	}
	getXDecl := let("getX", getXLambda, false)

	arg := &ast.RecordLit{Fields: []ast.RecordFieldExpr{
		{Name: "x", Value: intLit(3)},
		{Name: "y", Value: intLit(4)},
		{Name: "z", Value: intLit(5)},
	}}
	vDecl := let("v", call(id("getX"), arg), true)

	mod := module("main.vf", nil, point2D, getXDecl, vDecl)

	return Scenario{
		Name:        "width-subtyping",
		Description: "a three-field record literal passed where only one field is required",
		Inputs: compiler.Inputs{
			Modules:    map[string]*ast.Module{"main.vf": mod},
			EntryPoint: "main.vf",
		},
	}
}
