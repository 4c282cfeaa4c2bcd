package fixtures

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/compiler"
)

// S5ValueRestriction is:
//
//	let id = (x) => x
//	let cell = ref(id)
//	let n = (!cell)(1)
//	let s = (!cell)("hi")  // expected: type error
//
// ref(id) is a function application, not a syntactic value, so cell's
// scheme is monomorphic in id's parameter type: the first dereference
// and call binds that type variable to Int, and the second use at
// String is a genuine mismatch at the call site. This is the same
// shape as a raw identity function escaping through a ref cell -- the
// textbook case the value restriction exists to reject.
func S5ValueRestriction() Scenario {
	idDecl := let("id", lambda([]string{"x"}, id("x")), false)

	cellDecl := let("cell", call(id("ref"), id("id")), false)

	deref := func() ast.Expr { return &ast.UnaryOp{Op: "!", Operand: id("cell")} }

	nDecl := let("n", call(deref(), intLit(1)), false)
	sDecl := let("s", call(deref(), strLit("hi")), false)

	mod := module("main.vf", nil, idDecl, cellDecl, nDecl, sDecl)

	return Scenario{
		Name:        "value-restriction",
		Description: "identity function through a ref cell; second use at a different type is a type error",
		Inputs: compiler.Inputs{
			Modules:    map[string]*ast.Module{"main.vf": mod},
			EntryPoint: "main.vf",
		},
	}
}
