package desugar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
)

func pos(line int) ast.Pos { return ast.Pos{File: "t.vf", Line: line, Column: 1} }

func TestCurriesMultiArgLambdaAndApp(t *testing.T) {
	// (x, y) => x + y applied to (1, 2)
	lambda := &ast.Lambda{
		Params: []ast.LambdaParam{{Name: "x"}, {Name: "y"}},
		Body: &ast.BinaryOp{
			Op:    "+",
			Left:  &ast.Var{Name: "x", Pos: pos(1)},
			Right: &ast.Var{Name: "y", Pos: pos(1)},
			Pos:   pos(1),
		},
		Pos: pos(1),
	}
	app := &ast.App{
		Func: lambda,
		Args: []ast.Expr{
			&ast.Literal{Kind: ast.IntLit, Value: int64(1), Pos: pos(1)},
			&ast.Literal{Kind: ast.IntLit, Value: int64(2), Pos: pos(1)},
		},
		Pos: pos(1),
	}

	mod := &ast.Module{
		Path: "main",
		Decls: []ast.Decl{
			&ast.LetDecl{Pattern: &ast.Var{Name: "r"}, Value: app, Exported: true, Pos: pos(1)},
		},
	}

	out, diags := Module(mod)
	require.False(t, diags.HasErrors())
	require.Len(t, out.Decls, 1)

	ld := out.Decls[0].(*core.LetDecl)
	outerApp, ok := ld.Value.(*core.App)
	require.True(t, ok, "expected outer App, got %T", ld.Value)
	innerApp, ok := outerApp.Func.(*core.App)
	require.True(t, ok, "expected curried inner App, got %T", outerApp.Func)

	innerLambda, ok := innerApp.Func.(*core.Lambda)
	require.True(t, ok)
	assert.Equal(t, "x", innerLambda.Param.Name)
	nestedLambda, ok := innerLambda.Body.(*core.Lambda)
	require.True(t, ok)
	assert.Equal(t, "y", nestedLambda.Param.Name)
}

func TestRefConstructionAndOps(t *testing.T) {
	// let mut r = ref(0)
	refLet := &ast.LetDecl{
		Pattern: &ast.Var{Name: "r"},
		Mutable: true,
		Value: &ast.App{
			Func: &ast.Var{Name: "ref", Pos: pos(1)},
			Args: []ast.Expr{&ast.Literal{Kind: ast.IntLit, Value: int64(0), Pos: pos(1)}},
			Pos:  pos(1),
		},
		Pos: pos(1),
	}
	// r := !r + 1, as a second let so we can inspect it directly
	deref := &ast.UnaryOp{Op: "!", Operand: &ast.Var{Name: "r", Pos: pos(2)}, Pos: pos(2)}
	assign := &ast.BinaryOp{
		Op:    ":=",
		Left:  &ast.Var{Name: "r", Pos: pos(2)},
		Right: &ast.BinaryOp{Op: "+", Left: deref, Right: &ast.Literal{Kind: ast.IntLit, Value: int64(1), Pos: pos(2)}, Pos: pos(2)},
		Pos:   pos(2),
	}

	mod := &ast.Module{
		Path: "main",
		Decls: []ast.Decl{
			refLet,
			&ast.LetDecl{Pattern: &ast.Var{Name: "_"}, Value: assign, Pos: pos(2)},
		},
	}

	out, diags := Module(mod)
	require.False(t, diags.HasErrors())

	refDecl := out.Decls[0].(*core.LetDecl)
	_, isRefNew := refDecl.Value.(*core.RefNew)
	assert.True(t, isRefNew, "ref(0) should lower to RefNew, got %T", refDecl.Value)

	assignDecl := out.Decls[1].(*core.LetDecl)
	binOp, ok := assignDecl.Value.(*core.BinOp)
	require.True(t, ok)
	assert.Equal(t, core.RefAssign, binOp.Op)

	plus, ok := binOp.Right.(*core.BinOp)
	require.True(t, ok)
	unop, ok := plus.Left.(*core.UnOp)
	require.True(t, ok)
	assert.Equal(t, core.Deref, unop.Op)
}

func TestConcatAndDivideOperators(t *testing.T) {
	concat := &ast.BinaryOp{Op: "&", Left: &ast.Var{Name: "a"}, Right: &ast.Var{Name: "b"}, Pos: pos(1)}
	divide := &ast.BinaryOp{Op: "/", Left: &ast.Var{Name: "a"}, Right: &ast.Var{Name: "b"}, Pos: pos(1)}

	mod := &ast.Module{
		Path: "main",
		Decls: []ast.Decl{
			&ast.LetDecl{Pattern: &ast.Var{Name: "c"}, Value: concat, Pos: pos(1)},
			&ast.LetDecl{Pattern: &ast.Var{Name: "d"}, Value: divide, Pos: pos(1)},
		},
	}
	out, diags := Module(mod)
	require.False(t, diags.HasErrors())

	cOp := out.Decls[0].(*core.LetDecl).Value.(*core.BinOp)
	assert.Equal(t, core.Concat, cOp.Op)

	dOp := out.Decls[1].(*core.LetDecl).Value.(*core.BinOp)
	assert.Equal(t, core.IntDivide, dOp.Op, "surface / always lowers to the IntDivide placeholder; the checker specializes it")
}

func TestPipeAndComposeLowering(t *testing.T) {
	pipe := &ast.Pipe{Value: &ast.Var{Name: "x"}, Func: &ast.Var{Name: "f"}, Pos: pos(1)}
	compose := &ast.Compose{Forward: true, Left: &ast.Var{Name: "f"}, Right: &ast.Var{Name: "g"}, Pos: pos(1)}

	mod := &ast.Module{
		Path: "main",
		Decls: []ast.Decl{
			&ast.LetDecl{Pattern: &ast.Var{Name: "a"}, Value: pipe, Pos: pos(1)},
			&ast.LetDecl{Pattern: &ast.Var{Name: "b"}, Value: compose, Pos: pos(1)},
		},
	}
	out, diags := Module(mod)
	require.False(t, diags.HasErrors())

	pipeResult, ok := out.Decls[0].(*core.LetDecl).Value.(*core.App)
	require.True(t, ok)
	fn, ok := pipeResult.Func.(*core.Var)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name)

	composeResult, ok := out.Decls[1].(*core.LetDecl).Value.(*core.Lambda)
	require.True(t, ok)
	assert.NotEmpty(t, composeResult.Param.Name)
}

func TestLetRecGroupAndVariantDecl(t *testing.T) {
	mod := &ast.Module{
		Path: "main",
		Decls: []ast.Decl{
			&ast.LetRecGroupDecl{
				Bindings: []ast.LetBinding{
					{Name: "isEven", Value: &ast.Var{Name: "x"}, Pos: pos(1)},
					{Name: "isOdd", Value: &ast.Var{Name: "isEven"}, Pos: pos(2)},
				},
				Pos: pos(1),
			},
			&ast.TypeDecl{
				Name: "Option",
				Kind: ast.TypeDefVariant,
				Cases: []ast.VariantCase{
					{Name: "Some", Fields: []ast.TypeExpr{&ast.TypeVarExpr{Name: "t"}}},
					{Name: "None"},
				},
				Pos: pos(3),
			},
		},
	}
	out, diags := Module(mod)
	require.False(t, diags.HasErrors())

	group := out.Decls[0].(*core.LetRecGroupDecl)
	require.Len(t, group.Bindings, 2)
	ref, ok := group.Bindings[1].Value.(*core.Var)
	require.True(t, ok)
	assert.Equal(t, core.RefLocal, ref.Ref, "isEven referenced from isOdd's body resolves within the letrec group's own scope")

	td := out.Decls[1].(*core.TypeDecl)
	assert.Equal(t, core.TypeDeclVariant, td.Kind)
	require.Len(t, td.Constructors, 2)
	assert.Equal(t, "Some", td.Constructors[0].Name)
	assert.Equal(t, 1, td.Constructors[0].Arity)
	assert.Equal(t, 0, td.Constructors[1].Arity)
}

func TestMatchGuardHoistingFromNestedGuardPattern(t *testing.T) {
	// match x { | Some(n when n > 0) => n | _ => 0 }
	arm1 := ast.MatchArm{
		Pattern: &ast.VariantPattern{
			Constructor: "Some",
			Args: []ast.Pattern{
				&ast.GuardPattern{
					Inner: &ast.Var{Name: "n"},
					Cond:  &ast.BinaryOp{Op: ">", Left: &ast.Var{Name: "n", Pos: pos(1)}, Right: &ast.Literal{Kind: ast.IntLit, Value: int64(0), Pos: pos(1)}, Pos: pos(1)},
					Pos:   pos(1),
				},
			},
			Pos: pos(1),
		},
		Body: &ast.Var{Name: "n", Pos: pos(1)},
		Pos:  pos(1),
	}
	arm2 := ast.MatchArm{
		Pattern: &ast.WildcardPattern{Pos: pos(2)},
		Body:    &ast.Literal{Kind: ast.IntLit, Value: int64(0), Pos: pos(2)},
		Pos:     pos(2),
	}
	match := &ast.Match{Scrutinee: &ast.Var{Name: "x", Pos: pos(1)}, Arms: []ast.MatchArm{arm1, arm2}, Pos: pos(1)}

	mod := &ast.Module{
		Path: "main",
		Decls: []ast.Decl{
			&ast.LetDecl{Pattern: &ast.Var{Name: "r"}, Value: match, Pos: pos(1)},
		},
	}
	out, diags := Module(mod)
	require.False(t, diags.HasErrors())

	coreMatch := out.Decls[0].(*core.LetDecl).Value.(*core.Match)
	require.NotNil(t, coreMatch.Arms[0].Guard, "the nested guard pattern's condition must surface as the arm's guard")
	assert.Nil(t, coreMatch.Arms[1].Guard)
}

func TestImportBindingsResolveAsImported(t *testing.T) {
	mod := &ast.Module{
		Path: "main",
		Imports: []*ast.ImportDecl{
			{Source: "./util", Items: []ast.ImportItem{{Name: "helper"}}},
		},
		Decls: []ast.Decl{
			&ast.LetDecl{Pattern: &ast.Var{Name: "r"}, Value: &ast.Var{Name: "helper", Pos: pos(1)}, Pos: pos(1)},
		},
	}
	out, diags := Module(mod)
	require.False(t, diags.HasErrors())
	require.Len(t, out.Imports, 1)
	assert.Equal(t, "./util", out.Imports[0].Source)

	ref := out.Decls[0].(*core.LetDecl).Value.(*core.Var)
	assert.Equal(t, core.RefImported, ref.Ref)
}
