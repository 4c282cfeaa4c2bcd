package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/types"
)

func varE(name string) *core.Var { return &core.Var{Name: name} }

func intLit(n int64) *core.Lit { return &core.Lit{Kind: core.IntLit, Value: n} }

func checkDecls(t *testing.T, decls ...core.Decl) *types.Env {
	t.Helper()
	reg := types.NewRegistry()
	checker := types.NewChecker(reg)
	env := checker.CheckModule(&core.Module{Path: "main.vf", Decls: decls})
	require.False(t, checker.Diagnostics().HasErrors(), "unexpected errors: %v", checker.Diagnostics().Items())
	return env
}

// TestInferSimpleIntLet confirms a literal-valued let infers the base
// Int type, diffed structurally against the scheme's own rendering.
func TestInferSimpleIntLet(t *testing.T) {
	decl := &core.LetDecl{Pattern: &core.VarPattern{Name: "n"}, Value: intLit(1)}
	env := checkDecls(t, decl)

	scheme, ok := env.Lookup("n")
	require.True(t, ok)
	if diff := cmp.Diff("Int", scheme.String()); diff != "" {
		t.Errorf("scheme mismatch (-want +got):\n%s", diff)
	}
}

// TestInferIdentityIsGeneralized confirms a syntactic-value lambda
// generalizes to a polymorphic scheme usable at two different types.
func TestInferIdentityIsGeneralized(t *testing.T) {
	idDecl := &core.LetDecl{
		Pattern: &core.VarPattern{Name: "id"},
		Value:   &core.Lambda{Param: core.Param{Name: "x"}, Body: varE("x")},
	}
	nDecl := &core.LetDecl{
		Pattern: &core.VarPattern{Name: "n"},
		Value:   &core.App{Func: varE("id"), Arg: intLit(1)},
	}
	sDecl := &core.LetDecl{
		Pattern: &core.VarPattern{Name: "s"},
		Value:   &core.App{Func: varE("id"), Arg: &core.Lit{Kind: core.StringLit, Value: "hi"}},
	}

	env := checkDecls(t, idDecl, nDecl, sDecl)

	n, ok := env.Lookup("n")
	require.True(t, ok)
	s, ok := env.Lookup("s")
	require.True(t, ok)

	assert.Equal(t, "Int", n.String())
	assert.Equal(t, "String", s.String())
}

// TestInferCurriedAdditionType confirms a two-parameter curried
// lambda infers the expected (Int -> Int -> Int) arrow shape.
func TestInferCurriedAdditionType(t *testing.T) {
	body := &core.BinOp{Op: core.Add, Left: varE("x"), Right: varE("y")}
	addDecl := &core.LetDecl{
		Pattern: &core.VarPattern{Name: "add"},
		Value: &core.Lambda{
			Param: core.Param{Name: "x"},
			Body:  &core.Lambda{Param: core.Param{Name: "y"}, Body: body},
		},
	}

	env := checkDecls(t, addDecl)

	scheme, ok := env.Lookup("add")
	require.True(t, ok)
	if diff := cmp.Diff("Int -> Int -> Int", scheme.String()); diff != "" {
		t.Errorf("scheme mismatch (-want +got):\n%s", diff)
	}
}
