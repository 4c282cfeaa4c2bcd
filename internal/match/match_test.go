package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/types"
)

func optionRegistry() *types.Registry {
	reg := types.NewRegistry()
	t := types.NewVar(0)
	reg.DefineVariant("Option", []string{"t"}, []*types.Var{t}, []types.ConstructorInfo{
		{Name: "Some", TypeName: "Option", TypeParams: []string{"t"}, Fields: []types.Type{t}, Index: 0},
		{Name: "None", TypeName: "Option", TypeParams: []string{"t"}, Fields: nil, Index: 1},
	})
	return reg
}

func matchModule(m *core.Match) *core.Module {
	return &core.Module{
		Path: "main",
		Decls: []core.Decl{
			&core.LetDecl{Pattern: &core.VarPattern{Name: "r"}, Value: m},
		},
	}
}

func TestExhaustiveVariantMatchHasNoDiagnostics(t *testing.T) {
	m := &core.Match{
		Scrutinee: &core.Var{Name: "x"},
		Arms: []core.MatchArm{
			{Pattern: &core.VariantPattern{Constructor: "Some", Args: []core.Pattern{&core.VarPattern{Name: "v"}}}, Body: &core.Var{Name: "v"}},
			{Pattern: &core.VariantPattern{Constructor: "None"}, Body: &core.Lit{Kind: core.IntLit, Value: int64(0)}},
		},
	}
	diags := Check(optionRegistry(), matchModule(m))
	assert.Empty(t, diags.Items())
}

func TestNonExhaustiveVariantMatchReportsMissingConstructor(t *testing.T) {
	m := &core.Match{
		Scrutinee: &core.Var{Name: "x"},
		Arms: []core.MatchArm{
			{Pattern: &core.VariantPattern{Constructor: "Some", Args: []core.Pattern{&core.VarPattern{Name: "v"}}}, Body: &core.Var{Name: "v"}},
		},
	}
	diags := Check(optionRegistry(), matchModule(m))
	require.Len(t, diags.Items(), 1)
	assert.Equal(t, "VF2001", diags.Items()[0].Code)
}

func TestUnreachableArmAfterWildcardIsReported(t *testing.T) {
	m := &core.Match{
		Scrutinee: &core.Var{Name: "x"},
		Arms: []core.MatchArm{
			{Pattern: &core.WildcardPattern{}, Body: &core.Lit{Kind: core.IntLit, Value: int64(0)}},
			{Pattern: &core.VariantPattern{Constructor: "None"}, Body: &core.Lit{Kind: core.IntLit, Value: int64(1)}},
		},
	}
	diags := Check(optionRegistry(), matchModule(m))
	require.Len(t, diags.Items(), 1)
	assert.Equal(t, "VF2002", diags.Items()[0].Code)
}

func TestGuardedArmDoesNotBlockReachabilityOrExhaustiveness(t *testing.T) {
	// A guarded wildcard arm never fully covers the type, so a later
	// unguarded wildcard is still reachable, and the match as a whole
	// still needs that later arm to be exhaustive.
	m := &core.Match{
		Scrutinee: &core.Var{Name: "x"},
		Arms: []core.MatchArm{
			{Pattern: &core.WildcardPattern{}, Guard: &core.Lit{Kind: core.BoolLit, Value: true}, Body: &core.Lit{Kind: core.IntLit, Value: int64(0)}},
			{Pattern: &core.WildcardPattern{}, Body: &core.Lit{Kind: core.IntLit, Value: int64(1)}},
		},
	}
	diags := Check(optionRegistry(), matchModule(m))
	assert.Empty(t, diags.Items())
}

func TestLiteralOnlyMatchNeedsWildcardToBeExhaustive(t *testing.T) {
	m := &core.Match{
		Scrutinee: &core.Var{Name: "n"},
		Arms: []core.MatchArm{
			{Pattern: &core.LitPattern{Kind: core.IntLit, Value: int64(0)}, Body: &core.Lit{Kind: core.IntLit, Value: int64(0)}},
			{Pattern: &core.LitPattern{Kind: core.IntLit, Value: int64(1)}, Body: &core.Lit{Kind: core.IntLit, Value: int64(1)}},
		},
	}
	diags := Check(types.NewRegistry(), matchModule(m))
	require.Len(t, diags.Items(), 1)
	assert.Equal(t, "VF2001", diags.Items()[0].Code)
}
