package resolver_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/resolver"
)

func importDecl(source string, items ...ast.ImportItem) *ast.ImportDecl {
	return &ast.ImportDecl{Items: items, Source: source}
}

func module(path string, imports []*ast.ImportDecl) *ast.Module {
	return &ast.Module{Path: path, Imports: imports}
}

// TestResolveLinearOrder confirms a straightforward two-module chain
// resolves to exactly the dependency-first topological order, diffed
// structurally rather than compared field-by-field.
func TestResolveLinearOrder(t *testing.T) {
	a := module("./a", nil)
	b := module("./b", []*ast.ImportDecl{importDecl("./a", ast.ImportItem{Name: "x"})})

	in := resolver.Inputs{
		Modules:    map[string]*ast.Module{"./a": a, "./b": b},
		EntryPoint: "./b",
	}

	res, diags := resolver.Resolve(in)
	require.False(t, diags.HasErrors())
	require.NotNil(t, res)

	want := []string{"./a", "./b"}
	if diff := cmp.Diff(want, res.Order); diff != "" {
		t.Errorf("topological order mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, res.HadCycles)
}

// TestResolveGraphNodesMatchInputsRegardlessOfOrder confirms every
// input module lands in the graph exactly once, independent of map
// iteration order, by sorting the node list before a go-cmp diff.
func TestResolveGraphNodesMatchInputsRegardlessOfOrder(t *testing.T) {
	a := module("./a", nil)
	b := module("./b", []*ast.ImportDecl{importDecl("./a", ast.ImportItem{Name: "x"})})
	c := module("./c", []*ast.ImportDecl{importDecl("./b", ast.ImportItem{Name: "y"})})

	in := resolver.Inputs{
		Modules:    map[string]*ast.Module{"./a": a, "./b": b, "./c": c},
		EntryPoint: "./c",
	}

	res, diags := resolver.Resolve(in)
	require.False(t, diags.HasErrors())
	require.NotNil(t, res)

	got := append([]string(nil), res.Graph.Nodes()...)
	sort.Strings(got)
	want := []string{"./a", "./b", "./c"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("graph nodes mismatch (-want +got):\n%s", diff)
	}
}

// TestResolveSelfImportReportsError confirms a module importing
// itself is flagged, matching the self-import fixture scenario.
func TestResolveSelfImportReportsError(t *testing.T) {
	a := module("./a", []*ast.ImportDecl{importDecl("./a", ast.ImportItem{Name: "x"})})

	in := resolver.Inputs{
		Modules:    map[string]*ast.Module{"./a": a},
		EntryPoint: "./a",
	}

	_, diags := resolver.Resolve(in)
	require.True(t, diags.HasErrors())
}

// TestResolveCycleIsNotAnError confirms a two-module value cycle is
// reported (HadCycles) without being treated as a resolve-time error;
// whether it is promoted to an error-severity diagnostic elsewhere in
// the pipeline is internal/compiler's concern, not the resolver's.
func TestResolveCycleIsNotAnError(t *testing.T) {
	a := module("./a", []*ast.ImportDecl{importDecl("./b", ast.ImportItem{Name: "y"})})
	b := module("./b", []*ast.ImportDecl{importDecl("./a", ast.ImportItem{Name: "x"})})

	in := resolver.Inputs{
		Modules:    map[string]*ast.Module{"./a": a, "./b": b},
		EntryPoint: "./a",
	}

	res, diags := resolver.Resolve(in)
	require.NotNil(t, res)
	assert.True(t, res.HadCycles)
	assert.False(t, diags.HasErrors())
}
