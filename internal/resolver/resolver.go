package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
	"golang.org/x/text/unicode/norm"
)

// Inputs is the loader interface the core consumes (§6.1). The core
// trusts that every import target in any Module is present as a key
// in Modules; it never touches a filesystem itself.
type Inputs struct {
	Modules    map[string]*ast.Module       // canonical path -> parsed module
	Resolved   map[string]map[string]string // module path -> import path -> resolved canonical path
	EntryPoint string
	Warnings   []diag.Diagnostic // pre-computed loader warnings, e.g. case-sensitivity (VF5901)
}

// Result is the resolver's pure output: the dependency graph and a
// deterministic compilation order.
type Result struct {
	Graph     *Graph
	Order     []string
	HadCycles bool
}

// Resolve builds the dependency graph over in.Modules, detects
// self-imports and conflicts, classifies cycles, and produces a
// deterministic topological order. It is total: it never panics on
// structurally valid input (§4.1.5).
func Resolve(in Inputs) (*Result, *diag.Collector) {
	diags := diag.NewCollector()
	g := NewGraph()

	paths := make([]string, 0, len(in.Modules))
	for p := range in.Modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	resolveFrom := func(fromPath, importPath string) string {
		if target, ok := in.Resolved[fromPath][importPath]; ok {
			return normalizePath(target)
		}
		return normalizePath(importPath)
	}

	for _, path := range paths {
		g.AddNode(normalizePath(path))
	}

	for _, path := range paths {
		mod := in.Modules[path]
		from := normalizePath(path)
		resolve := func(importPath string) string { return resolveFrom(path, importPath) }

		for _, imp := range mod.Imports {
			to := resolve(imp.Source)
			// A self-import is reported once, below, when Tarjan's pass
			// classifies the resulting one-node self-edge SCC.
			g.AddEdge(from, to, imp.IsTypeOnly, false, imp.Pos)
		}
		for _, re := range reExportDecls(mod) {
			to := resolve(re.Source)
			isTypeOnly := re.Items != nil && allTypeOnly(re.Items)
			g.AddEdge(from, to, isTypeOnly, true, re.Pos)
		}

		checkImportConflicts(diags, mod, resolve)
	}

	checkStarReExportConflicts(diags, in, resolveFrom)

	for _, comp := range tarjanSCC(g) {
		classifySCC(diags, g, comp)
	}

	topo := topologicalOrder(g)

	for _, w := range in.Warnings {
		diags.Add(w)
	}

	return &Result{Graph: g, Order: topo.Order, HadCycles: topo.HadCycles}, diags
}

// ResolveImportPath canonicalizes importPath as seen from fromPath the
// same way Resolve's own edge-building does, so a caller outside this
// package (internal/compiler, resolving a star re-export's concrete
// item list after Resolve has already run) can look up the same
// canonical node Resolve used to build its graph.
func ResolveImportPath(in Inputs, fromPath, importPath string) string {
	if target, ok := in.Resolved[fromPath][importPath]; ok {
		return normalizePath(target)
	}
	return normalizePath(importPath)
}

func reExportDecls(mod *ast.Module) []*ast.ReExportDecl {
	var out []*ast.ReExportDecl
	for _, d := range mod.Decls {
		if re, ok := d.(*ast.ReExportDecl); ok {
			out = append(out, re)
		}
	}
	return out
}

func classifySCC(diags *diag.Collector, g *Graph, comp scc) {
	if len(comp.nodes) == 1 {
		v := comp.nodes[0]
		if isSelfEdge(g, v) {
			e, _ := g.Edge(v, v)
			diags.Errorf(diag.SelfImport, e.ImportLoc, "module %s imports itself", v)
		}
		return
	}
	path := representativePath(g, comp.nodes)
	if pathIsTypeOnly(g, path) {
		return // type-only cycle: silent per §4.1.3
	}
	first := firstEdgeOnPath(g, path)
	diags.Add(diag.Diagnostic{
		Code:     diag.CircularDependency,
		Severity: diag.Warning,
		Primary:  first.ImportLoc,
		Message:  fmt.Sprintf("circular dependency: %s", renderCycle(path)),
	})
}

func firstEdgeOnPath(g *Graph, path []string) *Edge {
	from := path[0]
	to := path[1%len(path)]
	e, _ := g.Edge(from, to)
	return e
}

func renderCycle(path []string) string {
	parts := make([]string, 0, len(path)+1)
	for _, p := range path {
		parts = append(parts, shortName(p))
	}
	parts = append(parts, shortName(path[0]))
	return strings.Join(parts, " → ")
}

func shortName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func normalizePath(p string) string {
	return norm.NFC.String(p)
}

func allTypeOnly(items []ast.ImportItem) bool {
	for _, it := range items {
		if !it.IsType {
			return false
		}
	}
	return true
}
