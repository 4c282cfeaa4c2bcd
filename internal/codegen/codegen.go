// Package codegen emits ES2020 source text for a type-checked Core IR
// module (§4.6). It never reports user-facing diagnostics of its own:
// anything that reaches codegen has already passed the resolver, the
// desugarer, and the type checker, so the only failure mode left is an
// internal-invariant violation (a plain Divide surviving, a variant
// referenced with the wrong arity), which panics with a *diag.InternalError
// for internal/compiler to recover at its boundary, mirroring how every
// other stage treats malformed Core IR (§5, §7).
//
// Responsibility is split into capability structs sharing one mutable
// ctx, replacing the dynamic-dispatch-via-inheritance shape the spec's
// design notes call out (§9): ExprEmitter emits values and operators,
// PatternEmitter emits match conditions and bindings, DeclEmitter emits
// top-level declarations, imports, and the runtime helper prelude.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vibefun/vibefun/internal/core"
)

// Generator holds the capability structs wired together for one
// module's emission; it carries no state across modules.
type Generator struct {
	ctx  *genCtx
	expr *ExprEmitter
	pat  *PatternEmitter
	decl *DeclEmitter
}

func newGenerator() *Generator {
	ctx := newCtx()
	pat := &PatternEmitter{ctx: ctx}
	expr := &ExprEmitter{ctx: ctx, pat: pat}
	decl := &DeclEmitter{ctx: ctx, x: expr}
	return &Generator{ctx: ctx, expr: expr, pat: pat, decl: decl}
}

// Generate renders mod's full ES2020 output per §4.6.1. It is the
// single entry point internal/compiler calls per module; any
// malformed-Core-IR invariant violation surfaces as a panic of
// *diag.InternalError, which the caller is responsible for recovering
// at its own package boundary, not here.
func Generate(mod *core.Module) string {
	g := newGenerator()

	// Populate externalRef and collect import groups before any
	// declaration or expression is emitted, since both depend on
	// knowing how an External binding's name resolves at every
	// reference site.
	groups := collectImports(g.ctx, mod)

	var body strings.Builder
	var exported []string
	for _, decl := range mod.Decls {
		text, names := g.decl.emitDecl(decl)
		if text != "" {
			body.WriteString(text)
			body.WriteString("\n")
		}
		exported = append(exported, names...)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "// Generated by vibefunc from %q. Do not edit.\n", mod.Path)

	for _, grp := range groups {
		for _, line := range grp.text() {
			out.WriteString(line)
			out.WriteString("\n")
		}
	}

	if g.ctx.needRef || g.ctx.needEq {
		out.WriteString("\n")
		if g.ctx.needRef {
			out.WriteString(refHelperText)
			out.WriteString("\n")
		}
		if g.ctx.needEq {
			out.WriteString(eqHelperText)
			out.WriteString("\n")
		}
	}

	if body.Len() > 0 {
		out.WriteString("\n")
		out.WriteString(body.String())
	}

	out.WriteString("\n")
	out.WriteString(exportListText(exported))
	out.WriteString("\n")
	return out.String()
}

// exportListText renders the single trailing export statement §4.6.1
// requires, in lexicographic order with duplicates collapsed -- a
// re-exported name can coincide with a directly exported one only if
// the resolver's own conflict check already rejected the module, so
// dedup here is a belt-and-braces safeguard, not load-bearing.
func exportListText(names []string) string {
	if len(names) == 0 {
		return "export {};"
	}
	seen := map[string]bool{}
	var uniq []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			uniq = append(uniq, n)
		}
	}
	sort.Strings(uniq)
	return "export { " + strings.Join(uniq, ", ") + " };"
}
