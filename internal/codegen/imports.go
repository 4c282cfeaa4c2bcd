package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vibefun/vibefun/internal/core"
)

// formatImportPath applies §4.6.2's suffix rule: a relative or
// absolute path gets a `.js` suffix unless it already has one; a bare
// package name (`lodash`) or scoped package (`@scope/name`) passes
// through untouched, since only this module's own compiled output is
// ever addressed by a relative/absolute path.
func formatImportPath(path string) string {
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") || strings.HasPrefix(path, "/") {
		if strings.HasSuffix(path, ".js") {
			return path
		}
		return path + ".js"
	}
	return path
}

// namedImport is one `{ name as alias }` (or bare `{ name }`) slot in
// a value import from a single source.
type namedImport struct {
	name  string
	alias string // empty when no alias is needed
}

func (n namedImport) text() string {
	if n.alias == "" || n.alias == n.name {
		return n.name
	}
	return n.name + " as " + n.alias
}

// importGroup accumulates every named import and, for a dotted
// ExternalDecl, the namespace import, from a single source module, so
// duplicate {name, alias} pairs collapse to one slot (§4.6.2).
type importGroup struct {
	source    string
	named     []namedImport
	seen      map[string]bool
	namespace string // local name for `import * as ns from source`, empty if unused
}

func newImportGroup(source string) *importGroup {
	return &importGroup{source: source, seen: map[string]bool{}}
}

func (g *importGroup) addNamed(name, alias string) {
	key := name + "\x00" + alias
	if g.seen[key] {
		return
	}
	g.seen[key] = true
	g.named = append(g.named, namedImport{name: name, alias: alias})
}

// collectImports walks every value-producing import surface --
// ImportDecl, ReExportDecl, and `from`-qualified ExternalDecl -- in
// module order, grouping contributions by source path, and populates
// ctx.externalRef for every ExternalDecl so declaration emission never
// has to re-derive how an external name resolves (§4.6.2, §9 open
// question on dotted external names).
func collectImports(ctx *genCtx, mod *core.Module) []*importGroup {
	groups := map[string]*importGroup{}
	var order []string
	groupFor := func(source string) *importGroup {
		g, ok := groups[source]
		if !ok {
			g = newImportGroup(source)
			groups[source] = g
			order = append(order, source)
		}
		return g
	}

	for _, imp := range mod.Imports {
		g := groupFor(imp.Source)
		for _, item := range imp.Items {
			g.addNamed(item.Name, item.Local)
		}
	}

	for _, decl := range mod.Decls {
		switch d := decl.(type) {
		case *core.ReExportDecl:
			g := groupFor(d.Source)
			for _, item := range d.Items {
				g.addNamed(item.Name, localName(item))
			}

		case *core.ExternalDecl:
			vfName := escapeIdent(d.Name)
			if d.Source == "" {
				ctx.externalRef[d.Name] = d.JSName
				continue
			}
			if dot := strings.IndexByte(d.JSName, '.'); dot >= 0 {
				head := d.JSName[:dot]
				g := groupFor(d.Source)
				if g.namespace == "" {
					g.namespace = head
				}
				ctx.externalRef[d.Name] = d.JSName
			} else {
				g := groupFor(d.Source)
				g.addNamed(d.JSName, vfName)
				ctx.externalRef[d.Name] = vfName
			}
		}
	}

	sort.Strings(order)
	out := make([]*importGroup, len(order))
	for i, src := range order {
		out[i] = groups[src]
	}
	return out
}

// text renders one group's import statement(s): a namespace import
// first (when a dotted external needs one), then a single named
// import covering every other requested name, both addressing the
// same formatted path.
func (g *importGroup) text() []string {
	path := formatImportPath(g.source)
	var lines []string
	if g.namespace != "" {
		lines = append(lines, fmt.Sprintf("import * as %s from %q;", g.namespace, path))
	}
	if len(g.named) > 0 {
		parts := make([]string, len(g.named))
		for i, n := range g.named {
			parts[i] = n.text()
		}
		lines = append(lines, fmt.Sprintf("import { %s } from %q;", strings.Join(parts, ", "), path))
	}
	return lines
}
