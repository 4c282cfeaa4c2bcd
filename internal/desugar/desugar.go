// Package desugar lowers a surface AST module to the Core IR consumed
// by the type checker and code generator (§4.2). Every rule is a
// structural rewrite applied bottom-up; nothing here looks at types,
// since type information does not exist yet at this stage (the one
// case that would want it, surface `/`, is deliberately left as a
// placeholder IntDivide for the checker to specialize).
package desugar

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

// Desugarer lowers one module at a time. It carries no state across
// modules: every field below is reset by New.
type Desugarer struct {
	diags   *diag.Collector
	nextID  uint64
	compose int // counter for >>/<< gensyms
}

// New returns a Desugarer ready to lower a single module.
func New() *Desugarer {
	return &Desugarer{diags: diag.NewCollector()}
}

// Module lowers mod to Core IR and returns any diagnostics raised
// along the way (today, only InvalidDesugar for surface shapes this
// package does not recognize; a conforming parser never produces
// those).
func Module(mod *ast.Module) (*core.Module, *diag.Collector) {
	d := New()
	return d.desugarModule(mod), d.diags
}

// Diagnostics returns every diagnostic collected while desugaring.
func (d *Desugarer) Diagnostics() *diag.Collector { return d.diags }

func (d *Desugarer) node(pos ast.Pos) core.Node {
	d.nextID++
	return core.Node{NodeID: d.nextID, Origin: pos}
}

func (d *Desugarer) gensym() string {
	d.compose++
	return synthName("compose", d.compose)
}

func synthName(tag string, n int) string {
	const digits = "0123456789"
	if n < 10 {
		return "$" + tag + string(digits[n])
	}
	// Composition chains this long are not realistic; fall back to a
	// wider encoding rather than colliding.
	suffix := make([]byte, 0, 4)
	for n > 0 {
		suffix = append([]byte{digits[n%10]}, suffix...)
		n /= 10
	}
	return "$" + tag + string(suffix)
}

func (d *Desugarer) desugarModule(mod *ast.Module) *core.Module {
	out := &core.Module{Path: mod.Path}
	sc := d.moduleScope(mod)

	for _, imp := range mod.Imports {
		if ci := desugarImportDecl(imp); ci != nil {
			out.Imports = append(out.Imports, ci)
		}
	}

	for _, decl := range mod.Decls {
		if cd := d.desugarDecl(sc, decl); cd != nil {
			out.Decls = append(out.Decls, cd)
		}
	}
	return out
}

// moduleScope builds the module-wide reference scope: every name
// bound by an import or a top-level declaration is classified once,
// up front, so forward references (a top-level binding used before
// its textual position) resolve the same way a later one would.
func (d *Desugarer) moduleScope(mod *ast.Module) *refScope {
	sc := (*refScope)(nil)
	for _, imp := range mod.Imports {
		for _, item := range imp.Items {
			if item.IsType {
				continue
			}
			sc = sc.extend(item.LocalName(), core.RefImported)
		}
	}
	for _, decl := range mod.Decls {
		switch dd := decl.(type) {
		case *ast.LetDecl:
			for _, name := range patternNames(dd.Pattern) {
				sc = sc.extend(name, core.RefLocal)
			}
		case *ast.LetRecGroupDecl:
			for _, b := range dd.Bindings {
				sc = sc.extend(b.Name, core.RefLocal)
			}
		case *ast.ExternalDecl:
			sc = sc.extend(dd.Name, core.RefExternal)
		}
	}
	return sc
}

func patternNames(p ast.Pattern) []string {
	switch pat := p.(type) {
	case *ast.Var:
		return []string{pat.Name}
	case *ast.WildcardPattern, *ast.Literal:
		return nil
	case *ast.VariantPattern:
		var names []string
		for _, a := range pat.Args {
			names = append(names, patternNames(a)...)
		}
		return names
	case *ast.TuplePattern:
		var names []string
		for _, e := range pat.Elements {
			names = append(names, patternNames(e)...)
		}
		return names
	case *ast.RecordPattern:
		var names []string
		for _, f := range pat.Fields {
			names = append(names, patternNames(f.Pattern)...)
		}
		return names
	case *ast.ListPattern:
		var names []string
		for _, e := range pat.Elements {
			names = append(names, patternNames(e)...)
		}
		if pat.Rest != nil {
			names = append(names, patternNames(pat.Rest)...)
		}
		return names
	case *ast.OrPattern:
		if len(pat.Alternatives) == 0 {
			return nil
		}
		return patternNames(pat.Alternatives[0])
	case *ast.GuardPattern:
		return patternNames(pat.Inner)
	case *ast.TypedPattern:
		return patternNames(pat.Inner)
	default:
		return nil
	}
}

// refScope is a persistent chain classifying every name visible at a
// point in the program as local, imported, or external, so the
// desugarer can set core.Var.Ref without the checker's help (§4.5
// asks for this on the *typed* Core IR, but the classification itself
// is purely lexical and is cheaper to do once, here).
type refScope struct {
	parent *refScope
	name   string
	kind   core.RefKind
}

func (s *refScope) extend(name string, kind core.RefKind) *refScope {
	return &refScope{parent: s, name: name, kind: kind}
}

func (s *refScope) lookup(name string) (core.RefKind, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.kind, true
		}
	}
	return core.RefLocal, false
}

func desugarImportDecl(imp *ast.ImportDecl) *core.ImportDecl {
	var items []core.ImportItem
	for _, it := range imp.Items {
		if it.IsType {
			continue
		}
		items = append(items, core.ImportItem{Name: it.Name, Local: it.LocalName()})
	}
	if len(items) == 0 {
		return nil
	}
	return &core.ImportDecl{Source: imp.Source, Items: items}
}
