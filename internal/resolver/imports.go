package resolver

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// checkImportConflicts implements §4.1.2: two import items binding the
// same local name from different source modules are a hard error
// (VF5002); a local declaration reusing an imported name is a hard
// error (VF5003). A type-only and a value import of the same name
// from the *same* source merge silently (handled at the graph-edge
// level by Graph.AddEdge, not flagged here).
func checkImportConflicts(diags *diag.Collector, mod *ast.Module, resolve func(string) string) {
	bindings := extractImportBindings(mod, resolve)
	firstSource := map[string]string{}
	firstLoc := map[string]ast.Pos{}
	for _, b := range bindings {
		if src, seen := firstSource[b.LocalName]; seen {
			if src != b.SourcePath {
				diags.Errorf(diag.ImportConflictDuplicate, b.Loc,
					"%q is imported from both %q and %q", b.LocalName, src, b.SourcePath)
			}
			continue
		}
		firstSource[b.LocalName] = b.SourcePath
		firstLoc[b.LocalName] = b.Loc
	}

	for name, pos := range localDeclNames(mod) {
		if _, imported := firstSource[name]; imported {
			diags.Errorf(diag.ImportConflictShadowing, pos,
				"local declaration %q shadows an imported name", name)
		}
	}
}

// importBinding is one local name a module's imports introduce.
type importBinding struct {
	LocalName  string
	SourcePath string
	IsTypeOnly bool
	Loc        ast.Pos
}

// extractImportBindings walks every ImportDecl of mod and returns the
// local names it introduces, in declaration order (§4.1.2).
func extractImportBindings(mod *ast.Module, resolve func(importPath string) string) []importBinding {
	var out []importBinding
	for _, imp := range mod.Imports {
		source := resolve(imp.Source)
		for _, item := range imp.Items {
			out = append(out, importBinding{
				LocalName:  item.LocalName(),
				SourcePath: source,
				IsTypeOnly: imp.IsTypeOnly || item.IsType,
				Loc:        item.Pos,
			})
		}
	}
	return out
}

// localDeclNames returns every name a module declares locally (not
// imported), for shadowing detection (§4.1.2, VF5003).
func localDeclNames(mod *ast.Module) map[string]ast.Pos {
	names := map[string]ast.Pos{}
	for _, d := range mod.Decls {
		switch decl := d.(type) {
		case *ast.LetDecl:
			for _, n := range patternNames(decl.Pattern) {
				names[n] = decl.Pos
			}
		case *ast.LetRecGroupDecl:
			for _, b := range decl.Bindings {
				names[b.Name] = b.Pos
			}
		case *ast.TypeDecl:
			names[decl.Name] = decl.Pos
		case *ast.ExternalDecl:
			names[decl.Name] = decl.Pos
		case *ast.ExternalTypeDecl:
			names[decl.Name] = decl.Pos
		}
	}
	return names
}

// patternNames returns every variable name a (possibly compound)
// surface pattern binds.
func patternNames(p ast.Pattern) []string {
	switch pat := p.(type) {
	case *ast.Var:
		return []string{pat.Name}
	case *ast.VariantPattern:
		var names []string
		for _, e := range pat.Args {
			names = append(names, patternNames(e)...)
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
	case *ast.TypedPattern:
		return patternNames(pat.Inner)
	case *ast.GuardPattern:
		return patternNames(pat.Inner)
	default:
		return nil
	}
}
