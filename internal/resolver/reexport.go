package resolver

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// checkStarReExportConflicts implements the §9 open-question default:
// two star re-exports (`export * from "./m"`) in the same module whose
// source modules have overlapping locally-exported name sets are
// reported as ImportConflictDuplicate at the re-exporting module. Only
// each source's own locally declared exports are considered (a star
// re-export is not itself expanded transitively through another star
// re-export), matching the spirit of the default policy without
// requiring a fixed point over re-export chains.
func checkStarReExportConflicts(diags *diag.Collector, in Inputs, resolveFrom func(from, importPath string) string) {
	for path, mod := range in.Modules {
		var stars []*ast.ReExportDecl
		for _, re := range reExportDecls(mod) {
			if re.Items == nil {
				stars = append(stars, re)
			}
		}
		if len(stars) < 2 {
			continue
		}
		seen := map[string]string{} // exported name -> source path that first exported it
		for _, re := range stars {
			srcPath := resolveFrom(path, re.Source)
			srcMod, ok := in.Modules[srcPath]
			if !ok {
				continue
			}
			for name := range exportedNames(srcMod) {
				if other, exists := seen[name]; exists && other != srcPath {
					diags.Errorf(diag.ImportConflictDuplicate, re.Pos,
						"%q is re-exported from both %q and %q", name, other, srcPath)
					continue
				}
				seen[name] = srcPath
			}
		}
	}
}

// exportedNames returns the set of names a module exports locally.
func exportedNames(mod *ast.Module) map[string]bool {
	names := map[string]bool{}
	for _, d := range mod.Decls {
		switch decl := d.(type) {
		case *ast.LetDecl:
			if decl.Exported {
				for _, n := range patternNames(decl.Pattern) {
					names[n] = true
				}
			}
		case *ast.LetRecGroupDecl:
			for _, b := range decl.Bindings {
				if b.Exported {
					names[b.Name] = true
				}
			}
		case *ast.TypeDecl:
			if decl.Exported {
				names[decl.Name] = true
			}
		case *ast.ExternalDecl:
			if decl.Exported {
				names[decl.Name] = true
			}
		}
	}
	return names
}
