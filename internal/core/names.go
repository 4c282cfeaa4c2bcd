package core

// PatternNames returns every name an irrefutable pattern binds, in
// left-to-right order, shared by the code generator and the compiler's
// cross-module export bookkeeping (ExportedNames) so the two never
// disagree on what a destructuring `let` introduces.
func PatternNames(p Pattern) []string {
	switch pp := p.(type) {
	case *VarPattern:
		return []string{pp.Name}
	case *WildcardPattern:
		return nil
	case *TuplePattern:
		var out []string
		for _, el := range pp.Elements {
			out = append(out, PatternNames(el)...)
		}
		return out
	case *RecordPattern:
		var out []string
		for _, f := range pp.Fields {
			out = append(out, PatternNames(f.Pattern)...)
		}
		return out
	default:
		return nil
	}
}

// ExportedNames returns the vibefun-level names mod exports, in
// declaration order: the set internal/compiler needs to build the
// starting environment for every module that imports mod, and to
// resolve a `export * from "mod"` re-export into a concrete item list
// (§9's deferred-to-internal/compiler design decision).
func ExportedNames(mod *Module) []string {
	var out []string
	for _, d := range mod.Decls {
		switch dd := d.(type) {
		case *LetDecl:
			if dd.Exported {
				out = append(out, PatternNames(dd.Pattern)...)
			}
		case *LetRecGroupDecl:
			for _, b := range dd.Bindings {
				if dd.Exported[b.Name] {
					out = append(out, b.Name)
				}
			}
		case *TypeDecl:
			if dd.Exported && dd.Kind == TypeDeclVariant {
				for _, cs := range dd.Constructors {
					out = append(out, cs.Name)
				}
			}
		case *ExternalDecl:
			if dd.Exported {
				out = append(out, dd.Name)
			}
		case *ReExportDecl:
			for _, item := range dd.Items {
				name := item.Local
				if name == "" {
					name = item.Name
				}
				out = append(out, name)
			}
		}
	}
	return out
}
