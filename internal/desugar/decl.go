package desugar

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

func (d *Desugarer) desugarDecl(sc *refScope, decl ast.Decl) core.Decl {
	switch dd := decl.(type) {
	case *ast.LetDecl:
		return d.desugarLetDecl(sc, dd)

	case *ast.LetRecGroupDecl:
		return d.desugarLetRecGroupDecl(sc, dd)

	case *ast.TypeDecl:
		return d.desugarTypeDecl(dd)

	case *ast.ExternalDecl:
		return &core.ExternalDecl{
			Node:         d.node(dd.Pos),
			Name:         dd.Name,
			DeclaredType: dd.DeclaredType,
			JSName:       dd.JSName,
			Source:       dd.Source,
			Exported:     dd.Exported,
		}

	case *ast.ExternalTypeDecl:
		return &core.ExternalTypeDecl{
			Node:     d.node(dd.Pos),
			Name:     dd.Name,
			Exported: dd.Exported,
		}

	case *ast.ReExportDecl:
		return d.desugarReExportDecl(dd)

	default:
		d.diags.Errorf(diag.InvalidDesugar, decl.Position(), "unsupported top-level declaration %T", decl)
		return nil
	}
}

// let mut x = ref(e) carries no Core representation of its own:
// "mut" only licenses the surface syntax to write ref(e) on the
// right-hand side; the mutation itself is expressed entirely through
// the RefNew value and the RefAssign/Deref operators it's used with
// (§3.3), so the flag is simply not threaded into core.LetDecl.
func (d *Desugarer) desugarLetDecl(sc *refScope, ld *ast.LetDecl) *core.LetDecl {
	var guards []ast.Expr
	pat, bodyScope := d.desugarPattern(sc, ld.Pattern, &guards)
	if len(guards) > 0 {
		d.diags.Errorf(diag.InvalidDesugar, ld.Pos, "a let-binding pattern may not use a guard")
	}
	valueScope := sc
	if ld.Recursive {
		valueScope = bodyScope
	}
	return &core.LetDecl{
		Node:      d.node(ld.Pos),
		Pattern:   pat,
		Value:     d.desugarExpr(valueScope, ld.Value),
		Recursive: ld.Recursive,
		Exported:  ld.Exported,
	}
}

func (d *Desugarer) desugarLetRecGroupDecl(sc *refScope, lg *ast.LetRecGroupDecl) *core.LetRecGroupDecl {
	groupScope := sc
	for _, b := range lg.Bindings {
		groupScope = groupScope.extend(b.Name, core.RefLocal)
	}
	bindings := make([]core.RecBinding, len(lg.Bindings))
	exported := map[string]bool{}
	for i, b := range lg.Bindings {
		bindings[i] = core.RecBinding{Name: b.Name, Value: d.desugarExpr(groupScope, b.Value)}
		exported[b.Name] = b.Exported
	}
	return &core.LetRecGroupDecl{
		Node:     d.node(lg.Pos),
		Bindings: bindings,
		Exported: exported,
	}
}

func (d *Desugarer) desugarTypeDecl(td *ast.TypeDecl) *core.TypeDecl {
	out := &core.TypeDecl{
		Node:       d.node(td.Pos),
		Name:       td.Name,
		TypeParams: td.TypeParams,
		Exported:   td.Exported,
	}
	switch td.Kind {
	case ast.TypeDefAlias:
		out.Kind = core.TypeDeclAlias
		out.Alias = td.Alias
	case ast.TypeDefRecord:
		out.Kind = core.TypeDeclRecord
		out.Fields = td.Fields
	case ast.TypeDefVariant:
		out.Kind = core.TypeDeclVariant
		out.Constructors = make([]core.ConstructorSig, len(td.Cases))
		for i, c := range td.Cases {
			out.Constructors[i] = core.ConstructorSig{Name: c.Name, Arity: len(c.Fields), Fields: c.Fields}
		}
	}
	return out
}

func (d *Desugarer) desugarReExportDecl(re *ast.ReExportDecl) *core.ReExportDecl {
	out := &core.ReExportDecl{Node: d.node(re.Pos), Source: re.Source}
	if re.Items == nil {
		return out // `export * from "..."`: Items stays nil
	}
	items := []core.ImportItem{}
	for _, it := range re.Items {
		if it.IsType {
			continue
		}
		items = append(items, core.ImportItem{Name: it.Name, Local: it.LocalName()})
	}
	out.Items = items
	return out
}
