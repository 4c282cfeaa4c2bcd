package codegen

import (
	"fmt"
	"strings"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

// DeclEmitter renders top-level declarations and the runtime-helper
// prelude (§4.6.7, §4.6.8).
type DeclEmitter struct {
	ctx *genCtx
	x   *ExprEmitter
}

// refHelperText and eqHelperText are the two runtime helpers codegen
// can emit, conditionally, exactly once per module (§4.6.7).
const refHelperText = `const ref = ($value) => ({ $value });`

const eqHelperText = `function $eq(a, b) {
  if (a === b) return true;
  if (a === null || b === null || typeof a !== "object" || typeof b !== "object") return false;
  if ("$value" in a || "$value" in b) return false;
  if (Array.isArray(a) || Array.isArray(b)) {
    if (!Array.isArray(a) || !Array.isArray(b) || a.length !== b.length) return false;
    for (let i = 0; i < a.length; i++) {
      if (!$eq(a[i], b[i])) return false;
    }
    return true;
  }
  if (a.$tag !== undefined || b.$tag !== undefined) {
    if (a.$tag !== b.$tag) return false;
    for (const k of Object.keys(a)) {
      if (k === "$tag") continue;
      if (!$eq(a[k], b[k])) return false;
    }
    return true;
  }
  const aKeys = Object.keys(a).sort();
  const bKeys = Object.keys(b).sort();
  if (aKeys.length !== bKeys.length) return false;
  for (let i = 0; i < aKeys.length; i++) {
    if (aKeys[i] !== bKeys[i]) return false;
    if (!$eq(a[aKeys[i]], b[bKeys[i]])) return false;
  }
  return true;
}`

// emitDecl renders one top-level declaration and reports whether it
// introduces an exported name (and under what name), so the caller can
// build the trailing export list.
func (d *DeclEmitter) emitDecl(decl core.Decl) (text string, exported []string) {
	switch dd := decl.(type) {
	case *core.LetDecl:
		text = d.x.pat.emitLetBinding(d.x, dd.Pattern, dd.Value, dd.Recursive)
		if dd.Exported {
			exported = patternNames(dd.Pattern)
		}
		return text, exported

	case *core.LetRecGroupDecl:
		text = d.x.pat.emitLetRecGroupBindings(d.x, dd.Bindings)
		for _, b := range dd.Bindings {
			if dd.Exported[b.Name] {
				exported = append(exported, escapeIdent(b.Name))
			}
		}
		return text, exported

	case *core.TypeDecl:
		return d.emitTypeDecl(dd)

	case *core.ExternalDecl:
		return d.emitExternalDecl(dd)

	case *core.ExternalTypeDecl:
		return "", nil

	case *core.ReExportDecl:
		// Handled entirely by imports.go / the import-collection pass:
		// a re-export contributes an import of its source plus an
		// export-list entry per item, with no declaration text of its
		// own.
		var names []string
		for _, item := range dd.Items {
			names = append(names, escapeIdent(localName(item)))
		}
		return "", names

	default:
		fail(diag.InternalMalformedCoreIR, ast.Pos{}, "codegen: unsupported declaration %T", decl)
		return "", nil
	}
}

func localName(item core.ImportItem) string {
	if item.Local != "" {
		return item.Local
	}
	return item.Name
}

// patternNames returns a pattern's bound names as their escaped JS
// identifiers, for the trailing export list.
func patternNames(pat core.Pattern) []string {
	raw := core.PatternNames(pat)
	out := make([]string, len(raw))
	for i, n := range raw {
		out[i] = escapeIdent(n)
	}
	return out
}

// emitTypeDecl produces one `const` per variant constructor (§4.6.8):
// a frozen 0-ary literal, or a curried arrow chain building the
// `{ $tag, $0, ... }` representation for an n-ary one. Alias and
// record TypeDecls exist only for the checker's registry and produce
// no runtime output.
func (d *DeclEmitter) emitTypeDecl(td *core.TypeDecl) (string, []string) {
	if td.Kind != core.TypeDeclVariant {
		return "", nil
	}
	var b strings.Builder
	var exported []string
	for _, cs := range td.Constructors {
		name := escapeIdent(cs.Name)
		b.WriteString("const " + name + " = " + constructorBody(cs) + ";\n")
		if td.Exported {
			exported = append(exported, name)
		}
	}
	return strings.TrimSuffix(b.String(), "\n"), exported
}

func constructorBody(cs core.ConstructorSig) string {
	if cs.Arity == 0 {
		return fmt.Sprintf(`Object.freeze({ $tag: %q })`, cs.Name)
	}
	params := make([]string, cs.Arity)
	fields := []string{fmt.Sprintf(`$tag: %q`, cs.Name)}
	for i := 0; i < cs.Arity; i++ {
		p := fmt.Sprintf("a%d", i)
		params[i] = p
		fields = append(fields, fmt.Sprintf("$%d: %s", i, p))
	}
	body := "{ " + strings.Join(fields, ", ") + " }"
	// Curry: (a0) => (a1) => ... => { ... }
	expr := "(" + body + ")"
	for i := cs.Arity - 1; i >= 0; i-- {
		expr = "(" + params[i] + ") => " + expr
	}
	return expr
}

// emitExternalDecl binds a vibefun name to an external JS value
// (§4.6.8): no `const` is needed when the reference imports.go's
// collection pass recorded in ctx.externalRef is already the escaped
// vibefun name -- either a `from`-less jsName identical to it, or a
// plain (non-dotted) `from` import, which imports.go binds directly
// under the escaped name. A dotted `from` external (`Foo.bar`) and a
// `from`-less jsName that differs from the vibefun name get
// `const vfName = jsRef;`.
func (d *DeclEmitter) emitExternalDecl(ed *core.ExternalDecl) (string, []string) {
	vfName := escapeIdent(ed.Name)
	jsRef := d.ctx.externalRef[ed.Name]
	var exported []string
	if ed.Exported {
		exported = []string{vfName}
	}
	if vfName == jsRef {
		return "", exported
	}
	return "const " + vfName + " = " + jsRef + ";", exported
}
