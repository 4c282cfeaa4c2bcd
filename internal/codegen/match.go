package codegen

import (
	"fmt"
	"strings"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

// PatternEmitter compiles Core patterns into JS condition/binding text.
// Every pattern is matched against a scrutinee JS expression reached by
// a sequence of property accesses (a "path"), so nested patterns never
// need to bind an intermediate variable just to test a sub-structure.
type PatternEmitter struct {
	ctx  *genCtx
	wild wildcardNamer
}

// compileMatch lowers a Match into the always-an-IIFE shape §4.6.6
// prescribes: an exhaustiveness check has already run in the match
// analysis stage (§5), so codegen's only job is to translate arms into
// a linear if/else-if chain, falling through to a throw that should be
// unreachable on well-formed input.
func (x *PatternEmitter) compileMatch(e *ExprEmitter, m *core.Match) string {
	scrutName := "$m"
	var b strings.Builder
	b.WriteString("(() => { const " + scrutName + " = " + e.emit(m.Scrutinee, precAssign) + "; ")
	for _, arm := range m.Arms {
		cond, binds := x.patternTest(arm.Pattern, scrutName)
		b.WriteString("if (" + cond + ") { ")
		for _, bind := range binds {
			b.WriteString("const " + bind.name + " = " + bind.path + "; ")
		}
		if arm.Guard != nil {
			b.WriteString("if (" + e.emit(arm.Guard, precAssign) + ") { return " + e.emit(arm.Body, precAssign) + "; } ")
		} else {
			b.WriteString("return " + e.emit(arm.Body, precAssign) + "; ")
		}
		b.WriteString("} ")
	}
	b.WriteString(`throw new Error("non-exhaustive match"); })()`)
	return b.String()
}

// binding is one `const name = path;` statement a matched pattern
// introduces, emitted inside the arm's own `if` block so it only comes
// into scope once the pattern is known to have matched.
type binding struct {
	name string
	path string
}

// patternTest returns the boolean JS condition testing whether value
// (a JS expression reached by its own access path, already safe to
// repeat textually since every path is a chain of property reads on
// the original scrutinee, never a call) matches pat, plus the bindings
// the pattern introduces on success.
func (x *PatternEmitter) patternTest(pat core.Pattern, value string) (string, []binding) {
	switch p := pat.(type) {
	case *core.WildcardPattern:
		return "true", nil

	case *core.VarPattern:
		return "true", []binding{{name: escapeIdent(p.Name), path: value}}

	case *core.LitPattern:
		return x.litTest(p, value), nil

	case *core.VariantPattern:
		return x.variantTest(p, value)

	case *core.TuplePattern:
		return x.tupleTest(p, value)

	case *core.RecordPattern:
		return x.recordTest(p, value)

	case *core.ListPattern:
		return x.listTest(p, value)

	case *core.OrPattern:
		return x.orTest(p, value)

	default:
		fail(diag.InternalMalformedCoreIR, ast.Pos{}, "codegen: unsupported pattern %T", pat)
		return "false", nil
	}
}

func (x *PatternEmitter) litTest(p *core.LitPattern, value string) string {
	switch p.Kind {
	case core.IntLit:
		n, _ := p.Value.(int64)
		return fmt.Sprintf("%s === %d", value, n)
	case core.FloatLit:
		f, _ := p.Value.(float64)
		if f != f { // NaN
			return "Number.isNaN(" + value + ")"
		}
		return value + " === " + formatFloatLit(f)
	case core.StringLit:
		s, _ := p.Value.(string)
		return value + " === " + formatStringLit(s)
	case core.BoolLit:
		b, _ := p.Value.(bool)
		if b {
			return value + " === true"
		}
		return value + " === false"
	default: // UnitLit always matches -- Unit has one inhabitant.
		return "true"
	}
}

func (x *PatternEmitter) variantTest(p *core.VariantPattern, value string) (string, []binding) {
	conds := []string{value + ".$tag === " + fmt.Sprintf("%q", p.Constructor)}
	var binds []binding
	for i, sub := range p.Args {
		subPath := fmt.Sprintf("%s.$%d", value, i)
		c, b := x.patternTest(sub, subPath)
		if c != "true" {
			conds = append(conds, c)
		}
		binds = append(binds, b...)
	}
	return strings.Join(conds, " && "), binds
}

func (x *PatternEmitter) tupleTest(p *core.TuplePattern, value string) (string, []binding) {
	var conds []string
	var binds []binding
	for i, sub := range p.Elements {
		subPath := fmt.Sprintf("%s[%d]", value, i)
		c, b := x.patternTest(sub, subPath)
		if c != "true" {
			conds = append(conds, c)
		}
		binds = append(binds, b...)
	}
	if len(conds) == 0 {
		return "true", binds
	}
	return strings.Join(conds, " && "), binds
}

func (x *PatternEmitter) recordTest(p *core.RecordPattern, value string) (string, []binding) {
	var conds []string
	var binds []binding
	for _, f := range p.Fields {
		subPath := value + "." + f.Name
		c, b := x.patternTest(f.Pattern, subPath)
		if c != "true" {
			conds = append(conds, c)
		}
		binds = append(binds, b...)
	}
	if len(conds) == 0 {
		return "true", binds
	}
	return strings.Join(conds, " && "), binds
}

// listTest tests a fixed prefix of elements plus, when Rest is
// present, binds the remainder via `.slice(N)` (§4.6.6). A list
// pattern with no Rest additionally requires the exact length.
func (x *PatternEmitter) listTest(p *core.ListPattern, value string) (string, []binding) {
	n := len(p.Elements)
	var conds []string
	if p.Rest != nil {
		conds = append(conds, fmt.Sprintf("%s.length >= %d", value, n))
	} else {
		conds = append(conds, fmt.Sprintf("%s.length === %d", value, n))
	}
	var binds []binding
	for i, sub := range p.Elements {
		subPath := fmt.Sprintf("%s[%d]", value, i)
		c, b := x.patternTest(sub, subPath)
		if c != "true" {
			conds = append(conds, c)
		}
		binds = append(binds, b...)
	}
	if p.Rest != nil {
		restPath := fmt.Sprintf("%s.slice(%d)", value, n)
		c, b := x.patternTest(p.Rest, restPath)
		if c != "true" {
			conds = append(conds, c)
		}
		binds = append(binds, b...)
	}
	return strings.Join(conds, " && "), binds
}

// orTest compiles `p | q | ...` as a disjunction of each alternative's
// own condition. Per §4.6.6, bindings are taken from the first
// alternative only: the match analyzer (§5) has already rejected any
// or-pattern whose alternatives don't all bind the same names, so
// every alternative's binding paths agree up to which branch actually
// matched -- using the first alternative's paths is only safe because
// the condition that alternative tests is exactly what gates it.
func (x *PatternEmitter) orTest(p *core.OrPattern, value string) (string, []binding) {
	var conds []string
	var firstBinds []binding
	for i, alt := range p.Alternatives {
		c, b := x.patternTest(alt, value)
		conds = append(conds, "("+c+")")
		if i == 0 {
			firstBinds = b
		}
	}
	return strings.Join(conds, " || "), firstBinds
}

// emitLetBinding renders a `let` binding as JS statement text (§4.6.8):
// a plain `const` for an irrefutable variable or destructuring
// pattern, or the two-phase `let name; name = v;` form for a
// self-recursive binding, since `const` cannot be referenced from its
// own initializer the way a lambda body needs to reach `name`. Only a
// bare-name pattern can be marked recursive; the checker already
// restricts `rec` to that shape (types/checker.go's firstName).
func (x *PatternEmitter) emitLetBinding(e *ExprEmitter, pat core.Pattern, value core.Expr, recursive bool) string {
	if recursive {
		name := escapeIdent(pat.(*core.VarPattern).Name)
		return "let " + name + "; " + name + " = " + e.emit(value, precAssign) + ";"
	}
	return "const " + x.destructureText(pat) + " = " + e.emit(value, precAssign) + ";"
}

// emitLetRecGroupBindings renders a mutually recursive group as the
// two-phase form §4.6.8 prescribes: every name is declared with `let`
// up front so each binding's initializer can close over every other
// name in the group (including later ones and itself), then each is
// assigned in source order.
func (x *PatternEmitter) emitLetRecGroupBindings(e *ExprEmitter, bindings []core.RecBinding) string {
	names := make([]string, len(bindings))
	for i, rb := range bindings {
		names[i] = escapeIdent(rb.Name)
	}
	var b strings.Builder
	b.WriteString("let " + strings.Join(names, ", ") + "; ")
	for i, rb := range bindings {
		b.WriteString(names[i] + " = " + e.emit(rb.Value, precAssign) + "; ")
	}
	return b.String()
}

// destructureText renders an irrefutable pattern as JS destructuring
// syntax (§4.6.8): tuples become array patterns, records become object
// patterns with field-name shorthand when the binding name matches.
// Refutable pattern kinds (variant, literal, list, or-pattern) can
// never legally reach a `let` binding -- the checker's pattern-
// refutability pass rejects them before Core IR is built -- so hitting
// one here is a malformed-IR invariant violation.
func (x *PatternEmitter) destructureText(pat core.Pattern) string {
	switch p := pat.(type) {
	case *core.VarPattern:
		return escapeIdent(p.Name)
	case *core.WildcardPattern:
		return x.wild.next()
	case *core.TuplePattern:
		parts := make([]string, len(p.Elements))
		for i, el := range p.Elements {
			parts[i] = x.destructureText(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *core.RecordPattern:
		parts := make([]string, len(p.Fields))
		for i, f := range p.Fields {
			sub := x.destructureText(f.Pattern)
			if sub == f.Name {
				parts[i] = f.Name
			} else {
				parts[i] = f.Name + ": " + sub
			}
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		fail(diag.InternalMalformedCoreIR, ast.Pos{}, "codegen: refutable pattern %T in irrefutable position", pat)
		return ""
	}
}
