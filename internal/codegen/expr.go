package codegen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

// Emission precedence levels, one per row of the canonical ES2020
// operator-precedence table that this code generator's output actually
// exercises (§4.6.5). Higher binds tighter. Nodes that the table always
// shows fully parenthesized (negative numbers, if-expressions, ref
// assignment) report precGroup: they are already a self-contained
// atomic unit and never need a context to add more parens.
const (
	precAssign         = 2
	precLogicalOr      = 4
	precLogicalAnd     = 5
	precEquality       = 9
	precRelational     = 10
	precAdditive       = 12
	precMultiplicative = 13
	precUnary          = 15
	precCall           = 18
	precMember         = 19
	precGroup          = 20
)

// ExprEmitter emits Core expressions as ES2020 text, threading an
// integer context precedence through every recursive call so a
// subexpression is parenthesized exactly when its own emission
// precedence is lower than its context requires (§4.6.5).
type ExprEmitter struct {
	ctx *genCtx
	pat *PatternEmitter
}

// emit renders e and parenthesizes it if its precedence is lower than
// minPrec, the minimum precedence its context can accept unparenthesized.
func (x *ExprEmitter) emit(e core.Expr, minPrec int) string {
	text, prec := x.emitRaw(e)
	if prec < minPrec {
		return "(" + text + ")"
	}
	return text
}

func (x *ExprEmitter) emitRaw(e core.Expr) (string, int) {
	switch ex := e.(type) {
	case *core.Lit:
		return x.emitLit(ex)
	case *core.Var:
		return x.emitVar(ex)
	case *core.Lambda:
		return x.emitLambda(ex)
	case *core.App:
		return x.emitApp(ex)
	case *core.Let:
		return x.emitLet(ex)
	case *core.LetRecGroup:
		return x.emitLetRecGroup(ex)
	case *core.If:
		return x.emitIf(ex)
	case *core.Match:
		return x.pat.compileMatch(x, ex), precCall
	case *core.BinOp:
		return x.emitBinOp(ex)
	case *core.UnOp:
		return x.emitUnOp(ex)
	case *core.Record:
		return x.emitRecord(ex)
	case *core.RecordAccess:
		return x.emit(ex.Record, precMember) + "." + ex.Field, precMember
	case *core.RecordUpdate:
		return x.emitRecordUpdate(ex)
	case *core.Tuple:
		return x.emitTuple(ex)
	case *core.List:
		return x.emitList(ex)
	case *core.VariantLit:
		return x.emitVariantLit(ex)
	case *core.RefNew:
		x.ctx.needRef = true
		return "{ $value: " + x.emit(ex.Value, precAssign) + " }", precGroup
	default:
		fail(diag.InternalMalformedCoreIR, e.Pos(), "codegen: unsupported core expression %T", e)
		return "", precGroup
	}
}

func (x *ExprEmitter) emitLit(l *core.Lit) (string, int) {
	switch l.Kind {
	case core.IntLit:
		n, _ := l.Value.(int64)
		if n < 0 {
			return fmt.Sprintf("(%d)", n), precGroup
		}
		return strconv.FormatInt(n, 10), precGroup
	case core.FloatLit:
		f, _ := l.Value.(float64)
		return formatFloatLit(f), precGroup
	case core.StringLit:
		s, _ := l.Value.(string)
		return formatStringLit(s), precGroup
	case core.BoolLit:
		b, _ := l.Value.(bool)
		if b {
			return "true", precGroup
		}
		return "false", precGroup
	default: // UnitLit
		return "undefined", precGroup
	}
}

// formatFloatLit applies §4.6.4's float rules: NaN and Infinity are
// always parenthesized (alongside negative literals generally, for the
// same unary-minus-ambiguity reason Int literals are), and a whole
// number gets a forced decimal point so the emitted literal still reads
// as a Float, not an Int, in the generated source.
func formatFloatLit(f float64) string {
	switch {
	case math.IsNaN(f):
		return "(NaN)"
	case math.IsInf(f, 1):
		return "(Infinity)"
	case math.IsInf(f, -1):
		return "(-Infinity)"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	if f < 0 {
		return "(" + s + ")"
	}
	return s
}

// formatStringLit applies §4.6.4's escaping rules for a double-quoted
// string literal: the JS-significant characters, plus U+2028/U+2029
// (legal inside a JS string but never emitted literally, since some
// consumers still choke on them in source text).
func formatStringLit(s string) string {
	const (
		lineSeparator      rune = 0x2028
		paragraphSeparator rune = 0x2029
	)
	var b strings.Builder
	b.WriteByte('"')
	runes := []rune(s)
	for i, r := range runes {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case lineSeparator:
			b.WriteString("\\u2028")
		case paragraphSeparator:
			b.WriteString("\\u2029")
		case 0:
			// \0 is ambiguous with an octal escape if the next
			// character is a digit; spell it out as \x00 then.
			if i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9' {
				b.WriteString(`\x00`)
			} else {
				b.WriteString(`\0`)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (x *ExprEmitter) emitVar(v *core.Var) (string, int) {
	if v.Ref == core.RefExternal {
		if js, ok := x.ctx.externalRef[v.Name]; ok {
			if strings.Contains(js, ".") {
				return js, precMember
			}
			return js, precGroup
		}
	}
	return escapeIdent(v.Name), precGroup
}

func (x *ExprEmitter) emitLambda(l *core.Lambda) (string, int) {
	body := x.emit(l.Body, precAssign)
	if strings.HasPrefix(body, "{") {
		body = "(" + body + ")"
	}
	return "(" + escapeIdent(l.Param.Name) + ") => " + body, precAssign
}

func (x *ExprEmitter) emitApp(a *core.App) (string, int) {
	fn := x.emit(a.Func, precCall)
	arg := x.emit(a.Arg, precAssign)
	return fn + "(" + arg + ")", precCall
}

// emitLet and emitLetRecGroup handle a Let/LetRecGroup surviving as a
// nested expression -- §3.3 places these at declaration level, but
// Core's grammar allows them as an expression's own subtree too (a
// block body). Compiled the same way a match is: as an IIFE, since JS
// has no expression-level `let`.
func (x *ExprEmitter) emitLet(l *core.Let) (string, int) {
	var b strings.Builder
	b.WriteString("(() => { ")
	b.WriteString(x.pat.emitLetBinding(x, l.Pattern, l.Value, l.Recursive))
	b.WriteString(" return ")
	b.WriteString(x.emit(l.Body, precAssign))
	b.WriteString("; })()")
	return b.String(), precCall
}

func (x *ExprEmitter) emitLetRecGroup(l *core.LetRecGroup) (string, int) {
	var b strings.Builder
	b.WriteString("(() => { ")
	b.WriteString(x.pat.emitLetRecGroupBindings(x, l.Bindings))
	b.WriteString(" return ")
	b.WriteString(x.emit(l.Body, precAssign))
	b.WriteString("; })()")
	return b.String(), precCall
}

func (x *ExprEmitter) emitIf(i *core.If) (string, int) {
	cond := x.emit(i.Cond, precLogicalOr)
	then := x.emit(i.Then, precAssign)
	els := x.emit(i.Else, precAssign)
	return "(" + cond + " ? " + then + " : " + els + ")", precGroup
}

func (x *ExprEmitter) emitBinOp(b *core.BinOp) (string, int) {
	switch b.Op {
	case core.Add:
		return x.leftAssoc(b.Left, b.Right, "+", precAdditive)
	case core.Sub:
		return x.leftAssoc(b.Left, b.Right, "-", precAdditive)
	case core.Concat:
		return x.leftAssoc(b.Left, b.Right, "+", precAdditive)
	case core.Mul:
		return x.leftAssoc(b.Left, b.Right, "*", precMultiplicative)
	case core.FloatDivide:
		return x.leftAssoc(b.Left, b.Right, "/", precMultiplicative)
	case core.IntDivide:
		left := x.emit(b.Left, precMultiplicative)
		right := x.emit(b.Right, precMultiplicative+1)
		return "Math.trunc(" + left + " / " + right + ")", precCall
	case core.Lt:
		return x.leftAssoc(b.Left, b.Right, "<", precRelational)
	case core.LtEq:
		return x.leftAssoc(b.Left, b.Right, "<=", precRelational)
	case core.Gt:
		return x.leftAssoc(b.Left, b.Right, ">", precRelational)
	case core.GtEq:
		return x.leftAssoc(b.Left, b.Right, ">=", precRelational)
	case core.And:
		return x.leftAssoc(b.Left, b.Right, "&&", precLogicalAnd)
	case core.Or:
		return x.leftAssoc(b.Left, b.Right, "||", precLogicalOr)
	case core.Eq:
		return x.emitEquality(b, false)
	case core.NotEq:
		return x.emitEquality(b, true)
	case core.RefAssign:
		left := x.emit(b.Left, precMember)
		right := x.emit(b.Right, precAssign)
		return "(" + left + ".$value = " + right + ", undefined)", precGroup
	default:
		fail(diag.InternalMalformedCoreIR, b.Pos(), "codegen: unsupported binary operator %s", b.Op)
		return "", precGroup
	}
}

func (x *ExprEmitter) leftAssoc(left, right core.Expr, op string, prec int) (string, int) {
	l := x.emit(left, prec)
	r := x.emit(right, prec+1)
	return l + " " + op + " " + r, prec
}

func (x *ExprEmitter) emitEquality(b *core.BinOp, negate bool) (string, int) {
	if isPrimitiveForEquality(b.Left) || isPrimitiveForEquality(b.Right) {
		op := "==="
		if negate {
			op = "!=="
		}
		return x.leftAssoc(b.Left, b.Right, op, precEquality)
	}
	x.ctx.needEq = true
	call := "$eq(" + x.emit(b.Left, precAssign) + ", " + x.emit(b.Right, precAssign) + ")"
	if negate {
		return "!" + call, precUnary
	}
	return call, precCall
}

func (x *ExprEmitter) emitUnOp(u *core.UnOp) (string, int) {
	switch u.Op {
	case core.Neg:
		operand := x.emit(u.Operand, precUnary)
		if strings.HasPrefix(operand, "-") {
			return "-(" + operand + ")", precUnary
		}
		return "-" + operand, precUnary
	case core.Not:
		return "!" + x.emit(u.Operand, precUnary), precUnary
	case core.Deref:
		return x.emit(u.Operand, precMember) + ".$value", precMember
	default:
		fail(diag.InternalMalformedCoreIR, u.Pos(), "codegen: unsupported unary operator")
		return "", precGroup
	}
}

func (x *ExprEmitter) emitRecord(r *core.Record) (string, int) {
	var parts []string
	if r.Spread != nil {
		parts = append(parts, "..."+x.emit(r.Spread, precAssign))
	}
	for _, f := range r.Fields {
		parts = append(parts, x.fieldText(f))
	}
	if len(parts) == 0 {
		return "{}", precGroup
	}
	return "{ " + strings.Join(parts, ", ") + " }", precGroup
}

func (x *ExprEmitter) emitRecordUpdate(r *core.RecordUpdate) (string, int) {
	parts := []string{"..." + x.emit(r.Base, precAssign)}
	for _, f := range r.Fields {
		parts = append(parts, x.fieldText(f))
	}
	return "{ " + strings.Join(parts, ", ") + " }", precGroup
}

// fieldText renders one record field, using key shorthand when the
// value is a reference to a local/imported variable of the same name
// (§4.6.4).
func (x *ExprEmitter) fieldText(f core.RecordField) string {
	if v, ok := f.Value.(*core.Var); ok && v.Ref != core.RefExternal && escapeIdent(v.Name) == f.Name {
		return f.Name
	}
	return f.Name + ": " + x.emit(f.Value, precAssign)
}

func (x *ExprEmitter) emitTuple(t *core.Tuple) (string, int) {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = x.emit(el, precAssign)
	}
	return "[" + strings.Join(parts, ", ") + "]", precGroup
}

func (x *ExprEmitter) emitList(l *core.List) (string, int) {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = x.emit(el, precAssign)
	}
	if l.Tail != nil {
		parts = append(parts, "..."+x.emit(l.Tail, precAssign))
	}
	return "[" + strings.Join(parts, ", ") + "]", precGroup
}

func (x *ExprEmitter) emitVariantLit(v *core.VariantLit) (string, int) {
	parts := []string{`$tag: "` + v.Constructor + `"`}
	for i, a := range v.Args {
		parts = append(parts, fmt.Sprintf("$%d: %s", i, x.emit(a, precAssign)))
	}
	return "{ " + strings.Join(parts, ", ") + " }", precGroup
}
