package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibefun/vibefun/internal/core"
)

func lit(kind core.LitKind, v interface{}) *core.Lit {
	return &core.Lit{Kind: kind, Value: v}
}

func intLit(n int64) *core.Lit   { return lit(core.IntLit, n) }
func strLit(s string) *core.Lit  { return lit(core.StringLit, s) }
func varE(name string) *core.Var { return &core.Var{Name: name} }

func TestFormatFloatLit(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{3, "3.0"},
		{3.5, "3.5"},
		{-2, "(-2.0)"},
		{0, "0.0"},
	}
	for _, c := range cases {
		got := formatFloatLit(c.in)
		assert.Equal(t, c.want, got, "formatFloatLit(%v)", c.in)
	}
}

func TestFormatFloatLitSpecials(t *testing.T) {
	assert.Equal(t, "(NaN)", formatFloatLit(nan()))
	assert.Equal(t, "(Infinity)", formatFloatLit(inf(1)))
	assert.Equal(t, "(-Infinity)", formatFloatLit(inf(-1)))
}

func TestFormatStringLitEscaping(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hi", `"hi"`},
		{"a\"b", `"a\"b"`},
		{"a\\b", `"a\\b"`},
		{"a\nb", `"a\nb"`},
		{"a\tb", `"a\tb"`},
		{"a" + string(rune(0x2028)) + "b", `"a\u2028b"`},
		{"a" + string(rune(0x2029)) + "b", `"a\u2029b"`},
	}
	for _, c := range cases {
		got := formatStringLit(c.in)
		assert.Equal(t, c.want, got, "formatStringLit(%q)", c.in)
	}
}

func TestFormatStringLitNullByte(t *testing.T) {
	assert.Equal(t, `"a\0b"`, formatStringLit("a\x00b"))
	assert.Equal(t, `"a\x001b"`, formatStringLit("a\x001b"))
}

func TestEscapeIdentReserved(t *testing.T) {
	assert.Equal(t, "class$", escapeIdent("class"))
	assert.Equal(t, "x", escapeIdent("x"))
}

// TestGenerateCurriedAddition exercises curried Lambda/App nesting and
// the trailing export list, mirroring the curried-arithmetic scenario.
func TestGenerateCurriedAddition(t *testing.T) {
	addBody := &core.BinOp{Op: core.Add, Left: varE("x"), Right: varE("y")}
	addLambda := &core.Lambda{Param: core.Param{Name: "x"}, Body: &core.Lambda{Param: core.Param{Name: "y"}, Body: addBody}}
	addDecl := &core.LetDecl{Pattern: &core.VarPattern{Name: "add"}, Value: addLambda}

	curried := &core.App{Func: &core.App{Func: varE("add"), Arg: intLit(1)}, Arg: intLit(2)}
	rDecl := &core.LetDecl{Pattern: &core.VarPattern{Name: "r"}, Value: curried, Exported: true}

	mod := &core.Module{Path: "main.vf", Decls: []core.Decl{addDecl, rDecl}}

	out := Generate(mod)
	assert.Contains(t, out, "const add = (x) => (y) => x + y;")
	assert.Contains(t, out, "const r = add(1)(2);")
	assert.Contains(t, out, "export { r };")
}

// TestGenerateMatchOnOption exercises variant constructor emission and
// match-to-IIFE compilation for a one-field and a zero-field case.
func TestGenerateMatchOnOption(t *testing.T) {
	optionType := &core.TypeDecl{
		Name: "Option",
		Kind: core.TypeDeclVariant,
		Constructors: []core.ConstructorSig{
			{Name: "Some", Arity: 1},
			{Name: "None", Arity: 0},
		},
	}

	getOrBody := &core.Match{
		Scrutinee: varE("o"),
		Arms: []core.MatchArm{
			{Pattern: &core.VariantPattern{Constructor: "Some", Args: []core.Pattern{&core.VarPattern{Name: "x"}}}, Body: varE("x")},
			{Pattern: &core.VariantPattern{Constructor: "None"}, Body: varE("d")},
		},
	}
	getOrLambda := &core.Lambda{Param: core.Param{Name: "o"}, Body: &core.Lambda{Param: core.Param{Name: "d"}, Body: getOrBody}}
	getOrDecl := &core.LetDecl{Pattern: &core.VarPattern{Name: "getOr"}, Value: getOrLambda}

	mod := &core.Module{Path: "main.vf", Decls: []core.Decl{optionType, getOrDecl}}

	out := Generate(mod)
	assert.Contains(t, out, `const Some = (a0) => ({ $tag: "Some", $0: a0 });`)
	assert.Contains(t, out, `const None = Object.freeze({ $tag: "None" });`)
	assert.Contains(t, out, `$tag === "Some"`)
	assert.Contains(t, out, "const x = $m.$0;")
	assert.Contains(t, out, "non-exhaustive match")
	assert.Contains(t, out, "export {};")
}

// TestGenerateLetRecGroupTwoPhase confirms the two-phase `let
// n1, n2; n1 = v1; n2 = v2;` emission for mutually recursive bindings.
func TestGenerateLetRecGroupTwoPhase(t *testing.T) {
	isEvenBody := &core.If{
		Cond: &core.BinOp{Op: core.Eq, Left: varE("n"), Right: intLit(0)},
		Then: &core.Lit{Kind: core.BoolLit, Value: true},
		Else: &core.App{Func: varE("isOdd"), Arg: &core.BinOp{Op: core.Sub, Left: varE("n"), Right: intLit(1)}},
	}
	isOddBody := &core.If{
		Cond: &core.BinOp{Op: core.Eq, Left: varE("n"), Right: intLit(0)},
		Then: &core.Lit{Kind: core.BoolLit, Value: false},
		Else: &core.App{Func: varE("isEven"), Arg: &core.BinOp{Op: core.Sub, Left: varE("n"), Right: intLit(1)}},
	}
	group := &core.LetRecGroupDecl{
		Bindings: []core.RecBinding{
			{Name: "isEven", Value: &core.Lambda{Param: core.Param{Name: "n"}, Body: isEvenBody}},
			{Name: "isOdd", Value: &core.Lambda{Param: core.Param{Name: "n"}, Body: isOddBody}},
		},
		Exported: map[string]bool{"isEven": true},
	}

	mod := &core.Module{Path: "main.vf", Decls: []core.Decl{group}}

	out := Generate(mod)
	assert.Contains(t, out, "let isEven, isOdd;")
	idxIsEven := strings.Index(out, "isEven = ")
	idxIsOdd := strings.Index(out, "isOdd = ")
	require.GreaterOrEqual(t, idxIsEven, 0)
	require.GreaterOrEqual(t, idxIsOdd, 0)
	assert.Less(t, idxIsEven, idxIsOdd, "bindings must assign in source order")
	assert.Contains(t, out, "export { isEven };")
}

// TestGenerateDestructuringLet confirms real JS destructuring syntax
// (not path-based const extraction) for a tuple-pattern let.
func TestGenerateDestructuringLet(t *testing.T) {
	pair := &core.Tuple{Elements: []core.Expr{intLit(1), intLit(2)}}
	decl := &core.LetDecl{
		Pattern: &core.TuplePattern{Elements: []core.Pattern{&core.VarPattern{Name: "a"}, &core.VarPattern{Name: "b"}}},
		Value:   pair,
	}
	mod := &core.Module{Path: "main.vf", Decls: []core.Decl{decl}}

	out := Generate(mod)
	assert.Contains(t, out, "const [a, b] = [1, 2];")
}

// TestGenerateRefAndEqHelpersConditional confirms the ref/$eq runtime
// helpers are only emitted when a module actually uses them.
func TestGenerateRefAndEqHelpersConditional(t *testing.T) {
	plain := &core.Module{Path: "main.vf", Decls: []core.Decl{
		&core.LetDecl{Pattern: &core.VarPattern{Name: "n"}, Value: intLit(1)},
	}}
	out := Generate(plain)
	assert.NotContains(t, out, "const ref =")
	assert.NotContains(t, out, "function $eq")

	withRef := &core.Module{Path: "main.vf", Decls: []core.Decl{
		&core.LetDecl{Pattern: &core.VarPattern{Name: "r"}, Value: &core.RefNew{Value: intLit(1)}},
	}}
	out = Generate(withRef)
	assert.Contains(t, out, "const ref = ($value) => ({ $value });")

	withEq := &core.Module{Path: "main.vf", Decls: []core.Decl{
		&core.LetDecl{Pattern: &core.VarPattern{Name: "b"}, Value: &core.BinOp{Op: core.Eq, Left: &core.Record{}, Right: &core.Record{}}},
	}}
	out = Generate(withEq)
	assert.Contains(t, out, "function $eq(a, b)")
}

func TestGenerateHeaderComment(t *testing.T) {
	mod := &core.Module{Path: "main.vf", Decls: []core.Decl{
		&core.LetDecl{Pattern: &core.VarPattern{Name: "n"}, Value: intLit(1)},
	}}
	out := Generate(mod)
	assert.True(t, strings.HasPrefix(out, `// Generated by vibefunc from "main.vf". Do not edit.`))
}

func nan() float64 { var z float64; return z / z }

func inf(sign int) float64 {
	var z float64
	if sign < 0 {
		return -1 / z
	}
	return 1 / z
}
