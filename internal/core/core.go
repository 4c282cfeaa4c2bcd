// Package core defines the Core IR: the normal form produced by the
// desugarer and consumed by the type checker, pattern match analyzer,
// and code generator. Every Core node still mirrors a single surface
// construct (unlike an ANF lowering); what Core guarantees is the set
// of simplifications listed in spec §3.3: single-argument curried
// functions, a unified LetRecGroup, ref cells reduced to a handful of
// primitive operations, and specialized Concat/IntDivide/FloatDivide
// operators in place of surface `&` and `/`.
package core

import (
	"fmt"

	"github.com/vibefun/vibefun/internal/ast"
)

// Node is embedded in every Core node to carry identity and the
// surface location it was lowered from, for diagnostics that must
// point back at source the user wrote.
type Node struct {
	NodeID   uint64
	Origin   ast.Pos
	declType interface{} // types.Type, set by the checker; opaque here to avoid an import cycle
}

func (n *Node) ID() uint64   { return n.NodeID }
func (n *Node) Pos() ast.Pos { return n.Origin }

// SetType and Type let the checker annotate every node in place
// (§4.5) without this package importing internal/types.
func (n *Node) SetType(t interface{}) { n.declType = t }
func (n *Node) Type() interface{}     { return n.declType }

// Expr is the interface implemented by every Core expression node.
// SetType/Type are promoted from the embedded Node and let the
// checker annotate any node without a type switch.
type Expr interface {
	ID() uint64
	Pos() ast.Pos
	String() string
	SetType(interface{})
	Type() interface{}
	coreExpr()
}

// LitKind distinguishes literal kinds carried by Lit.
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	BoolLit
	UnitLit
)

// Lit is a literal value.
type Lit struct {
	Node
	Kind  LitKind
	Value interface{}
}

func (l *Lit) coreExpr()      {}
func (l *Lit) String() string { return fmt.Sprintf("%v", l.Value) }

// RefKind distinguishes how a Var was resolved: a local binding, an
// imported name, or an External declaration. The code generator uses
// this to decide whether to emit the stored JS name verbatim.
type RefKind int

const (
	RefLocal RefKind = iota
	RefImported
	RefExternal
)

// Var is a variable reference, resolved by the checker to a stable
// declaration kind (§4.5).
type Var struct {
	Node
	Name string
	Ref  RefKind
}

func (v *Var) coreExpr()      {}
func (v *Var) String() string { return v.Name }

// Lambda is a single-parameter function value; multi-argument surface
// lambdas are curried into nested Lambdas by the desugarer.
type Lambda struct {
	Node
	Param Param
	Body  Expr
}

// Param is a lambda parameter, with an optional surface annotation
// preserved for the checker to unify against.
type Param struct {
	Name       string
	Annotation ast.TypeExpr // nil if the surface lambda left it unannotated
}

func (l *Lambda) coreExpr()      {}
func (l *Lambda) String() string { return fmt.Sprintf("(%s) => %s", l.Param.Name, l.Body) }

// App is single-argument application; multi-argument surface calls
// are curried into nested Apps by the desugarer.
type App struct {
	Node
	Func Expr
	Arg  Expr
}

func (a *App) coreExpr()      {}
func (a *App) String() string { return fmt.Sprintf("%s(%s)", a.Func, a.Arg) }

// Let is a single non-recursive binding.
type Let struct {
	Node
	Pattern   Pattern
	Value     Expr
	Body      Expr
	Recursive bool // a single self-recursive `let name = ...`, not a group
}

func (l *Let) coreExpr()      {}
func (l *Let) String() string { return fmt.Sprintf("let %s = %s in %s", l.Pattern, l.Value, l.Body) }

// RecBinding is one binding inside a LetRecGroup.
type RecBinding struct {
	Name  string
	Value Expr
}

// LetRecGroup is `let rec f = ... and g = ...` lowered to simultaneous
// bindings sharing one scope (§3.3).
type LetRecGroup struct {
	Node
	Bindings []RecBinding
	Body     Expr
}

func (l *LetRecGroup) coreExpr() {}
func (l *LetRecGroup) String() string {
	return fmt.Sprintf("let rec %d bindings in %s", len(l.Bindings), l.Body)
}

// If is a conditional expression.
type If struct {
	Node
	Cond Expr
	Then Expr
	Else Expr
}

func (i *If) coreExpr()      {}
func (i *If) String() string { return fmt.Sprintf("if %s then %s else %s", i.Cond, i.Then, i.Else) }

// MatchArm is one arm of a Match; arms are kept as-is through
// desugaring (§3.3) and compiled to decision code by the code
// generator, not here.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr // optional
	Body    Expr
}

// Match is pattern matching over a scrutinee.
type Match struct {
	Node
	Scrutinee Expr
	Arms      []MatchArm
}

func (m *Match) coreExpr() {}
func (m *Match) String() string {
	return fmt.Sprintf("match %s {%d arms}", m.Scrutinee, len(m.Arms))
}

// BinOpKind tags the small set of binary node kinds that survive
// desugaring with dedicated semantics rather than generic operator
// names, so the checker and code generator can switch on a closed set.
type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mul
	IntDivide
	FloatDivide
	Concat // `&` string concatenation, kept distinct from Add (§3.3)
	Eq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	And
	Or
	RefAssign // `r := v`, returns Unit
)

func (k BinOpKind) String() string {
	names := [...]string{"+", "-", "*", "intdiv", "fdiv", "&", "==", "!=", "<", "<=", ">", ">=", "&&", "||", ":="}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// BinOp is a binary operation. A plain "Divide" never exists in Core:
// the desugarer emits surface `/` as IntDivide, and the checker
// (types.resolveDivide) rewrites it to FloatDivide when either operand
// is known to be Float; otherwise it stays IntDivide.
type BinOp struct {
	Node
	Op    BinOpKind
	Left  Expr
	Right Expr
}

func (b *BinOp) coreExpr()      {}
func (b *BinOp) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }

// UnOpKind is the closed set of unary operations.
type UnOpKind int

const (
	Neg UnOpKind = iota
	Not
	Deref // `!r`
)

// UnOp is a unary operation.
type UnOp struct {
	Node
	Op      UnOpKind
	Operand Expr
}

func (u *UnOp) coreExpr()      {}
func (u *UnOp) String() string { return fmt.Sprintf("unop(%s)", u.Operand) }

// RecordField is one field of a Record construction.
type RecordField struct {
	Name  string
	Value Expr
}

// Record is record construction, with an optional spread base
// (`{ ...base, f: v }`); spread and explicit fields are kept separate
// so the code generator can preserve their written order (§4.6.4).
type Record struct {
	Node
	Spread Expr // optional
	Fields []RecordField
}

func (r *Record) coreExpr()      {}
func (r *Record) String() string { return fmt.Sprintf("{%d fields}", len(r.Fields)) }

// RecordAccess is `e.f`.
type RecordAccess struct {
	Node
	Record Expr
	Field  string
}

func (r *RecordAccess) coreExpr()      {}
func (r *RecordAccess) String() string { return fmt.Sprintf("%s.%s", r.Record, r.Field) }

// RecordUpdate is `{ ...base, f: v, ... }`.
type RecordUpdate struct {
	Node
	Base   Expr
	Fields []RecordField
}

func (r *RecordUpdate) coreExpr() {}
func (r *RecordUpdate) String() string {
	return fmt.Sprintf("{...%s, %d updates}", r.Base, len(r.Fields))
}

// Tuple is a fixed-length product value.
type Tuple struct {
	Node
	Elements []Expr
}

func (t *Tuple) coreExpr()      {}
func (t *Tuple) String() string { return fmt.Sprintf("(%d elems)", len(t.Elements)) }

// List is a list literal, with an optional tail spread `[a, ...rest]`.
type List struct {
	Node
	Elements []Expr
	Tail     Expr // optional
}

func (l *List) coreExpr()      {}
func (l *List) String() string { return fmt.Sprintf("[%d elems]", len(l.Elements)) }

// VariantLit constructs a variant value: a 0-ary constant or an
// n-ary application of a declared constructor.
type VariantLit struct {
	Node
	Constructor string
	Args        []Expr
}

func (v *VariantLit) coreExpr()      {}
func (v *VariantLit) String() string { return fmt.Sprintf("%s(%d args)", v.Constructor, len(v.Args)) }

// RefNew constructs a ref cell: the lowering of `ref(v)`.
type RefNew struct {
	Node
	Value Expr
}

func (r *RefNew) coreExpr()      {}
func (r *RefNew) String() string { return fmt.Sprintf("ref(%s)", r.Value) }

// Patterns. Core patterns mirror surface patterns (§3.2) minus the
// surface-only GuardPattern/TypedPattern wrappers: the desugarer
// flattens a GuardPattern onto MatchArm.Guard and drops a
// TypedPattern's annotation, since Core patterns carry no type.

// Pattern is the interface implemented by every Core pattern node.
type Pattern interface {
	String() string
	patternNode()
}

type WildcardPattern struct{}

func (w *WildcardPattern) patternNode()   {}
func (w *WildcardPattern) String() string { return "_" }

type VarPattern struct {
	Name string
}

func (v *VarPattern) patternNode()   {}
func (v *VarPattern) String() string { return v.Name }

type LitPattern struct {
	Kind  LitKind
	Value interface{}
}

func (l *LitPattern) patternNode()   {}
func (l *LitPattern) String() string { return fmt.Sprintf("%v", l.Value) }

type VariantPattern struct {
	Constructor string
	Args        []Pattern
}

func (v *VariantPattern) patternNode()   {}
func (v *VariantPattern) String() string { return fmt.Sprintf("%s(%d)", v.Constructor, len(v.Args)) }

type TuplePattern struct {
	Elements []Pattern
}

func (t *TuplePattern) patternNode()   {}
func (t *TuplePattern) String() string { return fmt.Sprintf("(%d elems)", len(t.Elements)) }

type FieldPattern struct {
	Name    string
	Pattern Pattern
}

type RecordPattern struct {
	Fields []FieldPattern
}

func (r *RecordPattern) patternNode()   {}
func (r *RecordPattern) String() string { return fmt.Sprintf("{%d fields}", len(r.Fields)) }

type ListPattern struct {
	Elements []Pattern
	Rest     Pattern // optional
}

func (l *ListPattern) patternNode()   {}
func (l *ListPattern) String() string { return fmt.Sprintf("[%d elems]", len(l.Elements)) }

// OrPattern is `p | q`; desugaring only flattens nested or-patterns,
// it never eliminates them, since the pattern-match analyzer and code
// generator both need to see every alternative.
type OrPattern struct {
	Alternatives []Pattern
}

func (o *OrPattern) patternNode()   {}
func (o *OrPattern) String() string { return fmt.Sprintf("(%d alts)", len(o.Alternatives)) }

// ImportItem is one value binding a Core import introduces. Type-only
// items are dropped by the desugarer before this list is built
// (§4.6.1): Core IR never has to ask whether an import was type-only.
type ImportItem struct {
	Name  string // name as exported by the source module
	Local string // local binding name in this module
}

// ImportDecl is the value-level residue of a surface `import { ... }
// from "source"` declaration, ready for the code generator to turn
// into an ES module import (§4.6.2).
type ImportDecl struct {
	Source string
	Items  []ImportItem
}

// Module is a Core IR module: one compiled source file.
type Module struct {
	Path    string
	Imports []*ImportDecl
	Decls   []Decl
}

// Decl is the interface implemented by every Core top-level
// declaration kind.
type Decl interface {
	declNode()
}

// LetDecl is a top-level binding.
type LetDecl struct {
	Node
	Pattern   Pattern
	Value     Expr
	Recursive bool
	Exported  bool
	Scheme    interface{} // *types.Scheme, set by the checker for value-restriction-eligible bindings
}

func (l *LetDecl) declNode() {}

// LetRecGroupDecl is a top-level mutually recursive group.
type LetRecGroupDecl struct {
	Node
	Bindings []RecBinding
	Exported map[string]bool // by binding name
	Schemes  map[string]interface{}
}

func (l *LetRecGroupDecl) declNode() {}

// ConstructorSig is one constructor of a declared variant type.
type ConstructorSig struct {
	Name   string
	Arity  int
	Fields []ast.TypeExpr // surface field types, in declaration order
}

// TypeDeclKind mirrors ast.TypeDefKind for the subset Core cares about.
type TypeDeclKind int

const (
	TypeDeclAlias TypeDeclKind = iota
	TypeDeclRecord
	TypeDeclVariant
)

// TypeDecl is a top-level type declaration. Only TypeDeclVariant
// produces runtime representation (§4.6.8); the others exist purely
// for the checker's nominal/record type registry.
type TypeDecl struct {
	Node
	Name         string
	TypeParams   []string
	Kind         TypeDeclKind
	Alias        ast.TypeExpr          // set iff Kind == TypeDeclAlias
	Fields       []ast.RecordField     // set iff Kind == TypeDeclRecord
	Constructors []ConstructorSig      // set iff Kind == TypeDeclVariant
	Exported     bool
}

func (t *TypeDecl) declNode() {}

// ExternalDecl binds a name to an external JS value.
type ExternalDecl struct {
	Node
	Name         string
	DeclaredType ast.TypeExpr
	JSName       string
	Source       string // optional
	Exported     bool
}

func (e *ExternalDecl) declNode() {}

// ExternalTypeDecl declares a type with no runtime representation.
type ExternalTypeDecl struct {
	Node
	Name     string
	Exported bool
}

func (e *ExternalTypeDecl) declNode() {}

// ReExportDecl is the value-level residue of `export { a, b } from
// "source"` or `export * from "source"`. Items is nil for a star
// re-export and a (possibly empty) slice for an explicit one, so the
// code generator can tell "re-export everything" apart from
// "re-export nothing because every named item was type-only" (§4.6.1).
type ReExportDecl struct {
	Node
	Source string
	Items  []ImportItem
}

func (r *ReExportDecl) declNode() {}

// IsAtomic reports whether an expression can be duplicated without
// observable effect. Nothing in the pipeline calls it: the code
// generator binds every match scrutinee to a temporary regardless
// (§4.6.6).
func IsAtomic(e Expr) bool {
	switch e.(type) {
	case *Var, *Lit:
		return true
	default:
		return false
	}
}
