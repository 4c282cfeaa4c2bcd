// Package ast defines the surface syntax tree consumed by the vibefun
// compiler core. The lexer and parser that produce these values live
// outside this module; this package only fixes the contract between
// them and the resolver/desugarer.
package ast

import (
	"fmt"
	"strings"
)

// Pos identifies a single point in a source file: a 1-based line,
// 1-based column, and absolute byte offset.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Pos) IsZero() bool { return p.File == "" && p.Line == 0 && p.Column == 0 }

// Location is the Location value shared by diagnostics and the data
// model; presently identical to Pos but kept distinct so AST nodes can
// evolve (ranges) without widening the diagnostics contract.
type Location = Pos

// Node is the base interface implemented by every AST value.
type Node interface {
	String() string
	Position() Pos
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a pattern node used in match arms, let-bindings, and
// lambda parameters.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is a surface type expression.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Decl is a top-level declaration (everything but imports).
type Decl interface {
	Node
	declNode()
}

// Module is the parsed form of a single source file.
type Module struct {
	Path    string // canonical identity, assigned by the loader
	Imports []*ImportDecl
	Decls   []Decl
	Pos     Pos
}

func (m *Module) Position() Pos { return m.Pos }
func (m *Module) String() string {
	return fmt.Sprintf("module %s (%d imports, %d decls)", m.Path, len(m.Imports), len(m.Decls))
}

// ImportItem is a single named import, e.g. `x` or `x as y` or `type T`.
type ImportItem struct {
	Name   string
	Alias  string // empty if unaliased
	IsType bool
	Pos    Pos
}

// LocalName is the name this item binds in the importing module.
func (it ImportItem) LocalName() string {
	if it.Alias != "" {
		return it.Alias
	}
	return it.Name
}

// ImportDecl is `import { a, b as c, type T } from "./path"`.
type ImportDecl struct {
	Items      []ImportItem
	Source     string
	IsTypeOnly bool // true iff every item is a type import
	Pos        Pos
}

func (i *ImportDecl) Position() Pos { return i.Pos }
func (i *ImportDecl) String() string {
	names := make([]string, len(i.Items))
	for idx, it := range i.Items {
		names[idx] = it.Name
	}
	return fmt.Sprintf("import {%s} from %q", strings.Join(names, ", "), i.Source)
}

// ReExportDecl is `export { a, b } from "./path"` or `export * from "./path"`.
type ReExportDecl struct {
	Items  []ImportItem // nil means `export *`
	Source string
	Pos    Pos
}

func (r *ReExportDecl) Position() Pos { return r.Pos }
func (r *ReExportDecl) String() string {
	if r.Items == nil {
		return fmt.Sprintf("export * from %q", r.Source)
	}
	return fmt.Sprintf("export {...} from %q", r.Source)
}
func (r *ReExportDecl) declNode() {}

// LetDecl is a top-level or block-local binding.
type LetDecl struct {
	Pattern    Pattern
	Value      Expr
	Mutable    bool
	Recursive  bool
	Exported   bool
	Annotation TypeExpr // optional
	Pos        Pos
}

func (l *LetDecl) Position() Pos { return l.Pos }
func (l *LetDecl) String() string {
	return fmt.Sprintf("let %s = %s", l.Pattern, l.Value)
}
func (l *LetDecl) declNode() {}

// LetBinding is one binding inside a LetRecGroup.
type LetBinding struct {
	Name       string
	Value      Expr
	Annotation TypeExpr
	Exported   bool
	Pos        Pos
}

// LetRecGroupDecl is `let rec f = ... and g = ...`.
type LetRecGroupDecl struct {
	Bindings []LetBinding
	Pos      Pos
}

func (l *LetRecGroupDecl) Position() Pos { return l.Pos }
func (l *LetRecGroupDecl) String() string {
	names := make([]string, len(l.Bindings))
	for i, b := range l.Bindings {
		names[i] = b.Name
	}
	return fmt.Sprintf("let rec %s", strings.Join(names, " and "))
}
func (l *LetRecGroupDecl) declNode() {}

// TypeDefKind distinguishes the three shapes a TypeDecl may take.
type TypeDefKind int

const (
	TypeDefAlias TypeDefKind = iota
	TypeDefRecord
	TypeDefVariant
)

// VariantCase is one constructor of a variant declaration.
type VariantCase struct {
	Name   string
	Fields []TypeExpr // empty for a 0-ary constructor
	Pos    Pos
}

// TypeDecl is `type Name<T, ...> = <alias | record | variant>`.
type TypeDecl struct {
	Name       string
	TypeParams []string
	Kind       TypeDefKind
	Alias      TypeExpr      // set iff Kind == TypeDefAlias
	Fields     []RecordField // set iff Kind == TypeDefRecord
	Cases      []VariantCase // set iff Kind == TypeDefVariant
	Exported   bool
	Pos        Pos
}

func (t *TypeDecl) Position() Pos { return t.Pos }
func (t *TypeDecl) String() string {
	return fmt.Sprintf("type %s", t.Name)
}
func (t *TypeDecl) declNode() {}

// RecordField names one field of a record type or literal.
type RecordField struct {
	Name string
	Type TypeExpr
	Pos  Pos
}

// ExternalDecl binds a name to a JS value, optionally imported from a
// module, with a declared vibefun type.
type ExternalDecl struct {
	Name         string
	DeclaredType TypeExpr
	JSName       string
	Source       string // optional "from" module
	Exported     bool
	Pos          Pos
}

func (e *ExternalDecl) Position() Pos { return e.Pos }
func (e *ExternalDecl) String() string {
	return fmt.Sprintf("external %s: %s = %q", e.Name, e.DeclaredType, e.JSName)
}
func (e *ExternalDecl) declNode() {}

// ExternalTypeDecl declares a type with no runtime representation.
type ExternalTypeDecl struct {
	Name     string
	Exported bool
	Pos      Pos
}

func (e *ExternalTypeDecl) Position() Pos { return e.Pos }
func (e *ExternalTypeDecl) String() string {
	return fmt.Sprintf("external type %s", e.Name)
}
func (e *ExternalTypeDecl) declNode() {}

// Expressions

type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
	UnitLit
)

type Literal struct {
	Kind  LiteralKind
	Value interface{}
	Pos   Pos
}

func (l *Literal) Position() Pos { return l.Pos }
func (l *Literal) String() string {
	if l.Kind == UnitLit {
		return "()"
	}
	return fmt.Sprintf("%v", l.Value)
}
func (l *Literal) exprNode()    {}
func (l *Literal) patternNode() {}

// Var is a variable reference.
type Var struct {
	Name string
	Pos  Pos
}

func (v *Var) Position() Pos   { return v.Pos }
func (v *Var) String() string  { return v.Name }
func (v *Var) exprNode()       {}
func (v *Var) patternNode()    {}

// App is `f(a1, ..., an)`.
type App struct {
	Func Expr
	Args []Expr
	Pos  Pos
}

func (a *App) Position() Pos { return a.Pos }
func (a *App) String() string {
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", a.Func, strings.Join(args, ", "))
}
func (a *App) exprNode() {}

// LambdaParam is one parameter of a Lambda.
type LambdaParam struct {
	Name       string
	Annotation TypeExpr // optional
	Pos        Pos
}

// Lambda is `(x1, ..., xn) => body`.
type Lambda struct {
	Params []LambdaParam
	Body   Expr
	Pos    Pos
}

func (l *Lambda) Position() Pos { return l.Pos }
func (l *Lambda) String() string {
	names := make([]string, len(l.Params))
	for i, p := range l.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(names, ", "), l.Body)
}
func (l *Lambda) exprNode() {}

// BinaryOp covers arithmetic, comparison, `&` concat, `|>`, `>>`, `<<`.
type BinaryOp struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   Pos
}

func (b *BinaryOp) Position() Pos { return b.Pos }
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}
func (b *BinaryOp) exprNode() {}

// UnaryOp covers `!`, `-`, `:=` is modeled as BinaryOp, dereference as UnaryOp "!".
type UnaryOp struct {
	Op      string
	Operand Expr
	Pos     Pos
}

func (u *UnaryOp) Position() Pos { return u.Pos }
func (u *UnaryOp) String() string {
	return fmt.Sprintf("%s%s", u.Op, u.Operand)
}
func (u *UnaryOp) exprNode() {}

// If is `if cond then a else b`.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	Pos  Pos
}

func (i *If) Position() Pos { return i.Pos }
func (i *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", i.Cond, i.Then, i.Else)
}
func (i *If) exprNode() {}

// MatchArm is one arm of a Match expression.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr // optional
	Body    Expr
	Pos     Pos
}

// Match is `match scrutinee with { arm* }`.
type Match struct {
	Scrutinee Expr
	Arms      []MatchArm
	Pos       Pos
}

func (m *Match) Position() Pos { return m.Pos }
func (m *Match) String() string {
	return fmt.Sprintf("match %s with {%d arms}", m.Scrutinee, len(m.Arms))
}
func (m *Match) exprNode() {}

// RecordFieldExpr is one `name: value` pair in a record literal or update.
type RecordFieldExpr struct {
	Name  string
	Value Expr
	Pos   Pos
}

// RecordLit is `{ field: expr, ... }` with an optional spread base.
type RecordLit struct {
	Spread Expr // optional `...base`
	Fields []RecordFieldExpr
	Pos    Pos
}

func (r *RecordLit) Position() Pos { return r.Pos }
func (r *RecordLit) String() string {
	fields := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Value)
	}
	return fmt.Sprintf("{ %s }", strings.Join(fields, ", "))
}
func (r *RecordLit) exprNode() {}

// RecordAccess is `e.f`.
type RecordAccess struct {
	Record Expr
	Field  string
	Pos    Pos
}

func (r *RecordAccess) Position() Pos  { return r.Pos }
func (r *RecordAccess) String() string { return fmt.Sprintf("%s.%s", r.Record, r.Field) }
func (r *RecordAccess) exprNode()      {}

// RecordUpdate is `{ base.field = value, ... }` sugar; semantically
// identical to a RecordLit with a spread base but kept distinct so the
// desugarer can choose emission order deterministically.
type RecordUpdate struct {
	Base   Expr
	Fields []RecordFieldExpr
	Pos    Pos
}

func (r *RecordUpdate) Position() Pos { return r.Pos }
func (r *RecordUpdate) String() string {
	return fmt.Sprintf("{ %s with ... }", r.Base)
}
func (r *RecordUpdate) exprNode() {}

// VariantLit is a constructor applied to arguments: `Some(x)`, `None`.
type VariantLit struct {
	Constructor string
	Args        []Expr
	Pos         Pos
}

func (v *VariantLit) Position() Pos { return v.Pos }
func (v *VariantLit) String() string {
	if len(v.Args) == 0 {
		return v.Constructor
	}
	args := make([]string, len(v.Args))
	for i, a := range v.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", v.Constructor, strings.Join(args, ", "))
}
func (v *VariantLit) exprNode() {}

// Tuple is `(e1, ..., en)` with n >= 2.
type Tuple struct {
	Elements []Expr
	Pos      Pos
}

func (t *Tuple) Position() Pos { return t.Pos }
func (t *Tuple) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}
func (t *Tuple) exprNode() {}

// ListLit is `[e1, ..., en]` or `[e1, ..., ...tail]`.
type ListLit struct {
	Elements []Expr
	Tail     Expr // optional `...tail` spread
	Pos      Pos
}

func (l *ListLit) Position() Pos { return l.Pos }
func (l *ListLit) String() string {
	elems := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
}
func (l *ListLit) exprNode() {}

// Block is `{ decl; ...; expr }`.
type Block struct {
	Decls  []Decl
	Result Expr
	Pos    Pos
}

func (b *Block) Position() Pos { return b.Pos }
func (b *Block) String() string {
	return fmt.Sprintf("{ %d decls; %s }", len(b.Decls), b.Result)
}
func (b *Block) exprNode() {}

// Compose is `f >> g` (forward) or `f << g` (backward).
type Compose struct {
	Forward bool
	Left    Expr
	Right   Expr
	Pos     Pos
}

func (c *Compose) Position() Pos { return c.Pos }
func (c *Compose) String() string {
	op := "<<"
	if c.Forward {
		op = ">>"
	}
	return fmt.Sprintf("(%s %s %s)", c.Left, op, c.Right)
}
func (c *Compose) exprNode() {}

// Pipe is `x |> f`.
type Pipe struct {
	Value Expr
	Func  Expr
	Pos   Pos
}

func (p *Pipe) Position() Pos  { return p.Pos }
func (p *Pipe) String() string { return fmt.Sprintf("(%s |> %s)", p.Value, p.Func) }
func (p *Pipe) exprNode()      {}

// TypeAnnotation is `(e : T)`.
type TypeAnnotation struct {
	Expr Expr
	Type TypeExpr
	Pos  Pos
}

func (t *TypeAnnotation) Position() Pos  { return t.Pos }
func (t *TypeAnnotation) String() string { return fmt.Sprintf("(%s : %s)", t.Expr, t.Type) }
func (t *TypeAnnotation) exprNode()      {}

// Patterns

type WildcardPattern struct{ Pos Pos }

func (w *WildcardPattern) Position() Pos  { return w.Pos }
func (w *WildcardPattern) String() string  { return "_" }
func (w *WildcardPattern) patternNode()    {}

type VariantPattern struct {
	Constructor string
	Args        []Pattern
	Pos         Pos
}

func (v *VariantPattern) Position() Pos { return v.Pos }
func (v *VariantPattern) String() string {
	if len(v.Args) == 0 {
		return v.Constructor
	}
	args := make([]string, len(v.Args))
	for i, a := range v.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", v.Constructor, strings.Join(args, ", "))
}
func (v *VariantPattern) patternNode() {}

type TuplePattern struct {
	Elements []Pattern
	Pos      Pos
}

func (t *TuplePattern) Position() Pos { return t.Pos }
func (t *TuplePattern) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}
func (t *TuplePattern) patternNode() {}

type FieldPattern struct {
	Name    string
	Pattern Pattern
	Pos     Pos
}

type RecordPattern struct {
	Fields []FieldPattern
	Pos    Pos
}

func (r *RecordPattern) Position() Pos { return r.Pos }
func (r *RecordPattern) String() string {
	fields := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Pattern)
	}
	return fmt.Sprintf("{ %s }", strings.Join(fields, ", "))
}
func (r *RecordPattern) patternNode() {}

type ListPattern struct {
	Elements []Pattern
	Rest     Pattern // optional
	Pos      Pos
}

func (l *ListPattern) Position() Pos { return l.Pos }
func (l *ListPattern) String() string {
	elems := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		elems[i] = e.String()
	}
	if l.Rest != nil {
		elems = append(elems, "..."+l.Rest.String())
	}
	return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
}
func (l *ListPattern) patternNode() {}

// OrPattern is `p | q`; alternatives must bind the same names.
type OrPattern struct {
	Alternatives []Pattern
	Pos          Pos
}

func (o *OrPattern) Position() Pos { return o.Pos }
func (o *OrPattern) String() string {
	alts := make([]string, len(o.Alternatives))
	for i, a := range o.Alternatives {
		alts[i] = a.String()
	}
	return strings.Join(alts, " | ")
}
func (o *OrPattern) patternNode() {}

// GuardPattern is `pat when expr`. The guard is also carried on
// MatchArm; GuardPattern lets a guard nest inside an or-pattern or
// constructor argument.
type GuardPattern struct {
	Inner Pattern
	Cond  Expr
	Pos   Pos
}

func (g *GuardPattern) Position() Pos  { return g.Pos }
func (g *GuardPattern) String() string { return fmt.Sprintf("%s when %s", g.Inner, g.Cond) }
func (g *GuardPattern) patternNode()   {}

// TypedPattern is `(pat : T)`.
type TypedPattern struct {
	Inner Pattern
	Type  TypeExpr
	Pos   Pos
}

func (t *TypedPattern) Position() Pos  { return t.Pos }
func (t *TypedPattern) String() string { return fmt.Sprintf("(%s : %s)", t.Inner, t.Type) }
func (t *TypedPattern) patternNode()   {}

// Type expressions

type TypeConst struct {
	Name string
	Pos  Pos
}

func (t *TypeConst) Position() Pos  { return t.Pos }
func (t *TypeConst) String() string { return t.Name }
func (t *TypeConst) typeExprNode()  {}

type TypeVarExpr struct {
	Name string
	Pos  Pos
}

func (t *TypeVarExpr) Position() Pos  { return t.Pos }
func (t *TypeVarExpr) String() string { return t.Name }
func (t *TypeVarExpr) typeExprNode()  {}

// TypeApp is `Name<T, ...>`.
type TypeApp struct {
	Name string
	Args []TypeExpr
	Pos  Pos
}

func (t *TypeApp) Position() Pos { return t.Pos }
func (t *TypeApp) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(args, ", "))
}
func (t *TypeApp) typeExprNode() {}

// TypeArrow is `(T, ...) -> U`.
type TypeArrow struct {
	Params []TypeExpr
	Return TypeExpr
	Pos    Pos
}

func (t *TypeArrow) Position() Pos { return t.Pos }
func (t *TypeArrow) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return)
}
func (t *TypeArrow) typeExprNode() {}

// TypeRecord is `{ field: T, ... }`.
type TypeRecord struct {
	Fields []RecordField
	Pos    Pos
}

func (t *TypeRecord) Position() Pos { return t.Pos }
func (t *TypeRecord) String() string {
	fields := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	return fmt.Sprintf("{ %s }", strings.Join(fields, ", "))
}
func (t *TypeRecord) typeExprNode() {}

// TypeTuple is `(T1, ..., Tn)`.
type TypeTuple struct {
	Elements []TypeExpr
	Pos      Pos
}

func (t *TypeTuple) Position() Pos { return t.Pos }
func (t *TypeTuple) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}
func (t *TypeTuple) typeExprNode() {}

// TypeUnion is a union of variant constructors written inline in a
// type position, e.g. `Red | Green | Blue` used as a type annotation
// shorthand for a previously declared variant's constructor set.
type TypeUnion struct {
	Constructors []string
	Pos          Pos
}

func (t *TypeUnion) Position() Pos  { return t.Pos }
func (t *TypeUnion) String() string { return strings.Join(t.Constructors, " | ") }
func (t *TypeUnion) typeExprNode()  {}
