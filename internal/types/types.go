// Package types implements the vibefun type system: Hindley-Milner
// types extended with width-subtyped records, nominal variants, and
// ref cells. The representation follows the classic mutable
// union-find style (Algorithm J): a type variable is a pointer to a
// cell that starts unbound and is destructively bound by the unifier.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is any member of the internal type language.
type Type interface {
	String() string
}

// Level is the rank attached to every unbound type variable. It never
// reaches user-facing output; it exists purely to decide, at
// generalization time, which variables were introduced inside the
// current let-binding (and so may be quantified) versus in an
// enclosing scope (and so must stay free).
type Level int

// Const is a base constant type: Int, Float, String, Bool, Unit.
type Const struct {
	Name string
}

func (c *Const) String() string { return c.Name }

var (
	Int    = &Const{Name: "Int"}
	Float  = &Const{Name: "Float"}
	String = &Const{Name: "String"}
	Bool   = &Const{Name: "Bool"}
	Unit   = &Const{Name: "Unit"}
)

// Var is a mutable type-variable cell. A fresh Var is unbound and
// carries the level of the inference context that created it. Once
// unified with a concrete type it is Bound and Link is non-nil;
// Prune follows the Link chain with path compression.
type Var struct {
	ID     int
	Level  Level
	Bound  bool
	Link   Type
	errVar bool // true for the error-recovery type variable: unifies with anything
}

func (v *Var) String() string {
	if v.Bound {
		return v.Link.String()
	}
	return fmt.Sprintf("t%d", v.ID)
}

// Func is a single-argument function type A -> B, matching the Core
// IR's fully curried functions. Multi-argument surface arrows are
// desugared into nested Funcs before type checking ever sees them.
type Func struct {
	Param  Type
	Return Type
}

func (f *Func) String() string {
	paramStr := f.Param.String()
	if _, ok := f.Param.(*Func); ok {
		paramStr = "(" + paramStr + ")"
	}
	return fmt.Sprintf("%s -> %s", paramStr, f.Return.String())
}

// Tuple is a fixed-length product type.
type Tuple struct {
	Elems []Type
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Record is a structural record type. Row is nil for a closed record
// (exactly Fields and nothing else); Row is an unbound *Var for an
// open record ("at least Fields, plus whatever Row resolves to").
type Record struct {
	Fields map[string]Type
	Row    *Var
}

func (r *Record) String() string {
	names := make([]string, 0, len(r.Fields))
	for n := range r.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names)+1)
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", n, r.Fields[n].String()))
	}
	if r.Row != nil {
		parts = append(parts, "..."+r.Row.String())
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// IsClosed reports whether this record accepts no further fields.
func (r *Record) IsClosed() bool { return r.Row == nil }

// Named is a nominal type application: a user-declared variant or
// alias name applied to its type parameters. Two Named types unify
// only when Name and the arity of Args match; Args unify invariantly.
type Named struct {
	Name string
	Args []Type
}

func (n *Named) String() string {
	if len(n.Args) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", n.Name, strings.Join(parts, ", "))
}

// Ref is a mutable single-slot cell type, Ref<T>.
type Ref struct {
	Elem Type
}

func (r *Ref) String() string { return fmt.Sprintf("Ref<%s>", r.Elem.String()) }

// Scheme is a type universally quantified over a set of variables,
// produced only by generalization at let-bindings.
type Scheme struct {
	Vars []*Var
	Type Type
}

func (s *Scheme) String() string {
	if len(s.Vars) == 0 {
		return s.Type.String()
	}
	names := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		names[i] = v.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), s.Type.String())
}

// Prune follows a chain of bound variables to the representative
// type, applying path compression as it goes.
func Prune(t Type) Type {
	v, ok := t.(*Var)
	if !ok || !v.Bound {
		return t
	}
	result := Prune(v.Link)
	v.Link = result
	return result
}
