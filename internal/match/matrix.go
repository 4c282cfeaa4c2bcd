package match

import "github.com/vibefun/vibefun/internal/core"

// shape identifies one "head constructor" a pattern can specialize on:
// a variant case, the single shape of a tuple/record, a list prefix of
// a given length, or a literal value. It is the unit the matrix
// algorithm groups rows by and specializes columns on (§4.4).
type shapeKind int

const (
	shapeVariant shapeKind = iota
	shapeTuple
	shapeRecord
	shapeList
	shapeLit
)

type shape struct {
	kind   shapeKind
	ctor   string   // shapeVariant
	arity  int       // shapeVariant, shapeTuple, shapeList (element count)
	fields []string  // shapeRecord, field names in a fixed order
	hasTail bool     // shapeList: a Rest pattern follows the fixed elements
	lit    interface{} // shapeLit
	litKind core.LitKind
}

func isWildcardPat(p core.Pattern) bool {
	switch pp := p.(type) {
	case *core.WildcardPattern, *core.VarPattern:
		return true
	case *core.ListPattern:
		// `[...rest]` with an irrefutable rest matches every list.
		return len(pp.Elements) == 0 && pp.Rest != nil && isWildcardPat(pp.Rest)
	default:
		return false
	}
}

// decompose returns the shape of p's head and the sub-patterns that
// shape exposes (e.g. a variant's constructor arguments, a tuple's
// elements). p must not be a wildcard or an or-pattern.
func decompose(p core.Pattern) (shape, []core.Pattern) {
	switch pp := p.(type) {
	case *core.VariantPattern:
		return shape{kind: shapeVariant, ctor: pp.Constructor, arity: len(pp.Args)}, pp.Args

	case *core.TuplePattern:
		return shape{kind: shapeTuple, arity: len(pp.Elements)}, pp.Elements

	case *core.RecordPattern:
		names := make([]string, len(pp.Fields))
		subs := make([]core.Pattern, len(pp.Fields))
		for i, f := range pp.Fields {
			names[i] = f.Name
			subs[i] = f.Pattern
		}
		return shape{kind: shapeRecord, fields: names}, subs

	case *core.ListPattern:
		subs := append([]core.Pattern{}, pp.Elements...)
		hasTail := pp.Rest != nil
		if hasTail {
			subs = append(subs, pp.Rest)
		}
		return shape{kind: shapeList, arity: len(pp.Elements), hasTail: hasTail}, subs

	case *core.LitPattern:
		return shape{kind: shapeLit, lit: pp.Value, litKind: pp.Kind}, nil

	default:
		// OrPattern (already expanded before reaching here) or an
		// unrecognized node: treat as an opaque zero-arity shape so the
		// analyzer degrades to "covered" rather than panicking.
		return shape{kind: shapeLit, lit: p.String()}, nil
	}
}

func sameShape(a, b shape) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case shapeVariant:
		return a.ctor == b.ctor
	case shapeTuple:
		return a.arity == b.arity
	case shapeRecord:
		return len(a.fields) == len(b.fields) // field sets match by construction within one scrutinee type
	case shapeList:
		return a.arity == b.arity && a.hasTail == b.hasTail
	case shapeLit:
		return a.litKind == b.litKind && a.lit == b.lit
	}
	return false
}

// buildPattern reconstructs a concrete pattern for shape s from arity
// sub-patterns, the inverse of decompose, used to assemble a witness.
func buildPattern(s shape, subs []core.Pattern) core.Pattern {
	switch s.kind {
	case shapeVariant:
		return &core.VariantPattern{Constructor: s.ctor, Args: subs}
	case shapeTuple:
		return &core.TuplePattern{Elements: subs}
	case shapeRecord:
		fields := make([]core.FieldPattern, len(s.fields))
		for i, name := range s.fields {
			fields[i] = core.FieldPattern{Name: name, Pattern: subs[i]}
		}
		return &core.RecordPattern{Fields: fields}
	case shapeList:
		elems := subs
		var rest core.Pattern
		if s.hasTail {
			elems = subs[:len(subs)-1]
			rest = subs[len(subs)-1]
		}
		return &core.ListPattern{Elements: elems, Rest: rest}
	case shapeLit:
		return &core.LitPattern{Kind: s.litKind, Value: s.lit}
	}
	return &core.WildcardPattern{}
}

func arityOf(s shape) int {
	n := len(s.fields) + s.arity
	if s.kind == shapeList && s.hasTail {
		n++
	}
	return n
}

func wildcards(n int) []core.Pattern {
	out := make([]core.Pattern, n)
	for i := range out {
		out[i] = &core.WildcardPattern{}
	}
	return out
}

// specializeMatrix keeps, for every row whose first column matches s
// (either because it already has that head, or because it is a
// wildcard), the row with column 0 replaced by that head's
// sub-patterns; every other row is dropped (§4.4's "specialize by the
// head constructor of the first column").
func specializeMatrix(matrix [][]core.Pattern, s shape) [][]core.Pattern {
	var out [][]core.Pattern
	for _, row := range matrix {
		head := row[0]
		rest := row[1:]
		if isWildcardPat(head) {
			out = append(out, append(wildcards(arityOf(s)), rest...))
			continue
		}
		hs, subs := decompose(head)
		if sameShape(hs, s) {
			out = append(out, append(append([]core.Pattern{}, subs...), rest...))
		}
	}
	return out
}

// defaultMatrix keeps only rows whose first column is a wildcard,
// with that column dropped -- the fallback used when the head
// constructors seen in column 0 do not cover the type (§4.4: literals
// always take this path; a variant only takes it when some case is
// missing).
func defaultMatrix(matrix [][]core.Pattern) [][]core.Pattern {
	var out [][]core.Pattern
	for _, row := range matrix {
		if isWildcardPat(row[0]) {
			out = append(out, row[1:])
		}
	}
	return out
}

// completeness describes whether the head shapes seen in a matrix
// column cover every value of that column's type.
type completeness struct {
	complete bool
	shapes   []shape     // when complete: every shape to specialize on
	missing  core.Pattern // when !complete: a concrete witness uncovered by any seen shape
}

func (a *Analyzer) completenessOf(matrix [][]core.Pattern) completeness {
	seen := map[string]shape{}
	var order []string
	var first shape
	haveFirst := false
	for _, row := range matrix {
		if isWildcardPat(row[0]) {
			continue
		}
		s, _ := decompose(row[0])
		if !haveFirst {
			first, haveFirst = s, true
		}
		key := shapeKey(s)
		if _, ok := seen[key]; !ok {
			seen[key] = s
			order = append(order, key)
		}
	}
	if !haveFirst {
		return completeness{complete: false, missing: &core.WildcardPattern{}}
	}

	switch first.kind {
	case shapeTuple, shapeRecord:
		// A tuple/record scrutinee has exactly one shape; seeing it at
		// all makes the column complete.
		return completeness{complete: true, shapes: []shape{first}}

	case shapeLit, shapeList:
		// Literals have an unbounded domain by construction (§4.4); list
		// patterns are treated the same way here, since a fixed set of
		// prefix lengths can never enumerate every list -- both always
		// require a wildcard/variable (or, for lists, a `[...rest]`
		// arm, which isWildcardPat counts as one) to be exhaustive.
		return completeness{complete: false, missing: &core.WildcardPattern{}}

	case shapeVariant:
		ctorInfo, ok := a.reg.Constructor(first.ctor)
		if !ok {
			return completeness{complete: false, missing: &core.WildcardPattern{}}
		}
		tb, ok := a.reg.Lookup(ctorInfo.TypeName)
		if !ok {
			return completeness{complete: false, missing: &core.WildcardPattern{}}
		}
		for _, c := range tb.Constructors {
			if _, ok := seen[shapeKey(shape{kind: shapeVariant, ctor: c.Name})]; !ok {
				return completeness{
					complete: false,
					missing:  &core.VariantPattern{Constructor: c.Name, Args: wildcards(len(c.Fields))},
				}
			}
		}
		shapes := make([]shape, len(tb.Constructors))
		for i, c := range tb.Constructors {
			shapes[i] = shape{kind: shapeVariant, ctor: c.Name, arity: len(c.Fields)}
		}
		return completeness{complete: true, shapes: shapes}
	}
	return completeness{complete: false, missing: &core.WildcardPattern{}}
}

func shapeKey(s shape) string {
	switch s.kind {
	case shapeVariant:
		return "ctor:" + s.ctor
	case shapeTuple:
		return "tuple"
	case shapeRecord:
		return "record"
	case shapeList:
		if s.hasTail {
			return "list:tail"
		}
		return "list:exact"
	case shapeLit:
		return "lit"
	}
	return "?"
}

// usefulness implements Maranget's algorithm: q is useful with respect
// to matrix (every row the same arity as q) when some value matched by
// q is matched by no row of matrix. When useful, it also returns a
// concrete witness vector -- one value that demonstrates it.
func (a *Analyzer) usefulness(matrix [][]core.Pattern, q []core.Pattern) ([]core.Pattern, bool) {
	if len(q) == 0 {
		if len(matrix) == 0 {
			return []core.Pattern{}, true
		}
		return nil, false
	}

	head := q[0]
	if isWildcardPat(head) {
		comp := a.completenessOf(matrix)
		if comp.complete {
			for _, s := range comp.shapes {
				sub := specializeMatrix(matrix, s)
				subQ := append(wildcards(arityOf(s)), q[1:]...)
				if w, ok := a.usefulness(sub, subQ); ok {
					built := buildPattern(s, w[:arityOf(s)])
					return append([]core.Pattern{built}, w[arityOf(s):]...), true
				}
			}
			return nil, false
		}
		def := defaultMatrix(matrix)
		if w, ok := a.usefulness(def, q[1:]); ok {
			return append([]core.Pattern{comp.missing}, w...), true
		}
		return nil, false
	}

	s, subs := decompose(head)
	sub := specializeMatrix(matrix, s)
	subQ := append(append([]core.Pattern{}, subs...), q[1:]...)
	if w, ok := a.usefulness(sub, subQ); ok {
		n := arityOf(s)
		built := buildPattern(s, w[:n])
		return append([]core.Pattern{built}, w[n:]...), true
	}
	return nil, false
}
