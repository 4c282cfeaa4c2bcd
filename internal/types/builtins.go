package types

// List is the one builtin parametric type every vibefun module sees
// without declaring it: list literals and the list pattern/Concat
// sugar all resolve through ListOf/IsList rather than a user Named
// declaration, since lists have no vibefun-level constructor to hang
// a TypeBinding off of.
const listTypeName = "List"

// ListOf returns the type of a list whose elements have type elem.
func ListOf(elem Type) *Named {
	return &Named{Name: listTypeName, Args: []Type{elem}}
}

// AsList reports whether t (after pruning) is a list type, returning
// its element type.
func AsList(t Type) (Type, bool) {
	n, ok := Prune(t).(*Named)
	if !ok || n.Name != listTypeName || len(n.Args) != 1 {
		return nil, false
	}
	return n.Args[0], true
}

// IsNumeric reports whether t (after pruning) is Int or Float.
func IsNumeric(t Type) bool {
	c, ok := Prune(t).(*Const)
	return ok && (c == Int || c == Float)
}
