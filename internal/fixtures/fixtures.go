// Package fixtures builds whole-program compiler.Inputs values by hand,
// standing in for the lexer/parser this module doesn't own. Each
// Scenario is a small, self-contained program constructed directly as
// an *ast.Module (or several, for the multi-module cases), grounded in
// the end-to-end scenarios used to validate the pipeline: curried
// application, pattern matching on a variant, a self-import error, a
// cross-module value cycle, the value restriction, record width
// subtyping, and a non-exhaustive match. cmd/vibefunc runs one of
// these by name; internal/compiler's own tests run all of them.
package fixtures

import (
	"sort"

	"github.com/vibefun/vibefun/internal/compiler"
)

// Scenario is one named, ready-to-compile program.
type Scenario struct {
	Name        string
	Description string
	Inputs      compiler.Inputs
}

var registry = map[string]func() Scenario{
	"curried-arithmetic":   S1CurriedArithmetic,
	"match-option":         S2MatchOption,
	"self-import":          S3SelfImport,
	"value-cycle":          S4ValueCycle,
	"value-restriction":    S5ValueRestriction,
	"width-subtyping":      S6WidthSubtyping,
	"non-exhaustive-match": S7NonExhaustiveMatch,
}

// Names lists every registered scenario, alphabetically.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Get looks up a scenario by name.
func Get(name string) (Scenario, bool) {
	build, ok := registry[name]
	if !ok {
		return Scenario{}, false
	}
	return build(), true
}

// All builds every registered scenario, in Names order.
func All() []Scenario {
	names := Names()
	out := make([]Scenario, len(names))
	for i, n := range names {
		s, _ := Get(n)
		out[i] = s
	}
	return out
}
