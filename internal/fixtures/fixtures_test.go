package fixtures

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamesIsSortedAndComplete(t *testing.T) {
	names := Names()
	want := []string{
		"curried-arithmetic",
		"match-option",
		"non-exhaustive-match",
		"self-import",
		"value-cycle",
		"value-restriction",
		"width-subtyping",
	}
	sort.Strings(want)
	assert.Equal(t, want, names)
}

func TestGetUnknownScenario(t *testing.T) {
	_, ok := Get("does-not-exist")
	assert.False(t, ok)
}

func TestGetReturnsMatchingScenario(t *testing.T) {
	s, ok := Get("match-option")
	assert.True(t, ok)
	assert.Equal(t, "match-option", s.Name)
	assert.NotEmpty(t, s.Description)
	assert.NotEmpty(t, s.Inputs.Modules)
	assert.Equal(t, "main.vf", s.Inputs.EntryPoint)
}

func TestAllMatchesNamesOrder(t *testing.T) {
	names := Names()
	all := All()
	if assert.Len(t, all, len(names)) {
		for i, n := range names {
			assert.Equal(t, n, all[i].Name)
		}
	}
}
