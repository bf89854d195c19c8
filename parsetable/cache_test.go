package parsetable

import (
	"path/filepath"
	"testing"

	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_SaveCache_and_LoadCache_roundtrip(t *testing.T) {
	g := grammar.New()
	g.AddTerm("id")
	g.AddTerm("plus")
	g.AddRule("E", []string{"E", "plus", "id"})
	g.AddRule("E", []string{"id"})

	table, err := Build(g, automaton.LALR1)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}

	path := filepath.Join(t.TempDir(), "table.rezi")
	if !assert.NoError(table.SaveCache(path)) {
		return
	}

	loaded, err := LoadCache(path)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(table.Initial, loaded.Initial)
	assert.Equal(table.Variant, loaded.Variant)
	assert.Equal(table.Action(table.Initial, "id").Resolved(), loaded.Action(table.Initial, "id").Resolved())
}
