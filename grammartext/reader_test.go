package grammartext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ReadString_basic_grammar(t *testing.T) {
	text := `
# a tiny expression grammar
E -> E plus T | T
T -> id
`
	g, err := ReadString(text)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.NoError(g.Validate())
	assert.Equal("E", g.StartSymbol())
	assert.True(g.IsTerminal("id"))
	assert.True(g.IsTerminal("plus"))
}

func Test_ReadString_epsilon_production(t *testing.T) {
	text := `
S -> A b
A -> ''
A -> a
`
	g, err := ReadString(text)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.NoError(g.Validate())
	assert.True(g.Nullable("A"))
}

func Test_ReadString_missing_arrow_is_malformed(t *testing.T) {
	_, err := ReadString("S A B\n")
	assert.Error(t, err)
}
