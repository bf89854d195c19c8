package parsegen

import (
	"testing"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/stretchr/testify/assert"
)

func exprGrammar() *grammar.Grammar {
	g := grammar.New()
	g.AddTerm("id")
	g.AddTerm("plus")
	g.AddTerm("star")
	g.AddTerm("lparen")
	g.AddTerm("rparen")

	g.AddRule("E", []string{"E", "plus", "T"})
	g.AddRule("E", []string{"T"})
	g.AddRule("T", []string{"T", "star", "F"})
	g.AddRule("T", []string{"F"})
	g.AddRule("F", []string{"lparen", "E", "rparen"})
	g.AddRule("F", []string{"id"})

	return g
}

func Test_New_and_Parse_end_to_end(t *testing.T) {
	assert := assert.New(t)

	p, err := New(LALR1, exprGrammar())
	if !assert.NoError(err) {
		return
	}
	assert.True(p.IsValid())
	assert.Nil(p.ValidationError())

	tree, err := p.Parse([]Token{
		{Class: "id", Lexeme: "a"},
		{Class: "star", Lexeme: "*"},
		{Class: "id", Lexeme: "b"},
	})
	if !assert.NoError(err) {
		return
	}
	assert.Equal("E", tree.Symbol)
}

func Test_New_LR0_reports_conflicts(t *testing.T) {
	assert := assert.New(t)

	p, err := New(LR0, exprGrammar())
	if !assert.NoError(err) {
		return
	}
	assert.False(p.IsValid())
	assert.Error(p.ValidationError())
}

func Test_Parse_rejects_bad_input(t *testing.T) {
	assert := assert.New(t)

	p, err := New(LALR1, exprGrammar())
	if !assert.NoError(err) {
		return
	}
	_, err = p.Parse([]Token{{Class: "plus", Lexeme: "+"}})
	assert.Error(err)
}
