package driver

import (
	"testing"

	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/parsetable"
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

func Test_Driver_Parse_simple_expression(t *testing.T) {
	g := exprGrammar()
	table, err := parsetable.Build(g, automaton.LALR1)
	assert := assert.New(t)
	if !assert.NoError(err) || !assert.True(table.Valid()) {
		return
	}

	d := New(table, g)
	tokens := []Token{
		{Class: "id", Lexeme: "x"},
		{Class: "plus", Lexeme: "+"},
		{Class: "id", Lexeme: "y"},
	}

	tree, err := d.Parse(tokens)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("E", tree.Symbol)
	assert.False(tree.Terminal)
}

func Test_Driver_Parse_reports_syntax_error(t *testing.T) {
	g := exprGrammar()
	table, err := parsetable.Build(g, automaton.LALR1)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}

	d := New(table, g)
	tokens := []Token{
		{Class: "plus", Lexeme: "+"},
	}

	_, err = d.Parse(tokens)
	assert.Error(err)
}

func Test_Driver_Parse_builds_epsilon_child_for_empty_reduction(t *testing.T) {
	g := grammar.New()
	g.AddTerm("a")
	g.AddTerm("b")
	g.AddRule("S", []string{"A", "B"})
	g.AddRule("A", []string{"a"})
	g.AddRule("A", []string{""})
	g.AddRule("B", []string{"b"})

	table, err := parsetable.Build(g, automaton.LALR1)
	assert := assert.New(t)
	if !assert.NoError(err) || !assert.True(table.Valid(), "expected no conflicts, got %v", table.Conflicts()) {
		return
	}

	d := New(table, g)
	tree, err := d.Parse([]Token{{Class: "b", Lexeme: "b"}})
	if !assert.NoError(err) {
		return
	}

	if !assert.Equal("S", tree.Symbol) || !assert.Len(tree.Children, 2) {
		return
	}
	aNode := tree.Children[0]
	assert.Equal("A", aNode.Symbol)
	if assert.Len(aNode.Children, 1) {
		epsilonChild := aNode.Children[0]
		assert.True(epsilonChild.Terminal)
		assert.Equal("ε", epsilonChild.Symbol)
	}
}

func Test_Driver_Parse_traces_when_registered(t *testing.T) {
	g := exprGrammar()
	table, err := parsetable.Build(g, automaton.LALR1)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}

	var lines []string
	d := New(table, g)
	d.SetTracer(func(s string) { lines = append(lines, s) })

	_, err = d.Parse([]Token{{Class: "id", Lexeme: "x"}})
	assert.NoError(err)
	assert.NotEmpty(lines)
}
