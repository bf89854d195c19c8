package automaton

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

func Test_Build_LR0_augmenting_grammar_has_initial_state(t *testing.T) {
	// augmented parenthesis grammar (six LR(0) states):
	// S' -> S, S -> ( S ), S -> x
	g := grammar.New()
	g.AddTerm("lparen")
	g.AddTerm("rparen")
	g.AddTerm("x")
	g.AddRule("S", []string{"lparen", "S", "rparen"})
	g.AddRule("S", []string{"x"})

	a, err := Build(g, LR0)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("0", a.Initial)
	assert.NotEmpty(a.States())
}

func Test_Build_LR0_expression_grammar_automaton_is_connected(t *testing.T) {
	// the classic left-recursive expression grammar has a shift/reduce-free
	// LR(0) automaton with a genuine ambiguity only visible once reduce
	// entries are filled in; the automaton itself still builds fine, it's
	// parsetable.Build under LR0 that will reject it. Here we only check
	// that states and transitions come out connected and well-formed.
	g := exprGrammar()

	a, err := Build(g, LR0)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	_, ok := a.Next(a.Initial, "id")
	assert.True(ok, "expected a transition on id out of the initial state")
}

func Test_Build_LALR1_merges_states_LR1_does_not(t *testing.T) {
	g := exprGrammar()

	lr1, err := Build(g, LR1)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	lalr1, err := Build(g, LALR1)
	if !assert.NoError(err) {
		return
	}

	assert.True(len(lalr1.States()) <= len(lr1.States()),
		"LALR(1) state count (%d) should never exceed LR(1) state count (%d)",
		len(lalr1.States()), len(lr1.States()))
}

func Test_Build_epsilon_production_grammar(t *testing.T) {
	g := grammar.New()
	g.AddTerm("a")
	g.AddTerm("b")
	g.AddRule("S", []string{"A", "B"})
	g.AddRule("A", []string{"a"})
	g.AddRule("A", []string{""})
	g.AddRule("B", []string{"b"})

	a, err := Build(g, LR1)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.NotEmpty(a.States())
}
