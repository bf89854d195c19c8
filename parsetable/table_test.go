package parsetable

import (
	"testing"

	"github.com/dekarrin/parsegen/automaton"
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

func Test_Build_LALR1_expression_grammar_is_valid(t *testing.T) {
	g := exprGrammar()

	table, err := Build(g, automaton.LALR1)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.True(table.Valid(), "expected no conflicts, got %v", table.Conflicts())

	startState := table.Initial
	cell := table.Action(startState, "id")
	assert.Equal(Shift, cell.Resolved().Kind)
}

func Test_Build_LR0_rejects_expression_grammar(t *testing.T) {
	// the classic expr grammar is SLR(1) but not LR(0): filling every
	// reduce column unconditionally collides with the shift on "star" after
	// a T has been recognized.
	g := exprGrammar()

	table, err := Build(g, automaton.LR0)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.False(table.Valid(), "expected LR(0) conflicts in the classic expression grammar")
	for _, c := range table.Conflicts() {
		assert.Equal(ShiftReduce, c.Kind)
	}
}

func Test_Build_SLR1_resolves_what_LR0_cannot(t *testing.T) {
	g := exprGrammar()

	table, err := Build(g, automaton.SLR1)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.True(table.Valid(), "expected SLR(1) to resolve the expression grammar, got %v", table.Conflicts())
}

func Test_Build_dangling_else_is_LALR1_ambiguous(t *testing.T) {
	// S -> if E then S | if E then S else S | other
	g := grammar.New()
	g.AddTerm("if")
	g.AddTerm("then")
	g.AddTerm("else")
	g.AddTerm("e")
	g.AddTerm("other")
	g.AddRule("S", []string{"if", "e", "then", "S"})
	g.AddRule("S", []string{"if", "e", "then", "S", "else", "S"})
	g.AddRule("S", []string{"other"})

	table, err := Build(g, automaton.LALR1)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.False(table.Valid(), "dangling-else grammar should produce a shift/reduce conflict")
	found := false
	for _, c := range table.Conflicts() {
		if c.Kind == ShiftReduce && c.Terminal == "else" {
			found = true
		}
	}
	assert.True(found, "expected a shift/reduce conflict on 'else', got %v", table.Conflicts())
}
