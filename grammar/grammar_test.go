package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func exprGrammar() *Grammar {
	g := New()
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

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		build   func() *Grammar
		wantErr bool
	}{
		{
			name:    "classic expression grammar is valid",
			build:   exprGrammar,
			wantErr: false,
		},
		{
			name: "undeclared symbol is rejected",
			build: func() *Grammar {
				g := New()
				g.AddTerm("id")
				g.AddRule("E", []string{"id", "UNDECLARED"})
				return g
			},
			wantErr: true,
		},
		{
			name: "unreachable nonterminal is rejected",
			build: func() *Grammar {
				g := New()
				g.AddTerm("id")
				g.AddRule("S", []string{"id"})
				g.AddRule("DEAD", []string{"id"})
				return g
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			err := tc.build().Validate()

			if tc.wantErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Grammar_Nullable(t *testing.T) {
	g := New()
	g.AddTerm("a")
	g.AddRule("S", []string{"A", "a"})
	g.AddRule("A", []string{""})
	g.AddRule("A", []string{"a", "A"})

	assert.True(t, g.Nullable("A"))
	assert.False(t, g.Nullable("S"))
}

func Test_Grammar_FIRST(t *testing.T) {
	g := exprGrammar()

	testCases := []struct {
		sym  string
		want []string
	}{
		{"F", []string{"id", "lparen"}},
		{"T", []string{"id", "lparen"}},
		{"E", []string{"id", "lparen"}},
	}

	for _, tc := range testCases {
		t.Run(tc.sym, func(t *testing.T) {
			got := g.FIRST(tc.sym)
			for _, want := range tc.want {
				assert.True(t, got.Has(want), "FIRST(%s) missing %q, got %s", tc.sym, want, got)
			}
			assert.Equal(t, len(tc.want), got.Len())
		})
	}
}

func Test_Grammar_FOLLOW(t *testing.T) {
	g := exprGrammar()

	testCases := []struct {
		sym  string
		want []string
	}{
		{"E", []string{"plus", "rparen", EndOfInput}},
		{"T", []string{"plus", "star", "rparen", EndOfInput}},
		{"F", []string{"plus", "star", "rparen", EndOfInput}},
	}

	for _, tc := range testCases {
		t.Run(tc.sym, func(t *testing.T) {
			got := g.FOLLOW(tc.sym)
			for _, want := range tc.want {
				assert.True(t, got.Has(want), "FOLLOW(%s) missing %q, got %s", tc.sym, want, got)
			}
			assert.Equal(t, len(tc.want), got.Len())
		})
	}
}

func Test_Grammar_Augmented(t *testing.T) {
	g := exprGrammar()
	aug := g.Augmented()

	assert.NotEqual(t, g.StartSymbol(), aug.StartSymbol())
	startRule := aug.Rule(aug.StartSymbol())
	if assert.Len(t, startRule.Productions, 1) {
		assert.Equal(t, Production{"E"}, startRule.Productions[0])
	}
}

func Test_Grammar_epsilon_production_closure(t *testing.T) {
	// deeba kannan's epsilon elimination example, reworked for LR closures:
	// S -> A B
	// A -> a | ε
	// B -> b
	g := New()
	g.AddTerm("a")
	g.AddTerm("b")
	g.AddRule("S", []string{"A", "B"})
	g.AddRule("A", []string{"a"})
	g.AddRule("A", []string{""})
	g.AddRule("B", []string{"b"})

	assert.NoError(t, g.Validate())
	assert.True(t, g.Nullable("A"))
	assert.False(t, g.Nullable("S"))

	kernel := ItemSet{NewItem("S'", Production{"S"}, EndOfInput)}
	closed := g.Closure1(kernel)

	var sawABClosure bool
	for _, it := range closed {
		if it.NonTerminal == "A" && it.AtEnd() && len(it.Left) == 0 {
			sawABClosure = true
		}
	}
	assert.True(t, sawABClosure, "closure should include the epsilon item for A")
}
