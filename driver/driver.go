// Package driver runs the shift-reduce stack machine that consumes a
// token stream against a built parsetable.Table and produces a concrete
// parsetree.Tree.
package driver

import (
	"fmt"
	"strings"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/ierr"
	"github.com/dekarrin/parsegen/internal/util"
	"github.com/dekarrin/parsegen/parsetable"
	"github.com/dekarrin/parsegen/parsetree"
)

// Token is a single input symbol: Class names the terminal it matches
// (must be one of the grammar's declared terminal names, or
// grammar.EndOfInput to mark the end of the stream) and Lexeme is the
// literal text it was read from, carried through to the parse tree's leaf
// nodes unchanged.
type Token struct {
	Class  string
	Lexeme string
}

// Driver runs the LR parsing algorithm against a fixed table.
type Driver struct {
	table *parsetable.Table
	gram  *grammar.Grammar
	trace func(string)
}

// New returns a Driver that parses with the given table, built from the
// given grammar. The table selects every action; the grammar tells a
// reduction which right-hand-side symbols are terminals, supplies the
// production index recorded on each reduced node, and enumerates terminals
// for "expected ..." error messages.
func New(table *parsetable.Table, gram *grammar.Grammar) *Driver {
	return &Driver{table: table, gram: gram}
}

// SetTracer registers a callback invoked with a human-readable line at
// every stack operation (state push/pop/peek, action taken, token read).
// Passing nil disables tracing.
func (d *Driver) SetTracer(fn func(string)) {
	d.trace = fn
}

func (d *Driver) notify(format string, args ...interface{}) {
	if d.trace != nil {
		d.trace(fmt.Sprintf(format, args...))
	}
}

// Parse runs the stack machine (purple dragon book algorithm 4.44) over
// tokens and returns the resulting parse tree. If tokens does not end with
// a Token{Class: grammar.EndOfInput}, one is appended.
//
// At each step, the state on top of the state stack and the current
// lookahead token select an ACTION. Shift pushes the token and a new
// state; reduce pops |β| symbols for a production A -> β, builds a new
// interior parse-tree node from the popped subtrees, and pushes GOTO[t, A]
// where t is now on top of the state stack; accept returns the single
// remaining subtree; anything else is a syntax error.
func (d *Driver) Parse(tokens []Token) (*parsetree.Tree, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Class != grammar.EndOfInput {
		tokens = append(append([]Token(nil), tokens...), Token{Class: grammar.EndOfInput})
	}

	states := util.Stack[string]{Of: []string{d.table.Initial}}
	pending := util.Stack[Token]{}
	roots := util.Stack[*parsetree.Tree]{}

	pos := 0
	next := func() Token {
		t := tokens[pos]
		pos++
		return t
	}

	a := next()
	d.notify("next token: %s %q", a.Class, a.Lexeme)

	for {
		s := states.Peek()
		d.notify("state.peek(): %s", s)

		cell := d.table.Action(s, a.Class)
		action := cell.Resolved()
		d.notify("action: %s", action)

		switch action.Kind {
		case parsetable.Shift:
			pending.Push(a)
			states.Push(action.State)
			d.notify("state.push(): %s", action.State)
			a = next()
			d.notify("next token: %s %q", a.Class, a.Lexeme)

		case parsetable.Reduce:
			node := &parsetree.Tree{
				Symbol:          action.NonTerminal,
				ProductionIndex: productionIndex(d.gram, action.NonTerminal, action.Production),
			}
			beta := action.Production
			if beta.IsEpsilon() {
				// A -> ε still produces a node, with a single ε-child
				// marking the reduction: nothing is popped for it.
				node.Children = append(node.Children, &parsetree.Tree{Terminal: true, Symbol: grammar.Epsilon.String()})
				beta = nil
			}
			for i := len(beta) - 1; i >= 0; i-- {
				sym := beta[i]
				var child *parsetree.Tree
				if d.gram.IsTerminal(sym) {
					tok, ok := pending.TryPop()
					if !ok {
						return nil, ierr.CorruptStackf(
							"reducing %s -> %s: no pending token left to pop for symbol %q",
							action.NonTerminal, action.Production, sym,
						)
					}
					child = &parsetree.Tree{Terminal: true, Symbol: tok.Class, Token: tok.Lexeme}
				} else {
					var ok bool
					child, ok = roots.TryPop()
					if !ok {
						return nil, ierr.CorruptStackf(
							"reducing %s -> %s: no subtree left to pop for symbol %q",
							action.NonTerminal, action.Production, sym,
						)
					}
				}
				node.Children = append([]*parsetree.Tree{child}, node.Children...)
			}
			roots.Push(node)

			for range beta {
				if states.Empty() {
					return nil, ierr.CorruptStackf(
						"reducing %s -> %s: state stack exhausted before popping |β| states",
						action.NonTerminal, action.Production,
					)
				}
				states.Pop()
				d.notify("state.pop()")
			}

			t := states.Peek()
			to, ok := d.table.Goto(t, action.NonTerminal)
			if !ok {
				return nil, ierr.CorruptStackf(
					"no GOTO entry for state %s on nonterminal %q after reducing %s -> %s",
					t, action.NonTerminal, action.NonTerminal, action.Production,
				)
			}
			states.Push(to)
			d.notify("state.push(): %s", to)

		case parsetable.Accept:
			if roots.Empty() {
				return nil, ierr.CorruptStack("accept reached with no parse tree on the root stack")
			}
			return roots.Pop(), nil

		default:
			expected := d.expectedAt(s)
			return nil, d.syntaxError(s, a, expected)
		}
	}
}

// productionIndex returns the index of production within nonterminal's rule,
// for tagging a reduced parsetree.Tree node with which alternative built it.
// Returns 0 if not found, which should not happen for a production the table
// itself produced.
func productionIndex(g *grammar.Grammar, nonterminal string, production grammar.Production) int {
	for i, p := range g.Rule(nonterminal).Productions {
		if p.Equal(production) {
			return i
		}
	}
	return 0
}

// expectedAt returns every terminal that has a non-error ACTION entry in
// state, in declaration order, for use in a syntax error message.
func (d *Driver) expectedAt(state string) []string {
	var expected []string
	for _, term := range d.gram.Terminals() {
		if d.table.Action(state, term).Resolved().Kind != parsetable.Error {
			expected = append(expected, term)
		}
	}
	return expected
}

func (d *Driver) syntaxError(state string, got Token, expected []string) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "unexpected %s", got.Class)
	if len(expected) > 0 {
		fmt.Fprintf(&sb, "; expected %s", expectedList(expected))
	}
	return ierr.NewParseError(sb.String(), state, got.Class, expected)
}

// expectedList renders a list of expected terminal names the way the
// teacher's error messages do: "a FOO", "a FOO or a BAR", "a FOO, a BAR, or
// a BAZ", with the leading article chosen per word and joined on "or"
// rather than "and" since these are alternatives, not a conjunction.
func expectedList(expected []string) string {
	worded := make([]string, len(expected))
	for i, t := range expected {
		worded[i] = util.ArticleFor(t, false) + " " + t
	}
	switch len(worded) {
	case 1:
		return worded[0]
	case 2:
		return worded[0] + " or " + worded[1]
	default:
		return strings.Join(worded[:len(worded)-1], ", ") + ", or " + worded[len(worded)-1]
	}
}
