package parsetable

import (
	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
)

// Build constructs the ACTION/GOTO table for g under the given variant.
// The automaton is built first (automaton.Build), then every state's items
// are read to fill in shift, reduce, and accept entries; which items are
// allowed to contribute a reduce entry, and for which lookaheads, is the
// one place the four LR variants genuinely differ:
//
//   - LR0 fills a reduce entry for every terminal in the grammar,
//     regardless of context — the pedagogically "weakest" and most
//     conflict-prone table, preserved deliberately rather than sharpened,
//     since a grammar's LR0 table is supposed to show every spurious
//     conflict a stronger variant resolves.
//   - SLR1 restricts each reduce entry to the terminals in FOLLOW of the
//     production's left-hand nonterminal.
//   - LR1 and LALR1 restrict each reduce entry to the item's own tracked
//     lookahead set; they differ only in which automaton they read from
//     (LR1 the canonical collection, LALR1 the core-merged one).
//
// Build never returns an error for conflicts found; conflicts are recorded
// on the returned Table (see Table.Conflicts and Table.Valid) rather than
// failing construction, so callers can inspect exactly what went wrong.
// Build does return an error if the grammar itself fails validation or the
// automaton cannot be built.
func Build(g *grammar.Grammar, variant automaton.Variant) (*Table, error) {
	a, err := automaton.Build(g, variant)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Variant:   variant,
		Initial:   a.Initial,
		Automaton: a,
		action:    map[string]map[string]Cell{},
		gotoT:     map[string]map[string]string{},
	}

	augStart := a.AugmentedStart

	for _, s := range a.States() {
		// shift and goto entries go in before any reduce or accept entry of
		// the same state, so a conflicted cell lists its shift first.
		for _, it := range s.Items {
			if it.AtEnd() {
				continue
			}

			sym, _ := it.NextSymbol()
			to, ok := a.Next(s.Name, sym)
			if !ok {
				continue
			}
			if g.IsTerminal(sym) {
				t.recordAction(s.Name, sym, Action{Kind: Shift, State: to})
			} else {
				t.recordGoto(s.Name, sym, to)
			}
		}
		for _, it := range s.Items {
			if !it.AtEnd() {
				continue
			}
			if it.NonTerminal == augStart {
				t.recordAction(s.Name, grammar.EndOfInput, Action{Kind: Accept})
				continue
			}
			fillReduce(t, g, variant, s.Name, it)
		}
	}

	return t, nil
}

func fillReduce(t *Table, g *grammar.Grammar, variant automaton.Variant, state string, it grammar.Item) {
	prod := it.Production()
	action := Action{Kind: Reduce, NonTerminal: it.NonTerminal, Production: prod}

	switch variant {
	case automaton.LR0:
		for _, term := range g.Terminals() {
			t.recordAction(state, term, action)
		}
		t.recordAction(state, grammar.EndOfInput, action)
	case automaton.SLR1:
		for _, term := range g.FOLLOW(it.NonTerminal).Elements() {
			t.recordAction(state, term, action)
		}
	case automaton.LR1, automaton.LALR1:
		for _, la := range it.Lookaheads {
			t.recordAction(state, la, action)
		}
	}
}
