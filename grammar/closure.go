package grammar

import "sort"

// ItemSet is a set of items sharing no particular order; closures and
// automaton states are built and compared as ItemSets.
type ItemSet []Item

// Closure0 computes the LR(0) closure of the given kernel items: for every
// item with the dot immediately before a nonterminal A, add every
// "A -> . production" item for each of A's productions, repeating until no
// new items are added. This is purple dragon book algorithm 4.51 with the
// lookahead tracking removed.
func (g *Grammar) Closure0(kernel ItemSet) ItemSet {
	seen := map[string]Item{}
	var worklist []Item
	for _, it := range kernel {
		core := it.Core()
		if _, ok := seen[core.CoreKey()]; !ok {
			seen[core.CoreKey()] = core
			worklist = append(worklist, core)
		}
	}

	for i := 0; i < len(worklist); i++ {
		it := worklist[i]
		sym, ok := it.NextSymbol()
		if !ok || !g.IsNonTerminal(sym) {
			continue
		}
		for _, p := range g.Rule(sym).Productions {
			newItem := NewItem(sym, p)
			if _, ok := seen[newItem.CoreKey()]; !ok {
				seen[newItem.CoreKey()] = newItem
				worklist = append(worklist, newItem)
			}
		}
	}

	out := make(ItemSet, len(worklist))
	copy(out, worklist)
	return out
}

// Closure1 computes the LR(1) closure of the given kernel items, each of
// which must already carry its lookaheads. For every item
// "A -> alpha . B beta, la" with B a nonterminal, and for every terminal b
// in FIRST(beta la) (beta's FIRST set, plus la itself if beta is
// nullable), add "B -> . gamma, b" for each production B -> gamma,
// repeating, and merging lookaheads into an existing item with the same
// core rather than adding a duplicate, until no new items or lookaheads
// are added. This is purple dragon book algorithm 4.59, and matches the
// worklist closure used in the Python tool this was distilled from.
func (g *Grammar) Closure1(kernel ItemSet) ItemSet {
	byCore := map[string]*Item{}
	var order []string

	add := func(it Item) bool {
		key := it.Core().CoreKey()
		existing, ok := byCore[key]
		if !ok {
			cp := it
			cp.Lookaheads = append([]string(nil), it.Lookaheads...)
			byCore[key] = &cp
			order = append(order, key)
			return true
		}
		have := map[string]bool{}
		for _, l := range existing.Lookaheads {
			have[l] = true
		}
		changed := false
		for _, l := range it.Lookaheads {
			if !have[l] {
				existing.Lookaheads = append(existing.Lookaheads, l)
				have[l] = true
				changed = true
			}
		}
		return changed
	}

	for _, it := range kernel {
		add(it)
	}

	changed := true
	for changed {
		changed = false
		for _, key := range order {
			it := *byCore[key]
			sym, ok := it.NextSymbol()
			if !ok || !g.IsNonTerminal(sym) {
				continue
			}
			beta := it.Right[1:]
			for _, la := range it.Lookaheads {
				firstBetaLa, _ := g.firstOfSequence(append(append([]string(nil), beta...), la))
				for _, p := range g.Rule(sym).Productions {
					for _, b := range firstBetaLa.Elements() {
						newItem := NewItem(sym, p, b)
						if add(newItem) {
							changed = true
						}
					}
				}
			}
		}
	}

	out := make(ItemSet, len(order))
	for i, key := range order {
		out[i] = *byCore[key]
	}
	return out
}

// Core returns the LR(0) core of every item in the set, for use as a state
// identity in LR(0)/SLR(1) automata or as the merge key in LALR(1)
// construction.
func (s ItemSet) Core() ItemSet {
	out := make(ItemSet, len(s))
	for i, it := range s {
		out[i] = it.Core()
	}
	return out
}

// CoreKey returns a string uniquely identifying the set's LR(0) core,
// independent of item order, suitable as a map key for state deduplication.
func (s ItemSet) CoreKey() string {
	keys := make([]string, len(s))
	for i, it := range s {
		keys[i] = it.Core().CoreKey()
	}
	return sortedJoin(keys)
}

func sortedJoin(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	out := ""
	for _, k := range sorted {
		out += k + "\x00"
	}
	return out
}
