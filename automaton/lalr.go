package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/parsegen/grammar"
)

// mergeLALR collapses a canonical LR(1) automaton into its LALR(1)
// equivalent: group states by LR(0) core, union the lookaheads of
// corresponding items across every state in a group, and rewrite
// transitions to point at the merged state names. This is the same
// core-based approach the viable-prefix automaton builder this package was
// adapted from uses, and the one the Python tool's LALR1Parser.
// build_automaton takes, rather than the two-pass "determine lookaheads
// from an LR(0) automaton directly" algorithm (purple dragon book
// algorithm 4.63): building the full canonical collection first and
// merging after is slower but never has this package's author's half
// finished state, so it is what ships.
func mergeLALR(canonical *Automaton) *Automaton {
	groupOf := map[string]string{} // old state name -> new (merged) group name
	groupItems := map[string]grammar.ItemSet{}
	var groupOrder []string
	groupNameByCore := map[string]string{}

	for _, name := range canonical.order {
		s := canonical.states[name]
		coreKey := s.Items.Core().CoreKey()
		group, exists := groupNameByCore[coreKey]
		if !exists {
			group = fmt.Sprintf("%d", len(groupOrder))
			groupNameByCore[coreKey] = group
			groupOrder = append(groupOrder, group)
			groupItems[group] = cloneItemsNoLookaheads(s.Items)
		}
		groupOf[name] = group
		mergeLookaheadsInto(groupItems[group], s.Items)
	}

	merged := &Automaton{
		Variant:        LALR1,
		AugmentedStart: canonical.AugmentedStart,
		states:         map[string]State{},
		transitions:    map[string]map[string]string{},
	}
	merged.Initial = groupOf[canonical.Initial]
	merged.order = groupOrder
	for _, g := range groupOrder {
		merged.states[g] = State{Name: g, Items: groupItems[g]}
	}

	for _, name := range canonical.order {
		fromGroup := groupOf[name]
		for sym, to := range canonical.transitions[name] {
			toGroup := groupOf[to]
			addTransition(merged, fromGroup, sym, toGroup)
		}
	}

	return merged
}

// cloneItemsNoLookaheads returns a deep copy of items with each item's
// Lookaheads reset to empty, used to seed a merged group's item set before
// unioning in every member state's lookaheads.
func cloneItemsNoLookaheads(items grammar.ItemSet) grammar.ItemSet {
	out := make(grammar.ItemSet, len(items))
	for i, it := range items {
		out[i] = grammar.Item{
			NonTerminal: it.NonTerminal,
			Left:        append([]string(nil), it.Left...),
			Right:       append([]string(nil), it.Right...),
		}
	}
	return out
}

// mergeLookaheadsInto unions the lookaheads of each item in src into the
// correspondingly-cored item in dest, matching items up by core key. dest
// and src are assumed to have identical cores (same set of core keys),
// which holds because every state folded into the same group was grouped
// by exactly that core.
func mergeLookaheadsInto(dest grammar.ItemSet, src grammar.ItemSet) {
	byCore := map[string]int{}
	for i, it := range dest {
		byCore[it.Core().CoreKey()] = i
	}
	for _, it := range src {
		idx, ok := byCore[it.Core().CoreKey()]
		if !ok {
			continue
		}
		have := map[string]bool{}
		for _, l := range dest[idx].Lookaheads {
			have[l] = true
		}
		for _, l := range it.Lookaheads {
			if !have[l] {
				dest[idx].Lookaheads = append(dest[idx].Lookaheads, l)
				have[l] = true
			}
		}
		sort.Strings(dest[idx].Lookaheads)
	}
}
