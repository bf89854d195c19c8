// Package automaton builds the LR viable-prefix automaton (the canonical
// collection of item sets and the goto transitions between them) that
// parsing-table construction reads its rows and columns from.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/internal/util"
)

// Variant selects which flavor of LR item the automaton is built from.
// LR0 and SLR1 share the same underlying automaton (items carry no
// lookahead); the distinction between them is entirely in how
// parsetable.Build reads reduce entries out of it.
type Variant int

const (
	LR0 Variant = iota
	SLR1
	LR1
	LALR1
)

// String renders the variant's conventional short name.
func (v Variant) String() string {
	switch v {
	case LR0:
		return "LR(0)"
	case SLR1:
		return "SLR(1)"
	case LR1:
		return "LR(1)"
	case LALR1:
		return "LALR(1)"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// State is one node of the automaton: a canonical item set with its
// associated name, used for display and as a parsing-table row key. The
// transitions leading out of it are held by the Automaton (see Next and
// Transitions), not by the State.
type State struct {
	Name  string
	Items grammar.ItemSet
}

// Automaton is the canonical collection of LR item sets for a grammar,
// connected by GOTO transitions on grammar symbols. States are named "0",
// "1", "2", ... in discovery order, with "0" always the initial state.
type Automaton struct {
	Variant Variant
	Initial string

	// AugmentedStart is the name of the synthetic start nonterminal
	// (S' -> S) the automaton was built from. Its single production always
	// has exactly one symbol, the grammar's original start symbol; an item
	// for it reaching AtEnd is the automaton's accept condition.
	AugmentedStart string

	states      map[string]State
	order       []string
	transitions map[string]map[string]string
}

// States returns every state in the automaton, in discovery order.
func (a *Automaton) States() []State {
	out := make([]State, len(a.order))
	for i, name := range a.order {
		out[i] = a.states[name]
	}
	return out
}

// State returns the named state and whether it exists.
func (a *Automaton) State(name string) (State, bool) {
	s, ok := a.states[name]
	return s, ok
}

// Next returns the state reached from "from" on "symbol", and whether a
// transition exists.
func (a *Automaton) Next(from, symbol string) (string, bool) {
	row, ok := a.transitions[from]
	if !ok {
		return "", false
	}
	to, ok := row[symbol]
	return to, ok
}

// Transitions returns every outgoing transition from the named state, as a
// symbol-to-destination map.
func (a *Automaton) Transitions(from string) map[string]string {
	out := make(map[string]string, len(a.transitions[from]))
	for k, v := range a.transitions[from] {
		out[k] = v
	}
	return out
}

// String renders every state's items and transitions, one state per block,
// for debugging and CLI display.
func (a *Automaton) String() string {
	var sb strings.Builder
	for _, name := range a.order {
		s := a.states[name]
		fmt.Fprintf(&sb, "STATE %s:\n", name)
		for _, it := range s.Items {
			fmt.Fprintf(&sb, "  %s\n", it)
		}
		for _, sym := range util.OrderedKeys(a.transitions[name]) {
			fmt.Fprintf(&sb, "  on %q -> %s\n", sym, a.transitions[name][sym])
		}
	}
	return sb.String()
}

// Build constructs the canonical LR viable-prefix automaton for g under the
// given variant. For LR0 and SLR1 this is the LR(0) item-set automaton
// (purple dragon book algorithm 4.52); for LR1 and LALR1 it is the
// canonical LR(1) collection (algorithm 4.56), with LALR1 additionally
// merging states that share an LR(0) core (algorithm 4.63's outcome,
// reached here the same way the grammar this was adapted from reaches it:
// build the full canonical collection, then union lookaheads across
// same-core states, rather than trying to predict the merge before the
// canonical collection is known).
func Build(g *grammar.Grammar, variant Variant) (*Automaton, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	aug := g.Augmented()

	var a *Automaton
	switch variant {
	case LR0, SLR1:
		a = build0(aug)
	case LR1, LALR1:
		a = build1(aug)
	default:
		return nil, fmt.Errorf("unknown automaton variant %v", variant)
	}
	a.Variant = variant
	a.AugmentedStart = aug.StartSymbol()

	if variant == LALR1 {
		a = mergeLALR(a)
	}

	return a, nil
}

// build0 constructs the canonical LR(0) collection via worklist: start from
// the closure of the augmented start item, then repeatedly compute GOTO on
// every symbol that appears after a dot in the current state, adding any
// newly-discovered state to the worklist, until no new states or
// transitions are found.
func build0(aug *grammar.Grammar) *Automaton {
	start := aug.StartSymbol()
	startRule := aug.Rule(start)
	kernel := grammar.ItemSet{grammar.NewItem(start, startRule.Productions[0])}
	initial := aug.Closure0(kernel)

	a := &Automaton{
		states:      map[string]State{},
		transitions: map[string]map[string]string{},
	}
	key := initial.CoreKey()
	names := map[string]string{key: "0"}
	a.states["0"] = State{Name: "0", Items: initial}
	a.order = append(a.order, "0")
	a.Initial = "0"

	worklist := []string{"0"}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		for _, sym := range outgoingSymbols(a.states[cur].Items) {
			moved := gotoSet0(aug, a.states[cur].Items, sym)
			if len(moved) == 0 {
				continue
			}
			mkey := moved.CoreKey()
			name, exists := names[mkey]
			if !exists {
				name = fmt.Sprintf("%d", len(a.order))
				names[mkey] = name
				a.states[name] = State{Name: name, Items: moved}
				a.order = append(a.order, name)
				worklist = append(worklist, name)
			}
			addTransition(a, cur, sym, name)
		}
	}

	return a
}

// build1 is build0's LR(1) counterpart: the kernel and closure carry
// lookaheads, and GOTO propagates them across transitions.
func build1(aug *grammar.Grammar) *Automaton {
	start := aug.StartSymbol()
	startRule := aug.Rule(start)
	kernel := grammar.ItemSet{grammar.NewItem(start, startRule.Productions[0], grammar.EndOfInput)}
	initial := aug.Closure1(kernel)

	a := &Automaton{
		states:      map[string]State{},
		transitions: map[string]map[string]string{},
	}
	key := initial.CoreKey()
	names := map[string]string{key: "0"}
	a.states["0"] = State{Name: "0", Items: initial}
	a.order = append(a.order, "0")
	a.Initial = "0"

	worklist := []string{"0"}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		for _, sym := range outgoingSymbols(a.states[cur].Items) {
			moved := gotoSet1(aug, a.states[cur].Items, sym)
			if len(moved) == 0 {
				continue
			}
			mkey := fullKey(moved)
			name, exists := names[mkey]
			if !exists {
				name = fmt.Sprintf("%d", len(a.order))
				names[mkey] = name
				a.states[name] = State{Name: name, Items: moved}
				a.order = append(a.order, name)
				worklist = append(worklist, name)
			}
			addTransition(a, cur, sym, name)
		}
	}

	return a
}

// fullKey distinguishes LR(1) states by core AND lookaheads, so the
// canonical (unmerged) LR(1) collection keeps states separate that LALR(1)
// would later merge.
func fullKey(items grammar.ItemSet) string {
	parts := make([]string, len(items))
	for i, it := range items {
		las := append([]string(nil), it.Lookaheads...)
		sort.Strings(las)
		parts[i] = it.CoreKey() + "|" + strings.Join(las, ",")
	}
	sort.Strings(parts)
	return strings.Join(parts, "\x00")
}

func outgoingSymbols(items grammar.ItemSet) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		sym, ok := it.NextSymbol()
		if !ok || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func gotoSet0(g *grammar.Grammar, items grammar.ItemSet, sym string) grammar.ItemSet {
	var kernel grammar.ItemSet
	for _, it := range items {
		next, ok := it.NextSymbol()
		if ok && next == sym {
			kernel = append(kernel, it.Advance())
		}
	}
	if len(kernel) == 0 {
		return nil
	}
	return g.Closure0(kernel)
}

func gotoSet1(g *grammar.Grammar, items grammar.ItemSet, sym string) grammar.ItemSet {
	var kernel grammar.ItemSet
	for _, it := range items {
		next, ok := it.NextSymbol()
		if ok && next == sym {
			kernel = append(kernel, it.Advance())
		}
	}
	if len(kernel) == 0 {
		return nil
	}
	return g.Closure1(kernel)
}

func addTransition(a *Automaton, from, sym, to string) {
	row, ok := a.transitions[from]
	if !ok {
		row = map[string]string{}
		a.transitions[from] = row
	}
	row[sym] = to
}
