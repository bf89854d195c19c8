package grammar

import (
	"fmt"
	"strings"
)

// Item is an LR(1) item: a production with a dot marking how much of its
// right-hand side has been matched so far, plus a set of lookahead
// terminals valid for reducing by this item. LR(0) items are represented
// the same way with Lookaheads left empty; callers that only care about the
// LR(0) core should compare on NonTerminal/Left/Right alone (see Core).
type Item struct {
	NonTerminal string
	Left        []string
	Right       []string
	Lookaheads  []string
}

// NewItem returns the initial item for nonterminal -> production, with the
// dot before the first symbol.
func NewItem(nonterminal string, production Production, lookaheads ...string) Item {
	right := make([]string, len(production))
	copy(right, production)
	if len(right) == 1 && right[0] == "" {
		right = nil
	}
	return Item{
		NonTerminal: nonterminal,
		Right:       right,
		Lookaheads:  append([]string(nil), lookaheads...),
	}
}

// AtEnd returns whether the dot has reached the end of the production,
// i.e. this item is ready to reduce.
func (it Item) AtEnd() bool {
	return len(it.Right) == 0
}

// NextSymbol returns the symbol immediately after the dot, and whether one
// exists (false if AtEnd()).
func (it Item) NextSymbol() (string, bool) {
	if it.AtEnd() {
		return "", false
	}
	return it.Right[0], true
}

// Advance returns a copy of it with the dot moved one symbol to the right.
// It panics if called on an item already AtEnd.
func (it Item) Advance() Item {
	if it.AtEnd() {
		panic("cannot advance an item whose dot is already at the end")
	}
	next := Item{
		NonTerminal: it.NonTerminal,
		Left:        make([]string, len(it.Left)+1),
		Right:       make([]string, len(it.Right)-1),
		Lookaheads:  append([]string(nil), it.Lookaheads...),
	}
	copy(next.Left, it.Left)
	next.Left[len(it.Left)] = it.Right[0]
	copy(next.Right, it.Right[1:])
	return next
}

// Production reconstructs the full right-hand side this item was built
// from, ignoring the dot position.
func (it Item) Production() Production {
	if len(it.Left) == 0 && len(it.Right) == 0 {
		return Epsilon
	}
	full := make(Production, 0, len(it.Left)+len(it.Right))
	full = append(full, it.Left...)
	full = append(full, it.Right...)
	return full
}

// Core returns a copy of it with the Lookaheads cleared, for comparisons
// and grouping that only care about the LR(0) core (used by LALR(1) state
// merging).
func (it Item) Core() Item {
	return Item{NonTerminal: it.NonTerminal, Left: it.Left, Right: it.Right}
}

// CoreKey returns a string uniquely identifying it.Core(), suitable for use
// as a map key when grouping items or states by LR(0) core.
func (it Item) CoreKey() string {
	return fmt.Sprintf("%s -> %s . %s", it.NonTerminal, strings.Join(it.Left, " "), strings.Join(it.Right, " "))
}

// Equal returns whether it and o have the same core and the same set of
// lookaheads (order-independent).
func (it Item) Equal(o Item) bool {
	if it.CoreKey() != o.CoreKey() {
		return false
	}
	if len(it.Lookaheads) != len(o.Lookaheads) {
		return false
	}
	have := map[string]bool{}
	for _, l := range it.Lookaheads {
		have[l] = true
	}
	for _, l := range o.Lookaheads {
		if !have[l] {
			return false
		}
	}
	return true
}

// String renders it in dotted-production notation, e.g. "E -> T . + E,
// $/)".
func (it Item) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s -> ", it.NonTerminal)
	if len(it.Left) == 0 && len(it.Right) == 0 {
		sb.WriteString(".")
	} else {
		sb.WriteString(strings.Join(it.Left, " "))
		sb.WriteString(" . ")
		sb.WriteString(strings.Join(it.Right, " "))
	}
	if len(it.Lookaheads) > 0 {
		sb.WriteString(", ")
		sb.WriteString(strings.Join(it.Lookaheads, "/"))
	}
	return sb.String()
}

// LR0Items returns every LR(0) item derivable from r's productions: one
// item per dot position, from before the first symbol to after the last,
// for each production.
func (r Rule) LR0Items() []Item {
	var items []Item
	for _, p := range r.Productions {
		items = append(items, productionItems(r.NonTerminal, p)...)
	}
	return items
}

func productionItems(nonterminal string, p Production) []Item {
	right := []string(p)
	if p.IsEpsilon() {
		right = nil
	}
	items := make([]Item, 0, len(right)+1)
	for dot := 0; dot <= len(right); dot++ {
		items = append(items, Item{
			NonTerminal: nonterminal,
			Left:        append([]string(nil), right[:dot]...),
			Right:       append([]string(nil), right[dot:]...),
		})
	}
	return items
}
