// Package parsetable builds the ACTION/GOTO parsing table an LR driver
// reads from a viable-prefix automaton, including conflict detection for
// grammars that are not in the requested LR variant.
package parsetable

import (
	"fmt"
	"strings"

	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/internal/util"
	"github.com/dekarrin/rosed"
)

// ActionKind identifies what kind of entry occupies an ACTION table cell.
type ActionKind int

const (
	// Error is the zero value: no action defined for this state/symbol.
	Error ActionKind = iota
	Shift
	Reduce
	Accept
)

// String renders the action kind's conventional short name.
func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is a single ACTION table entry: shift to State, reduce by
// NonTerminal -> Production, or accept. Error actions carry no data.
type Action struct {
	Kind        ActionKind
	State       string
	NonTerminal string
	Production  grammar.Production
}

// String renders the action the way a table dump or a trace line would,
// e.g. "shift 4", "reduce E -> T", or "accept".
func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %s", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %s -> %s", a.NonTerminal, a.Production)
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Equal returns whether a and o are the same action.
func (a Action) Equal(o Action) bool {
	return a.Kind == o.Kind && a.State == o.State && a.NonTerminal == o.NonTerminal && a.Production.Equal(o.Production)
}

// Cell is an ACTION table entry that may hold more than one candidate
// action, when the grammar is ambiguous for the requested variant. Resolved
// names the conflict-resolution policy explicitly rather than leaving it as
// an inline "just take the first one" at the call site: parsegen always
// prefers the action that was inserted first, which for shift/reduce is
// whichever of the two was discovered first while filling the table (shift
// entries are filled before reduce entries within a state, so shift wins
// ties the way a hand-built yacc-style table conventionally does).
type Cell struct {
	Actions []Action
}

// Resolved returns the cell's first action: the same action Parse will use.
// Returns the zero Action (kind Error) if the cell is empty.
func (c Cell) Resolved() Action {
	if len(c.Actions) == 0 {
		return Action{}
	}
	return c.Actions[0]
}

// Conflicted returns whether the cell holds more than one candidate action.
func (c Cell) Conflicted() bool {
	return len(c.Actions) > 1
}

// ConflictKind classifies a recorded conflict by which two action kinds
// collided.
type ConflictKind int

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
	AcceptShift
	AcceptReduce
)

// String renders the conflict kind's conventional short name.
func (k ConflictKind) String() string {
	switch k {
	case ShiftReduce:
		return "shift/reduce"
	case ReduceReduce:
		return "reduce/reduce"
	case AcceptShift:
		return "accept/shift"
	case AcceptReduce:
		return "accept/reduce"
	default:
		return "unknown"
	}
}

// Conflict describes one ACTION table cell that received more than one
// candidate action during construction.
type Conflict struct {
	State    string
	Terminal string
	Kind     ConflictKind
	Actions  []Action
}

// String renders a human-readable description of the conflict, in the
// style of "shift/reduce conflict on terminal "+" in state 9: shift 7 or
// reduce E -> E + T".
func (c Conflict) String() string {
	parts := make([]string, len(c.Actions))
	for i, a := range c.Actions {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s conflict on terminal %q in state %s: %s", c.Kind, c.Terminal, c.State, strings.Join(parts, " or "))
}

// Table is a built ACTION/GOTO parsing table: one ACTION row per automaton
// state and terminal, one GOTO row per automaton state and nonterminal.
type Table struct {
	Variant   automaton.Variant
	Initial   string
	Automaton *automaton.Automaton

	action map[string]map[string]Cell
	gotoT  map[string]map[string]string

	conflicts []Conflict
}

// Action returns the ACTION cell for the given state and terminal. Returns
// the zero Cell (no actions, i.e. error) if none was ever recorded.
func (t *Table) Action(state, terminal string) Cell {
	return t.action[state][terminal]
}

// Goto returns the automaton state to transition to after reducing to
// nonterminal while in state, and whether an entry exists.
func (t *Table) Goto(state, nonterminal string) (string, bool) {
	row, ok := t.gotoT[state]
	if !ok {
		return "", false
	}
	to, ok := row[nonterminal]
	return to, ok
}

// Conflicts returns every conflict recorded while building the table, in
// discovery order. Empty means the grammar is unambiguous for Variant.
func (t *Table) Conflicts() []Conflict {
	out := make([]Conflict, len(t.conflicts))
	copy(out, t.conflicts)
	return out
}

// Valid returns whether the grammar was found free of conflicts for this
// table's variant.
func (t *Table) Valid() bool {
	return len(t.conflicts) == 0
}

func (t *Table) recordAction(state, terminal string, a Action) {
	row, ok := t.action[state]
	if !ok {
		row = map[string]Cell{}
		t.action[state] = row
	}
	cell := row[terminal]
	for _, existing := range cell.Actions {
		if existing.Equal(a) {
			row[terminal] = cell
			return
		}
	}
	cell.Actions = append(cell.Actions, a)
	row[terminal] = cell

	if len(cell.Actions) > 1 {
		t.conflicts = append(t.conflicts, Conflict{
			State:    state,
			Terminal: terminal,
			Kind:     classify(cell.Actions),
			Actions:  append([]Action(nil), cell.Actions...),
		})
	}
}

func classify(actions []Action) ConflictKind {
	hasShift, hasReduce, hasAccept := false, false, false
	for _, a := range actions {
		switch a.Kind {
		case Shift:
			hasShift = true
		case Reduce:
			hasReduce = true
		case Accept:
			hasAccept = true
		}
	}
	switch {
	case hasAccept && hasShift:
		return AcceptShift
	case hasAccept && hasReduce:
		return AcceptReduce
	case hasShift && hasReduce:
		return ShiftReduce
	default:
		return ReduceReduce
	}
}

func (t *Table) recordGoto(state, nonterminal, to string) {
	row, ok := t.gotoT[state]
	if !ok {
		row = map[string]string{}
		t.gotoT[state] = row
	}
	row[nonterminal] = to
}

// String renders the table as an ACTION/GOTO grid, one row per state,
// using the same column-aligned text-table rendering approach the teacher
// repo's table dumps use.
func (t *Table) String() string {
	terminals := map[string]bool{}
	nonterminals := map[string]bool{}
	for _, row := range t.action {
		for term := range row {
			terminals[term] = true
		}
	}
	for _, row := range t.gotoT {
		for nt := range row {
			nonterminals[nt] = true
		}
	}
	termCols := util.OrderedKeys(terminals)
	ntCols := util.OrderedKeys(nonterminals)

	header := append([]string{"STATE"}, termCols...)
	header = append(header, ntCols...)

	var data [][]string
	data = append(data, header)

	states := t.Automaton.States()
	for _, s := range states {
		row := []string{s.Name}
		for _, term := range termCols {
			row = append(row, t.Action(s.Name, term).Resolved().String())
		}
		for _, nt := range ntCols {
			to, ok := t.Goto(s.Name, nt)
			if ok {
				row = append(row, to)
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 12, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
