package parsetable

import (
	"fmt"
	"os"

	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/rezi"
)

// cachedTable is the flat, serializable shape a Table is reduced to before
// being handed to rezi, and rebuilt from after. Table itself is not
// serialized directly since it holds an *automaton.Automaton with
// unexported state; caching only needs the action/goto maps and the
// automaton's state names, not its items or its own internal indices.
type cachedTable struct {
	Variant   int
	Initial   string
	StateIDs  []string
	Action    map[string]map[string][]cachedAction
	Goto      map[string]map[string]string
	Conflicts []cachedConflict
}

type cachedAction struct {
	Kind        int
	State       string
	NonTerminal string
	Production  []string
}

type cachedConflict struct {
	State    string
	Terminal string
	Kind     int
	Actions  []cachedAction
}

func (t *Table) toCached() cachedTable {
	c := cachedTable{
		Variant:  int(t.Variant),
		Initial:  t.Initial,
		Action:   map[string]map[string][]cachedAction{},
		Goto:     map[string]map[string]string{},
		StateIDs: make([]string, 0, len(t.Automaton.States())),
	}
	for _, s := range t.Automaton.States() {
		c.StateIDs = append(c.StateIDs, s.Name)
	}
	for state, row := range t.action {
		out := map[string][]cachedAction{}
		for term, cell := range row {
			actions := make([]cachedAction, len(cell.Actions))
			for i, a := range cell.Actions {
				actions[i] = cachedAction{
					Kind:        int(a.Kind),
					State:       a.State,
					NonTerminal: a.NonTerminal,
					Production:  append([]string(nil), a.Production...),
				}
			}
			out[term] = actions
		}
		c.Action[state] = out
	}
	for state, row := range t.gotoT {
		out := map[string]string{}
		for nt, to := range row {
			out[nt] = to
		}
		c.Goto[state] = out
	}
	for _, conf := range t.conflicts {
		actions := make([]cachedAction, len(conf.Actions))
		for i, a := range conf.Actions {
			actions[i] = cachedAction{
				Kind:        int(a.Kind),
				State:       a.State,
				NonTerminal: a.NonTerminal,
				Production:  append([]string(nil), a.Production...),
			}
		}
		c.Conflicts = append(c.Conflicts, cachedConflict{
			State:    conf.State,
			Terminal: conf.Terminal,
			Kind:     int(conf.Kind),
			Actions:  actions,
		})
	}
	return c
}

// SaveCache serializes t to path using rezi's binary encoding, so a later
// run can skip rebuilding an identical table with LoadCache. The
// automaton's item contents are not preserved, only its state names and
// the transitions already folded into the action/goto maps; LoadCache
// therefore needs the same automaton (or one it does not care to compare
// against) to be rebuilt separately if Table.Automaton is used afterward.
func (t *Table) SaveCache(path string) error {
	data := rezi.EncBinary(t.toCached())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing table cache %q: %w", path, err)
	}
	return nil
}

// LoadCache reads a table previously written with SaveCache. The returned
// Table's Automaton field is left nil; callers that need automaton
// details (for tracing or table rendering) should rebuild the automaton
// from the same grammar and variant with automaton.Build and assign it in.
func LoadCache(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table cache %q: %w", path, err)
	}

	var c cachedTable
	n, err := rezi.DecBinary(data, &c)
	if err != nil {
		return nil, fmt.Errorf("decoding table cache %q: %w", path, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("table cache %q: decoded %d/%d bytes", path, n, len(data))
	}

	t := &Table{
		Variant: automaton.Variant(c.Variant),
		Initial: c.Initial,
		action:  map[string]map[string]Cell{},
		gotoT:   map[string]map[string]string{},
	}
	for state, row := range c.Action {
		out := map[string]Cell{}
		for term, actions := range row {
			cell := Cell{Actions: make([]Action, len(actions))}
			for i, a := range actions {
				cell.Actions[i] = Action{
					Kind:        ActionKind(a.Kind),
					State:       a.State,
					NonTerminal: a.NonTerminal,
					Production:  grammar.Production(a.Production),
				}
			}
			out[term] = cell
		}
		t.action[state] = out
	}
	for state, row := range c.Goto {
		out := map[string]string{}
		for nt, to := range row {
			out[nt] = to
		}
		t.gotoT[state] = out
	}
	for _, conf := range c.Conflicts {
		actions := make([]Action, len(conf.Actions))
		for i, a := range conf.Actions {
			actions[i] = Action{
				Kind:        ActionKind(a.Kind),
				State:       a.State,
				NonTerminal: a.NonTerminal,
				Production:  grammar.Production(a.Production),
			}
		}
		t.conflicts = append(t.conflicts, Conflict{
			State:    conf.State,
			Terminal: conf.Terminal,
			Kind:     ConflictKind(conf.Kind),
			Actions:  actions,
		})
	}

	return t, nil
}
