// Package grammar holds the context-free grammar model parsegen builds LR
// automata from: symbols, productions, and the nullable/FIRST/FOLLOW
// fixed-point analysis every table-construction variant depends on.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/parsegen/ierr"
	"github.com/dekarrin/parsegen/internal/util"
)

// EndOfInput is the lookahead symbol placed at the end of every token
// stream and used as the augmented start production's follow symbol.
const EndOfInput = "$"

// Epsilon is the production representing the empty string. A production is
// epsilon if and only if it has exactly one element and that element is "".
var Epsilon = Production{""}

// Production is a right-hand side: a sequence of terminal and nonterminal
// symbols. Epsilon is represented as the single-element Production{""}.
type Production []string

// IsEpsilon returns whether p is the empty production.
func (p Production) IsEpsilon() bool {
	return len(p) == 1 && p[0] == ""
}

// Copy returns a duplicate of p.
func (p Production) Copy() Production {
	dup := make(Production, len(p))
	copy(dup, p)
	return dup
}

// Equal returns whether p and o name the exact same symbol sequence.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders p as space-separated symbols, or "ε" if it is epsilon.
func (p Production) String() string {
	if p.IsEpsilon() {
		return "ε"
	}
	return strings.Join(p, " ")
}

// Rule is every production associated with a single nonterminal.
type Rule struct {
	NonTerminal string
	Productions []Production
}

// Copy returns a duplicate of r.
func (r Rule) Copy() Rule {
	dup := Rule{NonTerminal: r.NonTerminal, Productions: make([]Production, len(r.Productions))}
	for i, p := range r.Productions {
		dup.Productions[i] = p.Copy()
	}
	return dup
}

// Grammar is a context-free grammar: a set of declared terminals and a set
// of nonterminal rules, plus a designated start symbol.
type Grammar struct {
	rulesByName map[string]int
	rules       []Rule
	terminals   map[string]bool
	termOrder   []string
	Start       string
}

// New returns an empty Grammar ready to have terminals and rules added.
func New() *Grammar {
	return &Grammar{
		rulesByName: map[string]int{},
		terminals:   map[string]bool{},
	}
}

// AddTerm declares terminal as a valid terminal symbol. terminal must be
// non-empty and composed only of lowercase letters, digits, underscores,
// and hyphens; AddTerm panics otherwise, mirroring the grammar builders
// this package's callers rely on to catch typos at construction time rather
// than deep inside table building.
func (g *Grammar) AddTerm(terminal string) {
	if terminal == "" {
		panic("terminal name cannot be empty")
	}
	if terminal == EndOfInput {
		panic(fmt.Sprintf("terminal name cannot be the reserved end-of-input symbol %q", EndOfInput))
	}
	if !isTerminalName(terminal) {
		panic(fmt.Sprintf("terminal name %q must be lowercase letters, digits, '_', or '-' only", terminal))
	}
	if !g.terminals[terminal] {
		g.termOrder = append(g.termOrder, terminal)
	}
	g.terminals[terminal] = true
}

// AddRule adds production as a right-hand side of nonterminal, declaring
// nonterminal if this is its first production. nonterminal must be
// non-empty and composed only of uppercase letters, digits, underscores,
// and hyphens; production must be non-empty and may not mix the epsilon
// symbol "" with other symbols. AddRule panics on any violation.
func (g *Grammar) AddRule(nonterminal string, production []string) {
	if nonterminal == "" {
		panic("nonterminal name cannot be empty")
	}
	if !isNonTerminalName(nonterminal) {
		panic(fmt.Sprintf("nonterminal name %q must be uppercase letters, digits, '_', or '-' only", nonterminal))
	}
	if len(production) == 0 {
		panic("production cannot be empty; use [\"\"] to specify epsilon")
	}
	if len(production) > 1 {
		for _, sym := range production {
			if sym == "" {
				panic("epsilon symbol cannot be mixed with other symbols in a production")
			}
		}
	}

	prod := Production(append([]string(nil), production...))

	idx, ok := g.rulesByName[nonterminal]
	if !ok {
		idx = len(g.rules)
		g.rules = append(g.rules, Rule{NonTerminal: nonterminal})
		g.rulesByName[nonterminal] = idx
	}
	g.rules[idx].Productions = append(g.rules[idx].Productions, prod)

	if g.Start == "" {
		g.Start = nonterminal
	}
}

func isTerminalName(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '_' && r != '-' {
			return false
		}
	}
	return true
}

func isNonTerminalName(s string) bool {
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') && r != '_' && r != '-' {
			return false
		}
	}
	return true
}

// StartSymbol returns the grammar's designated start nonterminal.
func (g *Grammar) StartSymbol() string {
	return g.Start
}

// IsTerminal returns whether sym was declared with AddTerm, or is the
// reserved end-of-input symbol.
func (g *Grammar) IsTerminal(sym string) bool {
	return sym == EndOfInput || g.terminals[sym]
}

// IsNonTerminal returns whether sym names a declared rule.
func (g *Grammar) IsNonTerminal(sym string) bool {
	_, ok := g.rulesByName[sym]
	return ok
}

// Terminals returns every declared terminal, in declaration order.
func (g *Grammar) Terminals() []string {
	out := make([]string, len(g.termOrder))
	copy(out, g.termOrder)
	return out
}

// NonTerminals returns every declared nonterminal, sorted.
func (g *Grammar) NonTerminals() []string {
	return util.OrderedKeys(g.rulesByName)
}

// Rule returns the rule for nonterminal. The zero Rule is returned if
// nonterminal was never declared; callers that need to distinguish "no
// productions" from "undeclared" should check IsNonTerminal first.
func (g *Grammar) Rule(nonterminal string) Rule {
	idx, ok := g.rulesByName[nonterminal]
	if !ok {
		return Rule{NonTerminal: nonterminal}
	}
	return g.rules[idx]
}

// Rules returns every rule in the grammar, in declaration order.
func (g *Grammar) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// GenerateUniqueNonTerminal returns a nonterminal name that does not
// collide with any already declared, built by appending "-P" to original
// until no existing rule matches.
func (g *Grammar) GenerateUniqueNonTerminal(original string) string {
	candidate := original
	for g.IsNonTerminal(candidate) {
		candidate = candidate + "-P"
	}
	return candidate
}

// Augmented returns a copy of g with a new start rule S' -> S added as its
// first rule, where S is the original start symbol and S' is a freshly
// generated name
// that does not collide with any existing nonterminal. This is the
// standard first step of LR automaton construction (purple dragon book
// algorithm 4.53 and others): it guarantees the accepting state is reached
// by a reduction unique to the whole input, not one shared with any other
// reduction of the start symbol.
func (g *Grammar) Augmented() *Grammar {
	aug := New()
	aug.terminals = make(map[string]bool, len(g.terminals))
	for k, v := range g.terminals {
		aug.terminals[k] = v
	}
	aug.termOrder = append([]string(nil), g.termOrder...)

	newStart := g.GenerateUniqueNonTerminal(g.Start + "-START")
	aug.AddRule(newStart, []string{g.Start})
	aug.Start = newStart

	for _, r := range g.rules {
		for _, p := range r.Productions {
			aug.AddRule(r.NonTerminal, append([]string(nil), p...))
		}
	}
	return aug
}

// Validate checks that every symbol referenced in a production was
// declared (as a terminal or a nonterminal), that a start symbol exists,
// and that every nonterminal is reachable from the start symbol. It
// returns a MalformedGrammarError describing the first problem found.
func (g *Grammar) Validate() error {
	if g.Start == "" {
		return ierr.MalformedGrammar("grammar has no start symbol; add at least one rule")
	}
	if !g.IsNonTerminal(g.Start) {
		return ierr.MalformedGrammarf("start symbol %q has no productions", g.Start)
	}

	for _, r := range g.rules {
		for _, p := range r.Productions {
			if p.IsEpsilon() {
				continue
			}
			for _, sym := range p {
				if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
					return ierr.MalformedGrammarf(
						"production %s -> %s references undeclared symbol %q",
						r.NonTerminal, p, sym,
					)
				}
			}
		}
	}

	reachable := map[string]bool{g.Start: true}
	frontier := []string{g.Start}
	for len(frontier) > 0 {
		nt := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, p := range g.Rule(nt).Productions {
			for _, sym := range p {
				if g.IsNonTerminal(sym) && !reachable[sym] {
					reachable[sym] = true
					frontier = append(frontier, sym)
				}
			}
		}
	}
	for _, nt := range g.NonTerminals() {
		if !reachable[nt] {
			return ierr.MalformedGrammarf("nonterminal %q is unreachable from start symbol %q", nt, g.Start)
		}
	}

	return nil
}

// String renders the grammar's productions and FIRST/FOLLOW sets, one
// nonterminal per line, for debugging and CLI display.
func (g *Grammar) String() string {
	var sb strings.Builder
	for _, nt := range g.NonTerminals() {
		r := g.Rule(nt)
		parts := make([]string, len(r.Productions))
		for i, p := range r.Productions {
			parts[i] = p.String()
		}
		fmt.Fprintf(&sb, "%s -> %s\n", nt, strings.Join(parts, " | "))
		fmt.Fprintf(&sb, "    FIRST:  %s\n", g.FIRST(nt).String())
		fmt.Fprintf(&sb, "    FOLLOW: %s\n", g.FOLLOW(nt).String())
	}
	return sb.String()
}

// nullable computes, for every nonterminal, whether it can derive the empty
// string, via worklist fixed-point iteration: start with nonterminals that
// have a direct epsilon production, then repeatedly mark any nonterminal
// all of whose symbols in some production are already known nullable,
// until a pass adds nothing new.
func (g *Grammar) nullable() map[string]bool {
	null := map[string]bool{}
	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			if null[r.NonTerminal] {
				continue
			}
			for _, p := range r.Productions {
				if p.IsEpsilon() {
					null[r.NonTerminal] = true
					changed = true
					break
				}
				allNullable := true
				for _, sym := range p {
					if !g.IsNonTerminal(sym) || !null[sym] {
						allNullable = false
						break
					}
				}
				if allNullable {
					null[r.NonTerminal] = true
					changed = true
					break
				}
			}
		}
	}
	return null
}

// Nullable returns whether nonterminal X can derive the empty string.
func (g *Grammar) Nullable(X string) bool {
	return g.nullable()[X]
}

// FIRST returns FIRST(X): the set of terminals (and, if X is nullable,
// possibly nothing else, since ε membership is tracked separately via
// Nullable) that can begin a string derived from X. Computed via the same
// worklist fixed-point approach as nullable, rather than the naive
// recursive walk that must special-case immediate left recursion: seed
// FIRST(t) = {t} for every terminal t, then repeatedly, for every
// production X -> Y1 Y2 ... Yk, union FIRST(Y1) into FIRST(X), and if Y1 is
// nullable union FIRST(Y2) in too, and so on, until a pass changes nothing.
func (g *Grammar) FIRST(X string) util.StringSet {
	return g.firstSets()[X]
}

func (g *Grammar) firstSets() map[string]util.StringSet {
	null := g.nullable()
	first := map[string]util.StringSet{}
	for _, t := range g.termOrder {
		first[t] = util.StringSetOf([]string{t})
	}
	for _, nt := range g.NonTerminals() {
		first[nt] = util.NewStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			dest := first[r.NonTerminal]
			for _, p := range r.Productions {
				if p.IsEpsilon() {
					continue
				}
				for _, sym := range p {
					set, ok := first[sym]
					if !ok {
						set = util.NewStringSet()
						first[sym] = set
					}
					if dest.Union(set) {
						changed = true
					}
					if g.IsTerminal(sym) || !null[sym] {
						break
					}
				}
			}
		}
	}
	return first
}

// firstOfSequence returns FIRST of a whole symbol sequence: the union of
// FIRST(Y1), and FIRST(Y2) if Y1 is nullable, and so on, plus a flag for
// whether the entire sequence is nullable (so FOLLOW computation knows
// whether to also propagate the producing nonterminal's FOLLOW set).
func (g *Grammar) firstOfSequence(seq []string) (util.StringSet, bool) {
	null := g.nullable()
	first := g.firstSets()
	result := util.NewStringSet()
	for _, sym := range seq {
		if sym == "" {
			continue
		}
		// sym may be the reserved end-of-input marker rather than a
		// declared terminal or nonterminal (callers pass it as a lookahead
		// appended to a production's trailing symbols); it has no entry in
		// first, but its own FIRST set is always itself.
		if sym == EndOfInput {
			result.Add(sym)
			return result, false
		}
		result.Union(first[sym])
		nullableSym := g.IsNonTerminal(sym) && null[sym]
		if !nullableSym {
			return result, false
		}
	}
	return result, true
}

// FOLLOW returns FOLLOW(X): the set of terminals that can immediately
// follow X in some sentential form derivable from the start symbol, plus
// the end-of-input marker if X can be the last symbol before input ends.
// Computed as a two-phase fixed point: seed with FIRST of the suffix after
// each occurrence of X, then repeatedly propagate FOLLOW(A) into FOLLOW(X)
// whenever X is (or can be reduced to, via a nullable suffix) the last
// symbol of some production of A, until a pass changes nothing.
func (g *Grammar) FOLLOW(X string) util.StringSet {
	return g.followSets()[X]
}

func (g *Grammar) followSets() map[string]util.StringSet {
	follow := map[string]util.StringSet{}
	for _, nt := range g.NonTerminals() {
		follow[nt] = util.NewStringSet()
	}
	follow[g.Start] = util.StringSetOf([]string{EndOfInput})

	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			for _, p := range r.Productions {
				if p.IsEpsilon() {
					continue
				}
				for i, sym := range p {
					if !g.IsNonTerminal(sym) {
						continue
					}
					suffix := p[i+1:]
					firstOfSuffix, suffixNullable := g.firstOfSequence(suffix)
					if follow[sym].Union(firstOfSuffix) {
						changed = true
					}
					if suffixNullable {
						if follow[sym].Union(follow[r.NonTerminal]) {
							changed = true
						}
					}
				}
			}
		}
	}
	return follow
}

// SortedSymbols is a helper for deterministic iteration over a set of mixed
// terminal/nonterminal names.
func SortedSymbols(syms map[string]bool) []string {
	out := make([]string, 0, len(syms))
	for s := range syms {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
