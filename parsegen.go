// Package parsegen builds LR(0), SLR(1), LR(1), and LALR(1) parsing tables
// from a context-free grammar and runs a shift-reduce parser against them.
//
// A typical caller reads a grammar with grammartext.Read, constructs a
// Parser for the variant it wants with New, checks IsValid to see whether
// the grammar was actually unambiguous under that variant, and then calls
// Parse on a token stream to get a concrete parse tree back.
package parsegen

import (
	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/driver"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/ierr"
	"github.com/dekarrin/parsegen/parsetable"
	"github.com/dekarrin/parsegen/parsetree"
)

// Variant selects which LR table-construction algorithm a Parser uses.
type Variant = automaton.Variant

// The four supported LR variants, weakest to strongest.
const (
	LR0   = automaton.LR0
	SLR1  = automaton.SLR1
	LR1   = automaton.LR1
	LALR1 = automaton.LALR1
)

// Token is a single input symbol handed to Parser.Parse.
type Token = driver.Token

// Tree is a concrete parse tree produced by Parser.Parse.
type Tree = parsetree.Tree

// Parser builds and holds a parsing table for one grammar under one
// variant, and runs the shift-reduce driver over it.
type Parser struct {
	gram    *grammar.Grammar
	variant Variant
	table   *parsetable.Table
	tracer  func(string)
}

// New builds a Parser for gram under variant. It always succeeds as long
// as gram itself passes validation; a grammar that has conflicts under the
// requested variant still produces a Parser, just one whose IsValid
// returns false and whose Parse takes the first recorded action of any
// conflicted cell it reaches (see parsetable.Cell.Resolved). Callers that
// want conflicts to be fatal
// should check IsValid themselves and consult ParsingTable().Conflicts()
// for ierr.InvalidForVariant-style reporting.
func New(variant Variant, gram *grammar.Grammar) (*Parser, error) {
	table, err := parsetable.Build(gram, variant)
	if err != nil {
		return nil, err
	}
	return &Parser{gram: gram, variant: variant, table: table}, nil
}

// IsValid returns whether the grammar is free of conflicts under this
// Parser's variant, i.e. whether every ACTION cell in its table holds at
// most one action.
func (p *Parser) IsValid() bool {
	return p.table.Valid()
}

// ValidationError returns an ierr.InvalidForVariantError describing every
// conflict found, or nil if IsValid is true.
func (p *Parser) ValidationError() error {
	if p.IsValid() {
		return nil
	}
	conflicts := p.table.Conflicts()
	entries := make([]string, len(conflicts))
	for i, c := range conflicts {
		entries[i] = c.String()
	}
	return ierr.InvalidForVariant(p.variant.String(), entries)
}

// Grammar returns the grammar this Parser was built from.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.gram
}

// Automaton returns the viable-prefix automaton underlying this Parser's
// table.
func (p *Parser) Automaton() *automaton.Automaton {
	return p.table.Automaton
}

// ParsingTable returns the built ACTION/GOTO table.
func (p *Parser) ParsingTable() *parsetable.Table {
	return p.table
}

// Parse runs the shift-reduce driver over tokens and returns the resulting
// parse tree, or an *ierr.ParseError if the input does not match the
// grammar, or an *ierr.CorruptStackError if the table itself is
// malformed (should only happen for a conflicted table built despite
// IsValid returning false).
func (p *Parser) Parse(tokens []Token) (*Tree, error) {
	d := driver.New(p.table, p.gram)
	if p.tracer != nil {
		d.SetTracer(p.tracer)
	}
	return d.Parse(tokens)
}

// SetTracer registers a callback invoked with a trace line at every
// shift/reduce/goto/accept step of the next Parse call and all calls after
// it.
func (p *Parser) SetTracer(fn func(string)) {
	p.tracer = fn
}
