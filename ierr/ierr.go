// Package ierr defines the typed error family parsegen returns to callers:
// one kind per way a grammar, a parsing table, or a live parse can fail.
// Each kind is a small struct with an Error() string and a constructor
// function rather than a bare errors.New, so callers that need structured
// detail (which conflicts, which state, what was expected) can type-assert
// instead of parsing a message.
package ierr

import "fmt"

// MalformedGrammarError reports that a grammar failed validation or could
// not be read: a production referenced an undeclared symbol, a nonterminal
// was unreachable from the start symbol, the grammar had no start symbol,
// or a line of grammar text was malformed. Names that break the case
// convention are not reported this way; AddTerm and AddRule panic on them.
type MalformedGrammarError struct {
	msg  string
	wrap error
}

func (e *MalformedGrammarError) Error() string {
	return e.msg
}

func (e *MalformedGrammarError) Unwrap() error {
	return e.wrap
}

// MalformedGrammar returns a MalformedGrammarError with the given message.
func MalformedGrammar(msg string) error {
	return &MalformedGrammarError{msg: msg}
}

// MalformedGrammarf is MalformedGrammar with fmt.Sprintf-style formatting.
func MalformedGrammarf(format string, a ...interface{}) error {
	return &MalformedGrammarError{msg: fmt.Sprintf(format, a...)}
}

// WrapMalformedGrammarf is MalformedGrammarf that also wraps a cause.
func WrapMalformedGrammarf(cause error, format string, a ...interface{}) error {
	return &MalformedGrammarError{msg: fmt.Sprintf(format, a...), wrap: cause}
}

// InvalidForVariantError reports that a grammar's parsing table could not be
// built for the requested LR variant because conflicts were found. Entries
// holds one human-readable description per conflict so a caller can print
// all of them, not just the first.
type InvalidForVariantError struct {
	Variant string
	Entries []string
}

func (e *InvalidForVariantError) Error() string {
	if len(e.Entries) == 1 {
		return fmt.Sprintf("grammar is not %s: %s", e.Variant, e.Entries[0])
	}
	return fmt.Sprintf("grammar is not %s: %d conflicts found", e.Variant, len(e.Entries))
}

// InvalidForVariant returns an InvalidForVariantError for the named variant
// with the given conflict descriptions.
func InvalidForVariant(variant string, entries []string) error {
	return &InvalidForVariantError{Variant: variant, Entries: entries}
}

// ParseError reports that a token stream could not be parsed. State is the
// automaton state the driver was in, Lookahead is the offending token
// class, and Expected lists the token classes that would have been
// accepted there, if any were found.
type ParseError struct {
	msg       string
	State     string
	Lookahead string
	Expected  []string
}

func (e *ParseError) Error() string {
	return e.msg
}

// NewParseError builds a ParseError with a fully-formed message, for callers
// that have already rendered the "expected X, Y, or Z" text themselves.
func NewParseError(msg, state, lookahead string, expected []string) error {
	return &ParseError{msg: msg, State: state, Lookahead: lookahead, Expected: expected}
}

// CorruptStackError reports that the parse driver's internal stack was
// found in a state the algorithm should never produce: a reduction that
// finds fewer tokens, subtrees, or states on its stacks than the
// production's right-hand side needs, a GOTO that had no entry for the
// just-reduced nonterminal, or an accept with no parse tree on the stack.
// This always indicates a
// bug in the table or driver, never malformed input.
type CorruptStackError struct {
	msg string
}

func (e *CorruptStackError) Error() string {
	return e.msg
}

// CorruptStack returns a CorruptStackError with the given message.
func CorruptStack(msg string) error {
	return &CorruptStackError{msg: msg}
}

// CorruptStackf is CorruptStack with fmt.Sprintf-style formatting.
func CorruptStackf(format string, a ...interface{}) error {
	return &CorruptStackError{msg: fmt.Sprintf(format, a...)}
}
