// Package grammartext reads the plain-text grammar format parsegen accepts
// from files and the CLI: one rule per line, "LHS -> SYM SYM ...", with
// "''" denoting the empty production and "|" separating alternatives on
// the same line.
package grammartext

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/ierr"
)

// Read parses a grammar text stream into a *grammar.Grammar. Terminals are
// declared implicitly: any lowercase symbol seen on the right-hand side of
// a rule that is never itself used as a left-hand side is declared a
// terminal the first time it is encountered. Blank lines and lines whose
// first non-whitespace character is "#" are ignored.
//
// Read does not call Validate; callers should do so once every rule has
// been added, since a rule defining a nonterminal used earlier in the file
// may appear later.
func Read(r io.Reader) (*grammar.Grammar, error) {
	g := grammar.New()
	knownTerms := map[string]bool{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lhs, rhsText, ok := strings.Cut(line, "->")
		if !ok {
			return nil, ierr.MalformedGrammarf("line %d: missing '->': %q", lineNo, line)
		}
		lhs = strings.TrimSpace(lhs)
		if lhs == "" {
			return nil, ierr.MalformedGrammarf("line %d: empty left-hand side", lineNo)
		}

		for _, alt := range strings.Split(rhsText, "|") {
			prod, err := parseProduction(alt)
			if err != nil {
				return nil, ierr.WrapMalformedGrammarf(err, "line %d: %s", lineNo, err)
			}
			for _, sym := range prod {
				if sym != "" && !knownTerms[sym] && isLowerSymbol(sym) {
					knownTerms[sym] = true
					g.AddTerm(sym)
				}
			}
			g.AddRule(lhs, prod)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading grammar text: %w", err)
	}

	return g, nil
}

// ReadString is a convenience wrapper around Read for callers that already
// have the grammar text in memory.
func ReadString(text string) (*grammar.Grammar, error) {
	return Read(strings.NewReader(text))
}

func parseProduction(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "''" || text == `""` {
		return []string{""}, nil
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty production; use '' for epsilon")
	}
	return fields, nil
}

func isLowerSymbol(sym string) bool {
	for _, r := range sym {
		if r >= 'A' && r <= 'Z' {
			return false
		}
	}
	return true
}
