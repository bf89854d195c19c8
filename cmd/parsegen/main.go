/*
Parsegen builds an LR parsing table from a grammar text file and either
prints a report about it or drives an interactive parse of tokens typed at
a prompt.

Usage:

	parsegen [flags] GRAMMAR_FILE

The flags are:

	-V, --variant NAME
		Which LR variant to build the table for: one of lr0, slr1, lr1,
		lalr1. Defaults to the value of "variant" in .parsegen.toml, or
		"lalr1" if no config file is found.

	-t, --trace
		Print a trace line for every stack operation during an interactive
		parse.

	-r, --repl
		After building the table, start an interactive prompt that reads
		whitespace-separated "class:lexeme" tokens and parses them,
		printing the resulting tree or any error, until EOF.

	-c, --config FILE
		Read defaults from the given TOML config file instead of
		".parsegen.toml" in the current directory.

With no -r, parsegen just builds the table, reports whether the grammar is
valid for the requested variant, and prints the table.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/parsegen"
	"github.com/dekarrin/parsegen/config"
	"github.com/dekarrin/parsegen/grammartext"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates a problem loading the grammar or config.
	ExitInitError

	// ExitInvalidGrammar indicates the grammar has conflicts under the
	// requested variant.
	ExitInvalidGrammar

	// ExitParseError indicates an interactive parse failed.
	ExitParseError
)

var (
	returnCode int = ExitSuccess

	flagVariant *string = pflag.StringP("variant", "V", "", "LR variant to build: lr0, slr1, lr1, or lalr1")
	flagTrace   *bool   = pflag.BoolP("trace", "t", false, "Trace stack operations during an interactive parse")
	flagRepl    *bool   = pflag.BoolP("repl", "r", false, "Start an interactive parse prompt after building the table")
	flagConfig  *string = pflag.StringP("config", "c", ".parsegen.toml", "Config file to read defaults from")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "ERROR: expected exactly one argument, the grammar file")
		returnCode = ExitInitError
		return
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	variantName := cfg.Variant
	if *flagVariant != "" {
		variantName = *flagVariant
	}
	variant, err := variantFromName(variantName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	grammarFile := pflag.Arg(0)
	f, err := os.Open(grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	gram, err := grammartext.Read(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	if err := gram.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	p, err := parsegen.New(variant, gram)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	fmt.Printf("built %s table for %d states\n", variant, len(p.Automaton().States()))
	if !p.IsValid() {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", p.ValidationError().Error())
		returnCode = ExitInvalidGrammar
	}
	fmt.Println(p.ParsingTable().String())

	if *flagTrace || cfg.Trace {
		p.SetTracer(func(s string) { fmt.Fprintln(os.Stderr, s) })
	}

	if *flagRepl {
		runREPL(p)
	}
}

func variantFromName(name string) (parsegen.Variant, error) {
	switch strings.ToLower(name) {
	case "lr0":
		return parsegen.LR0, nil
	case "slr1":
		return parsegen.SLR1, nil
	case "lr1":
		return parsegen.LR1, nil
	case "lalr1", "":
		return parsegen.LALR1, nil
	default:
		return parsegen.LALR1, fmt.Errorf("unknown variant %q; must be one of lr0, slr1, lr1, lalr1", name)
	}
}

// runREPL reads "class:lexeme" tokens, one line at a time, and parses each
// line as a full token stream, printing the resulting tree or error. It
// exits cleanly on EOF.
func runREPL(p *parsegen.Parser) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "parsegen> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		tokens, err := tokenizeLine(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitParseError
			continue
		}

		tree, err := p.Parse(tokens)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitParseError
			continue
		}
		fmt.Println(tree.String())
	}
}

func tokenizeLine(line string) ([]parsegen.Token, error) {
	fields := strings.Fields(line)
	tokens := make([]parsegen.Token, len(fields))
	for i, f := range fields {
		class, lexeme, ok := strings.Cut(f, ":")
		if !ok {
			return nil, fmt.Errorf("token %q must be in CLASS:LEXEME form", f)
		}
		tokens[i] = parsegen.Token{Class: class, Lexeme: lexeme}
	}
	return tokens, nil
}
