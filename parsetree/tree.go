// Package parsetree holds the concrete parse tree a driver.Driver builds
// while running a shift-reduce parse.
package parsetree

import (
	"fmt"
	"strings"
)

const (
	levelEmpty             = "        "
	levelOngoing           = "  |     "
	levelPrefix            = "  |%s: "
	levelPrefixLast        = `  \%s: `
	levelPrefixNamePadChar = '-'
	levelPrefixPadAmount   = 3
)

func makeLevelPrefix(msg string) string {
	for len([]rune(msg)) < levelPrefixPadAmount {
		msg = string(levelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(levelPrefix, msg)
}

func makeLevelPrefixLast(msg string) string {
	for len([]rune(msg)) < levelPrefixPadAmount {
		msg = string(levelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(levelPrefixLast, msg)
}

// Tree is a single node of a concrete parse tree: either a terminal leaf
// carrying the literal token value that was shifted, or an interior node
// for a reduced nonterminal, carrying the production index that produced
// it and the subtrees matched by that production's right-hand side, in
// left-to-right order.
type Tree struct {
	// Terminal is whether this node is a shifted terminal leaf.
	Terminal bool

	// Symbol is the terminal or nonterminal name at this node.
	Symbol string

	// Token is the literal input token this node was built from, valid
	// only when Terminal is true.
	Token string

	// ProductionIndex is the index, within Symbol's rule, of the production
	// that was reduced to build this node. Valid only when Terminal is
	// false.
	ProductionIndex int

	// Children is every subtree matched by the production's right-hand
	// side, left to right. A reduction by an epsilon production still gets
	// exactly one child here: a terminal leaf node whose Symbol is "ε",
	// carrying no input token, so the reduction is visible in the tree
	// rather than silently producing a childless interior node.
	Children []*Tree
}

// String returns a prettified, line-by-line representation of the tree
// suitable for structural comparison in tests.
func (t Tree) String() string {
	return t.leveledStr("", "")
}

// Copy returns a deep copy of the tree.
func (t Tree) Copy() Tree {
	dup := Tree{
		Terminal:        t.Terminal,
		Symbol:          t.Symbol,
		Token:           t.Token,
		ProductionIndex: t.ProductionIndex,
		Children:        make([]*Tree, len(t.Children)),
	}
	for i := range t.Children {
		if t.Children[i] != nil {
			child := t.Children[i].Copy()
			dup.Children[i] = &child
		}
	}
	return dup
}

func (t Tree) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder

	sb.WriteString(firstPrefix)
	if t.Terminal {
		fmt.Fprintf(&sb, "(TERM %s %q)", t.Symbol, t.Token)
	} else {
		fmt.Fprintf(&sb, "( %s )", t.Symbol)
	}

	for i := range t.Children {
		sb.WriteRune('\n')
		var childFirst, childCont string
		if i+1 < len(t.Children) {
			childFirst = contPrefix + makeLevelPrefix("")
			childCont = contPrefix + levelOngoing
		} else {
			childFirst = contPrefix + makeLevelPrefixLast("")
			childCont = contPrefix + levelEmpty
		}
		sb.WriteString(t.Children[i].leveledStr(childFirst, childCont))
	}

	return sb.String()
}

// Equal returns whether t and o have the same structure: same terminal
// flag, same symbol, same token (if terminal), and recursively equal
// children in the same order.
func (t Tree) Equal(o any) bool {
	var other Tree
	switch v := o.(type) {
	case Tree:
		other = v
	case *Tree:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if t.Terminal != other.Terminal || t.Symbol != other.Symbol {
		return false
	}
	if t.Terminal && t.Token != other.Token {
		return false
	}
	if len(t.Children) != len(other.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
