// Package util holds small generic helpers shared across parsegen's
// packages: ordered string sets, a LIFO stack, and text-formatting helpers
// for error messages.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// StringSet is a set of strings with deterministic iteration via Elements.
type StringSet map[string]bool

// NewStringSet creates an empty StringSet.
func NewStringSet() StringSet {
	return StringSet{}
}

// StringSetOf creates a StringSet containing exactly the given items.
func StringSetOf(items []string) StringSet {
	s := NewStringSet()
	s.AddAll(items)
	return s
}

// Add puts an item in the set, returning whether the set was modified.
func (s StringSet) Add(item string) bool {
	if s[item] {
		return false
	}
	s[item] = true
	return true
}

// AddAll puts every item in items into the set, returning whether the set
// was modified by any of them.
func (s StringSet) AddAll(items []string) bool {
	changed := false
	for _, it := range items {
		if s.Add(it) {
			changed = true
		}
	}
	return changed
}

// Union adds every member of other into s, returning whether s changed.
func (s StringSet) Union(other StringSet) bool {
	changed := false
	for k := range other {
		if s.Add(k) {
			changed = true
		}
	}
	return changed
}

// Has returns whether item is a member of the set.
func (s StringSet) Has(item string) bool {
	return s[item]
}

// Remove deletes item from the set, returning whether it had been present.
func (s StringSet) Remove(item string) bool {
	if !s[item] {
		return false
	}
	delete(s, item)
	return true
}

// Len returns the number of members in the set.
func (s StringSet) Len() int {
	return len(s)
}

// Elements returns the sorted members of the set.
func (s StringSet) Elements() []string {
	items := make([]string, 0, len(s))
	for k := range s {
		items = append(items, k)
	}
	sort.Strings(items)
	return items
}

// Copy returns a shallow duplicate of the set.
func (s StringSet) Copy() StringSet {
	dup := make(StringSet, len(s))
	for k, v := range s {
		dup[k] = v
	}
	return dup
}

// Equal returns whether s and other contain the exact same members.
func (s StringSet) Equal(other StringSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other[k] {
			return false
		}
	}
	return true
}

// String returns the set's members, comma-separated and sorted, wrapped in
// braces, e.g. "{a, b, c}".
func (s StringSet) String() string {
	return "{" + strings.Join(s.Elements(), ", ") + "}"
}

// OrderedKeys returns the keys of m in sorted order. Used anywhere a map is
// iterated for display or for a deterministic build order (grammar rule
// names, terminal names, automaton state names).
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MakeTextList joins items into a human-readable, oxford-comma list, e.g.
// "a", "a and b", or "a, b, and c".
func MakeTextList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// ArticleFor returns "a" or "an" depending on the leading sound of word, and
// capitalizes it if capitalize is set. Used to build messages like "expected
// an identifier" vs "expected a number".
func ArticleFor(word string, capitalize bool) string {
	article := "a"
	if len(word) > 0 && strings.ContainsRune("aeiouAEIOU", rune(word[0])) {
		article = "an"
	}
	if capitalize {
		return strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}

// QuoteEach wraps every item in item in Go-style double quotes, for use in
// MakeTextList calls that need to render string literals.
func QuoteEach(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = fmt.Sprintf("%q", it)
	}
	return out
}
