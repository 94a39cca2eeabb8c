// Package table implements the shared contract of the simple stages: each
// input character maps to zero or more output characters through a fixed
// lookup table, and anything absent from the table passes through.
package table

import (
	"sort"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/FocuswithJustin/yosina/core/chars"
)

// Table maps a grapheme cluster to its replacement. An empty replacement
// deletes the character.
type Table map[string]string

// Transliterator applies a Table.
type Transliterator struct {
	name  string
	table Table
}

// New returns a Transliterator over t. The table must not be modified
// afterwards.
func New(name string, t Table) *Transliterator {
	return &Transliterator{name: name, table: t}
}

// Name identifies the table, e.g. "spaces".
func (t *Transliterator) Name() string {
	return t.name
}

// Len returns the number of mapped characters.
func (t *Transliterator) Len() int {
	return len(t.table)
}

// Lookup returns the replacement for s.
func (t *Transliterator) Lookup(s string) (string, bool) {
	v, ok := t.table[s]
	return v, ok
}

// Keys returns the mapped characters in sorted order.
func (t *Transliterator) Keys() []string {
	keys := make([]string, 0, len(t.table))
	for k := range t.table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Transliterate replaces every mapped character of in.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return chars.Transform(in, func(c *chars.Char) (string, bool) {
		v, ok := t.table[c.Value]
		return v, ok
	})
}

// Lazy builds a table on first use and shares it afterwards.
type Lazy struct {
	name  string
	build func() Table
	once  sync.Once
	t     *Transliterator
}

// NewLazy returns a Lazy that calls build at most once.
func NewLazy(name string, build func() Table) *Lazy {
	return &Lazy{name: name, build: build}
}

// Get returns the shared Transliterator, building it if needed.
func (l *Lazy) Get() *Transliterator {
	l.once.Do(func() {
		l.t = New(l.name, l.build())
	})
	return l.t
}

// Merge copies the entries of every table into a new one. Later tables
// win on duplicate keys.
func Merge(tables ...Table) Table {
	n := 0
	for _, t := range tables {
		n += len(t)
	}
	out := make(Table, n)
	for _, t := range tables {
		for k, v := range t {
			out[k] = v
		}
	}
	return out
}

// FromRunes builds a table from single-scalar keys.
func FromRunes(m map[rune]string) Table {
	out := make(Table, len(m))
	for r, v := range m {
		out[string(r)] = v
	}
	return out
}

// AddNFKC maps every scalar in [lo, hi] whose compatibility decomposition
// differs from itself to its NFKC form.
func AddNFKC(t Table, lo, hi rune) {
	for r := lo; r <= hi; r++ {
		s := string(r)
		if n := norm.NFKC.String(s); n != s {
			t[s] = n
		}
	}
}
