// Package radicals replaces Kangxi radicals and CJK radical supplement
// characters with the ideographs they look like.
package radicals

import (
	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

var radicals = table.NewLazy("radicals", func() table.Table {
	t := make(table.Table, 256)
	table.AddNFKC(t, 0x2F00, 0x2FD5)
	table.AddNFKC(t, 0x2E80, 0x2EF3)
	return t
})

// Transliterator replaces radicals.
type Transliterator struct {
	t *table.Transliterator
}

// New returns the radicals stage.
func New() *Transliterator {
	return &Transliterator{t: radicals.Get()}
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return t.t.Transliterate(in)
}

// Table returns the mapping table t applies.
func (t *Transliterator) Table() *table.Transliterator {
	return t.t
}
