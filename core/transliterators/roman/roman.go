// Package roman spells out the Roman numeral characters of the Number
// Forms block with Latin letters.
package roman

import (
	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

var numerals = table.NewLazy("roman-numerals", func() table.Table {
	t := make(table.Table, 32)
	table.AddNFKC(t, 0x2160, 0x217F)
	return t
})

// Transliterator replaces Roman numerals.
type Transliterator struct {
	t *table.Transliterator
}

// New returns the Roman numerals stage.
func New() *Transliterator {
	return &Transliterator{t: numerals.Get()}
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return t.t.Transliterate(in)
}

// Table returns the mapping table t applies.
func (t *Transliterator) Table() *table.Transliterator {
	return t.t
}
