// Package mathalnum replaces the mathematical alphanumeric symbols with
// plain Latin letters, Greek letters and digits.
package mathalnum

import (
	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

// letterlike lists the Letterlike Symbols that fill the holes of the
// Mathematical Alphanumeric Symbols block.
var letterlike = [][2]rune{
	{0x2102, 0x2102},
	{0x210A, 0x2113},
	{0x2115, 0x2115},
	{0x2119, 0x211D},
	{0x2124, 0x2124},
	{0x2128, 0x2128},
	{0x212C, 0x212D},
	{0x212F, 0x2131},
	{0x2133, 0x2134},
}

var mathAlnum = table.NewLazy("mathematical-alphanumerics", func() table.Table {
	t := make(table.Table, 1024)
	table.AddNFKC(t, 0x1D400, 0x1D7FF)
	for _, r := range letterlike {
		table.AddNFKC(t, r[0], r[1])
	}
	return t
})

// Transliterator replaces mathematical alphanumerics.
type Transliterator struct {
	t *table.Transliterator
}

// New returns the mathematical alphanumerics stage.
func New() *Transliterator {
	return &Transliterator{t: mathAlnum.Get()}
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return t.t.Transliterate(in)
}

// Table returns the mapping table t applies.
func (t *Transliterator) Table() *table.Transliterator {
	return t.t
}
