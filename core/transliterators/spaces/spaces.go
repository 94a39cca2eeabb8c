// Package spaces folds the Unicode space variants into U+0020 and drops
// the zero-width ones.
package spaces

import (
	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

var spaces = table.NewLazy("spaces", func() table.Table {
	t := table.FromRunes(map[rune]string{
		'\u00a0': " ",
		'\u200b': " ",
		'\u202f': " ",
		'\u205f': " ",
		'\u3000': " ",
		'\u3164': " ",
		'\uffa0': " ",
		'\u180e': "",
		'\ufeff': "",
	})
	// EN QUAD through HAIR SPACE.
	for r := '\u2000'; r <= '\u200a'; r++ {
		t[string(r)] = " "
	}
	return t
})

// Transliterator replaces space variants.
type Transliterator struct {
	t *table.Transliterator
}

// New returns the spaces stage.
func New() *Transliterator {
	return &Transliterator{t: spaces.Get()}
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return t.t.Transliterate(in)
}

// Table returns the mapping table t applies.
func (t *Transliterator) Table() *table.Transliterator {
	return t.t
}
