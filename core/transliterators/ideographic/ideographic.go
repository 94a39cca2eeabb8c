// Package ideographic replaces the ideographic annotation marks used in
// kanbun (U+3192 to U+319F) with the ideographs they stand for.
package ideographic

import (
	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

var annotations = table.NewLazy("ideographic-annotations", func() table.Table {
	t := make(table.Table, 14)
	r := rune(0x3192)
	for _, v := range "一二三四上中下甲乙丙丁天地人" {
		t[string(r)] = string(v)
		r++
	}
	return t
})

// Transliterator replaces annotation marks.
type Transliterator struct {
	t *table.Transliterator
}

// New returns the ideographic annotations stage.
func New() *Transliterator {
	return &Transliterator{t: annotations.Get()}
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return t.t.Transliterate(in)
}

// Table returns the mapping table t applies.
func (t *Transliterator) Table() *table.Transliterator {
	return t.t
}
