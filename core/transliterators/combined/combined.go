// Package combined expands characters that pack several letters, digits
// or words into one code point: control pictures, parenthesized and
// full-stop numbers, ideographic telegraph symbols and the CJK
// compatibility squares.
package combined

import (
	"strings"

	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

// controlPictures names U+2400 through U+2421 in order.
const controlPictures = "NUL SOH STX ETX EOT ENQ ACK BEL BS HT LF VT FF CR SO SI " +
	"DLE DC1 DC2 DC3 DC4 NAK SYN ETB CAN EM SUB ESC FS GS RS US SP DEL"

var combined = table.NewLazy("combined", func() table.Table {
	t := make(table.Table, 512)
	for i, name := range strings.Fields(controlPictures) {
		t[string(rune(0x2400+i))] = name
	}
	table.AddNFKC(t, 0x2474, 0x24B5)
	table.AddNFKC(t, 0x3200, 0x3243)
	table.AddNFKC(t, 0x32C0, 0x32CF)
	table.AddNFKC(t, 0x32FF, 0x32FF)
	table.AddNFKC(t, 0x3300, 0x33FF)
	return t
})

// Transliterator expands combined characters.
type Transliterator struct {
	t *table.Transliterator
}

// New returns the combined characters stage.
func New() *Transliterator {
	return &Transliterator{t: combined.Get()}
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return t.t.Transliterate(in)
}

// Table returns the mapping table t applies.
func (t *Transliterator) Table() *table.Transliterator {
	return t.t
}
