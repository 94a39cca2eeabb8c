// Package circled replaces circled and squared characters with their
// contents wrapped in "(...)" or "[...]".
package circled

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

// Options configures a Transliterator.
type Options struct {
	// IncludeEmojis also replaces characters usually rendered as emoji,
	// such as 🅰 or 🈚.
	IncludeEmojis bool `json:"includeEmojis"`
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{}
}

type entry struct {
	value string
	emoji bool
}

func circle(s string) string { return "(" + s + ")" }
func square(s string) string { return "[" + s + "]" }

// emoji lists the entries with default emoji presentation.
var emoji = map[rune]bool{
	0x24C2: true, 0x3297: true, 0x3299: true,
	0x1F170: true, 0x1F171: true, 0x1F17E: true, 0x1F17F: true, 0x1F18E: true,
	0x1F201: true, 0x1F202: true, 0x1F21A: true, 0x1F22F: true,
	0x1F250: true, 0x1F251: true,
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F191 && r <= 0x1F19A,
		r >= 0x1F1E6 && r <= 0x1F1FF,
		r >= 0x1F232 && r <= 0x1F23A:
		return true
	}
	return emoji[r]
}

var words = map[rune]string{
	0x1F18E: "AB",
	0x1F191: "CL",
	0x1F192: "COOL",
	0x1F193: "FREE",
	0x1F194: "ID",
	0x1F195: "NEW",
	0x1F196: "NG",
	0x1F197: "OK",
	0x1F198: "SOS",
	0x1F199: "UP!",
	0x1F19A: "VS",
}

func buildEntries() map[rune]entry {
	m := make(map[rune]entry, 600)
	put := func(r rune, v string) {
		m[r] = entry{value: v, emoji: isEmoji(r)}
	}
	nfkc := func(lo, hi rune, wrap func(string) string) {
		for r := lo; r <= hi; r++ {
			s := string(r)
			if n := norm.NFKC.String(s); n != s {
				put(r, wrap(n))
			}
		}
	}
	numbers := func(lo, hi rune, first int, wrap func(string) string) {
		for r := lo; r <= hi; r++ {
			put(r, wrap(strconv.Itoa(first+int(r-lo))))
		}
	}
	letters := func(lo rune, wrap func(string) string) {
		for i := rune(0); i < 26; i++ {
			put(lo+i, wrap(string('A'+i)))
		}
	}

	nfkc(0x2460, 0x2473, circle)
	nfkc(0x24B6, 0x24EA, circle)
	numbers(0x24EB, 0x24F4, 11, circle)
	numbers(0x24F5, 0x24FE, 1, circle)
	put(0x24FF, circle("0"))
	numbers(0x2776, 0x277F, 1, circle)
	numbers(0x2780, 0x2789, 1, circle)
	numbers(0x278A, 0x2793, 1, circle)
	nfkc(0x3251, 0x325F, circle)
	nfkc(0x3280, 0x32BF, circle)
	nfkc(0x32D0, 0x32FE, circle)

	nfkc(0x1F130, 0x1F14F, square)
	letters(0x1F150, circle)
	letters(0x1F170, square)
	for r, w := range words {
		put(r, square(w))
	}
	letters(0x1F1E6, square)
	nfkc(0x1F200, 0x1F202, square)
	nfkc(0x1F210, 0x1F23B, square)
	nfkc(0x1F250, 0x1F251, circle)
	return m
}

var (
	withEmojis = table.NewLazy("circled-or-squared", func() table.Table {
		return build(true)
	})
	withoutEmojis = table.NewLazy("circled-or-squared", func() table.Table {
		return build(false)
	})
)

func build(includeEmojis bool) table.Table {
	entries := buildEntries()
	t := make(table.Table, len(entries))
	for r, e := range entries {
		if e.emoji && !includeEmojis {
			continue
		}
		t[string(r)] = e.value
	}
	return t
}

// Transliterator replaces circled and squared characters.
type Transliterator struct {
	opts Options
	t    *table.Transliterator
}

// New returns a Transliterator for opts.
func New(opts Options) *Transliterator {
	t := withoutEmojis
	if opts.IncludeEmojis {
		t = withEmojis
	}
	return &Transliterator{opts: opts, t: t.Get()}
}

// Options returns the options t was built with.
func (t *Transliterator) Options() Options {
	return t.opts
}

// Transliterate implements the stage contract. A cluster made only of
// mapped scalars, such as a regional indicator flag, is replaced scalar by
// scalar.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return chars.Transform(in, func(c *chars.Char) (string, bool) {
		if v, ok := t.t.Lookup(c.Value); ok {
			return v, true
		}
		if len(c.Value) <= utf8.UTFMax {
			return "", false
		}
		var sb strings.Builder
		for _, r := range c.Value {
			v, ok := t.t.Lookup(string(r))
			if !ok {
				return "", false
			}
			sb.WriteString(v)
		}
		return sb.String(), true
	})
}

// Table returns the mapping table t applies.
func (t *Transliterator) Table() *table.Transliterator {
	return t.t
}
