// Package composition folds a kana followed by a voicing mark into the
// precomposed kana.
//
// The combining marks U+3099 and U+309A always participate. The spacing
// marks U+309B and U+309C and the half-width marks U+FF9E and U+FF9F
// participate only when Options.ComposeNonCombiningMarks is set.
package composition

import (
	"unicode/utf8"

	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/kana"
)

// Options configures a Transliterator.
type Options struct {
	ComposeNonCombiningMarks bool `json:"composeNonCombiningMarks"`
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{ComposeNonCombiningMarks: true}
}

// Transliterator composes voicing marks.
type Transliterator struct {
	opts   Options
	tables map[rune]map[rune]rune
}

// New returns a Transliterator for opts.
func New(opts Options) *Transliterator {
	voiced := kana.VoicedForms()
	semi := kana.SemiVoicedForms()

	tables := map[rune]map[rune]rune{
		kana.CombiningVoicedMark:     voiced,
		kana.CombiningSemiVoicedMark: semi,
	}
	if opts.ComposeNonCombiningMarks {
		tables[kana.VoicedMark] = voiced
		tables[kana.SemiVoicedMark] = semi
		tables[kana.HalfwidthVoicedMark] = voiced
		tables[kana.HalfwidthSemiVoicedMark] = semi
	}
	return &Transliterator{opts: opts, tables: tables}
}

// Options returns the options t was built with.
func (t *Transliterator) Options() Options {
	return t.opts
}

// composeCluster folds a base and mark held in one grapheme cluster. Any
// scalars after the mark are kept.
func (t *Transliterator) composeCluster(v string) (string, bool) {
	base, n := utf8.DecodeRuneInString(v)
	if n == 0 || n == len(v) {
		return "", false
	}
	mark, m := utf8.DecodeRuneInString(v[n:])
	table, ok := t.tables[mark]
	if !ok {
		return "", false
	}
	composed, ok := table[base]
	if !ok {
		return "", false
	}
	return string(composed) + v[n+m:], true
}

// composePair folds a base character followed by a separate mark character.
func (t *Transliterator) composePair(prev, cur *chars.Char) (string, bool) {
	mark, n := utf8.DecodeRuneInString(cur.Value)
	if n == 0 {
		return "", false
	}
	table, ok := t.tables[mark]
	if !ok {
		return "", false
	}
	base, m := utf8.DecodeRuneInString(prev.Value)
	if m == 0 {
		return "", false
	}
	composed, ok := table[base]
	if !ok {
		return "", false
	}
	return string(composed) + cur.Value[n:], true
}

// Transliterate composes every base/mark pair of in.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	b := chars.NewBuilder(len(in))
	var prev *chars.Char

	for _, c := range in {
		if composed, ok := t.composeCluster(c.Value); ok {
			if prev != nil {
				b.Keep(prev)
				prev = nil
			}
			b.Append(c.Derive(composed, b.Offset()))
			continue
		}
		if prev != nil {
			if composed, ok := t.composePair(prev, c); ok {
				b.Append(c.Derive(composed, b.Offset()))
				prev = nil
				continue
			}
			b.Keep(prev)
		}
		prev = c
	}

	if prev == nil {
		return b.Finish(nil)
	}
	if prev.IsSentinel() {
		return b.Finish(prev)
	}
	if composed, ok := t.composeCluster(prev.Value); ok {
		b.Append(prev.Derive(composed, b.Offset()))
	} else {
		b.Keep(prev)
	}
	return b.Finish(nil)
}
