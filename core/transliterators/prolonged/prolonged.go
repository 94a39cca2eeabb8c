// Package prolonged decides whether hyphen-like characters next to kana
// and alphanumerics are prolonged sound marks or plain hyphens.
//
// A hyphen-like character right after a kana ending in a vowel becomes
// ー (or ｰ after half-width katakana). With
// ReplaceProlongedMarksFollowingAlnums, a run of hyphen-like characters
// after an alphanumeric, or at the start of the text, is read as hyphens
// and rewritten to "-" or "－" once the end of the run is known.
package prolonged

import (
	"unicode/utf8"

	"github.com/FocuswithJustin/yosina/core/chars"
)

// Options configures a Transliterator.
type Options struct {
	SkipAlreadyTransliteratedChars       bool `json:"skipAlreadyTransliteratedChars"`
	AllowProlongedHatsuon                bool `json:"allowProlongedHatsuon"`
	AllowProlongedSokuon                 bool `json:"allowProlongedSokuon"`
	ReplaceProlongedMarksFollowingAlnums bool `json:"replaceProlongedMarksFollowingAlnums"`
}

// DefaultOptions returns the default options, all disabled.
func DefaultOptions() Options {
	return Options{}
}

// charType packs a script in the top three bits and properties in the
// low five.
type charType uint8

const (
	typeOther charType = 0

	typeHiragana charType = 0x20
	typeKatakana charType = 0x40
	typeAlphabet charType = 0x60
	typeDigit    charType = 0x80
	typeEither   charType = 0xA0

	typeHalfwidth          charType = 1 << 0
	typeVowelEnded         charType = 1 << 1
	typeHatsuon            charType = 1 << 2
	typeSokuon             charType = 1 << 3
	typeProlongedSoundMark charType = 1 << 4

	scriptMask charType = 0xE0
)

func (t charType) isAlnum() bool {
	s := t & scriptMask
	return s == typeAlphabet || s == typeDigit
}

func (t charType) isHalfwidth() bool {
	return t&typeHalfwidth != 0
}

const (
	halfwidthHyphen        = "-"
	fullwidthHyphen        = "－"
	halfwidthProlongedMark = "ｰ"
	fullwidthProlongedMark = "ー"
)

func isHyphenLike(s string) bool {
	switch s {
	case "-", "‐", "—", "―", "−", "－", "ｰ", "ー":
		return true
	}
	return false
}

var specials = map[rune]charType{
	0xFF70: typeKatakana | typeProlongedSoundMark | typeHalfwidth,
	0x30FC: typeEither | typeProlongedSoundMark,
	0x3063: typeHiragana | typeSokuon,
	0x3093: typeHiragana | typeHatsuon,
	0x30C3: typeKatakana | typeSokuon,
	0x30F3: typeKatakana | typeHatsuon,
	0xFF6F: typeKatakana | typeSokuon | typeHalfwidth,
	0xFF9D: typeKatakana | typeHatsuon | typeHalfwidth,
}

// classify looks at the first scalar of s.
func classify(s string) charType {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return typeOther
	}
	switch {
	case r >= '0' && r <= '9':
		return typeDigit | typeHalfwidth
	case r >= 0xFF10 && r <= 0xFF19:
		return typeDigit
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return typeAlphabet | typeHalfwidth
	case r >= 0xFF21 && r <= 0xFF3A, r >= 0xFF41 && r <= 0xFF5A:
		return typeAlphabet
	}
	if t, ok := specials[r]; ok {
		return t
	}
	switch {
	case r >= 0x3041 && r <= 0x309C, r == 0x309F:
		return typeHiragana | typeVowelEnded
	case r >= 0x30A1 && r <= 0x30FA, r >= 0x30FD && r <= 0x30FF:
		return typeKatakana | typeVowelEnded
	case r >= 0xFF66 && r <= 0xFF6F, r >= 0xFF71 && r <= 0xFF9F:
		return typeKatakana | typeVowelEnded | typeHalfwidth
	}
	return typeOther
}

// Transliterator resolves hyphen-like characters.
type Transliterator struct {
	opts         Options
	prolongables charType
}

// New returns a Transliterator for opts.
func New(opts Options) *Transliterator {
	p := typeVowelEnded | typeProlongedSoundMark
	if opts.AllowProlongedHatsuon {
		p |= typeHatsuon
	}
	if opts.AllowProlongedSokuon {
		p |= typeSokuon
	}
	return &Transliterator{opts: opts, prolongables: p}
}

// Options returns the options t was built with.
func (t *Transliterator) Options() Options {
	return t.opts
}

// context is the last character seen that was not hyphen-like.
type context struct {
	typ charType
	set bool
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	b := chars.NewBuilder(len(in))
	var (
		last       context
		lookahead  []*chars.Char
		seenEdited bool
	)

	for _, c := range in {
		if len(lookahead) > 0 {
			if !c.IsSentinel() && isHyphenLike(c.Value) {
				if c.IsTransliterated() {
					seenEdited = true
				}
				lookahead = append(lookahead, c)
				continue
			}

			prev := last
			cur := classify(c.Value)
			last = context{typ: cur, set: !c.IsSentinel()}
			t.flush(b, lookahead, prev, cur, seenEdited)
			lookahead = lookahead[:0]
			seenEdited = false

			if c.IsSentinel() {
				return b.Finish(c)
			}
			b.Keep(c)
			continue
		}

		if c.IsSentinel() {
			return b.Finish(c)
		}

		if !isHyphenLike(c.Value) {
			last = context{typ: classify(c.Value), set: true}
			b.Keep(c)
			continue
		}

		if t.opts.SkipAlreadyTransliteratedChars && c.IsTransliterated() {
			b.Keep(c)
			continue
		}
		if last.set && last.typ&t.prolongables != 0 {
			mark := fullwidthProlongedMark
			if last.typ.isHalfwidth() {
				mark = halfwidthProlongedMark
			}
			b.Append(c.Derive(mark, b.Offset()))
			continue
		}
		if t.opts.ReplaceProlongedMarksFollowingAlnums && (!last.set || last.typ.isAlnum()) {
			lookahead = append(lookahead, c)
			continue
		}
		b.Keep(c)
	}

	// Input without a sentinel: resolve what is pending as if the text
	// ended here.
	if len(lookahead) > 0 {
		t.flush(b, lookahead, last, typeOther, seenEdited)
	}
	return b.Finish(nil)
}

// flush resolves a buffered run of hyphen-like characters given the
// context before it and the type of the character that ended it.
func (t *Transliterator) flush(b *chars.Builder, run []*chars.Char, prev context, next charType, seenEdited bool) {
	if (!prev.set || prev.typ.isAlnum()) && (!t.opts.SkipAlreadyTransliteratedChars || !seenEdited) {
		hyphen := fullwidthHyphen
		if (prev.set && prev.typ.isHalfwidth()) || next.isHalfwidth() {
			hyphen = halfwidthHyphen
		}
		for _, m := range run {
			b.Append(m.Derive(hyphen, b.Offset()))
		}
		return
	}
	for _, m := range run {
		b.Keep(m)
	}
}
