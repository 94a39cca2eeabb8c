// Package iteration expands Japanese iteration marks into the character
// they repeat.
//
// Handled marks are ゝ and ゞ (hiragana), ヽ and ヾ (katakana), their
// vertical forms 〱 〲 〳 〴, and 々 (kanji). A mark is expanded only when
// the character right before it belongs to the same script and can be
// repeated; hatsuon, sokuon and semi-voiced kana cannot. In a run of
// marks only the first one is expanded. Half-width katakana is not
// supported.
package iteration

import (
	"unicode/utf8"

	"github.com/FocuswithJustin/yosina/core/chars"
)

type kind int

const (
	other kind = iota
	hiragana
	katakana
	kanji
	hiraganaMark
	katakanaMark
	kanjiMark
)

type voicing int

const (
	unvoiced voicing = iota
	voiced
	semiVoiced
)

type class struct {
	kind    kind
	voicing voicing
}

type info struct {
	value string
	class class
}

type pairs map[string]string

func pairsOf(s string, reverse bool) pairs {
	rs := []rune(s)
	m := make(pairs, len(rs)/2)
	for i := 0; i+1 < len(rs); i += 2 {
		if reverse {
			m[string(rs[i+1])] = string(rs[i])
		} else {
			m[string(rs[i])] = string(rs[i+1])
		}
	}
	return m
}

const (
	hiraganaVoicing     = "かがきぎくぐけげこごさざしじすずせぜそぞただちぢつづてでとどはばひびふぶへべほぼ"
	katakanaVoicing     = "カガキギクグケゲコゴサザシジスズセゼソゾタダチヂツヅテデトドハバヒビフブヘベホボウヴ"
	hiraganaSemiVoicing = "はぱひぴふぷへぺほぽ"
	katakanaSemiVoicing = "ハパヒピフプヘペホポ"
)

var (
	hiraganaToVoiced = pairsOf(hiraganaVoicing, false)
	katakanaToVoiced = pairsOf(katakanaVoicing, false)
	hiraganaUnvoiced = pairsOf(hiraganaVoicing, true)
	katakanaUnvoiced = pairsOf(katakanaVoicing, true)
	hiraganaSemi     = pairsOf(hiraganaSemiVoicing, true)
	katakanaSemi     = pairsOf(katakanaSemiVoicing, true)
)

func isKanji(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF,
		r >= 0x3400 && r <= 0x4DBF,
		r >= 0x20000 && r <= 0x2A6DF,
		r >= 0x2A700 && r <= 0x2B73F,
		r >= 0x2B740 && r <= 0x2B81F,
		r >= 0x2B820 && r <= 0x2CEAF,
		r >= 0x2CEB0 && r <= 0x2EBEF,
		r >= 0x30000 && r <= 0x3134F:
		return true
	}
	return false
}

func classify(s string) class {
	switch s {
	case "ん", "ン", "っ", "ッ":
		return class{kind: other}
	case "ゝ", "〱":
		return class{kind: hiraganaMark}
	case "ゞ", "〲":
		return class{kind: hiraganaMark, voicing: voiced}
	case "ヽ", "〳":
		return class{kind: katakanaMark}
	case "ヾ", "〴":
		return class{kind: katakanaMark, voicing: voiced}
	case "々":
		return class{kind: kanjiMark}
	}
	if _, ok := hiraganaSemi[s]; ok {
		return class{kind: hiragana, voicing: semiVoiced}
	}
	if _, ok := katakanaSemi[s]; ok {
		return class{kind: katakana, voicing: semiVoiced}
	}
	if _, ok := hiraganaUnvoiced[s]; ok {
		return class{kind: hiragana, voicing: voiced}
	}
	if _, ok := katakanaUnvoiced[s]; ok {
		return class{kind: katakana, voicing: voiced}
	}

	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || n != len(s) {
		return class{kind: other}
	}
	switch {
	case r >= 0x3041 && r <= 0x3096:
		return class{kind: hiragana}
	case r >= 0x30A1 && r <= 0x30FA:
		return class{kind: katakana}
	case isKanji(r):
		return class{kind: kanji}
	}
	return class{kind: other}
}

// script describes one kana family.
type script struct {
	base     kind
	toVoiced pairs
	unvoiced pairs
}

var (
	hiraganaScript = script{base: hiragana, toVoiced: hiraganaToVoiced, unvoiced: hiraganaUnvoiced}
	katakanaScript = script{base: katakana, toVoiced: katakanaToVoiced, unvoiced: katakanaUnvoiced}
)

// Transliterator expands iteration marks. It has no options.
type Transliterator struct{}

// New returns the iteration marks stage.
func New() *Transliterator {
	return &Transliterator{}
}

// repeatKana resolves a kana iteration mark against prev. It reports the
// replacement and whether the mark may be expanded at all.
func repeatKana(sc script, mark class, prev *info) (string, bool) {
	if prev == nil || prev.class.kind != sc.base {
		return "", false
	}
	var base string
	switch prev.class.voicing {
	case unvoiced:
		base = prev.value
	case voiced:
		b, ok := sc.unvoiced[prev.value]
		if !ok {
			return "", false
		}
		base = b
	default:
		return "", false
	}
	if mark.voicing == voiced {
		if v, ok := sc.toVoiced[base]; ok {
			return v, true
		}
		// No voiced form: the mark stays as it is.
		return "", true
	}
	return base, true
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	b := chars.NewBuilder(len(in))
	var prev *info

	for _, c := range in {
		if c.IsSentinel() {
			return b.Finish(c)
		}
		cl := classify(c.Value)

		var (
			repl     string
			expanded bool
		)
		switch cl.kind {
		case hiraganaMark:
			repl, expanded = repeatKana(hiraganaScript, cl, prev)
		case katakanaMark:
			repl, expanded = repeatKana(katakanaScript, cl, prev)
		case kanjiMark:
			if prev != nil && prev.class.kind == kanji {
				repl, expanded = prev.value, true
			}
		}

		if expanded && repl != "" {
			b.Append(c.Derive(repl, b.Offset()))
		} else {
			b.Keep(c)
		}
		prev = &info{value: c.Value, class: cl}
	}
	return b.Finish(nil)
}
