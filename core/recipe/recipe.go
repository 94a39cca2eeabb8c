// Package recipe compiles a flat set of high-level options into an
// ordered, deduplicated list of stage configurations.
package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/transliterators/hirakata"
	"github.com/FocuswithJustin/yosina/core/transliterators/hyphens"
	"github.com/FocuswithJustin/yosina/core/transliterators/ivssvs"
)

// Toggle is an option that is off, on, or on with a named variant. In
// JSON it is written as false, true or the variant name.
type Toggle string

const (
	Off Toggle = ""
	On  Toggle = "enabled"

	// ToFullwidth variant: "\" becomes ￥ rather than ＼.
	U005cAsYenSign Toggle = "u005c-as-yen-sign"
	// ToHalfwidth variant: katakana become JIS X 0201 kana as well.
	HankakuKana Toggle = "hankaku-kana"
	// RemoveIVSSVS variant: strip selectors the table does not know.
	DropAllSelectors Toggle = "drop-all-selectors"
	// ReplaceCircledOrSquaredCharacters variant: leave emoji alone.
	ExcludeEmojis Toggle = "exclude-emojis"
)

// Enabled reports whether t is anything but Off.
func (t Toggle) Enabled() bool { return t != Off }

func (t Toggle) MarshalJSON() ([]byte, error) {
	switch t {
	case Off:
		return []byte("false"), nil
	case On:
		return []byte("true"), nil
	}
	return json.Marshal(string(t))
}

func (t *Toggle) UnmarshalJSON(b []byte) error {
	var on bool
	if err := json.Unmarshal(b, &on); err == nil {
		*t = Off
		if on {
			*t = On
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.NewValidation("toggle", fmt.Sprintf("want a boolean or a string, got %s", b))
	}
	*t = Toggle(strings.ReplaceAll(strings.ToLower(s), "_", "-"))
	return nil
}

func (t Toggle) check(field string, variants ...Toggle) error {
	if t == Off || t == On {
		return nil
	}
	for _, v := range variants {
		if t == v {
			return nil
		}
	}
	return errors.NewValidation(field, fmt.Sprintf("unsupported value %q", string(t)))
}

// Hyphens enables hyphen replacement, optionally with an explicit
// precedence. In JSON it is a boolean or a list of precedence names.
type Hyphens struct {
	Enabled    bool
	Precedence []hyphens.Precedence
}

// DefaultHyphensPrecedence is used when Hyphens is enabled without a
// precedence.
var DefaultHyphensPrecedence = []hyphens.Precedence{hyphens.JISX020890Windows, hyphens.JISX0201}

func (h Hyphens) MarshalJSON() ([]byte, error) {
	if h.Enabled && len(h.Precedence) > 0 {
		return json.Marshal(h.Precedence)
	}
	return json.Marshal(h.Enabled)
}

func (h *Hyphens) UnmarshalJSON(b []byte) error {
	var on bool
	if err := json.Unmarshal(b, &on); err == nil {
		*h = Hyphens{Enabled: on}
		return nil
	}
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return errors.NewValidation("replaceHyphens", fmt.Sprintf("want a boolean or a list, got %s", b))
	}
	h.Enabled = true
	h.Precedence = h.Precedence[:0]
	for _, n := range names {
		p, err := hyphens.ParsePrecedence(n)
		if err != nil {
			return err
		}
		h.Precedence = append(h.Precedence, p)
	}
	return nil
}

// Recipe is a declarative description of a pipeline. The zero value
// compiles to an empty pipeline.
type Recipe struct {
	// 舊字體 to 旧字体.
	KanjiOldNew bool `json:"kanjiOldNew,omitempty"`
	// Convert between hiragana and katakana in the given direction.
	HiraKata hirakata.Mode `json:"hiraKata,omitempty"`
	// 時々 to 時時, いすゞ to いすず.
	ReplaceJapaneseIterationMarks bool `json:"replaceJapaneseIterationMarks,omitempty"`
	// スーパ- to スーパー.
	ReplaceSuspiciousHyphensToProlongedSoundMarks bool `json:"replaceSuspiciousHyphensToProlongedSoundMarks,omitempty"`
	// ㈱ to (株), ㍻ to 平成.
	ReplaceCombinedCharacters bool `json:"replaceCombinedCharacters,omitempty"`
	// ①②③ to (1)(2)(3). On includes emoji; see ExcludeEmojis.
	ReplaceCircledOrSquaredCharacters Toggle `json:"replaceCircledOrSquaredCharacters,omitempty"`
	// ㆖㆘ to 上下.
	ReplaceIdeographicAnnotations bool `json:"replaceIdeographicAnnotations,omitempty"`
	// Kangxi radicals to CJK ideographs.
	ReplaceRadicals bool `json:"replaceRadicals,omitempty"`
	// Ideographic and other exotic spaces to U+0020.
	ReplaceSpaces bool `json:"replaceSpaces,omitempty"`
	// Dashes and hyphens to the ones common in Japanese text.
	ReplaceHyphens Hyphens `json:"replaceHyphens,omitempty"`
	// Mathematical bold, italic and other styled letters to ASCII.
	ReplaceMathematicalAlphanumerics bool `json:"replaceMathematicalAlphanumerics,omitempty"`
	// Ⅻ to XII.
	ReplaceRomanNumerals bool `json:"replaceRomanNumerals,omitempty"`
	// か followed by U+3099 to が.
	CombineDecomposedHiraganasAndKatakanas bool `json:"combineDecomposedHiraganasAndKatakanas,omitempty"`
	// ｶﾀｶﾅ to カタカナ, ABC to ＡＢＣ.
	ToFullwidth Toggle `json:"toFullwidth,omitempty"`
	// ＡＢＣ to ABC, and カタカナ to ｶﾀｶﾅ with HankakuKana.
	ToHalfwidth Toggle `json:"toHalfwidth,omitempty"`
	// 葛 followed by U+E0100 to 葛.
	RemoveIVSSVS Toggle `json:"removeIvsSvs,omitempty"`
	// Glyph set for the IVS/SVS stages. Empty means unijis_2004.
	Charset ivssvs.Charset `json:"charset,omitempty"`
}

// Parse decodes a JSON recipe. Unknown fields are rejected.
func Parse(data []byte) (Recipe, error) {
	var r Recipe
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Recipe{}, errors.NewParse("recipe", "", err.Error())
	}
	return r, nil
}

// WithKanjiOldNew returns a copy of r with KanjiOldNew set.
func (r Recipe) WithKanjiOldNew(v bool) Recipe { r.KanjiOldNew = v; return r }

// WithHiraKata returns a copy of r with HiraKata set.
func (r Recipe) WithHiraKata(m hirakata.Mode) Recipe { r.HiraKata = m; return r }

// WithReplaceJapaneseIterationMarks returns a copy of r with ReplaceJapaneseIterationMarks set.
func (r Recipe) WithReplaceJapaneseIterationMarks(v bool) Recipe {
	r.ReplaceJapaneseIterationMarks = v
	return r
}

// WithReplaceSuspiciousHyphensToProlongedSoundMarks returns a copy of r with ReplaceSuspiciousHyphensToProlongedSoundMarks set.
func (r Recipe) WithReplaceSuspiciousHyphensToProlongedSoundMarks(v bool) Recipe {
	r.ReplaceSuspiciousHyphensToProlongedSoundMarks = v
	return r
}

// WithReplaceCombinedCharacters returns a copy of r with ReplaceCombinedCharacters set.
func (r Recipe) WithReplaceCombinedCharacters(v bool) Recipe {
	r.ReplaceCombinedCharacters = v
	return r
}

// WithReplaceCircledOrSquaredCharacters returns a copy of r with ReplaceCircledOrSquaredCharacters set.
func (r Recipe) WithReplaceCircledOrSquaredCharacters(t Toggle) Recipe {
	r.ReplaceCircledOrSquaredCharacters = t
	return r
}

// WithReplaceIdeographicAnnotations returns a copy of r with ReplaceIdeographicAnnotations set.
func (r Recipe) WithReplaceIdeographicAnnotations(v bool) Recipe {
	r.ReplaceIdeographicAnnotations = v
	return r
}

// WithReplaceRadicals returns a copy of r with ReplaceRadicals set.
func (r Recipe) WithReplaceRadicals(v bool) Recipe { r.ReplaceRadicals = v; return r }

// WithReplaceSpaces returns a copy of r with ReplaceSpaces set.
func (r Recipe) WithReplaceSpaces(v bool) Recipe { r.ReplaceSpaces = v; return r }

// WithReplaceHyphens returns a copy of r with ReplaceHyphens set.
func (r Recipe) WithReplaceHyphens(v bool) Recipe {
	r.ReplaceHyphens = Hyphens{Enabled: v}
	return r
}

// WithHyphensPrecedence enables hyphen replacement with precedence p.
func (r Recipe) WithHyphensPrecedence(p ...hyphens.Precedence) Recipe {
	r.ReplaceHyphens = Hyphens{Enabled: true, Precedence: p}
	return r
}

// WithReplaceMathematicalAlphanumerics returns a copy of r with ReplaceMathematicalAlphanumerics set.
func (r Recipe) WithReplaceMathematicalAlphanumerics(v bool) Recipe {
	r.ReplaceMathematicalAlphanumerics = v
	return r
}

// WithReplaceRomanNumerals returns a copy of r with ReplaceRomanNumerals set.
func (r Recipe) WithReplaceRomanNumerals(v bool) Recipe { r.ReplaceRomanNumerals = v; return r }

// WithCombineDecomposedHiraganasAndKatakanas returns a copy of r with CombineDecomposedHiraganasAndKatakanas set.
func (r Recipe) WithCombineDecomposedHiraganasAndKatakanas(v bool) Recipe {
	r.CombineDecomposedHiraganasAndKatakanas = v
	return r
}

// WithToFullwidth returns a copy of r with ToFullwidth set.
func (r Recipe) WithToFullwidth(t Toggle) Recipe { r.ToFullwidth = t; return r }

// WithToHalfwidth returns a copy of r with ToHalfwidth set.
func (r Recipe) WithToHalfwidth(t Toggle) Recipe { r.ToHalfwidth = t; return r }

// WithRemoveIVSSVS returns a copy of r with RemoveIVSSVS set.
func (r Recipe) WithRemoveIVSSVS(t Toggle) Recipe { r.RemoveIVSSVS = t; return r }

// WithCharset returns a copy of r with Charset set.
func (r Recipe) WithCharset(c ivssvs.Charset) Recipe { r.Charset = c; return r }
