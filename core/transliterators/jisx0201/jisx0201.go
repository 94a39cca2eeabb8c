// Package jisx0201 converts between full-width characters and their JIS X
// 0201 half-width counterparts.
//
// GL covers ASCII letters, digits, punctuation and the space; GR covers
// half-width katakana, its punctuation and the voicing marks. The
// direction is fixed at construction. Several options settle characters
// whose round trip is ambiguous (backslash and yen sign, tilde and its
// look-alikes); their defaults depend on the direction.
package jisx0201

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/kana"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

// Component names this stage in conflict errors.
const Component = "jisx0201-and-alike"

// Options configures a Transliterator. Start from DefaultOptions: the
// zero value disables both regions. Nil pointers take the direction's
// default.
type Options struct {
	FullwidthToHalfwidth    bool `json:"fullwidthToHalfwidth"`
	CombineVoicedSoundMarks bool `json:"combineVoicedSoundMarks"`
	ConvertHiraganas        bool `json:"convertHiraganas"`
	ConvertGL               bool `json:"convertGL"`
	ConvertGR               bool `json:"convertGR"`

	ConvertUnsafeSpecials  *bool `json:"convertUnsafeSpecials,omitempty"`
	U005cAsYenSign         *bool `json:"u005cAsYenSign,omitempty"`
	U005cAsBackslash       *bool `json:"u005cAsBackslash,omitempty"`
	U007eAsFullwidthTilde  *bool `json:"u007eAsFullwidthTilde,omitempty"`
	U007eAsWaveDash        *bool `json:"u007eAsWaveDash,omitempty"`
	U007eAsOverline        *bool `json:"u007eAsOverline,omitempty"`
	U007eAsFullwidthMacron *bool `json:"u007eAsFullwidthMacron,omitempty"`
	U00a5AsYenSign         *bool `json:"u00a5AsYenSign,omitempty"`
}

// DefaultOptions returns full-width to half-width conversion of both
// regions with voiced kana combined.
func DefaultOptions() Options {
	return Options{
		FullwidthToHalfwidth:    true,
		CombineVoicedSoundMarks: true,
		ConvertGL:               true,
		ConvertGR:               true,
	}
}

// Bool returns a pointer to b, for the optional fields of Options.
func Bool(b bool) *bool {
	return &b
}

func or(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}

// resolved holds Options with every default applied. It is comparable
// and keys the table cache.
type resolved struct {
	fullwidthToHalfwidth    bool
	combineVoicedSoundMarks bool
	convertHiraganas        bool
	convertGL               bool
	convertGR               bool
	convertUnsafeSpecials   bool
	u005cAsYenSign          bool
	u005cAsBackslash        bool
	u007eAsFullwidthTilde   bool
	u007eAsWaveDash         bool
	u007eAsOverline         bool
	u007eAsFullwidthMacron  bool
	u00a5AsYenSign          bool
}

func resolve(o Options) (resolved, error) {
	r := resolved{
		fullwidthToHalfwidth:    o.FullwidthToHalfwidth,
		combineVoicedSoundMarks: o.CombineVoicedSoundMarks,
		convertHiraganas:        o.ConvertHiraganas,
		convertGL:               o.ConvertGL,
		convertGR:               o.ConvertGR,
		u005cAsBackslash:        or(o.U005cAsBackslash, false),
		u007eAsOverline:         or(o.U007eAsOverline, false),
		u007eAsFullwidthMacron:  or(o.U007eAsFullwidthMacron, false),
	}

	if o.FullwidthToHalfwidth {
		r.convertUnsafeSpecials = or(o.ConvertUnsafeSpecials, true)
		r.u005cAsYenSign = or(o.U005cAsYenSign, o.U00a5AsYenSign == nil)
		r.u007eAsFullwidthTilde = or(o.U007eAsFullwidthTilde, true)
		r.u007eAsWaveDash = or(o.U007eAsWaveDash, true)
		r.u00a5AsYenSign = or(o.U00a5AsYenSign, false)

		if r.u005cAsYenSign && r.u00a5AsYenSign {
			return r, errors.NewConflict(Component, "u005cAsYenSign and u00a5AsYenSign are mutually exclusive")
		}
		return r, nil
	}

	r.convertUnsafeSpecials = or(o.ConvertUnsafeSpecials, false)
	r.u005cAsYenSign = or(o.U005cAsYenSign, o.U005cAsBackslash == nil)
	r.u007eAsFullwidthTilde = or(o.U007eAsFullwidthTilde,
		o.U007eAsWaveDash == nil && o.U007eAsOverline == nil && o.U007eAsFullwidthMacron == nil)
	r.u007eAsWaveDash = or(o.U007eAsWaveDash, false)
	r.u00a5AsYenSign = or(o.U00a5AsYenSign, true)

	if r.u005cAsYenSign && r.u005cAsBackslash {
		return r, errors.NewConflict(Component, "u005cAsYenSign and u005cAsBackslash are mutually exclusive")
	}
	n := 0
	for _, b := range []bool{r.u007eAsFullwidthTilde, r.u007eAsWaveDash, r.u007eAsOverline, r.u007eAsFullwidthMacron} {
		if b {
			n++
		}
	}
	if n > 1 {
		return r, errors.NewConflict(Component,
			"u007eAsFullwidthTilde, u007eAsWaveDash, u007eAsOverline and u007eAsFullwidthMacron are mutually exclusive")
	}
	return r, nil
}

// glPairs lists full-width GL characters converted by code point offset.
// Digits and letters are in the range too. U+FF3C and U+FF5E depend on
// options and are handled separately.
func glPairs() map[string]string {
	m := map[string]string{"\u3000": " "}
	for r := rune(0xFF01); r <= 0xFF5D; r++ {
		if r == 0xFF3C {
			continue
		}
		m[string(r)] = string(r - 0xFEE0)
	}
	return m
}

func buildForward(o resolved) table.Table {
	t := make(table.Table, 256)
	if o.convertGL {
		for full, half := range glPairs() {
			t[full] = half
		}
		if o.u005cAsYenSign {
			t["￥"] = "\\"
		} else if o.u00a5AsYenSign {
			t["￥"] = "¥"
		}
		if o.u005cAsBackslash {
			t["＼"] = "\\"
		}
		if o.u007eAsFullwidthTilde {
			t["～"] = "~"
		}
		if o.u007eAsWaveDash {
			t["〜"] = "~"
		}
		if o.u007eAsOverline {
			t["‾"] = "~"
		}
		if o.u007eAsFullwidthMacron {
			t["￣"] = "~"
		}
		if o.convertUnsafeSpecials {
			t["゠"] = "="
		}
	}
	if o.convertGR {
		for full, half := range kana.HalfwidthKatakana() {
			t[full] = half
		}
		for full, half := range kana.HalfwidthVoicedKatakana() {
			t[full] = half
		}
		if o.convertHiraganas {
			for full, half := range kana.HalfwidthHiragana() {
				t[full] = half
			}
		}
	}
	return t
}

func buildReverse(o resolved) table.Table {
	t := make(table.Table, 256)
	if o.convertGL {
		for full, half := range glPairs() {
			t[half] = full
		}
		if o.u00a5AsYenSign {
			t["¥"] = "￥"
		}
		if o.u005cAsBackslash {
			t["\\"] = "＼"
		} else if o.u005cAsYenSign {
			t["\\"] = "￥"
		}
		switch {
		case o.u007eAsFullwidthTilde:
			t["~"] = "～"
		case o.u007eAsWaveDash:
			t["~"] = "〜"
		case o.u007eAsOverline:
			t["~"] = "‾"
		case o.u007eAsFullwidthMacron:
			t["~"] = "￣"
		}
		if o.convertUnsafeSpecials {
			t["="] = "゠"
		}
	}
	if o.convertGR {
		for full, half := range kana.HalfwidthKatakana() {
			t[half] = full
		}
		if o.combineVoicedSoundMarks {
			for full, half := range kana.HalfwidthVoicedKatakana() {
				t[half] = full
			}
		}
	}
	return t
}

var (
	mu     sync.Mutex
	tables = map[resolved]*table.Transliterator{}
)

func tableFor(o resolved) *table.Transliterator {
	mu.Lock()
	defer mu.Unlock()
	if t, ok := tables[o]; ok {
		return t
	}
	var t *table.Transliterator
	if o.fullwidthToHalfwidth {
		t = table.New("jisx0201-forward", buildForward(o))
	} else {
		t = table.New("jisx0201-reverse", buildReverse(o))
	}
	tables[o] = t
	return t
}

// Transliterator converts between full-width and half-width forms.
type Transliterator struct {
	opts  Options
	table *table.Transliterator
}

// New returns a Transliterator for opts, or a *errors.ConflictError when
// the yen sign or tilde options contradict each other.
func New(opts Options) (*Transliterator, error) {
	r, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return &Transliterator{opts: opts, table: tableFor(r)}, nil
}

// Options returns the options t was built with.
func (t *Transliterator) Options() Options {
	return t.opts
}

// Transliterate implements the stage contract. A cluster missing from the
// table, such as a half-width kana with a voicing mark that has no
// precomposed form, is converted scalar by scalar when every scalar maps.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return chars.Transform(in, func(c *chars.Char) (string, bool) {
		if v, ok := t.table.Lookup(c.Value); ok {
			return v, true
		}
		if utf8.RuneCountInString(c.Value) < 2 {
			return "", false
		}
		var sb strings.Builder
		for _, r := range c.Value {
			v, ok := t.table.Lookup(string(r))
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
	return t.table
}
