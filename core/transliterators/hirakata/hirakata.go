// Package hirakata converts between hiragana and katakana.
package hirakata

import (
	"fmt"

	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/kana"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

// Mode selects the conversion direction.
type Mode string

const (
	HiraToKata Mode = "hira-to-kata"
	KataToHira Mode = "kata-to-hira"
)

// ParseMode accepts the kebab-case and snake_case spellings.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "hira-to-kata", "hira_to_kata":
		return HiraToKata, nil
	case "kata-to-hira", "kata_to_hira":
		return KataToHira, nil
	}
	return "", errors.NewValidation("mode", fmt.Sprintf("unknown hiragana/katakana mode %q", s))
}

// Options configures a Transliterator.
type Options struct {
	Mode Mode `json:"mode"`
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{Mode: HiraToKata}
}

var (
	hiraToKata = table.NewLazy("hira-to-kata", func() table.Table { return build(true) })
	kataToHira = table.NewLazy("kata-to-hira", func() table.Table { return build(false) })
)

func build(toKata bool) table.Table {
	t := make(table.Table)
	add := func(hira, kata string) {
		if hira == "" || kata == "" {
			return
		}
		if toKata {
			t[hira] = kata
		} else {
			t[kata] = hira
		}
	}
	for _, e := range kana.Table {
		if e.Hiragana == nil {
			continue
		}
		add(e.Hiragana.Base, e.Katakana.Base)
		add(e.Hiragana.Voiced, e.Katakana.Voiced)
		add(e.Hiragana.SemiVoiced, e.Katakana.SemiVoiced)
	}
	for _, e := range kana.SmallTable {
		add(e.Hiragana, e.Katakana)
	}
	return t
}

// Transliterator converts kana between scripts.
type Transliterator struct {
	opts  Options
	table *table.Transliterator
}

// New returns a Transliterator for opts. An empty mode means HiraToKata.
func New(opts Options) (*Transliterator, error) {
	switch opts.Mode {
	case "", HiraToKata:
		opts.Mode = HiraToKata
		return &Transliterator{opts: opts, table: hiraToKata.Get()}, nil
	case KataToHira:
		return &Transliterator{opts: opts, table: kataToHira.Get()}, nil
	}
	return nil, errors.NewValidation("mode", fmt.Sprintf("unknown hiragana/katakana mode %q", opts.Mode))
}

// Options returns the options t was built with.
func (t *Transliterator) Options() Options {
	return t.opts
}

// Transliterate converts every mapped kana of in.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return t.table.Transliterate(in)
}

// Table returns the mapping table t applies.
func (t *Transliterator) Table() *table.Transliterator {
	return t.table
}
