// Package ivssvs converts between CJK ideographs and their ideographic
// (IVS) or standardized (SVS) variation sequences.
//
// The mapping table is embedded in xz-compressed binary form and decoded
// once per process on first use. It holds a subset of the Adobe-Japan1
// collection; sequences outside it pass through unchanged. tools/ivsgen
// rebuilds it from a larger source.
package ivssvs

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/errors"
)

// Mode selects the conversion direction.
type Mode string

const (
	// ModeIVSOrSVS appends the variation selector of the charset's glyph.
	ModeIVSOrSVS Mode = "ivs-or-svs"
	// ModeBase replaces a variation sequence with its base character.
	ModeBase Mode = "base"
)

// ParseMode accepts the kebab-case and snake_case spellings.
func ParseMode(s string) (Mode, error) {
	switch strings.ReplaceAll(strings.ToLower(s), "_", "-") {
	case "ivs-or-svs":
		return ModeIVSOrSVS, nil
	case "base":
		return ModeBase, nil
	}
	return "", errors.NewValidation("mode", fmt.Sprintf("unknown IVS/SVS mode %q", s))
}

// Charset selects which JIS glyph set base characters refer to.
type Charset string

const (
	UniJIS90   Charset = "unijis_90"
	UniJIS2004 Charset = "unijis_2004"
)

// ParseCharset accepts "unijis_90", "unijis-90", "unijis90" and the 2004
// equivalents.
func ParseCharset(s string) (Charset, error) {
	switch strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(s)) {
	case "unijis90":
		return UniJIS90, nil
	case "unijis2004":
		return UniJIS2004, nil
	}
	return "", errors.NewValidation("charset", fmt.Sprintf("unknown charset %q", s))
}

// Options configures a Transliterator.
type Options struct {
	Mode    Mode    `json:"mode"`
	Charset Charset `json:"charset"`
	// PreferSVS emits the SVS form, when there is one, in ModeIVSOrSVS.
	PreferSVS bool `json:"preferSvs"`
	// DropSelectorsAltogether strips a trailing variation selector in
	// ModeBase even when the table does not know the sequence.
	DropSelectorsAltogether bool `json:"dropSelectorsAltogether"`
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{Mode: ModeIVSOrSVS, Charset: UniJIS90}
}

func (o Options) normalize() (Options, error) {
	if o.Mode == "" {
		o.Mode = ModeIVSOrSVS
	}
	if o.Charset == "" {
		o.Charset = UniJIS90
	}
	m, err := ParseMode(string(o.Mode))
	if err != nil {
		return o, err
	}
	cs, err := ParseCharset(string(o.Charset))
	if err != nil {
		return o, err
	}
	o.Mode, o.Charset = m, cs
	return o, nil
}

// IsVariationSelector reports whether r is in VS1 to VS16 or VS17 to
// VS256.
func IsVariationSelector(r rune) bool {
	return (r >= 0xFE00 && r <= 0xFE0F) || (r >= 0xE0100 && r <= 0xE01EF)
}

// Transliterator converts between base characters and variation
// sequences.
type Transliterator struct {
	opts  Options
	table *Table
}

// New returns a Transliterator over the embedded table.
func New(opts Options) (*Transliterator, error) {
	tbl, err := Load()
	if err != nil {
		return nil, err
	}
	return NewWithTable(tbl, opts)
}

// NewWithTable returns a Transliterator over tbl.
func NewWithTable(tbl *Table, opts Options) (*Transliterator, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	return &Transliterator{opts: opts, table: tbl}, nil
}

// Options returns the effective options.
func (t *Transliterator) Options() Options {
	return t.opts
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	if t.opts.Mode == ModeBase {
		return chars.Transform(in, t.toBase)
	}
	return chars.Transform(in, t.toVariant)
}

func (t *Transliterator) toBase(c *chars.Char) (string, bool) {
	if r, ok := t.table.ByVariant(c.Value); ok {
		if b := r.Base(t.opts.Charset); b != "" {
			return b, true
		}
	}
	if !t.opts.DropSelectorsAltogether {
		return "", false
	}
	last, n := utf8.DecodeLastRuneInString(c.Value)
	if n == len(c.Value) || !IsVariationSelector(last) {
		return "", false
	}
	return c.Value[:len(c.Value)-n], true
}

func (t *Transliterator) toVariant(c *chars.Char) (string, bool) {
	r, ok := t.table.ByBase(t.opts.Charset, c.Value)
	if !ok {
		return "", false
	}
	if t.opts.PreferSVS && r.SVS != "" {
		return r.SVS, true
	}
	return r.IVS, true
}
