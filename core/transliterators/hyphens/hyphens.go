// Package hyphens normalizes hyphens, dashes and a few look-alike
// symbols into the forms used by a chosen set of character sets.
package hyphens

import (
	"fmt"
	"strings"
	"sync"

	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

// Precedence names a target character set.
type Precedence string

const (
	ASCII             Precedence = "ascii"
	JISX0201          Precedence = "jisx0201"
	JISX020890        Precedence = "jisx0208_90"
	JISX020890Windows Precedence = "jisx0208_90_windows"
	JISX0208Verbatim  Precedence = "jisx0208_verbatim"
)

// ParsePrecedence accepts the snake_case and kebab-case spellings.
func ParsePrecedence(s string) (Precedence, error) {
	switch p := Precedence(strings.ReplaceAll(strings.ToLower(s), "-", "_")); p {
	case ASCII, JISX0201, JISX020890, JISX020890Windows, JISX0208Verbatim:
		return p, nil
	}
	return "", errors.NewValidation("precedence", fmt.Sprintf("unknown hyphens precedence %q", s))
}

// Options configures a Transliterator.
type Options struct {
	// Precedence lists the target sets in order; the first one with a
	// mapping for a character wins.
	Precedence []Precedence `json:"precedence"`
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{Precedence: []Precedence{JISX020890}}
}

// record holds the replacement of one character per target set. An
// empty field means the set has no suitable form.
type record struct {
	ascii, jisx0201, jis90, jis90win, verbatim string
}

func (r record) get(p Precedence) string {
	switch p {
	case ASCII:
		return r.ascii
	case JISX0201:
		return r.jisx0201
	case JISX020890:
		return r.jis90
	case JISX020890Windows:
		return r.jis90win
	case JISX0208Verbatim:
		return r.verbatim
	}
	return ""
}

var records = map[rune]record{
	'-': {"-", "-", "−", "−", ""},
	'|': {"|", "|", "｜", "｜", ""},
	'~': {"~", "~", "〜", "～", ""},
	'¢': {"", "", "¢", "￠", "¢"},
	'£': {"", "", "£", "￡", "£"},
	'¦': {"|", "|", "｜", "｜", ""},
	'\u00ad': {"-", "-", "‐", "‐", ""},
	'˗': {"-", "-", "−", "－", ""},
	'‐': {"-", "-", "‐", "‐", "‐"},
	'‑': {"-", "-", "‐", "‐", ""},
	'‒': {"-", "-", "−", "－", ""},
	'–': {"-", "-", "―", "―", ""},
	'—': {"-", "-", "—", "―", "—"},
	'―': {"-", "-", "―", "―", "―"},
	'‖': {"", "", "‖", "∥", "‖"},
	'‾': {"", "~", "￣", "￣", ""},
	'⁃': {"-", "-", "‐", "‐", ""},
	'⁓': {"~", "~", "〜", "～", ""},
	'−': {"-", "-", "−", "－", "−"},
	'∥': {"", "", "‖", "∥", ""},
	'⸺': {"--", "--", "——", "――", ""},
	'⸻': {"---", "---", "———", "―――", ""},
	'〜': {"~", "~", "〜", "～", "〜"},
	'゠': {"=", "=", "＝", "＝", ""},
	'・': {"", "･", "・", "・", "・"},
	'ー': {"-", "ｰ", "ー", "ー", "ー"},
	'︱': {"-", "-", "―", "―", ""},
	'﹘': {"-", "-", "—", "―", ""},
	'﹣': {"-", "-", "‐", "‐", ""},
	'－': {"-", "-", "−", "－", "－"},
	'｜': {"|", "|", "｜", "｜", "｜"},
	'～': {"~", "~", "〜", "～", "～"},
	'￤': {"|", "|", "｜", "￤", ""},
	'ｰ': {"-", "ｰ", "ー", "ー", ""},
}

var (
	mu     sync.Mutex
	tables = map[string]*table.Transliterator{}
)

func key(ps []Precedence) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}

// build resolves every record against ps. Identity results are left out
// of the table since they stop the search just like a pass-through.
func build(ps []Precedence) table.Table {
	t := make(table.Table, len(records))
	for r, rec := range records {
		for _, p := range ps {
			v := rec.get(p)
			if v == "" {
				continue
			}
			if v != string(r) {
				t[string(r)] = v
			}
			break
		}
	}
	return t
}

// Transliterator replaces hyphen-like characters.
type Transliterator struct {
	opts Options
	t    *table.Transliterator
}

// New returns a Transliterator for opts. An empty precedence list falls
// back to the default.
func New(opts Options) (*Transliterator, error) {
	if len(opts.Precedence) == 0 {
		opts = DefaultOptions()
	}
	for _, p := range opts.Precedence {
		if _, err := ParsePrecedence(string(p)); err != nil {
			return nil, err
		}
	}

	k := key(opts.Precedence)
	mu.Lock()
	t, ok := tables[k]
	if !ok {
		t = table.New("hyphens", build(opts.Precedence))
		tables[k] = t
	}
	mu.Unlock()

	return &Transliterator{opts: opts, t: t}, nil
}

// Options returns the options t was built with.
func (t *Transliterator) Options() Options {
	return t.opts
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return t.t.Transliterate(in)
}

// Table returns the mapping table t applies.
func (t *Transliterator) Table() *table.Transliterator {
	return t.t
}
