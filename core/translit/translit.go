// Package translit defines the stage contract, the stage configurations
// and the chain that runs configured stages in order.
package translit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/errors"
)

// Transliterator is one stage of a pipeline. Implementations must not
// modify the input characters and must be safe for concurrent use.
type Transliterator interface {
	Transliterate(in []*chars.Char) []*chars.Char
}

// Func adapts a function to Transliterator.
type Func func(in []*chars.Char) []*chars.Char

// Transliterate calls f.
func (f Func) Transliterate(in []*chars.Char) []*chars.Char {
	return f(in)
}

// Kind discriminates stage configurations.
type Kind int

const (
	KindCustom Kind = iota
	KindCircledOrSquared
	KindCombined
	KindHiraKata
	KindHiraKataComposition
	KindHyphens
	KindIdeographicAnnotations
	KindIVSSVSBase
	KindJapaneseIterationMarks
	KindJISX0201AndAlike
	KindKanjiOldNew
	KindMathematicalAlphanumerics
	KindProlongedSoundMarks
	KindRadicals
	KindRomanNumerals
	KindSpaces
)

var kindNames = map[Kind]string{
	KindCustom:                    "custom",
	KindCircledOrSquared:          "circled-or-squared",
	KindCombined:                  "combined",
	KindHiraKata:                  "hira-kata",
	KindHiraKataComposition:       "hira-kata-composition",
	KindHyphens:                   "hyphens",
	KindIdeographicAnnotations:    "ideographic-annotations",
	KindIVSSVSBase:                "ivs-svs-base",
	KindJapaneseIterationMarks:    "japanese-iteration-marks",
	KindJISX0201AndAlike:          "jisx0201-and-alike",
	KindKanjiOldNew:               "kanji-old-new",
	KindMathematicalAlphanumerics: "mathematical-alphanumerics",
	KindProlongedSoundMarks:       "prolonged-sound-marks",
	KindRadicals:                  "radicals",
	KindRomanNumerals:             "roman-numerals",
	KindSpaces:                    "spaces",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a stage name to its Kind. Underscores are accepted in
// place of hyphens.
func ParseKind(s string) (Kind, error) {
	name := strings.ReplaceAll(strings.ToLower(s), "_", "-")
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.NewValidation("stage", fmt.Sprintf("unknown stage %q", s))
}

// KindNames lists the stage names in sorted order.
func KindNames() []string {
	names := make([]string, 0, len(kindNames))
	for _, n := range kindNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
