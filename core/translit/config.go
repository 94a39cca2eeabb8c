package translit

import (
	"fmt"

	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/transliterators/circled"
	"github.com/FocuswithJustin/yosina/core/transliterators/combined"
	"github.com/FocuswithJustin/yosina/core/transliterators/composition"
	"github.com/FocuswithJustin/yosina/core/transliterators/hirakata"
	"github.com/FocuswithJustin/yosina/core/transliterators/hyphens"
	"github.com/FocuswithJustin/yosina/core/transliterators/ideographic"
	"github.com/FocuswithJustin/yosina/core/transliterators/iteration"
	"github.com/FocuswithJustin/yosina/core/transliterators/ivssvs"
	"github.com/FocuswithJustin/yosina/core/transliterators/jisx0201"
	"github.com/FocuswithJustin/yosina/core/transliterators/kanjioldnew"
	"github.com/FocuswithJustin/yosina/core/transliterators/mathalnum"
	"github.com/FocuswithJustin/yosina/core/transliterators/prolonged"
	"github.com/FocuswithJustin/yosina/core/transliterators/radicals"
	"github.com/FocuswithJustin/yosina/core/transliterators/roman"
	"github.com/FocuswithJustin/yosina/core/transliterators/spaces"
)

// Config describes one stage: its Kind and, for the kinds that take
// them, its options. A nil options pointer means the stage defaults.
type Config struct {
	Kind Kind

	CircledOrSquared *circled.Options
	HiraKata         *hirakata.Options
	Composition      *composition.Options
	Hyphens          *hyphens.Options
	IVSSVSBase       *ivssvs.Options
	JISX0201         *jisx0201.Options
	ProlongedSound   *prolonged.Options

	// Custom is the stage of a KindCustom config, named by CustomName.
	Custom     Transliterator
	CustomName string
}

// SameKind reports whether c and other configure the same kind of stage.
// Options are ignored. Custom configs never match anything.
func (c Config) SameKind(other Config) bool {
	return c.Kind != KindCustom && c.Kind == other.Kind
}

func (c Config) String() string {
	if c.Kind == KindCustom && c.CustomName != "" {
		return "custom:" + c.CustomName
	}
	return c.Kind.String()
}

// CircledOrSquared configures the circled/squared characters stage.
func CircledOrSquared(o circled.Options) Config {
	return Config{Kind: KindCircledOrSquared, CircledOrSquared: &o}
}

// Combined configures the combined characters stage.
func Combined() Config { return Config{Kind: KindCombined} }

// HiraKata configures hiragana/katakana conversion.
func HiraKata(o hirakata.Options) Config {
	return Config{Kind: KindHiraKata, HiraKata: &o}
}

// HiraKataComposition configures voicing-mark composition.
func HiraKataComposition(o composition.Options) Config {
	return Config{Kind: KindHiraKataComposition, Composition: &o}
}

// Hyphens configures hyphen replacement.
func Hyphens(o hyphens.Options) Config {
	return Config{Kind: KindHyphens, Hyphens: &o}
}

// IdeographicAnnotations configures the ideographic annotation marks stage.
func IdeographicAnnotations() Config { return Config{Kind: KindIdeographicAnnotations} }

// IVSSVSBase configures the IVS/SVS base stage.
func IVSSVSBase(o ivssvs.Options) Config {
	return Config{Kind: KindIVSSVSBase, IVSSVSBase: &o}
}

// JapaneseIterationMarks configures iteration-mark expansion.
func JapaneseIterationMarks() Config { return Config{Kind: KindJapaneseIterationMarks} }

// JISX0201AndAlike configures full-width/half-width conversion.
func JISX0201AndAlike(o jisx0201.Options) Config {
	return Config{Kind: KindJISX0201AndAlike, JISX0201: &o}
}

// KanjiOldNew configures old-style to new-style kanji replacement.
func KanjiOldNew() Config { return Config{Kind: KindKanjiOldNew} }

// MathematicalAlphanumerics configures the mathematical alphanumerics stage.
func MathematicalAlphanumerics() Config { return Config{Kind: KindMathematicalAlphanumerics} }

// ProlongedSoundMarks configures prolonged sound mark normalization.
func ProlongedSoundMarks(o prolonged.Options) Config {
	return Config{Kind: KindProlongedSoundMarks, ProlongedSound: &o}
}

// Radicals configures the CJK radicals stage.
func Radicals() Config { return Config{Kind: KindRadicals} }

// RomanNumerals configures the roman numerals stage.
func RomanNumerals() Config { return Config{Kind: KindRomanNumerals} }

// Spaces configures space normalization.
func Spaces() Config { return Config{Kind: KindSpaces} }

// Custom wraps an arbitrary stage. Custom configs are never deduplicated.
func Custom(name string, t Transliterator) Config {
	return Config{Kind: KindCustom, Custom: t, CustomName: name}
}

// Build resolves c to a stage.
func Build(c Config) (Transliterator, error) {
	switch c.Kind {
	case KindCircledOrSquared:
		o := circled.DefaultOptions()
		if c.CircledOrSquared != nil {
			o = *c.CircledOrSquared
		}
		return circled.New(o), nil
	case KindCombined:
		return combined.New(), nil
	case KindHiraKata:
		o := hirakata.DefaultOptions()
		if c.HiraKata != nil {
			o = *c.HiraKata
		}
		return hirakata.New(o)
	case KindHiraKataComposition:
		o := composition.DefaultOptions()
		if c.Composition != nil {
			o = *c.Composition
		}
		return composition.New(o), nil
	case KindHyphens:
		o := hyphens.DefaultOptions()
		if c.Hyphens != nil {
			o = *c.Hyphens
		}
		return hyphens.New(o)
	case KindIdeographicAnnotations:
		return ideographic.New(), nil
	case KindIVSSVSBase:
		o := ivssvs.DefaultOptions()
		if c.IVSSVSBase != nil {
			o = *c.IVSSVSBase
		}
		return ivssvs.New(o)
	case KindJapaneseIterationMarks:
		return iteration.New(), nil
	case KindJISX0201AndAlike:
		o := jisx0201.DefaultOptions()
		if c.JISX0201 != nil {
			o = *c.JISX0201
		}
		return jisx0201.New(o)
	case KindKanjiOldNew:
		return kanjioldnew.New(), nil
	case KindMathematicalAlphanumerics:
		return mathalnum.New(), nil
	case KindProlongedSoundMarks:
		o := prolonged.DefaultOptions()
		if c.ProlongedSound != nil {
			o = *c.ProlongedSound
		}
		return prolonged.New(o), nil
	case KindRadicals:
		return radicals.New(), nil
	case KindRomanNumerals:
		return roman.New(), nil
	case KindSpaces:
		return spaces.New(), nil
	case KindCustom:
		if c.Custom == nil {
			return nil, errors.NewValidation("stage", fmt.Sprintf("custom stage %q has no transliterator", c.CustomName))
		}
		return c.Custom, nil
	}
	return nil, errors.NewValidation("stage", fmt.Sprintf("unknown stage kind %d", int(c.Kind)))
}
