package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/translit"
	"github.com/FocuswithJustin/yosina/core/transliterators/circled"
	"github.com/FocuswithJustin/yosina/core/transliterators/composition"
	"github.com/FocuswithJustin/yosina/core/transliterators/hirakata"
	"github.com/FocuswithJustin/yosina/core/transliterators/hyphens"
	"github.com/FocuswithJustin/yosina/core/transliterators/ivssvs"
	"github.com/FocuswithJustin/yosina/core/transliterators/jisx0201"
	"github.com/FocuswithJustin/yosina/core/transliterators/prolonged"
)

// option is one named stage argument. get reports the value to print and
// whether it is set.
type option struct {
	name string
	set  func(c *translit.Config, v []string) error
	get  func(c translit.Config) (string, bool)
}

// stage lists the options of one kind. init fills in the defaults the
// options start from once any argument is given.
type stage struct {
	init    func(c *translit.Config)
	options []option
}

// key folds "convert-gl", "convert_gl" and "convertGL" together.
func key(s string) string {
	return strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(s))
}

func single(name string, v []string) (string, error) {
	if len(v) != 1 {
		return "", errors.NewValidation(name, "takes a single value")
	}
	return v[0], nil
}

func parseBool(name string, v []string) (bool, error) {
	s, err := single(name, v)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.NewValidation(name, fmt.Sprintf("want true or false, got %q", s))
	}
	return b, nil
}

func boolOption(name string, field func(c *translit.Config) *bool) option {
	return option{
		name: name,
		set: func(c *translit.Config, v []string) error {
			b, err := parseBool(name, v)
			if err == nil {
				*field(c) = b
			}
			return err
		},
		get: func(c translit.Config) (string, bool) {
			return strconv.FormatBool(*field(&c)), true
		},
	}
}

// tristate options are unset until given.
func tristateOption(name string, field func(c *translit.Config) **bool) option {
	return option{
		name: name,
		set: func(c *translit.Config, v []string) error {
			b, err := parseBool(name, v)
			if err == nil {
				*field(c) = jisx0201.Bool(b)
			}
			return err
		},
		get: func(c translit.Config) (string, bool) {
			p := *field(&c)
			if p == nil {
				return "", false
			}
			return strconv.FormatBool(*p), true
		},
	}
}

var stages = map[translit.Kind]stage{
	translit.KindCircledOrSquared: {
		init: func(c *translit.Config) {
			o := circled.DefaultOptions()
			c.CircledOrSquared = &o
		},
		options: []option{
			boolOption("include-emojis", func(c *translit.Config) *bool { return &c.CircledOrSquared.IncludeEmojis }),
		},
	},
	translit.KindHiraKata: {
		init: func(c *translit.Config) {
			o := hirakata.DefaultOptions()
			c.HiraKata = &o
		},
		options: []option{{
			name: "mode",
			set: func(c *translit.Config, v []string) error {
				s, err := single("mode", v)
				if err != nil {
					return err
				}
				c.HiraKata.Mode, err = hirakata.ParseMode(s)
				return err
			},
			get: func(c translit.Config) (string, bool) { return string(c.HiraKata.Mode), true },
		}},
	},
	translit.KindHiraKataComposition: {
		init: func(c *translit.Config) {
			o := composition.DefaultOptions()
			c.Composition = &o
		},
		options: []option{
			boolOption("compose-non-combining-marks", func(c *translit.Config) *bool { return &c.Composition.ComposeNonCombiningMarks }),
		},
	},
	translit.KindHyphens: {
		init: func(c *translit.Config) {
			o := hyphens.DefaultOptions()
			c.Hyphens = &o
		},
		options: []option{{
			name: "precedence",
			set: func(c *translit.Config, v []string) error {
				ps := make([]hyphens.Precedence, 0, len(v))
				for _, s := range v {
					p, err := hyphens.ParsePrecedence(s)
					if err != nil {
						return err
					}
					ps = append(ps, p)
				}
				c.Hyphens.Precedence = ps
				return nil
			},
			get: func(c translit.Config) (string, bool) {
				names := make([]string, len(c.Hyphens.Precedence))
				for i, p := range c.Hyphens.Precedence {
					names[i] = string(p)
				}
				return strings.Join(names, "+"), len(names) > 0
			},
		}},
	},
	translit.KindIVSSVSBase: {
		init: func(c *translit.Config) {
			o := ivssvs.DefaultOptions()
			c.IVSSVSBase = &o
		},
		options: []option{
			{
				name: "mode",
				set: func(c *translit.Config, v []string) error {
					s, err := single("mode", v)
					if err != nil {
						return err
					}
					c.IVSSVSBase.Mode, err = ivssvs.ParseMode(s)
					return err
				},
				get: func(c translit.Config) (string, bool) { return string(c.IVSSVSBase.Mode), true },
			},
			{
				name: "charset",
				set: func(c *translit.Config, v []string) error {
					s, err := single("charset", v)
					if err != nil {
						return err
					}
					c.IVSSVSBase.Charset, err = ivssvs.ParseCharset(s)
					return err
				},
				get: func(c translit.Config) (string, bool) { return string(c.IVSSVSBase.Charset), true },
			},
			boolOption("prefer-svs", func(c *translit.Config) *bool { return &c.IVSSVSBase.PreferSVS }),
			boolOption("drop-selectors-altogether", func(c *translit.Config) *bool { return &c.IVSSVSBase.DropSelectorsAltogether }),
		},
	},
	translit.KindJISX0201AndAlike: {
		init: func(c *translit.Config) {
			o := jisx0201.DefaultOptions()
			c.JISX0201 = &o
		},
		options: []option{
			boolOption("fullwidth-to-halfwidth", func(c *translit.Config) *bool { return &c.JISX0201.FullwidthToHalfwidth }),
			boolOption("combine-voiced-sound-marks", func(c *translit.Config) *bool { return &c.JISX0201.CombineVoicedSoundMarks }),
			boolOption("convert-hiraganas", func(c *translit.Config) *bool { return &c.JISX0201.ConvertHiraganas }),
			boolOption("convert-gl", func(c *translit.Config) *bool { return &c.JISX0201.ConvertGL }),
			boolOption("convert-gr", func(c *translit.Config) *bool { return &c.JISX0201.ConvertGR }),
			tristateOption("convert-unsafe-specials", func(c *translit.Config) **bool { return &c.JISX0201.ConvertUnsafeSpecials }),
			tristateOption("u005c-as-yen-sign", func(c *translit.Config) **bool { return &c.JISX0201.U005cAsYenSign }),
			tristateOption("u005c-as-backslash", func(c *translit.Config) **bool { return &c.JISX0201.U005cAsBackslash }),
			tristateOption("u007e-as-fullwidth-tilde", func(c *translit.Config) **bool { return &c.JISX0201.U007eAsFullwidthTilde }),
			tristateOption("u007e-as-wave-dash", func(c *translit.Config) **bool { return &c.JISX0201.U007eAsWaveDash }),
			tristateOption("u007e-as-overline", func(c *translit.Config) **bool { return &c.JISX0201.U007eAsOverline }),
			tristateOption("u007e-as-fullwidth-macron", func(c *translit.Config) **bool { return &c.JISX0201.U007eAsFullwidthMacron }),
			tristateOption("u00a5-as-yen-sign", func(c *translit.Config) **bool { return &c.JISX0201.U00a5AsYenSign }),
		},
	},
	translit.KindProlongedSoundMarks: {
		init: func(c *translit.Config) {
			o := prolonged.DefaultOptions()
			c.ProlongedSound = &o
		},
		options: []option{
			boolOption("skip-already-transliterated-chars", func(c *translit.Config) *bool { return &c.ProlongedSound.SkipAlreadyTransliteratedChars }),
			boolOption("allow-prolonged-hatsuon", func(c *translit.Config) *bool { return &c.ProlongedSound.AllowProlongedHatsuon }),
			boolOption("allow-prolonged-sokuon", func(c *translit.Config) *bool { return &c.ProlongedSound.AllowProlongedSokuon }),
			boolOption("replace-prolonged-marks-following-alnums", func(c *translit.Config) *bool { return &c.ProlongedSound.ReplaceProlongedMarksFollowingAlnums }),
		},
	},
}

// hasOptions reports whether the options record of c is present.
func hasOptions(c translit.Config) bool {
	switch c.Kind {
	case translit.KindCircledOrSquared:
		return c.CircledOrSquared != nil
	case translit.KindHiraKata:
		return c.HiraKata != nil
	case translit.KindHiraKataComposition:
		return c.Composition != nil
	case translit.KindHyphens:
		return c.Hyphens != nil
	case translit.KindIVSSVSBase:
		return c.IVSSVSBase != nil
	case translit.KindJISX0201AndAlike:
		return c.JISX0201 != nil
	case translit.KindProlongedSoundMarks:
		return c.ProlongedSound != nil
	}
	return false
}
