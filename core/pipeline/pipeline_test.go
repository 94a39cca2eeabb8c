package pipeline

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/FocuswithJustin/yosina/core/chars"
	yerrors "github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/translit"
	"github.com/FocuswithJustin/yosina/core/transliterators/hyphens"
	"github.com/FocuswithJustin/yosina/core/transliterators/ivssvs"
)

func mustParse(t *testing.T, expr string, reg Registry) []translit.Config {
	t.Helper()
	cfgs, err := Parse(expr, reg)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", expr, err)
	}
	return cfgs
}

func TestParse(t *testing.T) {
	cfgs := mustParse(t, "spaces | hyphens(precedence=ascii+jisx0201) | kanji-old-new", nil)
	if len(cfgs) != 3 {
		t.Fatalf("len = %d, want 3", len(cfgs))
	}
	if cfgs[0].Kind != translit.KindSpaces || cfgs[2].Kind != translit.KindKanjiOldNew {
		t.Errorf("kinds = %v, %v", cfgs[0].Kind, cfgs[2].Kind)
	}
	want := []hyphens.Precedence{hyphens.ASCII, hyphens.JISX0201}
	if got := cfgs[1].Hyphens.Precedence; !reflect.DeepEqual(got, want) {
		t.Errorf("Precedence = %v, want %v", got, want)
	}
}

func TestParseOptionSpellings(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"kebab", "jisx0201-and-alike(convert-gl=false, u005c-as-yen-sign=true)"},
		{"snake", "jisx0201_and_alike(convert_gl=false, u005c_as_yen_sign=true)"},
		{"camel", "jisx0201-and-alike(convertGL=false, u005cAsYenSign=true)"},
		{"quoted", `jisx0201-and-alike(convertGL="false", u005cAsYenSign="true")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgs := mustParse(t, tt.expr, nil)
			o := cfgs[0].JISX0201
			if o == nil {
				t.Fatal("JISX0201 options not set")
			}
			if o.ConvertGL {
				t.Error("ConvertGL = true, want false")
			}
			if !o.ConvertGR || !o.FullwidthToHalfwidth {
				t.Error("unset options should keep their defaults")
			}
			if o.U005cAsYenSign == nil || !*o.U005cAsYenSign {
				t.Error("U005cAsYenSign not set to true")
			}
			if o.U007eAsWaveDash != nil {
				t.Error("U007eAsWaveDash should stay unset")
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, expr := range []string{"", "   "} {
		if cfgs := mustParse(t, expr, nil); len(cfgs) != 0 {
			t.Errorf("Parse(%q) = %v, want no stages", expr, cfgs)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"syntax", "spaces(", "pipeline"},
		{"dangling pipe", "spaces |", "pipeline"},
		{"unknown stage", "uppercase", "unknown stage"},
		{"options on plain stage", "spaces(x=1)", "takes no options"},
		{"unknown option", "hyphens(color=red)", "unknown option"},
		{"bad mode", "ivs-svs-base(mode=sideways)", "mode"},
		{"bad bool", "circled-or-squared(include-emojis=maybe)", "true or false"},
		{"list for scalar", "hira-kata(mode=hira-to-kata+kata-to-hira)", "single value"},
		{"bare custom", "custom", "registered name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.expr, nil)
			if !errors.Is(err, yerrors.ErrInvalidInput) {
				t.Fatalf("Parse(%q) error = %v, want ErrInvalidInput", tt.expr, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse(%q) error = %q, want it to mention %q", tt.expr, err, tt.want)
			}
		})
	}
}

func TestCustomStages(t *testing.T) {
	upper := translit.Func(func(in []*chars.Char) []*chars.Char {
		return chars.Transform(in, func(c *chars.Char) (string, bool) {
			u := strings.ToUpper(c.Value)
			return u, u != c.Value
		})
	})
	reg := Registry{"upper": upper}

	cfgs := mustParse(t, "upper | spaces", reg)
	if cfgs[0].Kind != translit.KindCustom || cfgs[0].CustomName != "upper" {
		t.Errorf("cfgs[0] = %v, want custom upper", cfgs[0])
	}
	if got := Format(cfgs); got != "upper | spaces" {
		t.Errorf("Format() = %q", got)
	}

	chain, err := Build("upper | spaces", reg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := chain.TransliterateString("a\u3000b"); got != "A B" {
		t.Errorf("TransliterateString() = %q, want %q", got, "A B")
	}

	if _, err := Parse("upper(loud=true)", reg); err == nil {
		t.Error("Parse(custom with options) error = nil")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	exprs := []string{
		"spaces",
		"hyphens(precedence=jisx0208_90_windows+jisx0201)",
		"ivs-svs-base(mode=base, charset=unijis_2004, prefer-svs=false, drop-selectors-altogether=true)",
		"jisx0201-and-alike(fullwidth-to-halfwidth=false, u005c-as-yen-sign=true)",
		"prolonged-sound-marks(replace-prolonged-marks-following-alnums=true) | hira-kata(mode=kata-to-hira)",
		"hira-kata-composition(compose-non-combining-marks=false) | circled-or-squared(include-emojis=true)",
	}
	for _, expr := range exprs {
		first := mustParse(t, expr, nil)
		printed := Format(first)
		second := mustParse(t, printed, nil)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Parse(Format(Parse(%q))) differs; printed %q", expr, printed)
		}
		if Format(second) != printed {
			t.Errorf("Format not stable for %q: %q vs %q", expr, printed, Format(second))
		}
	}
}

func TestFormatDefaults(t *testing.T) {
	cfgs := []translit.Config{
		translit.Spaces(),
		translit.IVSSVSBase(ivssvs.Options{Mode: ivssvs.ModeBase, Charset: ivssvs.UniJIS90}),
	}
	want := "spaces | ivs-svs-base(mode=base, charset=unijis_90, prefer-svs=false, drop-selectors-altogether=false)"
	if got := Format(cfgs); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestFingerprint(t *testing.T) {
	a := mustParse(t, "spaces | hyphens(precedence=ascii)", nil)
	b := mustParse(t, "spaces|hyphens( precedence = \"ascii\" )", nil)
	c := mustParse(t, "spaces | hyphens(precedence=jisx0201)", nil)

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("equivalent pipelines should share a fingerprint")
	}
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("different pipelines should not share a fingerprint")
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		expr  string
		input string
		want  string
	}{
		{"ivs-svs-base(mode=base, charset=unijis_2004)", "葛\U000E0100", "葛"},
		{"spaces | jisx0201-and-alike", "ＡＢＣ\u3000カナ", "ABC ｶﾅ"},
		{"jisx0201-and-alike(fullwidth-to-halfwidth=false)", "ｶﾀｶﾅ", "カタカナ"},
		{"hira-kata(mode=kata-to-hira)", "カタカナ", "かたかな"},
		{"", "そのまま", "そのまま"},
	}
	for _, tt := range tests {
		chain, err := Build(tt.expr, nil)
		if err != nil {
			t.Errorf("Build(%q) error = %v", tt.expr, err)
			continue
		}
		if got := chain.TransliterateString(tt.input); got != tt.want {
			t.Errorf("%s: TransliterateString(%q) = %q, want %q", tt.expr, tt.input, got, tt.want)
		}
	}

	if _, err := Build("jisx0201-and-alike(u005c-as-yen-sign=true, u00a5-as-yen-sign=true)", nil); !errors.Is(err, yerrors.ErrConflict) {
		t.Errorf("Build(conflict) error = %v, want ErrConflict", err)
	}
}
