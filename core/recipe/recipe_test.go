package recipe

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	yerrors "github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/translit"
	"github.com/FocuswithJustin/yosina/core/transliterators/hirakata"
	"github.com/FocuswithJustin/yosina/core/transliterators/hyphens"
	"github.com/FocuswithJustin/yosina/core/transliterators/ivssvs"
)

func kinds(cfgs []translit.Config) []string {
	out := make([]string, len(cfgs))
	for i, c := range cfgs {
		out[i] = c.Kind.String()
	}
	return out
}

func mustCompile(t *testing.T, r Recipe) []translit.Config {
	t.Helper()
	cfgs, err := r.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return cfgs
}

func TestEmptyRecipe(t *testing.T) {
	cfgs := mustCompile(t, Recipe{})
	if len(cfgs) != 0 {
		t.Errorf("Compile() = %v, want no stages", kinds(cfgs))
	}
}

func TestCompileOrder(t *testing.T) {
	tests := []struct {
		name   string
		recipe Recipe
		want   []string
	}{
		{
			name:   "combined runs before circled",
			recipe: Recipe{}.WithReplaceCombinedCharacters(true).WithReplaceCircledOrSquaredCharacters(On),
			want:   []string{"combined", "circled-or-squared"},
		},
		{
			name:   "roman numerals run before mathematical alphanumerics",
			recipe: Recipe{}.WithReplaceMathematicalAlphanumerics(true).WithReplaceRomanNumerals(true),
			want:   []string{"roman-numerals", "mathematical-alphanumerics"},
		},
		{
			name: "mixed",
			recipe: Recipe{}.
				WithKanjiOldNew(true).
				WithReplaceSpaces(true).
				WithReplaceHyphens(true).
				WithReplaceJapaneseIterationMarks(true).
				WithToHalfwidth(On),
			want: []string{
				"hira-kata-composition",
				"ivs-svs-base",
				"japanese-iteration-marks",
				"hyphens",
				"spaces",
				"kanji-old-new",
				"ivs-svs-base",
				"jisx0201-and-alike",
			},
		},
		{
			name: "hira-kata with full-width",
			recipe: Recipe{}.
				WithHiraKata(hirakata.KataToHira).
				WithToFullwidth(On).
				WithCombineDecomposedHiraganasAndKatakanas(true),
			want: []string{"hira-kata-composition", "hira-kata", "jisx0201-and-alike"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(mustCompile(t, tt.recipe))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectorPairIsShared(t *testing.T) {
	cfgs := mustCompile(t, Recipe{}.
		WithKanjiOldNew(true).
		WithRemoveIVSSVS(DropAllSelectors).
		WithCharset(ivssvs.UniJIS90))

	var ivs []translit.Config
	for _, c := range cfgs {
		if c.Kind == translit.KindIVSSVSBase {
			ivs = append(ivs, c)
		}
	}
	if len(ivs) != 2 {
		t.Fatalf("ivs-svs-base appears %d times, want 2", len(ivs))
	}
	first, last := cfgs[0], cfgs[len(cfgs)-1]
	if first.Kind != translit.KindIVSSVSBase || first.IVSSVSBase.Mode != ivssvs.ModeIVSOrSVS {
		t.Errorf("first stage = %v %+v, want ivs-or-svs", first, first.IVSSVSBase)
	}
	if last.Kind != translit.KindIVSSVSBase || last.IVSSVSBase.Mode != ivssvs.ModeBase {
		t.Fatalf("last stage = %v %+v, want base", last, last.IVSSVSBase)
	}
	if !last.IVSSVSBase.DropSelectorsAltogether {
		t.Error("DropSelectorsAltogether = false, want true")
	}
	for _, c := range ivs {
		if c.IVSSVSBase.Charset != ivssvs.UniJIS90 {
			t.Errorf("Charset = %q, want %q", c.IVSSVSBase.Charset, ivssvs.UniJIS90)
		}
	}
}

func TestDefaultCharset(t *testing.T) {
	cfgs := mustCompile(t, Recipe{}.WithRemoveIVSSVS(On))
	for _, c := range cfgs {
		if c.IVSSVSBase.Charset != ivssvs.UniJIS2004 {
			t.Errorf("Charset = %q, want %q", c.IVSSVSBase.Charset, ivssvs.UniJIS2004)
		}
	}
}

func TestHyphensPrecedence(t *testing.T) {
	cfgs := mustCompile(t, Recipe{}.WithReplaceHyphens(true))
	if got := cfgs[0].Hyphens.Precedence; !reflect.DeepEqual(got, DefaultHyphensPrecedence) {
		t.Errorf("Precedence = %v, want %v", got, DefaultHyphensPrecedence)
	}
	cfgs = mustCompile(t, Recipe{}.WithHyphensPrecedence(hyphens.ASCII))
	if got := cfgs[0].Hyphens.Precedence; !reflect.DeepEqual(got, []hyphens.Precedence{hyphens.ASCII}) {
		t.Errorf("Precedence = %v, want [ascii]", got)
	}
}

func TestConflicts(t *testing.T) {
	_, err := Recipe{}.WithToFullwidth(On).WithToHalfwidth(HankakuKana).Compile()
	if !errors.Is(err, yerrors.ErrConflict) {
		t.Fatalf("Compile() error = %v, want ErrConflict", err)
	}
	msg := err.Error()
	for _, want := range []string{"toFullwidth", "toHalfwidth", "mutually exclusive"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
	if _, err := (Recipe{}.WithToHalfwidth(On).Build()); err != nil {
		t.Errorf("Build() error = %v", err)
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		recipe Recipe
	}{
		{"full-width variant", Recipe{ToFullwidth: HankakuKana}},
		{"half-width variant", Recipe{ToHalfwidth: ExcludeEmojis}},
		{"ivs variant", Recipe{RemoveIVSSVS: "sometimes"}},
		{"circled variant", Recipe{ReplaceCircledOrSquaredCharacters: DropAllSelectors}},
		{"hira-kata mode", Recipe{HiraKata: "sideways"}},
		{"charset", Recipe{RemoveIVSSVS: On, Charset: "unijis_78"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.recipe.Compile(); !errors.Is(err, yerrors.ErrInvalidInput) {
				t.Errorf("Compile() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name   string
		recipe Recipe
		input  string
		want   string
	}{
		{"combined", Recipe{ReplaceCombinedCharacters: true}, "㈱㍻", "(株)平成"},
		{"circled", Recipe{ReplaceCircledOrSquaredCharacters: On}, "①②③", "(1)(2)(3)"},
		{"circled ideograph", Recipe{ReplaceCircledOrSquaredCharacters: On}, "㊙㊤", "(秘)(上)"},
		{"circled excluding emoji", Recipe{ReplaceCircledOrSquaredCharacters: ExcludeEmojis}, "㊙㊤", "㊙(上)"},
		{"full-width kana", Recipe{ToFullwidth: On}, "ｶﾀｶﾅ", "カタカナ"},
		{"full-width voiced", Recipe{ToFullwidth: On}, "ｶﾞｲﾄﾞ", "ガイド"},
		{"half-width", Recipe{ToHalfwidth: On}, "ＡＢＣカナ", "ABCカナ"},
		{"hankaku kana", Recipe{ToHalfwidth: HankakuKana}, "ＡＢＣカナ", "ABCｶﾅ"},
		{"iteration marks", Recipe{ReplaceJapaneseIterationMarks: true}, "時々", "時時"},
		{"iteration marks voiced", Recipe{ReplaceJapaneseIterationMarks: true}, "いすゞ", "いすず"},
		{"suspicious hyphens", Recipe{ReplaceSuspiciousHyphensToProlongedSoundMarks: true}, "スーパ-", "スーパー"},
		{"ivs removal", Recipe{RemoveIVSSVS: On}, "葛\U000E0100", "葛"},
		{"kanji old new", Recipe{KanjiOldNew: true}, "臺灣の鐵道", "台湾の鉄道"},
		{"ideographic annotations", Recipe{ReplaceIdeographicAnnotations: true}, "㆖㆘", "上下"},
		{"spaces", Recipe{ReplaceSpaces: true}, "A\u3000B", "A B"},
		{"roman numerals", Recipe{ReplaceRomanNumerals: true}, "Ⅻ", "XII"},
		{"hira-kata", Recipe{HiraKata: hirakata.HiraToKata}, "ひらがな", "ヒラガナ"},
		{"untouched", Recipe{ToFullwidth: On, RemoveIVSSVS: On}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := tt.recipe.Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := chain.TransliterateString(tt.input); got != tt.want {
				t.Errorf("TransliterateString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	r := Recipe{}.
		WithKanjiOldNew(true).
		WithReplaceSpaces(true).
		WithReplaceCircledOrSquaredCharacters(On).
		WithToFullwidth(U005cAsYenSign).
		WithRemoveIVSSVS(On)

	a := mustCompile(t, r)
	b := mustCompile(t, r)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Compile() not deterministic: %v vs %v", kinds(a), kinds(b))
	}
	if r.Fingerprint() != r.Fingerprint() {
		t.Error("Fingerprint() not deterministic")
	}
}

func TestFingerprint(t *testing.T) {
	a := Recipe{RemoveIVSSVS: On}
	b := Recipe{RemoveIVSSVS: On, Charset: "unijis-2004"}
	c := Recipe{RemoveIVSSVS: On, Charset: ivssvs.UniJIS90}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equivalent charsets should share a fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different charsets should not share a fingerprint")
	}
	if len(a.Fingerprint()) != 32 {
		t.Errorf("len(Fingerprint()) = %d, want 32", len(a.Fingerprint()))
	}
}

func TestParse(t *testing.T) {
	data := []byte(`{
		"kanjiOldNew": true,
		"replaceHyphens": ["ascii", "jisx0208-90"],
		"toFullwidth": "u005c-as-yen-sign",
		"removeIvsSvs": true,
		"replaceCircledOrSquaredCharacters": "exclude_emojis",
		"charset": "unijis_90"
	}`)
	r, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Recipe{
		KanjiOldNew:                       true,
		ReplaceHyphens:                    Hyphens{Enabled: true, Precedence: []hyphens.Precedence{hyphens.ASCII, hyphens.JISX020890}},
		ToFullwidth:                       U005cAsYenSign,
		RemoveIVSSVS:                      On,
		ReplaceCircledOrSquaredCharacters: ExcludeEmojis,
		Charset:                           ivssvs.UniJIS90,
	}
	if !reflect.DeepEqual(r, want) {
		t.Errorf("Parse() = %+v, want %+v", r, want)
	}

	if _, err := Parse([]byte(`{"toUpper": true}`)); !errors.Is(err, yerrors.ErrInvalidInput) {
		t.Errorf("Parse(unknown field) error = %v, want ErrInvalidInput", err)
	}
	if _, err := Parse([]byte(`{"replaceHyphens": ["em-dash"]}`)); err == nil {
		t.Error("Parse(bad precedence) error = nil")
	}
}

func TestToggleJSON(t *testing.T) {
	r := Recipe{ToFullwidth: On, RemoveIVSSVS: DropAllSelectors}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)
	for _, want := range []string{`"toFullwidth":true`, `"removeIvsSvs":"drop-all-selectors"`, `"replaceHyphens":false`} {
		if !strings.Contains(s, want) {
			t.Errorf("Marshal() = %s, missing %s", s, want)
		}
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(back, r) {
		t.Errorf("Parse(Marshal(r)) = %+v, want %+v", back, r)
	}
}
