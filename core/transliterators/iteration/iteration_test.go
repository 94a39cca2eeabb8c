package iteration

import (
	"testing"

	"github.com/FocuswithJustin/yosina/core/chars"
)

func run(s string) string {
	return chars.ToString(New().Transliterate(chars.FromString(s)))
}

func TestKanji(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"basic", "時々", "時時"},
		{"in sentence", "人々が集まる", "人人が集まる"},
		{"extension b", "𠀋々", "𠀋𠀋"},
		{"consecutive marks", "時々々", "時時々"},
		{"no base", "々", "々"},
		{"after kana", "か々", "か々"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.input); got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHiragana(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "さゝ", "ささ"},
		{"voiced mark", "さゞ", "さざ"},
		{"voiced base voiced mark", "がゞ", "がが"},
		{"voiced base plain mark", "がゝ", "がか"},
		{"voiced base tsu", "づゝ", "づつ"},
		{"vertical", "さ〱", "ささ"},
		{"vertical voiced", "さ〲", "さざ"},
		{"no voiced form", "あゞ", "あゞ"},
		{"semi-voiced base", "ぱゝ", "ぱゝ"},
		{"hatsuon", "んゝ", "んゝ"},
		{"sokuon", "っゝ", "っゝ"},
		{"katakana base", "カゝ", "カゝ"},
		{"consecutive marks", "さゝゝ", "ささゝ"},
		{"leading mark", "ゝあ", "ゝあ"},
		{"latin base", "aゝ", "aゝ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.input); got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKatakana(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "カヽ", "カカ"},
		{"voiced mark", "カヾ", "カガ"},
		{"u voiced", "ウヾ", "ウヴ"},
		{"vu plain mark", "ヴヽ", "ヴウ"},
		{"vertical", "カ〳", "カカ"},
		{"vertical voiced", "カ〴", "カガ"},
		{"semi-voiced base", "パヽ", "パヽ"},
		{"hatsuon", "ンヽ", "ンヽ"},
		{"sokuon", "ッヽ", "ッヽ"},
		{"hiragana base", "かヽ", "かヽ"},
		{"half-width base", "ｶヽ", "ｶヽ"},
		{"consecutive marks", "カヽヽ", "カカヽ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.input); got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIdentityWithoutMarks(t *testing.T) {
	for _, in := range []string{"", "hello", "ひらがなカタカナ漢字", "ｶﾀｶﾅ"} {
		if got := run(in); got != in {
			t.Errorf("Transliterate(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestProvenance(t *testing.T) {
	in := chars.FromString("時々")
	out := New().Transliterate(in)
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	if out[1].Source != in[1] {
		t.Error("expanded char is not derived from the mark")
	}
	if !out[1].IsTransliterated() {
		t.Error("expanded char not reported as transliterated")
	}
	if out[0].IsTransliterated() {
		t.Error("base char reported as transliterated")
	}
	if out[2].Offset != 6 {
		t.Errorf("sentinel offset = %d, want 6", out[2].Offset)
	}
}
