package roman

import (
	"testing"

	"github.com/FocuswithJustin/yosina/core/chars"
)

func TestTransliterate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ⅰ", "I"},
		{"Ⅳ", "IV"},
		{"Ⅻ", "XII"},
		{"Ⅿ", "M"},
		{"ⅰⅱⅲ", "iiiiii"},
		{"第Ⅱ章", "第II章"},
		{"ↀ", "ↀ"},
		{"IV", "IV"},
	}

	tr := New()
	for _, tt := range tests {
		if got := chars.ToString(tr.Transliterate(chars.FromString(tt.input))); got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
