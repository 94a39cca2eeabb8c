package hirakata

import (
	"errors"
	"testing"

	"github.com/FocuswithJustin/yosina/core/chars"
	yerrors "github.com/FocuswithJustin/yosina/core/errors"
)

func mustNew(t *testing.T, mode Mode) *Transliterator {
	t.Helper()
	tr, err := New(Options{Mode: mode})
	if err != nil {
		t.Fatalf("New(%q) error = %v", mode, err)
	}
	return tr
}

func run(tr *Transliterator, s string) string {
	return chars.ToString(tr.Transliterate(chars.FromString(s)))
}

func TestHiraToKata(t *testing.T) {
	tr := mustNew(t, HiraToKata)

	tests := []struct {
		input string
		want  string
	}{
		{"あいうえお", "アイウエオ"},
		{"がぎぐげご", "ガギグゲゴ"},
		{"ぱぴぷぺぽ", "パピプペポ"},
		{"ぁぃぅぇぉっゃゅょ", "ァィゥェォッャュョ"},
		{"ゎゕゖ", "ヮヵヶ"},
		{"あいうえお123ABCアイウエオ", "アイウエオ123ABCアイウエオ"},
		{"こんにちは、世界！", "コンニチハ、世界！"},
		{"ゐゑ", "ヰヱ"},
		{"ゔ", "ヴ"},
	}

	for _, tt := range tests {
		if got := run(tr, tt.input); got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestKataToHira(t *testing.T) {
	tr := mustNew(t, KataToHira)

	tests := []struct {
		input string
		want  string
	}{
		{"アイウエオ", "あいうえお"},
		{"ガギグゲゴ", "がぎぐげご"},
		{"パピプペポ", "ぱぴぷぺぽ"},
		{"ァィゥェォッャュョ", "ぁぃぅぇぉっゃゅょ"},
		{"ヮヵヶ", "ゎゕゖ"},
		{"コンニチハ、世界！", "こんにちは、世界！"},
		{"ヴ", "ゔ"},
		{"ヷヸヹヺ", "ヷヸヹヺ"},
		{"ヰヱ", "ゐゑ"},
	}

	for _, tt := range tests {
		if got := run(tr, tt.input); got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDefaultMode(t *testing.T) {
	tr, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tr.Options().Mode != HiraToKata {
		t.Errorf("Mode = %q, want %q", tr.Options().Mode, HiraToKata)
	}
	if got := run(tr, "かきくけこ"); got != "カキクケコ" {
		t.Errorf("Transliterate() = %q", got)
	}
}

func TestUnknownMode(t *testing.T) {
	_, err := New(Options{Mode: "sideways"})
	if !errors.Is(err, yerrors.ErrInvalidInput) {
		t.Errorf("New() error = %v, want ErrInvalidInput", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"hira-to-kata", HiraToKata, false},
		{"kata_to_hira", KataToHira, false},
		{"bogus", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
