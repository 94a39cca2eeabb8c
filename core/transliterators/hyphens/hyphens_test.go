package hyphens

import (
	"errors"
	"testing"

	"github.com/FocuswithJustin/yosina/core/chars"
	yerrors "github.com/FocuswithJustin/yosina/core/errors"
)

func run(t *testing.T, opts Options, s string) string {
	t.Helper()
	tr, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return chars.ToString(tr.Transliterate(chars.FromString(s)))
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		prec  []Precedence
		input string
		want  string
	}{
		{"default hyphen-minus", nil, "1-2", "1−2"},
		{"ascii em dash", []Precedence{ASCII}, "a—b", "a-b"},
		{"jis90 em dash", []Precedence{JISX020890}, "a—b", "a—b"},
		{"jis90 windows em dash", []Precedence{JISX020890Windows}, "a—b", "a―b"},
		{"jis90 windows minus", []Precedence{JISX020890Windows}, "−", "－"},
		{"jisx0201 prolonged mark", []Precedence{JISX0201}, "ー", "ｰ"},
		{"ascii wave dash", []Precedence{ASCII}, "〜", "~"},
		{"two-em dash expands", []Precedence{ASCII}, "⸺", "--"},
		{"three-em dash jis90", []Precedence{JISX020890}, "⸻", "———"},
		{"fallback to second", []Precedence{ASCII, JISX0201}, "・", "･"},
		{"first wins", []Precedence{JISX020890Windows, JISX0201}, "ー", "ー"},
		{"verbatim keeps jis char", []Precedence{JISX0208Verbatim, ASCII}, "―", "―"},
		{"verbatim falls through", []Precedence{JISX0208Verbatim, ASCII}, "–", "-"},
		{"unmapped in all sets", []Precedence{ASCII}, "‖", "‖"},
		{"unrelated text", []Precedence{ASCII}, "abcかな", "abcかな"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, Options{Precedence: tt.prec}, tt.input); got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		in      string
		want    Precedence
		wantErr bool
	}{
		{"ascii", ASCII, false},
		{"jisx0208-90-windows", JISX020890Windows, false},
		{"JISX0201", JISX0201, false},
		{"latin1", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePrecedence(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePrecedence(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePrecedence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnknownPrecedence(t *testing.T) {
	_, err := New(Options{Precedence: []Precedence{"ebcdic"}})
	if !errors.Is(err, yerrors.ErrInvalidInput) {
		t.Errorf("New() error = %v, want ErrInvalidInput", err)
	}
}

func TestTablesShared(t *testing.T) {
	a, _ := New(Options{Precedence: []Precedence{ASCII}})
	b, _ := New(Options{Precedence: []Precedence{ASCII}})
	if a.t != b.t {
		t.Error("identical precedence lists built separate tables")
	}
}
