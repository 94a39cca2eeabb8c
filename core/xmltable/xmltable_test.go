package xmltable

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/yosina/core/chars"
	yerrors "github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/transliterators/combined"
	"github.com/FocuswithJustin/yosina/core/transliterators/spaces"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<table name="house-style">
  <!-- wave dash to full-width tilde -->
  <map from="〜" to="～"/>
  <map from="ヶ" to="ケ"/>
  <map from-cp="U+200B" to=""/>
  <map from="か" to-cp="U+304B U+3099"/>
</table>`

func TestParse(t *testing.T) {
	tr, err := Parse([]byte(sample), "sample.xml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tr.Name() != "house-style" {
		t.Errorf("Name() = %q, want house-style", tr.Name())
	}
	if tr.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tr.Len())
	}

	tests := []struct {
		input string
		want  string
	}{
		{"10〜20", "10～20"},
		{"一ヶ月", "一ケ月"},
		{"a\u200bb", "ab"},
		{"か", "か\u3099"},
		{"unchanged", "unchanged"},
	}
	for _, tt := range tests {
		if got := chars.ToString(tr.Transliterate(chars.FromString(tt.input))); got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"malformed", `<table name="x"><map from="a"`, "XML table"},
		{"wrong root", `<mapping name="x"/>`, "root"},
		{"no name", `<table><map from="a" to="b"/></table>`, "name"},
		{"empty from", `<table name="x"><map from="" to="b"/></table>`, "empty from"},
		{"two characters", `<table name="x"><map from="ab" to="c"/></table>`, "want 1"},
		{"duplicate", `<table name="x"><map from="a" to="b"/><map from="a" to="c"/></table>`, "duplicate"},
		{"both forms", `<table name="x"><map from="a" from-cp="U+0061" to="b"/></table>`, "both"},
		{"bad code point", `<table name="x"><map from-cp="U+ZZZZ" to="b"/></table>`, "bad code point"},
		{"surrogate", `<table name="x"><map from-cp="U+D800" to="b"/></table>`, "bad code point"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "t.xml")
			if !errors.Is(err, yerrors.ErrInvalidInput) {
				t.Fatalf("Parse() error = %v, want ErrInvalidInput", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.xml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	tr, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tr.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tr.Len())
	}

	if _, err := Load(filepath.Join(dir, "missing.xml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	for _, tr := range []Tabular{spaces.New(), combined.New()} {
		orig := tr.Table()

		var buf bytes.Buffer
		if err := Write(&buf, orig); err != nil {
			t.Fatalf("Write(%s) error = %v", orig.Name(), err)
		}
		back, err := Parse(buf.Bytes(), orig.Name())
		if err != nil {
			t.Fatalf("Parse(Write(%s)) error = %v\n%s", orig.Name(), err, buf.String())
		}
		if back.Name() != orig.Name() || back.Len() != orig.Len() {
			t.Errorf("%s: round trip gave %s with %d entries, want %d", orig.Name(), back.Name(), back.Len(), orig.Len())
		}
		for _, k := range orig.Keys() {
			want, _ := orig.Lookup(k)
			if got, ok := back.Lookup(k); !ok || got != want {
				t.Errorf("%s: Lookup(%q) = %q, %v; want %q", orig.Name(), k, got, ok, want)
			}
		}
	}
}

func TestWriteUsesCodePoints(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, spaces.New().Table()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`name="spaces"`, `from-cp="U+3000"`, `to-cp="U+0020"`, `from-cp="U+FEFF"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Write() output missing %s", want)
		}
	}
}
