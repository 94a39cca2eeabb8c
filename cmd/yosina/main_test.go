package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/yosina/core/xmltable"
	"github.com/FocuswithJustin/yosina/internal/logging"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	prev := logging.SetOutput(io.Discard)
	defer logging.SetOutput(prev)

	var out bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &out)
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

const greekTable = `<?xml version="1.0"?>
<table name="greek">
  <map from="α" to="a"/>
  <map from="β" to="b"/>
</table>`

func TestTransliterateCmd(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "recipe.json", `{"replaceCombinedCharacters": true, "toHalfwidth": "hankaku-kana"}`)
	tablePath := writeFile(t, dir, "greek.xml", greekTable)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"identity", "そのまま\n", []string{"transliterate"}, "そのまま\n"},
		{"pipeline", "a\u3000b\n", []string{"transliterate", "--pipeline", "spaces"}, "a b\n"},
		{"recipe", "㈱カタカナ\n", []string{"transliterate", "--recipe", recipePath}, "(株)ｶﾀｶﾅ\n"},
		{"table only", "αβγ", []string{"transliterate", "-t", tablePath}, "abγ"},
		{"table in pipeline", "αＡ", []string{"transliterate", "-t", tablePath, "-p", "greek | jisx0201-and-alike"}, "aA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runCLI(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("run(%v) error = %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("run(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestTransliterateFiles(t *testing.T) {
	dir := t.TempDir()
	var input strings.Builder
	for i := 0; i < 2000; i++ {
		input.WriteString("ｶﾞｲﾄﾞ ﾌﾞｯｸ\n")
	}
	in := writeFile(t, dir, "in.txt", input.String())
	out := filepath.Join(dir, "out.txt")

	if _, err := runCLI(t, "", "transliterate", "-p", "jisx0201-and-alike(fullwidth-to-halfwidth=false)", "-o", out, in); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("ガイド\u3000ブック\n", 2000)
	if string(data) != want {
		t.Errorf("output differs: got %d bytes, want %d", len(data), len(want))
	}
}

func TestTransliterateErrors(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "recipe.json", `{"toFullwidth": true, "toHalfwidth": true}`)
	tablePath := writeFile(t, dir, "greek.xml", greekTable)
	shadow := writeFile(t, dir, "spaces.xml", `<table name="spaces"><map from="a" to="b"/></table>`)

	tests := []struct {
		name string
		args []string
	}{
		{"recipe and pipeline", []string{"transliterate", "-r", recipePath, "-p", "spaces"}},
		{"conflicting recipe", []string{"transliterate", "-r", recipePath}},
		{"table with recipe", []string{"transliterate", "-r", recipePath, "-t", tablePath}},
		{"unknown stage", []string{"transliterate", "-p", "nope"}},
		{"shadowing table", []string{"transliterate", "-t", shadow}},
		{"missing file", []string{"transliterate", filepath.Join(dir, "missing.txt")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, "", tt.args...); err == nil {
				t.Errorf("run(%v) error = nil", tt.args)
			}
		})
	}
}

func TestCompileCmd(t *testing.T) {
	out, err := runCLI(t, "", "compile", "-p", "spaces|hyphens( precedence = ascii )")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("output = %q, want 3 lines", out)
	}
	if lines[0] != "spaces | hyphens(precedence=ascii)" {
		t.Errorf("pipeline = %q", lines[0])
	}
	if lines[1] != "stages: 2" {
		t.Errorf("stages line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "fingerprint: ") || len(lines[2]) != len("fingerprint: ")+32 {
		t.Errorf("fingerprint line = %q", lines[2])
	}

	out, err = runCLI(t, "", "compile", "--json", "-p", "spaces | hyphens(precedence=ascii)")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	var res compileResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.TrimPrefix(lines[2], "fingerprint: ") != res.Fingerprint {
		t.Errorf("fingerprint differs between spellings: %q vs %q", lines[2], res.Fingerprint)
	}
	if len(res.Stages) != 2 || res.Stages[0] != "spaces" {
		t.Errorf("stages = %v", res.Stages)
	}
}

func TestCompileRecipe(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "recipe.json", `{"replaceSpaces": true, "kanjiOldNew": true}`)

	out, err := runCLI(t, "", "compile", "--json", "-r", recipePath)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	var res compileResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"ivs-svs-base", "spaces", "kanji-old-new", "ivs-svs-base"}
	if strings.Join(res.Stages, ",") != strings.Join(want, ",") {
		t.Errorf("stages = %v, want %v", res.Stages, want)
	}
}

func TestStagesCmd(t *testing.T) {
	out, err := runCLI(t, "", "stages")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if strings.Contains(out, "custom") {
		t.Error("stages lists custom")
	}
	for _, name := range []string{"spaces", "ivs-svs-base", "jisx0201-and-alike", "roman-numerals"} {
		if !strings.Contains(out, name+"\n") {
			t.Errorf("stages output missing %s", name)
		}
	}
}

func TestTableCmds(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "kata.xml")

	if _, err := runCLI(t, "", "table", "export", "hira-kata(mode=kata-to-hira)", "-o", out); err != nil {
		t.Fatalf("table export error = %v", err)
	}
	tbl, err := xmltable.Load(out)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, ok := tbl.Lookup("カ"); !ok || got != "か" {
		t.Errorf("Lookup(カ) = %q, %v, want か", got, ok)
	}

	got, err := runCLI(t, "", "table", "check", out)
	if err != nil {
		t.Fatalf("table check error = %v", err)
	}
	if !strings.Contains(got, "kata-to-hira") {
		t.Errorf("table check output = %q", got)
	}

	if _, err := runCLI(t, "", "table", "export", "japanese-iteration-marks"); err == nil {
		t.Error("exporting a rule-based stage succeeded")
	}
	if _, err := runCLI(t, "", "table", "export", "spaces | combined"); err == nil {
		t.Error("exporting two stages succeeded")
	}
}

func TestIVSCmds(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ivs.db")
	source := writeFile(t, dir, "ivs.json",
		`[{"ivs":"葛\udb40\udd00","base90":"葛","base2004":"葛"},{"ivs":"辻\udb40\udd00","svs":"辻\ufe00","base2004":"辻"}]`)

	out, err := runCLI(t, "", "ivs", "export", "--db", db, "--source", source)
	if err != nil {
		t.Fatalf("ivs export error = %v", err)
	}
	if !strings.HasPrefix(out, "Exported 2 records") {
		t.Errorf("ivs export output = %q", out)
	}

	out, err = runCLI(t, "", "ivs", "lookup", "--db", db, "辻")
	if err != nil {
		t.Fatalf("ivs lookup error = %v", err)
	}
	want := "ivs=U+8FBB U+E0100 svs=U+8FBB U+FE00 base90=- base2004=U+8FBB\n"
	if out != want {
		t.Errorf("ivs lookup = %q, want %q", out, want)
	}

	if _, err := runCLI(t, "", "ivs", "lookup", "--db", db, "x"); err == nil {
		t.Error("lookup of an unknown character succeeded")
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.HasPrefix(out, "yosina version "+version) {
		t.Errorf("version output = %q", out)
	}
}

func TestLogFlags(t *testing.T) {
	if _, err := runCLI(t, "", "--log-level", "loud", "version"); err == nil {
		t.Error("invalid log level accepted")
	}
	if _, err := runCLI(t, "", "--log-level", "debug", "--log-format", "json", "version"); err != nil {
		t.Errorf("run() error = %v", err)
	}
}

func TestCommandsLogTableLoads(t *testing.T) {
	var logs bytes.Buffer
	prev := logging.SetOutput(&logs)
	defer logging.SetOutput(prev)

	dir := t.TempDir()
	db := filepath.Join(dir, "ivs.db")
	tbl := writeFile(t, dir, "greek.xml", greekTable)

	args := []string{"--log-level", "info", "--log-format", "json"}
	var out bytes.Buffer
	if err := run(context.Background(), append(args, "ivs", "export", "--db", db), strings.NewReader(""), &out); err != nil {
		t.Fatalf("ivs export error = %v", err)
	}
	if err := run(context.Background(), append(args, "table", "check", tbl), strings.NewReader(""), &out); err != nil {
		t.Fatalf("table check error = %v", err)
	}

	for _, want := range []string{`"table":"ivs_svs_base"`, `"op":"export"`, `"table":"greek"`, `"entries":2`} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %s:\n%s", want, logs.String())
		}
	}
}
