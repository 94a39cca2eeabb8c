// Command ivsgen compiles the IVS/SVS source table into the xz-compressed
// binary embedded by the ivs-svs-base stage.
//
// Usage:
//
//	ivsgen --in ivs_svs_base.json --out ivs_svs_base.bin.xz
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/transliterators/ivssvs"
)

type options struct {
	In    string `help:"Source JSON table" default:"core/transliterators/ivssvs/data/ivs_svs_base.json" type:"existingfile"`
	Out   string `help:"Output .bin.xz file" default:"core/transliterators/ivssvs/data/ivs_svs_base.bin.xz" type:"path"`
	Check bool   `help:"Decode the written file and compare it with the source"`
}

// sourceRecord is one row of the source table. Sequences are lists of
// "U+XXXX" code points; absent values are null.
type sourceRecord struct {
	IVS      []string `json:"ivs"`
	SVS      []string `json:"svs"`
	Base90   *string  `json:"base90"`
	Base2004 *string  `json:"base2004"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes ivsgen and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	parser, err := kong.New(&opts,
		kong.Name("ivsgen"),
		kong.Description("Compile the IVS/SVS table for embedding"),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "ivsgen: %v\n", err)
		return 1
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "ivsgen: %v\n", err)
		return 2
	}

	n, err := generate(opts)
	if err != nil {
		fmt.Fprintf(stderr, "ivsgen: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote %d records to %s\n", n, opts.Out)
	return 0
}

func generate(opts options) (int, error) {
	data, err := os.ReadFile(opts.In)
	if err != nil {
		return 0, errors.NewIO("read", opts.In, err)
	}
	records, err := parseSource(data, opts.In)
	if err != nil {
		return 0, err
	}
	compressed, err := compress(ivssvs.Encode(records))
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(opts.Out, compressed, 0644); err != nil {
		return 0, errors.NewIO("write", opts.Out, err)
	}

	if opts.Check {
		if err := verify(compressed, records); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

func parseSource(data []byte, path string) ([]ivssvs.Record, error) {
	var rows []sourceRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.NewParse("json", path, err.Error())
	}

	records := make([]ivssvs.Record, 0, len(rows))
	for i, row := range rows {
		var (
			r   ivssvs.Record
			err error
		)
		if len(row.IVS) == 0 || len(row.IVS) > 2 {
			return nil, errors.NewParse("json", path, fmt.Sprintf("row %d: ivs needs one or two code points", i))
		}
		if len(row.SVS) > 2 {
			return nil, errors.NewParse("json", path, fmt.Sprintf("row %d: svs has more than two code points", i))
		}
		if r.IVS, err = sequence(row.IVS); err != nil {
			return nil, errors.NewParse("json", path, fmt.Sprintf("row %d: %v", i, err))
		}
		if r.SVS, err = sequence(row.SVS); err != nil {
			return nil, errors.NewParse("json", path, fmt.Sprintf("row %d: %v", i, err))
		}
		if row.Base90 != nil {
			if r.Base90, err = codePoint(*row.Base90); err != nil {
				return nil, errors.NewParse("json", path, fmt.Sprintf("row %d: %v", i, err))
			}
		}
		if row.Base2004 != nil {
			if r.Base2004, err = codePoint(*row.Base2004); err != nil {
				return nil, errors.NewParse("json", path, fmt.Sprintf("row %d: %v", i, err))
			}
		}
		records = append(records, r)
	}
	return records, nil
}

func codePoint(s string) (string, error) {
	hex, ok := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(s)), "U+")
	if !ok {
		return "", fmt.Errorf("code point %q lacks the U+ prefix", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v == 0 || v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
		return "", fmt.Errorf("invalid code point %q", s)
	}
	return string(rune(v)), nil
}

func sequence(cps []string) (string, error) {
	var b strings.Builder
	for _, cp := range cps {
		s, err := codePoint(cp)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, errors.Wrap(err, "xz writer")
	}
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "xz write")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "xz close")
	}
	return buf.Bytes(), nil
}

func verify(compressed []byte, want []ivssvs.Record) error {
	data, err := ivssvs.Decompress(compressed)
	if err != nil {
		return err
	}
	got, err := ivssvs.Decode(data)
	if err != nil {
		return err
	}
	if len(got) != len(want) {
		return fmt.Errorf("decoded %d records, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			return fmt.Errorf("record %d decoded as %+v, want %+v", i, got[i], want[i])
		}
	}
	return nil
}
