package ivssvs

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/yosina/core/errors"
)

// ResourceName identifies the embedded table in errors and logs.
const ResourceName = "ivs_svs_base.bin.xz"

//go:embed data/ivs_svs_base.bin.xz
var resource []byte

// Injectable for tests.
var (
	xzNewReader = xz.NewReader
	ioReadAll   = io.ReadAll
)

const (
	headerSize = 4
	recordSize = 24
)

// Record ties an ideographic variation sequence to its optional
// standardized variation sequence and to the base character in each
// supported charset. IVS is never empty; the other fields may be.
type Record struct {
	IVS      string `json:"ivs"`
	SVS      string `json:"svs,omitempty"`
	Base90   string `json:"base90,omitempty"`
	Base2004 string `json:"base2004,omitempty"`
}

// Base returns the base character of r in cs.
func (r *Record) Base(cs Charset) string {
	if cs == UniJIS2004 {
		return r.Base2004
	}
	return r.Base90
}

// Table indexes records by base character per charset and by variant.
type Table struct {
	records  []Record
	base90   map[string]*Record
	base2004 map[string]*Record
	variants map[string]*Record
}

// NewTable indexes records. Records with an empty IVS are rejected.
func NewTable(records []Record) (*Table, error) {
	t := &Table{
		records:  records,
		base90:   make(map[string]*Record, len(records)),
		base2004: make(map[string]*Record, len(records)),
		variants: make(map[string]*Record, len(records)),
	}
	for i := range t.records {
		r := &t.records[i]
		if r.IVS == "" {
			return nil, errors.NewDecode("records", -1, fmt.Sprintf("record %d has no IVS", i))
		}
		if r.Base90 != "" {
			t.base90[r.Base90] = r
		}
		if r.Base2004 != "" {
			t.base2004[r.Base2004] = r
		}
		t.variants[r.IVS] = r
		if r.SVS != "" {
			t.variants[r.SVS] = r
		}
	}
	return t, nil
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the records in table order. The slice is shared.
func (t *Table) Records() []Record {
	return t.records
}

// ByBase looks up the record whose base in cs is s.
func (t *Table) ByBase(cs Charset, s string) (*Record, bool) {
	m := t.base90
	if cs == UniJIS2004 {
		m = t.base2004
	}
	r, ok := m[s]
	return r, ok
}

// ByVariant looks up the record whose IVS or SVS is s.
func (t *Table) ByVariant(s string) (*Record, bool) {
	r, ok := t.variants[s]
	return r, ok
}

func codePoint(data []byte, off int) (string, error) {
	v := binary.BigEndian.Uint32(data[off:])
	if v == 0 {
		return "", nil
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return "", errors.NewDecode(ResourceName, off, fmt.Sprintf("invalid code point %#x", v))
	}
	return string(r), nil
}

func sequence(data []byte, off int) (string, error) {
	a, err := codePoint(data, off)
	if err != nil {
		return "", err
	}
	b, err := codePoint(data, off+4)
	if err != nil {
		return "", err
	}
	return a + b, nil
}

// Decode parses the binary table: a big-endian record count followed by
// 24-byte records of six big-endian code points (IVS, IVS selector, SVS,
// SVS selector, unijis90 base, unijis2004 base), zero meaning absent.
func Decode(data []byte) ([]Record, error) {
	if len(data) < headerSize {
		return nil, errors.NewDecode(ResourceName, 0, "data too short for the record count")
	}
	count := binary.BigEndian.Uint32(data)
	if want := headerSize + uint64(count)*recordSize; uint64(len(data)) < want {
		return nil, errors.NewDecode(ResourceName, headerSize,
			fmt.Sprintf("%d records need %d bytes, have %d", count, want, len(data)))
	}

	records := make([]Record, count)
	off := headerSize
	for i := range records {
		if binary.BigEndian.Uint32(data[off:]) == 0 {
			return nil, errors.NewDecode(ResourceName, off, "IVS code point is zero")
		}
		var (
			r   Record
			err error
		)
		if r.IVS, err = sequence(data, off); err != nil {
			return nil, err
		}
		if r.SVS, err = sequence(data, off+8); err != nil {
			return nil, err
		}
		if r.Base90, err = codePoint(data, off+16); err != nil {
			return nil, err
		}
		if r.Base2004, err = codePoint(data, off+20); err != nil {
			return nil, err
		}
		records[i] = r
		off += recordSize
	}
	return records, nil
}

// Encode writes records in the format read by Decode. Sequences longer
// than two scalars and bases longer than one are truncated.
func Encode(records []Record) []byte {
	out := make([]byte, headerSize+len(records)*recordSize)
	binary.BigEndian.PutUint32(out, uint32(len(records)))
	off := headerSize
	put := func(s string, n int) {
		rs := []rune(s)
		for i := 0; i < n; i++ {
			if i < len(rs) {
				binary.BigEndian.PutUint32(out[off:], uint32(rs[i]))
			}
			off += 4
		}
	}
	for _, r := range records {
		put(r.IVS, 2)
		put(r.SVS, 2)
		put(r.Base90, 1)
		put(r.Base2004, 1)
	}
	return out
}

// Decompress inflates an xz-compressed table.
func Decompress(compressed []byte) ([]byte, error) {
	xr, err := xzNewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &errors.DecodeError{Resource: ResourceName, Offset: -1, Message: "bad xz header", Err: err}
	}
	data, err := ioReadAll(xr)
	if err != nil {
		return nil, &errors.DecodeError{Resource: ResourceName, Offset: -1, Message: "xz stream: " + err.Error(), Err: err}
	}
	return data, nil
}

var (
	loadOnce  sync.Once
	loaded    *Table
	loadError error
)

// Load decodes the embedded table on first use and returns the shared
// result afterwards.
func Load() (*Table, error) {
	loadOnce.Do(func() {
		loaded, loadError = loadResource(resource)
	})
	return loaded, loadError
}

func loadResource(compressed []byte) (*Table, error) {
	data, err := Decompress(compressed)
	if err != nil {
		return nil, err
	}
	records, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return NewTable(records)
}
