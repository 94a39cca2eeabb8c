package recipe

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/yosina/core/transliterators/hirakata"
)

// normalized spells the enumerated fields canonically. Unparseable values
// are left as they are; Compile reports them.
func (r Recipe) normalized() Recipe {
	if m, err := hirakata.ParseMode(string(r.HiraKata)); err == nil {
		r.HiraKata = m
	}
	r.Charset = r.charset()
	if !r.ReplaceHyphens.Enabled {
		r.ReplaceHyphens.Precedence = nil
	}
	return r
}

// Fingerprint identifies the pipeline r compiles to. Equivalent spellings
// of the same recipe share a fingerprint.
func (r Recipe) Fingerprint() string {
	data, err := json.Marshal(r.normalized())
	if err != nil {
		panic(err) // all fields marshal
	}
	sum := blake3.Sum256(append([]byte("recipe:"), data...))
	return hex.EncodeToString(sum[:16])
}
