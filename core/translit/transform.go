package translit

import (
	"bytes"

	"golang.org/x/text/transform"
)

// Transformer returns a transform.Transformer running the chain. Input is
// buffered up to the last line feed seen, so that no stage ever looks
// across a chunk boundary in the middle of a line.
func (c *Chain) Transformer() transform.Transformer {
	return &transformer{chain: c}
}

type transformer struct {
	chain   *Chain
	pending []byte
	out     []byte
}

func (t *transformer) Reset() {
	t.pending = t.pending[:0]
	t.out = t.out[:0]
}

func (t *transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	t.pending = append(t.pending, src...)
	nSrc = len(src)

	for {
		if len(t.out) == 0 {
			cut := len(t.pending)
			if !atEOF {
				cut = bytes.LastIndexByte(t.pending, '\n') + 1
			}
			if cut > 0 {
				t.out = append(t.out, t.chain.TransliterateString(string(t.pending[:cut]))...)
				t.pending = append(t.pending[:0], t.pending[cut:]...)
			}
		}

		n := copy(dst[nDst:], t.out)
		nDst += n
		t.out = t.out[n:]
		if len(t.out) > 0 {
			return nDst, nSrc, transform.ErrShortDst
		}
		if !atEOF || len(t.pending) == 0 {
			return nDst, nSrc, nil
		}
	}
}
