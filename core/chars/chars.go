// Package chars models text as a sequence of positioned characters.
//
// Each Char holds one extended grapheme cluster, its byte offset in the
// text being (re)built, and a link to the Char it was derived from. A
// complete sequence always ends with a sentinel whose Value is empty.
package chars

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Char is a single positioned character.
type Char struct {
	// Value is one grapheme cluster, or "" for the end-of-stream sentinel.
	Value string
	// Offset is the byte offset of Value in the sequence it belongs to.
	Offset int
	// Source is the character this one was derived from, if any.
	Source *Char
}

// IsSentinel reports whether c marks the end of a sequence.
func (c *Char) IsSentinel() bool {
	return c.Value == ""
}

// IsTransliterated reports whether any step of c's provenance changed
// the value.
func (c *Char) IsTransliterated() bool {
	for cur := c; cur.Source != nil; cur = cur.Source {
		if cur.Source.Value != cur.Value {
			return true
		}
	}
	return false
}

// WithOffset returns a copy of c placed at offset, derived from c.
func (c *Char) WithOffset(offset int) *Char {
	return &Char{Value: c.Value, Offset: offset, Source: c}
}

// Derive returns a new character with the given value, derived from c.
func (c *Char) Derive(value string, offset int) *Char {
	return &Char{Value: value, Offset: offset, Source: c}
}

// Len returns the UTF-8 length of the value.
func (c *Char) Len() int {
	return len(c.Value)
}

// Runes returns the scalars making up the value.
func (c *Char) Runes() []rune {
	return []rune(c.Value)
}

func (c *Char) String() string {
	return c.Value
}

// FromString splits s into grapheme clusters and appends the sentinel.
func FromString(s string) []*Char {
	out := make([]*Char, 0, len(s)/2+1)
	offset := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, &Char{Value: cluster, Offset: offset})
		offset += len(cluster)
	}
	return append(out, &Char{Offset: offset})
}

// ToString concatenates the values of cs. The sentinel contributes nothing.
func ToString(cs []*Char) string {
	var sb strings.Builder
	for _, c := range cs {
		sb.WriteString(c.Value)
	}
	return sb.String()
}

// Split breaks s into grapheme clusters.
func Split(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

// Builder accumulates an output sequence, keeping offsets consistent.
type Builder struct {
	out    []*Char
	offset int
}

// NewBuilder returns a Builder sized for about n characters.
func NewBuilder(n int) *Builder {
	return &Builder{out: make([]*Char, 0, n)}
}

// Offset returns the offset the next character will be placed at.
func (b *Builder) Offset() int {
	return b.offset
}

// Keep appends c unchanged, re-offset.
func (b *Builder) Keep(c *Char) {
	b.Append(c.WithOffset(b.offset))
}

// Append appends c as-is after moving it to the current offset when it
// is already positioned elsewhere.
func (b *Builder) Append(c *Char) {
	if c.Offset != b.offset {
		c = c.WithOffset(b.offset)
	}
	b.out = append(b.out, c)
	b.offset += len(c.Value)
}

// Replace appends value as the replacement for c. A value of several
// grapheme clusters yields several characters, all derived from c; an
// empty value yields none.
func (b *Builder) Replace(c *Char, value string) {
	for _, cluster := range Split(value) {
		b.out = append(b.out, c.Derive(cluster, b.offset))
		b.offset += len(cluster)
	}
}

// Finish appends the sentinel, derived from end when given, and returns
// the sequence.
func (b *Builder) Finish(end *Char) []*Char {
	if end == nil {
		end = &Char{}
	}
	b.out = append(b.out, end.WithOffset(b.offset))
	return b.out
}

// Transform runs fn over every non-sentinel character of in, replacing
// a character whenever fn reports a match.
func Transform(in []*Char, fn func(c *Char) (string, bool)) []*Char {
	b := NewBuilder(len(in))
	var end *Char
	for _, c := range in {
		if c.IsSentinel() {
			end = c
			break
		}
		if repl, ok := fn(c); ok {
			b.Replace(c, repl)
			continue
		}
		b.Keep(c)
	}
	return b.Finish(end)
}
