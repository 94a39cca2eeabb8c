package translit

import (
	"fmt"

	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/errors"
)

// Chain runs stages in order, each consuming the previous stage's output.
// A Chain is immutable and safe for concurrent use.
type Chain struct {
	configs []Config
	stages  []Transliterator
}

// NewChain builds every config into a stage. An empty chain is the
// identity.
func NewChain(configs ...Config) (*Chain, error) {
	c := &Chain{
		configs: append([]Config(nil), configs...),
		stages:  make([]Transliterator, 0, len(configs)),
	}
	for i, cfg := range configs {
		t, err := Build(cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %d (%s)", i, cfg)
		}
		c.stages = append(c.stages, t)
	}
	return c, nil
}

// ChainOf wraps already built stages.
func ChainOf(stages ...Transliterator) *Chain {
	c := &Chain{stages: append([]Transliterator(nil), stages...)}
	for _, s := range stages {
		c.configs = append(c.configs, Custom(fmt.Sprintf("%T", s), s))
	}
	return c
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Configs returns a copy of the configs the chain was built from.
func (c *Chain) Configs() []Config {
	return append([]Config(nil), c.configs...)
}

// Transliterate runs every stage over in.
func (c *Chain) Transliterate(in []*chars.Char) []*chars.Char {
	out := in
	for _, s := range c.stages {
		out = s.Transliterate(out)
	}
	return out
}

// TransliterateString segments s, runs the chain and joins the result.
func (c *Chain) TransliterateString(s string) string {
	if len(c.stages) == 0 {
		return s
	}
	return chars.ToString(c.Transliterate(chars.FromString(s)))
}
