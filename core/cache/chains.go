package cache

import (
	"sync"

	"github.com/FocuswithJustin/yosina/core/pipeline"
	"github.com/FocuswithJustin/yosina/core/recipe"
	"github.com/FocuswithJustin/yosina/core/translit"
)

// ChainCache holds compiled chains keyed by fingerprint. Chains are
// immutable, so a cached chain may be shared by any number of callers.
type ChainCache struct {
	mu      sync.Mutex
	cache   Cache[string, *translit.Chain]
	onBuild func(source, fingerprint string, stages int)
}

// NewChainCache creates a chain cache.
func NewChainCache(config Config) *ChainCache {
	return &ChainCache{cache: NewLRUCache[string, *translit.Chain](config)}
}

// NewDefaultChainCache creates a chain cache with the default configuration.
func NewDefaultChainCache() *ChainCache {
	return NewChainCache(DefaultConfig())
}

// OnBuild registers fn to be called after every chain the cache compiles.
// It must be called before the cache is shared.
func (c *ChainCache) OnBuild(fn func(source, fingerprint string, stages int)) *ChainCache {
	c.onBuild = fn
	return c
}

// Get returns the chain cached under fingerprint.
func (c *ChainCache) Get(fingerprint string) (*translit.Chain, bool) {
	return c.cache.Get(fingerprint)
}

// Put caches chain under fingerprint.
func (c *ChainCache) Put(fingerprint string, chain *translit.Chain) {
	c.cache.Put(fingerprint, chain)
}

// GetOrBuild returns the chain cached under fingerprint, calling build
// on a miss. Concurrent misses for the same cache build once. Failed
// builds are not cached.
func (c *ChainCache) GetOrBuild(source, fingerprint string, build func() (*translit.Chain, error)) (*translit.Chain, error) {
	if chain, ok := c.cache.Get(fingerprint); ok {
		return chain, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if chain, ok := c.cache.Get(fingerprint); ok {
		return chain, nil
	}
	chain, err := build()
	if err != nil {
		return nil, err
	}
	c.cache.Put(fingerprint, chain)
	if c.onBuild != nil {
		c.onBuild(source, fingerprint, chain.Len())
	}
	return chain, nil
}

// Recipe returns the chain for r, compiling it on first use.
func (c *ChainCache) Recipe(r recipe.Recipe) (*translit.Chain, string, error) {
	fp := r.Fingerprint()
	chain, err := c.GetOrBuild("recipe", fp, r.Build)
	return chain, fp, err
}

// Pipeline returns the chain for a pipeline expression. The fingerprint
// is taken over the normalized stage list, so spellings that differ only
// in whitespace or defaulted options share one cache entry.
func (c *ChainCache) Pipeline(expr string, custom pipeline.Registry) (*translit.Chain, string, error) {
	cfgs, err := pipeline.Parse(expr, custom)
	if err != nil {
		return nil, "", err
	}
	fp := pipeline.Fingerprint(cfgs)
	chain, err := c.GetOrBuild("pipeline", fp, func() (*translit.Chain, error) {
		return translit.NewChain(cfgs...)
	})
	return chain, fp, err
}

// Remove drops the chain cached under fingerprint.
func (c *ChainCache) Remove(fingerprint string) {
	c.cache.Remove(fingerprint)
}

// Clear drops every cached chain.
func (c *ChainCache) Clear() {
	c.cache.Clear()
}

// Len returns the number of cached chains.
func (c *ChainCache) Len() int {
	return c.cache.Len()
}

// Stats returns cache statistics.
func (c *ChainCache) Stats() Stats {
	return c.cache.Stats()
}
