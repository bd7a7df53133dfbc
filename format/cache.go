// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package format

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of rendered documents kept by a Cache
// created with a non-positive size.
const DefaultCacheSize = 256

// Cache keeps recently rendered output keyed by a hash of the source bytes
// and the options that affect the output. Only successful renders are
// cached. It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[uint64, []byte]
}

// NewCache returns a cache holding up to size entries.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[uint64, []byte](size)
	if err != nil {
		// Only returned for non-positive sizes.
		panic(err)
	}
	return &Cache{entries: entries}
}

// SourceWithOpts renders src like the package-level SourceWithOpts, reusing
// the previous output when the same bytes were rendered with the same
// options. The second return value reports a cache hit.
func (c *Cache) SourceWithOpts(filename string, src []byte, opts Opts) ([]byte, bool, error) {
	key := cacheKey(src, opts)

	if bs, ok := c.entries.Get(key); ok {
		return bs, true, nil
	}

	bs, err := SourceWithOpts(filename, src, opts)
	if err != nil {
		return nil, false, err
	}

	c.entries.Add(key, bs)
	return bs, false, nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.entries.Purge()
}

func cacheKey(src []byte, opts Opts) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.Itoa(opts.Indent))
	_, _ = d.WriteString(strconv.FormatBool(opts.NoDirective))
	_, _ = d.WriteString("\x00")
	_, _ = d.Write(src)
	return d.Sum64()
}
