package node

import "github.com/vk/flowgraph/internal/dval"

// MemoCache is a per-function-node content-addressed cache keyed by the
// canonical serialization of a resolved argument map (spec.md §4.4). It is
// never evicted during the owning node's lifetime; Clear is called only
// when the node is destroyed or rebound to a different function
// (FunctionVariant.Rebind). The engine is single-threaded and synchronous
// (spec.md §5), so no locking is required here.
type MemoCache struct {
	entries map[string]dval.DVal
}

// NewMemoCache returns an empty cache.
func NewMemoCache() *MemoCache {
	return &MemoCache{entries: make(map[string]dval.DVal)}
}

// Get returns the cached value for key, if present.
func (c *MemoCache) Get(key string) (dval.DVal, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Set stores v under key. Writes are monotonic: a memo entry, once
// written, is never overwritten with a different value for the same key
// (spec.md §5), so callers need not guard against races across recursive
// calls.
func (c *MemoCache) Set(key string, v dval.DVal) {
	c.entries[key] = v
}

// Clear empties the cache.
func (c *MemoCache) Clear() {
	c.entries = make(map[string]dval.DVal)
}

// Len reports the number of cached entries, used by tests to assert a
// function body was not re-invoked (spec.md §8 law 3).
func (c *MemoCache) Len() int {
	return len(c.entries)
}
