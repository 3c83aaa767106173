package types

import (
	"sort"
	"strings"

	"github.com/dolthub/swiss"
)

// HashPair is a single key/value entry retained in a Hash, so both the
// original key value (for String()) and its value are available.
type HashPair struct {
	Key   Value
	Value Value
}

// Hash is a mapping from hashable values (integers, booleans, strings) to
// arbitrary values, backed by a swiss table for O(1) amortized access.
type Hash struct {
	pairs *swiss.Map[HashKey, HashPair]
}

// NewHash returns an empty Hash with initial capacity for at least size
// entries.
func NewHash(size int) *Hash {
	return &Hash{pairs: swiss.NewMap[HashKey, HashPair](uint32(size))}
}

func (h *Hash) Type() string { return "HASH" }

func (h *Hash) String() string {
	pairs := make([]string, 0, h.pairs.Count())
	h.pairs.Iter(func(_ HashKey, p HashPair) bool {
		pairs = append(pairs, p.Key.String()+": "+p.Value.String())
		return false
	})
	sort.Strings(pairs)
	return "{" + strings.Join(pairs, ", ") + "}"
}

// Set stores value under key, which must implement Hashable.
func (h *Hash) Set(key Hashable, value Value) {
	h.pairs.Put(key.HashKey(), HashPair{Key: key, Value: value})
}

// Get retrieves the value stored under key, if any.
func (h *Hash) Get(key Hashable) (Value, bool) {
	pair, ok := h.pairs.Get(key.HashKey())
	if !ok {
		return nil, false
	}
	return pair.Value, true
}

// Len reports the number of entries in the hash.
func (h *Hash) Len() int { return int(h.pairs.Count()) }
