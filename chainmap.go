package chainmap

import (
	"iter"
	"maps"
)

// ChainMap is an ordered chain of map layers with a unified view.
// Index 0 is the highest-precedence layer. See the package documentation
// for precedence and performance characteristics.
//
// The zero value is an empty chain ready to use, though most callers will
// want New, WithCapacity, or From.
type ChainMap[K comparable, V any] struct {
	layers []map[K]V
}

// New creates an empty ChainMap with zero layers.
// The chain does not allocate until a layer is pushed.
func New[K comparable, V any]() *ChainMap[K, V] {
	return &ChainMap[K, V]{}
}

// WithCapacity creates an empty ChainMap with room for n layers
// before the chain needs to reallocate.
func WithCapacity[K comparable, V any](n int) *ChainMap[K, V] {
	return &ChainMap[K, V]{layers: make([]map[K]V, 0, n)}
}

// From builds a ChainMap from the given maps, preserving argument order as
// precedence order: the first map has the highest precedence. Equivalent to
// starting empty and pushing each map in turn.
func From[K comparable, V any](layers ...map[K]V) *ChainMap[K, V] {
	c := WithCapacity[K, V](len(layers))
	for _, m := range layers {
		c.PushLayer(m)
	}
	return c
}

// PushLayer appends a map to the lowest-precedence end of the chain.
// The chain stores its own copy of the map, so the caller's map can be
// reused or modified freely afterward without affecting the chain.
// A nil map becomes an empty layer.
func (c *ChainMap[K, V]) PushLayer(m map[K]V) {
	layer := maps.Clone(m)
	if layer == nil {
		layer = make(map[K]V)
	}
	c.layers = append(c.layers, layer)
}

// Extend pushes each map onto the lowest-precedence end of the chain,
// in argument order.
func (c *ChainMap[K, V]) Extend(ms ...map[K]V) {
	for _, m := range ms {
		c.PushLayer(m)
	}
}

// Get returns the highest-precedence value associated with the key.
// The second return value reports whether any layer contains the key.
func (c *ChainMap[K, V]) Get(k K) (V, bool) {
	for _, layer := range c.layers {
		if v, ok := layer[k]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// MustGet returns the highest-precedence value associated with the key.
// It panics if the key is absent from every layer, so it should only be
// used where absence indicates a programming error.
func (c *ChainMap[K, V]) MustGet(k K) V {
	v, ok := c.Get(k)
	if !ok {
		panic("chainmap: no entry found for key")
	}
	return v
}

// ContainsKey reports whether any layer in the chain contains the key,
// regardless of precedence.
func (c *ChainMap[K, V]) ContainsKey(k K) bool {
	for _, layer := range c.layers {
		if _, ok := layer[k]; ok {
			return true
		}
	}
	return false
}

// Resolve returns the index of the layer that supplies the effective value
// for the key, or -1 if the key is absent from every layer. Index 0 is the
// highest-precedence layer.
func (c *ChainMap[K, V]) Resolve(k K) int {
	for i, layer := range c.layers {
		if _, ok := layer[k]; ok {
			return i
		}
	}
	return -1
}

// Set inserts the key into the highest-precedence layer, so the new value
// is immediately what Get returns, never shadowed by an existing duplicate
// in a lower layer. Setting on a chain with zero layers creates the first
// layer. It returns the previously visible value for the key, whichever
// layer held it, and whether one existed.
func (c *ChainMap[K, V]) Set(k K, v V) (V, bool) {
	prev, ok := c.Get(k)
	if len(c.layers) == 0 {
		c.layers = append(c.layers, make(map[K]V))
	}
	c.layers[0][k] = v
	return prev, ok
}

// Mutate applies fn to the value in the precedence-resolved layer for the
// key. Shadowed duplicates in lower layers are left untouched. It returns
// false, without calling fn, when no layer contains the key.
func (c *ChainMap[K, V]) Mutate(k K, fn func(*V)) bool {
	for _, layer := range c.layers {
		if v, ok := layer[k]; ok {
			fn(&v)
			layer[k] = v
			return true
		}
	}
	return false
}

// Delete removes the key from every layer in the chain, so the key is fully
// absent afterward rather than resurfacing a lower-precedence duplicate.
// It returns the previously effective value and whether one existed.
func (c *ChainMap[K, V]) Delete(k K) (V, bool) {
	prev, ok := c.Get(k)
	for _, layer := range c.layers {
		delete(layer, k)
	}
	return prev, ok
}

// All returns an iterator over the effective entries of the chain: the
// union of keys across all layers, each key yielded exactly once with its
// precedence-resolved value. The order of keys is unspecified. Each range
// over the result is a fresh full pass.
func (c *ChainMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		seen := make(map[K]struct{})
		for _, layer := range c.layers {
			for k, v := range layer {
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Keys returns an iterator over the distinct keys of the chain.
func (c *ChainMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range c.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the effective values of the chain,
// one per distinct key.
func (c *ChainMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range c.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of distinct keys across all layers. Keys that
// appear in several layers count once, so Len is at most the sum of the
// individual layer sizes.
func (c *ChainMap[K, V]) Len() int {
	if len(c.layers) == 1 {
		return len(c.layers[0])
	}
	seen := make(map[K]struct{})
	for _, layer := range c.layers {
		for k := range layer {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

// IsEmpty reports whether every layer in the chain is empty.
func (c *ChainMap[K, V]) IsEmpty() bool {
	for _, layer := range c.layers {
		if len(layer) > 0 {
			return false
		}
	}
	return true
}

// LayerCount returns the number of layers in the chain.
func (c *ChainMap[K, V]) LayerCount() int {
	return len(c.layers)
}

// Flatten returns a new ordinary map holding the effective entries of the
// chain. The result is independent of the chain.
func (c *ChainMap[K, V]) Flatten() map[K]V {
	out := make(map[K]V, c.Len())
	for i := len(c.layers) - 1; i >= 0; i-- {
		maps.Copy(out, c.layers[i])
	}
	return out
}

// Clone returns a copy of the chain with the same layer structure.
// Layers are copied, values are not.
func (c *ChainMap[K, V]) Clone() *ChainMap[K, V] {
	out := WithCapacity[K, V](len(c.layers))
	for _, layer := range c.layers {
		out.layers = append(out.layers, maps.Clone(layer))
	}
	return out
}

// Equal reports whether two chains have the same layers in the same order.
// Chains that differ in layer structure are unequal even when their
// effective views match.
func Equal[K, V comparable](a, b *ChainMap[K, V]) bool {
	if len(a.layers) != len(b.layers) {
		return false
	}
	for i := range a.layers {
		if !maps.Equal(a.layers[i], b.layers[i]) {
			return false
		}
	}
	return true
}
