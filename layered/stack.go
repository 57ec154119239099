package layered

import (
	"fmt"
	"iter"
	"slices"

	"github.com/dshills/chainmap"
)

// Stack manages configuration layers and answers reads through a
// precedence-resolved chain view.
type Stack[V any] struct {
	layers []*Layer[V] // sorted by precedence, highest first
	view   *chainmap.ChainMap[string, V]
	dirty  bool
}

// NewStack creates an empty stack.
func NewStack[V any]() *Stack[V] {
	return &Stack[V]{dirty: true}
}

// Push adds a layer to the stack. Layers are ordered by source precedence;
// among layers with equal precedence, the earlier-pushed layer wins.
// The stack owns the layer after the call.
func (s *Stack[V]) Push(l *Layer[V]) {
	idx := len(s.layers)
	for i, existing := range s.layers {
		if Precedence(l.Source) > Precedence(existing.Source) {
			idx = i
			break
		}
	}
	s.layers = slices.Insert(s.layers, idx, l)
	s.dirty = true
}

// Remove removes a layer by name.
// Returns true if the layer was found and removed.
func (s *Stack[V]) Remove(name string) bool {
	for i, l := range s.layers {
		if l.Name == name {
			s.layers = slices.Delete(s.layers, i, i+1)
			s.dirty = true
			return true
		}
	}
	return false
}

// Layer returns the layer with the given name, or nil.
// Callers that modify the returned layer's data directly must call
// Invalidate afterward.
func (s *Stack[V]) Layer(name string) *Layer[V] {
	for _, l := range s.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// LayerNames returns the layer names in precedence order, highest first.
func (s *Stack[V]) LayerNames() []string {
	names := make([]string, len(s.layers))
	for i, l := range s.layers {
		names[i] = l.Name
	}
	return names
}

// LayerCount returns the number of layers in the stack.
func (s *Stack[V]) LayerCount() int {
	return len(s.layers)
}

// chain returns the resolution view, rebuilding it if a layer was added,
// removed, or written since the last read.
func (s *Stack[V]) chain() *chainmap.ChainMap[string, V] {
	if s.dirty || s.view == nil {
		data := make([]map[string]V, len(s.layers))
		for i, l := range s.layers {
			data[i] = l.Data
		}
		s.view = chainmap.From(data...)
		s.dirty = false
	}
	return s.view
}

// Get returns the effective value for a key.
func (s *Stack[V]) Get(key string) (V, bool) {
	return s.chain().Get(key)
}

// MustGet returns the effective value for a key, panicking when the key is
// absent from every layer.
func (s *Stack[V]) MustGet(key string) V {
	return s.chain().MustGet(key)
}

// ContainsKey reports whether any layer contains the key.
func (s *Stack[V]) ContainsKey(key string) bool {
	return s.chain().ContainsKey(key)
}

// WhichLayer returns the name of the layer that supplies the effective
// value for a key, or "" when the key is absent.
func (s *Stack[V]) WhichLayer(key string) string {
	idx := s.chain().Resolve(key)
	if idx < 0 {
		return ""
	}
	return s.layers[idx].Name
}

// All returns an iterator over the effective entries of the stack.
func (s *Stack[V]) All() iter.Seq2[string, V] {
	return s.chain().All()
}

// Effective returns a new ordinary map holding the effective entries.
func (s *Stack[V]) Effective() map[string]V {
	return s.chain().Flatten()
}

// Len returns the number of distinct keys across all layers.
func (s *Stack[V]) Len() int {
	return s.chain().Len()
}

// IsEmpty reports whether every layer is empty.
func (s *Stack[V]) IsEmpty() bool {
	return s.chain().IsEmpty()
}

// Set writes a value into the named layer.
// Returns an error if the layer is not found or is read-only.
func (s *Stack[V]) Set(layerName, key string, value V) error {
	l := s.Layer(layerName)
	if l == nil {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, layerName)
	}
	if l.ReadOnly {
		return fmt.Errorf("%w: %s", ErrLayerReadOnly, layerName)
	}
	if l.Data == nil {
		l.Data = make(map[string]V)
	}
	l.Data[key] = value
	s.dirty = true
	return nil
}

// SetOverride writes a value into the override layer, creating the layer
// on first use. Override values win over every other source.
func (s *Stack[V]) SetOverride(key string, value V) {
	var override *Layer[V]
	for _, l := range s.layers {
		if l.Source == SourceOverride {
			override = l
			break
		}
	}
	if override == nil {
		override = NewLayer[V]("override", SourceOverride)
		s.Push(override)
	}
	if override.Data == nil {
		override.Data = make(map[string]V)
	}
	override.Data[key] = value
	s.dirty = true
}

// Delete removes a key from the named layer. Removing a key that the layer
// doesn't hold is not an error. If lower-precedence layers also hold the
// key, their value becomes visible again.
func (s *Stack[V]) Delete(layerName, key string) error {
	l := s.Layer(layerName)
	if l == nil {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, layerName)
	}
	if l.ReadOnly {
		return fmt.Errorf("%w: %s", ErrLayerReadOnly, layerName)
	}
	if _, ok := l.Data[key]; ok {
		delete(l.Data, key)
		s.dirty = true
	}
	return nil
}

// Invalidate marks the resolution view stale.
// Call this after modifying a layer's data directly.
func (s *Stack[V]) Invalidate() {
	s.dirty = true
}
