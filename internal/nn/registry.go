package nn

import (
	"fmt"
	"sort"

	"github.com/born-ml/smoothl1/internal/tensor"
)

// Factory creates a new, unconfigured layer.
type Factory[T tensor.Float] func() Layer[T]

// Registry maps layer type names to factories.
// A Registry is not safe for concurrent Register calls.
type Registry[T tensor.Float] struct {
	factories map[string]Factory[T]
}

// NewRegistry creates an empty registry.
func NewRegistry[T tensor.Float]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
	}
}

// DefaultRegistry creates a registry holding the built-in loss layers.
// opts are applied to every layer the registry creates.
func DefaultRegistry[T tensor.Float](opts ...Option) *Registry[T] {
	r := NewRegistry[T]()
	smoothL1 := func() Layer[T] {
		return NewSmoothL1Loss[T](opts...)
	}
	r.Register(SmoothL1LossType, smoothL1)
	r.Register(SmoothL1Loss3Type, smoothL1)
	return r
}

// Register adds or replaces the factory for a layer type.
func (r *Registry[T]) Register(name string, factory Factory[T]) {
	r.factories[name] = factory
}

// Get returns the factory for a layer type.
func (r *Registry[T]) Get(name string) (Factory[T], bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Create instantiates a layer by type name and configures it for numInputs inputs.
func (r *Registry[T]) Create(name string, numInputs int) (Layer[T], error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	layer := factory()
	if err := layer.Configure(numInputs); err != nil {
		return nil, err
	}
	return layer, nil
}

// Types returns the registered type names in sorted order.
func (r *Registry[T]) Types() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
