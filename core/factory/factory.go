package factory

import (
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// BackendConfig selects a backend by name and carries its raw settings.
type BackendConfig struct {
	Name string         `json:"name"`
	Conf map[string]any `json:"conf"`
}

// Builder constructs an implementation of T from raw settings.
type Builder[T any] func(map[string]any) (T, error)

// Registry stores builders keyed by backend name.
type Registry[T any] struct {
	mu       sync.RWMutex
	builders map[string]Builder[T]
}

// NewRegistry returns an empty backend registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{builders: make(map[string]Builder[T])}
}

// Register adds a builder for the given backend name.
func (r *Registry[T]) Register(name string, b Builder[T]) error {
	if b == nil {
		return fmt.Errorf("builder nil for %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.builders[name]; ok {
		return fmt.Errorf("builder already registered for %s", name)
	}
	r.builders[name] = b
	return nil
}

// Build instantiates the backend named by the configuration.
func (r *Registry[T]) Build(cfg BackendConfig) (T, error) {
	r.mu.RLock()
	b, ok := r.builders[cfg.Name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown backend %s", cfg.Name)
	}
	return b(cfg.Conf)
}

// Decode fills out the provided struct using json tags.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: out})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
