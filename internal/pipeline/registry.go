package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var ErrDuplicateBackend = errors.New("backend already registered")

// Constructs a backend.
type Factory[T any] func() T

// Backend factories keyed by name.
type Registry[T any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
	unknown   error // Returned, wrapped with the name, for unregistered names.
}

// Creates an empty registry reporting unregistered names with unknown.
func NewRegistry[T any](unknown error) *Registry[T] {
	return &Registry[T]{factories: map[string]Factory[T]{}, unknown: unknown}
}

// Installs a factory. Returns an error if the name already exists.
func (r *Registry[T]) Register(name string, factory Factory[T]) error {
	if name == "" || factory == nil {
		return fmt.Errorf("register backend %q: name and factory are required", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBackend, name)
	}
	r.factories[name] = factory
	return nil
}

// Panics if registration fails.
func (r *Registry[T]) MustRegister(name string, factory Factory[T]) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Constructs the backend registered under name.
func (r *Registry[T]) New(name string) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q (available: %v)", r.unknown, name, r.Names())
	}
	return factory(), nil
}

// Returns the registered names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
