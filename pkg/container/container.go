// Package container provides a small dependency-injection container of
// lazily constructed singletons looked up by string key.
package container

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNotBound is returned when resolving a key that has no binding.
var ErrNotBound = errors.New("no binding for key")

// Factory builds the value bound to a key.
type Factory func() (any, error)

type binding struct {
	factory Factory
	once    sync.Once
	value   any
	err     error
}

// Container holds keyed singleton bindings.
type Container struct {
	mu       sync.RWMutex
	bindings map[string]*binding
}

// New creates an empty container.
func New() *Container {
	return &Container{bindings: make(map[string]*binding)}
}

// Bind registers factory under key. The factory runs at most once, on the
// first Resolve. Binding an existing key replaces it and drops any value
// already built.
func (c *Container) Bind(key string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[key] = &binding{factory: factory}
}

// Instance binds an already built value under key.
func (c *Container) Instance(key string, value any) {
	c.Bind(key, func() (any, error) { return value, nil })
}

// Resolve returns the singleton bound to key, building it on first use.
// A factory error is returned on every subsequent call too.
func (c *Container) Resolve(key string) (any, error) {
	c.mu.RLock()
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotBound, key)
	}

	b.once.Do(func() {
		b.value, b.err = b.factory()
	})
	if b.err != nil {
		return nil, fmt.Errorf("resolve %s: %w", key, b.err)
	}
	return b.value, nil
}

// MustResolve is like Resolve but panics on error.
func (c *Container) MustResolve(key string) any {
	value, err := c.Resolve(key)
	if err != nil {
		panic(err)
	}
	return value
}

// Has reports whether key is bound.
func (c *Container) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[key]
	return ok
}

// Keys returns all bound keys in sorted order.
func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.bindings))
	for key := range c.bindings {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Default is the process-wide container.
//
//nolint:gochecknoglobals // Process-wide container is intentional.
var Default = New()
