// Package registry provides Table, a typed dispatch table from a tag to a
// handler with an explicit fallback slot.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnhandledKey is returned by Lookup for a key without handler when no
// fallback is set.
var ErrUnhandledKey = errors.New("no handler registered for key")

// ErrDuplicateKey is returned by Register when a key already has a handler.
var ErrDuplicateKey = errors.New("handler already registered for key")

// Table maps keys to handlers of type F. It is safe for concurrent use.
type Table[K comparable, F any] struct {
	mu       sync.RWMutex
	name     string
	handlers map[K]F
	order    []K
	fallback *F
}

// New creates an empty table. The name appears in error messages.
func New[K comparable, F any](name string) *Table[K, F] {
	return &Table[K, F]{
		name:     name,
		handlers: make(map[K]F),
	}
}

// Register binds f to every given key.
//
// Returns:
//   - error: ErrDuplicateKey if a key is already bound; no key is bound then
func (t *Table[K, F]) Register(f F, keys ...K) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, k := range keys {
		if _, ok := t.handlers[k]; ok {
			return fmt.Errorf("%s: %w: %v", t.name, ErrDuplicateKey, k)
		}
	}
	for _, k := range keys {
		t.handlers[k] = f
		t.order = append(t.order, k)
	}

	return nil
}

// MustRegister is Register for package initialization; it panics on error.
func (t *Table[K, F]) MustRegister(f F, keys ...K) *Table[K, F] {
	if err := t.Register(f, keys...); err != nil {
		panic(err)
	}

	return t
}

// WithFallback sets the handler returned for unregistered keys.
func (t *Table[K, F]) WithFallback(f F) *Table[K, F] {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fallback = &f

	return t
}

// Lookup returns the handler for k, or the fallback.
//
// Returns:
//   - F: The handler
//   - error: ErrUnhandledKey if k has no handler and no fallback is set
func (t *Table[K, F]) Lookup(k K) (F, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if f, ok := t.handlers[k]; ok {
		return f, nil
	}
	if t.fallback != nil {
		return *t.fallback, nil
	}
	var zero F

	return zero, fmt.Errorf("%s: %w: %v", t.name, ErrUnhandledKey, k)
}

// Keys returns the registered keys in registration order.
func (t *Table[K, F]) Keys() []K {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Clone(t.order)
}
