// File: registry.go
// Title: Service Registry Implementation
// Description: Instances and lazily evaluated singleton factories keyed by
//              token. Factories run at most once per successful resolution.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package registry

import (
	"fmt"
	"sort"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
)

// Factory produces a value on first resolution
type Factory func(r *Registry) (any, error)

// Registry holds eager instances and lazy factories keyed by token key
type Registry struct {
	instances map[string]any
	factories map[string]Factory
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		instances: make(map[string]any),
		factories: make(map[string]Factory),
	}
}

// Set stores value under key, replacing any instance or factory
func (r *Registry) Set(key Key, value any) {
	delete(r.factories, key.Key())
	r.instances[key.Key()] = value
}

// SetFactory stores factory under key without invoking it. An instance
// stored under the same key keeps priority over the factory.
func (r *Registry) SetFactory(key Key, factory Factory) {
	r.factories[key.Key()] = factory
}

// Resolve returns the value for key: the cached instance, otherwise the
// factory result which is then cached. A failing factory is not cached.
func (r *Registry) Resolve(key Key) (any, error) {
	k := key.Key()
	if v, ok := r.instances[k]; ok {
		return v, nil
	}

	factory, ok := r.factories[k]
	if !ok {
		return nil, kiterror.ServiceNotFound(k).WithOperation("registry.Resolve")
	}

	v, err := factory(r)
	if err != nil {
		return nil, kiterror.Wrap(err, fmt.Sprintf("factory for service %q failed", k)).
			WithCode(kiterror.CodeServiceFactory).
			WithOperation("registry.Resolve").
			WithDetail("token", k)
	}

	r.instances[k] = v
	delete(r.factories, k)
	return v, nil
}

// Has reports whether key has an instance or a factory. Factories are not
// evaluated.
func (r *Registry) Has(key Key) bool {
	k := key.Key()
	if _, ok := r.instances[k]; ok {
		return true
	}
	_, ok := r.factories[k]
	return ok
}

// Clear drops every instance and factory
func (r *Registry) Clear() {
	r.instances = make(map[string]any)
	r.factories = make(map[string]Factory)
}

// Keys returns all registered keys, sorted
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.instances)+len(r.factories))
	for k := range r.instances {
		keys = append(keys, k)
	}
	for k := range r.factories {
		if _, dup := r.instances[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Register stores value as the instance for tok
func Register[T any](r *Registry, tok Token[T], value T) {
	r.Set(tok, value)
}

// RegisterFactory stores factory for tok; it runs on the first Get
func RegisterFactory[T any](r *Registry, tok Token[T], factory func(*Registry) (T, error)) {
	r.SetFactory(tok, func(reg *Registry) (any, error) {
		return factory(reg)
	})
}

// Get resolves tok and asserts the value's type
func Get[T any](r *Registry, tok Token[T]) (T, error) {
	var zero T

	v, err := r.Resolve(tok)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, kiterror.Newf("service %q holds %T, want %T", tok.Key(), v, zero).
			WithCode(kiterror.CodeServiceTypeMismatch).
			WithOperation("registry.Get").
			WithDetail("token", tok.Key())
	}
	return typed, nil
}

// MustGet is Get that panics on error. Use it for services the runtime
// itself registers.
func MustGet[T any](r *Registry, tok Token[T]) T {
	v, err := Get(r, tok)
	if err != nil {
		panic(err)
	}
	return v
}

// GetOr resolves tok and falls back to def when the service is missing
func GetOr[T any](r *Registry, tok Token[T], def T) T {
	if r == nil || !r.Has(tok) {
		return def
	}
	v, err := Get(r, tok)
	if err != nil {
		return def
	}
	return v
}
