// File: token.go
// Title: Typed Registry Tokens
// Description: Opaque keys that associate a registry entry with a Go type.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package registry

// Key is the type-erased view of a token
type Key interface {
	Key() string
}

// Token addresses a registry value of type T. Tokens compare by key only.
type Token[T any] struct {
	key string
}

// NewToken creates a token for key
func NewToken[T any](key string) Token[T] {
	return Token[T]{key: key}
}

// Key returns the token's key
func (t Token[T]) Key() string {
	return t.key
}

// String implements fmt.Stringer
func (t Token[T]) String() string {
	return "token(" + t.key + ")"
}

// StringKey is a Key built from a plain string, used where the value type is
// only known at runtime (plugin service descriptors).
type StringKey string

// Key implements Key
func (k StringKey) Key() string {
	return string(k)
}
