// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package keyvalue defines the persistent key-value storage interface the
// host environment provides, plus memory and Badger backends.
package keyvalue

import (
	"fmt"
	"strings"
)

// A Key identifies a record. Keys are built from parts joined with slashes,
// e.g. NewKey("acct", "alice") renders as "acct/alice".
type Key struct {
	s string
}

// NewKey constructs a key from parts.
func NewKey(parts ...interface{}) Key {
	return Key{}.Append(parts...)
}

// Append constructs a new key with the given parts appended.
func (k Key) Append(parts ...interface{}) Key {
	b := new(strings.Builder)
	b.WriteString(k.s)
	for _, p := range parts {
		if b.Len() > 0 {
			b.WriteByte('/')
		}
		fmt.Fprint(b, p)
	}
	return Key{b.String()}
}

func (k Key) String() string { return k.s }

// Bytes returns the rendered key.
func (k Key) Bytes() []byte { return []byte(k.s) }

// KeyFromBytes recovers a key from its rendered form.
func KeyFromBytes(b []byte) Key { return Key{string(b)} }

// HasPrefix returns true if the key begins with the given prefix.
func (k Key) HasPrefix(prefix Key) bool {
	return strings.HasPrefix(k.s, prefix.s)
}

// A Store is a persistent key-value store. Get returns errors.NotFound for
// missing keys. Every method is an atomic operation; the host environment
// guarantees no operation observes a partially-applied predecessor.
type Store interface {
	Get(key Key) ([]byte, error)
	Put(key Key, value []byte) error
	Delete(key Key) error

	// ForEach calls fn for every record whose key has the given prefix.
	// Iteration order is unspecified.
	ForEach(prefix Key, fn func(key Key, value []byte) error) error

	Close() error
}
