// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"sync"

	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue"
	"gitlab.com/synergy-network/snrg/pkg/errors"
)

// Database is an in-memory key-value store, used for tests and ephemeral
// nodes.
type Database struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ keyvalue.Store = (*Database)(nil)

func New() *Database {
	return &Database{entries: map[string][]byte{}}
}

func (d *Database) Get(key keyvalue.Key) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.entries[key.String()]
	if !ok {
		return nil, errors.NotFound.WithFormat("%v not found", key)
	}

	// Copy so callers cannot mutate the stored value
	u := make([]byte, len(v))
	copy(u, v)
	return u, nil
}

func (d *Database) Put(key keyvalue.Key, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[key.String()] = v
	return nil
}

func (d *Database) Delete(key keyvalue.Key) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, key.String())
	return nil
}

func (d *Database) ForEach(prefix keyvalue.Key, fn func(key keyvalue.Key, value []byte) error) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for k, v := range d.entries {
		key := keyvalue.KeyFromBytes([]byte(k))
		if !key.HasPrefix(prefix) {
			continue
		}
		err := fn(key, v)
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) Close() error { return nil }
