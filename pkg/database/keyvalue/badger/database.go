// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger"
	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue"
	"gitlab.com/synergy-network/snrg/pkg/errors"
	"golang.org/x/exp/slog"
)

// Database is a Badger-backed key-value store.
type Database struct {
	badger *badger.DB
	ready  bool
	mu     sync.RWMutex
}

var _ keyvalue.Store = (*Database)(nil)

func New(filepath string) (*Database, error) {
	// Make sure all directories exist
	err := os.MkdirAll(filepath, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: create %q: %w", filepath, err)
	}

	opts := badger.DefaultOptions(filepath)
	opts = opts.WithLogger(slogger{})

	d := new(Database)
	d.badger, err = badger.Open(opts)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: %w", err)
	}
	d.ready = true
	mDbOpen.Inc()

	// Run GC every hour
	go d.gc()

	return d, nil
}

// lock acquires the ready lock and verifies the database is open. The
// returned function releases the lock.
func (d *Database) lock(exclusive bool) (func(), error) {
	if exclusive {
		d.mu.Lock()
	} else {
		d.mu.RLock()
	}

	if !d.ready {
		if exclusive {
			d.mu.Unlock()
		} else {
			d.mu.RUnlock()
		}
		return nil, errors.InternalError.With("database not open")
	}

	if exclusive {
		return d.mu.Unlock, nil
	}
	return d.mu.RUnlock, nil
}

func (d *Database) Get(key keyvalue.Key) ([]byte, error) {
	unlock, err := d.lock(false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var value []byte
	err = d.badger.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key.Bytes())
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, errors.NotFound.WithFormat("%v not found", key)
	default:
		return nil, errors.UnknownError.WithFormat("get %v: %w", key, err)
	}
}

func (d *Database) Put(key keyvalue.Key, value []byte) error {
	unlock, err := d.lock(false)
	if err != nil {
		return err
	}
	defer unlock()

	start := time.Now()
	err = d.badger.Update(func(txn *badger.Txn) error {
		return txn.Set(key.Bytes(), value)
	})
	mCommitDuration.Set(time.Since(start).Seconds())
	if err != nil {
		return errors.UnknownError.WithFormat("put %v: %w", key, err)
	}
	return nil
}

func (d *Database) Delete(key keyvalue.Key) error {
	unlock, err := d.lock(false)
	if err != nil {
		return err
	}
	defer unlock()

	err = d.badger.Update(func(txn *badger.Txn) error {
		return txn.Delete(key.Bytes())
	})
	if err != nil {
		return errors.UnknownError.WithFormat("delete %v: %w", key, err)
	}
	return nil
}

func (d *Database) ForEach(prefix keyvalue.Key, fn func(key keyvalue.Key, value []byte) error) error {
	unlock, err := d.lock(false)
	if err != nil {
		return err
	}
	defer unlock()

	return d.badger.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix.Bytes()
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return errors.UnknownError.WithFormat("iterate %v: %w", prefix, err)
			}
			err = fn(keyvalue.KeyFromBytes(item.KeyCopy(nil)), value)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Database) Close() error {
	unlock, err := d.lock(true)
	if err != nil {
		return err
	}
	defer unlock()

	d.ready = false
	mDbOpen.Dec()
	return d.badger.Close()
}

func (d *Database) gc() {
	for {
		// GC every hour
		time.Sleep(time.Hour)

		// Still open?
		unlock, err := d.lock(false)
		if err != nil {
			return
		}

		// Run GC if 50% space could be reclaimed
		start := time.Now()
		err = d.badger.RunValueLogGC(0.5)
		if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			slog.Error("Badger GC failed", "error", err, "module", "badger")
		}
		mGcRun.Inc()
		mGcDuration.Set(time.Since(start).Seconds())

		unlock()
	}
}
