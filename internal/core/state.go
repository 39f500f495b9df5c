// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package core

import (
	"encoding/binary"
	"encoding/json"

	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue"
	"gitlab.com/synergy-network/snrg/pkg/errors"
)

// State provides typed access to records in the host's key-value store.
type State struct {
	kv keyvalue.Store
}

func NewState(kv keyvalue.Store) *State {
	return &State{kv: kv}
}

// Store returns the underlying key-value store.
func (s *State) Store() keyvalue.Store { return s.kv }

// GetUint64 loads an unsigned counter. Missing records read as zero.
func (s *State) GetUint64(key keyvalue.Key) (uint64, error) {
	b, err := s.kv.Get(key)
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, errors.NotFound):
		return 0, nil
	default:
		return 0, errors.UnknownError.Wrap(err)
	}

	if len(b) != 8 {
		return 0, errors.EncodingError.WithFormat("%v: want 8 bytes, got %d", key, len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

func (s *State) PutUint64(key keyvalue.Key, v uint64) error {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return errors.UnknownError.Wrap(s.kv.Put(key, b))
}

// GetJSON loads a JSON-encoded record into v. GetJSON returns false if the
// record does not exist.
func (s *State) GetJSON(key keyvalue.Key, v interface{}) (bool, error) {
	b, err := s.kv.Get(key)
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, errors.NotFound):
		return false, nil
	default:
		return false, errors.UnknownError.Wrap(err)
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		return false, errors.EncodingError.WithFormat("decode %v: %w", key, err)
	}
	return true, nil
}

func (s *State) PutJSON(key keyvalue.Key, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.EncodingError.WithFormat("encode %v: %w", key, err)
	}
	return errors.UnknownError.Wrap(s.kv.Put(key, b))
}

// ForEach iterates over records with the given prefix.
func (s *State) ForEach(prefix keyvalue.Key, fn func(key keyvalue.Key, value []byte) error) error {
	return s.kv.ForEach(prefix, fn)
}
