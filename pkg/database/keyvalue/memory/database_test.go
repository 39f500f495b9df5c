// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue"
	"gitlab.com/synergy-network/snrg/pkg/errors"
)

func TestGetPutDelete(t *testing.T) {
	db := New()
	key := keyvalue.NewKey("acct", "alice")

	_, err := db.Get(key)
	require.ErrorIs(t, err, errors.NotFound)

	require.NoError(t, db.Put(key, []byte("100")))
	v, err := db.Get(key)
	require.NoError(t, err)
	require.Equal(t, []byte("100"), v)

	require.NoError(t, db.Delete(key))
	_, err = db.Get(key)
	require.ErrorIs(t, err, errors.NotFound)
}

func TestGetCopies(t *testing.T) {
	db := New()
	key := keyvalue.NewKey("acct", "alice")
	require.NoError(t, db.Put(key, []byte("abc")))

	v, err := db.Get(key)
	require.NoError(t, err)
	v[0] = 'x'

	v, err = db.Get(key)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)
}

func TestForEach(t *testing.T) {
	db := New()
	require.NoError(t, db.Put(keyvalue.NewKey("acct", "alice"), []byte("1")))
	require.NoError(t, db.Put(keyvalue.NewKey("acct", "bob"), []byte("2")))
	require.NoError(t, db.Put(keyvalue.NewKey("rescue", "alice"), []byte("3")))

	seen := map[string]string{}
	err := db.ForEach(keyvalue.NewKey("acct"), func(key keyvalue.Key, value []byte) error {
		seen[key.String()] = string(value)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"acct/alice": "1", "acct/bob": "2"}, seen)
}
