// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/synergy-network/snrg/protocol"
)

func TestStoreLoad(t *testing.T) {
	dir := t.TempDir()

	c := Default()
	c.Storage.Type = MemoryStorage
	c.API.ListenAddress = "http://127.0.0.1:12345"
	c.Genesis.TotalSupply = 1_000_000
	c.Genesis.RewardTiers = []protocol.RewardTier{{Days: 7, BasisPoints: 10}}
	require.NoError(t, Store(dir, c))

	got, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, dir, got.RootDir)
	require.Equal(t, MemoryStorage, got.Storage.Type)
	require.Equal(t, "http://127.0.0.1:12345", got.API.ListenAddress)
	require.Equal(t, uint64(1_000_000), got.Genesis.TotalSupply)
	require.Equal(t, c.Genesis.RewardTiers, got.Genesis.RewardTiers)
	require.Equal(t, protocol.AccountID("snrg-treasury"), got.Genesis.Treasury)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}
