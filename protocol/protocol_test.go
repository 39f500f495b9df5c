// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	. "gitlab.com/synergy-network/snrg/protocol"
)

func TestBasisPoints(t *testing.T) {
	t.Run("Truncates", func(t *testing.T) {
		// 999 * 125 / 10000 = 12.4875, truncated toward zero
		require.Equal(t, uint64(12), BasisPoints(999, 125))
	})

	t.Run("Reference", func(t *testing.T) {
		require.Equal(t, uint64(12500), BasisPoints(1_000_000, 125))
		require.Equal(t, uint64(15000), BasisPoints(1_000_000, EarlyWithdrawFeeBasisPoints))
	})

	t.Run("NoOverflow", func(t *testing.T) {
		// The naive uint64 product would overflow here
		require.Equal(t, uint64(math.MaxUint64)/4, BasisPoints(math.MaxUint64, 2500))
	})

	t.Run("Zero", func(t *testing.T) {
		require.Zero(t, BasisPoints(0, 2250))
		require.Zero(t, BasisPoints(1_000_000, 0))
	})
}

func TestRescuePlanMaturity(t *testing.T) {
	p := new(RescuePlan)
	p.Recovery = "recovery"
	p.Delay = MinimumRescueDelay
	require.False(t, p.Active())
	require.False(t, p.Matured(1e9))

	eta := uint64(1e9)
	p.ETA = &eta
	require.True(t, p.Active())
	require.False(t, p.Matured(eta-1))
	require.True(t, p.Matured(eta))
	require.True(t, p.Matured(eta+1))
}

func TestZeroAccount(t *testing.T) {
	require.True(t, ZeroAccount.IsZero())
	require.False(t, AccountID("treasury").IsZero())
}
