// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package protocol defines the data model and constants of the SNRG core:
// account identifiers, rescue plans, staking positions, and the reward-rate
// table. The packages under internal implement the engines that operate on
// these types.
package protocol

import "math/big"

const (
	// SecondsPerDay is the number of seconds in a day.
	SecondsPerDay uint64 = 24 * 60 * 60

	// MinimumRescueDelay is the smallest delay, in seconds, a rescue plan may
	// be registered with. It bounds the window an attacker has to drain a
	// compromised account before the owner's rescue matures.
	MinimumRescueDelay uint64 = SecondsPerDay

	// BasisPointsDivisor converts basis points to a fraction. 100 basis
	// points is 1%.
	BasisPointsDivisor uint64 = 10000

	// EarlyWithdrawFeeBasisPoints is the fee charged on the principal of a
	// staking position withdrawn before maturity (1.5%). The promised reward
	// is forfeited entirely.
	EarlyWithdrawFeeBasisPoints uint64 = 150
)

// DefaultTotalSupply is the genesis supply in base units: 10 billion SNRG
// with 6 decimal places.
const DefaultTotalSupply uint64 = 10_000_000_000 * 1_000_000

// BasisPoints computes amount * bps / 10000 with integer division truncating
// toward zero. The intermediate product is computed with arbitrary precision
// so large principals cannot overflow.
func BasisPoints(amount, bps uint64) uint64 {
	v := new(big.Int).SetUint64(amount)
	v.Mul(v, new(big.Int).SetUint64(bps))
	v.Quo(v, new(big.Int).SetUint64(BasisPointsDivisor))
	return v.Uint64()
}
