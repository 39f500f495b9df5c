// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

// StakingPosition is one lock-up of principal. Positions form an append-only,
// index-addressed list per account. A position is terminally mutated exactly
// once, by a mature or early withdrawal, which sets Settled.
type StakingPosition struct {
	// Principal is the amount locked, in base units.
	Principal uint64 `json:"principal"`
	// PromisedReward is computed once at creation from the reward-rate table
	// and never changes, regardless of later table edits.
	PromisedReward uint64 `json:"promisedReward"`
	// Maturity is the Unix time the position unlocks.
	Maturity uint64 `json:"maturity"`
	// Settled is true once the position has been withdrawn.
	Settled bool `json:"settled"`
}

// RewardTier is one entry of the reward-rate table: lock for Days days, earn
// BasisPoints of the principal as reward.
type RewardTier struct {
	Days        uint64 `json:"days" toml:"days"`
	BasisPoints uint64 `json:"basisPoints" toml:"basis-points"`
}

// DefaultRewardTiers is the testnet reward-rate table.
var DefaultRewardTiers = []RewardTier{
	{Days: 30, BasisPoints: 125},
	{Days: 90, BasisPoints: 450},
	{Days: 180, BasisPoints: 1000},
	{Days: 365, BasisPoints: 2250},
}
