// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package staking_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/synergy-network/snrg/internal/core"
	"gitlab.com/synergy-network/snrg/internal/events"
	"gitlab.com/synergy-network/snrg/internal/ledger"
	. "gitlab.com/synergy-network/snrg/internal/staking"
	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue"
	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue/memory"
	"gitlab.com/synergy-network/snrg/pkg/errors"
	"gitlab.com/synergy-network/snrg/protocol"
)

const (
	treasury = protocol.AccountID("snrg-treasury")
	pool     = protocol.AccountID("snrg-staking-pool")
	swap     = protocol.AccountID("snrg-swap")
	funder   = protocol.AccountID("snrg-ops")
	alice    = protocol.AccountID("alice")
	bob      = protocol.AccountID("bob")
)

// recordingStore captures the order of writes so tests can assert the
// settle-then-pay ordering.
type recordingStore struct {
	keyvalue.Store
	puts []string
}

func (s *recordingStore) Put(key keyvalue.Key, value []byte) error {
	s.puts = append(s.puts, key.String())
	return s.Store.Put(key, value)
}

type fixture struct {
	kv     *recordingStore
	now    time.Time
	ledger *ledger.Ledger
	engine *Engine
	bus    *events.Bus
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := new(fixture)
	f.kv = &recordingStore{Store: memory.New()}
	f.now = time.Unix(1_700_000_000, 0).UTC()
	f.bus = events.NewBus(nil)

	var err error
	f.ledger, err = ledger.New(f.kv, ledger.Params{
		SupplyCap:    protocol.DefaultTotalSupply,
		Treasury:     treasury,
		StakingPool:  pool,
		SwapEndpoint: swap,
	}, nil, f.bus)
	require.NoError(t, err)
	require.NoError(t, f.ledger.Mint(treasury, protocol.DefaultTotalSupply))

	clock := core.ClockFunc(func() time.Time { return f.now })
	f.engine, err = New(f.kv, clock, f.ledger, Params{
		Treasury:      treasury,
		Pool:          pool,
		ReserveFunder: funder,
		Tiers:         protocol.DefaultRewardTiers,
	}, nil, f.bus)
	require.NoError(t, err)
	return f
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func (f *fixture) fund(t *testing.T, to protocol.AccountID, amount uint64) {
	t.Helper()
	require.NoError(t, f.ledger.Transfer(treasury, swap, amount, false))
	require.NoError(t, f.ledger.Transfer(swap, to, amount, false))
}

func (f *fixture) balance(t *testing.T, a protocol.AccountID) uint64 {
	t.Helper()
	b, err := f.ledger.BalanceOf(a)
	require.NoError(t, err)
	return b
}

func TestBadParams(t *testing.T) {
	kv := memory.New()
	clock := core.SystemClock{}

	params := Params{Treasury: treasury, Pool: pool, ReserveFunder: funder, Tiers: protocol.DefaultRewardTiers}

	p := params
	p.Pool = protocol.ZeroAccount
	_, err := New(kv, clock, nil, p, nil, nil)
	require.ErrorIs(t, err, errors.BadRequest)

	p = params
	p.Tiers = nil
	_, err = New(kv, clock, nil, p, nil, nil)
	require.ErrorIs(t, err, errors.BadRequest)

	p = params
	p.Tiers = []protocol.RewardTier{{Days: 30, BasisPoints: 125}, {Days: 30, BasisPoints: 450}}
	_, err = New(kv, clock, nil, p, nil, nil)
	require.ErrorIs(t, err, errors.BadRequest)
}

func TestStake(t *testing.T) {
	f := setup(t)
	f.fund(t, alice, 2_000_000)

	index, err := f.engine.Stake(alice, 1_000_000, 30)
	require.NoError(t, err)
	require.Zero(t, index)

	pos, err := f.engine.PositionAt(alice, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), pos.Principal)
	require.Equal(t, uint64(12_500), pos.PromisedReward)
	require.Equal(t, uint64(1_700_000_000)+30*protocol.SecondsPerDay, pos.Maturity)
	require.False(t, pos.Settled)

	require.Equal(t, uint64(1_000_000), f.balance(t, alice))
	require.Equal(t, uint64(1_000_000), f.balance(t, pool))

	// Indices are appended per account
	index, err = f.engine.Stake(alice, 500_000, 90)
	require.NoError(t, err)
	require.Equal(t, uint64(1), index)

	count, err := f.engine.CountFor(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(2), count)

	count, err = f.engine.CountFor(bob)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestStakePreconditions(t *testing.T) {
	f := setup(t)
	f.fund(t, alice, 1_000)

	_, err := f.engine.Stake(alice, 0, 30)
	require.ErrorIs(t, err, errors.ZeroAmount)

	_, err = f.engine.Stake(alice, 1_000, 45)
	require.ErrorIs(t, err, errors.UnknownTier)

	_, err = f.engine.Stake(alice, 2_000, 30)
	require.ErrorIs(t, err, errors.InsufficientBalance)
}

func TestFundReserve(t *testing.T) {
	f := setup(t)

	require.ErrorIs(t, f.engine.FundReserve(alice, 1_000), errors.NotAuthorized)
	require.ErrorIs(t, f.engine.FundReserve(funder, 0), errors.ZeroAmount)
	require.ErrorIs(t, f.engine.FundReserve(funder, protocol.DefaultTotalSupply+1), errors.InsufficientBalance)

	// A rejected call does not consume the one-shot latch
	require.NoError(t, f.engine.FundReserve(funder, 5_000_000))
	require.Equal(t, uint64(5_000_000), f.balance(t, pool))

	require.ErrorIs(t, f.engine.FundReserve(funder, 1), errors.AlreadyFunded)
}

func TestWithdraw(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.engine.FundReserve(funder, 10_000_000))
	f.fund(t, alice, 1_000_000)

	_, err := f.engine.Stake(alice, 1_000_000, 30)
	require.NoError(t, err)

	_, _, err = f.engine.Withdraw(alice, 0)
	require.ErrorIs(t, err, errors.NotMatured)

	f.advance(30 * 24 * time.Hour)
	principal, reward, err := f.engine.Withdraw(alice, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), principal)
	require.Equal(t, uint64(12_500), reward)
	require.Equal(t, uint64(1_012_500), f.balance(t, alice))

	// Terminal: a position settles exactly once
	_, _, err = f.engine.Withdraw(alice, 0)
	require.ErrorIs(t, err, errors.AlreadySettled)
	_, _, err = f.engine.WithdrawEarly(alice, 0)
	require.ErrorIs(t, err, errors.AlreadySettled)

	require.NoError(t, f.ledger.CheckConservation())
}

func TestWithdrawEarly(t *testing.T) {
	f := setup(t)
	f.fund(t, alice, 1_000_000)

	_, err := f.engine.Stake(alice, 1_000_000, 90)
	require.NoError(t, err)

	before := f.balance(t, treasury)
	f.advance(10 * 24 * time.Hour)
	returned, fee, err := f.engine.WithdrawEarly(alice, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(985_000), returned)
	require.Equal(t, uint64(15_000), fee)
	require.Equal(t, uint64(985_000), f.balance(t, alice))
	require.Equal(t, before+15_000, f.balance(t, treasury))
	require.Zero(t, f.balance(t, pool))

	_, _, err = f.engine.WithdrawEarly(alice, 0)
	require.ErrorIs(t, err, errors.AlreadySettled)
	require.NoError(t, f.ledger.CheckConservation())
}

func TestWithdrawEarlyAfterMaturity(t *testing.T) {
	f := setup(t)
	f.fund(t, alice, 1_000)

	_, err := f.engine.Stake(alice, 1_000, 30)
	require.NoError(t, err)

	f.advance(30 * 24 * time.Hour)
	_, _, err = f.engine.WithdrawEarly(alice, 0)
	require.ErrorIs(t, err, errors.AlreadyMatured)
}

func TestRewardTruncation(t *testing.T) {
	f := setup(t)
	f.fund(t, alice, 1_000)

	// 799 * 125 / 10000 = 9.9875, truncated to 9
	_, err := f.engine.Stake(alice, 799, 30)
	require.NoError(t, err)
	pos, err := f.engine.PositionAt(alice, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(9), pos.PromisedReward)

	// 66 * 150 / 10000 = 0.99, truncated: no fee at all
	_, err = f.engine.Stake(alice, 66, 30)
	require.NoError(t, err)
	returned, fee, err := f.engine.WithdrawEarly(alice, 1)
	require.NoError(t, err)
	require.Zero(t, fee)
	require.Equal(t, uint64(66), returned)
}

func TestUnknownPosition(t *testing.T) {
	f := setup(t)
	_, err := f.engine.PositionAt(alice, 0)
	require.ErrorIs(t, err, errors.NotFound)
	_, _, err = f.engine.Withdraw(alice, 7)
	require.ErrorIs(t, err, errors.NotFound)
}

func TestStakingIgnoresReserveSolvency(t *testing.T) {
	// The engine accepts stakes whether or not the reserve can cover the
	// promised rewards. The shortfall only surfaces when a payout fails.
	f := setup(t)
	f.fund(t, alice, 1_000_000)

	_, err := f.engine.Stake(alice, 1_000_000, 365)
	require.NoError(t, err)

	f.advance(365 * 24 * time.Hour)
	_, _, err = f.engine.Withdraw(alice, 0)
	require.ErrorIs(t, err, errors.InsufficientBalance)
	require.Zero(t, f.balance(t, alice))

	// A rejected payout does not settle the position
	pos, err := f.engine.PositionAt(alice, 0)
	require.NoError(t, err)
	require.False(t, pos.Settled)

	// Topping up the reserve makes the position withdrawable
	require.NoError(t, f.engine.FundReserve(funder, 10_000_000))
	principal, reward, err := f.engine.Withdraw(alice, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), principal)
	require.Equal(t, uint64(225_000), reward)
	require.Equal(t, uint64(1_225_000), f.balance(t, alice))
	require.NoError(t, f.ledger.CheckConservation())
}

func TestEarlyWithdrawalShortfall(t *testing.T) {
	f := setup(t)
	f.fund(t, alice, 1_000_000)
	f.fund(t, bob, 100_000)

	_, err := f.engine.Stake(alice, 1_000_000, 90)
	require.NoError(t, err)
	_, err = f.engine.Stake(bob, 100_000, 30)
	require.NoError(t, err)

	// Bob's mature payout takes his reward out of the pooled principal,
	// leaving the pool short of Alice's principal
	f.advance(30 * 24 * time.Hour)
	_, _, err = f.engine.Withdraw(bob, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(101_250), f.balance(t, bob))
	require.Less(t, f.balance(t, pool), uint64(1_000_000))

	// Nothing moves, not even the fee, and the position does not settle
	treasuryBefore := f.balance(t, treasury)
	_, _, err = f.engine.WithdrawEarly(alice, 0)
	require.ErrorIs(t, err, errors.InsufficientBalance)
	require.Equal(t, treasuryBefore, f.balance(t, treasury))
	require.Zero(t, f.balance(t, alice))
	pos, err := f.engine.PositionAt(alice, 0)
	require.NoError(t, err)
	require.False(t, pos.Settled)

	// Once the pool covers the principal the early exit completes
	require.NoError(t, f.engine.FundReserve(funder, 10_000))
	returned, fee, err := f.engine.WithdrawEarly(alice, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(985_000), returned)
	require.Equal(t, uint64(15_000), fee)
	require.Equal(t, uint64(985_000), f.balance(t, alice))
	require.NoError(t, f.ledger.CheckConservation())
}

func TestSettleBeforePay(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.engine.FundReserve(funder, 1_000_000))
	f.fund(t, alice, 1_000_000)

	_, err := f.engine.Stake(alice, 1_000_000, 30)
	require.NoError(t, err)
	f.advance(30 * 24 * time.Hour)

	f.kv.puts = nil
	_, _, err = f.engine.Withdraw(alice, 0)
	require.NoError(t, err)

	// The position record must be written (settled) before any balance
	posWrite, balanceWrite := -1, -1
	for i, key := range f.kv.puts {
		if strings.HasPrefix(key, "stake/pos/") && posWrite < 0 {
			posWrite = i
		}
		if strings.HasPrefix(key, "acct/") && balanceWrite < 0 {
			balanceWrite = i
		}
	}
	require.GreaterOrEqual(t, posWrite, 0)
	require.GreaterOrEqual(t, balanceWrite, 0)
	require.Less(t, posWrite, balanceWrite)
}

func TestStakingEvents(t *testing.T) {
	f := setup(t)
	f.fund(t, alice, 2_000_000)

	var got []string
	events.SubscribeSync(f.bus, func(e events.ReserveFunded) { got = append(got, e.EventType()) })
	events.SubscribeSync(f.bus, func(e events.Staked) { got = append(got, e.EventType()) })
	events.SubscribeSync(f.bus, func(e events.Withdrawn) { got = append(got, e.EventType()) })
	events.SubscribeSync(f.bus, func(e events.WithdrawnEarly) { got = append(got, e.EventType()) })

	require.NoError(t, f.engine.FundReserve(funder, 1_000_000))
	_, err := f.engine.Stake(alice, 1_000_000, 30)
	require.NoError(t, err)
	_, err = f.engine.Stake(alice, 500_000, 90)
	require.NoError(t, err)

	f.advance(30 * 24 * time.Hour)
	_, _, err = f.engine.Withdraw(alice, 0)
	require.NoError(t, err)
	_, _, err = f.engine.WithdrawEarly(alice, 1)
	require.NoError(t, err)

	require.Equal(t, []string{
		"reserve-funded",
		"staked",
		"staked",
		"withdrawn",
		"withdrawn-early",
	}, got)
}
