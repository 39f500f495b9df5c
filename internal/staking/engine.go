// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package staking implements the reward-bearing lock-up engine. Positions are
// an append-only, index-addressed list per account: created by a stake,
// terminally settled exactly once by a mature or early withdrawal, never
// removed or reused. The reward promised at creation never changes.
package staking

import (
	"sync"

	"gitlab.com/synergy-network/snrg/internal/core"
	"gitlab.com/synergy-network/snrg/internal/events"
	"gitlab.com/synergy-network/snrg/internal/logging"
	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue"
	"gitlab.com/synergy-network/snrg/pkg/errors"
	"gitlab.com/synergy-network/snrg/protocol"
)

// Ledger is the balance store as seen by the engine.
type Ledger interface {
	BalanceOf(protocol.AccountID) (uint64, error)
	Transfer(from, to protocol.AccountID, amount uint64, rescueExecutor bool) error
}

// Params fixes the engine's accounts and reward-rate table at construction.
// The table is read-only thereafter.
type Params struct {
	// Treasury funds the reserve and receives early-withdrawal fees.
	Treasury protocol.AccountID
	// Pool is the allowlisted staking endpoint that holds locked principal
	// and the reward reserve.
	Pool protocol.AccountID
	// ReserveFunder is the only principal permitted to fund the reserve.
	ReserveFunder protocol.AccountID
	// Tiers is the reward-rate table.
	Tiers []protocol.RewardTier
}

// Engine is the staking engine.
type Engine struct {
	mu     sync.Mutex
	state  *core.State
	clock  core.Clock
	ledger Ledger
	params Params
	bus    *events.Bus
	logger logging.OptionalLogger
}

var keyFunded = keyvalue.NewKey("stake", "funded")

func countKey(a protocol.AccountID) keyvalue.Key {
	return keyvalue.NewKey("stake", "pos", string(a), "count")
}

func positionKey(a protocol.AccountID, index uint64) keyvalue.Key {
	return keyvalue.NewKey("stake", "pos", string(a), index)
}

func New(kv keyvalue.Store, clock core.Clock, ledger Ledger, params Params, logger logging.Logger, bus *events.Bus) (*Engine, error) {
	if params.Treasury.IsZero() || params.Pool.IsZero() || params.ReserveFunder.IsZero() {
		return nil, errors.BadRequest.With("engine account is void")
	}
	if len(params.Tiers) == 0 {
		return nil, errors.BadRequest.With("reward-rate table is empty")
	}
	seen := map[uint64]bool{}
	for _, t := range params.Tiers {
		if t.Days == 0 {
			return nil, errors.BadRequest.With("reward tier duration is zero")
		}
		if seen[t.Days] {
			return nil, errors.BadRequest.WithFormat("duplicate reward tier for %d days", t.Days)
		}
		seen[t.Days] = true
	}

	e := new(Engine)
	e.state = core.NewState(kv)
	e.clock = clock
	e.ledger = ledger
	e.params = params
	e.bus = bus
	e.logger.Set(logger, "module", "staking")
	return e, nil
}

// RewardTiers returns a copy of the reward-rate table.
func (e *Engine) RewardTiers() []protocol.RewardTier {
	tiers := make([]protocol.RewardTier, len(e.params.Tiers))
	copy(tiers, e.params.Tiers)
	return tiers
}

func (e *Engine) rateFor(days uint64) (uint64, bool) {
	for _, t := range e.params.Tiers {
		if t.Days == days {
			return t.BasisPoints, true
		}
	}
	return 0, false
}

// Events are published after the engine's lock is released so a synchronous
// subscriber can call back into the engine.
func (e *Engine) publish(ev events.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

// FundReserve pulls amount from the treasury into the pool to back promised
// rewards. The reserve may be funded at most once. The engine does not verify
// the amount covers future reward obligations; that is the funder's problem.
func (e *Engine) FundReserve(caller protocol.AccountID, amount uint64) error {
	err := e.fundReserve(caller, amount)
	if err != nil {
		return err
	}
	e.publish(events.ReserveFunded{Funder: caller, Amount: amount})
	return nil
}

func (e *Engine) fundReserve(caller protocol.AccountID, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.params.ReserveFunder {
		return errors.NotAuthorized.WithFormat("%v is not the reserve funder", caller)
	}

	funded, err := e.state.GetUint64(keyFunded)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if funded != 0 {
		return errors.AlreadyFunded.With("reserve has already been funded")
	}

	// Validate before setting the latch so a rejected transfer cannot burn it
	if amount == 0 {
		return errors.ZeroAmount.With("cannot fund zero")
	}
	balance, err := e.ledger.BalanceOf(e.params.Treasury)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if amount > balance {
		return errors.InsufficientBalance.WithFormat("treasury balance is %d, want %d", balance, amount)
	}

	// Set the latch before moving any balance
	err = e.state.PutUint64(keyFunded, 1)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	err = e.ledger.Transfer(e.params.Treasury, e.params.Pool, amount, false)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	e.logger.Info("Reserve funded", "funder", caller, "amount", amount)
	return nil
}

// Stake locks principal for the given tier and returns the new position's
// index. The promised reward is computed once, here, and never changes.
func (e *Engine) Stake(caller protocol.AccountID, principal, tierDays uint64) (uint64, error) {
	index, pos, err := e.stake(caller, principal, tierDays)
	if err != nil {
		return 0, err
	}
	e.publish(events.Staked{Account: caller, Index: index, Principal: pos.Principal, PromisedReward: pos.PromisedReward, Maturity: pos.Maturity})
	return index, nil
}

func (e *Engine) stake(caller protocol.AccountID, principal, tierDays uint64) (uint64, *protocol.StakingPosition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller.IsZero() {
		return 0, nil, errors.BadRequest.With("caller is the void account")
	}
	if principal == 0 {
		return 0, nil, errors.ZeroAmount.With("cannot stake zero")
	}
	rate, ok := e.rateFor(tierDays)
	if !ok {
		return 0, nil, errors.UnknownTier.WithFormat("no reward tier for %d days", tierDays)
	}

	pos := new(protocol.StakingPosition)
	pos.Principal = principal
	pos.PromisedReward = protocol.BasisPoints(principal, rate)
	pos.Maturity = core.Unix(e.clock) + tierDays*protocol.SecondsPerDay

	err := e.ledger.Transfer(caller, e.params.Pool, principal, false)
	if err != nil {
		return 0, nil, errors.UnknownError.Wrap(err)
	}

	index, err := e.state.GetUint64(countKey(caller))
	if err != nil {
		return 0, nil, errors.UnknownError.Wrap(err)
	}
	err = e.state.PutJSON(positionKey(caller, index), pos)
	if err != nil {
		return 0, nil, errors.UnknownError.Wrap(err)
	}
	err = e.state.PutUint64(countKey(caller), index+1)
	if err != nil {
		return 0, nil, errors.UnknownError.Wrap(err)
	}

	e.logger.Info("Staked", "account", caller, "index", index, "principal", principal, "reward", pos.PromisedReward, "maturity", pos.Maturity)
	return index, pos, nil
}

// Withdraw settles a mature position and pays principal plus the promised
// reward.
func (e *Engine) Withdraw(caller protocol.AccountID, index uint64) (principal, reward uint64, err error) {
	principal, reward, err = e.withdraw(caller, index)
	if err != nil {
		return 0, 0, err
	}
	e.publish(events.Withdrawn{Account: caller, Index: index, Principal: principal, Reward: reward})
	return principal, reward, nil
}

func (e *Engine) withdraw(caller protocol.AccountID, index uint64) (uint64, uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos, err := e.position(caller, index)
	if err != nil {
		return 0, 0, err
	}
	if pos.Settled {
		return 0, 0, errors.AlreadySettled.WithFormat("position %d of %v is settled", index, caller)
	}
	if core.Unix(e.clock) < pos.Maturity {
		return 0, 0, errors.NotMatured.WithFormat("position %d of %v matures at %d", index, caller, pos.Maturity)
	}

	payout := pos.Principal + pos.PromisedReward
	if payout < pos.Principal {
		panic("invariant violation: payout overflow")
	}

	// Settling is terminal, so verify the pool covers the payout first. The
	// reserve is never checked at stake time and may fall short; the position
	// must remain withdrawable once the pool is topped up.
	balance, err := e.ledger.BalanceOf(e.params.Pool)
	if err != nil {
		return 0, 0, errors.UnknownError.Wrap(err)
	}
	if payout > balance {
		return 0, 0, errors.InsufficientBalance.WithFormat("pool balance is %d, want %d", balance, payout)
	}

	// Settle before paying out
	pos.Settled = true
	err = e.state.PutJSON(positionKey(caller, index), pos)
	if err != nil {
		return 0, 0, errors.UnknownError.Wrap(err)
	}

	err = e.ledger.Transfer(e.params.Pool, caller, payout, false)
	if err != nil {
		return 0, 0, errors.UnknownError.Wrap(err)
	}

	e.logger.Info("Withdrawn", "account", caller, "index", index, "principal", pos.Principal, "reward", pos.PromisedReward)
	return pos.Principal, pos.PromisedReward, nil
}

// WithdrawEarly settles a position before maturity. The promised reward is
// forfeited and a fee on the principal goes to the treasury.
func (e *Engine) WithdrawEarly(caller protocol.AccountID, index uint64) (returned, fee uint64, err error) {
	returned, fee, err = e.withdrawEarly(caller, index)
	if err != nil {
		return 0, 0, err
	}
	e.publish(events.WithdrawnEarly{Account: caller, Index: index, Returned: returned, Fee: fee})
	return returned, fee, nil
}

func (e *Engine) withdrawEarly(caller protocol.AccountID, index uint64) (uint64, uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos, err := e.position(caller, index)
	if err != nil {
		return 0, 0, err
	}
	if pos.Settled {
		return 0, 0, errors.AlreadySettled.WithFormat("position %d of %v is settled", index, caller)
	}
	if core.Unix(e.clock) >= pos.Maturity {
		return 0, 0, errors.AlreadyMatured.WithFormat("position %d of %v matured at %d", index, caller, pos.Maturity)
	}

	// Fee plus returned equals the principal. Verify the pool covers it before
	// settling, so the fee cannot land while the return fails and the position
	// stays withdrawable until both transfers can succeed.
	balance, err := e.ledger.BalanceOf(e.params.Pool)
	if err != nil {
		return 0, 0, errors.UnknownError.Wrap(err)
	}
	if pos.Principal > balance {
		return 0, 0, errors.InsufficientBalance.WithFormat("pool balance is %d, want %d", balance, pos.Principal)
	}

	// Settle before paying out
	pos.Settled = true
	err = e.state.PutJSON(positionKey(caller, index), pos)
	if err != nil {
		return 0, 0, errors.UnknownError.Wrap(err)
	}

	fee := protocol.BasisPoints(pos.Principal, protocol.EarlyWithdrawFeeBasisPoints)
	returned := pos.Principal - fee
	if fee > 0 {
		err = e.ledger.Transfer(e.params.Pool, e.params.Treasury, fee, false)
		if err != nil {
			return 0, 0, errors.UnknownError.Wrap(err)
		}
	}
	err = e.ledger.Transfer(e.params.Pool, caller, returned, false)
	if err != nil {
		return 0, 0, errors.UnknownError.Wrap(err)
	}

	e.logger.Info("Withdrawn early", "account", caller, "index", index, "returned", returned, "fee", fee)
	return returned, fee, nil
}

// CountFor returns the number of positions the account has ever created,
// settled or not.
func (e *Engine) CountFor(account protocol.AccountID) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.GetUint64(countKey(account))
}

// PositionAt returns the account's position at the given index.
func (e *Engine) PositionAt(account protocol.AccountID, index uint64) (*protocol.StakingPosition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position(account, index)
}

func (e *Engine) position(account protocol.AccountID, index uint64) (*protocol.StakingPosition, error) {
	pos := new(protocol.StakingPosition)
	found, err := e.state.GetJSON(positionKey(account, index), pos)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if !found {
		return nil, errors.NotFound.WithFormat("%v has no position %d", account, index)
	}
	return pos, nil
}
