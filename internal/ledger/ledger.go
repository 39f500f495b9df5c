// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package ledger implements the SNRG balance ledger and its transfer gate.
// The ledger is minted once at genesis to the treasury and conserved
// thereafter: the sum of balances always equals the total supply, and the
// supply only decreases, via burns to the zero account.
package ledger

import (
	"encoding/binary"
	"sync"

	"gitlab.com/synergy-network/snrg/internal/core"
	"gitlab.com/synergy-network/snrg/internal/events"
	"gitlab.com/synergy-network/snrg/internal/logging"
	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue"
	"gitlab.com/synergy-network/snrg/pkg/errors"
	"gitlab.com/synergy-network/snrg/protocol"
)

// Params fixes the ledger's supply cap and endpoint allowlist at creation.
// The allowlist is immutable thereafter.
type Params struct {
	SupplyCap    uint64
	Treasury     protocol.AccountID
	StakingPool  protocol.AccountID
	SwapEndpoint protocol.AccountID
}

// Ledger is the balance store plus the transfer gate.
type Ledger struct {
	mu     sync.RWMutex
	state  *core.State
	params Params
	policy RescuePolicy
	bus    *events.Bus
	logger logging.OptionalLogger
}

var (
	keyTotalSupply = keyvalue.NewKey("supply", "total")
	keyMinted      = keyvalue.NewKey("supply", "minted")
)

func accountKey(a protocol.AccountID) keyvalue.Key {
	return keyvalue.NewKey("acct", string(a))
}

func New(kv keyvalue.Store, params Params, logger logging.Logger, bus *events.Bus) (*Ledger, error) {
	if params.Treasury.IsZero() {
		return nil, errors.BadRequest.With("treasury account is void")
	}
	if params.StakingPool.IsZero() || params.SwapEndpoint.IsZero() {
		return nil, errors.BadRequest.With("allowlist endpoint is void")
	}
	if params.StakingPool == params.SwapEndpoint {
		return nil, errors.BadRequest.With("allowlist endpoints are not distinct")
	}

	l := new(Ledger)
	l.state = core.NewState(kv)
	l.params = params
	l.bus = bus
	l.logger.Set(logger, "module", "ledger")
	return l, nil
}

// SetRescuePolicy injects the policy the gate consults for the
// rescue-executor path. The policy is injected after construction because the
// rescue registry in turn needs the ledger to move balances.
func (l *Ledger) SetRescuePolicy(p RescuePolicy) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.policy = p
}

// Params returns the ledger's fixed parameters.
func (l *Ledger) Params() Params { return l.params }

// Minted returns true once genesis has executed.
func (l *Ledger) Minted() (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, err := l.state.GetUint64(keyMinted)
	return v != 0, err
}

// Mint executes the genesis mint. It fails with AlreadyMinted on any call
// after the first and with SupplyLimit if the mint would exceed the cap.
func (l *Ledger) Mint(to protocol.AccountID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	minted, err := l.state.GetUint64(keyMinted)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if minted != 0 {
		return errors.AlreadyMinted.With("genesis mint has already executed")
	}
	if to.IsZero() {
		return errors.BadRequest.With("cannot mint to the void account")
	}
	if amount == 0 {
		return errors.ZeroAmount.With("cannot mint zero")
	}

	total, err := l.state.GetUint64(keyTotalSupply)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if amount > l.params.SupplyCap-total {
		return errors.SupplyLimit.WithFormat("mint of %d exceeds the supply cap %d", amount, l.params.SupplyCap)
	}

	err = l.state.PutUint64(keyMinted, 1)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = l.state.PutUint64(keyTotalSupply, total+amount)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = l.credit(to, amount)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	l.logger.Info("Genesis mint", "account", to, "amount", amount)
	return nil
}

// BalanceOf returns the account's balance. Accounts with no record have a
// zero balance.
func (l *Ledger) BalanceOf(a protocol.AccountID) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.GetUint64(accountKey(a))
}

// TotalSupply returns the current total supply.
func (l *Ledger) TotalSupply() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.GetUint64(keyTotalSupply)
}

// Transfer moves amount from one account to another if the gate permits it.
// A transfer to the zero account is a burn and reduces the total supply.
// Transfers from the zero account are rejected - the only mint is genesis.
func (l *Ledger) Transfer(from, to protocol.AccountID, amount uint64, rescueExecutor bool) error {
	denied, err := l.transfer(from, to, amount, rescueExecutor)
	if denied {
		// Published after the ledger's lock is released so a synchronous
		// subscriber can call back into the ledger
		mTransfersDenied.Inc()
		if l.bus != nil {
			l.bus.Publish(events.TransferDenied{From: from, To: to})
		}
	}
	return err
}

func (l *Ledger) transfer(from, to protocol.AccountID, amount uint64, rescueExecutor bool) (denied bool, _ error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount == 0 {
		return false, errors.ZeroAmount.With("cannot transfer zero")
	}
	if from.IsZero() {
		return false, errors.NotAllowed.With("minting is restricted to genesis")
	}
	if from == to {
		return false, errors.BadRequest.With("sender and recipient are the same account")
	}

	if !l.canTransfer(from, to, rescueExecutor) {
		return true, errors.NotAllowed.WithFormat("transfer from %v to %v is not permitted", from, to)
	}

	err := l.debit(from, amount)
	if err != nil {
		return false, err
	}

	if to.IsZero() {
		// Burn
		total, err := l.state.GetUint64(keyTotalSupply)
		if err != nil {
			return false, errors.UnknownError.Wrap(err)
		}
		if amount > total {
			// The sum of balances can never exceed the supply
			panic("invariant violation: burn exceeds total supply")
		}
		err = l.state.PutUint64(keyTotalSupply, total-amount)
		if err != nil {
			return false, errors.UnknownError.Wrap(err)
		}
	} else {
		err = l.credit(to, amount)
		if err != nil {
			return false, errors.UnknownError.Wrap(err)
		}
	}

	mTransfersPermitted.Inc()
	l.logger.Debug("Transfer", "from", from, "to", to, "amount", amount, "rescue", rescueExecutor)
	return false, nil
}

func (l *Ledger) debit(a protocol.AccountID, amount uint64) error {
	key := accountKey(a)
	balance, err := l.state.GetUint64(key)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if amount > balance {
		return errors.InsufficientBalance.WithFormat("balance of %v is %d, want %d", a, balance, amount)
	}
	return l.state.PutUint64(key, balance-amount)
}

func (l *Ledger) credit(a protocol.AccountID, amount uint64) error {
	key := accountKey(a)
	balance, err := l.state.GetUint64(key)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if balance+amount < balance {
		// Unreachable while the supply is conserved
		panic("invariant violation: balance overflow")
	}
	return l.state.PutUint64(key, balance+amount)
}

// CheckConservation verifies sum(balances) == totalSupply. It exists for
// tests and operator tooling; a correct ledger never violates it.
func (l *Ledger) CheckConservation() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total, err := l.state.GetUint64(keyTotalSupply)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	var sum uint64
	err = l.state.ForEach(keyvalue.NewKey("acct"), func(key keyvalue.Key, value []byte) error {
		if len(value) != 8 {
			return errors.EncodingError.WithFormat("%v: want 8 bytes, got %d", key, len(value))
		}
		sum += binary.BigEndian.Uint64(value)
		return nil
	})
	if err != nil {
		return err
	}

	if sum != total {
		return errors.InternalError.WithFormat("conservation violated: sum of balances is %d, total supply is %d", sum, total)
	}
	return nil
}
