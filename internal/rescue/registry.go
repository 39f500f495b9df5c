// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package rescue implements the timelocked self-custodial recovery registry.
// Each account owns at most one rescue plan. Execution is permissionless: any
// principal may complete a matured rescue, so recovery never depends on a
// single operator's availability. The one-day minimum delay bounds an
// attacker's window while the owner retains a cancellation escape hatch.
package rescue

import (
	"sync"

	"gitlab.com/synergy-network/snrg/internal/core"
	"gitlab.com/synergy-network/snrg/internal/events"
	"gitlab.com/synergy-network/snrg/internal/logging"
	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue"
	"gitlab.com/synergy-network/snrg/pkg/errors"
	"gitlab.com/synergy-network/snrg/protocol"
)

// Ledger is the balance store as seen by the registry.
type Ledger interface {
	BalanceOf(protocol.AccountID) (uint64, error)
	Transfer(from, to protocol.AccountID, amount uint64, rescueExecutor bool) error
}

// Registry owns one rescue plan per account.
type Registry struct {
	mu     sync.Mutex
	state  *core.State
	clock  core.Clock
	ledger Ledger
	bus    *events.Bus
	logger logging.OptionalLogger

	// executing marks the victim of an in-flight execution. The eta is
	// cleared before the balance moves, so the maturation predicate alone
	// would deny the execution's own transfer; the marker authorizes exactly
	// that transfer and nothing else.
	execMu    sync.Mutex
	executing protocol.AccountID
}

func planKey(a protocol.AccountID) keyvalue.Key {
	return keyvalue.NewKey("rescue", string(a))
}

func New(kv keyvalue.Store, clock core.Clock, ledger Ledger, logger logging.Logger, bus *events.Bus) *Registry {
	r := new(Registry)
	r.state = core.NewState(kv)
	r.clock = clock
	r.ledger = ledger
	r.bus = bus
	r.logger.Set(logger, "module", "rescue")
	return r
}

// Events are published after the registry's lock is released so a synchronous
// subscriber can call back into the registry.
func (r *Registry) publish(ev events.Event) {
	if r.bus != nil {
		r.bus.Publish(ev)
	}
}

// RegisterPlan creates or replaces the owner's rescue plan. Re-registration
// is always valid and silently replaces the prior plan, including a pending
// eta - the owner can always reset their own arrangement.
func (r *Registry) RegisterPlan(owner, recovery protocol.AccountID, delaySeconds uint64) error {
	err := r.registerPlan(owner, recovery, delaySeconds)
	if err != nil {
		return err
	}
	r.publish(events.PlanRegistered{Account: owner, Recovery: recovery, Delay: delaySeconds})
	return nil
}

func (r *Registry) registerPlan(owner, recovery protocol.AccountID, delaySeconds uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner.IsZero() {
		return errors.BadRequest.With("owner is the void account")
	}
	if recovery.IsZero() {
		return errors.InvalidRecovery.With("recovery account is void")
	}
	if delaySeconds < protocol.MinimumRescueDelay {
		return errors.DelayTooShort.WithFormat("delay %d is below the minimum %d", delaySeconds, protocol.MinimumRescueDelay)
	}

	plan := new(protocol.RescuePlan)
	plan.Recovery = recovery
	plan.Delay = delaySeconds
	err := r.state.PutJSON(planKey(owner), plan)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	r.logger.Info("Plan registered", "account", owner, "recovery", recovery, "delay", delaySeconds)
	return nil
}

// InitiateRescue arms the owner's plan. The rescue matures delay seconds from
// now. Initiating again while a rescue is pending restarts the clock.
func (r *Registry) InitiateRescue(owner protocol.AccountID) error {
	eta, err := r.initiateRescue(owner)
	if err != nil {
		return err
	}
	r.publish(events.RescueInitiated{Account: owner, ETA: eta})
	return nil
}

func (r *Registry) initiateRescue(owner protocol.AccountID) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan := new(protocol.RescuePlan)
	found, err := r.state.GetJSON(planKey(owner), plan)
	if err != nil {
		return 0, errors.UnknownError.Wrap(err)
	}
	if !found {
		return 0, errors.NoPlan.WithFormat("%v has no rescue plan", owner)
	}

	eta := core.Unix(r.clock) + plan.Delay
	plan.ETA = &eta
	err = r.state.PutJSON(planKey(owner), plan)
	if err != nil {
		return 0, errors.UnknownError.Wrap(err)
	}

	r.logger.Info("Rescue initiated", "account", owner, "eta", eta)
	return eta, nil
}

// CancelRescue disarms a pending rescue.
func (r *Registry) CancelRescue(owner protocol.AccountID) error {
	err := r.cancelRescue(owner)
	if err != nil {
		return err
	}
	r.publish(events.RescueCanceled{Account: owner})
	return nil
}

func (r *Registry) cancelRescue(owner protocol.AccountID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan := new(protocol.RescuePlan)
	found, err := r.state.GetJSON(planKey(owner), plan)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !found || !plan.Active() {
		return errors.NoActiveRescue.WithFormat("%v has no pending rescue", owner)
	}

	plan.ETA = nil
	err = r.state.PutJSON(planKey(owner), plan)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	r.logger.Info("Rescue canceled", "account", owner)
	return nil
}

// CanExecuteRescue returns true if the account has a pending rescue that has
// matured. This is the predicate the transfer gate consults.
func (r *Registry) CanExecuteRescue(victim protocol.AccountID) bool {
	r.execMu.Lock()
	inFlight := !victim.IsZero() && r.executing == victim
	r.execMu.Unlock()
	if inFlight {
		return true
	}

	plan := new(protocol.RescuePlan)
	found, err := r.state.GetJSON(planKey(victim), plan)
	if err != nil {
		r.logger.Error("Failed to load rescue plan", "account", victim, "error", err)
		return false
	}
	return found && plan.Matured(core.Unix(r.clock))
}

// Plan returns the account's rescue plan, if one is registered.
func (r *Registry) Plan(owner protocol.AccountID) (*protocol.RescuePlan, bool, error) {
	plan := new(protocol.RescuePlan)
	found, err := r.state.GetJSON(planKey(owner), plan)
	if err != nil {
		return nil, false, errors.UnknownError.Wrap(err)
	}
	return plan, found, nil
}

// ExecuteRescue moves amount from the victim to the plan's recovery account.
// Any principal may call this once the rescue has matured. The pending eta is
// cleared and persisted before the transfer: a reentrant call during the same
// maturation window observes an inactive plan and fails with NotMatured.
func (r *Registry) ExecuteRescue(caller, victim protocol.AccountID, amount uint64) error {
	recovery, err := r.executeRescue(caller, victim, amount)
	if err != nil {
		return err
	}
	r.publish(events.RescueExecuted{Account: victim, Recovery: recovery, Executor: caller, Amount: amount})
	return nil
}

func (r *Registry) executeRescue(caller, victim protocol.AccountID, amount uint64) (protocol.AccountID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan := new(protocol.RescuePlan)
	found, err := r.state.GetJSON(planKey(victim), plan)
	if err != nil {
		return "", errors.UnknownError.Wrap(err)
	}
	if !found || !plan.Matured(core.Unix(r.clock)) {
		return "", errors.NotMatured.WithFormat("rescue for %v has not matured", victim)
	}
	if amount == 0 {
		return "", errors.ZeroAmount.With("cannot rescue zero")
	}
	balance, err := r.ledger.BalanceOf(victim)
	if err != nil {
		return "", errors.UnknownError.Wrap(err)
	}
	if amount > balance {
		return "", errors.InsufficientBalance.WithFormat("balance of %v is %d, want %d", victim, balance, amount)
	}

	// Clear the maturation state before moving any balance. A reentrant call
	// from here on observes an inactive plan and fails with NotMatured.
	plan.ETA = nil
	err = r.state.PutJSON(planKey(victim), plan)
	if err != nil {
		return "", errors.UnknownError.Wrap(err)
	}

	r.setExecuting(victim)
	defer r.setExecuting(protocol.ZeroAccount)

	err = r.ledger.Transfer(victim, plan.Recovery, amount, true)
	if err != nil {
		return "", errors.UnknownError.Wrap(err)
	}

	r.logger.Info("Rescue executed", "account", victim, "recovery", plan.Recovery, "executor", caller, "amount", amount)
	return plan.Recovery, nil
}

func (r *Registry) setExecuting(victim protocol.AccountID) {
	r.execMu.Lock()
	r.executing = victim
	r.execMu.Unlock()
}
