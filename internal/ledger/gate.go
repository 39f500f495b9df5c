// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import "gitlab.com/synergy-network/snrg/protocol"

// RescuePolicy is the rescue registry as seen by the transfer gate.
type RescuePolicy interface {
	// CanExecuteRescue returns true if the account has a pending rescue that
	// has matured.
	CanExecuteRescue(victim protocol.AccountID) bool
}

// CanTransfer is the transfer gate: a pure predicate consulted on every
// balance-changing operation. It performs no state changes.
func (l *Ledger) CanTransfer(from, to protocol.AccountID, rescueExecutor bool) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.canTransfer(from, to, rescueExecutor)
}

func (l *Ledger) canTransfer(from, to protocol.AccountID, rescueExecutor bool) bool {
	// Mint or burn. Burns are further restricted to the swap endpoint, but
	// that is the caller's duty, not the gate's.
	if from.IsZero() || to.IsZero() {
		return true
	}

	// Allowlisted endpoint on either side
	if l.allowlisted(from) || l.allowlisted(to) {
		return true
	}

	// Matured rescue, executed through the rescue path
	if rescueExecutor && l.policy != nil && l.policy.CanExecuteRescue(from) {
		return true
	}

	return false
}

func (l *Ledger) allowlisted(a protocol.AccountID) bool {
	return a == l.params.StakingPool || a == l.params.SwapEndpoint
}
