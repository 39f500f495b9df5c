// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package events

import "gitlab.com/synergy-network/snrg/protocol"

// Event is a notification published after a state change commits. External
// indexers subscribe to these.
type Event interface {
	EventType() string
}

// PlanRegistered is published when an account registers or replaces its
// rescue plan.
type PlanRegistered struct {
	Account  protocol.AccountID
	Recovery protocol.AccountID
	Delay    uint64
}

// RescueInitiated is published when an account arms its rescue plan.
type RescueInitiated struct {
	Account protocol.AccountID
	ETA     uint64
}

// RescueCanceled is published when an account disarms a pending rescue.
type RescueCanceled struct {
	Account protocol.AccountID
}

// RescueExecuted is published when a matured rescue moves funds.
type RescueExecuted struct {
	Account  protocol.AccountID
	Recovery protocol.AccountID
	Executor protocol.AccountID
	Amount   uint64
}

// Staked is published when a staking position is created.
type Staked struct {
	Account        protocol.AccountID
	Index          uint64
	Principal      uint64
	PromisedReward uint64
	Maturity       uint64
}

// Withdrawn is published when a mature position is settled.
type Withdrawn struct {
	Account   protocol.AccountID
	Index     uint64
	Principal uint64
	Reward    uint64
}

// WithdrawnEarly is published when a position is settled before maturity.
type WithdrawnEarly struct {
	Account  protocol.AccountID
	Index    uint64
	Returned uint64
	Fee      uint64
}

// ReserveFunded is published when the staking reserve is funded.
type ReserveFunded struct {
	Funder protocol.AccountID
	Amount uint64
}

// TransferDenied is published when the transfer gate rejects an operation.
type TransferDenied struct {
	From protocol.AccountID
	To   protocol.AccountID
}

func (PlanRegistered) EventType() string  { return "plan-registered" }
func (RescueInitiated) EventType() string { return "rescue-initiated" }
func (RescueCanceled) EventType() string  { return "rescue-canceled" }
func (RescueExecuted) EventType() string  { return "rescue-executed" }
func (Staked) EventType() string          { return "staked" }
func (Withdrawn) EventType() string       { return "withdrawn" }
func (WithdrawnEarly) EventType() string  { return "withdrawn-early" }
func (ReserveFunded) EventType() string   { return "reserve-funded" }
func (TransferDenied) EventType() string  { return "transfer-denied" }
