// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import "gitlab.com/synergy-network/snrg/protocol"

// AccountRequest selects an account.
type AccountRequest struct {
	Account protocol.AccountID `json:"account" validate:"required"`
}

// TransferRequest moves tokens between accounts, subject to the transfer
// gate. Amounts are not validated here: a zero amount must reach the engine
// so the caller sees the named status instead of a generic validation error.
type TransferRequest struct {
	From   protocol.AccountID `json:"from" validate:"required"`
	To     protocol.AccountID `json:"to"`
	Amount uint64             `json:"amount"`
}

type RegisterPlanRequest struct {
	Account  protocol.AccountID `json:"account" validate:"required"`
	Recovery protocol.AccountID `json:"recovery" validate:"required"`
	Delay    uint64             `json:"delay" validate:"required"`
}

type ExecuteRescueRequest struct {
	// Caller is the executor. Execution is permissionless, so any account may
	// complete a matured rescue.
	Caller  protocol.AccountID `json:"caller" validate:"required"`
	Account protocol.AccountID `json:"account" validate:"required"`
	Amount  uint64             `json:"amount"`
}

type StakeRequest struct {
	Account   protocol.AccountID `json:"account" validate:"required"`
	Principal uint64             `json:"principal"`
	Days      uint64             `json:"days" validate:"required"`
}

// PositionRequest selects one staking position. Index zero is a valid
// position, so it carries no validation.
type PositionRequest struct {
	Account protocol.AccountID `json:"account" validate:"required"`
	Index   uint64             `json:"index"`
}

type FundReserveRequest struct {
	Account protocol.AccountID `json:"account" validate:"required"`
	Amount  uint64             `json:"amount"`
}

type StatusResponse struct {
	Ok     bool `json:"ok"`
	Minted bool `json:"minted"`
}

type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

type BalanceResponse struct {
	Account protocol.AccountID `json:"account"`
	Balance uint64             `json:"balance"`
}

type SupplyResponse struct {
	Total  uint64 `json:"total"`
	Cap    uint64 `json:"cap"`
	Minted bool   `json:"minted"`
}

type PlanResponse struct {
	Account protocol.AccountID   `json:"account"`
	Plan    *protocol.RescuePlan `json:"plan"`
}

type PositionsResponse struct {
	Account   protocol.AccountID         `json:"account"`
	Count     uint64                     `json:"count"`
	Positions []protocol.StakingPosition `json:"positions"`
}

type TiersResponse struct {
	Tiers []protocol.RewardTier `json:"tiers"`
}

// AckResponse acknowledges an operation that returns no data.
type AckResponse struct {
	Ok bool `json:"ok"`
}

type InitiateResponse struct {
	ETA uint64 `json:"eta"`
}

type StakeResponse struct {
	Index uint64 `json:"index"`
}

type WithdrawResponse struct {
	Principal uint64 `json:"principal"`
	Reward    uint64 `json:"reward"`
}

type WithdrawEarlyResponse struct {
	Returned uint64 `json:"returned"`
	Fee      uint64 `json:"fee"`
}
