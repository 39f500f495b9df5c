// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"context"
	"encoding/json"

	"gitlab.com/synergy-network/snrg"
)

func (m *JrpcMethods) Status(_ context.Context, _ json.RawMessage) interface{} {
	minted, err := m.Ledger.Minted()
	if err != nil {
		return internalError(err)
	}
	return &StatusResponse{Ok: true, Minted: minted}
}

func (m *JrpcMethods) Version(_ context.Context, _ json.RawMessage) interface{} {
	return &VersionResponse{Version: snrg.Version, Commit: snrg.Commit}
}

func (m *JrpcMethods) QueryBalance(_ context.Context, params json.RawMessage) interface{} {
	req := new(AccountRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	balance, err := m.Ledger.BalanceOf(req.Account)
	if err != nil {
		return synergyError(err)
	}
	return &BalanceResponse{Account: req.Account, Balance: balance}
}

func (m *JrpcMethods) QuerySupply(_ context.Context, _ json.RawMessage) interface{} {
	total, err := m.Ledger.TotalSupply()
	if err != nil {
		return synergyError(err)
	}
	minted, err := m.Ledger.Minted()
	if err != nil {
		return synergyError(err)
	}
	return &SupplyResponse{Total: total, Cap: m.Ledger.Params().SupplyCap, Minted: minted}
}

func (m *JrpcMethods) QueryPlan(_ context.Context, params json.RawMessage) interface{} {
	req := new(AccountRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	plan, found, err := m.Rescue.Plan(req.Account)
	if err != nil {
		return synergyError(err)
	}
	res := &PlanResponse{Account: req.Account}
	if found {
		res.Plan = plan
	}
	return res
}

func (m *JrpcMethods) QueryPositions(_ context.Context, params json.RawMessage) interface{} {
	req := new(AccountRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	count, err := m.Staking.CountFor(req.Account)
	if err != nil {
		return synergyError(err)
	}
	res := &PositionsResponse{Account: req.Account, Count: count}
	for i := uint64(0); i < count; i++ {
		pos, err := m.Staking.PositionAt(req.Account, i)
		if err != nil {
			return synergyError(err)
		}
		res.Positions = append(res.Positions, *pos)
	}
	return res
}

func (m *JrpcMethods) QueryTiers(_ context.Context, _ json.RawMessage) interface{} {
	return &TiersResponse{Tiers: m.Staking.RewardTiers()}
}

func (m *JrpcMethods) Transfer(_ context.Context, params json.RawMessage) interface{} {
	req := new(TransferRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	err = m.Ledger.Transfer(req.From, req.To, req.Amount, false)
	if err != nil {
		return synergyError(err)
	}
	return &AckResponse{Ok: true}
}

func (m *JrpcMethods) RegisterPlan(_ context.Context, params json.RawMessage) interface{} {
	req := new(RegisterPlanRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	err = m.Rescue.RegisterPlan(req.Account, req.Recovery, req.Delay)
	if err != nil {
		return synergyError(err)
	}
	return &AckResponse{Ok: true}
}

func (m *JrpcMethods) InitiateRescue(_ context.Context, params json.RawMessage) interface{} {
	req := new(AccountRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	err = m.Rescue.InitiateRescue(req.Account)
	if err != nil {
		return synergyError(err)
	}

	plan, _, err := m.Rescue.Plan(req.Account)
	if err != nil {
		return synergyError(err)
	}
	res := new(InitiateResponse)
	if plan.ETA != nil {
		res.ETA = *plan.ETA
	}
	return res
}

func (m *JrpcMethods) CancelRescue(_ context.Context, params json.RawMessage) interface{} {
	req := new(AccountRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	err = m.Rescue.CancelRescue(req.Account)
	if err != nil {
		return synergyError(err)
	}
	return &AckResponse{Ok: true}
}

func (m *JrpcMethods) ExecuteRescue(_ context.Context, params json.RawMessage) interface{} {
	req := new(ExecuteRescueRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	err = m.Rescue.ExecuteRescue(req.Caller, req.Account, req.Amount)
	if err != nil {
		return synergyError(err)
	}
	return &AckResponse{Ok: true}
}

func (m *JrpcMethods) FundReserve(_ context.Context, params json.RawMessage) interface{} {
	req := new(FundReserveRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	err = m.Staking.FundReserve(req.Account, req.Amount)
	if err != nil {
		return synergyError(err)
	}
	return &AckResponse{Ok: true}
}

func (m *JrpcMethods) Stake(_ context.Context, params json.RawMessage) interface{} {
	req := new(StakeRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	index, err := m.Staking.Stake(req.Account, req.Principal, req.Days)
	if err != nil {
		return synergyError(err)
	}
	return &StakeResponse{Index: index}
}

func (m *JrpcMethods) Withdraw(_ context.Context, params json.RawMessage) interface{} {
	req := new(PositionRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	principal, reward, err := m.Staking.Withdraw(req.Account, req.Index)
	if err != nil {
		return synergyError(err)
	}
	return &WithdrawResponse{Principal: principal, Reward: reward}
}

func (m *JrpcMethods) WithdrawEarly(_ context.Context, params json.RawMessage) interface{} {
	req := new(PositionRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	returned, fee, err := m.Staking.WithdrawEarly(req.Account, req.Index)
	if err != nil {
		return synergyError(err)
	}
	return &WithdrawEarlyResponse{Returned: returned, Fee: fee}
}
