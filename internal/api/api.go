// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package api exposes the ledger, rescue registry, and staking engine over
// JSON-RPC. The node performs no signature verification: the caller named in
// a request is trusted, so the transport in front of this API is responsible
// for authentication.
package api

import (
	"gitlab.com/synergy-network/snrg/internal/ledger"
	"gitlab.com/synergy-network/snrg/internal/logging"
	"gitlab.com/synergy-network/snrg/internal/rescue"
	"gitlab.com/synergy-network/snrg/internal/staking"
)

type Options struct {
	Logger  logging.Logger
	Ledger  *ledger.Ledger
	Rescue  *rescue.Registry
	Staking *staking.Engine
}
