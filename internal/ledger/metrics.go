// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mTransfersPermitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "snrg",
		Subsystem: "ledger",
		Name:      "transfers_permitted",
		Help:      "Number of transfers the gate permitted",
	})
	mTransfersDenied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "snrg",
		Subsystem: "ledger",
		Name:      "transfers_denied",
		Help:      "Number of transfers the gate denied",
	})
)
