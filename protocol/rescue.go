// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

// RescuePlan is an account's registered recovery arrangement. A plan is
// created by registration, armed by initiation, and disarmed by cancellation
// or execution. Plans are reset, never deleted.
type RescuePlan struct {
	// Recovery is the account funds move to when a rescue is executed.
	Recovery AccountID `json:"recovery"`
	// Delay is the maturation delay in seconds, at least MinimumRescueDelay.
	Delay uint64 `json:"delay"`
	// ETA is the Unix time at which a pending rescue matures. Nil means no
	// rescue is pending.
	ETA *uint64 `json:"eta,omitempty"`
}

// Active returns true if a rescue has been initiated and not yet canceled or
// executed.
func (p *RescuePlan) Active() bool { return p.ETA != nil }

// Matured returns true if a rescue is pending and now is at or past its ETA.
func (p *RescuePlan) Matured(now uint64) bool {
	return p.ETA != nil && now >= *p.ETA
}
