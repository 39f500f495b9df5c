// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

// AccountID identifies an account on the ledger. Account identifiers are
// opaque - the ledger attaches no meaning to their contents beyond equality.
type AccountID string

// ZeroAccount is the void account. Transfers to the zero account are burns;
// the only transfer from it is the genesis mint.
const ZeroAccount AccountID = ""

// IsZero returns true if the account is the void account.
func (a AccountID) IsZero() bool { return a == ZeroAccount }

func (a AccountID) String() string {
	if a.IsZero() {
		return "(void)"
	}
	return string(a)
}
