// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package core provides the host environment abstractions: the clock and the
// typed state accessors over the key-value store.
package core

import "time"

// Clock supplies the current time. The host environment's clock is assumed
// trustworthy and monotonic.
type Clock interface {
	Now() time.Time
}

// SystemClock is the host system clock, in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ClockFunc adapts a function to the Clock interface. Tests use this to
// control time.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Unix returns the clock's current time as Unix seconds.
func Unix(c Clock) uint64 {
	return uint64(c.Now().Unix())
}
