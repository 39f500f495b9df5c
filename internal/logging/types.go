// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package logging provides the logger interface used throughout the node and
// adapters for zerolog and slog.
package logging

// Logger is a leveled, structured logger. Key-value pairs alternate keys and
// values, e.g. logger.Info("staked", "account", acct, "amount", amount).
type Logger interface {
	Debug(msg string, keyVals ...interface{})
	Info(msg string, keyVals ...interface{})
	Error(msg string, keyVals ...interface{})
	With(keyVals ...interface{}) Logger
}
