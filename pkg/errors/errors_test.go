// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors_test

import (
	stderr "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/synergy-network/snrg/pkg/errors"
)

func TestStatusIs(t *testing.T) {
	err := errors.NotMatured.WithFormat("rescue for %q has not matured", "alice")
	require.True(t, stderr.Is(err, errors.NotMatured))
	require.False(t, stderr.Is(err, errors.NoPlan))
}

func TestWrapPreservesCode(t *testing.T) {
	inner := errors.InsufficientBalance.With("balance is 10, want 20")
	outer := errors.UnknownError.Wrap(fmt.Errorf("execute rescue: %w", inner))
	require.True(t, stderr.Is(outer, errors.InsufficientBalance))
	require.Equal(t, errors.InsufficientBalance, errors.Code(outer))
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, errors.DelayTooShort.Wrap(nil))
}

func TestCode(t *testing.T) {
	require.Equal(t, errors.OK, errors.Code(nil))
	require.Equal(t, errors.UnknownError, errors.Code(stderr.New("boom")))
	require.Equal(t, errors.AlreadyFunded, errors.Code(errors.AlreadyFunded.With("reserve already funded")))
}

func TestClassification(t *testing.T) {
	require.True(t, errors.ZeroAmount.IsClientError())
	require.True(t, errors.AlreadyMinted.IsClientError())
	require.True(t, errors.InternalError.IsServerError())
	require.True(t, errors.OK.Success())
}
