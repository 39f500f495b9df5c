// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package errors implements the status-coded errors used throughout the
// Synergy node. Codes follow the HTTP convention: 2xx success, 4xx caller
// error, 5xx internal error. Domain-specific rejections occupy 460-479.
package errors

import "fmt"

// Status is a status code.
type Status uint64

const (
	OK Status = 200

	BadRequest    Status = 400
	NotAuthorized Status = 401
	NotAllowed    Status = 403
	NotFound      Status = 404
	Conflict      Status = 409

	ZeroAmount          Status = 460
	InvalidRecovery     Status = 461
	DelayTooShort       Status = 462
	NoPlan              Status = 463
	NoActiveRescue      Status = 464
	NotMatured          Status = 465
	InsufficientBalance Status = 466
	UnknownTier         Status = 467
	AlreadySettled      Status = 468
	AlreadyMatured      Status = 469
	AlreadyFunded       Status = 470
	AlreadyMinted       Status = 471
	SupplyLimit         Status = 472

	InternalError Status = 500
	UnknownError  Status = 501
	EncodingError Status = 502
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case BadRequest:
		return "bad request"
	case NotAuthorized:
		return "not authorized"
	case NotAllowed:
		return "not allowed"
	case NotFound:
		return "not found"
	case Conflict:
		return "conflict"
	case ZeroAmount:
		return "zero amount"
	case InvalidRecovery:
		return "invalid recovery account"
	case DelayTooShort:
		return "delay too short"
	case NoPlan:
		return "no rescue plan"
	case NoActiveRescue:
		return "no active rescue"
	case NotMatured:
		return "not matured"
	case InsufficientBalance:
		return "insufficient balance"
	case UnknownTier:
		return "unknown reward tier"
	case AlreadySettled:
		return "already settled"
	case AlreadyMatured:
		return "already matured"
	case AlreadyFunded:
		return "already funded"
	case AlreadyMinted:
		return "already minted"
	case SupplyLimit:
		return "supply limit exceeded"
	case InternalError:
		return "internal error"
	case UnknownError:
		return "unknown error"
	case EncodingError:
		return "encoding error"
	default:
		return fmt.Sprintf("status %d", uint64(s))
	}
}

// Error implements error so a bare status can be used as an error value and as
// a target for errors.Is.
func (s Status) Error() string { return s.String() }

// Success returns true if the status indicates success.
func (s Status) Success() bool { return s < 300 }

// IsClientError returns true if the status indicates the caller did something
// wrong.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status indicates the node did something
// wrong.
func (s Status) IsServerError() bool { return s >= 500 }

// IsKnownError returns true if the status is a specific, defined error code.
// Wrapping an error with a status that is not a known error preserves the
// original code.
func (s Status) IsKnownError() bool {
	switch s {
	case UnknownError:
		return false
	default:
		return s >= 400 && s < 600
	}
}
