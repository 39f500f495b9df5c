// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"errors"
	"fmt"
)

// Error is a status-coded error with an optional cause chain.
type Error struct {
	Code    Status
	Message string
	Cause   *Error
}

// Wrap wraps an error with the status. If err is nil, Wrap returns nil.
func (s Status) Wrap(err error) error {
	if err == nil {
		// The return type must be `error` - otherwise this return statement
		// can cause strange errors
		return nil
	}

	// If err already carries a known code and we would not add anything,
	// return it as is
	if !s.IsKnownError() {
		if _, ok := err.(*Error); ok {
			return err
		}
	}

	e := &Error{Code: s}
	e.setCause(convert(err))
	return e
}

// With constructs an error from the status and the given values.
func (s Status) With(v ...interface{}) *Error {
	return &Error{Code: s, Message: fmt.Sprint(v...)}
}

// WithFormat constructs an error from the status and a format string. If the
// format wraps an error via %w, the wrapped error becomes the cause.
func (s Status) WithFormat(format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)

	u, ok := err.(interface{ Unwrap() error })
	if ok {
		e := &Error{Code: s, Message: err.Error()}
		e.setCause(convert(u.Unwrap()))
		return e
	}

	return &Error{Code: s, Message: err.Error()}
}

// WithCauseAndFormat constructs an error with an explicit cause.
func (s Status) WithCauseAndFormat(cause error, format string, args ...interface{}) *Error {
	e := &Error{Code: s, Message: fmt.Sprintf(format, args...)}
	e.setCause(convert(cause))
	return e
}

func convert(err error) *Error {
	if err == nil {
		return nil
	}

	if x := (*Error)(nil); errors.As(err, &x) {
		return x
	}

	if x := Status(0); errors.As(err, &x) {
		return &Error{Code: x, Message: err.Error()}
	}

	e := &Error{Code: UnknownError, Message: err.Error()}

	if u, ok := err.(interface{ Unwrap() error }); ok {
		if err := u.Unwrap(); err != nil {
			e.setCause(convert(err))
		}
	}

	return e
}

func (e *Error) setCause(f *Error) {
	e.Cause = f
	if f == nil {
		return
	}

	if e.Code.IsKnownError() {
		return
	}

	if e.Message != "" {
		// Copy the code
		e.Code = f.Code
		return
	}

	// Inherit everything
	*e = *f
}

// Error implements error.
func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the cause if there is one, otherwise the status code.
func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Code
}

// Is returns true if the target is a Status or *Error with the same code as
// this error or any of its causes.
func (e *Error) Is(target error) bool {
	switch f := target.(type) {
	case *Error:
		if e.Code == f.Code {
			return true
		}
	case Status:
		if e.Code == f {
			return true
		}
	}
	if e.Cause != nil {
		return e.Cause.Is(target)
	}
	return false
}

// Code extracts the status code from an error. Code returns OK for nil and
// UnknownError for errors that do not carry a status.
func Code(err error) Status {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return UnknownError
}
