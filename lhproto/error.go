// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lhproto

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrMalformedPledge indicates that a pledge could not be decoded or
	// that its transaction is structurally unusable, for example because
	// it has no inputs or an input is not signed with the flags the
	// protocol requires.
	ErrMalformedPledge ErrorCode = iota

	// ErrProjectMismatch indicates that a well formed pledge does not
	// belong to the project it was checked against.
	ErrProjectMismatch

	// ErrInvalidProject indicates that a project definition is unusable,
	// such as one without outputs or with dust outputs.
	ErrInvalidProject

	// ErrInvalidServerPath indicates that a pledge server URL does not
	// follow the protocol layout.
	ErrInvalidServerPath
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrMalformedPledge:   "ErrMalformedPledge",
	ErrProjectMismatch:   "ErrProjectMismatch",
	ErrInvalidProject:    "ErrInvalidProject",
	ErrInvalidServerPath: "ErrInvalidServerPath",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error provides a single type for errors that can happen while checking
// projects and pledges.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error given a set of arguments.
func NewError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

// IsErrorCode returns whether err is, or wraps, an Error with the given
// code.
func IsErrorCode(err error, c ErrorCode) bool {
	var e Error
	return errors.As(err, &e) && e.ErrorCode == c
}
