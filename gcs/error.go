// Copyright (c) 2019-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrRangeOverflow indicates the product N*M of a set does not fit in the
	// 64-bit domain used to reduce hashes.
	ErrRangeOverflow = ErrorKind("ErrRangeOverflow")

	// ErrTooManyItems indicates a set can't be built with the requested number
	// of items for the given false positive rate.
	ErrTooManyItems = ErrorKind("ErrTooManyItems")

	// ErrInvalidWidth indicates a bitstream read or write was requested for
	// more bits than fit in a uint64.
	ErrInvalidWidth = ErrorKind("ErrInvalidWidth")

	// ErrUnexpectedEOF indicates the bitstream ended in the middle of a value.
	ErrUnexpectedEOF = ErrorKind("ErrUnexpectedEOF")

	// ErrValueTooLarge indicates a value to encode has a unary quotient that
	// exceeds MaxQuotient.
	ErrValueTooLarge = ErrorKind("ErrValueTooLarge")

	// ErrQuotientTooLarge indicates a decoded unary quotient exceeds
	// MaxQuotient or the decoded value does not fit in a uint64.
	ErrQuotientTooLarge = ErrorKind("ErrQuotientTooLarge")

	// ErrInvalidModulus indicates an M parameter of zero.
	ErrInvalidModulus = ErrorKind("ErrInvalidModulus")

	// ErrLimitReached indicates more distinct items were added to a builder
	// than it was created to hold.
	ErrLimitReached = ErrorKind("ErrLimitReached")

	// ErrMisserialized indicates the set data is inconsistent with its
	// parameters.
	ErrMisserialized = ErrorKind("ErrMisserialized")

	// ErrUnknownHasher indicates a hash function name that is not registered.
	ErrUnknownHasher = ErrorKind("ErrUnknownHasher")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to building, decoding, or querying a set.
// It has full support for errors.Is and errors.As, so the caller can ascertain
// the specific reason for the error by checking the underlying error.
type Error struct {
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
