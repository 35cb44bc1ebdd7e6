// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package aead

import (
	"errors"
	"fmt"
)

// Typed errors.
var (
	//nolint:err113
	ErrInvalidKeyLength = &InvalidArgumentError{Err: errors.New("invalid key length")}
	//nolint:err113
	ErrWeakKey = &InvalidArgumentError{Err: errors.New("weak key refused")}
	//nolint:err113
	ErrInvalidAuthSize = &InvalidArgumentError{Err: errors.New("invalid authentication tag size")}
	//nolint:err113
	ErrInvalidIVSize = &InvalidArgumentError{Err: errors.New("invalid IV size")}
	//nolint:err113
	ErrNoKey = &InvalidArgumentError{Err: errors.New("key not set")}
	//nolint:err113
	ErrCiphertextTooShort = &InvalidArgumentError{Err: errors.New("ciphertext shorter than authentication tag")}
	//nolint:err113
	ErrUnknownAlgorithm = &InvalidArgumentError{Err: errors.New("unknown algorithm")}
	//nolint:err113
	ErrNameTooLong = &InvalidArgumentError{Err: errors.New("algorithm name too long")}
	//nolint:err113
	ErrAlreadyRegistered = &InvalidArgumentError{Err: errors.New("algorithm already registered")}
	//nolint:err113
	ErrNilEngine = &InvalidArgumentError{Err: errors.New("engine is nil")}

	//nolint:err113
	ErrAuthFailed = &AuthError{Err: errors.New("message authentication failed")}

	//nolint:err113
	ErrEngineClosed = &InternalError{Err: errors.New("engine is closed")}
)

// InvalidArgumentError is the coarse status returned when a request or the
// state of a transform does not allow the operation.
type InvalidArgumentError struct {
	Err error
}

// AuthError indicates that a ciphertext failed authentication.
type AuthError struct {
	Err error
}

// InternalError indicates an error caused by the implementation or by using
// an engine after Close.
type InternalError struct {
	Err error
}

func (e *InvalidArgumentError) Error() string { return fmt.Sprintf("aead: invalid argument: %v", e.Err) }
func (e *InvalidArgumentError) Unwrap() error { return e.Err }

func (e *AuthError) Error() string { return fmt.Sprintf("aead: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

func (e *InternalError) Error() string { return fmt.Sprintf("aead internal: %v", e.Err) }
func (e *InternalError) Unwrap() error { return e.Err }

// IsInvalidArgument reports whether err belongs to the invalid-argument class.
func IsInvalidArgument(err error) bool {
	var e *InvalidArgumentError

	return errors.As(err, &e)
}
