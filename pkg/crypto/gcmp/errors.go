// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package gcmp

import (
	"errors"

	"github.com/pion/gcmp/pkg/crypto/aead"
)

// Typed errors. Every encrypt refusal is of the aead.InvalidArgumentError class.
var (
	//nolint:err113
	ErrNotReady = &aead.InvalidArgumentError{Err: errors.New("gcmp: interface address not bound")}
	//nolint:err113
	ErrNonceSpaceExhausted = &aead.InvalidArgumentError{Err: errors.New("gcmp: packet number space exhausted")}
	//nolint:err113
	ErrIVMismatch = &aead.InvalidArgumentError{Err: errors.New("gcmp: iv check fail")}
	//nolint:err113
	ErrCheckFailed = &aead.InvalidArgumentError{Err: errors.New("gcmp: session disabled by earlier iv check failure")}
	//nolint:err113
	ErrIVSizeTooSmall = &aead.InvalidArgumentError{Err: errors.New("gcmp: inner engine IV is shorter than 12 bytes")}
	//nolint:err113
	ErrInvalidHardwareAddr = &aead.InvalidArgumentError{Err: errors.New("gcmp: hardware address must be 6 bytes")}
	//nolint:err113
	ErrSessionExists = &aead.InvalidArgumentError{Err: errors.New("gcmp: session already registered")}
)

// RejectReason maps an encrypt refusal to a short label. It returns "" for
// errors that did not originate in the IV check.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	case errors.Is(err, ErrNonceSpaceExhausted):
		return "exhausted"
	case errors.Is(err, ErrIVMismatch):
		return "iv_mismatch"
	case errors.Is(err, ErrCheckFailed):
		return "check_failed"
	}

	return ""
}
