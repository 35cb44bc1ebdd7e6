// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package link

import (
	"errors"

	"github.com/pion/gcmp/pkg/crypto/aead"
)

// Typed errors.
var (
	//nolint:err113
	ErrConnClosed = &aead.InternalError{Err: errors.New("link: conn is closed")}

	errNilNextConn         = &aead.InvalidArgumentError{Err: errors.New("link: next conn is nil")}                   //nolint:err113
	errNoConfigProvided    = &aead.InvalidArgumentError{Err: errors.New("link: no config provided")}                 //nolint:err113
	errNoSession           = &aead.InvalidArgumentError{Err: errors.New("link: no session provided")}                //nolint:err113
	errInvalidReplayWindow = &aead.InvalidArgumentError{Err: errors.New("link: replay window must not be negative")} //nolint:err113
	errInvalidBufferSize   = &aead.InvalidArgumentError{Err: errors.New("link: buffer size must not be negative")}   //nolint:err113
	errFrameTooLarge       = &aead.InvalidArgumentError{Err: errors.New("link: frame too large")}                    //nolint:err113

	errFrameTooShort       = errors.New("link: frame too short")                   //nolint:err113
	errInvalidPacketNumber = errors.New("link: invalid packet number")             //nolint:err113
	errReplayed            = errors.New("link: replayed or too old packet number") //nolint:err113
)
