// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package aead provides composable AEAD transforms. An Engine is a keyed AEAD
// primitive addressed by an algorithm name such as "gcm(aes)"; templates wrap
// engines to build names such as "cryptd(gcm(aes))".
package aead

import (
	"context"
	"sync/atomic"
)

// Engine is an AEAD transform. Configuration calls (SetKey, SetAuthSize,
// SetFlags) must not race with Encrypt or Decrypt. Encrypt and Decrypt may be
// called concurrently.
type Engine interface {
	// Name is the generic algorithm name, e.g. "gcm(aes)".
	Name() string
	// DriverName names the implementation, e.g. "gcm-aes-generic".
	DriverName() string
	Priority() int

	IVSize() int
	AuthSize() int
	MaxAuthSize() int
	BlockSize() int

	Flags() Flags
	SetFlags(f Flags)
	ClearFlags(f Flags)

	SetKey(key []byte) error
	SetAuthSize(n int) error

	// Encrypt seals req.Src, appending ciphertext and tag to req.Dst.
	Encrypt(ctx context.Context, req *Request) ([]byte, error)
	// Decrypt opens req.Src (ciphertext and tag), appending plaintext to req.Dst.
	Decrypt(ctx context.Context, req *Request) ([]byte, error)

	// Close releases the engine and any engine it owns.
	Close() error
}

// Request carries the buffers of one AEAD operation.
type Request struct {
	IV []byte
	// AD is authenticated but not encrypted.
	AD  []byte
	Src []byte
	// Dst is the append target for the output. It may be Src[:0].
	Dst []byte
}

// Flags hold request flags set by the user of an engine and result flags
// reported back by it.
type Flags uint32

// Engine flags.
const (
	// FlagNeedKey is set until a key has been accepted.
	FlagNeedKey Flags = 0x00000001

	// FlagReqForbidWeakKeys asks SetKey to refuse weak keys.
	FlagReqForbidWeakKeys Flags = 0x00000100
	// FlagReqMayBacklog allows asynchronous engines to queue requests.
	FlagReqMayBacklog Flags = 0x00000400

	// FlagResWeakKey reports that SetKey refused a weak key.
	FlagResWeakKey Flags = 0x00100000
	// FlagResBadKeyLen reports that SetKey refused the key length.
	FlagResBadKeyLen Flags = 0x00200000

	FlagReqMask Flags = 0x000fff00
	FlagResMask Flags = 0xfff00000
)

// FlagSet is an atomic Flags holder that engines embed.
type FlagSet struct {
	v atomic.Uint32
}

// Flags returns the current flags.
func (f *FlagSet) Flags() Flags {
	return Flags(f.v.Load())
}

// SetFlags sets the bits in fl.
func (f *FlagSet) SetFlags(fl Flags) {
	f.v.Or(uint32(fl))
}

// ClearFlags clears the bits in fl.
func (f *FlagSet) ClearFlags(fl Flags) {
	f.v.And(^uint32(fl))
}

// PropagateKey forwards key to inner the way a wrapping transform does:
// inner's request flags are replaced by outer's, the key is set, and outer's
// result flags are replaced by inner's.
func PropagateKey(outer, inner Engine, key []byte) error {
	inner.ClearFlags(FlagReqMask)
	inner.SetFlags(outer.Flags() & FlagReqMask)

	err := inner.SetKey(key)

	outer.ClearFlags(FlagResMask)
	outer.SetFlags(inner.Flags() & FlagResMask)

	if err != nil {
		outer.SetFlags(FlagNeedKey)
	} else {
		outer.ClearFlags(FlagNeedKey)
	}

	return err
}
