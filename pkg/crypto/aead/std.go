// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package aead

import (
	"context"
	"crypto/cipher"
	"fmt"
	"slices"
	"sync"
)

// stdEngine adapts a crypto/cipher.AEAD constructor to Engine.
type stdEngine struct {
	FlagSet

	name       string
	driverName string
	priority   int
	ivSize     int
	tagLength  int
	keySizes   []int
	newAEAD    func(key []byte) (cipher.AEAD, error)

	lock sync.RWMutex
	aead cipher.AEAD
}

func newStdEngine(e *stdEngine) *stdEngine {
	e.SetFlags(FlagNeedKey)

	return e
}

func (e *stdEngine) Name() string       { return e.name }
func (e *stdEngine) DriverName() string { return e.driverName }
func (e *stdEngine) Priority() int      { return e.priority }
func (e *stdEngine) IVSize() int        { return e.ivSize }
func (e *stdEngine) AuthSize() int      { return e.tagLength }
func (e *stdEngine) MaxAuthSize() int   { return e.tagLength }
func (e *stdEngine) BlockSize() int     { return 1 }

func (e *stdEngine) SetKey(key []byte) error {
	e.ClearFlags(FlagResMask)

	if !slices.Contains(e.keySizes, len(key)) {
		return e.rejectKey(FlagResBadKeyLen, ErrInvalidKeyLength)
	}

	if e.Flags()&FlagReqForbidWeakKeys != 0 && isWeakKey(key) {
		return e.rejectKey(FlagResWeakKey, ErrWeakKey)
	}

	a, err := e.newAEAD(key)
	if err != nil {
		return e.rejectKey(0, &InvalidArgumentError{Err: err})
	}

	e.lock.Lock()
	e.aead = a
	e.lock.Unlock()

	e.ClearFlags(FlagNeedKey)

	return nil
}

// rejectKey drops any previous key so the engine cannot be used until a key
// is accepted.
func (e *stdEngine) rejectKey(res Flags, err error) error {
	e.lock.Lock()
	e.aead = nil
	e.lock.Unlock()

	e.SetFlags(res | FlagNeedKey)

	return err
}

// SetAuthSize accepts only the full tag length. The standard library does not
// verify truncated tags for non-default nonce sizes.
func (e *stdEngine) SetAuthSize(n int) error {
	if n != e.tagLength {
		return ErrInvalidAuthSize
	}

	return nil
}

func (e *stdEngine) current(ctx context.Context, req *Request) (cipher.AEAD, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.lock.RLock()
	a := e.aead
	e.lock.RUnlock()

	switch {
	case a == nil:
		return nil, ErrNoKey
	case len(req.IV) != e.ivSize:
		return nil, ErrInvalidIVSize
	}

	return a, nil
}

func (e *stdEngine) Encrypt(ctx context.Context, req *Request) ([]byte, error) {
	a, err := e.current(ctx, req)
	if err != nil {
		return nil, err
	}

	return a.Seal(req.Dst, req.IV, req.Src, req.AD), nil
}

func (e *stdEngine) Decrypt(ctx context.Context, req *Request) ([]byte, error) {
	a, err := e.current(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(req.Src) < e.tagLength {
		return nil, ErrCiphertextTooShort
	}

	out, err := a.Open(req.Dst, req.IV, req.Src, req.AD)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err) //nolint:errorlint
	}

	return out, nil
}

func (e *stdEngine) Close() error {
	e.lock.Lock()
	e.aead = nil
	e.lock.Unlock()

	e.SetFlags(FlagNeedKey)

	return nil
}

// isWeakKey refuses keys made of a single repeated byte.
func isWeakKey(key []byte) bool {
	for _, b := range key[1:] {
		if b != key[0] {
			return false
		}
	}

	return true
}
