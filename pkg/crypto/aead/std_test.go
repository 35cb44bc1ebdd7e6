// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package aead

import (
	"bytes"
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	cases := map[string]struct {
		newEngine func() Engine
		keyLen    int
		ivSize    int
	}{
		"GCMAES128":        {NewGCMAES, 16, GCMIVSize},
		"GCMAES256":        {NewGCMAES, 32, GCMIVSize},
		"ChaCha20Poly1305": {NewChaCha20Poly1305, 32, 12},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			e := tc.newEngine()
			defer func() {
				require.NoError(t, e.Close())
			}()

			assert.Equal(t, tc.ivSize, e.IVSize())
			assert.Equal(t, 16, e.AuthSize())
			assert.Equal(t, 1, e.BlockSize())
			assert.NotZero(t, e.Flags()&FlagNeedKey)

			h := sha256.Sum256([]byte(name))
			iv := bytes.Repeat([]byte{7}, tc.ivSize)
			req := &Request{IV: iv, AD: []byte("header"), Src: []byte("payload")}

			_, err := e.Encrypt(ctx, req)
			require.ErrorIs(t, err, ErrNoKey)

			require.NoError(t, e.SetKey(h[:tc.keyLen]))
			assert.Zero(t, e.Flags()&FlagNeedKey)

			sealed, err := e.Encrypt(ctx, req)
			require.NoError(t, err)
			assert.Len(t, sealed, len("payload")+16)

			opened, err := e.Decrypt(ctx, &Request{IV: iv, AD: []byte("header"), Src: sealed})
			require.NoError(t, err)
			assert.Equal(t, []byte("payload"), opened)

			_, err = e.Decrypt(ctx, &Request{IV: iv, AD: []byte("tampered"), Src: sealed})
			require.ErrorIs(t, err, ErrAuthFailed)

			_, err = e.Decrypt(ctx, &Request{IV: iv, Src: sealed[:3]})
			require.ErrorIs(t, err, ErrCiphertextTooShort)

			_, err = e.Encrypt(ctx, &Request{IV: iv[:tc.ivSize-1], Src: []byte("x")})
			require.ErrorIs(t, err, ErrInvalidIVSize)

			require.NoError(t, e.SetAuthSize(16))
			require.ErrorIs(t, e.SetAuthSize(8), ErrInvalidAuthSize)

			require.ErrorIs(t, e.SetKey(h[:tc.keyLen-1]), ErrInvalidKeyLength)
			assert.NotZero(t, e.Flags()&FlagResBadKeyLen)
		})
	}
}

func TestEngineCanceledContext(t *testing.T) {
	e := NewChaCha20Poly1305()
	require.NoError(t, e.SetKey(bytes.Repeat([]byte{1, 2}, 16)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Encrypt(ctx, &Request{IV: make([]byte, 12), Src: []byte("x")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngineSealInPlace(t *testing.T) {
	ctx := context.Background()
	e := NewGCMAES()
	require.NoError(t, e.SetKey(bytes.Repeat([]byte{3, 4}, 8)))

	iv := make([]byte, GCMIVSize)
	buf := make([]byte, 5, 5+16)
	copy(buf, "hello")

	sealed, err := e.Encrypt(ctx, &Request{IV: iv, Src: buf, Dst: buf[:0]})
	require.NoError(t, err)

	opened, err := e.Decrypt(ctx, &Request{IV: iv, Src: sealed, Dst: sealed[:0]})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), opened)
}
