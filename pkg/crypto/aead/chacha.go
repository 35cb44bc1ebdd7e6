// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package aead

import (
	"crypto/cipher"

	"golang.org/x/crypto/chacha20poly1305"
)

// ChaCha20Poly1305Name is the algorithm name of NewChaCha20Poly1305.
const ChaCha20Poly1305Name = "rfc7539(chacha20,poly1305)"

// NewChaCha20Poly1305 creates a ChaCha20-Poly1305 engine with a 12-byte IV.
func NewChaCha20Poly1305() Engine {
	return newStdEngine(&stdEngine{
		name:       ChaCha20Poly1305Name,
		driverName: "rfc7539-chacha20-poly1305-generic",
		priority:   100,
		ivSize:     chacha20poly1305.NonceSize,
		tagLength:  chacha20poly1305.Overhead,
		keySizes:   []int{chacha20poly1305.KeySize},
		newAEAD: func(key []byte) (cipher.AEAD, error) {
			return chacha20poly1305.New(key)
		},
	})
}
