// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package aead

import (
	"crypto/aes"
	"crypto/cipher"
)

const (
	// GCMIVSize is the IV size of the gcm(aes) engine.
	GCMIVSize = 16

	gcmTagLength = 16
)

// GCMAESName is the algorithm name of NewGCMAES.
const GCMAESName = "gcm(aes)"

// NewGCMAES creates an AES-GCM engine with a 16-byte IV.
// Keys are 16, 24 or 32 bytes.
func NewGCMAES() Engine {
	return newStdEngine(&stdEngine{
		name:       GCMAESName,
		driverName: "gcm-aes-generic",
		priority:   100,
		ivSize:     GCMIVSize,
		tagLength:  gcmTagLength,
		keySizes:   []int{16, 24, 32},
		newAEAD: func(key []byte) (cipher.AEAD, error) {
			block, err := aes.NewCipher(key)
			if err != nil {
				return nil, err
			}

			return cipher.NewGCMWithNonceSize(block, GCMIVSize)
		},
	})
}
