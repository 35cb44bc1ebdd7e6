// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package util contains small helpers used across the repo
package util

import "golang.org/x/crypto/cryptobyte"

// Uint48Max is the largest value representable in 48 bits.
const Uint48Max = 1<<48 - 1

// AddUint48 appends a big-endian, 48-bit value to the byte string.
// Remove if / when https://github.com/golang/crypto/pull/265 is merged
// upstream.
func AddUint48(b *cryptobyte.Builder, v uint64) {
	b.AddBytes([]byte{byte(v >> 40), byte(v >> 32), byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// PutUint48 writes v into the first 6 bytes of b, most significant byte first.
// Bits above 48 are discarded.
func PutUint48(b []byte, v uint64) {
	_ = b[5] // bounds check hint to compiler; see golang.org/issue/14808
	b[0] = byte(v >> 40)
	b[1] = byte(v >> 32)
	b[2] = byte(v >> 24)
	b[3] = byte(v >> 16)
	b[4] = byte(v >> 8)
	b[5] = byte(v)
}

// Uint48 reads a big-endian, 48-bit value from the first 6 bytes of b.
func Uint48(b []byte) uint64 {
	_ = b[5] // bounds check hint to compiler; see golang.org/issue/14808

	return uint64(b[0])<<40 | uint64(b[1])<<32 | uint64(b[2])<<24 |
		uint64(b[3])<<16 | uint64(b[4])<<8 | uint64(b[5])
}

// ReadUint48 decodes a big-endian, 48-bit value from s and advances over it.
// It reports whether the read was successful.
func ReadUint48(s *cryptobyte.String, out *uint64) bool {
	var v []byte
	if !s.ReadBytes(&v, 6) {
		return false
	}
	*out = Uint48(v)

	return true
}
