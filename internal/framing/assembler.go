// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package framing reassembles packets written as a type byte followed by a
// separate payload write.
package framing

import "errors"

var errEmptyWrite = errors.New("framing: empty write") //nolint:err113

// Assembler turns a stream of writes into frames of the form
// type || payload. Some writers emit the type byte on its own and the payload
// in the next write; a 1-byte write is therefore held and prefixed to the
// next write. An Assembler is not safe for concurrent use.
type Assembler struct {
	pending bool
	pktType byte
}

// Push consumes one write. It returns the assembled frame, or nil when p was
// held as a pending type byte, and the number of bytes of p consumed.
func (a *Assembler) Push(p []byte) (frame []byte, n int, err error) {
	switch len(p) {
	case 0:
		return nil, 0, errEmptyWrite
	case 1:
		// A second lone byte replaces the first.
		a.pending = true
		a.pktType = p[0]

		return nil, 1, nil
	}

	if a.pending {
		frame = make([]byte, 0, len(p)+1)
		frame = append(frame, a.pktType)
		a.pending = false
	} else {
		frame = make([]byte, 0, len(p))
	}

	return append(frame, p...), len(p), nil
}

// Pending reports whether a type byte is waiting for its payload.
func (a *Assembler) Pending() bool {
	return a.pending
}

// Reset drops any pending type byte.
func (a *Assembler) Reset() {
	a.pending = false
	a.pktType = 0
}
