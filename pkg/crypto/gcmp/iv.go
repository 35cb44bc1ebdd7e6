// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package gcmp

import (
	"net"

	"github.com/pion/gcmp/internal/util"
	"golang.org/x/crypto/cryptobyte"
)

// IV layout: the transmitter's hardware address, then the 48-bit packet
// number, most significant byte first. Any remaining bytes are zero.
const (
	// MACLen is the length of the hardware address at the start of the IV.
	MACLen = 6
	// PacketNumberOffset is where the packet number starts in the IV.
	PacketNumberOffset = MACLen
	// PacketNumberLen is the length of the packet number in the IV.
	PacketNumberLen = 6
	// MinIVSize is the smallest IV that holds the address and packet number.
	MinIVSize = PacketNumberOffset + PacketNumberLen

	// MaxPacketNumber is the last packet number a session issues. The
	// all-ones value above it is reserved.
	MaxPacketNumber uint64 = util.Uint48Max - 1
)

// BuildIV builds the IV a transmitter with address mac must supply for packet
// number pn.
func BuildIV(mac net.HardwareAddr, pn uint64, size int) ([]byte, error) {
	switch {
	case len(mac) != MACLen:
		return nil, ErrInvalidHardwareAddr
	case size < MinIVSize:
		return nil, ErrIVSizeTooSmall
	}

	var b cryptobyte.Builder
	b.AddBytes(mac)
	util.AddUint48(&b, pn)
	b.AddBytes(make([]byte, size-MinIVSize))

	return b.Bytes()
}

// PacketNumber extracts the packet number from an IV. It returns 0 if iv is
// too short.
func PacketNumber(iv []byte) uint64 {
	if len(iv) < MinIVSize {
		return 0
	}

	return util.Uint48(iv[PacketNumberOffset:])
}
