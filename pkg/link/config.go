// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package link

import (
	"net"

	"github.com/pion/gcmp/pkg/crypto/gcmp"
	"github.com/pion/logging"
)

const (
	defaultReplayProtectionWindow = 64
	defaultMaxBufferSize          = 1000 * 1000 // 1MB
)

// Config is used to configure a link Conn.
// After a Config is passed to New it must not be modified.
type Config struct {
	// Session encrypts outgoing frames and decrypts incoming ones. It must be
	// keyed, and bound before the first Write succeeds. The Conn must be the
	// only encryptor using the Session. The caller keeps ownership and closes
	// it after the Conn.
	Session *gcmp.Session

	// PeerHardwareAddr is the address the peer's session is bound to. It is
	// the first part of every IV the peer sends.
	PeerHardwareAddr net.HardwareAddr

	// ReplayProtectionWindow is the size of the receive replay window in
	// packets. The default is 64.
	ReplayProtectionWindow int

	// MaxBufferSize caps the bytes of decrypted frames waiting to be Read.
	// Frames arriving while the buffer is full are dropped. The default is
	// 1MB.
	MaxBufferSize int

	LoggerFactory logging.LoggerFactory
}

func validateConfig(config *Config) error {
	switch {
	case config == nil:
		return errNoConfigProvided
	case config.Session == nil:
		return errNoSession
	case len(config.PeerHardwareAddr) != gcmp.MACLen:
		return gcmp.ErrInvalidHardwareAddr
	case config.ReplayProtectionWindow < 0:
		return errInvalidReplayWindow
	case config.MaxBufferSize < 0:
		return errInvalidBufferSize
	}

	return nil
}
