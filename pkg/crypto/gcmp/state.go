// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package gcmp

// State is the encryption eligibility of a Session. It does not apply to
// decryption.
type State int

// State enums.
const (
	// StateUninitialized has no accepted key.
	StateUninitialized State = iota
	// StateKeyedUnbound is keyed but waits for a hardware address.
	StateKeyedUnbound
	// StateKeyedBound checks and encrypts packets.
	StateKeyedBound
	// StateFailed saw an IV mismatch. Terminal until rekeyed.
	StateFailed
	// StateExhausted has issued every packet number. Terminal until rekeyed.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateKeyedUnbound:
		return "KeyedUnbound"
	case StateKeyedBound:
		return "KeyedBound"
	case StateFailed:
		return "Failed"
	case StateExhausted:
		return "Exhausted"
	default:
		return "Unknown"
	}
}

// State returns the session's current state.
func (s *Session) State() State {
	s.lock.Lock()
	defer s.lock.Unlock()

	switch {
	case !s.keyed:
		return StateUninitialized
	case s.checkFailed:
		return StateFailed
	case s.pn >= MaxPacketNumber:
		return StateExhausted
	case !s.macBound:
		return StateKeyedUnbound
	default:
		return StateKeyedBound
	}
}
