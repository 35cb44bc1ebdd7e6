// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package gcmp

// Observer receives session events. Implementations must be safe for
// concurrent use and must not call back into the Session.
type Observer interface {
	SessionRegistered(name string)
	SessionUnregistered(name string)
	Bound(name string)
	Rekeyed(name string)
	// Encrypted is called once per packet number that passed the IV check.
	Encrypted(name string)
	// Rejected is called with a RejectReason label.
	Rejected(name, reason string)
}

type nopObserver struct{}

func (nopObserver) SessionRegistered(string)   {}
func (nopObserver) SessionUnregistered(string) {}
func (nopObserver) Bound(string)               {}
func (nopObserver) Rekeyed(string)             {}
func (nopObserver) Encrypted(string)           {}
func (nopObserver) Rejected(string, string)    {}
