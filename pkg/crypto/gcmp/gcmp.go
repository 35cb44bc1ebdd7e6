// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package gcmp enforces the FIPS packet-number checks of the Galois/Counter
// Mode Protocol on top of an AEAD engine.
//
// A Session owns an inner engine. Every encryption must carry the IV the
// session expects next: the bound interface hardware address followed by a
// strictly increasing 48-bit packet number. Any other IV disables encryption
// on the session until it is rekeyed. Decryption is passed through unchecked.
package gcmp

import (
	"context"
	"crypto/subtle"
	"net"
	"sync"
	"sync/atomic"

	"github.com/pion/gcmp/internal/util"
	"github.com/pion/gcmp/pkg/crypto/aead"
	"github.com/pion/logging"
	"github.com/pion/transport/v3"
	"github.com/pion/transport/v3/stdnet"
)

// TemplateName is the name under which Register installs the gcmp template.
const TemplateName = "gcmp"

// InterfaceLookup resolves network interfaces by name. transport.Net
// implementations satisfy it.
type InterfaceLookup interface {
	InterfaceByName(name string) (*transport.Interface, error)
}

// interfaceUpdater is implemented by lookups that cache the interface list.
type interfaceUpdater interface {
	UpdateInterfaces() error
}

// Session is a gcmp transform instance. It implements aead.Engine.
type Session struct {
	aead.FlagSet

	inner    aead.Engine
	label    atomic.Pointer[string]
	log      logging.LeveledLogger
	observer Observer

	lookup     InterfaceLookup
	lookupOnce sync.Once

	lock        sync.Mutex
	iv          []byte
	pn          uint64
	keyed       bool
	macBound    bool
	checkFailed bool
}

var _ aead.Engine = (*Session)(nil)

// NewSession wraps inner. The session owns inner and closes it on Close.
func NewSession(inner aead.Engine, opts ...Option) (*Session, error) {
	if inner == nil {
		return nil, aead.ErrNilEngine
	}
	if inner.IVSize() < MinIVSize {
		return nil, ErrIVSizeTooSmall
	}

	o := applyOptions(opts)

	s := &Session{
		inner:    inner,
		log:      o.loggerFactory.NewLogger("gcmp"),
		observer: o.observer,
		lookup:   o.net,
		iv:       make([]byte, inner.IVSize()),
	}
	if o.name == "" {
		o.name = s.Name()
	}
	s.setLabel(o.name)
	s.SetFlags(aead.FlagNeedKey | o.flags&aead.FlagReqMask)

	return s, nil
}

// Label is the name used in logs and observer events. It is the WithName
// option, the name the session was registered under in a Table, or the
// algorithm name.
func (s *Session) Label() string {
	return *s.label.Load()
}

func (s *Session) setLabel(label string) {
	s.label.Store(&label)
}

// Name returns "gcmp(<inner name>)".
func (s *Session) Name() string { return TemplateName + "(" + s.inner.Name() + ")" }

// DriverName returns "gcmp(<inner driver name>)".
func (s *Session) DriverName() string { return TemplateName + "(" + s.inner.DriverName() + ")" }

// Priority is inherited from the inner engine.
func (s *Session) Priority() int { return s.inner.Priority() }

// IVSize is the inner engine's IV size.
func (s *Session) IVSize() int { return s.inner.IVSize() }

// AuthSize is the inner engine's tag size.
func (s *Session) AuthSize() int { return s.inner.AuthSize() }

// MaxAuthSize is the inner engine's largest tag size.
func (s *Session) MaxAuthSize() int { return s.inner.MaxAuthSize() }

// BlockSize is always 1.
func (s *Session) BlockSize() int { return 1 }

// SetKey keys the inner engine. When the key is accepted the failure latch is
// cleared and the packet number restarts at 0. The bound hardware address is
// kept. The key change and the reset happen under the session lock, so no IV
// check sees the new key with the old packet number. As with any
// configuration call, SetKey must not race with inner engine operations that
// are still in flight.
func (s *Session) SetKey(key []byte) error {
	s.lock.Lock()
	err := aead.PropagateKey(s, s.inner, key)
	s.keyed = err == nil
	if err == nil {
		s.checkFailed = false
		s.pn = 0
		util.PutUint48(s.iv[PacketNumberOffset:], 0)
	}
	s.lock.Unlock()

	if err != nil {
		s.log.Warnf("%s: key rejected: %v", s.Label(), err)

		return err
	}

	s.log.Infof("%s: rekeyed", s.Label())
	s.observer.Rekeyed(s.Label())

	return nil
}

// SetAuthSize configures the inner engine's tag size.
func (s *Session) SetAuthSize(n int) error {
	return s.inner.SetAuthSize(n)
}

// BindInterface copies the hardware address of the named interface into the
// IV. It does nothing if the session is already bound or the interface
// cannot be resolved.
func (s *Session) BindInterface(name string) {
	if s.Bound() {
		return
	}

	lookup := s.interfaces()
	if lookup == nil {
		return
	}
	if u, ok := lookup.(interfaceUpdater); ok {
		if err := u.UpdateInterfaces(); err != nil {
			s.log.Debugf("%s: failed to refresh interfaces: %v", s.Label(), err)
		}
	}

	ifc, err := lookup.InterfaceByName(name)
	if err != nil || ifc == nil {
		s.log.Debugf("%s: interface %s not found: %v", s.Label(), name, err)

		return
	}

	if !s.BindHardwareAddr(ifc.HardwareAddr) {
		s.log.Debugf("%s: interface %s not bound", s.Label(), name)
	}
}

// BindHardwareAddr binds mac if the session is not bound yet. It reports
// whether this call bound the session.
func (s *Session) BindHardwareAddr(mac net.HardwareAddr) bool {
	if len(mac) != MACLen {
		return false
	}

	s.lock.Lock()
	if s.macBound {
		s.lock.Unlock()

		return false
	}
	copy(s.iv[:MACLen], mac)
	s.macBound = true
	s.lock.Unlock()

	s.log.Infof("%s: bound to %s", s.Label(), mac)
	s.observer.Bound(s.Label())

	return true
}

// HardwareAddr returns the bound address.
func (s *Session) HardwareAddr() (net.HardwareAddr, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.macBound {
		return nil, false
	}

	return net.HardwareAddr(append([]byte(nil), s.iv[:MACLen]...)), true
}

// Bound reports whether a hardware address is bound.
func (s *Session) Bound() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.macBound
}

// PacketNumber returns the last packet number consumed.
func (s *Session) PacketNumber() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.pn
}

// Encrypt checks req.IV against the next expected IV and, if it matches,
// passes the request to the inner engine. A refused request never reaches
// the inner engine.
func (s *Session) Encrypt(ctx context.Context, req *aead.Request) ([]byte, error) {
	iv, err := s.deriveAndValidate(req.IV)
	if err != nil {
		s.observer.Rejected(s.Label(), RejectReason(err))

		return nil, err
	}
	s.observer.Encrypted(s.Label())

	sub := *req
	sub.IV = iv

	return s.inner.Encrypt(ctx, &sub)
}

// Decrypt passes the request to the inner engine. The received IV is not
// checked and session state is not touched.
func (s *Session) Decrypt(ctx context.Context, req *aead.Request) ([]byte, error) {
	return s.inner.Decrypt(ctx, req)
}

// Close releases the inner engine.
func (s *Session) Close() error {
	return s.inner.Close()
}

// deriveAndValidate consumes the next packet number and compares the
// resulting IV with iv. The packet number stays consumed when the comparison
// fails, and the session is latched until rekeyed.
func (s *Session) deriveAndValidate(iv []byte) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	switch {
	case s.checkFailed:
		return nil, ErrCheckFailed
	case !s.macBound:
		return nil, ErrNotReady
	case s.pn >= MaxPacketNumber:
		return nil, ErrNonceSpaceExhausted
	}

	s.pn++
	util.PutUint48(s.iv[PacketNumberOffset:], s.pn)

	if subtle.ConstantTimeCompare(s.iv, iv) != 1 {
		s.checkFailed = true
		s.log.Errorf("%s: iv check fail at packet number %d", s.Label(), s.pn)

		return nil, ErrIVMismatch
	}

	return append([]byte(nil), s.iv...), nil
}

func (s *Session) interfaces() InterfaceLookup {
	s.lookupOnce.Do(func() {
		if s.lookup != nil {
			return
		}

		n, err := stdnet.NewNet()
		if err != nil {
			s.log.Warnf("%s: failed to create interface lookup: %v", s.Label(), err)

			return
		}
		s.lookup = n
	})

	return s.lookup
}
