// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package gcmp

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/pion/gcmp/pkg/crypto/aead"
	"github.com/pion/logging"
	"github.com/pion/transport/v3"
	"github.com/stretchr/testify/require"
)

var errNoSuchInterface = errors.New("no such interface") //nolint:err113

var (
	testMAC   = net.HardwareAddr{0x02, 0x11, 0x22, 0x33, 0x44, 0x55}
	otherMAC  = net.HardwareAddr{0x02, 0xaa, 0xbb, 0xcc, 0xdd, 0xee}
	testKey   = []byte("0123456789abcdef")
	testPlain = []byte("payload")
)

// recordingEngine is an aead.Engine that records what reaches it.
type recordingEngine struct {
	aead.FlagSet

	ivSize int
	keyErr error
	// gate, when set, blocks the first Encrypt until closed.
	gate    chan struct{}
	entered chan struct{}
	// keyGate, when set, blocks SetKey until closed.
	keyGate    chan struct{}
	keyEntered chan struct{}

	lock      sync.Mutex
	encrypts  [][]byte
	decrypts  int
	authSizes []int
	keys      int
	closed    bool
}

func newRecordingEngine(ivSize int) *recordingEngine {
	return &recordingEngine{ivSize: ivSize}
}

func (e *recordingEngine) Name() string       { return "fake(aead)" }
func (e *recordingEngine) DriverName() string { return "fake-aead-generic" }
func (e *recordingEngine) Priority() int      { return 7 }
func (e *recordingEngine) IVSize() int        { return e.ivSize }
func (e *recordingEngine) AuthSize() int      { return 16 }
func (e *recordingEngine) MaxAuthSize() int   { return 16 }
func (e *recordingEngine) BlockSize() int     { return 16 }

func (e *recordingEngine) SetKey([]byte) error {
	if e.keyGate != nil {
		e.keyEntered <- struct{}{}
		<-e.keyGate
	}
	e.ClearFlags(aead.FlagResMask)

	e.lock.Lock()
	e.keys++
	e.lock.Unlock()

	if e.keyErr != nil {
		e.SetFlags(aead.FlagResBadKeyLen)
	}

	return e.keyErr
}

func (e *recordingEngine) SetAuthSize(n int) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.authSizes = append(e.authSizes, n)
	if n > 16 {
		return aead.ErrInvalidAuthSize
	}

	return nil
}

func (e *recordingEngine) Encrypt(_ context.Context, req *aead.Request) ([]byte, error) {
	e.lock.Lock()
	first := len(e.encrypts) == 0
	e.encrypts = append(e.encrypts, append([]byte(nil), req.IV...))
	e.lock.Unlock()

	if first && e.gate != nil {
		e.entered <- struct{}{}
		<-e.gate
	}

	return append(req.Dst, req.Src...), nil
}

func (e *recordingEngine) Decrypt(_ context.Context, req *aead.Request) ([]byte, error) {
	e.lock.Lock()
	e.decrypts++
	e.lock.Unlock()

	return append(req.Dst, req.Src...), nil
}

func (e *recordingEngine) Close() error {
	e.lock.Lock()
	e.closed = true
	e.lock.Unlock()

	return nil
}

func (e *recordingEngine) encryptIVs() [][]byte {
	e.lock.Lock()
	defer e.lock.Unlock()

	return append([][]byte(nil), e.encrypts...)
}

// staticLookup resolves a fixed set of interfaces.
type staticLookup map[string]net.HardwareAddr

func (l staticLookup) InterfaceByName(name string) (*transport.Interface, error) {
	mac, ok := l[name]
	if !ok {
		return nil, errNoSuchInterface
	}

	return transport.NewInterface(net.Interface{Name: name, HardwareAddr: mac, MTU: 1500}), nil
}

func silentLoggerFactory() logging.LoggerFactory {
	lf := logging.NewDefaultLoggerFactory()
	lf.DefaultLogLevel = logging.LogLevelDisabled

	return lf
}

// newTestSession returns a keyed session over a recording engine, bound to
// testMAC when bind is true.
func newTestSession(t *testing.T, bind bool, opts ...Option) (*Session, *recordingEngine) {
	t.Helper()

	inner := newRecordingEngine(aead.GCMIVSize)
	s, err := NewSession(inner, append([]Option{WithLoggerFactory(silentLoggerFactory())}, opts...)...)
	require.NoError(t, err)
	require.NoError(t, s.SetKey(testKey))
	if bind {
		require.True(t, s.BindHardwareAddr(testMAC))
	}

	return s, inner
}

func mustIV(t *testing.T, mac net.HardwareAddr, pn uint64) []byte {
	t.Helper()

	iv, err := BuildIV(mac, pn, aead.GCMIVSize)
	require.NoError(t, err)

	return iv
}

func encrypt(s *Session, iv []byte) error {
	_, err := s.Encrypt(context.Background(), &aead.Request{IV: iv, Src: testPlain})

	return err
}
