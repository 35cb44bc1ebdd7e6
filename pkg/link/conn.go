// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package link carries typed frames over a net.Conn, protected by a gcmp
// Session.
//
// Each frame on the wire is
//
//	type (1 byte) || packet number (6 bytes) || ciphertext || tag
//
// The type byte and packet number are authenticated as additional data. The
// IV is the sender's hardware address followed by the packet number, so the
// receiver rebuilds it from the peer address and the frame header.
package link

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pion/gcmp/internal/framing"
	"github.com/pion/gcmp/internal/util"
	"github.com/pion/gcmp/pkg/crypto/aead"
	"github.com/pion/gcmp/pkg/crypto/gcmp"
	"github.com/pion/logging"
	"github.com/pion/transport/v3/packetio"
	"github.com/pion/transport/v3/replaydetector"
	"golang.org/x/crypto/cryptobyte"
)

const (
	headerLen  = 1 + gcmp.PacketNumberLen
	receiveMTU = 8192
)

// Conn represents a gcmp protected link.
type Conn struct {
	nextConn net.Conn // Embedded Conn, typically a datagram conn we read/write from
	session  *gcmp.Session
	peer     net.HardwareAddr
	log      logging.LeveledLogger

	ctx    context.Context //nolint:containedctx
	cancel context.CancelFunc

	writeLock sync.Mutex
	assembler framing.Assembler
	localPN   uint64 // uint48, last packet number the session consumed for us

	rxLock       sync.Mutex
	replayWindow uint
	replay       replaydetector.ReplayDetector

	buffer   *packetio.Buffer
	readLock sync.Mutex
	readBuf  []byte
	pending  []byte // rest of a frame the caller has not read yet

	closed       atomic.Bool
	closeOnce    sync.Once
	readLoopDone chan struct{}
}

// New creates a Conn over nextConn and starts reading from it.
func New(nextConn net.Conn, config *Config) (*Conn, error) {
	if nextConn == nil {
		return nil, errNilNextConn
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	loggerFactory := config.LoggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	replayWindow := defaultReplayProtectionWindow
	if config.ReplayProtectionWindow > 0 {
		replayWindow = config.ReplayProtectionWindow
	}

	maxBufferSize := defaultMaxBufferSize
	if config.MaxBufferSize > 0 {
		maxBufferSize = config.MaxBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Conn{
		nextConn:     nextConn,
		session:      config.Session,
		peer:         append(net.HardwareAddr(nil), config.PeerHardwareAddr...),
		log:          loggerFactory.NewLogger("link"),
		ctx:          ctx,
		cancel:       cancel,
		replayWindow: uint(replayWindow), //nolint:gosec
		buffer:       packetio.NewBuffer(),
		readBuf:      make([]byte, receiveMTU),
		readLoopDone: make(chan struct{}),
	}
	c.replay = c.newReplayDetector()
	c.buffer.SetLimitSize(maxBufferSize)

	go c.readLoop()

	return c, nil
}

func (c *Conn) newReplayDetector() replaydetector.ReplayDetector {
	return replaydetector.New(c.replayWindow, gcmp.MaxPacketNumber)
}

// Write sends p as one frame. A 1-byte write is taken as the frame type of
// the next write and is only reported as consumed. The first byte of any
// longer write is the frame type. A frame that would not fit the peer's
// receive buffer once sealed is refused without spending a packet number.
func (c *Conn) Write(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, ErrConnClosed
	}

	c.writeLock.Lock()
	defer c.writeLock.Unlock()

	frame, n, err := c.assembler.Push(p)
	if err != nil || frame == nil {
		return n, err
	}

	raw, err := c.seal(frame)
	if err != nil {
		return 0, err
	}

	if _, err := c.nextConn.Write(raw); err != nil {
		return 0, err
	}

	return n, nil
}

// seal encrypts frame under the next packet number. Caller must hold
// writeLock.
func (c *Conn) seal(frame []byte) ([]byte, error) {
	sealedLen := headerLen + len(frame) - 1 + c.session.AuthSize()
	if sealedLen > receiveMTU {
		return nil, errFrameTooLarge
	}

	// An unbound session refuses every IV with ErrNotReady.
	mac, ok := c.session.HardwareAddr()
	if !ok {
		mac = make(net.HardwareAddr, gcmp.MACLen)
	}

	pn := c.localPN + 1
	iv, err := gcmp.BuildIV(mac, pn, c.session.IVSize())
	if err != nil {
		return nil, err
	}

	var header cryptobyte.Builder
	header.AddUint8(frame[0])
	util.AddUint48(&header, pn)
	ad, err := header.Bytes()
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerLen, sealedLen)
	copy(out, ad)

	sealed, err := c.session.Encrypt(c.ctx, &aead.Request{
		IV:  iv,
		AD:  ad,
		Src: frame[1:],
		Dst: out,
	})
	if consumesPacketNumber(err) {
		c.localPN = pn
	}
	if err != nil {
		return nil, err
	}

	return sealed, nil
}

// consumesPacketNumber reports whether the session spent a packet number on
// an Encrypt call that returned err.
func consumesPacketNumber(err error) bool {
	return !errors.Is(err, gcmp.ErrNotReady) &&
		!errors.Is(err, gcmp.ErrNonceSpaceExhausted) &&
		!errors.Is(err, gcmp.ErrCheckFailed)
}

// Rekey installs a new key on the session and restarts both packet number
// spaces. The peer must rekey with the same key before it sends again.
func (c *Conn) Rekey(key []byte) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()

	if err := c.session.SetKey(key); err != nil {
		return err
	}
	c.localPN = 0
	c.assembler.Reset()

	c.rxLock.Lock()
	c.replay = c.newReplayDetector()
	c.rxLock.Unlock()

	c.log.Debug("rekeyed, packet numbers restarted")

	return nil
}

// Read reads the next frame, type byte first. When p is shorter than the
// frame, the rest is returned by the following Reads.
func (c *Conn) Read(p []byte) (n int, err error) {
	c.readLock.Lock()
	defer c.readLock.Unlock()

	if len(c.pending) == 0 {
		i, err := c.buffer.Read(c.readBuf)
		if err != nil {
			return 0, err
		}
		c.pending = c.readBuf[:i]
	}

	n = copy(p, c.pending)
	c.pending = c.pending[n:]

	return n, nil
}

func (c *Conn) readLoop() {
	defer close(c.readLoopDone)

	b := make([]byte, receiveMTU)
	for {
		i, err := c.nextConn.Read(b)
		if err != nil {
			if !c.closed.Load() {
				c.log.Debugf("read loop stopped: %v", err)
			}
			if err := c.buffer.Close(); err != nil {
				c.log.Warnf("failed to close rx buffer: %v", err)
			}

			return
		}

		if err := c.handleIncoming(b[:i]); err != nil {
			c.log.Warnf("dropping frame: %v", err)
		}
	}
}

func (c *Conn) handleIncoming(buf []byte) error {
	s := cryptobyte.String(buf)

	var (
		frameType uint8
		pn        uint64
	)
	if !s.ReadUint8(&frameType) || !util.ReadUint48(&s, &pn) || len(s) < c.session.AuthSize() {
		return errFrameTooShort
	}
	if pn == 0 || pn > gcmp.MaxPacketNumber {
		return errInvalidPacketNumber
	}

	iv, err := gcmp.BuildIV(c.peer, pn, c.session.IVSize())
	if err != nil {
		return err
	}

	c.rxLock.Lock()
	defer c.rxLock.Unlock()

	markPacketAsValid, ok := c.replay.Check(pn)
	if !ok {
		return errReplayed
	}

	frame := make([]byte, 1, len(s))
	frame[0] = frameType

	frame, err = c.session.Decrypt(c.ctx, &aead.Request{
		IV:  iv,
		AD:  buf[:headerLen],
		Src: s,
		Dst: frame,
	})
	if err != nil {
		return err
	}
	markPacketAsValid()

	if _, err := c.buffer.Write(frame); err != nil {
		return err
	}

	return nil
}

// Close closes the underlying conn and waits for the read loop to exit. The
// session is left open.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.cancel()
		err = c.nextConn.Close()
		<-c.readLoopDone
	})

	return err
}

// LocalAddr returns the underlying conn's local address.
func (c *Conn) LocalAddr() net.Addr {
	return c.nextConn.LocalAddr()
}

// RemoteAddr returns the underlying conn's remote address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.nextConn.RemoteAddr()
}

// SetDeadline sets the read deadline of the frame queue and the write
// deadline of the underlying conn.
func (c *Conn) SetDeadline(t time.Time) error {
	if err := c.SetReadDeadline(t); err != nil {
		return err
	}

	return c.SetWriteDeadline(t)
}

// SetReadDeadline sets the deadline for Read.
func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.buffer.SetReadDeadline(t)
}

// SetWriteDeadline sets the write deadline of the underlying conn.
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return c.nextConn.SetWriteDeadline(t)
}
