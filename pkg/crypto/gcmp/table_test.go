// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package gcmp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventLog is an Observer that records events as "event:name[:reason]".
type eventLog struct {
	lock   sync.Mutex
	events []string
}

func (l *eventLog) add(e string) {
	l.lock.Lock()
	l.events = append(l.events, e)
	l.lock.Unlock()
}

func (l *eventLog) all() []string {
	l.lock.Lock()
	defer l.lock.Unlock()

	return append([]string(nil), l.events...)
}

func (l *eventLog) SessionRegistered(name string)   { l.add("registered:" + name) }
func (l *eventLog) SessionUnregistered(name string) { l.add("unregistered:" + name) }
func (l *eventLog) Bound(name string)               { l.add("bound:" + name) }
func (l *eventLog) Rekeyed(name string)             { l.add("rekeyed:" + name) }
func (l *eventLog) Encrypted(name string)           { l.add("encrypted:" + name) }
func (l *eventLog) Rejected(name, reason string)    { l.add("rejected:" + name + ":" + reason) }

func TestTable(t *testing.T) {
	lookup := staticLookup{"wlan0": testMAC}
	events := &eventLog{}

	table := NewTable(WithLoggerFactory(silentLoggerFactory()), WithObserver(events))

	early, earlyInner := newTestSession(t, false, WithNet(lookup))
	late, _ := newTestSession(t, false, WithNet(lookup))
	other, _ := newTestSession(t, false, WithNet(lookup))

	require.NoError(t, table.Register("early", "wlan0", early))
	assert.True(t, early.Bound(), "an interface that is already up binds at registration")

	require.NoError(t, table.Register("late", "wlan1", late))
	require.NoError(t, table.Register("other", "", other))
	assert.False(t, late.Bound())
	assert.Equal(t, 3, table.Len())

	require.ErrorIs(t, table.Register("late", "wlan1", late), ErrSessionExists)

	got, ok := table.Get("late")
	require.True(t, ok)
	assert.Same(t, late, got)

	_, ok = table.Get("missing")
	assert.False(t, ok)

	// wlan1 does not resolve yet.
	assert.Equal(t, 0, table.InterfaceUp("wlan1"))

	lookup["wlan1"] = otherMAC
	assert.Equal(t, 1, table.InterfaceUp("wlan1"))
	mac, ok := late.HardwareAddr()
	require.True(t, ok)
	assert.Equal(t, otherMAC, mac)

	// Already bound sessions are left alone.
	assert.Equal(t, 0, table.InterfaceUp("wlan1"))
	assert.False(t, other.Bound())

	removed, ok := table.Unregister("early")
	require.True(t, ok)
	assert.Same(t, early, removed)
	_, ok = table.Unregister("early")
	assert.False(t, ok)
	assert.Equal(t, 2, table.Len())
	assert.False(t, earlyInner.closed, "unregistering hands the session back open")

	require.NoError(t, table.Close())
	assert.Equal(t, 0, table.Len())

	assert.ElementsMatch(t, []string{
		"registered:early",
		"registered:late",
		"registered:other",
		"unregistered:early",
		"unregistered:late",
		"unregistered:other",
	}, events.all())
}

func TestSessionObserver(t *testing.T) {
	events := &eventLog{}
	s, _ := newTestSession(t, false, WithObserver(events), WithName("sta0"))

	require.ErrorIs(t, encrypt(s, mustIV(t, testMAC, 1)), ErrNotReady)
	require.True(t, s.BindHardwareAddr(testMAC))
	require.NoError(t, encrypt(s, mustIV(t, testMAC, 1)))
	require.ErrorIs(t, encrypt(s, mustIV(t, testMAC, 1)), ErrIVMismatch)
	require.ErrorIs(t, encrypt(s, mustIV(t, testMAC, 3)), ErrCheckFailed)
	require.NoError(t, s.SetKey(testKey))

	assert.Equal(t, []string{
		"rekeyed:sta0",
		"rejected:sta0:not_ready",
		"bound:sta0",
		"encrypted:sta0",
		"rejected:sta0:iv_mismatch",
		"rejected:sta0:check_failed",
		"rekeyed:sta0",
	}, events.all())
}

func TestTableNamesSessionEvents(t *testing.T) {
	events := &eventLog{}
	lookup := staticLookup{"wlan0": testMAC}

	table := NewTable(WithLoggerFactory(silentLoggerFactory()), WithObserver(events))
	s, _ := newTestSession(t, false, WithNet(lookup), WithObserver(events))
	assert.Equal(t, "gcmp(fake(aead))", s.Label())

	require.NoError(t, table.Register("sta0", "wlan0", s))
	assert.Equal(t, "sta0", s.Label())

	require.NoError(t, encrypt(s, mustIV(t, testMAC, 1)))
	require.NoError(t, s.SetKey(testKey))

	_, ok := table.Unregister("sta0")
	require.True(t, ok)

	assert.Equal(t, []string{
		"rekeyed:gcmp(fake(aead))",
		"registered:sta0",
		"bound:sta0",
		"encrypted:sta0",
		"rekeyed:sta0",
		"unregistered:sta0",
	}, events.all())
}
