// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package gcmp

import (
	"fmt"
	"sync"

	"github.com/pion/logging"
)

type tableEntry struct {
	session *Session
	ifname  string
}

// Table tracks active sessions by name together with the interface each one
// binds to. Sessions are added and removed explicitly; the networking code
// calls InterfaceUp when an interface becomes ready.
type Table struct {
	lock    sync.RWMutex
	entries map[string]tableEntry

	log      logging.LeveledLogger
	observer Observer
}

// NewTable creates an empty Table. WithLoggerFactory and WithObserver apply.
func NewTable(opts ...Option) *Table {
	o := applyOptions(opts)

	return &Table{
		entries:  map[string]tableEntry{},
		log:      o.loggerFactory.NewLogger("gcmp"),
		observer: o.observer,
	}
}

// Register adds s under name. If ifname is not empty, s is bound to it right
// away when the interface already exists, and again on every InterfaceUp for
// it. From then on s reports its events under name. Sessions still registered
// when the Table is closed are closed with it.
func (t *Table) Register(name, ifname string, s *Session) error {
	t.lock.Lock()
	if _, ok := t.entries[name]; ok {
		t.lock.Unlock()

		return fmt.Errorf("%w: %s", ErrSessionExists, name)
	}
	t.entries[name] = tableEntry{session: s, ifname: ifname}
	s.setLabel(name)
	t.lock.Unlock()

	t.log.Debugf("registered session %s on interface %q", name, ifname)
	t.observer.SessionRegistered(name)

	if ifname != "" {
		s.BindInterface(ifname)
	}

	return nil
}

// Unregister removes the session registered under name and returns it.
func (t *Table) Unregister(name string) (*Session, bool) {
	t.lock.Lock()
	e, ok := t.entries[name]
	delete(t.entries, name)
	t.lock.Unlock()

	if ok {
		t.log.Debugf("unregistered session %s", name)
		t.observer.SessionUnregistered(name)
	}

	return e.session, ok
}

// Get returns the session registered under name.
func (t *Table) Get(name string) (*Session, bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	e, ok := t.entries[name]

	return e.session, ok
}

// Len returns the number of registered sessions.
func (t *Table) Len() int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return len(t.entries)
}

// InterfaceUp binds every registered session waiting on ifname and returns
// how many became bound.
func (t *Table) InterfaceUp(ifname string) int {
	t.lock.RLock()
	var waiting []*Session
	for _, e := range t.entries {
		if e.ifname == ifname && !e.session.Bound() {
			waiting = append(waiting, e.session)
		}
	}
	t.lock.RUnlock()

	bound := 0
	for _, s := range waiting {
		s.BindInterface(ifname)
		if s.Bound() {
			bound++
		}
	}
	t.log.Debugf("interface %s up: bound %d of %d sessions", ifname, bound, len(waiting))

	return bound
}

// Close unregisters and closes every session.
func (t *Table) Close() error {
	t.lock.Lock()
	entries := t.entries
	t.entries = map[string]tableEntry{}
	t.lock.Unlock()

	var firstErr error
	for name, e := range entries {
		t.observer.SessionUnregistered(name)
		if err := e.session.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
