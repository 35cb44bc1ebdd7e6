// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package gcmp

import (
	"github.com/pion/gcmp/pkg/crypto/aead"
	"github.com/pion/logging"
)

// Option configures a Session or a Table.
type Option func(*options)

type options struct {
	loggerFactory logging.LoggerFactory
	net           InterfaceLookup
	observer      Observer
	name          string
	flags         aead.Flags
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.loggerFactory == nil {
		o.loggerFactory = logging.NewDefaultLoggerFactory()
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}

	return o
}

// WithLoggerFactory sets the logger factory. The default logs to stdout at
// the level configured by the PION_LOG_* environment variables.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(o *options) {
		o.loggerFactory = f
	}
}

// WithNet sets the interface lookup used by BindInterface. The default is
// stdnet, which reads the host's interfaces.
func WithNet(n InterfaceLookup) Option {
	return func(o *options) {
		o.net = n
	}
}

// WithObserver receives session events, e.g. for metrics.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithName sets the label used in logs and observer events. The default is
// the algorithm name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithFlags sets request flags, e.g. aead.FlagReqForbidWeakKeys, that are
// passed to the inner engine on SetKey.
func WithFlags(f aead.Flags) Option {
	return func(o *options) {
		o.flags = f
	}
}
