// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package metrics exports gcmp session events as Prometheus metrics.
package metrics

import (
	"github.com/pion/gcmp/pkg/crypto/gcmp"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "gcmp"
	subsystem = "session"

	labelSession = "session"
	labelReason  = "reason"
)

// Collector holds the gcmp Prometheus metrics. It implements gcmp.Observer.
type Collector struct {
	// Sessions is the number of sessions registered in tables.
	Sessions prometheus.Gauge

	// Encryptions counts packet numbers that passed the IV check.
	Encryptions *prometheus.CounterVec

	// Rejections counts refused encryptions by reason. An iv_mismatch
	// disables the session until it is rekeyed and should be alerted on.
	Rejections *prometheus.CounterVec

	// Rekeys counts accepted keys.
	Rekeys *prometheus.CounterVec

	// Binds counts hardware address binds.
	Binds *prometheus.CounterVec
}

var _ gcmp.Observer = (*Collector)(nil)

// NewCollector creates a Collector registered against reg. If reg is nil,
// prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.Sessions,
		c.Encryptions,
		c.Rejections,
		c.Rekeys,
		c.Binds,
	)

	return c
}

func newMetrics() *Collector {
	sessionLabels := []string{labelSession}

	return &Collector{
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "registered",
			Help:      "Number of registered gcmp sessions.",
		}),

		Encryptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "encryptions_total",
			Help:      "Packet numbers issued after a successful IV check.",
		}, sessionLabels),

		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejections_total",
			Help:      "Encryptions refused by the IV check, by reason.",
		}, []string{labelSession, labelReason}),

		Rekeys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rekeys_total",
			Help:      "Keys accepted by gcmp sessions.",
		}, sessionLabels),

		Binds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "binds_total",
			Help:      "Hardware addresses bound to gcmp sessions.",
		}, sessionLabels),
	}
}

// SessionRegistered increments the sessions gauge.
func (c *Collector) SessionRegistered(string) {
	c.Sessions.Inc()
}

// SessionUnregistered decrements the sessions gauge and drops the session's
// series.
func (c *Collector) SessionUnregistered(name string) {
	c.Sessions.Dec()

	c.Encryptions.DeleteLabelValues(name)
	c.Rekeys.DeleteLabelValues(name)
	c.Binds.DeleteLabelValues(name)
	c.Rejections.DeletePartialMatch(prometheus.Labels{labelSession: name})
}

// Bound records a hardware address bind.
func (c *Collector) Bound(name string) {
	c.Binds.WithLabelValues(name).Inc()
}

// Rekeyed records an accepted key.
func (c *Collector) Rekeyed(name string) {
	c.Rekeys.WithLabelValues(name).Inc()
}

// Encrypted records an issued packet number.
func (c *Collector) Encrypted(name string) {
	c.Encryptions.WithLabelValues(name).Inc()
}

// Rejected records a refused encryption.
func (c *Collector) Rejected(name, reason string) {
	c.Rejections.WithLabelValues(name, reason).Inc()
}
