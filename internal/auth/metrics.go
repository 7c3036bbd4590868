// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names used as metric labels.
const (
	OpCreateAccount = "create_account"
	OpSignIn        = "sign_in"
	OpAuthenticate  = "authenticate"
	OpSignOut       = "sign_out"
	OpCloseAccount  = "close_account"
)

// Metrics records auth service outcomes. A nil *Metrics records nothing.
type Metrics struct {
	Operations   *prometheus.CounterVec
	HashDuration prometheus.Histogram
}

// NewMetrics creates the auth metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authcore_auth_operations_total",
				Help: "Total number of auth operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		HashDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "authcore_password_hash_seconds",
			Help:    "Histogram of password hash and verify latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
	}

	reg.MustRegister(m.Operations)
	reg.MustRegister(m.HashDuration)

	return m
}

// record counts one operation outcome; outcome is "ok" or the error kind.
func (m *Metrics) record(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) observeHash(start time.Time) {
	if m == nil {
		return
	}
	m.HashDuration.Observe(time.Since(start).Seconds())
}
