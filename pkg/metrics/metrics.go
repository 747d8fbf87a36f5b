// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds only the notifier metrics so a textfile export does not
// carry Go runtime collectors.
var Registry = prometheus.NewRegistry()

var (
	ChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stuck_notifier_checks_total",
		Help: "Total number of directory checks by result (empty, notified, not_found, error)",
	}, []string{"result"})
	LastCheckTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stuck_notifier_last_check_timestamp_seconds",
		Help: "Unix time of the last completed directory check",
	})

	// Mail metrics
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stuck_notifier_mail_send_success_total",
		Help: "Total number of successful mail sends",
	}, []string{"host"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stuck_notifier_mail_send_failure_total",
		Help: "Total number of failed mail sends",
	}, []string{"host"})
)

// Check results used as the "result" label.
const (
	ResultEmpty    = "empty"
	ResultNotified = "notified"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

func init() {
	Registry.MustRegister(ChecksTotal)
	Registry.MustRegister(LastCheckTimestamp)
	Registry.MustRegister(MailSendSuccess)
	Registry.MustRegister(MailSendFailure)
}

// WriteTextfile writes the current metric values to path in the text
// exposition format. The file is replaced atomically.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
