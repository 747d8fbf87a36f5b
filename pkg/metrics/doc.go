// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

// Package metrics defines Prometheus metrics for the stuck folder check and
// mail delivery, and writes them to a node_exporter textfile after a run.
package metrics
