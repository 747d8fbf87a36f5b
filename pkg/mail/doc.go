// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

// Package mail sends the stuck folder notification: it renders the message
// from an embedded template and delivers it over an encrypted SMTP session
// (implicit TLS or mandatory STARTTLS).
package mail
