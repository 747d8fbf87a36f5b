// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

// Package config loads the notifier settings from the optional appsettings
// YAML file and the STUCK_NOTIFIER_* environment overlay, and validates the
// mail settings before a notification is attempted.
package config
