// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

// Package folder decides whether a watched directory is empty and hands
// non-empty ("stuck") directories to a Notifier. Only immediate children are
// inspected.
package folder
