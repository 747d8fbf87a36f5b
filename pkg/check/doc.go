// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

// Package check runs the notifyIfFolderIsNotEmpty operation: it validates the
// command arguments, checks the folder and records the outcome.
package check
