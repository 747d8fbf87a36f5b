// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

// Package cli dispatches the process arguments to the registered commands
// and maps their outcome to the process exit code.
//
// The first argument selects the command (case-insensitive). A single help
// token such as "-?", "/help" or "HELP" prints the usage text. Each command is
// a cobra command executed with the remaining arguments.
package cli
