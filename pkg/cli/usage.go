// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"strings"
)

const programName = "stuck-notifier"

func (a *App) usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s checks a directory and sends a mail when it is not empty.\n\n", programName)
	b.WriteString("Usage:\n")
	fmt.Fprintf(&b, "  %s %s [flags] [--] <path>\n", programName, NotifyCommandName)
	b.WriteString("  (use -- before a path that starts with a dash)\n")
	fmt.Fprintf(&b, "  %s %s [-o text|json|yaml]\n", programName, VersionCommandName)
	fmt.Fprintf(&b, "  %s help | -? | /? | ? | --help | /help\n\n", programName)
	fmt.Fprintf(&b, "Flags of %s:\n", NotifyCommandName)
	b.WriteString(a.newNotifyCommand().Flags().FlagUsages())
	b.WriteString("\nExit codes:\n")
	fmt.Fprintf(&b, "  %d  directory empty, or not empty and the notification was sent\n", Ok)
	fmt.Fprintf(&b, "  %d  directory not found, settings incomplete or mail delivery failed\n", Error)
	fmt.Fprintf(&b, "  %d  wrong command line\n", WrongCommandLine)
	return b.String()
}

func (a *App) printUsage(w io.Writer) {
	_, _ = io.WriteString(w, a.usage())
}
