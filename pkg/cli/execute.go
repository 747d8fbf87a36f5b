// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// usageError marks a command line the command cannot run with.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitError carries a user facing message and the exit code to report.
type exitError struct {
	code ExitCode
	msg  string
	err  error
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) Unwrap() error { return e.err }

func (a *App) execute(ctx context.Context, cmd *cobra.Command, args []string) ExitCode {
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(a.cfg.Out)
	cmd.SetErr(a.cfg.Err)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	return a.exitCode(cmd.Name(), cmd.ExecuteContext(ctx))
}

func (a *App) exitCode(name string, err error) ExitCode {
	if err == nil {
		return Ok
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		_, _ = fmt.Fprintf(a.cfg.Err, "Error: wrong usage of %s: %v\n", name, uerr.err)
		return WrongCommandLine
	}
	var xerr *exitError
	if errors.As(err, &xerr) {
		_, _ = fmt.Fprintf(a.cfg.Err, "Error: %s\n", xerr.msg)
		return xerr.code
	}
	_, _ = fmt.Fprintf(a.cfg.Err, "Error: %v\n", err)
	return Error
}
