// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/stuck-notifier/pkg/check"
	"github.com/telekom/stuck-notifier/pkg/config"
	"github.com/telekom/stuck-notifier/pkg/folder"
	"github.com/telekom/stuck-notifier/pkg/metrics"
	"github.com/telekom/stuck-notifier/pkg/system"
)

const NotifyCommandName = "notifyIfFolderIsNotEmpty"

type notifyOptions struct {
	configPath      string
	debug           bool
	metricsTextfile string
	failIfNotEmpty  bool
}

func (a *App) newNotifyCommand() *cobra.Command {
	opts := &notifyOptions{configPath: a.cfg.ConfigPath}

	cmd := &cobra.Command{
		Use:   NotifyCommandName + " [flags] [--] <path>",
		Short: "Send a notification mail when the directory is not empty",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.notify(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", opts.configPath, "Path to the settings file")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write run metrics to this file in Prometheus text format")
	cmd.Flags().BoolVar(&opts.failIfNotEmpty, "fail-if-not-empty", false, "Exit with code 1 after a notification was sent")

	return cmd
}

func (a *App) notify(cmd *cobra.Command, opts *notifyOptions, args []string) error {
	// An empty path never reaches the filesystem.
	if args[0] == "" {
		return &usageError{err: check.ErrUsage}
	}

	log := a.cfg.Logger
	if log == nil {
		zlog, err := system.NewLogger(opts.debug)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer func() { _ = zlog.Sync() }()
		log = zlog.Sugar()
	}

	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	settings.Print(log)

	result, err := a.cfg.NewOperation(settings, log).RunCheck(cmd.Context(), args)
	if opts.metricsTextfile != "" {
		if werr := metrics.WriteTextfile(opts.metricsTextfile); werr != nil {
			log.Warnw("Failed to write metrics textfile", "path", opts.metricsTextfile, "error", werr)
		}
	}

	switch {
	case errors.Is(err, check.ErrUsage):
		return &usageError{err: err}
	case errors.Is(err, folder.ErrDirectoryNotFound):
		return &exitError{code: Error, msg: fmt.Sprintf("directory %q was not found.", args[0]), err: err}
	case err != nil:
		return err
	}

	if result == check.NotEmptyNotified && opts.failIfNotEmpty {
		return &exitError{code: Error, msg: fmt.Sprintf("directory %q was not empty, notification sent.", args[0])}
	}
	return nil
}

func (a *App) runNotify(ctx context.Context, args []string) ExitCode {
	return a.execute(ctx, a.newNotifyCommand(), args)
}
