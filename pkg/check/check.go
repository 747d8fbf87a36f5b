// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/telekom/stuck-notifier/pkg/config"
	"github.com/telekom/stuck-notifier/pkg/folder"
	"github.com/telekom/stuck-notifier/pkg/mail"
	"github.com/telekom/stuck-notifier/pkg/metrics"
)

// ErrUsage is returned when the operation is not given exactly one path.
var ErrUsage = errors.New("expected exactly one non-empty directory argument")

// Result is the outcome of a successful check.
type Result int

const (
	// Empty means the directory had no entries and nothing was sent.
	Empty Result = iota
	// NotEmptyNotified means the directory had entries and the notification was sent.
	NotEmptyNotified
)

func (r Result) String() string {
	switch r {
	case Empty:
		return "empty"
	case NotEmptyNotified:
		return "not-empty-notified"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// FolderChecker is implemented by folder.Checker.
type FolderChecker interface {
	CheckFolder(ctx context.Context, path string) (bool, error)
}

// Operation wires a FolderChecker to argument validation and metrics.
type Operation struct {
	checker FolderChecker
	log     *zap.SugaredLogger
}

// New builds the operation on the local filesystem with mail notifications
// configured from settings.
func New(settings config.Settings, log *zap.SugaredLogger) *Operation {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	notifier := mail.NewNotifier(settings, nil, log)
	return NewWithChecker(folder.NewChecker(folder.OSFileSystem{}, notifier, log), log)
}

// NewWithChecker builds the operation around checker.
func NewWithChecker(checker FolderChecker, log *zap.SugaredLogger) *Operation {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Operation{checker: checker, log: log.Named("check")}
}

// RunCheck checks the single directory in args. Errors from the checker are
// returned as is, so folder.ErrDirectoryNotFound matches with errors.Is.
func (o *Operation) RunCheck(ctx context.Context, args []string) (Result, error) {
	if len(args) != 1 || args[0] == "" {
		return Empty, ErrUsage
	}
	path := args[0]

	empty, err := o.checker.CheckFolder(ctx, path)
	if err != nil {
		result := metrics.ResultError
		if errors.Is(err, folder.ErrDirectoryNotFound) {
			result = metrics.ResultNotFound
		}
		metrics.ChecksTotal.WithLabelValues(result).Inc()
		o.log.Warnw("Directory check failed", "path", path, "error", err)
		return Empty, err
	}
	metrics.LastCheckTimestamp.SetToCurrentTime()

	if empty {
		metrics.ChecksTotal.WithLabelValues(metrics.ResultEmpty).Inc()
		o.log.Infow("Directory check finished", "path", path, "result", Empty)
		return Empty, nil
	}
	metrics.ChecksTotal.WithLabelValues(metrics.ResultNotified).Inc()
	o.log.Infow("Directory check finished", "path", path, "result", NotEmptyNotified)
	return NotEmptyNotified, nil
}
