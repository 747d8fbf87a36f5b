// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package folder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// MaxListedEntries caps the entry names carried in a Report.
const MaxListedEntries = 10

// ErrDirectoryNotFound is returned when the checked path does not exist or is
// not a directory.
var ErrDirectoryNotFound = errors.New("directory not found")

// Report describes a directory that was found not empty.
type Report struct {
	// Path is the path exactly as it was requested.
	Path string
	// ResolvedPath is the absolute form of Path.
	ResolvedPath string
	// EntryCount is the number of immediate children.
	EntryCount int
	// Entries holds up to MaxListedEntries child names in directory order.
	Entries   []string
	CheckedAt time.Time
}

// Notifier is told about every directory that is not empty.
type Notifier interface {
	Notify(ctx context.Context, report Report) error
}

// Checker implements the stuck folder check.
type Checker struct {
	fs       FileSystem
	notifier Notifier
	log      *zap.SugaredLogger
	now      func() time.Time
}

// NewChecker returns a Checker reading fsys and reporting to notifier.
func NewChecker(fsys FileSystem, notifier Notifier, log *zap.SugaredLogger) *Checker {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Checker{
		fs:       fsys,
		notifier: notifier,
		log:      log.Named("folder"),
		now:      time.Now,
	}
}

// CheckFolder returns true when path is an empty directory. When it has at
// least one file or subdirectory the notifier is called once and false is
// returned. A notifier error is returned as is.
func (c *Checker) CheckFolder(ctx context.Context, path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("%w: empty path", ErrDirectoryNotFound)
	}
	resolved, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("resolve path: %w", err)
	}

	info, err := c.fs.Stat(resolved)
	// ENOTDIR: a parent component is a regular file
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return false, fmt.Errorf("%w: %s", ErrDirectoryNotFound, path)
	}
	if err != nil {
		return false, fmt.Errorf("check directory: %w", err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, path)
	}

	entries, err := c.fs.ReadDir(resolved)
	if err != nil {
		return false, fmt.Errorf("list directory: %w", err)
	}
	if len(entries) == 0 {
		c.log.Infow("Directory is empty", "path", path)
		return true, nil
	}

	report := Report{
		Path:         path,
		ResolvedPath: resolved,
		EntryCount:   len(entries),
		CheckedAt:    c.now(),
	}
	for _, e := range entries {
		if len(report.Entries) == MaxListedEntries {
			break
		}
		report.Entries = append(report.Entries, e.Name())
	}

	c.log.Infow("Directory is not empty, sending notification", "path", path, "entries", len(entries))
	if c.notifier == nil {
		return false, errors.New("no notifier configured")
	}
	if err := c.notifier.Notify(ctx, report); err != nil {
		return false, err
	}
	return false, nil
}
