// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

// Package version exposes the build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"time"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X github.com/telekom/stuck-notifier/pkg/version.Version=v1.0.0"
var (
	// Version is the semantic version of the release
	Version = "dev"
	// GitCommit is the commit the binary was built from
	GitCommit = "unknown"
	// BuildDate is the RFC3339 build timestamp
	BuildDate = "unknown"
	// GoVersion is the Go toolchain that compiled the binary
	GoVersion = runtime.Version()
	// Platform is the OS/Arch pair
	Platform = runtime.GOOS + "/" + runtime.GOARCH
)

// BuildInfo describes the running binary. JSON and YAML use the same keys.
type BuildInfo struct {
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string    `json:"buildDate" yaml:"buildDate"`
	GoVersion string    `json:"goVersion" yaml:"goVersion"`
	Platform  string    `json:"platform" yaml:"platform"`
	BuildTime time.Time `json:"buildTime,omitempty" yaml:"buildTime,omitempty"`
}

// GetBuildInfo collects the build variables and parses BuildDate.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
	}
	if t, err := time.Parse(time.RFC3339, BuildDate); err == nil {
		info.BuildTime = t
	}
	return info
}

// String is the one line form printed by the version command.
func (b BuildInfo) String() string {
	return fmt.Sprintf("stuck-notifier %s (commit: %s, built: %s, %s %s)",
		b.Version, b.GitCommit, b.BuildDate, b.GoVersion, b.Platform)
}
