// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package version exposes the build metadata stamped into the
// sentinel binary.
//
// Release builds overwrite the package variables with -ldflags:
//
//	go build -ldflags "-X github.com/cybertiba/sentinel/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// A plain `go build` leaves the development defaults in place.
package version

import (
	"fmt"
	"runtime"
)

var (
	// GitCommit is the short SHA the binary was built from.
	GitCommit = "unknown"

	// GitDirty is "true" when the working tree had uncommitted
	// changes at build time.
	GitDirty = "false"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"

	// Version is the release number, bumped by hand when tagging.
	Version = "0.1.0-dev"
)

// Info is the one-line form shown by `sentinel version`.
func Info() string {
	commit := GitCommit
	if GitDirty == "true" {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, BuildTime)
}

// Full extends Info with the Go toolchain and target platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short is the bare release number.
func Short() string {
	return Version
}

// Commit is the bare commit SHA without the dirty marker.
func Commit() string {
	return GitCommit
}
